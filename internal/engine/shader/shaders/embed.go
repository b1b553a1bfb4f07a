// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// BodyVertexShader is the vertex shader for lit sphere bodies.
//
//go:embed body.vert
var BodyVertexShader string

// BodyFragmentShader is the fragment shader for lit sphere bodies.
//
//go:embed body.frag
var BodyFragmentShader string

// SkyboxVertexShader is the vertex shader for the cube map background.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader is the fragment shader for the cube map background.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
