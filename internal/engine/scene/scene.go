// Package scene provides the scene graph shared by the viewer and the renderer:
// sphere meshes with their materials and transforms, lights, and the skybox.
package scene

import (
	"github.com/Faultbox/orrery/internal/engine/geometry"
	"github.com/Faultbox/orrery/internal/engine/lighting"
)

// Skybox is a cube-map background built from six face images.
// Faces are ordered +X, -X, +Y, -Y, +Z, -Z.
type Skybox struct {
	Faces [6]string
}

// NewSkybox builds face paths as prefix + face + suffix,
// e.g. "assets/" + "px" + ".png".
func NewSkybox(prefix, suffix string) *Skybox {
	var sb Skybox
	for i, face := range geometry.CubeFaces {
		sb.Faces[i] = prefix + face + suffix
	}
	return &sb
}

// Scene is the root of everything that gets rendered in a frame.
// It is owned by the render loop and is not safe for concurrent use.
type Scene struct {
	Background *Skybox
	Ambient    lighting.AmbientLight

	meshes []*Mesh
	lights []*lighting.PointLight
}

// New creates an empty scene with no background and no ambient light.
func New() *Scene {
	return &Scene{}
}

// Add inserts a mesh. Adding the same mesh twice is a no-op.
func (s *Scene) Add(m *Mesh) {
	for _, existing := range s.meshes {
		if existing == m {
			return
		}
	}
	s.meshes = append(s.meshes, m)
}

// Meshes returns the meshes in insertion order.
// The slice must not be modified.
func (s *Scene) Meshes() []*Mesh {
	return s.meshes
}

// Len returns the number of meshes in the scene.
func (s *Scene) Len() int {
	return len(s.meshes)
}

// FindByName returns every mesh with the given name. Names need not be unique.
func (s *Scene) FindByName(name string) []*Mesh {
	var found []*Mesh
	for _, m := range s.meshes {
		if m.Name == name {
			found = append(found, m)
		}
	}
	return found
}

// ClearMeshes removes all meshes, keeping lights and background.
func (s *Scene) ClearMeshes() {
	s.meshes = nil
}

// AddLight inserts a point light.
func (s *Scene) AddLight(l *lighting.PointLight) {
	s.lights = append(s.lights, l)
}

// Lights returns the point lights in insertion order.
func (s *Scene) Lights() []*lighting.PointLight {
	return s.lights
}
