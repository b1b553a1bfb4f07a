package renderer

import (
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/internal/engine/geometry"
)

type skybox struct {
	cubemap uint32
	vao     uint32
	vbo     uint32
	count   int32
}

func newSkybox(faces [6]*image.RGBA) (*skybox, error) {
	size, err := checkCubeFaces(faces)
	if err != nil {
		return nil, err
	}

	sb := &skybox{}
	gl.GenTextures(1, &sb.cubemap)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, sb.cubemap)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	// +X, -X, +Y, -Y, +Z, -Z are consecutive enums
	for i, f := range faces {
		gl.TexImage2D(gl.TEXTURE_CUBE_MAP_POSITIVE_X+uint32(i), 0, gl.RGBA8,
			int32(size), int32(size), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(f.Pix))
	}
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_CUBE_MAP, gl.TEXTURE_WRAP_R, gl.CLAMP_TO_EDGE)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, 0)

	verts := geometry.SkyboxVertices()
	sb.count = int32(len(verts) / 3)
	gl.GenVertexArrays(1, &sb.vao)
	gl.BindVertexArray(sb.vao)
	gl.GenBuffers(1, &sb.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, sb.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(verts)*4, gl.Ptr(verts), gl.STATIC_DRAW)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 3*4, 0)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	return sb, nil
}

func (sb *skybox) delete() {
	gl.DeleteTextures(1, &sb.cubemap)
	gl.DeleteVertexArrays(1, &sb.vao)
	gl.DeleteBuffers(1, &sb.vbo)
}

// drawSkybox draws the background last so depth testing skips covered pixels.
func (r *Renderer) drawSkybox(view, proj mgl32.Mat4) {
	p := r.skyboxProgram
	p.Use()
	gl.UniformMatrix4fv(p.Uniform("uView"), 1, false, &view[0])
	gl.UniformMatrix4fv(p.Uniform("uProjection"), 1, false, &proj[0])
	gl.Uniform1i(p.Uniform("uSkybox"), 0)

	// The cube is seen from inside
	gl.Disable(gl.CULL_FACE)
	gl.DepthMask(false)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_CUBE_MAP, r.skybox.cubemap)
	gl.BindVertexArray(r.skybox.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, r.skybox.count)
	gl.BindVertexArray(0)
	gl.DepthMask(true)
	gl.Enable(gl.CULL_FACE)
}
