package scene

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/internal/engine/geometry"
	"github.com/Faultbox/orrery/internal/engine/lighting"
)

// Material is a lit surface with an optional color texture.
type Material struct {
	Color     lighting.Color
	Roughness float32
	Map       string // Texture path, empty for untextured
	Emissive  lighting.Color
}

// NewStandardMaterial creates a white material with the given roughness and texture.
func NewStandardMaterial(roughness float32, texturePath string) *Material {
	return &Material{
		Color:     lighting.White,
		Roughness: roughness,
		Map:       texturePath,
		Emissive:  lighting.Black,
	}
}

// Mesh is a sphere placed in the scene.
// Rotation holds Euler angles in radians applied in X, Y, Z order.
type Mesh struct {
	Name     string
	Geometry geometry.Sphere
	Material *Material
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Visible  bool
}

// NewMesh creates a visible mesh at the origin.
func NewMesh(name string, geom geometry.Sphere, mat *Material) *Mesh {
	return &Mesh{
		Name:     name,
		Geometry: geom,
		Material: mat,
		Visible:  true,
	}
}

// Radius returns the sphere radius.
func (m *Mesh) Radius() float32 {
	return m.Geometry.Radius
}

// ModelMatrix returns the local-to-world transform.
func (m *Mesh) ModelMatrix() mgl32.Mat4 {
	return mgl32.Translate3D(m.Position.X(), m.Position.Y(), m.Position.Z()).
		Mul4(mgl32.HomogRotate3DX(m.Rotation.X())).
		Mul4(mgl32.HomogRotate3DY(m.Rotation.Y())).
		Mul4(mgl32.HomogRotate3DZ(m.Rotation.Z()))
}
