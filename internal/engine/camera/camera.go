// Package camera provides the perspective camera and orbit-style controls.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// PerspectiveCamera projects the scene with a vertical field of view.
type PerspectiveCamera struct {
	FOV    float32 // Vertical field of view in degrees
	Aspect float32
	Near   float32
	Far    float32

	Position mgl32.Vec3
	Target   mgl32.Vec3
	Up       mgl32.Vec3

	projection mgl32.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float32) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Target: mgl32.Vec3{0, 0, -1},
		Up:     mgl32.Vec3{0, 1, 0},
	}
	c.UpdateProjectionMatrix()
	return c
}

// SetAspect changes the aspect ratio and rebuilds the projection.
// Non-positive sizes are ignored (minimized windows report 0x0).
func (c *PerspectiveCamera) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
	c.UpdateProjectionMatrix()
}

// UpdateProjectionMatrix must be called after changing FOV, Aspect, Near or Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	c.projection = mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the cached projection matrix.
func (c *PerspectiveCamera) ProjectionMatrix() mgl32.Mat4 {
	return c.projection
}

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.Target, c.Up)
}

// WorldMatrix returns the camera-to-world transform.
func (c *PerspectiveCamera) WorldMatrix() mgl32.Mat4 {
	return c.ViewMatrix().Inv()
}

// ViewProjection returns projection * view.
func (c *PerspectiveCamera) ViewProjection() mgl32.Mat4 {
	return c.projection.Mul4(c.ViewMatrix())
}

// Unproject maps a point in normalized device coordinates (x, y, z in [-1, 1])
// back to world space.
func (c *PerspectiveCamera) Unproject(ndc mgl32.Vec3) mgl32.Vec3 {
	inv := c.ViewProjection().Inv()
	return mgl32.TransformCoordinate(ndc, inv)
}
