package camera

import (
	gomath "math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRingCamera() (*PerspectiveCamera, *OrbitControls) {
	cam := NewPerspectiveCamera(50, 16.0/9.0, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 70}

	oc := NewOrbitControls(cam)
	oc.EnablePan = false
	oc.EnableZoom = false
	oc.EnableDamping = true
	oc.RotateSpeed = 0.6
	oc.MinPolarAngle = 1.3
	oc.MaxPolarAngle = 1.3
	oc.MinAzimuthAngle = 0
	oc.MaxAzimuthAngle = 0
	oc.ViewportHeight = 720
	oc.Update()
	return cam, oc
}

func TestSetAspect(t *testing.T) {
	cam := NewPerspectiveCamera(50, 1, 0.1, 1000)
	before := cam.ProjectionMatrix()

	cam.SetAspect(1920, 1080)
	assert.InDelta(t, 1920.0/1080.0, cam.Aspect, 1e-6)
	assert.NotEqual(t, before, cam.ProjectionMatrix())

	// Minimized windows report zero size
	cam.SetAspect(0, 0)
	assert.InDelta(t, 1920.0/1080.0, cam.Aspect, 1e-6)
}

func TestUnprojectCenterRay(t *testing.T) {
	cam := NewPerspectiveCamera(50, 1, 0.1, 100)
	cam.Position = mgl32.Vec3{0, 0, 70}
	cam.Target = mgl32.Vec3{}

	near := cam.Unproject(mgl32.Vec3{0, 0, -1})
	far := cam.Unproject(mgl32.Vec3{0, 0, 1})

	assert.InDelta(t, 69.9, near.Z(), 1e-3)
	assert.InDelta(t, -30, far.Z(), 0.1)
	assert.InDelta(t, 0, near.X(), 1e-4)
	assert.InDelta(t, 0, far.Y(), 1e-2)
}

func TestOrbitControlsLockedPolar(t *testing.T) {
	cam, oc := newRingCamera()

	assert.InDelta(t, 1.3, oc.PolarAngle(), 1e-5)
	assert.InDelta(t, 0, oc.AzimuthalAngle(), 1e-6)
	assert.InDelta(t, 70, oc.Distance(), 1e-3)

	// Camera sits above the ring plane, in front of it, looking at the origin
	assert.InDelta(t, 0, cam.Position.X(), 1e-4)
	assert.InDelta(t, 70*gomath.Cos(1.3), cam.Position.Y(), 1e-3)
	assert.InDelta(t, 70*gomath.Sin(1.3), cam.Position.Z(), 1e-3)
	assert.Equal(t, mgl32.Vec3{}, cam.Target)

	// Drags cannot move a fully locked camera
	oc.HandleDrag(300, 200)
	for i := 0; i < 100; i++ {
		oc.Update()
	}
	assert.InDelta(t, 1.3, oc.PolarAngle(), 1e-5)
	assert.InDelta(t, 0, oc.AzimuthalAngle(), 1e-6)
}

func TestOrbitControlsDamping(t *testing.T) {
	cam := NewPerspectiveCamera(50, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 70}
	oc := NewOrbitControls(cam)
	oc.EnableDamping = true
	oc.DampingFactor = 0.1

	oc.RotateLeft(-1) // +1 rad azimuth in total

	require.True(t, oc.Update())
	assert.InDelta(t, 0.1, oc.AzimuthalAngle(), 1e-5)

	oc.Update()
	assert.InDelta(t, 0.1+0.09, oc.AzimuthalAngle(), 1e-5)

	// Converges on the full rotation
	for i := 0; i < 500; i++ {
		oc.Update()
	}
	assert.InDelta(t, 1, oc.AzimuthalAngle(), 1e-3)
	assert.InDelta(t, 70, cam.Position.Len(), 1e-3)
}

func TestOrbitControlsNoDamping(t *testing.T) {
	cam := NewPerspectiveCamera(50, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 70}
	oc := NewOrbitControls(cam)
	oc.EnableDamping = false

	oc.RotateLeft(-0.5)
	oc.Update()
	assert.InDelta(t, 0.5, oc.AzimuthalAngle(), 1e-5)

	assert.False(t, oc.Update(), "no pending motion should leave the camera in place")
}

func TestRotateAzimuthBounds(t *testing.T) {
	cam, oc := newRingCamera()

	oc.RotateAzimuthBounds(gomath.Pi / 4)
	assert.InDelta(t, gomath.Pi/4, oc.MinAzimuthAngle, 1e-6)
	assert.InDelta(t, gomath.Pi/4, oc.MaxAzimuthAngle, 1e-6)

	// The clamp pulls the camera to the new bound on the next update
	oc.Update()
	assert.InDelta(t, gomath.Pi/4, oc.AzimuthalAngle(), 1e-5)
	assert.Greater(t, cam.Position.X(), float32(0))
}

func TestZoomRespectsEnableAndLimits(t *testing.T) {
	cam := NewPerspectiveCamera(50, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 70}
	oc := NewOrbitControls(cam)
	oc.EnableDamping = false
	oc.MinDistance = 20
	oc.MaxDistance = 100

	oc.EnableZoom = false
	oc.HandleZoom(5)
	oc.Update()
	assert.InDelta(t, 70, oc.Distance(), 1e-3)

	oc.EnableZoom = true
	oc.HandleZoom(5)
	oc.Update()
	assert.Less(t, oc.Distance(), float32(70))

	for i := 0; i < 100; i++ {
		oc.HandleZoom(10)
		oc.Update()
	}
	assert.InDelta(t, 20, oc.Distance(), 1e-3)

	for i := 0; i < 100; i++ {
		oc.HandleZoom(-10)
		oc.Update()
	}
	assert.InDelta(t, 100, oc.Distance(), 1e-3)
}

func TestPanRespectsEnable(t *testing.T) {
	cam := NewPerspectiveCamera(50, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 70}
	oc := NewOrbitControls(cam)
	oc.EnableDamping = false
	oc.ViewportHeight = 720
	oc.Update()

	oc.EnablePan = false
	oc.HandlePan(100, 0)
	oc.Update()
	assert.Equal(t, mgl32.Vec3{}, oc.Target)

	oc.EnablePan = true
	oc.HandlePan(100, 0)
	oc.Update()
	// Dragging right moves the target left
	assert.Less(t, oc.Target.X(), float32(0))
	assert.InDelta(t, 0, oc.Target.Y(), 1e-4)
}

func TestReset(t *testing.T) {
	cam, oc := newRingCamera()
	oc.SaveState()
	start := cam.Position

	oc.RotateAzimuthBounds(gomath.Pi / 2)
	oc.Update()
	require.NotEqual(t, start, cam.Position)

	oc.RotateAzimuthBounds(-gomath.Pi / 2)
	oc.Reset()
	assert.InDelta(t, start.X(), cam.Position.X(), 1e-3)
	assert.InDelta(t, start.Z(), cam.Position.Z(), 1e-3)
}
