package camera

import (
	gomath "math"

	"github.com/go-gl/mathgl/mgl32"
)

// OrbitControls rotates a camera around a target on a sphere.
// Angles are spherical: polar is measured from +Y, azimuth around Y from +Z.
// Input handlers only accumulate deltas; Update applies them, so damping works
// by carrying a fraction of each delta over to the next frame.
type OrbitControls struct {
	Camera *PerspectiveCamera
	Target mgl32.Vec3

	EnablePan     bool
	EnableZoom    bool
	EnableDamping bool
	DampingFactor float32
	RotateSpeed   float32
	ZoomSpeed     float32
	PanSpeed      float32

	MinDistance     float32
	MaxDistance     float32
	MinPolarAngle   float32
	MaxPolarAngle   float32
	MinAzimuthAngle float32
	MaxAzimuthAngle float32

	// Viewport height used to convert pixel drags to angles
	ViewportHeight float32

	radius  float32
	polar   float32
	azimuth float32

	deltaPolar   float32
	deltaAzimuth float32
	scale        float32
	panOffset    mgl32.Vec3

	initialTarget   mgl32.Vec3
	initialPosition mgl32.Vec3
}

// NewOrbitControls creates controls with unrestricted angles and distance,
// taking the starting spherical position from the camera.
func NewOrbitControls(cam *PerspectiveCamera) *OrbitControls {
	oc := &OrbitControls{
		Camera:          cam,
		EnableZoom:      true,
		EnablePan:       true,
		DampingFactor:   0.05,
		RotateSpeed:     1.0,
		ZoomSpeed:       1.0,
		PanSpeed:        1.0,
		MinDistance:     0,
		MaxDistance:     float32(gomath.Inf(1)),
		MinPolarAngle:   0,
		MaxPolarAngle:   gomath.Pi,
		MinAzimuthAngle: float32(gomath.Inf(-1)),
		MaxAzimuthAngle: float32(gomath.Inf(1)),
		ViewportHeight:  1,
		scale:           1,
	}
	oc.SaveState()
	oc.syncFromCamera()
	return oc
}

// SaveState records the current target and camera position for Reset.
func (oc *OrbitControls) SaveState() {
	oc.initialTarget = oc.Target
	oc.initialPosition = oc.Camera.Position
}

// Reset restores the state saved by SaveState and drops pending motion.
func (oc *OrbitControls) Reset() {
	oc.Target = oc.initialTarget
	oc.Camera.Position = oc.initialPosition
	oc.deltaPolar, oc.deltaAzimuth = 0, 0
	oc.scale = 1
	oc.panOffset = mgl32.Vec3{}
	oc.syncFromCamera()
	oc.Update()
}

// syncFromCamera derives spherical coordinates from the camera position.
func (oc *OrbitControls) syncFromCamera() {
	offset := oc.Camera.Position.Sub(oc.Target)
	oc.radius = offset.Len()
	if oc.radius == 0 {
		oc.polar, oc.azimuth = 0, 0
		return
	}
	oc.azimuth = float32(gomath.Atan2(float64(offset.X()), float64(offset.Z())))
	oc.polar = float32(gomath.Acos(float64(clamp(offset.Y()/oc.radius, -1, 1))))
}

// PolarAngle returns the current polar angle in radians.
func (oc *OrbitControls) PolarAngle() float32 { return oc.polar }

// AzimuthalAngle returns the current azimuth in radians.
func (oc *OrbitControls) AzimuthalAngle() float32 { return oc.azimuth }

// Distance returns the current distance from camera to target.
func (oc *OrbitControls) Distance() float32 { return oc.radius }

// HandleDrag queues a rotation for a pointer drag of (dx, dy) pixels.
// A drag across the full viewport height turns the camera one full revolution.
func (oc *OrbitControls) HandleDrag(dx, dy float32) {
	h := oc.ViewportHeight
	if h <= 0 {
		h = 1
	}
	oc.RotateLeft(2 * gomath.Pi * dx / h * oc.RotateSpeed)
	oc.RotateUp(2 * gomath.Pi * dy / h * oc.RotateSpeed)
}

// RotateLeft queues an azimuth rotation.
func (oc *OrbitControls) RotateLeft(angle float32) {
	oc.deltaAzimuth -= angle
}

// RotateUp queues a polar rotation.
func (oc *OrbitControls) RotateUp(angle float32) {
	oc.deltaPolar -= angle
}

// HandleZoom queues a dolly step for a wheel delta; positive zooms in.
// Ignored unless EnableZoom is set.
func (oc *OrbitControls) HandleZoom(delta float32) {
	if !oc.EnableZoom || delta == 0 {
		return
	}
	factor := float32(gomath.Pow(0.95, float64(oc.ZoomSpeed*abs(delta))))
	if delta > 0 {
		oc.scale *= factor
	} else {
		oc.scale /= factor
	}
}

// HandlePan queues a target translation for a drag of (dx, dy) pixels.
// Ignored unless EnablePan is set.
func (oc *OrbitControls) HandlePan(dx, dy float32) {
	if !oc.EnablePan {
		return
	}
	h := oc.ViewportHeight
	if h <= 0 {
		h = 1
	}
	// World units per pixel at the target distance
	fov := mgl32.DegToRad(oc.Camera.FOV)
	unitsPerPixel := 2 * oc.radius * float32(gomath.Tan(float64(fov)/2)) / h * oc.PanSpeed

	world := oc.Camera.WorldMatrix()
	right := world.Col(0).Vec3()
	up := world.Col(1).Vec3()
	oc.panOffset = oc.panOffset.Add(right.Mul(-dx * unitsPerPixel)).Add(up.Mul(dy * unitsPerPixel))
}

// RotateAzimuthBounds shifts both azimuth limits by angle.
func (oc *OrbitControls) RotateAzimuthBounds(angle float32) {
	oc.MinAzimuthAngle += angle
	oc.MaxAzimuthAngle += angle
}

// Update applies pending motion and constraints and moves the camera.
// Returns true if the camera moved.
func (oc *OrbitControls) Update() bool {
	before := oc.Camera.Position

	if oc.EnableDamping {
		oc.azimuth += oc.deltaAzimuth * oc.DampingFactor
		oc.polar += oc.deltaPolar * oc.DampingFactor
		oc.Target = oc.Target.Add(oc.panOffset.Mul(oc.DampingFactor))
	} else {
		oc.azimuth += oc.deltaAzimuth
		oc.polar += oc.deltaPolar
		oc.Target = oc.Target.Add(oc.panOffset)
	}

	oc.azimuth = clamp(oc.azimuth, oc.MinAzimuthAngle, oc.MaxAzimuthAngle)
	oc.polar = clamp(oc.polar, oc.MinPolarAngle, oc.MaxPolarAngle)
	// Keep off the poles so LookAt has a well-defined up vector
	oc.polar = clamp(oc.polar, 1e-6, gomath.Pi-1e-6)

	oc.radius = clamp(oc.radius*oc.scale, oc.MinDistance, oc.MaxDistance)

	sinPolar := float32(gomath.Sin(float64(oc.polar)))
	offset := mgl32.Vec3{
		oc.radius * sinPolar * float32(gomath.Sin(float64(oc.azimuth))),
		oc.radius * float32(gomath.Cos(float64(oc.polar))),
		oc.radius * sinPolar * float32(gomath.Cos(float64(oc.azimuth))),
	}
	oc.Camera.Position = oc.Target.Add(offset)
	oc.Camera.Target = oc.Target

	if oc.EnableDamping {
		keep := 1 - oc.DampingFactor
		oc.deltaAzimuth *= keep
		oc.deltaPolar *= keep
		oc.panOffset = oc.panOffset.Mul(keep)
	} else {
		oc.deltaAzimuth, oc.deltaPolar = 0, 0
		oc.panOffset = mgl32.Vec3{}
	}
	oc.scale = 1

	return oc.Camera.Position.Sub(before).LenSqr() > 1e-12
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
