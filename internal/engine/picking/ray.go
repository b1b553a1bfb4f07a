// Package picking provides ray casting and object picking utilities.
package picking

import (
	gomath "math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/scene"
)

// Ray represents a ray in 3D space with origin and direction.
type Ray struct {
	Origin    mgl32.Vec3
	Direction mgl32.Vec3 // Normalized
}

// ScreenToNDC converts pixel coordinates to normalized device coordinates.
// Y is flipped so that +1 is the top of the viewport.
func ScreenToNDC(screenX, screenY, viewportW, viewportH float32) mgl32.Vec2 {
	if viewportW <= 0 || viewportH <= 0 {
		return mgl32.Vec2{}
	}
	return mgl32.Vec2{
		screenX/viewportW*2 - 1,
		-(screenY/viewportH)*2 + 1,
	}
}

// FromCamera builds a ray starting at the camera and passing through the
// given point in normalized device coordinates.
func FromCamera(ndc mgl32.Vec2, cam *camera.PerspectiveCamera) Ray {
	origin := cam.Position
	through := cam.Unproject(mgl32.Vec3{ndc.X(), ndc.Y(), 0.5})
	return Ray{
		Origin:    origin,
		Direction: through.Sub(origin).Normalize(),
	}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Direction.Mul(t))
}

// IntersectSphere tests ray intersection with a sphere.
// Returns the distance to the nearest intersection in front of the origin.
// If the ray starts inside the sphere, returns the exit distance.
func (r Ray) IntersectSphere(center mgl32.Vec3, radius float32) (t float32, hit bool) {
	// |O + tD - C|^2 = r^2 with |D| = 1
	oc := r.Origin.Sub(center)
	b := oc.Dot(r.Direction)
	c := oc.Dot(oc) - radius*radius
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}

	sq := float32(gomath.Sqrt(float64(disc)))
	t0 := -b - sq
	t1 := -b + sq
	if t1 < 0 {
		return 0, false // Sphere behind ray origin
	}
	if t0 < 0 {
		return t1, true
	}
	return t0, true
}

// Hit is a single ray intersection.
type Hit struct {
	Mesh     *scene.Mesh
	Distance float32
	Point    mgl32.Vec3
}

// IntersectMeshes returns all visible meshes hit by the ray, nearest first.
// Meshes without a material are not drawn and cannot be hit.
func (r Ray) IntersectMeshes(meshes []*scene.Mesh) []Hit {
	var hits []Hit
	for _, m := range meshes {
		if m == nil || !m.Visible || m.Material == nil {
			continue
		}
		t, ok := r.IntersectSphere(m.Position, m.Radius())
		if !ok {
			continue
		}
		hits = append(hits, Hit{Mesh: m, Distance: t, Point: r.At(t)})
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}
