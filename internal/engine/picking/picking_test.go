package picking

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/internal/engine/camera"
	"github.com/Faultbox/orrery/internal/engine/geometry"
	"github.com/Faultbox/orrery/internal/engine/lighting"
	"github.com/Faultbox/orrery/internal/engine/scene"
)

func sphereAt(name string, pos mgl32.Vec3, radius float32) *scene.Mesh {
	m := scene.NewMesh(name, geometry.NewSphere(radius, 8, 8), scene.NewStandardMaterial(0.6, ""))
	m.Position = pos
	return m
}

func TestScreenToNDC(t *testing.T) {
	assert.Equal(t, mgl32.Vec2{-1, 1}, ScreenToNDC(0, 0, 800, 600))
	assert.Equal(t, mgl32.Vec2{1, -1}, ScreenToNDC(800, 600, 800, 600))
	assert.Equal(t, mgl32.Vec2{0, 0}, ScreenToNDC(400, 300, 800, 600))
	assert.Equal(t, mgl32.Vec2{}, ScreenToNDC(10, 10, 0, 0))
}

func TestIntersectSphere(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 10}, Direction: mgl32.Vec3{0, 0, -1}}

	d, ok := r.IntersectSphere(mgl32.Vec3{}, 2)
	require.True(t, ok)
	assert.InDelta(t, 8, d, 1e-5)

	_, ok = r.IntersectSphere(mgl32.Vec3{5, 0, 0}, 2)
	assert.False(t, ok, "sphere off to the side")

	_, ok = r.IntersectSphere(mgl32.Vec3{0, 0, 20}, 2)
	assert.False(t, ok, "sphere behind origin")

	d, ok = r.IntersectSphere(mgl32.Vec3{0, 0, 10}, 3)
	require.True(t, ok, "origin inside sphere")
	assert.InDelta(t, 3, d, 1e-5)
}

func TestIntersectMeshesSortedAndVisibleOnly(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 50}, Direction: mgl32.Vec3{0, 0, -1}}

	far := sphereAt("far", mgl32.Vec3{0, 0, -10}, 1)
	near := sphereAt("near", mgl32.Vec3{0, 0, 10}, 1)
	hidden := sphereAt("hidden", mgl32.Vec3{0, 0, 20}, 1)
	hidden.Visible = false
	miss := sphereAt("miss", mgl32.Vec3{30, 0, 0}, 1)

	hits := r.IntersectMeshes([]*scene.Mesh{far, hidden, miss, near})
	require.Len(t, hits, 2)
	assert.Same(t, near, hits[0].Mesh)
	assert.Same(t, far, hits[1].Mesh)
	assert.InDelta(t, 39, hits[0].Distance, 1e-4)
	assert.InDelta(t, 11, hits[0].Point.Z(), 1e-4)
}

func TestFromCameraThroughCenter(t *testing.T) {
	cam := camera.NewPerspectiveCamera(50, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 70}
	cam.Target = mgl32.Vec3{}

	r := FromCamera(mgl32.Vec2{0, 0}, cam)
	assert.Equal(t, cam.Position, r.Origin)
	assert.InDelta(t, 0, r.Direction.X(), 1e-4)
	assert.InDelta(t, 0, r.Direction.Y(), 1e-4)
	assert.InDelta(t, -1, r.Direction.Z(), 1e-4)

	hits := r.IntersectMeshes([]*scene.Mesh{sphereAt("sun", mgl32.Vec3{}, 5)})
	require.Len(t, hits, 1)
	assert.InDelta(t, 65, hits[0].Distance, 1e-2)
}

func TestFromCameraOffCenter(t *testing.T) {
	cam := camera.NewPerspectiveCamera(90, 1, 0.1, 1000)
	cam.Position = mgl32.Vec3{0, 0, 10}
	cam.Target = mgl32.Vec3{}

	// With a 90 degree FOV the right edge of the viewport is at 45 degrees
	r := FromCamera(mgl32.Vec2{1, 0}, cam)
	assert.InDelta(t, r.Direction.X(), -r.Direction.Z(), 1e-4)
	assert.Greater(t, r.Direction.X(), float32(0))
}

func TestHighlighter(t *testing.T) {
	a := sphereAt("a", mgl32.Vec3{}, 1)
	b := sphereAt("b", mgl32.Vec3{}, 1)
	a.Material.Emissive = 0x000011
	b.Material.Emissive = 0x001100

	h := NewHighlighter(0xff0000)

	require.True(t, h.Update([]Hit{{Mesh: a}, {Mesh: b}}))
	assert.Same(t, a, h.Current())
	assert.Equal(t, lighting.Color(0xff0000), a.Material.Emissive)
	assert.Equal(t, lighting.Color(0x001100), b.Material.Emissive)

	// Same target again is a no-op
	assert.False(t, h.Update([]Hit{{Mesh: a}}))

	// Moving onto another mesh restores the first
	require.True(t, h.Update([]Hit{{Mesh: b}}))
	assert.Equal(t, lighting.Color(0x000011), a.Material.Emissive)
	assert.Equal(t, lighting.Color(0xff0000), b.Material.Emissive)

	// Moving off everything restores the second
	require.True(t, h.Update(nil))
	assert.Nil(t, h.Current())
	assert.Equal(t, lighting.Color(0x001100), b.Material.Emissive)

	assert.False(t, h.Update(nil))
}

func TestMeshWithoutMaterialIsNotPicked(t *testing.T) {
	r := Ray{Origin: mgl32.Vec3{0, 0, 50}, Direction: mgl32.Vec3{0, 0, -1}}

	bare := scene.NewMesh("bare", geometry.NewSphere(1, 8, 8), nil)
	behind := sphereAt("behind", mgl32.Vec3{0, 0, -10}, 1)

	hits := r.IntersectMeshes([]*scene.Mesh{bare, behind})
	require.Len(t, hits, 1)
	assert.Same(t, behind, hits[0].Mesh)

	h := NewHighlighter(0xff0000)
	assert.NotPanics(t, func() {
		assert.False(t, h.Update([]Hit{{Mesh: bare}}))
	})
	assert.Nil(t, h.Current())

	require.True(t, h.Update([]Hit{{Mesh: bare}, {Mesh: behind}}))
	assert.Same(t, behind, h.Current())
}
