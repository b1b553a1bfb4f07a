package celestial

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/internal/engine/scene"
)

type fixedRand float64

func (f fixedRand) Float64() float64 { return float64(f) }

func TestNewBodyRadius(t *testing.T) {
	for _, size := range []float64{0.001, 0.383, 1, 10.97, 250} {
		b, err := NewBody("b", size, "assets/2k_mars.jpg")
		require.NoError(t, err)
		assert.Equal(t, float32(size), b.Mesh().Radius(), "size %g", size)
		assert.Equal(t, size, b.Size())
	}
}

func TestNewBodyMaterial(t *testing.T) {
	b, err := NewBody("mars", 1, "assets/2k_mars.jpg")
	require.NoError(t, err)

	m := b.Mesh()
	assert.Equal(t, "mars", m.Name)
	assert.Equal(t, "assets/2k_mars.jpg", m.Material.Map)
	assert.Equal(t, float32(DefaultRoughness), m.Material.Roughness)
	assert.Equal(t, DefaultSegments, m.Geometry.WidthSegments)
	assert.Equal(t, DefaultSegments, m.Geometry.HeightSegments)
	assert.Nil(t, b.Parent())
	assert.Empty(t, b.Moons())
}

func TestNewBodyOptions(t *testing.T) {
	b, err := NewBody("x", 1, "", WithSegments(8), WithRoughness(0.2))
	require.NoError(t, err)
	assert.Equal(t, 8, b.Mesh().Geometry.WidthSegments)
	assert.Equal(t, float32(0.2), b.Mesh().Material.Roughness)
}

func TestNewBodyInvalidRadius(t *testing.T) {
	for _, size := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := NewBody("bad", size, "")
		assert.True(t, errors.Is(err, ErrInvalidRadius), "size %g: %v", size, err)
	}
}

func TestAnimationParameterRanges(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 500; i++ {
		b, err := NewBody("b", 1, "", WithRand(rng))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, b.Bounce, MinBounce)
		assert.Less(t, b.Bounce, float64(MaxBounce))
		assert.GreaterOrEqual(t, b.BounceSpeed, MinBounceSpeed)
		assert.Less(t, b.BounceSpeed, MaxBounceSpeed)
		assert.GreaterOrEqual(t, b.RotationSpeed, MinRotationSpeed)
		assert.Less(t, b.RotationSpeed, MaxRotationSpeed)
	}
}

func TestRandomInRange(t *testing.T) {
	assert.Equal(t, 0.5, RandomInRange(fixedRand(0), 0.5, 2))
	assert.Equal(t, 1.25, RandomInRange(fixedRand(0.5), 0.5, 2))
	assert.Less(t, RandomInRange(fixedRand(math.Nextafter(1, 0)), 0.5, 2), 2.0)
}

func TestAddMoon(t *testing.T) {
	earth, err := NewBody("earth", 1, "assets/2k_earth_daymap.jpg", WithSegments(12))
	require.NoError(t, err)

	luna, err := earth.AddMoon("luna", 0.27, 6.033, "assets/2k_moon.jpg", 1, 1, 1)
	require.NoError(t, err)
	dup, err := earth.AddMoon("luna", 0.27, 6.033, "assets/2k_moon.jpg", 1, 1, 1)
	require.NoError(t, err, "duplicate names are allowed")

	assert.Equal(t, []*Body{luna, dup}, earth.Moons())
	assert.Same(t, earth, luna.Parent())
	assert.Equal(t, 6.033, luna.Distance)
	assert.Equal(t, Orbit{Radius: 1, Theta: 1, Phi: 1}, luna.Orbit)
	assert.Equal(t, 12, luna.Mesh().Geometry.WidthSegments, "moon inherits options")

	_, err = earth.AddMoon("ghost", 0, 1, "", 0, 0, 0)
	assert.True(t, errors.Is(err, ErrInvalidRadius))
	assert.Len(t, earth.Moons(), 2)
}

func TestAddToScenePlacesMoons(t *testing.T) {
	planet, err := NewBody("earth", 2, "")
	require.NoError(t, err)
	a, err := planet.AddMoon("a", 0.5, 3, "", 0, 0, 0)
	require.NoError(t, err)
	b, err := planet.AddMoon("b", 0.25, 1, "", 0, 0, 0)
	require.NoError(t, err)

	s := scene.New()
	pos := mgl32.Vec3{10, -4, 7}
	planet.AddToScene(s, pos)

	assert.Equal(t, pos, planet.Mesh().Position)
	assert.InDelta(t, 10+2+0.5+3, a.Mesh().Position.X(), 1e-5)
	assert.InDelta(t, 10+2+0.25+1, b.Mesh().Position.X(), 1e-5)
	for _, moon := range []*Body{a, b} {
		assert.Equal(t, pos.Y(), moon.Mesh().Position.Y())
		assert.Equal(t, pos.Z(), moon.Mesh().Position.Z())
	}

	require.Equal(t, 3, s.Len())
	assert.Equal(t, []*scene.Mesh{planet.Mesh(), a.Mesh(), b.Mesh()}, s.Meshes())
}

func TestAddToSceneNestedMoons(t *testing.T) {
	p, err := NewBody("p", 1, "")
	require.NoError(t, err)
	m, err := p.AddMoon("m", 1, 1, "", 0, 0, 0)
	require.NoError(t, err)
	mm, err := m.AddMoon("mm", 1, 1, "", 0, 0, 0)
	require.NoError(t, err)

	s := scene.New()
	p.AddToScene(s, mgl32.Vec3{})

	assert.InDelta(t, 3, m.Mesh().Position.X(), 1e-6)
	assert.InDelta(t, 6, mm.Mesh().Position.X(), 1e-6)
	assert.Equal(t, 3, s.Len())

	var names []string
	p.Walk(func(b *Body) { names = append(names, b.Name) })
	assert.Equal(t, []string{"p", "m", "mm"}, names)
}

func TestBouncePositionIsPure(t *testing.T) {
	for _, theta := range []float64{0, 0.3, math.Pi, 123.456} {
		first := BouncePosition(1.5, theta)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, BouncePosition(1.5, theta))
		}
		assert.InDelta(t, 1.5*math.Cos(theta), first, 1e-12)
	}
}

func TestAnimate(t *testing.T) {
	b, err := NewBody("b", 1, "")
	require.NoError(t, err)
	b.Bounce = 2
	b.BounceSpeed = 0.03
	b.RotationSpeed = 0.01
	b.Theta = 0

	// One reference frame
	b.Animate(1.0 / ReferenceFPS)
	assert.InDelta(t, 2, b.Mesh().Position.Y(), 1e-6, "y uses phase before advancing")
	assert.InDelta(t, 0.03, b.Theta, 1e-12)
	assert.InDelta(t, 0.01, b.Mesh().Rotation.Y(), 1e-6)

	b.Animate(1.0 / ReferenceFPS)
	assert.InDelta(t, 2*math.Cos(0.03), b.Mesh().Position.Y(), 1e-6)
	assert.InDelta(t, 0.06, b.Theta, 1e-12)
}

func TestAnimateFrameRateIndependent(t *testing.T) {
	mk := func() *Body {
		b, err := NewBody("b", 1, "", WithRand(fixedRand(0.5)))
		require.NoError(t, err)
		return b
	}
	slow, fast := mk(), mk()

	// One second at 30 fps vs 120 fps
	for i := 0; i < 30; i++ {
		slow.Animate(1.0 / 30)
	}
	for i := 0; i < 120; i++ {
		fast.Animate(1.0 / 120)
	}
	assert.InDelta(t, slow.Theta, fast.Theta, 1e-9)
	assert.InDelta(t, slow.Mesh().Rotation.Y(), fast.Mesh().Rotation.Y(), 1e-5)
	assert.InDelta(t, slow.BounceSpeed*ReferenceFPS, slow.Theta, 1e-9)
}

func TestAnimateNegativeDelta(t *testing.T) {
	b, err := NewBody("b", 1, "")
	require.NoError(t, err)
	b.Theta = 1
	b.Animate(-5)
	assert.Equal(t, 1.0, b.Theta)
}

func TestAnimateDoesNotMoveMoons(t *testing.T) {
	p, err := NewBody("p", 1, "")
	require.NoError(t, err)
	m, err := p.AddMoon("m", 0.5, 1, "", 1, 1, 1)
	require.NoError(t, err)
	p.AddToScene(scene.New(), mgl32.Vec3{5, 0, 0})
	before := m.Mesh().Position

	for i := 0; i < 10; i++ {
		p.Animate(0.016)
	}
	assert.Equal(t, before, m.Mesh().Position)
}
