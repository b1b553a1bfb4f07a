// Package celestial models the sphere bodies shown in the scene.
//
// A Body owns exactly one mesh. Moons are Bodies whose Parent is set; a body
// lists its moons in the order they were added.
package celestial

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/internal/engine/geometry"
	"github.com/Faultbox/orrery/internal/engine/scene"
)

// ErrInvalidRadius is returned when a body is created with a non-positive size.
var ErrInvalidRadius = errors.New("body radius must be positive")

// ReferenceFPS is the frame rate the per-frame speeds were tuned at.
// Animate scales them by dt * ReferenceFPS.
const ReferenceFPS = 60

// Animation parameter ranges, each [low, high).
const (
	MinBounce        = 0.5
	MaxBounce        = 2
	MinBounceSpeed   = 0.01
	MaxBounceSpeed   = 0.05
	MinRotationSpeed = 0.005
	MaxRotationSpeed = 0.02
)

// Defaults for the body material and tessellation.
const (
	DefaultSegments  = 30
	DefaultRoughness = 0.6
)

// Rand is the randomness source for animation parameters.
// *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }

// Orbit holds moon orbit parameters. Moons are placed at a fixed offset from
// their parent; these values are kept for a revolving orbit.
type Orbit struct {
	Radius float64
	Theta  float64
	Phi    float64
}

// Body is a planet or moon with its mesh and animation state.
type Body struct {
	Name string

	Bounce        float64 // Y amplitude
	BounceSpeed   float64 // Phase advance per reference frame
	RotationSpeed float64 // Spin advance per reference frame, radians
	Theta         float64 // Current bounce phase

	// Moon placement, zero for planets.
	Distance float64 // Gap between parent and moon surfaces
	Orbit    Orbit

	size   float64
	mesh   *scene.Mesh
	parent *Body
	moons  []*Body
	opts   options
}

type options struct {
	rng       Rand
	segments  int
	roughness float32
}

// Option configures a Body.
type Option func(*options)

// WithRand sets the randomness source for animation parameters.
func WithRand(r Rand) Option {
	return func(o *options) { o.rng = r }
}

// WithSegments sets the sphere tessellation in both directions.
func WithSegments(n int) Option {
	return func(o *options) { o.segments = n }
}

// WithRoughness sets the material roughness.
func WithRoughness(r float32) Option {
	return func(o *options) { o.roughness = r }
}

// NewBody creates a body with a sphere mesh of radius size and a textured
// material. The texture is resolved later by the renderer; an empty path
// renders untextured.
func NewBody(name string, size float64, texture string, opts ...Option) (*Body, error) {
	o := options{
		rng:       globalRand{},
		segments:  DefaultSegments,
		roughness: DefaultRoughness,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return newBody(name, size, texture, o)
}

func newBody(name string, size float64, texture string, o options) (*Body, error) {
	if !(size > 0) || math.IsInf(size, 1) {
		return nil, fmt.Errorf("%w: %s has size %g", ErrInvalidRadius, name, size)
	}

	geom := geometry.NewSphere(float32(size), o.segments, o.segments)
	mesh := scene.NewMesh(name, geom, scene.NewStandardMaterial(o.roughness, texture))

	return &Body{
		Name:          name,
		Bounce:        RandomInRange(o.rng, MinBounce, MaxBounce),
		BounceSpeed:   RandomInRange(o.rng, MinBounceSpeed, MaxBounceSpeed),
		RotationSpeed: RandomInRange(o.rng, MinRotationSpeed, MaxRotationSpeed),
		size:          size,
		mesh:          mesh,
		opts:          o,
	}, nil
}

// RandomInRange returns a uniformly distributed value in [low, high).
func RandomInRange(r Rand, low, high float64) float64 {
	return low + r.Float64()*(high-low)
}

// Mesh returns the body's mesh. Callers may change its transform and material
// but must not replace it.
func (b *Body) Mesh() *scene.Mesh {
	return b.mesh
}

// Size returns the sphere radius.
func (b *Body) Size() float64 {
	return b.size
}

// Parent returns the body this one orbits, or nil for a planet.
func (b *Body) Parent() *Body {
	return b.parent
}

// Moons returns the moons in the order they were added.
func (b *Body) Moons() []*Body {
	return b.moons
}

// AddMoon creates a moon orbiting b and appends it. Names are not checked for
// duplicates. The moon shares b's options.
func (b *Body) AddMoon(name string, size, distance float64, texture string, orbitRadius, theta, phi float64) (*Body, error) {
	moon, err := newBody(name, size, texture, b.opts)
	if err != nil {
		return nil, err
	}
	moon.parent = b
	moon.Distance = distance
	moon.Orbit = Orbit{Radius: orbitRadius, Theta: theta, Phi: phi}
	b.moons = append(b.moons, moon)
	return moon, nil
}

// MoonPosition returns where a moon sits next to its parent: offset along X
// by both radii plus the gap, with Y and Z copied from the parent.
func MoonPosition(parentPos mgl32.Vec3, parentRadius, moonRadius, distance float64) mgl32.Vec3 {
	offset := parentRadius + moonRadius + distance
	return mgl32.Vec3{
		float32(float64(parentPos.X()) + offset),
		parentPos.Y(),
		parentPos.Z(),
	}
}

// AddToScene places the body at position and adds its mesh to s, followed by
// each moon at its offset. Moon positions are computed once here and do not
// follow later parent motion.
func (b *Body) AddToScene(s *scene.Scene, position mgl32.Vec3) {
	b.mesh.Position = position
	s.Add(b.mesh)

	for _, moon := range b.moons {
		moon.AddToScene(s, MoonPosition(position, b.size, moon.size, moon.Distance))
	}
}

// BouncePosition returns the Y offset for a bounce amplitude and phase.
func BouncePosition(bounce, theta float64) float64 {
	return bounce * math.Cos(theta)
}

// Animate advances the bounce and spin by dt seconds. The Y position is set
// from the phase before it advances.
func (b *Body) Animate(dt float64) {
	if dt < 0 {
		dt = 0
	}
	frames := dt * ReferenceFPS

	b.mesh.Position[1] = float32(BouncePosition(b.Bounce, b.Theta))
	b.Theta += b.BounceSpeed * frames

	rot := math.Mod(float64(b.mesh.Rotation[1])+b.RotationSpeed*frames, 2*math.Pi)
	b.mesh.Rotation[1] = float32(rot)
}

// Walk calls fn for b and then for every moon, depth first.
func (b *Body) Walk(fn func(*Body)) {
	fn(b)
	for _, moon := range b.moons {
		moon.Walk(fn)
	}
}
