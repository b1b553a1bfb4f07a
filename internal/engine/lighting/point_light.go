// Package lighting provides ambient and point light sources for scene rendering.
package lighting

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// MaxPointLights is the maximum number of point lights supported in shaders.
const MaxPointLights = 8

// AmbientLight lights every surface uniformly.
type AmbientLight struct {
	Color     Color
	Intensity float32
}

// PointLight emits light in all directions from a single point.
// Distance 0 means unlimited range.
type PointLight struct {
	Color     Color
	Intensity float32
	Distance  float32 // Range at which the light contribution reaches zero
	Decay     float32 // Falloff exponent along the range

	// Position is in world space, or in camera space when AttachedToCamera is set.
	Position         mgl32.Vec3
	AttachedToCamera bool
}

// NewPointLight creates a point light at the world origin.
func NewPointLight(color Color, intensity, distance, decay float32) *PointLight {
	return &PointLight{
		Color:     color,
		Intensity: intensity,
		Distance:  distance,
		Decay:     decay,
	}
}

// WorldPosition resolves the light position.
// cameraWorld is the camera's world transform (the inverse view matrix).
func (l *PointLight) WorldPosition(cameraWorld mgl32.Mat4) mgl32.Vec3 {
	if !l.AttachedToCamera {
		return l.Position
	}
	return mgl32.TransformCoordinate(l.Position, cameraWorld)
}

// Attenuation returns the falloff factor at distance d, matching the body
// fragment shader: (1 - d/distance)^decay clamped to [0, 1].
func Attenuation(d, distance, decay float32) float32 {
	if distance <= 0 {
		return 1
	}
	f := 1 - d/distance
	if f <= 0 {
		return 0
	}
	if f > 1 {
		f = 1
	}
	return float32(math.Pow(float64(f), float64(decay)))
}

// PointLightBuffer holds flattened light data for GPU upload.
type PointLightBuffer struct {
	Positions [MaxPointLights * 3]float32
	Colors    [MaxPointLights * 3]float32
	Ranges    [MaxPointLights]float32
	Decays    [MaxPointLights]float32
	Count     int
	Ambient   [3]float32
}

// Fill resolves lights to world space and flattens them.
// Lights beyond MaxPointLights are dropped; the number dropped is returned.
func (b *PointLightBuffer) Fill(ambient AmbientLight, lights []*PointLight, cameraWorld mgl32.Mat4) int {
	*b = PointLightBuffer{}
	b.Ambient = ambient.Color.Scaled(ambient.Intensity)

	dropped := 0
	for _, light := range lights {
		if b.Count >= MaxPointLights {
			dropped++
			continue
		}
		i := b.Count
		pos := light.WorldPosition(cameraWorld)
		color := light.Color.Scaled(light.Intensity)

		copy(b.Positions[i*3:i*3+3], pos[:])
		copy(b.Colors[i*3:i*3+3], color[:])
		b.Ranges[i] = light.Distance
		b.Decays[i] = light.Decay
		b.Count++
	}
	return dropped
}
