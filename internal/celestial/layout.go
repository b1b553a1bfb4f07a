package celestial

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/orrery/internal/engine/geometry"
)

// Rescale compresses the size range toward baseSize:
// size' = (baseSize - size) / 100 * scalePercentage + size.
// For sizes below baseSize and scalePercentage < 100 the order is preserved.
func Rescale(size, baseSize, scalePercentage float64) float64 {
	return (baseSize-size)/100*scalePercentage + size
}

// RingLayout returns n points evenly spaced on a circle of the given radius
// in the XZ plane. The points are the outline vertices of a circle
// tessellation with n segments, skipping the center and the first outline
// vertex, with Y and Z swapped so the ring lies flat.
func RingLayout(radius float32, n int) []mgl32.Vec3 {
	if n <= 0 {
		return nil
	}
	if n < geometry.MinCircleSegments {
		return ringDirect(radius, n)
	}

	pos := geometry.CirclePositions(radius, n)
	out := make([]mgl32.Vec3, 0, n)
	for i := 6; i+2 < len(pos); i += 3 {
		out = append(out, mgl32.Vec3{pos[i], pos[i+2], pos[i+1]})
	}
	return out
}

// ringDirect places fewer points than a circle tessellation allows,
// at the same angles 2*pi*s/n for s = 1..n.
func ringDirect(radius float32, n int) []mgl32.Vec3 {
	out := make([]mgl32.Vec3, 0, n)
	for s := 1; s <= n; s++ {
		angle := float64(s) / float64(n) * 2 * math.Pi
		out = append(out, mgl32.Vec3{
			radius * float32(math.Cos(angle)),
			0,
			radius * float32(math.Sin(angle)),
		})
	}
	return out
}
