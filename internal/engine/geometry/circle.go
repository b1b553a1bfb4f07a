package geometry

import "math"

// MinCircleSegments is the fewest segments CirclePositions produces.
const MinCircleSegments = 3

// CirclePositions tessellates a filled circle in the XY plane as a triangle fan
// and returns the flat position attribute: the center vertex followed by
// segments+1 outline vertices starting at angle 0. The last outline vertex
// closes the fan and coincides with the first.
func CirclePositions(radius float32, segments int) []float32 {
	if segments < MinCircleSegments {
		segments = MinCircleSegments
	}

	positions := make([]float32, 0, (segments+2)*3)
	positions = append(positions, 0, 0, 0)

	for s := 0; s <= segments; s++ {
		angle := float64(s) / float64(segments) * 2 * math.Pi
		positions = append(positions,
			radius*float32(math.Cos(angle)),
			radius*float32(math.Sin(angle)),
			0,
		)
	}

	return positions
}

// CubeFaces is the order of cube-map faces expected by the renderer.
var CubeFaces = [6]string{"px", "nx", "py", "ny", "pz", "nz"}

// SkyboxVertices returns a unit cube as 36 unindexed positions,
// wound to be seen from the inside.
func SkyboxVertices() []float32 {
	return []float32{
		-1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1, -1,
		-1, -1, 1, -1, -1, -1, -1, 1, -1, -1, 1, -1, -1, 1, 1, -1, -1, 1,
		1, -1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1,
		-1, -1, 1, -1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -1, 1, -1, -1, 1,
		-1, 1, -1, 1, 1, -1, 1, 1, 1, 1, 1, 1, -1, 1, 1, -1, 1, -1,
		-1, -1, -1, -1, -1, 1, 1, -1, -1, 1, -1, -1, -1, -1, 1, 1, -1, 1,
	}
}
