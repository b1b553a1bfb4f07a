package renderer

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/orrery/internal/engine/geometry"
)

func TestVertexStride(t *testing.T) {
	// Position + Normal + TexCoord, tightly packed float32s
	assert.Equal(t, int32(8*4), vertexStride)
}

func TestSolidImage(t *testing.T) {
	img := solidImage(0x11223344)
	require.Equal(t, image.Rect(0, 0, 1, 1), img.Rect)
	assert.Equal(t, []uint8{0x11, 0x22, 0x33, 0x44}, img.Pix)
}

func squareFaces(size int) [6]*image.RGBA {
	var faces [6]*image.RGBA
	for i := range faces {
		faces[i] = image.NewRGBA(image.Rect(0, 0, size, size))
	}
	return faces
}

func TestCheckCubeFaces(t *testing.T) {
	size, err := checkCubeFaces(squareFaces(16))
	require.NoError(t, err)
	assert.Equal(t, 16, size)

	faces := squareFaces(16)
	faces[2] = nil
	_, err = checkCubeFaces(faces)
	assert.ErrorContains(t, err, geometry.CubeFaces[2])

	faces = squareFaces(16)
	faces[4] = image.NewRGBA(image.Rect(0, 0, 16, 8))
	_, err = checkCubeFaces(faces)
	assert.ErrorContains(t, err, "square")

	faces = squareFaces(16)
	faces[5] = image.NewRGBA(image.Rect(0, 0, 8, 8))
	_, err = checkCubeFaces(faces)
	assert.ErrorContains(t, err, "want 16")

	_, err = checkCubeFaces(squareFaces(0))
	assert.Error(t, err)
}
