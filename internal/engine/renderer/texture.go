package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/orrery/internal/engine/geometry"
)

// solidImage returns a 1x1 image of an 0xRRGGBBAA color.
func solidImage(rgba uint32) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Pix[0] = uint8(rgba >> 24)
	img.Pix[1] = uint8(rgba >> 16)
	img.Pix[2] = uint8(rgba >> 8)
	img.Pix[3] = uint8(rgba)
	return img
}

func uploadTexture(img *image.RGBA) uint32 {
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)

	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8,
		int32(img.Rect.Dx()), int32(img.Rect.Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}

// checkCubeFaces validates that all six faces are present, square and the
// same size.
func checkCubeFaces(faces [6]*image.RGBA) (int, error) {
	size := 0
	for i, f := range faces {
		if f == nil {
			return 0, fmt.Errorf("cube face %s missing", geometry.CubeFaces[i])
		}
		w, h := f.Rect.Dx(), f.Rect.Dy()
		if w != h {
			return 0, fmt.Errorf("cube face %s is %dx%d, want square", geometry.CubeFaces[i], w, h)
		}
		if i == 0 {
			size = w
		} else if w != size {
			return 0, fmt.Errorf("cube face %s is %d wide, want %d", geometry.CubeFaces[i], w, size)
		}
	}
	if size == 0 {
		return 0, fmt.Errorf("cube faces are empty")
	}
	return size, nil
}
