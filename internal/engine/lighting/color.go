package lighting

// Color is a 24-bit RGB color in 0xRRGGBB form.
type Color uint32

// Common colors.
const (
	Black Color = 0x000000
	White Color = 0xffffff
)

// RGB returns the color as normalized components for GPU upload.
func (c Color) RGB() [3]float32 {
	return [3]float32{
		float32((c>>16)&0xff) / 255,
		float32((c>>8)&0xff) / 255,
		float32(c&0xff) / 255,
	}
}

// Scaled returns the RGB components multiplied by intensity.
func (c Color) Scaled(intensity float32) [3]float32 {
	rgb := c.RGB()
	return [3]float32{rgb[0] * intensity, rgb[1] * intensity, rgb[2] * intensity}
}
