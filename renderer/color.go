package renderer

import (
	"image/color"
	"math"
)

// srgbToLinear converts one 8-bit sRGB channel to linear light.
func srgbToLinear(c uint8) float32 {
	v := float64(c) / 255
	if v <= 0.04045 {
		return float32(v / 12.92)
	}
	return float32(math.Pow((v+0.055)/1.055, 2.4))
}

// linearColor converts an sRGB colour to linear RGB scaled by intensity.
func linearColor(c color.RGBA, intensity float32) [3]float32 {
	return [3]float32{
		srgbToLinear(c.R) * intensity,
		srgbToLinear(c.G) * intensity,
		srgbToLinear(c.B) * intensity,
	}
}
