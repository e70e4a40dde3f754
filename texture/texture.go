// Package texture synthesizes the visualizer's textures at runtime. Every
// generator returns a plain Go image so it can be inspected and tested
// without a graphics context; the renderer uploads them to the GPU.
package texture

import (
	"image"
	"image/color"
	"math"
	"math/rand"
)

// FlatNormal is the tangent-space normal (0, 0, 1) encoded as a colour.
var FlatNormal = color.NRGBA{R: 128, G: 128, B: 255, A: 255}

// NormalMap returns a size×size tangent-space normal map: a flat base with
// bumps soft circular dents and ridges at random positions.
func NormalMap(size, bumps int, rng *rand.Rand) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	fill(img, FlatNormal)

	s := float64(size)
	for i := 0; i < bumps; i++ {
		x := rng.Float64() * s
		y := rng.Float64() * s
		r := 6 + rng.Float64()*25
		d := (rng.Float64() - 0.5) * 50

		centre := color.NRGBA{R: clamp8(128 + d), G: clamp8(128 + d), B: 255, A: 255}
		g := NewGradient(Stop{0, centre}, Stop{1, FlatNormal})
		radialDisc(img, x, y, r, g)
	}
	return img
}

// EmissiveMap returns a size×size greyscale mask, bright in the centre and
// black at the rim.
func EmissiveMap(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	g := NewGradient(
		Stop{0, grey(0xff)},
		Stop{0.25, grey(0xdd)},
		Stop{0.6, grey(0x44)},
		Stop{1, grey(0x00)},
	)
	half := float64(size) / 2
	radialFill(img, half, half, half, g)
	return img
}

// GlowSprite returns a size×size sprite of colour (r, g, b) whose alpha
// falls off radially to fully transparent at the edge.
func GlowSprite(size int, r, g, b uint8) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	c := func(a float64) color.NRGBA { return color.NRGBA{R: r, G: g, B: b, A: clamp8(a * 255)} }
	grad := NewGradient(
		Stop{0, c(1)},
		Stop{0.12, c(0.85)},
		Stop{0.35, c(0.3)},
		Stop{0.6, c(0.08)},
		Stop{1, c(0)},
	)
	half := float64(size) / 2
	radialFill(img, half, half, half, grad)
	return img
}

func grey(v uint8) color.NRGBA {
	return color.NRGBA{R: v, G: v, B: v, A: 255}
}

func fill(img *image.NRGBA, c color.NRGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// radialFill paints every pixel with the gradient evaluated at its distance
// from (cx, cy) divided by radius.
func radialFill(img *image.NRGBA, cx, cy, radius float64, g Gradient) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			img.SetNRGBA(x, y, g.At(d/radius))
		}
	}
}

// radialDisc paints the disc of the given radius only, leaving the rest of
// the image untouched.
func radialDisc(img *image.NRGBA, cx, cy, radius float64, g Gradient) {
	r := image.Rect(
		int(math.Floor(cx-radius)), int(math.Floor(cy-radius)),
		int(math.Ceil(cx+radius))+1, int(math.Ceil(cy+radius))+1,
	).Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			if d > radius {
				continue
			}
			img.SetNRGBA(x, y, g.At(d/radius))
		}
	}
}
