package texture

import (
	"image/color"
	"math"
	"sort"
)

// Stop is a colour stop of a gradient at Offset in [0, 1].
type Stop struct {
	Offset float64
	Color  color.NRGBA
}

// Gradient interpolates linearly between colour stops. Values before the
// first stop or after the last clamp to the end colours.
type Gradient []Stop

// NewGradient returns the stops sorted by offset.
func NewGradient(stops ...Stop) Gradient {
	g := append(Gradient(nil), stops...)
	sort.SliceStable(g, func(i, j int) bool { return g[i].Offset < g[j].Offset })
	return g
}

// At returns the colour at offset t.
func (g Gradient) At(t float64) color.NRGBA {
	if len(g) == 0 {
		return color.NRGBA{}
	}
	if t <= g[0].Offset {
		return g[0].Color
	}
	last := g[len(g)-1]
	if t >= last.Offset {
		return last.Color
	}
	for i := 1; i < len(g); i++ {
		a, b := g[i-1], g[i]
		if t > b.Offset {
			continue
		}
		span := b.Offset - a.Offset
		if span <= 0 {
			return b.Color
		}
		return lerpNRGBA(a.Color, b.Color, (t-a.Offset)/span)
	}
	return last.Color
}

func lerpNRGBA(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerp8(a.R, b.R, t),
		G: lerp8(a.G, b.G, t),
		B: lerp8(a.B, b.B, t),
		A: lerp8(a.A, b.A, t),
	}
}

func lerp8(a, b uint8, t float64) uint8 {
	return clamp8(float64(a) + (float64(b)-float64(a))*t)
}

func clamp8(v float64) uint8 {
	return uint8(math.Max(0, math.Min(255, math.Round(v))))
}
