package texture

import (
	"image"
	"image/color"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// EnvLight is a coloured point light in the environment scene.
type EnvLight struct {
	Color     color.RGBA
	Intensity float64
	Range     float64 // 0 = no cutoff
	Position  r3.Vec
}

// EnvironmentMap renders an equirectangular image of a light-only scene as
// seen from the origin: a solid background plus a soft lobe towards each
// light. Blur widens the lobes, standing in for a prefiltered radiance map.
//
// Columns map to longitude [-π, π) and rows to polar angle [0, π] from +Y.
func EnvironmentMap(width, height int, background color.RGBA, lights []EnvLight, blur float64) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	if blur <= 0 {
		blur = 1
	}
	sharpness := 12 / blur

	type lobe struct {
		dir    r3.Vec
		weight float64
		rgb    [3]float64
	}
	lobes := make([]lobe, 0, len(lights))
	for _, l := range lights {
		dist := r3.Norm(l.Position)
		if dist == 0 {
			continue
		}
		lobes = append(lobes, lobe{
			dir:    r3.Scale(1/dist, l.Position),
			weight: l.Intensity * rangeFalloff(dist, l.Range) * 0.1,
			rgb:    [3]float64{float64(l.Color.R) / 255, float64(l.Color.G) / 255, float64(l.Color.B) / 255},
		})
	}

	bg := [3]float64{float64(background.R) / 255, float64(background.G) / 255, float64(background.B) / 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dir := EquirectDirection(x, y, width, height)
			var acc [3]float64
			for _, lb := range lobes {
				k := math.Max(0, r3.Dot(dir, lb.dir))
				k = math.Pow(k, sharpness) * lb.weight
				for c := range acc {
					acc[c] += lb.rgb[c] * k
				}
			}
			var px [3]uint8
			for c := range acc {
				// Reinhard keeps hot lobes from clipping to flat white
				px[c] = clamp8((bg[c] + acc[c]/(1+acc[c])) * 255)
			}
			img.SetNRGBA(x, y, color.NRGBA{R: px[0], G: px[1], B: px[2], A: 255})
		}
	}
	return img
}

// EquirectDirection returns the unit direction sampled by pixel (x, y).
func EquirectDirection(x, y, width, height int) r3.Vec {
	u := (float64(x) + 0.5) / float64(width)
	v := (float64(y) + 0.5) / float64(height)
	phi := u*2*math.Pi - math.Pi
	theta := v * math.Pi
	return r3.Vec{
		X: math.Sin(theta) * math.Cos(phi),
		Y: math.Cos(theta),
		Z: math.Sin(theta) * math.Sin(phi),
	}
}

// rangeFalloff fades a light smoothly to zero at its range.
func rangeFalloff(dist, rng float64) float64 {
	if rng <= 0 {
		return 1
	}
	f := math.Max(0, 1-dist/rng)
	return f * f
}
