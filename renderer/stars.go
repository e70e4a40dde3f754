package renderer

import (
	"image/color"
	"math"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/config"
)

// Star is one point of the background starfield.
type Star struct {
	X, Y, Z float32
	Color   color.RGBA
}

// GenerateStars scatters stars in a spherical shell around the origin.
// Directions are uniform on the sphere; each star picks the first colour
// class whose threshold exceeds a uniform roll.
func GenerateStars(cfg config.StarsConfig, rng *rand.Rand) []Star {
	stars := make([]Star, cfg.Count)
	alpha := uint8(clamp01(cfg.Opacity) * 255)
	for i := range stars {
		r := cfg.MinRadius + rng.Float64()*cfg.Spread
		theta := rng.Float64() * 2 * math.Pi
		phi := math.Acos(2*rng.Float64() - 1)

		s := &stars[i]
		s.X = float32(r * math.Sin(phi) * math.Cos(theta))
		s.Y = float32(r * math.Sin(phi) * math.Sin(theta))
		s.Z = float32(r * math.Cos(phi))
		s.Color = starColor(cfg.Classes, rng.Float64())
		s.Color.A = alpha
	}
	return stars
}

func starColor(classes []config.StarClass, roll float64) color.RGBA {
	if len(classes) == 0 {
		return color.RGBA{R: 255, G: 255, B: 255, A: 255}
	}
	c := classes[len(classes)-1].Color
	for _, cl := range classes {
		if roll < cl.Threshold {
			c = cl.Color
			break
		}
	}
	return color.RGBA{
		R: uint8(clamp01(c[0]) * 255),
		G: uint8(clamp01(c[1]) * 255),
		B: uint8(clamp01(c[2]) * 255),
		A: 255,
	}
}

// Starfield draws the stars as small camera-facing sprites.
type Starfield struct {
	stars []Star
	size  float32
}

// NewStarfield creates a starfield from generated stars.
func NewStarfield(stars []Star, size float32) *Starfield {
	return &Starfield{stars: stars, size: size}
}

// Draw renders the stars. Depth writes are disabled so stars never occlude
// the atom; the caller sets the sprite shader.
func (s *Starfield) Draw(cam rl.Camera3D, sprite rl.Texture2D) {
	rl.DisableDepthMask()
	rl.BeginBlendMode(rl.BlendAlpha)
	for _, st := range s.stars {
		rl.DrawBillboard(cam, sprite, rl.Vector3{X: st.X, Y: st.Y, Z: st.Z}, s.size, rl.Color(st.Color))
	}
	rl.EndBlendMode()
	rl.EnableDepthMask()
}

// Len returns the number of stars.
func (s *Starfield) Len() int { return len(s.stars) }

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
