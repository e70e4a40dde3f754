package renderer

import (
	"image"
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/texture"
)

// TextureSet holds the procedural textures uploaded to the GPU.
type TextureSet struct {
	Normal       rl.Texture2D
	Emissive     rl.Texture2D
	NucleusGlow  rl.Texture2D
	ElectronGlow rl.Texture2D
	Star         rl.Texture2D
	Environment  rl.Texture2D
}

// starSpriteSize is small since stars cover a few pixels at most.
const starSpriteSize = 32

// ImageSet holds the procedural images before upload.
type ImageSet struct {
	Normal       *image.NRGBA
	Emissive     *image.NRGBA
	NucleusGlow  *image.NRGBA
	ElectronGlow *image.NRGBA
	Star         *image.NRGBA
	Environment  *image.NRGBA
}

// NamedImage pairs an image with a file-friendly name.
type NamedImage struct {
	Name  string
	Image *image.NRGBA
}

// GenerateImages synthesizes every procedural texture on the CPU.
func GenerateImages(cfg *config.Config, rng *rand.Rand) ImageSet {
	tc := cfg.Textures
	env := tc.Environment
	return ImageSet{
		Normal:       texture.NormalMap(tc.NormalSize, tc.NormalBumps, rng),
		Emissive:     texture.EmissiveMap(tc.EmissiveSize),
		NucleusGlow:  texture.GlowSprite(tc.GlowSize, tc.NucleusGlow[0], tc.NucleusGlow[1], tc.NucleusGlow[2]),
		ElectronGlow: texture.GlowSprite(tc.GlowSize, tc.ElectronGlow[0], tc.ElectronGlow[1], tc.ElectronGlow[2]),
		Star:         texture.GlowSprite(starSpriteSize, 255, 255, 255),
		Environment:  texture.EnvironmentMap(env.Width, env.Height, config.MustHex(env.Background), EnvLights(env.Lights), env.Blur),
	}
}

// Named lists the images in a stable order.
func (s ImageSet) Named() []NamedImage {
	return []NamedImage{
		{"normal", s.Normal},
		{"emissive", s.Emissive},
		{"nucleus_glow", s.NucleusGlow},
		{"electron_glow", s.ElectronGlow},
		{"star", s.Star},
		{"environment", s.Environment},
	}
}

// LoadTextures synthesizes every texture and uploads it.
// Must be called after the raylib window is created.
func LoadTextures(cfg *config.Config, rng *rand.Rand) TextureSet {
	images := GenerateImages(cfg, rng)
	set := TextureSet{
		Normal:       upload(images.Normal),
		Emissive:     upload(images.Emissive),
		NucleusGlow:  upload(images.NucleusGlow),
		ElectronGlow: upload(images.ElectronGlow),
		Star:         upload(images.Star),
		Environment:  upload(images.Environment),
	}
	rl.SetTextureWrap(set.Normal, rl.WrapRepeat)
	rl.SetTextureWrap(set.Environment, rl.WrapRepeat)
	return set
}

// EnvLights converts configured lights into environment map light sources.
func EnvLights(lights []config.PointLightConfig) []texture.EnvLight {
	out := make([]texture.EnvLight, len(lights))
	for i, l := range lights {
		out[i] = texture.EnvLight{
			Color:     config.MustHex(l.Color),
			Intensity: l.Intensity,
			Range:     l.Range,
			Position:  r3.Vec{X: l.Position[0], Y: l.Position[1], Z: l.Position[2]},
		}
	}
	return out
}

func upload(img image.Image) rl.Texture2D {
	var tex rl.Texture2D
	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*n.Rect.Dx() {
		// Straight alpha as generated; NewImageFromImage would premultiply
		b := n.Bounds()
		tex = rl.LoadTextureFromImage(rl.NewImage(n.Pix, int32(b.Dx()), int32(b.Dy()), 1, rl.UncompressedR8g8b8a8))
	} else {
		rlImg := rl.NewImageFromImage(img)
		tex = rl.LoadTextureFromImage(rlImg)
		rl.UnloadImage(rlImg)
	}
	rl.SetTextureFilter(tex, rl.FilterBilinear)
	return tex
}

// Unload frees all textures.
func (t TextureSet) Unload() {
	for _, tex := range []rl.Texture2D{t.Normal, t.Emissive, t.NucleusGlow, t.ElectronGlow, t.Star, t.Environment} {
		rl.UnloadTexture(tex)
	}
}
