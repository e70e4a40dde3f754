// Package components defines ECS components for the atom model.
package components

import (
	"image/color"

	"github.com/pthm-cable/bohr/layout"
)

// Nucleon marks a nucleus particle.
type Nucleon struct {
	Index int
	Kind  layout.NucleonKind
}

// Electron marks an electron riding on a shell.
type Electron struct {
	Shell int     // index into the atom's shells
	Base  float32 // angle on the ring before any spin
}

// Shell describes one orbit ring. Tilt is in radians.
type Shell struct {
	Index  int
	Radius float32
	TiltX  float32
	TiltZ  float32
}

// Ring is the visual of a shell: a thin emissive torus wrapped in a faint
// additive halo.
type Ring struct {
	Tube         float32
	HaloTube     float32
	Color        color.RGBA
	Emissive     color.RGBA
	EmissiveGain float32
	Opacity      float32
	HaloOpacity  float32
	Roughness    float32
	Metalness    float32
	EnvIntensity float32
}

// Material holds physically based shading parameters for a sphere.
type Material struct {
	Base               color.RGBA
	Emissive           color.RGBA
	EmissiveIntensity  float32
	Roughness          float32
	Metalness          float32
	NormalScale        float32 // 0 = no normal map
	Clearcoat          float32
	ClearcoatRoughness float32
	EnvIntensity       float32
	Opacity            float32
}

// SpriteKind selects which procedural glow texture a sprite uses.
type SpriteKind uint8

const (
	SpriteNucleus SpriteKind = iota
	SpriteElectron
)

// Glow is a camera-facing additive sprite.
type Glow struct {
	Sprite  SpriteKind
	Tint    color.RGBA
	Scale   float32
	Opacity float32
}

// PointLight is a light with distance falloff.
type PointLight struct {
	Color     color.RGBA
	Intensity float32
	Range     float32 // 0 = infinite
	Decay     float32
}
