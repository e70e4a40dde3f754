// Package atom builds the object graph of a Bohr atom as ECS entities and
// advances the per-frame shell rotation.
package atom

import (
	"fmt"
	"image/color"
	"math"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bohr/components"
	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/layout"
)

// nucleusExtras counts the warm glow, the white halo and the central light.
const nucleusExtras = 3

// Atom owns the ECS world holding one element's nucleus and shells.
type Atom struct {
	World   *ecs.World
	Element config.ElementConfig
	Shells  []layout.Shell

	// Entity mappers per archetype
	nucleonMap *ecs.Map4[
		components.Transform,
		components.Body,
		components.Material,
		components.Nucleon,
	]
	electronMap *ecs.Map6[
		components.Transform,
		components.Body,
		components.Material,
		components.Electron,
		components.Glow,
		components.PointLight,
	]
	shellMap *ecs.Map3[components.Shell, components.Spin, components.Ring]
	glowMap  *ecs.Map2[components.Transform, components.Glow]
	lightMap *ecs.Map2[components.Transform, components.PointLight]

	// Filters used by the spin system and the renderer
	shellFilter    *ecs.Filter2[components.Shell, components.Spin]
	electronFilter *ecs.Filter2[components.Electron, components.Transform]

	Spheres         *ecs.Filter3[components.Transform, components.Body, components.Material]
	NucleonSpheres  *ecs.Filter4[components.Transform, components.Body, components.Material, components.Nucleon]
	ElectronSpheres *ecs.Filter4[components.Transform, components.Body, components.Material, components.Electron]
	Glows           *ecs.Filter2[components.Transform, components.Glow]
	Lights          *ecs.Filter2[components.Transform, components.PointLight]
	Rings           *ecs.Filter2[components.Shell, components.Ring]

	angles    []float64 // current spin per shell index
	nucleons  int
	electrons int
}

// Build creates a fresh world populated with the given element.
func Build(cfg *config.Config, el config.ElementConfig) (*Atom, error) {
	shells, err := ShellsFor(cfg, el)
	if err != nil {
		return nil, err
	}

	world := ecs.NewWorld()
	a := &Atom{
		World:   world,
		Element: el,
		Shells:  shells,
		nucleonMap: ecs.NewMap4[
			components.Transform,
			components.Body,
			components.Material,
			components.Nucleon,
		](world),
		electronMap: ecs.NewMap6[
			components.Transform,
			components.Body,
			components.Material,
			components.Electron,
			components.Glow,
			components.PointLight,
		](world),
		shellMap:       ecs.NewMap3[components.Shell, components.Spin, components.Ring](world),
		glowMap:        ecs.NewMap2[components.Transform, components.Glow](world),
		lightMap:       ecs.NewMap2[components.Transform, components.PointLight](world),
		shellFilter:    ecs.NewFilter2[components.Shell, components.Spin](world),
		electronFilter: ecs.NewFilter2[components.Electron, components.Transform](world),
		Spheres:        ecs.NewFilter3[components.Transform, components.Body, components.Material](world),
		NucleonSpheres: ecs.NewFilter4[
			components.Transform,
			components.Body,
			components.Material,
			components.Nucleon,
		](world),
		ElectronSpheres: ecs.NewFilter4[
			components.Transform,
			components.Body,
			components.Material,
			components.Electron,
		](world),
		Glows:  ecs.NewFilter2[components.Transform, components.Glow](world),
		Lights: ecs.NewFilter2[components.Transform, components.PointLight](world),
		Rings:  ecs.NewFilter2[components.Shell, components.Ring](world),
		angles: make([]float64, len(shells)),
	}

	if err := a.createNucleus(cfg); err != nil {
		return nil, fmt.Errorf("building %s: %w", el.Symbol, err)
	}
	for _, sh := range shells {
		if err := a.createShell(cfg, sh); err != nil {
			return nil, fmt.Errorf("building %s: %w", el.Symbol, err)
		}
	}
	return a, nil
}

// Spin advances every shell by its angular velocity times dt times
// multiplier, then moves the electrons to their new ring positions.
func (a *Atom) Spin(dt, multiplier float32) {
	query := a.shellFilter.Query()
	for query.Next() {
		shell, spin := query.Get()
		spin.Angle = wrapAngle(spin.Angle + spin.AngVel*dt*multiplier)
		a.angles[shell.Index] = float64(spin.Angle)
	}

	eq := a.electronFilter.Query()
	for eq.Next() {
		el, tr := eq.Get()
		sh := a.Shells[el.Shell]
		*tr = toTransform(sh.ElectronPosition(float64(el.Base), a.angles[el.Shell]))
	}
}

// ShellAngle returns the current spin of shell i.
func (a *Atom) ShellAngle(i int) float64 {
	return a.angles[i]
}

// Nucleons returns the number of nucleon entities.
func (a *Atom) Nucleons() int { return a.nucleons }

// Electrons returns the number of electron entities.
func (a *Atom) Electrons() int { return a.electrons }

// Configuration returns the electron count per shell, e.g. [2 8 1].
func (a *Atom) Configuration() []int {
	out := make([]int, len(a.Shells))
	for i, s := range a.Shells {
		out[i] = s.Electrons
	}
	return out
}

// EntityCount returns the number of entities in the world: nucleons,
// electrons, shells, the two nucleus glows and the nucleus light.
func (a *Atom) EntityCount() int {
	return a.nucleons + a.electrons + len(a.Shells) + nucleusExtras
}

func toTransform(v r3.Vec) components.Transform {
	return components.Transform{X: float32(v.X), Y: float32(v.Y), Z: float32(v.Z)}
}

func materialFrom(mc config.MaterialConfig, base, emissive color.RGBA) components.Material {
	return components.Material{
		Base:               base,
		Emissive:           emissive,
		EmissiveIntensity:  float32(mc.EmissiveIntensity),
		Roughness:          float32(mc.Roughness),
		Metalness:          float32(mc.Metalness),
		NormalScale:        float32(mc.NormalScale),
		Clearcoat:          float32(mc.Clearcoat),
		ClearcoatRoughness: float32(mc.ClearcoatRoughness),
		EnvIntensity:       float32(mc.EnvIntensity),
		Opacity:            float32(mc.Opacity),
	}
}

func glowFrom(gc config.GlowConfig, kind components.SpriteKind) components.Glow {
	return components.Glow{
		Sprite:  kind,
		Tint:    config.MustHex(gc.Color),
		Scale:   float32(gc.Scale),
		Opacity: float32(gc.Opacity),
	}
}

func lightFrom(lc config.PointLightConfig) components.PointLight {
	return components.PointLight{
		Color:     config.MustHex(lc.Color),
		Intensity: float32(lc.Intensity),
		Range:     float32(lc.Range),
		Decay:     float32(lc.Decay),
	}
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}

// wrapAngle keeps accumulated spin in [0, 2π) so float32 precision holds up
// over long sessions.
func wrapAngle(a float32) float32 {
	const twoPi = 2 * math.Pi
	r := float32(math.Mod(float64(a), twoPi))
	if r < 0 {
		r += twoPi
	}
	return r
}
