package atom

import (
	"fmt"

	"github.com/pthm-cable/bohr/components"
	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/layout"
)

// ShellsFor returns the shells of an element: its explicit shell list if it
// has one, otherwise the Bohr filling of its electrons.
func ShellsFor(cfg *config.Config, el config.ElementConfig) ([]layout.Shell, error) {
	if len(el.Shells) == 0 {
		sc := cfg.Shells
		return layout.Shells(el.Electrons, layout.ShellParams{
			Capacities:   sc.Capacities,
			BaseRadius:   sc.BaseRadius,
			Spacing:      sc.Spacing,
			BaseSpeed:    sc.BaseSpeed,
			SpeedFalloff: sc.SpeedFalloff,
			Alternate:    sc.Alternate,
			Tilts:        sc.Tilts,
		})
	}

	shells := make([]layout.Shell, len(el.Shells))
	for i, s := range el.Shells {
		if s.Radius <= 0 || s.Electrons < 0 {
			return nil, fmt.Errorf("atom: element %s shell %d is invalid", el.Symbol, i)
		}
		shells[i] = layout.Shell{
			Index:     i,
			Radius:    s.Radius,
			Electrons: s.Electrons,
			AngVel:    s.Speed,
			TiltX:     degToRad(s.Tilt[0]),
			TiltZ:     degToRad(s.Tilt[1]),
		}
	}
	return shells, nil
}

// createNucleus spawns the nucleons, the two nucleus glows and the central light.
func (a *Atom) createNucleus(cfg *config.Config) error {
	nc := cfg.Nucleus
	nucleons, err := layout.Nucleus(a.Element.Protons, a.Element.Neutrons, nc.ClusterScale)
	if err != nil {
		return fmt.Errorf("placing nucleus: %w", err)
	}

	proton := config.MustHex(cfg.Colors.Proton)
	neutron := config.MustHex(cfg.Colors.Neutron)
	body := components.Body{Radius: float32(nc.ParticleRadius)}

	for _, n := range nucleons {
		c := neutron
		if n.Kind == layout.Proton {
			c = proton
		}
		tr := toTransform(n.Pos)
		mat := materialFrom(nc.Material, c, c)
		nu := components.Nucleon{Index: n.Index, Kind: n.Kind}
		a.nucleonMap.NewEntity(&tr, &body, &mat, &nu)
	}

	origin := components.Transform{}
	for _, gc := range []config.GlowConfig{nc.Glow, nc.Halo} {
		glow := glowFrom(gc, components.SpriteNucleus)
		a.glowMap.NewEntity(&origin, &glow)
	}
	light := lightFrom(nc.Light)
	a.lightMap.NewEntity(&origin, &light)

	a.nucleons = len(nucleons)
	return nil
}

// createShell spawns a shell entity with its ring visual and the electrons
// riding on it.
func (a *Atom) createShell(cfg *config.Config, sh layout.Shell) error {
	bases, err := layout.Ring(sh.Electrons, sh.Radius)
	if err != nil {
		return fmt.Errorf("placing shell %d: %w", sh.Index, err)
	}

	sc := cfg.Shells
	shell := components.Shell{
		Index:  sh.Index,
		Radius: float32(sh.Radius),
		TiltX:  float32(sh.TiltX),
		TiltZ:  float32(sh.TiltZ),
	}
	spin := components.Spin{AngVel: float32(sh.AngVel)}
	ring := components.Ring{
		Tube:         float32(sc.RingTube),
		HaloTube:     float32(sc.HaloTube),
		Color:        config.MustHex(sc.RingColor),
		Emissive:     config.MustHex(cfg.Colors.Orbit),
		EmissiveGain: float32(sc.RingEmissive),
		Opacity:      float32(sc.RingOpacity),
		HaloOpacity:  float32(sc.HaloOpacity),
		Roughness:    float32(sc.RingRoughness),
		Metalness:    float32(sc.RingMetalness),
		EnvIntensity: float32(sc.RingEnvIntensity),
	}
	a.shellMap.NewEntity(&shell, &spin, &ring)

	ec := cfg.Electron
	body := components.Body{Radius: float32(ec.Radius)}
	for i, p := range bases {
		tr := toTransform(sh.Orientation().Rotate(p))
		mat := materialFrom(ec.Material, ec.Material.BaseColor(config.MustHex(cfg.Colors.Electron)), config.MustHex(cfg.Colors.Electron))
		el := components.Electron{Shell: sh.Index, Base: float32(layout.RingAngle(i, sh.Electrons))}
		glow := glowFrom(ec.Glow, components.SpriteElectron)
		light := lightFrom(ec.Light)
		a.electronMap.NewEntity(&tr, &body, &mat, &el, &glow, &light)
	}

	a.electrons += len(bases)
	return nil
}
