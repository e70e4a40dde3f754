package renderer

import (
	"github.com/pthm-cable/bohr/atom"
	"github.com/pthm-cable/bohr/config"
)

// Light is a point light as uploaded to the material shader.
type Light struct {
	Pos   [3]float32
	Color [3]float32 // linear colour premultiplied by intensity
	Range float32
	Decay float32
}

// CollectLights gathers the studio rig followed by the atom's own lights,
// keeping at most max entries.
func CollectLights(studio []config.PointLightConfig, a *atom.Atom, max int) []Light {
	out := make([]Light, 0, max)
	for _, l := range studio {
		if len(out) >= max {
			return out
		}
		out = append(out, studioLight(l))
	}
	if a == nil {
		return out
	}

	query := a.Lights.Query()
	for query.Next() {
		if len(out) >= max {
			query.Close()
			break
		}
		tr, pl := query.Get()
		out = append(out, Light{
			Pos:   [3]float32{tr.X, tr.Y, tr.Z},
			Color: linearColor(pl.Color, pl.Intensity),
			Range: pl.Range,
			Decay: pl.Decay,
		})
	}
	return out
}

func studioLight(l config.PointLightConfig) Light {
	return Light{
		Pos:   [3]float32{float32(l.Position[0]), float32(l.Position[1]), float32(l.Position[2])},
		Color: linearColor(config.MustHex(l.Color), float32(l.Intensity)),
		Range: float32(l.Range),
		Decay: float32(l.Decay),
	}
}

// flatten packs lights into the parallel uniform arrays of the material shader.
func flatten(lights []Light) (pos, col, falloff []float32) {
	pos = make([]float32, 0, len(lights)*3)
	col = make([]float32, 0, len(lights)*3)
	falloff = make([]float32, 0, len(lights)*2)
	for _, l := range lights {
		pos = append(pos, l.Pos[:]...)
		col = append(col, l.Color[:]...)
		falloff = append(falloff, l.Range, l.Decay)
	}
	return pos, col, falloff
}
