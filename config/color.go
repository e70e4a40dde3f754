package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// ParseHex parses "#rrggbb", "rrggbb" or "0xrrggbb" into an opaque colour.
func ParseHex(s string) (color.RGBA, error) {
	h := strings.TrimSpace(s)
	h = strings.TrimPrefix(h, "#")
	h = strings.TrimPrefix(strings.ToLower(h), "0x")
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("config: invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("config: invalid hex colour %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// MustHex is like ParseHex but panics on malformed input. Load rejects bad
// colours, so it is only safe on fields of a loaded Config.
func MustHex(s string) color.RGBA {
	c, err := ParseHex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// BaseColor is the material colour, or fallback when none is set.
func (m MaterialConfig) BaseColor(fallback color.RGBA) color.RGBA {
	if m.Color == "" {
		return fallback
	}
	return MustHex(m.Color)
}

// validateColors checks every hex colour field. Material colours may be
// empty.
func (c *Config) validateColors() error {
	type hexField struct{ name, value string }
	fields := []hexField{
		{"screen.background", c.Screen.Background},
		{"nucleus.glow.color", c.Nucleus.Glow.Color},
		{"nucleus.halo.color", c.Nucleus.Halo.Color},
		{"nucleus.light.color", c.Nucleus.Light.Color},
		{"electron.glow.color", c.Electron.Glow.Color},
		{"electron.light.color", c.Electron.Light.Color},
		{"shells.ring_color", c.Shells.RingColor},
		{"colors.proton", c.Colors.Proton},
		{"colors.neutron", c.Colors.Neutron},
		{"colors.electron", c.Colors.Electron},
		{"colors.orbit", c.Colors.Orbit},
		{"textures.environment.background", c.Textures.Environment.Background},
		{"lighting.ambient_color", c.Lighting.AmbientColor},
	}
	for _, m := range []struct {
		name string
		cfg  MaterialConfig
	}{
		{"nucleus.material.color", c.Nucleus.Material},
		{"electron.material.color", c.Electron.Material},
	} {
		if m.cfg.Color != "" {
			fields = append(fields, hexField{m.name, m.cfg.Color})
		}
	}
	for i, l := range c.Textures.Environment.Lights {
		fields = append(fields, hexField{fmt.Sprintf("textures.environment.lights[%d].color", i), l.Color})
	}
	for i, l := range c.Lighting.Lights {
		fields = append(fields, hexField{fmt.Sprintf("lighting.lights[%d].color", i), l.Color})
	}

	for _, f := range fields {
		if _, err := ParseHex(f.value); err != nil {
			return fmt.Errorf("config: %s: %w", f.name, err)
		}
	}
	return nil
}
