package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Nucleus.ClusterScale != 0.65 {
		t.Errorf("expected cluster scale 0.65, got %f", cfg.Nucleus.ClusterScale)
	}
	if cfg.Stars.Count != 5000 {
		t.Errorf("expected 5000 stars, got %d", cfg.Stars.Count)
	}
	if cfg.Camera.MinDistance != 4 || cfg.Camera.MaxDistance != 40 {
		t.Errorf("expected distance range [4, 40], got [%f, %f]", cfg.Camera.MinDistance, cfg.Camera.MaxDistance)
	}
	if len(cfg.Lighting.Lights) != 3 {
		t.Errorf("expected 3 studio lights, got %d", len(cfg.Lighting.Lights))
	}
	if cfg.Derived.Aspect != float32(1280)/float32(720) {
		t.Errorf("unexpected derived aspect %f", cfg.Derived.Aspect)
	}
}

func TestNeutralElectronsDefaultToProtons(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	for _, el := range cfg.Elements {
		if el.Electrons != el.Protons {
			t.Errorf("%s: expected %d electrons, got %d", el.Symbol, el.Protons, el.Electrons)
		}
	}
}

func TestElementLookup(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	el, err := cfg.Element("ne")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if el.Protons != 10 {
		t.Errorf("expected neon to have 10 protons, got %d", el.Protons)
	}

	if _, err := cfg.Element("Xx"); err == nil {
		t.Error("expected error for unknown element")
	}

	// Wraps in both directions
	n := len(cfg.Elements)
	if i, _ := cfg.ElementAt(-1); i != n-1 {
		t.Errorf("expected index %d, got %d", n-1, i)
	}
	if i, _ := cfg.ElementAt(n); i != 0 {
		t.Errorf("expected index 0, got %d", i)
	}
}

func TestUserFileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("bloom:\n  strength: 0.9\natom:\n  element: O\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading config: %v", err)
	}

	if cfg.Bloom.Strength != 0.9 {
		t.Errorf("expected overridden strength 0.9, got %f", cfg.Bloom.Strength)
	}
	// Untouched siblings keep their defaults
	if cfg.Bloom.Threshold != 0.1 {
		t.Errorf("expected default threshold 0.1, got %f", cfg.Bloom.Threshold)
	}
	if cfg.Atom.Element != "O" {
		t.Errorf("expected element O, got %s", cfg.Atom.Element)
	}
}

func TestLoadRejectsNegativeCounts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("elements:\n  - {symbol: X, protons: -1, neutrons: 0}\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for negative proton count")
	}
}

func TestLoadRejectsBadColour(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		field string
	}{
		{"short proton", "colors: {proton: \"#ee22\"}\n", "colors.proton"},
		{"ring colour", "shells: {ring_color: \"blue\"}\n", "shells.ring_color"},
		{"background", "screen: {background: \"#02021z\"}\n", "screen.background"},
		{"electron material", "electron: {material: {color: \"#ffff\"}}\n", "electron.material.color"},
		{"studio light", "lighting: {lights: [{color: \"red\"}]}\n", "lighting.lights[0].color"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("writing config: %v", err)
			}
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected error for malformed colour")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not name %s", err, tt.field)
			}
		})
	}
}

func TestMustHexPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for malformed colour")
		}
	}()
	MustHex("#ee22")
}

func TestMaterialBaseColor(t *testing.T) {
	fallback := MustHex("#00ddff")
	if got := (MaterialConfig{}).BaseColor(fallback); got != fallback {
		t.Errorf("empty colour: got %v, want fallback %v", got, fallback)
	}
	if got := (MaterialConfig{Color: "#ffffff"}).BaseColor(fallback); got != MustHex("#ffffff") {
		t.Errorf("explicit colour: got %v", got)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing snapshot: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading snapshot: %v", err)
	}
	if reloaded.Tone.Exposure != cfg.Tone.Exposure {
		t.Errorf("expected exposure %f, got %f", cfg.Tone.Exposure, reloaded.Tone.Exposure)
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		r, g, b uint8
		wantErr bool
	}{
		{"#ee2233", 0xee, 0x22, 0x33, false},
		{"0x8833dd", 0x88, 0x33, 0xdd, false},
		{"00DDFF", 0x00, 0xdd, 0xff, false},
		{"#fff", 0, 0, 0, true},
		{"#gggggg", 0, 0, 0, true},
	}

	for _, tc := range tests {
		c, err := ParseHex(tc.in)
		if tc.wantErr {
			if err == nil {
				t.Errorf("%q: expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: unexpected error %v", tc.in, err)
			continue
		}
		if c.R != tc.r || c.G != tc.g || c.B != tc.b || c.A != 255 {
			t.Errorf("%q: got %v", tc.in, c)
		}
	}
}
