package atom

import (
	"math"
	"testing"

	"github.com/mlange-42/ark/ecs"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/bohr/components"
	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/layout"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	return cfg
}

func build(t *testing.T, symbol string) *Atom {
	t.Helper()
	cfg := testConfig(t)
	el, err := cfg.Element(symbol)
	if err != nil {
		t.Fatalf("element %s: %v", symbol, err)
	}
	a, err := Build(cfg, el)
	if err != nil {
		t.Fatalf("Build(%s): %v", symbol, err)
	}
	return a
}

// nucleonFilter selects nucleons with their positions.
func nucleonFilter(a *Atom) *ecs.Filter2[components.Transform, components.Nucleon] {
	return ecs.NewFilter2[components.Transform, components.Nucleon](a.World)
}

func toVec(t components.Transform) r3.Vec {
	return r3.Vec{X: float64(t.X), Y: float64(t.Y), Z: float64(t.Z)}
}

func TestBuildCounts(t *testing.T) {
	tests := []struct {
		symbol    string
		nucleons  int
		electrons int
		config    []int
	}{
		{"H", 1, 1, []int{1}},
		{"C", 12, 6, []int{2, 4}},
		{"Ne", 20, 10, []int{2, 8}},
		{"Na", 23, 11, []int{2, 8, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.symbol, func(t *testing.T) {
			a := build(t, tt.symbol)
			if a.Nucleons() != tt.nucleons {
				t.Errorf("nucleons = %d, want %d", a.Nucleons(), tt.nucleons)
			}
			if a.Electrons() != tt.electrons {
				t.Errorf("electrons = %d, want %d", a.Electrons(), tt.electrons)
			}
			got := a.Configuration()
			if len(got) != len(tt.config) {
				t.Fatalf("configuration = %v, want %v", got, tt.config)
			}
			for i := range got {
				if got[i] != tt.config[i] {
					t.Errorf("configuration = %v, want %v", got, tt.config)
					break
				}
			}

			spheres := 0
			q := a.Spheres.Query()
			for q.Next() {
				spheres++
			}
			if spheres != tt.nucleons+tt.electrons {
				t.Errorf("sphere entities = %d, want %d", spheres, tt.nucleons+tt.electrons)
			}

			rings := 0
			rq := a.Rings.Query()
			for rq.Next() {
				rings++
			}
			if rings != len(tt.config) {
				t.Errorf("ring entities = %d, want %d", rings, len(tt.config))
			}

			lights := 0
			lq := a.Lights.Query()
			for lq.Next() {
				lights++
			}
			if lights != tt.electrons+1 {
				t.Errorf("light entities = %d, want %d", lights, tt.electrons+1)
			}
		})
	}
}

func TestNucleonTagging(t *testing.T) {
	a := build(t, "C")
	filter := nucleonFilter(a)
	q := filter.Query()
	protons, neutrons := 0, 0
	for q.Next() {
		tr, n := q.Get()
		if n.Index < a.Element.Protons && n.Kind != layout.Proton {
			t.Errorf("nucleon %d: kind %v, want proton", n.Index, n.Kind)
		}
		if n.Index >= a.Element.Protons && n.Kind != layout.Neutron {
			t.Errorf("nucleon %d: kind %v, want neutron", n.Index, n.Kind)
		}
		if n.Kind == layout.Proton {
			protons++
		} else {
			neutrons++
		}
		d := math.Sqrt(float64(tr.X*tr.X + tr.Y*tr.Y + tr.Z*tr.Z))
		if math.Abs(d-0.65) > 1e-5 {
			t.Errorf("nucleon %d at distance %.6f, want 0.65", n.Index, d)
		}
	}
	if protons != 6 || neutrons != 6 {
		t.Errorf("protons=%d neutrons=%d, want 6/6", protons, neutrons)
	}
}

func TestSpinAdvancesAngle(t *testing.T) {
	a := build(t, "Na")
	const dt = 0.1
	a.Spin(dt, 1)
	for i, sh := range a.Shells {
		want := math.Mod(sh.AngVel*dt+2*math.Pi, 2*math.Pi)
		if math.Abs(a.ShellAngle(i)-want) > 1e-5 {
			t.Errorf("shell %d angle = %.6f, want %.6f", i, a.ShellAngle(i), want)
		}
	}

	// Multiplier scales the step
	b := build(t, "Na")
	b.Spin(dt, 2)
	for i := range b.Shells {
		want := math.Mod(2*a.Shells[i].AngVel*dt+2*math.Pi, 2*math.Pi)
		if math.Abs(b.ShellAngle(i)-want) > 1e-5 {
			t.Errorf("shell %d angle x2 = %.6f, want %.6f", i, b.ShellAngle(i), want)
		}
	}
}

func TestSpinKeepsElectronsOnRing(t *testing.T) {
	a := build(t, "Ne")
	for range 50 {
		a.Spin(1.0/60, 1)
	}

	q := a.electronFilter.Query()
	for q.Next() {
		el, tr := q.Get()
		sh := a.Shells[el.Shell]
		p := toVec(*tr)
		if d := layout.DistanceFromAxis(p, sh.Axis()); math.Abs(d-sh.Radius) > 1e-4 {
			t.Errorf("electron on shell %d at axis distance %.5f, want %.5f", el.Shell, d, sh.Radius)
		}
	}
}

func TestSpinZeroDeltaIsStable(t *testing.T) {
	a := build(t, "C")
	before := positions(a)
	a.Spin(0, 1)
	after := positions(a)
	for i := range before {
		if before[i] != after[i] {
			t.Errorf("electron %d moved with dt=0: %v -> %v", i, before[i], after[i])
		}
	}
}

func TestExplicitShells(t *testing.T) {
	cfg := testConfig(t)
	el := config.ElementConfig{
		Symbol:    "X",
		Protons:   3,
		Neutrons:  4,
		Electrons: 3,
		Shells: []config.ShellConfig{
			{Radius: 2, Electrons: 2, Speed: 1},
			{Radius: 3.5, Electrons: 1, Speed: -0.5, Tilt: [2]float64{90, 0}},
		},
	}
	a, err := Build(cfg, el)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(a.Shells) != 2 || a.Shells[1].Radius != 3.5 {
		t.Fatalf("shells = %+v", a.Shells)
	}
	if math.Abs(a.Shells[1].TiltX-math.Pi/2) > 1e-9 {
		t.Errorf("tilt = %v, want π/2", a.Shells[1].TiltX)
	}

	el.Shells[0].Radius = 0
	if _, err := Build(cfg, el); err == nil {
		t.Error("expected error for zero shell radius")
	}
}

func TestWrapAngle(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{1, 1},
		{-1, 2*math.Pi - 1},
		{7, 7 - 2*math.Pi},
	}
	for _, tt := range tests {
		if got := wrapAngle(tt.in); math.Abs(float64(got-tt.want)) > 1e-5 {
			t.Errorf("wrapAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func positions(a *Atom) []components.Transform {
	var out []components.Transform
	q := a.electronFilter.Query()
	for q.Next() {
		_, tr := q.Get()
		out = append(out, *tr)
	}
	return out
}

func TestRingMaterial(t *testing.T) {
	a := build(t, "Na")
	sc := testConfig(t).Shells

	q := a.Rings.Query()
	for q.Next() {
		_, ring := q.Get()
		if ring.Tube != float32(sc.RingTube) || ring.HaloTube != float32(sc.HaloTube) {
			t.Errorf("tubes = %v/%v, want %v/%v", ring.Tube, ring.HaloTube, sc.RingTube, sc.HaloTube)
		}
		if ring.Metalness != 0.2 || ring.Roughness != 0.3 {
			t.Errorf("metalness/roughness = %v/%v, want 0.2/0.3", ring.Metalness, ring.Roughness)
		}
		if ring.EnvIntensity <= 0 {
			t.Errorf("EnvIntensity = %v, want positive", ring.EnvIntensity)
		}
	}
}
