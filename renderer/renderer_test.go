package renderer

import (
	"bytes"
	"image/color"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/pthm-cable/bohr/atom"
	"github.com/pthm-cable/bohr/config"
)

func TestShaderSourceExpandsIncludes(t *testing.T) {
	for _, name := range []string{"pbr.fs", "unlit.fs", "bright.fs", "blur.fs", "composite.fs"} {
		src, err := shaderSource(name)
		if err != nil {
			t.Fatalf("shaderSource(%s): %v", name, err)
		}
		if strings.Contains(src, "#include") {
			t.Errorf("%s: include directive left in source", name)
		}
		if !strings.Contains(src, "vec3 decodeHDR") {
			t.Errorf("%s: encode helpers not pasted in", name)
		}
		if !strings.HasPrefix(src, "#version 330") {
			t.Errorf("%s: #version must stay on the first line", name)
		}
	}

	if _, err := shaderSource("missing.fs"); err == nil {
		t.Error("expected error for missing shader")
	}
}

func TestGenerateStars(t *testing.T) {
	cfg := config.StarsConfig{
		Count:     2000,
		MinRadius: 60,
		Spread:    250,
		Opacity:   0.9,
		Classes: []config.StarClass{
			{Threshold: 0.65, Color: [3]float64{1, 1, 1}},
			{Threshold: 0.80, Color: [3]float64{0.7, 0.85, 1}},
			{Threshold: 0.92, Color: [3]float64{1, 0.92, 0.75}},
			{Threshold: 1.00, Color: [3]float64{0.6, 0.7, 1}},
		},
	}
	stars := GenerateStars(cfg, rand.New(rand.NewSource(7)))
	if len(stars) != cfg.Count {
		t.Fatalf("got %d stars, want %d", len(stars), cfg.Count)
	}

	white := 0
	for i, s := range stars {
		r := math.Sqrt(float64(s.X*s.X + s.Y*s.Y + s.Z*s.Z))
		if r < 60-1e-3 || r > 310+1e-3 {
			t.Errorf("star %d at radius %.3f, want [60, 310]", i, r)
		}
		if s.Color.A != uint8(cfg.Opacity*255) {
			t.Errorf("star %d alpha = %d", i, s.Color.A)
		}
		if s.Color == (color.RGBA{R: 255, G: 255, B: 255, A: s.Color.A}) {
			white++
		}
	}

	// About 65% of stars land in the first class
	frac := float64(white) / float64(len(stars))
	if frac < 0.58 || frac > 0.72 {
		t.Errorf("white fraction = %.3f, want about 0.65", frac)
	}

	again := GenerateStars(cfg, rand.New(rand.NewSource(7)))
	if again[10] != stars[10] {
		t.Error("same seed should give the same starfield")
	}
}

func TestStarColorFallsBackToLastClass(t *testing.T) {
	classes := []config.StarClass{
		{Threshold: 0.5, Color: [3]float64{1, 0, 0}},
		{Threshold: 0.6, Color: [3]float64{0, 0, 1}},
	}
	if c := starColor(classes, 0.9); c.B != 255 || c.R != 0 {
		t.Errorf("roll above all thresholds gave %v, want last class", c)
	}
	if c := starColor(nil, 0.3); c.R != 255 || c.G != 255 || c.B != 255 {
		t.Errorf("no classes gave %v, want white", c)
	}
}

func TestCollectLights(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}
	el, _ := cfg.Element("Ne")
	a, err := atom.Build(cfg, el)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	studio := cfg.Lighting.Lights
	all := CollectLights(studio, a, 64)
	if want := len(studio) + 1 + a.Electrons(); len(all) != want {
		t.Errorf("got %d lights, want %d", len(all), want)
	}

	capped := CollectLights(studio, a, 5)
	if len(capped) != 5 {
		t.Fatalf("got %d lights, want 5", len(capped))
	}
	for i, l := range studio {
		if capped[i].Pos[0] != float32(l.Position[0]) {
			t.Errorf("light %d should be studio light, got %+v", i, capped[i])
		}
	}

	if got := CollectLights(studio, nil, 2); len(got) != 2 {
		t.Errorf("nil atom with max 2: got %d lights", len(got))
	}
}

func TestFlatten(t *testing.T) {
	lights := []Light{
		{Pos: [3]float32{1, 2, 3}, Color: [3]float32{4, 5, 6}, Range: 7, Decay: 2},
		{Pos: [3]float32{-1, -2, -3}, Color: [3]float32{0, 0, 1}, Range: 0, Decay: 1},
	}
	pos, col, falloff := flatten(lights)
	if len(pos) != 6 || len(col) != 6 || len(falloff) != 4 {
		t.Fatalf("lengths %d/%d/%d", len(pos), len(col), len(falloff))
	}
	if pos[3] != -1 || col[2] != 6 || falloff[1] != 2 || falloff[2] != 0 {
		t.Errorf("flatten misordered: %v %v %v", pos, col, falloff)
	}
}

func TestLinearColor(t *testing.T) {
	c := linearColor(color.RGBA{R: 255, G: 0, B: 128, A: 255}, 2)
	if math.Abs(float64(c[0]-2)) > 1e-5 {
		t.Errorf("red = %f, want 2", c[0])
	}
	if c[1] != 0 {
		t.Errorf("green = %f, want 0", c[1])
	}
	// sRGB mid grey is about 0.216 linear
	if math.Abs(float64(c[2]/2)-0.2158) > 1e-3 {
		t.Errorf("blue = %f, want about 0.43", c[2])
	}
}

func TestBloomSize(t *testing.T) {
	tests := []struct {
		w, h, down int32
		bw, bh     int32
	}{
		{1280, 720, 2, 640, 360},
		{2560, 1440, 2, 1280, 720},
		{1, 1, 4, 1, 1},
		{800, 600, 0, 800, 600},
	}
	for _, tt := range tests {
		bw, bh := BloomSize(tt.w, tt.h, tt.down)
		if bw != tt.bw || bh != tt.bh {
			t.Errorf("BloomSize(%d, %d, %d) = %d, %d; want %d, %d", tt.w, tt.h, tt.down, bw, bh, tt.bw, tt.bh)
		}
	}
}

func TestBlurStepGrows(t *testing.T) {
	prev := float32(0)
	for i := range blurIterations {
		s := BlurStep(0.65, i)
		if s <= prev {
			t.Errorf("pass %d step %f not larger than %f", i, s, prev)
		}
		prev = s
	}
	if BlurStep(0, 0) != 1 {
		t.Errorf("zero radius first pass = %f, want 1", BlurStep(0, 0))
	}
}

func TestComposerResizeBeforeInit(t *testing.T) {
	c := NewComposer(config.BloomConfig{Enabled: true, Downscale: 2}, config.ToneConfig{Exposure: 1.3})
	c.Resize(1600, 900)
	if w, h := c.Size(); w != 1600 || h != 900 {
		t.Errorf("size = %dx%d, want 1600x900", w, h)
	}
	c.Resize(0, 900)
	if w, _ := c.Size(); w != 1600 {
		t.Errorf("zero width resize should be ignored")
	}
}

func TestEnvLights(t *testing.T) {
	got := EnvLights([]config.PointLightConfig{
		{Color: "#ff0000", Intensity: 2, Range: 10, Position: [3]float64{1, 2, 3}},
	})
	if len(got) != 1 {
		t.Fatalf("got %d lights", len(got))
	}
	if got[0].Color.R != 255 || got[0].Position.Z != 3 || got[0].Range != 10 {
		t.Errorf("unexpected light %+v", got[0])
	}
}

func TestGenerateImages(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	a := GenerateImages(cfg, rand.New(rand.NewSource(3)))
	b := GenerateImages(cfg, rand.New(rand.NewSource(3)))

	sizes := map[string][2]int{
		"normal":        {cfg.Textures.NormalSize, cfg.Textures.NormalSize},
		"emissive":      {cfg.Textures.EmissiveSize, cfg.Textures.EmissiveSize},
		"nucleus_glow":  {cfg.Textures.GlowSize, cfg.Textures.GlowSize},
		"electron_glow": {cfg.Textures.GlowSize, cfg.Textures.GlowSize},
		"star":          {starSpriteSize, starSpriteSize},
		"environment":   {cfg.Textures.Environment.Width, cfg.Textures.Environment.Height},
	}

	named := a.Named()
	if len(named) != len(sizes) {
		t.Fatalf("Named() returned %d images, want %d", len(named), len(sizes))
	}
	for i, n := range named {
		want, ok := sizes[n.Name]
		if !ok {
			t.Errorf("unexpected image %q", n.Name)
			continue
		}
		bounds := n.Image.Bounds()
		if bounds.Dx() != want[0] || bounds.Dy() != want[1] {
			t.Errorf("%s: size %dx%d, want %dx%d", n.Name, bounds.Dx(), bounds.Dy(), want[0], want[1])
		}
		if !bytes.Equal(n.Image.Pix, b.Named()[i].Image.Pix) {
			t.Errorf("%s: differs between runs with the same seed", n.Name)
		}
	}
}

func TestGenTorusTubeRadius(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	sc := cfg.Shells

	tests := []struct {
		name   string
		radius float32
		tube   float32
	}{
		{"inner ring", float32(sc.BaseRadius), float32(sc.RingTube)},
		{"halo", float32(sc.BaseRadius), float32(sc.HaloTube)},
		{"outer shell ring", float32(sc.BaseRadius + 3*sc.Spacing), float32(sc.RingTube)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := GenTorus(tt.radius, tt.tube, sc.RingSegments, torusSides)
			want := (sc.RingSegments + 1) * (torusSides + 1)
			if g.VertexCount() != want {
				t.Fatalf("VertexCount = %d, want %d", g.VertexCount(), want)
			}
			if len(g.Indices) != sc.RingSegments*torusSides*6 {
				t.Errorf("len(Indices) = %d, want %d", len(g.Indices), sc.RingSegments*torusSides*6)
			}
			for i := 0; i < g.VertexCount(); i++ {
				x, y, z := float64(g.Vertices[i*3]), float64(g.Vertices[i*3+1]), float64(g.Vertices[i*3+2])
				// Distance from the tube's centre circle
				d := math.Hypot(math.Hypot(x, y)-float64(tt.radius), z)
				if math.Abs(d-float64(tt.tube)) > 1e-4 {
					t.Fatalf("vertex %d at tube distance %.5f, want %.5f", i, d, tt.tube)
				}
				nx, ny, nz := float64(g.Normals[i*3]), float64(g.Normals[i*3+1]), float64(g.Normals[i*3+2])
				if l := math.Sqrt(nx*nx + ny*ny + nz*nz); math.Abs(l-1) > 1e-4 {
					t.Fatalf("normal %d has length %.5f", i, l)
				}
			}
			for _, idx := range g.Indices {
				if int(idx) >= g.VertexCount() {
					t.Fatalf("index %d out of range", idx)
				}
			}
		})
	}
}
