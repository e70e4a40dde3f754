package ui

import "testing"

func TestSliderClamp(t *testing.T) {
	d := SliderDescriptor{Min: 0, Max: 2}
	tests := []struct{ in, want float32 }{
		{-1, 0},
		{0.5, 0.5},
		{3, 2},
	}
	for _, tt := range tests {
		if got := d.Clamp(tt.in); got != tt.want {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}

	stepped := SliderDescriptor{Min: 0, Max: 1, Step: 0.25}
	if got := stepped.Clamp(0.6); got != 0.5 {
		t.Errorf("stepped Clamp(0.6) = %v, want 0.5", got)
	}
	if got := stepped.Clamp(0.9); got != 1 {
		t.Errorf("stepped Clamp(0.9) = %v, want 1", got)
	}
}

func TestSettingsPanelToggleAndContains(t *testing.T) {
	value := float32(0.3)
	sliders := []SliderDescriptor{
		{ID: "strength", Label: "Strength", Min: 0, Max: 2, Format: "%.2f",
			Get: func() float32 { return value }, Set: func(v float32) { value = v }},
		{ID: "radius", Label: "Radius", Min: 0, Max: 1, Format: "%.2f",
			Get: func() float32 { return value }, Set: func(v float32) { value = v }},
	}
	p := NewSettingsPanel(100, 50, 300, sliders)

	if p.IsVisible() {
		t.Fatal("panel should start hidden")
	}
	if p.Contains(150, 60) {
		t.Error("hidden panel should not capture the mouse")
	}
	if !p.Toggle() {
		t.Fatal("Toggle should show the panel")
	}
	if !p.Contains(150, 60) {
		t.Error("visible panel should contain a point inside it")
	}
	if p.Contains(50, 60) || p.Contains(150, float32(50+p.Height()+1)) {
		t.Error("point outside panel reported as inside")
	}

	short := NewSettingsPanel(0, 0, 300, sliders[:1])
	if short.Height() >= p.Height() {
		t.Errorf("panel with fewer sliders should be shorter: %d vs %d", short.Height(), p.Height())
	}
}

func TestSettingsPanelResetDefaults(t *testing.T) {
	exposure := float32(1.3)
	speed := float32(1)
	p := NewSettingsPanel(0, 0, 300, []SliderDescriptor{
		{ID: "exposure", Min: 0, Max: 3, Get: func() float32 { return exposure }, Set: func(v float32) { exposure = v }},
		{ID: "speed", Min: 0, Max: 5, Get: func() float32 { return speed }, Set: func(v float32) { speed = v }},
	})

	exposure, speed = 2.5, 4
	p.ResetDefaults()

	if exposure != 1.3 || speed != 1 {
		t.Errorf("after reset exposure=%v speed=%v, want 1.3 and 1", exposure, speed)
	}
}

func TestHUDRows(t *testing.T) {
	data := HUDData{
		Symbol: "Na", Name: "Sodium",
		Protons: 11, Neutrons: 12, Electrons: 11, Shells: "2-8-1",
		Bloom: true,
	}
	rows := data.Rows()
	if len(rows) != 7 {
		t.Fatalf("got %d rows, want 7", len(rows))
	}
	want := map[string]string{
		"Element":   "Na  Sodium",
		"Nucleus":   "11 p+  12 n",
		"Electrons": "11  (2-8-1)",
		"Bloom":     "on",
	}
	for _, r := range rows {
		if w, ok := want[r[0]]; ok && r[1] != w {
			t.Errorf("%s = %q, want %q", r[0], r[1], w)
		}
	}

	data.Paused = true
	if got := data.Rows(); got[len(got)-1] != [2]string{"Spin", "paused"} {
		t.Errorf("paused row missing: %v", got)
	}
}

func TestHUDHeight(t *testing.T) {
	h := NewHUD(260)
	th := h.renderer.Theme
	data := HUDData{}
	base := h.Height(data)

	data.Legend = []Swatch{{Label: "proton"}}
	if got := h.Height(data); got != base+th.LineHeight {
		t.Errorf("legend height = %d, want %d", got, base+th.LineHeight)
	}
	data.Paused = true
	if got := h.Height(data); got != base+2*th.LineHeight {
		t.Errorf("paused height = %d, want %d", got, base+2*th.LineHeight)
	}
}
