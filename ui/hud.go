package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData is the per-frame state shown in the info panel.
type HUDData struct {
	Title     string
	Symbol    string
	Name      string
	Protons   int
	Neutrons  int
	Electrons int
	Shells    string // electron configuration, e.g. "2-8-1"
	FPS       int32
	Paused    bool
	Bloom     bool
	Lights    int
	Stars     int
	Legend    []Swatch
}

// Rows returns the label/value lines of the info panel in display order.
func (d HUDData) Rows() [][2]string {
	rows := [][2]string{
		{"Element", fmt.Sprintf("%s  %s", d.Symbol, d.Name)},
		{"Nucleus", fmt.Sprintf("%d p+  %d n", d.Protons, d.Neutrons)},
		{"Electrons", fmt.Sprintf("%d  (%s)", d.Electrons, d.Shells)},
		{"Lights", fmt.Sprint(d.Lights)},
		{"Stars", fmt.Sprint(d.Stars)},
		{"Bloom", onOff(d.Bloom)},
		{"FPS", fmt.Sprint(d.FPS)},
	}
	if d.Paused {
		rows = append(rows, [2]string{"Spin", "paused"})
	}
	return rows
}

// HUD draws the info panel in the top-left corner.
type HUD struct {
	renderer *Renderer
	width    int32
}

// NewHUD creates a HUD whose panel is width pixels wide.
func NewHUD(width int32) *HUD {
	return &HUD{renderer: NewRenderer(), width: width}
}

// Height is the panel height for data.
func (h *HUD) Height(data HUDData) int32 {
	t := h.renderer.Theme
	lines := int32(len(data.Rows()))
	if len(data.Legend) > 0 {
		lines++
	}
	return t.Padding*2 + t.LineHeight + 2 + lines*t.LineHeight
}

// Draw renders the info panel.
func (h *HUD) Draw(data HUDData) {
	r := h.renderer
	t := r.Theme
	x, y := t.Padding, t.Padding
	r.DrawPanel(x, y, h.width, h.Height(data))

	x += t.Padding
	y = r.DrawSectionHeader(x, y+t.Padding, data.Title)
	for _, row := range data.Rows() {
		y = r.DrawLabelValue(x, y, row[0], row[1])
	}
	if len(data.Legend) > 0 {
		r.DrawLegend(x, y, data.Legend)
	}
}

// DrawControls renders the key legend along the bottom edge.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	t := h.renderer.Theme
	rl.DrawText(controls, t.Padding, screenHeight-t.FontSize-t.Padding, t.FontSize, rl.Gray)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
