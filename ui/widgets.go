package ui

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer draws themed primitives shared by the HUD and the settings panel.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel fills a bordered rectangle.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader writes a header line and returns the Y below it.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue writes "label: value" with the value aligned to LabelWidth.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// Swatch is one legend entry.
type Swatch struct {
	Label string
	Color color.RGBA
}

// DrawLegend draws a filled circle and label per swatch on one row and
// returns the Y below the row.
func (r *Renderer) DrawLegend(x, y int32, swatches []Swatch) int32 {
	t := r.Theme
	radius := float32(t.FontSize) / 2
	cy := y + t.FontSize/2
	for _, s := range swatches {
		rl.DrawCircle(x+int32(radius), cy, radius, s.Color)
		x += int32(radius*2) + 4
		rl.DrawText(s.Label, x, y, t.FontSize, t.LabelColor)
		x += rl.MeasureText(s.Label, t.FontSize) + t.Padding
	}
	return y + t.LineHeight
}
