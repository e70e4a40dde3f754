package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// SettingsPanel renders raygui sliders for live rendering tunables.
type SettingsPanel struct {
	renderer *Renderer
	sliders  []SliderDescriptor
	defaults []float32
	x, y     int32
	width    int32
	visible  bool
}

const buttonHeight = 24

// NewSettingsPanel creates a hidden settings panel. Current slider values are
// remembered as the defaults restored by the Reset button.
func NewSettingsPanel(x, y, width int32, sliders []SliderDescriptor) *SettingsPanel {
	defaults := make([]float32, len(sliders))
	for i, d := range sliders {
		defaults[i] = d.Get()
	}
	return &SettingsPanel{
		renderer: NewRenderer(),
		sliders:  sliders,
		defaults: defaults,
		x:        x,
		y:        y,
		width:    width,
		visible:  false,
	}
}

// SetPosition updates the panel position.
func (s *SettingsPanel) SetPosition(x, y int32) {
	s.x = x
	s.y = y
}

// SetVisible shows or hides the panel.
func (s *SettingsPanel) SetVisible(visible bool) {
	s.visible = visible
}

// IsVisible returns whether the panel is shown.
func (s *SettingsPanel) IsVisible() bool {
	return s.visible
}

// Toggle switches panel visibility.
func (s *SettingsPanel) Toggle() bool {
	s.visible = !s.visible
	return s.visible
}

// Height returns the panel height for the current slider list.
func (s *SettingsPanel) Height() int32 {
	t := s.renderer.Theme
	rows := int32(len(s.sliders))
	return t.Padding*2 + t.LineHeight + 2 + rows*(t.SliderHeight+t.Padding) + buttonHeight
}

// ResetDefaults restores every slider to its value at construction.
func (s *SettingsPanel) ResetDefaults() {
	for i, d := range s.sliders {
		d.Set(s.defaults[i])
	}
}

// Contains reports whether a screen point lies over the visible panel, so
// mouse drags there are not forwarded to the camera.
func (s *SettingsPanel) Contains(px, py float32) bool {
	if !s.visible {
		return false
	}
	return px >= float32(s.x) && px <= float32(s.x+s.width) &&
		py >= float32(s.y) && py <= float32(s.y+s.Height())
}

// Draw renders the panel and applies slider changes.
func (s *SettingsPanel) Draw() {
	if !s.visible {
		return
	}

	r := s.renderer
	t := r.Theme
	r.DrawPanel(s.x, s.y, s.width, s.Height())

	x := s.x + t.Padding
	y := r.DrawSectionHeader(x, s.y+t.Padding, "Settings")

	sliderX := float32(x + t.LabelWidth)
	sliderW := float32(s.width - t.LabelWidth - t.Padding*2 - 50)

	for _, d := range s.sliders {
		rl.DrawText(d.Label, x, y+2, t.FontSize, t.LabelColor)

		cur := d.Get()
		next := gui.SliderBar(
			rl.Rectangle{X: sliderX, Y: float32(y), Width: sliderW, Height: float32(t.SliderHeight)},
			"", "",
			cur, d.Min, d.Max,
		)
		if next = d.Clamp(next); next != cur {
			d.Set(next)
		}

		rl.DrawText(fmt.Sprintf(d.Format, d.Get()), int32(sliderX+sliderW)+6, y+2, t.FontSize, t.ValueColor)
		y += t.SliderHeight + t.Padding
	}

	if gui.Button(rl.Rectangle{X: float32(x), Y: float32(y), Width: 100, Height: buttonHeight}, "Reset") {
		s.ResetDefaults()
	}
}
