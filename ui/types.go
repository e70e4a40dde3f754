// Package ui draws the HUD and the settings panel over the rendered scene.
// Settings are described by slider descriptors so the panel layout follows
// whatever tunables the game exposes.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// SliderDescriptor defines one tunable shown in the settings panel.
type SliderDescriptor struct {
	ID     string         // Unique identifier
	Label  string         // Display label
	Min    float32        // Slider lower bound
	Max    float32        // Slider upper bound
	Format string         // Printf format for the value (e.g., "%.2f")
	Get    func() float32 // Reads the current value
	Set    func(float32)  // Applies a new value
	Step   float32        // Snap increment (0 = continuous)
}

// Clamp limits v to the slider range and snaps it to Step.
func (d SliderDescriptor) Clamp(v float32) float32 {
	if d.Step > 0 {
		v = d.Min + float32(int((v-d.Min)/d.Step+0.5))*d.Step
	}
	if v < d.Min {
		return d.Min
	}
	if v > d.Max {
		return d.Max
	}
	return v
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	SliderHeight   int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 10, G: 14, B: 28, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 90, B: 140, A: 255},
		SectionHeader:  rl.Color{R: 120, G: 210, B: 255, A: 255},
		LabelColor:     rl.LightGray,
		ValueColor:     rl.White,
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		SliderHeight:   16,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
