package game

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/camera"
	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/telemetry"
	"github.com/pthm-cable/bohr/ui"
)

const (
	settingsWidth = 320
	hudWidth      = 260
)

const controlsLegend = "Drag: orbit | Wheel: zoom | Left/Right: element | Space: pause | B: bloom | Tab: settings | R: reset | F12: snapshot"

// Draw renders the frame: scene into the offscreen target, bloom and
// composite to the window, then the HUD on top.
func (g *Game) Draw() {
	if !g.initialized {
		return
	}

	g.perf.Phase(telemetry.PhaseScene)
	rl.SetClipPlanes(float64(g.camera.Near), float64(g.camera.Far))
	g.composer.BeginScene()
	g.scene.Draw(toRaylib(g.camera), projection(g.camera), g.atom)
	g.composer.EndScene()

	rl.BeginDrawing()
	rl.ClearBackground(g.scene.Background)

	g.perf.Phase(telemetry.PhaseBloom)
	g.composer.Render(g.screenW, g.screenH)

	g.perf.Phase(telemetry.PhaseHUD)
	g.drawUI()

	rl.EndDrawing()

	g.perf.Phase(telemetry.PhaseTelemetry)
	g.flushTelemetry()
	g.perf.EndFrame()
	g.perf.Present()
}

// Snapshot renders the current frame offscreen at window size and writes it
// as a PNG.
func (g *Game) Snapshot(path string) error {
	if !g.initialized {
		return fmt.Errorf("snapshot: renderer not initialized")
	}
	w, h := int32(g.screenW), int32(g.screenH)
	target := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target)

	rl.SetClipPlanes(float64(g.camera.Near), float64(g.camera.Far))
	g.composer.BeginScene()
	g.scene.Draw(toRaylib(g.camera), projection(g.camera), g.atom)
	g.composer.EndScene()

	rl.BeginTextureMode(target)
	rl.ClearBackground(g.scene.Background)
	g.composer.Render(float32(w), float32(h))
	rl.EndTextureMode()

	img := rl.LoadImageFromTexture(target.Texture)
	defer rl.UnloadImage(img)
	rl.ImageFlipVertical(img)
	if !rl.ExportImage(*img, path) {
		return fmt.Errorf("snapshot: exporting %s", path)
	}
	return nil
}

// drawUI renders the HUD, settings panel and control legend.
func (g *Game) drawUI() {
	_, el := g.cfg.ElementAt(g.elementIndex)
	g.hud.Draw(ui.HUDData{
		Title:     g.cfg.Screen.Title,
		Symbol:    el.Symbol,
		Name:      el.Name,
		Protons:   el.Protons,
		Neutrons:  el.Neutrons,
		Electrons: g.atom.Electrons(),
		Shells:    telemetry.FormatShells(g.atom.Configuration()),
		FPS:       rl.GetFPS(),
		Paused:    g.paused,
		Bloom:     g.composer.Enabled,
		Lights:    g.scene.LightCount(),
		Stars:     g.scene.StarCount(),
		Legend:    g.legend(),
	})
	g.settings.Draw()
	g.hud.DrawControls(int32(g.screenH), controlsLegend)
}

// legend maps the atom palette to HUD swatches.
func (g *Game) legend() []ui.Swatch {
	c := g.cfg.Colors
	return []ui.Swatch{
		{Label: "proton", Color: config.MustHex(c.Proton)},
		{Label: "neutron", Color: config.MustHex(c.Neutron)},
		{Label: "electron", Color: config.MustHex(c.Electron)},
	}
}

// settingSliders exposes the live tunables in the settings panel.
func (g *Game) settingSliders() []ui.SliderDescriptor {
	c := g.composer
	return []ui.SliderDescriptor{
		{
			ID: "bloom_strength", Label: "Bloom", Min: 0, Max: 2, Format: "%.2f",
			Get: func() float32 { return c.Strength },
			Set: func(v float32) { c.Strength = v },
		},
		{
			ID: "bloom_threshold", Label: "Threshold", Min: 0, Max: 1, Format: "%.2f",
			Get: func() float32 { return c.Threshold },
			Set: func(v float32) { c.Threshold = v },
		},
		{
			ID: "bloom_radius", Label: "Radius", Min: 0, Max: 1, Format: "%.2f",
			Get: func() float32 { return c.Radius },
			Set: func(v float32) { c.Radius = v },
		},
		{
			ID: "exposure", Label: "Exposure", Min: 0.1, Max: 3, Format: "%.2f",
			Get: func() float32 { return c.Exposure },
			Set: func(v float32) { c.Exposure = v },
		},
		{
			ID: "speed", Label: "Speed", Min: 0, Max: 5, Format: "%.1fx", Step: 0.1,
			Get: func() float32 { return g.speedMultiplier },
			Set: func(v float32) { g.speedMultiplier = v },
		},
	}
}

// toRaylib converts the orbit camera into a raylib perspective camera.
// projection builds the perspective matrix from the camera's own aspect
// ratio, which tracks the window rather than the render target.
func projection(c *camera.Camera) rl.Matrix {
	return rl.MatrixPerspective(c.FOV, c.Aspect, c.Near, c.Far)
}

func toRaylib(c *camera.Camera) rl.Camera3D {
	x, y, z := c.Position()
	return rl.Camera3D{
		Position:   rl.Vector3{X: x, Y: y, Z: z},
		Target:     rl.Vector3{X: c.TargetX, Y: c.TargetY, Z: c.TargetZ},
		Up:         rl.Vector3{X: 0, Y: 1, Z: 0},
		Fovy:       c.FOV,
		Projection: rl.CameraPerspective,
	}
}
