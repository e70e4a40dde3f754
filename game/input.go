package game

import (
	"fmt"
	"log/slog"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/telemetry"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeySpace) {
		g.togglePause()
	}
	if rl.IsKeyPressed(rl.KeyB) {
		g.toggleBloom()
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.settings.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyRight) {
		g.cycleElement(1)
	}
	if rl.IsKeyPressed(rl.KeyLeft) {
		g.cycleElement(-1)
	}
	if rl.IsKeyPressed(rl.KeyF12) {
		g.saveSnapshot()
	}

	// Camera controls
	g.handleCameraInput()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	g.Resize(w, h, rl.GetWindowScaleDPI().X)
}

// handleCameraInput processes orbit and zoom controls.
func (g *Game) handleCameraInput() {
	mouse := rl.GetMousePosition()
	overPanel := g.settings.Contains(mouse.X, mouse.Y)

	if rl.IsMouseButtonDown(rl.MouseButtonLeft) && !overPanel {
		delta := rl.GetMouseDelta()
		g.camera.Rotate(delta.X, delta.Y)
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 && !overPanel {
		g.camera.Zoom(wheel)
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.camera.Reset()
		g.recordEvent(telemetry.NewEvent(telemetry.EventCameraReset, g.frame, g.elapsed))
	}
}

// cycleElement moves through the element presets by delta, wrapping.
func (g *Game) cycleElement(delta int) {
	if err := g.setElement(g.elementIndex + delta); err != nil {
		slog.Error("failed to switch element", "error", err)
	}
}

// saveSnapshot writes the current frame next to the session output.
func (g *Game) saveSnapshot() {
	dir := "."
	if g.output != nil {
		dir = g.output.Dir()
	}
	_, el := g.cfg.ElementAt(g.elementIndex)
	path := filepath.Join(dir, fmt.Sprintf("bohr_%s_%06d.png", el.Symbol, g.frame))
	if err := g.Snapshot(path); err != nil {
		slog.Error("failed to save snapshot", "error", err)
		return
	}
	slog.Info("snapshot saved", "path", path)
}

func (g *Game) togglePause() {
	g.paused = !g.paused
	typ := telemetry.EventResumed
	if g.paused {
		typ = telemetry.EventPaused
	}
	g.recordEvent(telemetry.NewEvent(typ, g.frame, g.elapsed))
}

func (g *Game) toggleBloom() {
	g.composer.Enabled = !g.composer.Enabled
	typ := telemetry.EventBloomOff
	if g.composer.Enabled {
		typ = telemetry.EventBloomOn
	}
	g.recordEvent(telemetry.NewEvent(typ, g.frame, g.elapsed))
}
