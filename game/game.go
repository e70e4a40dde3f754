// Package game owns the frame loop: input, camera, spin, rendering and
// window resize for one displayed atom.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/pthm-cable/bohr/atom"
	"github.com/pthm-cable/bohr/camera"
	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/renderer"
	"github.com/pthm-cable/bohr/telemetry"
	"github.com/pthm-cable/bohr/ui"
)

// Options configures a game session beyond the config file.
type Options struct {
	Seed      int64  // RNG seed for textures and stars
	Element   string // Initial element symbol (empty = config default)
	OutputDir string // Directory for CSV logs and config snapshot (empty = disabled)
	LogPerf   bool   // Emit perf summaries via slog
}

// Game holds the complete session state.
type Game struct {
	cfg *config.Config
	rng *rand.Rand

	// Scene content
	atom         *atom.Atom
	elementIndex int

	// View and rendering
	camera   *camera.Camera
	scene    *renderer.SceneRenderer
	composer *renderer.Composer

	// UI
	hud      *ui.HUD
	settings *ui.SettingsPanel

	// Telemetry
	perf    *telemetry.PerfCollector
	output  *telemetry.OutputManager
	logPerf bool

	// State
	paused          bool
	speedMultiplier float32
	frame           int64
	elapsed         float64

	// Window size in screen coordinates and the clamped device pixel ratio
	screenW, screenH float32
	pixelRatio       float32

	initialized bool
}

// NewGame creates a session and builds the initial atom. No GPU work happens
// here; call Init once the window exists.
func NewGame(cfg *config.Config, opts Options) (*Game, error) {
	symbol := opts.Element
	if symbol == "" {
		symbol = cfg.Atom.Element
	}
	index, ok := cfg.Derived.ElementIndex[normalizeSymbol(symbol)]
	if !ok {
		return nil, fmt.Errorf("unknown element %q", symbol)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if output != nil {
		if err := output.WriteConfig(cfg); err != nil {
			output.Close()
			return nil, err
		}
	}

	g := &Game{
		cfg:             cfg,
		rng:             rand.New(rand.NewSource(opts.Seed)),
		camera:          camera.New(cfg.Camera, cfg.Derived.ScreenW32, cfg.Derived.ScreenH32),
		scene:           renderer.NewSceneRenderer(cfg),
		composer:        renderer.NewComposer(cfg.Bloom, cfg.Tone),
		hud:             ui.NewHUD(hudWidth),
		perf:            telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow, cfg.Screen.TargetFPS),
		output:          output,
		logPerf:         opts.LogPerf,
		speedMultiplier: float32(cfg.Atom.SpeedMultiplier),
		screenW:         cfg.Derived.ScreenW32,
		screenH:         cfg.Derived.ScreenH32,
		pixelRatio:      1,
	}
	g.settings = ui.NewSettingsPanel(0, 10, settingsWidth, g.settingSliders())
	g.settings.SetPosition(int32(g.screenW)-settingsWidth-10, 10)
	g.composer.Resize(int32(g.screenW), int32(g.screenH))

	if err := g.setElement(index); err != nil {
		g.Unload()
		return nil, err
	}
	return g, nil
}

// Init compiles shaders, synthesizes textures and allocates render targets.
// Requires an open window.
func (g *Game) Init(devicePixelRatio float32) error {
	if g.initialized {
		return nil
	}
	if err := g.scene.Init(g.rng); err != nil {
		return fmt.Errorf("scene renderer: %w", err)
	}
	g.scene.SetAtom(g.atom)

	g.pixelRatio = PixelRatio(devicePixelRatio, float32(g.cfg.Screen.MaxPixelRatio))
	w, h := g.FramebufferSize()
	if err := g.composer.Init(w, h); err != nil {
		g.scene.Unload()
		return fmt.Errorf("composer: %w", err)
	}
	g.initialized = true

	slog.Info("renderer ready",
		"framebuffer", fmt.Sprintf("%dx%d", w, h),
		"pixel_ratio", g.pixelRatio,
		"lights", g.scene.LightCount(),
		"stars", g.scene.StarCount(),
	)
	return nil
}

// setElement replaces the displayed atom with the element preset at index i.
// The previous ECS world is dropped.
func (g *Game) setElement(i int) error {
	index, el := g.cfg.ElementAt(i)
	a, err := atom.Build(g.cfg, el)
	if err != nil {
		return fmt.Errorf("building %s: %w", el.Symbol, err)
	}
	g.atom = a
	g.elementIndex = index
	g.scene.SetAtom(a)

	g.recordEvent(telemetry.NewElementEvent(g.frame, g.elapsed, el.Symbol, el.Protons, el.Neutrons, a.Configuration()))
	return nil
}

// Update advances one frame: input, camera damping and shell spin.
func (g *Game) Update(dt float32) {
	g.perf.BeginFrame()

	g.perf.Phase(telemetry.PhaseInput)
	g.handleInput()

	g.perf.Phase(telemetry.PhaseCamera)
	g.camera.Update()

	g.perf.Phase(telemetry.PhaseSpin)
	g.step(dt)
}

// step advances the simulation clock and spins the shells unless paused.
func (g *Game) step(dt float32) {
	g.frame++
	g.elapsed += float64(dt)
	if !g.paused {
		g.atom.Spin(dt, g.speedMultiplier)
	}
}

// Resize propagates a new window size. The camera aspect becomes w/h and the
// render targets are resized to the size times the clamped pixel ratio.
// Returns false when nothing changed.
func (g *Game) Resize(w, h, devicePixelRatio float32) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	pr := PixelRatio(devicePixelRatio, float32(g.cfg.Screen.MaxPixelRatio))
	if w == g.screenW && h == g.screenH && pr == g.pixelRatio {
		return false
	}
	g.screenW, g.screenH, g.pixelRatio = w, h, pr

	g.camera.Resize(w, h)
	fw, fh := g.FramebufferSize()
	g.composer.Resize(fw, fh)
	g.settings.SetPosition(int32(w)-settingsWidth-10, 10)

	g.recordEvent(telemetry.NewResizeEvent(g.frame, g.elapsed, fw, fh))
	return true
}

// FramebufferSize returns the render target size for the current window.
func (g *Game) FramebufferSize() (int32, int32) {
	return int32(g.screenW * g.pixelRatio), int32(g.screenH * g.pixelRatio)
}

// Unload frees GPU resources and closes output files.
func (g *Game) Unload() {
	if g.initialized {
		g.composer.Unload()
		g.scene.Unload()
		g.initialized = false
	}
	if g.output != nil {
		if err := g.output.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
		g.output = nil
	}
}

// Frame returns the number of updated frames.
func (g *Game) Frame() int64 {
	return g.frame
}

// Atom returns the displayed atom.
func (g *Game) Atom() *atom.Atom {
	return g.atom
}

// Camera returns the orbit camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// Composer returns the post-process composer.
func (g *Game) Composer() *renderer.Composer {
	return g.composer
}

// Paused reports whether shell spin is paused.
func (g *Game) Paused() bool {
	return g.paused
}
