package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/game"
)

func main() {
	configPath := flag.String("config", "", "YAML config merged over the built-in defaults")
	element := flag.String("element", "", "Initial element symbol (empty = use config)")
	outputDir := flag.String("output-dir", "", "Directory for perf.csv, events.csv and config.yaml (empty = off)")
	perfLog := flag.Bool("perf-log", false, "Output perf stats via slog")
	seed := flag.Int64("seed", 0, "RNG seed for textures and stars (0 = config, then time-based)")
	maxFrames := flag.Int64("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = cfg.Textures.Seed
	}
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGame(cfg, game.Options{
		Seed:      rngSeed,
		Element:   *element,
		OutputDir: *outputDir,
		LogPerf:   *perfLog,
	})
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}

	flags := uint32(rl.FlagWindowResizable | rl.FlagWindowHighdpi | rl.FlagVsyncHint)
	if cfg.Screen.MSAA {
		flags |= rl.FlagMsaa4xHint
	}
	rl.SetConfigFlags(flags)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	if err := g.Init(rl.GetWindowScaleDPI().X); err != nil {
		g.Unload()
		rl.CloseWindow()
		slog.Error("failed to initialize renderer", "error", err)
		os.Exit(1)
	}

	slog.Info("starting",
		"element", g.Atom().Element.Symbol,
		"seed", rngSeed,
		"max_frames", *maxFrames,
	)

	for !rl.WindowShouldClose() {
		g.Update(rl.GetFrameTime())
		g.Draw()

		if *maxFrames > 0 && g.Frame() >= *maxFrames {
			slog.Info("max frames reached", "frame", g.Frame())
			break
		}
	}

	g.Unload()
	rl.CloseWindow()
}
