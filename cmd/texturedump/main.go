// Texture dump tool - writes every procedural texture to a PNG file, and
// optionally one rendered frame of an atom, for inspection.
//
// Usage: go run ./cmd/texturedump -dir textures -seed 7 -frame C
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/game"
	"github.com/pthm-cable/bohr/renderer"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	dir := flag.String("dir", "textures", "Output directory")
	seed := flag.Int64("seed", 1, "RNG seed for the normal map bumps")
	frame := flag.String("frame", "", "Also render one frame of this element (empty = textures only)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if err := os.MkdirAll(*dir, 0755); err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	paths, err := dumpTextures(cfg, *dir, *seed)
	if err != nil {
		slog.Error("failed to dump textures", "error", err)
		os.Exit(1)
	}
	for _, p := range paths {
		fmt.Printf("Texture written to: %s\n", p)
	}

	if *frame != "" {
		path := filepath.Join(*dir, fmt.Sprintf("frame_%s.png", *frame))
		if err := renderFrame(cfg, *frame, *seed, path); err != nil {
			slog.Error("failed to render frame", "error", err)
			os.Exit(1)
		}
		fmt.Printf("Frame rendered to: %s (%dx%d)\n", path, cfg.Screen.Width, cfg.Screen.Height)
	}
}

// dumpTextures generates the procedural images and writes one PNG per image.
func dumpTextures(cfg *config.Config, dir string, seed int64) ([]string, error) {
	images := renderer.GenerateImages(cfg, rand.New(rand.NewSource(seed)))

	var paths []string
	for _, n := range images.Named() {
		path := filepath.Join(dir, n.Name+".png")
		b := n.Image.Bounds()
		img := rl.NewImage(n.Image.Pix, int32(b.Dx()), int32(b.Dy()), 1, rl.UncompressedR8g8b8a8)
		if !rl.ExportImage(*img, path) {
			return paths, fmt.Errorf("exporting %s", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// renderFrame opens a hidden window and renders one frame of the element.
func renderFrame(cfg *config.Config, symbol string, seed int64, path string) error {
	g, err := game.NewGame(cfg, game.Options{Seed: seed, Element: symbol})
	if err != nil {
		return err
	}

	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Texture Dump")
	defer rl.CloseWindow()
	defer g.Unload()

	if err := g.Init(1); err != nil {
		return err
	}
	return g.Snapshot(path)
}
