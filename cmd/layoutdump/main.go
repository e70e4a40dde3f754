// Layout dump tool - writes the nucleon and electron placement of an element
// as CSV (kind,index,shell,x,y,z). Electrons are placed at zero spin.
//
// Usage: go run ./cmd/layoutdump -element Na -out na.csv
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/bohr/atom"
	"github.com/pthm-cable/bohr/config"
	"github.com/pthm-cable/bohr/layout"
)

// Row is one placed particle.
type Row struct {
	Kind  string  `csv:"kind"`
	Index int     `csv:"index"`
	Shell int     `csv:"shell"` // -1 for nucleons
	X     float64 `csv:"x"`
	Y     float64 `csv:"y"`
	Z     float64 `csv:"z"`
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	element := flag.String("element", "", "Element symbol (empty = use config)")
	outPath := flag.String("out", "", "Output CSV path (empty = stdout)")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	symbol := *element
	if symbol == "" {
		symbol = cfg.Atom.Element
	}

	if err := run(cfg, symbol, *outPath); err != nil {
		slog.Error("failed to dump layout", "element", symbol, "error", err)
		os.Exit(1)
	}
}

// run writes the layout to path, or to stdout when path is empty.
func run(cfg *config.Config, symbol, path string) (err error) {
	if path == "" {
		return dump(cfg, symbol, os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return dump(cfg, symbol, f)
}

// dump writes the layout of one element as CSV.
func dump(cfg *config.Config, symbol string, w io.Writer) error {
	el, err := cfg.Element(symbol)
	if err != nil {
		return err
	}
	rows, err := layoutRows(cfg, el)
	if err != nil {
		return err
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

// layoutRows places every nucleon and electron of an element.
func layoutRows(cfg *config.Config, el config.ElementConfig) ([]Row, error) {
	nucleons, err := layout.Nucleus(el.Protons, el.Neutrons, cfg.Nucleus.ClusterScale)
	if err != nil {
		return nil, err
	}
	shells, err := atom.ShellsFor(cfg, el)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(nucleons)+el.Electrons)
	for _, n := range nucleons {
		rows = append(rows, Row{
			Kind:  n.Kind.String(),
			Index: n.Index,
			Shell: -1,
			X:     n.Pos.X,
			Y:     n.Pos.Y,
			Z:     n.Pos.Z,
		})
	}
	for _, sh := range shells {
		for i := 0; i < sh.Electrons; i++ {
			p := sh.ElectronPosition(layout.RingAngle(i, sh.Electrons), 0)
			rows = append(rows, Row{
				Kind:  "electron",
				Index: i,
				Shell: sh.Index,
				X:     p.X,
				Y:     p.Y,
				Z:     p.Z,
			})
		}
	}
	return rows, nil
}
