package game

import (
	"log/slog"

	"github.com/pthm-cable/bohr/telemetry"
)

// flushTelemetry logs and writes perf stats every PerfInterval frames.
func (g *Game) flushTelemetry() {
	interval := int64(g.cfg.Telemetry.PerfInterval)
	if interval <= 0 || g.frame%interval != 0 {
		return
	}

	stats := g.perf.Stats()
	if g.logPerf {
		stats.LogStats()
	}
	if g.output != nil {
		if err := g.output.WritePerf(stats, g.frame); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

// recordEvent logs a session event and appends it to events.csv.
func (g *Game) recordEvent(e telemetry.Event) {
	e.Log()
	if g.output != nil {
		if err := g.output.WriteEvent(e); err != nil {
			slog.Error("failed to write event", "error", err)
		}
	}
}
