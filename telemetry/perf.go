package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Phase names for one rendered frame.
const (
	PhaseInput     = "input"
	PhaseCamera    = "camera"
	PhaseSpin      = "spin"
	PhaseScene     = "scene"
	PhaseBloom     = "bloom"
	PhaseHUD       = "hud"
	PhaseTelemetry = "telemetry"
)

// framePhases lists phases in pipeline order for logging.
var framePhases = []string{
	PhaseInput, PhaseCamera, PhaseSpin, PhaseScene, PhaseBloom, PhaseHUD, PhaseTelemetry,
}

// frameSample is the CPU work of one frame split by phase.
type frameSample struct {
	work   time.Duration
	phases map[string]time.Duration
}

// PerfCollector times frame phases over a rolling window and counts frames
// whose work exceeded the frame budget.
type PerfCollector struct {
	budget  time.Duration
	ring    []frameSample
	next    int
	filled  int
	current map[string]time.Duration

	frameStart time.Time
	phaseStart time.Time
	phase      string

	// Wall-clock interval between presented frames
	lastPresent time.Time
	interval    time.Duration
}

// NewPerfCollector creates a collector averaging over window frames. A
// positive targetFPS sets the frame budget; zero disables budget tracking.
func NewPerfCollector(window, targetFPS int) *PerfCollector {
	if window < 1 {
		window = 60
	}
	p := &PerfCollector{
		ring:    make([]frameSample, window),
		current: make(map[string]time.Duration),
	}
	if targetFPS > 0 {
		p.budget = time.Second / time.Duration(targetFPS)
	}
	return p
}

// BeginFrame starts timing a frame.
func (p *PerfCollector) BeginFrame() {
	p.frameStart = time.Now()
	p.current = make(map[string]time.Duration, len(framePhases))
	p.phase = ""
}

// Phase closes the running phase, if any, and starts the named one.
func (p *PerfCollector) Phase(name string) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = name
}

// EndFrame closes the running phase and stores the frame in the window.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = frameSample{work: now.Sub(p.frameStart), phases: p.current}
	p.next = (p.next + 1) % len(p.ring)
	p.filled = min(p.filled+1, len(p.ring))
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// Present records the interval since the previous presented frame.
func (p *PerfCollector) Present() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.interval = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarizes the frames in the window.
type PerfStats struct {
	// CPU work per frame
	AvgWork time.Duration
	MinWork time.Duration
	MaxWork time.Duration
	StdWork time.Duration
	P95Work time.Duration

	// Average time and share of work per phase
	PhaseAvg map[string]time.Duration
	PhasePct map[string]float64

	// Frames in the window whose work exceeded the budget
	OverBudget int
	Frames     int

	// Presented frame pacing
	Interval time.Duration
	FPS      float64
}

// Stats aggregates the current window.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg: make(map[string]time.Duration),
		PhasePct: make(map[string]float64),
		Frames:   p.filled,
		Interval: p.interval,
	}
	if p.interval > 0 {
		s.FPS = float64(time.Second) / float64(p.interval)
	}
	if p.filled == 0 {
		return s
	}

	work := make([]float64, p.filled)
	phaseSum := make(map[string]time.Duration)
	for i, f := range p.ring[:p.filled] {
		work[i] = float64(f.work)
		if p.budget > 0 && f.work > p.budget {
			s.OverBudget++
		}
		for name, d := range f.phases {
			phaseSum[name] += d
		}
	}

	mean, std := stat.MeanStdDev(work, nil)
	if p.filled < 2 {
		std = 0
	}
	slices.Sort(work)
	s.AvgWork = time.Duration(mean)
	s.StdWork = time.Duration(std)
	s.MinWork = time.Duration(work[0])
	s.MaxWork = time.Duration(work[len(work)-1])
	s.P95Work = time.Duration(stat.Quantile(0.95, stat.Empirical, work, nil))

	for name, sum := range phaseSum {
		avg := sum / time.Duration(p.filled)
		s.PhaseAvg[name] = avg
		if s.AvgWork > 0 {
			s.PhasePct[name] = float64(avg) / float64(s.AvgWork) * 100
		}
	}
	return s
}

// LogStats writes a one-line perf summary with slog.
func (s PerfStats) LogStats() {
	attrs := []any{
		"avg_frame_us", s.AvgWork.Microseconds(),
		"p95_frame_us", s.P95Work.Microseconds(),
		"max_frame_us", s.MaxWork.Microseconds(),
		"std_frame_us", s.StdWork.Microseconds(),
		"over_budget", s.OverBudget,
	}
	if s.FPS > 0 {
		attrs = append(attrs, "fps", int(s.FPS))
	}
	for _, phase := range framePhases {
		if pct, ok := s.PhasePct[phase]; ok && pct > 0.1 {
			attrs = append(attrs, phase+"_pct", int(pct*10)/10.0)
		}
	}
	slog.Info("perf", attrs...)
}

// PerfRow is one perf.csv record.
type PerfRow struct {
	Frame        int64   `csv:"frame"`
	AvgFrameUS   int64   `csv:"avg_frame_us"`
	MinFrameUS   int64   `csv:"min_frame_us"`
	MaxFrameUS   int64   `csv:"max_frame_us"`
	StdFrameUS   int64   `csv:"std_frame_us"`
	P95FrameUS   int64   `csv:"p95_frame_us"`
	OverBudget   int     `csv:"over_budget"`
	FPS          float64 `csv:"fps"`
	InputPct     float64 `csv:"input_pct"`
	CameraPct    float64 `csv:"camera_pct"`
	SpinPct      float64 `csv:"spin_pct"`
	ScenePct     float64 `csv:"scene_pct"`
	BloomPct     float64 `csv:"bloom_pct"`
	HUDPct       float64 `csv:"hud_pct"`
	TelemetryPct float64 `csv:"telemetry_pct"`
}

// Row flattens the stats into a perf.csv record taken at frame.
func (s PerfStats) Row(frame int64) PerfRow {
	return PerfRow{
		Frame:        frame,
		AvgFrameUS:   s.AvgWork.Microseconds(),
		MinFrameUS:   s.MinWork.Microseconds(),
		MaxFrameUS:   s.MaxWork.Microseconds(),
		StdFrameUS:   s.StdWork.Microseconds(),
		P95FrameUS:   s.P95Work.Microseconds(),
		OverBudget:   s.OverBudget,
		FPS:          s.FPS,
		InputPct:     s.PhasePct[PhaseInput],
		CameraPct:    s.PhasePct[PhaseCamera],
		SpinPct:      s.PhasePct[PhaseSpin],
		ScenePct:     s.PhasePct[PhaseScene],
		BloomPct:     s.PhasePct[PhaseBloom],
		HUDPct:       s.PhasePct[PhaseHUD],
		TelemetryPct: s.PhasePct[PhaseTelemetry],
	}
}
