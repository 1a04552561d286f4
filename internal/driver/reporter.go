package driver

import (
	"fmt"
	"math"
	"strings"

	"github.com/Garsondee/Neural-Entity/internal/entity"
)

// reportWindowTicks is the default sliding window for recent-behaviour
// reports (~10s at 60 fps).
const reportWindowTicks = 600

// FrameReport is a snapshot of the loop at one tick.
type FrameReport struct {
	Tick int
	Time float64

	Pulse      float64
	MorphBoost float64
	HueShift   float64
	Agitation  float64

	Emotion          entity.Emotion
	EmotionIntensity float64

	Phase         entity.Phase
	MorphProgress float64 // smoothstepped, body shell
	BreathScale   float64

	ActivePulses int
	BurstActive  bool
	BurstAlive   int

	Interaction float64
	Erratic     bool
}

// Reporter collects periodic snapshots and summarises them over a sliding
// window of ticks.
type Reporter struct {
	history     []FrameReport
	windowTicks int
	verbose     bool
}

// NewReporter creates a reporter with the given window size.
func NewReporter(windowTicks int, verbose bool) *Reporter {
	if windowTicks <= 0 {
		windowTicks = reportWindowTicks
	}
	return &Reporter{windowTicks: windowTicks, verbose: verbose}
}

// Collect snapshots d. Call it periodically (e.g. every 60 ticks).
func (r *Reporter) Collect(d *Driver) {
	re := d.Entity.Reaction()
	em := d.Entity.Emotion()
	body := d.Frame().Entity.Shells[entity.MorphShell]
	b := d.Field.Burst()
	rpt := FrameReport{
		Tick:             d.CurrentTick(),
		Time:             d.Time(),
		Pulse:            re.PulseIntensity,
		MorphBoost:       re.MorphBoost,
		HueShift:         re.HueShift,
		Agitation:        body.Agitation,
		Emotion:          em.Current,
		EmotionIntensity: em.Intensity,
		Phase:            d.Entity.Sequencer().Phase(),
		MorphProgress:    body.MorphProgress,
		BreathScale:      body.BreathScale,
		ActivePulses:     d.Field.ActivePulses(),
		BurstActive:      b.Active(),
		BurstAlive:       b.Alive(),
		Interaction:      d.Tracker.InteractionLevel(),
		Erratic:          d.Tracker.Erratic(),
	}
	r.history = append(r.history, rpt)
	if r.verbose {
		d.SimLog.Add(rpt.Tick, rpt.Time, "reporter", CatReact, "snapshot", rpt.String(), rpt.Pulse)
	}
}

// String is a one-line rendering of the snapshot.
func (fr FrameReport) String() string {
	return fmt.Sprintf("pulse=%.2f morph=%.2f emotion=%s(%.2f) phase=%s progress=%.2f pulses=%d burst=%v",
		fr.Pulse, fr.MorphBoost, fr.Emotion, fr.EmotionIntensity, fr.Phase, fr.MorphProgress, fr.ActivePulses, fr.BurstActive)
}

// Latest returns the most recent snapshot, or nil.
func (r *Reporter) Latest() *FrameReport {
	if len(r.history) == 0 {
		return nil
	}
	return &r.history[len(r.history)-1]
}

// History returns every snapshot collected so far.
func (r *Reporter) History() []FrameReport {
	return r.history
}

// WindowReport is an aggregated summary over a time window.
type WindowReport struct {
	FromTick, ToTick int
	SampleCount      int

	// Share of samples per emotion and sequencer phase, 0-100.
	EmotionPct map[entity.Emotion]float64
	PhasePct   map[entity.Phase]float64

	AvgPulse, MaxPulse float64
	AvgMorphBoost      float64
	AvgAgitation       float64
	AvgBreath          float64
	AvgActivePulses    float64
	AvgInteraction     float64

	BurstSamples   int // samples with a live burst
	ErraticSamples int
}

// WindowSummary aggregates the snapshots inside the recent window.
func (r *Reporter) WindowSummary() *WindowReport {
	if len(r.history) == 0 {
		return nil
	}

	latestTick := r.history[len(r.history)-1].Tick
	cutoff := latestTick - r.windowTicks
	var window []FrameReport
	for i := len(r.history) - 1; i >= 0; i-- {
		if r.history[i].Tick < cutoff {
			break
		}
		window = append(window, r.history[i])
	}
	if len(window) == 0 {
		return nil
	}

	n := float64(len(window))
	wr := &WindowReport{
		FromTick:    window[len(window)-1].Tick,
		ToTick:      window[0].Tick,
		SampleCount: len(window),
		EmotionPct:  make(map[entity.Emotion]float64),
		PhasePct:    make(map[entity.Phase]float64),
	}
	for _, rpt := range window {
		wr.EmotionPct[rpt.Emotion] += 100 / n
		wr.PhasePct[rpt.Phase] += 100 / n
		wr.AvgPulse += rpt.Pulse
		wr.MaxPulse = math.Max(wr.MaxPulse, rpt.Pulse)
		wr.AvgMorphBoost += rpt.MorphBoost
		wr.AvgAgitation += rpt.Agitation
		wr.AvgBreath += rpt.BreathScale
		wr.AvgActivePulses += float64(rpt.ActivePulses)
		wr.AvgInteraction += rpt.Interaction
		if rpt.BurstActive {
			wr.BurstSamples++
		}
		if rpt.Erratic {
			wr.ErraticSamples++
		}
	}
	wr.AvgPulse /= n
	wr.AvgMorphBoost /= n
	wr.AvgAgitation /= n
	wr.AvgBreath /= n
	wr.AvgActivePulses /= n
	wr.AvgInteraction /= n
	return wr
}

// Format returns a human-readable multi-line string of the window summary.
func (wr *WindowReport) Format() string {
	if wr == nil {
		return "No data collected yet.\n"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "=== Entity Report (T=%d..%d, %d samples) ===\n",
		wr.FromTick, wr.ToTick, wr.SampleCount)

	sb.WriteString("\n--- Emotion Distribution ---\n")
	for e := entity.EmotionNeutral; e <= entity.EmotionExcited; e++ {
		if pct := wr.EmotionPct[e]; pct > 0.5 {
			fmt.Fprintf(&sb, "  %-12s %5.1f%%\n", e, pct)
		}
	}

	sb.WriteString("\n--- Sequencer Phases ---\n")
	for p := entity.PhaseIdle; p <= entity.PhaseMorphOut; p++ {
		if pct := wr.PhasePct[p]; pct > 0.5 {
			fmt.Fprintf(&sb, "  %-12s %5.1f%%\n", p, pct)
		}
	}

	sb.WriteString("\n--- Reaction ---\n")
	fmt.Fprintf(&sb, "  pulse avg=%.3f max=%.3f (%s)\n", wr.AvgPulse, wr.MaxPulse, pulseLabel(wr.MaxPulse))
	fmt.Fprintf(&sb, "  morph boost avg=%.3f  agitation avg=%.3f  breath avg=%.3f\n",
		wr.AvgMorphBoost, wr.AvgAgitation, wr.AvgBreath)

	sb.WriteString("\n--- Field & Pointer ---\n")
	fmt.Fprintf(&sb, "  active pulses avg=%.1f  burst samples=%d\n", wr.AvgActivePulses, wr.BurstSamples)
	fmt.Fprintf(&sb, "  interaction avg=%.2f  erratic samples=%d\n", wr.AvgInteraction, wr.ErraticSamples)
	return sb.String()
}

func pulseLabel(p float64) string {
	switch {
	case p > 0.6:
		return "strong"
	case p > 0.2:
		return "noticeable"
	case p > 0:
		return "faint"
	default:
		return "calm"
	}
}
