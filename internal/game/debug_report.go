package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Neural-Entity/internal/driver"
	"github.com/Garsondee/Neural-Entity/internal/entity"
)

// debugReport renders the driver's current state and the SimLog of the
// last lastTicks ticks as plain text for pasting into a bug report.
func debugReport(d *driver.Driver, rep *driver.Reporter, lastTicks int) string {
	if lastTicks <= 0 {
		lastTicks = 600
	}
	toTick := d.CurrentTick()
	fromTick := toTick - lastTicks + 1
	if fromTick < 0 {
		fromTick = 0
	}

	cfg := d.Config()
	fr := d.Frame()
	re := d.Entity.Reaction()
	em := d.Entity.Emotion()
	seq := d.Entity.Sequencer()

	var b strings.Builder
	fmt.Fprintf(&b, "--- Neural-Entity debug report ---\n")
	fmt.Fprintf(&b, "profile=%s seed=%d tick=%d time=%.2fs tick_range=[%d..%d]\n\n",
		cfg.Profile, cfg.Seed, toTick, d.Time(), fromTick, toTick)

	b.WriteString("== entity ==\n")
	fmt.Fprintf(&b, "reaction: pulse=%.3f morph=%.3f hue=%.3f agitation=%.3f\n",
		re.PulseIntensity, re.MorphBoost, re.HueShift, re.Agitation)
	fmt.Fprintf(&b, "emotion:  %s intensity=%.2f\n", em.Current, em.Intensity)
	phase := seq.Phase().String()
	if step, ok := seq.Current(); ok {
		phase = fmt.Sprintf("%s step=%d shape=%s progress=%.2f", phase, seq.StepIndex(), step.Shape, seq.Progress())
	}
	fmt.Fprintf(&b, "sequence: %s\n", phase)
	fmt.Fprintf(&b, "return:   %.2fs\n", d.Entity.ReturnTimer())
	for s := entity.Shell(0); s < entity.ShellCount; s++ {
		sp := fr.Entity.Shells[s]
		fmt.Fprintf(&b, "%-6s breath=%.3f hue=%.3f morph=%.2f spike=%.2f sym=%.2f freq=%.2f stretch=%.2f opacity=%.2f\n",
			s, sp.BreathScale, sp.BaseHue+sp.HueShift, sp.MorphProgress, sp.Spikiness, sp.Symmetry,
			sp.NoiseFrequency, sp.Stretch, sp.Opacity)
	}

	b.WriteString("\n== field ==\n")
	bu := d.Field.Burst()
	fmt.Fprintf(&b, "pulses=%d burst_active=%t burst_alive=%d burst_opacity=%.2f\n",
		d.Field.ActivePulses(), bu.Active(), bu.Alive(), bu.Opacity())

	b.WriteString("\n== pointer ==\n")
	sx, sy := d.Tracker.Smoothed()
	fmt.Fprintf(&b, "smoothed=(%.2f,%.2f) active=%t erratic=%t idle=%.1fs interaction=%.2f\n",
		sx, sy, d.Tracker.Active(), d.Tracker.Erratic(), d.Tracker.IdleTime(), d.Tracker.InteractionLevel())
	fmt.Fprintf(&b, "camera=(%.2f,%.2f,%.2f) chromatic=%.4f\n", fr.Camera.X, fr.Camera.Y, fr.Camera.Z, fr.Chromatic)

	if rep != nil {
		if wr := rep.WindowSummary(); wr != nil {
			b.WriteString("\n")
			b.WriteString(wr.Format())
		}
	}

	b.WriteString("\n== events ==\n")
	events := d.SimLog.FormatRange(fromTick, toTick)
	if events == "" {
		b.WriteString("(no events recorded in range)\n")
	} else {
		b.WriteString(events)
	}
	return b.String()
}

// copyDebugReport puts the report on the system clipboard. Failures land in
// the reaction log.
func (g *Game) copyDebugReport() {
	report := debugReport(g.drv, g.reporter, 0)
	if err := clipboard.WriteAll(report); err != nil {
		g.reactionLog.Add(g.drv.CurrentTick(), "viewer", "clipboard: "+err.Error())
		return
	}
	g.reactionLog.Add(g.drv.CurrentTick(), "viewer", fmt.Sprintf("debug report copied (%d bytes)", len(report)))
}
