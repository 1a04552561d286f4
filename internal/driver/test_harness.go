package driver

import (
	"sort"

	"github.com/Garsondee/Neural-Entity/internal/entity"
)

// TestRun is a headless harness around a Driver: a fixed timestep, a
// script of timed inputs, a SimLog and a periodic Reporter. It has no
// Ebiten dependency.
type TestRun struct {
	Driver   *Driver
	SimLog   *SimLog
	Reporter *Reporter

	cfg         Config
	fps         float64
	reportEvery int
	events      []ScriptEvent
	next        int
}

// runOptionKind controls the pass in which an option is applied.
type runOptionKind int

const (
	runOptConfig runOptionKind = iota // profile, seed, detail, verbose: applied before the driver exists
	runOptInput                       // scripted inputs: applied after
)

// RunOption is a builder function applied to a TestRun during construction.
type RunOption struct {
	kind runOptionKind
	fn   func(*TestRun)
}

// WithProfile switches budgets to profile p, keeping the seed. It resets
// earlier detail overrides, so pass it first.
func WithProfile(p Profile) RunOption {
	return RunOption{runOptConfig, func(tr *TestRun) {
		tr.cfg = ConfigFor(p, tr.cfg.Seed)
	}}
}

// WithSeed sets the RNG seed for deterministic runs.
func WithSeed(seed int64) RunOption {
	return RunOption{runOptConfig, func(tr *TestRun) {
		tr.cfg.Seed = seed
	}}
}

// WithDetail overrides the entity mesh subdivision; tests use small values.
func WithDetail(detail, low int) RunOption {
	return RunOption{runOptConfig, func(tr *TestRun) {
		tr.cfg.Entity.Detail = detail
		tr.cfg.Entity.DetailLow = low
	}}
}

// WithVerbose enables per-tick verbose logging.
func WithVerbose(v bool) RunOption {
	return RunOption{runOptConfig, func(tr *TestRun) {
		tr.SimLog = NewSimLog(v)
	}}
}

// WithFPS sets the fixed timestep to 1/fps.
func WithFPS(fps float64) RunOption {
	return RunOption{runOptConfig, func(tr *TestRun) {
		if fps > 0 {
			tr.fps = fps
		}
	}}
}

// WithReportEvery collects a report every n ticks.
func WithReportEvery(n int) RunOption {
	return RunOption{runOptConfig, func(tr *TestRun) {
		tr.reportEvery = n
	}}
}

// WithStimulus schedules s at simulation time at.
func WithStimulus(at float64, s entity.Stimulus) RunOption {
	return RunOption{runOptInput, func(tr *TestRun) {
		tr.events = append(tr.events, ScriptEvent{At: at, Stimulus: s})
	}}
}

// WithScript schedules parsed script events.
func WithScript(events ...ScriptEvent) RunOption {
	return RunOption{runOptInput, func(tr *TestRun) {
		tr.events = append(tr.events, events...)
	}}
}

// NewTestRun builds a run in two passes: configuration, then the driver
// and its scheduled inputs. Defaults are the constrained profile, seed 1,
// 60 fps and a report every 60 ticks.
func NewTestRun(opts ...RunOption) *TestRun {
	tr := &TestRun{
		cfg:         ConfigFor(ProfileConstrained, 1),
		SimLog:      NewSimLog(false),
		fps:         60,
		reportEvery: 60,
	}
	for _, o := range opts {
		if o.kind == runOptConfig {
			o.fn(tr)
		}
	}
	tr.Driver = New(tr.cfg, tr.SimLog)
	tr.Reporter = NewReporter(0, tr.SimLog.Verbose())
	for _, o := range opts {
		if o.kind == runOptInput {
			o.fn(tr)
		}
	}
	sort.SliceStable(tr.events, func(i, j int) bool { return tr.events[i].At < tr.events[j].At })
	return tr
}

// Step is the fixed timestep in seconds.
func (tr *TestRun) Step() float64 { return 1 / tr.fps }

// RunTicks advances n frames, applying due inputs before each.
func (tr *TestRun) RunTicks(n int) {
	for i := 0; i < n; i++ {
		tr.runOneTick()
	}
}

// RunSeconds advances by whole frames covering s seconds.
func (tr *TestRun) RunSeconds(s float64) {
	tr.RunTicks(int(s*tr.fps + 0.5))
}

// RunUntil advances up to maxTicks, stopping early once predicate holds.
// It returns the tick at which the predicate was satisfied, or -1.
func (tr *TestRun) RunUntil(predicate func(*TestRun) bool, maxTicks int) int {
	for i := 0; i < maxTicks; i++ {
		tr.runOneTick()
		if predicate(tr) {
			return tr.Driver.CurrentTick()
		}
	}
	return -1
}

// Pending is the number of scheduled inputs not yet applied.
func (tr *TestRun) Pending() int { return len(tr.events) - tr.next }

func (tr *TestRun) runOneTick() {
	now := tr.Driver.Time()
	for tr.next < len(tr.events) && tr.events[tr.next].At <= now {
		tr.events[tr.next].Apply(tr.Driver)
		tr.next++
	}
	tr.Driver.Tick(tr.Step())
	if tr.reportEvery > 0 && tr.Driver.CurrentTick()%tr.reportEvery == 0 {
		tr.Reporter.Collect(tr.Driver)
	}
}
