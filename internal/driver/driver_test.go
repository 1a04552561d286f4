package driver

import (
	"math"
	"strings"
	"testing"

	"github.com/Garsondee/Neural-Entity/internal/entity"
)

const frame = 1.0 / 60

func newTestDriver(seed int64) *Driver {
	cfg := ConfigFor(ProfileConstrained, seed)
	cfg.Entity.Detail, cfg.Entity.DetailLow = 2, 1
	return New(cfg, NewSimLog(false))
}

// --- Clock ---

func TestClock_ClampsDelta(t *testing.T) {
	var c Clock
	if _, d := c.Advance(0.5); d != MaxDelta {
		t.Fatalf("expected delta clamped to %.2f, got %.3f", MaxDelta, d)
	}
	if _, d := c.Advance(-1); d != 0 {
		t.Fatalf("negative gap should clamp to 0, got %.3f", d)
	}
	tm, d := c.Advance(0.02)
	if d != 0.02 || math.Abs(tm-0.12) > 1e-12 {
		t.Fatalf("expected time 0.12 delta 0.02, got %.3f %.3f", tm, d)
	}
}

// --- Frame ordering ---

func TestDriver_TrackerUpdatesBeforeEntity(t *testing.T) {
	d := newTestDriver(1)
	d.Tracker.Move(1, 0)
	f := d.Tick(frame)
	mx := f.Entity.Shells[entity.ShellBody].MouseX
	if math.Abs(mx-0.05) > 1e-12 {
		t.Fatalf("entity should see this frame's smoothed pointer 0.05, got %.4f", mx)
	}
}

func TestDriver_PulseAfterOneSecondFrame(t *testing.T) {
	d := newTestDriver(1)
	d.Stimulate(entity.Stimulus{Pulse: 0.5}, "test")
	d.Tick(1)
	if got := d.Entity.Reaction().PulseIntensity; math.Abs(got-0.45) > 1e-12 {
		t.Fatalf("expected pulse 0.45, got %.4f", got)
	}
	if d.Time() != MaxDelta {
		t.Fatalf("a 1s gap should advance the clock by %.2f, got %.3f", MaxDelta, d.Time())
	}
}

// --- Stimulus dispatch ---

func TestStimulate_BurstRules(t *testing.T) {
	happy := entity.EmotionHappy.BurstColor()
	cases := []struct {
		name      string
		s         entity.Stimulus
		wantBurst bool
		wantColor [3]uint8
	}{
		{"weak pulse", entity.Stimulus{Pulse: 0.3}, false, [3]uint8{}},
		{"threshold pulse", entity.Stimulus{Pulse: 0.4}, false, [3]uint8{}},
		{"strong pulse", entity.Stimulus{Pulse: 0.8}, true, [3]uint8{0x00, 0xff, 0xe0}},
		{"strong pulse with emotion", entity.Stimulus{Pulse: 0.8, Emotion: "happy"}, true, [3]uint8{happy.R, happy.G, happy.B}},
		{"emotion only", entity.Stimulus{Emotion: "happy"}, true, [3]uint8{happy.R, happy.G, happy.B}},
		{"shape only", entity.Stimulus{Shape: "crystal"}, false, [3]uint8{}},
	}
	for _, tc := range cases {
		d := newTestDriver(2)
		d.Stimulate(tc.s, "test")
		b := d.Field.Burst()
		if b.Active() != tc.wantBurst {
			t.Fatalf("%s: expected burst=%v, got %v", tc.name, tc.wantBurst, b.Active())
		}
		if !tc.wantBurst {
			continue
		}
		c := b.Color()
		if [3]uint8{c.R, c.G, c.B} != tc.wantColor {
			t.Fatalf("%s: expected colour %v, got %v", tc.name, tc.wantColor, c)
		}
		if !d.SimLog.HasEntry(CatBurst, "trigger", "") {
			t.Fatalf("%s: burst not logged", tc.name)
		}
	}
}

func TestStimulate_UnknownNamesIgnored(t *testing.T) {
	d := newTestDriver(3)
	a := d.Stimulate(entity.Stimulus{Shape: "blob", Sequence: "dance", Emotion: "bored"}, "test")
	if a.Any() {
		t.Fatalf("unknown names should apply nothing, got %+v", a)
	}
	if d.Entity.Sequencer().Active() {
		t.Fatal("unknown sequence should not start the sequencer")
	}
	for _, c := range []struct{ cat, name string }{
		{CatShape, "blob"},
		{CatSequence, "dance"},
		{CatEmotion, "bored"},
	} {
		if !d.SimLog.HasEntry(c.cat, "unknown", c.name) {
			t.Fatalf("unknown %s %q should be logged:\n%s", c.cat, c.name, d.SimLog.Format())
		}
	}
	if d.SimLog.CountCategory(CatShape, "target") != 0 || d.SimLog.CountCategory(CatEmotion, "set") != 0 {
		t.Fatalf("unknown names must not log as applied:\n%s", d.SimLog.Format())
	}
}

func TestStimulate_KnownNamesNotLoggedUnknown(t *testing.T) {
	d := newTestDriver(3)
	d.Stimulate(entity.Stimulus{Shape: "crystal", Sequence: "love", Emotion: "happy"}, "test")
	for _, cat := range []string{CatShape, CatSequence, CatEmotion} {
		if d.SimLog.CountCategory(cat, "unknown") != 0 {
			t.Fatalf("known %s logged as unknown:\n%s", cat, d.SimLog.Format())
		}
	}
}

func TestLogChanges_RestartDuringMorphInLogsPhase(t *testing.T) {
	d := newTestDriver(5)
	d.Stimulate(entity.Stimulus{Sequence: "code"}, "test")
	for i := 0; i < 30; i++ {
		d.Tick(frame)
	}
	if n := d.SimLog.CountCategory(CatSequence, "phase"); n != 1 {
		t.Fatalf("expected one phase entry before the restart, got %d:\n%s", n, d.SimLog.Format())
	}
	seq := d.Entity.Sequencer()
	if seq.Phase() != entity.PhaseMorphIn || seq.StepIndex() != 0 {
		t.Fatalf("expected morph_in step 0, got %s step %d", seq.Phase(), seq.StepIndex())
	}

	d.Stimulate(entity.Stimulus{Sequence: "love"}, "test")
	d.Tick(frame)
	if n := d.SimLog.CountCategory(CatSequence, "phase"); n != 2 {
		t.Fatalf("restart should log a phase entry, got %d:\n%s", n, d.SimLog.Format())
	}
	last, _ := d.SimLog.LastOf(CatSequence, "phase")
	if !strings.HasPrefix(last.Value, "morph_in → morph_in") || last.Tick != d.CurrentTick() {
		t.Fatalf("unexpected restart entry %v", last)
	}

	d.Tick(frame)
	if n := d.SimLog.CountCategory(CatSequence, "phase"); n != 2 {
		t.Fatalf("steady morph_in should not log again, got %d", n)
	}
}

func TestLogChanges_StepEntriesCarryIndex(t *testing.T) {
	d := newTestDriver(6)
	d.Stimulate(entity.Stimulus{Sequence: "code"}, "test")
	for i := 0; i < 60*16; i++ {
		d.Tick(frame)
	}
	var steps []float64
	for _, e := range d.SimLog.Entries() {
		if e.Category == CatSequence && e.Key == "phase" && strings.Contains(e.Value, "→ morph_in") {
			steps = append(steps, e.NumVal)
		}
	}
	if len(steps) != 3 || steps[0] != 0 || steps[1] != 1 || steps[2] != 2 {
		t.Fatalf("expected morph_in entries for steps 0,1,2, got %v:\n%s", steps, d.SimLog.Format())
	}
}

// --- Agitation, camera, chromatic ---

func TestDriver_TypingEasesAgitation(t *testing.T) {
	d := newTestDriver(4)
	d.SetTyping(true)
	for i := 0; i < 120; i++ {
		d.Tick(frame)
	}
	if got := d.Entity.Reaction().Agitation; math.Abs(got-0.2) > 1e-3 {
		t.Fatalf("agitation should settle at 0.2 while typing, got %.4f", got)
	}
	d.SetTyping(false)
	for i := 0; i < 120; i++ {
		d.Tick(frame)
	}
	if got := d.Entity.Reaction().Agitation; got > 1e-3 {
		t.Fatalf("agitation should settle at 0 after typing, got %.4f", got)
	}
}

func TestCamera_Orbit(t *testing.T) {
	for _, p := range []Profile{ProfileFull, ProfileConstrained} {
		cam := p.Camera()
		pos := cam.Orbit(3.7, 0.4, -0.2)
		if r := math.Sqrt(pos.X*pos.X + pos.Y*pos.Y + pos.Z*pos.Z); math.Abs(r-cam.Radius) > 1e-9 {
			t.Fatalf("%s: orbit radius %.4f, want %.2f", p, r, cam.Radius)
		}
		top := cam.Orbit(0, 0, 100)
		if math.Abs(top.Y-cam.Radius*math.Cos(0.3)) > 1e-9 {
			t.Fatalf("%s: polar angle should clamp at 0.3, got y=%.4f", p, top.Y)
		}
		rest := cam.Orbit(0, 0, 0)
		if math.Abs(rest.Y) > 1e-9 || math.Abs(rest.Z-cam.Radius) > 1e-9 {
			t.Fatalf("%s: rest position should be on +Z at the equator, got %+v", p, rest)
		}
	}
}

func TestDriver_ChromaticFollowsPulse(t *testing.T) {
	d := newTestDriver(5)
	idle := d.Tick(frame)
	d.Stimulate(entity.Stimulus{Pulse: 1}, "test")
	f := d.Tick(frame)
	want := 0.002 + d.Entity.Reaction().PulseIntensity*0.012 + f.Entity.ChromaticAdd
	if math.Abs(f.Chromatic-want) > 1e-12 {
		t.Fatalf("expected chromatic %.5f, got %.5f", want, f.Chromatic)
	}
	if f.Chromatic <= idle.Chromatic {
		t.Fatal("pulse should raise the chromatic offset")
	}
}

// --- Hidden triggers through the driver ---

func TestDriver_FirstMoveTrigger(t *testing.T) {
	d := newTestDriver(6)
	d.Tracker.Move(0.3, 0.3)
	d.Tick(frame)
	if got := d.Entity.Reaction().PulseIntensity; got != 0.3 {
		t.Fatalf("first move should leave pulse 0.3, got %.3f", got)
	}
	if d.SimLog.CountCategory(CatTrigger, "first_move") != 1 {
		t.Fatalf("expected one first_move entry:\n%s", d.SimLog.Format())
	}
	d.Tracker.Move(-0.3, 0.3)
	d.Tick(frame)
	if d.SimLog.CountCategory(CatTrigger, "first_move") != 1 {
		t.Fatal("first_move fired twice")
	}
}

func TestDriver_CentreClick(t *testing.T) {
	d := newTestDriver(7)
	if d.Click(10, 10, 800, 600) {
		t.Fatal("corner click should not fire")
	}
	if !d.Click(400, 300, 800, 600) {
		t.Fatal("centre click should fire")
	}
	re := d.Entity.Reaction()
	if re.PulseIntensity != 1 || re.MorphBoost != 0.4 || re.TargetHueShift != 0.85 {
		t.Fatalf("unexpected reaction after centre click: %+v", re)
	}
	if d.Field.Burst().Active() {
		t.Fatal("centre click reacts directly and should not burst")
	}
}

// --- Harness runs ---

func TestTestRun_SequenceLogsEveryPhase(t *testing.T) {
	tr := NewTestRun(
		WithDetail(2, 1),
		WithStimulus(0.1, entity.Stimulus{Sequence: "code"}),
	)
	tr.RunSeconds(16)

	if !tr.SimLog.HasEntry(CatSequence, "start", "code") {
		t.Fatalf("sequence start not logged:\n%s", tr.SimLog.Format())
	}
	// three steps × (morph_in, hold, morph_out) plus the return to idle
	if n := tr.SimLog.CountCategory(CatSequence, "phase"); n != 10 {
		t.Fatalf("expected 10 phase changes, got %d:\n%s", n, tr.SimLog.Format())
	}
	last, ok := tr.SimLog.LastOf(CatSequence, "phase")
	if !ok || !strings.HasSuffix(last.Value, "→ idle") {
		t.Fatalf("sequence should end idle, last entry %v", last)
	}
	if tr.Driver.Entity.Sequencer().Active() {
		t.Fatal("sequencer should be inactive after the last step")
	}
}

func TestTestRun_EmotionFadesAndBurstEnds(t *testing.T) {
	tr := NewTestRun(
		WithDetail(2, 1),
		WithStimulus(0, entity.Stimulus{Emotion: "angry", Pulse: 0.9}),
	)
	tr.RunSeconds(15)

	if !tr.SimLog.HasEntry(CatEmotion, "set", "angry") {
		t.Fatal("emotion set not logged")
	}
	if !tr.SimLog.HasEntry(CatEmotion, "faded", "angry → neutral") {
		t.Fatalf("emotion should fade to neutral:\n%s", tr.SimLog.Format())
	}
	end, ok := tr.SimLog.FirstOf(CatBurst, "end")
	if !ok || end.Time > 1.1 {
		t.Fatalf("burst should end within about a second, got %+v ok=%v", end, ok)
	}
}

func TestTestRun_ShapeReturnsToDefault(t *testing.T) {
	tr := NewTestRun(
		WithDetail(2, 1),
		WithStimulus(0, entity.Stimulus{Shape: "aggressive"}),
	)
	tr.RunSeconds(13)
	ret, ok := tr.SimLog.FirstOf(CatShape, "return")
	if !ok {
		t.Fatalf("shape return not logged:\n%s", tr.SimLog.Format())
	}
	if math.Abs(ret.Time-12) > 0.05 {
		t.Fatalf("shape should return after 12s, got %.2fs", ret.Time)
	}
}

func TestTestRun_SeededRunsMatch(t *testing.T) {
	run := func() *TestRun {
		events, err := ParseScript(DefaultScript)
		if err != nil {
			t.Fatalf("default script: %v", err)
		}
		tr := NewTestRun(WithDetail(2, 1), WithSeed(99), WithScript(events...))
		tr.RunSeconds(10)
		return tr
	}
	a, b := run(), run()
	if a.SimLog.Format() != b.SimLog.Format() {
		t.Fatal("equal seeds should produce identical logs")
	}
	pa, pb := a.Driver.Field.Pulses(), b.Driver.Field.Pulses()
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("pulse %d differs between equal seeds", i)
		}
	}
}

func TestTestRun_RunUntil(t *testing.T) {
	tr := NewTestRun(WithDetail(2, 1), WithStimulus(0.5, entity.Stimulus{Pulse: 0.9}))
	tick := tr.RunUntil(func(tr *TestRun) bool { return tr.Driver.Field.Burst().Active() }, 120)
	if tick < 30 || tick > 32 {
		t.Fatalf("burst should start around tick 31, got %d", tick)
	}
	if tr.Pending() != 0 {
		t.Fatalf("expected no pending inputs, got %d", tr.Pending())
	}
}

// --- Reporter ---

func TestReporter_WindowSummary(t *testing.T) {
	if NewReporter(0, false).WindowSummary() != nil {
		t.Fatal("empty reporter should have no summary")
	}
	tr := NewTestRun(
		WithDetail(2, 1),
		WithStimulus(0, entity.Stimulus{Pulse: 1, Emotion: "excited"}),
	)
	tr.RunSeconds(5)
	wr := tr.Reporter.WindowSummary()
	if wr == nil || wr.SampleCount != 5 {
		t.Fatalf("expected 5 samples, got %+v", wr)
	}
	total := 0.0
	for _, pct := range wr.EmotionPct {
		total += pct
	}
	if math.Abs(total-100) > 1e-6 {
		t.Fatalf("emotion shares should sum to 100, got %.3f", total)
	}
	if wr.EmotionPct[entity.EmotionExcited] < 99 {
		t.Fatalf("excited should dominate the first seconds, got %.1f%%", wr.EmotionPct[entity.EmotionExcited])
	}
	if !strings.Contains(wr.Format(), "excited") {
		t.Fatalf("formatted report should list the emotion:\n%s", wr.Format())
	}
}

// --- SimLog ---

func TestSimLog_Queries(t *testing.T) {
	sl := NewSimLog(false)
	sl.Add(1, 0.1, "entity", CatReact, "stimulus", "pulse=0.50", 0.5)
	sl.Add(2, 0.2, "field", CatBurst, "trigger", "#00ffe0 (pulse)", 0)
	sl.Add(5, 0.5, "entity", CatReact, "stimulus", "emotion=sad", 0)
	sl.AddVerbose(6, 0.6, "entity", CatReact, "sample", "", 0)

	if sl.Len() != 3 {
		t.Fatalf("verbose entry recorded on a quiet log: %d entries", sl.Len())
	}
	if n := sl.CountCategory(CatReact, ""); n != 2 {
		t.Fatalf("expected 2 react entries, got %d", n)
	}
	if e, ok := sl.LastOf(CatReact, "stimulus"); !ok || e.Tick != 5 {
		t.Fatalf("LastOf: got %+v", e)
	}
	if !sl.HasEntry("", "", "00ffe0") || sl.HasEntry(CatBurst, "", "sad") {
		t.Fatal("HasEntry substring match wrong")
	}
	if got := len(sl.FilterTickRange(2, 5)); got != 2 {
		t.Fatalf("expected 2 entries in range, got %d", got)
	}
}

// --- Script ---

func TestParseScript(t *testing.T) {
	events, err := ParseScript("3:sequence=love; 1:pulse=0.8,emotion=happy,intensity=0.5 ;2:move=0.1/-0.2,typing=on;4:click,hue=0.3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(events) != 4 {
		t.Fatalf("expected 4 events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].At < events[i-1].At {
			t.Fatal("events not sorted by time")
		}
	}
	e := events[0]
	if e.Stimulus.Pulse != 0.8 || e.Stimulus.Emotion != "happy" || e.Stimulus.EmotionIntensity != 0.5 {
		t.Fatalf("event 0 parsed wrong: %+v", e)
	}
	if !events[1].Move || events[1].MoveY != -0.2 || !events[1].HasTyping || !events[1].Typing {
		t.Fatalf("event 1 parsed wrong: %+v", events[1])
	}
	if !events[3].Click || events[3].Stimulus.Hue == nil || *events[3].Stimulus.Hue != 0.3 {
		t.Fatalf("event 3 parsed wrong: %+v", events[3])
	}
}

func TestParseScript_Errors(t *testing.T) {
	bad := []string{
		"pulse=1",
		"x:pulse=1",
		"-1:pulse=1",
		"1:pulse=abc",
		"1:wobble=2",
		"1:move=0.5",
		"1:typing=maybe",
	}
	for _, src := range bad {
		if _, err := ParseScript(src); err == nil {
			t.Fatalf("expected error for %q", src)
		}
	}
}
