package interaction

import (
	"math"
	"testing"
)

const frame = 1.0 / 60

// --- Tracker ---

func TestTracker_MoveClientNormalises(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	tr.MoveClient(0, 0, 800, 600)
	if x, y := tr.Raw(); x != -1 || y != 1 {
		t.Fatalf("top-left should map to (-1, 1), got (%.2f, %.2f)", x, y)
	}
	tr.MoveClient(400, 300, 800, 600)
	if x, y := tr.Raw(); x != 0 || y != 0 {
		t.Fatalf("centre should map to (0, 0), got (%.2f, %.2f)", x, y)
	}
	tr.MoveClient(800, 600, 800, 600)
	if x, y := tr.Raw(); x != 1 || y != -1 {
		t.Fatalf("bottom-right should map to (1, -1), got (%.2f, %.2f)", x, y)
	}
}

func TestTracker_ZeroViewportIgnored(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	tr.MoveClient(10, 10, 0, 0)
	if tr.HasMoved() {
		t.Fatal("move on a zero-size viewport should be ignored")
	}
}

func TestTracker_SmoothingApproaches(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	tr.Move(1, -1)
	tr.Update(frame)
	x, y := tr.Smoothed()
	if math.Abs(x-0.05) > 1e-12 || math.Abs(y+0.05) > 1e-12 {
		t.Fatalf("one frame should move 5%% of the way, got (%.4f, %.4f)", x, y)
	}
	prev := x
	for i := 0; i < 200; i++ {
		tr.Update(frame)
		x, _ = tr.Smoothed()
		if x < prev || x > 1 {
			t.Fatalf("frame %d: smoothed x %.4f not monotone toward 1", i, x)
		}
		prev = x
	}
	if x < 0.99 {
		t.Fatalf("smoothed x should be near 1 after 200 frames, got %.4f", x)
	}
}

func TestTracker_ErraticOnFastMove(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	tr.Move(0.01, 0)
	tr.Update(frame)
	if tr.Erratic() {
		t.Fatal("small move should not be erratic")
	}
	tr.Move(0.5, 0)
	tr.Update(frame)
	if !tr.Erratic() {
		t.Fatal("fast move should be erratic")
	}
	tr.Update(frame)
	if tr.Erratic() {
		t.Fatal("erratic should clear once the pointer is still")
	}
}

func TestTracker_IdleAndInteraction(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	for i := 0; i < 60; i++ {
		tr.Move(math.Sin(float64(i)*0.1), 0)
		tr.Update(frame)
	}
	level := tr.InteractionLevel()
	if math.Abs(level-0.1) > 0.01 {
		t.Fatalf("one active second should raise interaction to ~0.1, got %.3f", level)
	}
	if tr.IdleTime() > frame+1e-9 {
		t.Fatalf("idle time should reset on move, got %.3f", tr.IdleTime())
	}
	for i := 0; i < 60; i++ {
		tr.Update(frame)
	}
	if tr.InteractionLevel() >= level {
		t.Fatal("interaction level should fall while still")
	}
	if math.Abs(tr.IdleTime()-1-frame) > 1e-6 {
		t.Fatalf("expected ~1s idle, got %.3f", tr.IdleTime())
	}
}

func TestTracker_ShakeCooldown(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	if tr.Shake(10) {
		t.Fatal("below threshold should not shake")
	}
	if !tr.Shake(20) {
		t.Fatal("first strong sample should shake")
	}
	if !tr.Active() || !tr.HasMoved() || !tr.Erratic() {
		t.Fatal("shake should activate and mark erratic")
	}
	if tr.Shake(20) {
		t.Fatal("second shake inside the cooldown should be ignored")
	}
	for i := 0; i < 61; i++ {
		tr.Update(frame)
	}
	if !tr.Shake(20) {
		t.Fatal("shake after the cooldown should register")
	}
}

func TestTracker_Leave(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	tr.Move(0.2, 0.2)
	tr.Leave()
	if tr.Active() {
		t.Fatal("tracker should be inactive after Leave")
	}
	if !tr.HasMoved() {
		t.Fatal("Leave should not clear HasMoved")
	}
}

// --- Hidden triggers ---

func TestTriggers_FirstMoveOnce(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	h := NewHiddenTriggers(DefaultTriggerConfig())
	if got := h.Update(tr, nil); len(got) != 0 {
		t.Fatalf("nothing should fire before a move, got %v", got)
	}
	tr.Move(0.1, 0.1)
	got := h.Update(tr, nil)
	if len(got) != 1 || got[0].Kind != TriggerFirstMove {
		t.Fatalf("expected first_move, got %+v", got)
	}
	if got[0].Stimulus.Pulse != 0.3 {
		t.Fatalf("first move pulse should be 0.3, got %.2f", got[0].Stimulus.Pulse)
	}
	if again := h.Update(tr, nil); len(again) != 0 {
		t.Fatalf("first_move fired twice: %+v", again)
	}
}

func TestTriggers_IdleMarkers(t *testing.T) {
	tr := NewTracker(DefaultTrackerConfig())
	h := NewHiddenTriggers(DefaultTriggerConfig())
	tr.Move(0, 0)
	h.Update(tr, nil)

	var fired []Trigger
	for i := 0; i < 50*60; i++ {
		tr.Update(frame)
		fired = h.Update(tr, fired)
	}
	if len(fired) != 2 || fired[0].Kind != TriggerIdleShort || fired[1].Kind != TriggerIdleLong {
		t.Fatalf("expected idle_short then idle_long, got %+v", fired)
	}
	if !h.Fired(TriggerIdleLong) {
		t.Fatal("idle_long should be recorded as fired")
	}
}

func TestTriggers_CentreClick(t *testing.T) {
	cases := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"centre", 400, 300, true},
		{"just inside", 400 + 119, 300, true},
		{"on radius", 400 + 120, 300, false},
		{"corner", 10, 10, false},
	}
	for _, tc := range cases {
		h := NewHiddenTriggers(DefaultTriggerConfig())
		tr, ok := h.Click(tc.x, tc.y, 800, 600)
		if ok != tc.expect {
			t.Fatalf("%s: expected fired=%v, got %v", tc.name, tc.expect, ok)
		}
		if ok && (tr.Stimulus.Pulse != 1 || tr.Stimulus.MorphBoost != 0.4 || *tr.Stimulus.Hue != 0.85) {
			t.Fatalf("%s: unexpected click stimulus %+v", tc.name, tr.Stimulus)
		}
	}
}

func TestTriggers_CentreClickOnce(t *testing.T) {
	h := NewHiddenTriggers(DefaultTriggerConfig())
	if _, ok := h.Click(400, 300, 800, 600); !ok {
		t.Fatal("first centre click should fire")
	}
	if _, ok := h.Click(400, 300, 800, 600); ok {
		t.Fatal("second centre click should not fire")
	}
}

func TestTriggerKind_String(t *testing.T) {
	if TriggerCentreClick.String() != "centre_click" || TriggerKind(99).String() != "unknown" {
		t.Fatal("unexpected trigger names")
	}
}
