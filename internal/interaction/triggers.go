package interaction

import (
	"math"

	"github.com/Garsondee/Neural-Entity/internal/entity"
)

// TriggerKind names a hidden trigger. Each fires at most once per session.
type TriggerKind int

const (
	TriggerFirstMove TriggerKind = iota
	TriggerCentreClick
	TriggerIdleShort
	TriggerIdleLong
	triggerCount
)

func (k TriggerKind) String() string {
	switch k {
	case TriggerFirstMove:
		return "first_move"
	case TriggerCentreClick:
		return "centre_click"
	case TriggerIdleShort:
		return "idle_short"
	case TriggerIdleLong:
		return "idle_long"
	default:
		return "unknown"
	}
}

// Trigger is a fired hidden trigger. Stimulus is zero for marker-only
// triggers; reacting to it is then a no-op.
type Trigger struct {
	Kind     TriggerKind
	Stimulus entity.Stimulus
}

// TriggerConfig holds the trigger thresholds.
type TriggerConfig struct {
	ClickRadius    float64 // fraction of the smaller viewport side
	IdleShort      float64 // seconds
	IdleLong       float64 // seconds
	FirstMovePulse float64
	Click          entity.Stimulus
}

// DefaultTriggerConfig returns the stock thresholds.
func DefaultTriggerConfig() TriggerConfig {
	return TriggerConfig{
		ClickRadius:    0.2,
		IdleShort:      15,
		IdleLong:       45,
		FirstMovePulse: 0.3,
		Click:          entity.Stimulus{Pulse: 1, MorphBoost: 0.4, Hue: entity.Hue(0.85)},
	}
}

// HiddenTriggers remembers which one-shot triggers have fired.
type HiddenTriggers struct {
	cfg   TriggerConfig
	fired [triggerCount]bool
}

// NewHiddenTriggers returns a set with nothing fired.
func NewHiddenTriggers(cfg TriggerConfig) *HiddenTriggers {
	return &HiddenTriggers{cfg: cfg}
}

func (h *HiddenTriggers) fire(k TriggerKind) bool {
	if h.fired[k] {
		return false
	}
	h.fired[k] = true
	return true
}

// Fired reports whether k has already fired.
func (h *HiddenTriggers) Fired(k TriggerKind) bool {
	if k < 0 || k >= triggerCount {
		return false
	}
	return h.fired[k]
}

// Update checks the tracker-driven triggers once per frame and appends any
// that fire to dst. Idle markers only count after the first move.
func (h *HiddenTriggers) Update(t *Tracker, dst []Trigger) []Trigger {
	if !t.HasMoved() {
		return dst
	}
	if h.fire(TriggerFirstMove) {
		dst = append(dst, Trigger{Kind: TriggerFirstMove, Stimulus: entity.Stimulus{Pulse: h.cfg.FirstMovePulse}})
	}
	if t.IdleTime() > h.cfg.IdleShort && h.fire(TriggerIdleShort) {
		dst = append(dst, Trigger{Kind: TriggerIdleShort})
	}
	if t.IdleTime() > h.cfg.IdleLong && h.fire(TriggerIdleLong) {
		dst = append(dst, Trigger{Kind: TriggerIdleLong})
	}
	return dst
}

// Click tests a click in window pixels against the centre of a width×height
// viewport.
func (h *HiddenTriggers) Click(px, py, width, height float64) (Trigger, bool) {
	if h.fired[TriggerCentreClick] {
		return Trigger{}, false
	}
	dist := math.Hypot(px-width/2, py-height/2)
	if dist >= math.Min(width, height)*h.cfg.ClickRadius {
		return Trigger{}, false
	}
	h.fired[TriggerCentreClick] = true
	return Trigger{Kind: TriggerCentreClick, Stimulus: h.cfg.Click}, true
}
