// Package interaction turns raw pointer and motion input into the smoothed
// signals the entity consumes, and fires the one-shot hidden triggers.
package interaction

import (
	"math"

	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// TrackerConfig holds the tracker's tuned constants.
type TrackerConfig struct {
	Smoothing       float64 // per-frame approach toward the raw pointer
	ErraticSpeed    float64 // per-frame normalised speed above which input is erratic
	MoveEpsilon     float64 // speed below which the pointer counts as still
	InteractionRise float64 // interaction level gained per active second
	InteractionFall float64 // interaction level lost per still second
	ShakeThreshold  float64 // summed |acceleration| that counts as a shake
	ShakeCooldown   float64 // seconds between recognised shakes
}

// DefaultTrackerConfig returns the stock tuning.
func DefaultTrackerConfig() TrackerConfig {
	return TrackerConfig{
		Smoothing:       0.05,
		ErraticSpeed:    0.08,
		MoveEpsilon:     0.001,
		InteractionRise: 0.1,
		InteractionFall: 0.02,
		ShakeThreshold:  15,
		ShakeCooldown:   1,
	}
}

// Tracker follows the pointer in normalised device coordinates: x and y in
// [-1,1], y up. It satisfies entity.Pointer.
type Tracker struct {
	cfg TrackerConfig

	rawX, rawY       float64
	prevX, prevY     float64
	smoothX, smoothY float64
	velX, velY       float64

	active      bool
	hasMoved    bool
	erratic     bool
	shaking     bool
	idle        float64
	interaction float64

	clock     float64 // seconds of Update calls, for the shake cooldown
	lastShake float64
}

var _ entity.Pointer = (*Tracker)(nil)

// NewTracker returns a tracker centred on the origin with no input yet.
func NewTracker(cfg TrackerConfig) *Tracker {
	return &Tracker{cfg: cfg, lastShake: math.Inf(-1)}
}

// Move records a pointer position already normalised to [-1,1].
func (t *Tracker) Move(x, y float64) {
	t.rawX = vmath.Clamp(x, -1, 1)
	t.rawY = vmath.Clamp(y, -1, 1)
	t.touch()
}

// MoveClient records a pointer in window pixels (origin top-left, y down).
func (t *Tracker) MoveClient(px, py, width, height float64) {
	if width <= 0 || height <= 0 {
		return
	}
	t.Move(px/width*2-1, -(py/height)*2+1)
}

// Shake feeds one device-motion sample: total is the summed absolute
// acceleration on three axes. It returns true when the sample is recognised
// as a shake, which also marks the input erratic until the next Update.
func (t *Tracker) Shake(total float64) bool {
	if total <= t.cfg.ShakeThreshold || t.clock-t.lastShake <= t.cfg.ShakeCooldown {
		return false
	}
	t.lastShake = t.clock
	t.shaking = true
	t.erratic = true
	t.touch()
	return true
}

// Leave marks the pointer as gone, e.g. when the cursor exits the window.
func (t *Tracker) Leave() {
	t.active = false
}

func (t *Tracker) touch() {
	t.active = true
	t.idle = 0
	t.hasMoved = true
}

// Update advances smoothing, velocity, idle time and interaction level.
// It must run once per frame before the entity reads the tracker.
func (t *Tracker) Update(delta float64) {
	t.clock += delta
	shook := t.shaking
	t.shaking = false

	t.smoothX += (t.rawX - t.smoothX) * t.cfg.Smoothing
	t.smoothY += (t.rawY - t.smoothY) * t.cfg.Smoothing

	t.velX = t.rawX - t.prevX
	t.velY = t.rawY - t.prevY
	t.prevX, t.prevY = t.rawX, t.rawY
	speed := math.Hypot(t.velX, t.velY)
	t.erratic = speed > t.cfg.ErraticSpeed || shook

	t.idle += delta

	if t.active && (speed > t.cfg.MoveEpsilon || shook) {
		t.interaction = math.Min(t.interaction+delta*t.cfg.InteractionRise, 1)
	} else {
		t.interaction = math.Max(t.interaction-delta*t.cfg.InteractionFall, 0)
	}
}

// Smoothed returns the eased pointer position.
func (t *Tracker) Smoothed() (x, y float64) { return t.smoothX, t.smoothY }

// Raw returns the last recorded pointer position.
func (t *Tracker) Raw() (x, y float64) { return t.rawX, t.rawY }

// Velocity is the raw pointer displacement over the last frame.
func (t *Tracker) Velocity() (x, y float64) { return t.velX, t.velY }

func (t *Tracker) Active() bool { return t.active }
func (t *Tracker) HasMoved() bool { return t.hasMoved }
func (t *Tracker) Erratic() bool { return t.erratic }
func (t *Tracker) IdleTime() float64 { return t.idle }
func (t *Tracker) InteractionLevel() float64 { return t.interaction }
