package driver

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Garsondee/Neural-Entity/internal/entity"
)

// ScriptEvent is one timed input for a headless run.
type ScriptEvent struct {
	At        float64 // seconds of simulation time
	Stimulus  entity.Stimulus
	Move      bool
	MoveX     float64 // normalised pointer, used when Move is set
	MoveY     float64
	Click     bool // click at the viewport centre
	Shake     float64
	Typing    bool
	HasTyping bool // Typing is meaningful
}

// DefaultScript exercises a reaction, an emotion, a shape preset and a
// full sequence.
const DefaultScript = "0.5:move=0.2/0.1;1:pulse=0.8;2:emotion=happy;3:shape=crystal;4:sequence=love;6:typing=on;9:typing=off;20:click"

// ParseScript reads events of the form "at:key=value,key=value" separated
// by ';'. Keys: pulse, hue, morph, shape, sequence, emotion, intensity,
// move=x/y, shake, typing=on|off, and the bare key click. Events are
// returned sorted by time.
func ParseScript(src string) ([]ScriptEvent, error) {
	var events []ScriptEvent
	for _, part := range strings.Split(src, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		at, body, ok := strings.Cut(part, ":")
		if !ok {
			return nil, fmt.Errorf("event %q: missing time", part)
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(at), 64)
		if err != nil || t < 0 {
			return nil, fmt.Errorf("event %q: bad time %q", part, at)
		}
		ev := ScriptEvent{At: t}
		for _, kv := range strings.Split(body, ",") {
			if err := ev.set(strings.TrimSpace(kv)); err != nil {
				return nil, fmt.Errorf("event %q: %w", part, err)
			}
		}
		events = append(events, ev)
	}
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })
	return events, nil
}

func (ev *ScriptEvent) set(kv string) error {
	if kv == "click" {
		ev.Click = true
		return nil
	}
	key, val, ok := strings.Cut(kv, "=")
	if !ok {
		return fmt.Errorf("expected key=value, got %q", kv)
	}
	num := func() (float64, error) {
		v, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", key, err)
		}
		return v, nil
	}
	var err error
	switch key {
	case "pulse":
		ev.Stimulus.Pulse, err = num()
	case "morph":
		ev.Stimulus.MorphBoost, err = num()
	case "intensity":
		ev.Stimulus.EmotionIntensity, err = num()
	case "shake":
		ev.Shake, err = num()
	case "hue":
		var h float64
		if h, err = num(); err == nil {
			ev.Stimulus.Hue = entity.Hue(h)
		}
	case "shape":
		ev.Stimulus.Shape = val
	case "sequence":
		ev.Stimulus.Sequence = val
	case "emotion":
		ev.Stimulus.Emotion = val
	case "move":
		xs, ys, ok := strings.Cut(val, "/")
		if !ok {
			return fmt.Errorf("move: expected x/y, got %q", val)
		}
		x, errX := strconv.ParseFloat(xs, 64)
		y, errY := strconv.ParseFloat(ys, 64)
		if errX != nil || errY != nil {
			return fmt.Errorf("move: bad coordinates %q", val)
		}
		ev.Move, ev.MoveX, ev.MoveY = true, x, y
	case "typing":
		switch val {
		case "on":
			ev.Typing = true
		case "off":
			ev.Typing = false
		default:
			return fmt.Errorf("typing: expected on or off, got %q", val)
		}
		ev.HasTyping = true
	default:
		return fmt.Errorf("unknown key %q", key)
	}
	return err
}

// HasStimulus reports whether the event carries anything for the entity.
func (ev ScriptEvent) HasStimulus() bool {
	s := ev.Stimulus
	return s.Pulse > 0 || s.Hue != nil || s.MorphBoost > 0 || s.Shape != "" || s.Sequence != "" || s.Emotion != ""
}

// Apply feeds the event into d.
func (ev ScriptEvent) Apply(d *Driver) {
	if ev.Move {
		d.Tracker.Move(ev.MoveX, ev.MoveY)
	}
	if ev.Shake > 0 {
		d.Tracker.Shake(ev.Shake)
	}
	if ev.HasTyping {
		d.SetTyping(ev.Typing)
	}
	if ev.Click {
		d.Click(0.5, 0.5, 1, 1)
	}
	if ev.HasStimulus() {
		d.Stimulate(ev.Stimulus, "script")
	}
}
