package driver

import (
	"fmt"
	"image/color"
	"math/rand"

	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/field"
	"github.com/Garsondee/Neural-Entity/internal/interaction"
	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// MaxDelta caps a frame's delta so a suspended window does not produce one
// huge step on resume.
const MaxDelta = 0.1

// Clock turns wall-clock frame gaps into clamped simulation time.
type Clock struct {
	Elapsed float64
	Delta   float64
}

// Advance clamps dt to [0, MaxDelta], adds it to Elapsed and returns the
// new time and delta.
func (c *Clock) Advance(dt float64) (time, delta float64) {
	c.Delta = vmath.Clamp(dt, 0, MaxDelta)
	c.Elapsed += c.Delta
	return c.Elapsed, c.Delta
}

// Config wires every component of the loop.
type Config struct {
	Profile  Profile
	Seed     int64
	Entity   entity.Config
	Field    field.Config
	Camera   Camera
	Tracker  interaction.TrackerConfig
	Triggers interaction.TriggerConfig

	TypingAgitation float64 // agitation target while the user types
	BurstPulse      float64 // stimuli with a stronger pulse fire a burst
	BaseChromatic   float64
	PulseChromatic  float64 // chromatic offset per unit of pulse
}

// ConfigFor returns the stock configuration for profile p.
func ConfigFor(p Profile, seed int64) Config {
	return Config{
		Profile:  p,
		Seed:     seed,
		Entity:   p.EntityConfig(),
		Field:    p.FieldConfig(),
		Camera:   p.Camera(),
		Tracker:  interaction.DefaultTrackerConfig(),
		Triggers: interaction.DefaultTriggerConfig(),

		TypingAgitation: 0.2,
		BurstPulse:      0.4,
		BaseChromatic:   0.002,
		PulseChromatic:  0.012,
	}
}

// Frame is what a renderer samples after each tick.
type Frame struct {
	Tick      int
	Time      float64
	Delta     float64
	Entity    entity.Params
	Camera    vmath.Vec3
	Chromatic float64
}

// Driver owns one entity, its field and the pointer tracker, and advances
// them in a fixed order each frame. It is not safe for concurrent use:
// input handlers must call it from the frame goroutine.
type Driver struct {
	cfg Config

	Entity   *entity.Entity
	Field    *field.Field
	Tracker  *interaction.Tracker
	Triggers *interaction.HiddenTriggers
	SimLog   *SimLog

	clock  Clock
	tick   int
	typing bool
	frame  Frame
	fired  []interaction.Trigger

	// previous-frame state for change detection
	lastPhase   entity.Phase
	lastStep    int
	lastEmotion entity.Emotion
	lastReturn  float64
	lastBurst   bool
}

// New builds a driver. log may be nil, in which case a quiet SimLog is used.
func New(cfg Config, log *SimLog) *Driver {
	if log == nil {
		log = NewSimLog(false)
	}
	rng := rand.New(rand.NewSource(cfg.Seed)) // #nosec G404 -- visual randomness only
	d := &Driver{
		cfg:      cfg,
		Entity:   entity.New(cfg.Entity),
		Field:    field.New(cfg.Field, rng),
		Tracker:  interaction.NewTracker(cfg.Tracker),
		Triggers: interaction.NewHiddenTriggers(cfg.Triggers),
		SimLog:   log,
	}
	d.frame.Entity = d.Entity.Params()
	d.frame.Camera = cfg.Camera.Orbit(0, 0, 0)
	d.frame.Chromatic = cfg.BaseChromatic
	return d
}

// Config returns the configuration the driver was built with.
func (d *Driver) Config() Config { return d.cfg }

// Frame returns the most recent frame.
func (d *Driver) Frame() Frame { return d.frame }

// CurrentTick is the number of ticks run so far.
func (d *Driver) CurrentTick() int { return d.tick }

// Time is the elapsed simulation time in seconds.
func (d *Driver) Time() float64 { return d.clock.Elapsed }

// SetTyping tells the driver whether the text collaborator has focus.
func (d *Driver) SetTyping(typing bool) { d.typing = typing }

// Tick advances one frame by dt seconds of wall time: tracker, agitation,
// entity, field, then the hidden triggers.
func (d *Driver) Tick(dt float64) Frame {
	time, delta := d.clock.Advance(dt)
	d.tick++

	d.Tracker.Update(delta)

	target := 0.0
	if d.typing {
		target = d.cfg.TypingAgitation
	}
	d.Entity.EaseAgitation(target)

	d.Entity.Update(time, delta, d.Tracker)
	d.Field.Update(time, delta)

	params := d.Entity.Params()
	sx, sy := d.Tracker.Smoothed()
	d.frame = Frame{
		Tick:      d.tick,
		Time:      time,
		Delta:     delta,
		Entity:    params,
		Camera:    d.cfg.Camera.Orbit(time, sx, sy),
		Chromatic: d.cfg.BaseChromatic + d.Entity.Reaction().PulseIntensity*d.cfg.PulseChromatic + params.ChromaticAdd,
	}

	d.fired = d.Triggers.Update(d.Tracker, d.fired[:0])
	for _, tr := range d.fired {
		d.Entity.React(tr.Stimulus)
		d.SimLog.Add(d.tick, time, "tracker", CatTrigger, tr.Kind.String(), describeStimulus(tr.Stimulus), tr.Stimulus.Pulse)
	}

	d.logChanges(time)
	d.SimLog.AddVerbose(d.tick, time, "entity", CatReact, "sample",
		fmt.Sprintf("pulse=%.3f morph=%.3f hue=%.3f", d.Entity.Reaction().PulseIntensity,
			d.Entity.Reaction().MorphBoost, d.Entity.Reaction().HueShift),
		d.Entity.Reaction().PulseIntensity)
	return d.frame
}

// Stimulate applies a stimulus to the entity and fires a matching burst:
// a strong pulse bursts in the emotion colour when the stimulus names an
// emotion, else the default colour; a named emotion alone also bursts.
func (d *Driver) Stimulate(s entity.Stimulus, source string) entity.Applied {
	time := d.clock.Elapsed
	a := d.Entity.React(s)
	d.SimLog.Add(d.tick, time, source, CatReact, "stimulus", describeStimulus(s), s.Pulse)

	if a.Shape {
		d.SimLog.Add(d.tick, time, "entity", CatShape, "target", s.Shape, d.Entity.ReturnTimer())
		d.lastReturn = d.Entity.ReturnTimer()
	} else if s.Shape != "" {
		d.SimLog.Add(d.tick, time, "entity", CatShape, "unknown", s.Shape, 0)
	}
	if a.Sequence {
		d.SimLog.Add(d.tick, time, "entity", CatSequence, "start", s.Sequence, 0)
		// a restart lands on (morph_in, 0) again; force the next phase entry
		d.lastStep = -1
	} else if s.Sequence != "" {
		d.SimLog.Add(d.tick, time, "entity", CatSequence, "unknown", s.Sequence, 0)
	}
	if a.Emotion {
		em := d.Entity.Emotion()
		d.SimLog.Add(d.tick, time, "entity", CatEmotion, "set", em.Current.String(), em.Intensity)
		d.lastEmotion = em.Current
	} else if s.Emotion != "" {
		d.SimLog.Add(d.tick, time, "entity", CatEmotion, "unknown", s.Emotion, 0)
	}

	switch {
	case s.Pulse > d.cfg.BurstPulse:
		c := entity.DefaultBurstColor
		if s.Emotion != "" {
			c = d.Entity.BurstColor()
		}
		d.burst(c, "pulse")
	case s.Emotion != "":
		d.burst(d.Entity.BurstColor(), "emotion")
	}
	return a
}

// Click forwards a click in window pixels to the hidden triggers. The
// centre-click reaction goes straight to the entity without a burst.
func (d *Driver) Click(px, py, width, height float64) bool {
	tr, ok := d.Triggers.Click(px, py, width, height)
	if !ok {
		return false
	}
	d.Entity.React(tr.Stimulus)
	d.SimLog.Add(d.tick, d.clock.Elapsed, "tracker", CatTrigger, tr.Kind.String(), describeStimulus(tr.Stimulus), tr.Stimulus.Pulse)
	return true
}

func (d *Driver) burst(c color.RGBA, why string) {
	d.Field.TriggerBurst(c)
	d.lastBurst = true
	d.SimLog.Add(d.tick, d.clock.Elapsed, "field", CatBurst, "trigger",
		fmt.Sprintf("#%02x%02x%02x (%s)", c.R, c.G, c.B, why), 0)
}

// logChanges records sequencer phase or step changes, emotions fading back
// to neutral, shape presets returning to default and bursts ending.
func (d *Driver) logChanges(time float64) {
	seq := d.Entity.Sequencer()
	if ph, step := seq.Phase(), seq.StepIndex(); ph != d.lastPhase || step != d.lastStep {
		detail := fmt.Sprintf("%s → %s", d.lastPhase, ph)
		if cur, ok := seq.Current(); ok {
			detail += " (" + cur.Shape.String() + ")"
		}
		d.SimLog.Add(d.tick, time, "entity", CatSequence, "phase", detail, float64(step))
		d.lastPhase, d.lastStep = ph, step
	}

	if em := d.Entity.Emotion().Current; em != d.lastEmotion {
		d.SimLog.Add(d.tick, time, "entity", CatEmotion, "faded", fmt.Sprintf("%s → %s", d.lastEmotion, em), 0)
		d.lastEmotion = em
	}

	if rt := d.Entity.ReturnTimer(); d.lastReturn > 0 && rt <= 0 {
		d.SimLog.Add(d.tick, time, "entity", CatShape, "return", "default", 0)
	}
	d.lastReturn = d.Entity.ReturnTimer()

	if active := d.Field.Burst().Active(); d.lastBurst && !active {
		d.SimLog.Add(d.tick, time, "field", CatBurst, "end", "", 0)
		d.lastBurst = false
	}
}

func describeStimulus(s entity.Stimulus) string {
	out := ""
	add := func(f string, args ...any) {
		if out != "" {
			out += " "
		}
		out += fmt.Sprintf(f, args...)
	}
	if s.Pulse > 0 {
		add("pulse=%.2f", s.Pulse)
	}
	if s.Hue != nil {
		add("hue=%.2f", *s.Hue)
	}
	if s.MorphBoost > 0 {
		add("morph=%.2f", s.MorphBoost)
	}
	if s.Shape != "" {
		add("shape=%s", s.Shape)
	}
	if s.Sequence != "" {
		add("sequence=%s", s.Sequence)
	}
	if s.Emotion != "" {
		add("emotion=%s", s.Emotion)
	}
	if out == "" {
		return "-"
	}
	return out
}
