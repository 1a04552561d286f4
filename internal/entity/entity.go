// Package entity is the reactive state machine behind the wireframe entity.
// It blends reaction pulses, emotion presets, shape presets and a morph
// sequencer into one flat set of render parameters per frame.
package entity

import (
	"image/color"
	"math"

	"github.com/Garsondee/Neural-Entity/internal/shapes"
	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// Shell is one of the three concentric wireframe meshes.
type Shell int

const (
	ShellOuter Shell = iota
	ShellBody
	ShellCore
	ShellCount
)

// MorphShell is the only shell that follows the morph sequencer.
const MorphShell = ShellBody

func (s Shell) String() string {
	switch s {
	case ShellOuter:
		return "outer"
	case ShellBody:
		return "body"
	case ShellCore:
		return "core"
	default:
		return "unknown"
	}
}

type shellDef struct {
	radius         float64
	lowDetail      bool
	baseHue        float64
	morphIntensity float64
	morphSpeed     float64
	opacity        float64
}

var shellDefs = [ShellCount]shellDef{
	ShellOuter: {radius: 1.8, lowDetail: true, baseHue: 0.52, morphIntensity: 0.12, morphSpeed: 0.08, opacity: 0.15},
	ShellBody:  {radius: 1.2, lowDetail: false, baseHue: 0.5, morphIntensity: 0.22, morphSpeed: 0.15, opacity: 0.55},
	ShellCore:  {radius: 0.5, lowDetail: true, baseHue: 0.75, morphIntensity: 0.3, morphSpeed: 0.3, opacity: 0.4},
}

// Pointer is the interaction tracker as seen by the entity.
type Pointer interface {
	Smoothed() (x, y float64) // normalised to [-1,1]
	Active() bool
}

// Euler is a rotation in radians about X, Y and Z.
type Euler struct {
	X, Y, Z float64
}

// ShellParams is everything a renderer needs for one shell this frame.
type ShellParams struct {
	Time           float64
	BreathScale    float64
	PulseIntensity float64
	HueShift       float64
	BaseHue        float64
	Saturation     float64
	Brightness     float64
	Agitation      float64
	MorphIntensity float64
	MorphSpeed     float64
	MorphProgress  float64 // smoothstepped; nonzero only on MorphShell

	Spikiness      float64
	Symmetry       float64
	NoiseFrequency float64
	Stretch        float64

	MouseX, MouseY float64
	MouseInfluence float64

	Opacity  float64
	Rotation Euler
}

// RingParams describes one orbital ring.
type RingParams struct {
	Radius   float64
	Rotation Euler
	Opacity  float64
}

// Params is the flat per-frame output of Update. It is a value: renderers
// copy it and never write back.
type Params struct {
	Shells        [ShellCount]ShellParams
	Rings         [2]RingParams
	GroupRotation Euler
	ChromaticAdd  float64
}

// ReactionState is the transient stimulus response.
type ReactionState struct {
	PulseIntensity float64
	MorphBoost     float64
	HueShift       float64
	TargetHueShift float64
	Agitation      float64
}

func (r *ReactionState) update(t Tuning) {
	r.PulseIntensity *= t.PulseDecay
	if r.PulseIntensity < t.SnapThreshold {
		r.PulseIntensity = 0
	}
	r.MorphBoost *= t.MorphBoostDecay
	if r.MorphBoost < t.SnapThreshold {
		r.MorphBoost = 0
	}
	r.HueShift += (r.TargetHueShift - r.HueShift) * t.HueRate
}

// Stimulus is one external trigger. Zero values mean "absent": Pulse and
// MorphBoost only apply when positive, Hue only when non-nil, names only
// when non-empty. EmotionIntensity ≤ 0 uses Tuning.DefaultEmotionIntensity.
type Stimulus struct {
	Pulse            float64
	Hue              *float64
	MorphBoost       float64
	Shape            string // shape preset name
	Sequence         string
	Emotion          string
	EmotionIntensity float64
}

// Hue returns a pointer to v for Stimulus.Hue.
func Hue(v float64) *float64 { return &v }

// Applied reports which fields of a Stimulus changed state.
type Applied struct {
	Pulse      bool
	Hue        bool
	MorphBoost bool
	Shape      bool
	Sequence   bool
	Emotion    bool
}

// Any reports whether anything was applied.
func (a Applied) Any() bool {
	return a.Pulse || a.Hue || a.MorphBoost || a.Shape || a.Sequence || a.Emotion
}

// Entity owns all reactive state. It is not safe for concurrent use: React
// and Update must run on the animation goroutine.
type Entity struct {
	cfg Config

	base  [ShellCount][]float32 // sphere positions per shell
	morph []float32             // morph targets for MorphShell

	reaction ReactionState
	shape    shapeState
	emotion  EmotionState
	seq      *Sequencer
	group    Euler
	params   Params
}

// New builds the shells' sphere geometry and an idle entity.
func New(cfg Config) *Entity {
	e := &Entity{
		cfg:     cfg,
		shape:   newShapeState(),
		emotion: newEmotionState(),
		seq:     NewSequencer(cfg.Tuning.MorphInSeconds, cfg.Tuning.MorphOutSeconds),
	}
	for s := Shell(0); s < ShellCount; s++ {
		d := shellDefs[s]
		detail := cfg.Detail
		if d.lowDetail {
			detail = cfg.DetailLow
		}
		e.base[s] = shapes.Icosphere(d.radius, detail)
	}
	e.morph = make([]float32, len(e.base[MorphShell]))
	e.params = e.initialParams()
	return e
}

func (e *Entity) initialParams() Params {
	var p Params
	for s := Shell(0); s < ShellCount; s++ {
		d := shellDefs[s]
		p.Shells[s] = ShellParams{
			BreathScale:    1,
			BaseHue:        d.baseHue,
			Saturation:     e.emotion.Params.Saturation,
			MorphIntensity: d.morphIntensity,
			MorphSpeed:     d.morphSpeed,
			Symmetry:       e.shape.current.Symmetry,
			NoiseFrequency: e.shape.current.NoiseFrequency,
			Opacity:        d.opacity,
		}
	}
	p.Rings[0] = RingParams{Radius: 1.6, Rotation: Euler{X: math.Pi * 0.4, Z: 0.3}, Opacity: 0.12}
	p.Rings[1] = RingParams{Radius: 2.0, Rotation: Euler{X: math.Pi * 0.6, Y: 0.8}, Opacity: 0.07}
	return p
}

// React merges a stimulus into state: max for pulse and morph boost (each
// clamped to [0,1] first), overwrite for hue target, shape preset and emotion, restart for sequence.
// Unknown names are ignored.
func (e *Entity) React(s Stimulus) Applied {
	var a Applied
	if s.Pulse > 0 {
		e.reaction.PulseIntensity = math.Max(e.reaction.PulseIntensity, vmath.Clamp01(s.Pulse))
		a.Pulse = true
	}
	if s.Hue != nil {
		e.reaction.TargetHueShift = *s.Hue
		a.Hue = true
	}
	if s.MorphBoost > 0 {
		e.reaction.MorphBoost = math.Max(e.reaction.MorphBoost, vmath.Clamp01(s.MorphBoost))
		a.MorphBoost = true
	}
	if s.Shape != "" {
		if p, ok := ParsePreset(s.Shape); ok {
			e.shape.set(p, e.cfg.Tuning.ReturnSeconds)
			a.Shape = true
		}
	}
	if s.Sequence != "" {
		a.Sequence = e.PlaySequence(s.Sequence)
	}
	if s.Emotion != "" {
		intensity := s.EmotionIntensity
		if intensity <= 0 {
			intensity = e.cfg.Tuning.DefaultEmotionIntensity
		}
		a.Emotion = e.SetEmotion(s.Emotion, intensity)
	}
	return a
}

// PlaySequence starts the named sequence, pre-empting any running one, and
// regenerates the morph targets for its first step.
func (e *Entity) PlaySequence(name string) bool {
	seq, ok := ParseSequence(name)
	if !ok {
		return false
	}
	return e.StartSteps(seq.Steps())
}

// StartSteps plays an arbitrary step list.
func (e *Entity) StartSteps(steps []Step) bool {
	first, ok := e.seq.Start(steps)
	if !ok {
		return false
	}
	e.setMorphTargets(first)
	return true
}

// SetEmotion switches to the named emotion at intensity (clamped to 1).
func (e *Entity) SetEmotion(name string, intensity float64) bool {
	em, ok := ParseEmotion(name)
	if !ok {
		return false
	}
	e.emotion.set(em, intensity)
	return true
}

// EaseAgitation moves reaction agitation toward target by AgitationRate.
func (e *Entity) EaseAgitation(target float64) {
	e.reaction.Agitation = vmath.Approach(e.reaction.Agitation, target, e.cfg.Tuning.AgitationRate)
}

// setMorphTargets fully overwrites the morph buffer with shape s mapped from
// the morphing shell's sphere.
func (e *Entity) setMorphTargets(s shapes.Shape) {
	shapes.GenerateInto(e.morph, s, e.base[MorphShell], s.DefaultScale())
}

// Update advances every sub-state by one frame and recomputes Params.
// time and delta are in seconds; p may be nil when no tracker is attached.
func (e *Entity) Update(time, delta float64, p Pointer) {
	t := e.cfg.Tuning

	e.reaction.update(t)
	e.shape.update(delta, t.ShapeRate)
	e.emotion.update(delta, t)

	ep := e.emotion.Params
	scaleOffset := ep.ScaleOffset
	if e.emotion.Current == EmotionHappy && e.emotion.Intensity > t.HappyThreshold {
		scaleOffset += math.Sin(time*3) * 0.015 * e.emotion.Intensity
	}

	if next, begun := e.seq.Advance(delta); begun {
		e.setMorphTargets(next)
	}
	morph := vmath.Smoothstep(e.seq.Progress())

	var mx, my float64
	var influence float64
	if p != nil {
		mx, my = p.Smoothed()
		e.group.Y = vmath.Approach(e.group.Y, mx*0.08, t.IdleRotationRate)
		e.group.X = vmath.Approach(e.group.X, -my*0.06, t.IdleRotationRate)
		if p.Active() {
			influence = ep.MouseInfluenceMultiplier
		}
	}

	breath := 1 + math.Sin(time*t.BreathRate*ep.BreathSpeed)*t.BreathDepth + scaleOffset

	for s := Shell(0); s < ShellCount; s++ {
		d := shellDefs[s]
		sp := &e.params.Shells[s]
		sp.Time = time
		sp.BreathScale = breath
		sp.PulseIntensity = e.reaction.PulseIntensity
		sp.HueShift = e.reaction.HueShift + ep.HueShift
		sp.Agitation = e.reaction.Agitation + ep.AgitationAdd
		sp.MorphIntensity = d.morphIntensity + e.reaction.MorphBoost*t.MorphBoostScale + ep.MorphBoostAdd

		sp.Spikiness = e.shape.current.Spikiness
		sp.Symmetry = e.shape.current.Symmetry
		sp.NoiseFrequency = e.shape.current.NoiseFrequency
		sp.Stretch = e.shape.current.Stretch

		sp.Saturation = ep.Saturation
		sp.Brightness = ep.Brightness

		sp.MorphProgress = 0
		if s == MorphShell {
			sp.MorphProgress = morph
		}

		if p != nil {
			sp.MouseX, sp.MouseY = mx, my
			sp.MouseInfluence = influence
		}
	}

	coreSpeed := ep.CoreSpeedMultiplier
	e.params.Shells[ShellCore].Rotation = Euler{X: time * 0.15 * coreSpeed, Y: time * 0.2 * coreSpeed}
	e.params.Shells[ShellOuter].Rotation = Euler{Y: -time * 0.03, Z: time * 0.02}

	e.params.Rings[0].Rotation.Z = 0.3 + time*0.06
	e.params.Rings[1].Rotation.Y = 0.8 - time*0.04
	e.params.Rings[0].Opacity = 0.12 + e.reaction.PulseIntensity*0.15
	e.params.Rings[1].Opacity = 0.07 + e.reaction.PulseIntensity*0.1

	e.params.GroupRotation = e.group
	e.params.ChromaticAdd = ep.ChromaticAdd
}

// Params returns a copy of this frame's render parameters.
func (e *Entity) Params() Params { return e.params }

// Reaction returns a copy of the reaction state.
func (e *Entity) Reaction() ReactionState { return e.reaction }

// Emotion returns a copy of the emotion state.
func (e *Entity) Emotion() EmotionState { return e.emotion }

// ShapeCurrent returns the rendered shape params.
func (e *Entity) ShapeCurrent() ShapeParams { return e.shape.current }

// ShapeTarget returns the shape params being approached.
func (e *Entity) ShapeTarget() ShapeParams { return e.shape.target }

// ReturnTimer returns the seconds left before the shape target resets.
func (e *Entity) ReturnTimer() float64 { return e.shape.returnTimer }

// Sequencer exposes the morph sequencer for read-only queries.
func (e *Entity) Sequencer() *Sequencer { return e.seq }

// BurstColor returns the highlight colour of the current emotion.
func (e *Entity) BurstColor() color.RGBA { return e.emotion.Current.BurstColor() }

// MorphTargets returns the morph target buffer of MorphShell. The slice is
// owned by the entity and rewritten whenever a sequence step begins.
func (e *Entity) MorphTargets() []float32 { return e.morph }

// BasePositions returns the sphere positions of shell s.
func (e *Entity) BasePositions(s Shell) []float32 { return e.base[s] }
