package entity

import "github.com/Garsondee/Neural-Entity/internal/shapes"

// Phase is the sequencer's discrete state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseMorphIn
	PhaseHold
	PhaseMorphOut
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseMorphIn:
		return "morph_in"
	case PhaseHold:
		return "hold"
	case PhaseMorphOut:
		return "morph_out"
	default:
		return "unknown"
	}
}

// Step is one shape held for Hold seconds once fully morphed in.
type Step struct {
	Shape shapes.Shape
	Hold  float64
}

// Sequence is a named list of steps.
type Sequence int

const (
	SequenceLove Sequence = iota
	SequenceAI
	SequenceCode
	SequenceCosmic
	SequenceLife
	SequenceHire
	sequenceCount
)

type sequenceDef struct {
	name  string
	steps []Step
}

var sequenceDefs = [sequenceCount]sequenceDef{
	SequenceLove: {"love", []Step{
		{shapes.ShapeHeart, 3.5},
		{shapes.ShapeSmallSphere, 1.5},
		{shapes.ShapeHuman, 3},
		{shapes.ShapeHeart, 2.5},
	}},
	SequenceAI: {"ai", []Step{
		{shapes.ShapeDNA, 3},
		{shapes.ShapeGalaxy, 3},
		{shapes.ShapeInfinity, 2.5},
	}},
	SequenceCode: {"code", []Step{
		{shapes.ShapeCube, 3},
		{shapes.ShapeDNA, 2.5},
		{shapes.ShapeCube, 2},
	}},
	SequenceCosmic: {"cosmic", []Step{
		{shapes.ShapeInfinity, 3},
		{shapes.ShapeGalaxy, 3.5},
	}},
	SequenceLife: {"life", []Step{
		{shapes.ShapeTree, 3},
		{shapes.ShapeDNA, 2.5},
		{shapes.ShapeHeart, 2.5},
	}},
	SequenceHire: {"hire", []Step{
		{shapes.ShapeHuman, 2.5},
		{shapes.ShapeInfinity, 3},
		{shapes.ShapeCube, 2},
	}},
}

func (s Sequence) String() string {
	if s < 0 || s >= sequenceCount {
		return "unknown"
	}
	return sequenceDefs[s].name
}

// Steps returns a copy of the sequence's steps.
func (s Sequence) Steps() []Step {
	if s < 0 || s >= sequenceCount {
		return nil
	}
	return append([]Step(nil), sequenceDefs[s].steps...)
}

// ParseSequence looks a sequence up by name.
func ParseSequence(name string) (Sequence, bool) {
	for s := Sequence(0); s < sequenceCount; s++ {
		if sequenceDefs[s].name == name {
			return s, true
		}
	}
	return 0, false
}

// Sequencer plays a list of steps: each shape morphs in linearly, holds,
// then morphs out before the next step begins.
type Sequencer struct {
	morphIn  float64 // seconds from progress 0 to 1
	morphOut float64 // seconds from progress 1 to 0

	active    bool
	steps     []Step
	index     int
	phase     Phase
	progress  float64
	holdTimer float64
}

// NewSequencer returns an idle sequencer with the given morph durations.
func NewSequencer(morphIn, morphOut float64) *Sequencer {
	return &Sequencer{morphIn: morphIn, morphOut: morphOut}
}

// Start pre-empts whatever is playing and begins steps at step 0. It returns
// the first step's shape; ok is false (and nothing changes) for no steps.
func (sq *Sequencer) Start(steps []Step) (first shapes.Shape, ok bool) {
	if len(steps) == 0 {
		return 0, false
	}
	sq.active = true
	sq.steps = append(sq.steps[:0], steps...)
	sq.index = 0
	sq.phase = PhaseMorphIn
	sq.progress = 0
	sq.holdTimer = 0
	return steps[0].Shape, true
}

// Advance runs one frame of phase logic. When a new step begins it returns
// that step's shape with begun set, so the caller can regenerate targets.
func (sq *Sequencer) Advance(delta float64) (next shapes.Shape, begun bool) {
	if !sq.active {
		return 0, false
	}
	step := sq.steps[sq.index]

	switch sq.phase {
	case PhaseMorphIn:
		sq.progress += delta / sq.morphIn
		if sq.progress >= 1 {
			sq.progress = 1
			sq.phase = PhaseHold
			sq.holdTimer = step.Hold
		}
	case PhaseHold:
		sq.holdTimer -= delta
		if sq.holdTimer <= 0 {
			sq.phase = PhaseMorphOut
		}
	case PhaseMorphOut:
		sq.progress -= delta / sq.morphOut
		if sq.progress <= 0 {
			sq.progress = 0
			sq.index++
			if sq.index < len(sq.steps) {
				sq.phase = PhaseMorphIn
				return sq.steps[sq.index].Shape, true
			}
			sq.active = false
			sq.phase = PhaseIdle
		}
	}
	return 0, false
}

func (sq *Sequencer) Active() bool { return sq.active }
func (sq *Sequencer) Phase() Phase { return sq.phase }
func (sq *Sequencer) Progress() float64 { return sq.progress }
func (sq *Sequencer) StepIndex() int { return sq.index }

// Current returns the step being played.
func (sq *Sequencer) Current() (Step, bool) {
	if !sq.active || sq.index >= len(sq.steps) {
		return Step{}, false
	}
	return sq.steps[sq.index], true
}
