package entity

// ShapeParams drive the shader-side deformation of every shell.
type ShapeParams struct {
	Spikiness      float64
	Symmetry       float64
	NoiseFrequency float64
	Stretch        float64
}

// approach moves every component toward target by rate.
func (p *ShapeParams) approach(target ShapeParams, rate float64) {
	p.Spikiness += (target.Spikiness - p.Spikiness) * rate
	p.Symmetry += (target.Symmetry - p.Symmetry) * rate
	p.NoiseFrequency += (target.NoiseFrequency - p.NoiseFrequency) * rate
	p.Stretch += (target.Stretch - p.Stretch) * rate
}

// Preset is a named ShapeParams target.
type Preset int

const (
	PresetDefault Preset = iota
	PresetBrain
	PresetCrystal
	PresetReaching
	PresetOrganic
	PresetAggressive
	PresetCosmic
	presetCount
)

var presetNames = [presetCount]string{
	PresetDefault:    "default",
	PresetBrain:      "brain",
	PresetCrystal:    "crystal",
	PresetReaching:   "reaching",
	PresetOrganic:    "organic",
	PresetAggressive: "aggressive",
	PresetCosmic:     "cosmic",
}

var presetParams = [presetCount]ShapeParams{
	PresetDefault:    {Spikiness: 0, Symmetry: 1.0, NoiseFrequency: 1.5, Stretch: 0},
	PresetBrain:      {Spikiness: 0.15, Symmetry: 0.4, NoiseFrequency: 2.8, Stretch: 0.15},
	PresetCrystal:    {Spikiness: 0.7, Symmetry: 1.0, NoiseFrequency: 0.7, Stretch: -0.1},
	PresetReaching:   {Spikiness: 0.3, Symmetry: 0.3, NoiseFrequency: 1.2, Stretch: 0.4},
	PresetOrganic:    {Spikiness: 0, Symmetry: 0.8, NoiseFrequency: 1.0, Stretch: 0.05},
	PresetAggressive: {Spikiness: 0.9, Symmetry: 0.9, NoiseFrequency: 3.5, Stretch: -0.15},
	PresetCosmic:     {Spikiness: 0.1, Symmetry: 0.6, NoiseFrequency: 2.0, Stretch: 0.2},
}

func (p Preset) String() string {
	if p < 0 || p >= presetCount {
		return "unknown"
	}
	return presetNames[p]
}

// Params returns the preset's target values.
func (p Preset) Params() ShapeParams {
	if p < 0 || p >= presetCount {
		return presetParams[PresetDefault]
	}
	return presetParams[p]
}

// ParsePreset looks a preset up by name.
func ParsePreset(name string) (Preset, bool) {
	for p := Preset(0); p < presetCount; p++ {
		if presetNames[p] == name {
			return p, true
		}
	}
	return 0, false
}

// shapeState eases the rendered params toward a target preset and returns
// to the default preset once the hold timer runs out.
type shapeState struct {
	current     ShapeParams
	target      ShapeParams
	returnTimer float64
}

func newShapeState() shapeState {
	d := PresetDefault.Params()
	return shapeState{current: d, target: d}
}

func (s *shapeState) set(p Preset, hold float64) {
	s.target = p.Params()
	s.returnTimer = hold
}

func (s *shapeState) update(delta, rate float64) {
	s.current.approach(s.target, rate)
	if s.returnTimer > 0 {
		s.returnTimer -= delta
		if s.returnTimer <= 0 {
			s.target = PresetDefault.Params()
		}
	}
}
