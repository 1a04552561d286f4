package entity

import "image/color"

// Emotion is a named affect preset blended in proportion to a decaying
// intensity.
type Emotion int

const (
	EmotionNeutral Emotion = iota
	EmotionHappy
	EmotionCurious
	EmotionSad
	EmotionAngry
	EmotionSurprised
	EmotionThinking
	EmotionPeaceful
	EmotionExcited
	emotionCount
)

// EmotionParams are additive offsets and multipliers layered on top of the
// reaction and shape state.
type EmotionParams struct {
	HueShift                 float64
	Saturation               float64
	Brightness               float64
	BreathSpeed              float64
	AgitationAdd             float64
	MorphBoostAdd            float64
	ScaleOffset              float64
	MouseInfluenceMultiplier float64
	CoreSpeedMultiplier      float64
	ChromaticAdd             float64
}

// goal returns neutral + (p − neutral) × intensity.
func (p EmotionParams) goal(neutral EmotionParams, k float64) EmotionParams {
	mix := func(n, v float64) float64 { return n + (v-n)*k }
	return EmotionParams{
		HueShift:                 mix(neutral.HueShift, p.HueShift),
		Saturation:               mix(neutral.Saturation, p.Saturation),
		Brightness:               mix(neutral.Brightness, p.Brightness),
		BreathSpeed:              mix(neutral.BreathSpeed, p.BreathSpeed),
		AgitationAdd:             mix(neutral.AgitationAdd, p.AgitationAdd),
		MorphBoostAdd:            mix(neutral.MorphBoostAdd, p.MorphBoostAdd),
		ScaleOffset:              mix(neutral.ScaleOffset, p.ScaleOffset),
		MouseInfluenceMultiplier: mix(neutral.MouseInfluenceMultiplier, p.MouseInfluenceMultiplier),
		CoreSpeedMultiplier:      mix(neutral.CoreSpeedMultiplier, p.CoreSpeedMultiplier),
		ChromaticAdd:             mix(neutral.ChromaticAdd, p.ChromaticAdd),
	}
}

// approach moves every field toward target by rate.
func (p *EmotionParams) approach(target EmotionParams, rate float64) {
	step := func(cur *float64, to float64) { *cur += (to - *cur) * rate }
	step(&p.HueShift, target.HueShift)
	step(&p.Saturation, target.Saturation)
	step(&p.Brightness, target.Brightness)
	step(&p.BreathSpeed, target.BreathSpeed)
	step(&p.AgitationAdd, target.AgitationAdd)
	step(&p.MorphBoostAdd, target.MorphBoostAdd)
	step(&p.ScaleOffset, target.ScaleOffset)
	step(&p.MouseInfluenceMultiplier, target.MouseInfluenceMultiplier)
	step(&p.CoreSpeedMultiplier, target.CoreSpeedMultiplier)
	step(&p.ChromaticAdd, target.ChromaticAdd)
}

type emotionPreset struct {
	name   string
	params EmotionParams
	burst  color.RGBA // highlight colour for bursts matching this mood
}

func rgb(hex uint32) color.RGBA {
	return color.RGBA{R: uint8(hex >> 16), G: uint8(hex >> 8), B: uint8(hex), A: 0xff}
}

// DefaultBurstColor is used for bursts not tied to an emotion.
var DefaultBurstColor = rgb(0x00ffe0)

var emotionPresets = [emotionCount]emotionPreset{
	EmotionNeutral: {"neutral", EmotionParams{
		HueShift: 0, Saturation: 0.65, Brightness: 0, BreathSpeed: 1.0,
		AgitationAdd: 0, MorphBoostAdd: 0, ScaleOffset: 0,
		MouseInfluenceMultiplier: 1.0, CoreSpeedMultiplier: 1.0, ChromaticAdd: 0,
	}, rgb(0x00ffe0)},
	EmotionHappy: {"happy", EmotionParams{
		HueShift: 0.08, Saturation: 0.8, Brightness: 0.06, BreathSpeed: 1.3,
		AgitationAdd: 0, MorphBoostAdd: 0.04, ScaleOffset: 0.03,
		MouseInfluenceMultiplier: 1.0, CoreSpeedMultiplier: 1.1, ChromaticAdd: 0,
	}, rgb(0xffaa22)},
	EmotionCurious: {"curious", EmotionParams{
		HueShift: 0.03, Saturation: 0.7, Brightness: 0.02, BreathSpeed: 1.1,
		AgitationAdd: 0.05, MorphBoostAdd: 0.02, ScaleOffset: 0,
		MouseInfluenceMultiplier: 2.0, CoreSpeedMultiplier: 1.4, ChromaticAdd: 0,
	}, rgb(0x44ddff)},
	EmotionSad: {"sad", EmotionParams{
		HueShift: -0.05, Saturation: 0.35, Brightness: -0.06, BreathSpeed: 0.5,
		AgitationAdd: 0, MorphBoostAdd: 0, ScaleOffset: -0.04,
		MouseInfluenceMultiplier: 0.3, CoreSpeedMultiplier: 0.5, ChromaticAdd: 0,
	}, rgb(0x4466aa)},
	EmotionAngry: {"angry", EmotionParams{
		HueShift: -0.15, Saturation: 0.85, Brightness: 0.03, BreathSpeed: 2.0,
		AgitationAdd: 0.3, MorphBoostAdd: 0.1, ScaleOffset: 0.01,
		MouseInfluenceMultiplier: 0.5, CoreSpeedMultiplier: 1.8, ChromaticAdd: 0.008,
	}, rgb(0xff2222)},
	EmotionSurprised: {"surprised", EmotionParams{
		HueShift: 0.02, Saturation: 0.75, Brightness: 0.12, BreathSpeed: 1.6,
		AgitationAdd: 0.15, MorphBoostAdd: 0.15, ScaleOffset: 0.08,
		MouseInfluenceMultiplier: 1.0, CoreSpeedMultiplier: 1.3, ChromaticAdd: 0.004,
	}, rgb(0xffffff)},
	EmotionThinking: {"thinking", EmotionParams{
		HueShift: 0.01, Saturation: 0.6, Brightness: 0.01, BreathSpeed: 0.8,
		AgitationAdd: 0.02, MorphBoostAdd: 0.03, ScaleOffset: 0,
		MouseInfluenceMultiplier: 0.6, CoreSpeedMultiplier: 0.9, ChromaticAdd: 0,
	}, rgb(0x8888ff)},
	EmotionPeaceful: {"peaceful", EmotionParams{
		HueShift: 0.12, Saturation: 0.45, Brightness: 0.03, BreathSpeed: 0.6,
		AgitationAdd: 0, MorphBoostAdd: 0, ScaleOffset: 0.01,
		MouseInfluenceMultiplier: 0.8, CoreSpeedMultiplier: 0.6, ChromaticAdd: 0,
	}, rgb(0x88ffcc)},
	EmotionExcited: {"excited", EmotionParams{
		HueShift: 0.06, Saturation: 0.9, Brightness: 0.08, BreathSpeed: 2.2,
		AgitationAdd: 0.2, MorphBoostAdd: 0.12, ScaleOffset: 0.04,
		MouseInfluenceMultiplier: 1.5, CoreSpeedMultiplier: 2.0, ChromaticAdd: 0.005,
	}, rgb(0xffdd00)},
}

func (e Emotion) String() string {
	if e < 0 || e >= emotionCount {
		return "unknown"
	}
	return emotionPresets[e].name
}

// Params returns the emotion's full-intensity preset.
func (e Emotion) Params() EmotionParams {
	if e < 0 || e >= emotionCount {
		return emotionPresets[EmotionNeutral].params
	}
	return emotionPresets[e].params
}

// BurstColor returns the emotion's burst highlight colour.
func (e Emotion) BurstColor() color.RGBA {
	if e < 0 || e >= emotionCount {
		return DefaultBurstColor
	}
	return emotionPresets[e].burst
}

// ParseEmotion looks an emotion up by name.
func ParseEmotion(name string) (Emotion, bool) {
	for e := Emotion(0); e < emotionCount; e++ {
		if emotionPresets[e].name == name {
			return e, true
		}
	}
	return 0, false
}

// EmotionState is the current emotion, its decaying intensity and the
// smoothed params actually rendered.
type EmotionState struct {
	Current   Emotion
	Intensity float64
	Params    EmotionParams
}

func newEmotionState() EmotionState {
	return EmotionState{Current: EmotionNeutral, Params: EmotionNeutral.Params()}
}

// set overwrites the emotion and intensity; Params keep easing on their own.
func (s *EmotionState) set(e Emotion, intensity float64) {
	s.Current = e
	s.Intensity = min(intensity, 1.0)
}

func (s *EmotionState) update(delta float64, t Tuning) {
	if s.Intensity > 0 {
		s.Intensity *= max(0, 1-delta*t.EmotionDecay)
		if s.Intensity < t.EmotionFloor {
			s.Intensity = 0
			s.Current = EmotionNeutral
		}
	}
	neutral := EmotionNeutral.Params()
	goal := s.Current.Params().goal(neutral, s.Intensity)
	s.Params.approach(goal, t.EmotionRate)
}
