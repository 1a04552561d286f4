package entity

// Tuning holds the entity's rate constants. Per-frame factors apply once per
// Update call; per-second values are scaled by delta.
type Tuning struct {
	PulseDecay      float64 // per-frame multiplier on pulse intensity
	MorphBoostDecay float64 // per-frame multiplier on morph boost
	SnapThreshold   float64 // pulse/morph boost below this snap to 0

	HueRate     float64 // per-frame approach of hueShift to its target
	ShapeRate   float64 // per-frame approach of current shape params to target
	EmotionRate float64 // per-frame approach of emotion params to their goal

	EmotionDecay            float64 // per-second decay of emotion intensity
	EmotionFloor            float64 // intensity below this resets to neutral
	DefaultEmotionIntensity float64 // used when a stimulus names an emotion without intensity
	HappyThreshold          float64 // happy oscillation only above this intensity

	ReturnSeconds   float64 // shape preset hold before returning to default
	MorphInSeconds  float64
	MorphOutSeconds float64

	BreathRate      float64 // radians per second at breathSpeed 1
	BreathDepth     float64
	MorphBoostScale float64 // morph boost contribution to morph intensity

	IdleRotationRate float64 // per-frame approach of group rotation to pointer
	AgitationRate    float64 // per-frame approach of agitation to its target
}

// DefaultTuning returns the tuned constants the entity ships with.
func DefaultTuning() Tuning {
	return Tuning{
		PulseDecay:      0.90,
		MorphBoostDecay: 0.93,
		SnapThreshold:   0.005,

		HueRate:     0.015,
		ShapeRate:   0.025,
		EmotionRate: 0.04,

		EmotionDecay:            0.35,
		EmotionFloor:            0.01,
		DefaultEmotionIntensity: 0.8,
		HappyThreshold:          0.1,

		ReturnSeconds:   12,
		MorphInSeconds:  1.5,
		MorphOutSeconds: 0.8,

		BreathRate:      0.4,
		BreathDepth:     0.025,
		MorphBoostScale: 0.15,

		IdleRotationRate: 0.015,
		AgitationRate:    0.1,
	}
}

// Config sizes the entity's meshes and carries its tuning.
type Config struct {
	Detail    int // subdivision of the morphing body shell
	DetailLow int // subdivision of the outer and core shells
	Tuning    Tuning
}

// FullConfig is the desktop budget.
func FullConfig() Config {
	return Config{Detail: 40, DetailLow: 24, Tuning: DefaultTuning()}
}

// ConstrainedConfig is the budget for small or low-power screens.
func ConstrainedConfig() Config {
	return Config{Detail: 20, DetailLow: 12, Tuning: DefaultTuning()}
}
