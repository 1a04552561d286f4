package field

// Config sizes the particle field and holds its simulation constants.
type Config struct {
	Stars      int
	Nebula     int
	Nodes      int
	Pulses     int
	BurstCount int

	StarRadius   [2]float64 // min, max shell radius
	NebulaRadius [2]float64
	NodeRadius   [2]float64

	NebulaDrift float64 // max per-frame drift per axis (±half)
	NebulaOrbit float64 // per-frame rotation about Y, radians

	EdgeThreshold float64 // node pairs closer than this are joined

	PulseSpeed     [2]float64 // progress per second, min and max
	PulseFirstFire float64    // initial fire delay is uniform in [0, this)
	PulseRefire    [2]float64 // delay after a pulse finishes, min and max

	BurstSpeed   [2]float64 // outward speed, min and max
	BurstDamping float64    // per-frame velocity multiplier
	BurstDecay   float64    // life lost per second
	BurstFade    float64    // opacity lost per second
	BurstOpacity float64    // opacity set by TriggerBurst

	SpinY float64 // field rotation about Y per second
	SpinX float64 // field rotation about X per second
}

func baseConfig() Config {
	return Config{
		StarRadius:   [2]float64{8, 33},
		NebulaRadius: [2]float64{2.5, 9.5},
		NodeRadius:   [2]float64{3.5, 8.5},

		NebulaDrift: 0.003,
		NebulaOrbit: 0.0002,

		EdgeThreshold: 4,

		PulseSpeed:     [2]float64{0.5, 1.5},
		PulseFirstFire: 3,
		PulseRefire:    [2]float64{0.5, 2.5},

		BurstSpeed:   [2]float64{2, 6},
		BurstDamping: 0.97,
		BurstDecay:   1.5,
		BurstFade:    0.8,
		BurstOpacity: 0.8,

		SpinY: 0.008,
		SpinX: 0.004,
	}
}

// FullConfig is the desktop budget.
func FullConfig() Config {
	c := baseConfig()
	c.Stars, c.Nebula, c.Nodes, c.Pulses, c.BurstCount = 2500, 600, 60, 12, 80
	return c
}

// ConstrainedConfig is the budget for small or low-power screens.
func ConstrainedConfig() Config {
	c := baseConfig()
	c.Stars, c.Nebula, c.Nodes, c.Pulses, c.BurstCount = 800, 200, 30, 5, 40
	return c
}
