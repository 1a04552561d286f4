// Package field simulates the ambient particle field around the entity:
// drifting stars and nebula, a static neural web with travelling pulses,
// and transient radial bursts.
package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// ParkedPosition is where idle pulses are placed, well outside the scene.
var ParkedPosition = vmath.Vec3{Z: -100}

// nebulaPalette is the set of RGB tints nebula points are drawn from.
var nebulaPalette = [...][3]float32{
	{0.0, 0.8, 0.75},  // cyan
	{0.0, 0.6, 0.55},  // teal
	{0.4, 0.2, 0.8},   // purple
	{0.8, 0.3, 0.1},   // warm amber
	{0.15, 0.05, 0.4}, // deep violet
	{0.9, 0.1, 0.2},   // red accent
}

// NebulaPoint drifts with a fixed velocity and orbits the vertical axis.
type NebulaPoint struct {
	Pos   vmath.Vec3
	Vel   vmath.Vec3 // per frame
	Color [3]float32
}

// Pulse is a marker travelling along one edge of the web.
type Pulse struct {
	Active   bool
	Edge     int
	Progress float64 // 0..1 along the edge
	Speed    float64 // progress per second
	NextFire float64 // seconds until an idle pulse attaches
	Position vmath.Vec3
}

// Field owns every particle. It is not safe for concurrent use.
type Field struct {
	cfg Config
	rng *rand.Rand

	stars  []vmath.Vec3
	nebula []NebulaPoint
	nodes  []vmath.Vec3
	edges  []Edge
	pulses []Pulse
	burst  *Burst

	rotation vmath.Vec3 // field group rotation, radians
}

// New samples the field once. rng drives all placement and timing, so a
// seeded source gives a reproducible field.
func New(cfg Config, rng *rand.Rand) *Field {
	f := &Field{cfg: cfg, rng: rng}

	f.stars = make([]vmath.Vec3, cfg.Stars)
	for i := range f.stars {
		f.stars[i] = samplePoint(rng, cfg.StarRadius[0], cfg.StarRadius[1])
	}

	f.nebula = make([]NebulaPoint, cfg.Nebula)
	for i := range f.nebula {
		n := &f.nebula[i]
		n.Pos = samplePoint(rng, cfg.NebulaRadius[0], cfg.NebulaRadius[1])
		n.Color = nebulaPalette[rng.Intn(len(nebulaPalette))]
		n.Vel = vmath.Vec3{
			X: (rng.Float64() - 0.5) * cfg.NebulaDrift,
			Y: (rng.Float64() - 0.5) * cfg.NebulaDrift,
			Z: (rng.Float64() - 0.5) * cfg.NebulaDrift,
		}
	}

	f.nodes = make([]vmath.Vec3, cfg.Nodes)
	for i := range f.nodes {
		f.nodes[i] = samplePoint(rng, cfg.NodeRadius[0], cfg.NodeRadius[1])
	}
	f.edges = BuildEdges(f.nodes, cfg.EdgeThreshold)

	f.pulses = make([]Pulse, cfg.Pulses)
	for i := range f.pulses {
		f.pulses[i] = Pulse{
			Speed:    cfg.PulseSpeed[0] + rng.Float64()*(cfg.PulseSpeed[1]-cfg.PulseSpeed[0]),
			NextFire: rng.Float64() * cfg.PulseFirstFire,
			Position: ParkedPosition,
		}
	}

	f.burst = newBurst(cfg)
	return f
}

// Update advances drift, pulses and the burst by one frame.
func (f *Field) Update(time, delta float64) {
	f.rotation.Y += delta * f.cfg.SpinY
	f.rotation.X += delta * f.cfg.SpinX

	f.updateNebula()
	f.updatePulses(delta)
	f.burst.update(delta)
}

// updateNebula drifts each point then rotates it on the horizontal plane.
func (f *Field) updateNebula() {
	sa, ca := math.Sincos(f.cfg.NebulaOrbit)
	for i := range f.nebula {
		n := &f.nebula[i]
		n.Pos = vmath.V3Add(n.Pos, n.Vel)
		x, z := n.Pos.X, n.Pos.Z
		n.Pos.X = x*ca - z*sa
		n.Pos.Z = x*sa + z*ca
	}
}

func (f *Field) updatePulses(delta float64) {
	for i := range f.pulses {
		p := &f.pulses[i]
		if !p.Active {
			p.NextFire -= delta
			if p.NextFire > 0 || len(f.edges) == 0 {
				p.Position = ParkedPosition
				continue
			}
			p.Active = true
			p.Edge = f.rng.Intn(len(f.edges))
			p.Progress = 0
		} else {
			p.Progress += delta * p.Speed
		}
		if p.Progress >= 1 {
			p.Active = false
			r := f.cfg.PulseRefire
			p.NextFire = r[0] + f.rng.Float64()*(r[1]-r[0])
			p.Position = ParkedPosition
			continue
		}
		e := f.edges[p.Edge]
		p.Position = vmath.V3Lerp(f.nodes[e.From], f.nodes[e.To], p.Progress)
	}
}

// TriggerBurst restarts the burst from the origin in colour c.
func (f *Field) TriggerBurst(c color.RGBA) {
	f.burst.trigger(f.rng, c)
}

func (f *Field) Stars() []vmath.Vec3 { return f.stars }
func (f *Field) Nebula() []NebulaPoint { return f.nebula }
func (f *Field) Nodes() []vmath.Vec3 { return f.nodes }
func (f *Field) Edges() []Edge { return f.edges }
func (f *Field) Pulses() []Pulse { return f.pulses }
func (f *Field) Burst() *Burst { return f.burst }
func (f *Field) Rotation() vmath.Vec3 { return f.rotation }
func (f *Field) Config() Config { return f.cfg }

// ActivePulses counts pulses currently travelling.
func (f *Field) ActivePulses() int {
	n := 0
	for _, p := range f.pulses {
		if p.Active {
			n++
		}
	}
	return n
}
