package field

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// BurstParticle is one spark of a radial burst.
type BurstParticle struct {
	Pos  vmath.Vec3
	Vel  vmath.Vec3 // units per second
	Life float64    // 1 at trigger, dead at <= 0
}

// Burst is a fixed pool of particles thrown outward from the origin.
// Triggering again restarts every particle.
type Burst struct {
	cfg       Config
	particles []BurstParticle
	color     color.RGBA
	opacity   float64
	active    bool
}

func newBurst(cfg Config) *Burst {
	return &Burst{
		cfg:       cfg,
		particles: make([]BurstParticle, cfg.BurstCount),
	}
}

func (b *Burst) trigger(rng *rand.Rand, c color.RGBA) {
	s := b.cfg.BurstSpeed
	for i := range b.particles {
		p := &b.particles[i]
		theta := rng.Float64() * math.Pi * 2
		phi := math.Acos(2*rng.Float64() - 1)
		speed := s[0] + rng.Float64()*(s[1]-s[0])
		p.Pos = vmath.Vec3{}
		p.Vel = vmath.V3FromSpherical(speed, theta, phi)
		p.Life = 1
	}
	b.color = c
	b.opacity = b.cfg.BurstOpacity
	b.active = true
}

func (b *Burst) update(delta float64) {
	if !b.active {
		return
	}
	alive := 0
	for i := range b.particles {
		p := &b.particles[i]
		if p.Life <= 0 {
			continue
		}
		p.Life -= delta * b.cfg.BurstDecay
		p.Pos = vmath.V3Add(p.Pos, vmath.V3Scale(p.Vel, delta))
		p.Vel = vmath.V3Scale(p.Vel, b.cfg.BurstDamping)
		if p.Life > 0 {
			alive++
		}
	}
	b.opacity = math.Max(0, b.opacity-delta*b.cfg.BurstFade)
	if alive == 0 || b.opacity <= 0 {
		b.active = false
		b.opacity = 0
	}
}

func (b *Burst) Particles() []BurstParticle { return b.particles }
func (b *Burst) Active() bool { return b.active }
func (b *Burst) Opacity() float64 { return b.opacity }
func (b *Burst) Color() color.RGBA { return b.color }

// Alive counts particles with life left.
func (b *Burst) Alive() int {
	n := 0
	for _, p := range b.particles {
		if p.Life > 0 {
			n++
		}
	}
	return n
}
