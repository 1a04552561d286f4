package field

import (
	"image/color"
	"math"
	"math/rand"
	"testing"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

const frame = 1.0 / 60

func smallConfig() Config {
	c := ConstrainedConfig()
	c.Stars, c.Nebula = 50, 30
	return c
}

func newTestField(seed int64) *Field {
	return New(smallConfig(), rand.New(rand.NewSource(seed))) // #nosec G404 -- test
}

// --- Sampling ---

func TestField_CountsMatchConfig(t *testing.T) {
	cfg := smallConfig()
	f := newTestField(1)
	if len(f.Stars()) != cfg.Stars || len(f.Nebula()) != cfg.Nebula || len(f.Nodes()) != cfg.Nodes {
		t.Fatalf("counts: stars=%d nebula=%d nodes=%d", len(f.Stars()), len(f.Nebula()), len(f.Nodes()))
	}
	if len(f.Pulses()) != cfg.Pulses {
		t.Fatalf("expected %d pulses, got %d", cfg.Pulses, len(f.Pulses()))
	}
	if len(f.Burst().Particles()) != cfg.BurstCount {
		t.Fatalf("expected %d burst particles, got %d", cfg.BurstCount, len(f.Burst().Particles()))
	}
}

func TestField_PointsWithinShells(t *testing.T) {
	cfg := smallConfig()
	f := newTestField(2)
	check := func(name string, pts []vmath.Vec3, r [2]float64) {
		for i, p := range pts {
			d := vmath.V3Mag(p)
			if d < r[0]-1e-9 || d > r[1]+1e-9 {
				t.Fatalf("%s %d at radius %.3f outside [%.1f, %.1f]", name, i, d, r[0], r[1])
			}
		}
	}
	check("star", f.Stars(), cfg.StarRadius)
	check("node", f.Nodes(), cfg.NodeRadius)
}

func TestField_SeededIsDeterministic(t *testing.T) {
	a, b := newTestField(7), newTestField(7)
	for i := 0; i < 120; i++ {
		a.Update(float64(i)*frame, frame)
		b.Update(float64(i)*frame, frame)
	}
	for i := range a.Nodes() {
		if a.Nodes()[i] != b.Nodes()[i] {
			t.Fatalf("node %d differs between equal seeds", i)
		}
	}
	for i := range a.Pulses() {
		if a.Pulses()[i] != b.Pulses()[i] {
			t.Fatalf("pulse %d differs between equal seeds", i)
		}
	}
}

// --- Web ---

func TestBuildEdges_Properties(t *testing.T) {
	f := newTestField(3)
	threshold := f.Config().EdgeThreshold
	seen := map[[2]int]bool{}
	for _, e := range f.Edges() {
		if e.From == e.To {
			t.Fatalf("self edge on node %d", e.From)
		}
		if e.From > e.To {
			t.Fatalf("edge %d-%d not ordered", e.From, e.To)
		}
		key := [2]int{e.From, e.To}
		if seen[key] {
			t.Fatalf("duplicate edge %v", key)
		}
		seen[key] = true
		if e.Distance >= threshold {
			t.Fatalf("edge %v distance %.3f not under %.1f", key, e.Distance, threshold)
		}
		if math.Abs(e.Alpha-(1-e.Distance/threshold)) > 1e-12 {
			t.Fatalf("edge %v alpha %.4f, distance %.4f", key, e.Alpha, e.Distance)
		}
	}
}

func TestBuildEdges_ExactPairs(t *testing.T) {
	nodes := []vmath.Vec3{{}, {X: 1}, {X: 10}, {X: 3.9}}
	edges := BuildEdges(nodes, 4)
	want := [][2]int{{0, 1}, {0, 3}, {1, 3}}
	if len(edges) != len(want) {
		t.Fatalf("expected %d edges, got %d: %+v", len(want), len(edges), edges)
	}
	for i, w := range want {
		if edges[i].From != w[0] || edges[i].To != w[1] {
			t.Fatalf("edge %d: expected %v, got %d-%d", i, w, edges[i].From, edges[i].To)
		}
	}
}

func TestBuildEdges_BoundaryExcluded(t *testing.T) {
	if edges := BuildEdges([]vmath.Vec3{{}, {X: 4}}, 4); len(edges) != 0 {
		t.Fatalf("nodes exactly at threshold should not join, got %+v", edges)
	}
}

// --- Pulses ---

func TestPulses_ParkedWhileIdle(t *testing.T) {
	f := newTestField(4)
	for i := 0; i < 600; i++ {
		f.Update(float64(i)*frame, frame)
		for j, p := range f.Pulses() {
			if !p.Active && p.Position != ParkedPosition {
				t.Fatalf("tick %d: idle pulse %d at %+v", i, j, p.Position)
			}
		}
	}
}

func TestPulses_TravelAlongEdge(t *testing.T) {
	f := newTestField(5)
	if len(f.Edges()) == 0 {
		t.Skip("seed produced no edges")
	}
	travelled := false
	for i := 0; i < 600; i++ {
		f.Update(float64(i)*frame, frame)
		for j, p := range f.Pulses() {
			if !p.Active {
				continue
			}
			travelled = true
			e := f.Edges()[p.Edge]
			want := vmath.V3Lerp(f.Nodes()[e.From], f.Nodes()[e.To], p.Progress)
			if vmath.V3Dist(want, p.Position) > 1e-9 {
				t.Fatalf("tick %d: pulse %d off its edge", i, j)
			}
			if p.Progress < 0 || p.Progress >= 1 {
				t.Fatalf("tick %d: pulse %d progress %.3f", i, j, p.Progress)
			}
		}
	}
	if !travelled {
		t.Fatal("expected at least one pulse to fire within 10s")
	}
}

func TestPulses_StartAtEdgeOriginWhenFired(t *testing.T) {
	f := newTestField(5)
	if len(f.Edges()) == 0 {
		t.Skip("seed produced no edges")
	}
	wasActive := make([]bool, len(f.Pulses()))
	fired := 0
	for i := 0; i < 600; i++ {
		f.Update(float64(i)*frame, frame)
		for j, p := range f.Pulses() {
			if p.Active && !wasActive[j] {
				fired++
				if p.Progress != 0 {
					t.Fatalf("tick %d: pulse %d fired at progress %.3f", i, j, p.Progress)
				}
				start := f.Nodes()[f.Edges()[p.Edge].From]
				if vmath.V3Dist(start, p.Position) > 1e-9 {
					t.Fatalf("tick %d: pulse %d fired at %+v, expected edge start %+v", i, j, p.Position, start)
				}
			}
			wasActive[j] = p.Active
		}
	}
	if fired == 0 {
		t.Fatal("expected at least one pulse to fire within 10s")
	}
}

func TestPulses_NoEdgesStayParked(t *testing.T) {
	cfg := smallConfig()
	cfg.EdgeThreshold = 0
	f := New(cfg, rand.New(rand.NewSource(6))) // #nosec G404 -- test
	for i := 0; i < 300; i++ {
		f.Update(float64(i)*frame, frame)
	}
	if f.ActivePulses() != 0 {
		t.Fatalf("pulses fired without edges: %d active", f.ActivePulses())
	}
}

// --- Burst ---

func TestBurst_TriggerResets(t *testing.T) {
	f := newTestField(8)
	red := color.RGBA{R: 0xff, A: 0xff}
	f.TriggerBurst(red)
	for i := 0; i < 10; i++ {
		f.Update(float64(i)*frame, frame)
	}
	f.TriggerBurst(red)

	b := f.Burst()
	if !b.Active() {
		t.Fatal("burst should be active after trigger")
	}
	if b.Opacity() != f.Config().BurstOpacity {
		t.Fatalf("expected opacity %.2f, got %.2f", f.Config().BurstOpacity, b.Opacity())
	}
	if b.Color() != red {
		t.Fatalf("expected burst colour %v, got %v", red, b.Color())
	}
	s := f.Config().BurstSpeed
	for i, p := range b.Particles() {
		if p.Life != 1 {
			t.Fatalf("particle %d life %.3f after trigger", i, p.Life)
		}
		if p.Pos != (vmath.Vec3{}) {
			t.Fatalf("particle %d not at origin: %+v", i, p.Pos)
		}
		sp := vmath.V3Mag(p.Vel)
		if sp < s[0]-1e-9 || sp > s[1]+1e-9 {
			t.Fatalf("particle %d speed %.3f outside [%.0f, %.0f]", i, sp, s[0], s[1])
		}
	}
}

func TestBurst_ExpiresWithinThreeSeconds(t *testing.T) {
	f := newTestField(9)
	f.TriggerBurst(color.RGBA{G: 0xff, A: 0xff})
	for i := 0; i < 180; i++ {
		f.Update(float64(i)*frame, frame)
	}
	b := f.Burst()
	if b.Active() {
		t.Fatal("burst still active after 3s")
	}
	if b.Opacity() != 0 {
		t.Fatalf("expected opacity 0, got %.3f", b.Opacity())
	}
}

func TestBurst_ParticlesMoveOutward(t *testing.T) {
	f := newTestField(10)
	f.TriggerBurst(color.RGBA{B: 0xff, A: 0xff})
	f.Update(0, frame)
	f.Update(frame, frame)
	for i, p := range f.Burst().Particles() {
		if vmath.V3Mag(p.Pos) <= 0 {
			t.Fatalf("particle %d did not leave the origin", i)
		}
	}
}

func TestBurst_IdleUntilTriggered(t *testing.T) {
	f := newTestField(11)
	f.Update(0, frame)
	if f.Burst().Active() || f.Burst().Alive() != 0 {
		t.Fatal("burst should start inactive")
	}
}

// --- Drift ---

func TestField_RotationAdvances(t *testing.T) {
	f := newTestField(12)
	for i := 0; i < 60; i++ {
		f.Update(float64(i)*frame, frame)
	}
	r := f.Rotation()
	if math.Abs(r.Y-f.Config().SpinY) > 1e-9 || math.Abs(r.X-f.Config().SpinX) > 1e-9 {
		t.Fatalf("after 1s expected rotation (%.4f, %.4f), got (%.4f, %.4f)",
			f.Config().SpinX, f.Config().SpinY, r.X, r.Y)
	}
}

func TestNebula_Moves(t *testing.T) {
	f := newTestField(13)
	before := append([]NebulaPoint(nil), f.Nebula()...)
	f.Update(0, frame)
	moved := 0
	for i, n := range f.Nebula() {
		if n.Pos != before[i].Pos {
			moved++
		}
	}
	if moved == 0 {
		t.Fatal("nebula did not move")
	}
}
