package vmath

import (
	"math"
	"testing"
)

func TestDirection_ZeroLengthFallsBackToOrigin(t *testing.T) {
	x, y, z := Direction(0, 0, 0)
	if x != 0 || y != 0 || z != 0 {
		t.Fatalf("expected origin, got (%v,%v,%v)", x, y, z)
	}
	if math.IsNaN(x) || math.IsNaN(y) || math.IsNaN(z) {
		t.Fatalf("direction of origin must not be NaN")
	}
}

func TestDirection_Unit(t *testing.T) {
	x, y, z := Direction(3, 0, 4)
	if math.Abs(x-0.6) > 1e-12 || y != 0 || math.Abs(z-0.8) > 1e-12 {
		t.Fatalf("expected (0.6,0,0.8), got (%v,%v,%v)", x, y, z)
	}
}

func TestSmoothstep_Endpoints(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-1, 0}, {0, 0}, {0.5, 0.5}, {1, 1}, {2, 1},
	}
	for _, c := range cases {
		if got := Smoothstep(c.in); math.Abs(got-c.want) > 1e-12 {
			t.Fatalf("Smoothstep(%v)=%v, want %v", c.in, got, c.want)
		}
	}
}

func TestApproach_NoOvershoot(t *testing.T) {
	v := 0.0
	for i := 0; i < 500; i++ {
		next := Approach(v, 1, 0.025)
		if next < v || next > 1 {
			t.Fatalf("step %d: %v -> %v overshoots or regresses", i, v, next)
		}
		v = next
	}
}

func TestWrap01(t *testing.T) {
	if got := Wrap01(-0.25); math.Abs(got-0.75) > 1e-12 {
		t.Fatalf("Wrap01(-0.25)=%v, want 0.75", got)
	}
	if got := Wrap01(1.5); math.Abs(got-0.5) > 1e-12 {
		t.Fatalf("Wrap01(1.5)=%v, want 0.5", got)
	}
}

func TestV3Lerp_Midpoint(t *testing.T) {
	m := V3Lerp(Vec3{0, 0, 0}, Vec3{2, 4, -6}, 0.5)
	if m != (Vec3{1, 2, -3}) {
		t.Fatalf("expected (1,2,-3), got %+v", m)
	}
}
