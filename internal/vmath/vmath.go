package vmath

import "math"

// Vec3 is a float64 3D vector used for node, pulse and burst positions.
type Vec3 struct {
	X, Y, Z float64
}

func V3Add(a, b Vec3) Vec3 {
	return Vec3{a.X + b.X, a.Y + b.Y, a.Z + b.Z}
}

func V3Sub(a, b Vec3) Vec3 {
	return Vec3{a.X - b.X, a.Y - b.Y, a.Z - b.Z}
}

func V3Scale(v Vec3, s float64) Vec3 {
	return Vec3{v.X * s, v.Y * s, v.Z * s}
}

func V3MagSq(v Vec3) float64 {
	return v.X*v.X + v.Y*v.Y + v.Z*v.Z
}

func V3Mag(v Vec3) float64 {
	return math.Sqrt(V3MagSq(v))
}

// V3Dist returns the Euclidean distance between a and b.
func V3Dist(a, b Vec3) float64 {
	return V3Mag(V3Sub(a, b))
}

// V3Lerp interpolates linearly from a (t=0) to b (t=1).
func V3Lerp(a, b Vec3, t float64) Vec3 {
	return Vec3{
		a.X + (b.X-a.X)*t,
		a.Y + (b.Y-a.Y)*t,
		a.Z + (b.Z-a.Z)*t,
	}
}

// V3FromSpherical converts radius, azimuth theta and polar phi to cartesian,
// with phi measured from +Z.
func V3FromSpherical(r, theta, phi float64) Vec3 {
	sp := math.Sin(phi)
	return Vec3{
		r * sp * math.Cos(theta),
		r * sp * math.Sin(theta),
		r * math.Cos(phi),
	}
}

// Direction returns the unit direction of (x,y,z). A zero-length input uses
// a length of 1, so the origin maps to itself instead of NaN.
func Direction(x, y, z float64) (nx, ny, nz float64) {
	l := math.Sqrt(x*x + y*y + z*z)
	if l == 0 {
		l = 1
	}
	return x / l, y / l, z / l
}

// Clamp01 clamps t to [0,1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// Clamp clamps v to [lo,hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Smoothstep is 3t²−2t³ on t clamped to [0,1].
func Smoothstep(t float64) float64 {
	t = Clamp01(t)
	return t * t * (3 - 2*t)
}

// Approach moves cur toward target by the fraction rate of the gap.
// For rate in (0,1] the result never overshoots target.
func Approach(cur, target, rate float64) float64 {
	return cur + (target-cur)*rate
}

// Wrap01 maps t into [0,1).
func Wrap01(t float64) float64 {
	t = math.Mod(t, 1)
	if t < 0 {
		t++
	}
	return t
}
