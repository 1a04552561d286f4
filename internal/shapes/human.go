package shapes

import (
	"math"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// outlinePoint is one control point of a closed outline: at parameter t the
// curve passes through (x, y).
type outlinePoint struct {
	t, x, y float64
}

// figureOutline traces a standing figure with outstretched arms, clockwise
// from the right foot, over t in [0, 1).
var figureOutline = [...]outlinePoint{
	{0.000, 0.32, -0.95}, // right foot tip
	{0.035, 0.22, -0.55}, // right shin
	{0.065, 0.20, -0.20}, // right knee
	{0.090, 0.16, -0.05}, // right hip
	{0.110, 0.14, 0.20},  // right waist
	{0.125, 0.16, 0.32},  // right armpit
	{0.160, 0.50, 0.36},  // right elbow
	{0.195, 0.92, 0.38},  // right fingertip
	{0.230, 0.50, 0.32},  // right elbow, underside
	{0.260, 0.16, 0.42},  // right shoulder
	{0.290, 0.08, 0.68},  // right neck
	{0.330, 0.12, 0.82},  // right head
	{0.370, 0.00, 0.92},  // crown
	{0.410, -0.12, 0.82}, // left head
	{0.450, -0.08, 0.68}, // left neck
	{0.480, -0.16, 0.42}, // left shoulder
	{0.510, -0.50, 0.32}, // left elbow, underside
	{0.545, -0.92, 0.38}, // left fingertip
	{0.580, -0.50, 0.36}, // left elbow
	{0.610, -0.16, 0.32}, // left armpit
	{0.630, -0.14, 0.20}, // left waist
	{0.650, -0.16, -0.05}, // left hip
	{0.675, -0.20, -0.20}, // left knee
	{0.705, -0.22, -0.55}, // left shin
	{0.735, -0.32, -0.95}, // left foot tip
	{0.790, -0.06, -0.95}, // left foot inner
	{0.845, 0.00, -0.15},  // crotch
	{0.900, 0.06, -0.95},  // right foot inner
	{0.955, 0.32, -0.95},  // right foot tip, closes the loop
}

func catmullRom(p0, p1, p2, p3, t float64) float64 {
	t2 := t * t
	t3 := t2 * t
	return 0.5 * (2*p1 +
		(-p0+p2)*t +
		(2*p0-5*p1+4*p2-p3)*t2 +
		(-p0+3*p1-3*p2+p3)*t3)
}

// evalOutline samples the closed Catmull-Rom loop through figureOutline.
func evalOutline(t float64) (x, y float64) {
	pts := figureOutline[:]
	n := len(pts)
	t = vmath.Wrap01(t)

	seg := n - 1 // wrap segment, last point back to first
	for s := 0; s < n-1; s++ {
		if t >= pts[s].t && t < pts[s+1].t {
			seg = s
			break
		}
	}

	var local float64
	if seg == n-1 {
		gap := 1 - pts[n-1].t + pts[0].t
		dt := t - pts[n-1].t
		if t < pts[n-1].t {
			dt = t + 1 - pts[n-1].t
		}
		local = dt / nonZero(gap)
	} else {
		local = (t - pts[seg].t) / nonZero(pts[seg+1].t-pts[seg].t)
	}

	wrap := func(i int) int { return ((i % n) + n) % n }
	a, b, c, d := pts[wrap(seg-1)], pts[wrap(seg)], pts[wrap(seg+1)], pts[wrap(seg+2)]

	return catmullRom(a.x, b.x, c.x, d.x, local), catmullRom(a.y, b.y, c.y, d.y, local)
}

func nonZero(v float64) float64 {
	if v == 0 {
		return 0.001
	}
	return v
}

// humanPoint maps the azimuth onto the figure outline; depth from ny is
// thickest near the torso and thins toward the extremities.
func humanPoint(nx, ny, nz float64) (float64, float64, float64) {
	t := outlineAngle(nx, nz) / (2 * math.Pi)
	hx, hy := evalOutline(t)

	dist := math.Hypot(hx, hy)
	thickness := 0.32 * math.Sqrt(math.Max(1-dist*0.5, 0.12))
	return hx, hy, ny * thickness
}
