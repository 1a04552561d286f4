package shapes

import (
	"math"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// outlineAngle turns the sphere's azimuth into a curve parameter in [0, 2π].
func outlineAngle(nx, nz float64) float64 {
	return math.Atan2(nx, nz) + math.Pi
}

// heartPoint traces the classic parametric heart; depth comes from ny with a
// lens profile that is thicker toward the centre of the outline.
func heartPoint(nx, ny, nz float64) (float64, float64, float64) {
	t := outlineAngle(nx, nz)

	st := math.Sin(t)
	hx := st * st * st
	rawY := 13*math.Cos(t) - 5*math.Cos(2*t) - 2*math.Cos(3*t) - math.Cos(4*t)
	hy := (rawY + 5) / 17

	curveR := math.Hypot(hx, hy)
	thickness := 0.4 * math.Sqrt(math.Max(curveR, 0.1))
	return hx, hy, ny * thickness
}

// helix geometry.
const (
	helixTurns  = 2.5
	helixRadius = 0.45
	helixTube   = 0.09
	// strandBand is the width of the azimuth blend region where a vertex
	// crosses from one strand to the other.
	strandBand = 0.1
)

// helixPoint winds two strands around the vertical axis. The strand a vertex
// belongs to and its place on the tube cross-section both come from the same
// azimuth, and the crossover between strands is smoothstepped so vertices in
// the band bridge the strands instead of jumping.
func helixPoint(nx, ny, nz float64) (float64, float64, float64) {
	y := ny * 1.6
	helixAngle := ny * helixTurns * math.Pi * 2

	theta := math.Atan2(nz, nx)
	blend := math.Sin(theta)*0.5 + 0.5
	strandOffset := math.Pi * vmath.Smoothstep((blend-0.5+strandBand/2)/strandBand)

	cx := math.Cos(helixAngle+strandOffset) * helixRadius
	cz := math.Sin(helixAngle+strandOffset) * helixRadius

	local := theta * 2
	tx := math.Cos(local) * helixTube
	tz := math.Sin(local) * helixTube

	rl := math.Max(math.Hypot(cx, cz), 0.01)
	rx, rz := cx/rl, cz/rl

	return cx + rx*tx + tz*0.3, y, cz + rz*tx - rx*tz*0.3
}

// cubePoint projects the direction radially onto the unit cube surface.
func cubePoint(nx, ny, nz float64) (float64, float64, float64) {
	m := math.Max(math.Abs(nx), math.Max(math.Abs(ny), math.Abs(nz)))
	if m == 0 {
		m = 1
	}
	return nx / m, ny / m, nz / m
}

// galaxy geometry.
const (
	galaxyArms  = 3
	galaxyTwist = 4.0
)

// galaxyPoint flattens the sphere to a disc (poles at the centre, equator at
// the rim), twists it along a log spiral and pushes vertices toward the arms.
func galaxyPoint(nx, ny, nz float64) (float64, float64, float64) {
	angle := math.Atan2(nz, nx)
	r := (1 - math.Abs(ny)) * 1.2

	spiral := angle + r*galaxyTwist
	phase := vmath.Wrap01(spiral * galaxyArms / (2 * math.Pi))
	arm := math.Pow(math.Cos(phase*math.Pi*2)*0.5+0.5, 2)

	armR := r * (0.85 + arm*0.25)

	thick := 0.04 * (1 - r*0.7)
	wobble := math.Sin(spiral*galaxyArms) * 0.06 * arm
	y := ny*thick + wobble

	if armR < 0.2 {
		armR *= 0.8
	}
	return math.Cos(angle) * armR, y, math.Sin(angle) * armR
}

// infinityPoint traces the lemniscate of Bernoulli with a constant depth.
func infinityPoint(nx, ny, nz float64) (float64, float64, float64) {
	t := outlineAngle(nx, nz)
	st, ct := math.Sin(t), math.Cos(t)
	d := 1 + st*st
	return ct / d * 1.6, st * ct / d * 0.9, ny * 0.35
}

func smallSpherePoint(nx, ny, nz float64) (float64, float64, float64) {
	return nx, ny, nz
}

// tree bands along ny.
const (
	trunkTop  = -0.1
	canopyBot = 0.1
)

// treePoint splits height into trunk, transition and canopy bands; the
// transition band smoothsteps from trunk width to canopy width.
func treePoint(nx, ny, nz float64) (float64, float64, float64) {
	h := ny
	var w, y float64

	switch {
	case h < trunkTop:
		tt := (h + 1) / (trunkTop + 1)
		w = 0.06 + tt*0.04
		w += math.Max(0, 1-tt*3) * 0.08 // root flare
		y = -0.4 + (h+1)*0.45
	case h < canopyBot:
		s := vmath.Smoothstep((h - trunkTop) / (canopyBot - trunkTop))
		w = 0.10*(1-s) + 0.55*s
		y = s * 0.15
	default:
		ct := (h - canopyBot) / (1 - canopyBot)
		w = 0.55*math.Sin(ct*math.Pi*0.85+0.15) + 0.08
		y = 0.15 + ct*0.8
		angle := math.Atan2(nz, nx)
		w += math.Sin(angle*5+ct*3) * 0.06 * (1 - ct)
	}
	return nx * w, y, nz * w
}
