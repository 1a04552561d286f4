// Package scene flattens a driver frame into backend-neutral 2D primitives
// so the Ebiten viewer and the terminal preview draw the same picture.
package scene

import (
	"math"

	"github.com/Garsondee/Neural-Entity/internal/entity"
	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// nearPlane drops points closer to the eye than this.
const nearPlane = 0.1

// View is a perspective camera at Eye looking at the origin, y up.
type View struct {
	Eye            vmath.Vec3
	right, up, fwd vmath.Vec3
	focal, cx, cy  float64
	aspect         float64 // horizontal stretch for non-square cells
	width, height  float64
}

// NewView builds a camera for a width×height target with a vertical field
// of view in degrees. aspect > 1 widens x, for terminal cells taller than
// they are wide.
func NewView(eye vmath.Vec3, width, height, fovDeg, aspect float64) View {
	fwd := vmath.V3Scale(eye, -1/math.Max(vmath.V3Mag(eye), 1e-9))
	right := cross(fwd, vmath.Vec3{Y: 1})
	if vmath.V3Mag(right) < 1e-9 {
		right = vmath.Vec3{X: 1}
	}
	right = vmath.V3Scale(right, 1/vmath.V3Mag(right))
	up := cross(right, fwd)
	if aspect <= 0 {
		aspect = 1
	}
	return View{
		Eye:    eye,
		right:  right,
		up:     up,
		fwd:    fwd,
		focal:  height / 2 / math.Tan(fovDeg*math.Pi/360),
		cx:     width / 2,
		cy:     height / 2,
		aspect: aspect,
		width:  width,
		height: height,
	}
}

// Project maps a world point to target pixels. ok is false behind the near
// plane or outside the target.
func (v View) Project(p vmath.Vec3) (x, y, depth float64, ok bool) {
	d := vmath.V3Sub(p, v.Eye)
	z := dot(d, v.fwd)
	if z < nearPlane {
		return 0, 0, z, false
	}
	x = v.cx + dot(d, v.right)/z*v.focal*v.aspect
	y = v.cy - dot(d, v.up)/z*v.focal
	if x < 0 || y < 0 || x >= v.width || y >= v.height {
		return x, y, z, false
	}
	return x, y, z, true
}

// RotateEuler applies an XYZ-order Euler rotation: Z first, then Y, then X.
func RotateEuler(p vmath.Vec3, e entity.Euler) vmath.Vec3 {
	if e.Z != 0 {
		s, c := math.Sincos(e.Z)
		p.X, p.Y = p.X*c-p.Y*s, p.X*s+p.Y*c
	}
	if e.Y != 0 {
		s, c := math.Sincos(e.Y)
		p.X, p.Z = p.X*c+p.Z*s, -p.X*s+p.Z*c
	}
	if e.X != 0 {
		s, c := math.Sincos(e.X)
		p.Y, p.Z = p.Y*c-p.Z*s, p.Y*s+p.Z*c
	}
	return p
}

func dot(a, b vmath.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

func cross(a, b vmath.Vec3) vmath.Vec3 {
	return vmath.Vec3{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}
