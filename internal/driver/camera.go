package driver

import (
	"math"

	"github.com/Garsondee/Neural-Entity/internal/vmath"
)

// Camera orbits the origin on a sphere, y up, steered by the pointer.
type Camera struct {
	Radius       float64
	AutoRate     float64 // radians of azimuth per second
	PointerYaw   float64 // azimuth per unit of smoothed pointer x
	PointerPitch float64 // polar tilt per unit of smoothed pointer y
	PolarMargin  float64 // keeps the camera this far from either pole
}

// Orbit returns the camera position at time for a smoothed pointer.
func (c Camera) Orbit(time, smoothX, smoothY float64) vmath.Vec3 {
	theta := time*c.AutoRate + smoothX*c.PointerYaw
	phi := vmath.Clamp(math.Pi/2-smoothY*c.PointerPitch, c.PolarMargin, math.Pi-c.PolarMargin)
	sp := math.Sin(phi)
	return vmath.Vec3{
		X: c.Radius * sp * math.Sin(theta),
		Y: c.Radius * math.Cos(phi),
		Z: c.Radius * sp * math.Cos(theta),
	}
}
