package weapons

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// ComputeFiringSolution returns the launch speed that carries a projectile
// fired from origin at elevationDeg onto target under gravity g with no drag:
//
//	v = sqrt(d²g / (d·sin2θ − 2Δh·cos²θ))
//
// ok is false when no speed reaches the target at that elevation.
func ComputeFiringSolution(origin, target core.Vec3, elevationDeg, g float64) (v float64, ok bool) {
	d := core.FlatDistance(origin, target)
	dh := target.Y - origin.Y
	theta := elevationDeg * core.Deg2Rad

	cos := math.Cos(theta)
	denom := d*math.Sin(2*theta) - 2*dh*cos*cos
	if d == 0 || denom <= 0 {
		return 0, false
	}
	return math.Sqrt(d * d * g / denom), true
}

// ElevationForDistance chooses the gun elevation for a target at distance d:
// proportional to d², clamped at maxElevation beyond maxDistance
func ElevationForDistance(d, maxDistance, maxElevation float64) float64 {
	if maxDistance <= 0 {
		return maxElevation
	}
	return core.Clamp01(d*d/(maxDistance*maxDistance)) * maxElevation
}

// LaunchVelocity is the 3D velocity for a shot from origin toward target
func LaunchVelocity(origin, target core.Vec3, elevationDeg, speed float64) core.Vec3 {
	theta := elevationDeg * core.Deg2Rad
	planar := target.Sub(origin).Flat().Normalize()
	return planar.Scale(math.Cos(theta) * speed).Add(core.V3(0, math.Sin(theta)*speed, 0))
}
