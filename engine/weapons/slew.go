package weapons

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// SlewController accelerates an axis toward a target, braking so it stops on it
type SlewController struct {
	acceleration float64
	maxSpeed     float64
	speed        float64
}

func (s *SlewController) halt() { s.speed = 0 }

// Speed is the current rate of the axis
func (s *SlewController) Speed() float64 { return s.speed }

func (s *SlewController) updateSpeed(distance, dt float64) float64 {
	if dt <= 0 {
		return s.speed
	}
	// Time and distance needed to come to a stop
	timeToStop := math.Abs(s.speed) / s.acceleration
	distToStop := math.Abs(s.speed)*timeToStop - 0.5*s.acceleration*timeToStop*timeToStop

	if distance == 0 {
		s.speed = 0
		return 0
	}

	var delta float64
	if s.speed != 0 && sign(distance) != sign(s.speed) {
		// Moving the wrong way; reverse first
		delta = s.acceleration * -sign(s.speed)
	} else {
		if s.speed != 0 {
			// Would overshoot this tick: land exactly on target
			if distance/s.speed <= dt {
				s.speed = distance / dt
				return s.speed
			}
		}
		if math.Abs(distance) > math.Abs(distToStop) {
			delta = s.acceleration * sign(distance)
		} else {
			delta = -s.acceleration * sign(distance)
		}
	}

	s.speed = core.Clamp(s.speed+delta*dt, -s.maxSpeed, s.maxSpeed)
	return s.speed
}

func sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

// SnappingAngleSlewController slews an angle in degrees and reports the
// target itself once within the snap angle
type SnappingAngleSlewController struct {
	SlewController
	Target    float64
	current   float64
	snapAngle float64
}

func NewSnappingAngleSlewController(initial, snapAngle, acceleration, maxSpeed float64) *SnappingAngleSlewController {
	return &SnappingAngleSlewController{
		SlewController: SlewController{acceleration: acceleration, maxSpeed: maxSpeed},
		Target:         initial,
		current:        initial,
		snapAngle:      snapAngle,
	}
}

// Delta is the signed shortest angle from the current angle to the target
func (c *SnappingAngleSlewController) Delta() float64 { return core.DeltaAngle(c.current, c.Target) }

func (c *SnappingAngleSlewController) IsOnTarget() bool { return math.Abs(c.Delta()) < c.snapAngle }

// Current is the raw axis angle
func (c *SnappingAngleSlewController) Current() float64 { return c.current }

// Reset stops the axis at angle
func (c *SnappingAngleSlewController) Reset(angle float64) {
	c.halt()
	c.Target = angle
	c.current = angle
}

// Update advances the axis and returns the displayed angle
func (c *SnappingAngleSlewController) Update(dt float64) float64 {
	c.updateSpeed(c.Delta(), dt)
	c.current = core.Wrap360(c.current + c.speed*dt)
	if c.IsOnTarget() {
		return c.Target
	}
	return c.current
}

// Snap jumps the axis onto its target
func (c *SnappingAngleSlewController) Snap() {
	c.Reset(c.Target)
}
