package weapons

import (
	"math"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// NotFinished is the follow finish time of something still in flight
const NotFinished = math.MaxFloat64

// FollowTarget is anything the camera can track during an attack
type FollowTarget interface {
	Position() core.Vec3
	FlightFraction() float64
	DistanceToTarget() float64
	FollowFinishTime() float64
	FollowZoom() float64
}

// FollowProxy forwards to a principal that can be swapped while an attack
// progresses (vessel, then aircraft, then missile)
type FollowProxy struct {
	Principal FollowTarget
}

func NewFollowProxy(principal FollowTarget) *FollowProxy {
	return &FollowProxy{Principal: principal}
}

func (p *FollowProxy) Position() core.Vec3 {
	if p.Principal == nil {
		return core.Vec3{}
	}
	return p.Principal.Position()
}

func (p *FollowProxy) FlightFraction() float64 {
	if p.Principal == nil {
		return 0
	}
	return p.Principal.FlightFraction()
}

func (p *FollowProxy) DistanceToTarget() float64 {
	if p.Principal == nil {
		return -1
	}
	return p.Principal.DistanceToTarget()
}

func (p *FollowProxy) FollowFinishTime() float64 {
	if p.Principal == nil {
		return NotFinished
	}
	return p.Principal.FollowFinishTime()
}

func (p *FollowProxy) FollowZoom() float64 {
	if p.Principal == nil {
		return 1
	}
	return p.Principal.FollowZoom()
}

// StaticFollow is a fixed point, used for the origin of an attack before
// anything is in flight
type StaticFollow struct {
	Pos  core.Vec3
	Zoom float64
}

func (s StaticFollow) Position() core.Vec3       { return s.Pos }
func (s StaticFollow) FlightFraction() float64   { return 0 }
func (s StaticFollow) DistanceToTarget() float64 { return -1 }
func (s StaticFollow) FollowFinishTime() float64 { return NotFinished }
func (s StaticFollow) FollowZoom() float64       { return s.Zoom }
