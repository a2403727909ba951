package weapons

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// InFlightUpdate is called every tick a missile is airborne
type InFlightUpdate func(m Missile, timeOfFlight, flightFraction float64)

// LaunchConfig carries everything a missile needs for one flight
type LaunchConfig struct {
	Origin       core.Vec3
	Heading      core.Vec3 // initial direction; zero points at the target
	InitialSpeed float64
	Target       core.Vec3
	Layer        core.Layer
	Fuse         FuseResult

	OnImpact            func(FuseResult)
	OnExplosionComplete func()
	InFlight            InFlightUpdate
}

// Missile is a pooled guided weapon
type Missile interface {
	FollowTarget
	core.System
	Launch(cfg LaunchConfig)
	Reset(pos core.Vec3)
	SetLayer(l core.Layer)
	Layer() core.Layer
	Launched() bool
	Exploded() bool
}

// RevealAfterHalfFlight shows a missile on every layer once it is half way
func RevealAfterHalfFlight(m Missile, _ float64, fraction float64) {
	if fraction > 0.5 && m.Layer() != core.LayerAll {
		m.SetLayer(core.LayerAll)
	}
}

// missileBody holds the state shared by every missile implementation
type missileBody struct {
	env        Env
	ID         core.EntityID
	followZoom float64

	pos            core.Vec3
	target         core.Vec3
	layer          core.Layer
	fuse           FuseResult
	flightDistance float64
	launchTime     float64
	explosionTime  float64
	launched       bool
	exploded       bool

	onImpact            func(FuseResult)
	onExplosionComplete func()
	inFlight            InFlightUpdate
}

func (b *missileBody) reset(pos core.Vec3) {
	b.pos = pos
	b.launched = false
	b.exploded = false
	b.explosionTime = NotFinished
	b.onImpact = nil
	b.onExplosionComplete = nil
	b.inFlight = nil
}

func (b *missileBody) begin(cfg LaunchConfig) {
	b.pos = cfg.Origin
	b.target = cfg.Target
	b.layer = cfg.Layer
	b.fuse = cfg.Fuse
	b.onImpact = cfg.OnImpact
	b.onExplosionComplete = cfg.OnExplosionComplete
	b.inFlight = cfg.InFlight
	b.launchTime = b.env.Now()
	b.flightDistance = cfg.Target.Sub(cfg.Origin).Len()
	b.explosionTime = NotFinished
	b.exploded = false
}

// reportImpact delivers the fuse result; called once after the explosion plays out
func (b *missileBody) reportImpact() {
	if cb := b.onImpact; cb != nil {
		b.onImpact = nil
		cb(b.fuse)
	}
}

func (b *missileBody) complete() {
	if cb := b.onExplosionComplete; cb != nil {
		b.onExplosionComplete = nil
		cb()
	}
}

func (b *missileBody) notifyInFlight(self Missile) {
	if b.inFlight == nil || !b.launched || b.exploded {
		return
	}
	b.inFlight(self, b.env.Now()-b.launchTime, b.FlightFraction())
}

func (b *missileBody) SetLayer(l core.Layer) { b.layer = l }
func (b *missileBody) Layer() core.Layer     { return b.layer }
func (b *missileBody) Launched() bool        { return b.launched }
func (b *missileBody) Exploded() bool        { return b.exploded }
func (b *missileBody) Position() core.Vec3   { return b.pos }
func (b *missileBody) FollowZoom() float64   { return b.followZoom }

func (b *missileBody) FollowFinishTime() float64 { return b.explosionTime }

func (b *missileBody) FlightFraction() float64 {
	switch {
	case b.exploded:
		return 1
	case !b.launched:
		return 0
	case b.flightDistance == 0:
		return 1
	}
	return 1 - b.pos.Sub(b.target).Len()/b.flightDistance
}

func (b *missileBody) DistanceToTarget() float64 {
	switch {
	case b.exploded:
		return 0
	case !b.launched:
		return -1
	}
	return (1 - b.FlightFraction()) * b.flightDistance
}
