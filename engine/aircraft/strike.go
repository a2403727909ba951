package aircraft

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// Strike is a missile claimed from one of an aircraft's bays
type Strike struct {
	aircraft *F35
	side     Side
	missile  weapons.Missile
	follow   *weapons.FollowProxy

	target   core.Vec3
	fuse     weapons.FuseResult
	onImpact func()
	loaded   bool
	done     bool
}

// Side is the bay the missile was claimed from
func (s *Strike) Side() Side { return s.side }

// Follow tracks the aircraft and then the missile it releases
func (s *Strike) Follow() *weapons.FollowProxy { return s.follow }

// PrepareToFire claims a missile from the first available bay and turns
// the aircraft toward an attack
func (f *F35) PrepareToFire(layer core.Layer) (*Strike, bool) {
	if f.state == Crashing {
		return nil, false
	}
	side, ok := f.availableBay()
	if !ok {
		return nil, false
	}
	f.log.Debug("F35 preparing to fire", "bay", side)

	f.bays[side].Available = false
	m := f.missiles.Take()
	m.SetLayer(layer)
	f.SetPendingState(Attacking)

	return &Strike{aircraft: f, side: side, missile: m, follow: weapons.NewFollowProxy(f)}, true
}

func (f *F35) availableBay() (Side, bool) {
	for _, side := range []Side{Port, Starboard} {
		if f.bays[side].Available {
			return side, true
		}
	}
	return 0, false
}

// FireAtTarget loads the target; the missile is released once the aircraft
// is lined up with it
func (f *F35) FireAtTarget(s *Strike, target core.Vec3, onImpact func(), targetIsVessel bool) *weapons.FollowProxy {
	f.env.Audio.Play(audio.SndTargetConfirmed, f.pos, 0.5)

	f.setWaypoints([]core.Vec3{target.WithY(target.Y + f.settings.FlightAltitude)})
	s.target = target.WithY(target.Y + f.settings.MissileTargetHeight)
	s.fuse = weapons.FuseFor(targetIsVessel)
	s.onImpact = onImpact
	s.loaded = true
	s.follow.Principal = f
	f.strike = s
	return s.follow
}

// CancelStrike returns an unfired strike's missile and frees its bay
func (f *F35) CancelStrike(s *Strike) {
	if s.done || f.launching == s {
		return
	}
	s.done = true
	if f.strike == s {
		f.strike = nil
	}
	f.missiles.Return(s.missile)
	if f.state != Crashing {
		f.bays[s.side].Available = true
	}
	if p, ok := f.PendingState(); f.state == Attacking || (ok && p == Attacking) {
		f.SetPendingState(Patrolling)
	}
}

// abandon returns the missile of a strike that will never launch. No impact
// is reported; the match gives up on the shot by its impact timeout.
func (f *F35) abandon(s *Strike) {
	if s.done {
		return
	}
	s.done = true
	f.missiles.Return(s.missile)
}

func (f *F35) maybeFireMissile(angle float64) {
	s := f.strike
	if s == nil || !s.loaded || (angle > f.settings.MaxOffAxisFire || angle < -f.settings.MaxOffAxisFire) {
		return
	}
	f.strike = nil
	f.launching = s
	f.fireMissile(s)
	f.SetPendingState(Patrolling)
}

func (f *F35) fireMissile(s *Strike) {
	side := s.side
	f.bays[side].Fired = true

	f.choreography.Run(
		core.Phase{
			Name:    "open bay",
			OnStart: func() { f.setBayOpen(side, true) },
			Until:   func() bool { return f.bays[side].State == BayOpen },
		},
		core.Do("launch", func() { f.launch(s) }),
		core.Wait("hold", f.settings.BayDoorHoldTime),
		core.Do("close bay", func() {
			// Carry on with the patrol rather than flying on to the target
			if f.state == Patrolling {
				f.removeNextWaypoint()
			}
			f.setBayOpen(side, false)
		}),
		core.WaitUntil("bay closed", func() bool { return f.bays[side].State == BayClosed }),
	)
}

func (f *F35) launch(s *Strike) {
	f.launching = nil
	s.done = true
	m := s.missile
	onImpact := s.onImpact

	m.Reset(f.pos)
	s.follow.Principal = m
	m.Launch(weapons.LaunchConfig{
		Origin:       f.pos,
		Heading:      core.HeadingVector(f.heading),
		InitialSpeed: f.speed * f.settings.WorldScale,
		Target:       s.target,
		Layer:        m.Layer(),
		Fuse:         s.fuse,
		OnImpact: func(weapons.FuseResult) {
			f.missiles.Return(m)
			if onImpact != nil {
				onImpact()
			}
		},
		InFlight: weapons.RevealAfterHalfFlight,
	})
}
