package vessel

import (
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/audio"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

const (
	submarineHatches = 4
	silosPerHatch    = 4
	submarineSilos   = submarineHatches * silosPerHatch
)

// SiloPayload is a submarine silo with the missile loaded in it
type SiloPayload struct {
	Silo    int
	Missile weapons.Missile
}

func (SiloPayload) ReservationKind() weapons.ReservationKind { return weapons.ReserveSilo }

// HatchState is the position of a submarine hatch
type HatchState uint8

const (
	HatchClosed HatchState = iota
	HatchOpening
	HatchOpen
	HatchClosing
)

func (s HatchState) String() string {
	switch s {
	case HatchClosed:
		return "Closed"
	case HatchOpening:
		return "Opening"
	case HatchOpen:
		return "Open"
	case HatchClosing:
		return "Closing"
	}
	return fmt.Sprintf("HatchState(%d)", uint8(s))
}

// HatchStatus is a snapshot of one submarine hatch
type HatchStatus struct {
	State     HatchState
	Angle     float64
	CloseTime float64
	Queued    int
}

type launchOrder struct {
	payload  SiloPayload
	target   core.Vec3
	fuse     weapons.FuseResult
	onImpact func()
}

type siloHatch struct {
	state     HatchState
	angle     float64
	closeTime float64
	queue     []launchOrder
}

// Silos is the submarine's launch system. Each hatch covers four silos; a
// hatch opens when a launch is queued under it, fires everything queued once
// fully open and closes after a dwell with nothing left to launch.
type Silos struct {
	v         *Vessel
	settings  SubmarineSettings
	pool      *weapons.Pool[weapons.Missile]
	available []int
	hatches   [submarineHatches]siloHatch
}

func newSilos(v *Vessel) armament {
	s := &Silos{v: v, settings: v.settings.Submarine, pool: v.armory.Tomahawks}
	for i := range submarineSilos {
		s.available = append(s.available, i)
	}
	return s
}

// Available is the number of loaded silos
func (s *Silos) Available() int { return len(s.available) }

// Hatch reports the state of hatch i
func (s *Silos) Hatch(i int) HatchStatus {
	h := &s.hatches[i]
	return HatchStatus{State: h.state, Angle: h.angle, CloseTime: h.closeTime, Queued: len(h.queue)}
}

// HatchFor is the hatch covering silo
func HatchFor(silo int) int { return silo / silosPerHatch }

// siloPosition is the launch position of silo: pairs either side of the
// centreline, one hatch group after another toward the stern
func (s *Silos) siloPosition(silo int) core.Vec3 {
	side := float64(silo%2)*2 - 1
	row := float64(silo / 2)
	return s.v.ToWorld(core.V3(side, s.v.DeckHeight()-1, 14-3*row))
}

func (s *Silos) prepare(layer core.Layer) (weapons.Payload, *weapons.FollowProxy, bool) {
	if len(s.available) == 0 {
		s.v.log.Warn("No available missiles to fire")
		return nil, nil, false
	}
	silo := s.available[0]
	s.available = s.available[1:]

	m := s.pool.Take()
	m.Reset(s.siloPosition(silo))
	m.SetLayer(layer)
	return SiloPayload{Silo: silo, Missile: m}, weapons.NewFollowProxy(m), true
}

func (s *Silos) FireReservation(r *weapons.Reservation, target core.Vec3, targetIsVessel bool, onImpact func()) {
	p := r.Payload.(SiloPayload)
	h := &s.hatches[HatchFor(p.Silo)]
	h.queue = append(h.queue, launchOrder{
		payload:  p,
		target:   target,
		fuse:     weapons.FuseFor(targetIsVessel),
		onImpact: onImpact,
	})
}

func (s *Silos) ReleaseReservation(r *weapons.Reservation) {
	s.reload(r.Payload.(SiloPayload))
}

func (s *Silos) reload(p SiloPayload) {
	s.available = append(s.available, p.Silo)
	s.pool.Return(p.Missile)
}

func (s *Silos) update(dt float64) {
	now := s.v.env.Now()
	for i := range s.hatches {
		h := &s.hatches[i]
		if len(h.queue) == 0 && now > h.closeTime {
			s.close(h, dt)
		} else {
			s.open(i, h, dt)
		}

		if h.state == HatchOpen && len(h.queue) > 0 {
			for _, order := range h.queue {
				s.launch(order)
			}
			h.queue = h.queue[:0]
			h.closeTime = now + s.settings.HatchDwellTime
		}
	}
}

func (s *Silos) open(i int, h *siloHatch, dt float64) {
	if h.state == HatchOpen {
		return
	}
	if h.state != HatchOpening {
		s.v.env.Play(audio.SndHatch, s.siloPosition(i*silosPerHatch))
	}
	h.state = HatchOpening
	h.angle = core.Clamp(h.angle+90/s.settings.HatchOpenTime*dt, 0, 90)
	if h.angle >= 89.9 {
		h.angle = 90
		h.state = HatchOpen
	}
}

func (s *Silos) close(h *siloHatch, dt float64) {
	if h.state == HatchClosed {
		return
	}
	h.state = HatchClosing
	h.angle = core.Clamp(h.angle-90/s.settings.HatchCloseTime*dt, 0, 90)
	if h.angle <= 0 {
		h.state = HatchClosed
	}
}

func (s *Silos) launch(order launchOrder) {
	p := order.payload
	p.Missile.Launch(weapons.LaunchConfig{
		Origin:  s.siloPosition(p.Silo),
		Heading: core.V3(0, 1, 0),
		Target:  order.target,
		Layer:   p.Missile.Layer(),
		Fuse:    order.fuse,
		OnImpact: func(weapons.FuseResult) {
			if order.onImpact != nil {
				order.onImpact()
			}
		},
		OnExplosionComplete: func() { s.reload(p) },
		InFlight:            weapons.RevealAfterHalfFlight,
	})
}

func (s *Silos) mount()                {}
func (s *Silos) capsize(float64, bool) {}
func (s *Silos) enable()               {}

func (s *Silos) terminate() {
	for i := range s.hatches {
		s.hatches[i].queue = nil
	}
}
