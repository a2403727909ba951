package weapons

import (
	"errors"
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

var (
	// ErrReservationSpent is returned when a reservation is fired or released twice
	ErrReservationSpent = errors.New("reservation already spent")
	// ErrReservationExpired is returned when a reservation is fired after its deadline
	ErrReservationExpired = errors.New("reservation expired")
)

// ReservationKind tags the payload a reservation carries
type ReservationKind uint8

const (
	ReserveGuns ReservationKind = iota
	ReserveHatch
	ReserveSilo
	ReserveBay
	ReserveAircraft
)

func (k ReservationKind) String() string {
	switch k {
	case ReserveGuns:
		return "guns"
	case ReserveHatch:
		return "hatch"
	case ReserveSilo:
		return "silo"
	case ReserveBay:
		return "bay"
	case ReserveAircraft:
		return "aircraft"
	}
	return fmt.Sprintf("ReservationKind(%d)", uint8(k))
}

// Payload is the weapon-specific data held between prepare and fire
type Payload interface {
	ReservationKind() ReservationKind
}

// GunsPayload holds one fire package per turret
type GunsPayload struct {
	Packages []*FirePackage
}

func (GunsPayload) ReservationKind() ReservationKind { return ReserveGuns }

// Handler resolves reservations for the weapon system that issued them
type Handler interface {
	FireReservation(r *Reservation, target core.Vec3, targetIsVessel bool, onImpact func())
	ReleaseReservation(r *Reservation)
}

type reservationState uint8

const (
	reservationPending reservationState = iota
	reservationFired
	reservationReleased
)

// Reservation is a claim on one shot's worth of a weapon resource. It is fired
// or released exactly once.
type Reservation struct {
	Origin   string
	Follow   *FollowProxy
	Payload  Payload
	Deadline float64

	handler Handler
	state   reservationState
}

// NewReservation issues a pending reservation
func NewReservation(origin string, h Handler, payload Payload, follow *FollowProxy, deadline float64) *Reservation {
	if follow == nil {
		follow = NewFollowProxy(nil)
	}
	return &Reservation{Origin: origin, Follow: follow, Payload: payload, Deadline: deadline, handler: h}
}

// Kind is the payload's tag
func (r *Reservation) Kind() ReservationKind { return r.Payload.ReservationKind() }

// Pending reports whether the reservation can still be fired
func (r *Reservation) Pending() bool { return r.state == reservationPending }

// Expired reports whether the deadline has passed at now
func (r *Reservation) Expired(now float64) bool { return now > r.Deadline }

// Fire dispatches the reservation to its weapon. A reservation past its
// deadline is released instead.
func (r *Reservation) Fire(now float64, target core.Vec3, targetIsVessel bool, onImpact func()) error {
	if r.state != reservationPending {
		return fmt.Errorf("fire %s from %s: %w", r.Kind(), r.Origin, ErrReservationSpent)
	}
	if r.Expired(now) {
		r.Release()
		return fmt.Errorf("fire %s from %s: %w", r.Kind(), r.Origin, ErrReservationExpired)
	}
	r.state = reservationFired
	r.handler.FireReservation(r, target, targetIsVessel, onImpact)
	return nil
}

// Release hands the reserved resources back; it does nothing once fired or released
func (r *Reservation) Release() {
	if r.state != reservationPending {
		return
	}
	r.state = reservationReleased
	r.handler.ReleaseReservation(r)
}
