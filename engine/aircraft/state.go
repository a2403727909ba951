package aircraft

import (
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// State is the flight state of an aircraft
type State uint8

const (
	Parked State = iota
	WaitingForLift
	TaxiingFromParking
	LiftAscending
	TaxiingForTakeoff
	Launching
	Patrolling
	Attacking
	WaitingToLand
	Approaching
	Landing
	Arresting
	TaxiingAfterLanding
	LiftDescending
	TaxiingToParking
	Crashing
)

var stateNames = [...]string{
	Parked:              "Parked",
	WaitingForLift:      "WaitingForLift",
	TaxiingFromParking:  "TaxiingFromParking",
	LiftAscending:       "LiftAscending",
	TaxiingForTakeoff:   "TaxiingForTakeoff",
	Launching:           "Launching",
	Patrolling:          "Patrolling",
	Attacking:           "Attacking",
	WaitingToLand:       "WaitingToLand",
	Approaching:         "Approach",
	Landing:             "Landing",
	Arresting:           "Arresting",
	TaxiingAfterLanding: "TaxiingAfterLanding",
	LiftDescending:      "LiftDescending",
	TaxiingToParking:    "TaxiingToParking",
	Crashing:            "Crashing",
}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// InAir reports whether the state is airborne
func (s State) InAir() bool {
	switch s {
	case Launching, Patrolling, Attacking, WaitingToLand, Approaching, Landing:
		return true
	}
	return false
}

// OnLift reports whether a lift is moving the aircraft
func (s State) OnLift() bool { return s == LiftAscending || s == LiftDescending }

// IsLanding reports whether the aircraft is touching down
func (s State) IsLanding() bool { return s == Landing || s == Arresting }

//  STATE               │ TARGET SPEED │ ACCELERATION
// ─────────────────────┼──────────────┼──────────────────────
//  Parked              │            0 │ ground
//  WaitingForLift      │            0 │ ground
//  TaxiingFromParking  │         taxi │ ground
//  LiftAscending       │            0 │ ground
//  TaxiingForTakeoff   │         taxi │ ground
//  Launching           │       flight │ launch
//  Patrolling          │       flight │ flight
//  Attacking           │       flight │ flight
//  WaitingToLand       │       flight │ flight
//  Approach            │       flight │ flight
//  Landing             │      landing │ flight
//  Arresting           │            0 │ arresting
//  TaxiingAfterLanding │         taxi │ ground
//  LiftDescending      │            0 │ ground
//  TaxiingToParking    │         taxi │ ground
//  Crashing            │            0 │ 0

func (s State) targetSpeed(cfg *Settings) float64 {
	switch s {
	case Parked, WaitingForLift, LiftAscending, Arresting, LiftDescending, Crashing:
		return 0
	case TaxiingFromParking, TaxiingForTakeoff, TaxiingAfterLanding, TaxiingToParking:
		return cfg.TaxiSpeed
	case Launching, Patrolling, Attacking, WaitingToLand, Approaching:
		return cfg.FlightSpeed
	case Landing:
		return cfg.LandingSpeed
	}
	panic(core.OutOfRange("aircraft state", s))
}

func (s State) acceleration(cfg *Settings) float64 {
	switch s {
	case Parked, WaitingForLift, TaxiingFromParking, LiftAscending, TaxiingForTakeoff,
		TaxiingAfterLanding, LiftDescending, TaxiingToParking:
		return cfg.GroundAcceleration
	case Launching:
		return cfg.LaunchAcceleration
	case Patrolling, Attacking, WaitingToLand, Approaching, Landing:
		return cfg.FlightAcceleration
	case Arresting:
		return cfg.ArrestingAcceleration
	case Crashing:
		return 0
	}
	panic(core.OutOfRange("aircraft state", s))
}

// gearState is the landing gear position wanted in s
func (s State) gearState() GearState {
	switch s {
	case Patrolling, Attacking, WaitingToLand:
		return GearRaising
	}
	return GearLowering
}
