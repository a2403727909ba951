package aircraft

import (
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// WaypointKind names a path a runway provides
type WaypointKind uint8

const (
	UpLift WaypointKind = iota
	DownLift
	CatapultStart
	CatapultEnd
	PatrolRoute
	HoldingPattern
	Arrestors
	ParkingStand
	Approach
)

var waypointKindNames = [...]string{
	UpLift:         "UpLift",
	DownLift:       "DownLift",
	CatapultStart:  "CatapultStart",
	CatapultEnd:    "CatapultEnd",
	PatrolRoute:    "PatrolRoute",
	HoldingPattern: "HoldingPattern",
	Arrestors:      "Arrestors",
	ParkingStand:   "ParkingStand",
	Approach:       "Approach",
}

func (k WaypointKind) String() string {
	if int(k) < len(waypointKindNames) {
		return waypointKindNames[k]
	}
	return fmt.Sprintf("WaypointKind(%d)", uint8(k))
}

// LiftState is the resting position of a deck lift
type LiftState uint8

const (
	LiftRaised LiftState = iota
	LiftLowered
)

func (s LiftState) String() string {
	switch s {
	case LiftRaised:
		return "Raised"
	case LiftLowered:
		return "Lowered"
	}
	return fmt.Sprintf("LiftState(%d)", uint8(s))
}

// Rider is carried up or down by a lift
type Rider interface {
	SetAltitude(y float64)
}

// RunwayProvider is the flight deck an aircraft operates from
type RunwayProvider interface {
	RunwayWaypoints(kind WaypointKind) []core.Vec3
	OperateLift(pos core.Vec3, target LiftState, rider Rider)
	// LiftState reports ok=false while the lift nearest pos is moving
	LiftState(pos core.Vec3) (state LiftState, ok bool)
	RequestLandingClearance() bool
	ReleaseLandingClearance()
	RequestTakeoffClearance() bool
	ReleaseTakeoffClearance()
	IsDestroyed() bool
}
