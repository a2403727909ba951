package match

import (
	"errors"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

var (
	ErrWrongState          = errors.New("wrong game state")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrAlreadyFired        = errors.New("already fired this turn")
	ErrUnknownCommander    = errors.New("unknown commander")
	ErrUnknownMode         = errors.New("unknown game mode")
	ErrPlacementIncomplete = errors.New("fleet not fully placed")
	ErrInvalidColor        = errors.New("invalid team colour")
)

// StateEvent is published on every game state change
type StateEvent struct {
	From, To State
}

// CommanderEvent names the commander a turn, placement or elimination concerns
type CommanderEvent struct {
	Commander *core.Commander
}

// PlacementEvent is published when a fleet becomes fully placed or stops being so
type PlacementEvent struct {
	Commander *core.Commander
	Complete  bool
}

// AttackEvent describes one attack from its launch to its impact
type AttackEvent struct {
	Attacker *core.Commander
	Defender *core.Commander
	Origin   string
	Kind     weapons.ReservationKind
	Cell     core.Cell
}

// VictoryEvent names the surviving team
type VictoryEvent struct {
	ColorIndex int
	Commanders []*core.Commander
}

// ExpiredEvent is published when a held reservation runs out before firing
type ExpiredEvent struct {
	Attacker *core.Commander
	Origin   string
	Kind     weapons.ReservationKind
}

func attackEvent(a *attack) AttackEvent {
	return AttackEvent{
		Attacker: a.attacker,
		Defender: a.target.Owner(),
		Origin:   a.res.Origin,
		Kind:     a.res.Kind(),
		Cell:     a.cell,
	}
}

var _ grid.Referee = (*Controller)(nil)
