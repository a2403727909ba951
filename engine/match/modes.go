package match

import (
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
)

// GameMode is the number of fleets in combat and what each is issued
type GameMode struct {
	Players int
	Fleet   vessel.FleetTemplate
}

func (m GameMode) String() string { return fmt.Sprintf("%s/%d", m.Fleet.Name, m.Players) }

const (
	MinPlayers = 2
	MaxPlayers = 4
)

// ModeFor looks up the mode for a player count and fleet choice
func ModeFor(players int, loneWolf bool) (GameMode, error) {
	if players < MinPlayers || players > MaxPlayers {
		return GameMode{}, fmt.Errorf("game mode for %d players: %w", players, ErrUnknownMode)
	}
	fleet := vessel.StandardFleet
	if loneWolf {
		fleet = vessel.LoneWolfFleet
	}
	return GameMode{Players: players, Fleet: fleet}, nil
}

// Modes lists every playable mode, standard fleets first
func Modes() []GameMode {
	var out []GameMode
	for _, loneWolf := range []bool{false, true} {
		for p := MinPlayers; p <= MaxPlayers; p++ {
			m, _ := ModeFor(p, loneWolf)
			out = append(out, m)
		}
	}
	return out
}
