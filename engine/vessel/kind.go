package vessel

import (
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

// Kind is the class of a combat vessel
type Kind uint8

const (
	LittoralCombatShip Kind = iota
	Destroyer
	AircraftCarrier
	Battleship
	Submarine
)

var Kinds = [...]Kind{LittoralCombatShip, Destroyer, AircraftCarrier, Battleship, Submarine}

// capability is the per-class row of the vessel table
type capability struct {
	className string
	length    int
	deck      float64 // deck height above the waterline
}

var capabilities = [...]capability{
	LittoralCombatShip: {className: "Littoral Combat Ship", length: 2, deck: 4},
	Destroyer:          {className: "Destroyer", length: 3, deck: 4},
	AircraftCarrier:    {className: "Aircraft Carrier", length: 5, deck: 8},
	Battleship:         {className: "Battleship", length: 4, deck: 6},
	Submarine:          {className: "Submarine", length: 3, deck: 2},
}

func (k Kind) capability() capability {
	if int(k) >= len(capabilities) {
		panic(core.OutOfRange("vessel kind", k))
	}
	return capabilities[k]
}

// Length is the number of cells a vessel of this class covers
func (k Kind) Length() int { return k.capability().length }

// ClassName is the display name of the class
func (k Kind) ClassName() string { return k.capability().className }

func (k Kind) String() string {
	if int(k) >= len(capabilities) {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return capabilities[k].className
}

// armFor builds the weapon system a class carries
func armFor(v *Vessel) armament {
	switch v.kind {
	case LittoralCombatShip:
		return newLCSBattery(v)
	case Destroyer:
		return newHatches(v)
	case AircraftCarrier:
		return newFlightDeck(v)
	case Battleship:
		return newBattleshipBattery(v)
	case Submarine:
		return newSilos(v)
	}
	panic(core.OutOfRange("vessel kind", v.kind))
}
