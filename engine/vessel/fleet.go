package vessel

import (
	"fmt"
	"math/rand"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// Placement is a vessel of a fleet template and its staging cell
type Placement struct {
	Kind  Kind
	Start core.Cell
}

// FleetTemplate is the set of vessels each commander is issued
type FleetTemplate struct {
	Name       string
	Placements []Placement
}

// Staging cells sit beside the grid so new vessels are not placed yet
var (
	StandardFleet = FleetTemplate{
		Name: "Standard",
		Placements: []Placement{
			{Kind: Destroyer, Start: core.Cell{X: 6, Y: 8}},
			{Kind: Battleship, Start: core.Cell{X: 5, Y: -1}},
			{Kind: AircraftCarrier, Start: core.Cell{X: 1, Y: -1}},
			{Kind: Submarine, Start: core.Cell{X: 3, Y: 8}},
			{Kind: LittoralCombatShip, Start: core.Cell{X: 0, Y: 8}},
		},
	}
	LoneWolfFleet = FleetTemplate{
		Name:       "LoneWolf",
		Placements: []Placement{{Kind: Submarine, Start: core.Cell{X: 3, Y: 3}}},
	}
)

// Length is the number of cells the whole fleet covers
func (t FleetTemplate) Length() int {
	n := 0
	for _, p := range t.Placements {
		n += p.Kind.Length()
	}
	return n
}

// Faction names a commander's navy and its vessels
type Faction struct {
	Prefix      string
	Name        string
	VesselNames []string
}

var Factions = []Faction{
	{
		Prefix: "FSS", Name: "Federation",
		VesselNames: []string{
			"Intrepid", "Starlight", "Valkyrie", "Orpheus", "Prometheus", "Sovereign", "Galactus",
			"Poseidon", "Olympus", "Nova", "Infinity", "Nebula", "Chronos", "Quasar", "Pegasus",
			"Atlas", "Titan", "Voyager", "Aether", "Sirius",
		},
	},
	{
		Prefix: "GDN", Name: "Dominion",
		VesselNames: []string{
			"Celestial", "Nebulous", "Zodiac", "Solstice", "Quantum", "Orion", "Eclipse",
			"Gemini", "Polaris", "Horizon", "Andromeda", "Specter", "Enigma", "Draco", "Exodus",
			"Pulsar", "Aurora", "Maelstrom", "Arcane", "Mystic",
		},
	},
	{
		Prefix: "QES", Name: "Empire",
		VesselNames: []string{
			"Quark", "Electron", "Neutron", "Boson", "Lepton", "Photon", "Fermion",
			"Proton", "Higgs", "Gluon", "Graviton", "Scalar", "Hadron", "Meson", "Baryon",
			"Axion", "Wimp", "Chiral", "Vortex", "Zephyr",
		},
	},
	{
		Prefix: "DRN", Name: "Republic",
		VesselNames: []string{
			"Cyberspace", "Firewall", "Kernel", "Byte", "Nexus", "QuantumBit", "Protocol",
			"Network", "Cipher", "Pixel", "Dataflow", "Algorithm", "Cache", "Socket", "Switch",
			"Gateway", "Port", "Stack", "Thread", "Vector",
		},
	},
}

// ShuffledFactions returns the factions in a random order
func ShuffledFactions(rng *rand.Rand) []Faction {
	out := append([]Faction(nil), Factions...)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// ShuffledNames returns the faction's vessel labels in a random order
func (f Faction) ShuffledNames(rng *rand.Rand) []string {
	out := make([]string, len(f.VesselNames))
	for i, n := range f.VesselNames {
		out[i] = fmt.Sprintf("%s %s", f.Prefix, n)
	}
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// BuildFleet creates the template's vessels named in order from names and
// stages each at its start cell
func BuildFleet(env weapons.Env, settings *Settings, armory *Armory, t FleetTemplate, names []string) []*Vessel {
	fleet := make([]*Vessel, 0, len(t.Placements))
	for i, p := range t.Placements {
		name := p.Kind.ClassName()
		if i < len(names) {
			name = names[i]
		}
		v := New(env, settings, armory, p.Kind, name)
		v.SetGridPosition(p.Start)
		fleet = append(fleet, v)
	}
	return fleet
}
