package grid

import (
	"errors"
	"fmt"

	"github.com/dolthub/swiss"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/logging"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// ErrInvalidTarget is returned when a trigger pull does not select an attackable cell
var ErrInvalidTarget = errors.New("invalid target")

// CellState is the fog state of a cell
type CellState uint8

const (
	Hidden CellState = iota
	OnFire
	Revealed
)

func (s CellState) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case OnFire:
		return "OnFire"
	case Revealed:
		return "Revealed"
	}
	return fmt.Sprintf("CellState(%d)", uint8(s))
}

// Referee is the match authority a grid reports to and attacks through
type Referee interface {
	Playing() bool
	AttackingCommander() *core.Commander
	SameTeam(a, b *core.Commander) bool
	TeamLayer(c *core.Commander) core.Layer
	GridOf(c *core.Commander) *Grid
	Attack(attacker *core.Commander, target *Grid, r *weapons.Reservation, cell core.Cell, coords core.Vec3) error
	SetPlacementComplete(c *core.Commander, complete bool)
	EliminateCommander(c *core.Commander)
}

// VesselEvent is published when a vessel is placed, taken or destroyed
type VesselEvent struct {
	Commander *core.Commander
	Vessel    *vessel.Vessel
}

// ImpactEvent is published for every impact a grid handles
type ImpactEvent struct {
	Commander *core.Commander
	Cell      core.Cell
	Hit       bool
}

// Grid is one commander's board: the fleet, where it is placed and what the
// other commanders have seen of it
type Grid struct {
	env     weapons.Env
	log     logging.Logger
	owner   *core.Commander
	referee Referee
	layer   core.Layer

	width  int
	height int
	frame  Frame

	states   []CellState
	occupied *swiss.Map[core.Cell, *vessel.Vessel]
	placed   *swiss.Map[*vessel.Vessel, []core.Cell]
	fleet    []*vessel.Vessel

	attackVessels []*vessel.Vessel
	attackIndex   int
	strength      int
}

// New builds an empty, fully hidden grid owned by owner. Vessels are shown on
// layer until they are destroyed or revealed.
func New(env weapons.Env, owner *core.Commander, width, height int, frame Frame, layer core.Layer, referee Referee) *Grid {
	g := &Grid{
		env:      env,
		log:      env.Log.With("grid", owner.Name),
		owner:    owner,
		referee:  referee,
		layer:    layer,
		width:    width,
		height:   height,
		frame:    frame,
		states:   make([]CellState, width*height),
		occupied: swiss.NewMap[core.Cell, *vessel.Vessel](uint32(width * height)),
		placed:   swiss.NewMap[*vessel.Vessel, []core.Cell](8),
	}
	return g
}

func (g *Grid) Owner() *core.Commander { return g.owner }
func (g *Grid) Width() int             { return g.width }
func (g *Grid) Height() int            { return g.height }

// FleetStrength is the number of unburnt cells of placed vessels
func (g *Grid) FleetStrength() int { return g.strength }

// Fleet is every vessel issued to the grid, placed or not
func (g *Grid) Fleet() []*vessel.Vessel { return g.fleet }

// AttackVessels are the placed vessels that have not been destroyed
func (g *Grid) AttackVessels() []*vessel.Vessel { return g.attackVessels }

// AddVessel issues a vessel to the grid. It is not placed.
func (g *Grid) AddVessel(v *vessel.Vessel) {
	v.SetFrame(g)
	v.SetLayer(g.layer)
	g.fleet = append(g.fleet, v)
}

// InGrid reports whether c lies on the grid
func (g *Grid) InGrid(c core.Cell) bool {
	return c.X >= 0 && c.Y >= 0 && c.X < g.width && c.Y < g.height
}

func (g *Grid) index(c core.Cell) int { return c.Y*g.width + c.X }

// CellState is the fog state of c. Cells off the grid read as Revealed.
func (g *Grid) CellState(c core.Cell) CellState {
	if !g.InGrid(c) {
		return Revealed
	}
	return g.states[g.index(c)]
}

func (g *Grid) setState(c core.Cell, s CellState) {
	if g.InGrid(c) {
		g.states[g.index(c)] = s
	}
}

// VesselAt is the vessel occupying c
func (g *Grid) VesselAt(c core.Cell) (*vessel.Vessel, bool) {
	return g.occupied.Get(c)
}

// IsOccupied reports whether a placed vessel covers c
func (g *Grid) IsOccupied(c core.Cell) bool { return g.occupied.Has(c) }

// IsPlaced reports whether v is registered on the grid
func (g *Grid) IsPlaced(v *vessel.Vessel) bool { return g.placed.Has(v) }

// ValidatePlacement reports whether v could sit at pos facing dir: every
// cell on the grid and not covered by another vessel
func (g *Grid) ValidatePlacement(v *vessel.Vessel, pos core.Cell, dir core.Direction) bool {
	for _, c := range core.Footprint(pos, dir, v.Length()) {
		if !g.InGrid(c) {
			return false
		}
		if other, ok := g.occupied.Get(c); ok && other != v {
			return false
		}
	}
	return true
}

// PlaceVessel registers v at its current position
// and direction. A rejected move leaves the grid as it was.
func (g *Grid) PlaceVessel(v *vessel.Vessel) bool {
	if !g.ValidatePlacement(v, v.GridPosition(), v.Direction()) {
		g.log.Debug("invalid placement", "vessel", v.Name, "pos", v.GridPosition(), "dir", v.Direction())
		return false
	}
	if g.placed.Has(v) {
		g.TakeVessel(v)
	}

	cells := v.OccupiedCells()
	for _, c := range cells {
		g.occupied.Put(c, v)
	}
	g.placed.Put(v, cells)
	g.attackVessels = append(g.attackVessels, v)
	v.SetMoving(false)
	g.strength = g.placedLength()
	g.env.World.Emit(core.EvtVesselPlaced, VesselEvent{Commander: g.owner, Vessel: v})

	if g.PlacementComplete() {
		g.referee.SetPlacementComplete(g.owner, true)
	}
	return true
}

// TakeVessel lifts v off the grid so it can be moved
func (g *Grid) TakeVessel(v *vessel.Vessel) {
	cells, ok := g.placed.Get(v)
	if !ok {
		return
	}
	for _, c := range cells {
		g.occupied.Delete(c)
	}
	g.placed.Delete(v)
	g.removeAttackVessel(v)
	v.SetMoving(true)
	g.strength = g.placedLength()
	g.env.World.Emit(core.EvtVesselTaken, VesselEvent{Commander: g.owner, Vessel: v})

	g.referee.SetPlacementComplete(g.owner, false)
}

// PlacementComplete reports whether every issued vessel is placed
func (g *Grid) PlacementComplete() bool {
	if len(g.fleet) == 0 {
		return false
	}
	for _, v := range g.fleet {
		if !g.placed.Has(v) {
			return false
		}
	}
	return true
}

func (g *Grid) placedLength() int {
	n := 0
	g.placed.Iter(func(v *vessel.Vessel, _ []core.Cell) bool {
		n += v.Length()
		return false
	})
	return n
}

func (g *Grid) removeAttackVessel(v *vessel.Vessel) {
	for i, av := range g.attackVessels {
		if av == v {
			g.attackVessels = append(g.attackVessels[:i], g.attackVessels[i+1:]...)
			return
		}
	}
}

// RotateMovingVessels turns every vessel being moved clockwise for a
// positive step and counter-clockwise for a negative one
func (g *Grid) RotateMovingVessels(step int) {
	for _, v := range g.fleet {
		if !v.IsMoving() {
			continue
		}
		switch {
		case step > 0:
			v.SetDirection(v.Direction().Next())
		case step < 0:
			v.SetDirection(v.Direction().Prev())
		}
	}
}

// EnableVessels starts the fleet's combat activity
func (g *Grid) EnableVessels() {
	for _, v := range g.fleet {
		v.Enable()
	}
}

// Terminate removes the fleet from the world
func (g *Grid) Terminate() {
	for _, v := range g.fleet {
		v.Terminate()
	}
	g.fleet = nil
	g.attackVessels = nil
	g.occupied.Clear()
	g.placed.Clear()
}
