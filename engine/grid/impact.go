package grid

import (
	"fmt"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

// HandleImpact applies a hit on cell c. An empty cell is revealed. A vessel
// cell catches fire and costs the fleet one point of strength; a vessel
// burning end to end is revealed and stops attacking.
func (g *Grid) HandleImpact(c core.Cell) {
	v, ok := g.occupied.Get(c)
	if !ok {
		g.clearFog(c)
		g.env.Metrics.Impact(false)
		g.env.World.Emit(core.EvtImpact, ImpactEvent{Commander: g.owner, Cell: c})
		return
	}

	if v.IsOnFire(c) {
		return
	}

	g.setState(c, OnFire)
	v.SetOnFire(c, true)
	g.env.Metrics.Impact(true)
	g.env.World.Emit(core.EvtImpact, ImpactEvent{Commander: g.owner, Cell: c, Hit: true})

	g.strength--
	if g.strength == 0 {
		g.handleElimination()
	}

	if !v.IsDestroyed() {
		return
	}
	g.log.Info("vessel destroyed", "vessel", v.Name, "class", v.ClassName())
	for _, vc := range v.OccupiedCells() {
		g.clearFog(vc)
	}
	v.SetLayer(core.LayerAll)
	g.removeAttackVessel(v)
	g.env.World.Emit(core.EvtVesselDestroyed, VesselEvent{Commander: g.owner, Vessel: v})
}

func (g *Grid) handleElimination() {
	g.log.Info("fleet eliminated")
	g.referee.EliminateCommander(g.owner)
	g.ClearFog()
}

func (g *Grid) clearFog(c core.Cell) { g.setState(c, Revealed) }

// ClearFog reveals every cell
func (g *Grid) ClearFog() {
	for i := range g.states {
		g.states[i] = Revealed
	}
}

// Reveal uncovers the whole grid and every surviving vessel
func (g *Grid) Reveal() {
	g.ClearFog()
	for _, v := range g.attackVessels {
		v.SetLayer(core.LayerAll)
	}
}

// SelfDestruct hits every cell of every issued vessel
func (g *Grid) SelfDestruct() {
	var cells []core.Cell
	for _, v := range g.fleet {
		cells = append(cells, v.OccupiedCells()...)
	}
	for _, c := range cells {
		g.HandleImpact(c)
	}
}

// PrepareAttack reserves a shot from the next vessel in turn that can fire,
// trying each attack vessel at most once
func (g *Grid) PrepareAttack(layer core.Layer) (*weapons.Reservation, bool) {
	n := len(g.attackVessels)
	if n == 0 {
		return nil, false
	}
	if g.attackIndex >= n {
		g.attackIndex = n - 1
	}

	start := g.attackIndex
	for {
		g.attackIndex = (g.attackIndex + 1) % n
		if r, ok := g.attackVessels[g.attackIndex].PrepareToFire(layer); ok {
			return r, true
		}
		if g.attackIndex == start {
			return nil, false
		}
	}
}

// HandleTriggerPull attacks cell on this grid on behalf of commander. The
// match must be playing, it must be the commander's turn, the grid must
// belong to another team and the cell must still be hidden.
func (g *Grid) HandleTriggerPull(commander *core.Commander, cell core.Cell) error {
	ref := g.referee
	switch {
	case !ref.Playing():
		return fmt.Errorf("trigger pull by %s: not playing: %w", commander, ErrInvalidTarget)
	case ref.AttackingCommander() != commander:
		return fmt.Errorf("trigger pull by %s: not attacking: %w", commander, ErrInvalidTarget)
	case ref.SameTeam(commander, g.owner):
		return fmt.Errorf("trigger pull by %s: own team grid: %w", commander, ErrInvalidTarget)
	case !g.InGrid(cell):
		return fmt.Errorf("trigger pull by %s: cell %s outside grid: %w", commander, cell, ErrInvalidTarget)
	case g.CellState(cell) != Hidden:
		return fmt.Errorf("trigger pull by %s: cell %s already %s: %w", commander, cell, g.CellState(cell), ErrInvalidTarget)
	}

	if err := g.attack(commander, cell); err != nil {
		g.log.Error("Failed to attack", "commander", commander, "err", err)
		return err
	}
	return nil
}

func (g *Grid) attack(commander *core.Commander, cell core.Cell) error {
	from := g.referee.GridOf(commander)
	if from == nil {
		return fmt.Errorf("attack by %s: no grid: %w", commander, ErrInvalidTarget)
	}
	r, ok := from.PrepareAttack(g.referee.TeamLayer(commander))
	if !ok {
		return fmt.Errorf("attack by %s: no vessel can fire: %w", commander, ErrInvalidTarget)
	}
	return g.referee.Attack(commander, g, r, cell, g.CellTarget(cell))
}
