package match

import (
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
)

// aiDelay is a random pause before an AI commander's next action
func (c *Controller) aiDelay() float64 {
	lo, hi := c.settings.AIDelayMin, c.settings.AIDelayMax
	if hi <= lo {
		return lo
	}
	return lo + c.env.World.Rand.Float64()*(hi-lo)
}

// processAICommanders lets every AI commander whose action is due place a
// vessel or take its shot
func (c *Controller) processAICommanders() {
	now := c.env.Now()
	for _, cmdr := range c.commanders {
		if !cmdr.IsAI() {
			continue
		}
		s, _ := c.status.Get(cmdr)
		if now <= s.aiNextAction {
			continue
		}
		s.aiNextAction = now + c.aiDelay()

		switch c.state {
		case Lobby, Victory:
		case Placing:
			if !s.Playing {
				c.aiPlace(cmdr, s)
			}
		case Playing:
			if cmdr != c.attacking || c.hasFired {
				continue
			}
			if !c.aiAttack(cmdr, s) {
				s.aiNextAction = now + c.settings.AIRetryDelay
			}
		default:
			panic(core.OutOfRange("game state", c.state))
		}
	}
}

// aiPlace drops one unplaced vessel at a random valid spot. With the whole
// fleet placed the commander is marked ready.
func (c *Controller) aiPlace(cmdr *core.Commander, s *Status) {
	g := s.Grid
	var unplaced []*vessel.Vessel
	for _, v := range g.Fleet() {
		if !g.IsPlaced(v) {
			unplaced = append(unplaced, v)
		}
	}
	if len(unplaced) == 0 {
		if err := c.MarkCommanderReady(cmdr, true); err != nil {
			c.log.Error("AI could not ready", "commander", cmdr, "err", err)
		}
		return
	}

	rng := c.env.World.Rand
	v := unplaced[rng.Intn(len(unplaced))]
	for attempt := 0; attempt < c.settings.AIPlacementAttempts; attempt++ {
		v.SetDirection(core.Directions[rng.Intn(len(core.Directions))])
		v.SetGridPosition(core.C(rng.Intn(g.Width()), rng.Intn(g.Height())))
		if g.PlaceVessel(v) {
			return
		}
	}
	c.log.Warn("AI found no place for vessel", "commander", cmdr, "vessel", v.Name)
}

// aiAttack fires at the most probable cell of the strongest opposing fleet
func (c *Controller) aiAttack(cmdr *core.Commander, s *Status) bool {
	r, ok := s.Grid.PrepareAttack(c.TeamLayer(cmdr))
	if !ok {
		c.log.Debug("AI has no vessel ready to fire", "commander", cmdr)
		return false
	}

	target := c.strongestOpponent(cmdr)
	if target == nil {
		r.Release()
		return false
	}

	density := target.ProbabilityDensity()
	c.lastDensity[target] = density
	cell, _ := density.Max()

	if err := c.Attack(cmdr, target, r, cell, target.CellTarget(cell)); err != nil {
		c.log.Error("Failed to attack", "commander", cmdr, "err", err)
		return false
	}
	return true
}

// strongestOpponent is the grid of the playing commander on another team with
// the largest fleet; ties go to the earliest seat
func (c *Controller) strongestOpponent(cmdr *core.Commander) *grid.Grid {
	var best *grid.Grid
	for _, other := range c.CombatCommanders() {
		s, _ := c.status.Get(other)
		if other == cmdr || !s.Playing || s.Grid == nil || c.SameTeam(cmdr, other) {
			continue
		}
		if best == nil || s.Grid.FleetStrength() > best.FleetStrength() {
			best = s.Grid
		}
	}
	return best
}
