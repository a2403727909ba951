package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/grid"
)

func TestAIDelayWithinRange(t *testing.T) {
	r := newMatch(t, 2, true)
	for i := 0; i < 100; i++ {
		d := r.c.aiDelay()
		assert.GreaterOrEqual(t, d, 2.0)
		assert.Less(t, d, 5.0)
	}

	r.c.settings.AIDelayMax = r.c.settings.AIDelayMin
	assert.Equal(t, 2.0, r.c.aiDelay())
}

func TestAIPlacesFleetAndStartsGame(t *testing.T) {
	r := newMatch(t, 2, false)
	require.NoError(t, r.c.StartPlacement())

	// five vessels and the launch switch, one action every two to five seconds
	r.w.RunFor(40)
	require.Equal(t, Playing, r.c.State())

	for _, cmdr := range r.c.CombatCommanders() {
		s, _ := r.c.Status(cmdr)
		assert.True(t, s.PlacementComplete)
		assert.True(t, s.Playing)

		g := s.Grid
		occupied := 0
		for y := 0; y < g.Height(); y++ {
			for x := 0; x < g.Width(); x++ {
				if g.IsOccupied(core.C(x, y)) {
					occupied++
				}
			}
		}
		assert.Equal(t, 17, occupied, "no two vessels overlap")
	}
}

func TestAIAttacksMostProbableCell(t *testing.T) {
	r := newMatch(t, 2, true)
	r.startPlaying(t)

	attacker := r.c.AttackingCommander()
	target := r.grid(r.opponent(attacker))
	s, _ := r.c.Status(attacker)

	require.True(t, r.c.aiAttack(attacker, s))
	assert.True(t, r.c.HasFired())

	density, ok := r.c.LastDensity(target)
	require.True(t, ok)
	best, score := density.Max()
	assert.Positive(t, score)
	assert.Equal(t, best, r.c.View().Cell)
	assert.Equal(t, target, r.c.View().Grid)

	assert.False(t, r.c.aiAttack(attacker, s), "one shot per turn")
}

func TestStrongestOpponentSkipsTeamAndEliminated(t *testing.T) {
	r := newMatch(t, 4, false)
	cmdrs := r.join(t, 4)
	a, b, c, d := cmdrs[0], cmdrs[1], cmdrs[2], cmdrs[3]
	sa, _ := r.c.Status(a)
	require.NoError(t, r.c.SetTeamColor(d, sa.ColorIndex))
	r.startPlaying(t)

	// all fleets are whole; the first opposing seat wins the tie
	assert.Equal(t, r.grid(b), r.c.strongestOpponent(a))

	// the carrier sits on row 2
	r.grid(b).HandleImpact(core.C(3, 2))
	assert.Equal(t, r.grid(c), r.c.strongestOpponent(a))

	r.c.EliminateCommander(c)
	assert.Equal(t, r.grid(b), r.c.strongestOpponent(a))

	r.c.EliminateCommander(b)
	assert.Nil(t, r.c.strongestOpponent(a), "d is a teammate")
}

func TestAIMatchReachesVictory(t *testing.T) {
	r := newMatch(t, 2, true)
	require.NoError(t, r.c.StartPlacement())

	for elapsed := 0.0; elapsed < 4000 && r.c.State() != Victory; elapsed += 10 {
		r.w.RunFor(10)
	}
	require.Equal(t, Victory, r.c.State())

	var winners, losers []*core.Commander
	for _, cmdr := range r.c.CombatCommanders() {
		s, _ := r.c.Status(cmdr)
		if s.Playing {
			winners = append(winners, cmdr)
		} else {
			losers = append(losers, cmdr)
		}
	}
	require.Len(t, winners, 1)
	require.Len(t, losers, 1)
	assert.Equal(t, 0, r.grid(losers[0]).FleetStrength())
	assert.Positive(t, r.grid(winners[0]).FleetStrength())

	require.Len(t, r.events[core.EvtVictory], 1)
	assert.Equal(t, winners, r.events[core.EvtVictory][0].Payload.(VictoryEvent).Commanders)
	assert.Len(t, r.events[core.EvtCommanderEliminated], 1)
	assert.Equal(t, len(r.events[core.EvtShotFired]), len(r.events[core.EvtImpact]), "one impact per shot")

	for _, g := range r.c.Grids() {
		assert.Equal(t, grid.Revealed, g.CellState(core.C(0, 0)))
	}
}
