package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/vessel"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

type attackCall struct {
	attacker *core.Commander
	target   *Grid
	res      *weapons.Reservation
	cell     core.Cell
	coords   core.Vec3
}

type fakeReferee struct {
	playing    bool
	attacking  *core.Commander
	teams      map[*core.Commander]int
	grids      map[*core.Commander]*Grid
	complete   map[*core.Commander]bool
	eliminated []*core.Commander
	attacks    []attackCall
}

func newFakeReferee() *fakeReferee {
	return &fakeReferee{
		teams:    map[*core.Commander]int{},
		grids:    map[*core.Commander]*Grid{},
		complete: map[*core.Commander]bool{},
	}
}

func (r *fakeReferee) Playing() bool                       { return r.playing }
func (r *fakeReferee) AttackingCommander() *core.Commander { return r.attacking }
func (r *fakeReferee) SameTeam(a, b *core.Commander) bool  { return r.teams[a] == r.teams[b] }
func (r *fakeReferee) TeamLayer(c *core.Commander) core.Layer {
	return core.LayerFor(r.teams[c])
}
func (r *fakeReferee) GridOf(c *core.Commander) *Grid { return r.grids[c] }

func (r *fakeReferee) Attack(attacker *core.Commander, target *Grid, res *weapons.Reservation, cell core.Cell, coords core.Vec3) error {
	r.attacks = append(r.attacks, attackCall{attacker, target, res, cell, coords})
	return nil
}

func (r *fakeReferee) SetPlacementComplete(c *core.Commander, complete bool) { r.complete[c] = complete }
func (r *fakeReferee) EliminateCommander(c *core.Commander) {
	r.eliminated = append(r.eliminated, c)
}

type rig struct {
	env      weapons.Env
	settings vessel.Settings
	armory   *vessel.Armory
	referee  *fakeReferee
}

func newRig(t *testing.T) *rig {
	t.Helper()
	env := weapons.NewEnv(core.NewWorld(20, 1), nil, nil, nil)
	settings := vessel.DefaultSettings()
	return &rig{env: env, settings: settings, armory: vessel.NewArmory(env, &settings), referee: newFakeReferee()}
}

func (r *rig) grid(owner *core.Commander, team, width, height int) *Grid {
	r.referee.teams[owner] = team
	g := New(r.env, owner, width, height, Frame{Pitch: 25}, core.LayerFor(team), r.referee)
	r.referee.grids[owner] = g
	return g
}

func (r *rig) issue(g *Grid, kind vessel.Kind) *vessel.Vessel {
	v := vessel.New(r.env, &r.settings, r.armory, kind, kind.ClassName())
	g.AddVessel(v)
	return v
}

func (r *rig) place(t *testing.T, g *Grid, v *vessel.Vessel, pos core.Cell, dir core.Direction) {
	t.Helper()
	v.SetDirection(dir)
	v.SetGridPosition(pos)
	require.True(t, g.PlaceVessel(v))
}

func TestPlacementScenario(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	v := r.issue(g, vessel.Destroyer)

	assert.True(t, g.ValidatePlacement(v, core.C(2, 2), core.East))
	assert.False(t, g.ValidatePlacement(v, core.C(7, 2), core.East), "(8,2) is off the grid")
	assert.False(t, g.ValidatePlacement(v, core.C(0, 2), core.East), "(-1,2) is off the grid")

	r.place(t, g, v, core.C(2, 2), core.East)
	assert.Equal(t, []core.Cell{core.C(1, 2), core.C(2, 2), core.C(3, 2)}, v.OccupiedCells())
}

func TestOccupancyMatchesFootprints(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	a := r.issue(g, vessel.Battleship)
	b := r.issue(g, vessel.Submarine)
	r.place(t, g, a, core.C(3, 3), core.North)
	r.place(t, g, b, core.C(6, 3), core.East)

	assert.False(t, g.ValidatePlacement(b, core.C(3, 2), core.East), "overlaps the battleship")

	// Moving a placed vessel replaces its old cells
	b.SetDirection(core.South)
	require.True(t, g.PlaceVessel(b))

	for y := range 8 {
		for x := range 8 {
			c := core.C(x, y)
			got, ok := g.VesselAt(c)
			switch {
			case containsCell(a.OccupiedCells(), c):
				assert.Same(t, a, got, c.String())
			case containsCell(b.OccupiedCells(), c):
				assert.Same(t, b, got, c.String())
			default:
				assert.False(t, ok, c.String())
			}
		}
	}
}

func TestRejectedMoveKeepsPlacement(t *testing.T) {
	r := newRig(t)
	owner := core.NewAICommander(0)
	g := r.grid(owner, 0, 8, 8)
	v := r.issue(g, vessel.Destroyer)
	r.place(t, g, v, core.C(2, 2), core.East)
	require.True(t, r.referee.complete[owner])

	taken := 0
	r.env.World.Events.On(core.EvtVesselTaken, func(core.Event) { taken++ })

	v.SetGridPosition(core.C(7, 2))
	assert.False(t, g.PlaceVessel(v), "(8,2) is off the grid")

	r.env.World.Events.Dispatch()
	assert.Zero(t, taken)
	assert.False(t, v.IsMoving())
	assert.True(t, r.referee.complete[owner])
	assert.Equal(t, 3, g.FleetStrength())
	assert.Len(t, g.AttackVessels(), 1)
	for _, c := range []core.Cell{core.C(1, 2), core.C(2, 2), core.C(3, 2)} {
		got, ok := g.VesselAt(c)
		assert.True(t, ok, c.String())
		assert.Same(t, v, got, c.String())
	}
	_, ok := g.VesselAt(core.C(7, 2))
	assert.False(t, ok)
}

func containsCell(cells []core.Cell, c core.Cell) bool {
	for _, cell := range cells {
		if cell == c {
			return true
		}
	}
	return false
}

func TestPlacementCompleteAndFleetStrength(t *testing.T) {
	r := newRig(t)
	owner := core.NewAICommander(0)
	g := r.grid(owner, 0, 8, 8)
	a := r.issue(g, vessel.AircraftCarrier)
	b := r.issue(g, vessel.LittoralCombatShip)

	r.place(t, g, a, core.C(3, 1), core.East)
	assert.Equal(t, 5, g.FleetStrength())
	assert.False(t, r.referee.complete[owner])

	r.place(t, g, b, core.C(3, 5), core.East)
	assert.Equal(t, 7, g.FleetStrength())
	assert.True(t, r.referee.complete[owner])

	g.TakeVessel(b)
	assert.Equal(t, 5, g.FleetStrength())
	assert.False(t, r.referee.complete[owner])
	assert.True(t, b.IsMoving())
	assert.False(t, g.IsOccupied(core.C(3, 5)))
	assert.Len(t, g.AttackVessels(), 1)
}

func TestRotateMovingVessels(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	v := r.issue(g, vessel.Destroyer)
	r.place(t, g, v, core.C(3, 3), core.East)
	g.TakeVessel(v)

	g.RotateMovingVessels(1)
	assert.Equal(t, core.South, v.Direction())
	g.RotateMovingVessels(-1)
	g.RotateMovingVessels(-1)
	assert.Equal(t, core.North, v.Direction())
}

func TestHandleImpact(t *testing.T) {
	r := newRig(t)
	owner := core.NewAICommander(0)
	g := r.grid(owner, 0, 8, 8)
	lcs := r.issue(g, vessel.LittoralCombatShip)
	sub := r.issue(g, vessel.Submarine)
	r.place(t, g, lcs, core.C(1, 1), core.East)
	r.place(t, g, sub, core.C(5, 5), core.East)
	require.Equal(t, 5, g.FleetStrength())

	g.HandleImpact(core.C(7, 7))
	assert.Equal(t, Revealed, g.CellState(core.C(7, 7)))
	assert.Equal(t, 5, g.FleetStrength())

	g.HandleImpact(core.C(0, 1))
	assert.Equal(t, OnFire, g.CellState(core.C(0, 1)))
	assert.Equal(t, 4, g.FleetStrength())

	g.HandleImpact(core.C(0, 1))
	assert.Equal(t, 4, g.FleetStrength(), "a burning cell cannot be hit twice")

	g.HandleImpact(core.C(1, 1))
	require.True(t, lcs.IsDestroyed())
	assert.Equal(t, 3, g.FleetStrength())
	assert.Equal(t, Revealed, g.CellState(core.C(0, 1)))
	assert.Equal(t, Revealed, g.CellState(core.C(1, 1)))
	assert.Equal(t, core.LayerAll, lcs.Layer())
	assert.Equal(t, []*vessel.Vessel{sub}, g.AttackVessels())
	assert.Empty(t, r.referee.eliminated)
	assert.Equal(t, core.LayerFor(0), sub.Layer())
}

func TestFleetStrengthCountsUnburntCells(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	a := r.issue(g, vessel.Battleship)
	b := r.issue(g, vessel.Destroyer)
	r.place(t, g, a, core.C(2, 1), core.East)
	r.place(t, g, b, core.C(2, 4), core.East)

	unburnt := func() int {
		n := 0
		for _, v := range g.Fleet() {
			n += v.Length() - v.CellsOnFire()
		}
		return n
	}
	for _, c := range []core.Cell{core.C(1, 1), core.C(5, 5), core.C(2, 4), core.C(1, 1), core.C(3, 4)} {
		g.HandleImpact(c)
		assert.Equal(t, unburnt(), g.FleetStrength(), c.String())
	}
}

func TestSelfDestructEliminates(t *testing.T) {
	r := newRig(t)
	owner := core.NewAICommander(0)
	g := r.grid(owner, 0, 8, 8)
	a := r.issue(g, vessel.Destroyer)
	b := r.issue(g, vessel.Submarine)
	r.place(t, g, a, core.C(2, 1), core.East)
	r.place(t, g, b, core.C(2, 4), core.East)

	g.SelfDestruct()
	assert.Zero(t, g.FleetStrength())
	assert.True(t, a.IsDestroyed())
	assert.True(t, b.IsDestroyed())
	assert.Equal(t, []*core.Commander{owner}, r.referee.eliminated)
	assert.Empty(t, g.AttackVessels())
	for y := range 8 {
		for x := range 8 {
			assert.Equal(t, Revealed, g.CellState(core.C(x, y)))
		}
	}
}

func TestRevealShowsSurvivors(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 2, 8, 8)
	v := r.issue(g, vessel.Destroyer)
	r.place(t, g, v, core.C(2, 1), core.East)
	require.Equal(t, core.LayerFor(2), v.Layer())

	g.Reveal()
	assert.Equal(t, core.LayerAll, v.Layer())
	assert.Equal(t, Revealed, g.CellState(core.C(7, 7)))
}

func TestProbabilityDensity(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 3, 3)
	lcs := r.issue(g, vessel.LittoralCombatShip)
	r.place(t, g, lcs, core.C(1, 1), core.East)

	d := g.ProbabilityDensity()
	assert.Equal(t, 8, d.At(core.C(1, 1)))
	assert.Equal(t, 4, d.At(core.C(0, 0)))
	assert.Equal(t, 6, d.At(core.C(1, 0)))
	assert.Zero(t, d.At(core.C(5, 5)))

	g.HandleImpact(core.C(0, 0))
	g.HandleImpact(core.C(1, 1))
	d = g.ProbabilityDensity()
	assert.Zero(t, d.At(core.C(0, 0)))
	assert.Zero(t, d.At(core.C(1, 1)))
	assert.Equal(t, 80, d.At(core.C(1, 0)))
	assert.Equal(t, 80, d.At(core.C(0, 1)))
	assert.Equal(t, 120, d.At(core.C(2, 1)))
	assert.Equal(t, 120, d.At(core.C(1, 2)))
	assert.Equal(t, 4, d.At(core.C(2, 2)))

	best, score := d.Max()
	assert.Equal(t, core.C(2, 1), best, "ties go to the first cell in row order")
	assert.Equal(t, 120, score)
}

func TestProbabilityDensityZeroOffHidden(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	for i, kind := range []vessel.Kind{vessel.Destroyer, vessel.Battleship, vessel.Submarine} {
		r.place(t, g, r.issue(g, kind), core.C(3, 1+2*i), core.East)
	}
	rng := r.env.World.Rand
	for range 20 {
		g.HandleImpact(core.C(rng.Intn(8), rng.Intn(8)))
		d := g.ProbabilityDensity()
		for y := range 8 {
			for x := range 8 {
				c := core.C(x, y)
				if g.CellState(c) != Hidden {
					assert.Zero(t, d.At(c), c.String())
				}
			}
		}
	}
}

func TestPrepareAttackRoundRobin(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	a := r.issue(g, vessel.Destroyer)
	b := r.issue(g, vessel.Battleship)
	c := r.issue(g, vessel.Submarine)
	r.place(t, g, a, core.C(2, 1), core.East)
	r.place(t, g, b, core.C(2, 3), core.East)
	r.place(t, g, c, core.C(2, 5), core.East)

	var origins []string
	for range 4 {
		res, ok := g.PrepareAttack(core.LayerFor(0))
		require.True(t, ok)
		origins = append(origins, res.Origin)
		res.Release()
	}
	assert.Equal(t, []string{b.Name, c.Name, a.Name, b.Name}, origins)

	g.SelfDestruct()
	_, ok := g.PrepareAttack(core.LayerFor(0))
	assert.False(t, ok)
}

func TestPrepareAttackSkipsVesselsThatCannotFire(t *testing.T) {
	r := newRig(t)
	g := r.grid(core.NewAICommander(0), 0, 8, 8)
	carrier := r.issue(g, vessel.AircraftCarrier)
	lcs := r.issue(g, vessel.LittoralCombatShip)
	r.place(t, g, carrier, core.C(3, 1), core.East)
	r.place(t, g, lcs, core.C(3, 4), core.East)

	for range 3 {
		res, ok := g.PrepareAttack(core.LayerFor(0))
		require.True(t, ok)
		assert.Equal(t, lcs.Name, res.Origin, "the carrier has no aircraft on patrol")
		res.Release()
	}
}

func TestHandleTriggerPull(t *testing.T) {
	r := newRig(t)
	attacker := core.NewLocalCommander(0, "Alice")
	ally := core.NewAICommander(0)
	enemy := core.NewAICommander(1)
	home := r.grid(attacker, 0, 8, 8)
	allied := r.grid(ally, 0, 8, 8)
	target := r.grid(enemy, 1, 8, 8)
	r.place(t, home, r.issue(home, vessel.Destroyer), core.C(2, 2), core.East)
	r.place(t, target, r.issue(target, vessel.Destroyer), core.C(2, 2), core.East)
	target.HandleImpact(core.C(6, 6))

	assert.ErrorIs(t, target.HandleTriggerPull(attacker, core.C(1, 1)), ErrInvalidTarget, "not playing")
	r.referee.playing = true
	assert.ErrorIs(t, target.HandleTriggerPull(attacker, core.C(1, 1)), ErrInvalidTarget, "not attacking")
	r.referee.attacking = attacker
	assert.ErrorIs(t, allied.HandleTriggerPull(attacker, core.C(1, 1)), ErrInvalidTarget, "same team")
	assert.ErrorIs(t, target.HandleTriggerPull(attacker, core.C(8, 1)), ErrInvalidTarget, "off grid")
	assert.ErrorIs(t, target.HandleTriggerPull(attacker, core.C(6, 6)), ErrInvalidTarget, "revealed")
	require.Empty(t, r.referee.attacks)

	require.NoError(t, target.HandleTriggerPull(attacker, core.C(1, 1)))
	require.Len(t, r.referee.attacks, 1)
	call := r.referee.attacks[0]
	assert.Same(t, target, call.target)
	assert.Equal(t, core.C(1, 1), call.cell)
	assert.Equal(t, target.CellTarget(core.C(1, 1)), call.coords)
	assert.Equal(t, home.Fleet()[0].Name, call.res.Origin)
}

func TestFrameRoundTrip(t *testing.T) {
	r := newRig(t)
	owner := core.NewAICommander(0)
	r.referee.teams[owner] = 0
	g := New(r.env, owner, 8, 8, Ring(1, 3, 400, 25), core.LayerFor(0), r.referee)

	for _, c := range []core.Cell{core.C(0, 0), core.C(7, 0), core.C(3, 5), core.C(7, 7)} {
		assert.Equal(t, c, g.CellForPosition(g.CellCenter(c)), c.String())
	}
	centre := g.CellCenter(core.C(3, 3)).Lerp(g.CellCenter(core.C(4, 4)), 0.5)
	assert.InDelta(t, 0, centre.Sub(g.Frame().Origin).Len(), 1e-9)
	assert.InDelta(t, 25, g.CellCenter(core.C(0, 0)).Sub(g.CellCenter(core.C(1, 0))).Len(), 1e-9)
	assert.InDelta(t, 120, g.Frame().Angle, 1e-9)
}
