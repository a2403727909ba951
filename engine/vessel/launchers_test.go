package vessel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/aircraft"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
	"github.com/KasHunt/T5Doodle-FleetCommand/engine/weapons"
)

func TestDestroyerHatchesRunOut(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(Destroyer, core.Cell{X: 4, Y: 4}, core.East)
	hatches := v.arms.(*Hatches)

	seen := map[int]bool{}
	var held []*weapons.Reservation
	for range destroyerHatches {
		res, ok := v.PrepareToFire(core.LayerFor(0))
		require.True(t, ok)
		assert.Equal(t, weapons.ReserveHatch, res.Kind())
		seen[res.Payload.(HatchPayload).Hatch] = true
		held = append(held, res)
	}
	assert.Len(t, seen, destroyerHatches)

	_, ok := v.PrepareToFire(core.LayerFor(0))
	assert.False(t, ok)

	held[3].Release()
	assert.Equal(t, 1, hatches.Available())
	res, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	assert.Equal(t, held[3].Payload.(HatchPayload).Hatch, res.Payload.(HatchPayload).Hatch)
}

func TestDestroyerLaunchesThroughHatch(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(Destroyer, core.Cell{X: 4, Y: 4}, core.East)
	hatches := v.arms.(*Hatches)

	res, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	p := res.Payload.(HatchPayload)
	assert.Same(t, p.Missile, res.Follow.Principal)

	impacts := 0
	require.NoError(t, res.Fire(r.env.Now(), core.V3(0, 0, 600), false, func() { impacts++ }))
	r.env.World.RunFor(0.2)
	assert.InDelta(t, 90, hatches.Angle(p.Hatch), 1e-9)

	r.env.World.RunFor(r.settings.Destroyer.HatchCloseDelay + r.settings.Destroyer.HatchCloseTime)
	assert.InDelta(t, 0, hatches.Angle(p.Hatch), 1e-9)

	r.env.World.RunFor(60)
	assert.Equal(t, 1, impacts)
	assert.Equal(t, destroyerHatches, hatches.Available(), "hatch reloads once the explosion is over")
}

func TestSubmarineBatchesLaunchesPerHatch(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(Submarine, core.Cell{X: 4, Y: 4}, core.East)
	silos := v.arms.(*Silos)

	first, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	second, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	require.Equal(t, 0, HatchFor(first.Payload.(SiloPayload).Silo))
	require.Equal(t, 0, HatchFor(second.Payload.(SiloPayload).Silo))

	impacts := 0
	onImpact := func() { impacts++ }
	require.NoError(t, first.Fire(r.env.Now(), core.V3(0, 0, 600), true, onImpact))
	require.NoError(t, second.Fire(r.env.Now(), core.V3(50, 0, 600), true, onImpact))

	r.env.World.RunFor(0.5)
	status := silos.Hatch(0)
	assert.Equal(t, HatchOpening, status.State)
	assert.Equal(t, 2, status.Queued)
	assert.Equal(t, HatchClosed, silos.Hatch(1).State)

	r.env.World.RunFor(0.6)
	status = silos.Hatch(0)
	require.Equal(t, HatchOpen, status.State)
	assert.Zero(t, status.Queued)
	launchedAt := status.CloseTime - r.settings.Submarine.HatchDwellTime
	assert.LessOrEqual(t, launchedAt, r.env.Now())

	// A launch queued while the hatch is open goes straight out and
	// pushes the close back
	r.env.World.RunFor(1)
	third, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	require.Equal(t, 0, HatchFor(third.Payload.(SiloPayload).Silo))
	require.NoError(t, third.Fire(r.env.Now(), core.V3(-50, 0, 600), true, onImpact))
	r.env.World.RunFor(0.05)
	assert.Equal(t, HatchOpen, silos.Hatch(0).State)
	assert.InDelta(t, r.env.Now()+r.settings.Submarine.HatchDwellTime, silos.Hatch(0).CloseTime, 1e-9)

	r.env.World.RunFor(r.settings.Submarine.HatchDwellTime + r.settings.Submarine.HatchCloseTime + 0.2)
	assert.Equal(t, HatchClosed, silos.Hatch(0).State)

	r.env.World.RunFor(60)
	assert.Equal(t, 3, impacts)
	assert.Equal(t, submarineSilos, silos.Available())
}

func TestSubmarineReleaseReloadsSilo(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(Submarine, core.Cell{X: 4, Y: 4}, core.East)
	silos := v.arms.(*Silos)

	res, ok := v.PrepareToFire(core.LayerFor(1))
	require.True(t, ok)
	assert.Equal(t, core.LayerFor(1), res.Payload.(SiloPayload).Missile.Layer())
	assert.Equal(t, submarineSilos-1, silos.Available())

	res.Release()
	assert.Equal(t, submarineSilos, silos.Available())
	assert.ErrorIs(t, res.Fire(r.env.Now(), core.V3(0, 0, 100), true, nil), weapons.ErrReservationSpent)
}

func TestCarrierRunwayWaypointsFollowHull(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)

	wps := deck.RunwayWaypoints(aircraft.CatapultStart)
	require.Len(t, wps, 1)
	assert.InDelta(t, 0, wps[0].Sub(v.ToWorld(core.V3(-4, runwayAltitude, 20))).Len(), 1e-9)
	assert.Len(t, deck.RunwayWaypoints(aircraft.PatrolRoute), 4)
	assert.Panics(t, func() { deck.RunwayWaypoints(aircraft.WaypointKind(42)) })
}

func TestCarrierLiftTravel(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)
	upLift := v.ToWorld(core.V3(8, runwayAltitude, 0))

	state, ok := deck.LiftState(upLift)
	require.True(t, ok)
	assert.Equal(t, aircraft.LiftRaised, state)

	rider := deck.Aircraft()[2]
	deck.OperateLift(upLift, aircraft.LiftLowered, rider)
	_, ok = deck.LiftState(upLift)
	assert.False(t, ok, "a moving lift has no settled state")

	r.env.World.RunFor(r.settings.Carrier.LiftTravelTime / 2)
	assert.InDelta(t, v.Center().Y+runwayAltitude-liftTravel/2, rider.Position().Y, 0.2)

	r.env.World.RunFor(r.settings.Carrier.LiftTravelTime)
	state, ok = deck.LiftState(upLift)
	require.True(t, ok)
	assert.Equal(t, aircraft.LiftLowered, state)
	assert.InDelta(t, v.Center().Y+hangarAltitude, rider.Position().Y, 1e-9)

	downState, moving := deck.Lift(1)
	assert.Equal(t, aircraft.LiftRaised, downState)
	assert.False(t, moving)
}

func TestCarrierClearances(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)

	assert.True(t, deck.RequestLandingClearance())
	assert.False(t, deck.RequestLandingClearance())
	deck.ReleaseLandingClearance()
	assert.True(t, deck.RequestLandingClearance())

	assert.True(t, deck.RequestTakeoffClearance())
	assert.False(t, deck.RequestTakeoffClearance())
	deck.ReleaseTakeoffClearance()

	burn(v)
	assert.True(t, deck.IsDestroyed())
	assert.False(t, deck.RequestTakeoffClearance())
}

func TestCarrierCannotFireWithoutPatrol(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)
	require.Len(t, deck.Aircraft(), r.settings.Carrier.AircraftCount)

	_, ok := v.PrepareToFire(core.LayerFor(0))
	assert.False(t, ok)
	for _, f := range deck.Aircraft() {
		assert.Equal(t, aircraft.Parked, f.State(), f.Name)
	}
}

func TestCarrierReleasesAircraftOnEnable(t *testing.T) {
	r := newTestRig(t)
	r.settings.Carrier.ActivateInterval = 5
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)

	v.Enable()
	r.env.World.RunFor(r.settings.Carrier.EnableDelay + 0.1)
	assert.True(t, deck.Aircraft()[0].PatrolEnabled)
	assert.False(t, deck.Aircraft()[1].PatrolEnabled)

	r.env.World.RunFor(r.settings.Carrier.SecondEnableDelay)
	assert.True(t, deck.Aircraft()[1].PatrolEnabled)
	assert.False(t, deck.Aircraft()[2].PatrolEnabled)

	r.env.World.RunFor(r.settings.Carrier.ActivateInterval + 0.1)
	assert.True(t, deck.Aircraft()[2].PatrolEnabled)
	assert.False(t, deck.Aircraft()[3].PatrolEnabled)
}

func TestCarrierStrikeFromPatrol(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)

	low, high := deck.Aircraft()[0], deck.Aircraft()[1]
	for _, f := range []*aircraft.F35{low, high} {
		f.PatrolEnabled = true
		f.SetPendingState(aircraft.Patrolling)
	}
	r.env.World.RunFor(0.1)
	require.True(t, low.IsOnPatrol())
	require.True(t, high.IsOnPatrol())

	res, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	assert.Equal(t, weapons.ReserveAircraft, res.Kind())
	payload := res.Payload.(AircraftPayload)
	assert.Contains(t, []*aircraft.F35{low, high}, payload.Aircraft)

	res.Release()
	assert.True(t, payload.Aircraft.Bay(payload.Strike.Side()).Available)
}

// patrolInTurn puts first on patrol, lets it burn fuel for lead seconds, then
// launches second
func patrolInTurn(r *testRig, first, second *aircraft.F35, lead float64) {
	for _, f := range []*aircraft.F35{first, second} {
		f.PatrolEnabled = true
		f.SetPendingState(aircraft.Patrolling)
		r.env.World.RunFor(lead)
		lead = 0.1
	}
}

func TestCarrierStrikeUsesLowestFuel(t *testing.T) {
	r := newTestRig(t)
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)

	// the second aircraft takes off first so index order cannot decide
	early, late := deck.Aircraft()[1], deck.Aircraft()[0]
	patrolInTurn(r, early, late, 10)
	require.True(t, early.IsOnPatrol())
	require.True(t, late.IsOnPatrol())
	require.Less(t, early.Fuel(), late.Fuel())

	res, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	assert.Same(t, early, res.Payload.(AircraftPayload).Aircraft)
	res.Release()
}

func TestCarrierStrikeSkipsAircraftShortOfFuel(t *testing.T) {
	r := newTestRig(t)
	// a fresh aircraft has a margin of 80; ten seconds aloft drops it under 75
	r.settings.Carrier.FuelToFireLimit = 75
	v := r.vessel(AircraftCarrier, core.Cell{X: 4, Y: 4}, core.East)
	deck := v.arms.(*FlightDeck)

	early, late := deck.Aircraft()[0], deck.Aircraft()[1]
	patrolInTurn(r, early, late, 10)
	require.True(t, early.IsOnPatrol())
	require.LessOrEqual(t, early.FuelMargin(), r.settings.Carrier.FuelToFireLimit)
	require.Greater(t, late.FuelMargin(), r.settings.Carrier.FuelToFireLimit)

	res, ok := v.PrepareToFire(core.LayerFor(0))
	require.True(t, ok)
	assert.Same(t, late, res.Payload.(AircraftPayload).Aircraft, "lowest fuel is not enough when it cannot afford the strike")
	res.Release()

	late.SetPendingState(aircraft.WaitingToLand)
	r.env.World.RunFor(0.1)
	_, ok = v.PrepareToFire(core.LayerFor(0))
	assert.False(t, ok, "no aircraft left that can afford a strike")
}
