package weapons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

func TestTomahawkFlightProfile(t *testing.T) {
	env := newTestEnv(t, 100)
	m := NewTomahawk(env, DefaultTomahawkSettings())
	target := core.V3(0, 0, 300)

	var impacts []FuseResult
	completed := 0
	m.Reset(core.V3(0, 0, 0))
	m.Launch(LaunchConfig{
		Origin:              core.V3(0, 0, 0),
		Target:              target,
		Layer:               core.LayerFor(0),
		Fuse:                Detonate,
		OnImpact:            func(r FuseResult) { impacts = append(impacts, r) },
		OnExplosionComplete: func() { completed++ },
		InFlight:            RevealAfterHalfFlight,
	})

	// Still spooling
	env.World.RunFor(1)
	assert.False(t, m.Launched())
	assert.Equal(t, -1.0, m.DistanceToTarget())
	assert.Equal(t, 0.0, m.FlightFraction())

	// Boosting toward cruise altitude
	env.World.RunFor(4)
	assert.True(t, m.Launched())
	assert.Greater(t, m.Position().Y, 40.0)
	assert.InDelta(t, 90, m.CruiseAltitude(), 5)
	assert.Equal(t, core.LayerFor(0), m.Layer())

	// spool 2 + boost 4 + cruise 180/40 + terminal 3
	env.World.RunFor(9)
	require.True(t, m.Exploded())
	assert.InDelta(t, 13.5, m.FollowFinishTime(), 0.05)
	assert.InDelta(t, 0, m.Position().Sub(target).Len(), 1e-6)
	assert.Equal(t, core.LayerAll, m.Layer())
	assert.Empty(t, impacts, "impact reported once the explosion plays out")

	env.World.RunFor(2)
	assert.Equal(t, []FuseResult{Detonate}, impacts)
	assert.Equal(t, 0, completed)

	env.World.RunFor(7)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1.0, m.FlightFraction())
	assert.Equal(t, 0.0, m.DistanceToTarget())
}

func TestTomahawkResetAbandonsFlight(t *testing.T) {
	env := newTestEnv(t, 50)
	m := NewTomahawk(env, DefaultTomahawkSettings())
	impacts := 0
	m.Launch(LaunchConfig{Target: core.V3(0, 0, 200), OnImpact: func(FuseResult) { impacts++ }})
	env.World.RunFor(3)
	m.Reset(core.V3(5, 0, 5))
	env.World.RunFor(30)
	assert.Zero(t, impacts)
	assert.False(t, m.Launched())
	assert.Equal(t, core.V3(5, 0, 5), m.Position())
}

func TestJSMGuidesOntoTarget(t *testing.T) {
	env := newTestEnv(t, 50)
	pool := NewJSMPool(env, DefaultJSMSettings(), 1)
	m := pool.Take()
	target := core.V3(30, 0, 220)
	origin := core.V3(0, 80, 0)

	var impacts []FuseResult
	completed := 0
	m.Reset(origin)
	m.Launch(LaunchConfig{
		Origin:              origin,
		Heading:             core.V3(0, 0, 1),
		InitialSpeed:        4,
		Target:              target,
		Fuse:                Splash,
		OnImpact:            func(r FuseResult) { impacts = append(impacts, r) },
		OnExplosionComplete: func() { completed++; pool.Return(m) },
	})

	env.World.RunFor(0.5)
	assert.Less(t, m.Position().Y, 80.0, "free falling")
	assert.False(t, m.(*JSM).EngineLit())

	env.World.RunFor(25)
	require.True(t, m.Exploded())
	assert.True(t, m.(*JSM).EngineLit())
	assert.Equal(t, []FuseResult{Splash}, impacts)
	assert.Equal(t, 1, completed)
	assert.Equal(t, 1, pool.Available())
	assert.Less(t, m.FollowFinishTime(), 25.0)
}
