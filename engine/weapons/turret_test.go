package weapons

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

func newTestTurret(t *testing.T, barrels int) (Env, *Pool[*Shell], *GunTurret) {
	t.Helper()
	env := newTestEnv(t, 100)
	pool := NewShellPool(env, DefaultShellSettings(), 4)
	settings := DefaultTurretSettings()
	settings.Barrels = barrels
	turret := NewGunTurret(env, settings, pool, core.V3(0, 1, 0), 0)
	return env, pool, turret
}

func TestTurretAimAt(t *testing.T) {
	_, _, turret := newTestTurret(t, 1)
	p := &FirePackage{}
	turret.AimAt(core.V3(250, 0, 0), p)

	assert.InDelta(t, 90, p.Rotation, 1e-9)
	assert.InDelta(t, 11.25, p.Elevation, 0.01)
	assert.Greater(t, p.Power, 0.0)
	assert.InDelta(t, 250, p.Distance, 0.01)
}

func TestTurretPrepareReservesShells(t *testing.T) {
	_, pool, turret := newTestTurret(t, 3)
	p := turret.PrepareFirePackage(core.LayerFor(1), 2)
	assert.Equal(t, 6, p.Shells())
	assert.Equal(t, 6, pool.Created(), "pool grew past its prefill")
	assert.Equal(t, 0, pool.Available())
	assert.Same(t, turret, p.Follow.Principal)

	turret.ReleaseFirePackage(p)
	assert.Equal(t, 6, pool.Available())
	assert.Zero(t, p.Shells())
}

func TestTurretFiresBurst(t *testing.T) {
	env, pool, turret := newTestTurret(t, 2)
	p := turret.PrepareFirePackage(core.LayerFor(0), 2)

	impacts := 0
	turret.Submit(p, core.V3(0, 0, 100), func() { impacts++ }, 0.5, Detonate)
	assert.Equal(t, 1, turret.Queued())

	env.World.RunFor(0.1)
	assert.Zero(t, turret.Queued())
	assert.IsType(t, &Shell{}, p.Follow.Principal, "follows the lead shell")
	assert.Equal(t, 2, p.Shells(), "second round waits for the burst interval")

	env.World.RunFor(10)
	assert.Equal(t, 4, impacts)
	assert.Equal(t, 4, pool.Available())
}

func TestLockedTurretKeepsQueue(t *testing.T) {
	env, _, turret := newTestTurret(t, 1)
	p := turret.PrepareFirePackage(core.LayerAll, 1)

	impacts := 0
	turret.Lock(true)
	turret.Submit(p, core.V3(100, 0, 0), func() { impacts++ }, 0, Splash)
	env.World.RunFor(3)
	assert.True(t, turret.Locked())
	assert.Equal(t, 1, turret.Queued())
	assert.Equal(t, 0.0, turret.Bearing())
	assert.Zero(t, impacts)

	turret.Lock(false)
	env.World.RunFor(10)
	require.Equal(t, 1, impacts)
	assert.InDelta(t, 90, turret.Bearing(), 1e-9)
	assert.Zero(t, turret.Queued())
}
