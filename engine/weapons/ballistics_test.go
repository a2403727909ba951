package weapons

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasHunt/T5Doodle-FleetCommand/engine/core"
)

func TestComputeFiringSolution(t *testing.T) {
	v, ok := ComputeFiringSolution(core.V3(0, 0, 0), core.V3(0, 0, 100), 45, 10)
	require.True(t, ok)
	// d·g at 45° over flat ground
	assert.InDelta(t, 31.6227, v, 1e-3)

	_, ok = ComputeFiringSolution(core.V3(0, 0, 0), core.V3(0, 0, 100), 0, 10)
	assert.False(t, ok, "flat shot never rises to reach level ground")

	_, ok = ComputeFiringSolution(core.V3(0, 0, 0), core.V3(0, 200, 10), 10, 10)
	assert.False(t, ok, "target too high for elevation")

	_, ok = ComputeFiringSolution(core.V3(1, 0, 1), core.V3(1, 0, 1), 30, 10)
	assert.False(t, ok)
}

func TestElevationForDistance(t *testing.T) {
	assert.InDelta(t, 0, ElevationForDistance(0, 500, 45), 1e-9)
	assert.InDelta(t, 11.25, ElevationForDistance(250, 500, 45), 1e-9)
	assert.InDelta(t, 45, ElevationForDistance(900, 500, 45), 1e-9)
}

func TestFiringSolutionLandsOnTarget(t *testing.T) {
	const g = 19.81
	cases := []struct {
		distance  float64
		elevation float64
		bearing   float64
	}{
		{50, 10, 0},
		{120, 20, 45},
		{300, 30, 200},
		{480, 45, 300},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%.0f@%.0f", tc.distance, tc.elevation), func(t *testing.T) {
			env := newTestEnv(t, 200)
			settings := DefaultShellSettings()
			settings.Gravity = g

			origin := core.V3(3, 0, -7)
			target := origin.Add(core.HeadingVector(tc.bearing).Scale(tc.distance))
			speed, ok := ComputeFiringSolution(origin, target, tc.elevation, g)
			require.True(t, ok)

			var landed core.Vec3
			impacts := 0
			shell := NewShell(env, settings)
			shell.Fire(ShellShot{
				Origin:    origin,
				Target:    target,
				Elevation: tc.elevation,
				Speed:     speed,
				Fuse:      Splash,
				OnDetonation: func(r FuseResult) {
					impacts++
					landed = shell.Position()
					assert.Equal(t, Splash, r)
				},
			})

			env.World.RunFor(20)
			require.Equal(t, 1, impacts)
			assert.InDelta(t, 0, core.FlatDistance(landed, target), 0.1)
			assert.False(t, shell.Active())
		})
	}
}
