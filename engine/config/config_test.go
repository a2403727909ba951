package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"logLevel": "debug",
		"match": { "players": 3, "loneWolf": true },
		"vessels": { "carrier": { "aircraftCount": 2, "aircraft": { "flightSpeed": 6 } } }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	got, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", got.LogLevel)
	assert.Equal(t, 3, got.Match.Players)
	assert.True(t, got.Match.LoneWolf)
	assert.Equal(t, 2, got.Vessels.Carrier.AircraftCount)
	assert.Equal(t, 6.0, got.Vessels.Carrier.Aircraft.FlightSpeed)

	def := Default()
	assert.Equal(t, def.Match.AIDelayMax, got.Match.AIDelayMax, "untouched keys keep their defaults")
	assert.Equal(t, def.Vessels.Carrier.Aircraft.TaxiSpeed, got.Vessels.Carrier.Aircraft.TaxiSpeed)
	assert.Equal(t, def.Vessels.Battleship.Turret.Barrels, got.Vessels.Battleship.Turret.Barrels)
}

func TestLoadDefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{}`), 0644))

	got, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, Default(), got)

	assert.Equal(t, "info", viper.GetString("logLevel"))
	assert.Equal(t, 8, viper.GetInt("match.gridSize"))
	assert.Equal(t, 3, viper.GetInt("vessels.battleship.turret.barrels"))
	assert.Equal(t, 20.0, viper.GetFloat64("vessels.reservationTTL"))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Cleanup(viper.Reset)

	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"logLevel":`), 0644))

	_, err := Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("FLEETCOMMAND_LOGLEVEL", "warn")
	t.Setenv("FLEETCOMMAND_MATCH_PLAYERS", "4")

	got, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "warn", got.LogLevel)
	assert.Equal(t, 4, got.Match.Players)
}
