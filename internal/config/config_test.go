package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo-ca/internal/building"
	"thermo-ca/internal/sims/thermal"
)

func TestLoad_DefaultValues(t *testing.T) {
	t.Cleanup(viper.Reset)

	s, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, thermal.DefaultConfig(), s.Sim)
	assert.Empty(t, s.Buildings)
	assert.Equal(t, "info", s.Log.Level)
	assert.True(t, s.Log.Pretty)
	assert.False(t, s.Storage.Enabled)
	assert.Equal(t, "./thermo.db", s.Storage.Path)
	assert.Equal(t, 50, s.Storage.SampleEvery)
	assert.Equal(t, "localhost:8089", s.Stream.Addr)
	assert.Equal(t, "thermo-ca", s.Otel.ServiceName)
	assert.Equal(t, 5*time.Second, s.Otel.BatchTimeout)
	assert.Equal(t, 15*time.Second, s.Otel.MetricInterval)
	assert.Equal(t, 60, s.Run.TPS)
	assert.Empty(t, ConfigFile())
}

func TestLoad_WithValidConfigFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	cfg := `{
		"sim": { "width": 40, "params": { "friction": 0.5, "slowTickInterval": 3 } },
		"buildings": [
			{ "kind": "heatpump", "x": 10, "y": 12, "power": 250, "horizontal": true },
			{ "kind": "source", "x": 1, "y": 2 }
		],
		"log": { "level": "debug" },
		"storage": { "enabled": true, "path": "/tmp/run.db" }
	}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(cfg), 0644))

	s, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 40, s.Sim.Width)
	assert.Equal(t, 100, s.Sim.Height)
	assert.Equal(t, 0.5, s.Sim.Params.Friction)
	assert.Equal(t, 3, s.Sim.Params.SlowTickInterval)
	assert.Equal(t, thermal.DefaultParams().Gravity, s.Sim.Params.Gravity)
	require.Len(t, s.Buildings, 2)
	assert.Equal(t, building.Spec{Kind: building.KindHeatPump, X: 10, Y: 12, Power: 250, Horizontal: true}, s.Buildings[0])
	assert.Equal(t, building.KindSource, s.Buildings[1].Kind)
	assert.Equal(t, "debug", s.Log.Level)
	assert.True(t, s.Storage.Enabled)
	assert.Equal(t, "/tmp/run.db", s.Storage.Path)
	assert.Equal(t, filepath.Join(dir, FileName), ConfigFile())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("THERMO_LOG_LEVEL", "error")
	t.Setenv("THERMO_SIM_PARAMS_GRAVITY", "0.9")
	t.Setenv("THERMO_STREAM_ENABLED", "true")

	s, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "error", s.Log.Level)
	assert.Equal(t, 0.9, s.Sim.Params.Gravity)
	assert.True(t, s.Stream.Enabled)
}

func TestLoad_MalformedFile(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(`{"log": `), 0644))

	_, err := Load(dir)
	assert.Error(t, err)
}
