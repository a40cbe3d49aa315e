package thermal

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo-ca/internal/building"
	"thermo-ca/internal/core"
	"thermo-ca/internal/tile"
)

func TestRegistryBuildsThermal(t *testing.T) {
	factory, ok := core.Sims()["thermal"]
	require.True(t, ok)

	sim := factory(map[string]string{"w": "12", "h": "8", "seed": "7"})
	assert.Equal(t, "thermal", sim.Name())
	assert.Equal(t, core.Size{W: 12, H: 8}, sim.Size())
	assert.Len(t, sim.Cells(), 96)

	_, pausable := sim.(core.Pausable)
	assert.True(t, pausable)
	_, describer := sim.(core.Describer)
	assert.True(t, describer)
	_, setter := sim.(core.FloatParameterSetter)
	assert.True(t, setter)
}

func TestResetIsDeterministicAndKeepsBuildings(t *testing.T) {
	a := newTestWorld(t, 20, 20)
	b := newTestWorld(t, 20, 20)
	a.Reset(99)
	b.Reset(99)
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			ta, _ := a.Tile(x, y)
			tb, _ := b.Tile(x, y)
			require.Equal(t, ta.Kind(), tb.Kind())
			require.Equal(t, ta.Temperature(), tb.Temperature())
		}
	}

	require.NoError(t, a.RegisterBuilding(&building.ConstantSource{X: 1, Y: 1, Power: 10}))
	a.SetPaused(true)
	a.Reset(5)
	assert.False(t, a.Paused())
	assert.Zero(t, a.TickCount())
	assert.Len(t, a.Buildings(), 1)
}

func TestTerrainBands(t *testing.T) {
	w := newTestWorld(t, 30, 30)
	solids, fluids := 0, 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 30; x++ {
			tl, _ := w.Tile(x, y)
			temp := tl.Temperature()
			assert.GreaterOrEqual(t, temp, 250.0)
			assert.LessOrEqual(t, temp, 310.0)
			if tl.Kind() == tile.KindSolid {
				solids++
				continue
			}
			fluids++
		}
	}
	assert.Equal(t, 900, solids+fluids)

	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 4, 4
	cfg.Params.RockThreshold = 1
	air := NewWithConfig(cfg)
	low, _ := air.Tile(0, 0)
	high, _ := air.Tile(0, 3)
	assert.Greater(t, low.(*tile.Fluid).TotalGas(), high.(*tile.Fluid).TotalGas(), "air is denser near the bottom")
}

func TestDescribe(t *testing.T) {
	w := newTestWorld(t, 3, 3)
	mustReplace(t, w, 1, 1, airTile(w, 300, 38, 12))
	mustReplace(t, w, 0, 0, rockTile(w, 280))
	require.NoError(t, w.RegisterBuilding(&building.ConstantSource{X: 1, Y: 1, Power: 1500}))
	w.Step()

	text, ok := w.Describe(1, 1)
	require.True(t, ok)
	assert.Contains(t, text, "Pressure:")
	assert.Contains(t, text, "Airflow")
	assert.Contains(t, text, "Heat source")

	text, ok = w.Describe(0, 0)
	require.True(t, ok)
	assert.Contains(t, text, "Rock (silica)")
	assert.NotContains(t, text, "Pressure")

	_, ok = w.Describe(3, 0)
	assert.False(t, ok)
	_, ok = w.Tile(-1, 0)
	assert.False(t, ok)
	_, _, ok = w.Velocity(0, 3)
	assert.False(t, ok)
}

func TestSnapshotSerialises(t *testing.T) {
	w := newTestWorld(t, 2, 2)
	mustReplace(t, w, 0, 0, rockTile(w, 300))
	mustReplace(t, w, 1, 0, airTile(w, 300, 38, 12))
	frame := w.Snapshot()

	assert.Equal(t, 2, frame.Width)
	assert.Len(t, frame.Temperatures, 4)
	assert.Equal(t, tile.KindSolid, frame.Kinds[0])

	data, err := json.Marshal(frame)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"kinds":["solid","fluid"`)
}

func TestParameterSetters(t *testing.T) {
	w := newTestWorld(t, 4, 4)

	assert.True(t, w.SetFloatParameter("airflow_speed", 50))
	assert.Equal(t, 20.0, w.Config().Params.AirflowSpeed, "clamped to the control maximum")
	assert.True(t, w.SetFloatParameter("friction", 0.5))
	assert.Equal(t, 0.5, w.Config().Params.Friction)
	assert.False(t, w.SetFloatParameter("gas_constant", 1), "not adjustable at runtime")
	assert.False(t, w.SetFloatParameter("slow_tick_interval", 3))
	assert.False(t, w.SetFloatParameter("bogus", 1))

	assert.True(t, w.SetIntParameter("slow_tick_interval", 0))
	assert.Equal(t, 1, w.Config().Params.SlowTickInterval)
	assert.False(t, w.SetIntParameter("airflow_speed", 3))

	p, ok := w.Parameters().Lookup("friction")
	require.True(t, ok)
	assert.Equal(t, "0.5", p.Value)
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                    "40",
		"h":                    "-3",
		"seed":                 "12",
		"airflow_speed":        "2.5",
		"friction":             "1.5",
		"slow_tick_interval":   "4",
		"conductivity_speedup": "nope",
	})
	d := DefaultConfig()
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, d.Height, cfg.Height)
	assert.EqualValues(t, 12, cfg.Seed)
	assert.Equal(t, 2.5, cfg.Params.AirflowSpeed)
	assert.Equal(t, d.Params.Friction, cfg.Params.Friction, "out-of-range friction falls back")
	assert.Equal(t, 4, cfg.Params.SlowTickInterval)
	assert.Equal(t, d.Params.ConductivitySpeedup, cfg.Params.ConductivitySpeedup)

	assert.Equal(t, d, FromMap(nil))
}

func TestRunStability(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height = 16, 12

	res := RunStability(cfg, 15)
	assert.True(t, res.Stable, "first incident: %+v", res.First)
	assert.Nil(t, res.First)
	assert.EqualValues(t, 15, res.TicksRun)

	assert.True(t, RunStability(cfg, 0).Stable)
}

func TestDefaultConfigRunsStably(t *testing.T) {
	cfg := DefaultConfig()
	res := RunStability(cfg, 500)
	require.True(t, res.Stable, "first incident: %+v", res.First)
	assert.EqualValues(t, 500, res.TicksRun)
	assert.Less(t, res.PeakWind, cfg.Params.DangerDisplacement)
}

func TestFastAirflowHaltsAtFirstIncident(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Params.AirflowSpeed = 20

	res := RunStability(cfg, 500)
	require.False(t, res.Stable)
	require.NotNil(t, res.First)
	assert.Contains(t, []IncidentKind{IncidentWindSpeed, IncidentSpeciesUnderflow}, res.First.Kind)
	assert.Equal(t, res.First.Tick+1, res.TicksRun, "the offending tick completes, then the run halts")
	assert.Less(t, res.TicksRun, int64(500))
}
