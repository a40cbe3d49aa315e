package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo-ca/internal/core"
)

type fakeSim struct {
	floats map[string]float64
	ints   map[string]int
}

func (f *fakeSim) Name() string    { return "fake" }
func (f *fakeSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (f *fakeSim) Reset(int64)     {}
func (f *fakeSim) Step()           {}
func (f *fakeSim) Cells() []uint8  { return []uint8{0} }

func (f *fakeSim) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "speed", Label: "Speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true, Max: 2, HasMax: true},
		{Key: "interval", Label: "Interval", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true},
		{Key: "missing", Label: "Missing", Type: core.ParamTypeFloat},
	}
}

func (f *fakeSim) SetFloatParameter(key string, v float64) bool {
	f.floats[key] = v
	return true
}

func (f *fakeSim) SetIntParameter(key string, v int) bool {
	f.ints[key] = v
	return true
}

func (f *fakeSim) snapshot() core.ParameterSnapshot {
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{{
		Name: "All",
		Params: []core.Parameter{
			core.FloatParam("speed", "Speed", f.floats["speed"]),
			core.IntParam("interval", "Interval", f.ints["interval"]),
		},
	}}}
}

func TestControlSetAdjustsWithinBounds(t *testing.T) {
	sim := &fakeSim{floats: map[string]float64{"speed": 1.5}, ints: map[string]int{"interval": 1}}
	cs := NewControlSet(sim)
	require.Len(t, cs.States, 3)
	cs.Refresh(sim.snapshot())
	assert.Equal(t, "1.5", cs.States[0].Value)
	assert.Equal(t, "--", cs.States[2].Value)

	assert.True(t, cs.Adjust(1))
	assert.Equal(t, 2.0, sim.floats["speed"])
	assert.False(t, cs.Adjust(1), "already at the maximum")

	cs.Move(1)
	assert.False(t, cs.Adjust(-1), "interval cannot drop below 1")
	assert.True(t, cs.Adjust(1))
	assert.Equal(t, 2, sim.ints["interval"])

	cs.Move(1)
	assert.False(t, cs.Adjust(1), "controls without a value are inert")
	cs.Move(1)
	assert.Equal(t, 0, cs.Selected)
	cs.Move(-1)
	assert.Equal(t, 2, cs.Selected)
}

func TestWrapLines(t *testing.T) {
	lines := WrapLines("Gas over liquid\nTemperature: 300.00 K and rising fast", 20)
	assert.Equal(t, []string{"Gas over liquid", "Temperature: 300.00", "K and rising fast"}, lines)
	assert.Equal(t, []string{""}, WrapLines("", 10))
}
