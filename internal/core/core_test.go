package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFloatGridBounds(t *testing.T) {
	g := NewFloatGrid(3, 2)

	require.True(t, g.Add(2, 1, 4))
	require.True(t, g.Add(2, 1, 1.5))
	assert.InDelta(t, 5.5, g.At(2, 1), 1e-12)

	assert.False(t, g.Add(3, 0, 1), "x past the edge must not wrap")
	assert.False(t, g.Set(-1, 0, 1))
	assert.Zero(t, g.At(0, 2))
	assert.InDelta(t, 5.5, g.Sum(), 1e-12)

	g.Clear()
	assert.Zero(t, g.Sum())
}

func TestFloatGridDegenerateSize(t *testing.T) {
	g := NewFloatGrid(0, -4)
	assert.Equal(t, 1, g.W)
	assert.Equal(t, 1, g.H)
	assert.Len(t, g.Cells(), 1)
}

func TestFixedStepDueCapsCatchUp(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(10)
	fs.now = func() time.Time { return clock }
	fs.accumulator = 0
	fs.SetMaxCatchUp(3)

	assert.Equal(t, 0, fs.Due())

	clock = clock.Add(250 * time.Millisecond)
	assert.Equal(t, 2, fs.Due())

	clock = clock.Add(2 * time.Second)
	assert.Equal(t, 3, fs.Due(), "stall must be capped")
	assert.Equal(t, 0, fs.Due(), "dropped backlog must not be replayed")
}

func TestParameterHelpers(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{{
		Name: "World",
		Params: []Parameter{
			IntParam("w", "Width", 12),
			FloatParam("dt", "Delta time", 0.02),
			BoolParam("paused", "Paused", true),
		},
	}}}

	p, ok := snap.Lookup("dt")
	require.True(t, ok)
	assert.Equal(t, "0.02", p.Value)
	assert.Equal(t, ParamTypeFloat, p.Type)

	_, ok = snap.Lookup("missing")
	assert.False(t, ok)

	ctrl := ParameterControl{Min: 0, Max: 1, HasMin: true, HasMax: true}
	assert.Equal(t, 1.0, ctrl.Clamp(3))
	assert.Equal(t, 0.0, ctrl.Clamp(-3))
}

func TestFixedStepShouldStepPacesTicks(t *testing.T) {
	clock := time.Unix(0, 0)
	fs := NewFixedStep(20)
	fs.now = func() time.Time { return clock }

	assert.True(t, fs.ShouldStep(), "the first frame steps immediately")
	assert.False(t, fs.ShouldStep())

	clock = clock.Add(30 * time.Millisecond)
	assert.False(t, fs.ShouldStep())
	clock = clock.Add(30 * time.Millisecond)
	assert.True(t, fs.ShouldStep())
	assert.False(t, fs.ShouldStep(), "leftover time is carried, not replayed")

	fs.SetTPS(0)
	assert.Equal(t, time.Second/60, fs.Interval())
}
