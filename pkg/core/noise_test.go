package core

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractalNoiseNormalisedAndDeterministic(t *testing.T) {
	a := FractalNoise(32, 24, 4, 50, 2, 0.5, 3450)
	b := FractalNoise(32, 24, 4, 50, 2, 0.5, 3450)
	require.Len(t, a, 32*24)
	assert.True(t, slices.Equal(a, b), "same seed must reproduce the field")

	lo, hi := slices.Min(a), slices.Max(a)
	assert.InDelta(t, 0, lo, 1e-9)
	assert.InDelta(t, 1, hi, 1e-9)

	c := FractalNoise(32, 24, 4, 50, 2, 0.5, 3812)
	assert.False(t, slices.Equal(a, c), "different seeds should differ")
}

func TestFractalNoiseFloorsScale(t *testing.T) {
	field := FractalNoise(8, 8, 2, 0, 2, 0.5, 1)
	require.Len(t, field, 64)
	for _, v := range field {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 1.0)
	}
	assert.Nil(t, FractalNoise(0, 8, 2, 10, 2, 0.5, 1))
}

func TestRNGOffsetRange(t *testing.T) {
	rng := NewRNG(7)
	for i := 0; i < 200; i++ {
		v := rng.Offset(5)
		assert.GreaterOrEqual(t, v, -5)
		assert.Less(t, v, 5)
	}
	assert.Zero(t, rng.Offset(0))
}
