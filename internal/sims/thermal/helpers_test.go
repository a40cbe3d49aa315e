package thermal

import (
	"testing"

	"github.com/stretchr/testify/require"

	"thermo-ca/internal/material"
	"thermo-ca/internal/tile"
)

func newTestWorld(t *testing.T, w, h int) *World {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

func rockTile(w *World, temp float64) *tile.Solid {
	rock := w.catalog.MustSolid(rockName)
	return tile.NewSolid(rock, 2600, temp)
}

func airTile(w *World, temp float64, nitrogen, oxygen float64) *tile.Fluid {
	var amounts [material.NumSpecies]float64
	amounts[material.Nitrogen] = nitrogen
	amounts[material.Oxygen] = oxygen
	return tile.NewFluid(w.medium, w.water, temp, amounts)
}

func mustReplace(t *testing.T, w *World, x, y int, tl tile.Tile) {
	t.Helper()
	require.NoError(t, w.Replace(x, y, tl))
}

func fluidAt(t *testing.T, w *World, x, y int) *tile.Fluid {
	t.Helper()
	tl, ok := w.Tile(x, y)
	require.True(t, ok)
	f, ok := tl.(*tile.Fluid)
	require.True(t, ok, "tile at (%d, %d) is %s", x, y, tl.Kind())
	return f
}
