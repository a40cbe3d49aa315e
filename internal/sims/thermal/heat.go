package thermal

import (
	"math"

	"thermo-ca/internal/tile"
)

// conduct fills the heat accumulator with the conductive flow in W between
// every pair of horizontally and vertically adjacent tiles.
func (w *World) conduct() {
	w.heat.Clear()
	heat := w.heat.Cells()
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := y*w.w + x
			t := w.tiles[i]
			if x < w.w-1 {
				flow := pairFlow(t, w.tiles[i+1])
				heat[i] -= flow
				heat[i+1] += flow
			}
			if y < w.h-1 {
				flow := pairFlow(t, w.tiles[i+w.w])
				heat[i] -= flow
				heat[i+w.w] += flow
			}
		}
	}
}

func pairFlow(a, b tile.Tile) float64 {
	return math.Min(a.Conductivity(), b.Conductivity()) * (a.Temperature() - b.Temperature())
}

func (w *World) applyBuildings() {
	for _, b := range w.buildings {
		b.AffectTemperature(w.heat, w)
	}
}

// applyHeat turns the accumulated flows into energy on each tile. Tiles that
// change variant are swapped in once the pass is done.
func (w *World) applyHeat() {
	scale := w.cfg.Params.DeltaTime * w.cfg.Params.ConductivitySpeedup
	heat := w.heat.Cells()
	for i, t := range w.tiles {
		if heat[i] == 0 {
			continue
		}
		if next := t.ChangeTemperature(heat[i] * scale); next != nil {
			w.pending = append(w.pending, tile.StateChange{X: i % w.w, Y: i / w.w, Tile: next})
		}
	}
	w.flushStateChanges()
}

func (w *World) flushStateChanges() {
	for _, sc := range w.pending {
		w.put(sc.X, sc.Y, sc.Tile)
		w.log.Debug().
			Int64("tick", w.tick).
			Int("x", sc.X).
			Int("y", sc.Y).
			Str("kind", sc.Tile.Kind().String()).
			Msg("tile changed state")
	}
	w.pending = w.pending[:0]
}
