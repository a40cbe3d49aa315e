package thermal

import (
	"thermo-ca/internal/tile"
	pcore "thermo-ca/pkg/core"
)

const (
	rockName = "Rock (silica)"
	// temperatureSeedOffset decorrelates the temperature field from the
	// material field.
	temperatureSeedOffset = 362
)

// generateTerrain lays out rock and air from fractal noise. Air columns
// follow a barometric profile centred on the middle row.
func (w *World) generateTerrain(seed int64) {
	p := w.cfg.Params
	layout := pcore.FractalNoise(w.w, w.h, p.NoiseOctaves, p.NoiseScale, 2, 0.5, seed)
	temps := pcore.FractalNoise(w.w, w.h, p.NoiseOctaves, p.NoiseScale, 2, 0.2, seed+temperatureSeedOffset)
	rock := w.catalog.MustSolid(rockName)
	mid := w.h / 2

	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := y*w.w + x
			t := temps[i]*p.TemperatureRange + p.BaseTemperature
			if layout[i] > p.RockThreshold {
				w.tiles[i] = tile.NewSolid(rock, rock.Density, t)
				continue
			}
			w.tiles[i] = tile.NewAtmosphere(w.medium, w.water, t, mid-y)
		}
	}
	w.computePressure()
}
