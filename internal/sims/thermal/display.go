package thermal

import (
	"image/color"
	"math"

	"thermo-ca/internal/tile"
)

const (
	// displayLevels is the number of temperature shades per band.
	displayLevels = 32
	bandGas       = 0
	bandLiquid    = 1
	bandSolid     = 2
)

var thermalPalette = buildThermalPalette()

// Palette exposes the color palette used for rendering the thermal world.
// Cells index it as band*displayLevels + temperature level.
func (w *World) Palette() []color.RGBA {
	return thermalPalette
}

func buildThermalPalette() []color.RGBA {
	palette := make([]color.RGBA, 3*displayLevels)
	for band := 0; band < 3; band++ {
		for level := 0; level < displayLevels; level++ {
			palette[band*displayLevels+level] = shade(band, float64(level)/float64(displayLevels-1))
		}
	}
	return palette
}

// shade maps a normalised temperature to blue through red and darkens it
// for condensed matter.
func shade(band int, t float64) color.RGBA {
	r := uint8(255 * t)
	b := uint8(255 * (1 - t))
	g := uint8(80 * (1 - 2*math.Abs(t-0.5)))
	switch band {
	case bandLiquid:
		return color.RGBA{R: r / 2, G: g / 2, B: b/2 + 100, A: 255}
	case bandSolid:
		return color.RGBA{R: r/2 + 40, G: g/2 + 40, B: b/2 + 40, A: 255}
	default:
		return color.RGBA{R: r, G: g, B: b, A: 255}
	}
}

func (w *World) rebuildDisplay() {
	lo, hi := w.cfg.Params.DisplayMin, w.cfg.Params.DisplayMax
	for i, t := range w.tiles {
		band := bandGas
		switch {
		case t.Kind() == tile.KindSolid:
			band = bandSolid
		case !t.IsGas():
			band = bandLiquid
		}
		w.display[i] = uint8(band*displayLevels + temperatureLevel(t.Temperature(), lo, hi))
	}
}

func temperatureLevel(t, lo, hi float64) int {
	f := (t - lo) / (hi - lo)
	level := int(f * float64(displayLevels-1))
	if level < 0 {
		return 0
	}
	if level >= displayLevels {
		return displayLevels - 1
	}
	return level
}
