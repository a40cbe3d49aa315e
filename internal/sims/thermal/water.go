package thermal

import "thermo-ca/internal/tile"

// moveWater lets unsupported liquid and rain fall one row, settles rain that
// rests on a floor into liquid and pushes overflow back up.
func (w *World) moveWater() {
	for x := 0; x < w.w; x++ {
		for y := 0; y < w.h-1; y++ {
			i := y*w.w + x
			upper, ok := w.gasAt(i + w.w)
			if !ok {
				continue
			}
			lower, ok := w.gasAt(i)
			if ok && lower.Liquid() == upper.Liquid() && upper.Liquid() != nil {
				w.fall(upper, lower)
				continue
			}
			settle(upper)
		}
		if f, ok := w.gasAt(x); ok {
			settle(f)
		}
	}
}

// fall pours the liquid and rain of upper into lower as rain. Anything
// beyond a full tile of liquid is pushed back up.
func (w *World) fall(upper, lower *tile.Fluid) {
	mass := upper.LiquidMass + upper.RainMass
	if mass <= 0 {
		return
	}
	moveCondensed(upper, lower, mass, func() {
		upper.LiquidMass, upper.RainMass = 0, 0
		lower.RainMass += mass
	})

	capacity := lower.Liquid().Density
	if excess := lower.LiquidMass + lower.RainMass - capacity; excess > 0 {
		moveCondensed(lower, upper, excess, func() {
			lower.LiquidMass, lower.RainMass = capacity, 0
			upper.LiquidMass += excess
		})
	}
}

func settle(f *tile.Fluid) {
	if f.RainMass <= 0 {
		return
	}
	f.LiquidMass += f.RainMass
	f.RainMass = 0
	f.Refresh()
}

// moveCondensed applies move, which shifts mass kg of condensed water from
// src to dst, and carries the heat of that water into dst.
func moveCondensed(src, dst *tile.Fluid, mass float64, move func()) {
	heat := mass * src.Liquid().HeatCapacity * 1000 * src.Temperature()
	before := dst.ThermalEnergy()
	move()
	src.Refresh()
	dst.Refresh()
	dst.SetTemperature((before + heat) / dst.ThermalMass())
}

// evaporate re-evaluates vapor against saturation on every gas tile.
func (w *World) evaporate() {
	p := tile.PhaseParams{
		GasConstant: w.cfg.Params.GasConstant,
		FogCapacity: w.cfg.Params.FogCapacity,
		Damping:     w.cfg.Params.EvaporationDamping,
	}
	for i := range w.tiles {
		if f, ok := w.gasAt(i); ok {
			f.Evaporate(p)
		}
	}
}
