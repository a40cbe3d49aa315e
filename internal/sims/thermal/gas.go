package thermal

import (
	"math"

	"thermo-ca/internal/material"
	"thermo-ca/internal/tile"
)

// gasEpsilon is the smallest gas amount in mol that still carries a
// temperature through transport.
const gasEpsilon = 1e-9

// stepGas runs the pressure, acceleration, advection and transport passes.
func (w *World) stepGas() {
	w.computePressure()
	w.accelerate()
	if w.tick%int64(w.cfg.Params.SlowTickInterval) == 0 {
		w.moveWater()
	}
	w.advect()
	w.applyFriction()
	w.transport()
	w.applyGas()
}

func (w *World) fluidAt(i int) (*tile.Fluid, bool) {
	f, ok := w.tiles[i].(*tile.Fluid)
	return f, ok
}

// gasAt returns the fluid at i if gas can flow through it.
func (w *World) gasAt(i int) (*tile.Fluid, bool) {
	f, ok := w.fluidAt(i)
	if !ok || !f.IsGas() {
		return nil, false
	}
	return f, true
}

func (w *World) bothGas(i, j int) (*tile.Fluid, *tile.Fluid, bool) {
	a, ok := w.gasAt(i)
	if !ok {
		return nil, nil, false
	}
	b, ok := w.gasAt(j)
	if !ok {
		return nil, nil, false
	}
	return a, b, true
}

func (w *World) computePressure() {
	r := w.cfg.Params.GasConstant
	for i := range w.tiles {
		if f, ok := w.fluidAt(i); ok {
			w.pressure[i] = f.Pressure(r)
			continue
		}
		w.pressure[i] = 0
	}
}

// accelerate pushes face velocities down the pressure gradient; vertical
// faces also feel gravity.
func (w *World) accelerate() {
	p := w.cfg.Params
	k := p.DeltaTime * p.AirflowSpeed
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := y*w.w + x
			if x < w.w-1 {
				if a, b, ok := w.bothGas(i, i+1); ok {
					if m := a.Mass() + b.Mass(); m > 0 {
						w.velX[i] += 2 * (w.pressure[i] - w.pressure[i+1]) / m * k
					}
				}
			}
			if y < w.h-1 {
				if a, b, ok := w.bothGas(i, i+w.w); ok {
					accel := -p.Gravity
					if m := a.Mass() + b.Mass(); m > 0 {
						accel += 2 * (w.pressure[i] - w.pressure[i+w.w]) / m
					}
					w.velY[i] += accel * k
				}
			}
		}
	}
}

// advect moves the velocity field along itself with an upwind bilinear
// blend. Displacements above the danger bound raise an incident and are
// clamped to one cell.
func (w *World) advect() {
	p := w.cfg.Params
	k := p.DeltaTime * p.AirflowSpeed
	for i := range w.newVelX {
		w.newVelX[i] = 0
		w.newVelY[i] = 0
	}

	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w-1; x++ {
			i := y*w.w + x
			if _, _, ok := w.bothGas(i, i+1); !ok {
				continue
			}
			v := w.velX[i]
			cross := (w.faceY(x, y) + w.faceY(x, y-1) + w.faceY(x+1, y) + w.faceY(x+1, y-1)) / 4 * k
			dx, dy := math.Abs(v)*k, math.Abs(cross)
			w.checkDisplacement(x, y, dx, dy)
			di, dj := upwind(v), upwind(cross)
			sample := func(sx, sy int) float64 {
				if sx < 0 || sx >= w.w-1 || sy < 0 || sy >= w.h {
					return v
				}
				return w.velX[sy*w.w+sx]
			}
			w.newVelX[i] = blend(v, sample(x+di, y), sample(x, y+dj), sample(x+di, y+dj), dx, dy)
		}
	}

	for y := 0; y < w.h-1; y++ {
		for x := 0; x < w.w; x++ {
			i := y*w.w + x
			if _, _, ok := w.bothGas(i, i+w.w); !ok {
				continue
			}
			v := w.velY[i]
			cross := (w.faceX(x, y) + w.faceX(x-1, y) + w.faceX(x, y+1) + w.faceX(x-1, y+1)) / 4 * k
			dx, dy := math.Abs(cross), math.Abs(v)*k
			w.checkDisplacement(x, y, dx, dy)
			di, dj := upwind(cross), upwind(v)
			sample := func(sx, sy int) float64 {
				if sx < 0 || sx >= w.w || sy < 0 || sy >= w.h-1 {
					return v
				}
				return w.velY[sy*w.w+sx]
			}
			w.newVelY[i] = blend(v, sample(x, y+dj), sample(x+di, y), sample(x+di, y+dj), dy, dx)
		}
	}
}

// faceX returns the horizontal velocity of the face right of (x, y), zero
// off the grid.
func (w *World) faceX(x, y int) float64 {
	if x < 0 || x >= w.w || y < 0 || y >= w.h {
		return 0
	}
	return w.velX[y*w.w+x]
}

func (w *World) faceY(x, y int) float64 {
	if x < 0 || x >= w.w || y < 0 || y >= w.h {
		return 0
	}
	return w.velY[y*w.w+x]
}

func (w *World) checkDisplacement(x, y int, dx, dy float64) {
	if limit := w.cfg.Params.DangerDisplacement; dx > limit || dy > limit {
		w.raise(Incident{Kind: IncidentWindSpeed, X: x, Y: y, Value: math.Max(dx, dy)})
	}
}

// upwind returns the step towards the cell the flow comes from.
func upwind(v float64) int {
	if v > 0 {
		return -1
	}
	return 1
}

// blend mixes the face velocity with its upwind neighbours: along is the
// neighbour on the velocity's own axis, across the one on the other axis and
// diag the corner. Weights are clamped to [0, 1].
func blend(self, along, across, diag, dAlong, dAcross float64) float64 {
	a := clamp01(dAlong)
	c := clamp01(dAcross)
	return self*(1-a)*(1-c) + along*a*(1-c) + across*(1-a)*c + diag*a*c
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func (w *World) applyFriction() {
	p := w.cfg.Params
	factor := math.Pow(p.Friction, p.DeltaTime*p.AirflowSpeed)
	for i := range w.velX {
		w.velX[i] = w.newVelX[i] * factor
		w.velY[i] = w.newVelY[i] * factor
	}
}

// transport moves gas species and their thermal energy across every open
// face, drawing from the upwind tile.
func (w *World) transport() {
	k := w.cfg.Params.DeltaTime * w.cfg.Params.AirflowSpeed
	for i := range w.gasDelta {
		w.gasDelta[i] = [material.NumSpecies]float64{}
		w.energyDelta[i] = 0
	}
	for y := 0; y < w.h; y++ {
		for x := 0; x < w.w; x++ {
			i := y*w.w + x
			if x < w.w-1 && w.velX[i] != 0 {
				if a, b, ok := w.bothGas(i, i+1); ok {
					w.exchange(i, i+1, a, b, w.velX[i]*k)
				}
			}
			if y < w.h-1 && w.velY[i] != 0 {
				if a, b, ok := w.bothGas(i, i+w.w); ok {
					w.exchange(i, i+w.w, a, b, w.velY[i]*k)
				}
			}
		}
	}
}

// exchange moves share times the upwind amounts from tile i to tile j;
// a negative share moves from j to i.
func (w *World) exchange(i, j int, a, b *tile.Fluid, share float64) {
	src := a
	if share < 0 {
		src = b
	}
	total := 0.0
	for s, amount := range src.Gases {
		flow := share * amount
		total += flow
		w.gasDelta[i][s] -= flow
		w.gasDelta[j][s] += flow
	}
	energy := total * src.Temperature()
	w.energyDelta[i] -= energy
	w.energyDelta[j] += energy
}

// applyGas adds the transport deltas. Removing more gas than a tile holds is
// an instability: the species is clamped to zero and the run pauses.
func (w *World) applyGas() {
	for i := range w.tiles {
		f, ok := w.gasAt(i)
		if !ok {
			continue
		}
		total := f.TotalGas()
		energy := f.Temperature() * total
		changed := false
		for s, d := range w.gasDelta[i] {
			if d == 0 {
				continue
			}
			changed = true
			if f.Gases[s] < -d {
				w.raise(Incident{
					Kind:    IncidentSpeciesUnderflow,
					X:       i % w.w,
					Y:       i / w.w,
					Species: material.Species(s),
					Value:   -d - f.Gases[s],
				})
				total -= f.Gases[s]
				f.Gases[s] = 0
				continue
			}
			f.Gases[s] += d
			total += d
		}
		if !changed {
			continue
		}
		if total > gasEpsilon {
			f.SetTemperature((energy + w.energyDelta[i]) / total)
		}
		f.Refresh()
	}
}
