package building

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"thermo-ca/internal/core"
)

const (
	maxPumpFlow       = 500.0
	pumpFlowPerKelvin = 20.0
)

// Reading is the state a heat pump computed on its last tick.
type Reading struct {
	Hot, Cold  float64
	Efficiency float64
	// FlowIn is injected into the cold side, FlowOut drawn from the hot side
	// and Power is the difference, all in W.
	FlowIn  float64
	FlowOut float64
	Power   float64
}

// HeatPump is a thermoelectric device mounted between the tile ahead of it
// and the tile behind it along its axis. Whichever side is colder receives
// the capped flow; the hotter side gives up that flow less the Carnot share.
type HeatPump struct {
	X, Y int
	// Power is the intended electrical output in W.
	Power      float64
	Horizontal bool

	last Reading
}

// Position implements Building.
func (p *HeatPump) Position() (int, int) { return p.X, p.Y }

// Sides returns the tiles ahead of and behind the pump.
func (p *HeatPump) Sides() (ax, ay, bx, by int) {
	h := 0
	if p.Horizontal {
		h = 1
	}
	return p.X + h, p.Y + (1 - h), p.X - h, p.Y - (1 - h)
}

// Reading returns the flows computed on the last tick.
func (p *HeatPump) Reading() Reading { return p.last }

// AffectTemperature implements Building.
func (p *HeatPump) AffectTemperature(heat *core.FloatGrid, grid Grid) {
	p.last = Reading{}
	ax, ay, bx, by := p.Sides()
	ta, okA := grid.Temperature(ax, ay)
	tb, okB := grid.Temperature(bx, by)
	if !okA || !okB {
		return
	}

	hx, hy, cx, cy := ax, ay, bx, by
	hot, cold := ta, tb
	if tb > ta {
		hx, hy, cx, cy = bx, by, ax, ay
		hot, cold = tb, ta
	}
	p.last.Hot, p.last.Cold = hot, cold
	if hot <= cold || hot <= 0 {
		return
	}

	eff := 1 - cold/hot
	flowIn := p.Power / eff
	limit := math.Min(maxPumpFlow, pumpFlowPerKelvin*(hot-cold))
	if flowIn > limit {
		flowIn = limit
	}
	power := flowIn * eff

	p.last.Efficiency = eff
	p.last.FlowIn = flowIn
	p.last.Power = power
	p.last.FlowOut = flowIn - power

	heat.Add(cx, cy, flowIn)
	heat.Add(hx, hy, -p.last.FlowOut)
}

// Describe implements Building.
func (p *HeatPump) Describe() string {
	var b strings.Builder
	b.WriteString("Peltier element")
	r := p.last
	fmt.Fprintf(&b, "\nΔT: %.1f K", r.Hot-r.Cold)
	fmt.Fprintf(&b, "\nEfficiency: %.1f %%", r.Efficiency*100)
	fmt.Fprintf(&b, "\nPower: %s of %s", humanize.SIWithDigits(r.Power, 1, "W"), humanize.SIWithDigits(p.Power, 1, "W"))
	fmt.Fprintf(&b, "\nHeat moved: %s", humanize.SIWithDigits(r.FlowIn, 1, "W"))
	return b.String()
}
