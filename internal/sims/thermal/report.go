package thermal

import (
	"fmt"
	"math"
	"strings"
	"time"

	"thermo-ca/internal/material"
	"thermo-ca/internal/tile"
)

// maxIncidentsPerTick bounds the incidents recorded and logged in one tick.
const maxIncidentsPerTick = 32

// IncidentKind classifies an instability that paused the run.
type IncidentKind string

const (
	// IncidentWindSpeed flags an advected displacement above the danger bound.
	IncidentWindSpeed IncidentKind = "wind_speed"
	// IncidentSpeciesUnderflow flags transport removing more gas than present.
	IncidentSpeciesUnderflow IncidentKind = "species_underflow"
)

// Incident records where and how an instability was detected.
type Incident struct {
	Kind    IncidentKind     `json:"kind"`
	Tick    int64            `json:"tick"`
	X       int              `json:"x"`
	Y       int              `json:"y"`
	Species material.Species `json:"species,omitempty"`
	// Value is the displacement for wind incidents and the missing amount in
	// mol for underflows.
	Value float64 `json:"value"`
}

// Totals sums conserved quantities over the grid.
type Totals struct {
	Energy  float64                      `json:"energy"`
	Water   float64                      `json:"water"`
	Gas     float64                      `json:"gas"`
	Species [material.NumSpecies]float64 `json:"species"`
}

// TickReport is handed to observers after every completed tick.
type TickReport struct {
	Tick      int64         `json:"tick"`
	Duration  time.Duration `json:"duration"`
	Paused    bool          `json:"paused"`
	Incidents []Incident    `json:"incidents,omitempty"`
	Totals    Totals        `json:"totals"`
	// MaxWind is the largest face displacement in cells per tick.
	MaxWind float64 `json:"maxWind"`
}

// Observer receives a report after every tick.
type Observer interface {
	ObserveTick(TickReport)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(TickReport)

// ObserveTick implements Observer.
func (f ObserverFunc) ObserveTick(r TickReport) { f(r) }

// AddObserver registers o for tick reports.
func (w *World) AddObserver(o Observer) {
	if o != nil {
		w.observers = append(w.observers, o)
	}
}

func (w *World) notify() {
	if len(w.observers) == 0 {
		return
	}
	report := TickReport{
		Tick:     w.tick,
		Duration: w.lastTick,
		Paused:   w.paused,
		Totals:   w.Totals(),
		MaxWind:  w.MaxWind(),
	}
	if len(w.incidents) > 0 {
		report.Incidents = append([]Incident(nil), w.incidents...)
	}
	for _, o := range w.observers {
		o.ObserveTick(report)
	}
}

// raise records an incident, logs it and pauses the run.
func (w *World) raise(in Incident) {
	w.paused = true
	if len(w.incidents) >= maxIncidentsPerTick {
		w.dropped++
		return
	}
	in.Tick = w.tick
	w.incidents = append(w.incidents, in)

	ev := w.log.Warn().
		Str("kind", string(in.Kind)).
		Int64("tick", in.Tick).
		Int("x", in.X).
		Int("y", in.Y).
		Float64("value", in.Value)
	switch in.Kind {
	case IncidentWindSpeed:
		ev.Msg("wind speed dangerous, pausing")
	case IncidentSpeciesUnderflow:
		ev.Str("species", w.medium.Names[in.Species]).Msg("removing gas that is not there, pausing")
	default:
		ev.Msg("instability detected, pausing")
	}
}

// Incidents returns the incidents raised during the last tick.
func (w *World) Incidents() []Incident {
	return append([]Incident(nil), w.incidents...)
}

// Totals sums thermal energy, water and gas over every tile.
func (w *World) Totals() Totals {
	var t Totals
	for _, tl := range w.tiles {
		t.Energy += tl.ThermalEnergy()
		f, ok := tl.(*tile.Fluid)
		if !ok {
			continue
		}
		t.Water += f.TotalWater()
		for s, a := range f.Gases {
			t.Species[s] += a
			t.Gas += a
		}
	}
	return t
}

// MaxWind returns the largest face displacement in cells per tick.
func (w *World) MaxWind() float64 {
	k := w.cfg.Params.DeltaTime * w.cfg.Params.AirflowSpeed
	m := 0.0
	for i := range w.velX {
		m = math.Max(m, math.Max(math.Abs(w.velX[i]), math.Abs(w.velY[i])))
	}
	return m * k
}

// Describe returns tooltip text for (x, y): the tile status, pressure and
// airflows for fluids, and any building mounted there.
func (w *World) Describe(x, y int) (string, bool) {
	i, ok := w.index(x, y)
	if !ok {
		return "", false
	}
	var b strings.Builder
	b.WriteString(w.tiles[i].Describe())
	if _, isFluid := w.tiles[i].(*tile.Fluid); isFluid {
		fmt.Fprintf(&b, "\nPressure: %.2f kPa", w.pressure[i])
		left, down := 0.0, 0.0
		if x > 0 {
			left = w.velX[i-1]
		}
		if y > 0 {
			down = w.velY[i-w.w]
		}
		fmt.Fprintf(&b, "\nAirflow L %.3f  R %.3f  D %.3f  U %.3f", left, w.velX[i], down, w.velY[i])
	}
	for _, bl := range w.buildings {
		if bx, by := bl.Position(); bx == x && by == y {
			b.WriteString("\n\n")
			b.WriteString(bl.Describe())
		}
	}
	return b.String(), true
}

// Frame is a serialisable snapshot of the grid for external renderers.
type Frame struct {
	Tick         int64       `json:"tick"`
	Width        int         `json:"width"`
	Height       int         `json:"height"`
	Paused       bool        `json:"paused"`
	Kinds        []tile.Kind `json:"kinds"`
	Temperatures []float64   `json:"temperatures"`
	Pressures    []float64   `json:"pressures"`
	VelX         []float64   `json:"velX"`
	VelY         []float64   `json:"velY"`
	Water        []float64   `json:"water"`
}

// Snapshot copies the current grid state into a Frame.
func (w *World) Snapshot() Frame {
	n := len(w.tiles)
	f := Frame{
		Tick:         w.tick,
		Width:        w.w,
		Height:       w.h,
		Paused:       w.paused,
		Kinds:        make([]tile.Kind, n),
		Temperatures: make([]float64, n),
		Pressures:    append([]float64(nil), w.pressure...),
		VelX:         append([]float64(nil), w.velX...),
		VelY:         append([]float64(nil), w.velY...),
		Water:        make([]float64, n),
	}
	for i, tl := range w.tiles {
		f.Kinds[i] = tl.Kind()
		f.Temperatures[i] = tl.Temperature()
		if fl, ok := tl.(*tile.Fluid); ok {
			f.Water[i] = fl.TotalWater()
		}
	}
	return f
}
