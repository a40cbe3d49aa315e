// Package thermal simulates conductive heat, gas flow and water phase change
// on a 2D grid of tiles. Row 0 is the bottom of the world; y+1 is up.
package thermal

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"thermo-ca/internal/building"
	"thermo-ca/internal/core"
	"thermo-ca/internal/material"
	"thermo-ca/internal/tile"
)

var (
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("coordinates outside the grid")
	// ErrTickInProgress is returned when the grid is mutated from inside a tick.
	ErrTickInProgress = errors.New("tick in progress")
)

// World owns the tile arena and every per-tick buffer.
type World struct {
	cfg  Config
	w, h int

	catalog *material.Catalog
	medium  *tile.Medium
	water   *material.Liquid

	tiles    []tile.Tile
	pressure []float64
	// velX[i] is the flow across the face between cell i and its right
	// neighbour, velY[i] the face to the cell above.
	velX, velY       []float64
	newVelX, newVelY []float64
	heat             *core.FloatGrid
	gasDelta         [][material.NumSpecies]float64
	energyDelta      []float64
	pending          []tile.StateChange

	buildings []building.Building
	observers []Observer
	incidents []Incident
	dropped   int

	display []uint8
	log     zerolog.Logger

	paused   bool
	inTick   bool
	tick     int64
	lastTick time.Duration
}

// New returns a thermal world with the provided dimensions using defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world built from cfg with freshly generated
// terrain.
func NewWithConfig(cfg Config) *World {
	if cfg.Width <= 0 {
		cfg.Width = 1
	}
	if cfg.Height <= 0 {
		cfg.Height = 1
	}
	cfg.Params = cfg.Params.sanitize()
	total := cfg.Width * cfg.Height
	catalog := material.Default()
	w := &World{
		cfg:         cfg,
		w:           cfg.Width,
		h:           cfg.Height,
		catalog:     catalog,
		medium:      tile.NewMedium(catalog),
		water:       catalog.MustLiquid("Water"),
		tiles:       make([]tile.Tile, total),
		pressure:    make([]float64, total),
		velX:        make([]float64, total),
		velY:        make([]float64, total),
		newVelX:     make([]float64, total),
		newVelY:     make([]float64, total),
		heat:        core.NewFloatGrid(cfg.Width, cfg.Height),
		gasDelta:    make([][material.NumSpecies]float64, total),
		energyDelta: make([]float64, total),
		display:     make([]uint8, total),
		log:         zerolog.Nop(),
	}
	w.Reset(0)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "thermal" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// Catalog returns the materials the world is built from.
func (w *World) Catalog() *material.Catalog { return w.catalog }

// SetLogger replaces the logger used for incidents and state changes.
func (w *World) SetLogger(l zerolog.Logger) {
	w.log = l.With().Str("sim", w.Name()).Logger()
}

// TickCount returns the number of completed ticks since the last reset.
func (w *World) TickCount() int64 { return w.tick }

// Paused reports whether ticks are suspended.
func (w *World) Paused() bool { return w.paused }

// SetPaused suspends or resumes ticking.
func (w *World) SetPaused(paused bool) { w.paused = paused }

// Reset regenerates the terrain, clears the flow field and resumes the run.
// Registered buildings are kept.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.generateTerrain(effective)
	for i := range w.velX {
		w.velX[i] = 0
		w.velY[i] = 0
		w.newVelX[i] = 0
		w.newVelY[i] = 0
	}
	w.pending = w.pending[:0]
	w.incidents = w.incidents[:0]
	w.paused = false
	w.tick = 0
	w.rebuildDisplay()
}

// Step advances the world by one tick unless paused. A tick that detects an
// instability still completes; the pause takes effect before the next one.
func (w *World) Step() {
	if w.paused || w.inTick {
		return
	}
	start := time.Now()
	w.inTick = true
	w.incidents = w.incidents[:0]
	w.dropped = 0

	w.conduct()
	w.applyBuildings()
	w.applyHeat()
	w.stepGas()
	w.evaporate()

	w.inTick = false
	w.tick++
	w.lastTick = time.Since(start)
	if w.dropped > 0 {
		w.log.Warn().Int64("tick", w.tick).Int("dropped", w.dropped).Msg("further incidents suppressed")
	}
	w.rebuildDisplay()
	w.notify()
}

func (w *World) index(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= w.w || y >= w.h {
		return 0, false
	}
	return y*w.w + x, true
}

// Tile returns the tile at (x, y). The result must be treated as read-only.
func (w *World) Tile(x, y int) (tile.Tile, bool) {
	i, ok := w.index(x, y)
	if !ok {
		return nil, false
	}
	return w.tiles[i], true
}

// Temperature returns the temperature at (x, y).
func (w *World) Temperature(x, y int) (float64, bool) {
	i, ok := w.index(x, y)
	if !ok {
		return 0, false
	}
	return w.tiles[i].Temperature(), true
}

// SetTemperature forces the temperature at (x, y).
func (w *World) SetTemperature(x, y int, t float64) bool {
	i, ok := w.index(x, y)
	if !ok {
		return false
	}
	w.tiles[i].SetTemperature(t)
	return true
}

// Replace swaps the tile at (x, y) for a copy of t between ticks. Fluid tiles
// without a gas context are bound to the world's.
func (w *World) Replace(x, y int, t tile.Tile) error {
	if w.inTick {
		return ErrTickInProgress
	}
	if t == nil {
		return errors.New("replace with nil tile")
	}
	if _, ok := w.index(x, y); !ok {
		return fmt.Errorf("replace (%d, %d): %w", x, y, ErrOutOfBounds)
	}
	w.put(x, y, t.Clone())
	w.rebuildDisplay()
	return nil
}

// PlaceSolid replaces the tile at (x, y) with one cubic metre of the named
// solid, keeping the current temperature.
func (w *World) PlaceSolid(x, y int, name string) error {
	mat, err := w.catalog.Solid(name)
	if err != nil {
		return err
	}
	temp, ok := w.Temperature(x, y)
	if !ok {
		return fmt.Errorf("place %s at (%d, %d): %w", name, x, y, ErrOutOfBounds)
	}
	return w.Replace(x, y, tile.NewSolid(mat, 0, temp))
}

func (w *World) put(x, y int, t tile.Tile) {
	if f, ok := t.(*tile.Fluid); ok {
		f.Bind(w.medium, w.water)
	}
	w.tiles[y*w.w+x] = t
}

// Pressure returns the gas pressure in kPa computed on the last tick.
func (w *World) Pressure(x, y int) (float64, bool) {
	i, ok := w.index(x, y)
	if !ok {
		return 0, false
	}
	return w.pressure[i], true
}

// Velocity returns the flow across the right and upper faces of (x, y).
func (w *World) Velocity(x, y int) (vx, vy float64, ok bool) {
	i, ok := w.index(x, y)
	if !ok {
		return 0, 0, false
	}
	return w.velX[i], w.velY[i], true
}

// RegisterBuilding adds b to the set consulted every tick.
func (w *World) RegisterBuilding(b building.Building) error {
	if w.inTick {
		return ErrTickInProgress
	}
	x, y := b.Position()
	if _, ok := w.index(x, y); !ok {
		return fmt.Errorf("building at (%d, %d): %w", x, y, ErrOutOfBounds)
	}
	w.buildings = append(w.buildings, b)
	return nil
}

// Buildings returns the registered buildings.
func (w *World) Buildings() []building.Building {
	out := make([]building.Building, len(w.buildings))
	copy(out, w.buildings)
	return out
}

func init() {
	core.Register("thermal", func(cfg map[string]string) core.Sim {
		return NewWithConfig(FromMap(cfg))
	})
}
