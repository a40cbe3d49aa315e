package building

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"thermo-ca/internal/core"
)

// ConstantSource injects a fixed wattage into its own tile.
type ConstantSource struct {
	X, Y  int
	Power float64
}

// Position implements Building.
func (s *ConstantSource) Position() (int, int) { return s.X, s.Y }

// AffectTemperature implements Building.
func (s *ConstantSource) AffectTemperature(heat *core.FloatGrid, _ Grid) {
	heat.Add(s.X, s.Y, s.Power)
}

// Describe implements Building.
func (s *ConstantSource) Describe() string {
	return fmt.Sprintf("Heat source\nOutput: %s", humanize.SIWithDigits(s.Power, 1, "W"))
}

// Regulator holds its own tile at a fixed temperature, acting as an infinite
// reservoir.
type Regulator struct {
	X, Y   int
	Target float64
}

// Position implements Building.
func (r *Regulator) Position() (int, int) { return r.X, r.Y }

// AffectTemperature implements Building.
func (r *Regulator) AffectTemperature(_ *core.FloatGrid, grid Grid) {
	grid.SetTemperature(r.X, r.Y, r.Target)
}

// Describe implements Building.
func (r *Regulator) Describe() string {
	return fmt.Sprintf("Regulator\nTarget: %.1f K", r.Target)
}
