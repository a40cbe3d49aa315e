package tile

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"thermo-ca/internal/material"
)

// Solid is a tile of a single solid material. While Melting its temperature
// is pinned at the melting point and absorbed energy accumulates in
// FractionMolten instead.
type Solid struct {
	Material *material.Solid

	temperature    float64
	mass           float64
	melting        bool
	fractionMolten float64
}

// NewSolid constructs a stable solid. A non-positive mass defaults to one
// cubic metre of the material.
func NewSolid(mat *material.Solid, mass, temperature float64) *Solid {
	if mass <= 0 {
		mass = mat.Density
	}
	if temperature < 0 {
		temperature = 0
	}
	return &Solid{Material: mat, mass: mass, temperature: temperature}
}

func (s *Solid) sealed() {}

// Kind implements Tile.
func (s *Solid) Kind() Kind { return KindSolid }

// Temperature implements Tile.
func (s *Solid) Temperature() float64 { return s.temperature }

// SetTemperature implements Tile. Forcing a temperature ends any melt in
// progress.
func (s *Solid) SetTemperature(t float64) {
	if t < 0 {
		t = 0
	}
	s.temperature = t
	s.melting = false
	s.fractionMolten = 0
}

// Mass implements Tile.
func (s *Solid) Mass() float64 { return s.mass }

// Conductivity implements Tile.
func (s *Solid) Conductivity() float64 { return s.Material.Conductivity }

// IsGas implements Tile.
func (s *Solid) IsGas() bool { return false }

// Melting reports whether the tile is pinned at its melting point.
func (s *Solid) Melting() bool { return s.melting }

// FractionMolten returns melt progress in [0, 1].
func (s *Solid) FractionMolten() float64 { return s.fractionMolten }

// ThermalMass implements Tile.
func (s *Solid) ThermalMass() float64 {
	c := s.mass * s.Material.HeatCapacity * 1000
	if c < minThermalMass {
		return minThermalMass
	}
	return c
}

// ThermalEnergy implements Tile. Latent heat held by a partial melt is
// included so energy bookkeeping stays continuous across the transition.
func (s *Solid) ThermalEnergy() float64 {
	e := s.ThermalMass() * s.temperature
	if s.melting {
		e += s.fractionMolten * s.Material.FusionEnergy(s.mass)
	}
	return e
}

// ChangeTemperature implements Tile. It returns a *Fluid once the melt
// completes.
func (s *Solid) ChangeTemperature(energy float64) Tile {
	if s.melting {
		return s.absorb(energy)
	}

	s.temperature += energy / s.ThermalMass()
	if s.temperature < 0 {
		s.temperature = 0
	}
	mp := s.Material.MeltingPoint
	if !s.Material.CanMelt() || s.temperature <= mp {
		return nil
	}

	excess := (s.temperature - mp) * s.ThermalMass()
	s.temperature = mp
	s.melting = true
	s.fractionMolten = 0
	return s.absorb(excess)
}

func (s *Solid) absorb(energy float64) Tile {
	budget := s.Material.FusionEnergy(s.mass)
	s.fractionMolten += energy / budget

	switch {
	case s.fractionMolten > 1:
		return s.melt((s.fractionMolten - 1) * budget)
	case s.fractionMolten < 0:
		residual := s.fractionMolten * budget
		s.melting = false
		s.fractionMolten = 0
		s.temperature = s.Material.MeltingPoint + residual/s.ThermalMass()
		if s.temperature < 0 {
			s.temperature = 0
		}
	}
	return nil
}

// melt builds the fluid replacing this tile. The medium is left unset; the
// grid binds its own when it applies the state change.
func (s *Solid) melt(residual float64) *Fluid {
	f := &Fluid{
		liquid:      s.Material.MeltsInto,
		LiquidMass:  s.mass,
		temperature: s.Material.MeltingPoint,
	}
	f.temperature += residual / f.ThermalMass()
	f.Refresh()
	return f
}

// Clone implements Tile.
func (s *Solid) Clone() Tile {
	c := *s
	return &c
}

// Describe implements Tile.
func (s *Solid) Describe() string {
	var b strings.Builder
	b.WriteString(s.Material.Name)
	fmt.Fprintf(&b, "\nTemperature: %.2f K", s.temperature)
	fmt.Fprintf(&b, "\nMass: %s kg", humanize.FormatFloat("#,###.##", s.mass))
	if s.melting {
		fmt.Fprintf(&b, "\nMelting: %.1f %%", s.fractionMolten*100)
	}
	return b.String()
}
