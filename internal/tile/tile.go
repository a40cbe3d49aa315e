// Package tile defines the per-cell physical state of the grid. A cell holds
// exactly one Tile, which is either a *Solid or a *Fluid.
package tile

import (
	"fmt"

	"thermo-ca/internal/material"
)

// Kind tags the variant held by a cell.
type Kind uint8

const (
	KindSolid Kind = iota
	KindFluid
)

func (k Kind) String() string {
	switch k {
	case KindSolid:
		return "solid"
	case KindFluid:
		return "fluid"
	default:
		return "unknown"
	}
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	switch string(text) {
	case "solid":
		*k = KindSolid
	case "fluid":
		*k = KindFluid
	default:
		return fmt.Errorf("unknown tile kind %q", text)
	}
	return nil
}

// minThermalMass floors heat capacities so empty tiles never divide by zero.
const minThermalMass = 1.0

// Tile is the sealed sum type stored in every grid cell.
type Tile interface {
	Kind() Kind
	// Temperature is in K and never negative.
	Temperature() float64
	SetTemperature(t float64)
	// Mass is in kg.
	Mass() float64
	// Conductivity is the effective thermal conductivity in W/m·K.
	Conductivity() float64
	// IsGas reports whether gas can flow through the tile.
	IsGas() bool
	// ThermalMass is the heat capacity of the whole tile in J/K.
	ThermalMass() float64
	// ThermalEnergy is ThermalMass times Temperature.
	ThermalEnergy() float64
	// ChangeTemperature adds energy in J. A non-nil result replaces the tile
	// in the grid; the receiver must not be used afterwards.
	ChangeTemperature(energy float64) Tile
	Clone() Tile
	Describe() string

	sealed()
}

// StateChange asks the grid to replace the tile at (X, Y).
type StateChange struct {
	X, Y int
	Tile Tile
}

// Medium holds the immutable gas context shared by fluid tiles.
type Medium struct {
	Carrier   *material.Base
	MolarMass [material.NumSpecies]float64
	Names     [material.NumSpecies]string
}

// NewMedium builds the medium for a catalog.
func NewMedium(c *material.Catalog) *Medium {
	m := &Medium{Carrier: c.Carrier(), MolarMass: c.MolarMasses()}
	for i, g := range c.Gases() {
		m.Names[i] = g.Name
	}
	return m
}

// Info is a read-only view of a tile for display and streaming.
type Info struct {
	Kind           Kind                         `json:"kind"`
	Material       string                       `json:"material"`
	Temperature    float64                      `json:"temperature"`
	Mass           float64                      `json:"mass"`
	Melting        bool                         `json:"melting,omitempty"`
	FractionMolten float64                      `json:"fractionMolten,omitempty"`
	Amounts        [material.NumSpecies]float64 `json:"amounts"`
	LiquidMass     float64                      `json:"liquidMass,omitempty"`
	FogMass        float64                      `json:"fogMass,omitempty"`
	RainMass       float64                      `json:"rainMass,omitempty"`
	IsGas          bool                         `json:"isGas"`
}

// Inspect returns the Info view of t.
func Inspect(t Tile) Info {
	info := Info{
		Kind:        t.Kind(),
		Temperature: t.Temperature(),
		Mass:        t.Mass(),
		IsGas:       t.IsGas(),
	}
	switch v := t.(type) {
	case *Solid:
		info.Material = v.Material.Name
		info.Melting = v.melting
		info.FractionMolten = v.fractionMolten
	case *Fluid:
		if v.medium != nil && v.medium.Carrier != nil {
			info.Material = v.medium.Carrier.Name
		}
		info.Amounts = v.Gases
		info.LiquidMass = v.LiquidMass
		info.FogMass = v.FogMass
		info.RainMass = v.RainMass
	}
	return info
}
