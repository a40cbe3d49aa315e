// Package material holds the immutable physical property records shared by
// every tile of a simulation.
package material

import "math"

// Species indexes the fixed set of gases tracked by fluid tiles.
type Species int

const (
	Oxygen Species = iota
	Hydrogen
	Nitrogen
	CarbonDioxide
	WaterVapor

	NumSpecies = int(WaterVapor) + 1
)

// Gas describes a gas species. Tiles store species as amounts in mol.
type Gas struct {
	Name      string  `json:"name"`
	MolarMass float64 `json:"molarMass"` // kg/mol
}

// Base carries the properties shared by every material kind.
type Base struct {
	Name         string  `json:"name"`
	HeatCapacity float64 `json:"heatCapacity"` // kJ/kg·K
	Conductivity float64 `json:"conductivity"` // W/m·K
	Density      float64 `json:"density"`      // kg/m³
	Sprite       string  `json:"sprite"`
}

// Liquid is a condensable material with a vapor-pressure model
// P = exp(VaporA - VaporB/T) in kPa.
type Liquid struct {
	Base
	HeatOfVaporization float64 `json:"heatOfVaporization"` // kJ/kg
	VaporA             float64 `json:"vaporA"`
	VaporB             float64 `json:"vaporB"`
}

// Solid is a material that can melt into a Liquid. MeltsInto is nil for
// solids that never change phase.
type Solid struct {
	Base
	MeltingPoint float64 `json:"meltingPoint"` // K
	HeatOfFusion float64 `json:"heatOfFusion"` // kJ/kg
	MeltsInto    *Liquid `json:"-"`
}

// VaporPressure returns the saturation vapor pressure in kPa at temperature t.
func (l *Liquid) VaporPressure(t float64) float64 {
	if l == nil || t <= 0 {
		return 0
	}
	return math.Exp(l.VaporA - l.VaporB/t)
}

// LatentHeat returns the energy in J needed to vaporise mass kg.
func (l *Liquid) LatentHeat(mass float64) float64 {
	if l == nil {
		return 0
	}
	return mass * l.HeatOfVaporization * 1000
}

// FusionEnergy returns the energy in J needed to fully melt mass kg.
func (s *Solid) FusionEnergy(mass float64) float64 {
	return mass * s.HeatOfFusion * 1000
}

// CanMelt reports whether the solid has a liquid phase to turn into.
func (s *Solid) CanMelt() bool {
	return s.MeltsInto != nil && s.HeatOfFusion > 0
}
