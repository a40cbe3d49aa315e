package tile

import (
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"

	"thermo-ca/internal/material"
)

// liquidFullFraction is the share of tile volume above which liquid blocks
// gas flow.
const liquidFullFraction = 0.99

// Fluid unifies a gas mixture with the liquid, fog and rain phases of one
// condensable liquid. Gases holds species amounts in mol.
type Fluid struct {
	Gases      [material.NumSpecies]float64
	LiquidMass float64
	FogMass    float64
	RainMass   float64

	medium      *Medium
	liquid      *material.Liquid
	temperature float64
	mass        float64
	isGas       bool
}

// PhaseParams tunes the evaporation model.
type PhaseParams struct {
	// GasConstant converts mol·K to kPa for a one cubic metre tile.
	GasConstant float64
	// FogCapacity is the fog mass in kg a tile holds before it rains.
	FogCapacity float64
	// Damping divides the vapor pressure discrepancy each evaluation.
	Damping float64
}

// NewFluid constructs a fluid tile holding the given gas amounts.
func NewFluid(m *Medium, liquid *material.Liquid, temperature float64, amounts [material.NumSpecies]float64) *Fluid {
	if temperature < 0 {
		temperature = 0
	}
	f := &Fluid{Gases: amounts, medium: m, liquid: liquid, temperature: temperature}
	for i, a := range f.Gases {
		if a < 0 {
			f.Gases[i] = 0
		}
	}
	f.Refresh()
	return f
}

func (f *Fluid) sealed() {}

// Kind implements Tile.
func (f *Fluid) Kind() Kind { return KindFluid }

// Temperature implements Tile.
func (f *Fluid) Temperature() float64 { return f.temperature }

// SetTemperature implements Tile.
func (f *Fluid) SetTemperature(t float64) {
	if t < 0 {
		t = 0
	}
	f.temperature = t
}

// Medium returns the gas context, nil until bound.
func (f *Fluid) Medium() *Medium { return f.medium }

// Bind fills in the gas context and condensable liquid where the tile has
// none yet. Temperature is kept.
func (f *Fluid) Bind(m *Medium, liquid *material.Liquid) {
	if f.medium == nil {
		f.medium = m
	}
	if f.liquid == nil {
		f.liquid = liquid
	}
	f.Refresh()
}

// Liquid returns the condensable species of the tile, possibly nil.
func (f *Fluid) Liquid() *material.Liquid { return f.liquid }

// Mass implements Tile. It is the gas mass derived from species amounts.
func (f *Fluid) Mass() float64 { return f.mass }

// IsGas implements Tile.
func (f *Fluid) IsGas() bool { return f.isGas }

// TotalGas returns the summed species amount in mol.
func (f *Fluid) TotalGas() float64 {
	total := 0.0
	for _, a := range f.Gases {
		total += a
	}
	return total
}

// Condensed returns liquid, fog and rain mass in kg.
func (f *Fluid) Condensed() float64 {
	return f.LiquidMass + f.FogMass + f.RainMass
}

// TotalWater returns condensed mass plus the mass of vapor in kg.
func (f *Fluid) TotalWater() float64 {
	return f.Condensed() + f.Gases[material.WaterVapor]*f.molarMass(material.WaterVapor)
}

// LiquidFraction returns the share of tile volume filled with liquid.
func (f *Fluid) LiquidFraction() float64 {
	if f.liquid == nil || f.liquid.Density <= 0 {
		return 0
	}
	return math.Min(f.LiquidMass/f.liquid.Density, 1)
}

// Refresh recomputes the derived mass and gas flag after direct field edits.
func (f *Fluid) Refresh() {
	mass := 0.0
	for i, a := range f.Gases {
		mass += a * f.molarMass(material.Species(i))
	}
	f.mass = mass
	f.isGas = f.LiquidFraction() < liquidFullFraction
}

func (f *Fluid) molarMass(s material.Species) float64 {
	if f.medium == nil {
		return 0
	}
	return f.medium.MolarMass[s]
}

// ThermalMass implements Tile.
func (f *Fluid) ThermalMass() float64 {
	c := 0.0
	if f.medium != nil && f.medium.Carrier != nil {
		c += f.mass * f.medium.Carrier.HeatCapacity
	}
	if f.liquid != nil {
		c += f.Condensed() * f.liquid.HeatCapacity
	}
	c *= 1000
	if c < minThermalMass {
		return minThermalMass
	}
	return c
}

// ThermalEnergy implements Tile.
func (f *Fluid) ThermalEnergy() float64 { return f.ThermalMass() * f.temperature }

// Conductivity implements Tile. It scales with the matter present.
func (f *Fluid) Conductivity() float64 {
	k := 0.0
	if f.medium != nil && f.medium.Carrier != nil && f.medium.Carrier.Density > 0 {
		k += f.medium.Carrier.Conductivity * f.mass / f.medium.Carrier.Density
	}
	if f.liquid != nil && f.liquid.Density > 0 {
		k += f.liquid.Conductivity * f.Condensed() / f.liquid.Density
	}
	return k
}

// ChangeTemperature implements Tile. Fluids never change variant.
func (f *Fluid) ChangeTemperature(energy float64) Tile {
	f.temperature += energy / f.ThermalMass()
	if f.temperature < 0 {
		f.temperature = 0
	}
	return nil
}

// Pressure returns the gas pressure in kPa. Liquid filling the tile shrinks
// the gas volume.
func (f *Fluid) Pressure(gasConstant float64) float64 {
	return f.temperature * f.TotalGas() * gasConstant / f.gasVolume()
}

// VaporPartialPressure returns the pressure in kPa exerted by vapor alone.
func (f *Fluid) VaporPartialPressure(gasConstant float64) float64 {
	return f.temperature * f.Gases[material.WaterVapor] * gasConstant / f.gasVolume()
}

func (f *Fluid) gasVolume() float64 { return 1.001 - f.LiquidFraction() }

// Evaporate moves water between vapor and the condensed phases to approach
// saturation. Evaporation drains fog, then rain, then liquid; condensation
// fills fog and overflows into rain. Latent heat is taken from or released
// into the tile. It returns the mass evaporated in kg, negative when
// condensing.
func (f *Fluid) Evaporate(p PhaseParams) float64 {
	molar := f.molarMass(material.WaterVapor)
	if f.liquid == nil || molar <= 0 || f.temperature <= 0 || p.Damping <= 0 || p.GasConstant <= 0 {
		return 0
	}

	volume := f.gasVolume()
	discrepancy := f.liquid.VaporPressure(f.temperature) - f.VaporPartialPressure(p.GasConstant)
	moved := discrepancy / p.Damping * volume / (p.GasConstant * f.temperature) * molar
	if moved > 0 {
		moved = math.Min(moved, f.Condensed())
	} else {
		moved = math.Max(moved, -f.Gases[material.WaterVapor]*molar)
	}
	if moved == 0 {
		return 0
	}

	f.Gases[material.WaterVapor] = math.Max(f.Gases[material.WaterVapor]+moved/molar, 0)
	f.FogMass -= moved
	if f.FogMass > p.FogCapacity {
		f.RainMass += f.FogMass - p.FogCapacity
		f.FogMass = p.FogCapacity
	}
	if f.FogMass < 0 {
		f.RainMass += f.FogMass
		f.FogMass = 0
	}
	if f.RainMass < 0 {
		f.LiquidMass += f.RainMass
		f.RainMass = 0
	}
	if f.LiquidMass < 0 {
		f.LiquidMass = 0
	}

	f.Refresh()
	f.ChangeTemperature(-f.liquid.LatentHeat(moved))
	return moved
}

// Clone implements Tile.
func (f *Fluid) Clone() Tile {
	c := *f
	return &c
}

// Describe implements Tile.
func (f *Fluid) Describe() string {
	var b strings.Builder
	switch {
	case !f.isGas:
		b.WriteString("Liquid")
	case f.LiquidMass > 0:
		b.WriteString("Gas over liquid")
	default:
		b.WriteString("Gas")
	}
	fmt.Fprintf(&b, "\nTemperature: %.2f K", f.temperature)
	fmt.Fprintf(&b, "\nGas mass: %s kg", humanize.FormatFloat("#,###.###", f.mass))
	if f.medium != nil {
		// Vapor is reported with the condensed phases below.
		for i := 0; i < int(material.WaterVapor); i++ {
			if f.Gases[i] <= 0 {
				continue
			}
			fmt.Fprintf(&b, "\n%s: %.3f mol", f.medium.Names[i], f.Gases[i])
		}
	}
	if f.liquid != nil {
		fmt.Fprintf(&b, "\n%s vapor: %.3f mol", f.liquid.Name, f.Gases[material.WaterVapor])
		fmt.Fprintf(&b, "\nFog: %.3f kg  Rain: %.3f kg  Liquid: %.3f kg", f.FogMass, f.RainMass, f.LiquidMass)
	}
	return b.String()
}

// NewAtmosphere builds a gas tile whose amounts follow a barometric profile:
// each row of depth below the reference height adds 0.3 % more gas.
func NewAtmosphere(m *Medium, liquid *material.Liquid, temperature float64, depth int) *Fluid {
	scale := math.Pow(1.003, float64(depth))
	var amounts [material.NumSpecies]float64
	amounts[material.Oxygen] = 12 * scale
	amounts[material.Nitrogen] = 38 * scale
	amounts[material.CarbonDioxide] = 0.15 * scale
	return NewFluid(m, liquid, temperature, amounts)
}
