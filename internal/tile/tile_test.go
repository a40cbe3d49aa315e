package tile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo-ca/internal/material"
)

func newIce(t *testing.T, temperature float64) *Solid {
	t.Helper()
	ice := material.Default().MustSolid("Ice")
	return NewSolid(ice, 0, temperature)
}

func TestSolidMeltingAccumulates(t *testing.T) {
	s := newIce(t, 272)
	budget := s.Material.FusionEnergy(s.Mass())

	require.Nil(t, s.ChangeTemperature(s.ThermalMass()))
	assert.InDelta(t, 273, s.Temperature(), 1e-9)
	assert.False(t, s.Melting())

	prev := 0.0
	for i := 0; i < 3; i++ {
		require.Nil(t, s.ChangeTemperature(budget/4))
		assert.True(t, s.Melting())
		assert.Equal(t, 273.0, s.Temperature(), "pinned while melting")
		assert.Greater(t, s.FractionMolten(), prev)
		prev = s.FractionMolten()
	}
	assert.InDelta(t, 0.75, s.FractionMolten(), 1e-9)

	require.Nil(t, s.ChangeTemperature(budget/4-1))
	assert.InDelta(t, 1.0, s.FractionMolten(), 1e-6)
	assert.Equal(t, 273.0, s.Temperature())
}

func TestSolidMeltCompletesIntoFluid(t *testing.T) {
	s := newIce(t, 273)
	budget := s.Material.FusionEnergy(s.Mass())

	require.Nil(t, s.ChangeTemperature(budget/2))
	next := s.ChangeTemperature(budget/2 + 4000)
	require.NotNil(t, next)

	f, ok := next.(*Fluid)
	require.True(t, ok)
	assert.Equal(t, KindFluid, f.Kind())
	assert.Equal(t, "Water", f.Liquid().Name)
	assert.InDelta(t, 900, f.LiquidMass, 1e-9)
	assert.Greater(t, f.Temperature(), 273.0)
	assert.InDelta(t, 273, f.Temperature(), 0.01)
	assert.Nil(t, f.Medium(), "the grid binds its medium")
	assert.True(t, f.IsGas(), "900 kg of water fills 90 % of the tile")
}

func TestSolidMeltingReverts(t *testing.T) {
	s := newIce(t, 273)
	budget := s.Material.FusionEnergy(s.Mass())

	require.Nil(t, s.ChangeTemperature(budget/4))
	require.True(t, s.Melting())

	require.Nil(t, s.ChangeTemperature(-budget/2))
	assert.False(t, s.Melting())
	assert.Zero(t, s.FractionMolten())
	assert.InDelta(t, 273-budget/4/s.ThermalMass(), s.Temperature(), 1e-6)
}

func TestSolidEnergyContinuousAcrossMelt(t *testing.T) {
	s := newIce(t, 270)
	before := s.ThermalEnergy()
	energy := s.ThermalMass()*3 + s.Material.FusionEnergy(s.Mass())/3

	require.Nil(t, s.ChangeTemperature(energy))
	assert.InEpsilon(t, before+energy, s.ThermalEnergy(), 1e-9)
}

func TestSolidWithoutLiquidPhaseJustHeats(t *testing.T) {
	rock := material.Default().MustSolid("Rock (silica)")
	s := NewSolid(rock, 2600, 1980)

	require.Nil(t, s.ChangeTemperature(s.ThermalMass()*100))
	assert.False(t, s.Melting())
	assert.InDelta(t, 2080, s.Temperature(), 1e-9)

	require.Nil(t, s.ChangeTemperature(-s.ThermalMass()*1e6))
	assert.Zero(t, s.Temperature(), "temperature never goes negative")
}

func newAir(t *testing.T, temperature, liquid float64, amounts [material.NumSpecies]float64) *Fluid {
	t.Helper()
	c := material.Default()
	f := NewFluid(NewMedium(c), c.MustLiquid("Water"), temperature, amounts)
	f.LiquidMass = liquid
	f.Refresh()
	return f
}

func TestFluidDerivedState(t *testing.T) {
	f := newAir(t, 300, 0, [material.NumSpecies]float64{12, 0, 38, 0, 0})
	assert.InDelta(t, 12*0.032+38*0.028, f.Mass(), 1e-12)
	assert.InDelta(t, 50, f.TotalGas(), 1e-12)
	assert.InDelta(t, 300*50*0.00831/1.001, f.Pressure(0.00831), 1e-9)
	assert.True(t, f.IsGas())

	f.LiquidMass = 995
	f.Refresh()
	assert.False(t, f.IsGas(), "99.5 % liquid blocks gas flow")

	f.LiquidMass = 980
	f.Refresh()
	assert.True(t, f.IsGas())
	assert.Less(t, f.Conductivity(), 2.0)
	assert.Greater(t, f.Conductivity(), 1.9)
}

func TestFluidClampsNegatives(t *testing.T) {
	f := newAir(t, -4, 0, [material.NumSpecies]float64{-1, 2, 0, 0, 0})
	assert.Zero(t, f.Temperature())
	assert.Zero(t, f.Gases[material.Oxygen])
	assert.Equal(t, 2.0, f.Gases[material.Hydrogen])

	f.SetTemperature(10)
	assert.Nil(t, f.ChangeTemperature(-1e12))
	assert.Zero(t, f.Temperature())

	empty := NewFluid(nil, nil, 300, [material.NumSpecies]float64{})
	assert.Equal(t, minThermalMass, empty.ThermalMass())
	assert.Zero(t, empty.Evaporate(PhaseParams{GasConstant: 0.00831, FogCapacity: 0.5, Damping: 10}))
}

func TestEvaporationConservesWater(t *testing.T) {
	params := PhaseParams{GasConstant: 0.00831, FogCapacity: 0.5, Damping: 10}
	f := newAir(t, 300, 10, [material.NumSpecies]float64{12, 0, 38, 0.15, 0})
	water := f.TotalWater()
	startTemp := f.Temperature()

	moved := f.Evaporate(params)
	require.Greater(t, moved, 0.0, "dry air over warm water evaporates")
	assert.InDelta(t, water, f.TotalWater(), 1e-9)
	assert.Less(t, f.Temperature(), startTemp, "evaporation absorbs latent heat")
	assert.Zero(t, f.FogMass)
	assert.Less(t, f.LiquidMass, 10.0)

	for i := 0; i < 50; i++ {
		f.Evaporate(params)
	}
	assert.InDelta(t, water, f.TotalWater(), 1e-9)
	vapor := f.Gases[material.WaterVapor]

	f.SetTemperature(280)
	released := f.Evaporate(params)
	require.Less(t, released, 0.0, "cooled saturated air condenses")
	assert.Less(t, f.Gases[material.WaterVapor], vapor)
	assert.Greater(t, f.FogMass, 0.0)
	assert.Greater(t, f.Temperature(), 280.0, "condensation releases latent heat")
	assert.InDelta(t, water, f.TotalWater(), 1e-9)
}

func TestCondensationOverflowsIntoRain(t *testing.T) {
	params := PhaseParams{GasConstant: 0.00831, FogCapacity: 0.001, Damping: 10}
	f := newAir(t, 300, 0, [material.NumSpecies]float64{12, 0, 38, 0, 10})
	water := f.TotalWater()

	moved := f.Evaporate(params)
	require.Less(t, moved, 0.0)
	assert.Equal(t, 0.001, f.FogMass)
	assert.InDelta(t, -moved-0.001, f.RainMass, 1e-12)
	assert.Zero(t, f.LiquidMass)
	assert.InDelta(t, water, f.TotalWater(), 1e-9)
}

func TestAtmosphereIsDenserBelow(t *testing.T) {
	c := material.Default()
	m := NewMedium(c)
	low := NewAtmosphere(m, c.MustLiquid("Water"), 290, 40)
	high := NewAtmosphere(m, c.MustLiquid("Water"), 290, 0)
	assert.Greater(t, low.TotalGas(), high.TotalGas())
	assert.InDelta(t, 50.15, high.TotalGas(), 1e-9)
}

func TestInspect(t *testing.T) {
	info := Inspect(newIce(t, 260))
	assert.Equal(t, KindSolid, info.Kind)
	assert.Equal(t, "Ice", info.Material)
	assert.False(t, info.IsGas)

	f := newAir(t, 300, 5, [material.NumSpecies]float64{1, 2, 3, 4, 5})
	info = Inspect(f)
	assert.Equal(t, "Air", info.Material)
	assert.Equal(t, f.Gases, info.Amounts)
	assert.Equal(t, 5.0, info.LiquidMass)
	assert.Contains(t, f.Describe(), "Gas over liquid")
	assert.Contains(t, f.Describe(), "Hydrogen")
}

func TestFluidBindKeepsExistingContext(t *testing.T) {
	c := material.Default()
	m := NewMedium(c)
	s := newIce(t, 273)
	next := s.ChangeTemperature(s.Material.FusionEnergy(s.Mass()) + 1)
	f, ok := next.(*Fluid)
	require.True(t, ok)

	temp := f.Temperature()
	f.Bind(m, nil)
	assert.Same(t, m, f.Medium())
	assert.Equal(t, "Water", f.Liquid().Name)
	assert.Equal(t, temp, f.Temperature())

	other := &Medium{}
	f.Bind(other, c.MustLiquid("Water"))
	assert.Same(t, m, f.Medium())
}

func TestKindText(t *testing.T) {
	text, err := KindFluid.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "fluid", string(text))

	var k Kind
	require.NoError(t, k.UnmarshalText([]byte("solid")))
	assert.Equal(t, KindSolid, k)
	assert.Error(t, k.UnmarshalText([]byte("plasma")))
}
