package building

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thermo-ca/internal/core"
)

type fakeGrid struct {
	w, h  int
	temps map[[2]int]float64
}

func newFakeGrid(w, h int) *fakeGrid {
	return &fakeGrid{w: w, h: h, temps: map[[2]int]float64{}}
}

func (g *fakeGrid) Temperature(x, y int) (float64, bool) {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return 0, false
	}
	return g.temps[[2]int{x, y}], true
}

func (g *fakeGrid) SetTemperature(x, y int, t float64) bool {
	if x < 0 || y < 0 || x >= g.w || y >= g.h {
		return false
	}
	g.temps[[2]int{x, y}] = t
	return true
}

func TestHeatPumpCappedFlow(t *testing.T) {
	cases := []struct {
		name       string
		horizontal bool
		aheadHot   bool
	}{
		{"vertical ahead hot", false, true},
		{"vertical behind hot", false, false},
		{"horizontal ahead hot", true, true},
		{"horizontal behind hot", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			grid := newFakeGrid(3, 3)
			heat := core.NewFloatGrid(3, 3)
			p := &HeatPump{X: 1, Y: 1, Power: 200, Horizontal: tc.horizontal}

			ax, ay, bx, by := p.Sides()
			hx, hy, cx, cy := ax, ay, bx, by
			if !tc.aheadHot {
				hx, hy, cx, cy = bx, by, ax, ay
			}
			grid.SetTemperature(hx, hy, 400)
			grid.SetTemperature(cx, cy, 300)

			p.AffectTemperature(heat, grid)
			r := p.Reading()

			assert.InDelta(t, 0.25, r.Efficiency, 1e-12)
			assert.InDelta(t, 500, r.FlowIn, 1e-9)
			assert.InDelta(t, 125, r.Power, 1e-9)
			assert.InDelta(t, 375, r.FlowOut, 1e-9)
			assert.InDelta(t, 500, heat.At(cx, cy), 1e-9)
			assert.InDelta(t, -375, heat.At(hx, hy), 1e-9)
			assert.Zero(t, heat.At(1, 1))
			assert.InDelta(t, 125, heat.Sum(), 1e-9, "the converted power is added to the grid")
		})
	}
}

func TestHeatPumpSides(t *testing.T) {
	p := &HeatPump{X: 4, Y: 7}
	ax, ay, bx, by := p.Sides()
	assert.Equal(t, []int{4, 8, 4, 6}, []int{ax, ay, bx, by})

	p.Horizontal = true
	ax, ay, bx, by = p.Sides()
	assert.Equal(t, []int{5, 7, 3, 7}, []int{ax, ay, bx, by})
}

func TestHeatPumpUncappedAndIdle(t *testing.T) {
	grid := newFakeGrid(1, 3)
	heat := core.NewFloatGrid(1, 3)
	p := &HeatPump{X: 0, Y: 1, Power: 10}

	grid.SetTemperature(0, 2, 400)
	grid.SetTemperature(0, 0, 300)
	p.AffectTemperature(heat, grid)
	assert.InDelta(t, 40, p.Reading().FlowIn, 1e-9)
	assert.InDelta(t, 10, p.Reading().Power, 1e-9)

	heat.Clear()
	grid.SetTemperature(0, 0, 400)
	p.AffectTemperature(heat, grid)
	assert.Zero(t, p.Reading().FlowIn, "no gradient, no flow")
	assert.Zero(t, heat.Sum())

	edge := &HeatPump{X: 0, Y: 0, Power: 10}
	edge.AffectTemperature(heat, grid)
	assert.Zero(t, edge.Reading().FlowIn, "a side off the grid disables the pump")
	assert.Contains(t, edge.Describe(), "Peltier")
}

func TestConstantSourceAndRegulator(t *testing.T) {
	grid := newFakeGrid(2, 2)
	heat := core.NewFloatGrid(2, 2)

	src, err := Build(Spec{Kind: "RTG", X: 1, Y: 0})
	require.NoError(t, err)
	src.AffectTemperature(heat, grid)
	assert.Equal(t, float64(DefaultSourcePower), heat.At(1, 0))
	assert.Contains(t, src.Describe(), "1 kW")

	reg, err := Build(Spec{Kind: KindRegulator, X: 0, Y: 1, Target: 280})
	require.NoError(t, err)
	grid.SetTemperature(0, 1, 350)
	reg.AffectTemperature(heat, grid)
	got, ok := grid.Temperature(0, 1)
	require.True(t, ok)
	assert.Equal(t, 280.0, got)
	x, y := reg.Position()
	assert.Equal(t, [2]int{0, 1}, [2]int{x, y})
}

func TestBuildErrors(t *testing.T) {
	_, err := Build(Spec{Kind: "furnace"})
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Build(Spec{Kind: KindRegulator})
	assert.Error(t, err)

	all, err := BuildAll([]Spec{{Kind: KindSource}, {Kind: KindHeatPump, Horizontal: true}})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.IsType(t, &HeatPump{}, all[1])

	_, err = BuildAll([]Spec{{Kind: KindSource}, {Kind: "nope"}})
	assert.ErrorIs(t, err, ErrUnknownKind)
}
