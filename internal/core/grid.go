package core

// FloatGrid stores a 2D grid of float64 cell values in row-major order.
// Coordinates never wrap: reads and writes outside the grid are rejected.
type FloatGrid struct {
	W, H int
	data []float64
}

// NewFloatGrid allocates a grid with the given dimensions.
func NewFloatGrid(w, h int) *FloatGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &FloatGrid{W: w, H: h, data: make([]float64, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *FloatGrid) Cells() []float64 { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *FloatGrid) Index(x, y int) int { return y*g.W + x }

// In reports whether (x, y) lies inside the grid.
func (g *FloatGrid) In(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// At returns the value at (x, y), or zero outside the grid.
func (g *FloatGrid) At(x, y int) float64 {
	if !g.In(x, y) {
		return 0
	}
	return g.data[g.Index(x, y)]
}

// Set overwrites the value at (x, y). It reports false when out of bounds.
func (g *FloatGrid) Set(x, y int, v float64) bool {
	if !g.In(x, y) {
		return false
	}
	g.data[g.Index(x, y)] = v
	return true
}

// Add accumulates v into (x, y). It reports false when out of bounds.
func (g *FloatGrid) Add(x, y int, v float64) bool {
	if !g.In(x, y) {
		return false
	}
	g.data[g.Index(x, y)] += v
	return true
}

// Sum returns the total of all cells.
func (g *FloatGrid) Sum() float64 {
	total := 0.0
	for _, v := range g.data {
		total += v
	}
	return total
}

// Clear fills the grid with zeros.
func (g *FloatGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}
