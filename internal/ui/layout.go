package ui

import (
	"math"

	"thermo-ca/internal/core"
)

// FlowSample is a grid cell sampled for the airflow overlay together with its
// pixel centre on screen.
type FlowSample struct {
	X, Y   int
	SX, SY float64
}

// FlowSamples spreads roughly target samples evenly over the grid. Screen
// rows are flipped so row 0 is drawn at the bottom.
func FlowSamples(size core.Size, scale int, target float64) ([]FlowSample, int) {
	if size.W <= 0 || size.H <= 0 {
		return nil, 0
	}
	if scale <= 0 {
		scale = 1
	}
	const (
		minSpacing = 4
		maxSpacing = 20
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / target))
	spacing = min(max(spacing, minSpacing), maxSpacing)

	var out []FlowSample
	for y := spacing / 2; y < size.H; y += spacing {
		for x := spacing / 2; x < size.W; x += spacing {
			out = append(out, FlowSample{
				X:  x,
				Y:  y,
				SX: (float64(x) + 0.5) * float64(scale),
				SY: (float64(size.H-1-y) + 0.5) * float64(scale),
			})
		}
	}
	return out, spacing
}

// flowColor maps a normalised speed to a cool to warm arrow color.
func flowColor(t float64) (r, g, b uint8) {
	t = math.Max(0, math.Min(1, t))
	return uint8(90 + 165*t), uint8(200 - 120*t), uint8(255 - 200*t)
}
