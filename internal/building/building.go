// Package building implements the fixed-position heat sources and sinks that
// perturb the grid once per tick.
package building

import (
	"errors"
	"fmt"
	"strings"

	"thermo-ca/internal/core"
)

// ErrUnknownKind is returned by Build for an unrecognised building kind.
var ErrUnknownKind = errors.New("unknown building kind")

// Grid is the view of the tile grid a building may touch.
type Grid interface {
	Temperature(x, y int) (float64, bool)
	SetTemperature(x, y int, t float64) bool
}

// Building adds or removes heat around its tile every tick.
type Building interface {
	Position() (x, y int)
	// AffectTemperature adds flows in W to heat and may pin temperatures on
	// grid directly.
	AffectTemperature(heat *core.FloatGrid, grid Grid)
	Describe() string
}

// Kind names a building variant in configuration.
type Kind string

const (
	KindSource    Kind = "source"
	KindRegulator Kind = "regulator"
	KindHeatPump  Kind = "heatpump"
)

// DefaultSourcePower is the output of an RTG core in W.
const DefaultSourcePower = 1000

// Spec describes a building to construct.
type Spec struct {
	Kind       Kind    `mapstructure:"kind" json:"kind"`
	X          int     `mapstructure:"x" json:"x"`
	Y          int     `mapstructure:"y" json:"y"`
	Power      float64 `mapstructure:"power" json:"power,omitempty"`
	Target     float64 `mapstructure:"target" json:"target,omitempty"`
	Horizontal bool    `mapstructure:"horizontal" json:"horizontal,omitempty"`
}

// Build constructs the building described by s.
func Build(s Spec) (Building, error) {
	switch Kind(strings.ToLower(string(s.Kind))) {
	case KindSource, "rtg":
		p := s.Power
		if p == 0 {
			p = DefaultSourcePower
		}
		return &ConstantSource{X: s.X, Y: s.Y, Power: p}, nil
	case KindRegulator:
		if s.Target <= 0 {
			return nil, fmt.Errorf("regulator at (%d, %d) needs a positive target temperature", s.X, s.Y)
		}
		return &Regulator{X: s.X, Y: s.Y, Target: s.Target}, nil
	case KindHeatPump, "peltier":
		return &HeatPump{X: s.X, Y: s.Y, Power: s.Power, Horizontal: s.Horizontal}, nil
	default:
		return nil, fmt.Errorf("building %q at (%d, %d): %w", s.Kind, s.X, s.Y, ErrUnknownKind)
	}
}

// BuildAll constructs every spec, stopping at the first error.
func BuildAll(specs []Spec) ([]Building, error) {
	out := make([]Building, 0, len(specs))
	for _, s := range specs {
		b, err := Build(s)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, nil
}
