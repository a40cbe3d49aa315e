package ui

import (
	"math"
	"strconv"
	"strings"

	"thermo-ca/internal/core"
)

// ControlState tracks the displayed value of one adjustable parameter.
type ControlState struct {
	Control core.ParameterControl
	Value   string

	intValue   int
	floatValue float64
	hasValue   bool
}

// ControlSet binds a simulation's adjustable parameters to its setters.
type ControlSet struct {
	States   []ControlState
	Selected int

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// NewControlSet discovers the controls and setters sim exposes.
func NewControlSet(sim core.Sim) *ControlSet {
	cs := &ControlSet{}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			cs.States = append(cs.States, ControlState{Control: ctrl, Value: "--"})
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		cs.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		cs.floatSetter = setter
	}
	return cs
}

// Refresh copies current values from the snapshot.
func (cs *ControlSet) Refresh(snapshot core.ParameterSnapshot) {
	for i := range cs.States {
		state := &cs.States[i]
		state.hasValue = false
		state.Value = "--"
		param, ok := snapshot.Lookup(state.Control.Key)
		if !ok {
			continue
		}
		switch state.Control.Type {
		case core.ParamTypeInt:
			if parsed, err := strconv.Atoi(param.Value); err == nil {
				state.intValue = parsed
				state.floatValue = float64(parsed)
				state.Value = strconv.Itoa(parsed)
				state.hasValue = true
			}
		case core.ParamTypeFloat:
			if parsed, err := strconv.ParseFloat(param.Value, 64); err == nil {
				state.floatValue = parsed
				state.Value = formatFloat(state.Control, parsed)
				state.hasValue = true
			}
		}
	}
}

// Move changes the selected control, wrapping at either end.
func (cs *ControlSet) Move(delta int) {
	n := len(cs.States)
	if n == 0 {
		return
	}
	cs.Selected = ((cs.Selected+delta)%n + n) % n
}

// Adjust steps the selected control by direction. It reports whether the
// simulation accepted the new value.
func (cs *ControlSet) Adjust(direction int) bool {
	if direction == 0 || cs.Selected < 0 || cs.Selected >= len(cs.States) {
		return false
	}
	state := &cs.States[cs.Selected]
	if !state.hasValue {
		return false
	}
	ctrl := state.Control
	switch ctrl.Type {
	case core.ParamTypeInt:
		if cs.intSetter == nil {
			return false
		}
		step := int(math.Round(ctrl.Step))
		if step <= 0 {
			step = 1
		}
		target := int(ctrl.Clamp(float64(state.intValue + direction*step)))
		if target == state.intValue || !cs.intSetter.SetIntParameter(ctrl.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.Value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if cs.floatSetter == nil {
			return false
		}
		step := ctrl.Step
		if step <= 0 {
			step = 0.05
		}
		target := ctrl.Clamp(state.floatValue + float64(direction)*step)
		if math.Abs(target-state.floatValue) < 1e-9 || !cs.floatSetter.SetFloatParameter(ctrl.Key, target) {
			return false
		}
		state.floatValue = target
		state.Value = formatFloat(ctrl, target)
		return true
	}
	return false
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// WrapLines splits text into lines no wider than width characters, keeping
// explicit line breaks.
func WrapLines(text string, width int) []string {
	if width <= 0 {
		width = 1
	}
	var out []string
	for _, para := range strings.Split(text, "\n") {
		line := ""
		for _, word := range strings.Fields(para) {
			switch {
			case line == "":
				line = word
			case len(line)+1+len(word) <= width:
				line += " " + word
			default:
				out = append(out, line)
				line = word
			}
		}
		out = append(out, line)
	}
	return out
}
