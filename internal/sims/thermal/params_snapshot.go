package thermal

import "thermo-ca/internal/core"

// Parameters reports the active configuration grouped for display.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", w.cfg.Width),
				core.IntParam("h", "Height", w.cfg.Height),
				core.Int64Param("seed", "Seed", w.cfg.Seed),
				core.Int64Param("tick", "Tick", w.tick),
				core.BoolParam("paused", "Paused", w.paused),
			},
		},
		{
			Name: "Heat",
			Params: []core.Parameter{
				core.FloatParam("delta_time", "Time step", p.DeltaTime),
				core.FloatParam("conductivity_speedup", "Conductivity speedup", p.ConductivitySpeedup),
			},
		},
		{
			Name: "Gas",
			Params: []core.Parameter{
				core.FloatParam("airflow_speed", "Airflow speed", p.AirflowSpeed),
				core.FloatParam("gravity", "Gravity", p.Gravity),
				core.FloatParam("friction", "Friction", p.Friction),
				core.FloatParam("gas_constant", "Gas constant", p.GasConstant),
				core.FloatParam("danger_displacement", "Danger displacement", p.DangerDisplacement),
			},
		},
		{
			Name: "Water",
			Params: []core.Parameter{
				core.FloatParam("fog_capacity", "Fog capacity", p.FogCapacity),
				core.FloatParam("evaporation_damping", "Evaporation damping", p.EvaporationDamping),
				core.IntParam("slow_tick_interval", "Water move interval", p.SlowTickInterval),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				core.FloatParam("rock_threshold", "Rock threshold", p.RockThreshold),
				core.FloatParam("noise_scale", "Noise scale", p.NoiseScale),
				core.IntParam("noise_octaves", "Noise octaves", p.NoiseOctaves),
				core.FloatParam("base_temperature", "Base temperature", p.BaseTemperature),
				core.FloatParam("temperature_range", "Temperature range", p.TemperatureRange),
			},
		},
		{
			Name: "Display",
			Params: []core.Parameter{
				core.FloatParam("display_min", "Coldest shade", p.DisplayMin),
				core.FloatParam("display_max", "Hottest shade", p.DisplayMax),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable while running.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "conductivity_speedup", Label: "Conductivity speedup", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true, Max: 250, HasMax: true},
		{Key: "airflow_speed", Label: "Airflow speed", Type: core.ParamTypeFloat, Step: 0.5, Min: 0, HasMin: true, Max: 20, HasMax: true},
		{Key: "gravity", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "friction", Label: "Friction", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "fog_capacity", Label: "Fog capacity", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "evaporation_damping", Label: "Evaporation damping", Type: core.ParamTypeFloat, Step: 1, Min: 1, HasMin: true},
		{Key: "slow_tick_interval", Label: "Water move interval", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 100, HasMax: true},
		{Key: "display_min", Label: "Coldest shade", Type: core.ParamTypeFloat, Step: 5},
		{Key: "display_max", Label: "Hottest shade", Type: core.ParamTypeFloat, Step: 5},
	}
}

func (w *World) control(key string) (core.ParameterControl, bool) {
	for _, c := range w.ParameterControls() {
		if c.Key == key {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

// SetFloatParameter updates a float tunable. Values are clamped to the
// control bounds; unknown keys report false.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := w.control(key)
	if !ok || ctrl.Type != core.ParamTypeFloat {
		return false
	}
	dst, ok := w.cfg.Params.floatFields()[key]
	if !ok {
		return false
	}
	*dst = ctrl.Clamp(value)
	w.cfg.Params = w.cfg.Params.sanitize()
	w.rebuildDisplay()
	return true
}

// SetIntParameter updates an integer tunable.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := w.control(key)
	if !ok || ctrl.Type != core.ParamTypeInt {
		return false
	}
	switch key {
	case "slow_tick_interval":
		w.cfg.Params.SlowTickInterval = int(ctrl.Clamp(float64(value)))
	default:
		return false
	}
	return true
}
