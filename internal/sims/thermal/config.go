package thermal

import "strconv"

// Params holds the tunable constants of the simulation. Units are loosely
// physical; treat them as knobs rather than SI values.
type Params struct {
	DeltaTime           float64 `mapstructure:"deltaTime" json:"deltaTime"`
	ConductivitySpeedup float64 `mapstructure:"conductivitySpeedup" json:"conductivitySpeedup"`
	AirflowSpeed        float64 `mapstructure:"airflowSpeed" json:"airflowSpeed"`
	Gravity             float64 `mapstructure:"gravity" json:"gravity"`
	Friction            float64 `mapstructure:"friction" json:"friction"`
	GasConstant         float64 `mapstructure:"gasConstant" json:"gasConstant"`
	// DangerDisplacement is the advected displacement in cells per tick above
	// which the run pauses.
	DangerDisplacement float64 `mapstructure:"dangerDisplacement" json:"dangerDisplacement"`
	FogCapacity        float64 `mapstructure:"fogCapacity" json:"fogCapacity"`
	EvaporationDamping float64 `mapstructure:"evaporationDamping" json:"evaporationDamping"`
	// SlowTickInterval is how often, in ticks, condensed water moves.
	SlowTickInterval int `mapstructure:"slowTickInterval" json:"slowTickInterval"`

	RockThreshold    float64 `mapstructure:"rockThreshold" json:"rockThreshold"`
	NoiseScale       float64 `mapstructure:"noiseScale" json:"noiseScale"`
	NoiseOctaves     int     `mapstructure:"noiseOctaves" json:"noiseOctaves"`
	BaseTemperature  float64 `mapstructure:"baseTemperature" json:"baseTemperature"`
	TemperatureRange float64 `mapstructure:"temperatureRange" json:"temperatureRange"`

	DisplayMin float64 `mapstructure:"displayMin" json:"displayMin"`
	DisplayMax float64 `mapstructure:"displayMax" json:"displayMax"`
}

// Config controls the thermal simulation dimensions and tunables.
type Config struct {
	Width  int   `mapstructure:"width" json:"width"`
	Height int   `mapstructure:"height" json:"height"`
	Seed   int64 `mapstructure:"seed" json:"seed"`

	Params Params `mapstructure:"params" json:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  100,
		Height: 100,
		Seed:   3450,
		Params: DefaultParams(),
	}
}

// DefaultParams returns the standard tunables.
func DefaultParams() Params {
	return Params{
		DeltaTime:           0.02,
		ConductivitySpeedup: 100,
		AirflowSpeed:        3,
		Gravity:             0.3,
		Friction:            0.8,
		GasConstant:         0.00831,
		DangerDisplacement:  0.5,
		FogCapacity:         0.5,
		EvaporationDamping:  10,
		SlowTickInterval:    10,
		RockThreshold:       0.5,
		NoiseScale:          50,
		NoiseOctaves:        4,
		BaseTemperature:     250,
		TemperatureRange:    60,
		DisplayMin:          250,
		DisplayMax:          330,
	}
}

// sanitize replaces values that would stall or break a tick with defaults.
func (p Params) sanitize() Params {
	d := DefaultParams()
	if p.DeltaTime <= 0 {
		p.DeltaTime = d.DeltaTime
	}
	if p.ConductivitySpeedup < 0 {
		p.ConductivitySpeedup = d.ConductivitySpeedup
	}
	if p.AirflowSpeed < 0 {
		p.AirflowSpeed = d.AirflowSpeed
	}
	if p.Friction < 0 || p.Friction > 1 {
		p.Friction = d.Friction
	}
	if p.GasConstant <= 0 {
		p.GasConstant = d.GasConstant
	}
	if p.DangerDisplacement <= 0 {
		p.DangerDisplacement = d.DangerDisplacement
	}
	if p.FogCapacity < 0 {
		p.FogCapacity = d.FogCapacity
	}
	if p.EvaporationDamping <= 0 {
		p.EvaporationDamping = d.EvaporationDamping
	}
	if p.SlowTickInterval <= 0 {
		p.SlowTickInterval = d.SlowTickInterval
	}
	if p.NoiseOctaves <= 0 {
		p.NoiseOctaves = d.NoiseOctaves
	}
	if p.DisplayMax <= p.DisplayMin {
		p.DisplayMin, p.DisplayMax = d.DisplayMin, d.DisplayMax
	}
	return p
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["slow_tick_interval"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.SlowTickInterval = parsed
		}
	}
	if v, ok := cfg["noise_octaves"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.NoiseOctaves = parsed
		}
	}
	for key, dst := range c.Params.floatFields() {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
	c.Params = c.Params.sanitize()
	return c
}

// floatFields maps parameter keys to the float fields they control.
func (p *Params) floatFields() map[string]*float64 {
	return map[string]*float64{
		"delta_time":           &p.DeltaTime,
		"conductivity_speedup": &p.ConductivitySpeedup,
		"airflow_speed":        &p.AirflowSpeed,
		"gravity":              &p.Gravity,
		"friction":             &p.Friction,
		"gas_constant":         &p.GasConstant,
		"danger_displacement":  &p.DangerDisplacement,
		"fog_capacity":         &p.FogCapacity,
		"evaporation_damping":  &p.EvaporationDamping,
		"rock_threshold":       &p.RockThreshold,
		"noise_scale":          &p.NoiseScale,
		"base_temperature":     &p.BaseTemperature,
		"temperature_range":    &p.TemperatureRange,
		"display_min":          &p.DisplayMin,
		"display_max":          &p.DisplayMax,
	}
}
