// Package config loads run settings from an optional JSON file, THERMO_
// environment variables and built-in defaults, in that order of precedence
// below the environment.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"thermo-ca/internal/building"
	"thermo-ca/internal/sims/thermal"
)

// FileName is the config file looked up in the config directory.
const FileName = "thermo.cfg.json"

// EnvPrefix prefixes environment overrides, e.g. THERMO_LOG_LEVEL.
const EnvPrefix = "THERMO"

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `json:"level" mapstructure:"level"`
	Pretty bool   `json:"pretty" mapstructure:"pretty"`
}

// StorageConfig holds the SQLite recorder settings.
type StorageConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Path    string `json:"path" mapstructure:"path"`
	// SampleEvery records one tick row per this many ticks. Incidents are
	// always recorded.
	SampleEvery int `json:"sampleEvery" mapstructure:"sampleEvery"`
}

// StreamConfig holds the websocket frame stream settings.
type StreamConfig struct {
	Enabled bool   `json:"enabled" mapstructure:"enabled"`
	Addr    string `json:"addr" mapstructure:"addr"`
	// Every publishes one frame per this many ticks.
	Every int `json:"every" mapstructure:"every"`
}

// OtelConfig holds OpenTelemetry exporter settings.
type OtelConfig struct {
	Enabled      bool          `json:"enabled" mapstructure:"enabled"`
	ServiceName  string        `json:"serviceName" mapstructure:"serviceName"`
	Endpoint     string        `json:"endpoint" mapstructure:"endpoint"`
	Insecure     bool          `json:"insecure" mapstructure:"insecure"`
	BatchTimeout time.Duration `json:"batchTimeout" mapstructure:"batchTimeout"`
	// MetricInterval is the metric push period.
	MetricInterval time.Duration `json:"metricInterval" mapstructure:"metricInterval"`
}

// RunConfig controls the driver loop.
type RunConfig struct {
	// Ticks stops a headless run after this many ticks; 0 runs until
	// interrupted.
	Ticks int64 `json:"ticks" mapstructure:"ticks"`
	TPS   int   `json:"tps" mapstructure:"tps"`
	Scale int   `json:"scale" mapstructure:"scale"`
	// HUDWidth is the parameter panel width in pixels for the GUI.
	HUDWidth int `json:"hudWidth" mapstructure:"hudWidth"`
}

// Settings is the complete configuration of a run.
type Settings struct {
	Sim       thermal.Config  `json:"sim" mapstructure:"sim"`
	Buildings []building.Spec `json:"buildings" mapstructure:"buildings"`
	Log       LogConfig       `json:"log" mapstructure:"log"`
	Storage   StorageConfig   `json:"storage" mapstructure:"storage"`
	Stream    StreamConfig    `json:"stream" mapstructure:"stream"`
	Otel      OtelConfig      `json:"otel" mapstructure:"otel"`
	Run       RunConfig       `json:"run" mapstructure:"run"`
}

func setDefaults() {
	sim := thermal.DefaultConfig()
	viper.SetDefault("sim.width", sim.Width)
	viper.SetDefault("sim.height", sim.Height)
	viper.SetDefault("sim.seed", sim.Seed)

	p := sim.Params
	viper.SetDefault("sim.params.deltaTime", p.DeltaTime)
	viper.SetDefault("sim.params.conductivitySpeedup", p.ConductivitySpeedup)
	viper.SetDefault("sim.params.airflowSpeed", p.AirflowSpeed)
	viper.SetDefault("sim.params.gravity", p.Gravity)
	viper.SetDefault("sim.params.friction", p.Friction)
	viper.SetDefault("sim.params.gasConstant", p.GasConstant)
	viper.SetDefault("sim.params.dangerDisplacement", p.DangerDisplacement)
	viper.SetDefault("sim.params.fogCapacity", p.FogCapacity)
	viper.SetDefault("sim.params.evaporationDamping", p.EvaporationDamping)
	viper.SetDefault("sim.params.slowTickInterval", p.SlowTickInterval)
	viper.SetDefault("sim.params.rockThreshold", p.RockThreshold)
	viper.SetDefault("sim.params.noiseScale", p.NoiseScale)
	viper.SetDefault("sim.params.noiseOctaves", p.NoiseOctaves)
	viper.SetDefault("sim.params.baseTemperature", p.BaseTemperature)
	viper.SetDefault("sim.params.temperatureRange", p.TemperatureRange)
	viper.SetDefault("sim.params.displayMin", p.DisplayMin)
	viper.SetDefault("sim.params.displayMax", p.DisplayMax)

	viper.SetDefault("buildings", []building.Spec{})

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.pretty", true)

	viper.SetDefault("storage.enabled", false)
	viper.SetDefault("storage.path", "./thermo.db")
	viper.SetDefault("storage.sampleEvery", 50)

	viper.SetDefault("stream.enabled", false)
	viper.SetDefault("stream.addr", "localhost:8089")
	viper.SetDefault("stream.every", 5)

	viper.SetDefault("otel.enabled", false)
	viper.SetDefault("otel.serviceName", "thermo-ca")
	viper.SetDefault("otel.endpoint", "")
	viper.SetDefault("otel.insecure", true)
	viper.SetDefault("otel.batchTimeout", "5s")
	viper.SetDefault("otel.metricInterval", "15s")

	viper.SetDefault("run.ticks", 0)
	viper.SetDefault("run.tps", 60)
	viper.SetDefault("run.scale", 6)
	viper.SetDefault("run.hudWidth", 240)
}

// Load reads settings from configDir, which may be empty to skip the file.
// A missing file is not an error; a malformed one is.
func Load(configDir string) (*Settings, error) {
	setDefaults()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if configDir != "" {
		viper.SetConfigName(FileName)
		viper.SetConfigType("json")
		viper.AddConfigPath(configDir)
		if err := viper.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("error reading config file: %w", err)
			}
		}
	}

	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &s, nil
}

// ConfigFile returns the path of the file that was read, empty if none.
func ConfigFile() string {
	return viper.ConfigFileUsed()
}
