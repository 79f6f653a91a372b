package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. SAMPLELOG_OUTPUT_FILE
const EnvPrefix = "SAMPLELOG"

type Config struct {
	Output   OutputConfig   `mapstructure:"output" yaml:"output"`
	Recorder RecorderConfig `mapstructure:"recorder" yaml:"recorder"`
	Inspect  InspectConfig  `mapstructure:"inspect" yaml:"inspect"`
	Demo     DemoConfig     `mapstructure:"demo" yaml:"demo"`
}

type OutputConfig struct {
	File string `mapstructure:"file" yaml:"file"`
}

type RecorderConfig struct {
	StopAfter *int64 `mapstructure:"stop_after" yaml:"stop_after,omitempty"` // nil records forever
}

type InspectConfig struct {
	Precision int `mapstructure:"precision" yaml:"precision"`
}

// DemoConfig drives the synthetic processor used by the demo command
type DemoConfig struct {
	SampleRate int     `mapstructure:"sample_rate" yaml:"sample_rate"`
	Frequency  float64 `mapstructure:"frequency" yaml:"frequency"`
	Threshold  float64 `mapstructure:"threshold" yaml:"threshold"`
	Ratio      float64 `mapstructure:"ratio" yaml:"ratio"`
	AttackMs   float64 `mapstructure:"attack_ms" yaml:"attack_ms"`
	ReleaseMs  float64 `mapstructure:"release_ms" yaml:"release_ms"`
}

var defaultConfig = Config{
	Output: OutputConfig{
		File: "samplelog.csv",
	},
	Inspect: InspectConfig{
		Precision: 6,
	},
	Demo: DemoConfig{
		SampleRate: 48000,
		Frequency:  440,
		Threshold:  0.5,
		Ratio:      4,
		AttackMs:   5,
		ReleaseMs:  50,
	},
}

// Default returns a copy of the built-in configuration
func Default() *Config {
	cfg := defaultConfig
	return &cfg
}

// DefaultPath returns the config file used when none is given
func DefaultPath() string {
	return os.ExpandEnv("$HOME/.config/samplelog.yaml")
}

// Load reads configFile on top of the defaults and validates the result.
// Environment variables prefixed with SAMPLELOG override file values.
func Load(configFile string) (*Config, error) {
	if configFile == "" {
		return nil, fmt.Errorf("no config file specified, use --config flag")
	}

	v := newViper()
	v.SetConfigFile(configFile)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", configFile, err)
	}

	return decode(v)
}

// LoadOrDefault behaves like Load but falls back to the defaults, still
// honouring environment overrides, when configFile does not exist.
func LoadOrDefault(configFile string) (*Config, error) {
	if configFile != "" {
		if _, err := os.Stat(configFile); err == nil {
			return Load(configFile)
		}
	}
	return decode(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()

	v.SetDefault("output.file", defaultConfig.Output.File)
	v.SetDefault("inspect.precision", defaultConfig.Inspect.Precision)
	v.SetDefault("demo.sample_rate", defaultConfig.Demo.SampleRate)
	v.SetDefault("demo.frequency", defaultConfig.Demo.Frequency)
	v.SetDefault("demo.threshold", defaultConfig.Demo.Threshold)
	v.SetDefault("demo.ratio", defaultConfig.Demo.Ratio)
	v.SetDefault("demo.attack_ms", defaultConfig.Demo.AttackMs)
	v.SetDefault("demo.release_ms", defaultConfig.Demo.ReleaseMs)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only applies to keys viper already knows about
	_ = v.BindEnv("recorder.stop_after")

	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	cfg.Output.File = expandPath(cfg.Output.File)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks every section and returns the first problem found
func Validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Output.File) == "" {
		return fmt.Errorf("output: 'file' is required")
	}

	if cfg.Recorder.StopAfter != nil && *cfg.Recorder.StopAfter < 0 {
		return fmt.Errorf("recorder: 'stop_after' must be >= 0, got: %d", *cfg.Recorder.StopAfter)
	}

	if cfg.Inspect.Precision < 0 || cfg.Inspect.Precision > 17 {
		return fmt.Errorf("inspect: 'precision' must be between 0 and 17, got: %d", cfg.Inspect.Precision)
	}

	return validateDemo(cfg.Demo)
}

func validateDemo(d DemoConfig) error {
	if d.SampleRate <= 0 {
		return fmt.Errorf("demo: 'sample_rate' must be > 0, got: %d", d.SampleRate)
	}
	if d.Frequency <= 0 || d.Frequency >= float64(d.SampleRate)/2 {
		return fmt.Errorf("demo: 'frequency' must be between 0 and %d (Nyquist), got: %.2f", d.SampleRate/2, d.Frequency)
	}
	if d.Threshold <= 0 {
		return fmt.Errorf("demo: 'threshold' must be > 0, got: %.2f", d.Threshold)
	}
	if d.Ratio < 1 {
		return fmt.Errorf("demo: 'ratio' must be >= 1, got: %.2f", d.Ratio)
	}
	if d.AttackMs < 0 {
		return fmt.Errorf("demo: 'attack_ms' must be >= 0, got: %.2f", d.AttackMs)
	}
	if d.ReleaseMs < 0 {
		return fmt.Errorf("demo: 'release_ms' must be >= 0, got: %.2f", d.ReleaseMs)
	}
	return nil
}

// StopAfter returns the recorder stop threshold, if one is configured
func (c *Config) StopAfter() (uint64, bool) {
	if c.Recorder.StopAfter == nil || *c.Recorder.StopAfter < 0 {
		return 0, false
	}
	return uint64(*c.Recorder.StopAfter), true
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
