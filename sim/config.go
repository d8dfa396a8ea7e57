package sim

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the demo and simulation configuration. All fields have
// working defaults; a config file only needs to name what it changes.
type Config struct {
	// Target size in pixels.
	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Fixed simulation timestep in milliseconds.
	TimestepMS int `yaml:"timestep_ms"`

	// Gravity in NDC units per second squared.
	Gravity [2]float64 `yaml:"gravity"`
	// Per-step velocity multiplier (1 = no air resistance).
	AirDamping float64 `yaml:"air_damping"`
	// Collision resolution passes per step.
	Iterations int `yaml:"iterations"`
	// Speed below which bodies are put to sleep.
	SleepSpeed float64 `yaml:"sleep_speed"`
	// Restitution of spawned balls, in [0, 1].
	Restitution float64 `yaml:"restitution"`

	// Number of balls the demo scene spawns.
	Balls int `yaml:"balls"`
	// Seed for the demo scene's randomness; 0 picks one.
	Seed int64 `yaml:"seed"`
}

func DefaultConfig() Config {
	return Config{
		Width:       800,
		Height:      800,
		TimestepMS:  8, // 125 Hz
		Gravity:     [2]float64{0, -0.5},
		AirDamping:  0.98,
		Iterations:  4,
		SleepSpeed:  0.001,
		Restitution: 0.8,
		Balls:       12,
	}
}

func (cfg *Config) Timestep() time.Duration {
	return time.Duration(cfg.TimestepMS) * time.Millisecond
}

// LoadConfig reads a yaml config file, applying its values on top of the
// defaults. A missing path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (cfg *Config) validate() error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("target size %dx%d isn't positive", cfg.Width, cfg.Height)
	}
	if cfg.TimestepMS <= 0 {
		return fmt.Errorf("timestep %dms isn't positive", cfg.TimestepMS)
	}
	if cfg.Iterations <= 0 {
		return fmt.Errorf("iteration count %d isn't positive", cfg.Iterations)
	}
	return nil
}
