//Package config loads the simulation defaults from the environment
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"torolife/src/universe"
)

//Config holds the environment-provided defaults, command line flags override them
type Config struct {
	Width    uint32        `env:"TOROLIFE_WIDTH" envDefault:"40"`
	Height   uint32        `env:"TOROLIFE_HEIGHT" envDefault:"15"`
	Interval time.Duration `env:"TOROLIFE_INTERVAL" envDefault:"100ms"`
	MaxSteps int           `env:"TOROLIFE_MAX_STEPS" envDefault:"1000"`
	Seed     int64         `env:"TOROLIFE_SEED"`
	Color    bool          `env:"TOROLIFE_COLOR" envDefault:"true"`
}

//Load parses the configuration from environment variables
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MaxSteps < 0 {
		return Config{}, fmt.Errorf("parse env: TOROLIFE_MAX_STEPS must not be negative, got %d", cfg.MaxSteps)
	}
	return cfg, nil
}

//UniverseOptions converts the configuration to simulation options
func (c Config) UniverseOptions() universe.Options {
	return universe.Options{
		Width:    c.Width,
		Height:   c.Height,
		Interval: c.Interval,
		MaxSteps: c.MaxSteps,
		Seed:     c.Seed,
	}
}
