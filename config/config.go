package config

import (
	"fmt"
	"strings"

	env "github.com/caarlos0/env/v11"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "FIXBOND_"

// Config holds runtime settings for the bondflows tooling.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL"`

	// LogFormat selects the slog handler: text or json.
	LogFormat string `env:"LOG_FORMAT"`

	// Concurrency bounds how many bonds a batch constructs at once.
	Concurrency int `env:"CONCURRENCY"`

	// MinorUnitPlaces is the number of decimal places in the currency's
	// minor unit (2 for EUR/USD cents, 0 for JPY/KRW).
	MinorUnitPlaces int32 `env:"MINOR_UNIT_PLACES"`
}

// DefaultConfig provides the values used when no environment overrides are set.
var DefaultConfig = Config{
	LogLevel:        "info",
	LogFormat:       "text",
	Concurrency:     4,
	MinorUnitPlaces: 2,
}

// Load parses FIXBOND_* environment variables over DefaultConfig.
func Load() (Config, error) {
	c := DefaultConfig
	if err := env.ParseWithOptions(&c, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("config.Load: %w", err)
	}
	return c, nil
}

// Validate checks the ranges of every field.
func (c Config) Validate() error {
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be text or json, got %q", c.LogFormat)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("CONCURRENCY must be at least 1, got %d", c.Concurrency)
	}
	if c.MinorUnitPlaces < 0 || c.MinorUnitPlaces > 8 {
		return fmt.Errorf("MINOR_UNIT_PLACES must be within [0, 8], got %d", c.MinorUnitPlaces)
	}
	return nil
}
