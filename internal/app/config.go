package app

import (
	"fmt"
	"slices"
	"strings"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	LogFormat string // text or json
	LogLevel  string // debug, info, warn or error

	// Strict makes discovery problems in the built-in modules fatal.
	Strict bool
}

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json"}
)

// NewConfig normalizes and validates cfg. Empty fields take their defaults.
func NewConfig(cfg Config) (*Config, error) {
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	cfg.LogFormat = strings.ToLower(strings.TrimSpace(cfg.LogFormat))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if !slices.Contains(validLevels, cfg.LogLevel) {
		return nil, fmt.Errorf("invalid log level '%s', expected one of %s", cfg.LogLevel, strings.Join(validLevels, ", "))
	}
	if !slices.Contains(validFormats, cfg.LogFormat) {
		return nil, fmt.Errorf("invalid log format '%s', expected one of %s", cfg.LogFormat, strings.Join(validFormats, ", "))
	}
	return &cfg, nil
}
