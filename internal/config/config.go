// Package config loads the svgbox command's defaults from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/kelseyhightower/envconfig"

	"github.com/gogpu/svgbox"
)

// Prefix is the environment variable prefix, as in SVGBOX_FIT.
const Prefix = "SVGBOX"

// Config holds command defaults. Flags override every field.
type Config struct {
	Fit        string  `envconfig:"FIT" default:"original"`
	Padding    float64 `envconfig:"PADDING" default:"0"`
	Square     bool    `envconfig:"SQUARE" default:"false"`
	Background string  `envconfig:"BACKGROUND" default:"transparent"`
	Font       string  `envconfig:"FONT"`
	ImageDir   string  `envconfig:"IMAGE_DIR" default:"."`
	LogLevel   string  `envconfig:"LOG_LEVEL" default:"warn"`
	LogFile    string  `envconfig:"LOG_FILE"`
}

// Load reads Config from SVGBOX_* variables.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(Prefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the fields that have a restricted syntax.
func (c *Config) Validate() error {
	if _, err := svgbox.ParseFitTo(c.Fit); err != nil {
		return fmt.Errorf("config: fit: %w", err)
	}
	if c.Padding < 0 {
		return fmt.Errorf("config: padding %v is negative", c.Padding)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// ParseLevel converts debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", s)
	}
}
