// Package config loads the driver's CLI-edge settings — logging and
// tracing/metrics output, nothing about the matching engine itself,
// which takes no configuration of its own.
package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds settings for cmd/bookctl. cmd/bench does not use it; it
// takes command-line flags.
type Config struct {
	LogLevel  string
	LogFormat string // "json" or "pretty"

	// MetricsInterval is how often accumulated OpenTelemetry metrics
	// are flushed to their writer.
	MetricsInterval time.Duration
	// TraceOutput, when non-empty, is a file path spans and metrics
	// are appended to instead of being discarded.
	TraceOutput string
}

// LoadConfig loads configuration from environment variables, falling
// back to defaults suited to interactive use.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "pretty")
	v.SetDefault("METRICS_INTERVAL_SECONDS", 5)
	v.SetDefault("TRACE_OUTPUT", "")

	v.AutomaticEnv()

	cfg := &Config{
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogFormat:       v.GetString("LOG_FORMAT"),
		MetricsInterval: time.Duration(v.GetInt("METRICS_INTERVAL_SECONDS")) * time.Second,
		TraceOutput:     v.GetString("TRACE_OUTPUT"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "json", "pretty":
	default:
		return fmt.Errorf("LOG_FORMAT must be json or pretty, got %q", cfg.LogFormat)
	}

	if cfg.MetricsInterval <= 0 {
		return fmt.Errorf("METRICS_INTERVAL_SECONDS must be positive")
	}

	return nil
}
