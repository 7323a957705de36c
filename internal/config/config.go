// Package config defines ridequeue configuration and its loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers a YAML file and environment variables over those defaults.
// - Errors surfaced by Load wrap this package's sentinel kinds.
package config

import (
	"context"
)

// Default configuration values.
const (
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
	DefaultExportPath        = "carousel_ride_history.csv"
	DefaultCycleDemoVisitors = 10
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// ExportPath is the CSV file the demo exports to and imports from.
	ExportPath string `koanf:"export_path"`

	// CycleDemoVisitors is how many visitors queue for the cycle demo.
	CycleDemoVisitors int `koanf:"cycle_demo_visitors"`

	// MetricsAddr, when set, serves Prometheus metrics at /metrics, e.g. ":9090".
	MetricsAddr string `koanf:"metrics_addr"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention and is currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          DefaultLogLevel,
		LogFormat:         DefaultLogFormat,
		ExportPath:        DefaultExportPath,
		CycleDemoVisitors: DefaultCycleDemoVisitors,
	}
}
