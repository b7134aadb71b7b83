// Package config loads the antennacheck CLI's run configuration: the
// ratio margin, the repair diode's master terminal name, the diode
// cap override, and where to write the report and bind the metrics
// server (spec.md §10.2).
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk run configuration.
type Config struct {
	// Margin scales every antenna threshold before comparison. Zero
	// means "use the default of 1.0" (checker.Options.margin).
	Margin float64 `yaml:"margin"`

	// DiodeMTermName names the repair diode's master terminal in the
	// design's cell library. Empty disables diode-count estimation.
	DiodeMTermName string `yaml:"diode_mterm"`

	// MaxDiodeCount overrides the checker's fixed diode cap. Zero
	// means "use the default".
	MaxDiodeCount int `yaml:"max_diode_count"`

	// ReportPath is where the text report is written. Empty means
	// stdout.
	ReportPath string `yaml:"report_path"`

	// MetricsAddr is the address the Prometheus /metrics endpoint
	// binds to. Empty disables the metrics server.
	MetricsAddr string `yaml:"metrics_addr"`

	// LogLevel is passed straight through to pkg/logging.
	LogLevel string `yaml:"log_level"`

	// Parallelism is the number of nets checked concurrently. Zero or
	// one means sequential.
	Parallelism int `yaml:"parallelism"`
}

// Default returns the configuration a bare `antennacheck check` run
// uses when no --config flag is given.
func Default() Config {
	return Config{Margin: 1.0}
}

// Load reads a YAML run configuration from path.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: reading %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}
