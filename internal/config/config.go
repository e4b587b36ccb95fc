// Package config handles YAML configuration parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Scenario selectors accepted by the CLI and config file.
const (
	ScenarioSingle = "1"
	ScenarioSplit  = "2"
	ScenarioMulti  = "3"
	ScenarioAll    = "all"
)

// Config holds the immutable parameters of a benchmark invocation.
// CLI flags override file values.
type Config struct {
	// Scenario selects which topology to run: "1", "2", "3" or "all".
	Scenario string `yaml:"scenario"`

	// Duration is the minimum measurement window per scenario.
	Duration time.Duration `yaml:"duration"`

	// Workers sizes the multi-core pool; 0 means one per core.
	Workers int `yaml:"workers"`

	// ChanCap bounds the split-role channel; 0 is an unbuffered
	// handoff, a negative value selects the default capacity.
	ChanCap int `yaml:"chanCap"`

	// Rate caps cycle starts per second; 0 means unlimited.
	Rate int `yaml:"rate"`

	// Output is "text" or "json".
	Output string `yaml:"output"`

	// Baseline is an optional path to a previous JSON report to
	// compare rates against.
	Baseline string `yaml:"baseline"`

	Quiet bool `yaml:"quiet"`
}

// Default returns the parameters of a plain uncapped benchmark run of
// all three scenarios.
func Default() Config {
	return Config{
		Scenario: ScenarioAll,
		Duration: 5 * time.Second,
		ChanCap:  -1,
		Output:   "text",
	}
}

// Load reads and parses a YAML configuration file, applying defaults
// for absent fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects parameter combinations no run can honor.
func (c *Config) Validate() error {
	switch c.Scenario {
	case ScenarioSingle, ScenarioSplit, ScenarioMulti, ScenarioAll:
	default:
		return fmt.Errorf("scenario must be 1, 2, 3 or all, got %q", c.Scenario)
	}
	if c.Duration < 0 {
		return fmt.Errorf("duration must be >= 0, got %v", c.Duration)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	if c.Rate < 0 {
		return fmt.Errorf("rate must be >= 0, got %d", c.Rate)
	}
	if c.Output != "text" && c.Output != "json" {
		return fmt.Errorf("output must be text or json, got %q", c.Output)
	}
	return nil
}
