package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sigbench.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
scenario: "2"
duration: 10s
workers: 8
chanCap: 512
rate: 1000
output: json
quiet: true
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Scenario != ScenarioSplit {
		t.Errorf("expected scenario 2, got %q", cfg.Scenario)
	}
	if cfg.Duration != 10*time.Second {
		t.Errorf("expected duration 10s, got %v", cfg.Duration)
	}
	if cfg.Workers != 8 || cfg.ChanCap != 512 || cfg.Rate != 1000 {
		t.Errorf("unexpected values: %+v", cfg)
	}
	if cfg.Output != "json" || !cfg.Quiet {
		t.Errorf("unexpected output settings: %+v", cfg)
	}
}

func TestLoad_DefaultsForAbsentFields(t *testing.T) {
	path := writeConfig(t, `scenario: "3"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Duration != 5*time.Second {
		t.Errorf("expected default duration 5s, got %v", cfg.Duration)
	}
	if cfg.Output != "text" {
		t.Errorf("expected default output text, got %q", cfg.Output)
	}
	if cfg.ChanCap != -1 {
		t.Errorf("expected default channel capacity sentinel, got %d", cfg.ChanCap)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := writeConfig(t, "scenario: [unclosed")
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"bad scenario", func(c *Config) { c.Scenario = "4" }, true},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }, true},
		{"negative workers", func(c *Config) { c.Workers = -1 }, true},
		{"negative rate", func(c *Config) { c.Rate = -1 }, true},
		{"bad output", func(c *Config) { c.Output = "xml" }, true},
		{"zero duration allowed", func(c *Config) { c.Duration = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("expected validation error")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected validation error: %v", err)
			}
		})
	}
}
