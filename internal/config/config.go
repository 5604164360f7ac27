// Package config loads tracker configuration from an HCL file with
// environment variable overrides. Precedence: defaults, then file, then
// environment, then CLI flags (applied by the command layer).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultPath is the config file looked up when none is given.
const DefaultPath = "tablescribe.hcl"

// Config is the root configuration document.
type Config struct {
	Tracker TrackerConfig `hcl:"tracker,block"`
}

// TrackerConfig configures the polling loop and persistence paths.
type TrackerConfig struct {
	BridgeURL           string `hcl:"bridge_url,optional" env:"TABLESCRIBE_BRIDGE_URL"`
	PollIntervalSeconds int    `hcl:"poll_interval_seconds,optional" env:"TABLESCRIBE_POLL_INTERVAL"`
	StorePath           string `hcl:"store_path,optional" env:"TABLESCRIBE_STORE_PATH"`
	ExportPath          string `hcl:"export_path,optional" env:"TABLESCRIBE_EXPORT_PATH"`
	LogLevel            string `hcl:"log_level,optional" env:"TABLESCRIBE_LOG_LEVEL"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Tracker: TrackerConfig{
			BridgeURL:           "ws://127.0.0.1:3636/state",
			PollIntervalSeconds: 5,
			StorePath:           "hands.json",
			ExportPath:          "hands.csv",
			LogLevel:            "info",
		},
	}
}

// Load reads configuration from the HCL file at path, falling back to
// defaults when the file does not exist, then applies environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		parser := hclparse.NewParser()
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			return nil, fmt.Errorf("parse %s: %s", path, diags.Error())
		}

		var parsed Config
		if diags := gohcl.DecodeBody(file.Body, nil, &parsed); diags.HasErrors() {
			return nil, fmt.Errorf("decode %s: %s", path, diags.Error())
		}
		applyFile(&cfg.Tracker, &parsed.Tracker)
	}

	if err := env.Parse(&cfg.Tracker); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.Tracker.PollIntervalSeconds <= 0 {
		return nil, fmt.Errorf("poll_interval_seconds must be positive, got %d", cfg.Tracker.PollIntervalSeconds)
	}
	return cfg, nil
}

// applyFile copies non-zero file values over the defaults.
func applyFile(dst, src *TrackerConfig) {
	if src.BridgeURL != "" {
		dst.BridgeURL = src.BridgeURL
	}
	if src.PollIntervalSeconds != 0 {
		dst.PollIntervalSeconds = src.PollIntervalSeconds
	}
	if src.StorePath != "" {
		dst.StorePath = src.StorePath
	}
	if src.ExportPath != "" {
		dst.ExportPath = src.ExportPath
	}
	if src.LogLevel != "" {
		dst.LogLevel = src.LogLevel
	}
}

// PollInterval returns the polling cadence as a duration.
func (t TrackerConfig) PollInterval() time.Duration {
	return time.Duration(t.PollIntervalSeconds) * time.Second
}
