package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/tablescribe/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "ws://127.0.0.1:3636/state", cfg.Tracker.BridgeURL)
	assert.Equal(t, 5*time.Second, cfg.Tracker.PollInterval())
	assert.Equal(t, "hands.json", cfg.Tracker.StorePath)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablescribe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
tracker {
  bridge_url            = "ws://10.0.0.5:4000/state"
  poll_interval_seconds = 2
  store_path            = "/var/lib/tablescribe/hands.json"
}
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://10.0.0.5:4000/state", cfg.Tracker.BridgeURL)
	assert.Equal(t, 2*time.Second, cfg.Tracker.PollInterval())
	assert.Equal(t, "/var/lib/tablescribe/hands.json", cfg.Tracker.StorePath)
	// Unset keys keep their defaults.
	assert.Equal(t, "hands.csv", cfg.Tracker.ExportPath)
	assert.Equal(t, "info", cfg.Tracker.LogLevel)
}

func TestLoadInvalidHCL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablescribe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`tracker { bridge_url = `), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablescribe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
tracker {
  bridge_url = "ws://file-wins:4000/state"
}
`), 0o644))

	t.Setenv("TABLESCRIBE_BRIDGE_URL", "ws://env-wins:4000/state")
	t.Setenv("TABLESCRIBE_POLL_INTERVAL", "3")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "ws://env-wins:4000/state", cfg.Tracker.BridgeURL)
	assert.Equal(t, 3*time.Second, cfg.Tracker.PollInterval())
}

func TestLoadRejectsNonPositiveInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tablescribe.hcl")
	require.NoError(t, os.WriteFile(path, []byte(`
tracker {
  poll_interval_seconds = -1
}
`), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}
