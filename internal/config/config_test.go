package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
device_url = "http://jiggler.local"
password = "hunter2"
sensitivity = 8
touchpad_enabled = false
poll_interval = "10"
request_timeout = "1500ms"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://jiggler.local", cfg.DeviceURL)
	assert.Equal(t, "admin", cfg.Username, "unset keys keep their default")
	assert.Equal(t, "hunter2", cfg.Password)
	assert.Equal(t, 8, cfg.Sensitivity)
	assert.False(t, cfg.TouchpadEnabled)
	assert.Equal(t, 10*time.Second, cfg.PollInterval.Duration)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout.Duration)
}

func TestLoadRejectsBadInterval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`poll_interval = "soon"`), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	want := Default()
	want.DeviceURL = "https://10.0.0.7"
	want.Sensitivity = 3
	want.PollInterval = Duration{30 * time.Second}

	require.NoError(t, Save(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestInitIfMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	written, err := InitIfMissing(path)
	require.NoError(t, err)
	assert.True(t, written)

	written, err = InitIfMissing(path)
	require.NoError(t, err)
	assert.False(t, written)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing scheme", func(c *Config) { c.DeviceURL = "192.168.4.1" }},
		{"unsupported scheme", func(c *Config) { c.DeviceURL = "ftp://device" }},
		{"sensitivity too low", func(c *Config) { c.Sensitivity = 0 }},
		{"sensitivity too high", func(c *Config) { c.Sensitivity = 11 }},
		{"zero cell", func(c *Config) { c.CellWidth = 0 }},
		{"unknown log level", func(c *Config) { c.LogLevel = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
