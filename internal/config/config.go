// Package config loads jigglepad settings from the config file and flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stigoleg/jigglepad/internal/util"
)

const (
	appDir   = "jigglepad"
	fileName = "config.toml"
)

// Duration is a time.Duration stored as text ("5s", or plain seconds).
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := util.ParseInterval(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config holds every setting of the client.
type Config struct {
	// DeviceURL is the base URL of the appliance, e.g. "http://192.168.4.1".
	DeviceURL string `toml:"device_url"`
	Username  string `toml:"username"`
	Password  string `toml:"password"`

	// Sensitivity is the touchpad sensitivity level, 1-10.
	Sensitivity int `toml:"sensitivity"`
	// TouchpadEnabled is the master toggle at startup.
	TouchpadEnabled bool `toml:"touchpad_enabled"`

	PollInterval   Duration `toml:"poll_interval"`
	RequestTimeout Duration `toml:"request_timeout"`

	// CellWidth and CellHeight are the pixel size assumed for one terminal
	// cell when turning mouse cells into touchpad pixels.
	CellWidth  int `toml:"cell_width_px"`
	CellHeight int `toml:"cell_height_px"`

	LogFile  string `toml:"log_file"`
	LogLevel string `toml:"log_level"`

	ShowVersion bool `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		DeviceURL:       "http://192.168.4.1",
		Username:        "admin",
		Sensitivity:     5,
		TouchpadEnabled: true,
		PollInterval:    Duration{5 * time.Second},
		RequestTimeout:  Duration{5 * time.Second},
		CellWidth:       8,
		CellHeight:      16,
		LogFile:         "debug.log",
		LogLevel:        "info",
	}
}

// Dir returns the per-user configuration directory.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		if d, err := os.UserConfigDir(); err == nil {
			base = d
		} else {
			base = filepath.Join(os.Getenv("HOME"), ".config")
		}
	}
	return filepath.Join(base, appDir)
}

// Path returns the default config file path.
func Path() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the file at path over the defaults. A missing file is not an
// error.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg to path, creating the directory if needed.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	// The file may hold the device password.
	return os.WriteFile(path, buf.Bytes(), 0o600)
}

// InitIfMissing writes the defaults to path unless a file already exists. It
// reports whether a file was written.
func InitIfMissing(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return false, err
	}
	return true, Save(path, Default())
}

var logLevels = []string{"disable", "fatal", "error", "warn", "info", "debug"}

// Validate checks the settings for values the client cannot work with.
func (c Config) Validate() error {
	u, err := url.Parse(c.DeviceURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid device url: %q", c.DeviceURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid device url: %q (scheme must be http or https)", c.DeviceURL)
	}
	if c.Sensitivity < 1 || c.Sensitivity > 10 {
		return fmt.Errorf("sensitivity must be between 1 and 10, got %d", c.Sensitivity)
	}
	if c.PollInterval.Duration <= 0 || c.RequestTimeout.Duration <= 0 {
		return errors.New("poll interval and request timeout must be positive")
	}
	if c.CellWidth <= 0 || c.CellHeight <= 0 {
		return errors.New("cell pixel size must be positive")
	}
	level := strings.ToLower(c.LogLevel)
	for _, l := range logLevels {
		if l == level {
			return nil
		}
	}
	return fmt.Errorf("unknown log level %q (want one of %s)", c.LogLevel, strings.Join(logLevels, ", "))
}
