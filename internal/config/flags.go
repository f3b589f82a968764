package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/stigoleg/jigglepad/internal/ui"
	"github.com/stigoleg/jigglepad/internal/util"
)

// PasswordEnv overrides the configured password when set.
const PasswordEnv = "JIGGLEPAD_PASSWORD"

func formatError(err error) string {
	msg := err.Error()
	if strings.Contains(msg, "invalid interval:") {
		parts := strings.SplitN(msg, "\n\n", 2)
		if len(parts) == 2 {
			errorBox := ui.Current.Help.Copy().
				BorderForeground(lipgloss.Color("#FF4040"))

			header := lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("#FF4040")).
				Render(parts[0])

			details := lipgloss.NewStyle().
				Foreground(lipgloss.Color("#999999")).
				Render(parts[1])

			return errorBox.Render(fmt.Sprintf("%s\n\n%s", header, details))
		}
	}
	return ui.Current.Error.Render(msg)
}

// Parse builds the configuration from the config file named by -config (or
// the default path) with flags layered on top.
func Parse(args []string) (*Config, error) {
	flags := flag.NewFlagSet("jigglepad", flag.ContinueOnError)
	flags.Usage = func() {
		fmt.Print(ui.HelpText())
	}

	configPath := flags.String("config", Path(), "Path to the config file")
	deviceURL := flags.String("url", "", "Device base URL (e.g., \"http://192.168.4.1\")")
	username := flags.String("user", "", "Device username")
	password := flags.String("password", "", "Device password (or set "+PasswordEnv+")")
	sensitivity := flags.Int("sensitivity", 0, "Touchpad sensitivity, 1-10")
	flags.IntVar(sensitivity, "s", 0, "Touchpad sensitivity, 1-10")
	disabled := flags.Bool("disabled", false, "Start with the touchpad disabled")
	poll := flags.String("poll", "", "Status poll interval (e.g., \"5s\" or \"5\")")
	timeout := flags.String("timeout", "", "Request timeout (e.g., \"3s\")")
	logFile := flags.String("log", "", "Debug log file")
	logLevel := flags.String("log-level", "", "Log level: debug, info, warn, error, disable")
	showVersion := flags.Bool("version", false, "Show version information")
	flags.BoolVar(showVersion, "v", false, "Show version information")

	if err := flags.Parse(args); err != nil {
		return nil, err
	}

	cfg, err := Load(*configPath)
	if err != nil {
		return nil, err
	}

	set := map[string]bool{}
	flags.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["url"] {
		cfg.DeviceURL = *deviceURL
	}
	if set["user"] {
		cfg.Username = *username
	}
	if set["password"] {
		cfg.Password = *password
	} else if env := os.Getenv(PasswordEnv); env != "" {
		cfg.Password = env
	}
	if set["sensitivity"] || set["s"] {
		cfg.Sensitivity = *sensitivity
	}
	if set["disabled"] {
		cfg.TouchpadEnabled = !*disabled
	}
	if set["poll"] {
		d, err := util.ParseInterval(*poll)
		if err != nil {
			return nil, err
		}
		cfg.PollInterval.Duration = d
	}
	if set["timeout"] {
		d, err := util.ParseInterval(*timeout)
		if err != nil {
			return nil, err
		}
		cfg.RequestTimeout.Duration = d
	}
	if set["log"] {
		cfg.LogFile = *logFile
	}
	if set["log-level"] {
		cfg.LogLevel = *logLevel
	}
	cfg.ShowVersion = *showVersion

	if cfg.ShowVersion {
		return &cfg, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseFlags parses os.Args, printing help, version or a styled error and
// exiting where appropriate.
func ParseFlags(version string) *Config {
	cfg, err := Parse(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		fmt.Println(formatError(err))
		os.Exit(1)
	}

	if cfg.ShowVersion {
		fmt.Printf("jigglepad version: %s\n", version)
		os.Exit(0)
	}
	return cfg
}
