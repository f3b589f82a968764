package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/stigoleg/jigglepad/internal/config"
)

// gen-docs writes shell completions, a man page and an example config file
// for jigglepad. Run it from the repository root.

const (
	appName        = "jigglepad"
	appDescription = "A terminal touchpad and status panel for a network mouse jiggler."
)

type flagDef struct {
	Names []string
	Arg   string
	Desc  string
}

var flags = []flagDef{
	{Names: []string{"-config"}, Arg: "<path>", Desc: "Path to the config file"},
	{Names: []string{"-url"}, Arg: "<url>", Desc: "Device base URL (e.g., \"http://192.168.4.1\")"},
	{Names: []string{"-user"}, Arg: "<name>", Desc: "Device username"},
	{Names: []string{"-password"}, Arg: "<string>", Desc: "Device password (or set " + config.PasswordEnv + ")"},
	{Names: []string{"-s", "-sensitivity"}, Arg: "<1-10>", Desc: "Touchpad sensitivity"},
	{Names: []string{"-disabled"}, Desc: "Start with the touchpad disabled"},
	{Names: []string{"-poll"}, Arg: "<duration>", Desc: "Status poll interval (e.g., \"5s\" or \"5\")"},
	{Names: []string{"-timeout"}, Arg: "<duration>", Desc: "Request timeout (e.g., \"3s\")"},
	{Names: []string{"-log"}, Arg: "<path>", Desc: "Debug log file"},
	{Names: []string{"-log-level"}, Arg: "<level>", Desc: "Log level: debug, info, warn, error, disable"},
	{Names: []string{"-v", "-version"}, Desc: "Show version information"},
	{Names: []string{"-h", "-help"}, Desc: "Show help message"},
}

func main() {
	steps := []struct {
		name string
		fn   func() error
	}{
		{"completions", writeCompletions},
		{"man page", writeMan},
		{"example config", writeExampleConfig},
	}
	for _, s := range steps {
		if err := s.fn(); err != nil {
			fmt.Fprintf(os.Stderr, "gen-docs: %s: %v\n", s.name, err)
			os.Exit(1)
		}
	}
}

func allNames() []string {
	var names []string
	for _, f := range flags {
		names = append(names, f.Names...)
	}
	return names
}

func writeCompletions() error {
	base := filepath.Join("docs", "completions")
	if err := os.MkdirAll(base, 0o755); err != nil {
		return err
	}

	var bash strings.Builder
	fmt.Fprintf(&bash, "_%s() {\n", appName)
	bash.WriteString("  local cur=\"${COMP_WORDS[COMP_CWORD]}\"\n")
	fmt.Fprintf(&bash, "  if [[ ${cur} == -* ]] ; then\n    COMPREPLY=( $(compgen -W \"%s\" -- ${cur}) )\n  fi\n", strings.Join(allNames(), " "))
	bash.WriteString("}\n")
	fmt.Fprintf(&bash, "complete -F _%s %s\n", appName, appName)

	var zsh strings.Builder
	fmt.Fprintf(&zsh, "#compdef %s\n_arguments", appName)
	for _, f := range flags {
		for _, n := range f.Names {
			form := n
			if f.Arg != "" {
				form += "=:value:" + strings.Trim(f.Arg, "<>")
			}
			fmt.Fprintf(&zsh, " \\\n  '%s[%s]'", form, strings.ReplaceAll(f.Desc, "'", ""))
		}
	}
	zsh.WriteString("\n")

	var fish strings.Builder
	fmt.Fprintf(&fish, "complete -c %s -f\n", appName)
	for _, f := range flags {
		for _, n := range f.Names {
			// fish spells Go's single-dash long flags with -o.
			opt := "-o " + strings.TrimPrefix(n, "-")
			if len(n) == 2 {
				opt = "-s " + strings.TrimPrefix(n, "-")
			}
			mode := "-f"
			if f.Arg != "" {
				mode = "-r"
			}
			fmt.Fprintf(&fish, "complete -c %s %s %s -d \"%s\"\n", appName, opt, mode, strings.ReplaceAll(f.Desc, "\"", "\\\""))
		}
	}

	files := map[string]string{
		appName + ".bash": bash.String(),
		"_" + appName:     zsh.String(),
		appName + ".fish": fish.String(),
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(base, name), []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func writeMan() error {
	if err := os.MkdirAll("man", 0o755); err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, ".TH \"%s\" \"1\" \"\" \"%s\" \"User Commands\"\n", strings.ToUpper(appName), appName)
	fmt.Fprintf(&b, ".SH NAME\n%s \\- %s\n", appName, appDescription)
	fmt.Fprintf(&b, ".SH SYNOPSIS\n.B %s\n[\\fIflags\\fR]\n", appName)
	fmt.Fprintf(&b, ".SH DESCRIPTION\n%s\n", appDescription)
	b.WriteString("Mouse input inside the pad is sent to the device as relative pointer motion. " +
		"Alt or Ctrl while pressing drags with the left button held.\n")

	b.WriteString(".SH OPTIONS\n")
	for _, f := range flags {
		names := strings.ReplaceAll(strings.Join(f.Names, ", "), "-", "\\-")
		if f.Arg != "" {
			names += " " + f.Arg
		}
		fmt.Fprintf(&b, ".TP\n\\fB%s\\fR\n%s\n", names, f.Desc)
	}

	b.WriteString(".SH FILES\n")
	fmt.Fprintf(&b, ".TP\n\\fI$XDG_CONFIG_HOME/%s/config.toml\\fR\nSettings file, created with defaults on first run. Flags override it.\n", appName)

	b.WriteString(".SH EXAMPLES\n")
	fmt.Fprintf(&b, ".TP\n\\fB%s\\fR\nStart with the settings from the config file.\n", appName)
	fmt.Fprintf(&b, ".TP\n\\fB%s \\-url http://10.0.0.7 \\-s 7\\fR\nControl another device with a faster pointer.\n", appName)
	fmt.Fprintf(&b, ".TP\n\\fB%s-sim \\-addr 127.0.0.1:8080\\fR\nRun the device simulator.\n", appName)

	return os.WriteFile(filepath.Join("man", appName+".1"), []byte(b.String()), 0o644)
}

func writeExampleConfig() error {
	if err := os.MkdirAll("docs", 0o755); err != nil {
		return err
	}
	return config.Save(filepath.Join("docs", "config.example.toml"), config.Default())
}
