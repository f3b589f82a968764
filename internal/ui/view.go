package ui

import (
	"fmt"
	"strings"

	"github.com/stigoleg/jigglepad/internal/monitor"
	"github.com/stigoleg/jigglepad/internal/touchpad"
)

// recentActivity is how many activity entries the dashboard shows.
const recentActivity = 3

// View renders the current state of the model to a string.
func View(m Model) string {
	if m.ShowHelp || m.State == stateHelp {
		return helpView(m)
	}
	return touchpadView(m)
}

func touchpadView(m Model) string {
	var b strings.Builder

	title := "Jigglepad"
	if m.version != "" {
		title += " " + m.version
	}
	b.WriteString(Current.Title.Render(title))
	b.WriteString("\n\n")

	b.WriteString(padView(m))
	b.WriteString(controlsView(m))
	b.WriteString("\n\n")

	b.WriteString(dashboardView(m))

	b.WriteString("\n")
	switch {
	case m.status.text == "":
		b.WriteString("\n")
	case m.status.ok:
		b.WriteString(Current.Success.Render(m.status.text) + "\n")
	default:
		b.WriteString(Current.Error.Render(m.status.text) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys.ForState(m.State)))
	return b.String()
}

// padView draws the bordered pad. Each interior cell is one column so the
// layout's hit testing matches what is on screen.
func padView(m Model) string {
	l := m.layout
	var b strings.Builder

	b.WriteString(Current.PadBorder.Render("╭"+strings.Repeat("─", l.padW)+"╮") + "\n")

	ind := m.pad.Indicator()
	col, row := -1, -1
	if ind.Visible && m.pad.Enabled() {
		col, row = l.indicatorCell(ind.Position, m.cellW, m.cellH)
	}

	side := Current.PadBorder.Render("│")
	for y := 0; y < l.padH; y++ {
		b.WriteString(side)
		switch {
		case !m.pad.Enabled() && y == l.padH/2:
			b.WriteString(Current.PadOff.Render(centre("Touchpad disabled (t to enable)", l.padW)))
		case y == row:
			b.WriteString(strings.Repeat(" ", col))
			cursor := Current.Pointer
			if ind.Engaged {
				cursor = Current.Engaged
			}
			b.WriteString(cursor.Render(" "))
			b.WriteString(strings.Repeat(" ", l.padW-col-1))
		default:
			b.WriteString(strings.Repeat(" ", l.padW))
		}
		b.WriteString(side + "\n")
	}

	b.WriteString(Current.PadBorder.Render("╰"+strings.Repeat("─", l.padW)+"╯") + "\n")
	return b.String()
}

func controlsView(m Model) string {
	var b strings.Builder
	x := 0
	for _, c := range m.layout.controls {
		b.WriteString(strings.Repeat(" ", c.x0-x))
		style := Current.Button
		if c.zone == m.pressed {
			style = Current.Active
		}
		b.WriteString(style.Render(c.label))
		x = c.x1
	}
	return b.String()
}

func dashboardView(m Model) string {
	var b strings.Builder
	row := func(label, value string) {
		b.WriteString(Current.Label.Render(fmt.Sprintf(" %-13s", label)))
		b.WriteString(value + "\n")
	}

	snap := m.snapshot
	row("Device:", fmt.Sprintf("%s (%s)", m.deviceURL, health(snap)))

	jiggler := "Checking status..."
	if snap.Valid() {
		jiggler = "Disabled"
		if snap.Status.JigglerEnabled {
			jiggler = "Enabled"
		}
		if snap.Status.InAPMode {
			jiggler += " (AP mode)"
		}
	}
	row("Jiggler:", Current.Value.Render(jiggler))
	row("Last move:", Current.Value.Render(monitor.LastMovement(snap)))

	next := monitor.Countdown(snap, m.now())
	if m.refreshing {
		next = "Refreshing..."
	}
	row("Next move:", Current.Countdown.Render(next))

	pattern := "-"
	if m.deviceConfig != nil {
		pattern = fmt.Sprintf("%s, size %d, every %ds",
			m.deviceConfig.Pattern(), m.deviceConfig.Size(), m.deviceConfig.MoveInterval)
	}
	row("Pattern:", Current.Value.Render(pattern))
	row("Sensitivity:", Current.Value.Render(fmt.Sprintf("%d/%d", m.pad.Sensitivity(), touchpad.MaxSensitivity)))

	b.WriteString("\n" + Current.Label.Render(" Recent activity") + "\n")
	for _, e := range m.Activity.Entries(recentActivity) {
		b.WriteString(" " + Current.Value.Render(e.String()) + "\n")
	}
	return b.String()
}

func health(snap monitor.Snapshot) monitor.Health {
	switch {
	case snap.Err != nil:
		return monitor.HealthFailed
	case snap.Valid():
		return monitor.HealthOK
	default:
		return monitor.HealthUnknown
	}
}

func centre(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	left := (width - len(s)) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-len(s)-left)
}

// HelpText returns the command line usage.
func HelpText() string {
	return `Jigglepad - terminal touchpad for a network mouse jiggler

Usage:
  jigglepad [flags]

Flags:
  -config string      Path to the config file
  -url string         Device base URL (e.g., "http://192.168.4.1")
  -user string        Device username
  -password string    Device password (or set JIGGLEPAD_PASSWORD)
  -s, -sensitivity n  Touchpad sensitivity, 1-10
  -disabled           Start with the touchpad disabled
  -poll duration      Status poll interval (e.g., "5s" or "5")
  -timeout duration   Request timeout (e.g., "3s")
  -log string         Debug log file
  -log-level string   Log level: debug, info, warn, error, disable
  -v, -version        Show version information
  -h, -help           Show help message

Examples:
  jigglepad                              # Use the config file
  jigglepad -url http://10.0.0.7 -s 7    # Other device, faster pointer
  jigglepad -poll 10s                    # Poll status every 10 seconds
`
}

func helpView(m Model) string {
	help := HelpText() + `
Touchpad:
  Drag in the pad       : Move the remote pointer
  Alt/Ctrl + drag       : Drag with the left button held
  Right click in pad    : Right click
  Wheel in pad          : Scroll
  [ Left ] [ Right ]    : Hold or click the remote buttons
  [ Scroll Up/Down ]    : Hold to scroll continuously

Press 'h' or 'Esc' to close help`

	return Current.Help.Render(help) + "\n\n" + m.help.View(m.keys.ForState(m.State))
}
