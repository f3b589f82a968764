// Package ui provides the terminal touchpad and dashboard.
package ui

import "github.com/charmbracelet/lipgloss"

// Colors defines the color scheme used throughout the application
type Colors struct {
	Subtle    lipgloss.AdaptiveColor
	Highlight lipgloss.AdaptiveColor
	Special   lipgloss.AdaptiveColor
	Error     lipgloss.AdaptiveColor
	Engaged   lipgloss.AdaptiveColor
	Pointer   lipgloss.AdaptiveColor
}

var defaultColors = Colors{
	Subtle:    lipgloss.AdaptiveColor{Light: "#666666", Dark: "#999999"},
	Highlight: lipgloss.AdaptiveColor{Light: "#874BFD", Dark: "#7D56F4"},
	Special:   lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"},
	Error:     lipgloss.AdaptiveColor{Light: "#FF0000", Dark: "#FF4040"},
	Engaged:   lipgloss.AdaptiveColor{Light: "#0D6EFD", Dark: "#0D6EFD"},
	Pointer:   lipgloss.AdaptiveColor{Light: "#333333", Dark: "#FFFFFF"},
}

// Style represents a collection of styles used in the application
type Style struct {
	Title     lipgloss.Style
	Label     lipgloss.Style
	Value     lipgloss.Style
	PadBorder lipgloss.Style
	PadOff    lipgloss.Style
	Pointer   lipgloss.Style
	Engaged   lipgloss.Style
	Button    lipgloss.Style
	Active    lipgloss.Style
	Success   lipgloss.Style
	Help      lipgloss.Style
	Error     lipgloss.Style
	Countdown lipgloss.Style
}

// DefaultStyle returns the default style configuration. Styles used inside
// the pad and controls rows carry no padding so cell columns stay exact.
func DefaultStyle() Style {
	base := lipgloss.NewStyle().
		PaddingLeft(1).
		PaddingRight(1)
	flat := lipgloss.NewStyle()

	return Style{
		Title: base.Copy().
			Bold(true).
			Foreground(defaultColors.Highlight),

		Label: flat.Copy().
			Foreground(defaultColors.Subtle),

		Value: flat.Copy(),

		PadBorder: flat.Copy().
			Foreground(defaultColors.Highlight),

		PadOff: flat.Copy().
			Foreground(defaultColors.Subtle),

		Pointer: flat.Copy().
			Background(defaultColors.Pointer),

		Engaged: flat.Copy().
			Background(defaultColors.Engaged),

		Button: flat.Copy().
			Foreground(defaultColors.Highlight),

		Active: flat.Copy().
			Bold(true).
			Reverse(true).
			Foreground(defaultColors.Highlight),

		Success: base.Copy().
			Foreground(defaultColors.Special),

		Help: base.Copy().
			Foreground(defaultColors.Subtle),

		Error: base.Copy().
			Foreground(defaultColors.Error),

		Countdown: flat.Copy().
			Foreground(defaultColors.Highlight).
			Bold(true),
	}
}

// Current holds the current style configuration
var Current = DefaultStyle()
