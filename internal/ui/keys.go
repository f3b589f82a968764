package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines key bindings for the touchpad screen and help overlay.
type KeyMap struct {
	// Common
	Quit       key.Binding
	ToggleHelp key.Binding

	// Touchpad
	ToggleTouchpad  key.Binding
	SensitivityUp   key.Binding
	SensitivityDown key.Binding

	// Device
	TestMove key.Binding
	Refresh  key.Binding
}

// DefaultKeys returns the default key bindings for the application.
func DefaultKeys() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		ToggleHelp: key.NewBinding(
			key.WithKeys("h", "?"),
			key.WithHelp("h/?", "toggle help"),
		),
		ToggleTouchpad: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "touchpad on/off"),
		),
		SensitivityUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "sensitivity up"),
		),
		SensitivityDown: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "sensitivity down"),
		),
		TestMove: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "test movement"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh status"),
		),
	}
}

// NewHelpModel returns a configured help model.
func NewHelpModel() help.Model {
	h := help.New()
	h.ShowAll = false
	return h
}

// stateKeyMap adapts bindings to the current UI state for contextual help.
type stateKeyMap struct {
	keys  KeyMap
	state state
}

// ForState returns a contextual key map implementing help.KeyMap for the given state.
func (k KeyMap) ForState(s state) help.KeyMap {
	return stateKeyMap{keys: k, state: s}
}

// ShortHelp implements help.KeyMap for contextual help (compact).
func (s stateKeyMap) ShortHelp() []key.Binding {
	switch s.state {
	case stateTouchpad:
		return []key.Binding{s.keys.ToggleTouchpad, s.keys.SensitivityUp, s.keys.SensitivityDown, s.keys.TestMove, s.keys.ToggleHelp, s.keys.Quit}
	default:
		return []key.Binding{s.keys.ToggleHelp, s.keys.Quit}
	}
}

// FullHelp implements help.KeyMap for contextual help (expanded).
func (s stateKeyMap) FullHelp() [][]key.Binding {
	switch s.state {
	case stateTouchpad:
		return [][]key.Binding{
			{s.keys.ToggleTouchpad, s.keys.SensitivityUp, s.keys.SensitivityDown},
			{s.keys.TestMove, s.keys.Refresh},
			{s.keys.ToggleHelp, s.keys.Quit},
		}
	default:
		return [][]key.Binding{{s.keys.ToggleHelp, s.keys.Quit}}
	}
}
