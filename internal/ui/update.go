package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stigoleg/jigglepad/internal/device"
	"github.com/stigoleg/jigglepad/internal/monitor"
	"github.com/stigoleg/jigglepad/internal/touchpad"
)

// RefreshDelay is the pause between a test movement and the status refresh
// that picks it up.
const RefreshDelay = time.Second

// tickMsg is sent when the countdown timer ticks
type tickMsg time.Time

// SnapshotMsg delivers a new status poll result.
type SnapshotMsg struct {
	Snapshot monitor.Snapshot
}

// CommandFailedMsg reports a touchpad command the device did not accept.
type CommandFailedMsg struct {
	Command touchpad.Command
	Err     error
}

type clearStatusMsg struct {
	seq int
}

type testMoveMsg struct {
	err error
}

type refreshMsg struct{}

type configMsg struct {
	cfg device.Config
	err error
}

// Update handles messages and updates the model accordingly.
func Update(msg tea.Msg, m Model) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if m.monitor != nil && !m.refreshing {
			m.snapshot = m.monitor.Last()
		}
		return m, tick()

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.refreshing = false
		return m, nil

	case CommandFailedMsg:
		logger.Warnf("%s failed: %v", msg.Command, msg.Err)
		return m, m.setStatus("Connection error", false)

	case clearStatusMsg:
		if msg.seq == m.status.seq {
			m.status = statusLine{seq: m.status.seq}
		}
		return m, nil

	case testMoveMsg:
		if msg.err != nil {
			m.Activity.Add(m.now(), "Test movement failed")
			return m, m.setStatus("Failed to trigger movement: "+msg.err.Error(), false)
		}
		m.Activity.Add(m.now(), "Test movement triggered")
		m.refreshing = true
		return m, tea.Batch(
			m.setStatus("Mouse movement triggered", true),
			tea.Tick(RefreshDelay, func(time.Time) tea.Msg { return refreshMsg{} }),
		)

	case refreshMsg:
		return m, m.refresh()

	case configMsg:
		if msg.err != nil {
			m.Activity.Add(m.now(), "Failed to load configuration")
			return m, m.setStatus("Failed to load configuration: "+msg.err.Error(), false)
		}
		cfg := msg.cfg
		m.deviceConfig = &cfg
		m.Activity.Add(m.now(), "Configuration loaded")
		return m, nil

	case tea.KeyMsg:
		return updateKeys(msg, m)

	case tea.MouseMsg:
		// Releases end holds in every state.
		if msg.Action == tea.MouseActionRelease {
			m.releaseHeld()
			return m, nil
		}
		if m.State != stateTouchpad {
			return m, nil
		}
		return updateMouse(msg, m)
	}

	return m, nil
}

func updateKeys(msg tea.KeyMsg, m Model) (Model, tea.Cmd) {
	if m.State == stateHelp {
		switch {
		case msg.String() == "ctrl+c":
			return m, tea.Quit
		case key.Matches(msg, m.keys.ToggleHelp), key.Matches(msg, m.keys.Quit):
			m.State = stateTouchpad
			m.ShowHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.pad.ReleaseAll()
		return m, tea.Quit

	case key.Matches(msg, m.keys.ToggleHelp):
		m.State = stateHelp
		m.ShowHelp = true
		// Nothing can be released while the pad is hidden.
		m.releaseHeld()
		return m, nil

	case key.Matches(msg, m.keys.ToggleTouchpad):
		return m, m.toggleTouchpad()

	case key.Matches(msg, m.keys.SensitivityUp):
		m.pad.SetSensitivity(m.pad.Sensitivity() + 1)
		return m, m.setStatus(fmt.Sprintf("Sensitivity: %d/%d", m.pad.Sensitivity(), touchpad.MaxSensitivity), true)

	case key.Matches(msg, m.keys.SensitivityDown):
		m.pad.SetSensitivity(m.pad.Sensitivity() - 1)
		return m, m.setStatus(fmt.Sprintf("Sensitivity: %d/%d", m.pad.Sensitivity(), touchpad.MaxSensitivity), true)

	case key.Matches(msg, m.keys.TestMove):
		return m, m.testMove()

	case key.Matches(msg, m.keys.Refresh):
		if m.monitor == nil {
			return m, nil
		}
		m.refreshing = true
		return m, m.refresh()
	}
	return m, nil
}

func updateMouse(msg tea.MouseMsg, m Model) (Model, tea.Cmd) {
	p := cellCenter(msg.X, msg.Y, m.cellW, m.cellH)

	if msg.Action == tea.MouseActionMotion {
		m.pad.Handle(touchpad.Event{Kind: touchpad.ContactMove, Source: touchpad.SourceMouse, Client: p})
		return m, nil
	}

	z := m.layout.hit(msg.X, msg.Y)
	switch msg.Button {
	case tea.MouseButtonWheelUp, tea.MouseButtonWheelDown:
		if z != zonePad {
			return m, nil
		}
		dir := touchpad.ScrollDown
		if msg.Button == tea.MouseButtonWheelUp {
			dir = touchpad.ScrollUp
		}
		m.pad.Handle(touchpad.Event{Kind: touchpad.ScrollPress, Direction: dir})
		m.pad.Handle(touchpad.Event{Kind: touchpad.ScrollRelease})

	case tea.MouseButtonRight:
		if z == zonePad {
			m.pad.Handle(touchpad.Event{Kind: touchpad.RightClick})
		}

	case tea.MouseButtonLeft:
		return pressZone(z, msg, p, m)
	}
	return m, nil
}

func pressZone(z zone, msg tea.MouseMsg, p touchpad.Point, m Model) (Model, tea.Cmd) {
	switch z {
	case zonePad:
		m.pad.Handle(touchpad.Event{
			Kind:   touchpad.ContactStart,
			Source: touchpad.SourceMouse,
			Client: p,
			Drag:   msg.Alt || msg.Ctrl,
		})
	case zoneLeft:
		m.pad.Handle(touchpad.Event{Kind: touchpad.LeftButtonPress})
		m.pressed = z
	case zoneRight:
		m.pad.Handle(touchpad.Event{Kind: touchpad.RightClick})
	case zoneScrollUp:
		m.pad.Handle(touchpad.Event{Kind: touchpad.ScrollPress, Direction: touchpad.ScrollUp})
		m.pressed = z
	case zoneScrollDown:
		m.pad.Handle(touchpad.Event{Kind: touchpad.ScrollPress, Direction: touchpad.ScrollDown})
		m.pressed = z
	case zoneToggle:
		return m, m.toggleTouchpad()
	}
	return m, nil
}

// releaseHeld ends the contact, the left button hold and any scroll repeat.
// Every step is idempotent.
func (m *Model) releaseHeld() {
	m.pad.Handle(touchpad.Event{Kind: touchpad.ContactEnd, Source: touchpad.SourceMouse})
	m.pad.Handle(touchpad.Event{Kind: touchpad.LeftButtonRelease})
	m.pad.Handle(touchpad.Event{Kind: touchpad.ScrollRelease})
	m.pressed = zoneNone
}

func (m *Model) toggleTouchpad() tea.Cmd {
	enabled := !m.pad.Enabled()
	m.pad.SetEnabled(enabled)
	m.pressed = zoneNone
	m.relayout()

	if enabled {
		m.Activity.Add(m.now(), "Touchpad enabled")
		return m.setStatus("Touchpad enabled - Experimental feature", true)
	}
	m.Activity.Add(m.now(), "Touchpad disabled")
	return m.setStatus("Touchpad disabled", false)
}

func (m Model) testMove() tea.Cmd {
	if m.device == nil {
		return nil
	}
	dev := m.device
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), device.DefaultTimeout)
		defer cancel()
		return testMoveMsg{err: dev.TriggerMovement(ctx)}
	}
}

func (m Model) refresh() tea.Cmd {
	if m.monitor == nil {
		return nil
	}
	mon := m.monitor
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), device.DefaultTimeout)
		defer cancel()
		return SnapshotMsg{Snapshot: mon.Refresh(ctx)}
	}
}

func (m Model) loadConfig() tea.Cmd {
	if m.device == nil {
		return nil
	}
	dev := m.device
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), device.DefaultTimeout)
		defer cancel()
		cfg, err := dev.Config(ctx)
		return configMsg{cfg: cfg, err: err}
	}
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}
