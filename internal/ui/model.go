package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/kataras/golog"

	"github.com/stigoleg/jigglepad/internal/device"
	"github.com/stigoleg/jigglepad/internal/monitor"
	"github.com/stigoleg/jigglepad/internal/touchpad"
)

var logger = golog.Child("[ui]")

// state represents the different states of the TUI.
type state int

const (
	stateTouchpad state = iota
	stateHelp
)

func (s state) String() string {
	switch s {
	case stateTouchpad:
		return "Touchpad"
	case stateHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// StatusDisplay is how long a transient status message stays visible.
const StatusDisplay = 3 * time.Second

// Device is the part of the device API the dashboard uses directly.
type Device interface {
	TriggerMovement(ctx context.Context) error
	Config(ctx context.Context) (device.Config, error)
}

// Options wires a Model to the rest of the application.
type Options struct {
	Translator *touchpad.Translator
	// Monitor and Device may be nil, which hides the related features.
	Monitor *monitor.Monitor
	Device  Device

	DeviceURL  string
	CellWidth  int
	CellHeight int
	Version    string

	// Now defaults to time.Now.
	Now func() time.Time
}

type statusLine struct {
	text string
	ok   bool
	seq  int
}

// Model holds the TUI state. The touchpad translator, monitor and activity
// log are shared by pointer across model copies.
type Model struct {
	State    state
	ShowHelp bool
	Width    int
	Height   int

	Activity *monitor.ActivityLog

	pad       *touchpad.Translator
	monitor   *monitor.Monitor
	device    Device
	deviceURL string
	version   string
	now       func() time.Time

	cellW, cellH int
	layout       layout

	snapshot     monitor.Snapshot
	deviceConfig *device.Config
	refreshing   bool

	status  statusLine
	pressed zone

	keys KeyMap
	help help.Model
}

// New returns the initial model.
func New(opts Options) Model {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if opts.CellHeight <= 0 {
		opts.CellHeight = 16
	}

	m := Model{
		State:     stateTouchpad,
		Activity:  &monitor.ActivityLog{},
		pad:       opts.Translator,
		monitor:   opts.Monitor,
		device:    opts.Device,
		deviceURL: opts.DeviceURL,
		version:   opts.Version,
		now:       opts.Now,
		cellW:     opts.CellWidth,
		cellH:     opts.CellHeight,
		keys:      DefaultKeys(),
		help:      NewHelpModel(),
	}
	m.resize(80, 24)
	m.Activity.Add(m.now(), "Successfully initialized")
	return m
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(tick(), m.loadConfig())
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := Update(msg, m)
	return newModel, cmd
}

// View implements tea.Model
func (m Model) View() string {
	return View(m)
}

// Translator returns the touchpad translator driven by this model.
func (m Model) Translator() *touchpad.Translator {
	return m.pad
}

func (m *Model) resize(width, height int) {
	m.Width = width
	m.Height = height
	m.relayout()
}

func (m *Model) relayout() {
	m.layout = newLayout(m.Width, m.Height, m.pad.Enabled())
	m.pad.SetSurface(m.layout.surface(m.cellW, m.cellH))
}

// setStatus shows a transient status and schedules its removal.
func (m *Model) setStatus(text string, ok bool) tea.Cmd {
	m.status.seq++
	m.status.text = text
	m.status.ok = ok
	seq := m.status.seq
	return tea.Tick(StatusDisplay, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
