// Package simulator emulates the jiggler appliance's HTTP API so the client
// can be exercised without hardware.
package simulator

import (
	"sync"
	"time"
)

// Settings mirrors the device's jiggler configuration.
type Settings struct {
	JigglerEnabled   bool
	MoveInterval     time.Duration
	MovementX        int
	MovementY        int
	MovementSpeed    int
	CircularMovement bool
	RandomDelay      bool
	MovementTrail    bool
}

// DefaultSettings returns the factory defaults of the appliance.
func DefaultSettings() Settings {
	return Settings{
		JigglerEnabled: true,
		MoveInterval:   240 * time.Second,
		MovementX:      5,
		MovementY:      5,
		MovementSpeed:  500,
	}
}

// Snapshot is a copy of the simulated device state.
type Snapshot struct {
	Settings Settings

	// Uptime, LastMove and NextMove are offsets since boot. A zero LastMove
	// means the jiggler has not moved yet.
	Uptime   time.Duration
	LastMove time.Duration
	NextMove time.Duration
	Moves    int
	// Trail is the path of the last jiggle.
	Trail []Step

	CursorX int
	CursorY int
	Scroll  int

	LeftHeld    bool
	RightClicks int
	LeftClicks  int
}

// Device holds the simulated appliance state. It is safe for concurrent use.
type Device struct {
	mu    sync.Mutex
	now   func() time.Time
	boot  time.Time
	state Snapshot
}

// NewDevice boots a simulated device. A nil now uses time.Now.
func NewDevice(settings Settings, now func() time.Time) *Device {
	if now == nil {
		now = time.Now
	}
	d := &Device{now: now, boot: now()}
	d.state.Settings = settings
	d.state.NextMove = settings.MoveInterval
	return d
}

func (d *Device) uptime() time.Duration {
	return d.now().Sub(d.boot)
}

// Snapshot returns a copy of the current state.
func (d *Device) Snapshot() Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()
	s := d.state
	s.Uptime = d.uptime()
	return s
}

// Jiggle performs one jiggler movement and reschedules the next one.
func (d *Device) Jiggle() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.jiggleLocked()
}

func (d *Device) jiggleLocked() {
	up := d.uptime()
	d.state.Moves++
	d.state.LastMove = up
	d.state.NextMove = up + d.state.Settings.MoveInterval

	d.state.Trail = jigglePath(d.state.Settings)
	for _, st := range d.state.Trail {
		d.state.CursorX += st.X
		d.state.CursorY += st.Y
	}
	logger.Debugf("jiggle #%d at %s", d.state.Moves, up)
}

// Tick runs a scheduled movement if one is due.
func (d *Device) Tick() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.state.Settings.JigglerEnabled {
		return false
	}
	if d.uptime() < d.state.NextMove {
		return false
	}
	d.jiggleLocked()
	return true
}

// SetJigglerEnabled turns the automatic jiggler on or off.
func (d *Device) SetJigglerEnabled(enabled bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Settings.JigglerEnabled = enabled
	if enabled {
		d.state.NextMove = d.uptime() + d.state.Settings.MoveInterval
	}
}

func (d *Device) moveCursor(x, y int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.CursorX += x
	d.state.CursorY += y
}

func (d *Device) scroll(amount int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.Scroll += amount
}

func (d *Device) click(button string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if button == "right" {
		d.state.RightClicks++
		return
	}
	d.state.LeftClicks++
}

func (d *Device) setLeft(held bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.state.LeftHeld = held
}
