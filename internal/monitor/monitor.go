// Package monitor polls the appliance status and derives the dashboard texts
// shown next to the touchpad.
package monitor

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kataras/golog"

	"github.com/stigoleg/jigglepad/internal/device"
)

// DefaultInterval is the status poll period.
const DefaultInterval = 5 * time.Second

var logger = golog.Child("[monitor]")

// Health is the polling health as seen by the UI.
type Health int

const (
	HealthUnknown Health = iota
	HealthOK
	HealthFailed
)

func (h Health) String() string {
	switch h {
	case HealthOK:
		return "online"
	case HealthFailed:
		return "unreachable"
	default:
		return "unknown"
	}
}

// StatusSource fetches the device status.
type StatusSource interface {
	Status(ctx context.Context) (device.Status, error)
}

// Snapshot is the outcome of one poll.
type Snapshot struct {
	Status device.Status
	// CheckedAt is the local time the status was received. Zero until the
	// first successful poll.
	CheckedAt time.Time
	Err       error
}

// Valid reports whether the snapshot holds a received status.
func (s Snapshot) Valid() bool {
	return !s.CheckedAt.IsZero()
}

// Monitor polls a StatusSource on a fixed interval.
type Monitor struct {
	source   StatusSource
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	running  bool
	cancel   context.CancelFunc
	done     chan struct{}
	last     Snapshot
	onUpdate func(Snapshot)

	// failCount counts consecutive failed polls.
	failCount int64
	polls     int64
}

// New creates a monitor. A non-positive interval uses DefaultInterval.
func New(source StatusSource, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Monitor{source: source, interval: interval, now: time.Now}
}

// OnUpdate sets the callback run after every poll, on the polling goroutine.
func (m *Monitor) OnUpdate(fn func(Snapshot)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onUpdate = fn
}

// IsRunning returns whether the poll loop is active.
func (m *Monitor) IsRunning() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.running
}

// Start polls once immediately and then every interval until Stop.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return errors.New("monitor already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})
	m.running = true

	go m.loop(ctx, m.done)
	logger.Infof("started (interval=%s)", m.interval)
	return nil
}

func (m *Monitor) loop(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Refresh(ctx)
		}
	}
}

// Refresh polls once, synchronously, and returns the new snapshot. A failed
// poll keeps the previous status and records the error.
func (m *Monitor) Refresh(ctx context.Context) Snapshot {
	atomic.AddInt64(&m.polls, 1)
	st, err := m.source.Status(ctx)

	m.mu.Lock()
	if err != nil {
		if ctx.Err() != nil {
			m.mu.Unlock()
			return m.Last()
		}
		atomic.AddInt64(&m.failCount, 1)
		m.last.Err = err
		logger.Warnf("status poll failed: %v", err)
	} else {
		atomic.StoreInt64(&m.failCount, 0)
		m.last = Snapshot{Status: st, CheckedAt: m.now()}
	}
	snap := m.last
	fn := m.onUpdate
	m.mu.Unlock()

	if fn != nil {
		fn(snap)
	}
	return snap
}

// Last returns the most recent snapshot.
func (m *Monitor) Last() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Health returns the polling health.
func (m *Monitor) Health() Health {
	if atomic.LoadInt64(&m.failCount) > 0 {
		return HealthFailed
	}
	if atomic.LoadInt64(&m.polls) == 0 {
		return HealthUnknown
	}
	return HealthOK
}

// Stop stops polling.
func (m *Monitor) Stop() error {
	return m.StopWithTimeout(0)
}

// StopWithTimeout stops polling and waits for an in-flight poll to return.
func (m *Monitor) StopWithTimeout(timeout time.Duration) error {
	m.mu.Lock()
	if !m.running {
		m.mu.Unlock()
		return nil
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	m.cancel()
	m.cancel = nil
	done := m.done
	m.running = false
	m.mu.Unlock()

	select {
	case <-done:
		logger.Infof("stopped")
		return nil
	case <-time.After(timeout):
		logger.Warnf("stop timeout exceeded after %v", timeout)
		return context.DeadlineExceeded
	}
}
