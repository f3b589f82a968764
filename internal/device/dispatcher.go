package device

import (
	"context"
	"sync"
	"time"

	"github.com/stigoleg/jigglepad/internal/touchpad"
)

// Sender delivers a single touchpad command.
type Sender interface {
	Send(ctx context.Context, cmd touchpad.Command) error
}

// Dispatcher delivers touchpad commands fire-and-forget: each command runs in
// its own goroutine, failures are logged and reported once, never retried.
// It implements touchpad.Emitter.
type Dispatcher struct {
	ctx    context.Context
	sender Sender
	wg     sync.WaitGroup

	mu      sync.RWMutex
	onError func(touchpad.Command, error)
}

// NewDispatcher creates a dispatcher. Commands still in flight when ctx is
// cancelled fail with the context error.
func NewDispatcher(ctx context.Context, sender Sender) *Dispatcher {
	return &Dispatcher{ctx: ctx, sender: sender}
}

// OnError sets the failure callback. It runs on the delivering goroutine.
func (d *Dispatcher) OnError(fn func(touchpad.Command, error)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.onError = fn
}

// Emit implements touchpad.Emitter.
func (d *Dispatcher) Emit(cmd touchpad.Command) {
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		if err := d.sender.Send(d.ctx, cmd); err != nil {
			logger.Warnf("sending %s: %v", cmd, err)
			d.mu.RLock()
			fn := d.onError
			d.mu.RUnlock()
			if fn != nil {
				fn(cmd, err)
			}
		}
	}()
}

// Wait blocks until in-flight commands finish or timeout elapses. It reports
// whether everything finished.
func (d *Dispatcher) Wait(timeout time.Duration) bool {
	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(timeout):
		logger.Warnf("dispatcher: %v elapsed with commands still in flight", timeout)
		return false
	}
}
