// Package lifecycle runs shutdown work with a deadline.
package lifecycle

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kataras/golog"
)

var logger = golog.Child("[cleanup]")

// ErrTimeout is returned when cleanup does not finish in time.
var ErrTimeout = errors.New("cleanup timeout exceeded")

// Resource is something that must be released on shutdown.
type Resource interface {
	Cleanup() error
	Name() string
}

type funcResource struct {
	name string
	fn   func() error
}

func (r funcResource) Cleanup() error { return r.fn() }
func (r funcResource) Name() string   { return r.name }

// Manager releases registered resources in reverse registration order, once.
type Manager struct {
	mu        sync.Mutex
	resources []Resource
	timeout   time.Duration
	once      sync.Once
	err       error
}

// NewManager creates a manager. A non-positive timeout means five seconds.
func NewManager(timeout time.Duration) *Manager {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Manager{timeout: timeout}
}

// Register adds a resource.
func (m *Manager) Register(r Resource) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.resources = append(m.resources, r)
}

// RegisterFunc adds a function as a named resource.
func (m *Manager) RegisterFunc(name string, fn func() error) {
	m.Register(funcResource{name: name, fn: fn})
}

// Execute releases everything. Later calls return the first call's result.
func (m *Manager) Execute() error {
	m.once.Do(func() {
		m.err = m.run()
	})
	return m.err
}

func (m *Manager) run() error {
	m.mu.Lock()
	resources := make([]Resource, len(m.resources))
	copy(resources, m.resources)
	m.mu.Unlock()

	if len(resources) == 0 {
		return nil
	}

	var (
		mu   sync.Mutex
		errs []error
		done = make(chan struct{})
	)
	record := func(err error) {
		mu.Lock()
		errs = append(errs, err)
		mu.Unlock()
	}

	go func() {
		defer close(done)
		for i := len(resources) - 1; i >= 0; i-- {
			release(resources[i], record)
		}
	}()

	select {
	case <-done:
	case <-time.After(m.timeout):
		logger.Warnf("timeout after %v, some resources may not have been released", m.timeout)
		record(ErrTimeout)
	}

	mu.Lock()
	defer mu.Unlock()
	return errors.Join(errs...)
}

func release(r Resource, record func(error)) {
	defer func() {
		if p := recover(); p != nil {
			logger.Errorf("panic releasing %s: %v", r.Name(), p)
			record(fmt.Errorf("%s: panic during cleanup", r.Name()))
		}
	}()

	if err := r.Cleanup(); err != nil {
		logger.Errorf("releasing %s: %v", r.Name(), err)
		record(fmt.Errorf("%s: %w", r.Name(), err))
		return
	}
	logger.Debugf("released %s", r.Name())
}
