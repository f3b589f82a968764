package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManagerReverseOrder(t *testing.T) {
	m := NewManager(time.Second)
	var order []string
	for _, name := range []string{"log file", "monitor", "buttons"} {
		name := name
		m.RegisterFunc(name, func() error {
			order = append(order, name)
			return nil
		})
	}

	require.NoError(t, m.Execute())
	assert.Equal(t, []string{"buttons", "monitor", "log file"}, order)
}

func TestManagerRunsOnce(t *testing.T) {
	m := NewManager(time.Second)
	calls := 0
	m.RegisterFunc("counter", func() error {
		calls++
		return errors.New("boom")
	})

	first := m.Execute()
	second := m.Execute()

	assert.Equal(t, 1, calls)
	require.Error(t, first)
	assert.Equal(t, first, second)
	assert.Contains(t, first.Error(), "counter: boom")
}

func TestManagerRecoversPanics(t *testing.T) {
	m := NewManager(time.Second)
	released := false
	m.RegisterFunc("after", func() error {
		released = true
		return nil
	})
	m.RegisterFunc("bad", func() error {
		panic("nil map")
	})

	err := m.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "panic during cleanup")
	assert.True(t, released)
}

func TestManagerTimeout(t *testing.T) {
	m := NewManager(20 * time.Millisecond)
	block := make(chan struct{})
	defer close(block)
	m.RegisterFunc("stuck", func() error {
		<-block
		return nil
	})

	err := m.Execute()
	assert.True(t, errors.Is(err, ErrTimeout))
}

func TestManagerSlowStepWithinBudget(t *testing.T) {
	m := NewManager(200 * time.Millisecond)
	var order []string
	m.RegisterFunc("log file", func() error {
		order = append(order, "log file")
		return nil
	})
	m.RegisterFunc("dispatcher", func() error {
		time.Sleep(50 * time.Millisecond)
		order = append(order, "dispatcher")
		return nil
	})
	m.RegisterFunc("monitor", func() error {
		time.Sleep(50 * time.Millisecond)
		order = append(order, "monitor")
		return nil
	})

	require.NoError(t, m.Execute())
	assert.Equal(t, []string{"monitor", "dispatcher", "log file"}, order)
}

func TestManagerEmpty(t *testing.T) {
	assert.NoError(t, NewManager(0).Execute())
}
