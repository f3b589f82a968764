package touchpad

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurfacePosition(t *testing.T) {
	s := Surface{Left: 10, Top: 20, Width: 200, Height: 100}

	tests := []struct {
		name string
		ev   Event
		want Point
	}{
		{
			name: "mouse inside",
			ev:   Event{Source: SourceMouse, Client: Point{X: 60, Y: 70}},
			want: Point{X: 50, Y: 50},
		},
		{
			name: "mouse left of and above surface",
			ev:   Event{Source: SourceMouse, Client: Point{X: -5, Y: 0}},
			want: Point{X: 0, Y: 0},
		},
		{
			name: "mouse past far edge",
			ev:   Event{Source: SourceMouse, Client: Point{X: 500, Y: 500}},
			want: Point{X: 200, Y: 100},
		},
		{
			name: "first active touch",
			ev: Event{
				Source:  SourceTouch,
				Touches: []Point{{X: 30, Y: 40}, {X: 100, Y: 100}},
			},
			want: Point{X: 20, Y: 20},
		},
		{
			name: "changed touch on release",
			ev: Event{
				Source:         SourceTouch,
				ChangedTouches: []Point{{X: 300, Y: 25}},
			},
			want: Point{X: 200, Y: 5},
		},
		{
			name: "touch without points falls back to client",
			ev:   Event{Source: SourceTouch, Client: Point{X: 15, Y: 25}},
			want: Point{X: 5, Y: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, s.Position(tt.ev))
		})
	}
}

func TestSurfacePositionAlwaysClamped(t *testing.T) {
	s := Surface{Left: 3, Top: 7, Width: 40, Height: 30}
	for x := -100.0; x <= 100; x += 7 {
		for y := -100.0; y <= 100; y += 11 {
			for _, src := range []Source{SourceMouse, SourceTouch} {
				ev := Event{Source: src, Client: Point{X: x, Y: y}, Touches: []Point{{X: x, Y: y}}}
				p := s.Position(ev)
				assert.True(t, p.X >= 0 && p.X <= s.Width, "x=%v", p.X)
				assert.True(t, p.Y >= 0 && p.Y <= s.Height, "y=%v", p.Y)
			}
		}
	}
}

func TestTickerScheduler(t *testing.T) {
	var fired int32
	cancel := TickerScheduler{}.Every(5*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fired) >= 2
	}, time.Second, time.Millisecond)

	cancel()
	cancel()
	// cancel waits for the loop to exit, so nothing fires afterwards.
	stopped := atomic.LoadInt32(&fired)
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, atomic.LoadInt32(&fired))
}

func TestTickerSchedulerCancelWaitsForRunningFn(t *testing.T) {
	started := make(chan struct{})
	var finished int32
	cancel := TickerScheduler{}.Every(time.Millisecond, func() {
		select {
		case <-started:
		default:
			close(started)
		}
		time.Sleep(20 * time.Millisecond)
		atomic.StoreInt32(&finished, 1)
	})

	<-started
	cancel()
	assert.Equal(t, int32(1), atomic.LoadInt32(&finished))
}
