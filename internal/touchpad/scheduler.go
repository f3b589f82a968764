package touchpad

import (
	"sync"
	"time"
)

// Scheduler runs a function repeatedly until the returned cancel is called.
// The first run happens one period after Every returns.
type Scheduler interface {
	Every(period time.Duration, fn func()) (cancel func())
}

// TickerScheduler runs repeats on a time.Ticker in its own goroutine.
// Cancel returns only after the goroutine has exited, so fn never runs after
// it; fn must therefore not call cancel itself.
type TickerScheduler struct{}

func (TickerScheduler) Every(period time.Duration, fn func()) func() {
	ticker := time.NewTicker(period)
	done := make(chan struct{})
	exited := make(chan struct{})
	go func() {
		defer close(exited)
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				// A tick may be pending when cancel runs.
				select {
				case <-done:
					return
				default:
				}
				fn()
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
		<-exited
	}
}
