package monitor

import (
	"fmt"
	"sync"
	"time"
)

// MaxActivityEntries caps the activity log.
const MaxActivityEntries = 50

// Entry is one activity log line.
type Entry struct {
	At      time.Time
	Message string
}

func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s", e.At.Format("15:04:05"), e.Message)
}

// ActivityLog keeps the newest entries first. It is safe for concurrent use.
type ActivityLog struct {
	mu      sync.Mutex
	entries []Entry
}

// Add records a message at the given time.
func (l *ActivityLog) Add(at time.Time, msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append([]Entry{{At: at, Message: msg}}, l.entries...)
	if len(l.entries) > MaxActivityEntries {
		l.entries = l.entries[:MaxActivityEntries]
	}
}

// Entries returns up to n entries, newest first. n <= 0 returns all.
func (l *ActivityLog) Entries(n int) []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[:n])
	return out
}

// Len returns the number of entries.
func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
