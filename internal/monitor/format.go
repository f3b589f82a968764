package monitor

import (
	"fmt"
	"time"
)

// LastMovement describes how long ago the jiggler last moved.
func LastMovement(snap Snapshot) string {
	if !snap.Valid() {
		return "Checking status..."
	}
	st := snap.Status
	if st.LastMoveTime == 0 {
		return "No movements yet"
	}

	since := time.Duration(st.UptimeSeconds*1000-st.LastMoveTime) * time.Millisecond
	if since < 0 {
		since = 0
	}
	switch {
	case since < time.Minute:
		return fmt.Sprintf("%d seconds ago", int(since/time.Second))
	case since < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(since/time.Minute))
	default:
		hours := int(since / time.Hour)
		minutes := int((since % time.Hour) / time.Minute)
		return fmt.Sprintf("%dh %dm ago", hours, minutes)
	}
}

// Countdown describes the time until the next jiggler movement at now,
// extrapolating device uptime from when the snapshot was taken.
func Countdown(snap Snapshot, now time.Time) string {
	if !snap.Valid() {
		return "Checking status..."
	}
	st := snap.Status
	if !st.JigglerEnabled {
		return "Jiggler is disabled"
	}
	if st.LastMoveTime == 0 {
		return "Waiting for first movement"
	}
	if st.NextMoveTime == 0 {
		return "Waiting for next move"
	}

	remaining := TimeUntilNext(snap, now)
	if remaining <= 0 {
		return "Imminent"
	}
	minutes := int(remaining / time.Minute)
	seconds := int((remaining % time.Minute) / time.Second)
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// TimeUntilNext returns the estimated time until the next movement, never
// negative.
func TimeUntilNext(snap Snapshot, now time.Time) time.Duration {
	elapsed := now.Sub(snap.CheckedAt)
	if elapsed < 0 {
		elapsed = 0
	}
	uptime := snap.Status.Uptime() + elapsed
	remaining := time.Duration(snap.Status.NextMoveTime)*time.Millisecond - uptime
	if remaining < 0 {
		return 0
	}
	return remaining
}
