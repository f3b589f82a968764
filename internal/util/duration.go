package util

import (
	"fmt"
	"strconv"
	"time"
)

// ParseInterval parses a positive interval given either as a Go duration
// ("500ms", "1m30s") or as plain integer seconds ("5").
func ParseInterval(input string) (time.Duration, error) {
	if seconds, err := strconv.Atoi(input); err == nil {
		if seconds <= 0 {
			return 0, fmt.Errorf("invalid interval: %s\n\nInterval must be positive", input)
		}
		return time.Duration(seconds) * time.Second, nil
	}

	d, err := time.ParseDuration(input)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid interval: %s\n\nValid formats:\n"+
			"• seconds: 5, 30\n"+
			"• duration: 500ms, 5s, 1m30s", input)
	}
	return d, nil
}
