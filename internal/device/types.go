package device

import "time"

// Status is the payload of GET /api/status. Times are device uptime in
// milliseconds; zero means "never" / "not scheduled".
type Status struct {
	JigglerEnabled bool  `json:"jiggler_enabled"`
	LastMoveTime   int64 `json:"last_move_time"`
	NextMoveTime   int64 `json:"next_move_time"`
	UptimeSeconds  int64 `json:"uptime_seconds"`
	InAPMode       bool  `json:"in_ap_mode"`
}

// Uptime returns the device uptime as a duration.
func (s Status) Uptime() time.Duration {
	return time.Duration(s.UptimeSeconds) * time.Second
}

// Config is the payload of GET /api/config.
type Config struct {
	JigglerEnabled   bool   `json:"jiggler_enabled"`
	MoveInterval     int    `json:"move_interval"` // seconds
	MovementX        int    `json:"movement_x"`
	MovementY        int    `json:"movement_y"`
	MovementSize     int    `json:"movement_size,omitempty"`
	MovementSpeed    int    `json:"movement_speed"`
	MovementPattern  string `json:"movement_pattern,omitempty"`
	CircularMovement bool   `json:"circular_movement"`
	RandomDelay      bool   `json:"random_delay"`
	MovementTrail    bool   `json:"movement_trail"`
}

// Pattern returns the movement pattern, deriving it from the legacy
// circular_movement flag on firmware that does not report one.
func (c Config) Pattern() string {
	if c.MovementPattern != "" {
		return c.MovementPattern
	}
	if c.CircularMovement {
		return "circular"
	}
	return "linear"
}

// Size returns the movement size, falling back to the larger of the legacy
// per-axis values and a floor of 5.
func (c Config) Size() int {
	if c.MovementSize > 0 {
		return c.MovementSize
	}
	size := 5
	for _, v := range []int{c.MovementX, c.MovementY} {
		if v < 0 {
			v = -v
		}
		if v > size {
			size = v
		}
	}
	return size
}

type moveRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type clickRequest struct {
	Button    string `json:"button"`
	ClickType string `json:"clickType"`
}

type buttonRequest struct {
	Button string `json:"button"`
	State  string `json:"state"`
}

type scrollRequest struct {
	Amount int `json:"amount"`
}
