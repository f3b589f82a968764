package touchpad

// Surface is the touchpad's bounding box in window coordinates.
type Surface struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Position resolves the surface-local position of an event. Touch events use
// the first active touch, falling back to the first changed touch on release.
// The result is always clamped into [0,Width] x [0,Height].
func (s Surface) Position(ev Event) Point {
	p := ev.Client
	if ev.Source == SourceTouch {
		switch {
		case len(ev.Touches) > 0:
			p = ev.Touches[0]
		case len(ev.ChangedTouches) > 0:
			p = ev.ChangedTouches[0]
		}
	}
	return s.Clamp(Point{X: p.X - s.Left, Y: p.Y - s.Top})
}

// Clamp limits a surface-local point to the surface bounds.
func (s Surface) Clamp(p Point) Point {
	return Point{
		X: clamp(p.X, 0, s.Width),
		Y: clamp(p.Y, 0, s.Height),
	}
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
