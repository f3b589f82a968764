package simulator

import "math"

// circlePoints is the number of vertices traced by a circular jiggle.
const circlePoints = 8

// Step is one relative cursor movement of a jiggle.
type Step struct {
	X int
	Y int
}

// jigglePath returns the relative steps of one jiggle. The steps always sum
// to zero so the cursor ends where it started.
func jigglePath(s Settings) []Step {
	if s.CircularMovement {
		return circlePath(circleRadius(s))
	}
	return []Step{
		{X: s.MovementX, Y: s.MovementY},
		{X: -s.MovementX, Y: -s.MovementY},
	}
}

func circleRadius(s Settings) float64 {
	r := math.Max(math.Abs(float64(s.MovementX)), math.Abs(float64(s.MovementY)))
	if r < 1 {
		r = 1
	}
	return r
}

func circlePath(radius float64) []Step {
	points := make([]Step, circlePoints)
	for i := range points {
		angle := 2 * math.Pi * float64(i) / circlePoints
		points[i] = Step{
			X: int(math.Round(radius*math.Cos(angle) - radius)),
			Y: int(math.Round(radius * math.Sin(angle))),
		}
	}

	steps := make([]Step, circlePoints)
	for i := range points {
		next := points[(i+1)%circlePoints]
		steps[i] = Step{X: next.X - points[i].X, Y: next.Y - points[i].Y}
	}
	return steps
}
