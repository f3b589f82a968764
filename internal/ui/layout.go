package ui

import "github.com/stigoleg/jigglepad/internal/touchpad"

// zone is a clickable region of the screen.
type zone int

const (
	zoneNone zone = iota
	zonePad
	zoneLeft
	zoneRight
	zoneScrollUp
	zoneScrollDown
	zoneToggle
)

// control is one clickable label on the controls row.
type control struct {
	zone  zone
	label string
	x0    int // first column
	x1    int // one past the last column
}

// Screen rows above the pad interior: title, blank, top border.
const padTopRow = 3

const (
	minPadWidth  = 20
	maxPadWidth  = 100
	minPadHeight = 4
	maxPadHeight = 20

	// Rows used by everything except the pad interior.
	chromeRows = 20
)

// layout places the pad and controls for a window size. All coordinates are
// terminal cells.
type layout struct {
	padX, padY int // top-left interior cell
	padW, padH int

	controlsRow int
	controls    []control
}

func newLayout(width, height int, enabled bool) layout {
	l := layout{
		padX: 1,
		padY: padTopRow,
		padW: clampInt(width-2, minPadWidth, maxPadWidth),
		padH: clampInt(height-chromeRows, minPadHeight, maxPadHeight),
	}
	l.controlsRow = l.padY + l.padH + 1

	toggle := "[ Touchpad: ON ]"
	if !enabled {
		toggle = "[ Touchpad: OFF ]"
	}
	x := 1
	for _, c := range []control{
		{zone: zoneLeft, label: "[ Left ]"},
		{zone: zoneRight, label: "[ Right ]"},
		{zone: zoneScrollUp, label: "[ Scroll Up ]"},
		{zone: zoneScrollDown, label: "[ Scroll Down ]"},
		{zone: zoneToggle, label: toggle},
	} {
		c.x0 = x
		c.x1 = x + len(c.label)
		l.controls = append(l.controls, c)
		x = c.x1 + 1
	}
	return l
}

// hit returns the zone under a cell.
func (l layout) hit(x, y int) zone {
	if x >= l.padX && x < l.padX+l.padW && y >= l.padY && y < l.padY+l.padH {
		return zonePad
	}
	if y == l.controlsRow {
		for _, c := range l.controls {
			if x >= c.x0 && x < c.x1 {
				return c.zone
			}
		}
	}
	return zoneNone
}

// surface converts the pad to touchpad pixel space.
func (l layout) surface(cellW, cellH int) touchpad.Surface {
	return touchpad.Surface{
		Left:   float64(l.padX * cellW),
		Top:    float64(l.padY * cellH),
		Width:  float64(l.padW * cellW),
		Height: float64(l.padH * cellH),
	}
}

// cellCenter converts a cell to the pixel at its centre.
func cellCenter(x, y, cellW, cellH int) touchpad.Point {
	return touchpad.Point{
		X: (float64(x) + 0.5) * float64(cellW),
		Y: (float64(y) + 0.5) * float64(cellH),
	}
}

// indicatorCell maps a surface-local pixel position to a pad-relative cell.
func (l layout) indicatorCell(p touchpad.Point, cellW, cellH int) (int, int) {
	col := clampInt(int(p.X)/cellW, 0, l.padW-1)
	row := clampInt(int(p.Y)/cellH, 0, l.padH-1)
	return col, row
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
