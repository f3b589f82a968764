// Package touchpad translates pointer and touch input on a virtual touchpad
// surface into remote cursor commands.
package touchpad

// EventKind identifies the input transition an Event represents.
type EventKind int

const (
	ContactStart EventKind = iota
	ContactMove
	ContactEnd
	LeftButtonPress
	LeftButtonRelease
	RightClick
	ScrollPress
	ScrollRelease
)

func (k EventKind) String() string {
	switch k {
	case ContactStart:
		return "ContactStart"
	case ContactMove:
		return "ContactMove"
	case ContactEnd:
		return "ContactEnd"
	case LeftButtonPress:
		return "LeftButtonPress"
	case LeftButtonRelease:
		return "LeftButtonRelease"
	case RightClick:
		return "RightClick"
	case ScrollPress:
		return "ScrollPress"
	case ScrollRelease:
		return "ScrollRelease"
	default:
		return "Unknown"
	}
}

// Source tells whether a contact event came from a mouse or a touch screen.
type Source int

const (
	SourceMouse Source = iota
	SourceTouch
)

// ScrollDirection selects the scroll control that was pressed.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
)

// Point is a position in pixels.
type Point struct {
	X float64
	Y float64
}

// Event is a single input notification fed to Translator.Handle.
type Event struct {
	Kind   EventKind
	Source Source

	// Client is the pointer position in window coordinates (mouse events).
	Client Point
	// Touches and ChangedTouches mirror the active and changed touch points
	// of a touch event, in window coordinates.
	Touches        []Point
	ChangedTouches []Point

	// Drag marks a ContactStart that should hold the left button for the
	// whole contact.
	Drag bool

	// Direction is only meaningful for ScrollPress.
	Direction ScrollDirection
}
