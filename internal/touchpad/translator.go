package touchpad

import (
	"math"
	"time"

	"github.com/kataras/golog"
)

// Translation constants.
const (
	// MoveThreshold is the per-axis delta in pixels at or below which a move
	// is treated as noise.
	MoveThreshold = 3.0

	// MoveThrottle is the minimum spacing between two emitted move commands.
	MoveThrottle = 20 * time.Millisecond

	// ScrollRepeatInterval is the period of a held scroll control.
	ScrollRepeatInterval = 100 * time.Millisecond

	// ScrollStep is the local scroll amount of one scroll control step.
	ScrollStep = 10

	// ScrollMultiplier converts local scroll steps to device scroll units.
	ScrollMultiplier = 300

	// SensitivityFactor scales one sensitivity level to a delta multiplier.
	SensitivityFactor = 0.8

	MinSensitivity     = 1
	MaxSensitivity     = 10
	DefaultSensitivity = 5
)

var logger = golog.Child("[touchpad]")

// PointerState is the translator's view of the current engagement.
type PointerState struct {
	Tracking          bool
	Dragging          bool
	LeftButtonPressed bool

	// Anchor is where the current contact started.
	Anchor Point
	// Last is the most recent sampled contact position.
	Last Point
	// LastMove is when the last move command was emitted.
	LastMove time.Time

	scrollCancel func()
}

// ScrollRepeating reports whether a scroll control repeat is running.
func (s PointerState) ScrollRepeating() bool {
	return s.scrollCancel != nil
}

// Indicator describes the local cursor feedback shown on the surface.
type Indicator struct {
	Visible  bool
	Position Point
	// Engaged is set while a left button is held, by drag or by control.
	Engaged bool
}

// Options configures a Translator.
type Options struct {
	Surface     Surface
	Sensitivity int
	Enabled     bool

	// Scheduler drives scroll repeats. Defaults to TickerScheduler.
	Scheduler Scheduler
	// Now is the clock used for move throttling. Defaults to time.Now.
	Now func() time.Time
}

// Translator turns input events into device commands. It is not safe for
// concurrent use; drive it from a single goroutine. The Emitter may also be
// called from the Scheduler's goroutine while a scroll repeat runs.
type Translator struct {
	surface     Surface
	emitter     Emitter
	scheduler   Scheduler
	now         func() time.Time
	enabled     bool
	sensitivity int

	state     PointerState
	indicator Indicator
}

// NewTranslator creates a Translator that sends its decisions to emitter.
func NewTranslator(emitter Emitter, opts Options) *Translator {
	t := &Translator{
		surface:   opts.Surface,
		emitter:   emitter,
		scheduler: opts.Scheduler,
		now:       opts.Now,
		enabled:   opts.Enabled,
	}
	if t.scheduler == nil {
		t.scheduler = TickerScheduler{}
	}
	if t.now == nil {
		t.now = time.Now
	}
	if opts.Sensitivity == 0 {
		opts.Sensitivity = DefaultSensitivity
	}
	t.SetSensitivity(opts.Sensitivity)
	return t
}

// Handle applies one input event.
func (t *Translator) Handle(ev Event) {
	switch ev.Kind {
	case ContactStart:
		t.contactStart(ev)
	case ContactMove:
		t.contactMove(ev)
	case ContactEnd:
		t.contactEnd()
	case LeftButtonPress:
		t.leftButtonPress()
	case LeftButtonRelease:
		t.leftButtonRelease()
	case RightClick:
		t.rightClick()
	case ScrollPress:
		t.scrollPress(ev.Direction)
	case ScrollRelease:
		t.stopScrollRepeat()
	default:
		logger.Warnf("ignoring unknown event kind %d", ev.Kind)
	}
}

func (t *Translator) contactStart(ev Event) {
	if !t.enabled {
		return
	}
	pos := t.surface.Position(ev)
	t.state.Anchor = pos
	t.state.Last = pos
	t.state.Tracking = true

	if ev.Drag && !t.state.Dragging {
		t.emit(buttonCommand(ButtonLeft, ButtonPress))
		t.state.Dragging = true
	}

	t.indicator.Visible = true
	t.updateIndicator(pos)
}

func (t *Translator) contactMove(ev Event) {
	if !t.enabled {
		return
	}
	if !t.state.Tracking && !t.state.Dragging && !t.state.LeftButtonPressed {
		return
	}

	pos := t.surface.Position(ev)
	dx := pos.X - t.state.Last.X
	dy := pos.Y - t.state.Last.Y

	// Position tracking is independent of command emission.
	t.state.Last = pos
	t.updateIndicator(pos)

	if math.Max(math.Abs(dx), math.Abs(dy)) <= MoveThreshold {
		return
	}

	x, y := t.scale(dx, dy)
	now := t.now()
	if !t.state.LastMove.IsZero() && now.Sub(t.state.LastMove) < MoveThrottle {
		return
	}
	t.state.LastMove = now
	t.emit(moveCommand(x, y))
}

func (t *Translator) contactEnd() {
	if t.state.Dragging {
		t.state.Dragging = false
		t.emit(buttonCommand(ButtonLeft, ButtonRelease))
	}
	t.state.Tracking = false
	t.indicator.Visible = false
	t.indicator.Engaged = t.engaged()
}

func (t *Translator) leftButtonPress() {
	if !t.enabled {
		return
	}
	t.state.LeftButtonPressed = true
	t.emit(buttonCommand(ButtonLeft, ButtonPress))
	t.indicator.Engaged = t.engaged()
}

func (t *Translator) leftButtonRelease() {
	if !t.state.LeftButtonPressed {
		return
	}
	t.state.LeftButtonPressed = false
	t.emit(buttonCommand(ButtonLeft, ButtonRelease))
	t.indicator.Engaged = t.engaged()
}

func (t *Translator) rightClick() {
	if !t.enabled {
		return
	}
	t.emit(clickCommand(ButtonRight))
}

func (t *Translator) scrollPress(dir ScrollDirection) {
	if !t.enabled {
		return
	}
	t.stopScrollRepeat()

	step := ScrollStep
	if dir == ScrollUp {
		step = -ScrollStep
	}
	cmd := scrollCommand(step * ScrollMultiplier)
	t.emit(cmd)

	emitter := t.emitter
	t.state.scrollCancel = t.scheduler.Every(ScrollRepeatInterval, func() {
		emitter.Emit(cmd)
	})
}

func (t *Translator) stopScrollRepeat() {
	if t.state.scrollCancel == nil {
		return
	}
	t.state.scrollCancel()
	t.state.scrollCancel = nil
}

// SetEnabled flips the master toggle. Disabling while engaged stops any
// scroll repeat, releases a drag and hides the indicator before returning.
func (t *Translator) SetEnabled(enabled bool) {
	if t.enabled == enabled {
		return
	}
	t.enabled = enabled
	if enabled {
		logger.Infof("touchpad enabled")
		return
	}

	t.stopScrollRepeat()
	t.contactEnd()
	logger.Infof("touchpad disabled")
}

// Enabled reports the master toggle.
func (t *Translator) Enabled() bool {
	return t.enabled
}

// SetSensitivity sets the sensitivity level, clamped to [1,10].
func (t *Translator) SetSensitivity(level int) {
	if level < MinSensitivity {
		level = MinSensitivity
	}
	if level > MaxSensitivity {
		level = MaxSensitivity
	}
	t.sensitivity = level
}

// Sensitivity returns the current sensitivity level.
func (t *Translator) Sensitivity() int {
	return t.sensitivity
}

// SetSurface updates the surface bounds, e.g. after a resize.
func (t *Translator) SetSurface(s Surface) {
	t.surface = s
}

// Surface returns the current surface bounds.
func (t *Translator) Surface() Surface {
	return t.surface
}

// State returns a snapshot of the pointer state.
func (t *Translator) State() PointerState {
	return t.state
}

// Indicator returns the cursor feedback to render.
func (t *Translator) Indicator() Indicator {
	return t.indicator
}

// ReleaseAll stops the scroll repeat and releases every held button,
// regardless of the master toggle. Used on shutdown.
func (t *Translator) ReleaseAll() {
	t.stopScrollRepeat()
	t.contactEnd()
	t.leftButtonRelease()
}

func (t *Translator) scale(dx, dy float64) (int, int) {
	factor := float64(t.sensitivity) * SensitivityFactor
	return roundHalfUp(dx * factor), roundHalfUp(dy * factor)
}

func (t *Translator) updateIndicator(p Point) {
	t.indicator.Position = t.surface.Clamp(p)
	t.indicator.Engaged = t.engaged()
}

func (t *Translator) engaged() bool {
	return t.state.Dragging || t.state.LeftButtonPressed
}

func (t *Translator) emit(c Command) {
	logger.Debugf("emit %s", c)
	t.emitter.Emit(c)
}

// roundHalfUp rounds to the nearest integer with halves going towards
// positive infinity.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
