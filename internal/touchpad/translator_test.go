package touchpad

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock is a deterministic clock and Scheduler. Repeats only fire from
// Advance, on the calling goroutine.
type manualClock struct {
	now     time.Time
	repeats []*manualRepeat
}

type manualRepeat struct {
	period    time.Duration
	next      time.Time
	fn        func()
	cancelled bool
}

func newManualClock() *manualClock {
	return &manualClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *manualClock) Now() time.Time { return c.now }

func (c *manualClock) Every(period time.Duration, fn func()) func() {
	r := &manualRepeat{period: period, next: c.now.Add(period), fn: fn}
	c.repeats = append(c.repeats, r)
	return func() { r.cancelled = true }
}

func (c *manualClock) Advance(d time.Duration) {
	target := c.now.Add(d)
	for {
		var due *manualRepeat
		for _, r := range c.repeats {
			if r.cancelled || r.next.After(target) {
				continue
			}
			if due == nil || r.next.Before(due.next) {
				due = r
			}
		}
		if due == nil {
			break
		}
		c.now = due.next
		due.next = due.next.Add(due.period)
		due.fn()
	}
	c.now = target
}

func (c *manualClock) active() int {
	n := 0
	for _, r := range c.repeats {
		if !r.cancelled {
			n++
		}
	}
	return n
}

type recorder struct {
	clock *manualClock
	cmds  []Command
	at    []time.Time
}

func (r *recorder) Emit(c Command) {
	r.cmds = append(r.cmds, c)
	r.at = append(r.at, r.clock.Now())
}

func (r *recorder) ofKind(kind CommandKind) []Command {
	var out []Command
	for _, c := range r.cmds {
		if c.Kind == kind {
			out = append(out, c)
		}
	}
	return out
}

func (r *recorder) buttons(state string) int {
	n := 0
	for _, c := range r.ofKind(CommandButton) {
		if c.State == state {
			n++
		}
	}
	return n
}

var testSurface = Surface{Left: 10, Top: 20, Width: 200, Height: 100}

func newTestTranslator(sensitivity int) (*Translator, *recorder, *manualClock) {
	clock := newManualClock()
	rec := &recorder{clock: clock}
	tr := NewTranslator(rec, Options{
		Surface:     testSurface,
		Sensitivity: sensitivity,
		Enabled:     true,
		Scheduler:   clock,
		Now:         clock.Now,
	})
	return tr, rec, clock
}

// mouse builds a mouse event at surface-local coordinates.
func mouse(kind EventKind, x, y float64) Event {
	return Event{
		Kind:   kind,
		Source: SourceMouse,
		Client: Point{X: testSurface.Left + x, Y: testSurface.Top + y},
	}
}

func TestMoveBelowThresholdEmitsNothing(t *testing.T) {
	for s := MinSensitivity; s <= MaxSensitivity; s++ {
		for dx := -3; dx <= 3; dx++ {
			for dy := -3; dy <= 3; dy++ {
				tr, rec, _ := newTestTranslator(s)
				tr.Handle(mouse(ContactStart, 50, 50))
				tr.Handle(mouse(ContactMove, 50+float64(dx), 50+float64(dy)))
				assert.Empty(t, rec.cmds, "sensitivity=%d dx=%d dy=%d", s, dx, dy)
			}
		}
	}
}

func TestMoveScaling(t *testing.T) {
	deltas := []Point{{4, 0}, {0, -4}, {5, 7}, {-10, 3}, {13, -9}, {-4, -4}}
	for s := MinSensitivity; s <= MaxSensitivity; s++ {
		for _, d := range deltas {
			tr, rec, _ := newTestTranslator(s)
			tr.Handle(mouse(ContactStart, 50, 50))
			tr.Handle(mouse(ContactMove, 50+d.X, 50+d.Y))

			moves := rec.ofKind(CommandMove)
			require.Len(t, moves, 1, "sensitivity=%d delta=%v", s, d)
			factor := float64(s) * 0.8
			assert.Equal(t, int(math.Floor(d.X*factor+0.5)), moves[0].X)
			assert.Equal(t, int(math.Floor(d.Y*factor+0.5)), moves[0].Y)
		}
	}
}

func TestMoveScalingKnownValues(t *testing.T) {
	tests := []struct {
		name        string
		sensitivity int
		dx, dy      float64
		wantX       int
		wantY       int
	}{
		{"default sensitivity", 5, 4, 0, 16, 0},
		{"lowest sensitivity rounds down", 1, 4, -4, 3, -3},
		{"negative exact", 1, -5, 5, -4, 4},
		{"highest sensitivity", 10, 10, -7, 80, -56},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, rec, _ := newTestTranslator(tt.sensitivity)
			tr.Handle(mouse(ContactStart, 100, 50))
			tr.Handle(mouse(ContactMove, 100+tt.dx, 50+tt.dy))

			require.Len(t, rec.cmds, 1)
			assert.Equal(t, Command{Kind: CommandMove, X: tt.wantX, Y: tt.wantY}, rec.cmds[0])
		})
	}
}

func TestMoveThrottle(t *testing.T) {
	tr, rec, clock := newTestTranslator(DefaultSensitivity)
	tr.Handle(mouse(ContactStart, 20, 50))

	for i := 1; i <= 100; i++ {
		x := 20.0
		if i%2 == 1 {
			x = 40
		}
		tr.Handle(mouse(ContactMove, x, 50))
		clock.Advance(5 * time.Millisecond)
	}

	require.Len(t, rec.cmds, 25)
	for i := 1; i < len(rec.at); i++ {
		assert.GreaterOrEqual(t, rec.at[i].Sub(rec.at[i-1]), MoveThrottle)
	}
}

func TestThrottledMoveIsDroppedNotQueued(t *testing.T) {
	tr, rec, clock := newTestTranslator(DefaultSensitivity)
	tr.Handle(mouse(ContactStart, 20, 50))
	tr.Handle(mouse(ContactMove, 30, 50))
	clock.Advance(5 * time.Millisecond)
	tr.Handle(mouse(ContactMove, 40, 50))
	clock.Advance(time.Second)

	require.Len(t, rec.cmds, 1)
	assert.Equal(t, Point{X: 40, Y: 50}, tr.State().Last)
}

func TestPositionTracksBelowThreshold(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(mouse(ContactStart, 50, 50))
	tr.Handle(mouse(ContactMove, 52, 51))
	tr.Handle(mouse(ContactMove, 54, 52))

	assert.Empty(t, rec.cmds)
	assert.Equal(t, Point{X: 54, Y: 52}, tr.State().Last)
	assert.Equal(t, Point{X: 50, Y: 50}, tr.State().Anchor)
	ind := tr.Indicator()
	assert.True(t, ind.Visible)
	assert.Equal(t, Point{X: 54, Y: 52}, ind.Position)
}

func TestMoveIgnoredWhenNotEngaged(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(mouse(ContactMove, 50, 50))
	tr.Handle(mouse(ContactMove, 90, 90))

	assert.Empty(t, rec.cmds)
	assert.False(t, tr.Indicator().Visible)
}

func TestContactStartEmitsNothing(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(mouse(ContactStart, 50, 60))

	assert.Empty(t, rec.cmds)
	st := tr.State()
	assert.True(t, st.Tracking)
	assert.Equal(t, Point{X: 50, Y: 60}, st.Last)
	assert.True(t, tr.Indicator().Visible)
	assert.False(t, tr.Indicator().Engaged)
}

func TestPressReleaseBalanced(t *testing.T) {
	sequences := []struct {
		name   string
		events []Event
	}{
		{
			name: "plain contact",
			events: []Event{
				mouse(ContactStart, 10, 10),
				mouse(ContactMove, 30, 30),
				mouse(ContactEnd, 30, 30),
			},
		},
		{
			name: "drag contact",
			events: []Event{
				{Kind: ContactStart, Client: Point{X: 50, Y: 50}, Drag: true},
				mouse(ContactMove, 80, 40),
				mouse(ContactMove, 100, 60),
				mouse(ContactEnd, 100, 60),
			},
		},
		{
			name: "button control during contact",
			events: []Event{
				mouse(ContactStart, 10, 10),
				{Kind: LeftButtonPress},
				mouse(ContactMove, 60, 10),
				mouse(ContactEnd, 60, 10),
				{Kind: LeftButtonRelease},
			},
		},
		{
			name: "repeated end and release",
			events: []Event{
				{Kind: ContactStart, Client: Point{X: 50, Y: 50}, Drag: true},
				mouse(ContactEnd, 50, 50),
				mouse(ContactEnd, 50, 50),
				{Kind: LeftButtonRelease},
			},
		},
	}

	for _, seq := range sequences {
		t.Run(seq.name, func(t *testing.T) {
			tr, rec, clock := newTestTranslator(DefaultSensitivity)
			for _, ev := range seq.events {
				tr.Handle(ev)
				clock.Advance(30 * time.Millisecond)
			}
			assert.Equal(t, rec.buttons(ButtonPress), rec.buttons(ButtonRelease))
			assert.False(t, tr.State().Dragging)
			assert.False(t, tr.State().Tracking)
		})
	}
}

func TestDragEngagesIndicator(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: ContactStart, Client: Point{X: 50, Y: 50}, Drag: true})

	require.Len(t, rec.cmds, 1)
	assert.Equal(t, Command{Kind: CommandButton, Button: ButtonLeft, State: ButtonPress}, rec.cmds[0])
	assert.True(t, tr.State().Dragging)
	assert.True(t, tr.Indicator().Engaged)

	tr.Handle(mouse(ContactEnd, 0, 0))
	assert.Equal(t, Command{Kind: CommandButton, Button: ButtonLeft, State: ButtonRelease}, rec.cmds[1])
	assert.False(t, tr.Indicator().Engaged)
	assert.False(t, tr.Indicator().Visible)
}

func TestDisableWhileDragging(t *testing.T) {
	tr, rec, clock := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: ContactStart, Client: Point{X: 50, Y: 50}, Drag: true})
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollDown})
	require.Equal(t, 1, clock.active())

	tr.SetEnabled(false)

	assert.Equal(t, 1, rec.buttons(ButtonRelease))
	st := tr.State()
	assert.False(t, st.Dragging)
	assert.False(t, st.Tracking)
	assert.False(t, st.ScrollRepeating())
	assert.False(t, tr.Indicator().Visible)
	assert.Equal(t, 0, clock.active())

	// A later contact end must not release twice.
	tr.Handle(mouse(ContactEnd, 0, 0))
	assert.Equal(t, 1, rec.buttons(ButtonRelease))
}

func TestDisabledGatesInput(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.SetEnabled(false)

	tr.Handle(mouse(ContactStart, 10, 10))
	tr.Handle(mouse(ContactMove, 90, 90))
	tr.Handle(Event{Kind: LeftButtonPress})
	tr.Handle(Event{Kind: RightClick})
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollUp})

	assert.Empty(t, rec.cmds)
	assert.False(t, tr.State().Tracking)
}

func TestReleaseNotGatedByToggle(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: LeftButtonPress})
	tr.SetEnabled(false)
	tr.Handle(Event{Kind: LeftButtonRelease})

	assert.Equal(t, 1, rec.buttons(ButtonPress))
	assert.Equal(t, 1, rec.buttons(ButtonRelease))
	assert.False(t, tr.State().LeftButtonPressed)
}

func TestLeftButtonHeldAllowsMove(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: LeftButtonPress})
	tr.Handle(mouse(ContactMove, 20, 0))

	moves := rec.ofKind(CommandMove)
	require.Len(t, moves, 1)
	assert.Equal(t, 80, moves[0].X)
	assert.True(t, tr.Indicator().Engaged)
}

func TestRightClick(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: RightClick})
	tr.Handle(Event{Kind: RightClick})

	require.Len(t, rec.cmds, 2)
	assert.Equal(t, Command{Kind: CommandClick, Button: ButtonRight, ClickType: ClickSingle}, rec.cmds[0])
}

func TestScrollRepeatUntilRelease(t *testing.T) {
	tr, rec, clock := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollUp})
	clock.Advance(250 * time.Millisecond)
	tr.Handle(Event{Kind: ScrollRelease})
	clock.Advance(time.Second)

	scrolls := rec.ofKind(CommandScroll)
	require.Len(t, scrolls, 3)
	for _, c := range scrolls {
		assert.Equal(t, -3000, c.Amount)
	}
	start := rec.at[0]
	assert.Equal(t, []time.Duration{0, 100 * time.Millisecond, 200 * time.Millisecond},
		[]time.Duration{rec.at[0].Sub(start), rec.at[1].Sub(start), rec.at[2].Sub(start)})
	assert.Equal(t, 0, clock.active())
}

func TestScrollDownAmount(t *testing.T) {
	tr, rec, _ := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollDown})
	tr.Handle(Event{Kind: ScrollRelease})

	require.Len(t, rec.cmds, 1)
	assert.Equal(t, 3000, rec.cmds[0].Amount)
}

func TestNewScrollRepeatCancelsOld(t *testing.T) {
	tr, rec, clock := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollUp})
	clock.Advance(150 * time.Millisecond)
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollDown})
	assert.Equal(t, 1, clock.active())
	clock.Advance(250 * time.Millisecond)

	var amounts []int
	for _, c := range rec.ofKind(CommandScroll) {
		amounts = append(amounts, c.Amount)
	}
	assert.Equal(t, []int{-3000, -3000, 3000, 3000, 3000}, amounts)
	assert.Equal(t, 1, clock.active())

	tr.Handle(Event{Kind: ScrollRelease})
	tr.Handle(Event{Kind: ScrollRelease})
	assert.Equal(t, 0, clock.active())
}

func TestSensitivityClamped(t *testing.T) {
	tr, _, _ := newTestTranslator(0)
	assert.Equal(t, DefaultSensitivity, tr.Sensitivity())

	tr.SetSensitivity(42)
	assert.Equal(t, MaxSensitivity, tr.Sensitivity())
	tr.SetSensitivity(-1)
	assert.Equal(t, MinSensitivity, tr.Sensitivity())
}

func TestReleaseAll(t *testing.T) {
	tr, rec, clock := newTestTranslator(DefaultSensitivity)
	tr.Handle(Event{Kind: ContactStart, Client: Point{X: 50, Y: 50}, Drag: true})
	tr.Handle(Event{Kind: LeftButtonPress})
	tr.Handle(Event{Kind: ScrollPress, Direction: ScrollUp})

	tr.ReleaseAll()

	assert.Equal(t, 2, rec.buttons(ButtonPress))
	assert.Equal(t, 2, rec.buttons(ButtonRelease))
	assert.Equal(t, 0, clock.active())
}
