package touchpad

import "fmt"

// CommandKind identifies an outbound device command.
type CommandKind int

const (
	CommandMove CommandKind = iota
	CommandClick
	CommandButton
	CommandScroll
)

// Button names and states as the device API spells them.
const (
	ButtonLeft  = "left"
	ButtonRight = "right"

	ButtonPress   = "press"
	ButtonRelease = "release"

	ClickSingle = "single"
)

// Command is a decided remote action. Only the fields relevant to Kind are set.
type Command struct {
	Kind CommandKind

	X int
	Y int

	Button    string
	State     string
	ClickType string

	// Amount is already scaled to device scroll units.
	Amount int
}

func (c Command) String() string {
	switch c.Kind {
	case CommandMove:
		return fmt.Sprintf("move(%d,%d)", c.X, c.Y)
	case CommandClick:
		return fmt.Sprintf("click(%s,%s)", c.Button, c.ClickType)
	case CommandButton:
		return fmt.Sprintf("button(%s,%s)", c.Button, c.State)
	case CommandScroll:
		return fmt.Sprintf("scroll(%d)", c.Amount)
	default:
		return "unknown"
	}
}

// Emitter receives commands as soon as the translator decides them.
// Implementations must not block; delivery is their concern.
type Emitter interface {
	Emit(Command)
}

// EmitterFunc adapts a function to Emitter.
type EmitterFunc func(Command)

func (f EmitterFunc) Emit(c Command) { f(c) }

func moveCommand(x, y int) Command {
	return Command{Kind: CommandMove, X: x, Y: y}
}

func buttonCommand(button, state string) Command {
	return Command{Kind: CommandButton, Button: button, State: state}
}

func clickCommand(button string) Command {
	return Command{Kind: CommandClick, Button: button, ClickType: ClickSingle}
}

func scrollCommand(amount int) Command {
	return Command{Kind: CommandScroll, Amount: amount}
}
