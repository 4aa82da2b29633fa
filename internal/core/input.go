package core

// Action represents a semantic game action, abstracted from physical key presses
// and touches. Hosts translate raw input into actions; the simulation decides per
// state which actions it accepts.
type Action int

const (
	ActionNone    Action = iota
	ActionJump           // Space, W, Up, tap - jump (also starts the first run)
	ActionStart          // Enter - start from the waiting screen
	ActionRestart        // R, any key after game over cooldown
	ActionQuit           // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionJump:
		return "Jump"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ParseAction converts a wire name ("jump", "start", "restart", "quit") into an
// Action. Unknown names yield ActionNone.
func ParseAction(name string) Action {
	switch name {
	case "jump":
		return ActionJump
	case "start":
		return ActionStart
	case "restart":
		return ActionRestart
	case "quit":
		return ActionQuit
	default:
		return ActionNone
	}
}
