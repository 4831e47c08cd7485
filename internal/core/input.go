package core

// Action represents a semantic player intent, abstracted from physical key
// presses.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveLeft         // Left, H, A
	ActionMoveRight        // Right, L, D
	ActionSoftDrop         // Down, J, S
	ActionRotate           // Up, K, W, Space
	ActionPause            // P
	ActionStart            // N - new game at any time
	ActionRestart          // R - new game after game over
	ActionBack             // B, Escape - back to menu
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveLeft:
		return "MoveLeft"
	case ActionMoveRight:
		return "MoveRight"
	case ActionSoftDrop:
		return "SoftDrop"
	case ActionRotate:
		return "Rotate"
	case ActionPause:
		return "Pause"
	case ActionStart:
		return "Start"
	case ActionRestart:
		return "Restart"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMovement reports whether the action steers the active piece.
func (a Action) IsMovement() bool {
	switch a {
	case ActionMoveLeft, ActionMoveRight, ActionSoftDrop, ActionRotate:
		return true
	default:
		return false
	}
}
