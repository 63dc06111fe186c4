package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the game to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone       Action = iota
	ActionPrimary           // Space, Up, W, Enter, click - start / flap
	ActionRestart           // R - restart after game over
	ActionProfile1          // 1 - first difficulty profile
	ActionProfile2          // 2
	ActionProfile3          // 3
	ActionProfile4          // 4
	ActionHelp              // ? - toggle key help
	ActionScreenshot        // Ctrl+S - dump the screen to a file
	ActionQuit              // Q, Ctrl+C - exit game/session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionPrimary:
		return "Primary"
	case ActionRestart:
		return "Restart"
	case ActionProfile1, ActionProfile2, ActionProfile3, ActionProfile4:
		return "Profile"
	case ActionHelp:
		return "Help"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// ProfileIndex returns the zero-based profile slot for profile actions.
func (a Action) ProfileIndex() (int, bool) {
	if a >= ActionProfile1 && a <= ActionProfile4 {
		return int(a - ActionProfile1), true
	}
	return 0, false
}
