package flappy

// Phase is the game state machine's current state.
type Phase int

const (
	PhaseStart     Phase = iota // waiting for the first primary action
	PhaseCountdown              // round reset, timer running, physics frozen
	PhasePlaying                // full simulation
	PhaseGameOver               // frozen display, waiting for restart
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhaseGameOver:
		return "gameover"
	default:
		return "unknown"
	}
}

// AllowsProfileSwitch reports whether a profile may be selected in this phase.
func (p Phase) AllowsProfileSwitch() bool {
	return p == PhaseStart || p == PhaseGameOver
}

// EndReason tells why a round ended. Ending a round is not an error; it is
// how the simulation hands control back to the state machine.
type EndReason int

const (
	EndNone     EndReason = iota
	EndCeiling            // character left the field through the top
	EndGround             // character left the field through the bottom
	EndObstacle           // character touched a solid obstacle segment
)

// String returns the end reason name.
func (r EndReason) String() string {
	switch r {
	case EndNone:
		return "none"
	case EndCeiling:
		return "ceiling"
	case EndGround:
		return "ground"
	case EndObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}
