// Package tui provides the Bubble Tea front end for the game.
// It maps keys to session input, drives ticks from wall-clock time and
// serves the same model over SSH.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a simulation tick.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// maxDeltaMs bounds the elapsed time fed to one tick. A stalled terminal
// would otherwise finish the countdown or fire the spawn timer in one step.
const maxDeltaMs = 250.0

// elapsedMs returns the milliseconds between two ticks, clamped to
// [0, maxDeltaMs]. A zero previous time yields 0.
func elapsedMs(prev, now time.Time) float64 {
	if prev.IsZero() {
		return 0
	}
	ms := float64(now.Sub(prev)) / float64(time.Millisecond)
	if ms < 0 {
		return 0
	}
	if ms > maxDeltaMs {
		return maxDeltaMs
	}
	return ms
}
