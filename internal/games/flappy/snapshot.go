package flappy

import (
	"math"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

// Snapshot is a read-only copy of everything a renderer needs for one frame.
// Mutating it never affects the session.
type Snapshot struct {
	Phase         Phase
	Character     Character
	Obstacles     []Obstacle
	Round         RoundState
	Profile       config.Profile
	Field         config.FieldConfig
	ObstacleWidth float64
	CountdownMs   float64 // full countdown duration
	Background    int     // presentation seed drawn on countdown entry
	EndReason     EndReason
}

// CountdownSeconds returns the number shown on the countdown: 3, 2, 1 for a
// 3200 ms countdown. The fraction of a second left over from the configured
// duration is the final "GO!" stretch, reported as 0.
func (s Snapshot) CountdownSeconds() int {
	if s.Phase != PhaseCountdown || s.Round.CountdownRemainingMs <= 0 {
		return 0
	}
	lead := math.Mod(s.CountdownMs, 1000)
	secs := int(math.Ceil((s.Round.CountdownRemainingMs - lead) / 1000))
	if secs < 0 {
		return 0
	}
	return secs
}

// Tilt returns the display rotation hint for the character in radians,
// nose-up negative.
func (s Snapshot) Tilt() float64 {
	return math.Max(-0.5, math.Min(0.6, s.Character.VY/10))
}

// NewBest reports whether the finished round set the best score.
func (s Snapshot) NewBest() bool {
	return s.Phase == PhaseGameOver && s.Round.NewBest
}

// Snapshot returns a copy of the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Phase:         s.phase,
		Character:     s.character,
		Obstacles:     s.obstacles.Copy(),
		Round:         s.round,
		Profile:       s.profile,
		Field:         s.cfg.Field,
		ObstacleWidth: s.cfg.Obstacles.Width,
		CountdownMs:   s.cfg.Round.CountdownMs,
		Background:    s.background,
		EndReason:     s.endReason,
	}
}
