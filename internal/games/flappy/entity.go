package flappy

import "github.com/vovakirdan/tui-flappy/internal/core"

// Character is the player-controlled entity. X never changes during a round.
type Character struct {
	X      float64 // fixed horizontal position (center)
	Y      float64 // vertical position (center), grows downward
	VY     float64 // vertical velocity per tick, negative = up
	Radius float64 // collision radius
}

// HSpan returns the character's horizontal extent.
func (c Character) HSpan() core.Span {
	return core.SpanAround(c.X, c.Radius)
}

// VSpan returns the character's vertical extent.
func (c Character) VSpan() core.Span {
	return core.SpanAround(c.Y, c.Radius)
}

// ObstacleID identifies an obstacle. IDs grow monotonically in spawn order.
type ObstacleID int64

// NoObstacle marks "no obstacle scored yet" in RoundState.LastPassedID.
const NoObstacle ObstacleID = -1

// Obstacle is a moving barrier with a passable vertical gap.
// The gap spans [GapTop, GapTop+gapSize); everything else in its column is solid.
type Obstacle struct {
	ID     ObstacleID
	X      float64 // left edge
	GapTop float64
	Label  string
}

// HSpan returns the obstacle's horizontal extent for the given width.
func (o Obstacle) HSpan(width float64) core.Span {
	return core.SpanOf(o.X, width)
}

// GapBottom returns the first solid coordinate below the gap.
func (o Obstacle) GapBottom(gapSize float64) float64 {
	return o.GapTop + gapSize
}

// RoundState holds the per-round counters. BestScore survives rounds.
type RoundState struct {
	Score                int
	BestScore            int
	NewBest              bool       // BestScore was raised during this round
	LastPassedID         ObstacleID // NoObstacle until the first pass
	SpawnTimerMs         float64    // time accumulated since the last spawn
	CountdownRemainingMs float64
	Ticks                int     // simulation steps run this round
	ElapsedMs            float64 // elapsed time while playing
}

// Rand is the random source used for content selection. *math/rand.Rand
// satisfies it; tests can pass a scripted source.
type Rand interface {
	Float64() float64
	Intn(n int) int
}
