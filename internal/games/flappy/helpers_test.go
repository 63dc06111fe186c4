package flappy

import (
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
)

// stubRand returns fixed values so spawns are predictable.
type stubRand struct {
	f float64
	n int
}

func (r stubRand) Float64() float64 { return r.f }

func (r stubRand) Intn(n int) int {
	if r.n >= n {
		return n - 1
	}
	return r.n
}

// memStore is an in-memory BestScoreStore that records writes.
type memStore struct {
	best   int
	ok     bool
	writes []int
}

func (m *memStore) BestScore() (int, bool, error) { return m.best, m.ok, nil }

func (m *memStore) SetBestScore(score int) error {
	m.best = score
	m.ok = true
	m.writes = append(m.writes, score)
	return nil
}

// brokenStore fails every operation.
type brokenStore struct {
	writes int
}

func (b *brokenStore) BestScore() (int, bool, error) {
	return 0, false, errors.New("storage unavailable")
}

func (b *brokenStore) SetBestScore(int) error {
	b.writes++
	return errors.New("storage unavailable")
}

// countingAudio counts collaborator calls.
type countingAudio struct {
	music, stop, cue int
}

func (a *countingAudio) PlayRoundMusic()  { a.music++ }
func (a *countingAudio) StopRoundMusic()  { a.stop++ }
func (a *countingAudio) PlayGameOverCue() { a.cue++ }

// roundLog collects finished rounds.
type roundLog struct {
	rounds []RoundResult
}

func (r *roundLog) RecordRound(res RoundResult) error {
	r.rounds = append(r.rounds, res)
	return nil
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

// newPlayingSession returns a session that has finished its countdown.
func newPlayingSession(t *testing.T, opts Options) *Session {
	t.Helper()
	if opts.Logger == nil {
		opts.Logger = quietLogger()
	}
	s := NewSession(opts)
	if !s.Primary() {
		t.Fatal("Primary() from Start should begin the countdown")
	}
	s.Tick(s.cfg.Round.CountdownMs)
	if s.Phase() != PhasePlaying {
		t.Fatalf("expected playing after countdown, got %v", s.Phase())
	}
	return s
}

// hover pins the character at the field center so that the next tick leaves
// it there with zero velocity.
func hover(s *Session) {
	s.character.Y = s.cfg.Field.Height / 2
	s.character.VY = -s.profile.Gravity
}
