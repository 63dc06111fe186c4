package storage

import (
	"sort"
	"sync"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// MemoryStore keeps the best score and round history in process memory.
// Used when no database is configured. Safe for concurrent use.
type MemoryStore struct {
	mu     sync.Mutex
	best   int
	saved  bool
	rounds []ScoreEntry
}

var (
	_ flappy.BestScoreStore = (*MemoryStore)(nil)
	_ flappy.RoundRecorder  = (*MemoryStore)(nil)
)

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// BestScore implements flappy.BestScoreStore.
func (m *MemoryStore) BestScore() (int, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, m.saved, nil
}

// SetBestScore implements flappy.BestScoreStore. Keeps the maximum.
func (m *MemoryStore) SetBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.saved || score > m.best {
		m.best = score
	}
	m.saved = true
	return nil
}

// RecordRound implements flappy.RoundRecorder.
func (m *MemoryStore) RecordRound(result flappy.RoundResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rounds = append(m.rounds, ScoreEntry{
		ID:         int64(len(m.rounds) + 1),
		Profile:    result.Profile,
		Score:      result.Score,
		BestScore:  result.BestScore,
		Ticks:      result.Ticks,
		DurationMs: result.DurationMs,
		Reason:     result.Reason.String(),
		CreatedAt:  time.Now(),
	})
	return nil
}

// TopScores returns the best rounds for the profile (all when empty).
func (m *MemoryStore) TopScores(profile string, limit int) []ScoreEntry {
	if limit <= 0 {
		limit = 10
	}

	m.mu.Lock()
	var out []ScoreEntry
	for _, e := range m.rounds {
		if profile == "" || e.Profile == profile {
			out = append(out, e)
		}
	}
	m.mu.Unlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
