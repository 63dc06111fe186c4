package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreBestScore(t *testing.T) {
	store := openTestStore(t)

	// Nothing stored yet
	score, ok, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if ok || score != 0 {
		t.Errorf("BestScore() = %d, %v, expected 0, false", score, ok)
	}

	if err := store.SetBestScore(7); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	// Writing the same value twice is idempotent
	if err := store.SetBestScore(7); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}

	score, ok, err = store.BestScore()
	if err != nil || !ok || score != 7 {
		t.Errorf("BestScore() = %d, %v, %v, expected 7, true, nil", score, ok, err)
	}

	if err := store.SetBestScore(12); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if score, _, _ = store.BestScore(); score != 12 {
		t.Errorf("BestScore() = %d, expected 12", score)
	}
}

func TestStoreBestScoreCorruptValue(t *testing.T) {
	store := openTestStore(t)

	if _, err := store.db.Exec("INSERT INTO kv (key, value) VALUES (?, ?)", BestScoreKey, "not a number"); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	score, ok, err := store.BestScore()
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if ok || score != 0 {
		t.Errorf("corrupt value read as %d, %v, expected absent", score, ok)
	}

	// A later write repairs it
	if err := store.SetBestScore(3); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if score, ok, _ = store.BestScore(); !ok || score != 3 {
		t.Errorf("BestScore() = %d, %v after repair", score, ok)
	}
}

func TestStoreBestScorePersists(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	store.SetBestScore(21)
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	if score, ok, _ := store.BestScore(); !ok || score != 21 {
		t.Errorf("BestScore() after reopen = %d, %v, expected 21", score, ok)
	}

	if err := store.ResetBestScore(); err != nil {
		t.Fatalf("ResetBestScore() failed: %v", err)
	}
	if _, ok, _ := store.BestScore(); ok {
		t.Error("best score still present after reset")
	}
}

func TestStoreRecordRound(t *testing.T) {
	store := openTestStore(t)

	err := store.RecordRound(flappy.RoundResult{
		Profile:    "hard",
		Score:      9,
		BestScore:  11,
		Ticks:      1234,
		DurationMs: 19744,
		Reason:     flappy.EndObstacle,
	})
	if err != nil {
		t.Fatalf("RecordRound() failed: %v", err)
	}

	rounds, err := store.AllScores("hard")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(rounds) != 1 {
		t.Fatalf("Expected 1 round, got %d", len(rounds))
	}

	r := rounds[0]
	if r.Score != 9 || r.BestScore != 11 || r.Ticks != 1234 || r.DurationMs != 19744 || r.Reason != "obstacle" {
		t.Errorf("stored round = %+v", r)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, score := range []int{100, 50, 200} {
		if _, err := store.SaveScore("normal", score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	// Different profile
	if _, err := store.SaveScore("easy", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	scores, err := store.TopScores("normal", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}

	// Should be sorted descending
	if scores[0].Score != 200 || scores[1].Score != 100 || scores[2].Score != 50 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	all, err := store.TopScores("", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(all) != 4 || all[0].Score != 500 {
		t.Errorf("TopScores across profiles = %v", all)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("normal", (i+1)*100)
	}

	scores, err := store.TopScores("normal", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}

	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}

	// Should be 500, 400, 300 (top 3)
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty profile, got %d", high)
	}

	store.SaveScore("normal", 100)
	store.SaveScore("normal", 300)
	store.SaveScore("normal", 200)

	high, err = store.HighScore("normal")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("normal", 100)
	store.SaveScore("normal", 200)
	store.SaveScore("easy", 300)
	store.SetBestScore(300)

	if err := store.ClearScores("normal"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	normal, _ := store.TopScores("normal", 10)
	if len(normal) != 0 {
		t.Errorf("Expected 0 normal scores after clear, got %d", len(normal))
	}

	easy, _ := store.TopScores("easy", 10)
	if len(easy) != 1 {
		t.Errorf("easy scores should not be affected by clearing normal")
	}

	if best, ok, _ := store.BestScore(); !ok || best != 300 {
		t.Errorf("ClearScores() should keep the best score, got %d, %v", best, ok)
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("normal", i*10)
	}

	scores, err := store.AllScores("normal")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}

	if len(scores) != 20 {
		t.Fatalf("Expected 20 scores, got %d", len(scores))
	}
	// Play order
	if scores[0].Score != 0 || scores[19].Score != 190 {
		t.Errorf("AllScores() not in play order: first %d, last %d", scores[0].Score, scores[19].Score)
	}
}

func TestStoreProfileStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("normal", 10)
	store.SaveScore("normal", 20)
	store.SaveScore("hard", 5)

	stats, err := store.GetProfileStats("normal")
	if err != nil {
		t.Fatalf("GetProfileStats() failed: %v", err)
	}
	if stats.RoundCount != 2 || stats.HighScore != 20 || stats.AvgScore != 15 || stats.TotalScore != 30 {
		t.Errorf("stats = %+v", stats)
	}

	empty, err := store.GetProfileStats("extreme")
	if err != nil {
		t.Fatalf("GetProfileStats() failed: %v", err)
	}
	if empty.RoundCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllProfileStats()
	if err != nil {
		t.Fatalf("GetAllProfileStats() failed: %v", err)
	}
	if len(all) != 2 || all["hard"].HighScore != 5 {
		t.Errorf("all stats = %v", all)
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}

func TestSessionWithSQLiteStore(t *testing.T) {
	store := openTestStore(t)
	store.SetBestScore(4)

	s := flappy.NewSession(flappy.Options{Store: store, Recorder: store, Seed: 1})
	if s.BestScore() != 4 {
		t.Fatalf("session BestScore() = %d, expected 4 from the database", s.BestScore())
	}

	flappy.PlayRound(s, nil, 16, 0)

	rounds, err := store.AllScores("")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(rounds) != 1 || rounds[0].Reason != "ground" || rounds[0].BestScore != 4 {
		t.Errorf("recorded rounds = %+v", rounds)
	}
}

func TestStoreBestScoreNeverDecreases(t *testing.T) {
	store := openTestStore(t)

	store.SetBestScore(9)
	if err := store.SetBestScore(4); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	if score, _, _ := store.BestScore(); score != 9 {
		t.Errorf("BestScore() = %d after a lower write, expected 9", score)
	}
}

func TestConcurrentSessionsKeepHighestBest(t *testing.T) {
	store := openTestStore(t)

	// Both players connect before anyone has a best score
	early := flappy.NewSession(flappy.Options{
		Profile: config.ProfileEasy, Store: store, Recorder: store, Seed: 42,
	})
	late := flappy.NewSession(flappy.Options{Store: store, Recorder: store, Seed: 7})
	if early.BestScore() != 0 || late.BestScore() != 0 {
		t.Fatalf("sessions loaded best %d and %d, expected 0", early.BestScore(), late.BestScore())
	}

	// The later player sets a high best first
	if err := store.SetBestScore(1000); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}

	// The earlier player still believes the best is 0 and beats it
	snap := flappy.PlayRound(early, flappy.Autopilot{}, 16, 20000)
	if snap.Round.Score < 1 || !snap.Round.NewBest {
		t.Fatalf("early session scored %d (new best %v), expected a new personal best",
			snap.Round.Score, snap.Round.NewBest)
	}

	if score, ok, _ := store.BestScore(); !ok || score != 1000 {
		t.Errorf("persisted best = %d, expected 1000 to survive the stale session", score)
	}

	// A fresh session sees the highest value
	if s := flappy.NewSession(flappy.Options{Store: store}); s.BestScore() != 1000 {
		t.Errorf("new session BestScore() = %d, expected 1000", s.BestScore())
	}
}

func TestMemoryStore(t *testing.T) {
	m := NewMemoryStore()

	if _, ok, _ := m.BestScore(); ok {
		t.Error("new MemoryStore should have no best score")
	}
	m.SetBestScore(8)
	if score, ok, _ := m.BestScore(); !ok || score != 8 {
		t.Errorf("BestScore() = %d, %v, expected 8", score, ok)
	}
	m.SetBestScore(5)
	if score, _, _ := m.BestScore(); score != 8 {
		t.Errorf("BestScore() = %d after a lower write, expected 8", score)
	}

	for i, score := range []int{3, 9, 1} {
		profile := "normal"
		if i == 2 {
			profile = "easy"
		}
		m.RecordRound(flappy.RoundResult{Profile: profile, Score: score, Reason: flappy.EndGround})
	}

	top := m.TopScores("normal", 10)
	if len(top) != 2 || top[0].Score != 9 || top[1].Score != 3 {
		t.Errorf("TopScores(normal) = %v", top)
	}
	if all := m.TopScores("", 1); len(all) != 1 || all[0].Score != 9 {
		t.Errorf("TopScores(all, 1) = %v", all)
	}
}
