// Package storage provides SQLite-based persistence for the best score and the
// round history. Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// BestScoreKey is the fixed key the best score is stored under.
const BestScoreKey = "flappy_shopintoons_best"

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents one recorded round.
type ScoreEntry struct {
	ID         int64
	Profile    string
	Score      int
	BestScore  int
	Ticks      int
	DurationMs float64
	Reason     string
	CreatedAt  time.Time
}

var (
	_ flappy.BestScoreStore = (*Store)(nil)
	_ flappy.RoundRecorder  = (*Store)(nil)
)

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS rounds (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			profile TEXT NOT NULL,
			score INTEGER NOT NULL,
			best_score INTEGER NOT NULL DEFAULT 0,
			ticks INTEGER NOT NULL DEFAULT 0,
			duration_ms REAL NOT NULL DEFAULT 0,
			reason TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_rounds_profile ON rounds(profile);
		CREATE INDEX IF NOT EXISTS idx_rounds_top ON rounds(profile, score DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// BestScore implements flappy.BestScoreStore. A missing or non-numeric
// value reports ok=false.
func (s *Store) BestScore() (int, bool, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", BestScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage: cannot read best score: %w", err)
	}

	score, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false, nil
	}
	return score, true, nil
}

// SetBestScore implements flappy.BestScoreStore. The stored value only
// grows: a lower score from a session with a stale view is ignored.
func (s *Store) SetBestScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CAST(kv.value AS INTEGER) < CAST(excluded.value AS INTEGER)`,
		BestScoreKey, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// RecordRound implements flappy.RoundRecorder.
func (s *Store) RecordRound(result flappy.RoundResult) error {
	_, err := s.SaveRound(ScoreEntry{
		Profile:    result.Profile,
		Score:      result.Score,
		BestScore:  result.BestScore,
		Ticks:      result.Ticks,
		DurationMs: result.DurationMs,
		Reason:     result.Reason.String(),
	})
	return err
}

// SaveRound records a finished round.
// Returns the ID of the inserted record.
func (s *Store) SaveRound(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO rounds (profile, score, best_score, ticks, duration_ms, reason)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.Profile, e.Score, e.BestScore, e.Ticks, e.DurationMs, e.Reason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save round: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SaveScore records a bare score for the given profile.
func (s *Store) SaveScore(profile string, score int) (int64, error) {
	return s.SaveRound(ScoreEntry{Profile: profile, Score: score})
}

const roundColumns = `id, profile, score, best_score, ticks, duration_ms, reason, created_at`

// TopScores retrieves the top N rounds for the given profile, or across all
// profiles when profile is empty. Results are ordered by score descending.
func (s *Store) TopScores(profile string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE (? = '' OR profile = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		profile, profile, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanRounds(rows)
}

// AllScores retrieves every round for the given profile (all profiles when
// empty) in the order they were played.
func (s *Store) AllScores(profile string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+roundColumns+`
		 FROM rounds
		 WHERE (? = '' OR profile = ?)
		 ORDER BY id ASC`,
		profile, profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanRounds(rows)
}

func scanRounds(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Profile, &e.Score, &e.BestScore, &e.Ticks,
			&e.DurationMs, &e.Reason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest recorded round score for the profile.
// Returns 0 if no rounds exist.
func (s *Store) HighScore(profile string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM rounds WHERE (? = '' OR profile = ?)",
		profile, profile,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes the round history for the profile, or all of it when
// profile is empty. The best score is kept.
func (s *Store) ClearScores(profile string) error {
	_, err := s.db.Exec("DELETE FROM rounds WHERE (? = '' OR profile = ?)", profile, profile)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// ResetBestScore removes the stored best score.
func (s *Store) ResetBestScore() error {
	if _, err := s.db.Exec("DELETE FROM kv WHERE key = ?", BestScoreKey); err != nil {
		return fmt.Errorf("storage: cannot reset best score: %w", err)
	}
	return nil
}

// ProfileStats contains aggregated statistics for a profile.
type ProfileStats struct {
	Profile    string
	RoundCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
}

// GetProfileStats retrieves aggregated statistics for a specific profile.
func (s *Store) GetProfileStats(profile string) (*ProfileStats, error) {
	stats := &ProfileStats{Profile: profile}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM rounds WHERE profile = ?`,
		profile,
	).Scan(&stats.RoundCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// GetAllProfileStats retrieves statistics for every profile that has been played.
func (s *Store) GetAllProfileStats() (map[string]*ProfileStats, error) {
	rows, err := s.db.Query(
		`SELECT profile, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM rounds
		 GROUP BY profile`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get profile stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ProfileStats)
	for rows.Next() {
		var ps ProfileStats
		var lastPlayed any
		if err := rows.Scan(&ps.Profile, &ps.RoundCount, &ps.HighScore, &ps.AvgScore, &ps.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ps.LastPlayed = parseTime(lastPlayed)
		stats[ps.Profile] = &ps
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
