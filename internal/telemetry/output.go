// Package telemetry records headless rounds as CSV and summarizes score
// distributions.
package telemetry

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/gocarina/gocsv"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
)

// RoundRecord is one CSV row.
type RoundRecord struct {
	Round      int     `csv:"round"`
	Profile    string  `csv:"profile"`
	Seed       int64   `csv:"seed"`
	Score      int     `csv:"score"`
	BestScore  int     `csv:"best"`
	Ticks      int     `csv:"ticks"`
	DurationMs float64 `csv:"duration_ms"`
	Reason     string  `csv:"reason"`
}

// RoundWriter appends round records to a CSV stream. The header is written
// with the first record. It also implements flappy.RoundRecorder.
type RoundWriter struct {
	mu            sync.Mutex
	w             io.Writer
	file          *os.File
	headerWritten bool
	rounds        int

	// Seed is copied into every record written through RecordRound.
	Seed int64
}

var _ flappy.RoundRecorder = (*RoundWriter)(nil)

// NewRoundWriter writes CSV to w.
func NewRoundWriter(w io.Writer) *RoundWriter {
	return &RoundWriter{w: w}
}

// CreateRoundFile creates (or truncates) a CSV file, making parent
// directories as needed.
func CreateRoundFile(path string) (*RoundWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("telemetry: creating output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("telemetry: creating %s: %w", path, err)
	}
	return &RoundWriter{w: f, file: f}, nil
}

// Write appends one record.
func (rw *RoundWriter) Write(rec RoundRecord) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.writeLocked(rec)
}

func (rw *RoundWriter) writeLocked(rec RoundRecord) error {
	records := []RoundRecord{rec}

	if !rw.headerWritten {
		// First write includes headers
		if err := gocsv.Marshal(records, rw.w); err != nil {
			return fmt.Errorf("telemetry: writing round: %w", err)
		}
		rw.headerWritten = true
		return nil
	}

	if err := gocsv.MarshalWithoutHeaders(records, rw.w); err != nil {
		return fmt.Errorf("telemetry: writing round: %w", err)
	}
	return nil
}

// RecordRound implements flappy.RoundRecorder. Rounds are numbered from 1.
func (rw *RoundWriter) RecordRound(result flappy.RoundResult) error {
	rw.mu.Lock()
	defer rw.mu.Unlock()

	rw.rounds++
	return rw.writeLocked(RoundRecord{
		Round:      rw.rounds,
		Profile:    result.Profile,
		Seed:       rw.Seed,
		Score:      result.Score,
		BestScore:  result.BestScore,
		Ticks:      result.Ticks,
		DurationMs: result.DurationMs,
		Reason:     result.Reason.String(),
	})
}

// Rounds returns how many rounds were recorded through RecordRound.
func (rw *RoundWriter) Rounds() int {
	rw.mu.Lock()
	defer rw.mu.Unlock()
	return rw.rounds
}

// Close closes the underlying file, if the writer owns one.
func (rw *RoundWriter) Close() error {
	if rw.file == nil {
		return nil
	}
	return rw.file.Close()
}

// ReadRounds parses a CSV stream produced by RoundWriter.
func ReadRounds(r io.Reader) ([]RoundRecord, error) {
	var records []RoundRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("telemetry: reading rounds: %w", err)
	}
	return records, nil
}
