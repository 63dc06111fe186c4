package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

var (
	flagRounds   int
	flagOut      string
	flagMaxTicks int
	flagBias     float64
	flagDeltaMs  float64
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autopilot rounds",
	Long: `Play rounds without a terminal using the built-in autopilot and print
a score summary. Useful to compare profiles or to check that a custom
configuration is still playable.

Simulated rounds never touch the scores database.

Examples:
  flappy simulate
  flappy simulate --rounds 500 --profile extreme
  flappy simulate --seed 42 --out rounds.csv`,
	Args: cobra.NoArgs,
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRounds, "rounds", 20, "Number of rounds to play")
	simulateCmd.Flags().StringVar(&flagOut, "out", "", "Write one CSV row per round to this file")
	simulateCmd.Flags().IntVar(&flagMaxTicks, "max-ticks", 60*60*5, "Tick limit per round (0 = none)")
	simulateCmd.Flags().Float64Var(&flagBias, "bias", 0, "Autopilot aim inside the gap (0.5 = middle, 0 = default)")
	simulateCmd.Flags().Float64Var(&flagDeltaMs, "delta-ms", 1000.0/60, "Simulated milliseconds per tick")
}

func runSimulate(_ *cobra.Command, _ []string) {
	cfg := loadConfig()

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	history := storage.NewMemoryStore()
	opts := flappy.Options{
		Config:   cfg,
		Profile:  flagProfile,
		Seed:     seed,
		Store:    history,
		Recorder: history,
		Logger:   newLogger(os.Stderr, "flappy-sim"),
	}

	var csv *telemetry.RoundWriter
	if flagOut != "" {
		w, err := telemetry.CreateRoundFile(flagOut)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer w.Close()
		w.Seed = seed
		csv = w
		opts.Recorder = multiRecorder{history, w}
	}

	session := flappy.NewSession(opts)
	pilot := flappy.Autopilot{Bias: flagBias}

	scores := make([]int, 0, flagRounds)
	unfinished := 0
	for i := 0; i < flagRounds; i++ {
		snap := flappy.PlayRound(session, pilot, flagDeltaMs, flagMaxTicks)
		if snap.Phase != flappy.PhaseGameOver {
			unfinished++
			continue
		}
		scores = append(scores, snap.Round.Score)
	}

	fmt.Printf("Profile: %s  Seed: %d\n", session.Profile().Name, seed)
	fmt.Println(telemetry.Summarize(scores))
	fmt.Printf("Best: %d\n", session.BestScore())
	writeTopRounds(os.Stdout, history, session.Profile().Name, 3)
	if unfinished > 0 {
		fmt.Printf("%d rounds hit the tick limit and were not counted\n", unfinished)
	}
	if csv != nil {
		fmt.Printf("Wrote %d rounds to %s\n", csv.Rounds(), flagOut)
	}
}

// writeTopRounds lists the n best simulated rounds of the profile.
func writeTopRounds(w io.Writer, history *storage.MemoryStore, profile string, n int) {
	top := history.TopScores(profile, n)
	if len(top) == 0 {
		return
	}
	fmt.Fprintln(w, "Top rounds:")
	for i, e := range top {
		fmt.Fprintf(w, "  %d. round %-4d score=%-4d ticks=%-6d end=%s\n", i+1, e.ID, e.Score, e.Ticks, e.Reason)
	}
}

// multiRecorder fans a finished round out to several recorders and returns
// the first error.
type multiRecorder []flappy.RoundRecorder

func (m multiRecorder) RecordRound(result flappy.RoundResult) error {
	var first error
	for _, r := range m {
		if err := r.RecordRound(result); err != nil && first == nil {
			first = err
		}
	}
	return first
}
