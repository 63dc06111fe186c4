package main

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
	"github.com/vovakirdan/tui-flappy/internal/telemetry"
)

var (
	flagScoresLimit int
	flagInteractive bool
	flagExportCSV   string
	flagClear       bool
	flagResetBest   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [profile]",
	Short: "Show round history and score statistics",
	Long: `Display the best rounds and a score summary, for one profile or
for all of them.

Examples:
  flappy scores
  flappy scores hard
  flappy scores -i                 # Browse rounds interactively
  flappy scores --csv rounds.csv   # Export the full history
  flappy scores easy --clear       # Forget the easy rounds (best score stays)
  flappy scores --reset-best       # Forget the best score`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of rounds to list")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse rounds in a table")
	scoresCmd.Flags().StringVar(&flagExportCSV, "csv", "", "Export the round history to a CSV file")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the listed rounds")
	scoresCmd.Flags().BoolVar(&flagResetBest, "reset-best", false, "Forget the stored best score")
}

func runScores(_ *cobra.Command, args []string) {
	cfg := loadConfig()

	profile := ""
	if len(args) == 1 {
		profile = args[0]
		if _, ok := cfg.Profile(profile); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", profile)
			fmt.Fprintln(os.Stderr, "Run 'flappy profiles' to see available profiles.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	switch {
	case flagInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, cfg.Profiles, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return

	case flagClear:
		if err := store.ClearScores(profile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Round history cleared.")
		return

	case flagResetBest:
		if err := store.ResetBestScore(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Best score reset.")
		return

	case flagExportCSV != "":
		n, err := exportRounds(store, profile, flagExportCSV)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Exported %d rounds to %s\n", n, flagExportCSV)
		return
	}

	printScores(store, profile)
}

func printScores(store *storage.Store, profile string) {
	title := "all profiles"
	if profile != "" {
		title = profile
	}
	fmt.Printf("High Scores - %s\n", title)
	fmt.Println()

	scores, err := store.TopScores(profile, flagScoresLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		os.Exit(1)
	}

	if best, ok, err := store.BestScore(); err == nil && ok {
		fmt.Printf("Best: %d\n\n", best)
	}

	if len(scores) == 0 {
		fmt.Println("No rounds recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return
	}

	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %s\n", "Rank", "Score", "Profile", "End", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %-8s  %s\n", "----", "-----", "-------", "---", "----")
	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Printf("  %-4d  %-6d  %-8s  %-8s  %s\n", i+1, entry.Score, entry.Profile, entry.Reason, dateStr)
	}

	all, err := store.AllScores(profile)
	if err != nil {
		return
	}
	values := make([]int, len(all))
	for i, e := range all {
		values[i] = e.Score
	}
	fmt.Println()
	fmt.Println(telemetry.Summarize(values))

	fmt.Println()
	if err := writeProfileStats(os.Stdout, store, profile); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving profile stats: %v\n", err)
	}
}

// writeProfileStats prints one stats line for the profile, or one per played
// profile when profile is empty.
func writeProfileStats(w io.Writer, store *storage.Store, profile string) error {
	var stats map[string]*storage.ProfileStats
	if profile != "" {
		ps, err := store.GetProfileStats(profile)
		if err != nil {
			return err
		}
		stats = map[string]*storage.ProfileStats{profile: ps}
	} else {
		all, err := store.GetAllProfileStats()
		if err != nil {
			return err
		}
		stats = all
	}

	names := make([]string, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(w, "  %-8s  rounds=%-4d high=%-4d avg=%.1f  total=%d  last=%s\n",
			name, s.RoundCount, s.HighScore, s.AvgScore, s.TotalScore, s.LastPlayed.Format("2006-01-02"))
	}
	return nil
}

// exportRounds writes the round history as CSV and returns the row count.
func exportRounds(store *storage.Store, profile, path string) (int, error) {
	rounds, err := store.AllScores(profile)
	if err != nil {
		return 0, err
	}

	w, err := telemetry.CreateRoundFile(path)
	if err != nil {
		return 0, err
	}
	defer w.Close()

	for _, e := range rounds {
		rec := telemetry.RoundRecord{
			Round:      int(e.ID),
			Profile:    e.Profile,
			Score:      e.Score,
			BestScore:  e.BestScore,
			Ticks:      e.Ticks,
			DurationMs: e.DurationMs,
			Reason:     e.Reason,
		}
		if err := w.Write(rec); err != nil {
			return 0, err
		}
	}
	return len(rounds), nil
}
