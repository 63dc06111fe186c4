// flappy is a terminal edition of Flappy Shopintoons.
//
// Usage:
//
//	flappy                   - Play (same as flappy play)
//	flappy play              - Play in this terminal
//	flappy serve             - Start SSH server for remote play
//	flappy scores [profile]  - Show round history and score statistics
//	flappy profiles          - List difficulty profiles
//	flappy simulate          - Run headless autopilot rounds
//
// Global flags:
//
//	--fps <rate>       - Set display refresh rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible gameplay
//	--db <path>        - Set database path (default: ~/.arcade/flappy.db)
//	--config <path>    - Load a custom flappy.yaml
//	--profile <name>   - Starting difficulty profile
//	--mute             - Disable music and sound cues
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagProfile string
	flagMute    bool
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Shopintoons - fly through the ads in your terminal",
	Long: `Flappy Shopintoons in the terminal: tap to flap, pass between the
pipes, and beat your best score.

Available commands:
  play      - Play in this terminal (default)
  serve     - Start SSH server for remote play
  scores    - View round history and statistics
  profiles  - List difficulty profiles
  simulate  - Run headless autopilot rounds

Examples:
  flappy
  flappy play --profile hard
  flappy serve --ssh :2222
  flappy scores easy -i
  flappy simulate --rounds 100 --out rounds.csv`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Display refresh rate (ticks per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.arcade/flappy.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom flappy.yaml")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", "", "Starting profile (easy, normal, hard, extreme)")
	rootCmd.PersistentFlags().BoolVar(&flagMute, "mute", false, "Disable music and sound cues")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log at debug level")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(simulateCmd)
}

// loadConfig loads the game configuration and checks --profile against it.
func loadConfig() config.FlappyConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if flagProfile != "" {
		if _, ok := cfg.Profile(flagProfile); !ok {
			fmt.Fprintf(os.Stderr, "Error: unknown profile %q\n", flagProfile)
			fmt.Fprintln(os.Stderr, "Run 'flappy profiles' to see available profiles.")
			os.Exit(1)
		}
	}
	return cfg
}

// newLogger builds a logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// openLogFile opens ~/.arcade/flappy.log for appending. The full-screen UI
// owns the terminal, so logs go to a file while it runs.
func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".arcade")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, "flappy.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
}
