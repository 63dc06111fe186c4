package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/platform/web"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagSpectate      string
	flagSpectateEvery int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start a game session in this terminal.

Controls:
  Space/Up/W/Enter/click  - Start / flap
  R                       - Retry (after game over)
  1-4                     - Pick profile (before a round or after game over)
  ?                       - Toggle help
  Ctrl+S                  - Save a screenshot to ~/.arcade/screenshots
  Q/Ctrl+C                - Quit

Spectators:
  --spectate :8080 streams every frame as JSON to websocket clients
  connecting to ws://host:8080/ws.

Examples:
  flappy play
  flappy play --profile extreme
  flappy play --seed 42 --mute
  flappy play --spectate :8080`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	for _, c := range []*cobra.Command{rootCmd, playCmd} {
		c.Flags().StringVar(&flagSpectate, "spectate", "", "Serve websocket spectators on this address (e.g. :8080)")
		c.Flags().IntVar(&flagSpectateEvery, "spectate-every", 2, "Send every n-th frame to spectators")
	}
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playSession(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

// playSession runs the terminal game. It returns instead of exiting so the
// deferred cleanups run on every path.
func playSession() error {
	gameCfg := loadConfig()

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rtCfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}

	logger, closeLog := playLogger(openLogFile)
	defer closeLog()

	opts := flappy.Options{
		Config:  gameCfg,
		Profile: flagProfile,
		Seed:    seed,
		Logger:  logger,
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - best score lives in memory
	} else {
		defer store.Close()
		opts.Store = store
		opts.Recorder = store
	}

	sound := audio.NewSoundManager(flagMute)
	if err := sound.Initialize(); err != nil {
		logger.Warn("audio disabled", "error", err)
		sound.SetMuted(true)
	}
	defer sound.Close()
	opts.Audio = sound

	modelOpts := tui.ModelOptions{
		Session: flappy.NewSession(opts),
		Config:  rtCfg,
		Logger:  logger,
	}

	if flagSpectate != "" {
		hub := web.NewHub(logger, flagSpectateEvery)
		srv := startSpectatorServer(flagSpectate, hub, logger)
		defer func() {
			hub.Close()
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			srv.Shutdown(ctx)
		}()
		modelOpts.Spectators = hub
	}

	return tui.Run(modelOpts)
}

// playLogger builds the logger for the full-screen game. Logging to the
// terminal would corrupt the display, so without a log file the output is
// dropped.
func playLogger(open func() (*os.File, error)) (*log.Logger, func()) {
	logFile, err := open()
	if err != nil {
		return newLogger(io.Discard, "flappy"), func() {}
	}
	return newLogger(logFile, "flappy"), func() { logFile.Close() }
}

// startSpectatorServer serves the hub on /ws in the background.
func startSpectatorServer(addr string, hub *web.Hub, logger *log.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving spectators", "address", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server error", "error", err)
		}
	}()
	return srv
}
