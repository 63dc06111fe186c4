package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/render"
)

// ModelOptions configures a game model.
type ModelOptions struct {
	Session *flappy.Session
	Config  core.RuntimeConfig

	// Spectators receives every snapshot after the local view, e.g. the
	// websocket hub. Optional.
	Spectators flappy.Renderer

	// ScreenshotDir defaults to ~/.arcade/screenshots.
	ScreenshotDir string

	Logger *log.Logger
}

// Model is the Bubble Tea model that drives one flappy session.
type Model struct {
	session    *flappy.Session
	renderer   *render.Renderer
	spectators flappy.Renderer
	config     core.RuntimeConfig
	keys       KeyMap
	help       help.Model
	logger     *log.Logger

	screenshotDir string
	status        string
	lastTick      time.Time
	quitting      bool
}

// NewModel creates a game model. A nil session gets a fresh default one.
func NewModel(opts ModelOptions) Model {
	cfg := opts.Config
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		def := core.DefaultConfig()
		cfg.ScreenW, cfg.ScreenH = def.ScreenW, def.ScreenH
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	session := opts.Session
	if session == nil {
		session = flappy.NewSession(flappy.Options{Seed: cfg.Seed, Logger: logger})
	}

	dir := opts.ScreenshotDir
	if dir == "" {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".arcade", "screenshots")
	}

	return Model{
		session:       session,
		renderer:      render.New(cfg.ScreenW, fieldRows(cfg.ScreenH)),
		spectators:    opts.Spectators,
		config:        cfg,
		keys:          DefaultKeyMap(),
		help:          help.New(),
		logger:        logger,
		screenshotDir: dir,
	}
}

// fieldRows leaves the last terminal row for the help line.
func fieldRows(h int) int {
	if h > 1 {
		return h - 1
	}
	return h
}

// Session returns the driven session.
func (m Model) Session() *flappy.Session {
	return m.session
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickInterval())
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.apply(m.keys.MapKey(msg))
	case tea.MouseMsg:
		return m.apply(MapMouse(msg))
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(time.Time(msg))
	}
	return m, nil
}

// apply routes one action to the session. Rejected input is ignored.
func (m Model) apply(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionPrimary:
		m.session.Primary()
	case core.ActionRestart:
		m.session.Restart()
	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("could not save screenshot", "error", err)
			m.status = "screenshot failed"
		} else {
			m.status = "saved " + path
		}
	default:
		if idx, ok := action.ProfileIndex(); ok {
			if err := m.session.SelectProfileAt(idx); err != nil {
				m.logger.Debug("profile change rejected", "slot", idx+1, "error", err)
			}
		}
	}
	return m, nil
}

// handleResize processes window resize events. The session keeps running;
// only the projection changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.renderer.Resize(msg.Width, fieldRows(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick advances the session by the wall-clock time since the last tick.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	delta := elapsedMs(m.lastTick, now)
	m.lastTick = now

	m.session.Tick(delta)
	if m.spectators != nil {
		m.spectators.RenderFrame(m.session.Snapshot())
	}

	return m, tickCmd(m.config.TickInterval())
}

// saveScreenshot writes the current frame as plain text.
func (m Model) saveScreenshot() (string, error) {
	m.renderer.RenderFrame(m.session.Snapshot())

	if err := os.MkdirAll(m.screenshotDir, 0o755); err != nil {
		return "", fmt.Errorf("tui: creating screenshot directory: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405.000")
	path := filepath.Join(m.screenshotDir, fmt.Sprintf("flappy_%s.txt", timestamp))
	if err := os.WriteFile(path, []byte(m.renderer.Screen().String()), 0o600); err != nil {
		return "", fmt.Errorf("tui: writing screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display. The field
// shrinks to make room for the help footer.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	footer := helpStyle.Render(m.help.View(m.keys))
	if m.status != "" {
		footer = statusStyle.Render(m.status) + "  " + footer
	}
	rows := m.config.ScreenH - lipgloss.Height(footer)
	if rows < 1 {
		rows = m.config.ScreenH
		footer = ""
	}

	m.renderer.Resize(m.config.ScreenW, rows)
	m.renderer.RenderFrame(m.session.Snapshot())
	view := RenderScreen(m.renderer.Screen())
	if footer == "" {
		return view
	}
	return view + "\n" + footer
}

// Run starts a full-screen Bubble Tea program for the model options.
func Run(opts ModelOptions) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
