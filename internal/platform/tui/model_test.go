package tui

import (
	"io"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func newTestModel(t *testing.T, spectators flappy.Renderer) Model {
	t.Helper()
	logger := log.New(io.Discard)
	session := flappy.NewSession(flappy.Options{
		Seed:   7,
		Store:  storage.NewMemoryStore(),
		Logger: logger,
	})
	return NewModel(ModelOptions{
		Session:       session,
		Config:        core.RuntimeConfig{ScreenW: 60, ScreenH: 30, TickRate: 60, Seed: 7},
		Spectators:    spectators,
		ScreenshotDir: t.TempDir(),
		Logger:        logger,
	})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, expected Model", next)
	}
	return nm, cmd
}

// tickFor sends ticks 250 ms apart, starting at t0, and returns the time
// of the last one.
func tickFor(t *testing.T, m Model, t0 time.Time, n int) (Model, time.Time) {
	t.Helper()
	now := t0
	for i := 0; i < n; i++ {
		now = t0.Add(time.Duration(i) * 250 * time.Millisecond)
		m, _ = update(t, m, TickMsg(now))
	}
	return m, now
}

func TestModelStartToPlaying(t *testing.T) {
	m := newTestModel(t, nil)
	if m.Session().Phase() != flappy.PhaseStart {
		t.Fatalf("phase = %v, expected start", m.Session().Phase())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if m.Session().Phase() != flappy.PhaseCountdown {
		t.Fatalf("phase = %v after space, expected countdown", m.Session().Phase())
	}

	// First tick carries no elapsed time; 13 more at 250 ms cover 3200 ms
	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m, _ = tickFor(t, m, t0, 13)
	if m.Session().Phase() != flappy.PhaseCountdown {
		t.Fatalf("phase = %v after 3000 ms, expected countdown", m.Session().Phase())
	}
	m, _ = update(t, m, TickMsg(t0.Add(13*250*time.Millisecond)))
	if m.Session().Phase() != flappy.PhasePlaying {
		t.Fatalf("phase = %v after 3250 ms, expected playing", m.Session().Phase())
	}
}

func TestModelTickReschedules(t *testing.T) {
	m := newTestModel(t, nil)
	if m.Init() == nil {
		t.Fatal("Init() should start the tick loop")
	}
	_, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
}

func TestModelProfileKeys(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, runeKey("3"))
	if got := m.Session().Profile().Name; got != config.ProfileHard {
		t.Errorf("profile = %q after 3, expected %q", got, config.ProfileHard)
	}

	// Locked once the countdown runs
	m, _ = update(t, m, runeKey(" "))
	m, _ = update(t, m, runeKey("1"))
	if got := m.Session().Profile().Name; got != config.ProfileHard {
		t.Errorf("profile = %q during countdown, expected it locked to %q", got, config.ProfileHard)
	}
}

func TestModelMouseFlaps(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tea.MouseMsg{Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	if m.Session().Phase() != flappy.PhaseCountdown {
		t.Errorf("phase = %v after click, expected countdown", m.Session().Phase())
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, runeKey(" "))

	t0 := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	m, last := tickFor(t, m, t0, 14)

	m, _ = update(t, m, runeKey("r"))
	if m.Session().Phase() != flappy.PhasePlaying {
		t.Fatalf("restart while playing changed phase to %v", m.Session().Phase())
	}

	// Without input the character falls to the ground
	for i := 1; i <= 200 && m.Session().Phase() == flappy.PhasePlaying; i++ {
		m, _ = update(t, m, TickMsg(last.Add(time.Duration(i)*16*time.Millisecond)))
	}
	if m.Session().Phase() != flappy.PhaseGameOver {
		t.Fatalf("phase = %v, expected game over", m.Session().Phase())
	}

	// Primary does not restart from game over
	m, _ = update(t, m, runeKey(" "))
	if m.Session().Phase() != flappy.PhaseGameOver {
		t.Errorf("space restarted the round")
	}
	m, _ = update(t, m, runeKey("r"))
	if m.Session().Phase() != flappy.PhaseCountdown {
		t.Errorf("phase = %v after r, expected countdown", m.Session().Phase())
	}
}

func TestModelSpectatorsSeeEveryTick(t *testing.T) {
	var frames []flappy.Snapshot
	m := newTestModel(t, flappy.RendererFunc(func(s flappy.Snapshot) {
		frames = append(frames, s)
	}))

	t0 := time.Now()
	m, _ = tickFor(t, m, t0, 5)
	if len(frames) != 5 {
		t.Errorf("spectators got %d frames, expected 5", len(frames))
	}
}

func TestModelViewFitsWindow(t *testing.T) {
	m := newTestModel(t, nil)

	sizes := []struct{ w, h int }{{60, 30}, {100, 40}, {20, 8}}
	for _, sz := range sizes {
		m, _ = update(t, m, tea.WindowSizeMsg{Width: sz.w, Height: sz.h})
		view := m.View()
		if lines := strings.Count(view, "\n") + 1; lines != sz.h {
			t.Errorf("%dx%d: view has %d lines", sz.w, sz.h, lines)
		}
		if !strings.Contains(view, "FLAPPY") && sz.w >= 60 {
			t.Errorf("%dx%d: title overlay missing", sz.w, sz.h)
		}
	}

	// Expanded help takes more rows; the field shrinks instead of overflowing
	m, _ = update(t, m, runeKey("?"))
	view := m.View()
	if lines := strings.Count(view, "\n") + 1; lines != 8 {
		t.Errorf("view with full help has %d lines, expected 8", lines)
	}
}

func TestModelScreenshot(t *testing.T) {
	m := newTestModel(t, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.status, "saved ") {
		t.Fatalf("status = %q, expected a saved path", m.status)
	}

	path := strings.TrimPrefix(m.status, "saved ")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("screenshot not written: %v", err)
	}
	if !strings.Contains(string(data), "FLAPPY SHOPINTOONS") {
		t.Errorf("screenshot does not contain the title overlay:\n%s", data)
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, nil)
	m, cmd := update(t, m, runeKey("q"))
	if cmd == nil {
		t.Fatal("quit should return tea.Quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit command should produce tea.QuitMsg")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}
}
