package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-flappy/internal/core"
)

// KeyMap translates Bubble Tea key messages to game actions.
// It also feeds the help line, so the bindings are documented in one place.
type KeyMap struct {
	Primary    key.Binding
	Restart    key.Binding
	Profile1   key.Binding
	Profile2   key.Binding
	Profile3   key.Binding
	Profile4   key.Binding
	Help       key.Binding
	Screenshot key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns the default game bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Primary: key.NewBinding(
			key.WithKeys(" ", "space", "up", "w", "enter"),
			key.WithHelp("space", "start/flap"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "retry"),
		),
		Profile1: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1-4", "profile"),
		),
		Profile2: key.NewBinding(key.WithKeys("2")),
		Profile3: key.NewBinding(key.WithKeys("3")),
		Profile4: key.NewBinding(key.WithKeys("4")),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Screenshot: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "screenshot"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Primary, k.Restart, k.Profile1, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Primary, k.Restart},
		{k.Profile1, k.Screenshot},
		{k.Help, k.Quit},
	}
}

// MapKey translates a key message to an action (ActionNone when unbound).
func (k KeyMap) MapKey(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Primary):
		return core.ActionPrimary
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Profile1):
		return core.ActionProfile1
	case key.Matches(msg, k.Profile2):
		return core.ActionProfile2
	case key.Matches(msg, k.Profile3):
		return core.ActionProfile3
	case key.Matches(msg, k.Profile4):
		return core.ActionProfile4
	case key.Matches(msg, k.Help):
		return core.ActionHelp
	case key.Matches(msg, k.Screenshot):
		return core.ActionScreenshot
	}
	return core.ActionNone
}

// MapMouse translates a mouse message. Only a left press flaps.
func MapMouse(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionPrimary
	}
	return core.ActionNone
}
