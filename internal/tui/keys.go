package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Quit        key.Binding
	Back        key.Binding
	Help        key.Binding
	Enter       key.Binding
	Up          key.Binding
	Down        key.Binding
	Rewrite     key.Binding
	ToggleDiff  key.Binding
	Tone        key.Binding
	Strength    key.Binding
	StrengthDn  key.Binding
	Purpose     key.Binding
	Readability key.Binding
	Copy        key.Binding
	Export      key.Binding
	Detect      key.Binding
	History     key.Binding
	Clear       key.Binding
	Settings    key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back/quit"),
	),
	Help: key.NewBinding(
		key.WithKeys("?", "f1"),
		key.WithHelp("?", "help"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "select"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("up/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("down/j", "down"),
	),
	Rewrite: key.NewBinding(
		key.WithKeys("ctrl+r"),
		key.WithHelp("ctrl+r", "rewrite"),
	),
	ToggleDiff: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "text/diff"),
	),
	Tone: key.NewBinding(
		key.WithKeys("t", "alt+t"),
		key.WithHelp("t", "tone"),
	),
	Strength: key.NewBinding(
		key.WithKeys("s", "alt+s"),
		key.WithHelp("s", "strength"),
	),
	StrengthDn: key.NewBinding(
		key.WithKeys("S", "alt+S"),
		key.WithHelp("S", "strength down"),
	),
	Purpose: key.NewBinding(
		key.WithKeys("p", "alt+p"),
		key.WithHelp("p", "purpose"),
	),
	Readability: key.NewBinding(
		key.WithKeys("r", "alt+r"),
		key.WithHelp("r", "reading level"),
	),
	Copy: key.NewBinding(
		key.WithKeys("ctrl+y"),
		key.WithHelp("ctrl+y", "copy"),
	),
	Export: key.NewBinding(
		key.WithKeys("ctrl+e"),
		key.WithHelp("ctrl+e", "export"),
	),
	Detect: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "ai check"),
	),
	History: key.NewBinding(
		key.WithKeys("ctrl+h", "alt+h"),
		key.WithHelp("ctrl+h", "history"),
	),
	Clear: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Settings: key.NewBinding(
		key.WithKeys("ctrl+o"),
		key.WithHelp("ctrl+o", "settings"),
	),
}

// typing reports whether msg is plain text meant for the editor.
// Option keys only fire from the editor with alt held.
func typing(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyRunes && !msg.Alt
}
