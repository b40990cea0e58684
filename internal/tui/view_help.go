package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHelp() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Help")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Keyboard shortcuts
	groups := []struct {
		name     string
		bindings []key.Binding
	}{
		{"Editing", []key.Binding{keys.Rewrite, keys.Clear, keys.History, keys.Settings, keys.Help, keys.Back, keys.Quit}},
		{"Options", []key.Binding{keys.Tone, keys.Strength, keys.StrengthDn, keys.Purpose, keys.Readability}},
		{"Result", []key.Binding{keys.ToggleDiff, keys.Copy, keys.Export, keys.Detect}},
	}

	for _, g := range groups {
		heading := styleSubtitle.Render(g.name)
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, heading))
		b.WriteString("\n")

		lines := make([]string, 0, len(g.bindings))
		for _, kb := range g.bindings {
			h := kb.Help()
			lines = append(lines, fmt.Sprintf("  %-10s %s", h.Key, h.Desc))
		}
		box := styleBox.Copy().
			Width(50).
			Render(strings.Join(lines, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, box))
		b.WriteString("\n")
	}

	note := styleSubtitle.Render("In the editor, hold alt with t/s/S/p/r to change options")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, note))
	b.WriteString("\n\n")

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}
