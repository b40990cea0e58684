package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (a *App) renderHistory() string {
	var b strings.Builder
	width := min(70, a.width-4)

	// Header
	title := styleLogo.Render("History")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	entries := a.state.session.History()
	if len(entries) == 0 {
		empty := styleBox.Copy().
			Width(width).
			Foreground(colorMuted).
			Render("No rewrites yet.\n\nFinished rewrites are kept here, newest first.")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, empty))
	} else {
		var list strings.Builder
		for i, e := range entries {
			cursor := "  "
			style := lipgloss.NewStyle().Foreground(colorMuted)
			if i == a.state.historyCursor {
				cursor = "> "
				style = lipgloss.NewStyle().Foreground(colorSecondary).Bold(true)
			}
			header := fmt.Sprintf("%s%s  %s / %s", cursor, e.Time().Local().Format("Jan 2 15:04"), e.Tone, e.Strength)
			list.WriteString(style.Render(header))
			list.WriteString("\n")
			preview := strings.Join(strings.Fields(e.Original), " ")
			list.WriteString("    " + styleSubtitle.Render(truncate(preview, width-6)))
			if i < len(entries)-1 {
				list.WriteString("\n")
			}
		}

		listBox := styleBox.Copy().
			Width(width).
			BorderForeground(colorPrimary).
			Render(list.String())
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	}
	b.WriteString("\n\n")

	if line := a.noticeLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	statusBar := styleStatusBar.Render("[j/k] Navigate  [Enter] Open  [x] Clear all  [Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, statusBar))

	return a.centerVertically(b.String())
}
