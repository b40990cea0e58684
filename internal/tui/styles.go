package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sant0-9/quill/internal/tui/styles"
)

// truncate shortens text to maxWidth cells, adding "..." if truncated
func truncate(s string, maxWidth int) string {
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return runewidth.Truncate(s, maxWidth, "")
	}
	return runewidth.Truncate(s, maxWidth, "...")
}

var (
	// Colors
	colorPrimary   = styles.ColorPrimary
	colorSecondary = styles.ColorSecondary
	colorSuccess   = styles.ColorSuccess
	colorWarning   = styles.ColorWarning
	colorError     = styles.ColorError
	colorMuted     = styles.ColorMuted
	colorWhite     = styles.ColorWhite

	// Logo style
	styleLogo = lipgloss.NewStyle().
			Foreground(colorPrimary).
			Bold(true)

	// Subtitle
	styleSubtitle = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Box
	styleBox = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorMuted).
			Padding(0, 1)

	// Status bar
	styleStatusBar = lipgloss.NewStyle().
			Foreground(colorMuted)

	// Option labels in the compose bar
	styleOptionKey = lipgloss.NewStyle().
			Foreground(colorSecondary).
			Bold(true)
	styleOptionValue = lipgloss.NewStyle().
				Foreground(colorWhite)

	// Diff spans
	styleInsertion = styles.Insertion
	styleDeletion  = styles.Deletion
)
