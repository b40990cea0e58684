// Package styles holds the palette shared by the TUI and the CLI.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	ColorPrimary   = lipgloss.Color("#7C3AED")
	ColorSecondary = lipgloss.Color("#06B6D4")
	ColorSuccess   = lipgloss.Color("#10B981")
	ColorWarning   = lipgloss.Color("#F59E0B")
	ColorError     = lipgloss.Color("#EF4444")
	ColorMuted     = lipgloss.Color("#6B7280")
	ColorWhite     = lipgloss.Color("#F9FAFB")

	// Diff spans
	Insertion = lipgloss.NewStyle().
			Foreground(ColorSuccess)
	Deletion = lipgloss.NewStyle().
			Foreground(ColorError).
			Strikethrough(true)

	// Verdict bands
	Human = lipgloss.NewStyle().Foreground(ColorSuccess).Bold(true)
	Mixed = lipgloss.NewStyle().Foreground(ColorWarning).Bold(true)
	AI    = lipgloss.NewStyle().Foreground(ColorError).Bold(true)
)
