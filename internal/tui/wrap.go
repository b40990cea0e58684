package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/sant0-9/quill/internal/diff"
)

// wrapText wraps each paragraph of text to maxWidth cells, preserving words.
// Blank lines are kept.
func wrapText(text string, maxWidth int) string {
	if maxWidth <= 0 {
		maxWidth = 60
	}

	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))
	for _, p := range paragraphs {
		out = append(out, wrapLine(p, maxWidth))
	}
	return strings.Join(out, "\n")
}

func wrapLine(line string, maxWidth int) string {
	if runewidth.StringWidth(line) <= maxWidth {
		return line
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(line) {
		w := runewidth.StringWidth(word)
		if i > 0 {
			if lineLen+1+w > maxWidth {
				result.WriteString("\n")
				lineLen = 0
			} else {
				result.WriteString(" ")
				lineLen++
			}
		}
		result.WriteString(word)
		lineLen += w
	}
	return result.String()
}

// diffLines lays out diff spans as styled lines no wider than maxWidth
// cells. Spans are never split; a span wider than the line gets its own.
func diffLines(spans []diff.Span, maxWidth int) []string {
	if maxWidth <= 0 {
		maxWidth = 60
	}

	var (
		lines   []string
		current strings.Builder
		width   int
	)
	for _, span := range spans {
		word := strings.TrimRight(span.Text, " ")
		w := runewidth.StringWidth(word)
		if width > 0 && width+1+w > maxWidth {
			lines = append(lines, current.String())
			current.Reset()
			width = 0
		}
		if width > 0 {
			current.WriteString(" ")
			width++
		}
		current.WriteString(spanStyle(span.Style).Render(word))
		width += w
	}
	if width > 0 {
		lines = append(lines, current.String())
	}
	return lines
}

func spanStyle(s diff.Style) lipgloss.Style {
	switch s {
	case diff.StyleInsertion:
		return styleInsertion
	case diff.StyleDeletion:
		return styleDeletion
	default:
		return lipgloss.NewStyle()
	}
}
