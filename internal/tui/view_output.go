package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/detect"
	"github.com/sant0-9/quill/internal/diff"
	"github.com/sant0-9/quill/internal/session"
	"github.com/sant0-9/quill/internal/tui/styles"
)

// Loading messages shown before the first chunk arrives
var loadingMessages = []string{
	"Reading your text...",
	"Finding the right words...",
	"Loosening the phrasing...",
	"Rewriting...",
}

// Spinner frames for animation
var spinnerFrames = []string{"|", "/", "-", "\\"}

// refreshOutput re-renders the current output into the viewport.
func (a *App) refreshOutput() {
	s := a.state
	width := s.output.Width - 2
	if width <= 0 {
		width = a.contentWidth() - 2
	}

	var content string
	switch {
	case s.session.View() == session.ViewDiff:
		content = strings.Join(diffLines(diff.Spans(s.session.Parts()), width), "\n")
	default:
		content = wrapText(s.session.Output(), width)
	}

	s.output.SetContent(content)
	if s.session.Streaming() {
		s.output.GotoBottom()
	}
}

func (a *App) renderOutput() string {
	var b strings.Builder
	width := a.contentWidth()
	s := a.state

	// Header
	heading := "Rewrite"
	if s.session.View() == session.ViewDiff {
		heading = "Changes"
	}
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render(heading)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.optionsBar()))
	b.WriteString("\n\n")

	// Result box
	body := s.output.View()
	if s.session.Streaming() && s.session.Output() == "" {
		body = lipgloss.NewStyle().Foreground(colorPrimary).Render(a.loadingText())
	}
	border := colorPrimary
	if s.session.Streaming() {
		border = colorSecondary
	}
	resultBox := styleBox.Copy().
		Width(width + 2).
		BorderForeground(border).
		Render(body)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, resultBox))
	b.WriteString("\n")

	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.outputStats()))
	b.WriteString("\n")

	if line := a.detectionLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	if line := a.noticeLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	var status string
	if s.session.Streaming() {
		status = "[Esc] Cancel"
	} else {
		status = "[Tab] Text/Diff  [Ctrl+Y] Copy  [Ctrl+E] Export  [Ctrl+D] AI check  [Ctrl+R] Again  [Esc] Edit"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}

func (a *App) loadingText() string {
	spinner := spinnerFrames[a.state.spinnerFrame%len(spinnerFrames)]
	elapsed := time.Since(a.state.streamStart).Seconds()
	msgIdx := int(elapsed/2) % len(loadingMessages)
	return fmt.Sprintf("%s %s", spinner, loadingMessages[msgIdx])
}

// outputStats builds the status line under the result.
func (a *App) outputStats() string {
	s := a.state
	if s.session.Streaming() {
		spinner := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		elapsed := time.Since(s.streamStart).Seconds()
		return styleStatusBar.Render(fmt.Sprintf("%s %d chunks  %.1fs", spinner, s.chunks, elapsed))
	}
	if !s.session.HasOutput() {
		return ""
	}

	before := s.beforeCache.get(s.session.Input(), s.counter)
	after := s.afterCache.get(s.session.Output(), s.counter)
	sum := diff.Stats(s.session.Parts())
	return styleStatusBar.Render(fmt.Sprintf("%d -> %d words  %s  %s",
		before.Words, after.Words,
		styleInsertion.Render(fmt.Sprintf("+%d", sum.Added)),
		lipgloss.NewStyle().Foreground(colorError).Render(fmt.Sprintf("-%d", sum.Removed)),
	))
}

func (a *App) detectionLine() string {
	s := a.state
	if s.session.Detecting() {
		spinner := spinnerFrames[s.spinnerFrame%len(spinnerFrames)]
		return lipgloss.NewStyle().Foreground(colorSecondary).Render(spinner + " Checking...")
	}
	res, ok := s.session.Detection()
	if !ok {
		return ""
	}

	verdict := bandStyle(res.Band()).
		Render(fmt.Sprintf("AI likelihood %d%%  %s", res.Score, res.Verdict))
	return verdict + "  " + styleSubtitle.Render(truncate(res.Analysis, max(10, a.contentWidth()-30)))
}

func bandStyle(b detect.Band) lipgloss.Style {
	switch b {
	case detect.BandMixed:
		return styles.Mixed
	case detect.BandAI:
		return styles.AI
	default:
		return styles.Human
	}
}
