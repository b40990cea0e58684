package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/textstats"
)

func (a *App) renderCompose() string {
	var b strings.Builder
	width := a.contentWidth()

	// Header
	title := styleLogo.Render("quill")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.providerStatus()))
	b.WriteString("\n\n")

	// Editor
	editorBox := styleBox.Copy().
		Width(width + 2).
		BorderForeground(colorPrimary).
		Render(a.state.editor.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, editorBox))
	b.WriteString("\n")

	// Input stats
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.inputStats()))
	b.WriteString("\n\n")

	// Options
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, a.optionsBar()))
	b.WriteString("\n")
	hint := styleSubtitle.Render("hold alt while typing to change options")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, hint))
	b.WriteString("\n\n")

	if line := a.noticeLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	status := "[Ctrl+R] Rewrite  [Ctrl+H] History  [Ctrl+L] Clear  [F1] Help  [Esc] Quit"
	if a.state.session.HasOutput() {
		status = "[Ctrl+R] Rewrite  [Tab] Result  [Ctrl+H] History  [F1] Help  [Esc] Quit"
	}
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, styleStatusBar.Render(status)))

	return a.centerVertically(b.String())
}

func (a *App) providerStatus() string {
	cfg := a.state.config
	name := cfg.Provider
	if info := config.GetProvider(cfg.Provider); info != nil {
		name = info.Name
	}
	label := fmt.Sprintf("%s via %s", cfg.Model, name)

	switch {
	case a.state.providerError != nil:
		return lipgloss.NewStyle().Foreground(colorError).
			Render(truncate(label+"  unreachable: "+a.state.providerError.Error(), a.contentWidth()))
	case !a.state.providerReady:
		return styleSubtitle.Render(label + "  connecting...")
	default:
		return lipgloss.NewStyle().Foreground(colorSuccess).Render(label)
	}
}

func (a *App) inputStats() string {
	st := a.state.inputCache.get(a.state.editor.Value(), a.state.counter)
	if st.Words == 0 {
		return styleSubtitle.Render("empty")
	}

	tokens := fmt.Sprintf("%d tokens", st.Tokens)
	if st.Estimated {
		tokens = "~" + tokens
	}
	line := styleSubtitle.Render(fmt.Sprintf("%d words  %d chars  %d min read  %s",
		st.Words, st.Chars, st.ReadingMinutes, tokens))

	if textstats.LongInput(st.Words) {
		line += "  " + lipgloss.NewStyle().Foreground(colorWarning).Render("long input, rewrite may be slow")
	}
	return line
}

func (a *App) optionsBar() string {
	opts := a.state.session.Options()
	items := []struct{ key, label, value string }{
		{"t", "Tone", opts.Tone.String()},
		{"s", "Strength", opts.Strength.String()},
		{"p", "Purpose", opts.Purpose.String()},
		{"r", "Reading", opts.Readability.String()},
	}

	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, styleOptionKey.Render("["+it.key+"]")+" "+
			styleSubtitle.Render(it.label+":")+" "+styleOptionValue.Render(it.value))
	}
	return strings.Join(parts, "  ")
}

func (a *App) noticeLine() string {
	if a.state.notice == "" {
		return ""
	}
	color := colorSuccess
	if a.state.noticeError {
		color = colorError
	}
	return lipgloss.NewStyle().Foreground(color).Render(a.state.notice)
}

func (a *App) centerVertically(content string) string {
	lines := strings.Count(content, "\n") + 1
	padding := (a.height - lines) / 2
	if padding < 0 {
		padding = 0
	}
	return strings.Repeat("\n", padding) + content
}
