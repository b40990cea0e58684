package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sant0-9/quill/internal/config"
)

func (a *App) renderError() string {
	var b strings.Builder

	heading, actions := "Rewrite failed", "[r] Retry  [Esc] Back"
	if a.state.configError != nil {
		heading, actions = "Invalid config", "[Ctrl+O] Settings  [Esc] Continue"
	}

	// Error icon and title
	title := lipgloss.NewStyle().
		Foreground(colorError).
		Bold(true).
		Render(heading)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Error message
	errMsg := "Unknown error"
	if err := a.state.configError; err != nil {
		errMsg = err.Error()
	} else if err := a.state.session.Err(); err != nil {
		errMsg = err.Error()
	} else if a.state.providerError != nil {
		errMsg = a.state.providerError.Error()
	}

	errBox := styleBox.Copy().
		Width(min(60, a.width-4)).
		BorderForeground(colorError).
		Render(errMsg)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, errBox))
	b.WriteString("\n\n")

	suggestions := suggestionsFor(errMsg)
	if a.state.configError != nil {
		suggestions = append(suggestions, "Fix "+a.configLocation()+" and restart quill")
	}
	if len(suggestions) > 0 {
		suggBox := styleBox.Copy().
			Width(min(60, a.width-4)).
			BorderForeground(colorMuted).
			Render("Suggestions:\n" + strings.Join(suggestions, "\n"))
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, suggBox))
		b.WriteString("\n\n")
	}

	// Actions
	status := styleStatusBar.Render(actions)
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, status))

	return a.centerVertically(b.String())
}

func (a *App) configLocation() string {
	if p := a.state.config.Path(); p != "" {
		return p
	}
	if p, err := config.ConfigPath(); err == nil {
		return p
	}
	return "the config file"
}

// suggestionsFor returns hints based on the error text.
func suggestionsFor(errMsg string) []string {
	errLower := strings.ToLower(errMsg)

	switch {
	case strings.Contains(errLower, "api key") || strings.Contains(errLower, "401") || strings.Contains(errLower, "unauthorized"):
		return []string{
			"Check your API key in ~/.config/quill/config.yaml",
			"Or set QUILL_API_KEY in the environment",
		}
	case strings.Contains(errLower, "ollama"):
		return []string{
			"Make sure Ollama is running: ollama serve",
			"Or switch to a cloud provider in the config file",
		}
	case strings.Contains(errLower, "connection") || strings.Contains(errLower, "connect") || strings.Contains(errLower, "timeout"):
		return []string{
			"Check your internet connection",
			"Or try using Ollama for offline mode",
		}
	case strings.Contains(errLower, "rate limit") || strings.Contains(errLower, "429"):
		return []string{
			"You've hit the API rate limit",
			"Wait a moment and try again",
		}
	case strings.Contains(errLower, "no response"):
		return []string{
			"The model returned nothing",
			"Try a lower strength or a different model",
		}
	}
	return nil
}
