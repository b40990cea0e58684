package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sant0-9/quill/internal/config"
)

func (a *App) renderSettings() string {
	switch a.state.settingsMode {
	case "provider":
		return a.renderSettingsProvider()
	case "model":
		return a.renderSettingsModel()
	case "apikey":
		return a.renderSettingsAPIKey()
	default:
		return a.renderSettingsMain()
	}
}

func (a *App) renderSettingsMain() string {
	var b strings.Builder

	// Title
	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Settings")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	// Current config
	provider := config.GetProvider(a.state.config.Provider)
	providerName := a.state.config.Provider
	if provider != nil {
		providerName = provider.Name
	}

	// Mask API key
	maskedKey := "Not set"
	if a.state.config.APIKey != "" {
		if len(a.state.config.APIKey) > 8 {
			maskedKey = a.state.config.APIKey[:4] + "****" + a.state.config.APIKey[len(a.state.config.APIKey)-4:]
		} else {
			maskedKey = "****"
		}
	}

	configLines := []string{
		fmt.Sprintf("  Provider: %s", providerName),
		fmt.Sprintf("  Model:    %s", a.state.config.Model),
		fmt.Sprintf("  API Key:  %s", maskedKey),
	}

	if a.state.config.Local != nil && a.state.config.Local.Enabled {
		configLines = append(configLines, "")
		configLines = append(configLines, "  AI checks run locally:")
		configLines = append(configLines, fmt.Sprintf("    Provider: %s", a.state.config.Local.Provider))
		configLines = append(configLines, fmt.Sprintf("    Model:    %s", a.state.config.Local.Model))
	}

	rw := a.state.config.Rewrite
	configLines = append(configLines, "")
	configLines = append(configLines, fmt.Sprintf("  Defaults: %s, %s, %s, %s", rw.Tone, rw.Strength, rw.Purpose, rw.Readability))
	if a.state.config.History.Disabled {
		configLines = append(configLines, "  History:  off")
	} else {
		configLines = append(configLines, fmt.Sprintf("  History:  last %d rewrites", a.state.config.History.Capacity))
	}

	configBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(configLines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, configBox))
	b.WriteString("\n\n")

	// Actions
	actions := []string{
		"  [p] Change provider",
		"  [m] Change model",
		"  [k] Update API key",
		"  [d] Save current options as defaults",
		"  [r] Reset setup",
	}
	actionsBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(actions, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, actionsBox))
	b.WriteString("\n\n")

	if line := a.noticeLine(); line != "" {
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, line))
		b.WriteString("\n")
	}

	// Instructions
	instructions := styleStatusBar.Render("[Esc] Back")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsProvider() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Provider")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	var lines []string
	for i, p := range config.Providers {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		line := fmt.Sprintf("%s%s", cursor, p.Name)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsModel() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Select Model")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	provider := config.GetProvider(a.state.config.Provider)
	if provider == nil {
		desc := styleSubtitle.Render("No provider selected")
		b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
		return a.centerVertically(b.String())
	}

	providerDesc := styleSubtitle.Render(fmt.Sprintf("Provider: %s", provider.Name))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, providerDesc))
	b.WriteString("\n\n")

	var lines []string
	for i, model := range provider.Models {
		cursor := "  "
		if i == a.state.settingsSelected {
			cursor = "> "
		}
		// Mark current model
		current := ""
		if model == a.state.config.Model {
			current = " (current)"
		}
		line := fmt.Sprintf("%s%s%s", cursor, model, current)
		if i == a.state.settingsSelected {
			line = lipgloss.NewStyle().Foreground(colorPrimary).Bold(true).Render(line)
		}
		lines = append(lines, line)
	}

	listBox := styleBox.Copy().
		Width(50).
		Render(strings.Join(lines, "\n"))
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, listBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Up/Down] Navigate  [Enter] Select  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) renderSettingsAPIKey() string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(colorPrimary).
		Bold(true).
		Render("Update API Key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, title))
	b.WriteString("\n\n")

	desc := styleSubtitle.Render("Enter your new API key")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, desc))
	b.WriteString("\n\n")

	inputBox := styleBox.Copy().
		Width(50).
		BorderForeground(colorPrimary).
		Render(a.state.apiKeyInput.View())
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, inputBox))
	b.WriteString("\n\n")

	instructions := styleStatusBar.Render("[Enter] Save  [Esc] Cancel")
	b.WriteString(lipgloss.PlaceHorizontal(a.width, lipgloss.Center, instructions))

	return a.centerVertically(b.String())
}

func (a *App) openSettings() {
	a.previous = a.view
	a.state.settingsMode = ""
	a.state.settingsSelected = 0
	a.state.editor.Blur()
	a.view = viewSettings
}

func (a *App) handleSettingsKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	s := a.state
	switch s.settingsMode {
	case "":
		switch msg.String() {
		case "esc":
			a.view = a.previous
			if a.view == viewCompose {
				s.editor.Focus()
			}
		case "p":
			s.settingsMode = "provider"
			s.settingsSelected = indexOfProvider(s.config.Provider)
		case "m":
			if config.GetProvider(s.config.Provider) != nil {
				s.settingsMode = "model"
				s.settingsSelected = 0
			}
		case "k":
			s.settingsMode = "apikey"
			s.apiKeyInput.Reset()
			s.apiKeyInput.Focus()
			return textinput.Blink, true
		case "d":
			opts := s.session.Options()
			s.config.Rewrite.Tone = opts.Tone.ID()
			s.config.Rewrite.Strength = opts.Strength.ID()
			s.config.Rewrite.Purpose = opts.Purpose.ID()
			s.config.Rewrite.Readability = opts.Readability.ID()
			return a.saveSettings(false), true
		case "r":
			s.needsSetup = true
			s.setupStep = 0
			s.selectedProvider = 0
			s.apiKeyInput.Reset()
			a.view = viewSetup
		}
		return nil, true

	case "provider", "model":
		count := len(config.Providers)
		if s.settingsMode == "model" {
			count = len(config.GetProvider(s.config.Provider).Models)
		}
		switch {
		case key.Matches(msg, keys.Back):
			s.settingsMode = ""
		case key.Matches(msg, keys.Up):
			if s.settingsSelected > 0 {
				s.settingsSelected--
			}
		case key.Matches(msg, keys.Down):
			if s.settingsSelected < count-1 {
				s.settingsSelected++
			}
		case key.Matches(msg, keys.Enter):
			if s.settingsMode == "provider" {
				p := config.Providers[s.settingsSelected]
				s.config.Provider = p.ID
				s.config.Model = p.DefaultModel
				if p.NeedsAPIKey && s.config.APIKey == "" {
					s.settingsMode = "apikey"
					s.apiKeyInput.Focus()
					return textinput.Blink, true
				}
			} else {
				s.config.Model = config.GetProvider(s.config.Provider).Models[s.settingsSelected]
			}
			s.settingsMode = ""
			return a.saveSettings(true), true
		}
		return nil, true

	case "apikey":
		switch {
		case key.Matches(msg, keys.Back):
			s.settingsMode = ""
			s.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			if s.apiKeyInput.Value() == "" {
				return nil, true
			}
			s.config.APIKey = s.apiKeyInput.Value()
			s.apiKeyInput.Reset()
			s.settingsMode = ""
			return a.saveSettings(true), true
		}
	}
	return nil, false
}

// saveSettings writes the config and, when the provider changed,
// reconnects.
func (a *App) saveSettings(reconnect bool) tea.Cmd {
	cfg := a.state.config
	save := func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return noticeMsg{text: "Could not save config: " + err.Error(), isError: true}
		}
		return noticeMsg{text: "Settings saved"}
	}
	if !reconnect {
		return save
	}
	a.state.providerReady = false
	a.state.providerError = nil
	return tea.Sequence(save, a.testProvider())
}

func indexOfProvider(id string) int {
	for i, p := range config.Providers {
		if p.ID == id {
			return i
		}
	}
	return 0
}
