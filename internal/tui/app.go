package tui

import (
	"log/slog"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/rewrite"
	"github.com/sant0-9/quill/internal/session"
)

type view int

const (
	viewSetup view = iota
	viewCompose
	viewOutput
	viewHistory
	viewHelp
	viewError
	viewSettings
)

// Options wires an App to its collaborators.
type Options struct {
	// Config is used as loaded. A nil Config means defaults.
	Config *config.Config
	// NeedsSetup starts the provider wizard, which saves Config when done.
	NeedsSetup bool
	// ConfigErr is a validation failure; the App opens on the error view.
	ConfigErr error
	History   *history.Store
	Logger    *slog.Logger
}

type App struct {
	width    int
	height   int
	view     view
	previous view
	state    *state
	quitting bool
}

func NewApp(opts Options) *App {
	s := newState()
	s.store = opts.History
	s.logger = opts.Logger
	if s.logger == nil {
		s.logger = slog.Default()
	}

	s.config = opts.Config
	if s.config == nil {
		s.config = config.DefaultConfig()
	}
	s.needsSetup = opts.NeedsSetup

	ropts, err := rewrite.OptionsFromConfig(s.config.Rewrite)
	if err != nil {
		s.logger.Warn("invalid rewrite defaults, using built-ins", "error", err)
		ropts = rewrite.DefaultOptions()
	}
	s.session = session.New(ropts)

	a := &App{
		view:  viewCompose,
		state: s,
	}
	if opts.ConfigErr != nil && !opts.NeedsSetup {
		s.configError = opts.ConfigErr
		a.view = viewError
	}
	return a
}

// Run starts the program on the alternate screen and blocks until exit.
func Run(opts Options) error {
	p := tea.NewProgram(NewApp(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (a *App) Init() tea.Cmd {
	if a.state.needsSetup {
		a.view = viewSetup
		return tea.Batch(tea.WindowSize(), textinput.Blink, a.loadCounter())
	}

	a.state.editor.Focus()
	return tea.Batch(
		tea.WindowSize(),
		textarea.Blink,
		a.testProvider(),
		a.loadHistory(),
		a.loadCounter(),
	)
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd, handled := a.handleKey(msg)
		if handled {
			return a, cmd
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.resize()
		return a, nil

	case setupCompleteMsg:
		a.state.needsSetup = false
		a.state.setupError = nil
		a.view = viewCompose
		a.state.editor.Focus()
		return a, tea.Batch(a.testProvider(), a.loadHistory(), textarea.Blink)

	case setupErrorMsg:
		a.state.setupError = msg.error
		return a, nil

	case providerReadyMsg:
		a.onProviderReady(msg)
		return a, nil

	case providerErrorMsg:
		a.state.providerError = msg.error
		return a, nil

	case historyLoadedMsg:
		a.state.session = a.state.session.WithHistory(msg.entries)
		return a, nil

	case historyErrorMsg:
		a.setNotice("history: "+msg.Error(), true)
		return a, nil

	case chunkMsg:
		return a, a.onChunk(msg)

	case rewriteDoneMsg:
		return a, a.onRewriteDone(msg)

	case counterReadyMsg:
		a.state.counter = msg.counter
		return a, nil

	case detectDoneMsg:
		a.state.session = a.state.session.WithDetection(msg.result)
		return a, nil

	case tickMsg:
		if a.state.session.Streaming() || a.state.session.Detecting() {
			a.state.spinnerFrame++
			return a, tick()
		}
		return a, nil

	case noticeMsg:
		a.setNotice(msg.text, msg.isError)
		return a, nil
	}

	// Forward everything else to the focused component
	switch {
	case a.view == viewSetup && a.state.setupStep == 1,
		a.view == viewSettings && a.state.settingsMode == "apikey":
		var cmd tea.Cmd
		a.state.apiKeyInput, cmd = a.state.apiKeyInput.Update(msg)
		cmds = append(cmds, cmd)
	case a.view == viewCompose:
		var cmd tea.Cmd
		a.state.editor, cmd = a.state.editor.Update(msg)
		a.state.session = a.state.session.WithInput(a.state.editor.Value())
		cmds = append(cmds, cmd)
	case a.view == viewOutput:
		var cmd tea.Cmd
		a.state.output, cmd = a.state.output.Update(msg)
		cmds = append(cmds, cmd)
	}

	return a, tea.Batch(cmds...)
}

// handleKey returns handled=false when the key should reach the focused
// component.
func (a *App) handleKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	if key.Matches(msg, keys.Quit) {
		a.cancelRewrite()
		a.quitting = true
		return tea.Quit, true
	}

	switch a.view {
	case viewSetup:
		return a.handleSetupKey(msg)
	case viewCompose:
		return a.handleComposeKey(msg)
	case viewOutput:
		return a.handleOutputKey(msg)
	case viewHistory:
		return a.handleHistoryKey(msg), true
	case viewHelp:
		if key.Matches(msg, keys.Back, keys.Help) {
			a.view = a.previous
		}
		return nil, true
	case viewError:
		return a.handleErrorKey(msg), true
	case viewSettings:
		return a.handleSettingsKey(msg)
	}
	return nil, false
}

func (a *App) handleComposeKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		a.quitting = true
		return tea.Quit, true
	case key.Matches(msg, keys.Rewrite):
		return a.startRewrite(), true
	case key.Matches(msg, keys.History):
		a.openHistory()
		return nil, true
	case key.Matches(msg, keys.Clear):
		a.clearSession()
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true
	case key.Matches(msg, keys.ToggleDiff):
		if a.state.session.HasOutput() || a.state.session.Streaming() {
			a.view = viewOutput
			a.state.editor.Blur()
			a.refreshOutput()
		}
		return nil, true
	case key.Matches(msg, keys.Copy, keys.Export, keys.Detect):
		if !a.state.session.HasOutput() {
			return nil, true
		}
		a.view = viewOutput
		a.state.editor.Blur()
		return a.handleOutputKey(msg)
	}

	if typing(msg) {
		return nil, false
	}
	if a.cycleOption(msg) {
		return nil, true
	}
	if key.Matches(msg, keys.Help) {
		a.openHelp()
		return nil, true
	}
	return nil, false
}

func (a *App) handleOutputKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Back):
		if a.state.session.Streaming() {
			a.cancelRewrite()
			a.state.session = a.state.session.Cancel()
			a.setNotice("Rewrite cancelled", false)
		}
		a.view = viewCompose
		a.state.editor.Focus()
		return textarea.Blink, true
	case key.Matches(msg, keys.Rewrite):
		return a.startRewrite(), true
	case key.Matches(msg, keys.ToggleDiff):
		a.state.session = a.state.session.ToggleView()
		a.refreshOutput()
		return nil, true
	case key.Matches(msg, keys.Copy):
		return a.copyOutput(), true
	case key.Matches(msg, keys.Export):
		return a.exportOutput(), true
	case key.Matches(msg, keys.Detect):
		return a.runDetection(), true
	case key.Matches(msg, keys.History):
		a.openHistory()
		return nil, true
	case key.Matches(msg, keys.Settings):
		a.openSettings()
		return nil, true
	case key.Matches(msg, keys.Help):
		a.openHelp()
		return nil, true
	}
	if a.cycleOption(msg) {
		return nil, true
	}
	return nil, false
}

func (a *App) handleHistoryKey(msg tea.KeyMsg) tea.Cmd {
	entries := a.state.session.History()
	switch {
	case key.Matches(msg, keys.Back), key.Matches(msg, keys.History):
		a.view = a.previous
		if a.view == viewCompose {
			a.state.editor.Focus()
		}
	case key.Matches(msg, keys.Up):
		if a.state.historyCursor > 0 {
			a.state.historyCursor--
		}
	case key.Matches(msg, keys.Down):
		if a.state.historyCursor < len(entries)-1 {
			a.state.historyCursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(entries) == 0 {
			return nil
		}
		next, err := a.state.session.LoadEntry(entries[a.state.historyCursor])
		if err != nil {
			a.setNotice(err.Error(), true)
			return nil
		}
		a.state.session = next
		a.state.editor.SetValue(next.Input())
		a.refreshOutput()
		a.view = viewOutput
	case msg.String() == "x":
		return a.clearHistory()
	}
	return nil
}

func (a *App) handleErrorKey(msg tea.KeyMsg) tea.Cmd {
	if a.state.configError != nil {
		switch {
		case key.Matches(msg, keys.Back):
			a.state.configError = nil
			a.view = viewCompose
			a.state.editor.Focus()
			return textarea.Blink
		case key.Matches(msg, keys.Settings):
			a.state.configError = nil
			a.view = viewCompose
			a.openSettings()
		}
		return nil
	}

	switch {
	case key.Matches(msg, keys.Back):
		a.state.session = a.state.session.DismissError()
		a.view = viewCompose
		a.state.editor.Focus()
		return textarea.Blink
	case msg.String() == "r", key.Matches(msg, keys.Rewrite):
		a.state.session = a.state.session.DismissError()
		return a.startRewrite()
	}
	return nil
}

func (a *App) handleSetupKey(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch a.state.setupStep {
	case 0: // Provider selection
		switch {
		case key.Matches(msg, keys.Back):
			a.quitting = true
			return tea.Quit, true
		case key.Matches(msg, keys.Up):
			if a.state.selectedProvider > 0 {
				a.state.selectedProvider--
			}
		case key.Matches(msg, keys.Down):
			if a.state.selectedProvider < len(config.Providers)-1 {
				a.state.selectedProvider++
			}
		case key.Matches(msg, keys.Enter):
			provider := config.Providers[a.state.selectedProvider]
			a.state.config.Provider = provider.ID
			a.state.config.Model = provider.DefaultModel

			if provider.NeedsAPIKey {
				a.state.setupStep = 1
				a.state.apiKeyInput.Focus()
				return textinput.Blink, true
			}
			return a.finishSetup(), true
		}
		return nil, true

	case 1: // API key entry
		switch {
		case key.Matches(msg, keys.Back):
			a.state.setupStep = 0
			a.state.apiKeyInput.Reset()
			return nil, true
		case key.Matches(msg, keys.Enter):
			if a.state.apiKeyInput.Value() == "" {
				return nil, true
			}
			a.state.config.APIKey = a.state.apiKeyInput.Value()
			return a.finishSetup(), true
		}
	}

	return nil, false
}

// cycleOption advances one rewrite option when msg names it.
func (a *App) cycleOption(msg tea.KeyMsg) bool {
	opts := a.state.session.Options()
	switch {
	case key.Matches(msg, keys.Tone):
		opts.Tone = opts.Tone.Next()
	case key.Matches(msg, keys.Strength):
		if opts.Strength == rewrite.StrengthMaximum {
			opts.Strength = rewrite.StrengthLow
		} else {
			opts.Strength = opts.Strength.Next()
		}
	case key.Matches(msg, keys.StrengthDn):
		opts.Strength = opts.Strength.Prev()
	case key.Matches(msg, keys.Purpose):
		opts.Purpose = opts.Purpose.Next()
	case key.Matches(msg, keys.Readability):
		opts.Readability = opts.Readability.Next()
	default:
		return false
	}
	a.state.session = a.state.session.WithOptions(opts)
	return true
}

func (a *App) openHistory() {
	a.previous = a.view
	if a.previous == viewHistory {
		a.previous = viewCompose
	}
	a.state.historyCursor = 0
	a.state.editor.Blur()
	a.view = viewHistory
}

func (a *App) openHelp() {
	a.previous = a.view
	a.view = viewHelp
}

func (a *App) clearSession() {
	if a.state.session.Streaming() {
		return
	}
	a.state.session = a.state.session.Clear()
	a.state.editor.Reset()
	a.state.output.SetContent("")
	a.state.notice = ""
}

func (a *App) setNotice(text string, isError bool) {
	a.state.notice = text
	a.state.noticeError = isError
}

// resize fits the editor and output pane to the window.
func (a *App) resize() {
	w := a.contentWidth()
	a.state.editor.SetWidth(w)
	a.state.editor.SetHeight(max(3, a.height-12))
	a.state.apiKeyInput.Width = min(50, w)
	a.state.output.Width = w
	a.state.output.Height = max(3, a.height-8)
	a.refreshOutput()
}

func (a *App) contentWidth() int {
	if a.width <= 0 {
		return 70
	}
	return max(20, min(100, a.width-6))
}

func (a *App) View() string {
	if a.quitting {
		return ""
	}

	switch a.view {
	case viewSetup:
		return a.renderSetup()
	case viewOutput:
		return a.renderOutput()
	case viewHistory:
		return a.renderHistory()
	case viewHelp:
		return a.renderHelp()
	case viewError:
		return a.renderError()
	case viewSettings:
		return a.renderSettings()
	default:
		return a.renderCompose()
	}
}
