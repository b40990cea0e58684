package tui

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"

	"github.com/sant0-9/quill/internal/config"
	"github.com/sant0-9/quill/internal/detect"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/rewrite"
	"github.com/sant0-9/quill/internal/session"
	"github.com/sant0-9/quill/internal/textstats"
)

type state struct {
	// Config
	config     *config.Config
	needsSetup bool
	logger     *slog.Logger

	// configError is shown until dismissed
	configError error

	// Setup wizard state
	setupStep        int
	selectedProvider int
	apiKeyInput      textinput.Model
	setupError       error

	// Settings
	settingsMode     string
	settingsSelected int

	// Editor
	editor textarea.Model
	output viewport.Model

	// Session
	session session.State

	// Provider
	newProvider   func(*config.Config, *slog.Logger) (llm.Provider, error)
	newLocal      func(*config.Config, *slog.Logger) (llm.Provider, error)
	provider      llm.Provider
	rewriter      *rewrite.Rewriter
	detector      *detect.Detector
	providerReady bool
	providerError error

	// History
	store         *history.Store
	historyCursor int

	// In-flight rewrite
	runID       int
	cancel      context.CancelFunc
	streamStart time.Time
	chunks      int

	// Stats; counter is nil until the encoding has loaded
	counter     *textstats.Counter
	inputCache  statsCache
	beforeCache statsCache
	afterCache  statsCache

	// Animation
	spinnerFrame int

	// One-line feedback in the status bar
	notice      string
	noticeError bool
}

func newState() *state {
	apiKey := textinput.New()
	apiKey.Placeholder = "Paste your API key here..."
	apiKey.EchoMode = textinput.EchoPassword
	apiKey.CharLimit = 200
	apiKey.Width = 50

	editor := textarea.New()
	editor.Placeholder = "Paste or type the text to rewrite..."
	editor.ShowLineNumbers = false
	editor.CharLimit = 0
	editor.SetWidth(70)
	editor.SetHeight(10)

	return &state{
		apiKeyInput: apiKey,
		editor:      editor,
		output:      viewport.New(70, 12),
		newProvider: llm.NewProvider,
		newLocal:    llm.NewLocalProvider,
	}
}

// statsCache holds the stats of the last text it computed.
type statsCache struct {
	text    string
	counter *textstats.Counter
	stats   textstats.Stats
	ok      bool
}

func (c *statsCache) get(text string, counter *textstats.Counter) textstats.Stats {
	if !c.ok || c.text != text || c.counter != counter {
		c.text, c.counter, c.ok = text, counter, true
		c.stats = textstats.Compute(text, counter)
	}
	return c.stats
}
