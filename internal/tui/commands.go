package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sant0-9/quill/internal/detect"
	"github.com/sant0-9/quill/internal/export"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/rewrite"
	"github.com/sant0-9/quill/internal/session"
	"github.com/sant0-9/quill/internal/textstats"
)

const (
	pingTimeout   = 5 * time.Second
	detectTimeout = 60 * time.Second
	tickInterval  = 120 * time.Millisecond
)

type setupCompleteMsg struct{}
type setupErrorMsg struct{ error }
type providerReadyMsg struct {
	provider llm.Provider
	local    llm.Provider
}
type providerErrorMsg struct{ error }
type historyLoadedMsg struct{ entries []history.Entry }
type historyErrorMsg struct{ error }
type tickMsg struct{}
type noticeMsg struct {
	text    string
	isError bool
}

// chunkMsg carries one streamed piece of run. events is the channel the
// next piece will arrive on.
type chunkMsg struct {
	run    int
	text   string
	events <-chan tea.Msg
}

type rewriteDoneMsg struct {
	run    int
	result *rewrite.Result
	err    error
}

type detectDoneMsg struct{ result detect.Result }
type counterReadyMsg struct{ counter *textstats.Counter }

func (a *App) finishSetup() tea.Cmd {
	cfg := a.state.config
	return func() tea.Msg {
		if err := cfg.Save(); err != nil {
			return setupErrorMsg{err}
		}
		return setupCompleteMsg{}
	}
}

func (a *App) testProvider() tea.Cmd {
	cfg := a.state.config
	logger := a.state.logger
	newProvider := a.state.newProvider
	newLocal := a.state.newLocal
	return func() tea.Msg {
		provider, err := newProvider(cfg, logger)
		if err != nil {
			return providerErrorMsg{err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()

		if err := provider.Ping(ctx); err != nil {
			return providerErrorMsg{err}
		}

		local, err := newLocal(cfg, logger)
		if err != nil {
			logger.Warn("local provider unavailable, checks use the main provider", "error", err)
			local = nil
		}

		return providerReadyMsg{provider: provider, local: local}
	}
}

func (a *App) onProviderReady(msg providerReadyMsg) {
	s := a.state
	s.provider = msg.provider
	s.providerReady = true
	s.providerError = nil

	s.rewriter = rewrite.NewRewriter(msg.provider,
		rewrite.WithModel(s.config.Model),
		rewrite.WithHistory(s.store),
		rewrite.WithLogger(s.logger),
	)

	if msg.local != nil {
		s.detector = detect.NewDetector(msg.local, detect.WithLogger(s.logger))
	} else {
		s.detector = detect.NewDetector(msg.provider,
			detect.WithModel(s.config.Model),
			detect.WithLogger(s.logger),
		)
	}
}

// loadCounter loads the token encoding, which may hit the network the
// first time. Stats estimate tokens until it arrives.
func (a *App) loadCounter() tea.Cmd {
	logger := a.state.logger
	return func() tea.Msg {
		c, err := textstats.NewCounter()
		if err != nil {
			logger.Warn("token counter unavailable, estimating", "error", err)
			return nil
		}
		return counterReadyMsg{c}
	}
}

func (a *App) loadHistory() tea.Cmd {
	store := a.state.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		entries, err := store.Load(context.Background())
		if err != nil {
			return historyErrorMsg{err}
		}
		return historyLoadedMsg{entries}
	}
}

func (a *App) clearHistory() tea.Cmd {
	a.state.session = a.state.session.WithHistory(nil)
	a.state.historyCursor = 0
	store := a.state.store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		if err := store.Clear(context.Background()); err != nil {
			return historyErrorMsg{err}
		}
		return noticeMsg{text: "History cleared"}
	}
}

// startRewrite begins streaming the current input. Chunks are delivered
// as chunkMsg through a channel owned by the worker goroutine.
func (a *App) startRewrite() tea.Cmd {
	s := a.state
	if !s.providerReady || s.rewriter == nil {
		a.setNotice("Provider is not ready yet", true)
		return nil
	}

	next, err := s.session.WithInput(s.editor.Value()).Begin()
	if err != nil {
		a.setNotice(err.Error(), true)
		return nil
	}
	s.session = next
	s.notice = ""
	s.runID++
	s.chunks = 0
	s.streamStart = time.Now()
	s.editor.Blur()
	a.view = viewOutput
	a.refreshOutput()

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	run := s.runID
	input := next.Input()
	opts := next.Options()
	rewriter := s.rewriter
	events := make(chan tea.Msg, 64)

	go func() {
		defer close(events)
		defer cancel()
		res, err := rewriter.Rewrite(ctx, input, opts, func(chunk string) {
			select {
			case events <- chunkMsg{run: run, text: chunk, events: events}:
			case <-ctx.Done():
			}
		})
		events <- rewriteDoneMsg{run: run, result: res, err: err}
	}()

	return tea.Batch(waitForEvent(events), tick())
}

func waitForEvent(events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-events
		if !ok {
			return nil
		}
		return msg
	}
}

func (a *App) onChunk(msg chunkMsg) tea.Cmd {
	if msg.run == a.state.runID {
		a.state.session = a.state.session.Chunk(msg.text)
		a.state.chunks++
		a.refreshOutput()
	}
	return waitForEvent(msg.events)
}

func (a *App) onRewriteDone(msg rewriteDoneMsg) tea.Cmd {
	s := a.state
	if msg.run != s.runID || !s.session.Streaming() {
		return nil
	}
	s.cancel = nil

	if msg.err != nil {
		if errors.Is(msg.err, context.Canceled) {
			s.session = s.session.Cancel()
			return nil
		}
		s.logger.Error("rewrite failed", "error", msg.err)
		s.session = s.session.Fail(msg.err)
		a.view = viewError
		return nil
	}

	s.session = s.session.Complete(msg.result)
	a.refreshOutput()
	if msg.result.Entry != nil {
		return a.loadHistory()
	}
	return nil
}

func (a *App) cancelRewrite() {
	if a.state.cancel != nil {
		a.state.cancel()
		a.state.cancel = nil
	}
}

func (a *App) runDetection() tea.Cmd {
	s := a.state
	if s.detector == nil {
		a.setNotice("Provider is not ready yet", true)
		return nil
	}
	next, err := s.session.BeginDetection()
	if err != nil {
		a.setNotice(err.Error(), true)
		return nil
	}
	s.session = next

	detector := s.detector
	text := next.Output()
	return tea.Batch(func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), detectTimeout)
		defer cancel()
		return detectDoneMsg{result: detector.Check(ctx, text)}
	}, tick())
}

func (a *App) copyOutput() tea.Cmd {
	if !a.state.session.HasOutput() {
		a.setNotice(session.ErrNoOutput.Error(), true)
		return nil
	}
	text := a.state.session.Output()
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return noticeMsg{text: "Copy failed: " + err.Error(), isError: true}
		}
		return noticeMsg{text: "Copied to clipboard"}
	}
}

func (a *App) exportOutput() tea.Cmd {
	if !a.state.session.HasOutput() {
		a.setNotice(session.ErrNoOutput.Error(), true)
		return nil
	}
	text := a.state.session.Output()
	return func() tea.Msg {
		path := export.DefaultFilename(export.Markdown)
		if err := export.ToFile(path, export.Markdown, text); err != nil {
			return noticeMsg{text: "Export failed: " + err.Error(), isError: true}
		}
		return noticeMsg{text: fmt.Sprintf("Saved %s", path)}
	}
}

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{}
	})
}
