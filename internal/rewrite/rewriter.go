package rewrite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sant0-9/quill/internal/diff"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/llm"
)

// ErrEmptyInput is returned when there is nothing to rewrite.
var ErrEmptyInput = errors.New("input is empty")

// Result is a completed rewrite.
type Result struct {
	Original  string
	Rewritten string
	Options   Options
	Parts     []diff.Part
	Entry     *history.Entry
	Elapsed   time.Duration
	Chunks    int
	Usage     *llm.Usage
}

// Option configures a Rewriter.
type Option func(*Rewriter)

func WithModel(model string) Option {
	return func(r *Rewriter) { r.model = model }
}

// WithHistory records every non-empty result in store.
func WithHistory(store *history.Store) Option {
	return func(r *Rewriter) { r.history = store }
}

// WithLogger sets a structured logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Rewriter) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithSanitize toggles Sanitize on streamed chunks.
func WithSanitize(on bool) Option {
	return func(r *Rewriter) { r.sanitize = on }
}

func WithClock(now func() time.Time) Option {
	return func(r *Rewriter) { r.now = now }
}

// Rewriter streams rewrites from a provider.
type Rewriter struct {
	provider llm.Provider
	model    string
	history  *history.Store
	logger   *slog.Logger
	sanitize bool
	now      func() time.Time
}

func NewRewriter(provider llm.Provider, opts ...Option) *Rewriter {
	r := &Rewriter{
		provider: provider,
		logger:   slog.Default(),
		sanitize: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rewrite streams a rewrite of input, calling onChunk for every piece of
// text as it arrives. The diff is computed once the stream has finished.
// A history failure is logged and does not fail the rewrite.
func (r *Rewriter) Rewrite(ctx context.Context, input string, opts Options, onChunk func(string)) (*Result, error) {
	if strings.TrimSpace(input) == "" {
		return nil, ErrEmptyInput
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	req, err := BuildRequest(input, opts, r.model)
	if err != nil {
		return nil, err
	}

	start := r.now()
	log := r.logger.With("provider", r.provider.Name(), "tone", opts.Tone.ID(), "strength", opts.Strength.ID())
	log.Debug("rewrite started", "input_chars", len(input))

	events, err := r.provider.Stream(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("start rewrite: %w", err)
	}

	var out strings.Builder
	result := &Result{Original: input, Options: opts}

	for ev := range events {
		if ev.Error != nil {
			log.Warn("rewrite stream failed", "error", ev.Error, "chunks", result.Chunks)
			return nil, fmt.Errorf("rewrite: %w", ev.Error)
		}
		if ev.Chunk != "" {
			chunk := ev.Chunk
			if r.sanitize {
				chunk = Sanitize(chunk)
			}
			out.WriteString(chunk)
			result.Chunks++
			if onChunk != nil {
				onChunk(chunk)
			}
		}
		if ev.Done {
			result.Usage = ev.Usage
			break
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result.Rewritten = out.String()
	result.Parts = diff.Compute(input, result.Rewritten)
	result.Elapsed = r.now().Sub(start)

	if r.history != nil && strings.TrimSpace(result.Rewritten) != "" {
		entry := history.NewEntry(input, result.Rewritten, opts.Tone.String(), opts.Strength.String(), r.now())
		if _, err := r.history.Append(ctx, entry); err != nil {
			log.Warn("failed to save history", "error", err)
		} else {
			result.Entry = &entry
		}
	}

	log.Info("rewrite finished",
		"chunks", result.Chunks,
		"output_chars", len(result.Rewritten),
		"elapsed", result.Elapsed,
	)
	return result, nil
}
