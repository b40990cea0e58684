package detect

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/prompts"
)

// MaxInputRunes bounds how much text is sent for a check.
const MaxInputRunes = 1500

type Option func(*Detector)

func WithModel(model string) Option {
	return func(d *Detector) { d.model = model }
}

// WithLogger sets a structured logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(d *Detector) {
		if l != nil {
			d.logger = l
		}
	}
}

// Detector asks a provider to score text.
type Detector struct {
	provider llm.Provider
	model    string
	logger   *slog.Logger
}

func NewDetector(provider llm.Provider, opts ...Option) *Detector {
	d := &Detector{
		provider: provider,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Truncate returns at most MaxInputRunes runes of text.
func Truncate(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxInputRunes {
		return text
	}
	return string(runes[:MaxInputRunes])
}

// Check scores text. It never fails: provider errors and unreadable
// replies map to fixed fallback results.
func (d *Detector) Check(ctx context.Context, text string) Result {
	req := &llm.CompletionRequest{
		Model: d.model,
		Messages: []llm.Message{
			{Role: "system", Content: prompts.DetectSystem()},
			{Role: "user", Content: fmt.Sprintf("TEXT:\n\"\"\"\n%s\n\"\"\"", Truncate(text))},
		},
		MaxTokens: 512,
		JSON:      true,
	}

	resp, err := d.provider.Complete(ctx, req)
	if err != nil {
		d.logger.Warn("detection request failed", "provider", d.provider.Name(), "error", err)
		return unavailable
	}

	result, err := parseReply(resp.Content)
	if err != nil {
		d.logger.Warn("detection reply unreadable", "error", err)
		return inconclusive
	}

	d.logger.Debug("detection finished", "score", result.Score, "verdict", result.Verdict)
	return result
}
