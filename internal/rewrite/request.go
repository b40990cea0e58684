package rewrite

import (
	"fmt"
	"strings"

	"github.com/sant0-9/quill/internal/llm"
	"github.com/sant0-9/quill/internal/prompts"
)

// Sampling returns the temperature and top-p used for a strength.
// Maximum strength samples wider than the rest.
func Sampling(s Strength) (temperature, topP float64) {
	if s == StrengthMaximum {
		return 1.6, 0.99
	}
	return 1.0, 0.95
}

// BuildRequest assembles the completion request for input under opts.
func BuildRequest(input string, opts Options, model string) (*llm.CompletionRequest, error) {
	catalog, err := prompts.Load()
	if err != nil {
		return nil, err
	}

	var user strings.Builder
	user.WriteString("Rewrite the text between the triple quotes.\n\n")
	user.WriteString("Settings:\n")
	fmt.Fprintf(&user, "- Tone: %s\n", catalog.Persona(opts.Tone.ID(), opts.Tone.String()))
	fmt.Fprintf(&user, "- Intensity: %s\n", catalog.Directive(opts.Strength.ID(), opts.Strength.String()))
	fmt.Fprintf(&user, "- Purpose: %s\n", catalog.PurposeHint(opts.Purpose.ID(), opts.Purpose.String()))
	fmt.Fprintf(&user, "- Reading level: %s\n", catalog.ReadabilityHint(opts.Readability.ID(), opts.Readability.String()))
	fmt.Fprintf(&user, "\nText:\n\"\"\"\n%s\n\"\"\"\n", input)

	temperature, topP := Sampling(opts.Strength)

	// Output is bounded by input size; leave generous headroom.
	maxTokens := max(1024, len(input)/2)

	return &llm.CompletionRequest{
		Model: model,
		Messages: []llm.Message{
			{Role: "system", Content: prompts.RewriteSystem()},
			{Role: "user", Content: user.String()},
		},
		MaxTokens:   min(maxTokens, 8192),
		Temperature: temperature,
		TopP:        topP,
	}, nil
}
