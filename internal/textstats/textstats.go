// Package textstats computes word, character, reading-time and token counts.
package textstats

import (
	"fmt"
	"unicode/utf8"

	tiktoken "github.com/pkoukk/tiktoken-go"

	"github.com/sant0-9/quill/internal/diff"
)

const (
	WordsPerMinute = 200
	// LongInputWords is the size above which a rewrite is flagged as slow.
	LongInputWords = 500

	encodingName = "cl100k_base"
)

type Stats struct {
	Words          int
	Chars          int
	ReadingMinutes int
	Tokens         int
	// Estimated is true when Tokens is a length heuristic.
	Estimated bool
}

// Counter counts cl100k tokens. A nil Counter estimates instead.
type Counter struct {
	encoding *tiktoken.Tiktoken
}

// NewCounter loads the cl100k_base encoding. The first load may fetch the
// BPE file over the network, so call it off the UI goroutine.
func NewCounter() (*Counter, error) {
	enc, err := tiktoken.GetEncoding(encodingName)
	if err != nil {
		return nil, fmt.Errorf("textstats: load %s: %w", encodingName, err)
	}
	return &Counter{encoding: enc}, nil
}

// Count returns the token count of text. estimated is true when c has no
// encoding and the count is four characters per token.
func (c *Counter) Count(text string) (n int, estimated bool) {
	if text == "" {
		return 0, false
	}
	if c == nil || c.encoding == nil {
		return EstimateTokens(text), true
	}
	return len(c.encoding.Encode(text, nil, nil)), false
}

// Compute returns stats for text. Words follow diff.Tokenize; tokens come
// from c, which may be nil.
func Compute(text string, c *Counter) Stats {
	words := len(diff.Tokenize(text))
	s := Stats{
		Words:          words,
		Chars:          utf8.RuneCountInString(text),
		ReadingMinutes: ReadingMinutes(words),
	}
	s.Tokens, s.Estimated = c.Count(text)
	return s
}

// ReadingMinutes rounds words/200 up. Zero words read in zero minutes.
func ReadingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return (words + WordsPerMinute - 1) / WordsPerMinute
}

// LongInput reports whether words exceeds LongInputWords.
func LongInput(words int) bool {
	return words > LongInputWords
}

func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}
