package tui

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"

	"github.com/sant0-9/quill/internal/diff"
)

func TestWrapText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		want  string
	}{
		{"fits", "short line", 20, "short line"},
		{"wraps on words", "one two three four", 9, "one two\nthree\nfour"},
		{"keeps paragraphs", "a b\n\nc d", 10, "a b\n\nc d"},
		{"wide runes", "日本語 日本語", 8, "日本語\n日本語"},
		{"default width", "x", 0, "x"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := wrapText(tt.text, tt.width); got != tt.want {
				t.Errorf("wrapText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
			}
		})
	}
}

func TestDiffLinesWidth(t *testing.T) {
	parts := diff.Compute("the quick brown fox jumps over the lazy dog", "the slow brown fox leaps over a lazy dog")
	lines := diffLines(diff.Spans(parts), 16)

	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %d line(s)", len(lines))
	}
	var words []string
	for _, l := range lines {
		if w := runewidth.StringWidth(l); w > 16 {
			t.Errorf("line %q is %d cells wide", l, w)
		}
		words = append(words, strings.Fields(l)...)
	}
	if len(words) != len(parts) {
		t.Errorf("rendered %d words for %d parts", len(words), len(parts))
	}
}

func TestDiffLinesLongWord(t *testing.T) {
	spans := []diff.Span{
		{Text: "a "},
		{Text: "extraordinarily ", Style: diff.StyleInsertion},
		{Text: "b "},
	}
	got := diffLines(spans, 5)
	want := []string{"a", "extraordinarily", "b"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("diffLines = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("hello world", 8); got != "hello..." {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("hi", 8); got != "hi" {
		t.Errorf("truncate = %q", got)
	}
}

func TestSuggestionsFor(t *testing.T) {
	if s := suggestionsFor("openai: 401 unauthorized"); len(s) == 0 || !strings.Contains(s[0], "API key") {
		t.Errorf("suggestions = %q", s)
	}
	if s := suggestionsFor("something odd"); s != nil {
		t.Errorf("suggestions = %q, want none", s)
	}
}
