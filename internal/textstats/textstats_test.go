package textstats

import (
	"strings"
	"testing"
)

func TestReadingMinutes(t *testing.T) {
	tests := []struct {
		words, want int
	}{
		{0, 0},
		{1, 1},
		{200, 1},
		{201, 2},
		{1000, 5},
	}
	for _, tt := range tests {
		if got := ReadingMinutes(tt.words); got != tt.want {
			t.Errorf("ReadingMinutes(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestLongInput(t *testing.T) {
	if LongInput(500) {
		t.Error("500 words is not long")
	}
	if !LongInput(501) {
		t.Error("501 words is long")
	}
}

func TestCompute(t *testing.T) {
	s := Compute("  héllo   wörld\n\tagain ", nil)
	if s.Words != 3 {
		t.Errorf("words = %d", s.Words)
	}
	if s.Chars != 23 {
		t.Errorf("chars = %d", s.Chars)
	}
	if s.ReadingMinutes != 1 {
		t.Errorf("minutes = %d", s.ReadingMinutes)
	}
	if s.Tokens != 6 || !s.Estimated {
		t.Errorf("tokens = %d estimated=%v, want 6 estimated", s.Tokens, s.Estimated)
	}
}

func TestCounter_NilEstimates(t *testing.T) {
	var c *Counter
	tests := []struct {
		text          string
		want          int
		wantEstimated bool
	}{
		{"", 0, false},
		{"abcd", 1, true},
		{"abcde", 2, true},
	}
	for _, tt := range tests {
		n, est := c.Count(tt.text)
		if n != tt.want || est != tt.wantEstimated {
			t.Errorf("Count(%q) = %d, %v; want %d, %v", tt.text, n, est, tt.want, tt.wantEstimated)
		}
	}

	if n, est := (&Counter{}).Count("abcd"); n != 1 || !est {
		t.Errorf("empty Counter = %d, %v", n, est)
	}
}

func TestCompute_Empty(t *testing.T) {
	if s := Compute("", nil); s != (Stats{}) {
		t.Errorf("Compute(\"\") = %+v", s)
	}
}

func TestEstimateTokens(t *testing.T) {
	if got := EstimateTokens(strings.Repeat("a", 9)); got != 3 {
		t.Errorf("EstimateTokens = %d, want 3", got)
	}
	if EstimateTokens("") != 0 {
		t.Error("empty text has tokens")
	}
}
