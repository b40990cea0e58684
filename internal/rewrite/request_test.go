package rewrite

import (
	"strings"
	"testing"
)

func TestSampling(t *testing.T) {
	tests := []struct {
		s        Strength
		temp, tp float64
	}{
		{StrengthLow, 1.0, 0.95},
		{StrengthMedium, 1.0, 0.95},
		{StrengthHigh, 1.0, 0.95},
		{StrengthMaximum, 1.6, 0.99},
	}
	for _, tt := range tests {
		temp, tp := Sampling(tt.s)
		if temp != tt.temp || tp != tt.tp {
			t.Errorf("Sampling(%v) = %v, %v", tt.s, temp, tp)
		}
	}
}

func TestBuildRequest(t *testing.T) {
	opts := Options{
		Tone:        ToneWitty,
		Strength:    StrengthMaximum,
		Purpose:     PurposeEmail,
		Readability: ReadabilitySimple,
	}
	req, err := BuildRequest("The meeting moved to Friday.", opts, "gpt-4o")
	if err != nil {
		t.Fatal(err)
	}

	if req.Model != "gpt-4o" {
		t.Errorf("model = %q", req.Model)
	}
	if req.Temperature != 1.6 || req.TopP != 0.99 {
		t.Errorf("sampling = %v / %v", req.Temperature, req.TopP)
	}
	if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", req.Messages)
	}

	user := req.Messages[1].Content
	for _, want := range []string{"The meeting moved to Friday.", "Tone:", "Intensity:", "Purpose:", "Reading level:", "email"} {
		if !strings.Contains(user, want) {
			t.Errorf("user prompt missing %q:\n%s", want, user)
		}
	}
	if req.MaxTokens < 1024 {
		t.Errorf("max tokens = %d", req.MaxTokens)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"wait—what", "wait, what"},
		{"one; two", "one, and two"},
		{"Note: this", "Note - this"},
		{"**bold** and ## heading", "bold and  heading"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
