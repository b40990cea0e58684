package rewrite

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/sant0-9/quill/internal/diff"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/llm/llmtest"
)

func fixedClock() func() time.Time {
	t := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}

func TestRewriter_Rewrite(t *testing.T) {
	ctx := context.Background()
	provider := &llmtest.Provider{Chunks: []string{"the ", "**quick** ", "dog"}}
	store := history.NewStore(history.NewMemoryKV(), 10)

	r := NewRewriter(provider, WithModel("m1"), WithHistory(store), WithClock(fixedClock()))

	var streamed []string
	res, err := r.Rewrite(ctx, "the slow cat", DefaultOptions(), func(c string) {
		streamed = append(streamed, c)
	})
	if err != nil {
		t.Fatalf("Rewrite: %v", err)
	}

	if res.Rewritten != "the quick dog" {
		t.Errorf("rewritten = %q", res.Rewritten)
	}
	if strings.Join(streamed, "") != res.Rewritten || res.Chunks != 3 {
		t.Errorf("streamed = %q chunks = %d", streamed, res.Chunks)
	}
	if diff.Original(res.Parts) != "the slow cat " || diff.Revised(res.Parts) != "the quick dog " {
		t.Errorf("parts do not reconstruct: %+v", res.Parts)
	}
	if res.Elapsed <= 0 {
		t.Errorf("elapsed = %v", res.Elapsed)
	}
	if provider.Last().Model != "m1" {
		t.Errorf("model not passed: %q", provider.Last().Model)
	}

	entries, _ := store.Load(ctx)
	if len(entries) != 1 || res.Entry == nil || entries[0].ID != res.Entry.ID {
		t.Fatalf("history = %+v entry = %+v", entries, res.Entry)
	}
	if entries[0].Tone != "Casual" || entries[0].Strength != "High" || entries[0].Humanized != "the quick dog" {
		t.Errorf("entry = %+v", entries[0])
	}
}

func TestRewriter_NoSanitize(t *testing.T) {
	provider := &llmtest.Provider{Chunks: []string{"a; b"}}
	r := NewRewriter(provider, WithSanitize(false))

	res, err := r.Rewrite(context.Background(), "x", DefaultOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Rewritten != "a; b" {
		t.Errorf("rewritten = %q", res.Rewritten)
	}
}

func TestRewriter_EmptyInput(t *testing.T) {
	provider := &llmtest.Provider{}
	r := NewRewriter(provider)

	for _, in := range []string{"", "   \n\t"} {
		if _, err := r.Rewrite(context.Background(), in, DefaultOptions(), nil); !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Rewrite(%q) err = %v", in, err)
		}
	}
	if len(provider.Requests()) != 0 {
		t.Error("provider called for empty input")
	}
}

func TestRewriter_InvalidOptions(t *testing.T) {
	r := NewRewriter(&llmtest.Provider{})
	opts := DefaultOptions()
	opts.Strength = Strength(9)
	if _, err := r.Rewrite(context.Background(), "text", opts, nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestRewriter_StreamErrors(t *testing.T) {
	boom := errors.New("boom")

	tests := []struct {
		name     string
		provider *llmtest.Provider
	}{
		{"setup", &llmtest.Provider{StreamErr: boom}},
		{"mid stream", &llmtest.Provider{Chunks: []string{"partial"}, MidStreamErr: boom}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := history.NewStore(history.NewMemoryKV(), 10)
			r := NewRewriter(tt.provider, WithHistory(store))

			_, err := r.Rewrite(context.Background(), "some text", DefaultOptions(), nil)
			if !errors.Is(err, boom) {
				t.Fatalf("err = %v, want boom", err)
			}
			entries, _ := store.Load(context.Background())
			if len(entries) != 0 {
				t.Errorf("failed rewrite saved to history: %+v", entries)
			}
		})
	}
}

func TestRewriter_EmptyOutputNotSaved(t *testing.T) {
	store := history.NewStore(history.NewMemoryKV(), 10)
	r := NewRewriter(&llmtest.Provider{}, WithHistory(store))

	res, err := r.Rewrite(context.Background(), "input", DefaultOptions(), nil)
	if err != nil {
		t.Fatal(err)
	}
	if res.Entry != nil {
		t.Error("empty output recorded")
	}
	if len(res.Parts) != 1 || res.Parts[0].Kind != diff.Removed {
		t.Errorf("parts = %+v", res.Parts)
	}
}

func TestRewriter_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := NewRewriter(&llmtest.Provider{Chunks: []string{"a", "b"}})
	if _, err := r.Rewrite(ctx, "input", DefaultOptions(), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}
