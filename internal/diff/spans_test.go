package diff

import "testing"

func TestSpans(t *testing.T) {
	parts := []Part{
		{Value: "the ", Kind: Unchanged},
		{Value: "cat ", Kind: Removed},
		{Value: "dog ", Kind: Added},
	}

	spans := Spans(parts)
	want := []Span{
		{Text: "the ", Style: StyleNone},
		{Text: "cat ", Style: StyleDeletion},
		{Text: "dog ", Style: StyleInsertion},
	}

	if len(spans) != len(want) {
		t.Fatalf("Spans returned %d spans, want %d", len(spans), len(want))
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestSpansEmpty(t *testing.T) {
	if got := Spans(nil); len(got) != 0 {
		t.Errorf("Spans(nil) = %v, want empty", got)
	}
}
