package diff

import (
	"reflect"
	"strings"
	"testing"
)

func words(s string) []string { return strings.Fields(s) }

func joined(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteString(t + " ")
	}
	return b.String()
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "empty", text: "", want: []string{}},
		{name: "only whitespace", text: " \t\n  ", want: []string{}},
		{name: "single word", text: "hello", want: []string{"hello"}},
		{name: "leading and trailing", text: "  the cat  ", want: []string{"the", "cat"}},
		{name: "mixed separators", text: "a\tb\n\nc   d", want: []string{"a", "b", "c", "d"}},
		{name: "punctuation stays attached", text: "Hello, world!", want: []string{"Hello,", "world!"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tokenize(tt.text)
			if len(got) != len(tt.want) {
				t.Fatalf("Tokenize(%q) = %q, want %q", tt.text, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Tokenize(%q)[%d] = %q, want %q", tt.text, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestAlignScenarios(t *testing.T) {
	tests := []struct {
		name     string
		original []string
		revised  []string
		want     []Part
	}{
		{
			name:     "both empty",
			original: nil,
			revised:  nil,
			want:     []Part{},
		},
		{
			name:     "identical",
			original: words("the cat sat"),
			revised:  words("the cat sat"),
			want: []Part{
				{Value: "the ", Kind: Unchanged},
				{Value: "cat ", Kind: Unchanged},
				{Value: "sat ", Kind: Unchanged},
			},
		},
		{
			name:     "substitution",
			original: words("the cat"),
			revised:  words("the dog"),
			want: []Part{
				{Value: "the ", Kind: Unchanged},
				{Value: "cat ", Kind: Removed},
				{Value: "dog ", Kind: Added},
			},
		},
		{
			name:     "swap prefers insertion during back-trace",
			original: words("a b"),
			revised:  words("b a"),
			want: []Part{
				{Value: "a ", Kind: Removed},
				{Value: "b ", Kind: Unchanged},
				{Value: "a ", Kind: Added},
			},
		},
		{
			name:     "empty original",
			original: nil,
			revised:  words("x y"),
			want: []Part{
				{Value: "x ", Kind: Added},
				{Value: "y ", Kind: Added},
			},
		},
		{
			name:     "empty revised",
			original: words("x y"),
			revised:  nil,
			want: []Part{
				{Value: "x ", Kind: Removed},
				{Value: "y ", Kind: Removed},
			},
		},
		{
			name:     "insertion in the middle",
			original: words("bananas are radioactive"),
			revised:  words("bananas are naturally radioactive"),
			want: []Part{
				{Value: "bananas ", Kind: Unchanged},
				{Value: "are ", Kind: Unchanged},
				{Value: "naturally ", Kind: Added},
				{Value: "radioactive ", Kind: Unchanged},
			},
		},
		{
			name:     "case sensitive",
			original: words("The"),
			revised:  words("the"),
			want: []Part{
				{Value: "The ", Kind: Removed},
				{Value: "the ", Kind: Added},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Align(tt.original, tt.revised)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Align(%q, %q) = %v, want %v", tt.original, tt.revised, got, tt.want)
			}
		})
	}
}

func TestAlignReconstructsBothSides(t *testing.T) {
	pairs := [][2]string{
		{"", ""},
		{"one", ""},
		{"", "one"},
		{"the quick brown fox", "the slow brown dog jumps"},
		{"a b a b a", "b a b"},
		{"repeat repeat repeat", "repeat"},
		{"Moreover, it is crucial to delve deeper.", "And honestly, it is kind of important to look deeper, you know?"},
		{"x y z", "z y x"},
	}

	for _, p := range pairs {
		a, b := Tokenize(p[0]), Tokenize(p[1])
		parts := Align(a, b)

		if got, want := Original(parts), joined(a); got != want {
			t.Errorf("Original(Align(%q, %q)) = %q, want %q", p[0], p[1], got, want)
		}
		if got, want := Revised(parts), joined(b); got != want {
			t.Errorf("Revised(Align(%q, %q)) = %q, want %q", p[0], p[1], got, want)
		}

		s := Stats(parts)
		if s.Unchanged+s.Removed != len(a) || s.Unchanged+s.Added != len(b) {
			t.Errorf("Stats(Align(%q, %q)) = %+v, inconsistent with %d/%d tokens", p[0], p[1], s, len(a), len(b))
		}
	}
}

func TestAlignIdentityOnlyUnchanged(t *testing.T) {
	for _, text := range []string{"a", "a a a", "The Banana Equivalent Dose is a funny unit"} {
		for _, p := range Compute(text, text) {
			if p.Kind != Unchanged {
				t.Errorf("Compute(%q, %q) produced %v part %q", text, text, p.Kind, p.Value)
			}
		}
	}
}

func TestAlignDoesNotCoalesce(t *testing.T) {
	parts := Align(nil, words("one two three"))
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want one per token", len(parts))
	}
	for _, p := range parts {
		if !p.Added() {
			t.Errorf("part %q should be added", p.Value)
		}
	}
}

func TestAlignIsDeterministic(t *testing.T) {
	a, b := words("a b c a b"), words("b a c b a")
	first := Align(a, b)
	for i := 0; i < 20; i++ {
		if got := Align(a, b); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: Align = %v, want %v", i, got, first)
		}
	}
}

func TestComputeCollapsesWhitespace(t *testing.T) {
	parts := Compute("the   cat\n\nsat", "the cat sat")
	if got := Revised(parts); got != "the cat sat " {
		t.Errorf("Revised = %q", got)
	}
	if s := Stats(parts); s.Added != 0 || s.Removed != 0 {
		t.Errorf("whitespace-only change produced edits: %+v", s)
	}
}

func TestKindString(t *testing.T) {
	tests := map[Kind]string{
		Unchanged: "unchanged",
		Added:     "added",
		Removed:   "removed",
		Kind(42):  "unknown",
	}
	for k, want := range tests {
		if got := k.String(); got != want {
			t.Errorf("Kind(%d).String() = %q, want %q", int(k), got, want)
		}
	}
}
