// Package diff computes word-level alignments between an original text and
// its rewrite, for display highlighting.
package diff

import "strings"

// Kind classifies a Part.
type Kind int

const (
	Unchanged Kind = iota
	Added
	Removed
)

func (k Kind) String() string {
	switch k {
	case Unchanged:
		return "unchanged"
	case Added:
		return "added"
	case Removed:
		return "removed"
	default:
		return "unknown"
	}
}

// Part is one token of an alignment. Value carries the token followed by a
// single space.
type Part struct {
	Value string
	Kind  Kind
}

func (p Part) Added() bool   { return p.Kind == Added }
func (p Part) Removed() bool { return p.Kind == Removed }

// Tokenize splits text on runs of whitespace. Empty tokens never appear, so
// leading, trailing and repeated whitespace contribute nothing.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

// Compute aligns the words of two texts.
func Compute(original, revised string) []Part {
	return Align(Tokenize(original), Tokenize(revised))
}

// Align computes a longest-common-subsequence alignment of two token
// sequences. When an insertion and a deletion are equally good, the insertion
// is emitted first during the back-trace, which places deletions before
// insertions in the result. Adjacent parts of the same kind are not merged.
//
// Time and memory are O(len(original) * len(revised)).
func Align(original, revised []string) []Part {
	m, n := len(original), len(revised)

	lcs := make([][]int, m+1)
	for i := range lcs {
		lcs[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if original[i-1] == revised[j-1] {
				lcs[i][j] = lcs[i-1][j-1] + 1
			} else {
				lcs[i][j] = max(lcs[i-1][j], lcs[i][j-1])
			}
		}
	}

	parts := make([]Part, 0, max(m, n))
	i, j := m, n
	for i > 0 || j > 0 {
		switch {
		case i > 0 && j > 0 && original[i-1] == revised[j-1]:
			parts = append(parts, Part{Value: original[i-1] + " ", Kind: Unchanged})
			i--
			j--
		case j > 0 && (i == 0 || lcs[i][j-1] >= lcs[i-1][j]):
			parts = append(parts, Part{Value: revised[j-1] + " ", Kind: Added})
			j--
		default:
			parts = append(parts, Part{Value: original[i-1] + " ", Kind: Removed})
			i--
		}
	}

	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return parts
}

// Original rebuilds the original side of an alignment.
func Original(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Kind != Added {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

// Revised rebuilds the revised side of an alignment.
func Revised(parts []Part) string {
	var b strings.Builder
	for _, p := range parts {
		if p.Kind != Removed {
			b.WriteString(p.Value)
		}
	}
	return b.String()
}

// Summary counts parts by kind.
type Summary struct {
	Unchanged int
	Added     int
	Removed   int
}

// Stats summarizes an alignment.
func Stats(parts []Part) Summary {
	var s Summary
	for _, p := range parts {
		switch p.Kind {
		case Added:
			s.Added++
		case Removed:
			s.Removed++
		default:
			s.Unchanged++
		}
	}
	return s
}
