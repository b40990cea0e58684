package diff

// Style tags a span for the renderer.
type Style string

const (
	StyleNone      Style = ""
	StyleInsertion Style = "insertion"
	StyleDeletion  Style = "deletion"
)

// Span is a piece of display text with its style.
type Span struct {
	Text  string
	Style Style
}

// Spans maps parts one-to-one onto display spans.
func Spans(parts []Part) []Span {
	spans := make([]Span, len(parts))
	for i, p := range parts {
		spans[i] = Span{Text: p.Value, Style: styleFor(p.Kind)}
	}
	return spans
}

func styleFor(k Kind) Style {
	switch k {
	case Added:
		return StyleInsertion
	case Removed:
		return StyleDeletion
	default:
		return StyleNone
	}
}
