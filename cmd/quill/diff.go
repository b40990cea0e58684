package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/diff"
	"github.com/sant0-9/quill/internal/tui/styles"
)

func diffCmd() *cobra.Command {
	var stat bool

	cmd := &cobra.Command{
		Use:   "diff <original> <revised>",
		Short: "Show a word-level diff of two files",
		Long: `Diff aligns the words of two files and prints the revised text with
removals and insertions marked. Terminals get colours; pipes get
[-removed-] and {+added+} markers. Use "-" for one file to read stdin.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if args[0] == "-" && args[1] == "-" {
				return fmt.Errorf("only one side can be read from stdin")
			}
			original, err := readInput(cmd.InOrStdin(), args[:1])
			if err != nil {
				return err
			}
			revised, err := readInput(cmd.InOrStdin(), args[1:])
			if err != nil {
				return err
			}

			parts := diff.Compute(original, revised)
			w := cmd.OutOrStdout()
			writeDiff(w, parts, isTerminal(w))

			if stat {
				sum := diff.Stats(parts)
				fmt.Fprintf(cmd.ErrOrStderr(), "%d unchanged, %d added, %d removed\n", sum.Unchanged, sum.Added, sum.Removed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&stat, "stat", false, "Print word counts to stderr")

	return cmd
}

// writeDiff prints parts on one line, styled when color is set.
func writeDiff(w io.Writer, parts []diff.Part, color bool) {
	words := make([]string, 0, len(parts))
	for _, span := range diff.Spans(parts) {
		words = append(words, renderSpan(span, color))
	}
	fmt.Fprintln(w, strings.Join(words, " "))
}

func renderSpan(span diff.Span, color bool) string {
	word := strings.TrimRight(span.Text, " ")
	switch span.Style {
	case diff.StyleInsertion:
		if color {
			return styles.Insertion.Render(word)
		}
		return "{+" + word + "+}"
	case diff.StyleDeletion:
		if color {
			return styles.Deletion.Render(word)
		}
		return "[-" + word + "-]"
	default:
		return word
	}
}
