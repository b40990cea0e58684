package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/diff"
	"github.com/sant0-9/quill/internal/history"
	"github.com/sant0-9/quill/internal/tui/styles"
)

const previewWidth = 60

func historyCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, show or clear saved rewrites",
	}

	cmd.AddCommand(historyListCmd(g))
	cmd.AddCommand(historyShowCmd(g))
	cmd.AddCommand(historyClearCmd(g))

	return cmd
}

// withStore runs fn against the configured history store.
func withStore(g *globalFlags, stderr io.Writer, fn func(ctx context.Context, store *history.Store) error) error {
	e, err := g.setup(stderr)
	if err != nil {
		return err
	}
	defer e.Close()

	store, err := e.openHistory()
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("history is disabled in %s", configName(e))
	}
	return fn(context.Background(), store)
}

func configName(e *env) string {
	if p := e.cfg.Path(); p != "" {
		return p
	}
	return "the config"
}

func historyListCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List saved rewrites, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(g, cmd.ErrOrStderr(), func(ctx context.Context, store *history.Store) error {
				entries, err := store.Load(ctx)
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				switch {
				case asJSON:
					enc := json.NewEncoder(w)
					enc.SetIndent("", "  ")
					return enc.Encode(entries)
				case isTerminal(w):
					fmt.Fprintln(w, historyTable(entries))
				default:
					// TSV for pipes
					for _, e := range entries {
						fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
							e.ID, e.Time().Format("2006-01-02 15:04"), e.Tone, e.Strength, preview(e.Original))
					}
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as JSON")

	return cmd
}

func historyTable(entries []history.Entry) string {
	if len(entries) == 0 {
		return "No saved rewrites."
	}

	header := lipgloss.NewStyle().Foreground(styles.ColorPrimary).Bold(true).Padding(0, 1)
	cell := lipgloss.NewStyle().Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.ColorMuted)).
		Headers("ID", "WHEN", "TONE", "STRENGTH", "ORIGINAL").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return header
			}
			return cell
		})
	for _, e := range entries {
		t.Row(shortID(e.ID), e.Time().Local().Format("Jan 2 15:04"), e.Tone, e.Strength, preview(e.Original))
	}
	return t.Render()
}

func historyShowCmd(g *globalFlags) *cobra.Command {
	var showDiff bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one saved rewrite; any unique id prefix works",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(g, cmd.ErrOrStderr(), func(ctx context.Context, store *history.Store) error {
				entries, err := store.Load(ctx)
				if err != nil {
					return err
				}
				e, err := findEntry(entries, args[0])
				if err != nil {
					return err
				}

				w := cmd.OutOrStdout()
				if showDiff {
					writeDiff(w, diff.Compute(e.Original, e.Humanized), isTerminal(w))
					return nil
				}
				fmt.Fprintf(w, "%s  %s / %s\n\n", e.Time().Local().Format("2006-01-02 15:04"), e.Tone, e.Strength)
				fmt.Fprintf(w, "Original:\n%s\n\nRewritten:\n%s\n", e.Original, e.Humanized)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print the word diff instead")

	return cmd
}

func historyClearCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete all saved rewrites",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStore(g, cmd.ErrOrStderr(), func(ctx context.Context, store *history.Store) error {
				if err := store.Clear(ctx); err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
				return nil
			})
		},
	}
}

// findEntry matches id exactly or as a unique prefix.
func findEntry(entries []history.Entry, id string) (history.Entry, error) {
	var matches []history.Entry
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
		if strings.HasPrefix(e.ID, id) {
			matches = append(matches, e)
		}
	}
	switch len(matches) {
	case 0:
		return history.Entry{}, fmt.Errorf("no history entry %q", id)
	case 1:
		return matches[0], nil
	default:
		return history.Entry{}, fmt.Errorf("id prefix %q matches %d entries", id, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func preview(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	return runewidth.Truncate(flat, previewWidth, "...")
}
