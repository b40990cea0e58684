package main

import (
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/sant0-9/quill/internal/export"
	"github.com/sant0-9/quill/internal/rewrite"
)

// Option enums double as flag values.
var (
	_ pflag.Value = (*rewrite.Tone)(nil)
	_ pflag.Value = (*rewrite.Strength)(nil)
	_ pflag.Value = (*rewrite.Purpose)(nil)
	_ pflag.Value = (*rewrite.Readability)(nil)
)

func rewriteCmd(g *globalFlags) *cobra.Command {
	defaults := rewrite.DefaultOptions()
	var (
		tone        = defaults.Tone
		strength    = defaults.Strength
		purpose     = defaults.Purpose
		readability = defaults.Readability
		showDiff    bool
		out         string
		noHistory   bool
		model       string
	)

	cmd := &cobra.Command{
		Use:   "rewrite [file|-]",
		Short: "Rewrite a file or stdin and stream the result",
		Long: `Rewrite reads text from a file, or from stdin when the file is "-" or
omitted, and streams the rewritten text to stdout. Options not given on the
command line come from the rewrite section of the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			opts, err := rewrite.OptionsFromConfig(e.cfg.Rewrite)
			if err != nil {
				return fmt.Errorf("config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("tone") {
				opts.Tone = tone
			}
			if flags.Changed("strength") {
				opts.Strength = strength
			}
			if flags.Changed("purpose") {
				opts.Purpose = purpose
			}
			if flags.Changed("readability") {
				opts.Readability = readability
			}

			input, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(input) == "" {
				return rewrite.ErrEmptyInput
			}

			provider, err := newProvider(e.cfg, e.logger)
			if err != nil {
				return err
			}

			if model == "" {
				model = e.cfg.Model
			}
			ropts := []rewrite.Option{
				rewrite.WithModel(model),
				rewrite.WithLogger(e.logger),
			}
			if !noHistory {
				store, err := e.openHistory()
				if err != nil {
					e.logger.Warn("history unavailable", "error", err)
				} else if store != nil {
					ropts = append(ropts, rewrite.WithHistory(store))
				}
			}
			rewriter := rewrite.NewRewriter(provider, ropts...)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			w := cmd.OutOrStdout()
			var onChunk func(string)
			if out == "" && !showDiff {
				onChunk = func(chunk string) { fmt.Fprint(w, chunk) }
			}

			res, err := rewriter.Rewrite(ctx, input, opts, onChunk)
			if err != nil {
				return err
			}

			switch {
			case out != "":
				if err := export.ToFile(out, export.FormatFromPath(out), res.Rewritten); err != nil {
					return err
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "Saved %s\n", out)
			case showDiff:
				writeDiff(w, res.Parts, isTerminal(w))
			default:
				fmt.Fprintln(w)
			}
			return nil
		},
	}

	cmd.Flags().Var(&tone, "tone", "Tone: "+ids(rewrite.Tones()))
	cmd.Flags().Var(&strength, "strength", "Strength: "+ids(rewrite.Strengths()))
	cmd.Flags().Var(&purpose, "purpose", "Purpose: "+ids(rewrite.Purposes()))
	cmd.Flags().Var(&readability, "readability", "Reading level: "+ids(rewrite.Readabilities()))
	cmd.Flags().BoolVar(&showDiff, "diff", false, "Print a word diff instead of the rewritten text")
	cmd.Flags().StringVarP(&out, "out", "o", "", "Write the result to a file (.md, .html or .txt)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "Do not save this rewrite to history")
	cmd.Flags().StringVar(&model, "model", "", "Model override for this run")

	return cmd
}

func ids[T interface{ ID() string }](values []T) string {
	names := make([]string, len(values))
	for i, v := range values {
		names[i] = v.ID()
	}
	return strings.Join(names, "|")
}
