package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/detect"
)

const detectTimeout = 60 * time.Second

var errNoText = errors.New("no text to check")

func detectCmd(g *globalFlags) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect [file|-]",
		Short: "Estimate how machine-written a text reads",
		Long: `Detect asks the model to score text from 0 (reads human) to 100 (reads
machine-generated). Only the first 1500 characters are sent. The local
provider is used when local mode is enabled. The score is a heuristic.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			text, err := readInput(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if strings.TrimSpace(text) == "" {
				return errNoText
			}

			detector, err := newDetector(e)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), detectTimeout)
			defer cancel()
			res := detector.Check(ctx, text)

			w := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}

			fmt.Fprintf(w, "Score:    %d/100\n", res.Score)
			fmt.Fprintf(w, "Verdict:  %s\n", res.Verdict)
			fmt.Fprintf(w, "Analysis: %s\n", res.Analysis)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the result as JSON")

	return cmd
}

// newDetector prefers the local provider when local mode is on.
func newDetector(e *env) (*detect.Detector, error) {
	local, err := newLocalProvider(e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	if local != nil {
		return detect.NewDetector(local, detect.WithLogger(e.logger)), nil
	}

	provider, err := newProvider(e.cfg, e.logger)
	if err != nil {
		return nil, err
	}
	return detect.NewDetector(provider,
		detect.WithModel(e.cfg.Model),
		detect.WithLogger(e.logger),
	), nil
}
