package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/sant0-9/quill/internal/llm"
)

const pingTimeout = 10 * time.Second

func pingCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the configured providers answer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.setup(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer e.Close()

			w := cmd.OutOrStdout()

			provider, err := newProvider(e.cfg, e.logger)
			if err != nil {
				return err
			}
			if err := ping(cmd.Context(), provider); err != nil {
				return fmt.Errorf("%s: %w", e.cfg.Provider, err)
			}
			fmt.Fprintf(w, "%s (%s): OK\n", e.cfg.Provider, e.cfg.Model)

			local, err := newLocalProvider(e.cfg, e.logger)
			if err != nil {
				return err
			}
			if local != nil {
				if err := ping(cmd.Context(), local); err != nil {
					return fmt.Errorf("local %s: %w", e.cfg.Local.Provider, err)
				}
				fmt.Fprintf(w, "local %s (%s): OK\n", e.cfg.Local.Provider, e.cfg.Local.Model)
			}
			return nil
		},
	}
}

func ping(ctx context.Context, p llm.Provider) error {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return p.Ping(ctx)
}
