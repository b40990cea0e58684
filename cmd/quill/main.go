package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "quill",
		Short: "Rewrite text in a more natural voice and see what changed",
		Long: `quill rewrites text through a language model and shows a word-level
diff against the original. Run it without arguments for the interactive
editor, or use the subcommands in scripts.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Interactive TUI when stdout is a terminal; usage for pipes
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return cmd.Help()
			}
			return runTUI(g)
		},
	}

	rootCmd.PersistentFlags().StringVar(&g.configPath, "config", "", "Config file (default ~/.config/quill/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Debug logging")

	rootCmd.AddCommand(rewriteCmd(g))
	rootCmd.AddCommand(diffCmd())
	rootCmd.AddCommand(detectCmd(g))
	rootCmd.AddCommand(historyCmd(g))
	rootCmd.AddCommand(pingCmd(g))

	return rootCmd
}
