package main

import (
	"fmt"
	"os"

	"github.com/aretw0/modux"
	"github.com/aretw0/modux/internal/presentation/tui"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "modux",
		Short:         "modux generates state container boilerplate from unit manifests",
		Long:          `modux builds units from a YAML or JSON manifest, inspects their generated action types and dispatches actions against an in-memory store.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			tui.PrintBanner(cmd.OutOrStdout(), modux.Version)
			return cmd.Help()
		},
	}

	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(newVersionCmd(), newInspectCmd(), newRunCmd())
	return rootCmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
