package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/modux"
	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of modux",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "modux version %s\n", strings.TrimSpace(modux.Version))
		},
	}
}
