package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"Impeller/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of pumpcalc",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pumpcalc v%s\n", version.String())
		},
	}
}
