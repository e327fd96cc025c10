package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pumpcalc",
		Short: "Centrifugal pump sizing from a duty point",
		Long: `pumpcalc - preliminary centrifugal pump sizing

Given speed, flow, head and NPSH available, pumpcalc estimates specific
speed, impeller diameter, efficiency, shaft power, viscous correction
factors and a six-point performance curve, and flags risky designs.

Use 'pumpcalc size --help' for the inputs.`,
		SilenceUsage: true,
	}
	root.CompletionOptions.DisableDefaultCmd = true
	root.AddCommand(newSizeCmd(), newImportCmd(), newVersionCmd())
	return root
}
