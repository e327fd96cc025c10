package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"Impeller/internal/calc/premium/importer"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE.xlsx",
		Short: "Size every duty point in a spreadsheet",
		Long: `Size every duty point in the first sheet of an xlsx workbook.

Row 1 is a header. Each following row holds, in order:
  n, q, tdhm, npsha, suctype, sg, num_impellers, viscosity`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			res, err := importer.ImportPumps(f)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROW\tNS\tDIAMETER mm\tEFF %\tPOWER kW\tTYPE / ERROR")
			for _, row := range res.Results {
				if row.Result == nil {
					fmt.Fprintf(w, "%d\t-\t-\t-\t-\t%s\n", row.Row, row.Error)
					continue
				}
				r := row.Result
				fmt.Fprintf(w, "%d\t%.2f\t%.1f\t%.2f\t%.2f\t%s\n", row.Row, r.Ns, r.DiameterMM, r.Efficiency, r.KW, r.BandLabel)
			}
			w.Flush()
			fmt.Fprintf(cmd.OutOrStdout(), "\n%d rows, %d failed\n", res.Count, res.Failed)
			return nil
		},
	}
}
