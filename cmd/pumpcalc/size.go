package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	pump "Impeller/internal/calc/pump"
	"Impeller/internal/calc/report"
	"Impeller/internal/diagram"
)

type sizeOptions struct {
	in      pump.Input
	asJSON  bool
	chart   bool
	plot    string
	pdf     string
	project string
}

func newSizeCmd() *cobra.Command {
	opts := &sizeOptions{}
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size a pump for one duty point",
		Long: `Size a centrifugal pump for one duty point.

Examples:
  # Single-stage end suction, water
  pumpcalc size --n 3000 --q 500 --tdhm 120 --npsha 6

  # Three stages, double suction, print the curve as a terminal chart
  pumpcalc size --n 2950 --q 300 --tdhm 360 --npsha 8 --suctype 2 --impellers 3 --chart

  # Save the curve plot and a PDF datasheet
  pumpcalc size --n 1450 --q 30 --tdhm 80 --npsha 5 --plot curve.png --pdf sheet.pdf`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSize(cmd.OutOrStdout(), opts)
		},
	}

	f := cmd.Flags()
	f.Float64Var(&opts.in.Speed, "n", 0, "Rotational speed (rpm) [required]")
	f.Float64Var(&opts.in.Flow, "q", 0, "Flow rate (m3/h) [required]")
	f.Float64Var(&opts.in.HeadTotal, "tdhm", 0, "Total dynamic head (m) [required]")
	f.Float64Var(&opts.in.NPSHAvailable, "npsha", 0, "NPSH available (m) [required]")
	f.IntVar(&opts.in.SuctionType, "suctype", 1, "Suction type: 1 single, 2 double")
	f.Float64Var(&opts.in.SpecificGravity, "sg", 1, "Specific gravity")
	f.IntVar(&opts.in.NumImpellers, "impellers", 1, "Number of impellers (stages)")
	f.Float64Var(&opts.in.Viscosity, "viscosity", 1, "Kinematic viscosity (cSt)")

	f.BoolVar(&opts.asJSON, "json", false, "Print the result as JSON")
	f.BoolVar(&opts.chart, "chart", false, "Print the performance curve as a terminal chart")
	f.StringVar(&opts.plot, "plot", "", "Save the performance curve image (.png, .svg or .pdf)")
	f.StringVar(&opts.pdf, "pdf", "", "Write a PDF datasheet to this file")
	f.StringVar(&opts.project, "project", "", "Project name printed on the datasheet")

	for _, name := range []string{"n", "q", "tdhm", "npsha"} {
		cmd.MarkFlagRequired(name)
	}
	return cmd
}

func runSize(out io.Writer, opts *sizeOptions) error {
	res, err := pump.Calculate(opts.in)
	if err != nil {
		return err
	}
	rounded := res.Rounded()

	if opts.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rounded); err != nil {
			return err
		}
	} else {
		printResult(out, rounded)
	}

	if opts.chart {
		fmt.Fprintln(out)
		fmt.Fprintln(out, diagram.ASCIICurve(res.Curve))
	}
	if opts.plot != "" {
		if err := diagram.ExportCurve(res.Curve, "Performance curve", opts.plot); err != nil {
			return fmt.Errorf("plot: %w", err)
		}
	}
	if opts.pdf != "" {
		if err := writeDatasheet(opts, rounded); err != nil {
			return fmt.Errorf("datasheet: %w", err)
		}
	}
	return nil
}

func writeDatasheet(opts *sizeOptions, res pump.Result) error {
	f, err := os.Create(opts.pdf)
	if err != nil {
		return err
	}
	err = report.Render(f, report.Datasheet{Project: opts.project, Input: opts.in, Result: res})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

func printResult(out io.Writer, r pump.Result) {
	fmt.Fprintln(out)
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out, "     CENTRIFUGAL PUMP SIZING")
	fmt.Fprintln(out, "═══════════════════════════════════════════════════════════════")
	fmt.Fprintln(out)

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  Head per stage\t%.2f\tm\n", r.HeadPerStage)
	fmt.Fprintf(w, "  Specific speed Ns\t%.2f\t(Uns %.4f)\n", r.Ns, r.Uns)
	fmt.Fprintf(w, "  Suction specific speed Nss\t%.2f\t(UNss %.4f)\n", r.Nss, r.UNss)
	fmt.Fprintf(w, "  Impeller diameter\t%.1f\tmm\n", r.DiameterMM)
	fmt.Fprintf(w, "  Tip speed\t%.2f\tm/s\n", r.TipSpeed)
	fmt.Fprintf(w, "  Efficiency\t%.2f\t%%\n", r.Efficiency)
	fmt.Fprintf(w, "  Shaft power\t%.2f\tkW\n", r.KW)
	fmt.Fprintf(w, "  Reynolds\t%.0f\t\n", r.Reynolds)
	fmt.Fprintf(w, "  CQ / CH / CE\t%.4f / %.4f / %.4f\t\n", r.CQ, r.CH, r.CE)
	fmt.Fprintf(w, "  Impeller type\t%s\t\n", r.BandLabel)
	if r.NewPump != nil {
		fmt.Fprintf(w, "  New pump estimate\t%.2f %% / %.2f kW\t\n", r.NewPump.Efficiency, r.NewPump.KW)
	}
	w.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "  Performance curve")
	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "  Flow m3/h\tHead m\tEff %\tNPSHr m\tPower kW\t")
	c := r.Curve
	for i := range c.Flow {
		fmt.Fprintf(w, "  %.2f\t%.2f\t%.2f\t%.2f\t%.2f\t\n", c.Flow[i], c.Head[i], c.Efficiency[i], c.NPSH[i], c.Power[i])
	}
	w.Flush()

	if len(r.Warnings) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "  Warnings")
		for _, wn := range r.Warnings {
			mark := "  -"
			if wn.Critical {
				mark = "  !"
			}
			fmt.Fprintf(out, "%s %s\n", mark, wn.Text)
		}
	}
	fmt.Fprintln(out)
}
