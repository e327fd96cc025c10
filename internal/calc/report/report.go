package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/phpdave11/gofpdf"

	pump "Impeller/internal/calc/pump"
	"Impeller/internal/diagram"
)

// Datasheet is everything printed on one pump sizing sheet. Result must
// already be rounded.
type Datasheet struct {
	Project string
	Author  string
	Title   string
	Notes   string
	Date    time.Time
	Input   pump.Input
	Result  pump.Result
}

type row struct {
	label, value string
}

func f2(v float64) string { return fmt.Sprintf("%.2f", v) }
func f4(v float64) string { return fmt.Sprintf("%.4f", v) }

func inputRows(in pump.Input) []row {
	suction := "single"
	if in.SuctionType == 2 {
		suction = "double"
	}
	return []row{
		{"Speed (rpm)", f2(in.Speed)},
		{"Flow (m3/h)", f2(in.Flow)},
		{"Total head (m)", f2(in.HeadTotal)},
		{"NPSH available (m)", f2(in.NPSHAvailable)},
		{"Suction", suction},
		{"Specific gravity", f2(in.SpecificGravity)},
		{"Impellers", fmt.Sprint(in.NumImpellers)},
		{"Viscosity (cSt)", f2(in.Viscosity)},
	}
}

func resultRows(r pump.Result) []row {
	rows := []row{
		{"Head per stage (m)", f2(r.HeadPerStage)},
		{"Angular speed (rad/s)", f2(r.Omega)},
		{"Ns / Uns", f2(r.Ns) + " / " + f4(r.Uns)},
		{"Nss / UNss", f2(r.Nss) + " / " + f4(r.UNss)},
		{"Flow coefficient phi", f4(r.Phi)},
		{"Impeller radius (m)", f4(r.R2)},
		{"Impeller diameter (mm)", fmt.Sprintf("%.1f", r.DiameterMM)},
		{"Tip speed (m/s)", f2(r.TipSpeed)},
		{"Efficiency (%)", f2(r.Efficiency)},
		{"Power (kW)", f2(r.KW)},
		{"Reynolds", fmt.Sprintf("%.0f", r.Reynolds)},
		{"CQ / CH / CE", f4(r.CQ) + " / " + f4(r.CH) + " / " + f4(r.CE)},
		{"Impeller type", r.BandLabel},
	}
	if r.NewPump != nil {
		rows = append(rows,
			row{"New pump efficiency (%)", f2(r.NewPump.Efficiency)},
			row{"New pump power (kW)", f2(r.NewPump.KW)},
		)
	}
	return rows
}

func table(pdf *gofpdf.Fpdf, heading string, rows []row) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, heading)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 10)
	for _, r := range rows {
		pdf.CellFormat(70, 6, r.label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(60, 6, r.value, "1", 1, "R", false, 0, "")
	}
	pdf.Ln(4)
}

func curveTable(pdf *gofpdf.Fpdf, c pump.Curve) {
	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Performance curve")
	pdf.Ln(8)

	headers := []string{"Flow m3/h", "Head m", "Eff %", "NPSHr m", "Power kW"}
	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range headers {
		pdf.CellFormat(32, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for i := range c.Flow {
		for _, v := range []float64{c.Flow[i], c.Head[i], c.Efficiency[i], c.NPSH[i], c.Power[i]} {
			pdf.CellFormat(32, 6, f2(v), "1", 0, "R", false, 0, "")
		}
		pdf.Ln(-1)
	}
	pdf.Ln(4)
}

// Render writes the datasheet as a single A4 PDF document.
func Render(w io.Writer, d Datasheet) error {
	if d.Title == "" {
		d.Title = "Pump Sizing Datasheet"
	}
	if d.Date.IsZero() {
		d.Date = time.Now()
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(d.Title, false)
	pdf.SetAuthor(d.Author, false)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, d.Title)
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, fmt.Sprintf("Project: %s", d.Project))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Author: %s", d.Author))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", d.Date.Format("2006-01-02")))
	pdf.Ln(10)

	table(pdf, "Duty point", inputRows(d.Input))
	table(pdf, "Sizing", resultRows(d.Result))

	if len(d.Result.Warnings) > 0 {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Warnings")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 10)
		for _, wn := range d.Result.Warnings {
			prefix := "Note: "
			if wn.Critical {
				prefix = "CRITICAL: "
			}
			pdf.MultiCell(0, 6, prefix+wn.Text, "", "L", false)
		}
		pdf.Ln(4)
	}

	pdf.AddPage()
	curveTable(pdf, d.Result.Curve)

	var chart bytes.Buffer
	if err := diagram.WriteCurvePNG(&chart, d.Result.Curve, "Performance curve"); err != nil {
		return fmt.Errorf("curve chart: %w", err)
	}
	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("curve", opts, &chart)
	pdf.ImageOptions("curve", 10, pdf.GetY(), 190, 0, false, opts, 0, "")

	if d.Notes != "" {
		pdf.AddPage()
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, "Notes")
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
		pdf.MultiCell(0, 6, d.Notes, "", "L", false)
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}
