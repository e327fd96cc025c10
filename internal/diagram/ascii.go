package diagram

import (
	"github.com/guptarohit/asciigraph"

	pump "Impeller/internal/calc/pump"
)

// ASCIICurve renders head, efficiency and power against the curve points for
// terminal output. Series share one axis, so read values from the table.
func ASCIICurve(c pump.Curve) string {
	if len(c.Flow) < 2 {
		return ""
	}
	return asciigraph.PlotMany(
		[][]float64{c.Head, c.Efficiency, c.Power},
		asciigraph.Height(12),
		asciigraph.Width(60),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Green, asciigraph.Red),
		asciigraph.Caption("head m (blue), efficiency % (green), power kW (red) vs flow 0-130%"),
	)
}
