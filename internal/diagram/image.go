package diagram

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	pump "Impeller/internal/calc/pump"
)

var (
	headColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	effColor   = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	npshColor  = color.RGBA{R: 255, G: 127, B: 14, A: 255}
	powerColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

const (
	width  = 8 * vg.Inch
	height = 5 * vg.Inch
)

var ErrShortCurve = errors.New("curve needs at least two points")

func curvePlot(c pump.Curve, title string) (*plot.Plot, error) {
	if len(c.Flow) < 2 {
		return nil, ErrShortCurve
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Flow (m3/h)"
	p.Y.Label.Text = "Head (m), Efficiency (%), NPSHr (m), Power (kW)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	series := []struct {
		name  string
		ys    []float64
		color color.Color
		dash  bool
	}{
		{"Head", c.Head, headColor, false},
		{"Efficiency", c.Efficiency, effColor, false},
		{"NPSHr", c.NPSH, npshColor, true},
		{"Power", c.Power, powerColor, true},
	}
	for _, s := range series {
		pts := make(plotter.XYs, len(c.Flow))
		for i := range c.Flow {
			pts[i] = plotter.XY{X: c.Flow[i], Y: s.ys[i]}
		}
		line, points, err := plotter.NewLinePoints(pts)
		if err != nil {
			return nil, fmt.Errorf("%s series: %w", s.name, err)
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = s.color
		if s.dash {
			line.LineStyle.Dashes = []vg.Length{vg.Points(5), vg.Points(3)}
		}
		points.GlyphStyle.Color = s.color
		points.GlyphStyle.Radius = vg.Points(2.5)
		points.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(line, points)
		p.Legend.Add(s.name, line, points)
	}
	return p, nil
}

// WriteCurvePNG draws the performance curve as a PNG into w.
func WriteCurvePNG(w io.Writer, c pump.Curve, title string) error {
	p, err := curvePlot(c, title)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

// ExportCurve saves the performance curve; the format follows the file
// extension (.png, .svg, .pdf) and defaults to PNG.
func ExportCurve(c pump.Curve, title, filename string) error {
	p, err := curvePlot(c, title)
	if err != nil {
		return err
	}
	switch filepath.Ext(filename) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if dir := filepath.Dir(filename); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return p.Save(width, height, filename)
}
