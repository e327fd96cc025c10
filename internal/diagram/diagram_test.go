package diagram

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pump "Impeller/internal/calc/pump"
)

func sampleCurve(t *testing.T) pump.Curve {
	t.Helper()
	res, err := pump.Calculate(pump.Input{
		Speed: 3000, Flow: 500, HeadTotal: 120, NPSHAvailable: 6,
		SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	return res.Curve
}

func TestASCIICurve(t *testing.T) {
	out := ASCIICurve(sampleCurve(t))
	if !strings.Contains(out, "efficiency %") {
		t.Errorf("caption missing:\n%s", out)
	}
	if lines := strings.Count(out, "\n"); lines < 12 {
		t.Errorf("plot has %d lines, want at least 12", lines)
	}
	if ASCIICurve(pump.Curve{}) != "" {
		t.Error("empty curve should render nothing")
	}
}

func TestWriteCurvePNG(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCurvePNG(&buf, sampleCurve(t), "Duty 500 m3/h"); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")) {
		t.Errorf("not a PNG, first bytes %q", buf.Bytes()[:min(8, buf.Len())])
	}
	if err := WriteCurvePNG(&buf, pump.Curve{Flow: []float64{1}}, ""); !errors.Is(err, ErrShortCurve) {
		t.Errorf("err = %v, want ErrShortCurve", err)
	}
}

func TestExportCurve_AddsExtension(t *testing.T) {
	dir := t.TempDir()
	base := filepath.Join(dir, "out", "curve")
	if err := ExportCurve(sampleCurve(t), "curve", base); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(base + ".png"); err != nil {
		t.Errorf("expected %s.png: %v", base, err)
	}
}
