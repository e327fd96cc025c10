package pump

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func exampleInput() Input {
	return Input{
		Speed:           3000,
		Flow:            500,
		HeadTotal:       120,
		NPSHAvailable:   6,
		SuctionType:     1,
		SpecificGravity: 1.0,
		NumImpellers:    1,
		Viscosity:       1,
	}
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

func TestCalculate_Example(t *testing.T) {
	res, err := Calculate(exampleInput())
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}

	approx(t, "HeadPerStage", res.HeadPerStage, 120, 1e-12)
	approx(t, "Omega", res.Omega, 314.159265, 1e-5)
	approx(t, "Ns", res.Ns, 30.836784, 1e-5)
	approx(t, "Uns", res.Uns, 0.582717, 1e-5)
	approx(t, "Nss", res.Nss, 291.636293, 1e-5)
	approx(t, "Phi", res.Phi, 0.457821, 1e-5)
	approx(t, "DiameterMM", res.DiameterMM, 322.8178, 1e-3)
	approx(t, "TipSpeed", res.TipSpeed, 50.7081, 1e-3)
	approx(t, "Efficiency", res.Efficiency, 83.72039, 1e-4)
	approx(t, "KW", res.KW, 194.9436, 1e-3)
	approx(t, "Reynolds", res.Reynolds, 2182962.7, 1)

	if res.Band != Low {
		t.Errorf("Band = %v, want Low", res.Band)
	}
	if res.BandLabel == "" {
		t.Error("BandLabel is empty")
	}
	if res.NewPump != nil {
		t.Errorf("NewPump = %+v, want nil", res.NewPump)
	}

	wantFlow := []float64{0, 125, 250, 375, 500, 650}
	if !reflect.DeepEqual(res.Curve.Flow, wantFlow) {
		t.Errorf("Curve.Flow = %v, want %v", res.Curve.Flow, wantFlow)
	}
	for i := 1; i < len(res.Curve.Flow); i++ {
		if res.Curve.Flow[i] < res.Curve.Flow[i-1] {
			t.Errorf("Curve.Flow not monotonic at %d: %v", i, res.Curve.Flow)
		}
	}
	for _, series := range [][]float64{res.Curve.Head, res.Curve.Efficiency, res.Curve.NPSH, res.Curve.Power} {
		if len(series) != 6 {
			t.Errorf("curve series has %d points, want 6", len(series))
		}
	}
	if res.KW <= 0 || res.Efficiency <= 0 {
		t.Errorf("KW = %v, Efficiency = %v, want positive", res.KW, res.Efficiency)
	}
}

func TestCalculate_HeadPerStageTimesStages(t *testing.T) {
	for _, k := range []int{1, 2, 3, 5, 7, 12} {
		in := exampleInput()
		in.HeadTotal = 437.3
		in.NumImpellers = k
		res, err := Calculate(in)
		if err != nil {
			t.Fatalf("stages=%d: %v", k, err)
		}
		approx(t, "HeadPerStage*k", res.HeadPerStage*float64(k), in.HeadTotal, 1e-9)
	}
}

func TestFlowCoefficient_Branches(t *testing.T) {
	tests := []struct {
		uns  float64
		want float64
	}{
		{0.25, 0.4 / math.Pow(0.25, 0.25)},
		{0.999, 0.4 / math.Pow(0.999, 0.25)},
		{1.0, 0.4},
		{1.001, 0.4 / math.Sqrt(1.001)},
		{4.0, 0.2},
	}
	for _, tt := range tests {
		approx(t, "flowCoefficient", flowCoefficient(tt.uns), tt.want, 1e-15)
	}

	// Away from the boundary the two fits disagree, so a swapped comparison shows up.
	if got, low := flowCoefficient(4.0), 0.4/math.Pow(4.0, 0.25); got == low {
		t.Errorf("flowCoefficient(4) used the low-Ns fit")
	}
	if got, high := flowCoefficient(0.25), 0.4/math.Sqrt(0.25); got == high {
		t.Errorf("flowCoefficient(0.25) used the high-Ns fit")
	}
}

func TestBaselineEfficiency_StagePenalty(t *testing.T) {
	qus, speed, nus := 2201.4, 3000.0, 1593.0
	prev := baselineEfficiency(qus, speed, nus, 1)
	for k := 2; k <= 10; k++ {
		e := baselineEfficiency(qus, speed, nus, k)
		if e > prev {
			t.Errorf("efficiency rose from %v to %v at %d stages", prev, e, k)
		}
		approx(t, "stage step", prev-e, stageLoss, 1e-12)
		prev = e
	}
}

func TestPerformanceCurve_RatedPointMatchesDutyPoint(t *testing.T) {
	const eff = 0.8
	in := exampleInput()
	for b := VeryLow; b <= VeryHigh; b++ {
		c := PerformanceCurve(in, b, eff)
		if rel := math.Abs(c.Head[4]-in.HeadTotal) / in.HeadTotal; rel > 0.005 {
			t.Errorf("%v: head at 100%% = %v, want ~%v", b, c.Head[4], in.HeadTotal)
		}
		if rel := math.Abs(c.Efficiency[4]-eff*100) / (eff * 100); rel > 0.005 {
			t.Errorf("%v: efficiency at 100%% = %v, want ~%v", b, c.Efficiency[4], eff*100)
		}
		if rel := math.Abs(c.NPSH[4]-in.NPSHAvailable) / in.NPSHAvailable; rel > 0.005 {
			t.Errorf("%v: npsh at 100%% = %v, want ~%v", b, c.NPSH[4], in.NPSHAvailable)
		}
	}
}

func TestPerformanceCurve_ShutoffPower(t *testing.T) {
	c := PerformanceCurve(exampleInput(), Low, 0.837)
	approx(t, "Power[0]", c.Power[0], 0.9*c.Power[1], 1e-12)
	if c.Efficiency[0] != 0 {
		t.Errorf("shutoff efficiency = %v, want clamped to 0", c.Efficiency[0])
	}
	for i, v := range c.Efficiency {
		if v < 0 || v > 100 {
			t.Errorf("Efficiency[%d] = %v outside [0,100]", i, v)
		}
	}
	for i, v := range c.NPSH {
		if v < 0 {
			t.Errorf("NPSH[%d] = %v is negative", i, v)
		}
	}
}

func TestAlternateTriggered(t *testing.T) {
	tests := []struct {
		name     string
		flow, ns float64
		want     bool
	}{
		{"small flow, low Ns", 30, 15, true},
		{"tiny flow, very low Ns", 10, 10, true},
		{"normal pump", 100, 50, false},
		{"flow at lower edge", 20, 19, false},
		{"flow at 20 with Ns below 18", 20, 17.9, true},
		{"flow at upper edge", 61, 10, false},
		{"Ns at 20", 40, 20, false},
		{"Ns at 18 tiny flow", 15, 18, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := alternateTriggered(tt.flow, tt.ns); got != tt.want {
				t.Errorf("alternateTriggered(%v, %v) = %v, want %v", tt.flow, tt.ns, got, tt.want)
			}
		})
	}
}

func TestCalculate_NewPumpPenaltyBranch(t *testing.T) {
	in := Input{Speed: 1450, Flow: 30, HeadTotal: 80, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if res.NewPump == nil {
		t.Fatal("NewPump is nil, want an estimate")
	}
	approx(t, "NewPump.Efficiency", res.NewPump.Efficiency, res.Efficiency-9.89, 1e-9)
	approx(t, "NewPump.Efficiency", res.NewPump.Efficiency, 42.92871, 1e-4)
	wantKW := in.Flow * in.HeadTotal * in.SpecificGravity / (367.63 * res.NewPump.Efficiency / 100)
	approx(t, "NewPump.KW", res.NewPump.KW, wantKW, 1e-9)
}

func TestCalculate_NewPumpPolynomialBranch(t *testing.T) {
	in := Input{Speed: 2900, Flow: 10, HeadTotal: 50, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if res.NewPump == nil {
		t.Fatal("NewPump is nil, want an estimate")
	}
	approx(t, "Ns", res.Ns, 8.128665, 1e-5)
	approx(t, "NewPump.Efficiency", res.NewPump.Efficiency, 41.39206, 1e-3)
}

func TestCalculate_IndependentCriticalWarnings(t *testing.T) {
	in := Input{Speed: 6000, Flow: 4200, HeadTotal: 60, NPSHAvailable: 12, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}
	res, err := Calculate(in)
	if err != nil {
		t.Fatalf("Calculate returned error: %v", err)
	}
	if res.Ns <= 250 || res.TipSpeed <= 55 {
		t.Fatalf("fixture drifted: Ns=%v U2=%v", res.Ns, res.TipSpeed)
	}
	if res.Band != VeryHigh {
		t.Errorf("Band = %v, want VeryHigh", res.Band)
	}

	want := map[string]bool{
		"Ns too high: impeller is unbuildable, add stages or reduce speed": true,
		"Tip speed above 55 m/s: too high for dirty or abrasive service":   true,
		"Nss above 213: suction recirculation and cavitation risk":         true,
		"NPSHA above 10 m: excess margin, speed could be raised":           false,
	}
	got := map[string]bool{}
	for _, w := range res.Warnings {
		got[w.Text] = w.Critical
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Warnings = %v, want %v", got, want)
	}
}

func TestCalculate_ViscousFactorsAreAdvisory(t *testing.T) {
	water := Input{Speed: 1450, Flow: 30, HeadTotal: 80, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}
	oil := water
	oil.Viscosity = 500

	rw, err := Calculate(water)
	if err != nil {
		t.Fatal(err)
	}
	ro, err := Calculate(oil)
	if err != nil {
		t.Fatal(err)
	}

	approx(t, "Reynolds", ro.Reynolds, 966.338, 1e-2)
	approx(t, "CH", ro.CH, 0.768974, 1e-5)
	approx(t, "CE", ro.CE, 0.393631, 1e-5)
	if ro.CQ != 1 {
		t.Errorf("CQ = %v, want 1", ro.CQ)
	}
	if ro.Efficiency != rw.Efficiency || ro.KW != rw.KW {
		t.Errorf("viscosity changed efficiency/power: %v/%v vs %v/%v", ro.Efficiency, ro.KW, rw.Efficiency, rw.KW)
	}
	if rw.CH <= ro.CH || rw.CE <= ro.CE {
		t.Errorf("thicker fluid should derate more: water CH=%v CE=%v, oil CH=%v CE=%v", rw.CH, rw.CE, ro.CH, ro.CE)
	}
}

func TestCalculate_Deterministic(t *testing.T) {
	a, err := Calculate(exampleInput())
	if err != nil {
		t.Fatal(err)
	}
	b, err := Calculate(exampleInput())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Errorf("two calls differ:\n%+v\n%+v", a, b)
	}
}

func TestCalculate_BelowRegressionRange(t *testing.T) {
	tests := []struct {
		name string
		in   Input
	}{
		{"very low speed", Input{Speed: 100, Flow: 1, HeadTotal: 500, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}},
		{"small flow, high head", Input{Speed: 1450, Flow: 5, HeadTotal: 200, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}},
		{"small flow, higher head", Input{Speed: 1450, Flow: 5, HeadTotal: 800, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Calculate(tt.in)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != "q" {
				t.Fatalf("err = %v, want ValidationError on q", err)
			}
			if errors.Is(err, ErrNonFinite) {
				t.Error("caller error reported as a fault")
			}
		})
	}
}

func TestCalculate_SweepNeverFaults(t *testing.T) {
	for _, n := range []float64{100, 500, 1450, 2900, 6000} {
		for _, q := range []float64{0.5, 1, 2, 5, 10, 20, 30, 50, 100} {
			for _, h := range []float64{50, 200, 800, 3000} {
				in := Input{Speed: n, Flow: q, HeadTotal: h, NPSHAvailable: 5, SuctionType: 1, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}
				res, err := Calculate(in)
				if err != nil {
					var verr *ValidationError
					if !errors.As(err, &verr) || verr.Field != "q" {
						t.Errorf("n=%v q=%v h=%v: err = %v", n, q, h, err)
					}
					continue
				}
				if res.Efficiency <= 0 || res.KW <= 0 {
					t.Errorf("n=%v q=%v h=%v: efficiency %v kw %v", n, q, h, res.Efficiency, res.KW)
				}
				for i, p := range res.Curve.Power {
					if p <= 0 {
						t.Errorf("n=%v q=%v h=%v: power[%d] = %v", n, q, h, i, p)
					}
				}
			}
		}
	}
}

func TestCalculate_RejectsInvalidInput(t *testing.T) {
	in := exampleInput()
	in.SuctionType = 3
	_, err := Calculate(in)
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "suctype" {
		t.Fatalf("err = %v, want ValidationError on suctype", err)
	}
}
