package pump

import (
	"errors"
	"fmt"
	"math"
)

const (
	gravity        = 9.81
	nsUnitless     = 52.919   // metric Ns -> dimensionless
	nsUS           = 51.66    // metric Ns -> US customary Ns
	gpmPerM3h      = 4.402867 // m3/h -> US gpm
	powerConstant  = 367.63   // m3/h * m / kW
	stageLoss      = 0.005    // efficiency lost per extra stage
	newPumpPenalty = 9.89     // percentage points
)

// ErrNonFinite is returned when validated inputs still drive a formula out of
// range. Inputs below the efficiency regression are rejected earlier, so this
// marks a genuine fault.
var ErrNonFinite = errors.New("non-finite calculation result")

// belowRegression rejects a duty point whose specific speed is too low for
// the efficiency regression to give a positive efficiency.
func belowRegression() error {
	return invalid("q", "duty point too low: Ns is below the efficiency regression range")
}

type Similarity struct {
	HeadPerStage float64 `json:"head_per_stage"`
	Omega        float64 `json:"omega"`
	Ns           float64 `json:"ns"`
	Uns          float64 `json:"uns"`
	Nss          float64 `json:"nss"`
	UNss         float64 `json:"unss"`
}

type Geometry struct {
	Phi        float64 `json:"phi"`
	R2         float64 `json:"r2"`
	DiameterMM float64 `json:"impeller_diameter_mm"`
	TipSpeed   float64 `json:"tip_speed"`
}

type Viscous struct {
	CQ float64 `json:"cq"`
	CH float64 `json:"ch"`
	CE float64 `json:"ce"`
}

// Curve holds the performance curve as parallel series, one entry per
// flow fraction. Efficiency is in percent, power in kW.
type Curve struct {
	Flow       []float64 `json:"flow"`
	Head       []float64 `json:"head"`
	Efficiency []float64 `json:"efficiency"`
	NPSH       []float64 `json:"npsh"`
	Power      []float64 `json:"power"`
}

type NewPump struct {
	Efficiency float64 `json:"efficiency"`
	KW         float64 `json:"kw"`
}

type Result struct {
	Similarity
	Geometry
	Efficiency float64 `json:"efficiency"` // percent, unclamped regression
	KW         float64 `json:"kw"`
	Reynolds   float64 `json:"reynolds"`
	Viscous
	Band      Band      `json:"band"`
	BandLabel string    `json:"band_label"`
	Warnings  []Warning `json:"warnings"`
	Curve     Curve     `json:"curve"`
	NewPump   *NewPump  `json:"new_pump,omitempty"`
}

// Calculate sizes a pump for the given duty point in a single closed-form pass.
func Calculate(in Input) (Result, error) {
	if err := in.Validate(); err != nil {
		return Result{}, err
	}

	sim := Similarities(in)
	geo := Sizing(sim)

	qus := in.Flow * gpmPerM3h
	nus := sim.Ns * nsUS
	eff := baselineEfficiency(qus, in.Speed, nus, in.NumImpellers)
	if eff <= 0 {
		return Result{}, belowRegression()
	}
	kw := hydraulicPower(in.Flow, in.HeadTotal, in.SpecificGravity, eff)

	re := Reynolds(in, sim)
	band := Classify(sim.Ns)

	res := Result{
		Similarity: sim,
		Geometry:   geo,
		Efficiency: eff * 100,
		KW:         kw,
		Reynolds:   re,
		Viscous:    ViscousCorrection(re),
		Band:       band,
		BandLabel:  band.Label(),
		Warnings:   Warnings(sim, geo, in),
		Curve:      PerformanceCurve(in, band, eff),
	}
	if alternateTriggered(in.Flow, sim.Ns) {
		np := newPumpEstimate(in, sim.Ns, eff)
		if np.Efficiency <= 0 {
			return Result{}, belowRegression()
		}
		res.NewPump = &np
	}

	if field, ok := firstNonFinite(res); !ok {
		return Result{}, fmt.Errorf("%s: %w", field, ErrNonFinite)
	}
	return res, nil
}

func Similarities(in Input) Similarity {
	h := in.HeadTotal / float64(in.NumImpellers)
	ns := in.Speed * math.Sqrt(in.Flow/3600) / math.Pow(h, 0.75)
	nss := in.Speed * math.Sqrt(in.Flow/float64(in.SuctionType)/3600) / math.Pow(in.NPSHAvailable, 0.75)
	return Similarity{
		HeadPerStage: h,
		Omega:        math.Pi / 30 * in.Speed,
		Ns:           ns,
		Uns:          ns / nsUnitless,
		Nss:          nss,
		UNss:         nss / nsUnitless,
	}
}

// flowCoefficient switches fits at Uns = 1; the boundary belongs to the
// low-Ns branch.
func flowCoefficient(uns float64) float64 {
	if uns > 1 {
		return 0.4 / math.Sqrt(uns)
	}
	return 0.4 / math.Pow(uns, 0.25)
}

func Sizing(sim Similarity) Geometry {
	phi := flowCoefficient(sim.Uns)
	r2 := math.Sqrt(gravity*sim.HeadPerStage/phi) / sim.Omega
	return Geometry{
		Phi:        phi,
		R2:         r2,
		DiameterMM: 2000 * r2,
		TipSpeed:   sim.Omega * r2,
	}
}

// baselineEfficiency is the regression efficiency as a fraction, with the
// multistage loss applied. It is not clamped; Calculate rejects values <= 0.
func baselineEfficiency(qus, speed, nus float64, stages int) float64 {
	l := math.Log10(2286 / nus)
	eff := 0.94 - 0.08955*math.Pow(qus/speed, -0.2133) - 0.29*l*l
	return eff - stageLoss*float64(stages-1)
}

// hydraulicPower returns shaft power in kW; eff is a fraction.
func hydraulicPower(flow, head, sg, eff float64) float64 {
	return flow * head * sg / (powerConstant * eff)
}

func Reynolds(in Input, sim Similarity) float64 {
	return math.Sqrt(in.Flow/float64(in.SuctionType)/3600) *
		math.Pow(gravity*sim.HeadPerStage, 0.25) / (in.Viscosity * 1e-6)
}

func (f viscousFit) at(re float64) float64 {
	return f.a - f.b*math.Exp(-f.c*math.Pow(re, f.d))
}

// ViscousCorrection reports derating factors for viscous service. They are
// advisory and are not applied to efficiency or power.
func ViscousCorrection(re float64) Viscous {
	return Viscous{
		CQ: 1.0,
		CH: headViscousFit.at(re),
		CE: effViscousFit.at(re),
	}
}

// PerformanceCurve scales the band's normalized curves to the duty point.
// eff is the baseline efficiency as a fraction.
func PerformanceCurve(in Input, band Band, eff float64) Curve {
	n := len(curveFractions)
	c := Curve{
		Flow:       make([]float64, n),
		Head:       make([]float64, n),
		Efficiency: make([]float64, n),
		NPSH:       make([]float64, n),
		Power:      make([]float64, n),
	}
	hc, ec, nc := headCoeffs[band], effCoeffs[band], npshCoeffs[band]
	for i, x := range curveFractions {
		c.Flow[i] = in.Flow * x / 100
		c.Head[i] = poly(hc[:], x) * in.HeadTotal / 100
		c.Efficiency[i] = clamp(poly(ec[:], x)*eff, 0, 100)
		c.NPSH[i] = math.Max(0, poly(nc[:], x)*in.NPSHAvailable/100)
		if x > 0 {
			c.Power[i] = hydraulicPower(c.Flow[i], c.Head[i], in.SpecificGravity, c.Efficiency[i]/100)
		}
	}
	// Shutoff efficiency is zero, so shutoff power is taken from the 25% point.
	c.Power[0] = 0.9 * c.Power[1]
	return c
}

func alternateTriggered(flow, ns float64) bool {
	return (flow > 20 && flow < 61 && ns < 20) || (ns < 18 && flow <= 20)
}

func newPumpEstimate(in Input, ns, eff float64) NewPump {
	e := eff*100 - newPumpPenalty
	if ns < 18 && in.Flow <= 20 {
		e = poly(newPumpEffCoeffs[:], ns)
	}
	e = clamp(e, 0, 100)
	return NewPump{
		Efficiency: e,
		KW:         hydraulicPower(in.Flow, in.HeadTotal, in.SpecificGravity, e/100),
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func firstNonFinite(r Result) (string, bool) {
	scalars := []struct {
		name string
		v    float64
	}{
		{"ns", r.Ns}, {"nss", r.Nss}, {"phi", r.Phi}, {"r2", r.R2},
		{"efficiency", r.Efficiency}, {"kw", r.KW}, {"reynolds", r.Reynolds},
		{"ch", r.CH}, {"ce", r.CE},
	}
	for _, s := range scalars {
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return s.name, false
		}
	}
	series := []struct {
		name string
		vs   []float64
	}{
		{"curve.head", r.Curve.Head}, {"curve.efficiency", r.Curve.Efficiency},
		{"curve.npsh", r.Curve.NPSH}, {"curve.power", r.Curve.Power},
	}
	for _, s := range series {
		for _, v := range s.vs {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return s.name, false
			}
		}
	}
	if r.NewPump != nil && (math.IsInf(r.NewPump.KW, 0) || math.IsNaN(r.NewPump.KW)) {
		return "new_pump.kw", false
	}
	return "", true
}
