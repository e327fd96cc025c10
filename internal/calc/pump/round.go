package pump

import "math"

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

func roundAll(vs []float64, places int) []float64 {
	out := make([]float64, len(vs))
	for i, v := range vs {
		out[i] = round(v, places)
	}
	return out
}

// Rounded returns a copy of r rounded for display and transport.
func (r Result) Rounded() Result {
	out := r
	out.Similarity = Similarity{
		HeadPerStage: round(r.HeadPerStage, 2),
		Omega:        round(r.Omega, 2),
		Ns:           round(r.Ns, 2),
		Uns:          round(r.Uns, 4),
		Nss:          round(r.Nss, 2),
		UNss:         round(r.UNss, 4),
	}
	out.Geometry = Geometry{
		Phi:        round(r.Phi, 4),
		R2:         round(r.R2, 4),
		DiameterMM: round(r.DiameterMM, 1),
		TipSpeed:   round(r.TipSpeed, 2),
	}
	out.Efficiency = round(r.Efficiency, 2)
	out.KW = round(r.KW, 2)
	out.Reynolds = math.Round(r.Reynolds)
	out.Viscous = Viscous{
		CQ: round(r.CQ, 4),
		CH: round(r.CH, 4),
		CE: round(r.CE, 4),
	}
	out.Warnings = append([]Warning{}, r.Warnings...)
	out.Curve = Curve{
		Flow:       roundAll(r.Curve.Flow, 2),
		Head:       roundAll(r.Curve.Head, 2),
		Efficiency: roundAll(r.Curve.Efficiency, 2),
		NPSH:       roundAll(r.Curve.NPSH, 2),
		Power:      roundAll(r.Curve.Power, 2),
	}
	if r.NewPump != nil {
		out.NewPump = &NewPump{
			Efficiency: round(r.NewPump.Efficiency, 2),
			KW:         round(r.NewPump.KW, 2),
		}
	}
	return out
}
