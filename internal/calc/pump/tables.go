package pump

// Curve coefficients are in ascending powers of the flow percentage x:
// c[0] + c[1]x + ... + c[5]x^5. Each row evaluates to roughly 100 at x = 100
// so that scaling by the rated value reproduces the duty point.
type coeffs [6]float64

var headCoeffs = [...]coeffs{
	VeryLow:    {109.996, 0.00220527, -0.00060536, -6.06143e-06, 2.41396e-08, -5.15783e-11},
	Low:        {114.995, 0.0028962, -0.00110134, -6.43425e-06, 2.76617e-08, -6.0351e-11},
	MediumLow:  {120.997, 0.00147249, -0.0019614, -2.41335e-06, 1.13755e-08, -2.55236e-11},
	Medium:     {128.009, -0.00552044, -0.00315448, 6.70722e-06, -3.40013e-08, 7.81963e-11},
	MediumHigh: {138.037, -0.0256705, -0.00489514, 2.29107e-05, -1.23221e-07, 2.89673e-10},
	High:       {155.099, -0.0798019, -0.00761932, 5.09775e-05, -2.87992e-07, 6.90473e-10},
	VeryHigh:   {190.241, -0.236804, -0.0123536, 0.000102732, -6.05045e-07, 1.47662e-09},
}

var effCoeffs = [...]coeffs{
	VeryLow:    {-1.22178, 2.03667, 0.000307856, -0.000278206, 2.37008e-06, -6.44156e-09},
	Low:        {-1.53267, 1.43681, 0.0222715, -0.000583133, 4.28661e-06, -1.10531e-08},
	MediumLow:  {-1.35691, 0.926898, 0.0391337, -0.000793978, 5.47436e-06, -1.36282e-08},
	Medium:     {-0.69931, 0.325294, 0.0561048, -0.000963003, 6.14356e-06, -1.44361e-08},
	MediumHigh: {0.065643, -0.104162, 0.0649901, -0.000994618, 5.80269e-06, -1.25265e-08},
	High:       {0.944771, -0.463388, 0.0675936, -0.000887417, 4.29191e-06, -7.22577e-09},
	VeryHigh:   {1.54482, -0.640628, 0.062947, -0.000670513, 2.04849e-06, -1.08961e-10},
}

var npshCoeffs = [...]coeffs{
	VeryLow:    {55.0159, -0.00868861, 0.00330401, 1.93028e-05, -8.29851e-08, 1.81053e-10},
	Low:        {50.0215, -0.0111258, 0.00271788, 3.41882e-05, -1.30252e-07, 2.75205e-10},
	MediumLow:  {46.0214, -0.0105948, 0.00201179, 4.69837e-05, -1.51436e-07, 3.08294e-10},
	Medium:     {42.0195, -0.00937116, 0.00158114, 5.53795e-05, -1.52982e-07, 3.02769e-10},
	MediumHigh: {39.013, -0.00604552, 0.000892078, 6.24753e-05, -1.20791e-07, 2.27656e-10},
	High:       {36.0052, -0.00234929, 0.000313507, 6.5854e-05, -5.78672e-08, 1.02822e-10},
	VeryHigh:   {32.9953, 0.00205266, -0.000247582, 6.35469e-05, 6.82388e-08, -1.09638e-10},
}

// Efficiency (percent) of a small low-Ns replacement pump as a function of Ns.
var newPumpEffCoeffs = [8]float64{
	0.00132996, 8.92083, -0.685003, 0.0347756, -0.00128094, 3.4152e-05, -5.93713e-07, 4.9731e-09,
}

// Viscous derating C = a - b*exp(-c*Re^d).
type viscousFit struct{ a, b, c, d float64 }

var (
	headViscousFit = viscousFit{a: 1.0, b: 0.9987, c: 0.1862, d: 0.30}
	effViscousFit  = viscousFit{a: 1.0, b: 1.0, c: 0.0320, d: 0.40}
)

// curveFractions are the flow points of the performance curve, percent of rated flow.
var curveFractions = [...]float64{0, 25, 50, 75, 100, 130}

func poly(c []float64, x float64) float64 {
	v := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		v = v*x + c[i]
	}
	return v
}
