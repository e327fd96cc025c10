package pump

import "fmt"

type Band int

const (
	VeryLow Band = iota
	Low
	MediumLow
	Medium
	MediumHigh
	High
	VeryHigh
)

var bandNames = [...]string{"VeryLow", "Low", "MediumLow", "Medium", "MediumHigh", "High", "VeryHigh"}

var bandLabels = [...]string{
	"Very low Ns: radial, narrow-passage impeller",
	"Low Ns: radial impeller",
	"Medium-low Ns: radial impeller",
	"Medium Ns: Francis-vane impeller",
	"Medium-high Ns: Francis-vane impeller",
	"High Ns: mixed-flow impeller",
	"Very high Ns: axial-flow impeller",
}

func (b Band) String() string {
	if b < VeryLow || b > VeryHigh {
		return fmt.Sprintf("Band(%d)", int(b))
	}
	return bandNames[b]
}

func (b Band) Label() string {
	if b < VeryLow || b > VeryHigh {
		return ""
	}
	return bandLabels[b]
}

func (b Band) MarshalText() ([]byte, error) {
	if b < VeryLow || b > VeryHigh {
		return nil, fmt.Errorf("unknown band %d", int(b))
	}
	return []byte(bandNames[b]), nil
}

func (b *Band) UnmarshalText(text []byte) error {
	for i, name := range bandNames {
		if name == string(text) {
			*b = Band(i)
			return nil
		}
	}
	return fmt.Errorf("unknown band %q", text)
}

// bandRules are checked top-down, first match wins. Ns at or below 20
// falls through to VeryLow.
var bandRules = []struct {
	above float64
	band  Band
}{
	{175, VeryHigh},
	{100, High},
	{80, MediumHigh},
	{60, Medium},
	{40, MediumLow},
	{20, Low},
}

// Classify maps a metric specific speed onto its band.
func Classify(ns float64) Band {
	for _, r := range bandRules {
		if ns > r.above {
			return r.band
		}
	}
	return VeryLow
}

type Warning struct {
	Text     string `json:"text"`
	Critical bool   `json:"critical"`
}

var warningRules = []struct {
	fires    func(s Similarity, g Geometry, in Input) bool
	text     string
	critical bool
}{
	{
		func(s Similarity, _ Geometry, _ Input) bool { return s.Ns < 20 },
		"Ns too low: consider fewer stages, higher speed or a partial-emission pump", true,
	},
	{
		func(s Similarity, _ Geometry, _ Input) bool { return s.Ns > 250 },
		"Ns too high: impeller is unbuildable, add stages or reduce speed", true,
	},
	{
		func(_ Similarity, g Geometry, _ Input) bool { return g.TipSpeed > 55 },
		"Tip speed above 55 m/s: too high for dirty or abrasive service", true,
	},
	{
		func(_ Similarity, _ Geometry, in Input) bool { return in.NPSHAvailable > 10 },
		"NPSHA above 10 m: excess margin, speed could be raised", false,
	},
	{
		func(s Similarity, _ Geometry, _ Input) bool { return s.Nss > 213 },
		"Nss above 213: suction recirculation and cavitation risk", true,
	},
	{
		func(s Similarity, _ Geometry, _ Input) bool { return s.Nss < 50 },
		"Nss below 50: suction is very conservative", false,
	},
}

// Warnings evaluates every rule independently; several can fire at once.
func Warnings(s Similarity, g Geometry, in Input) []Warning {
	out := []Warning{}
	for _, r := range warningRules {
		if r.fires(s, g, in) {
			out = append(out, Warning{Text: r.text, Critical: r.critical})
		}
	}
	return out
}
