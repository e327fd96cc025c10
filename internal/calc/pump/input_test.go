package pump

import (
	"encoding/json"
	"errors"
	"testing"
)

func validRaw() map[string]any {
	return map[string]any{
		"n":             3000.0,
		"q":             500.0,
		"tdhm":          120.0,
		"npsha":         6.0,
		"suctype":       1.0,
		"sg":            1.0,
		"num_impellers": 1.0,
		"viscosity":     1.0,
	}
}

func TestParseInput_Valid(t *testing.T) {
	in, err := ParseInput(validRaw())
	if err != nil {
		t.Fatalf("ParseInput returned error: %v", err)
	}
	if in != exampleInput() {
		t.Errorf("ParseInput = %+v, want %+v", in, exampleInput())
	}
}

func TestParseInput_AcceptsNumbersAndNumericStrings(t *testing.T) {
	raw := validRaw()
	raw["n"] = json.Number("3000")
	raw["q"] = " 500 "
	raw["num_impellers"] = "1"
	raw["suctype"] = 1

	in, err := ParseInput(raw)
	if err != nil {
		t.Fatalf("ParseInput returned error: %v", err)
	}
	if in != exampleInput() {
		t.Errorf("ParseInput = %+v, want %+v", in, exampleInput())
	}
}

func TestParseInput_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
		drop  bool
	}{
		{"missing speed", "n", nil, true},
		{"null flow", "q", nil, false},
		{"empty string head", "tdhm", "", false},
		{"text npsha", "npsha", "deep", false},
		{"bool sg", "sg", true, false},
		{"NaN string", "viscosity", "NaN", false},
		{"Inf string", "n", "+Inf", false},
		{"suction type 3", "suctype", 3.0, false},
		{"suction type 1.5", "suctype", 1.5, false},
		{"zero impellers", "num_impellers", 0.0, false},
		{"fractional impellers", "num_impellers", 2.5, false},
		{"zero flow", "q", 0.0, false},
		{"negative head", "tdhm", -10.0, false},
		{"zero viscosity", "viscosity", 0.0, false},
		{"zero npsha", "npsha", 0.0, false},
		{"array speed", "n", []any{3000.0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			if tt.drop {
				delete(raw, tt.key)
			} else {
				raw[tt.key] = tt.value
			}
			_, err := ParseInput(raw)
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("err = %v, want *ValidationError", err)
			}
			if verr.Field != tt.key {
				t.Errorf("Field = %q, want %q", verr.Field, tt.key)
			}
		})
	}
}

func TestParseInput_ReportsFirstFieldInWireOrder(t *testing.T) {
	_, err := ParseInput(map[string]any{})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.Field != "n" {
		t.Fatalf("err = %v, want ValidationError on n", err)
	}
}

func TestParseInput_DomainErrorsFollowWireOrder(t *testing.T) {
	tests := []struct {
		name  string
		set   map[string]any
		field string
	}{
		{"negative speed before bad suction", map[string]any{"n": -1.0, "suctype": 3.0}, "n"},
		{"bad suction before zero sg", map[string]any{"suctype": 3.0, "sg": 0.0}, "suctype"},
		{"zero npsha before fractional stages", map[string]any{"npsha": 0.0, "num_impellers": 1.5}, "npsha"},
		{"fractional stages before zero viscosity", map[string]any{"num_impellers": 1.5, "viscosity": 0.0}, "num_impellers"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := validRaw()
			for k, v := range tt.set {
				raw[k] = v
			}
			_, err := ParseInput(raw)
			var verr *ValidationError
			if !errors.As(err, &verr) || verr.Field != tt.field {
				t.Fatalf("err = %v, want ValidationError on %s", err, tt.field)
			}
		})
	}
}

func TestValidate_WireOrder(t *testing.T) {
	in := Input{Speed: -1, Flow: 500, HeadTotal: 120, NPSHAvailable: 6, SuctionType: 3, SpecificGravity: 1, NumImpellers: 1, Viscosity: 1}
	var verr *ValidationError
	if err := in.Validate(); !errors.As(err, &verr) || verr.Field != "n" {
		t.Fatalf("err = %v, want ValidationError on n", err)
	}
}
