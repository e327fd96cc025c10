package pump

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Input is the duty point of a centrifugal pump.
type Input struct {
	Speed           float64 `json:"n"`             // rpm
	Flow            float64 `json:"q"`             // m3/h
	HeadTotal       float64 `json:"tdhm"`          // m
	NPSHAvailable   float64 `json:"npsha"`         // m
	SuctionType     int     `json:"suctype"`       // 1 single, 2 double suction
	SpecificGravity float64 `json:"sg"`            //
	NumImpellers    int     `json:"num_impellers"` //
	Viscosity       float64 `json:"viscosity"`     // cSt
}

// Fields lists the wire keys in the order they are validated.
var Fields = []string{"n", "q", "tdhm", "npsha", "suctype", "sg", "num_impellers", "viscosity"}

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

func invalid(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// ParseInput reads a decoded JSON object (or a spreadsheet row keyed the same
// way). Numbers may arrive as float64, json.Number or numeric strings.
func ParseInput(raw map[string]any) (Input, error) {
	vals := make(map[string]float64, len(Fields))
	for _, key := range Fields {
		v, err := number(raw, key)
		if err != nil {
			return Input{}, err
		}
		if err := checkField(key, v); err != nil {
			return Input{}, err
		}
		vals[key] = v
	}

	return Input{
		Speed:           vals["n"],
		Flow:            vals["q"],
		HeadTotal:       vals["tdhm"],
		NPSHAvailable:   vals["npsha"],
		SuctionType:     int(vals["suctype"]),
		SpecificGravity: vals["sg"],
		NumImpellers:    int(vals["num_impellers"]),
		Viscosity:       vals["viscosity"],
	}, nil
}

// checkField applies the domain rule of one wire key. Every quantity that
// ends up in a denominator or under a fractional power must be strictly
// positive.
func checkField(key string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalid(key, "must be finite")
	}
	switch key {
	case "suctype":
		if v != 1 && v != 2 {
			return invalid(key, "must be 1 (single) or 2 (double suction)")
		}
	case "num_impellers":
		if v != math.Trunc(v) || v < 1 {
			return invalid(key, "must be a whole number >= 1")
		}
	default:
		if v <= 0 {
			return invalid(key, "must be greater than zero")
		}
	}
	return nil
}

func number(raw map[string]any, key string) (float64, error) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, invalid(key, "is required")
	}

	var (
		f   float64
		err error
	)
	switch t := v.(type) {
	case float64:
		f = t
	case json.Number:
		f, err = t.Float64()
	case int:
		f = float64(t)
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0, invalid(key, "is required")
		}
		f, err = strconv.ParseFloat(s, 64)
	default:
		return 0, invalid(key, "must be a number")
	}
	if err != nil {
		return 0, invalid(key, "must be a number")
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, invalid(key, "must be finite")
	}
	return f, nil
}

// Validate checks a typed Input field by field in wire order.
func (in Input) Validate() error {
	vals := [...]float64{
		in.Speed, in.Flow, in.HeadTotal, in.NPSHAvailable,
		float64(in.SuctionType), in.SpecificGravity, float64(in.NumImpellers), in.Viscosity,
	}
	for i, key := range Fields {
		if err := checkField(key, vals[i]); err != nil {
			return err
		}
	}
	return nil
}
