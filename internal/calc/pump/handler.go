package pump

import (
	"errors"
	"net/http"

	"Impeller/internal/httpjson"
	"Impeller/internal/metrics"
)

const maxBodyBytes = 64 << 10

type Handler struct{}

// Size parses a wire-format input and runs the calculation.
func Size(raw map[string]any) (Result, error) {
	in, err := ParseInput(raw)
	if err != nil {
		return Result{}, err
	}
	return Calculate(in)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	raw, err := httpjson.DecodeObject(w, r, maxBodyBytes)
	if err != nil {
		metrics.ObserveCalculation("pump", metrics.OutcomeInvalid)
		httpjson.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	res, err := Size(raw)
	if err != nil {
		WriteError(w, r, err)
		return
	}
	metrics.ObserveCalculation("pump", metrics.OutcomeOK)
	httpjson.Write(w, http.StatusOK, res.Rounded())
}

// WriteError maps a Size error onto the response: validation errors name the
// offending field, anything else is a server fault.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *ValidationError
	if errors.As(err, &verr) {
		metrics.ObserveCalculation("pump", metrics.OutcomeInvalid)
		httpjson.Invalid(w, verr.Field, verr.Error())
		return
	}
	metrics.ObserveCalculation("pump", metrics.OutcomeFault)
	httpjson.Fault(w, r, err)
}
