package batch

import (
	"encoding/json"
	"net/http"

	"Impeller/internal/httpjson"
	"Impeller/internal/metrics"
)

const maxBodyBytes = 4 << 20

type Handler struct{}

func (h *Handler) Pump(w http.ResponseWriter, r *http.Request) {
	var input PumpBatchInput
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&input); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	res, err := CalculatePumps(input)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, err.Error())
		return
	}
	for _, item := range res.Results {
		switch {
		case item.Result != nil:
			metrics.ObserveCalculation("pump_batch", metrics.OutcomeOK)
		case item.Field != "":
			metrics.ObserveCalculation("pump_batch", metrics.OutcomeInvalid)
		default:
			metrics.ObserveCalculation("pump_batch", metrics.OutcomeFault)
		}
	}
	httpjson.Write(w, http.StatusOK, res)
}
