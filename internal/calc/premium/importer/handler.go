package importer

import (
	"errors"
	"log/slog"
	"net/http"

	"Impeller/internal/httpjson"
	"Impeller/internal/metrics"
)

const maxUpload = 10 << 20

type Handler struct{}

func (h *Handler) Pump(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	res, err := ImportPumps(file)
	if err != nil {
		if !errors.Is(err, ErrEmptySheet) {
			slog.Info("import rejected", "error", err)
		}
		httpjson.Error(w, http.StatusBadRequest, "Invalid file: "+err.Error())
		return
	}
	for _, row := range res.Results {
		switch {
		case row.Result != nil:
			metrics.ObserveCalculation("pump_import", metrics.OutcomeOK)
		case row.Field != "":
			metrics.ObserveCalculation("pump_import", metrics.OutcomeInvalid)
		default:
			metrics.ObserveCalculation("pump_import", metrics.OutcomeFault)
		}
	}
	httpjson.Write(w, http.StatusOK, res)
}
