package health

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"Impeller/internal/httpjson"
	"Impeller/internal/version"
)

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Response struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database string `json:"database"`
}

type Handler struct {
	DB      Pinger
	Timeout time.Duration
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	resp := Response{Status: "ok", Version: version.Version, Database: "disabled"}
	status := http.StatusOK

	if h.DB != nil {
		timeout := h.Timeout
		if timeout <= 0 {
			timeout = 2 * time.Second
		}
		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		if err := h.DB.PingContext(ctx); err != nil {
			slog.Warn("health: database ping failed", "error", err)
			resp.Status = "degraded"
			resp.Database = "unreachable"
			status = http.StatusServiceUnavailable
		} else {
			resp.Database = "ok"
		}
	}
	httpjson.Write(w, status, resp)
}
