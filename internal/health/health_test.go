package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) PingContext(ctx context.Context) error { return f(ctx) }

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		db         Pinger
		wantStatus int
		wantDB     string
	}{
		{"no database", nil, http.StatusOK, "disabled"},
		{"database up", pingFunc(func(context.Context) error { return nil }), http.StatusOK, "ok"},
		{"database down", pingFunc(func(context.Context) error { return errors.New("dial tcp: refused") }), http.StatusServiceUnavailable, "unreachable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{DB: tt.db}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			var resp Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatal(err)
			}
			if resp.Database != tt.wantDB {
				t.Errorf("database = %q, want %q", resp.Database, tt.wantDB)
			}
			if resp.Version == "" {
				t.Error("version missing")
			}
		})
	}
}
