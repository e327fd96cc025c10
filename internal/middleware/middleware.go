package middleware

import (
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"Impeller/internal/httpjson"
	"Impeller/internal/metrics"
)

// statusRecorder captures the status code written by the wrapped handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// CORS answers preflight requests and decorates every response.
func CORS(origin string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// LogRequest logs each request with a correlation id and feeds the latency
// histogram, labelled by route template so ids in paths don't explode cardinality.
func LogRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := newRequestID()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := r.URL.Path
		if cur := mux.CurrentRoute(r); cur != nil {
			if tpl, err := cur.GetPathTemplate(); err == nil {
				route = tpl
			}
		}
		metrics.ObserveRequest(route, r.Method, strconv.Itoa(rec.status), elapsed.Seconds())
		slog.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"latency_ms", elapsed.Milliseconds(),
		)
	})
}

// Recover turns a panic in a handler into a 500 with a timestamp.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				metrics.ObserveCalculation("unknown", metrics.OutcomeFault)
				httpjson.Fault(w, r, v)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

func newRequestID() string {
	return requestIDFrom(rand.Read, time.Now)
}

// requestIDFrom falls back to the clock when the random source fails.
func requestIDFrom(read func([]byte) (int, error), now func() time.Time) string {
	b := make([]byte, 8)
	if _, err := read(b); err != nil {
		slog.Warn("request id: random source failed", "error", err)
		binary.BigEndian.PutUint64(b, uint64(now().UnixNano()))
	}
	return hex.EncodeToString(b)
}
