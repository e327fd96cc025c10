// Package httpjson writes the JSON bodies shared by every endpoint.
package httpjson

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

type ErrorBody struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
}

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("encode response", "error", err)
	}
}

func Error(w http.ResponseWriter, status int, message string) {
	Write(w, status, ErrorBody{Error: message})
}

// Invalid rejects a request because of one input field.
func Invalid(w http.ResponseWriter, field, message string) {
	Write(w, http.StatusBadRequest, ErrorBody{Error: message, Field: field})
}

// Fault reports an unexpected server-side failure. The cause goes to the log
// only; the caller sees a generic message and a timestamp to quote.
func Fault(w http.ResponseWriter, r *http.Request, cause any) {
	ts := time.Now().UTC().Format(time.RFC3339)
	attrs := []any{"method", r.Method, "path", r.URL.Path, "timestamp", ts}
	if err, ok := cause.(error); ok {
		attrs = append(attrs, "error", err)
	} else {
		attrs = append(attrs, "panic", cause)
	}
	slog.Error("request failed", attrs...)
	Write(w, http.StatusInternalServerError, ErrorBody{
		Error:     "internal calculation error",
		Timestamp: ts,
	})
}

// DecodeObject reads a JSON object keeping numbers as json.Number.
func DecodeObject(w http.ResponseWriter, r *http.Request, maxBytes int64) (map[string]any, error) {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, errors.New("body must be a JSON object")
	}
	return raw, nil
}
