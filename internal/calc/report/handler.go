package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	pump "Impeller/internal/calc/pump"
	"Impeller/internal/httpjson"
)

const maxBodyBytes = 64 << 10

type Input struct {
	Project string         `json:"project"`
	Author  string         `json:"author"`
	Title   string         `json:"title"`
	Notes   string         `json:"notes"`
	Input   map[string]any `json:"input"`
}

type Handler struct{}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

func filename(project string) string {
	name := strings.Trim(unsafeName.ReplaceAllString(project, "_"), "_")
	if name == "" {
		name = "pump"
	}
	return name + "-datasheet.pdf"
}

func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req Input
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	if err := dec.Decode(&req); err != nil {
		httpjson.Error(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if req.Input == nil {
		httpjson.Invalid(w, "input", "input is required")
		return
	}

	in, err := pump.ParseInput(req.Input)
	if err != nil {
		pump.WriteError(w, r, err)
		return
	}
	res, err := pump.Calculate(in)
	if err != nil {
		pump.WriteError(w, r, err)
		return
	}

	// Render to a buffer so a failure can still produce a JSON error.
	var buf bytes.Buffer
	err = Render(&buf, Datasheet{
		Project: req.Project,
		Author:  req.Author,
		Title:   req.Title,
		Notes:   req.Notes,
		Input:   in,
		Result:  res.Rounded(),
	})
	if err != nil {
		httpjson.Fault(w, r, fmt.Errorf("report generation: %w", err))
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename(req.Project)+`"`)
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}
