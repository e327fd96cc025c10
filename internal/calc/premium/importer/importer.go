package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	pump "Impeller/internal/calc/pump"
)

const MaxRows = 1000

var ErrEmptySheet = errors.New("sheet has no data rows")

// RowResult reports one spreadsheet row by its 1-based sheet row number.
type RowResult struct {
	Row    int          `json:"row"`
	Result *pump.Result `json:"result,omitempty"`
	Error  string       `json:"error,omitempty"`
	Field  string       `json:"field,omitempty"`
}

type PumpImportResult struct {
	Sheet   string      `json:"sheet"`
	Count   int         `json:"count"`
	Failed  int         `json:"failed"`
	Results []RowResult `json:"results"`
}

// ImportPumps reads the first sheet of an xlsx workbook. Row 1 is a header;
// every following row holds one duty point with columns in pump.Fields order.
// Blank rows are skipped.
func ImportPumps(r io.Reader) (PumpImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return PumpImportResult{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return PumpImportResult{}, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) < 2 {
		return PumpImportResult{}, ErrEmptySheet
	}
	if len(rows)-1 > MaxRows {
		return PumpImportResult{}, fmt.Errorf("too many rows: %d (max %d)", len(rows)-1, MaxRows)
	}

	out := PumpImportResult{Sheet: sheet, Results: []RowResult{}}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		rr := sizeRow(i+1, rows[i])
		if rr.Error != "" {
			out.Failed++
		}
		out.Results = append(out.Results, rr)
	}
	if len(out.Results) == 0 {
		return PumpImportResult{}, ErrEmptySheet
	}
	out.Count = len(out.Results)
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func parsePumpRow(row []string) map[string]any {
	raw := make(map[string]any, len(pump.Fields))
	for col, key := range pump.Fields {
		if col < len(row) && strings.TrimSpace(row[col]) != "" {
			raw[key] = row[col]
		}
	}
	return raw
}

func sizeRow(rowNum int, row []string) RowResult {
	rr := RowResult{Row: rowNum}
	res, err := pump.Size(parsePumpRow(row))
	if err != nil {
		var verr *pump.ValidationError
		if errors.As(err, &verr) {
			rr.Error = verr.Error()
			rr.Field = verr.Field
		} else {
			rr.Error = "internal calculation error"
		}
		return rr
	}
	rounded := res.Rounded()
	rr.Result = &rounded
	return rr
}
