package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/xuri/excelize/v2"

	pump "Impeller/internal/calc/pump"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	header := make([]any, len(pump.Fields))
	for i, k := range pump.Fields {
		header[i] = k
	}
	if err := f.SetSheetRow("Sheet1", "A1", &header); err != nil {
		t.Fatal(err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return &buf
}

func TestImportPumps(t *testing.T) {
	buf := workbook(t, [][]any{
		{3000, 500, 120, 6, 1, 1, 1, 1},
		{},
		{1450, 30, 80, 5, 3, 1, 1, 1},
		{2900, 100, 50},
		{1450, 5, 200, 5, 1, 1, 1, 1},
	})

	res, err := ImportPumps(buf)
	if err != nil {
		t.Fatal(err)
	}
	if res.Sheet != "Sheet1" || res.Count != 4 || res.Failed != 3 {
		t.Fatalf("result = %+v", res)
	}

	first := res.Results[0]
	if first.Row != 2 || first.Result == nil {
		t.Fatalf("row 2 = %+v", first)
	}
	if first.Result.Ns != 30.84 || first.Result.Band != pump.Low {
		t.Errorf("row 2 ns %v band %v", first.Result.Ns, first.Result.Band)
	}

	// Row 3 is blank and skipped; numbering still follows the sheet.
	if res.Results[1].Row != 4 || res.Results[1].Field != "suctype" {
		t.Errorf("row 4 = %+v", res.Results[1])
	}
	if res.Results[2].Row != 5 || res.Results[2].Field != "npsha" {
		t.Errorf("row 5 = %+v", res.Results[2])
	}
	if res.Results[3].Row != 6 || res.Results[3].Field != "q" {
		t.Errorf("row 6 = %+v, want validation error on q", res.Results[3])
	}
}

func TestImportPumps_Rejects(t *testing.T) {
	if _, err := ImportPumps(workbook(t, nil)); !errors.Is(err, ErrEmptySheet) {
		t.Errorf("header only: err = %v", err)
	}
	if _, err := ImportPumps(bytes.NewReader([]byte("n,q\n3000,500\n"))); err == nil {
		t.Error("csv accepted as xlsx")
	}
}

func TestHandler_Pump(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "duties.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(workbook(t, [][]any{{2900, 100, 50, 5, 1, 1, 1, 1}}).Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/user/tools/pump/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{}).Pump(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	var res PumpImportResult
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 1 || res.Results[0].Result == nil {
		t.Errorf("response = %+v", res)
	}

	rec = httptest.NewRecorder()
	(&Handler{}).Pump(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d", rec.Code)
	}
}
