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

	"Pavement/internal/calc/axles"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatal(err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatal(err)
	}
	return buf
}

func TestParseComposition(t *testing.T) {
	buf := workbook(t, [][]any{
		{"Vehículo", "Porcentaje"},
		{"A2", 85},
		{"c2", "2"},
		{},
		{"T3S2", "2,5%"},
		{"T3S3", 10.5},
		{"B2", ""},
	})
	comp, err := ParseComposition(buf)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]float64{"A2": 85, "C2": 2, "T3S2": 2.5, "T3S3": 10.5, "B2": 0}
	if len(comp) != len(want) {
		t.Fatalf("composition = %v", comp)
	}
	for k, v := range want {
		if comp[k] != v {
			t.Errorf("%s = %v, want %v", k, comp[k], v)
		}
	}
}

func TestParseCompositionErrors(t *testing.T) {
	tests := []struct {
		name string
		rows [][]any
		want error
	}{
		{"unknown code", [][]any{{"A2", 80}, {"Z9", 20}}, axles.ErrInvalidComposition},
		{"negative share", [][]any{{"A2", -5}}, axles.ErrInvalidComposition},
		{"duplicate", [][]any{{"A2", 50}, {"a2", 50}}, axles.ErrInvalidComposition},
		{"empty", nil, ErrEmptySheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseComposition(workbook(t, tt.rows)); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := ParseComposition(workbook(t, [][]any{{"A2", 80}, {"B2", "many"}})); err == nil {
		t.Error("non-numeric share past the header should fail")
	}
	if _, err := ParseComposition(bytes.NewBufferString("not a workbook")); err == nil {
		t.Error("garbage input should fail")
	}
}

func TestHandlerComposition(t *testing.T) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "aforo.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	part.Write(workbook(t, [][]any{{"A2", 90}, {"C2", 10}}).Bytes())
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/tools/import/composition", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	(&Handler{}).Composition(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res CompositionImportResult
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if res.Count != 2 || res.Sum != 100 || res.Composition["C2"] != 10 {
		t.Errorf("result = %+v", res)
	}

	rec = httptest.NewRecorder()
	(&Handler{}).Composition(rec, httptest.NewRequest(http.MethodPost, "/tools/import/composition", nil))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing file status = %d", rec.Code)
	}
}
