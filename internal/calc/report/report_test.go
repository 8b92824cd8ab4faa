package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"Pavement/internal/auth"
	"Pavement/internal/calc/design"
	"Pavement/internal/repo"
)

func tipoB() design.Input {
	return design.Input{
		Project:       design.Project{Road: "Tuxtla Gutiérrez - San Cristóbal", Section: "Escopetazo - San Cristóbal", KmStart: "52+000", KmEnd: "79+650"},
		RoadClass:     "Tipo B",
		Lanes:         2,
		LoadedPct:     80,
		LifeYears:     15,
		GrowthRatePct: 3.5,
		TDPA:          7500,
		ConfidencePct: 90,
		Composition:   map[string]float64{"A2": 85, "C38": 2, "T3S2": 2, "T3S3": 5, "T3S2R4": 2},
		Thickness:     design.Thickness{Wearing: 5, AsphaltBase: 5, Base: 15, Subbase: 15},
		CBR:           design.CBR{Base: 80, Subbase: 30, Subgrade: 5},
	}
}

func TestRender(t *testing.T) {
	res, err := design.Calculate(tipoB())
	if err != nil {
		t.Fatal(err)
	}
	meta := Meta{
		Folio:  "0b9d2a3e-0000-4000-8000-000000000001",
		Date:   time.Date(2024, 5, 6, 0, 0, 0, 0, time.UTC),
		Signer: Signer{FullName: "Ing. Ana Pérez", License: "1234567", Organization: "Centro SCT Chiapas"},
	}
	var buf bytes.Buffer
	if err := Render(&buf, res, meta); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a PDF: %q", buf.Bytes()[:min(16, buf.Len())])
	}
	if buf.Len() < 2000 {
		t.Errorf("report suspiciously small: %d bytes", buf.Len())
	}
}

func TestNewMeta(t *testing.T) {
	a, b := NewMeta(Signer{}), NewMeta(Signer{})
	if a.Folio == "" || a.Folio == b.Folio {
		t.Errorf("folios %q and %q must be unique", a.Folio, b.Folio)
	}
}

func TestHandlerGenerate(t *testing.T) {
	r := repo.NewMemoryRepository()
	ctx := context.Background()
	id, _ := r.CreateUser(ctx, "ana", "ana@example.com", "hash")
	r.UpdateProfile(ctx, id, repo.ProfileUpdate{FullName: "Ana Pérez", License: "1234567"})
	h := &Handler{Repo: r}

	body := `{"road_class":"Tipo B","lanes":2,"loaded_pct":80,"life_years":15,"growth_rate_pct":3.5,"tdpa":7500,
		"composition":{"A2":85,"T3S2":15},"thickness":{"wearing":5,"asphalt_base":5,"base":15,"subbase":15},
		"cbr":{"base":80,"subbase":30,"subgrade":5}}`
	req := httptest.NewRequest(http.MethodPost, "/tools/report/pdf", strings.NewReader(body))
	req = req.WithContext(auth.WithUserID(req.Context(), id))
	rec := httptest.NewRecorder()
	h.Generate(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("content type = %q", ct)
	}
	if h.signer(req).FullName != "Ana Pérez" {
		t.Error("signer not taken from the profile")
	}
	folio := rec.Header().Get("X-Report-Folio")
	if folio == "" || !strings.Contains(rec.Header().Get("Content-Disposition"), folio) {
		t.Errorf("folio %q missing from headers", folio)
	}

	rec = httptest.NewRecorder()
	h.Generate(rec, httptest.NewRequest(http.MethodPost, "/tools/report/pdf", strings.NewReader(`{"road_class":"Tipo Z"}`)))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad design status = %d", rec.Code)
	}
}
