package design

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"Pavement/internal/calc/growth"
	"Pavement/internal/calc/layers"
	"Pavement/internal/calc/loadtable"
	"Pavement/internal/calc/reliability"
)

func sample() Input {
	return Input{
		RoadClass:     "Tipo B",
		Lanes:         2,
		LoadedPct:     80,
		LifeYears:     15,
		GrowthRatePct: 3.5,
		TDPA:          7500,
		ConfidencePct: 90,
		Composition:   map[string]float64{"A2": 85, "C38": 2, "T3S2": 2, "T3S3": 5, "T3S2R4": 2},
		Thickness:     Thickness{Wearing: 5, AsphaltBase: 5, Base: 15, Subbase: 15},
		CBR:           CBR{Base: 80, Subbase: 30, Subgrade: 5},
	}
}

func TestCalculateStandardSection(t *testing.T) {
	res, err := Calculate(sample())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Checks) != 3 {
		t.Fatalf("checks = %d, want 3", len(res.Checks))
	}
	depths := []float64{10, 25, 40}
	actual := []float64{17.5, 32.5, 47.5}
	pass := []bool{false, true, false}
	for i, c := range res.Checks {
		if c.DepthCM != depths[i] || c.ActualZG != actual[i] || c.Pass != pass[i] {
			t.Errorf("check %d = %+v", i, c)
		}
	}
	if res.Checks[0].VRS0 != res.Reliability.VRS0Base {
		t.Error("base interface must use the base VRS0")
	}
	if res.Checks[1].VRS0 != res.Reliability.VRS0Sub || res.Checks[2].VRS0 != res.Reliability.VRS0Sub {
		t.Error("lower interfaces must use the subbase/subgrade VRS0")
	}
	if res.Pass {
		t.Error("section with failing interfaces reported as passing")
	}
	if res.CompositionSum != 96 {
		t.Errorf("composition sum = %v", res.CompositionSum)
	}
	if len(res.Warnings) != 3 || !strings.Contains(res.Warnings[0], "96.0%") {
		t.Errorf("warnings = %q", res.Warnings)
	}
}

func TestCalculateDefaults(t *testing.T) {
	in := sample()
	in.ConfidencePct = 0
	in.LifeYears = 0
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	want, _ := reliability.Constants(90)
	if res.Reliability != want {
		t.Errorf("reliability = %+v", res.Reliability)
	}
	if res.Input.LifeYears != 15 {
		t.Errorf("life = %v", res.Input.LifeYears)
	}
}

func TestCalculateRejectsNegativeInputs(t *testing.T) {
	tests := []struct {
		name string
		edit func(*Input)
		want error
	}{
		{"negative confidence", func(in *Input) { in.ConfidencePct = -5 }, reliability.ErrDomain},
		{"negative life", func(in *Input) { in.LifeYears = -3 }, growth.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sample()
			tt.edit(&in)
			if _, err := Calculate(in); !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCalculateCustomSection(t *testing.T) {
	in := sample()
	in.Layers = []layers.Layer{
		{Name: "wearing", Material: layers.AsphaltWearing, ThicknessCM: 10},
		{Name: "base", Material: layers.HydraulicBase, ThicknessCM: 30},
		{Name: "subbase", Material: layers.HydraulicSubbase, ThicknessCM: 40},
	}
	in.Interfaces = []layers.Interface{
		{Name: "base", LayersAbove: 1, CBR: 100, Stratum: layers.Base},
		{Name: "subbase", LayersAbove: 2, CBR: 25, Stratum: layers.Subbase},
		{Name: "subgrade", LayersAbove: 3, CBR: 5, Stratum: layers.Subgrade},
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if got := res.Checks[2].ActualZG; got != 90 {
		t.Errorf("subgrade actual ZG = %v, want 90", got)
	}
	if got := res.Checks[2].DepthCM; got != 80 {
		t.Errorf("subgrade depth = %v, want 80", got)
	}
	if len(res.Layers) != 3 {
		t.Errorf("layers = %d", len(res.Layers))
	}
}

func TestCalculateErrors(t *testing.T) {
	in := sample()
	in.RoadClass = "Tipo Z"
	if _, err := Calculate(in); !errors.Is(err, loadtable.ErrInvalidRoadClass) {
		t.Errorf("road class err = %v", err)
	}

	in = sample()
	in.ConfidencePct = 100
	if _, err := Calculate(in); !errors.Is(err, reliability.ErrDomain) {
		t.Errorf("confidence err = %v", err)
	}

	in = sample()
	in.CBR.Base = 1000
	_, err := Calculate(in)
	var ie *layers.InterfaceError
	if !errors.As(err, &ie) || ie.Interface != "Base hidráulica" {
		t.Errorf("err = %v, want infeasible base interface", err)
	}
}

func TestLoad(t *testing.T) {
	in, err := Load("testdata/tipo_b.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if in.RoadClass != "Tipo B" || in.Lanes != 2 || in.Composition["T3S3"] != 5 {
		t.Errorf("input = %+v", in)
	}
	if in.Project.KmStart != "52+000" || in.Thickness.Base != 15 || in.CBR.Subgrade != 5 {
		t.Errorf("project/section = %+v %+v %+v", in.Project, in.Thickness, in.CBR)
	}
	res, err := Calculate(in)
	if err != nil {
		t.Fatal(err)
	}
	if res.CompositionSum != 100 || len(res.Warnings) == 0 {
		t.Errorf("sum = %v warnings = %q", res.CompositionSum, res.Warnings)
	}
}

func TestDecodeRejectsUnknownFields(t *testing.T) {
	if _, err := Decode(strings.NewReader("road_class: Tipo B\nlanez: 2\n")); err == nil {
		t.Error("unknown field should be rejected")
	}
}

func TestHandlerCalc(t *testing.T) {
	observed := 0
	h := &Handler{Observe: func(Result) { observed++ }}
	body, _ := json.Marshal(sample())
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/design/calc", bytes.NewReader(body)))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}
	var res Result
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatal(err)
	}
	if len(res.Checks) != 3 || res.Checks[1].Pass != true {
		t.Errorf("checks = %+v", res.Checks)
	}

	in := sample()
	in.CBR.Base = 1000
	body, _ = json.Marshal(in)
	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/tools/design/calc", bytes.NewReader(body)))
	if rec.Code != http.StatusBadRequest || !strings.Contains(rec.Body.String(), "infeasible") {
		t.Errorf("status = %d body = %q", rec.Code, rec.Body.String())
	}
	if observed != 1 {
		t.Errorf("observed %d runs, want 1", observed)
	}
}
