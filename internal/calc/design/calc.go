package design

import (
	"fmt"
	"math"

	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/growth"
	"Pavement/internal/calc/layers"
	"Pavement/internal/calc/loadtable"
	"Pavement/internal/calc/reliability"
)

// Project identifies the road for the calculation report.
type Project struct {
	Road    string `json:"road" yaml:"road"`
	Section string `json:"section" yaml:"section"`
	KmStart string `json:"km_start" yaml:"km_start"`
	KmEnd   string `json:"km_end" yaml:"km_end"`
}

// Thickness of the four courses of the standard section, cm.
type Thickness struct {
	Wearing     float64 `json:"wearing" yaml:"wearing"`
	AsphaltBase float64 `json:"asphalt_base" yaml:"asphalt_base"`
	Base        float64 `json:"base" yaml:"base"`
	Subbase     float64 `json:"subbase" yaml:"subbase"`
}

// CBR of the materials under the three interfaces of the standard section, %.
type CBR struct {
	Base     float64 `json:"base" yaml:"base"`
	Subbase  float64 `json:"subbase" yaml:"subbase"`
	Subgrade float64 `json:"subgrade" yaml:"subgrade"`
}

type Input struct {
	Project       Project            `json:"project" yaml:"project"`
	RoadClass     string             `json:"road_class" yaml:"road_class"`
	Lanes         int                `json:"lanes" yaml:"lanes"`
	LoadedPct     float64            `json:"loaded_pct" yaml:"loaded_pct"`
	LifeYears     float64            `json:"life_years" yaml:"life_years"`
	GrowthRatePct float64            `json:"growth_rate_pct" yaml:"growth_rate_pct"`
	TDPA          float64            `json:"tdpa" yaml:"tdpa"`
	ConfidencePct float64            `json:"confidence_pct" yaml:"confidence_pct"`
	Composition   map[string]float64 `json:"composition" yaml:"composition"`

	// Standard four-course section. Ignored when Layers is set.
	Thickness Thickness `json:"thickness" yaml:"thickness"`
	CBR       CBR       `json:"cbr" yaml:"cbr"`

	// Custom section, surface first.
	Layers     []layers.Layer     `json:"layers,omitempty" yaml:"layers,omitempty"`
	Interfaces []layers.Interface `json:"interfaces,omitempty" yaml:"interfaces,omitempty"`
}

type Result struct {
	Project        Project            `json:"project"`
	Input          Input              `json:"input"`
	Volumes        axles.Volumes      `json:"volumes"`
	CompositionSum float64            `json:"composition_sum"`
	Table          axles.Table        `json:"table"`
	Reliability    reliability.Result `json:"reliability"`
	GrowthFactor   float64            `json:"growth_factor"`
	Layers         []layers.Layer     `json:"layers"`
	Checks         []layers.Check     `json:"checks"`
	Pass           bool               `json:"pass"`
	Warnings       []string           `json:"warnings"`
	Notes          string             `json:"notes"`
}

// StandardSection builds the asphalt/asphalt-base/hydraulic-base/subbase
// section and its three interfaces.
func StandardSection(th Thickness, cbr CBR) ([]layers.Layer, []layers.Interface) {
	ls := []layers.Layer{
		{Name: "Carpeta asfáltica", Material: layers.AsphaltWearing, ThicknessCM: th.Wearing},
		{Name: "Base asfáltica", Material: layers.AsphaltBase, ThicknessCM: th.AsphaltBase},
		{Name: "Base hidráulica", Material: layers.HydraulicBase, ThicknessCM: th.Base},
		{Name: "Sub-base hidráulica", Material: layers.HydraulicSubbase, ThicknessCM: th.Subbase},
	}
	ifs := []layers.Interface{
		{Name: "Base hidráulica", LayersAbove: 2, CBR: cbr.Base, Stratum: layers.Base},
		{Name: "Sub-base hidráulica", LayersAbove: 3, CBR: cbr.Subbase, Stratum: layers.Subbase},
		{Name: "Subrasante", LayersAbove: 4, CBR: cbr.Subgrade, Stratum: layers.Subgrade},
	}
	return ls, ifs
}

// Calculate runs the whole method: traffic volumes, first-year axle table,
// reliability constants and the sufficiency check of every interface.
func Calculate(in Input) (Result, error) {
	if in.ConfidencePct == 0 {
		in.ConfidencePct = 90
	}
	if in.LifeYears == 0 {
		in.LifeYears = 15
	}

	rc, err := loadtable.ParseRoadClass(in.RoadClass)
	if err != nil {
		return Result{}, err
	}
	vol, err := axles.NewVolumes(in.TDPA, in.Lanes, in.LoadedPct)
	if err != nil {
		return Result{}, err
	}
	comp := axles.ToComposition(in.Composition)
	tab, err := axles.Compute(rc, comp, vol)
	if err != nil {
		return Result{}, err
	}
	rel, err := reliability.Constants(in.ConfidencePct)
	if err != nil {
		return Result{}, err
	}
	ct, err := growth.Factor(in.GrowthRatePct, in.LifeYears)
	if err != nil {
		return Result{}, err
	}

	section, ifaces := in.Layers, in.Interfaces
	if len(section) == 0 {
		section, ifaces = StandardSection(in.Thickness, in.CBR)
	}
	checks, err := layers.CheckSection(section, ifaces, rel, tab, in.GrowthRatePct, in.LifeYears)
	if err != nil {
		return Result{}, err
	}

	pass := true
	for _, c := range checks {
		pass = pass && c.Pass
	}
	var warnings []string
	sum := comp.Sum()
	if math.Abs(sum-100) > 1e-9 {
		warnings = append(warnings, fmt.Sprintf("vehicle composition adds up to %.1f%%, expected 100%%", sum))
	}
	for _, c := range checks {
		if !c.Pass {
			warnings = append(warnings, fmt.Sprintf("%s: built %.1f cm of equivalent gravel, %.1f cm required", c.Name, c.ActualZG, c.RequiredZG))
		}
	}

	return Result{
		Project:        in.Project,
		Input:          in,
		Volumes:        vol,
		CompositionSum: sum,
		Table:          tab,
		Reliability:    rel,
		GrowthFactor:   ct,
		Layers:         section,
		Checks:         checks,
		Pass:           pass,
		Warnings:       warnings,
		Notes:          "Pavement design by the UNAM method.",
	}, nil
}
