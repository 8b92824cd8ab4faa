package damage

import (
	"fmt"
	"math"

	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/growth"
	"Pavement/internal/calc/loadtable"
	"Pavement/internal/calc/stress"
)

type RowResult struct {
	axles.Row
	RadiusCM     float64 `json:"radius_cm"`
	Stress       float64 `json:"stress"`
	Multiplicity float64 `json:"multiplicity"`
	UnitDamage   float64 `json:"unit_damage"`
	Equivalent   float64 `json:"equivalent_axles"`
}

// Evaluation is the axle table evaluated at one depth. It is recomputed for
// every depth and never cached.
type Evaluation struct {
	DepthCM        float64                       `json:"depth_cm"`
	StandardStress float64                       `json:"standard_stress"`
	Rows           [loadtable.RowCount]RowResult `json:"rows"`
	Total          float64                       `json:"total_equivalent_axles"`
}

// Evaluate computes plate radius, vertical stress, unit damage and
// equivalent axles of every row at depth z (cm).
func Evaluate(t axles.Table, z float64) (Evaluation, error) {
	if z <= 0 || math.IsNaN(z) || math.IsInf(z, 0) {
		return Evaluation{}, fmt.Errorf("%w: depth %g cm must be positive", stress.ErrDomain, z)
	}
	ev := Evaluation{DepthCM: z, StandardStress: stress.StandardStress(z)}
	logSt := math.Log10(ev.StandardStress)
	for i, row := range t.Rows {
		axle := row.Axle
		if axle == nil {
			a, ok := loadtable.AxleByName(row.Configuration)
			if !ok {
				return Evaluation{}, fmt.Errorf("%w: row %d has unknown configuration %q", stress.ErrDomain, i, row.Configuration)
			}
			axle = a
		}
		a, err := stress.PlateRadius(row.LoadTon, row.ContactPressure, axle, z)
		if err != nil {
			return Evaluation{}, fmt.Errorf("row %d: %w", i, err)
		}
		s := stress.VerticalStress(row.ContactPressure, a, z)
		if s <= 0 {
			return Evaluation{}, fmt.Errorf("%w: row %d stress %g at z=%g", stress.ErrDomain, i, s, z)
		}
		n := axle.Multiplicity(z)
		d := math.Pow(10, (math.Log10(s)-logSt)/math.Log10(1.5)) * n
		eq := row.FirstYear * d
		ev.Rows[i] = RowResult{
			Row:          row,
			RadiusCM:     a,
			Stress:       s,
			Multiplicity: n,
			UnitDamage:   d,
			Equivalent:   eq,
		}
		ev.Total += eq
	}
	return ev, nil
}

// Accumulate carries the first-year total of an evaluation over the design life.
func Accumulate(ev Evaluation, ratePct, years float64) (float64, error) {
	return growth.CumulativeESALs(ev.Total, ratePct, years)
}

// ESALs evaluates the table at z and accumulates it.
func ESALs(t axles.Table, z, ratePct, years float64) (float64, error) {
	ev, err := Evaluate(t, z)
	if err != nil {
		return 0, err
	}
	return Accumulate(ev, ratePct, years)
}

type Input struct {
	axles.Input
	DepthCM       float64 `json:"depth_cm"`
	GrowthRatePct float64 `json:"growth_rate_pct"`
	LifeYears     float64 `json:"life_years"`
}

type Result struct {
	Volumes      axles.Volumes `json:"volumes"`
	Evaluation   Evaluation    `json:"evaluation"`
	GrowthFactor float64       `json:"growth_factor"`
	ESALs        float64       `json:"esals"`
	Notes        string        `json:"notes"`
}

// Calculate answers the depth-only query: equivalent axles at one Z and
// their accumulation over the design life.
func Calculate(in Input) (Result, error) {
	tab, err := axles.Calculate(in.Input)
	if err != nil {
		return Result{}, err
	}
	ev, err := Evaluate(tab.Table, in.DepthCM)
	if err != nil {
		return Result{}, err
	}
	ct, err := growth.Factor(in.GrowthRatePct, in.LifeYears)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Volumes:      tab.Volumes,
		Evaluation:   ev,
		GrowthFactor: ct,
		ESALs:        ct * ev.Total,
		Notes:        "Equivalent 8.2 t axles accumulated at the given depth.",
	}, nil
}
