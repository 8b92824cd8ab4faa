package layers

import (
	"errors"
	"fmt"
	"math"

	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/damage"
	"Pavement/internal/calc/reliability"
)

var ErrInfeasible = errors.New("design infeasible")

// InterfaceError reports an interface whose influence factor leaves the
// (0, 1) range of the required-thickness formula.
type InterfaceError struct {
	Interface string
	DepthCM   float64
	Fz        float64
	ESALs     float64
}

func (e *InterfaceError) Error() string {
	return fmt.Sprintf("design infeasible at interface %q (Z=%g cm, ESALs=%.0f): fz=%.4f outside (0, 1)",
		e.Interface, e.DepthCM, e.ESALs, e.Fz)
}

func (e *InterfaceError) Unwrap() error { return ErrInfeasible }

// InfluenceFactor fz = CBR / (VRS0 * 1.5^log10(ESALs)).
func InfluenceFactor(cbr, vrs0, esals float64) float64 {
	return cbr / (vrs0 * math.Pow(1.5, math.Log10(esals)))
}

// RequiredGravel inverts fz into the required equivalent-gravel thickness
// (cm). Only defined for 0 < fz < 1.
func RequiredGravel(fz float64) (float64, error) {
	if !(fz > 0 && fz < 1) {
		return 0, fmt.Errorf("%w: fz=%g outside (0, 1)", ErrInfeasible, fz)
	}
	return 15 / math.Sqrt((1/math.Pow(1-fz, 2.0/3.0))-1), nil
}

type SizeInput struct {
	Name          string
	DepthCM       float64
	CBR           float64
	VRS0          float64
	Table         axles.Table
	GrowthRatePct float64
	LifeYears     float64
	Above         []Layer
}

type Check struct {
	Name       string  `json:"name"`
	Stratum    Stratum `json:"stratum,omitempty"`
	DepthCM    float64 `json:"depth_cm"`
	CBR        float64 `json:"cbr"`
	VRS0       float64 `json:"vrs0"`
	FirstYear  float64 `json:"first_year_esals"`
	ESALs      float64 `json:"esals"`
	Fz         float64 `json:"fz"`
	RequiredZG float64 `json:"required_zg_cm"`
	ActualZG   float64 `json:"actual_zg_cm"`
	Pass       bool    `json:"pass"`
}

// Size checks one interface: life-cycle ESALs at its depth, required
// equivalent-gravel thickness, and the thickness actually built above it.
func Size(in SizeInput) (Check, error) {
	if in.CBR <= 0 {
		return Check{}, fmt.Errorf("%w: %q CBR %g must be positive", ErrInvalidLayer, in.Name, in.CBR)
	}
	if in.VRS0 <= 0 {
		return Check{}, fmt.Errorf("%w: %q VRS0 %g must be positive", ErrInvalidLayer, in.Name, in.VRS0)
	}
	actual, err := EquivalentGravel(in.Above)
	if err != nil {
		return Check{}, err
	}
	ev, err := damage.Evaluate(in.Table, in.DepthCM)
	if err != nil {
		return Check{}, fmt.Errorf("interface %q: %w", in.Name, err)
	}
	esals, err := damage.Accumulate(ev, in.GrowthRatePct, in.LifeYears)
	if err != nil {
		return Check{}, fmt.Errorf("interface %q: %w", in.Name, err)
	}
	fz := InfluenceFactor(in.CBR, in.VRS0, esals)
	required, err := RequiredGravel(fz)
	if err != nil {
		return Check{}, &InterfaceError{Interface: in.Name, DepthCM: in.DepthCM, Fz: fz, ESALs: esals}
	}
	return Check{
		Name:       in.Name,
		DepthCM:    in.DepthCM,
		CBR:        in.CBR,
		VRS0:       in.VRS0,
		FirstYear:  ev.Total,
		ESALs:      esals,
		Fz:         fz,
		RequiredZG: required,
		ActualZG:   actual,
		Pass:       actual >= required,
	}, nil
}

// CheckSection evaluates every interface of the section independently.
func CheckSection(section []Layer, ifaces []Interface, rel reliability.Result, t axles.Table, ratePct, years float64) ([]Check, error) {
	if len(ifaces) == 0 {
		return nil, fmt.Errorf("%w: no interfaces to check", ErrInvalidLayer)
	}
	checks := make([]Check, 0, len(ifaces))
	for _, in := range ifaces {
		if in.LayersAbove < 1 || in.LayersAbove > len(section) {
			return nil, fmt.Errorf("%w: interface %q covers %d of %d layers", ErrInvalidLayer, in.Name, in.LayersAbove, len(section))
		}
		st, err := ParseStratum(string(in.Stratum))
		if err != nil {
			return nil, fmt.Errorf("interface %q: %w", in.Name, err)
		}
		above := section[:in.LayersAbove]
		c, err := Size(SizeInput{
			Name:          in.Name,
			DepthCM:       Depth(above),
			CBR:           in.CBR,
			VRS0:          st.VRS0(rel),
			Table:         t,
			GrowthRatePct: ratePct,
			LifeYears:     years,
			Above:         above,
		})
		if err != nil {
			return nil, err
		}
		c.Stratum = st
		checks = append(checks, c)
	}
	return checks, nil
}

type Input struct {
	axles.Input
	GrowthRatePct float64 `json:"growth_rate_pct"`
	LifeYears     float64 `json:"life_years"`
	ConfidencePct float64 `json:"confidence_pct"`
	Name          string  `json:"name"`
	CBR           float64 `json:"cbr"`
	Stratum       string  `json:"stratum"`
	DepthCM       float64 `json:"depth_cm"`
	Above         []Layer `json:"above"`
}

type Result struct {
	Reliability reliability.Result `json:"reliability"`
	Check       Check              `json:"check"`
	Notes       string             `json:"notes"`
}

// Calculate sizes a single interface. Without an explicit depth the
// interface sits under the listed layers.
func Calculate(in Input) (Result, error) {
	st, err := ParseStratum(in.Stratum)
	if err != nil {
		return Result{}, err
	}
	rel, err := reliability.Constants(in.ConfidencePct)
	if err != nil {
		return Result{}, err
	}
	tab, err := axles.Calculate(in.Input)
	if err != nil {
		return Result{}, err
	}
	z := in.DepthCM
	if z == 0 {
		z = Depth(in.Above)
	}
	name := in.Name
	if name == "" {
		name = string(st)
	}
	c, err := Size(SizeInput{
		Name:          name,
		DepthCM:       z,
		CBR:           in.CBR,
		VRS0:          st.VRS0(rel),
		Table:         tab.Table,
		GrowthRatePct: in.GrowthRatePct,
		LifeYears:     in.LifeYears,
		Above:         in.Above,
	})
	if err != nil {
		return Result{}, err
	}
	c.Stratum = st
	return Result{
		Reliability: rel,
		Check:       c,
		Notes:       "UNAM method: required vs. built equivalent-gravel thickness.",
	}, nil
}
