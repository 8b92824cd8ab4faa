package growth

import (
	"errors"
	"fmt"
	"math"
)

var ErrInvalidInput = errors.New("invalid growth input")

// Factor is the traffic growth coefficient CT for an annual rate (%) over
// the design life. A zero rate accumulates linearly.
func Factor(ratePct, years float64) (float64, error) {
	if years <= 0 {
		return 0, fmt.Errorf("%w: design life %g years must be positive", ErrInvalidInput, years)
	}
	if ratePct <= -100 {
		return 0, fmt.Errorf("%w: growth rate %g%%", ErrInvalidInput, ratePct)
	}
	if ratePct == 0 {
		return years, nil
	}
	r := ratePct / 100
	return (math.Pow(1+r, years) - 1) / r, nil
}

// CumulativeESALs scales the first-year equivalent axles to the design life.
func CumulativeESALs(firstYear, ratePct, years float64) (float64, error) {
	ct, err := Factor(ratePct, years)
	if err != nil {
		return 0, err
	}
	return ct * firstYear, nil
}

type Input struct {
	FirstYearESALs float64 `json:"first_year_esals"`
	GrowthRatePct  float64 `json:"growth_rate_pct"`
	LifeYears      float64 `json:"life_years"`
}

type Result struct {
	GrowthFactor float64 `json:"growth_factor"`
	ESALs        float64 `json:"esals"`
	Notes        string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if in.FirstYearESALs < 0 {
		return Result{}, fmt.Errorf("%w: first-year ESALs %g is negative", ErrInvalidInput, in.FirstYearESALs)
	}
	ct, err := Factor(in.GrowthRatePct, in.LifeYears)
	if err != nil {
		return Result{}, err
	}
	return Result{
		GrowthFactor: ct,
		ESALs:        ct * in.FirstYearESALs,
		Notes:        "Compound growth over the design life.",
	}, nil
}
