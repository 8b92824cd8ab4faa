package reliability

import (
	"errors"
	"fmt"
	"math"
)

var ErrDomain = errors.New("reliability outside domain")

// Rational approximation of the standard normal quantile.
const (
	c1 = 2.515517
	c2 = 0.802853
	c3 = 0.010328
	c4 = 1.432788
	c5 = 0.189269
	c6 = 0.001308
)

// Result holds the normal abscissa U and the regression constants of the
// method: B1/VRS0 for bases and B2/VRS0 for subbases and subgrades.
type Result struct {
	ConfidencePct float64 `json:"confidence_pct"`
	T             float64 `json:"t"`
	U             float64 `json:"u"`
	B1            float64 `json:"b1"`
	B2            float64 `json:"b2"`
	VRS0Base      float64 `json:"vrs0_base"`
	VRS0Sub       float64 `json:"vrs0_sub"`
}

// Constants converts a confidence level (%) into U and the two VRS0 values.
// The level must lie strictly between 0 and 100.
func Constants(confidencePct float64) (Result, error) {
	if !(confidencePct > 0 && confidencePct < 100) {
		return Result{}, fmt.Errorf("%w: confidence %g%% must be between 0 and 100 exclusive", ErrDomain, confidencePct)
	}
	qu := confidencePct / 100
	t := math.Sqrt(math.Log(1 / math.Pow(1-qu, 2)))
	u := t - (c1+c2*t+c3*math.Pow(t, 2))/(1+c4*t+c5*math.Pow(t, 2)+c6*math.Pow(t, 3))
	b1 := 0.8477 + 0.12*u
	b2 := 0.4547 + 0.1593*u
	return Result{
		ConfidencePct: confidencePct,
		T:             t,
		U:             u,
		B1:            b1,
		B2:            b2,
		VRS0Base:      math.Pow(10, b1),
		VRS0Sub:       math.Pow(10, b2),
	}, nil
}

type Input struct {
	ConfidencePct float64 `json:"confidence_pct"`
}

func Calculate(in Input) (Result, error) {
	return Constants(in.ConfidencePct)
}
