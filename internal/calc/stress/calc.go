package stress

import (
	"errors"
	"fmt"
	"math"

	"Pavement/internal/calc/loadtable"
)

// Standard axle used as the damage reference: 5.8 kg/cm2 over a 15 cm plate.
const (
	StandardPressure = 5.8
	StandardRadius   = 15.0
)

var ErrDomain = errors.New("stress model outside domain")

// PlateRadius is the equivalent circular plate radius (cm) of load p (ton)
// at contact pressure q (kg/cm2) for the axle configuration at depth z.
func PlateRadius(p, q float64, axle loadtable.Axle, z float64) (float64, error) {
	if p <= 0 || q <= 0 {
		return 0, fmt.Errorf("%w: load %g t and pressure %g must be positive", ErrDomain, p, q)
	}
	return math.Sqrt((axle.RadiusNumerator(z) * p) / (axle.Divisor() * math.Pi * q)), nil
}

// VerticalStress under the centre of a plate of radius a at depth z.
func VerticalStress(q, a, z float64) float64 {
	return q * (1 - math.Pow(z, 3)/math.Pow(math.Pow(a, 2)+math.Pow(z, 2), 1.5))
}

// StandardStress is VerticalStress for the reference axle.
func StandardStress(z float64) float64 {
	return VerticalStress(StandardPressure, StandardRadius, z)
}

type Input struct {
	LoadTon         float64 `json:"load_ton"`
	ContactPressure float64 `json:"contact_pressure"`
	Axle            string  `json:"axle"`
	DepthCM         float64 `json:"depth_cm"`
}

type Result struct {
	RadiusCM       float64 `json:"radius_cm"`
	Stress         float64 `json:"stress"`
	StandardStress float64 `json:"standard_stress"`
	Notes          string  `json:"notes"`
}

func Calculate(in Input) (Result, error) {
	if in.DepthCM <= 0 {
		return Result{}, fmt.Errorf("%w: depth %g cm must be positive", ErrDomain, in.DepthCM)
	}
	if in.ContactPressure == 0 {
		in.ContactPressure = 6
	}
	axle, ok := loadtable.AxleByName(in.Axle)
	if !ok {
		if in.Axle != "" {
			return Result{}, fmt.Errorf("%w: unknown axle %q", ErrDomain, in.Axle)
		}
		axle = loadtable.SingleAxle{}
	}
	a, err := PlateRadius(in.LoadTon, in.ContactPressure, axle, in.DepthCM)
	if err != nil {
		return Result{}, err
	}
	return Result{
		RadiusCM:       a,
		Stress:         VerticalStress(in.ContactPressure, a, in.DepthCM),
		StandardStress: StandardStress(in.DepthCM),
		Notes:          "Boussinesq vertical stress under a circular plate.",
	}, nil
}
