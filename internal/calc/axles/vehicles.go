package axles

import (
	"errors"
	"fmt"
	"sort"
)

var ErrInvalidComposition = errors.New("invalid vehicle composition")

// Vehicle is a vehicle-type code of the Mexican classification.
type Vehicle string

const (
	A2     Vehicle = "A2"
	B2     Vehicle = "B2"
	B36    Vehicle = "B36"
	B38    Vehicle = "B38"
	B4     Vehicle = "B4"
	C2     Vehicle = "C2"
	C36    Vehicle = "C36"
	C38    Vehicle = "C38"
	C2R2   Vehicle = "C2R2"
	C3R2   Vehicle = "C3R2"
	C3R3   Vehicle = "C3R3"
	C2R3   Vehicle = "C2R3"
	T2S1   Vehicle = "T2S1"
	T2S2   Vehicle = "T2S2"
	T3S2   Vehicle = "T3S2"
	T3S3   Vehicle = "T3S3"
	T2S3   Vehicle = "T2S3"
	T3S1   Vehicle = "T3S1"
	T2S1R2 Vehicle = "T2S1R2"
	T2S1R3 Vehicle = "T2S1R3"
	T2S2R2 Vehicle = "T2S2R2"
	T3S1R2 Vehicle = "T3S1R2"
	T3S1R3 Vehicle = "T3S1R3"
	T3S2R2 Vehicle = "T3S2R2"
	T3S2R4 Vehicle = "T3S2R4"
	T3S2R3 Vehicle = "T3S2R3"
	T3S3S2 Vehicle = "T3S3S2"
	T2S2S2 Vehicle = "T2S2S2"
	T3S2S2 Vehicle = "T3S2S2"
)

// Vehicles lists the 29 codes in input-form order.
var Vehicles = []Vehicle{
	A2, B2, B36, B38, B4, C2,
	C36, C38, C2R2, C3R2, C3R3, C2R3,
	T2S1, T2S2, T3S2, T3S3, T2S3, T3S1,
	T2S1R2, T2S1R3, T2S2R2, T3S1R2, T3S1R3, T3S2R2,
	T3S2R4, T3S2R3, T3S3S2, T2S2S2, T3S2S2,
}

var known = func() map[Vehicle]bool {
	m := make(map[Vehicle]bool, len(Vehicles))
	for _, v := range Vehicles {
		m[v] = true
	}
	return m
}()

// IsVehicle reports whether code is one of the 29 codes.
func IsVehicle(code string) bool {
	return known[Vehicle(code)]
}

// Composition maps a vehicle code to its share (%) of total traffic.
// Missing codes count as zero.
type Composition map[Vehicle]float64

// Validate rejects unknown codes and shares outside 0..100. It does not require
// the shares to add up to 100; see Sum.
func (c Composition) Validate() error {
	keys := make([]string, 0, len(c))
	for v := range c {
		keys = append(keys, string(v))
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := Vehicle(k)
		if !known[v] {
			return fmt.Errorf("%w: unknown vehicle code %q", ErrInvalidComposition, k)
		}
		if c[v] < 0 || c[v] > 100 {
			return fmt.Errorf("%w: %s share %g outside 0..100", ErrInvalidComposition, k, c[v])
		}
	}
	return nil
}

func (c Composition) Sum() float64 {
	s := 0.0
	for _, v := range Vehicles {
		s += c[v]
	}
	return s
}

// NonZero returns the codes with a positive share, in form order.
func (c Composition) NonZero() []Vehicle {
	var out []Vehicle
	for _, v := range Vehicles {
		if c[v] > 0 {
			out = append(out, v)
		}
	}
	return out
}
