package layers

import (
	"errors"
	"fmt"
	"strings"

	"Pavement/internal/calc/reliability"
)

var ErrInvalidLayer = errors.New("invalid layer")

type Material string

const (
	AsphaltWearing   Material = "asphalt_wearing"
	AsphaltBase      Material = "asphalt_base"
	HydraulicBase    Material = "hydraulic_base"
	HydraulicSubbase Material = "hydraulic_subbase"
)

// equivalent-gravel conversion coefficients
var coefficients = map[Material]float64{
	AsphaltWearing:   2.0,
	AsphaltBase:      1.5,
	HydraulicBase:    1.0,
	HydraulicSubbase: 1.0,
}

func (m Material) Coefficient() (float64, bool) {
	c, ok := coefficients[m]
	return c, ok
}

func (m Material) Label() string {
	switch m {
	case AsphaltWearing:
		return "Carpeta asfáltica"
	case AsphaltBase:
		return "Base asfáltica"
	case HydraulicBase:
		return "Base hidráulica"
	case HydraulicSubbase:
		return "Sub-base hidráulica"
	}
	return string(m)
}

// Layer is one course of the pavement section, listed from the surface down.
// Coefficient overrides the material default when positive.
type Layer struct {
	Name        string   `json:"name" yaml:"name"`
	Material    Material `json:"material" yaml:"material"`
	ThicknessCM float64  `json:"thickness_cm" yaml:"thickness_cm"`
	Coefficient float64  `json:"coefficient,omitempty" yaml:"coefficient,omitempty"`
}

func (l Layer) coefficient() (float64, error) {
	if l.Coefficient > 0 {
		return l.Coefficient, nil
	}
	c, ok := l.Material.Coefficient()
	if !ok {
		return 0, fmt.Errorf("%w: %q has unknown material %q and no coefficient", ErrInvalidLayer, l.Name, l.Material)
	}
	return c, nil
}

// EquivalentGravel is the actual equivalent-gravel thickness (cm) of the
// layers: sum of thickness times conversion coefficient.
func EquivalentGravel(ls []Layer) (float64, error) {
	zg := 0.0
	for _, l := range ls {
		if l.ThicknessCM < 0 {
			return 0, fmt.Errorf("%w: %q thickness %g cm is negative", ErrInvalidLayer, l.Name, l.ThicknessCM)
		}
		c, err := l.coefficient()
		if err != nil {
			return 0, err
		}
		zg += l.ThicknessCM * c
	}
	return zg, nil
}

// Depth is the cumulative thickness of the layers.
func Depth(ls []Layer) float64 {
	z := 0.0
	for _, l := range ls {
		z += l.ThicknessCM
	}
	return z
}

// Stratum is the kind of material under an interface; it selects the VRS0.
type Stratum string

const (
	Base     Stratum = "base"
	Subbase  Stratum = "subbase"
	Subgrade Stratum = "subgrade"
)

func ParseStratum(s string) (Stratum, error) {
	switch st := Stratum(strings.ToLower(strings.TrimSpace(s))); st {
	case Base, Subbase, Subgrade:
		return st, nil
	}
	return "", fmt.Errorf("%w: unknown stratum %q", ErrInvalidLayer, s)
}

// VRS0 picks the reference strength for the stratum.
func (s Stratum) VRS0(r reliability.Result) float64 {
	if s == Base {
		return r.VRS0Base
	}
	return r.VRS0Sub
}

// Interface is a boundary of the section: the material below it has
// bearing ratio CBR, and the first LayersAbove layers cover it.
type Interface struct {
	Name        string  `json:"name" yaml:"name"`
	LayersAbove int     `json:"layers_above" yaml:"layers_above"`
	CBR         float64 `json:"cbr" yaml:"cbr"`
	Stratum     Stratum `json:"stratum" yaml:"stratum"`
}
