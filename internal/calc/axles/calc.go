package axles

import (
	"errors"
	"fmt"

	"Pavement/internal/calc/loadtable"
)

var ErrInvalidTraffic = errors.New("invalid traffic data")

// Volumes are the annual design-lane flows (already scaled by 3.65 so that
// multiplying by a composition percentage yields axles per year).
type Volumes struct {
	LaneFactor float64 `json:"lane_factor"`
	DesignLane float64 `json:"design_lane_tdpa"`
	Loaded     float64 `json:"loaded_flow"`
	Empty      float64 `json:"empty_flow"`
}

// LaneFactor is the share of two-way traffic on the design lane for the
// number of lanes per direction.
func LaneFactor(lanes int) float64 {
	switch lanes {
	case 1:
		return 0.5
	case 2:
		return 0.45
	default:
		return 0.4
	}
}

// NewVolumes derives the loaded and empty flows from the two-way daily
// traffic, the lanes per direction and the loaded-vehicle percentage.
func NewVolumes(tdpa float64, lanes int, loadedPct float64) (Volumes, error) {
	if tdpa < 0 {
		return Volumes{}, fmt.Errorf("%w: tdpa %g is negative", ErrInvalidTraffic, tdpa)
	}
	if lanes < 1 {
		return Volumes{}, fmt.Errorf("%w: lanes per direction %d", ErrInvalidTraffic, lanes)
	}
	if loadedPct < 0 || loadedPct > 100 {
		return Volumes{}, fmt.Errorf("%w: loaded vehicles %g%% outside 0..100", ErrInvalidTraffic, loadedPct)
	}
	fcp := LaneFactor(lanes)
	vcp := tdpa * fcp
	return Volumes{
		LaneFactor: fcp,
		DesignLane: vcp,
		Loaded:     (vcp * 3.65 * loadedPct) / 100,
		Empty:      (vcp * 3.65 * (100 - loadedPct)) / 100,
	}, nil
}

// Row is one axle record of the first-year table.
type Row struct {
	Index           int                 `json:"index"`
	Axle            loadtable.Axle      `json:"-"`
	Configuration   string              `json:"configuration"`
	Description     string              `json:"description"`
	Condition       loadtable.Condition `json:"condition"`
	ContactPressure float64             `json:"contact_pressure"`
	LoadTon         float64             `json:"load_ton"`
	LoadKip         float64             `json:"load_kip"`
	FirstYear       float64             `json:"first_year_axles"`
}

type Table struct {
	RoadClass loadtable.RoadClass     `json:"road_class"`
	Rows      [loadtable.RowCount]Row `json:"rows"`
}

// Compute builds the first-year axle table for the road class from the
// composition and the loaded/empty flows.
func Compute(rc loadtable.RoadClass, comp Composition, vol Volumes) (Table, error) {
	tons, err := loadtable.Loads(rc)
	if err != nil {
		return Table{}, err
	}
	if err := comp.Validate(); err != nil {
		return Table{}, err
	}
	if vol.Loaded < 0 || vol.Empty < 0 {
		return Table{}, fmt.Errorf("%w: negative flow", ErrInvalidTraffic)
	}

	t := Table{RoadClass: rc}
	for i, d := range loadtable.Rows() {
		t.Rows[i] = Row{
			Index:           d.Index,
			Axle:            d.Axle,
			Configuration:   d.Axle.Name(),
			Description:     d.Axle.Label(),
			Condition:       d.Condition,
			ContactPressure: d.ContactPressure,
			LoadTon:         tons[i],
			LoadKip:         tons[i] * loadtable.TonToKip,
			FirstYear:       formulas[i].apply(comp, vol),
		}
	}
	return t, nil
}

// FirstYearTotal is the plain sum of axle applications (not equivalent axles).
func (t Table) FirstYearTotal() float64 {
	s := 0.0
	for _, r := range t.Rows {
		s += r.FirstYear
	}
	return s
}

type Input struct {
	RoadClass   string             `json:"road_class"`
	Lanes       int                `json:"lanes"`
	LoadedPct   float64            `json:"loaded_pct"`
	TDPA        float64            `json:"tdpa"`
	Composition map[string]float64 `json:"composition"`
}

type Result struct {
	Volumes        Volumes `json:"volumes"`
	Table          Table   `json:"table"`
	CompositionSum float64 `json:"composition_sum"`
	Notes          string  `json:"notes"`
}

// ToComposition converts string-keyed shares.
func ToComposition(m map[string]float64) Composition {
	c := make(Composition, len(m))
	for k, v := range m {
		c[Vehicle(k)] = v
	}
	return c
}

func Calculate(in Input) (Result, error) {
	rc, err := loadtable.ParseRoadClass(in.RoadClass)
	if err != nil {
		return Result{}, err
	}
	vol, err := NewVolumes(in.TDPA, in.Lanes, in.LoadedPct)
	if err != nil {
		return Result{}, err
	}
	comp := ToComposition(in.Composition)
	t, err := Compute(rc, comp, vol)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Volumes:        vol,
		Table:          t,
		CompositionSum: comp.Sum(),
		Notes:          "First-year axle applications on the design lane.",
	}, nil
}
