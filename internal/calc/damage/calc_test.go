package damage

import (
	"errors"
	"math"
	"testing"

	"Pavement/internal/calc/axles"
	"Pavement/internal/calc/growth"
	"Pavement/internal/calc/loadtable"
	"Pavement/internal/calc/stress"
)

func tipoB(t *testing.T) axles.Table {
	t.Helper()
	vol, err := axles.NewVolumes(7500, 2, 80)
	if err != nil {
		t.Fatal(err)
	}
	comp := axles.Composition{axles.A2: 85, axles.C38: 2, axles.T3S2: 2, axles.T3S3: 5, axles.T3S2R4: 2}
	tab, err := axles.Compute(loadtable.ClassB, comp, vol)
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

// standardRow has the plate of the reference axle: 5.8 kg/cm2 on 15 cm.
func standardRow() axles.Row {
	return axles.Row{
		Axle:            loadtable.SingleAxle{},
		Configuration:   "single",
		Condition:       loadtable.Loaded,
		ContactPressure: stress.StandardPressure,
		LoadTon:         stress.StandardRadius * stress.StandardRadius * 2 * math.Pi * stress.StandardPressure / 1000,
		FirstYear:       1,
	}
}

func TestUnitDamageOfStandardAxle(t *testing.T) {
	var tab axles.Table
	for i := range tab.Rows {
		tab.Rows[i] = standardRow()
	}
	for _, z := range []float64{5, 12.5, 30, 60} {
		ev, err := Evaluate(tab, z)
		if err != nil {
			t.Fatal(err)
		}
		if d := ev.Rows[0].UnitDamage; math.Abs(d-1) > 1e-3 {
			t.Errorf("z=%v: unit damage = %v, want 1", z, d)
		}
		if math.Abs(ev.Total-loadtable.RowCount) > 1e-2 {
			t.Errorf("z=%v: total = %v, want %d", z, ev.Total, loadtable.RowCount)
		}
	}
}

func TestMultiplicityAtThreshold(t *testing.T) {
	tab := tipoB(t)
	below, err := Evaluate(tab, 29.99)
	if err != nil {
		t.Fatal(err)
	}
	at, err := Evaluate(tab, 30)
	if err != nil {
		t.Fatal(err)
	}
	for i := 8; i <= 13; i++ {
		if below.Rows[i].Multiplicity != 2 || at.Rows[i].Multiplicity != 1 {
			t.Errorf("tandem row %d multiplicity = %v / %v", i, below.Rows[i].Multiplicity, at.Rows[i].Multiplicity)
		}
	}
	for i := 14; i <= 16; i++ {
		if below.Rows[i].Multiplicity != 3 || at.Rows[i].Multiplicity != 1 {
			t.Errorf("tridem row %d multiplicity = %v / %v", i, below.Rows[i].Multiplicity, at.Rows[i].Multiplicity)
		}
	}
	wantRadius := math.Sqrt(1111 * tab.Rows[9].LoadTon / (4 * math.Pi * 6))
	if math.Abs(at.Rows[9].RadiusCM-wantRadius) > 1e-9 {
		t.Errorf("row 9 radius at 30 = %v, want %v", at.Rows[9].RadiusCM, wantRadius)
	}
}

func TestEvaluateRowEquivalents(t *testing.T) {
	tab := tipoB(t)
	ev, err := Evaluate(tab, 10)
	if err != nil {
		t.Fatal(err)
	}
	sum := 0.0
	for i, r := range ev.Rows {
		if r.Equivalent != r.FirstYear*r.UnitDamage {
			t.Errorf("row %d equivalent = %v, want %v", i, r.Equivalent, r.FirstYear*r.UnitDamage)
		}
		sum += r.Equivalent
	}
	if ev.Total != sum {
		t.Errorf("total = %v, want %v", ev.Total, sum)
	}
	if ev.Total <= 0 {
		t.Errorf("total must be positive, got %v", ev.Total)
	}
	if ev.Rows[16].Equivalent != 0 {
		t.Errorf("row 16 has no vehicles, got %v", ev.Rows[16].Equivalent)
	}
}

func TestEvaluateIsPure(t *testing.T) {
	tab := tipoB(t)
	a, err := Evaluate(tab, 25)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Evaluate(tab, 60); err != nil {
		t.Fatal(err)
	}
	b, _ := Evaluate(tab, 25)
	if a != b {
		t.Error("re-evaluating the same depth changed the result")
	}
}

func TestEvaluateWithoutAxleValue(t *testing.T) {
	tab := tipoB(t)
	bare := tab
	for i := range bare.Rows {
		bare.Rows[i].Axle = nil
	}
	a, _ := Evaluate(tab, 18)
	b, err := Evaluate(bare, 18)
	if err != nil {
		t.Fatal(err)
	}
	if a.Total != b.Total {
		t.Errorf("total = %v, want %v", b.Total, a.Total)
	}

	bare.Rows[3].Configuration = "quad"
	if _, err := Evaluate(bare, 18); !errors.Is(err, stress.ErrDomain) {
		t.Errorf("err = %v, want ErrDomain", err)
	}
}

func TestEvaluateDomain(t *testing.T) {
	tab := tipoB(t)
	for _, z := range []float64{0, -4, math.NaN()} {
		if _, err := Evaluate(tab, z); !errors.Is(err, stress.ErrDomain) {
			t.Errorf("z=%v err = %v", z, err)
		}
	}
}

func TestESALs(t *testing.T) {
	tab := tipoB(t)
	ev, _ := Evaluate(tab, 25)
	got, err := ESALs(tab, 25, 3.5, 15)
	if err != nil {
		t.Fatal(err)
	}
	ct, _ := growth.Factor(3.5, 15)
	if got != ct*ev.Total {
		t.Errorf("ESALs = %v, want %v", got, ct*ev.Total)
	}
}

func TestCalculate(t *testing.T) {
	res, err := Calculate(Input{
		Input: axles.Input{
			RoadClass:   "Tipo B",
			Lanes:       2,
			LoadedPct:   80,
			TDPA:        7500,
			Composition: map[string]float64{"A2": 85, "C38": 2, "T3S2": 2, "T3S3": 5, "T3S2R4": 2},
		},
		DepthCM:       5,
		GrowthRatePct: 3.5,
		LifeYears:     15,
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.ESALs != res.GrowthFactor*res.Evaluation.Total {
		t.Errorf("ESALs = %v", res.ESALs)
	}
	if res.Volumes.LaneFactor != 0.45 {
		t.Errorf("lane factor = %v", res.Volumes.LaneFactor)
	}
}
