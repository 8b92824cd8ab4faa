package axles

// Flow selects which annual volume multiplies a row's weighted sum.
type Flow int

const (
	FlowLoaded Flow = iota
	FlowEmpty
	FlowBoth
)

// formula is the first-year application count of one axle row:
// (Constant + sum(share[v] * coeff)) * flow.
type formula struct {
	Flow     Flow
	Constant float64
	Coeffs   map[Vehicle]float64
}

// formulas is indexed like loadtable.Rows. Each coefficient is the number of
// axles of that load and configuration the vehicle contributes.
var formulas = [17]formula{
	// light single axle, cars in both conditions
	{FlowBoth, 0, map[Vehicle]float64{A2: 2}},
	{FlowLoaded, 100, map[Vehicle]float64{A2: -1, B4: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{B2: 1, C2: 1, T2S1: 1, T2S2: 1, T2S3: 1, T2S2S2: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{
		C2R2: 2, C3R2: 2, C3R3: 1, C2R3: 1, T2S1R2: 3, T2S1R3: 2,
		T2S2R2: 2, T3S1R2: 3, T3S1R3: 2, T3S2R2: 2, T3S2R3: 1,
	}},
	{FlowLoaded, 0, map[Vehicle]float64{T2S1: 1, T3S1: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{C2R2: 1, C2R3: 1, T2S1R2: 1, T2S1R3: 1, T2S2R2: 1}},
	{FlowEmpty, 0, map[Vehicle]float64{
		B2: 1, B36: 1, B38: 1, B4: 2, C2: 2, C36: 1, C38: 1, C2R2: 4, C3R2: 3,
		C3R3: 2, C2R3: 3, T2S1: 3, T2S2: 2, T3S2: 1, T3S3: 1, T3S1: 2,
		T2S1R2: 5, T2S1R3: 4, T2S2R2: 4, T3S1R2: 4, T3S1R3: 3,
		T3S2R2: 3, T3S2R4: 1, T3S2R3: 2, T3S3S2: 1, T2S2S2: 2, T3S2S2: 1,
	}},
	{FlowEmpty, 0, map[Vehicle]float64{B2: 1, B36: 1, B38: 1, B4: 1}},
	// tandem
	{FlowLoaded, 0, map[Vehicle]float64{B36: 1, B4: 1, C36: 1, T3S1R3: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{B38: 1, C38: 1, T3S2: 1, T3S3: 1, T3S1: 1, T3S2S2: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{
		C3R3: 1, C2R3: 1, T2S1R3: 1, T2S2R2: 1, T3S1R3: 1, T3S2R2: 1,
		T3S2R4: 3, T3S2R3: 2, T2S2S2: 2, T3S2S2: 2,
	}},
	{FlowLoaded, 0, map[Vehicle]float64{T2S2: 1, T3S2: 1, T3S3S2: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{C3R2: 1, C3R3: 1, T3S1R2: 1, T3S2R2: 1, T3S2R4: 1, T3S2R3: 1, T3S3S2: 1}},
	{FlowEmpty, 0, map[Vehicle]float64{
		C36: 1, C38: 1, C3R2: 1, C3R3: 2, C2R3: 1, T2S2: 1, T3S2: 2, T3S3: 1, T3S1: 1,
		T2S1R3: 1, T2S2R2: 1, T3S1R2: 1, T3S1R3: 2, T3S2R2: 2, T3S2R4: 4,
		T3S2R3: 3, T3S3S2: 2, T2S2S2: 2, T3S2S2: 3,
	}},
	// tridem
	{FlowLoaded, 0, map[Vehicle]float64{T3S3S2: 1}},
	{FlowLoaded, 0, map[Vehicle]float64{T3S3: 1, T2S3: 1}},
	{FlowEmpty, 0, map[Vehicle]float64{T3S3S2: 1}},
}

func (f formula) weight(c Composition) float64 {
	w := f.Constant
	// fixed order keeps the float sum reproducible
	for _, v := range Vehicles {
		if k, ok := f.Coeffs[v]; ok {
			w += k * c[v]
		}
	}
	return w
}

func (f formula) apply(c Composition, vol Volumes) float64 {
	w := f.weight(c)
	switch f.Flow {
	case FlowEmpty:
		return w * vol.Empty
	case FlowBoth:
		return w * (vol.Loaded + vol.Empty)
	default:
		return w * vol.Loaded
	}
}
