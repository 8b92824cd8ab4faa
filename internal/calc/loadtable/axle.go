package loadtable

// DepthThreshold (cm) splits the shallow and deep rules for grouped axles.
// A depth equal to the threshold uses the deep rule.
const DepthThreshold = 30.0

// Axle is the axle configuration of a row. The set is closed: SingleAxle,
// TandemAxle and TridemAxle.
type Axle interface {
	Name() string
	Label() string
	// Divisor groups the load over the wheels of the configuration.
	Divisor() float64
	// RadiusNumerator is the depth-dependent numerator of the plate radius.
	RadiusNumerator(z float64) float64
	// Multiplicity is the repetition count N applied to the unit damage.
	Multiplicity(z float64) float64
	axle()
}

type SingleAxle struct{}

func (SingleAxle) Name() string                    { return "single" }
func (SingleAxle) Label() string                   { return "Sencillo" }
func (SingleAxle) Divisor() float64                { return 2 }
func (SingleAxle) RadiusNumerator(float64) float64 { return 1000 }
func (SingleAxle) Multiplicity(float64) float64    { return 1 }
func (SingleAxle) axle()                           {}

type TandemAxle struct{}

func (TandemAxle) Name() string     { return "tandem" }
func (TandemAxle) Label() string    { return "Tándem" }
func (TandemAxle) Divisor() float64 { return 4 }

func (TandemAxle) RadiusNumerator(z float64) float64 {
	if z < DepthThreshold {
		return 1000
	}
	return 1111
}

func (TandemAxle) Multiplicity(z float64) float64 {
	if z < DepthThreshold {
		return 2
	}
	return 1
}

func (TandemAxle) axle() {}

type TridemAxle struct{}

func (TridemAxle) Name() string     { return "tridem" }
func (TridemAxle) Label() string    { return "Trídem" }
func (TridemAxle) Divisor() float64 { return 6 }

func (TridemAxle) RadiusNumerator(z float64) float64 {
	if z < DepthThreshold {
		return 1000
	}
	return 1333
}

func (TridemAxle) Multiplicity(z float64) float64 {
	if z < DepthThreshold {
		return 3
	}
	return 1
}

func (TridemAxle) axle() {}

// AxleByName resolves the configuration from its Name.
func AxleByName(name string) (Axle, bool) {
	switch name {
	case "single":
		return SingleAxle{}, true
	case "tandem":
		return TandemAxle{}, true
	case "tridem":
		return TridemAxle{}, true
	}
	return nil, false
}
