package terrain

import "github.com/g10z3r/wofc/internal/mathx"

// SelectorParams configure the layer blend.
type SelectorParams struct {
	SeaLevel             float64
	ShelfLevel           float64
	MountainsAmount      float64
	HillsAmount          float64
	BadlandsAmount       float64
	ContinentHeightScale float64
}

// Selector composites the five layers into one elevation field. The
// continent supplies the base; mountain, hill, and plain contributions are
// weighted by coverage bands over the control field and faded in across the
// continental shelf; badlands replace the result outright where their band
// saturates.
type Selector struct {
	continent *Continent
	control   *Control
	mountain  *Mountain
	hill      *Hill
	plain     *Plain
	badland   *Badland
	p         SelectorParams
}

// NewSelector wires the layers into a blend.
func NewSelector(continent *Continent, control *Control, mountain *Mountain,
	hill *Hill, plain *Plain, badland *Badland, p SelectorParams) *Selector {
	return &Selector{
		continent: continent,
		control:   control,
		mountain:  mountain,
		hill:      hill,
		plain:     plain,
		badland:   badland,
		p:         p,
	}
}

// Weights are the blend factors at one coordinate. Mountain, Hill, and Plain
// partition the land (they sum to 1); Badland is the replacement weight and
// already includes the land fraction.
type Weights struct {
	Land     float64
	Mountain float64
	Hill     float64
	Plain    float64
	Badland  float64
}

// WeightsAt exposes the blend factors for classification and inspection.
func (s *Selector) WeightsAt(x, y float64) Weights {
	return s.weights(s.continent.At(x, y), s.control.At(x, y))
}

func (s *Selector) weights(c, t float64) Weights {
	// Land fades in across the shelf band, centered at sea level.
	land := mathx.SmoothStep(s.p.ShelfLevel, 2*s.p.SeaLevel-s.p.ShelfLevel, c)

	wM := coverageStep(t, 1-s.p.MountainsAmount)

	thetaH := 1 - s.p.MountainsAmount - s.p.HillsAmount
	if thetaH < 0 {
		thetaH = 0
	}
	wH := coverageStep(t, thetaH) * (1 - wM)

	return Weights{
		Land:     land,
		Mountain: wM,
		Hill:     wH,
		Plain:    1 - wM - wH,
		Badland:  coverageStep(t, 1-s.p.BadlandsAmount) * land,
	}
}

// coverageStep ramps 0 to 1 as v crosses the coverage threshold theta. The
// half-width shrinks near the ends of the range so the ramp never spills out
// of [0, 1], and collapses to a hard step when an amount is exactly 0 or 1.
func coverageStep(v, theta float64) float64 {
	hw := theta
	if 1-theta < hw {
		hw = 1 - theta
	}
	if hw > 0.125 {
		hw = 0.125
	}
	if hw < 0 {
		hw = 0
	}
	return mathx.SmoothStep(theta-hw, theta+hw, v)
}

// At returns the blended elevation at (x, y). Layers whose weight is zero
// are never evaluated.
func (s *Selector) At(x, y float64) float64 {
	c := s.continent.At(x, y)
	w := s.weights(c, s.control.At(x, y))

	e := c * s.p.ContinentHeightScale
	if w.Land > 0 {
		terrain := 0.0
		if w.Mountain > 0 {
			terrain += w.Mountain * s.mountain.At(x, y)
		}
		if w.Hill > 0 {
			terrain += w.Hill * s.hill.At(x, y)
		}
		if w.Plain > 0 {
			terrain += w.Plain * s.plain.At(x, y)
		}
		e += w.Land * terrain
	}
	if w.Badland > 0 {
		e = mathx.Lerp(e, s.badland.At(x, y), w.Badland)
	}
	return e
}

// ContinentAt exposes the raw continentalness signal.
func (s *Selector) ContinentAt(x, y float64) float64 {
	return s.continent.At(x, y)
}
