package terrain

import (
	"math"

	"github.com/g10z3r/wofc/internal/mathx"
)

// CarverParams configure the river carver.
type CarverParams struct {
	SeaLevel             float64
	ShelfLevel           float64
	RiverDepth           float64
	ContinentHeightScale float64
}

// Carver subtracts river depressions from the blended elevation. Drainage
// intensity follows the local gradient: flat valley floors and coastal
// lowland drain hardest, steep slopes and high ground barely at all. The cut
// is capped at RiverDepth, never applies beyond the continental shelf, and
// never takes a point below the shelf floor.
type Carver struct {
	selector  *Selector
	continent *Continent
	p         CarverParams
}

// Sampling step for the drainage gradient, and the slope at which terrain
// counts as fully un-drainable.
const (
	gradientStep    = 1.0 / 1024
	slopeNormalizer = 2.0
)

// NewCarver wraps a selector with river carving.
func NewCarver(selector *Selector, continent *Continent, p CarverParams) *Carver {
	return &Carver{selector: selector, continent: continent, p: p}
}

// At returns the carved elevation at (x, y).
func (cv *Carver) At(x, y float64) float64 {
	e := cv.selector.At(x, y)
	if cv.p.RiverDepth == 0 {
		return e
	}

	c := cv.continent.At(x, y)
	if !(c > cv.p.ShelfLevel) {
		// Seabed beyond the shelf is never carved.
		return e
	}

	out := e - cv.drainage(x, y, c)*cv.p.RiverDepth

	// The shallowest seafloor: carving may notch the shelf but not dig
	// through it.
	floor := cv.p.ShelfLevel * cv.p.ContinentHeightScale
	if out < floor && e >= floor {
		out = floor
	}
	return out
}

// drainage returns the carve intensity at (x, y), in [0, 1].
func (cv *Carver) drainage(x, y, c float64) float64 {
	// Fade in across the shelf so river mouths notch the coast without a seam.
	gate := mathx.SmoothStep(cv.p.ShelfLevel, cv.p.SeaLevel, c)

	const h = gradientStep
	dx := (cv.selector.At(x+h, y) - cv.selector.At(x-h, y)) / (2 * h)
	dy := (cv.selector.At(x, y+h) - cv.selector.At(x, y-h)) / (2 * h)
	slope := math.Sqrt(dx*dx + dy*dy)
	flat := 1 - mathx.Clamp01(slope/slopeNormalizer)

	// Headwaters high above sea level carve at half strength.
	upland := 1 - 0.5*mathx.SmoothStep(cv.p.SeaLevel+0.25, cv.p.SeaLevel+0.75, c)

	return mathx.Clamp01(gate * flat * upland)
}
