package terrain

import (
	"math"

	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
)

// ContinentParams configure the continent layer.
type ContinentParams struct {
	Frequency  float64
	Lacunarity float64
	SeaLevel   float64
}

// Continent produces the continentalness signal: large landmasses with deep
// ocean basins, a flat continental shelf, and rough coastlines. Its output
// doubles as the base elevation and as the control signal the selector and
// carver threshold against.
type Continent struct {
	base   *noise.Fractal
	carver *noise.Fractal
	curve  *mathx.Curve
	warp   *noise.Turbulence
}

// NewContinent builds the continent layer from a root seed.
func NewContinent(seed uint32, p ContinentParams) *Continent {
	pts := make([]mathx.CurvePoint, len(continentShelfPoints))
	for i, cp := range continentShelfPoints {
		pts[i] = mathx.CurvePoint{In: cp.In + p.SeaLevel, Out: cp.Out + p.SeaLevel}
	}

	return &Continent{
		base: noise.NewFractal(mathx.DeriveSeed(seed, saltContinentBase),
			p.Frequency, p.Lacunarity, continentBaseOctaves),
		carver: noise.NewFractal(mathx.DeriveSeed(seed, saltContinentCarver),
			p.Frequency*continentCarverFreqFactor, p.Lacunarity, continentCarverOctaves),
		curve: mathx.NewCurve(pts...),
		warp: noise.NewTurbulence(mathx.DeriveSeed(seed, saltContinentWarp),
			p.Frequency*coastWarpFreqFactor, p.Frequency/coastWarpPowerDivisor),
	}
}

// At returns the continentalness at (x, y), clamped to [-1, 1].
func (c *Continent) At(x, y float64) float64 {
	return c.at3(SpherePoint(x, y))
}

// WarpedAt is the coast-warped variant the terrain-type control field reads,
// so terrain bands do not trace the raw continent contours exactly.
func (c *Continent) WarpedAt(x, y float64) float64 {
	px, py, pz := SpherePoint(x, y)
	return c.at3(c.warp.Warp3(px, py, pz))
}

func (c *Continent) at3(px, py, pz float64) float64 {
	// Shelf curve shapes the raw fractal into basin/shelf/coast bands, then
	// a second fractal chews fjord-like edges off wherever it dips below.
	shaped := c.curve.Apply(c.base.At3(px, py, pz))
	chewed := c.carver.At3(px, py, pz)*0.375 + 0.625
	return mathx.Clamp(math.Min(shaped, chewed), -1, 1)
}
