package terrain

import (
	"math"

	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
)

// BadlandParams configure the badland layer.
type BadlandParams struct {
	Frequency  float64
	Lacunarity float64
	Twist      float64
}

// Badland produces eroded desert terrain: a low dune field overridden by
// terraced mesa cliffs wherever the cliff noise rises. Unlike the other
// detail layers its output is an absolute elevation; the selector swaps it
// in for the blended base rather than adding it on top.
type Badland struct {
	sand    *noise.Ridged
	cliffs  *noise.Fractal
	curve   *mathx.Curve
	terrace *mathx.Terrace
	twist   *noise.Turbulence
}

// NewBadland builds the badland layer from a root seed.
func NewBadland(seed uint32, p BadlandParams) *Badland {
	return &Badland{
		sand: noise.NewRidged(mathx.DeriveSeed(seed, saltBadlandSand),
			p.Frequency*badlandSandFreqFactor, p.Lacunarity, badlandSandOctaves),
		cliffs: noise.NewFractal(mathx.DeriveSeed(seed, saltBadlandCliffs),
			p.Frequency*badlandCliffFreqFactor, p.Lacunarity, badlandCliffOctaves),
		curve:   mathx.NewCurve(badlandCliffPoints...),
		terrace: mathx.NewTerrace(badlandTerracePoints...),
		twist: noise.NewTurbulence(mathx.DeriveSeed(seed, saltBadlandTwist),
			p.Frequency*badlandTwistFreq, p.Frequency/badlandTwistPowerDiv*p.Twist),
	}
}

// At returns the badland elevation at (x, y), in [BadlandMin, BadlandMax].
func (b *Badland) At(x, y float64) float64 {
	px, py, pz := SpherePoint(x, y)
	px, py, pz = b.twist.Warp3(px, py, pz)

	sand := b.sand.At3(px, py, pz)*0.25 - 0.75
	cliffs := b.terrace.Apply(b.curve.Apply(b.cliffs.At3(px, py, pz)))
	e := math.Max(sand, cliffs)

	return mathx.Clamp(e, -1, 1)*badlandScale + badlandBias
}

// Badland layer output band.
const (
	BadlandMin = -1*badlandScale + badlandBias // 0
	BadlandMax = 1*badlandScale + badlandBias  // 0.125
)
