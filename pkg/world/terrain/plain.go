package terrain

import (
	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
)

// PlainParams configure the plain layer.
type PlainParams struct {
	Frequency  float64
	Lacunarity float64
}

// Plain produces low rolling relief: two billow fields multiplied together,
// which flattens most of the surface and leaves soft swells. Plains carry no
// twist stage.
type Plain struct {
	first  *noise.Billow
	second *noise.Billow
}

// NewPlain builds the plain layer from a root seed.
func NewPlain(seed uint32, p PlainParams) *Plain {
	return &Plain{
		first: noise.NewBillow(mathx.DeriveSeed(seed, saltPlainFirst),
			p.Frequency*plainFirstFreqFactor, p.Lacunarity, plainOctaves),
		second: noise.NewBillow(mathx.DeriveSeed(seed, saltPlainSecond),
			p.Frequency*plainSecondFreqFactor, p.Lacunarity, plainOctaves),
	}
}

// At returns the plain elevation contribution at (x, y), in [PlainMin, PlainMax].
func (p *Plain) At(x, y float64) float64 {
	px, py, pz := SpherePoint(x, y)
	u := p.first.At3(px, py, pz)*0.5 + 0.5
	v := p.second.At3(px, py, pz)*0.5 + 0.5
	e := u*v*2 - 1
	return mathx.Clamp(e, -1, 1)*plainScale + plainBias
}

// Plain layer output band.
const (
	PlainMin = -1*plainScale + plainBias // 0
	PlainMax = 1*plainScale + plainBias  // 0.015625
)
