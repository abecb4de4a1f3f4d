package terrain

import (
	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
)

// ControlParams configure the terrain-type control field.
type ControlParams struct {
	Frequency     float64
	Lacunarity    float64
	SeaLevel      float64
	TerrainOffset float64
}

// Control is the field the selector thresholds to decide where mountains,
// hills, plains, and badlands go. It mixes an independent roughness noise
// with warped continent height: small TerrainOffset confines rugged terrain
// to high ground, large TerrainOffset lets it appear anywhere.
type Control struct {
	rough     *noise.Fractal
	continent *Continent
	seaLevel  float64
	seaSpan   float64
	offset    float64
}

// NewControl builds the control field over an existing continent layer.
func NewControl(seed uint32, p ControlParams, continent *Continent) *Control {
	span := 1 - p.SeaLevel
	if span < 1e-9 {
		// Sea level at the very top of the range: an all-ocean planet.
		span = 1e-9
	}
	return &Control{
		rough: noise.NewFractal(mathx.DeriveSeed(seed, saltControlRough),
			p.Frequency*controlRoughFreqFactor, p.Lacunarity, controlRoughOctaves),
		continent: continent,
		seaLevel:  p.SeaLevel,
		seaSpan:   span,
		offset:    p.TerrainOffset,
	}
}

// At returns the control value at (x, y), in [0, 1].
func (c *Control) At(x, y float64) float64 {
	px, py, pz := SpherePoint(x, y)
	rough := (c.rough.At3(px, py, pz) + 1) / 2
	elev := (c.continent.at3(c.continent.warp.Warp3(px, py, pz)) - c.seaLevel) / c.seaSpan
	return mathx.Clamp01((rough + elev/c.offset) / (1 + 1/c.offset))
}
