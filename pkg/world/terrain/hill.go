package terrain

import (
	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
)

// HillParams configure the hill layer.
type HillParams struct {
	Frequency  float64
	Lacunarity float64
	Twist      float64
}

// Hill produces rolling hill terrain: billowed masses cut by shallow river
// valleys, twisted like the mountains but at lower amplitude.
type Hill struct {
	masses  *noise.Billow
	valleys *noise.Ridged
	coarse  *noise.Turbulence
	fine    *noise.Turbulence
}

// NewHill builds the hill layer from a root seed.
func NewHill(seed uint32, p HillParams) *Hill {
	return &Hill{
		masses: noise.NewBillow(mathx.DeriveSeed(seed, saltHillMasses),
			p.Frequency*hillMassFreqFactor, p.Lacunarity, hillMassOctaves),
		valleys: noise.NewRidged(mathx.DeriveSeed(seed, saltHillValleys),
			p.Frequency*hillValleyFreqFactor, p.Lacunarity, hillValleyOctaves),
		coarse: noise.NewTurbulence(mathx.DeriveSeed(seed, saltHillCoarseTwist),
			p.Frequency*hillCoarseTwistFreq, p.Frequency/hillCoarseTwistPowerDiv*p.Twist),
		fine: noise.NewTurbulence(mathx.DeriveSeed(seed, saltHillFineTwist),
			p.Frequency*hillFineTwistFreq, p.Frequency/hillFineTwistPowerDiv*p.Twist),
	}
}

// At returns the hill elevation contribution at (x, y), in [HillMin, HillMax].
func (h *Hill) At(x, y float64) float64 {
	px, py, pz := SpherePoint(x, y)
	px, py, pz = h.coarse.Warp3(px, py, pz)
	px, py, pz = h.fine.Warp3(px, py, pz)

	masses := h.masses.At3(px, py, pz)*0.5 + 0.5
	valley := mathx.Clamp01((h.valleys.At3(px, py, pz)*-2 - 0.5 + 1) / 2)
	e := mathx.Lerp(-1, masses, valley)

	return mathx.Clamp(e, -1, 1)*hillScale + hillBias
}

// Hill layer output band.
const (
	HillMin = -1*hillScale + hillBias // 0
	HillMax = 1*hillScale + hillBias  // 0.125
)
