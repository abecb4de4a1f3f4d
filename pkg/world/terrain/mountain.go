package terrain

import (
	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
)

// MountainParams configure the mountain layer.
type MountainParams struct {
	Frequency  float64 // continent base frequency; ridge factors apply on top
	Lacunarity float64
	Twist      float64
	Glaciation float64
}

// Mountain produces ridged mountain terrain: a main ridge skeleton cut by
// river valleys, low- and high-altitude detail, glaciation sharpening above
// the glacier line, and two twist stages that bend the ranges.
type Mountain struct {
	base       *noise.Ridged
	valleys    *noise.Ridged
	low        *noise.Ridged
	high       *noise.Ridged
	coarse     *noise.Turbulence
	fine       *noise.Turbulence
	glaciation float64
}

// NewMountain builds the mountain layer from a root seed.
func NewMountain(seed uint32, p MountainParams) *Mountain {
	return &Mountain{
		base: noise.NewRidged(mathx.DeriveSeed(seed, saltMountainBase),
			p.Frequency*mountainBaseFreqFactor, p.Lacunarity, mountainBaseOctaves),
		valleys: noise.NewRidged(mathx.DeriveSeed(seed, saltMountainValleys),
			p.Frequency*mountainValleyFreqFactor, p.Lacunarity, mountainValleyOctaves),
		low: noise.NewRidged(mathx.DeriveSeed(seed, saltMountainLow),
			p.Frequency*mountainLowFreqFactor, p.Lacunarity, mountainLowOctaves),
		high: noise.NewRidged(mathx.DeriveSeed(seed, saltMountainHigh),
			p.Frequency*mountainHighFreqFactor, p.Lacunarity, mountainHighOctaves),
		coarse: noise.NewTurbulence(mathx.DeriveSeed(seed, saltMountainCoarseTwist),
			p.Frequency*mountainCoarseTwistFreq, p.Frequency/mountainCoarseTwistPowerDiv*p.Twist),
		fine: noise.NewTurbulence(mathx.DeriveSeed(seed, saltMountainFineTwist),
			p.Frequency*mountainFineTwistFreq, p.Frequency/mountainFineTwistPowerDiv*p.Twist),
		glaciation: p.Glaciation,
	}
}

// At returns the mountain elevation contribution at (x, y), in
// [MountainMin, MountainMax].
func (m *Mountain) At(x, y float64) float64 {
	px, py, pz := SpherePoint(x, y)
	px, py, pz = m.coarse.Warp3(px, py, pz)
	px, py, pz = m.fine.Warp3(px, py, pz)

	// Ridge skeleton with deep valley cuts along the one-octave ridge lines.
	ridges := m.base.At3(px, py, pz)*0.5 + 0.375
	valley := mathx.Clamp01((m.valleys.At3(px, py, pz)*-2 - 0.5 + 1) / 2)
	e := mathx.Lerp(-1, ridges, valley)

	// Fine detail: subdued near the valley floors, strong on the peaks.
	hiMask := mathx.SmoothStep(-0.5, 0.5, e)
	e += mathx.Lerp(0.03125*m.low.At3(px, py, pz), 0.25*m.high.At3(px, py, pz), hiMask)

	e = m.glaciate(e)
	return mathx.Clamp(e, -1, 1)*mountainScale + mountainBias
}

// glaciate sharpens peaks above the glacier line. The smooth-step gate keeps
// the transition continuous and leaves everything below the line untouched.
func (m *Mountain) glaciate(e float64) float64 {
	s := mathx.SmoothStep(glacierLine, 1, e)
	return e + m.glaciation*s*(e-glacierLine)
}

// Mountain layer output band.
const (
	MountainMin = -1*mountainScale + mountainBias // 0
	MountainMax = 1*mountainScale + mountainBias  // 0.25
)
