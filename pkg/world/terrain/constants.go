// Package terrain implements the layered elevation pipeline: five terrain
// layers (continent, mountain, hill, plain, badland), the terrain-type
// control field, the selector that blends them, and the river carver.
// Every component is a pure function of coordinates once built, so a single
// instance serves any number of goroutines.
// See design doc Section 3.3.
package terrain

import "github.com/g10z3r/wofc/internal/mathx"

// Per-consumer seed salts. Distinct salts give every noise source its own
// phase from one root seed, so layers stay decorrelated even when two root
// seeds are adjacent.
const (
	saltContinentBase uint32 = iota + 1
	saltContinentCarver
	saltContinentWarp
	saltControlRough
	saltMountainBase
	saltMountainValleys
	saltMountainLow
	saltMountainHigh
	saltMountainCoarseTwist
	saltMountainFineTwist
	saltHillMasses
	saltHillValleys
	saltHillCoarseTwist
	saltHillFineTwist
	saltPlainFirst
	saltPlainSecond
	saltBadlandSand
	saltBadlandCliffs
	saltBadlandTwist
)

// Octave counts per noise stage. The continent runs deep stacks because it
// is both the base elevation and the control signal everything else keys
// off; detail layers get by with fewer.
const (
	continentBaseOctaves   = 14
	continentCarverOctaves = 11
	controlRoughOctaves    = 3
	mountainBaseOctaves    = 4
	mountainValleyOctaves  = 1
	mountainLowOctaves     = 8
	mountainHighOctaves    = 3
	hillMassOctaves        = 6
	hillValleyOctaves      = 1
	plainOctaves           = 4
	badlandSandOctaves     = 3
	badlandCliffOctaves    = 3
)

// Frequency factors, relative to the configured continent frequency.
// The planet is an angular domain (radians), so a factor of ~1700 puts
// individual mountain ridges a few kilometers apart on an Earth-sized body.
const (
	continentCarverFreqFactor = 4.34375
	coastWarpFreqFactor       = 15.25
	controlRoughFreqFactor    = 18.125

	mountainBaseFreqFactor   = 1723.5
	mountainValleyFreqFactor = 367.0
	mountainLowFreqFactor    = 1381.0
	mountainHighFreqFactor   = 2371.0

	hillMassFreqFactor   = 1663.0
	hillValleyFreqFactor = 367.5

	plainFirstFreqFactor  = 1097.5
	plainSecondFreqFactor = 1319.5

	badlandSandFreqFactor  = 6163.5
	badlandCliffFreqFactor = 902.25
)

// Twist turbulence shape: frequency factors and power divisors for the
// coarse and fine warp stages. Powers divide the continent frequency so
// displacement scales with the feature size it distorts.
const (
	coastWarpPowerDivisor = 113.75

	mountainCoarseTwistFreq     = 1337.0
	mountainCoarseTwistPowerDiv = 6730.0
	mountainFineTwistFreq       = 21221.0
	mountainFineTwistPowerDiv   = 120157.0

	hillCoarseTwistFreq     = 1531.0
	hillCoarseTwistPowerDiv = 16921.0
	hillFineTwistFreq       = 21617.0
	hillFineTwistPowerDiv   = 117529.0

	badlandTwistFreq     = 19237.0
	badlandTwistPowerDiv = 80571.0
)

// Vertical bands the detail layers occupy after scaling. Mountains own the
// top quarter of the land range; plains barely ripple.
const (
	mountainScale = 0.125
	mountainBias  = 0.125
	hillScale     = 0.0625
	hillBias      = 0.0625
	plainScale    = 0.0078125
	plainBias     = 0.0078125
	badlandScale  = 0.0625
	badlandBias   = 0.0625
)

// glacierLine is the pre-scale elevation above which glaciation sharpening
// engages.
const glacierLine = 0.25

// continentShelfPoints shape raw continent noise into deep basins, a flat
// continental shelf just below sea level, and a steep coastal rise. Inputs
// and outputs both shift by the configured sea level at construction.
var continentShelfPoints = []mathx.CurvePoint{
	{In: -2.0000, Out: -1.625},
	{In: -1.0000, Out: -1.375},
	{In: 0.0000, Out: -0.375},
	{In: 0.0625, Out: 0.125},
	{In: 0.1250, Out: 0.250},
	{In: 0.2500, Out: 1.000},
	{In: 0.5000, Out: 0.250},
	{In: 0.7500, Out: 0.250},
	{In: 1.0000, Out: 0.500},
	{In: 2.0000, Out: 0.500},
}

// badlandCliffPoints squash low cliff noise flat and snap the upper band
// toward the mesa tops.
var badlandCliffPoints = []mathx.CurvePoint{
	{In: -2.0000, Out: -2.0000},
	{In: -1.0000, Out: -1.2500},
	{In: 0.0000, Out: -0.7500},
	{In: 0.5000, Out: -0.2500},
	{In: 0.6250, Out: 0.8750},
	{In: 0.7500, Out: 1.0000},
	{In: 2.0000, Out: 1.2500},
}

// badlandTerracePoints step the cliff profile into stacked benches.
var badlandTerracePoints = []float64{-1, -0.875, -0.75, -0.5, 0, 1}
