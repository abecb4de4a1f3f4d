package world

import (
	"math"

	"github.com/g10z3r/wofc/internal/mathx"
	"github.com/g10z3r/wofc/internal/noise"
	"github.com/g10z3r/wofc/pkg/world/terrain"
)

// Climate field seed salts, disjoint from the terrain layer salts.
const (
	saltTemperature uint32 = 100
	saltMoisture    uint32 = 101
)

// Climate noise shape: continental-scale variation, a few octaves.
const (
	climateFreqFactor = 3.0
	climateOctaves    = 4
)

// Climate is the deterministic climate sample at a coordinate.
type Climate struct {
	Temperature float64 `json:"temperature"` // 0 polar .. 1 equatorial-hot
	Moisture    float64 `json:"moisture"`    // 0 arid .. 1 saturated
}

// climateFields hold the two noise fields behind ClimateAt.
type climateFields struct {
	temperature *noise.Fractal
	moisture    *noise.Fractal

	// Sea surface in elevation units, not the continentalness threshold.
	seaElevation float64
}

func newClimateFields(cfg Config) *climateFields {
	return &climateFields{
		temperature: noise.NewFractal(mathx.DeriveSeed(cfg.Seed, saltTemperature),
			cfg.ContinentFrequency*climateFreqFactor, cfg.ContinentLacunarity, climateOctaves),
		moisture: noise.NewFractal(mathx.DeriveSeed(cfg.Seed, saltMoisture),
			cfg.ContinentFrequency*climateFreqFactor, cfg.ContinentLacunarity, climateOctaves),
		seaElevation: cfg.SeaLevel * cfg.ContinentHeightScale,
	}
}

// ClimateAt returns the climate at (x, y). Temperature combines the latitude
// band with noise variation and altitude cooling; moisture is an independent
// field pulled slightly toward the equator. Non-finite coordinates yield NaN
// in both fields.
func (w *World) ClimateAt(x, y float64) Climate {
	if !finite(x) || !finite(y) {
		return Climate{Temperature: math.NaN(), Moisture: math.NaN()}
	}

	px, py, pz := terrain.SpherePoint(x, y)
	tn := (w.climate.temperature.At3(px, py, pz) + 1) / 2
	mn := (w.climate.moisture.At3(px, py, pz) + 1) / 2
	band := math.Abs(math.Cos(y)) // 1 at the equator, 0 at the poles

	// Altitude cooling keyed off elevation above the sea surface.
	lapse := mathx.Clamp01((w.ElevationAt(x, y) - w.climate.seaElevation) * 2)

	return Climate{
		Temperature: mathx.Clamp01(band*0.55 + tn*0.35 - lapse*0.3 + 0.1),
		Moisture:    mathx.Clamp01(mn*0.75 + band*0.25),
	}
}
