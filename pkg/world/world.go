// Package world synthesizes deterministic planetary terrain. A World is a
// pure elevation function over angular coordinates, built once from a seed
// and a Config; it holds no mutable state, so one instance can serve any
// number of goroutines without locking.
// See design doc Section 4.
package world

import (
	"math"

	"github.com/g10z3r/wofc/pkg/world/terrain"
)

// World is an immutable, seeded planet. Construct via Builder.Build.
type World struct {
	cfg       Config
	continent *terrain.Continent
	selector  *terrain.Selector
	carver    *terrain.Carver
	climate   *climateFields
}

// Config returns the effective configuration, seed included.
func (w *World) Config() Config {
	return w.cfg
}

// Seed returns the world seed.
func (w *World) Seed() uint32 {
	return w.cfg.Seed
}

// ElevationAt returns the elevation at (x, y) in planetary height units,
// approximately [-1, 1]. x is longitude and y latitude, both in radians;
// values outside the canonical ranges wrap naturally around the sphere.
// Non-finite coordinates yield NaN.
func (w *World) ElevationAt(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return math.NaN()
	}
	return w.carver.At(x, y)
}

// ContinentAt returns the raw continentalness signal at (x, y), the value
// SeaLevel and ShelfLevel threshold against. Non-finite coordinates yield
// NaN.
func (w *World) ContinentAt(x, y float64) float64 {
	if !finite(x) || !finite(y) {
		return math.NaN()
	}
	return w.continent.At(x, y)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Terrain classifies a coordinate into a broad surface type.
type Terrain uint8

const (
	TerrainOcean Terrain = iota
	TerrainShelf
	TerrainPlains
	TerrainForest
	TerrainDesert
	TerrainTundra
	TerrainHills
	TerrainMountains
	TerrainGlacier
	TerrainBadlands
)

// String returns a human-readable terrain name.
func (t Terrain) String() string {
	switch t {
	case TerrainOcean:
		return "Ocean"
	case TerrainShelf:
		return "Shelf"
	case TerrainPlains:
		return "Plains"
	case TerrainForest:
		return "Forest"
	case TerrainDesert:
		return "Desert"
	case TerrainTundra:
		return "Tundra"
	case TerrainHills:
		return "Hills"
	case TerrainMountains:
		return "Mountains"
	case TerrainGlacier:
		return "Glacier"
	case TerrainBadlands:
		return "Badlands"
	default:
		return "Unknown"
	}
}

// TerrainAt derives the terrain type at (x, y) from the blend weights and
// the climate fields. Non-finite coordinates classify as Ocean.
func (w *World) TerrainAt(x, y float64) Terrain {
	if !finite(x) || !finite(y) {
		return TerrainOcean
	}

	c := w.continent.At(x, y)
	if c < w.cfg.ShelfLevel {
		return TerrainOcean
	}
	if c < w.cfg.SeaLevel {
		return TerrainShelf
	}

	weights := w.selector.WeightsAt(x, y)
	cl := w.ClimateAt(x, y)

	if weights.Badland > 0.5 {
		return TerrainBadlands
	}
	if weights.Mountain > 0.5 {
		if cl.Temperature < 0.25 {
			return TerrainGlacier
		}
		return TerrainMountains
	}
	if weights.Hill > 0.5 {
		return TerrainHills
	}

	switch {
	case cl.Temperature < 0.25:
		return TerrainTundra
	case cl.Moisture < 0.25 && cl.Temperature > 0.5:
		return TerrainDesert
	case cl.Moisture > 0.55:
		return TerrainForest
	default:
		return TerrainPlains
	}
}
