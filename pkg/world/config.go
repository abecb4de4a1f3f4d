package world

import "fmt"

// Config holds the seed and every scalar that shapes the planet. It is a
// plain value: copy it, tweak fields, hand it to a Builder. All knobs are
// JSON-tagged so a config can ride along with exported snapshots.
type Config struct {
	// Seed is the sole entropy source. Two worlds with equal Config produce
	// bit-identical terrain.
	Seed uint32 `json:"seed"`

	// ContinentFrequency is measured in cycles per radian of planetary arc;
	// lacunarities set the frequency step between noise octaves.
	ContinentFrequency  float64 `json:"continent_frequency"`
	ContinentLacunarity float64 `json:"continent_lacunarity"`
	MountainLacunarity  float64 `json:"mountain_lacunarity"`
	HillsLacunarity     float64 `json:"hills_lacunarity"`
	PlainsLacunarity    float64 `json:"plains_lacunarity"`
	BadlandsLacunarity  float64 `json:"badlands_lacunarity"`

	// Twists bend each layer's sampling space so ranges meander.
	MountainsTwist float64 `json:"mountains_twist"`
	HillsTwist     float64 `json:"hills_twist"`
	BadlandsTwist  float64 `json:"badlands_twist"`

	// SeaLevel and ShelfLevel are thresholds on the continentalness signal;
	// the band between them is the continental shelf.
	SeaLevel   float64 `json:"sea_level"`
	ShelfLevel float64 `json:"shelf_level"`

	// Amounts are coverage fractions of the land surface, in [0, 1].
	MountainsAmount float64 `json:"mountains_amount"`
	HillsAmount     float64 `json:"hills_amount"`
	BadlandsAmount  float64 `json:"badlands_amount"`

	// TerrainOffset steers where rugged terrain may appear: below 1 it is
	// confined to high ground, above 2 it can show up anywhere.
	TerrainOffset float64 `json:"terrain_offset"`

	// MountainGlaciation sharpens peaks above the glacier line.
	MountainGlaciation float64 `json:"mountain_glaciation"`

	// ContinentHeightScale converts continentalness into base elevation.
	ContinentHeightScale float64 `json:"continent_height_scale"`

	// RiverDepth caps how far the river carver may cut.
	RiverDepth float64 `json:"river_depth"`
}

// DefaultConfig returns an Earth-like parameter set.
func DefaultConfig() Config {
	const seaLevel = 0.0
	return Config{
		ContinentFrequency:   1.0,
		ContinentLacunarity:  2.208984375,
		MountainLacunarity:   2.142578125,
		HillsLacunarity:      2.162109375,
		PlainsLacunarity:     2.314453125,
		BadlandsLacunarity:   2.212890625,
		MountainsTwist:       1.0,
		HillsTwist:           1.0,
		BadlandsTwist:        1.0,
		SeaLevel:             seaLevel,
		ShelfLevel:           -0.375,
		MountainsAmount:      0.48,
		HillsAmount:          0.24,
		BadlandsAmount:       0.3125,
		TerrainOffset:        1.0,
		MountainGlaciation:   0.375,
		ContinentHeightScale: (1 - seaLevel) / 4,
		RiverDepth:           0.0234375,
	}
}

// ConfigError reports a Config that violates a build invariant.
type ConfigError struct {
	Invariant string // short name of the violated rule
	Detail    string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s: %s", e.Invariant, e.Detail)
}

// Validate checks every build invariant and returns a *ConfigError naming
// the first violation. Checks are written so that NaN parameters fail them.
func (c Config) Validate() error {
	if !(c.ShelfLevel < c.SeaLevel) {
		return &ConfigError{
			Invariant: "shelf below sea",
			Detail:    fmt.Sprintf("shelf_level %v must be below sea_level %v", c.ShelfLevel, c.SeaLevel),
		}
	}
	if !(c.SeaLevel >= -1 && c.SeaLevel <= 1) {
		return &ConfigError{
			Invariant: "sea level in range",
			Detail:    fmt.Sprintf("sea_level %v outside [-1, 1]", c.SeaLevel),
		}
	}
	if !(c.ShelfLevel >= -1 && c.ShelfLevel <= 1) {
		return &ConfigError{
			Invariant: "shelf level in range",
			Detail:    fmt.Sprintf("shelf_level %v outside [-1, 1]", c.ShelfLevel),
		}
	}

	amounts := []struct {
		name string
		v    float64
	}{
		{"mountains_amount", c.MountainsAmount},
		{"hills_amount", c.HillsAmount},
		{"badlands_amount", c.BadlandsAmount},
	}
	for _, a := range amounts {
		if !(a.v >= 0 && a.v <= 1) {
			return &ConfigError{
				Invariant: "amount in range",
				Detail:    fmt.Sprintf("%s %v outside [0, 1]", a.name, a.v),
			}
		}
	}

	if !(c.HillsAmount < c.MountainsAmount) {
		return &ConfigError{
			Invariant: "hills below mountains",
			Detail: fmt.Sprintf("hills_amount %v must be below mountains_amount %v",
				c.HillsAmount, c.MountainsAmount),
		}
	}

	positives := []struct {
		name string
		v    float64
	}{
		{"continent_frequency", c.ContinentFrequency},
		{"continent_lacunarity", c.ContinentLacunarity},
		{"mountain_lacunarity", c.MountainLacunarity},
		{"hills_lacunarity", c.HillsLacunarity},
		{"plains_lacunarity", c.PlainsLacunarity},
		{"badlands_lacunarity", c.BadlandsLacunarity},
		{"terrain_offset", c.TerrainOffset},
	}
	for _, p := range positives {
		if !(p.v > 0) {
			return &ConfigError{
				Invariant: "positive parameter",
				Detail:    fmt.Sprintf("%s %v must be positive", p.name, p.v),
			}
		}
	}

	nonNegatives := []struct {
		name string
		v    float64
	}{
		{"mountain_glaciation", c.MountainGlaciation},
		{"continent_height_scale", c.ContinentHeightScale},
		{"river_depth", c.RiverDepth},
	}
	for _, p := range nonNegatives {
		if !(p.v >= 0) {
			return &ConfigError{
				Invariant: "non-negative parameter",
				Detail:    fmt.Sprintf("%s %v must not be negative", p.name, p.v),
			}
		}
	}

	return nil
}
