package world

import (
	"github.com/g10z3r/wofc/internal/entropy"
	"github.com/g10z3r/wofc/pkg/world/terrain"
)

// Builder assembles a World from a Config. The zero value is unusable; start
// from NewBuilder, which seeds randomly so every fresh run gets a different
// planet until a seed is pinned.
type Builder struct {
	cfg Config
}

// NewBuilder returns a Builder carrying DefaultConfig and a random seed.
func NewBuilder() *Builder {
	cfg := DefaultConfig()
	cfg.Seed = entropy.Uint32()
	return &Builder{cfg: cfg}
}

// SetSeed pins the seed and returns the builder.
func (b *Builder) SetSeed(seed uint32) *Builder {
	b.cfg.Seed = seed
	return b
}

// SetConfig replaces the whole configuration, seed included, and returns the
// builder.
func (b *Builder) SetConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// Config returns the configuration the next Build would use.
func (b *Builder) Config() Config {
	return b.cfg
}

// Build validates the configuration and constructs the World. All noise
// sources and layer wiring happen here, once; the returned World never
// re-derives state per query. A violated invariant comes back as a
// *ConfigError.
func (b *Builder) Build() (*World, error) {
	if err := b.cfg.Validate(); err != nil {
		return nil, err
	}

	cfg := b.cfg

	cont := terrain.NewContinent(cfg.Seed, terrain.ContinentParams{
		Frequency:  cfg.ContinentFrequency,
		Lacunarity: cfg.ContinentLacunarity,
		SeaLevel:   cfg.SeaLevel,
	})
	ctrl := terrain.NewControl(cfg.Seed, terrain.ControlParams{
		Frequency:     cfg.ContinentFrequency,
		Lacunarity:    cfg.ContinentLacunarity,
		SeaLevel:      cfg.SeaLevel,
		TerrainOffset: cfg.TerrainOffset,
	}, cont)
	mountain := terrain.NewMountain(cfg.Seed, terrain.MountainParams{
		Frequency:  cfg.ContinentFrequency,
		Lacunarity: cfg.MountainLacunarity,
		Twist:      cfg.MountainsTwist,
		Glaciation: cfg.MountainGlaciation,
	})
	hill := terrain.NewHill(cfg.Seed, terrain.HillParams{
		Frequency:  cfg.ContinentFrequency,
		Lacunarity: cfg.HillsLacunarity,
		Twist:      cfg.HillsTwist,
	})
	plain := terrain.NewPlain(cfg.Seed, terrain.PlainParams{
		Frequency:  cfg.ContinentFrequency,
		Lacunarity: cfg.PlainsLacunarity,
	})
	badland := terrain.NewBadland(cfg.Seed, terrain.BadlandParams{
		Frequency:  cfg.ContinentFrequency,
		Lacunarity: cfg.BadlandsLacunarity,
		Twist:      cfg.BadlandsTwist,
	})

	selector := terrain.NewSelector(cont, ctrl, mountain, hill, plain, badland,
		terrain.SelectorParams{
			SeaLevel:             cfg.SeaLevel,
			ShelfLevel:           cfg.ShelfLevel,
			MountainsAmount:      cfg.MountainsAmount,
			HillsAmount:          cfg.HillsAmount,
			BadlandsAmount:       cfg.BadlandsAmount,
			ContinentHeightScale: cfg.ContinentHeightScale,
		})
	carver := terrain.NewCarver(selector, cont, terrain.CarverParams{
		SeaLevel:             cfg.SeaLevel,
		ShelfLevel:           cfg.ShelfLevel,
		RiverDepth:           cfg.RiverDepth,
		ContinentHeightScale: cfg.ContinentHeightScale,
	})

	return &World{
		cfg:       cfg,
		continent: cont,
		selector:  selector,
		carver:    carver,
		climate:   newClimateFields(cfg),
	}, nil
}
