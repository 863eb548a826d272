package terrain

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voxelforge/worldgen/internal/logging"
	"github.com/voxelforge/worldgen/services/chunk"
	"github.com/voxelforge/worldgen/services/noise"
	"github.com/voxelforge/worldgen/services/seed"
)

// Channel labels for the smooth noise fields. Part of the seed contract:
// renaming a label regenerates that channel's parameters.
const (
	channelSurface   = "surface"
	channelBedrock   = "bedrock"
	channelSoilUpper = "soil-upper"
	channelSoilLower = "soil-lower"
	channelBiome     = "biome"
)

// Generator synthesizes terrain chunks deterministically from a world seed.
// All noise channels are derived once at construction and shared across
// chunk calls; the only mutable state is the cellular field's point cache,
// which is safe for concurrent use.
type Generator struct {
	worldSeed string
	cfg       Config

	surface   *noise.SmoothField
	bedrock   *noise.SmoothField
	soilUpper *noise.SmoothField
	soilLower *noise.SmoothField
	biomes    *noise.CellularField

	blocks palette
	logger *log.Logger
}

// ColumnProfile is the per-column synthesis record derived from the noise
// channels. It is transient: computed once per column per generation call
// and discarded once the chunk is produced.
type ColumnProfile struct {
	Surface   int
	Bedrock   int
	SoilUpper int
	SoilLower int
	Waterline int
	Biome     Biome
}

// NewGenerator derives all noise channels for the seed and resolves the
// block palette. A block name failing to resolve is a fatal configuration
// error surfaced here rather than mid-generation.
func NewGenerator(worldSeed string, cfg Config, resolver BlockResolver) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("generator config: %w", err)
	}

	blocks, err := resolvePalette(resolver, cfg.BlockVersion)
	if err != nil {
		return nil, fmt.Errorf("resolve block palette: %w", err)
	}

	logger := logging.WithFields("component", "terrain-generator", "seed", worldSeed)
	logger.Debug("Creating new terrain generator",
		"world_height", cfg.WorldHeight, "waterline", cfg.Waterline, "octaves", cfg.OctaveCount)

	return &Generator{
		worldSeed: worldSeed,
		cfg:       cfg,
		surface:   noise.NewSmoothField(worldSeed, channelSurface, cfg.OctaveCount),
		bedrock:   noise.NewSmoothField(worldSeed, channelBedrock, cfg.OctaveCount),
		soilUpper: noise.NewSmoothField(worldSeed, channelSoilUpper, cfg.OctaveCount),
		soilLower: noise.NewSmoothField(worldSeed, channelSoilLower, cfg.OctaveCount),
		biomes:    noise.NewCellularField(worldSeed, channelBiome, cfg.BiomeDensity),
		blocks:    blocks,
		logger:    logger,
	}, nil
}

// Config returns the generation parameters the generator was built with.
func (g *Generator) Config() Config {
	return g.cfg
}

// ProfileAt derives the column profile for the world column (wx, wz).
//
// The five noise samples are taken in a fixed order: surface, bedrock, soil
// upper, soil lower, biome. Each field's query is independent and pure, so
// the order only matters as documentation of the seed contract.
func (g *Generator) ProfileAt(wx, wz int) ColumnProfile {
	sx := float64(wx) * g.cfg.Roughness
	sz := float64(wz) * g.cfg.Roughness

	surface := int(g.surface.Value(sx, sz) * float64(g.cfg.WorldHeight))
	bedrock := int(g.bedrock.Value(sx, sz) * 5)
	soilUpper := surface - 1 - int(g.soilUpper.Value(sx, sz)*3)
	soilLower := soilUpper - 1 - int(g.soilLower.Value(sx, sz)*3)

	idx := g.biomes.PointIndex(wx, wz)
	biome := weightedBiomes[idx%uint64(len(weightedBiomes))]
	if surface-g.cfg.Waterline < 1 {
		biome = BiomeOcean
	}

	return ColumnProfile{
		Surface:   surface,
		Bedrock:   bedrock,
		SoilUpper: soilUpper,
		SoilLower: soilLower,
		Waterline: g.cfg.Waterline,
		Biome:     biome,
	}
}

// GenerateChunk produces the chunk at (chunkX, chunkZ). The output is a pure
// function of (seed, chunk coordinates, config): the per-chunk stream is
// derived from those alone and consumed in a fixed traversal order (x outer,
// z inner, y innermost; strata pass first, then decoration). That traversal
// order is part of the seed contract.
func (g *Generator) GenerateChunk(chunkX, chunkZ int) (*chunk.Chunk, error) {
	logger := g.logger.With("chunk_x", chunkX, "chunk_z", chunkZ)
	logger.Debug("Starting chunk generation")
	start := time.Now()

	ch := chunk.New(g.cfg.MinY, g.cfg.WorldHeight)
	st := seed.Derive(g.worldSeed, "chunk", chunkX, chunkZ)
	half := g.cfg.Size / 2

	// Pass 1: column profiles and base strata.
	var profiles [chunk.Width][chunk.Width]ColumnProfile
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Width; z++ {
			wx := chunkX*chunk.Width + x - half
			wz := chunkZ*chunk.Width + z - half

			p := g.ProfileAt(wx, wz)
			profiles[x][z] = p

			if err := g.paintColumn(ch, x, z, p, st); err != nil {
				return nil, fmt.Errorf("paint column (%d,%d) of chunk (%d,%d): %w",
					x, z, chunkX, chunkZ, err)
			}
		}
	}

	// Pass 2: surface decoration, reading the painted terrain.
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Width; z++ {
			g.decorateColumn(ch, x, z, profiles[x][z], st)
		}
	}

	// Pass 3: sky light above the highest occupied voxel per column.
	lightColumns(ch)

	logger.Debug("Chunk generation completed", "duration", time.Since(start))
	return ch, nil
}

// lightColumns sets full sky light on every voxel above a column's highest
// non-air block.
func lightColumns(ch ChunkHandle) {
	top := ch.MinY() + ch.Height() - 1
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Width; z++ {
			for y := top; y >= ch.MinY(); y-- {
				if ch.BlockTypeAt(x, y, z) != 0 {
					break
				}
				ch.SetSkyLight(x, y, z, chunk.MaxSkyLight)
			}
		}
	}
}
