package terrain

import (
	"fmt"

	"github.com/voxelforge/worldgen/services/seed"
)

// palette holds the resolved voxel states for every block the painter and
// decorator place. Resolution happens once at generator construction.
type palette struct {
	air          uint16
	stone        uint16
	grassBlock   uint16
	dirt         uint16
	bedrock      uint16
	water        uint16
	sand         uint16
	sandstone    uint16
	coalOre      uint16
	ironOre      uint16
	redstoneOre  uint16
	diamondOre   uint16
	oakLog       uint16
	oakLeaves    uint16
	shortGrass   uint16
	deadBush     uint16
	dandelion    uint16
	cactus       uint16
	sugarCane    uint16
	tallGrass    uint16
	tallGrassTop uint16
}

func resolvePalette(resolver BlockResolver, version string) (palette, error) {
	var p palette
	for _, e := range []struct {
		name string
		dst  *uint16
	}{
		{"air", &p.air},
		{"stone", &p.stone},
		{"grass_block", &p.grassBlock},
		{"dirt", &p.dirt},
		{"bedrock", &p.bedrock},
		{"water", &p.water},
		{"sand", &p.sand},
		{"sandstone", &p.sandstone},
		{"coal_ore", &p.coalOre},
		{"iron_ore", &p.ironOre},
		{"redstone_ore", &p.redstoneOre},
		{"diamond_ore", &p.diamondOre},
		{"oak_log", &p.oakLog},
		{"oak_leaves", &p.oakLeaves},
		{"short_grass", &p.shortGrass},
		{"dead_bush", &p.deadBush},
		{"dandelion", &p.dandelion},
		{"cactus", &p.cactus},
		{"sugar_cane", &p.sugarCane},
		{"tall_grass", &p.tallGrass},
		{"tall_grass_top", &p.tallGrassTop},
	} {
		b, err := resolver.Resolve(e.name, version)
		if err != nil {
			return palette{}, err
		}
		*e.dst = b.State()
	}
	return p, nil
}

// strata describes the per-biome material bands between bedrock and surface.
type strata struct {
	lower   uint16
	upper   uint16
	surface uint16
}

func (g *Generator) strataFor(b Biome) (strata, error) {
	p := g.blocks
	switch b {
	case BiomePlains, BiomeForest:
		return strata{lower: p.dirt, upper: p.dirt, surface: p.grassBlock}, nil
	case BiomeDesert:
		return strata{lower: p.sandstone, upper: p.sand, surface: p.sand}, nil
	case BiomeMountains:
		return strata{lower: p.stone, upper: p.stone, surface: p.stone}, nil
	case BiomeOcean, BiomeRiver:
		return strata{lower: p.dirt, upper: p.sand, surface: p.sand}, nil
	default:
		return strata{}, fmt.Errorf("no strata table for biome %d", b)
	}
}

// oreRule substitutes an ore for stone when a voxel's draw falls inside its
// slice of the cumulative odds, subject to a depth gate.
type oreRule struct {
	state uint16
	odds  float64
	// maxY is exclusive and only consulted when anyDepth is false.
	maxY     int
	anyDepth bool
}

func (g *Generator) oreRules() []oreRule {
	p := g.blocks
	return []oreRule{
		{state: p.coalOre, odds: 0.020, anyDepth: true},
		{state: p.ironOre, odds: 0.015, maxY: 40},
		{state: p.redstoneOre, odds: 0.010, maxY: 24},
		{state: p.diamondOre, odds: 0.005, maxY: 12},
	}
}

// paintColumn writes one column's strata bottom-up: bedrock to the bedrock
// ceiling, stone with probabilistic ore substitution up to the lower soil
// boundary, the two soil bands, the surface block, then water up to the
// waterline where the surface sits below it.
//
// Every stone voxel consumes exactly one draw from the chunk stream, so the
// painter's y traversal order is part of the seed contract. Inverted band
// boundaries simply produce empty bands; they are not an error.
func (g *Generator) paintColumn(ch ChunkHandle, x, z int, p ColumnProfile, st *seed.Stream) error {
	bands, err := g.strataFor(p.Biome)
	if err != nil {
		return err
	}

	rules := g.oreRules()
	minY := ch.MinY()
	top := minY + ch.Height() - 1

	for y := minY; y <= top; y++ {
		switch {
		// Water is filled last, so it wins over a bedrock ceiling poking
		// above the surface when the noise bands invert.
		case y > p.Surface && y <= p.Waterline:
			ch.SetBlock(x, y, z, g.blocks.water)
		case y <= p.Bedrock:
			ch.SetBlock(x, y, z, g.blocks.bedrock)
		case y <= p.SoilLower:
			ch.SetBlock(x, y, z, g.oreOrStone(y, rules, st))
		case y <= p.SoilUpper:
			ch.SetBlock(x, y, z, bands.lower)
		case y < p.Surface:
			ch.SetBlock(x, y, z, bands.upper)
		case y == p.Surface:
			ch.SetBlock(x, y, z, bands.surface)
		}
	}
	return nil
}

// oreOrStone draws once and walks the cumulative odds in rule order. Depth
// gates remove a rule from consideration without shifting the slices of the
// rules before it.
func (g *Generator) oreOrStone(y int, rules []oreRule, st *seed.Stream) uint16 {
	draw := st.Float64()
	cum := 0.0
	for _, r := range rules {
		cum += r.odds
		if draw < cum {
			if r.anyDepth || y < r.maxY {
				return r.state
			}
			return g.blocks.stone
		}
	}
	return g.blocks.stone
}
