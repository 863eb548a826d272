package terrain

import (
	"github.com/voxelforge/worldgen/services/block"
	"github.com/voxelforge/worldgen/services/seed"
)

// decoration is one entry of the surface decoration cascade. Candidates are
// mutually exclusive per column: the first one whose draw succeeds and whose
// placement sticks ends the cascade.
type decoration struct {
	name  string
	in    biomeSet
	odds  float64
	place func(g *Generator, ch ChunkHandle, x, z int, p ColumnProfile, st *seed.Stream) bool
}

// decorations is evaluated in order for every column. Each entry consumes
// exactly one draw from the chunk stream whether or not it places, so the
// table's length and order are part of the seed contract. Water flora
// (seagrass, kelp) is absent: those blocks are not in the registry's set.
var decorations = []decoration{
	{name: "short_grass", in: biomes(BiomePlains, BiomeForest), odds: 0.30, place: (*Generator).placeShortGrass},
	{name: "flower", in: biomes(BiomePlains), odds: 0.08, place: (*Generator).placeFlower},
	{name: "dead_bush", in: biomes(BiomeDesert), odds: 0.06, place: (*Generator).placeDeadBush},
	{name: "tall_grass", in: biomes(BiomePlains), odds: 0.05, place: (*Generator).placeTallGrass},
	{name: "sugar_cane", in: biomes(BiomePlains, BiomeForest, BiomeRiver), odds: 0.10, place: (*Generator).placeSugarCane},
	{name: "cactus", in: biomes(BiomeDesert), odds: 0.05, place: (*Generator).placeCactus},
	{name: "tree", in: biomes(BiomeForest), odds: 0.12, place: (*Generator).placeTree},
}

// decorateColumn runs the decoration cascade for one column. A draw that
// succeeds against a candidate whose biome gate or placement check fails
// falls through to the next candidate without drawing again.
func (g *Generator) decorateColumn(ch ChunkHandle, x, z int, p ColumnProfile, st *seed.Stream) {
	for _, d := range decorations {
		draw := st.Float64()
		if draw >= d.odds {
			continue
		}
		if !d.in.has(p.Biome) {
			continue
		}
		if d.place(g, ch, x, z, p, st) {
			return
		}
	}
}

// placeInAir writes state at (x, y, z) only when that voxel is air and inside
// the chunk, reporting whether it wrote.
func placeInAir(ch ChunkHandle, x, y, z int, state uint16) bool {
	if y < ch.MinY() || y >= ch.MinY()+ch.Height() {
		return false
	}
	if ch.BlockTypeAt(x, y, z) != 0 {
		return false
	}
	ch.SetBlock(x, y, z, state)
	return true
}

func (g *Generator) placeShortGrass(ch ChunkHandle, x, z int, p ColumnProfile, _ *seed.Stream) bool {
	return placeInAir(ch, x, p.Surface+1, z, g.blocks.shortGrass)
}

func (g *Generator) placeFlower(ch ChunkHandle, x, z int, p ColumnProfile, _ *seed.Stream) bool {
	return placeInAir(ch, x, p.Surface+1, z, g.blocks.dandelion)
}

func (g *Generator) placeDeadBush(ch ChunkHandle, x, z int, p ColumnProfile, _ *seed.Stream) bool {
	return placeInAir(ch, x, p.Surface+1, z, g.blocks.deadBush)
}

// placeTallGrass needs two free voxels; the top half carries the upper-half
// metadata bit.
func (g *Generator) placeTallGrass(ch ChunkHandle, x, z int, p ColumnProfile, _ *seed.Stream) bool {
	y := p.Surface + 1
	if y+1 >= ch.MinY()+ch.Height() {
		return false
	}
	if ch.BlockTypeAt(x, y, z) != 0 || ch.BlockTypeAt(x, y+1, z) != 0 {
		return false
	}
	ch.SetBlock(x, y, z, g.blocks.tallGrass)
	ch.SetBlock(x, y+1, z, g.blocks.tallGrassTop)
	return true
}

// placeSugarCane grows only against water: one of the four column neighbors
// at surface height must be water. Height is drawn after the placement check
// so a failed candidate costs no extra draws.
func (g *Generator) placeSugarCane(ch ChunkHandle, x, z int, p ColumnProfile, st *seed.Stream) bool {
	waterType := block.TypeID(g.blocks.water)
	adjacent := false
	for _, d := range [][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
		if ch.BlockTypeAt(x+d[0], p.Surface, z+d[1]) == waterType {
			adjacent = true
			break
		}
	}
	if !adjacent {
		return false
	}
	if ch.BlockTypeAt(x, p.Surface+1, z) != 0 {
		return false
	}

	height := st.IntBetween(1, 3)
	for i := 1; i <= height; i++ {
		if !placeInAir(ch, x, p.Surface+i, z, g.blocks.sugarCane) {
			break
		}
	}
	return true
}

// placeCactus requires clear air around its base: the voxel above the surface
// and its eight horizontal neighbors must all be air.
func (g *Generator) placeCactus(ch ChunkHandle, x, z int, p ColumnProfile, _ *seed.Stream) bool {
	y := p.Surface + 1
	for dx := -1; dx <= 1; dx++ {
		for dz := -1; dz <= 1; dz++ {
			if ch.BlockTypeAt(x+dx, y, z+dz) != 0 {
				return false
			}
		}
	}
	if !placeInAir(ch, x, y, z, g.blocks.cactus) {
		return false
	}
	placeInAir(ch, x, y+1, z, g.blocks.cactus)
	return true
}

// Canopy offsets relative to the top trunk log. The cap sits two above the
// trunk as a plus shape, a ring of eight wraps one above, and two 5x5 skirt
// layers surround the top two logs.
var (
	canopyCap  = [][2]int{{0, 0}, {1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	canopyRing = [][2]int{
		{1, 0}, {-1, 0}, {0, 1}, {0, -1},
		{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
	}
)

const trunkHeight = 5

// placeTree raises a five-log oak trunk and drapes the canopy around it.
// Leaves only ever replace air, so neighboring terrain and earlier
// decorations win conflicts.
func (g *Generator) placeTree(ch ChunkHandle, x, z int, p ColumnProfile, _ *seed.Stream) bool {
	base := p.Surface + 1
	top := p.Surface + trunkHeight
	if top+2 >= ch.MinY()+ch.Height() {
		return false
	}
	for y := base; y <= top; y++ {
		if ch.BlockTypeAt(x, y, z) != 0 {
			return false
		}
	}

	for y := base; y <= top; y++ {
		ch.SetBlock(x, y, z, g.blocks.oakLog)
	}

	for _, d := range canopyCap {
		placeInAir(ch, x+d[0], top+2, z+d[1], g.blocks.oakLeaves)
	}
	for _, d := range canopyRing {
		placeInAir(ch, x+d[0], top+1, z+d[1], g.blocks.oakLeaves)
	}
	for _, y := range []int{top, top - 1} {
		for dx := -2; dx <= 2; dx++ {
			for dz := -2; dz <= 2; dz++ {
				if dx == 0 && dz == 0 {
					continue
				}
				placeInAir(ch, x+dx, y, z+dz, g.blocks.oakLeaves)
			}
		}
	}
	return true
}
