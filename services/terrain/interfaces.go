package terrain

import (
	"github.com/voxelforge/worldgen/services/block"
)

// ChunkHandle abstracts the voxel container the generator writes into.
// This enables dependency injection and makes the painter and decorator
// testable against lightweight fakes.
type ChunkHandle interface {
	SetBlock(x, y, z int, state uint16)
	BlockTypeAt(x, y, z int) uint16
	SetSkyLight(x, y, z int, level uint8)
	MinY() int
	Height() int
}

// BlockResolver abstracts the name/version-aware block registry lookup.
type BlockResolver interface {
	Resolve(name, version string) (block.Block, error)
}
