package chunk

// Width is the horizontal extent of a chunk in both x and z.
const Width = 16

// MaxSkyLight is the brightest sky light level.
const MaxSkyLight = 15

// Chunk is a writable voxel container for one 16x16 column grid with a
// configurable vertical extent starting at minY. Block states use the packed
// id<<4|meta encoding; the zero state is air. Out-of-range writes are
// ignored and out-of-range reads return air, which keeps edge handling in
// the generator branch-free.
type Chunk struct {
	minY     int
	height   int
	blocks   []uint16
	skyLight []uint8
}

// New allocates a chunk covering y in [minY, minY+worldHeight).
func New(minY, worldHeight int) *Chunk {
	if worldHeight < 1 {
		worldHeight = 1
	}
	return &Chunk{
		minY:     minY,
		height:   worldHeight,
		blocks:   make([]uint16, Width*Width*worldHeight),
		skyLight: make([]uint8, Width*Width*worldHeight),
	}
}

// MinY returns the lowest addressable y coordinate.
func (c *Chunk) MinY() int {
	return c.minY
}

// Height returns the vertical extent in blocks.
func (c *Chunk) Height() int {
	return c.height
}

// index maps local coordinates to the flat array offset.
// Layout: y-major, then z, then x.
func (c *Chunk) index(x, y, z int) (int, bool) {
	ly := y - c.minY
	if x < 0 || x >= Width || z < 0 || z >= Width || ly < 0 || ly >= c.height {
		return 0, false
	}
	return (ly*Width+z)*Width + x, true
}

// SetBlock writes one voxel state at the given local coordinates.
func (c *Chunk) SetBlock(x, y, z int, state uint16) {
	if i, ok := c.index(x, y, z); ok {
		c.blocks[i] = state
	}
}

// BlockAt returns the packed voxel state at the given local coordinates.
func (c *Chunk) BlockAt(x, y, z int) uint16 {
	if i, ok := c.index(x, y, z); ok {
		return c.blocks[i]
	}
	return 0
}

// BlockTypeAt returns the block type ID (state without metadata).
func (c *Chunk) BlockTypeAt(x, y, z int) uint16 {
	return c.BlockAt(x, y, z) >> 4
}

// SetSkyLight writes a sky light level, clamped to [0, MaxSkyLight].
func (c *Chunk) SetSkyLight(x, y, z int, level uint8) {
	if level > MaxSkyLight {
		level = MaxSkyLight
	}
	if i, ok := c.index(x, y, z); ok {
		c.skyLight[i] = level
	}
}

// SkyLightAt returns the sky light level at the given local coordinates.
func (c *Chunk) SkyLightAt(x, y, z int) uint8 {
	if i, ok := c.index(x, y, z); ok {
		return c.skyLight[i]
	}
	return 0
}
