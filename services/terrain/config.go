package terrain

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voxelforge/worldgen/services/block"
	"github.com/voxelforge/worldgen/services/noise"
)

// Config holds the generation parameters for one world. The same config with
// the same seed always produces the same terrain.
type Config struct {
	// WorldHeight is the vertical extent of generated chunks in blocks.
	WorldHeight int `yaml:"world_height"`
	// MinY is the lowest y coordinate of the chunk container.
	MinY int `yaml:"min_y"`
	// Waterline is the y level up to which water fills columns below it.
	Waterline int `yaml:"waterline"`
	// Size is the world width in blocks; size/2 shifts chunk-local
	// coordinates so the origin sits at the world's center.
	Size int `yaml:"size"`
	// Roughness scales the coordinates sampled from the smooth noise
	// channels; larger values compress terrain features.
	Roughness float64 `yaml:"roughness"`
	// OctaveCount is the number of octaves per smooth noise channel.
	OctaveCount int `yaml:"octave_count"`
	// BiomeDensity is the expected cellular feature points per unit area.
	BiomeDensity float64 `yaml:"biome_density"`
	// BlockVersion selects the block naming version for registry lookups.
	BlockVersion string `yaml:"block_version"`
}

// DefaultConfig returns generation parameters with sensible defaults.
func DefaultConfig() Config {
	return Config{
		WorldHeight:  128,
		MinY:         0,
		Waterline:    50,
		Size:         1024,
		Roughness:    1.0,
		OctaveCount:  noise.DefaultOctaves,
		BiomeDensity: 0.005,
		BlockVersion: block.DefaultVersion,
	}
}

// LoadConfig reads a YAML config file over the defaults, so partial files
// only override the fields they name.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports the first invalid parameter, if any.
func (c Config) Validate() error {
	if c.WorldHeight < 1 {
		return fmt.Errorf("world_height must be positive, got %d", c.WorldHeight)
	}
	if c.Waterline < 0 || c.Waterline >= c.WorldHeight {
		return fmt.Errorf("waterline must be inside [0, world_height), got %d", c.Waterline)
	}
	if c.Size < 0 {
		return fmt.Errorf("size must not be negative, got %d", c.Size)
	}
	if c.Roughness <= 0 {
		return fmt.Errorf("roughness must be positive, got %v", c.Roughness)
	}
	if c.OctaveCount < 1 {
		return fmt.Errorf("octave_count must be positive, got %d", c.OctaveCount)
	}
	if c.BiomeDensity <= 0 {
		return fmt.Errorf("biome_density must be positive, got %v", c.BiomeDensity)
	}
	if c.BlockVersion == "" {
		return fmt.Errorf("block_version must not be empty")
	}
	return nil
}
