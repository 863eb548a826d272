package world

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/voxelforge/worldgen/internal/logging"
	"github.com/voxelforge/worldgen/services/block"
	"github.com/voxelforge/worldgen/services/chunk"
	"github.com/voxelforge/worldgen/services/terrain"
)

// ChunkGenerator abstracts terrain synthesis for dependency injection.
type ChunkGenerator interface {
	GenerateChunk(chunkX, chunkZ int) (*chunk.Chunk, error)
	Config() terrain.Config
}

// Service owns one world: a seed, its generation parameters, and the
// generator derived from them. A service instance is safe for concurrent
// chunk requests.
type Service struct {
	id        uuid.UUID
	name      string
	seed      string
	generator ChunkGenerator
	logger    *log.Logger
}

// NewService creates a world service for the given seed and config. The
// world ID is a per-instance identifier used for log correlation only; it
// has no effect on generation.
func NewService(name, seed string, cfg terrain.Config) (*Service, error) {
	id := uuid.New()
	logger := logging.WithFields("component", "world-service", "world_id", id.String())
	logger.Debug("Creating new world service", "name", name, "seed", seed)

	gen, err := terrain.NewGenerator(seed, cfg, block.NewRegistry())
	if err != nil {
		return nil, fmt.Errorf("create generator for world %q: %w", name, err)
	}

	return &Service{
		id:        id,
		name:      name,
		seed:      seed,
		generator: gen,
		logger:    logger,
	}, nil
}

// NewServiceWithGenerator creates a service around an existing generator.
func NewServiceWithGenerator(name, seed string, gen ChunkGenerator) *Service {
	id := uuid.New()
	return &Service{
		id:        id,
		name:      name,
		seed:      seed,
		generator: gen,
		logger:    logging.WithFields("component", "world-service", "world_id", id.String()),
	}
}

// ID returns the service instance identifier.
func (s *Service) ID() uuid.UUID {
	return s.id
}

// Name returns the world's display name.
func (s *Service) Name() string {
	return s.name
}

// Seed returns the world seed.
func (s *Service) Seed() string {
	return s.seed
}

// Config returns the world's generation parameters.
func (s *Service) Config() terrain.Config {
	return s.generator.Config()
}

// GenerateChunk synthesizes the chunk at (chunkX, chunkZ). Repeated calls
// with the same coordinates return identical terrain.
func (s *Service) GenerateChunk(chunkX, chunkZ int) (*chunk.Chunk, error) {
	start := time.Now()

	ch, err := s.generator.GenerateChunk(chunkX, chunkZ)
	if err != nil {
		s.logger.Error("Chunk generation failed", "chunk_x", chunkX, "chunk_z", chunkZ, "error", err)
		return nil, fmt.Errorf("generate chunk (%d,%d): %w", chunkX, chunkZ, err)
	}

	s.logger.Info("Generated chunk",
		"chunk_x", chunkX, "chunk_z", chunkZ, "duration", time.Since(start))
	return ch, nil
}
