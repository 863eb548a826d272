package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/voxelforge/worldgen/internal/logging"
	"github.com/voxelforge/worldgen/services/chunk"
	"github.com/voxelforge/worldgen/services/terrain"
	"github.com/voxelforge/worldgen/services/world"
)

func main() {
	var (
		seed       = flag.String("seed", "voxelforge", "world seed")
		name       = flag.String("name", "Overworld", "world name")
		configPath = flag.String("config", "", "path to a YAML generation config")
		chunkX     = flag.Int("chunk-x", 0, "x coordinate of the center chunk")
		chunkZ     = flag.Int("chunk-z", 0, "z coordinate of the center chunk")
		radius     = flag.Int("radius", 0, "generate chunks within this radius of the center")
	)
	flag.Parse()

	logging.InitLogger()
	logger := logging.GetLogger()

	cfg := terrain.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = terrain.LoadConfig(*configPath)
		if err != nil {
			logger.Fatal("Failed to load config", "path", *configPath, "error", err)
		}
	}

	svc, err := world.NewService(*name, *seed, cfg)
	if err != nil {
		logger.Fatal("Failed to create world", "error", err)
	}
	logger.Info("World ready",
		"name", svc.Name(), "seed", svc.Seed(), "world_height", cfg.WorldHeight)

	if *radius < 0 {
		fmt.Fprintln(os.Stderr, "radius must not be negative")
		os.Exit(2)
	}

	start := time.Now()
	chunks := 0
	for cx := *chunkX - *radius; cx <= *chunkX+*radius; cx++ {
		for cz := *chunkZ - *radius; cz <= *chunkZ+*radius; cz++ {
			ch, err := svc.GenerateChunk(cx, cz)
			if err != nil {
				logger.Fatal("Chunk generation failed", "chunk_x", cx, "chunk_z", cz, "error", err)
			}
			logger.Info("Chunk summary",
				"chunk_x", cx, "chunk_z", cz,
				"solid_blocks", countSolid(ch))
			chunks++
		}
	}

	logger.Info("Generation complete", "chunks", chunks, "duration", time.Since(start))
}

func countSolid(ch *chunk.Chunk) int {
	solid := 0
	top := ch.MinY() + ch.Height()
	for x := 0; x < chunk.Width; x++ {
		for z := 0; z < chunk.Width; z++ {
			for y := ch.MinY(); y < top; y++ {
				if ch.BlockTypeAt(x, y, z) != 0 {
					solid++
				}
			}
		}
	}
	return solid
}
