// Package main is the entry point for the terragen terrain generator.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/worldgen"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== terragen ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	res, err := worldgen.Generate(cfg)
	if err != nil {
		logger.Error("generation failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}

	s := res.Stats
	fmt.Printf("Grid:      %dx%d (extent %.2f)\n", res.Mesh.Width, res.Mesh.Height, res.Mesh.Extent)
	fmt.Printf("Vertices:  %d\n", s.Vertices)
	fmt.Printf("Triangles: %d\n", s.Triangles)
	fmt.Printf("Height:    %.4f .. %.4f (mean %.4f, stddev %.4f)\n", s.MinHeight, s.MaxHeight, s.MeanHeight, s.StdDevHeight)
	fmt.Printf("Max slope: %.1f°\n", s.MaxSlopeDegrees)
	if cfg.Output.CacheDir != "" {
		fmt.Printf("Cache:     %s (hit=%v)\n", res.CacheKey, res.CacheHit)
	}
	for _, kind := range []string{worldgen.OutputTMSH, worldgen.OutputGLB, worldgen.OutputCSV, worldgen.OutputImage, worldgen.OutputConfig} {
		if path, ok := res.Outputs[kind]; ok {
			fmt.Printf("Wrote:     %s\n", path)
		}
	}
}
