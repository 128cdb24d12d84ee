// Package worldgen runs the full terrain generation pipeline: it resolves a
// noise source from configuration, consults the mesh cache, builds the mesh
// and writes the requested artifacts.
package worldgen

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/terragen/internal/cache"
	"github.com/Faultbox/terragen/internal/config"
	"github.com/Faultbox/terragen/internal/export"
	"github.com/Faultbox/terragen/internal/logger"
	"github.com/Faultbox/terragen/internal/terrain"
	"github.com/Faultbox/terragen/pkg/noise"
)

// Output artifact kinds.
const (
	OutputTMSH   = "tmsh"
	OutputGLB    = "glb"
	OutputCSV    = "csv"
	OutputImage  = "png"
	OutputConfig = "config"
)

// Plan is the resolved, validated form of a configuration.
type Plan struct {
	Basis     noise.Basis
	Seed      int64
	Params    terrain.Params
	Placement terrain.Placement
}

// Result describes one generation run.
type Result struct {
	Mesh     *terrain.Mesh
	Collider *terrain.Collider
	Stats    terrain.Stats

	CacheKey string
	CacheHit bool

	// Outputs maps an artifact kind to the path it was written to.
	Outputs map[string]string
	Elapsed time.Duration
}

// NewPlan converts configuration into build parameters and validates them.
func NewPlan(cfg *config.Config) (*Plan, error) {
	basis, err := noise.ParseBasis(cfg.Noise.Basis)
	if err != nil {
		return nil, err
	}

	params := terrain.Params{
		Width:  cfg.Terrain.Width,
		Height: cfg.Terrain.Height,
		Extent: cfg.Terrain.Extent,
		Noise: noise.FractalParams{
			Octaves:    cfg.Noise.Octaves,
			Gain:       cfg.Noise.Gain,
			Lacunarity: cfg.Noise.Lacunarity,
			Amplitude:  cfg.Noise.Amplitude,
			Frequency:  cfg.Noise.Frequency,
		},
		Normals: terrain.NormalMode(cfg.Terrain.Normals),
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Plan{
		Basis:  basis,
		Seed:   cfg.Noise.Seed,
		Params: params,
		Placement: terrain.Placement{
			Offset:     cfg.Placement.Offset,
			Scale:      cfg.Placement.Scale,
			YawDegrees: cfg.Placement.YawDegrees,
		},
	}, nil
}

// Generate runs the pipeline described by cfg.
func Generate(cfg *config.Config) (*Result, error) {
	start := time.Now()
	log := logger.Named("worldgen")

	plan, err := NewPlan(cfg)
	if err != nil {
		return nil, fmt.Errorf("plan: %w", err)
	}
	if cfg.Source != "" {
		log.Debug("using config file", zap.String("path", cfg.Source))
	}
	log.Info("generating terrain",
		zap.Int("width", plan.Params.Width),
		zap.Int("height", plan.Params.Height),
		zap.Float32("extent", plan.Params.Extent),
		zap.String("basis", string(plan.Basis)),
		zap.Int64("seed", plan.Seed),
		zap.Int("octaves", plan.Params.Noise.Octaves))

	res := &Result{
		CacheKey: cache.Key(string(plan.Basis), plan.Seed, plan.Params),
		Outputs:  make(map[string]string),
	}

	var c *cache.Cache
	if cfg.Output.CacheDir != "" {
		c, err = cache.Open(cfg.Output.CacheDir)
		if err != nil {
			return nil, err
		}
		defer c.Close()

		res.Mesh, res.CacheHit, err = c.Load(res.CacheKey)
		if err != nil {
			// A bad entry is rebuilt and overwritten.
			log.Warn("discarding cache entry", zap.String("key", res.CacheKey), zap.Error(err))
		}
	}

	if !res.CacheHit {
		src, err := noise.NewSource(plan.Basis, plan.Seed)
		if err != nil {
			return nil, err
		}
		buildStart := time.Now()
		res.Mesh, err = terrain.Build(src, plan.Params)
		if err != nil {
			return nil, fmt.Errorf("build: %w", err)
		}
		log.Debug("mesh built",
			zap.Int("vertices", res.Mesh.VertexCount()),
			zap.Int("triangles", res.Mesh.TriangleCount()),
			zap.Duration("elapsed", time.Since(buildStart)))

		if c != nil {
			if err := c.Store(res.CacheKey, res.Mesh); err != nil {
				log.Warn("cache store failed", zap.Error(err))
			}
		}
	}

	res.Stats = terrain.Summarize(res.Mesh)
	res.Collider = terrain.NewCollider(res.Mesh, plan.Placement)

	if err := writeOutputs(cfg, plan, res); err != nil {
		return nil, err
	}

	res.Elapsed = time.Since(start)
	log.Info("terrain ready",
		zap.Bool("cache_hit", res.CacheHit),
		zap.String("key", res.CacheKey),
		zap.Float64("min_height", res.Stats.MinHeight),
		zap.Float64("max_height", res.Stats.MaxHeight),
		zap.Float64("mean_height", res.Stats.MeanHeight),
		zap.Float64("max_slope_deg", res.Stats.MaxSlopeDegrees),
		zap.Duration("elapsed", res.Elapsed))

	return res, nil
}

func writeOutputs(cfg *config.Config, plan *Plan, res *Result) error {
	out := cfg.Output
	if !out.TMSH && !out.GLTF && !out.CSV && !out.Image {
		return nil
	}
	if err := os.MkdirAll(out.Dir, 0755); err != nil {
		return fmt.Errorf("output dir: %w", err)
	}
	base := filepath.Join(out.Dir, out.Name)

	if out.TMSH {
		path := base + ".tmsh"
		if err := res.Mesh.WriteTMSHFile(path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		res.Outputs[OutputTMSH] = path
	}
	if out.GLTF {
		path := base + ".glb"
		if err := export.WritePlacedGLB(res.Mesh, plan.Placement, path); err != nil {
			return err
		}
		res.Outputs[OutputGLB] = path
	}
	if out.CSV {
		path := base + ".csv"
		if err := export.WriteHeightCSVFile(res.Mesh, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		res.Outputs[OutputCSV] = path
	}
	if out.Image {
		path := base + ".png"
		if err := export.WriteHeightImageFile(res.Mesh, path); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		res.Outputs[OutputImage] = path
	}

	path := filepath.Join(out.Dir, "config.yaml")
	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	res.Outputs[OutputConfig] = path

	for kind, p := range res.Outputs {
		logger.Debug("wrote output", zap.String("kind", kind), zap.String("path", p))
	}
	return nil
}
