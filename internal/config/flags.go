package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagWidth   = flag.Int("width", 0, "Grid cells along X")
	flagHeight  = flag.Int("height", 0, "Grid cells along Z")
	flagExtent  = flag.Float64("extent", 0, "World-space span of the terrain")
	flagOctaves = flag.Int("octaves", 0, "Number of noise octaves")
	flagSeed    = flag.Int64("seed", 0, "Noise seed; an explicit 0 selects the canonical perlin table")
	flagBasis   = flag.String("basis", "", "Noise basis: perlin, opensimplex, classic")
	flagNormals = flag.String("normals", "", "Normal mode: flat or slope")
	flagOut     = flag.String("out", "", "Output directory")
	flagCache   = flag.String("cache", "", "Mesh cache directory")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// explicitFlags reports which flags were given on the command line.
func explicitFlags() map[string]bool {
	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

// applyFlags applies CLI flag overrides to the config. Zero values mean
// "not given" except for flags listed in explicit, so --seed 0 can select
// the canonical permutation over a seeded config file.
func applyFlags(cfg *Config, explicit map[string]bool) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagWidth > 0 {
		cfg.Terrain.Width = *flagWidth
	}
	if *flagHeight > 0 {
		cfg.Terrain.Height = *flagHeight
	}
	if *flagExtent > 0 {
		cfg.Terrain.Extent = float32(*flagExtent)
	}
	if *flagOctaves > 0 {
		cfg.Noise.Octaves = *flagOctaves
	}
	if *flagSeed != 0 || explicit["seed"] {
		cfg.Noise.Seed = *flagSeed
	}
	if *flagBasis != "" {
		cfg.Noise.Basis = *flagBasis
	}
	if *flagNormals != "" {
		cfg.Terrain.Normals = *flagNormals
	}
	if *flagOut != "" {
		cfg.Output.Dir = *flagOut
	}
	if *flagCache != "" {
		cfg.Output.CacheDir = *flagCache
	}
}
