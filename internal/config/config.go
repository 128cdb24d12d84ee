// Package config handles generator configuration loading and management.
package config

// Config holds all generator settings.
type Config struct {
	Terrain   TerrainConfig   `yaml:"terrain"`
	Noise     NoiseConfig     `yaml:"noise"`
	Placement PlacementConfig `yaml:"placement"`
	Output    OutputConfig    `yaml:"output"`
	Logging   LoggingConfig   `yaml:"logging"`

	// Source is the file the config was read from, empty for pure defaults.
	Source string `yaml:"-"`
}

// TerrainConfig holds grid resolution and size.
type TerrainConfig struct {
	Width   int     `yaml:"width"`   // Cells along X
	Height  int     `yaml:"height"`  // Cells along Z
	Extent  float32 `yaml:"extent"`  // World-space span
	Normals string  `yaml:"normals"` // "flat" or "slope"
}

// NoiseConfig holds the noise basis and fractal settings.
type NoiseConfig struct {
	Basis      string  `yaml:"basis"` // perlin, opensimplex, classic
	Seed       int64   `yaml:"seed"`
	Octaves    int     `yaml:"octaves"`
	Gain       float32 `yaml:"gain"`
	Lacunarity float32 `yaml:"lacunarity"`
	Amplitude  float32 `yaml:"amplitude"`
	Frequency  float32 `yaml:"frequency"`
}

// PlacementConfig positions the terrain in the world.
type PlacementConfig struct {
	Offset     [3]float32 `yaml:"offset"`
	Scale      [3]float32 `yaml:"scale"`
	YawDegrees float32    `yaml:"yaw_degrees"`
}

// OutputConfig controls which artifacts are written and where.
type OutputConfig struct {
	Dir      string `yaml:"dir"`
	Name     string `yaml:"name"` // Base file name without extension
	TMSH     bool   `yaml:"tmsh"`
	GLTF     bool   `yaml:"gltf"`
	CSV      bool   `yaml:"csv"`
	Image    bool   `yaml:"image"`     // Grayscale PNG height preview
	CacheDir string `yaml:"cache_dir"` // Empty disables the mesh cache
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Terrain: TerrainConfig{
			Width:   32,
			Height:  32,
			Extent:  3.0,
			Normals: "flat",
		},
		Noise: NoiseConfig{
			Basis:      "perlin",
			Seed:       0,
			Octaves:    8,
			Gain:       0.5,
			Lacunarity: 1.92,
			Amplitude:  2.0,
			Frequency:  1.0,
		},
		Placement: PlacementConfig{
			Offset: [3]float32{0, 0, 0},
			Scale:  [3]float32{1, 1, 1},
		},
		Output: OutputConfig{
			Dir:   "out",
			Name:  "terrain",
			TMSH:  true,
			GLTF:  true,
			CSV:   false,
			Image: false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
