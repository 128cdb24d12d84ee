package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that points at a config file.
// It is consulted after --config and before the search path.
const EnvConfig = "TERRAGEN_CONFIG"

// Load loads configuration with priority: defaults < file < flags.
// The file used, if any, is recorded in Config.Source.
func Load() (*Config, error) {
	cfg := Default()

	path := ConfigPath()
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		path = findConfigFile()
	}

	if path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}

	applyFlags(cfg, explicitFlags())

	return cfg, nil
}

// searchPaths lists the candidate config files in lookup order: the working
// directory first, then the per-user config directory.
func searchPaths() []string {
	dir := ConfigDir()
	return []string{
		"terragen.yaml",
		"terragen.yml",
		filepath.Join(dir, "config.yaml"),
		filepath.Join(dir, "config.yml"),
	}
}

// findConfigFile returns the first existing search path, or "".
func findConfigFile() string {
	for _, path := range searchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	home, _ := os.UserHomeDir()
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Terragen")
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "Terragen")
		}
		return filepath.Join(home, "AppData", "Roaming", "Terragen")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "terragen")
		}
		return filepath.Join(home, ".config", "terragen")
	}
}

// loadFromFile merges a YAML file over cfg. Unknown keys are rejected so a
// misspelled setting such as "octave" does not silently fall back to the default.
func loadFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	cfg.Source = path
	return nil
}
