package runner

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config controls how tests are discovered and executed. It is read from
// .lazyjest.yml at the scanned root; every field falls back to a default
// so a missing or partial file is fine.
type Config struct {
	// Command is the runner template. "<path>" is replaced with the
	// test file path relative to the root.
	Command string `yaml:"command"`
	// TestPatterns are the file name suffixes treated as test files.
	TestPatterns []string `yaml:"testPatterns"`
	// PassMarkers and FailMarkers are the per-case status prefixes
	// scanned for in runner output.
	PassMarkers []string `yaml:"passMarkers"`
	FailMarkers []string `yaml:"failMarkers"`
}

const configFileName = ".lazyjest.yml"

// DefaultConfig returns the Jest defaults.
func DefaultConfig() Config {
	return Config{
		Command: "npx jest <path> --colors",
		// Jest prints ✓/✕ on unix terminals and √/× on Windows.
		PassMarkers: []string{"✓", "✔", "√"},
		FailMarkers: []string{"✗", "✕", "×"},
	}
}

// LoadConfig reads .lazyjest.yml from root, filling any unset field with
// its default. A malformed file is treated as absent.
func LoadConfig(root string) Config {
	def := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(root, configFileName))
	if err != nil {
		return def
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return def
	}

	if cfg.Command == "" {
		cfg.Command = def.Command
	}
	if len(cfg.PassMarkers) == 0 {
		cfg.PassMarkers = def.PassMarkers
	}
	if len(cfg.FailMarkers) == 0 {
		cfg.FailMarkers = def.FailMarkers
	}
	return cfg
}
