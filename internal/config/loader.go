package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/nao1215/logstat/internal/crawler"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigFile is the configuration file name searched in the
	// working and home directories.
	DefaultConfigFile = ".logstat"

	// XDGConfigFile is the configuration file name inside the XDG config directory.
	XDGConfigFile = "config.yaml"
)

// File represents the structure of the .logstat configuration file.
// Pointer fields distinguish a key set to zero from a missing key.
type File struct {
	// AnchorOffset overrides the timestamp bracket search offset.
	AnchorOffset *int `yaml:"anchorOffset,omitempty"`

	// Concurrency overrides the number of files analyzed at the same time.
	Concurrency *int `yaml:"concurrency,omitempty"`

	// MaxLineSize overrides the maximum accepted line length in bytes.
	MaxLineSize *int `yaml:"maxLineSize,omitempty"`

	// Crawlers replaces the built-in crawler table. Order is priority order.
	Crawlers []crawler.Signature `yaml:"crawlers,omitempty"`

	// SpillDir overrides the directory for temporary URL stores.
	SpillDir string `yaml:"spillDir,omitempty"`
}

// LoadConfigFile loads a configuration file in YAML format.
// If the file does not exist, it returns ErrConfigNotFound.
// Callers should handle this error appropriately based on whether
// the config file path was explicitly specified by the user.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .logstat in the current directory
// 3. Look for .logstat in the user's home directory
// 4. Look for config.yaml in the XDG config directory
//
// Returns the path to the configuration file if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if isRegularFile(configPath) {
			return configPath
		}
		return ""
	}

	candidates := make([]string, 0, 3)
	if cwd, err := os.Getwd(); err == nil {
		candidates = append(candidates, filepath.Join(cwd, DefaultConfigFile))
	}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, DefaultConfigFile))
	}
	candidates = append(candidates, filepath.Join(XDGConfigDir(), XDGConfigFile))

	for _, candidate := range candidates {
		if isRegularFile(candidate) {
			return candidate
		}
	}
	return ""
}

// Load resolves, reads and applies the configuration file to a new Config.
// A missing file is only an error when configPath was given explicitly.
func Load(configPath string) (*Config, error) {
	cfg := NewConfig()
	cfg.ConfigFilePath = configPath

	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return cfg, nil
	}

	f, err := LoadConfigFile(path)
	if err != nil {
		return nil, err
	}
	cfg.ApplyFile(f)
	cfg.ConfigFilePath = path
	return cfg, nil
}

func isRegularFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
