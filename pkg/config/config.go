// Package config holds the CLI-wide settings for cmd/semconv-resolve as
// stored in config.yaml: cache root, default output format, and a default
// strict-mode flag. Only the cache root is resolved through a layered
// precedence chain — CLI flag override var, then environment variable,
// then config file, then built-in default — and it is the only one of
// these settings the CLI reads.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// cacheDirOverride is set by the --cache-dir CLI flag and takes highest
// priority over every other source.
var cacheDirOverride string

// SetCacheDirOverride sets the CLI override for the vdir cache root. This
// should be called by the CLI flag processing before Config.GetCacheDir is
// read.
func SetCacheDirOverride(path string) {
	cacheDirOverride = path
}

// GetCacheDirOverride returns the current CLI override (for testing).
func GetCacheDirOverride() string {
	return cacheDirOverride
}

// Config holds the CLI-wide defaults for resolving semconv registries.
type Config struct {
	// CacheDir overrides $HOME/.weaver/vdir_cache when set.
	CacheDir string `yaml:"cacheDir,omitempty"`

	// OutputFormat is a stored default output format ("text", "json",
	// "yaml"). The --output flag does not read it; its own default is "text".
	OutputFormat string `yaml:"outputFormat,omitempty"`

	// Strict is a stored default for strict mode. The --strict flag does
	// not read it; its own default is false.
	Strict bool `yaml:"strict,omitempty"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		OutputFormat: "text",
		Strict:       false,
	}
}

// Load loads configuration from file or returns defaults.
func Load() (*Config, error) {
	configPath := getConfigPath()

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parsing %s: %w", configPath, err)
	}

	return cfg, nil
}

// Save saves the configuration to file.
func (c *Config) Save() error {
	configPath := getConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o600)
}

func getConfigPath() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "semconv-resolve", "config.yaml")
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "semconv-resolve", "config.yaml")
}

// GetConfigPath returns the path to the config file (exported for the CLI).
func GetConfigPath() string {
	return getConfigPath()
}

// GetCacheDir resolves the vdir cache root with priority:
//  1. CLI flag (--cache-dir) via SetCacheDirOverride
//  2. Environment variable ($SEMCONV_CACHE_DIR)
//  3. Config file (cacheDir in config.yaml)
//  4. Default ($HOME/.weaver/vdir_cache)
func (c *Config) GetCacheDir() string {
	if cacheDirOverride != "" {
		return ExpandPath(cacheDirOverride)
	}
	if envDir := os.Getenv("SEMCONV_CACHE_DIR"); envDir != "" {
		return ExpandPath(envDir)
	}
	if c.CacheDir != "" {
		return ExpandPath(c.CacheDir)
	}
	return DefaultCacheDir()
}

// DefaultCacheDir returns $HOME/.weaver/vdir_cache, or "" when the home
// directory cannot be determined.
func DefaultCacheDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".weaver", "vdir_cache")
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	if path == "~" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return homeDir
	}
	return path
}

// PathExists checks if a path exists.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
