package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (PROOFSCOPE_*)
// 2. Config file (.proofscope.yaml in the root directory)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".proofscope")
	v.SetConfigType("yaml")
	v.AddConfigPath(l.rootDir)

	// Enable environment variable overrides, e.g. PROOFSCOPE_SEARCH_DEFAULT_TOP_K
	v.SetEnvPrefix("PROOFSCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("search.default_top_k")
	v.BindEnv("search.name_match_boost")
	v.BindEnv("search.doc_match_boost")
	v.BindEnv("extraction.max_cached_files")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("search.default_top_k", defaults.Search.DefaultTopK)
	v.SetDefault("search.name_match_boost", defaults.Search.NameMatchBoost)
	v.SetDefault("search.doc_match_boost", defaults.Search.DocMatchBoost)

	v.SetDefault("indexing.include", defaults.Indexing.Include)
	v.SetDefault("indexing.ignore", defaults.Indexing.Ignore)
	v.SetDefault("indexing.lemma_prefixes", defaults.Indexing.LemmaPrefixes)

	v.SetDefault("extraction.max_cached_files", defaults.Extraction.MaxCachedFiles)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
