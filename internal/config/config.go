package config

// Config represents the complete proofscope configuration.
// It can be loaded from .proofscope.yaml with environment variable overrides.
type Config struct {
	Search     SearchConfig     `yaml:"search" mapstructure:"search"`
	Indexing   IndexingConfig   `yaml:"indexing" mapstructure:"indexing"`
	Extraction ExtractionConfig `yaml:"extraction" mapstructure:"extraction"`
}

// SearchConfig tunes lemma search behavior.
type SearchConfig struct {
	DefaultTopK    int     `yaml:"default_top_k" mapstructure:"default_top_k"`       // results returned when the caller gives no limit
	NameMatchBoost float64 `yaml:"name_match_boost" mapstructure:"name_match_boost"` // score multiplier for lemma-name matches
	DocMatchBoost  float64 `yaml:"doc_match_boost" mapstructure:"doc_match_boost"`   // score multiplier for documentation matches
}

// IndexingConfig defines which files and declarations the indexer picks up.
type IndexingConfig struct {
	Include []string `yaml:"include" mapstructure:"include"` // glob patterns for source files
	Ignore  []string `yaml:"ignore" mapstructure:"ignore"`   // glob patterns to skip
	// LemmaPrefixes mark declarations worth indexing even when they are
	// not proof-mode (axioms, spec functions used as lemmas).
	LemmaPrefixes []string `yaml:"lemma_prefixes" mapstructure:"lemma_prefixes"`
}

// ExtractionConfig tunes the per-file extraction cache.
type ExtractionConfig struct {
	MaxCachedFiles int `yaml:"max_cached_files" mapstructure:"max_cached_files"` // LRU capacity in files
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultTopK:    10,
			NameMatchBoost: 2.0,
			DocMatchBoost:  1.5,
		},
		Indexing: IndexingConfig{
			Include: []string{
				"**/*.rs",
			},
			Ignore: []string{
				"target/**",
				".git/**",
				"node_modules/**",
			},
			LemmaPrefixes: []string{
				"lemma_",
				"axiom_",
				"spec_",
				"proof_",
			},
		},
		Extraction: ExtractionConfig{
			MaxCachedFiles: 128,
		},
	}
}
