package config

import "fmt"

// Validate checks a configuration for values that would break indexing or
// search at runtime.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if cfg.Search.DefaultTopK < 1 {
		return fmt.Errorf("search.default_top_k must be at least 1, got %d", cfg.Search.DefaultTopK)
	}
	if cfg.Search.NameMatchBoost < 0 {
		return fmt.Errorf("search.name_match_boost must not be negative, got %v", cfg.Search.NameMatchBoost)
	}
	if cfg.Search.DocMatchBoost < 0 {
		return fmt.Errorf("search.doc_match_boost must not be negative, got %v", cfg.Search.DocMatchBoost)
	}

	if len(cfg.Indexing.Include) == 0 {
		return fmt.Errorf("indexing.include must list at least one pattern")
	}
	for _, p := range cfg.Indexing.Include {
		if p == "" {
			return fmt.Errorf("indexing.include contains an empty pattern")
		}
	}
	for _, p := range cfg.Indexing.Ignore {
		if p == "" {
			return fmt.Errorf("indexing.ignore contains an empty pattern")
		}
	}

	if cfg.Extraction.MaxCachedFiles < 1 {
		return fmt.Errorf("extraction.max_cached_files must be at least 1, got %d", cfg.Extraction.MaxCachedFiles)
	}

	return nil
}
