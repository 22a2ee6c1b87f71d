package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/maypok86/otter"
)

// Extractor is the file-level extraction front-end used by batch consumers
// (the indexer, the MCP tools). It resolves paths against a repository root,
// refuses paths that escape it, and keeps recently extracted files in a
// capacity-bounded cache so repeated lookups of hot files stay cheap.
type Extractor struct {
	root  string
	cache otter.Cache[string, []FunctionSpecs]
}

// NewExtractor creates an Extractor rooted at root with space for maxFiles
// cached extractions.
func NewExtractor(root string, maxFiles int) (*Extractor, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	cache, err := otter.MustBuilder[string, []FunctionSpecs](maxFiles).
		Cost(func(key string, value []FunctionSpecs) uint32 { return 1 }).
		Build()
	if err != nil {
		return nil, fmt.Errorf("building extraction cache: %w", err)
	}
	return &Extractor{root: absRoot, cache: cache}, nil
}

// Root returns the extractor's resolved repository root.
func (e *Extractor) Root() string { return e.root }

// ParseFile extracts every record from the file at path (absolute, or
// relative to the root) and stamps the records' FilePath with the
// root-relative path. Results are cached per (path, mtime); returned records
// are always independent copies.
func (e *Extractor) ParseFile(path string) ([]FunctionSpecs, error) {
	abs, rel, err := e.resolve(path)
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	key := fmt.Sprintf("%s|%d|%d", abs, info.ModTime().UnixNano(), info.Size())
	if cached, ok := e.cache.Get(key); ok {
		return cloneRecords(cached), nil
	}

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", rel, err)
	}
	records := ParseAll(string(content))
	for i := range records {
		records[i].FilePath = rel
	}
	e.cache.Set(key, records)
	return cloneRecords(records), nil
}

// Close releases the cache.
func (e *Extractor) Close() {
	e.cache.Close()
}

// resolve maps a caller path to (absolute, root-relative) form and rejects
// paths outside the repository root.
func (e *Extractor) resolve(path string) (abs, rel string, err error) {
	if filepath.IsAbs(path) {
		abs = filepath.Clean(path)
	} else {
		abs = filepath.Join(e.root, path)
	}
	rel, err = filepath.Rel(e.root, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("path %s is outside the repository root", path)
	}
	return abs, filepath.ToSlash(rel), nil
}

func cloneRecords(records []FunctionSpecs) []FunctionSpecs {
	out := make([]FunctionSpecs, 0, len(records))
	for _, rec := range records {
		out = append(out, rec.clone())
	}
	return out
}
