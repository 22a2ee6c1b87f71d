// Package index builds the on-disk full-text lemma index: it discovers
// source files, extracts their function specifications and stores one bleve
// document per lemma-like declaration.
package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/blevesearch/bleve/v2"

	"github.com/proofscope/proofscope/internal/config"
	"github.com/proofscope/proofscope/internal/extract"
	"github.com/proofscope/proofscope/internal/lemma"
)

const batchSize = 1000

// Stats summarizes one indexing run.
type Stats struct {
	Files   int           // source files scanned
	Lemmas  int           // lemma documents written
	Skipped int           // files whose extraction failed outright
	Elapsed time.Duration // wall-clock duration of the run
}

// Path returns the index location for a repository root.
func Path(root string) string {
	return filepath.Join(root, ".proofscope", "index.bleve")
}

// Open opens an existing index for searching.
func Open(root string) (bleve.Index, error) {
	idx, err := bleve.Open(Path(root))
	if err != nil {
		return nil, fmt.Errorf("opening index at %s (run 'proofscope index' first?): %w", Path(root), err)
	}
	return idx, nil
}

// Indexer builds the lemma index for one repository.
type Indexer struct {
	root      string
	cfg       *config.Config
	extractor *extract.Extractor
	reporter  ProgressReporter
}

// New creates an Indexer rooted at root. A nil reporter disables progress
// reporting.
func New(root string, cfg *config.Config, reporter ProgressReporter) (*Indexer, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}
	extractor, err := extract.NewExtractor(absRoot, cfg.Extraction.MaxCachedFiles)
	if err != nil {
		return nil, err
	}
	if reporter == nil {
		reporter = &NoOpProgressReporter{}
	}
	return &Indexer{
		root:      absRoot,
		cfg:       cfg,
		extractor: extractor,
		reporter:  reporter,
	}, nil
}

// Close releases the indexer's extraction cache.
func (ix *Indexer) Close() {
	ix.extractor.Close()
}

// Run rebuilds the index from scratch and returns run statistics.
func (ix *Indexer) Run(ctx context.Context) (*Stats, error) {
	start := time.Now()

	ix.reporter.OnDiscoveryStart()
	discovery, err := NewFileDiscovery(ix.root, ix.cfg.Indexing.Include, ix.cfg.Indexing.Ignore)
	if err != nil {
		return nil, fmt.Errorf("compiling file patterns: %w", err)
	}
	files, err := discovery.DiscoverFiles()
	if err != nil {
		return nil, fmt.Errorf("discovering files: %w", err)
	}
	ix.reporter.OnDiscoveryComplete(len(files))

	indexPath := Path(ix.root)
	if err := os.RemoveAll(indexPath); err != nil {
		return nil, fmt.Errorf("clearing old index: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(indexPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}
	idx, err := bleve.New(indexPath, buildMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index: %w", err)
	}
	defer idx.Close()

	stats := &Stats{Files: len(files)}
	ix.reporter.OnIndexingStart(len(files))

	batch := idx.NewBatch()
	for _, file := range files {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		lemmas, err := ix.extractFile(file)
		if err != nil {
			stats.Skipped++
			ix.reporter.OnFileIndexed(file)
			continue
		}
		for _, l := range lemmas {
			if err := batch.Index(l.SymbolID, lemmaToDocument(l)); err != nil {
				return nil, fmt.Errorf("adding %s to batch: %w", l.Name, err)
			}
			stats.Lemmas++
			if batch.Size() >= batchSize {
				if err := idx.Batch(batch); err != nil {
					return nil, fmt.Errorf("writing batch: %w", err)
				}
				batch = idx.NewBatch()
			}
		}
		ix.reporter.OnFileIndexed(file)
	}

	if batch.Size() > 0 {
		if err := idx.Batch(batch); err != nil {
			return nil, fmt.Errorf("writing final batch: %w", err)
		}
	}

	stats.Elapsed = time.Since(start)
	ix.reporter.OnComplete(stats)
	return stats, nil
}

// extractFile turns one source file into its lemma documents.
func (ix *Indexer) extractFile(relPath string) ([]*lemma.Info, error) {
	records, err := ix.extractor.ParseFile(relPath)
	if err != nil {
		return nil, err
	}

	source := lemma.SourceProject
	for _, part := range strings.Split(relPath, "/") {
		if part == "vstd" {
			source = lemma.SourceVstd
			break
		}
	}

	var lemmas []*lemma.Info
	for i := range records {
		rec := &records[i]
		if !ix.isLemmaLike(rec) {
			continue
		}
		line := 0
		if rec.LineNumber != nil {
			line = *rec.LineNumber
		}
		lemmas = append(lemmas, &lemma.Info{
			Name:            rec.Name,
			FilePath:        rec.FilePath,
			LineNumber:      line,
			Documentation:   strings.ReplaceAll(rec.Doc, "\n", " "),
			Signature:       rec.Signature,
			RequiresClauses: rec.Requires,
			EnsuresClauses:  rec.Ensures,
			SymbolID:        lemma.SymbolID(rec.FilePath, rec.Name, line),
			Source:          source,
		})
	}
	return lemmas, nil
}

// isLemmaLike reports whether an extraction record is worth indexing: a
// successfully parsed, named declaration that is either proof-mode or carries
// a configured lemma prefix.
func (ix *Indexer) isLemmaLike(rec *extract.FunctionSpecs) bool {
	if rec.ParseError != "" || rec.Name == "" {
		return false
	}
	if rec.IsProof {
		return true
	}
	for _, prefix := range ix.cfg.Indexing.LemmaPrefixes {
		if strings.HasPrefix(rec.Name, prefix) {
			return true
		}
	}
	return false
}
