// Package search answers natural-language lemma queries against the index
// built by the index package.
package search

import (
	"context"
	"fmt"
	"sync"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/proofscope/proofscope/internal/config"
	"github.com/proofscope/proofscope/internal/index"
	"github.com/proofscope/proofscope/internal/lemma"
	"github.com/proofscope/proofscope/internal/normalize"
)

// Result is one search hit.
type Result struct {
	Lemma lemma.Info `json:"lemma"`
	Score float64    `json:"score"`
}

// Searcher executes keyword queries against an opened lemma index. It is safe
// for concurrent use; Reload swaps in a freshly built index.
type Searcher struct {
	mu   sync.RWMutex
	root string
	cfg  *config.Config
	idx  bleve.Index
}

// NewSearcher opens the index under root for querying.
func NewSearcher(root string, cfg *config.Config) (*Searcher, error) {
	idx, err := index.Open(root)
	if err != nil {
		return nil, err
	}
	return &Searcher{
		root: root,
		cfg:  cfg,
		idx:  idx,
	}, nil
}

// Search returns the topK best-matching lemmas for a natural-language query.
// topK values below 1 fall back to the configured default.
func (s *Searcher) Search(ctx context.Context, queryStr string, topK int) ([]Result, error) {
	if topK < 1 {
		topK = s.cfg.Search.DefaultTopK
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(s.buildQuery(queryStr), topK, 0, false)
	req.Fields = []string{
		"name", "file_path", "line_number", "documentation",
		"signature", "requires", "ensures", "symbol_id", "source",
	}

	res, err := s.idx.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("searching index: %w", err)
	}

	results := make([]Result, 0, len(res.Hits))
	for _, hit := range res.Hits {
		results = append(results, Result{
			Lemma: lemmaFromFields(hit.Fields),
			Score: hit.Score,
		})
	}
	return results, nil
}

// buildQuery expands the user query into canonicalized phrasings and matches
// each against the searchable text, with extra weight on lemma-name and
// documentation hits.
func (s *Searcher) buildQuery(queryStr string) query.Query {
	canonical := normalize.OperatorsOnly(queryStr)

	var queries []query.Query
	for _, variation := range normalize.Variations(canonical) {
		q := bleve.NewMatchQuery(variation)
		q.SetField("text")
		queries = append(queries, q)
	}

	normQuery := bleve.NewMatchQuery(normalize.Normalize(canonical))
	normQuery.SetField("text_normalized")
	queries = append(queries, normQuery)

	nameQuery := bleve.NewMatchQuery(canonical)
	nameQuery.SetField("name")
	nameQuery.SetBoost(s.cfg.Search.NameMatchBoost)
	queries = append(queries, nameQuery)

	docQuery := bleve.NewMatchQuery(canonical)
	docQuery.SetField("documentation")
	docQuery.SetBoost(s.cfg.Search.DocMatchBoost)
	queries = append(queries, docQuery)

	return bleve.NewDisjunctionQuery(queries...)
}

// Reload reopens the on-disk index, picking up a rebuild.
func (s *Searcher) Reload() error {
	fresh, err := index.Open(s.root)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx != nil {
		s.idx.Close()
	}
	s.idx = fresh
	return nil
}

// Close releases the underlying index.
func (s *Searcher) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.idx != nil {
		err := s.idx.Close()
		s.idx = nil
		return err
	}
	return nil
}

// lemmaFromFields reconstructs a lemma from bleve stored fields. Stored
// arrays come back as a bare string when they hold a single value.
func lemmaFromFields(fields map[string]interface{}) lemma.Info {
	l := lemma.Info{
		Name:            stringField(fields, "name"),
		FilePath:        stringField(fields, "file_path"),
		Documentation:   stringField(fields, "documentation"),
		Signature:       stringField(fields, "signature"),
		RequiresClauses: stringsField(fields, "requires"),
		EnsuresClauses:  stringsField(fields, "ensures"),
		SymbolID:        stringField(fields, "symbol_id"),
		Source:          stringField(fields, "source"),
	}
	if n, ok := fields["line_number"].(float64); ok {
		l.LineNumber = int(n)
	}
	return l
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

func stringsField(fields map[string]interface{}, key string) []string {
	switch v := fields[key].(type) {
	case string:
		return []string{v}
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}
