package index

import (
	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"

	"github.com/proofscope/proofscope/internal/lemma"
	"github.com/proofscope/proofscope/internal/normalize"
)

// buildMapping creates the bleve index mapping for lemma documents.
// Searchable fields use the standard analyzer; everything else is stored for
// result reconstruction.
func buildMapping() *mapping.IndexMappingImpl {
	indexMapping := bleve.NewIndexMapping()

	// Text field (primary search target) - standard analyzer
	textMapping := bleve.NewTextFieldMapping()
	textMapping.Analyzer = "standard"
	textMapping.Store = false
	textMapping.Index = true

	// Name field - searchable on its own so name hits can be boosted
	nameMapping := bleve.NewTextFieldMapping()
	nameMapping.Analyzer = "standard"
	nameMapping.Store = true
	nameMapping.Index = true

	// Documentation field - searchable on its own for the doc boost
	docFieldMapping := bleve.NewTextFieldMapping()
	docFieldMapping.Analyzer = "standard"
	docFieldMapping.Store = true
	docFieldMapping.Index = true

	// Source field (filterable) - keyword analyzer for exact matching
	sourceMapping := bleve.NewTextFieldMapping()
	sourceMapping.Analyzer = "keyword"
	sourceMapping.Store = true
	sourceMapping.Index = true

	// Stored-only fields for reconstructing results
	storedMapping := bleve.NewTextFieldMapping()
	storedMapping.Store = true
	storedMapping.Index = false

	lineMapping := bleve.NewNumericFieldMapping()
	lineMapping.Store = true
	lineMapping.Index = false

	docMapping := bleve.NewDocumentMapping()
	docMapping.AddFieldMappingsAt("text", textMapping)
	docMapping.AddFieldMappingsAt("text_normalized", textMapping)
	docMapping.AddFieldMappingsAt("name", nameMapping)
	docMapping.AddFieldMappingsAt("documentation", docFieldMapping)
	docMapping.AddFieldMappingsAt("source", sourceMapping)
	docMapping.AddFieldMappingsAt("file_path", storedMapping)
	docMapping.AddFieldMappingsAt("signature", storedMapping)
	docMapping.AddFieldMappingsAt("requires", storedMapping)
	docMapping.AddFieldMappingsAt("ensures", storedMapping)
	docMapping.AddFieldMappingsAt("symbol_id", storedMapping)
	docMapping.AddFieldMappingsAt("line_number", lineMapping)

	indexMapping.DefaultMapping = docMapping
	return indexMapping
}

// lemmaToDocument converts a lemma to a bleve document.
func lemmaToDocument(l *lemma.Info) map[string]interface{} {
	return map[string]interface{}{
		"text":            l.SearchableText(true),
		"text_normalized": normalize.Normalize(l.SearchableText(true)),
		"name":            l.Name,
		"documentation":   l.Documentation,
		"source":          l.Source,
		"file_path":       l.FilePath,
		"signature":       l.Signature,
		"requires":        l.RequiresClauses,
		"ensures":         l.EnsuresClauses,
		"symbol_id":       l.SymbolID,
		"line_number":     l.LineNumber,
	}
}
