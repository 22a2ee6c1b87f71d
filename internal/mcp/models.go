// Package mcp exposes lemma search and specification extraction as MCP tools
// over stdio, so editor agents and assistants can query a verified codebase.
package mcp

import (
	"github.com/proofscope/proofscope/internal/extract"
	"github.com/proofscope/proofscope/internal/search"
)

// LemmaSearchRequest are the arguments of the lemma_search tool.
type LemmaSearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit,omitempty"`
}

// LemmaSearchResponse is the JSON payload returned by lemma_search.
type LemmaSearchResponse struct {
	Results []search.Result `json:"results"`
	Total   int             `json:"total"`
}

// SpecParseRequest are the arguments of the spec_parse tool.
type SpecParseRequest struct {
	File      string `json:"file"`
	Name      string `json:"name,omitempty"`
	ProofOnly bool   `json:"proof_only,omitempty"`
}

// SpecParseResponse is the JSON payload returned by spec_parse.
type SpecParseResponse struct {
	Functions []extract.FunctionSpecs `json:"functions"`
	Total     int                     `json:"total"`
}
