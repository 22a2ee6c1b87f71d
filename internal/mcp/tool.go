package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/proofscope/proofscope/internal/extract"
	"github.com/proofscope/proofscope/internal/search"
)

// LemmaSearcher is the search capability the lemma_search tool needs.
type LemmaSearcher interface {
	Search(ctx context.Context, query string, topK int) ([]search.Result, error)
}

// AddLemmaSearchTool registers the lemma_search tool with an MCP server.
// This function is composable - it can be combined with other tool
// registrations.
func AddLemmaSearchTool(s *server.MCPServer, searcher LemmaSearcher) {
	tool := mcp.NewTool(
		"lemma_search",
		mcp.WithDescription("Search for verification lemmas by natural language description of their pre- and postconditions. Returns lemma signatures, requires/ensures clauses and source locations ranked by relevance."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Natural language description of the desired property (e.g., 'multiplication preserves inequality', 'x mod y is bounded')")),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results to return (default from configuration)")),
	)

	s.AddTool(tool, createLemmaSearchHandler(searcher))
}

// createLemmaSearchHandler creates the handler function for the lemma_search
// tool.
func createLemmaSearchHandler(searcher LemmaSearcher) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		query, ok := argsMap["query"].(string)
		if !ok || query == "" {
			return mcp.NewToolResultError("query parameter is required"), nil
		}

		limit := 0
		if l, ok := argsMap["limit"].(float64); ok {
			limit = int(l)
		}

		results, err := searcher.Search(ctx, query, limit)
		if err != nil {
			return nil, fmt.Errorf("search failed: %w", err)
		}

		response := &LemmaSearchResponse{
			Results: results,
			Total:   len(results),
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		// Return as text result (mcp-go convention)
		return mcp.NewToolResultText(string(jsonData)), nil
	}
}

// AddSpecParseTool registers the spec_parse tool with an MCP server.
func AddSpecParseTool(s *server.MCPServer, extractor *extract.Extractor) {
	tool := mcp.NewTool(
		"spec_parse",
		mcp.WithDescription("Extract requires/ensures/decreases specifications from a verification source file. Returns one record per function-like declaration; files that fail to parse yield a single record carrying the parse error."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Source file path, relative to the repository root")),
		mcp.WithString("name",
			mcp.Description("Return only the declaration with this exact name")),
		mcp.WithBoolean("proof_only",
			mcp.Description("Return only proof-mode declarations")),
	)

	s.AddTool(tool, createSpecParseHandler(extractor))
}

// createSpecParseHandler creates the handler function for the spec_parse
// tool.
func createSpecParseHandler(extractor *extract.Extractor) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		argsMap, ok := request.Params.Arguments.(map[string]interface{})
		if !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		file, ok := argsMap["file"].(string)
		if !ok || file == "" {
			return mcp.NewToolResultError("file parameter is required"), nil
		}

		records, err := extractor.ParseFile(file)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if name, ok := argsMap["name"].(string); ok && name != "" {
			records = []extract.FunctionSpecs{extract.SelectNamed(records, name)}
		}
		if proofOnly, ok := argsMap["proof_only"].(bool); ok && proofOnly {
			records = extract.SelectProof(records)
		}

		response := &SpecParseResponse{
			Functions: records,
			Total:     len(records),
		}

		jsonData, err := json.Marshal(response)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response: %w", err)
		}

		return mcp.NewToolResultText(string(jsonData)), nil
	}
}
