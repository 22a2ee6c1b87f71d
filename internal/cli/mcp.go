package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/internal/index"
	"github.com/proofscope/proofscope/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for lemma search and spec extraction",
	Long: `Start the Model Context Protocol (MCP) server that lets LLM-powered
coding assistants query the repository's verification lemmas.

The MCP server:
- Answers lemma_search queries against the .proofscope/ index
- Extracts specifications on demand via the spec_parse tool
- Reloads automatically when the index is rebuilt
- Communicates via stdio (standard MCP transport)

Example:
  proofscope mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Proofscope MCP Server\n")
	fmt.Fprintf(os.Stderr, "Repository: %s\n", root)
	fmt.Fprintf(os.Stderr, "Index: %s\n\n", index.Path(root))

	server, err := mcp.NewServer(root, cfg)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}
	defer server.Close()

	// Serve (blocks until shutdown)
	if err := server.Serve(ctx); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
