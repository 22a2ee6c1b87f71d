package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/proofscope/proofscope/internal/config"
	"github.com/proofscope/proofscope/internal/extract"
	"github.com/proofscope/proofscope/internal/search"
)

// Server manages the MCP server lifecycle: the searcher, the extraction
// cache and the index watcher.
type Server struct {
	root      string
	searcher  *search.Searcher
	extractor *extract.Extractor
	watcher   *FileWatcher
	mcp       *server.MCPServer
}

// NewServer creates an MCP server for the repository at root. The lemma
// index must already exist; run indexing first.
func NewServer(root string, cfg *config.Config) (*Server, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving root: %w", err)
	}

	searcher, err := search.NewSearcher(absRoot, cfg)
	if err != nil {
		return nil, err
	}

	extractor, err := extract.NewExtractor(absRoot, cfg.Extraction.MaxCachedFiles)
	if err != nil {
		searcher.Close()
		return nil, err
	}

	mcpServer := server.NewMCPServer(
		"proofscope-mcp",
		"1.0.0",
		server.WithToolCapabilities(true),
	)
	AddLemmaSearchTool(mcpServer, searcher)
	AddSpecParseTool(mcpServer, extractor)

	// Reload search whenever the index directory changes underneath us.
	watcher, err := NewFileWatcher(searcher, filepath.Join(absRoot, ".proofscope"))
	if err != nil {
		searcher.Close()
		extractor.Close()
		return nil, fmt.Errorf("failed to create index watcher: %w", err)
	}

	return &Server{
		root:      absRoot,
		searcher:  searcher,
		extractor: extractor,
		watcher:   watcher,
		mcp:       mcpServer,
	}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	s.watcher.Start(ctx)
	defer s.watcher.Stop()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close releases all resources.
func (s *Server) Close() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.extractor != nil {
		s.extractor.Close()
	}
	if s.searcher != nil {
		return s.searcher.Close()
	}
	return nil
}
