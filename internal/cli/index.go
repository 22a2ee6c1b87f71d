package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/internal/index"
)

var quietFlag bool

// indexCmd represents the index command
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the lemma index for the repository",
	Long: `Index walks the repository, extracts the specifications of every
lemma-like declaration (proof functions plus configured name prefixes)
and stores them in a full-text index under .proofscope/.

Examples:
  # Index the current directory
  proofscope index

  # Index without progress output
  proofscope index --quiet

  # Index another repository
  proofscope index --root /path/to/project`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().BoolVarP(&quietFlag, "quiet", "q", false, "Disable progress bars and non-error output")
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		fmt.Println("\nInterrupted! Cancelling indexing...")
		cancel()
	}()

	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	progress := NewCLIProgressReporter(quietFlag)
	ix, err := index.New(root, cfg, progress)
	if err != nil {
		return fmt.Errorf("failed to create indexer: %w", err)
	}
	defer ix.Close()

	stats, err := ix.Run(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("indexing cancelled")
		}
		return fmt.Errorf("indexing failed: %w", err)
	}

	// Print summary (if not quiet, OnComplete already printed it)
	if quietFlag {
		fmt.Printf("Indexing complete: %d lemmas from %d files in %.2fs\n",
			stats.Lemmas, stats.Files, stats.Elapsed.Seconds())
	}

	return nil
}
