// Package cli wires the proofscope commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/internal/config"
)

var (
	rootDir string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "proofscope",
	Short: "Proofscope - specification extraction and lemma search for verified code",
	Long: `Proofscope extracts requires/ensures/decreases specifications from
verification-language source files and makes the lemmas of a codebase
searchable by natural language description.

Typical workflow:
  proofscope index          # build the lemma index for the repository
  proofscope search QUERY   # find lemmas by what they guarantee
  proofscope parse FILE     # dump the specifications of one file
  proofscope mcp            # serve both capabilities over MCP`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "root", "", "repository root (default is the working directory)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// resolveRoot returns the repository root the command operates on.
func resolveRoot() (string, error) {
	if rootDir != "" {
		return filepath.Abs(rootDir)
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	return wd, nil
}

// loadConfig loads .proofscope.yaml from the repository root.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.LoadConfigFromDir(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Using repository root %s\n", root)
	}
	return cfg, nil
}
