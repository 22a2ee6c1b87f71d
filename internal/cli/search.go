package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/internal/search"
)

var (
	searchTopK int
	searchJSON bool
)

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search QUERY...",
	Short: "Find lemmas by natural language description",
	Long: `Search matches a natural language query against the indexed lemmas:
their names, documentation, signatures and pre/postconditions. Operator
words in the query are canonicalized (times -> *, leq -> <=, and so on)
before matching.

Run 'proofscope index' first.

Examples:
  proofscope search multiplication preserves inequality
  proofscope search "x mod y is bounded" --top-k 3
  proofscope search lemma_mul_inequality --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "k", 0, "maximum number of results (default from configuration)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "print results as JSON")
}

func runSearch(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	searcher, err := search.NewSearcher(root, cfg)
	if err != nil {
		return err
	}
	defer searcher.Close()

	query := strings.Join(args, " ")
	results, err := searcher.Search(context.Background(), query, searchTopK)
	if err != nil {
		return err
	}

	if searchJSON {
		return printJSON(results)
	}

	if len(results) == 0 {
		fmt.Println("No matching lemmas found.")
		return nil
	}
	for i, r := range results {
		fmt.Printf("%d. (%.3f)\n%s\n", i+1, r.Score, r.Lemma.Display())
	}
	return nil
}
