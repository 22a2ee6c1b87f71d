package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/proofscope/proofscope/internal/extract"
)

var (
	parseName      string
	parseProofOnly bool
	parseValidate  bool
)

// parseCmd represents the parse command
var parseCmd = &cobra.Command{
	Use:   "parse FILE",
	Short: "Extract function specifications from a source file",
	Long: `Parse reads a verification-language source file and prints one JSON
record per function-like declaration: its signature, mode and the
requires/ensures/decreases clauses it carries.

A file that fails to parse still produces output: a single record whose
parse_error field carries the syntax error.

Examples:
  # All declarations in a file
  proofscope parse src/arith.rs

  # One declaration by name
  proofscope parse src/arith.rs --name lemma_mul_inequality

  # Proof-mode declarations only
  proofscope parse src/arith.rs --proof-only

  # Just check that the file parses
  proofscope parse src/arith.rs --validate`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseName, "name", "", "extract only the declaration with this name")
	parseCmd.Flags().BoolVar(&parseProofOnly, "proof-only", false, "extract only proof-mode declarations")
	parseCmd.Flags().BoolVar(&parseValidate, "validate", false, "only check that the file parses")
}

func runParse(cmd *cobra.Command, args []string) error {
	content, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	source := string(content)

	if parseValidate {
		if extract.IsValid(source) {
			fmt.Println("valid")
			return nil
		}
		return fmt.Errorf("%s does not parse", args[0])
	}

	var out interface{}
	switch {
	case parseName != "":
		out = extract.ParseOne(source, parseName)
	case parseProofOnly:
		out = extract.FilterProof(source)
	default:
		out = extract.ParseAll(source)
	}

	return printJSON(out)
}

// printJSON writes a value as indented JSON to stdout.
func printJSON(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Println(string(data))
	return nil
}
