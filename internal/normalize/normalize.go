// Package normalize rewrites search queries so that semantically equivalent
// phrasings of a mathematical property match the same indexed lemmas.
package normalize

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

type replacement struct {
	pattern *regexp.Regexp
	repl    string
}

// operatorReplacements canonicalize mathematical words. "mod" and "modulo"
// are normalized to the word, not the % symbol: full-text analyzers keep the
// word but drop the symbol.
var operatorReplacements = []replacement{
	{regexp.MustCompile(`(?i)\btimes\b`), "*"},
	{regexp.MustCompile(`(?i)\bmul\b`), "*"},
	{regexp.MustCompile(`(?i)\bmultiply\b`), "*"},
	{regexp.MustCompile(`(?i)\bdiv\b`), "/"},
	{regexp.MustCompile(`(?i)\bdivide\b`), "/"},
	{regexp.MustCompile(`(?i)\bmodulo\b`), "mod"},
	{regexp.MustCompile(`(?i)\bwhen\b`), "if"},
	{regexp.MustCompile(`(?i)\biff\b`), "if and only if"},
	{regexp.MustCompile(`(?i)\bleq\b`), "<="},
	{regexp.MustCompile(`(?i)\bgeq\b`), ">="},
	{regexp.MustCompile(`(?i)\bneq\b`), "!="},
}

// mathVarPattern finds single-letter variables used in mathematical context:
// the letter must be followed by an operator or an if/then keyword. The
// follower is a capture group rather than a lookahead (RE2 has none); only
// group 1 is the variable.
var mathVarPattern = regexp.MustCompile(`(?i)\b([a-z])\b(\s*[*+\-/<>=]|\s+(?:if|then)\b)`)

var (
	ifThenPattern   = regexp.MustCompile(`(?i)if\s+(.+?)\s+then\s+(.+)$`)
	backwardIfSplit = regexp.MustCompile(`(?i)\s+if\s+`)
	andSplitPattern = regexp.MustCompile(`(?i)\s+and\s+`)
)

// Normalize canonicalizes operators and renames single-letter variables to
// generic placeholders so differently named but identical properties match.
func Normalize(query string) string {
	return normalizeVariables(OperatorsOnly(query))
}

// OperatorsOnly canonicalizes operator words without touching variable
// names. Used for lemma text, where original names should survive.
func OperatorsOnly(text string) string {
	result := text
	for _, r := range operatorReplacements {
		result = r.pattern.ReplaceAllString(result, r.repl)
	}
	return result
}

func normalizeVariables(query string) string {
	matches := mathVarPattern.FindAllStringSubmatch(query, -1)
	if len(matches) == 0 {
		return query
	}

	seen := map[string]bool{}
	var vars []string
	for _, m := range matches {
		v := strings.ToLower(m[1])
		if !seen[v] {
			seen[v] = true
			vars = append(vars, v)
		}
	}
	sort.Strings(vars)

	result := query
	for i, v := range vars {
		generic := fmt.Sprintf("var%d", i+1)
		re := regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(v) + `\b`)
		result = re.ReplaceAllString(result, generic)
	}
	return result
}

// Variations generates alternative phrasings of a query: mod/% swaps and
// implication-order swaps ("if A then B" <-> "B if A"), deduplicated in
// order of generation.
func Variations(query string) []string {
	variations := []string{query}

	lower := strings.ToLower(query)
	if strings.Contains(lower, "mod") && !strings.Contains(query, "%") {
		variations = append(variations, strings.ReplaceAll(query, "mod", "%"))
	} else if strings.Contains(query, "%") && !strings.Contains(lower, "mod") {
		variations = append(variations, strings.ReplaceAll(query, "%", "mod"))
	}

	if m := ifThenPattern.FindStringSubmatch(query); m != nil {
		condition := strings.TrimSpace(m[1])
		conclusion := strings.TrimSpace(m[2])
		variations = append(variations, conclusion+" if "+condition)
	}

	// "B if A" -> "if A then B", only when not already in if-then form.
	if !strings.Contains(lower, "then") {
		if loc := backwardIfSplit.FindStringIndex(query); loc != nil && loc[0] > 0 {
			conclusion := strings.TrimSpace(query[:loc[0]])
			condition := strings.TrimSpace(query[loc[1]:])
			if conclusion != "" && condition != "" {
				variations = append(variations, "if "+condition+" then "+conclusion)

				if parts := andSplitPattern.Split(condition, -1); len(parts) == 2 {
					swapped := parts[1] + " and " + parts[0]
					variations = append(variations,
						conclusion+" if "+swapped,
						"if "+swapped+" then "+conclusion)
				}
			}
		}
	}

	seen := map[string]bool{}
	unique := variations[:0]
	for _, v := range variations {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}
