// Package lemma defines the indexed lemma model: one searchable document per
// lemma-like declaration, built from an extraction record plus the
// documentation found above it.
package lemma

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/proofscope/proofscope/internal/normalize"
)

// SourceProject and SourceVstd are the conventional source labels: a
// project's own lemmas versus the verification standard library's.
const (
	SourceProject = "project"
	SourceVstd    = "vstd"
)

// Info is the structured description of one lemma.
type Info struct {
	Name            string   `json:"name"`
	FilePath        string   `json:"file_path"`
	LineNumber      int      `json:"line_number,omitempty"`
	Documentation   string   `json:"documentation"`
	Signature       string   `json:"signature"`
	RequiresClauses []string `json:"requires_clauses"`
	EnsuresClauses  []string `json:"ensures_clauses"`
	SymbolID        string   `json:"symbol_id"`
	Source          string   `json:"source"`
}

// SymbolID derives a deterministic identifier for a lemma occurrence, stable
// across index rebuilds of unchanged sources.
func SymbolID(filePath, name string, line int) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, fmt.Appendf(nil, "%s#%s@%d", filePath, name, line)).String()
}

// SearchableText renders the lemma as natural language for full-text
// matching. With normalized set, operator words are canonicalized (times ->
// *, leq -> <= and so on) to improve matching against mathematical queries;
// variable names are left alone.
func (l *Info) SearchableText(normalized bool) string {
	parts := []string{
		"Name: " + l.Name,
		"Documentation: " + l.Documentation,
		"Signature: " + l.Signature,
	}
	if len(l.RequiresClauses) > 0 {
		parts = append(parts, "Preconditions: "+strings.Join(l.RequiresClauses, " AND "))
	}
	if len(l.EnsuresClauses) > 0 {
		parts = append(parts, "Postconditions: "+strings.Join(l.EnsuresClauses, " AND "))
	}
	text := strings.Join(parts, " ")
	if normalized {
		text = normalize.OperatorsOnly(text)
	}
	return text
}

// Display formats the lemma for terminal output.
func (l *Info) Display() string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s\n", l.Source, l.Name)
	if l.FilePath != "" {
		if l.LineNumber > 0 {
			fmt.Fprintf(&b, "  %s:%d\n", l.FilePath, l.LineNumber)
		} else {
			fmt.Fprintf(&b, "  %s\n", l.FilePath)
		}
	}
	if l.Documentation != "" {
		fmt.Fprintf(&b, "  %s\n", l.Documentation)
	}
	fmt.Fprintf(&b, "  %s\n", l.Signature)
	for _, req := range l.RequiresClauses {
		fmt.Fprintf(&b, "    requires %s\n", req)
	}
	for _, ens := range l.EnsuresClauses {
		fmt.Fprintf(&b, "    ensures %s\n", ens)
	}
	return b.String()
}
