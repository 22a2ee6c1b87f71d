package extract

import "github.com/proofscope/proofscope/internal/vlang"

// extractSpecs converts one matched declaration into a record. The clauses
// and name come from the signature; the span comes from the enclosing
// declaration (attributes included, doc comments excluded). Extraction from
// a matched declaration cannot fail.
func extractSpecs(fn *vlang.FnItem) FunctionSpecs {
	sig, span := fn.Sig, fn.Span()
	rec := newRecord()
	rec.Name = sig.Name
	rec.IsProof = sig.Mode == vlang.ModeProof
	rec.Signature = vlang.Render(sig.Tokens)
	rec.Doc = fn.Doc

	start, end := span.StartLine, span.EndLine
	rec.LineNumber = &start
	rec.EndLine = &end

	rec.Requires = renderClauses(sig.Requires)
	rec.Ensures = renderClauses(sig.Ensures)
	rec.Decreases = renderClauses(sig.Decreases)
	return rec
}

// renderClauses renders each clause expression to one text item, preserving
// clause order.
func renderClauses(clauses []vlang.Clause) []string {
	out := make([]string, 0, len(clauses))
	for _, c := range clauses {
		out = append(out, vlang.RenderClause(c))
	}
	return out
}
