// Package extract locates every function-like declaration in a verification
// source file and converts its specification clauses into structured records.
// It walks the parsed tree through modules, impl blocks, trait bodies and
// verified-block macros (re-parsing their opaque token bodies), and never
// fails across its public surface: every query returns records, with failures
// carried in the record's ParseError field.
package extract

// FunctionSpecs is the extraction record for one function-like declaration.
// A record is an independent value: queries never share clause slices
// between records, and callers own the results outright.
type FunctionSpecs struct {
	// Name is the declaration's identifier. Empty only in the degenerate
	// record produced when the whole file fails to parse.
	Name string `json:"name"`
	// FilePath is caller-supplied pass-through metadata; the core never
	// reads it.
	FilePath string `json:"file_path"`
	// LineNumber and EndLine are the declaration's 1-indexed source range.
	// Both are set together, and absent only on the degenerate error record.
	LineNumber *int `json:"line_number"`
	EndLine    *int `json:"end_line"`
	// Requires, Ensures and Decreases hold one canonically rendered
	// expression per clause, in source order. Empty means the declaration
	// carries no clause of that kind.
	Requires  []string `json:"requires"`
	Ensures   []string `json:"ensures"`
	Decreases []string `json:"decreases"`
	// Signature is the canonical rendering of the declaration header:
	// mode keyword, fn, name, generics, parameters, return annotation.
	Signature string `json:"signature"`
	// IsProof is true iff the declaration is in proof mode.
	IsProof bool `json:"is_proof"`
	// Doc is the declaration's doc-comment text, newline-joined. Carried for
	// indexing; not part of the export record.
	Doc string `json:"-"`
	// ParseError is set when extraction could not proceed: a file-level
	// syntax error, or a name-targeted query that found nothing.
	ParseError string `json:"parse_error,omitempty"`
}

// newRecord returns a record with the clause sequences initialized, so that
// "no clauses" serializes as empty lists rather than null.
func newRecord() FunctionSpecs {
	return FunctionSpecs{
		Requires:  []string{},
		Ensures:   []string{},
		Decreases: []string{},
	}
}

// errorRecord is the degenerate record carrying only a failure message.
func errorRecord(name, msg string) FunctionSpecs {
	rec := newRecord()
	rec.Name = name
	rec.ParseError = msg
	return rec
}

// clone deep-copies a record so cached results never alias live ones.
func (f FunctionSpecs) clone() FunctionSpecs {
	out := f
	if f.LineNumber != nil {
		n := *f.LineNumber
		out.LineNumber = &n
	}
	if f.EndLine != nil {
		n := *f.EndLine
		out.EndLine = &n
	}
	out.Requires = append([]string{}, f.Requires...)
	out.Ensures = append([]string{}, f.Ensures...)
	out.Decreases = append([]string{}, f.Decreases...)
	return out
}
