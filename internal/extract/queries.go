package extract

import (
	"fmt"

	"github.com/proofscope/proofscope/internal/vlang"
)

// ParseAll extracts specifications for every function-like declaration in
// the source text, in pre-order source order. If the text does not parse,
// the result is a single degenerate record whose ParseError carries the
// syntax error; ParseAll never returns an error value.
func ParseAll(content string) []FunctionSpecs {
	file, err := vlang.Parse(content)
	if err != nil {
		return []FunctionSpecs{errorRecord("", fmt.Sprintf("Parse error: %v", err))}
	}
	f := findAll()
	f.visitFile(file)
	if f.specs == nil {
		return []FunctionSpecs{}
	}
	return f.specs
}

// ParseOne extracts the specification of the named declaration. Traversal
// visits every scope; the first match in pre-order wins. A missing name
// yields a record echoing the query with a "not found" ParseError; a syntax
// error yields a record echoing the query with the parse error, so the two
// failures stay distinguishable.
func ParseOne(content, name string) FunctionSpecs {
	file, err := vlang.Parse(content)
	if err != nil {
		return errorRecord(name, fmt.Sprintf("Parse error: %v", err))
	}
	f := findNamed(name)
	f.visitFile(file)
	if len(f.specs) > 0 {
		return f.specs[0]
	}
	return errorRecord(name, fmt.Sprintf("Function '%s' not found", name))
}

// FilterProof extracts every proof-mode declaration. Parser failure behaves
// exactly as in ParseAll: the degenerate error record is returned unfiltered,
// since it is not a function record.
func FilterProof(content string) []FunctionSpecs {
	file, err := vlang.Parse(content)
	if err != nil {
		return []FunctionSpecs{errorRecord("", fmt.Sprintf("Parse error: %v", err))}
	}
	f := findAll()
	f.visitFile(file)
	proof := []FunctionSpecs{}
	for _, rec := range f.specs {
		if rec.IsProof {
			proof = append(proof, rec)
		}
	}
	return proof
}

// SelectNamed picks the named record out of an extracted batch with ParseOne
// semantics: the first match wins, a parse-error record passes through with
// the queried name attached, and a missing name yields a "not found" record.
func SelectNamed(records []FunctionSpecs, name string) FunctionSpecs {
	for _, rec := range records {
		if rec.ParseError != "" && rec.Name == "" {
			rec.Name = name
			return rec
		}
		if rec.Name == name {
			return rec
		}
	}
	return errorRecord(name, fmt.Sprintf("Function '%s' not found", name))
}

// SelectProof filters an extracted batch down to proof-mode records with
// FilterProof semantics: a parse-error record passes through unfiltered.
func SelectProof(records []FunctionSpecs) []FunctionSpecs {
	proof := []FunctionSpecs{}
	for _, rec := range records {
		if rec.IsProof || rec.ParseError != "" {
			proof = append(proof, rec)
		}
	}
	return proof
}

// IsValid reports whether the source text parses. No extraction is done.
func IsValid(content string) bool {
	_, err := vlang.Parse(content)
	return err == nil
}
