package extract

import "github.com/proofscope/proofscope/internal/vlang"

// verifiedBlockName is the macro whose body the base grammar treats as an
// opaque token stream but which actually contains ordinary declarations.
const verifiedBlockName = "verus"

// reparseMode selects the grammar applied to a verified block's body.
type reparseMode int

const (
	// reparseTopLevel re-interprets the body as item-level declarations.
	reparseTopLevel reparseMode = iota
	// reparseImplBody re-interprets the body as impl-block members.
	reparseImplBody
)

// isVerifiedBlock reports whether a macro invocation is a verified block.
func isVerifiedBlock(m *vlang.MacroItem) bool {
	return m.Name() == verifiedBlockName
}

// reparseMacroBody re-interprets a verified block's captured tokens under the
// given mode. Failure is atomic and silent: a malformed body yields ok=false
// with no partial result, and the caller skips the block. The tokens keep
// their original source positions, so spans in re-parsed declarations still
// point into the original text.
func reparseMacroBody(m *vlang.MacroItem, mode reparseMode) (items []vlang.Item, ok bool) {
	var err error
	switch mode {
	case reparseImplBody:
		items, err = vlang.ParseImplMembers(m.Body)
	default:
		items, err = vlang.ParseItems(m.Body)
	}
	if err != nil {
		return nil, false
	}
	return items, true
}
