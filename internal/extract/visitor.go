package extract

import "github.com/proofscope/proofscope/internal/vlang"

// finder walks a parsed tree in pre-order and collects one record per
// function-like declaration. The accumulator lives on the finder, which is
// local to a single query invocation; nothing is shared across calls.
type finder struct {
	target    string
	hasTarget bool
	specs     []FunctionSpecs
}

func findAll() *finder { return &finder{} }

func findNamed(target string) *finder {
	return &finder{target: target, hasTarget: true}
}

// shouldCollect applies the optional exact-name filter. The filter never
// short-circuits traversal: duplicate names in different scopes are legal,
// so every nested scope is still visited after a match.
func (f *finder) shouldCollect(name string) bool {
	return !f.hasTarget || name == f.target
}

func (f *finder) collect(fn *vlang.FnItem) {
	if f.shouldCollect(fn.Sig.Name) {
		f.specs = append(f.specs, extractSpecs(fn))
	}
}

func (f *finder) visitFile(file *vlang.File) {
	f.visitItems(file.Items)
}

func (f *finder) visitItems(items []vlang.Item) {
	for _, it := range items {
		f.visitItem(it)
	}
}

// visitItem handles one item-level declaration. Outer declarations are
// collected before anything nested inside them; siblings keep source order.
func (f *finder) visitItem(it vlang.Item) {
	switch n := it.(type) {
	case *vlang.FnItem:
		f.collect(n)
	case *vlang.ModItem:
		f.visitItems(n.Items)
	case *vlang.TraitItem:
		f.visitTraitMembers(n.Members)
	case *vlang.ImplItem:
		f.visitImplMembers(n.Members)
	case *vlang.MacroItem:
		if !isVerifiedBlock(n) {
			return
		}
		// The verified block's body is ordinary item syntax the base grammar
		// could not see through. A malformed body is skipped silently.
		if items, ok := reparseMacroBody(n, reparseTopLevel); ok {
			f.visitItems(items)
		}
	}
}

// visitImplMembers handles impl-block members, including verified blocks
// written inside the impl body, whose members are visited as if they were
// written directly in the block. Nesting recurses without bound.
func (f *finder) visitImplMembers(members []vlang.Item) {
	for _, m := range members {
		switch n := m.(type) {
		case *vlang.FnItem:
			f.collect(n)
		case *vlang.MacroItem:
			if !isVerifiedBlock(n) {
				continue
			}
			if items, ok := reparseMacroBody(n, reparseImplBody); ok {
				f.visitImplMembers(items)
			}
		}
	}
}

// visitTraitMembers collects trait method declarations. Macro invocations in
// trait bodies are not re-interpreted.
func (f *finder) visitTraitMembers(members []vlang.Item) {
	for _, m := range members {
		if n, ok := m.(*vlang.FnItem); ok {
			f.collect(n)
		}
	}
}
