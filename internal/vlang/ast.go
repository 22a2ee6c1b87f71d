package vlang

// File is the root of a parsed source file.
type File struct {
	Items []Item
}

// Item is one declaration. The parser produces a closed set of shapes:
// *FnItem, *StructItem, *ImplItem, *TraitItem, *ModItem, *ConstItem,
// *UseItem, *TypeAliasItem and *MacroItem. Impl and trait bodies reuse the
// same shapes restricted to the members their grammar allows.
type Item interface {
	Span() Span
	item()
}

// Mode is a declaration's execution mode.
type Mode int

const (
	// ModeDefault is an unmarked declaration (ordinary exec semantics).
	ModeDefault Mode = iota
	// ModeProof marks a verification-only declaration.
	ModeProof
	// ModeSpec marks a specification-only declaration.
	ModeSpec
	// ModeExec is the explicit exec marker.
	ModeExec
)

func (m Mode) String() string {
	switch m {
	case ModeProof:
		return "proof"
	case ModeSpec:
		return "spec"
	case ModeExec:
		return "exec"
	default:
		return "default"
	}
}

// Clause is one requires/ensures/decreases expression, kept as the raw
// token run so the printer can render it canonically.
type Clause struct {
	Tokens []Token
}

// Signature is a function-like declaration's header: qualifiers, mode, name,
// generics, parameters and return annotation — everything up to (and
// excluding) the clause lists and the body.
type Signature struct {
	Name string
	Mode Mode
	// Tokens covers the signature proper: optional const/async/unsafe, the
	// mode keyword, fn, name, generics, parameters, return annotation and
	// where clause. Visibility and publication markers (pub, open, closed)
	// are not part of the signature.
	Tokens     []Token
	Requires   []Clause
	Ensures    []Clause
	Recommends []Clause
	Decreases  []Clause
}

// FnItem is a function declaration: free-standing, impl method or trait
// method. Trait methods may have no body.
type FnItem struct {
	Doc  string
	Sig  *Signature
	span Span
}

// StructItem covers struct, enum and union declarations. Only the name is
// retained; bodies are consumed, not modeled.
type StructItem struct {
	Doc  string
	Name string
	span Span
}

// ImplItem is an impl block and its members.
type ImplItem struct {
	Members []Item
	span    Span
}

// TraitItem is a trait declaration and its members.
type TraitItem struct {
	Name    string
	Members []Item
	span    Span
}

// ModItem is a module declaration. Items is nil for `mod name;`.
type ModItem struct {
	Name  string
	Items []Item
	span  Span
}

// ConstItem covers const, static and global declarations.
type ConstItem struct {
	Name string
	span Span
}

// UseItem is a use declaration, consumed but not modeled.
type UseItem struct {
	span Span
}

// TypeAliasItem is a type alias, consumed but not modeled.
type TypeAliasItem struct {
	Name string
	span Span
}

// MacroItem is a macro invocation the grammar cannot see through. Body holds
// the delimited token stream verbatim (with original positions) so callers
// can re-parse it.
type MacroItem struct {
	Path string
	Body []Token
	span Span
}

// Name returns the final path segment of the invoked macro.
func (m *MacroItem) Name() string {
	for i := len(m.Path) - 1; i >= 0; i-- {
		if m.Path[i] == ':' {
			return m.Path[i+1:]
		}
	}
	return m.Path
}

func (n *FnItem) Span() Span        { return n.span }
func (n *StructItem) Span() Span    { return n.span }
func (n *ImplItem) Span() Span      { return n.span }
func (n *TraitItem) Span() Span     { return n.span }
func (n *ModItem) Span() Span       { return n.span }
func (n *ConstItem) Span() Span     { return n.span }
func (n *UseItem) Span() Span       { return n.span }
func (n *TypeAliasItem) Span() Span { return n.span }
func (n *MacroItem) Span() Span     { return n.span }

func (*FnItem) item()        {}
func (*StructItem) item()    {}
func (*ImplItem) item()      {}
func (*TraitItem) item()     {}
func (*ModItem) item()       {}
func (*ConstItem) item()     {}
func (*UseItem) item()       {}
func (*TypeAliasItem) item() {}
func (*MacroItem) item()     {}
