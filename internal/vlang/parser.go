package vlang

import (
	"fmt"
	"strings"
)

// SyntaxError is a terminal parse failure with the position that produced it.
type SyntaxError struct {
	Msg  string
	Line int
	Col  int
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%s at line %d, column %d", e.Msg, e.Line, e.Col)
	}
	return e.Msg
}

// clauseKeywords terminate signature/type scanning and clause expressions.
var clauseKeywords = map[string]bool{
	"requires":         true,
	"ensures":          true,
	"decreases":        true,
	"recommends":       true,
	"returns":          true,
	"default_ensures":  true,
	"opens_invariants": true,
	"no_unwind":        true,
	"when":             true,
	"via":              true,
}

// Parse lexes and parses source text into a File, or returns a *SyntaxError.
func Parse(src string) (*File, error) {
	toks, err := Lex(src)
	if err != nil {
		return nil, err
	}
	p := newParser(toks)
	items, err := p.itemList(false)
	if err != nil {
		return nil, err
	}
	return &File{Items: items}, nil
}

// ParseItems re-parses a captured token stream as a sequence of item-level
// declarations, consuming the whole stream. Failure is atomic: no partial
// result is returned.
func ParseItems(toks []Token) ([]Item, error) {
	p := newParser(toks)
	return p.itemList(false)
}

// ParseImplMembers re-parses a captured token stream as a sequence of
// impl-body members, consuming the whole stream. Same atomicity as
// ParseItems.
func ParseImplMembers(toks []Token) ([]Item, error) {
	p := newParser(toks)
	return p.memberList(false)
}

type parser struct {
	toks []Token
	pos  int
	eof  Token
}

func newParser(toks []Token) *parser {
	eof := Token{Kind: EOF, Line: 1, Col: 1}
	if n := len(toks); n > 0 {
		last := toks[n-1]
		eof = Token{Kind: EOF, Line: last.EndLine, Col: last.EndCol}
	}
	return &parser{toks: toks, eof: eof}
}

func (p *parser) peek() Token {
	if p.pos >= len(p.toks) {
		return p.eof
	}
	return p.toks[p.pos]
}

func (p *parser) peekAt(off int) Token {
	if p.pos+off >= len(p.toks) {
		return p.eof
	}
	return p.toks[p.pos+off]
}

func (p *parser) next() Token {
	tok := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return tok
}

func (p *parser) last() Token {
	if p.pos == 0 {
		return p.eof
	}
	return p.toks[p.pos-1]
}

func (p *parser) errExpected(what string) error {
	tok := p.peek()
	found := "end of input"
	if tok.Kind != EOF {
		found = fmt.Sprintf("%q", tok.Text)
	}
	return &SyntaxError{
		Msg:  fmt.Sprintf("expected %s, found %s", what, found),
		Line: tok.Line,
		Col:  tok.Col,
	}
}

func (p *parser) expectIdent(text string) (Token, error) {
	if !p.peek().IsIdent(text) {
		return Token{}, p.errExpected(fmt.Sprintf("%q", text))
	}
	return p.next(), nil
}

func (p *parser) expectAnyIdent(what string) (Token, error) {
	if p.peek().Kind != Ident {
		return Token{}, p.errExpected(what)
	}
	return p.next(), nil
}

// docComments consumes a run of doc-comment tokens and joins their bodies.
func (p *parser) docComments() string {
	var lines []string
	for p.peek().Kind == DocComment {
		lines = append(lines, p.next().Text)
	}
	return strings.Join(lines, "\n")
}

// skipAttributes consumes #[...] and #![...] attribute groups.
func (p *parser) skipAttributes() error {
	for p.peek().IsPunct("#") {
		p.next()
		if p.peek().IsPunct("!") {
			p.next()
		}
		if !p.peek().IsPunct("[") {
			return p.errExpected("attribute body")
		}
		if _, err := p.group(); err != nil {
			return err
		}
	}
	return nil
}

// skipVisibility consumes pub and pub(crate)/pub(super)/pub(in path).
func (p *parser) skipVisibility() error {
	if !p.peek().IsIdent("pub") {
		return nil
	}
	p.next()
	if p.peek().IsPunct("(") {
		if _, err := p.group(); err != nil {
			return err
		}
	}
	return nil
}

// skipPublication consumes publication and broadcast markers that may sit
// between visibility and the mode keyword.
func (p *parser) skipPublication() {
	for {
		tok := p.peek()
		if tok.IsIdent("open") || tok.IsIdent("closed") || tok.IsIdent("broadcast") || tok.IsIdent("uninterp") {
			// Bare "open"/"closed" idents only count as markers when a
			// function follows; this is item position, so they always do.
			p.next()
			continue
		}
		return
	}
}

// group consumes a balanced (...)/[...]/{...} token group, delimiters
// included. String and char literals are single tokens, so delimiters inside
// them cannot unbalance the scan.
func (p *parser) group() ([]Token, error) {
	open := p.peek()
	if !open.IsPunct("(") && !open.IsPunct("[") && !open.IsPunct("{") {
		return nil, p.errExpected("delimited group")
	}
	var out []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == EOF {
			return nil, &SyntaxError{
				Msg:  fmt.Sprintf("unbalanced %q", open.Text),
				Line: open.Line,
				Col:  open.Col,
			}
		}
		p.next()
		out = append(out, tok)
		if tok.Kind == Punct {
			switch tok.Text {
			case "(", "[", "{":
				depth++
			case ")", "]", "}":
				depth--
			}
		}
		if depth == 0 {
			return out, nil
		}
	}
}

// angleGroup consumes a balanced generic-argument group starting at "<".
// Token-level shifts (<< and >>) count twice; -> is its own token and is
// never mistaken for a closer. Nested delimiter groups are skipped whole so
// const-generic expressions cannot unbalance the scan.
func (p *parser) angleGroup() ([]Token, error) {
	open := p.peek()
	var out []Token
	depth := 0
	for {
		tok := p.peek()
		if tok.Kind == EOF {
			return nil, &SyntaxError{Msg: "unbalanced generic arguments", Line: open.Line, Col: open.Col}
		}
		if tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{") {
			grp, err := p.group()
			if err != nil {
				return nil, err
			}
			out = append(out, grp...)
			continue
		}
		p.next()
		out = append(out, tok)
		if tok.Kind == Punct {
			switch tok.Text {
			case "<":
				depth++
			case "<<":
				depth += 2
			case ">":
				depth--
			case ">>":
				depth -= 2
			}
		}
		if depth <= 0 {
			return out, nil
		}
	}
}

// typeTokens consumes type-position tokens until a top-level stop: the body
// brace, a semicolon, a closing brace, or a clause/where keyword.
func (p *parser) typeTokens() ([]Token, error) {
	var out []Token
	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF:
			return out, nil
		case tok.IsPunct(";") || tok.IsPunct("{") || tok.IsPunct("}"):
			return out, nil
		case tok.Kind == Ident && (clauseKeywords[tok.Text] || tok.Text == "where"):
			return out, nil
		case tok.IsPunct("(") || tok.IsPunct("["):
			grp, err := p.group()
			if err != nil {
				return nil, err
			}
			out = append(out, grp...)
		case tok.IsPunct("<"):
			grp, err := p.angleGroup()
			if err != nil {
				return nil, err
			}
			out = append(out, grp...)
		default:
			out = append(out, p.next())
		}
	}
}

// skipToSemi consumes tokens through the next top-level semicolon.
func (p *parser) skipToSemi() error {
	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF:
			return p.errExpected(`";"`)
		case tok.IsPunct(";"):
			p.next()
			return nil
		case tok.IsPunct("(") || tok.IsPunct("[") || tok.IsPunct("{"):
			if _, err := p.group(); err != nil {
				return err
			}
		default:
			p.next()
		}
	}
}

type spanSetter interface {
	Item
	setSpan(Span)
}

func (n *FnItem) setSpan(s Span)        { n.span = s }
func (n *StructItem) setSpan(s Span)    { n.span = s }
func (n *ImplItem) setSpan(s Span)      { n.span = s }
func (n *TraitItem) setSpan(s Span)     { n.span = s }
func (n *ModItem) setSpan(s Span)       { n.span = s }
func (n *ConstItem) setSpan(s Span)     { n.span = s }
func (n *UseItem) setSpan(s Span)       { n.span = s }
func (n *TypeAliasItem) setSpan(s Span) { n.span = s }
func (n *MacroItem) setSpan(s Span)     { n.span = s }

// itemList parses declarations until EOF, or until a closing brace when
// inBraces is set (the brace is left for the caller).
func (p *parser) itemList(inBraces bool) ([]Item, error) {
	items := []Item{}
	for {
		tok := p.peek()
		if tok.Kind == EOF {
			if inBraces {
				return nil, p.errExpected(`"}"`)
			}
			return items, nil
		}
		if inBraces && tok.IsPunct("}") {
			return items, nil
		}
		it, err := p.parseItem()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
}

func (p *parser) parseItem() (Item, error) {
	doc := p.docComments()
	start := p.peek()
	if err := p.skipAttributes(); err != nil {
		return nil, err
	}
	doc = joinDoc(doc, p.docComments())
	if err := p.skipVisibility(); err != nil {
		return nil, err
	}
	p.skipPublication()

	tok := p.peek()
	var (
		it  spanSetter
		err error
	)
	switch {
	case tok.IsIdent("use"):
		p.next()
		if err = p.skipToSemi(); err == nil {
			it = &UseItem{}
		}
	case tok.IsIdent("mod"):
		it, err = p.parseMod()
	case tok.IsIdent("struct") || tok.IsIdent("enum") || tok.IsIdent("union"):
		it, err = p.parseStructLike(doc)
	case tok.IsIdent("trait") || (tok.IsIdent("unsafe") && p.peekAt(1).IsIdent("trait")):
		it, err = p.parseTrait()
	case tok.IsIdent("impl") || (tok.IsIdent("unsafe") && p.peekAt(1).IsIdent("impl")):
		it, err = p.parseImpl()
	case tok.IsIdent("type"):
		it, err = p.parseTypeAlias()
	case tok.IsIdent("static") || tok.IsIdent("global"):
		it, err = p.parseConstLike()
	case tok.IsIdent("const") && !p.peekAt(1).IsIdent("fn") && !isModeKeyword(p.peekAt(1)):
		it, err = p.parseConstLike()
	case tok.IsIdent("macro_rules"):
		it, err = p.parseMacroRules()
	case isFnStart(tok):
		it, err = p.parseFn(doc)
	case tok.Kind == Ident && (p.peekAt(1).IsPunct("!") || p.peekAt(1).IsPunct("::")):
		it, err = p.parseMacroInvocation()
	default:
		return nil, p.errExpected("item")
	}
	if err != nil {
		return nil, err
	}
	it.setSpan(Span{
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   p.last().EndLine,
		EndCol:    p.last().EndCol,
	})
	return it, nil
}

// memberList parses impl/trait body members until EOF, or until a closing
// brace when inBraces is set.
func (p *parser) memberList(inBraces bool) ([]Item, error) {
	members := []Item{}
	for {
		tok := p.peek()
		if tok.Kind == EOF {
			if inBraces {
				return nil, p.errExpected(`"}"`)
			}
			return members, nil
		}
		if inBraces && tok.IsPunct("}") {
			return members, nil
		}
		m, err := p.parseMember()
		if err != nil {
			return nil, err
		}
		members = append(members, m)
	}
}

func (p *parser) parseMember() (Item, error) {
	doc := p.docComments()
	start := p.peek()
	if err := p.skipAttributes(); err != nil {
		return nil, err
	}
	doc = joinDoc(doc, p.docComments())
	if err := p.skipVisibility(); err != nil {
		return nil, err
	}
	p.skipPublication()

	tok := p.peek()
	var (
		it  spanSetter
		err error
	)
	switch {
	case tok.IsIdent("type"):
		it, err = p.parseTypeAlias()
	case tok.IsIdent("static"):
		it, err = p.parseConstLike()
	case tok.IsIdent("const") && !p.peekAt(1).IsIdent("fn") && !isModeKeyword(p.peekAt(1)):
		it, err = p.parseConstLike()
	case isFnStart(tok):
		it, err = p.parseFn(doc)
	case tok.Kind == Ident && (p.peekAt(1).IsPunct("!") || p.peekAt(1).IsPunct("::")):
		it, err = p.parseMacroInvocation()
	default:
		return nil, p.errExpected("impl member")
	}
	if err != nil {
		return nil, err
	}
	it.setSpan(Span{
		StartLine: start.Line,
		StartCol:  start.Col,
		EndLine:   p.last().EndLine,
		EndCol:    p.last().EndCol,
	})
	return it, nil
}

func isModeKeyword(tok Token) bool {
	return tok.IsIdent("proof") || tok.IsIdent("spec") || tok.IsIdent("exec")
}

func isFnStart(tok Token) bool {
	return tok.IsIdent("fn") || tok.IsIdent("const") || tok.IsIdent("async") ||
		tok.IsIdent("unsafe") || isModeKeyword(tok)
}

// parseFn parses a function declaration from its qualifiers through its body
// (or terminating semicolon for bodiless trait methods).
func (p *parser) parseFn(doc string) (*FnItem, error) {
	sig := &Signature{}
	var sigToks []Token

	for p.peek().IsIdent("const") || p.peek().IsIdent("async") || p.peek().IsIdent("unsafe") {
		sigToks = append(sigToks, p.next())
	}
	switch {
	case p.peek().IsIdent("proof"):
		sig.Mode = ModeProof
		sigToks = append(sigToks, p.next())
	case p.peek().IsIdent("spec"):
		sig.Mode = ModeSpec
		sigToks = append(sigToks, p.next())
		if p.peek().IsPunct("(") {
			// spec(checked)
			grp, err := p.group()
			if err != nil {
				return nil, err
			}
			sigToks = append(sigToks, grp...)
		}
	case p.peek().IsIdent("exec"):
		sig.Mode = ModeExec
		sigToks = append(sigToks, p.next())
	}

	fnTok, err := p.expectIdent("fn")
	if err != nil {
		return nil, err
	}
	sigToks = append(sigToks, fnTok)

	nameTok, err := p.expectAnyIdent("function name")
	if err != nil {
		return nil, err
	}
	sig.Name = nameTok.Text
	sigToks = append(sigToks, nameTok)

	if p.peek().IsPunct("<") {
		grp, err := p.angleGroup()
		if err != nil {
			return nil, err
		}
		sigToks = append(sigToks, grp...)
	}

	if !p.peek().IsPunct("(") {
		return nil, p.errExpected("parameter list")
	}
	params, err := p.group()
	if err != nil {
		return nil, err
	}
	sigToks = append(sigToks, params...)

	if p.peek().IsPunct("->") {
		sigToks = append(sigToks, p.next())
		ret, err := p.typeTokens()
		if err != nil {
			return nil, err
		}
		sigToks = append(sigToks, ret...)
	}
	if p.peek().IsIdent("where") {
		sigToks = append(sigToks, p.next())
		preds, err := p.typeTokens()
		if err != nil {
			return nil, err
		}
		sigToks = append(sigToks, preds...)
	}
	sig.Tokens = sigToks

	if err := p.parseClauses(sig); err != nil {
		return nil, err
	}

	switch {
	case p.peek().IsPunct("{"):
		if _, err := p.group(); err != nil {
			return nil, err
		}
	case p.peek().IsPunct(";"):
		p.next()
	default:
		return nil, p.errExpected("function body")
	}
	return &FnItem{Doc: doc, Sig: sig}, nil
}

// parseClauses consumes the specification clause lists that may follow a
// signature. Clause kinds the extractor does not surface (returns,
// opens_invariants, no_unwind, default_ensures) are parsed and dropped so
// that declarations carrying them still round-trip.
func (p *parser) parseClauses(sig *Signature) error {
	for {
		tok := p.peek()
		switch {
		case tok.IsIdent("requires"):
			p.next()
			cs, err := p.clauseExprs()
			if err != nil {
				return err
			}
			sig.Requires = append(sig.Requires, cs...)
		case tok.IsIdent("ensures"):
			p.next()
			cs, err := p.clauseExprs()
			if err != nil {
				return err
			}
			sig.Ensures = append(sig.Ensures, cs...)
		case tok.IsIdent("recommends"):
			p.next()
			cs, err := p.clauseExprs()
			if err != nil {
				return err
			}
			sig.Recommends = append(sig.Recommends, cs...)
		case tok.IsIdent("decreases"):
			p.next()
			cs, err := p.clauseExprs()
			if err != nil {
				return err
			}
			sig.Decreases = append(sig.Decreases, cs...)
		case tok.IsIdent("when") || tok.IsIdent("via") || tok.IsIdent("returns") ||
			tok.IsIdent("default_ensures") || tok.IsIdent("opens_invariants") ||
			tok.IsIdent("no_unwind"):
			p.next()
			if _, err := p.clauseExprs(); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

// clauseExprs parses comma-separated clause expressions, each kept as its
// token run. Only top-level commas split: commas inside delimiter groups,
// inside a quantifier binder (forall|i: int, j: int|), or inside turbofish
// generic arguments belong to the current expression. The list ends at the
// next clause keyword, the body brace, a semicolon, or end of input; trailing
// commas are allowed.
func (p *parser) clauseExprs() ([]Clause, error) {
	var clauses []Clause
	var cur []Token
	inBinder := false
	flush := func() {
		if len(cur) > 0 {
			clauses = append(clauses, Clause{Tokens: cur})
			cur = nil
		}
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF || tok.IsPunct(";") || tok.IsPunct("{") || tok.IsPunct("}"):
			flush()
			return clauses, nil
		case tok.Kind == Ident && clauseKeywords[tok.Text]:
			flush()
			return clauses, nil
		case tok.IsPunct(",") && !inBinder:
			p.next()
			flush()
		case tok.IsPunct("(") || tok.IsPunct("["):
			grp, err := p.group()
			if err != nil {
				return nil, err
			}
			cur = append(cur, grp...)
		case tok.IsPunct("|") && (inBinder || binderKeyword(cur)):
			inBinder = !inBinder
			cur = append(cur, p.next())
		case tok.IsPunct("<") && pathSepBefore(cur):
			grp, err := p.angleGroup()
			if err != nil {
				return nil, err
			}
			cur = append(cur, grp...)
		default:
			cur = append(cur, p.next())
		}
	}
}

// binderKeyword reports whether the expression consumed so far ends on a
// quantifier keyword, making a following | open a binder list.
func binderKeyword(cur []Token) bool {
	if len(cur) == 0 {
		return false
	}
	last := cur[len(cur)-1]
	if last.Kind != Ident {
		return false
	}
	return last.Text == "forall" || last.Text == "exists" || last.Text == "choose"
}

// pathSepBefore reports whether the expression consumed so far ends on ::,
// making a following < open turbofish generic arguments rather than act as a
// comparison.
func pathSepBefore(cur []Token) bool {
	return len(cur) > 0 && cur[len(cur)-1].IsPunct("::")
}

func (p *parser) parseStructLike(doc string) (*StructItem, error) {
	p.next() // struct/enum/union keyword
	nameTok, err := p.expectAnyIdent("type name")
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF:
			return nil, p.errExpected("type body")
		case tok.IsPunct(";"):
			p.next()
			return &StructItem{Doc: doc, Name: nameTok.Text}, nil
		case tok.IsPunct("{"):
			if _, err := p.group(); err != nil {
				return nil, err
			}
			return &StructItem{Doc: doc, Name: nameTok.Text}, nil
		case tok.IsPunct("("):
			if _, err := p.group(); err != nil {
				return nil, err
			}
		case tok.IsPunct("<"):
			if _, err := p.angleGroup(); err != nil {
				return nil, err
			}
		default:
			p.next()
		}
	}
}

func (p *parser) parseImpl() (*ImplItem, error) {
	if p.peek().IsIdent("unsafe") {
		p.next()
	}
	if _, err := p.expectIdent("impl"); err != nil {
		return nil, err
	}
	// Header: generics, trait path, self type, where clause.
	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF:
			return nil, p.errExpected("impl body")
		case tok.IsPunct("{"):
			p.next()
			members, err := p.memberList(true)
			if err != nil {
				return nil, err
			}
			p.next() // closing brace
			return &ImplItem{Members: members}, nil
		case tok.IsPunct("(") || tok.IsPunct("["):
			if _, err := p.group(); err != nil {
				return nil, err
			}
		case tok.IsPunct("<"):
			if _, err := p.angleGroup(); err != nil {
				return nil, err
			}
		default:
			p.next()
		}
	}
}

func (p *parser) parseTrait() (*TraitItem, error) {
	if p.peek().IsIdent("unsafe") {
		p.next()
	}
	if _, err := p.expectIdent("trait"); err != nil {
		return nil, err
	}
	nameTok, err := p.expectAnyIdent("trait name")
	if err != nil {
		return nil, err
	}
	for {
		tok := p.peek()
		switch {
		case tok.Kind == EOF:
			return nil, p.errExpected("trait body")
		case tok.IsPunct("{"):
			p.next()
			members, err := p.memberList(true)
			if err != nil {
				return nil, err
			}
			p.next()
			return &TraitItem{Name: nameTok.Text, Members: members}, nil
		case tok.IsPunct("(") || tok.IsPunct("["):
			if _, err := p.group(); err != nil {
				return nil, err
			}
		case tok.IsPunct("<"):
			if _, err := p.angleGroup(); err != nil {
				return nil, err
			}
		default:
			p.next()
		}
	}
}

func (p *parser) parseMod() (*ModItem, error) {
	p.next() // mod keyword
	nameTok, err := p.expectAnyIdent("module name")
	if err != nil {
		return nil, err
	}
	switch {
	case p.peek().IsPunct(";"):
		p.next()
		return &ModItem{Name: nameTok.Text}, nil
	case p.peek().IsPunct("{"):
		p.next()
		items, err := p.itemList(true)
		if err != nil {
			return nil, err
		}
		p.next()
		return &ModItem{Name: nameTok.Text, Items: items}, nil
	default:
		return nil, p.errExpected("module body")
	}
}

func (p *parser) parseTypeAlias() (*TypeAliasItem, error) {
	p.next() // type keyword
	nameTok, err := p.expectAnyIdent("type alias name")
	if err != nil {
		return nil, err
	}
	if err := p.skipToSemi(); err != nil {
		return nil, err
	}
	return &TypeAliasItem{Name: nameTok.Text}, nil
}

func (p *parser) parseConstLike() (*ConstItem, error) {
	p.next() // const/static/global keyword
	if p.peek().IsIdent("mut") {
		p.next()
	}
	name := ""
	if p.peek().Kind == Ident {
		name = p.peek().Text
	}
	if err := p.skipToSemi(); err != nil {
		return nil, err
	}
	return &ConstItem{Name: name}, nil
}

// parseMacroRules consumes a macro_rules! definition. It is modeled as a
// MacroItem so the tree keeps one shape for macro-ish declarations; the
// "macro_rules" path never matches the verified-block name.
func (p *parser) parseMacroRules() (*MacroItem, error) {
	p.next() // macro_rules
	if !p.peek().IsPunct("!") {
		return nil, p.errExpected(`"!"`)
	}
	p.next()
	nameTok, err := p.expectAnyIdent("macro name")
	if err != nil {
		return nil, err
	}
	grp, err := p.group()
	if err != nil {
		return nil, err
	}
	body := grp[1 : len(grp)-1]
	if p.peek().IsPunct(";") {
		p.next()
	}
	return &MacroItem{Path: "macro_rules!" + nameTok.Text, Body: body}, nil
}

// parseMacroInvocation parses path!(...), path![...] or path! { ... } and
// captures the body tokens verbatim.
func (p *parser) parseMacroInvocation() (*MacroItem, error) {
	seg, err := p.expectAnyIdent("macro path")
	if err != nil {
		return nil, err
	}
	path := seg.Text
	for p.peek().IsPunct("::") {
		p.next()
		seg, err = p.expectAnyIdent("macro path segment")
		if err != nil {
			return nil, err
		}
		path += "::" + seg.Text
	}
	if !p.peek().IsPunct("!") {
		return nil, p.errExpected(`"!"`)
	}
	p.next()
	open := p.peek()
	grp, err := p.group()
	if err != nil {
		return nil, err
	}
	body := grp[1 : len(grp)-1]
	// Parenthesized and bracketed invocations take a statement semicolon.
	if !open.IsPunct("{") && p.peek().IsPunct(";") {
		p.next()
	}
	return &MacroItem{Path: path, Body: body}, nil
}

func joinDoc(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + "\n" + b
	}
}
