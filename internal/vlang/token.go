package vlang

// Kind classifies a lexed token.
type Kind int

const (
	// EOF marks the end of a token stream.
	EOF Kind = iota
	// Ident covers identifiers and keywords (the grammar is keyword-soft:
	// context decides whether "requires" is a clause keyword or a name).
	Ident
	// Lifetime is a tick-prefixed lifetime such as 'a.
	Lifetime
	// IntLit, FloatLit, StrLit and CharLit are literals. Literal text is kept
	// verbatim, including suffixes (0x10u32) and quotes.
	IntLit
	FloatLit
	StrLit
	CharLit
	// Punct covers operators and delimiters. Multi-character operators are
	// single tokens (==, ->, ==>, <==> and friends).
	Punct
	// DocComment is a /// or //! comment; the text holds the comment body
	// with the marker stripped. Regular comments are discarded by the lexer.
	DocComment
)

// Token is one lexed token with its source position. Positions are 1-indexed
// and survive macro-body re-parsing, so spans computed from re-parsed tokens
// still point into the original source text.
type Token struct {
	Kind    Kind
	Text    string
	Line    int
	Col     int
	EndLine int
	EndCol  int
}

// Span is the source range covered by a declaration or expression.
type Span struct {
	StartLine int
	StartCol  int
	EndLine   int
	EndCol    int
}

// spanOf computes the span covering a non-empty token run.
func spanOf(toks []Token) Span {
	if len(toks) == 0 {
		return Span{}
	}
	first, last := toks[0], toks[len(toks)-1]
	return Span{
		StartLine: first.Line,
		StartCol:  first.Col,
		EndLine:   last.EndLine,
		EndCol:    last.EndCol,
	}
}

// IsPunct reports whether the token is the given punctuation.
func (t Token) IsPunct(text string) bool {
	return t.Kind == Punct && t.Text == text
}

// IsIdent reports whether the token is the given identifier/keyword.
func (t Token) IsIdent(text string) bool {
	return t.Kind == Ident && t.Text == text
}
