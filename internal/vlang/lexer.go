package vlang

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// operators holds multi-character operators, longest first. Single-character
// punctuation falls through to a one-rune token.
var operators = []string{
	"<==>", "...", "..=", "<<=", ">>=", "==>", "<==", "&&&", "|||", "=~=",
	"::", "->", "=>", "==", "!=", "<=", ">=", "&&", "||", "<<", ">>",
	"+=", "-=", "*=", "/=", "%=", "^=", "&=", "|=", "..",
}

type lexer struct {
	src  string
	pos  int
	line int
	col  int
}

// Lex tokenizes source text. Whitespace and non-doc comments are discarded;
// doc comments become DocComment tokens so declarations can carry their
// documentation through macro re-parsing.
func Lex(src string) ([]Token, error) {
	lx := &lexer{src: src, line: 1, col: 1}
	var toks []Token
	for {
		tok, err := lx.next()
		if err != nil {
			return nil, err
		}
		if tok.Kind == EOF {
			return toks, nil
		}
		toks = append(toks, tok)
	}
}

func (lx *lexer) errorf(format string, args ...any) error {
	return &SyntaxError{
		Msg:  fmt.Sprintf(format, args...),
		Line: lx.line,
		Col:  lx.col,
	}
}

func (lx *lexer) peekByte(off int) byte {
	if lx.pos+off >= len(lx.src) {
		return 0
	}
	return lx.src[lx.pos+off]
}

func (lx *lexer) advance(n int) {
	for i := 0; i < n && lx.pos < len(lx.src); i++ {
		if lx.src[lx.pos] == '\n' {
			lx.line++
			lx.col = 1
		} else {
			lx.col++
		}
		lx.pos++
	}
}

func (lx *lexer) next() (Token, error) {
	if err := lx.skipTrivia(); err != nil {
		return Token{}, err
	}
	if lx.pos >= len(lx.src) {
		return Token{Kind: EOF, Line: lx.line, Col: lx.col, EndLine: lx.line, EndCol: lx.col}, nil
	}

	startLine, startCol, startPos := lx.line, lx.col, lx.pos
	mk := func(kind Kind) Token {
		return Token{
			Kind:    kind,
			Text:    lx.src[startPos:lx.pos],
			Line:    startLine,
			Col:     startCol,
			EndLine: lx.line,
			EndCol:  lx.col,
		}
	}

	c := lx.src[lx.pos]
	switch {
	case c == '/' && lx.peekByte(1) == '/':
		// Doc comment (/// or //!); skipTrivia already dropped the others.
		isInner := lx.peekByte(2) == '!'
		skip := 3
		if !isInner && lx.peekByte(3) == ' ' {
			skip = 4
		} else if isInner && lx.peekByte(3) == ' ' {
			skip = 4
		}
		lx.advance(skip)
		bodyStart := lx.pos
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
			lx.advance(1)
		}
		tok := mk(DocComment)
		tok.Text = lx.src[bodyStart:lx.pos]
		return tok, nil

	case isIdentStart(rune(c)):
		lx.scanIdent()
		// Raw string literal: r"..." or r#"..."#.
		if (c == 'r' || c == 'b') && lx.pos-startPos <= 2 && (lx.peekByte(0) == '"' || lx.peekByte(0) == '#') {
			if err := lx.scanRawString(); err != nil {
				return Token{}, err
			}
			return mk(StrLit), nil
		}
		return mk(Ident), nil

	case c >= '0' && c <= '9':
		isFloat := lx.scanNumber()
		if isFloat {
			return mk(FloatLit), nil
		}
		return mk(IntLit), nil

	case c == '"':
		if err := lx.scanString(); err != nil {
			return Token{}, err
		}
		return mk(StrLit), nil

	case c == '\'':
		kind, err := lx.scanTickToken()
		if err != nil {
			return Token{}, err
		}
		return mk(kind), nil

	default:
		for _, op := range operators {
			if strings.HasPrefix(lx.src[lx.pos:], op) {
				lx.advance(len(op))
				return mk(Punct), nil
			}
		}
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !strings.ContainsRune("+-*/%^!&|<>=.,;:#?@$()[]{}~", r) {
			return Token{}, lx.errorf("unexpected character %q", r)
		}
		lx.advance(size)
		return mk(Punct), nil
	}
}

// skipTrivia consumes whitespace, line comments and block comments, but stops
// at doc comments so next can emit them.
func (lx *lexer) skipTrivia() error {
	for lx.pos < len(lx.src) {
		c := lx.src[lx.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			lx.advance(1)
		case c == '/' && lx.peekByte(1) == '/':
			third := lx.peekByte(2)
			if third == '/' && lx.peekByte(3) == '/' {
				// //// is an ordinary comment by convention.
			} else if third == '/' || third == '!' {
				return nil // doc comment
			}
			for lx.pos < len(lx.src) && lx.src[lx.pos] != '\n' {
				lx.advance(1)
			}
		case c == '/' && lx.peekByte(1) == '*':
			openLine, openCol := lx.line, lx.col
			depth := 0
			for lx.pos < len(lx.src) {
				if lx.src[lx.pos] == '/' && lx.peekByte(1) == '*' {
					depth++
					lx.advance(2)
				} else if lx.src[lx.pos] == '*' && lx.peekByte(1) == '/' {
					depth--
					lx.advance(2)
					if depth == 0 {
						break
					}
				} else {
					lx.advance(1)
				}
			}
			if depth != 0 {
				return &SyntaxError{Msg: "unterminated block comment", Line: openLine, Col: openCol}
			}
		default:
			return nil
		}
	}
	return nil
}

func (lx *lexer) scanIdent() {
	for lx.pos < len(lx.src) {
		r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
		if !isIdentPart(r) {
			return
		}
		lx.advance(size)
	}
}

// scanNumber consumes an integer or float literal including any type suffix.
// Returns true for floats. `0..n` must lex as IntLit Punct(..) Ident.
func (lx *lexer) scanNumber() bool {
	isFloat := false
	if lx.peekByte(0) == '0' && (lx.peekByte(1) == 'x' || lx.peekByte(1) == 'o' || lx.peekByte(1) == 'b') {
		lx.advance(2)
		for lx.pos < len(lx.src) && (isHexDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
			lx.advance(1)
		}
	} else {
		lx.scanDigits()
		if lx.peekByte(0) == '.' && isDigit(lx.peekByte(1)) {
			isFloat = true
			lx.advance(1)
			lx.scanDigits()
		}
		if lx.peekByte(0) == 'e' || lx.peekByte(0) == 'E' {
			if isDigit(lx.peekByte(1)) || ((lx.peekByte(1) == '+' || lx.peekByte(1) == '-') && isDigit(lx.peekByte(2))) {
				isFloat = true
				lx.advance(2)
				lx.scanDigits()
			}
		}
	}
	// Type suffix (u32, int, nat, usize, f64...).
	for lx.pos < len(lx.src) && isIdentPart(rune(lx.src[lx.pos])) {
		lx.advance(1)
	}
	return isFloat
}

func (lx *lexer) scanDigits() {
	for lx.pos < len(lx.src) && (isDigit(lx.src[lx.pos]) || lx.src[lx.pos] == '_') {
		lx.advance(1)
	}
}

func (lx *lexer) scanString() error {
	lx.advance(1) // opening quote
	for lx.pos < len(lx.src) {
		switch lx.src[lx.pos] {
		case '\\':
			lx.advance(2)
		case '"':
			lx.advance(1)
			return nil
		default:
			lx.advance(1)
		}
	}
	return lx.errorf("unterminated string literal")
}

func (lx *lexer) scanRawString() error {
	hashes := 0
	for lx.peekByte(0) == '#' {
		hashes++
		lx.advance(1)
	}
	if lx.peekByte(0) != '"' {
		return lx.errorf("malformed raw string literal")
	}
	lx.advance(1)
	closer := `"` + strings.Repeat("#", hashes)
	for lx.pos < len(lx.src) {
		if strings.HasPrefix(lx.src[lx.pos:], closer) {
			lx.advance(len(closer))
			return nil
		}
		lx.advance(1)
	}
	return lx.errorf("unterminated raw string literal")
}

// scanTickToken distinguishes char literals ('a', '\n') from lifetimes ('a).
func (lx *lexer) scanTickToken() (Kind, error) {
	lx.advance(1) // tick
	if lx.peekByte(0) == '\\' {
		// Escaped char literal.
		lx.advance(2)
		for lx.pos < len(lx.src) && lx.src[lx.pos] != '\'' {
			lx.advance(1)
		}
		if lx.peekByte(0) != '\'' {
			return 0, lx.errorf("unterminated character literal")
		}
		lx.advance(1)
		return CharLit, nil
	}
	r, size := utf8.DecodeRuneInString(lx.src[lx.pos:])
	if isIdentStart(r) {
		lx.advance(size)
		for lx.pos < len(lx.src) {
			r2, size2 := utf8.DecodeRuneInString(lx.src[lx.pos:])
			if !isIdentPart(r2) {
				break
			}
			lx.advance(size2)
		}
		if lx.peekByte(0) == '\'' {
			lx.advance(1)
			return CharLit, nil
		}
		return Lifetime, nil
	}
	// Non-identifier char literal like '+'.
	lx.advance(size)
	if lx.peekByte(0) != '\'' {
		return 0, lx.errorf("unterminated character literal")
	}
	lx.advance(1)
	return CharLit, nil
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
