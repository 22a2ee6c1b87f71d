package vlang

import "strings"

// Render produces canonical source text for a token run. Rendering is
// whitespace-normalizing, not verbatim: tokens are joined with single spaces
// except where conventional Rust-style spacing drops them (after an opening
// delimiter, before a comma, around :: and so on). The same input tokens
// always render to the same text.
func Render(toks []Token) string {
	var b strings.Builder
	for i, tok := range toks {
		if tok.Kind == DocComment {
			continue
		}
		if i > 0 && !omitSpace(toks[i-1], tok, prevOf(toks, i-1)) {
			b.WriteByte(' ')
		}
		b.WriteString(tok.Text)
	}
	return b.String()
}

// RenderClause renders one specification clause.
func RenderClause(c Clause) string {
	return Render(c.Tokens)
}

func prevOf(toks []Token, i int) Token {
	if i == 0 {
		return Token{}
	}
	return toks[i-1]
}

// callKeywords are identifiers that take a space before a following
// parenthesis or bracket, unlike call/index position.
var callKeywords = map[string]bool{
	"if": true, "else": true, "while": true, "for": true, "loop": true,
	"match": true, "return": true, "in": true, "move": true, "mut": true,
	"ref": true, "where": true, "break": true, "continue": true,
}

// omitSpace decides whether prev and cur join without a space. prevPrev
// disambiguates prefix operators from binary ones.
func omitSpace(prev, cur, prevPrev Token) bool {
	// No space after opening delimiters and path/attribute glue.
	switch prev.Text {
	case "(", "[", ".", "::", "#", "$":
		if prev.Kind == Punct {
			return true
		}
	}
	// No space after a prefix operator: &x, &&x, *x, -x, !x. An operator is
	// prefix when the token before it cannot end an operand.
	if prev.Kind == Punct && (prev.Text == "&" || prev.Text == "&&" || prev.Text == "*" || prev.Text == "-" || prev.Text == "!") {
		if !endsOperand(prevPrev) {
			return true
		}
	}

	if cur.Kind != Punct {
		return false
	}
	switch cur.Text {
	case ",", ";", ")", "]", ".", "::", "?", ":":
		return true
	case "!":
		// Macro bang binds to its path segment; keyword-prefixed ! is unary.
		return prev.Kind == Ident && !callKeywords[prev.Text]
	case "(", "[":
		// Call and index position.
		if prev.Kind == Ident && !callKeywords[prev.Text] {
			return true
		}
		return prev.IsPunct(")") || prev.IsPunct("]") || prev.IsPunct(">") || prev.IsPunct("?") || prev.IsPunct("!")
	default:
		return false
	}
}

// endsOperand reports whether a token can terminate an expression operand,
// which makes a following &, *, - or ! binary rather than prefix.
func endsOperand(tok Token) bool {
	switch tok.Kind {
	case Ident, IntLit, FloatLit, StrLit, CharLit, Lifetime:
		return tok.Kind != Ident || !callKeywords[tok.Text]
	case Punct:
		return tok.Text == ")" || tok.Text == "]" || tok.Text == "}" || tok.Text == ">"
	default:
		return false
	}
}
