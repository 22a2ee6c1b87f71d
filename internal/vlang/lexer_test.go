package vlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the lexer:
// - Splits identifiers, literals and multi-character operators correctly
// - Keeps 1-indexed line/column positions on every token
// - Distinguishes lifetimes from char literals, ranges from floats
// - Emits doc comments as tokens and drops ordinary comments
// - Reports unterminated literals and block comments as syntax errors

func texts(toks []Token) []string {
	out := make([]string, 0, len(toks))
	for _, t := range toks {
		out = append(out, t.Text)
	}
	return out
}

func TestLex_Operators(t *testing.T) {
	t.Parallel()

	toks, err := Lex("a <= b ==> c <==> d && e &&& f")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "<=", "b", "==>", "c", "<==>", "d", "&&", "e", "&&&", "f"}, texts(toks))
}

func TestLex_RangeIsNotFloat(t *testing.T) {
	t.Parallel()

	toks, err := Lex("0..n")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, IntLit, toks[0].Kind)
	assert.Equal(t, "..", toks[1].Text)
	assert.Equal(t, Ident, toks[2].Kind)

	toks, err = Lex("1.5 + 2e10")
	require.NoError(t, err)
	assert.Equal(t, FloatLit, toks[0].Kind)
	assert.Equal(t, FloatLit, toks[2].Kind)
}

func TestLex_NumberSuffixes(t *testing.T) {
	t.Parallel()

	toks, err := Lex("0x80u8 32usize 7int")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	for _, tok := range toks {
		assert.Equal(t, IntLit, tok.Kind)
	}
	assert.Equal(t, "0x80u8", toks[0].Text)
}

func TestLex_LifetimesAndChars(t *testing.T) {
	t.Parallel()

	toks, err := Lex(`'a 'static 'x' '\n'`)
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, Lifetime, toks[0].Kind)
	assert.Equal(t, Lifetime, toks[1].Kind)
	assert.Equal(t, CharLit, toks[2].Kind)
	assert.Equal(t, CharLit, toks[3].Kind)
}

func TestLex_Positions(t *testing.T) {
	t.Parallel()

	toks, err := Lex("fn foo()\n    requires x,")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(toks), 5)
	assert.Equal(t, 1, toks[0].Line)
	assert.Equal(t, 1, toks[0].Col)
	assert.Equal(t, 1, toks[1].Line)
	assert.Equal(t, 4, toks[1].Col)

	req := toks[4]
	assert.Equal(t, "requires", req.Text)
	assert.Equal(t, 2, req.Line)
	assert.Equal(t, 5, req.Col)
}

func TestLex_Comments(t *testing.T) {
	t.Parallel()

	src := "// dropped\n/* also /* nested */ dropped */\n/// kept doc\nfn f() {}"
	toks, err := Lex(src)
	require.NoError(t, err)
	require.NotEmpty(t, toks)
	assert.Equal(t, DocComment, toks[0].Kind)
	assert.Equal(t, "kept doc", toks[0].Text)
	assert.Equal(t, "fn", toks[1].Text)
}

func TestLex_Strings(t *testing.T) {
	t.Parallel()

	toks, err := Lex(`"with \" escape" r"raw" r#"has " quote"#`)
	require.NoError(t, err)
	require.Len(t, toks, 3)
	for _, tok := range toks {
		assert.Equal(t, StrLit, tok.Kind)
	}

	_, err = Lex(`"unterminated`)
	require.Error(t, err)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "unterminated")
}

func TestLex_UnterminatedBlockComment(t *testing.T) {
	t.Parallel()

	_, err := Lex("fn f() {}\n/* open /* nested */\nfn g() {}")
	require.Error(t, err)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Msg, "unterminated block comment")
	assert.Equal(t, 2, serr.Line)
	assert.Equal(t, 1, serr.Col)
}
