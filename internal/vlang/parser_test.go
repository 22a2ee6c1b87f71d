package vlang

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the parser:
// - Parses every item shape (fn, struct, enum, impl, trait, mod, const,
//   use, type, macro invocation) without loss of siblings
// - Captures signature tokens, mode, and clause expression lists
// - Captures unknown macro bodies as opaque token streams with positions
// - Re-parses captured token streams in item and impl-member modes
// - Atomic failure: malformed streams produce an error and no items
// - Reports syntax errors with positions

func mustParse(t *testing.T, src string) *File {
	t.Helper()
	file, err := Parse(src)
	require.NoError(t, err)
	return file
}

func TestParse_ItemShapes(t *testing.T) {
	t.Parallel()

	src := `
use vstd::prelude::*;

const LIMIT: u64 = 10;

struct Point { x: int, y: int }

enum Direction { Up, Down }

type Pair = (int, int);

mod geometry {
    fn dist() {}
}

trait Measure {
    fn size(&self) -> int;
}

impl Measure for Point {
    fn size(&self) -> int { 0 }
}

fn free() {}
`
	file := mustParse(t, src)
	require.Len(t, file.Items, 9)
	assert.IsType(t, &UseItem{}, file.Items[0])
	assert.IsType(t, &ConstItem{}, file.Items[1])
	assert.IsType(t, &StructItem{}, file.Items[2])
	assert.IsType(t, &StructItem{}, file.Items[3])
	assert.IsType(t, &TypeAliasItem{}, file.Items[4])
	assert.IsType(t, &ModItem{}, file.Items[5])
	assert.IsType(t, &TraitItem{}, file.Items[6])
	assert.IsType(t, &ImplItem{}, file.Items[7])
	assert.IsType(t, &FnItem{}, file.Items[8])
}

func TestParse_SignatureAndClauses(t *testing.T) {
	t.Parallel()

	src := `
pub open spec fn min(a: int, b: int) -> int
    recommends a != b,
{
    if a < b { a } else { b }
}
`
	file := mustParse(t, src)
	require.Len(t, file.Items, 1)
	fn, ok := file.Items[0].(*FnItem)
	require.True(t, ok)
	assert.Equal(t, "min", fn.Sig.Name)
	assert.Equal(t, ModeSpec, fn.Sig.Mode)
	require.Len(t, fn.Sig.Recommends, 1)
	assert.Equal(t, "a != b", RenderClause(fn.Sig.Recommends[0]))
	assert.Equal(t, "spec fn min(a: int, b: int) -> int", Render(fn.Sig.Tokens))
}

func TestParse_SpecCheckedMode(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "pub closed spec(checked) fn f(x: nat) -> nat { x }")
	fn := file.Items[0].(*FnItem)
	assert.Equal(t, ModeSpec, fn.Sig.Mode)
	assert.Equal(t, "spec(checked) fn f(x: nat) -> nat", Render(fn.Sig.Tokens))
}

func TestParse_GenericsAndWhere(t *testing.T) {
	t.Parallel()

	src := `
fn pick<T: Copy, const N: usize>(items: [T; N]) -> T
    where T: Default,
    requires N > 0,
{
    items[0]
}
`
	file := mustParse(t, src)
	fn := file.Items[0].(*FnItem)
	assert.Equal(t, "pick", fn.Sig.Name)
	require.Len(t, fn.Sig.Requires, 1)
	assert.Equal(t, "N > 0", RenderClause(fn.Sig.Requires[0]))
}

func TestParse_QuantifierBinderClause(t *testing.T) {
	t.Parallel()

	src := `
proof fn lemma_sorted(a: Seq<int>)
    ensures
        forall|i: int, j: int| 0 <= i <= j < a.len() ==> a[i] <= a[j],
        a.len() >= 0,
{
}
`
	file := mustParse(t, src)
	fn := file.Items[0].(*FnItem)
	require.Len(t, fn.Sig.Ensures, 2)
	assert.Equal(t,
		"forall | i: int, j: int | 0 <= i <= j < a.len() ==> a[i] <= a[j]",
		RenderClause(fn.Sig.Ensures[0]))
	assert.Equal(t, "a.len() >= 0", RenderClause(fn.Sig.Ensures[1]))
}

func TestParse_TurbofishClause(t *testing.T) {
	t.Parallel()

	src := `
proof fn lemma_id(x: int)
    requires holds::<int, nat>(x), x >= 0,
{
}
`
	file := mustParse(t, src)
	fn := file.Items[0].(*FnItem)
	require.Len(t, fn.Sig.Requires, 2)
	assert.Equal(t, "holds::< int, nat >(x)", RenderClause(fn.Sig.Requires[0]))
	assert.Equal(t, "x >= 0", RenderClause(fn.Sig.Requires[1]))
}

func TestParse_ShiftInGenerics(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "fn nested(v: Vec<Vec<u8>>) {}")
	fn := file.Items[0].(*FnItem)
	assert.Equal(t, "nested", fn.Sig.Name)
}

func TestParse_MacroBodyCapture(t *testing.T) {
	t.Parallel()

	src := "verus! {\n    fn inner() {}\n}\n"
	file := mustParse(t, src)
	require.Len(t, file.Items, 1)
	mac, ok := file.Items[0].(*MacroItem)
	require.True(t, ok)
	assert.Equal(t, "verus", mac.Name())
	require.NotEmpty(t, mac.Body)
	// Body tokens keep their original positions.
	assert.Equal(t, "fn", mac.Body[0].Text)
	assert.Equal(t, 2, mac.Body[0].Line)
	assert.Equal(t, 5, mac.Body[0].Col)
}

func TestParse_MacroPath(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "builtin_macros::verus! { fn f() {} }")
	mac := file.Items[0].(*MacroItem)
	assert.Equal(t, "builtin_macros::verus", mac.Path)
	assert.Equal(t, "verus", mac.Name())
}

func TestParseItems_RoundTrip(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "verus! { struct S {} fn f() requires true, {} }")
	mac := file.Items[0].(*MacroItem)

	items, err := ParseItems(mac.Body)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.IsType(t, &StructItem{}, items[0])
	fn, ok := items[1].(*FnItem)
	require.True(t, ok)
	assert.Equal(t, "f", fn.Sig.Name)
	require.Len(t, fn.Sig.Requires, 1)
}

func TestParseImplMembers_RoundTrip(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "impl S { verus! { proof fn lem(&self) ensures true, {} const K: u8 = 1; } }")
	impl := file.Items[0].(*ImplItem)
	require.Len(t, impl.Members, 1)
	mac := impl.Members[0].(*MacroItem)

	members, err := ParseImplMembers(mac.Body)
	require.NoError(t, err)
	require.Len(t, members, 2)
	fn := members[0].(*FnItem)
	assert.Equal(t, "lem", fn.Sig.Name)
	assert.Equal(t, ModeProof, fn.Sig.Mode)
	assert.IsType(t, &ConstItem{}, members[1])
}

func TestParseItems_AtomicFailure(t *testing.T) {
	t.Parallel()

	toks, err := Lex("fn good() {} fn 7bad() {}")
	require.NoError(t, err)
	items, err := ParseItems(toks)
	require.Error(t, err)
	assert.Nil(t, items, "failure produces no partial result")
}

func TestParse_SyntaxErrorPosition(t *testing.T) {
	t.Parallel()

	_, err := Parse("fn broken(\n")
	require.Error(t, err)
	var serr *SyntaxError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "line 1")
}

func TestParse_DocCommentsAttach(t *testing.T) {
	t.Parallel()

	src := "/// Proves the thing.\n/// Carefully.\nproof fn lemma_thing() ensures true, {}\n"
	file := mustParse(t, src)
	fn := file.Items[0].(*FnItem)
	assert.Equal(t, "Proves the thing.\nCarefully.", fn.Doc)
}

func TestParse_TraitWithBounds(t *testing.T) {
	t.Parallel()

	src := `
trait Ordered<T>: Sized where T: Clone {
    spec fn leq(&self, other: &T) -> bool;
}
`
	file := mustParse(t, src)
	tr := file.Items[0].(*TraitItem)
	assert.Equal(t, "Ordered", tr.Name)
	require.Len(t, tr.Members, 1)
}

func TestParse_EmptyInput(t *testing.T) {
	t.Parallel()

	file := mustParse(t, "")
	assert.Empty(t, file.Items)

	items, err := ParseItems(nil)
	require.NoError(t, err)
	assert.Empty(t, items)
}
