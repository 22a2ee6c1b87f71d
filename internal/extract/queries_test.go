package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for the extraction queries:
// - Finds top-level functions with requires/ensures/decreases clauses
// - Finds methods in impl blocks and method declarations in trait bodies
// - Sees through verus! blocks at top level, inside impl blocks, and in
//   any nesting combination of the two
// - Wrapping declarations in a verus! block changes nothing but spans
// - Preserves pre-order source ordering of results
// - Tags proof-mode declarations and only those
// - Defaults absent clause kinds to empty lists
// - Name-filtered queries return the first match and never stop traversal
// - Malformed input and missing names produce single error records
// - Malformed verus! bodies are skipped without failing the file
// - Records carry the declaration's doc comments, including through verus!
// - Queries are idempotent

const sampleSource = `
pub proof fn lemma_mul_inequality(x: int, y: int, z: int)
    requires
        x <= y,
        z > 0,
    ensures
        x * z <= y * z,
{
}

pub fn exec_add(a: u32, b: u32) -> (result: u32)
    requires
        a + b <= u32::MAX,
    ensures
        result == a + b,
{
    a + b
}
`

func TestParseAll_Sample(t *testing.T) {
	t.Parallel()

	funcs := ParseAll(sampleSource)
	require.Len(t, funcs, 2, "should find 2 functions")

	lemma := funcs[0]
	assert.Equal(t, "lemma_mul_inequality", lemma.Name)
	assert.True(t, lemma.IsProof)
	assert.Equal(t, "proof fn lemma_mul_inequality(x: int, y: int, z: int)", lemma.Signature)
	assert.Equal(t, []string{"x <= y", "z > 0"}, lemma.Requires)
	assert.Equal(t, []string{"x * z <= y * z"}, lemma.Ensures)
	assert.Empty(t, lemma.Decreases)
	assert.Empty(t, lemma.ParseError)

	add := funcs[1]
	assert.Equal(t, "exec_add", add.Name)
	assert.False(t, add.IsProof)
	assert.Equal(t, "fn exec_add(a: u32, b: u32) -> (result: u32)", add.Signature)
	assert.Equal(t, []string{"a + b <= u32::MAX"}, add.Requires)
	assert.Equal(t, []string{"result == a + b"}, add.Ensures)
}

// Matches the end-to-end shape: two records in source order, is_proof
// [true, false], clause counts [2,1,0] and [1,1,0].
func TestParseAll_ClauseCounts(t *testing.T) {
	t.Parallel()

	funcs := ParseAll(sampleSource)
	require.Len(t, funcs, 2)
	assert.True(t, funcs[0].IsProof)
	assert.False(t, funcs[1].IsProof)
	assert.Len(t, funcs[0].Requires, 2)
	assert.Len(t, funcs[0].Ensures, 1)
	assert.Len(t, funcs[0].Decreases, 0)
	assert.Len(t, funcs[1].Requires, 1)
	assert.Len(t, funcs[1].Ensures, 1)
	assert.Len(t, funcs[1].Decreases, 0)
}

func TestParseAll_LineNumbers(t *testing.T) {
	t.Parallel()

	src := "proof fn one()\n    ensures true,\n{\n}\n\nfn two() {\n}\n"
	funcs := ParseAll(src)
	require.Len(t, funcs, 2)

	require.NotNil(t, funcs[0].LineNumber)
	require.NotNil(t, funcs[0].EndLine)
	assert.Equal(t, 1, *funcs[0].LineNumber)
	assert.Equal(t, 4, *funcs[0].EndLine)

	require.NotNil(t, funcs[1].LineNumber)
	require.NotNil(t, funcs[1].EndLine)
	assert.Equal(t, 6, *funcs[1].LineNumber)
	assert.Equal(t, 7, *funcs[1].EndLine)
}

func TestParseAll_VerusMacro(t *testing.T) {
	t.Parallel()

	src := `
verus! {
    fn simple_fn(x: u32) -> u32
        requires x > 0,
        ensures x == x,
    {
        x
    }

    proof fn lemma_foo()
        ensures true,
    {
    }
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 2, "should find 2 functions inside verus! macro")
	assert.Equal(t, "simple_fn", funcs[0].Name)
	assert.Equal(t, []string{"x > 0"}, funcs[0].Requires)
	assert.Equal(t, "lemma_foo", funcs[1].Name)
	assert.True(t, funcs[1].IsProof)
}

// Wrapping declarations in a verus! block must yield the same records as
// writing them directly; only spans may shift with the braces.
func TestParseAll_MacroTransparency(t *testing.T) {
	t.Parallel()

	direct := ParseAll(sampleSource)
	wrapped := ParseAll("verus! {\n" + sampleSource + "}\n")
	require.Len(t, wrapped, len(direct))
	for i := range direct {
		assert.Equal(t, direct[i].Name, wrapped[i].Name)
		assert.Equal(t, direct[i].Signature, wrapped[i].Signature)
		assert.Equal(t, direct[i].IsProof, wrapped[i].IsProof)
		assert.Equal(t, direct[i].Requires, wrapped[i].Requires)
		assert.Equal(t, direct[i].Ensures, wrapped[i].Ensures)
		assert.Equal(t, direct[i].Decreases, wrapped[i].Decreases)
	}
}

func TestParseAll_ImplBlock(t *testing.T) {
	t.Parallel()

	src := `
struct Foo {}

impl Foo {
    fn method_one(&self) -> u32
        ensures true,
    {
        1
    }

    proof fn lemma_method(&self)
        ensures true,
    {
    }
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 2, "should find 2 methods in impl block")
	assert.Equal(t, "method_one", funcs[0].Name)
	assert.False(t, funcs[0].IsProof)
	assert.Equal(t, "lemma_method", funcs[1].Name)
	assert.True(t, funcs[1].IsProof)
}

func TestParseAll_TraitMethods(t *testing.T) {
	t.Parallel()

	src := `
trait Shape {
    spec fn area(&self) -> int;

    proof fn area_nonneg(&self)
        ensures self.area() >= 0;
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 2)
	assert.Equal(t, "area", funcs[0].Name)
	assert.False(t, funcs[0].IsProof)
	assert.Equal(t, "area_nonneg", funcs[1].Name)
	assert.True(t, funcs[1].IsProof)
	assert.Equal(t, []string{"self.area() >= 0"}, funcs[1].Ensures)
}

func TestParseAll_NestedModules(t *testing.T) {
	t.Parallel()

	src := `
mod outer {
    mod inner {
        proof fn deep_lemma()
            ensures true,
        {
        }
    }

    fn shallow() {
    }
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 2)
	assert.Equal(t, "deep_lemma", funcs[0].Name)
	assert.Equal(t, "shallow", funcs[1].Name)
}

func TestParseAll_VerusMacroWithImpl(t *testing.T) {
	t.Parallel()

	src := `
verus! {
    struct Bar {}

    impl Bar {
        proof fn bar_lemma(&self)
            requires true,
            ensures true,
        {
        }
    }
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 1, "should find 1 method in impl inside verus!")
	assert.Equal(t, "bar_lemma", funcs[0].Name)
	assert.True(t, funcs[0].IsProof)
	assert.Len(t, funcs[0].Requires, 1)
}

func TestParseAll_VerusInsideImpl(t *testing.T) {
	t.Parallel()

	src := `
struct Scalar {}

impl Scalar {
    verus! {
        pub fn from_bytes_mod_order(bytes: [u8; 32]) -> (result: Scalar)
            ensures
                result.bytes[31] & 0x80 == 0,
        {
            Scalar {}
        }

        proof fn internal_lemma()
            requires true,
            ensures true,
        {
        }
    }

    fn regular_method(&self) {}
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 3)

	names := make([]string, 0, len(funcs))
	for _, f := range funcs {
		names = append(names, f.Name)
	}
	assert.Contains(t, names, "from_bytes_mod_order")
	assert.Contains(t, names, "internal_lemma")
	assert.Contains(t, names, "regular_method")

	var fromBytes *FunctionSpecs
	for i := range funcs {
		if funcs[i].Name == "from_bytes_mod_order" {
			fromBytes = &funcs[i]
		}
	}
	require.NotNil(t, fromBytes)
	assert.Equal(t, []string{"result.bytes[31] & 0x80 == 0"}, fromBytes.Ensures)
}

// A verus! block inside an impl block that is itself inside a verus! block.
func TestParseAll_UnboundedMacroNesting(t *testing.T) {
	t.Parallel()

	src := `
verus! {
    impl Inner {
        verus! {
            proof fn doubly_nested()
                ensures true,
            {
            }
        }
    }
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 1)
	assert.Equal(t, "doubly_nested", funcs[0].Name)
	assert.True(t, funcs[0].IsProof)
}

// Free-standing declarations come before impl members, each group in
// source order.
func TestParseAll_Ordering(t *testing.T) {
	t.Parallel()

	src := `
fn first() {}
fn second() {}

impl Thing {
    fn third(&self) {}
    fn fourth(&self) {}
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 4)
	for i, want := range []string{"first", "second", "third", "fourth"} {
		assert.Equal(t, want, funcs[i].Name)
	}
}

func TestParseAll_Decreases(t *testing.T) {
	t.Parallel()

	src := `
proof fn lemma_induct(n: nat)
    requires n >= 0,
    ensures n * 0 == 0,
    decreases n,
{
}

spec fn ackermann(m: nat, n: nat) -> nat
    decreases m, n,
{
    0
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 2)
	assert.Equal(t, []string{"n"}, funcs[0].Decreases)
	assert.Equal(t, []string{"m", "n"}, funcs[1].Decreases)
	assert.False(t, funcs[1].IsProof, "spec mode is not proof mode")
}

func TestParseAll_DecreasesWhenVia(t *testing.T) {
	t.Parallel()

	src := `
spec fn shrink(n: int) -> int
    decreases n when n > 0 via shrink_decreases
{
    shrink(n - 1)
}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 1)
	assert.Equal(t, []string{"n"}, funcs[0].Decreases, "when/via tails are not decrease measures")
}

func TestParseAll_EmptyClauseDefaults(t *testing.T) {
	t.Parallel()

	funcs := ParseAll("fn plain(x: u64) -> u64 { x }")
	require.Len(t, funcs, 1)
	require.NotNil(t, funcs[0].Requires)
	require.NotNil(t, funcs[0].Ensures)
	require.NotNil(t, funcs[0].Decreases)
	assert.Empty(t, funcs[0].Requires)
	assert.Empty(t, funcs[0].Ensures)
	assert.Empty(t, funcs[0].Decreases)
	assert.Empty(t, funcs[0].ParseError)
}

func TestParseAll_SyntaxError(t *testing.T) {
	t.Parallel()

	funcs := ParseAll("fn fn fn")
	require.Len(t, funcs, 1, "exactly one degenerate record")
	rec := funcs[0]
	assert.Empty(t, rec.Name)
	assert.Contains(t, rec.ParseError, "Parse error:")
	assert.Nil(t, rec.LineNumber)
	assert.Nil(t, rec.EndLine)
	assert.Empty(t, rec.Signature)
	assert.Empty(t, rec.Requires)
}

func TestParseAll_MalformedVerusBlockIsSkipped(t *testing.T) {
	t.Parallel()

	src := `
verus! {
    fn visible() {
    }
}

verus! {
    fn 42 {
    }
}

fn also_visible() {}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 2, "malformed block contributes nothing and fails nothing")
	assert.Equal(t, "visible", funcs[0].Name)
	assert.Equal(t, "also_visible", funcs[1].Name)
}

func TestParseAll_OtherMacrosAreOpaque(t *testing.T) {
	t.Parallel()

	src := `
println! { "fn not_a_decl() {}" }

seq_macro::seq! { fn generated() {} }

fn real_fn() {}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 1)
	assert.Equal(t, "real_fn", funcs[0].Name)
}

func TestParseOne_Found(t *testing.T) {
	t.Parallel()

	rec := ParseOne(sampleSource, "exec_add")
	assert.Equal(t, "exec_add", rec.Name)
	assert.Empty(t, rec.ParseError)
	assert.Equal(t, []string{"a + b <= u32::MAX"}, rec.Requires)
}

func TestParseOne_NotFound(t *testing.T) {
	t.Parallel()

	rec := ParseOne(sampleSource, "missing_fn")
	assert.Equal(t, "missing_fn", rec.Name)
	assert.Equal(t, "Function 'missing_fn' not found", rec.ParseError)
	assert.Nil(t, rec.LineNumber)
}

func TestParseOne_SyntaxErrorCarriesName(t *testing.T) {
	t.Parallel()

	rec := ParseOne("fn {", "wanted")
	assert.Equal(t, "wanted", rec.Name)
	assert.Contains(t, rec.ParseError, "Parse error:")
	assert.NotContains(t, rec.ParseError, "not found",
		"syntax errors and missing names must stay distinguishable")
}

// Duplicate names in different scopes are legal; the first pre-order match
// wins but traversal still visits every scope.
func TestParseOne_DuplicateNames(t *testing.T) {
	t.Parallel()

	src := `
fn helper()
    ensures true,
{
}

impl Widget {
    fn helper(&self)
        requires false,
    {
    }
}
`
	rec := ParseOne(src, "helper")
	assert.Equal(t, []string{"true"}, rec.Ensures)
	assert.Empty(t, rec.Requires, "first match is the free function")

	all := ParseAll(src)
	require.Len(t, all, 2, "full-file queries return all matches")
}

func TestFilterProof(t *testing.T) {
	t.Parallel()

	proofFns := FilterProof(sampleSource)
	require.Len(t, proofFns, 1)
	assert.Equal(t, "lemma_mul_inequality", proofFns[0].Name)
	assert.True(t, proofFns[0].IsProof)
}

func TestFilterProof_SyntaxError(t *testing.T) {
	t.Parallel()

	recs := FilterProof("not valid at all (")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0].ParseError, "Parse error:")
}

func TestIsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValid(sampleSource))
	assert.True(t, IsValid(""))
	assert.False(t, IsValid("fn fn fn"))
}

func TestQueries_Idempotent(t *testing.T) {
	t.Parallel()

	first := ParseAll(sampleSource)
	second := ParseAll(sampleSource)
	assert.Equal(t, first, second)

	assert.Equal(t, ParseOne(sampleSource, "exec_add"), ParseOne(sampleSource, "exec_add"))
}

func TestParseAll_DocAndAttributes(t *testing.T) {
	t.Parallel()

	src := "/// Adds one.\n#[verifier::external_body]\nfn add_one(x: u32) -> u32 { x + 1 }\n"
	funcs := ParseAll(src)
	require.Len(t, funcs, 1)
	assert.Equal(t, "add_one", funcs[0].Name)
	assert.Equal(t, "Adds one.", funcs[0].Doc)
	require.NotNil(t, funcs[0].LineNumber)
	assert.Equal(t, 2, *funcs[0].LineNumber, "span starts at the attribute, not the doc comment")
}

func TestParseAll_DocThroughVerusMacro(t *testing.T) {
	t.Parallel()

	src := `
verus! {

/// Order is preserved.
/// Requires a positive factor.
proof fn lemma_ordered(x: int)
    ensures x == x,
{
}

}
`
	funcs := ParseAll(src)
	require.Len(t, funcs, 1)
	assert.Equal(t, "Order is preserved.\nRequires a positive factor.", funcs[0].Doc)
}

func TestSelectNamed(t *testing.T) {
	t.Parallel()

	records := ParseAll(sampleSource)

	rec := SelectNamed(records, "exec_add")
	assert.Equal(t, "exec_add", rec.Name)
	assert.Empty(t, rec.ParseError)

	rec = SelectNamed(records, "no_such_fn")
	assert.Equal(t, "no_such_fn", rec.Name)
	assert.Equal(t, "Function 'no_such_fn' not found", rec.ParseError)

	broken := ParseAll("fn (((")
	rec = SelectNamed(broken, "wanted")
	assert.Equal(t, "wanted", rec.Name)
	assert.Contains(t, rec.ParseError, "Parse error:")
}

func TestSelectProof(t *testing.T) {
	t.Parallel()

	proof := SelectProof(ParseAll(sampleSource))
	require.Len(t, proof, 1)
	assert.Equal(t, "lemma_mul_inequality", proof[0].Name)

	proof = SelectProof(ParseAll("fn ((("))
	require.Len(t, proof, 1)
	assert.Contains(t, proof[0].ParseError, "Parse error:")
}
