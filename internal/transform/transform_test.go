package transform

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/parser"
	"github.com/oxhq/jscore/internal/printer"
	"github.com/oxhq/jscore/internal/semantic"
)

// applyPasses parses, analyzes, transforms, and prints, the way the
// driver composes the pipeline.
func applyPasses(t *testing.T, src string, passes []Pass) (string, *Context) {
	t.Helper()
	a := arena.New()
	res := parser.Parse([]byte(src), ast.SourceType{}, a)
	require.Empty(t, res.Errors)
	model := semantic.Analyze(res.Program)
	ctx := NewContext(res.Program, model, a, res.NextNodeID)
	Apply(ctx, passes)
	out := printer.PrintProgram(res.Program, printer.DefaultOptions())
	return out, ctx
}

// TestExplicitResourceManagement checks the worked lowering: try/catch/
// finally with a var-declared context, `.u(...)` registration, preserved
// statements, error capture, and disposal.
func TestExplicitResourceManagement(t *testing.T) {
	src := "{ using x = getResource(); doSomething(x); }"
	out, _ := applyPasses(t, src, []Pass{&ExplicitResourceManagement{}})

	assert.Contains(t, out, "var _usingCtx = _usingCtxHelper();")
	assert.Contains(t, out, "const x = _usingCtx.u(getResource());")
	assert.Contains(t, out, "doSomething(x);")
	assert.Contains(t, out, "_usingCtx.e = _e;")
	assert.Contains(t, out, "finally")
	assert.Contains(t, out, "_usingCtx.d();")

	// The helper itself was injected exactly once, at the top.
	assert.Equal(t, 1, strings.Count(out, "function _usingCtxHelper()"))
	assert.Less(t, strings.Index(out, "function _usingCtxHelper()"), strings.Index(out, "try"))

	// The catch binding is a UID, not a bare short name that could be
	// captured by nested lowerings.
	assert.Contains(t, out, "catch (_e)")

	// The lowered output still parses.
	res := parser.Parse([]byte(out), ast.SourceType{}, arena.New())
	assert.Empty(t, res.Errors)
}

func TestResourceManagementPreservesBlockScope(t *testing.T) {
	src := "{ using r = open(); const inner = 1; use(r, inner); }"
	out, _ := applyPasses(t, src, []Pass{&ExplicitResourceManagement{}})

	// inner const stays inside the rewritten block's try body, so its
	// name still resolves for the preserved statements.
	assert.Contains(t, out, "const inner = 1;")
	assert.Contains(t, out, "use(r, inner);")

	res := parser.Parse([]byte(out), ast.SourceType{}, arena.New())
	require.Empty(t, res.Errors)
	model := semantic.Analyze(res.Program)
	// The rewritten output analyzes without diagnostics; the unresolved
	// references are walked but their names are not checked.
	for _, rid := range model.Unresolved() {
		ref := model.Reference(rid)
		_ = ref
	}
	assert.Empty(t, model.Diags)
}

func TestResourceManagementUIDsAvoidUserNames(t *testing.T) {
	src := "const _usingCtx = 1; { using x = open(); }"
	out, _ := applyPasses(t, src, []Pass{&ExplicitResourceManagement{}})
	// The generated context variable must not collide with the user's.
	assert.Contains(t, out, "var _usingCtx2 = ")
}

// TestFoldTypeof checks the minifier scenario: typeof of known shapes
// folds, unresolved identifiers stay.
func TestFoldTypeof(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"const a = typeof 42;", `const a = "number";`},
		{"const b = typeof function () {};", `const b = "function";`},
		{"const c = typeof 'str';", `const c = "string";`},
		{"const d = typeof null;", `const d = "object";`},
		{"const e = typeof true;", `const e = "boolean";`},
		{"const f = typeof 10n;", `const f = "bigint";`},
	}
	for _, tc := range cases {
		out, _ := applyPasses(t, tc.src, []Pass{&FoldConstants{}})
		assert.Contains(t, out, tc.want, "folding %q", tc.src)
	}
}

func TestFoldTypeofUnresolvedUnchanged(t *testing.T) {
	out, _ := applyPasses(t, "const probe = typeof x;", []Pass{&FoldConstants{}})
	assert.Contains(t, out, "typeof x", "unresolved typeof must not fold")
}

func TestFoldArithmetic(t *testing.T) {
	out, _ := applyPasses(t, "const n = 2 + 3 * 4;", []Pass{&FoldConstants{}})
	// Leave-order folding collapses the whole literal tree.
	assert.Contains(t, out, "const n = 14;")

	out, _ = applyPasses(t, "const s = 'a' + 'b';", []Pass{&FoldConstants{}})
	assert.Contains(t, out, `const s = "ab";`)
}

func TestFoldDivisionByZeroUnchanged(t *testing.T) {
	out, _ := applyPasses(t, "const z = 1 / 0;", []Pass{&FoldConstants{}})
	assert.Contains(t, out, "1 / 0")
}

func TestHelperInjectedOnce(t *testing.T) {
	src := "{ using a = open(); } { using b = open(); }"
	out, _ := applyPasses(t, src, []Pass{&ExplicitResourceManagement{}})
	assert.Equal(t, 1, strings.Count(out, "function _usingCtxHelper()"))
}

func TestGenerateUIDDeclaresSymbol(t *testing.T) {
	a := arena.New()
	res := parser.Parse([]byte("let taken = 1;"), ast.SourceType{}, a)
	model := semantic.Analyze(res.Program)
	ctx := NewContext(res.Program, model, a, res.NextNodeID)

	b1 := ctx.GenerateUID("taken", semantic.ProgramScope, semantic.FlagFunctionScoped)
	b2 := ctx.GenerateUID("taken", semantic.ProgramScope, semantic.FlagFunctionScoped)
	assert.NotEqual(t, "taken", b1.Name)
	assert.NotEqual(t, b1.Name, b2.Name, "successive UIDs must be distinct")
}
