package semantic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/parser"
)

func analyze(t *testing.T, src string) (*ast.Program, *Model) {
	t.Helper()
	res := parser.Parse([]byte(src), ast.SourceType{}, arena.New())
	require.Empty(t, res.Errors, "parse errors in test fixture")
	return res.Program, Analyze(res.Program)
}

// TestBlockScopedShadowing reproduces the shadowing scenario: two distinct
// symbols for x; the inner call sees the inner one, the outer call the
// outer one.
func TestBlockScopedShadowing(t *testing.T) {
	prog, m := analyze(t, "let x = 1; { let x = 2; f(x); } g(x);")

	// Two declared `x` symbols in different scopes.
	var xSyms []SymbolID
	for i := range m.symbols {
		if m.symbols[i].Name == "x" {
			xSyms = append(xSyms, SymbolID(i))
		}
	}
	require.Len(t, xSyms, 2)
	outer, inner := xSyms[0], xSyms[1]
	assert.Equal(t, ProgramScope, m.Symbol(outer).Scope)
	assert.NotEqual(t, ProgramScope, m.Symbol(inner).Scope)

	// Find the two argument references in source order.
	var argRefs []ReferenceID
	for i := range m.refs {
		if m.refNames[m.refs[i].Node] == "x" {
			argRefs = append(argRefs, ReferenceID(i))
		}
	}
	require.Len(t, argRefs, 2)

	first, second := m.Reference(argRefs[0]), m.Reference(argRefs[1])
	// Binding may record them in either order; identify by scope depth.
	if first.Scope == ProgramScope {
		first, second = second, first
	}
	assert.Equal(t, inner, first.Symbol, "f(x) should bind the inner symbol")
	assert.Equal(t, outer, second.Symbol, "g(x) should bind the outer symbol")

	// f and g are unresolved and live on the program scope.
	assert.Len(t, m.Unresolved(), 2)
	_ = prog
}

func TestFunctionHoistingResolvesForwardCalls(t *testing.T) {
	_, m := analyze(t, "f(); var a = 1; function f() { var a = 2; }")

	// `a` in the function body and `a` at top level are distinct symbols.
	count := 0
	for i := range m.symbols {
		if m.symbols[i].Name == "a" {
			count++
		}
	}
	assert.Equal(t, 2, count)

	// The call f() resolves to the hoisted function even though it
	// appears first.
	assert.Empty(t, m.Unresolved())
}

func TestRedeclarationError(t *testing.T) {
	_, m := analyze(t, "let a = 1; let a = 2;")
	require.NotEmpty(t, m.Diags)
	assert.Contains(t, m.Diags[0].Message, "already been declared")
}

func TestVarMergesWithVar(t *testing.T) {
	_, m := analyze(t, "var a = 1; var a = 2;")
	assert.Empty(t, m.Diags)
	count := 0
	for i := range m.symbols {
		if m.symbols[i].Name == "a" {
			count++
		}
	}
	assert.Equal(t, 1, count, "var/var should merge into one symbol")
}

func TestCatchParameterScope(t *testing.T) {
	_, m := analyze(t, "try { risky(); } catch (e) { log(e); } use(e);")

	var catchSym SymbolID = SymbolNone
	for i := range m.symbols {
		if m.symbols[i].Name == "e" {
			catchSym = SymbolID(i)
		}
	}
	require.NotEqual(t, SymbolNone, catchSym)
	assert.NotZero(t, m.Symbol(catchSym).Flags&FlagCatchVariable)
	require.Len(t, m.Symbol(catchSym).References, 1, "only log(e) binds the catch variable")

	// The `e` after the catch block must be unresolved.
	foundUnresolvedE := false
	for _, rid := range m.Unresolved() {
		if m.refNames[m.Reference(rid).Node] == "e" {
			foundUnresolvedE = true
		}
	}
	assert.True(t, foundUnresolvedE)
}

// TestScopeWellFormedness checks invariant: every resolved reference's
// scope has the symbol's declaring scope as ancestor-or-self.
func TestScopeWellFormedness(t *testing.T) {
	src := `
const top = 0;
function outer(p) {
	let mid = p + top;
	return function inner() {
		for (let i = 0; i < mid; i++) { use(i, p, top); }
	};
}`
	_, m := analyze(t, src)
	for i := range m.refs {
		r := &m.refs[i]
		if r.Symbol == SymbolNone {
			continue
		}
		decl := m.Symbol(r.Symbol).Scope
		assert.True(t, m.IsAncestorOrSelf(decl, r.Scope),
			"reference in scope %d to symbol declared in scope %d", r.Scope, decl)
	}
}

func TestWriteReferenceFlags(t *testing.T) {
	_, m := analyze(t, "let a = 1; a = 2; a++; use(a);")
	var reads, writes int
	for i := range m.refs {
		if m.refNames[m.refs[i].Node] != "a" {
			continue
		}
		if m.refs[i].Flags&RefWrite != 0 {
			writes++
		}
		if m.refs[i].Flags&RefRead != 0 {
			reads++
		}
	}
	assert.Equal(t, 2, writes, "a = 2 and a++ write")
	assert.Equal(t, 2, reads, "a++ and use(a) read")
}

func TestGenerateUIDAvoidsCollisions(t *testing.T) {
	_, m := analyze(t, "let _usingCtx = 1; use(_usingCtx2);")
	name := m.GenerateUID("usingCtx")
	assert.NotEqual(t, "_usingCtx", name)
	assert.NotEqual(t, "_usingCtx2", name)
}

func TestFunctionCFGEntries(t *testing.T) {
	prog, m := analyze(t, "function f() { return 1; } const g = () => 2;")
	require.NotNil(t, m.CFG)
	// Exactly one entry per function: f and the arrow.
	assert.Len(t, m.CFG.FunctionEntries, 2)
	_ = prog
}
