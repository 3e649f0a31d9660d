package cfg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/parser"
)

func build(t *testing.T, src string) *Graph {
	t.Helper()
	res := parser.Parse([]byte(src), ast.SourceType{}, arena.New())
	require.Empty(t, res.Errors)
	b := NewBuilder()
	b.BuildProgram(res.Program)
	return b.Graph()
}

func hasEdgeKind(g *Graph, kind EdgeKind) bool {
	for _, e := range g.Edges {
		if e.Kind == kind {
			return true
		}
	}
	return false
}

func TestLoopHasBackedge(t *testing.T) {
	g := build(t, "while (cond) { work(); }")
	assert.True(t, hasEdgeKind(g, EdgeBackedge))
	assert.True(t, hasEdgeKind(g, EdgeJump), "loop exit is a jump edge")
}

func TestIfProducesJoin(t *testing.T) {
	g := build(t, "if (a) { b(); } else { c(); } d();")
	joins := 0
	for _, e := range g.Edges {
		if e.Kind == EdgeJoin {
			joins++
		}
	}
	assert.Equal(t, 2, joins, "then and else both join")
}

func TestBreakTargetsLoopExit(t *testing.T) {
	g := build(t, "outer: for (;;) { for (;;) { break outer; } }")
	found := false
	for _, e := range g.Edges {
		if e.Kind == EdgeJump && e.Label == "outer" {
			found = true
		}
	}
	assert.True(t, found, "labeled break should emit a labeled jump edge")
}

func TestContinueIsBackedge(t *testing.T) {
	g := build(t, "for (;;) { if (skip) continue; work(); }")
	count := 0
	for _, e := range g.Edges {
		if e.Kind == EdgeBackedge {
			count++
		}
	}
	// One from the continue, one from the loop's own bottom.
	assert.Equal(t, 2, count)
}

func TestTryCatchFinallyEdges(t *testing.T) {
	g := build(t, "try { risky(); throw e; } catch (err) { handle(err); } finally { cleanup(); }")
	assert.True(t, hasEdgeKind(g, EdgeErrorImplicit), "try block gets an implicit error edge")
	assert.True(t, hasEdgeKind(g, EdgeErrorExplicit), "throw gets an explicit error edge")
	assert.True(t, hasEdgeKind(g, EdgeFinalize), "finally is reached by finalize edges")
}

func TestNestedFunctionsGetOwnEntries(t *testing.T) {
	g := build(t, "function f() { const g = function () {}; const h = () => 1; }")
	// f, g, and the arrow: three entries, each reached by a NewFunction
	// edge.
	assert.Len(t, g.FunctionEntries, 3)
	newFn := 0
	for _, e := range g.Edges {
		if e.Kind == EdgeNewFunction {
			newFn++
		}
	}
	assert.Equal(t, 3, newFn)

	// One entry per function: no two functions share an entry block.
	seen := map[BlockID]bool{}
	for _, entry := range g.FunctionEntries {
		assert.False(t, seen[entry])
		seen[entry] = true
	}
}

func TestSwitchFallthrough(t *testing.T) {
	g := build(t, "switch (v) { case 1: a(); case 2: b(); break; default: c(); }")
	require.NotEmpty(t, g.Blocks)
	// The case-1 body falls through into case 2 via a normal edge.
	assert.True(t, hasEdgeKind(g, EdgeNormal))
	assert.True(t, hasEdgeKind(g, EdgeJump))
}
