package visitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/parser"
)

func parse(t *testing.T, src string) *ast.Program {
	t.Helper()
	res := parser.Parse([]byte(src), ast.SourceType{}, arena.New())
	require.Empty(t, res.Errors)
	return res.Program
}

func TestWalkVisitsInSourceOrder(t *testing.T) {
	prog := parse(t, "const a = 1; f(a + 2);")
	var order []ast.Kind
	Walk(prog, FuncVisitor{OnEnter: func(n ast.Node) bool {
		order = append(order, n.Kind())
		return true
	}})

	require.NotEmpty(t, order)
	assert.Equal(t, ast.KindProgram, order[0])

	// Spans of consecutively entered sibling nodes never go backwards.
	var spans []uint32
	Walk(prog, FuncVisitor{OnEnter: func(n ast.Node) bool {
		spans = append(spans, n.Span().Start)
		return true
	}})
	// A child starts at or after its parent and siblings are entered in
	// source order, so the starts along an enter-order walk never decrease.
	for i := 1; i < len(spans); i++ {
		assert.LessOrEqual(t, spans[i-1], spans[i], "enter order went backwards at node %d", i)
	}
	checkContainment(t, prog)
}

func checkContainment(t *testing.T, n ast.Node) {
	t.Helper()
	EachChild(n, func(c ast.Node) {
		assert.LessOrEqual(t, n.Span().Start, c.Span().Start,
			"%s child %s starts before parent", n.Kind(), c.Kind())
		assert.GreaterOrEqual(t, n.Span().End, c.Span().End,
			"%s child %s ends after parent", n.Kind(), c.Kind())
		checkContainment(t, c)
	})
}

func TestWalkSpanContainmentAcrossShapes(t *testing.T) {
	prog := parse(t, `
function f(a, {b = 1, ...rest}) {
	label: for (const x of a) { if (x) break label; }
	try { g(); } catch (e) { h(e); } finally { done(); }
	return class K { m() { return b ** 2; } };
}
const t = `+"`x${1 + 2}y`"+`;
`)
	checkContainment(t, prog)
}

func TestWalkEnterFalseSkipsChildren(t *testing.T) {
	prog := parse(t, "f(g(h(1)));")
	calls := 0
	Walk(prog, FuncVisitor{OnEnter: func(n ast.Node) bool {
		if n.Kind() == ast.KindCallExpression {
			calls++
			return false // skip nested calls
		}
		return true
	}})
	assert.Equal(t, 1, calls)
}

func TestTraverseReplacesNode(t *testing.T) {
	prog := parse(t, "const a = before; use(before);")

	// Replace every reference named `before` with one named `after`.
	Traverse(prog, FuncMutator{OnEnter: func(n ast.Node, cur *Cursor) ast.Node {
		if ref, ok := n.(*ast.IdentifierReference); ok && ref.Name == "before" {
			repl := &ast.IdentifierReference{Name: "after"}
			repl.Loc = ref.Loc
			repl.NodeID = ref.NodeID
			return repl
		}
		return n
	}})

	count := 0
	Walk(prog, FuncVisitor{OnEnter: func(n ast.Node) bool {
		if ref, ok := n.(*ast.IdentifierReference); ok {
			assert.NotEqual(t, "before", ref.Name)
			if ref.Name == "after" {
				count++
			}
		}
		return true
	}})
	assert.Equal(t, 2, count)
}

func TestTraverseAncestors(t *testing.T) {
	prog := parse(t, "function f() { return 1; }")
	var sawReturnParentChain bool
	Traverse(prog, FuncMutator{OnEnter: func(n ast.Node, cur *Cursor) ast.Node {
		if n.Kind() == ast.KindNumericLiteral {
			anc := cur.Ancestors()
			require.NotEmpty(t, anc)
			assert.Equal(t, ast.KindProgram, anc[0].Kind())
			assert.Equal(t, ast.KindReturnStatement, cur.Parent().Kind())
			sawReturnParentChain = true
		}
		return n
	}})
	assert.True(t, sawReturnParentChain)
}

func TestTraverseReplacementChildrenAreVisited(t *testing.T) {
	prog := parse(t, "use(1);")
	// Replace the numeric literal's parent call argument with a binary
	// expression, then confirm its children get visited on the same pass.
	visitedInner := false
	Traverse(prog, FuncMutator{OnEnter: func(n ast.Node, cur *Cursor) ast.Node {
		if lit, ok := n.(*ast.NumericLiteral); ok && lit.Value == 1 {
			left := &ast.NumericLiteral{Value: 2, Raw: "2"}
			right := &ast.NumericLiteral{Value: 3, Raw: "3"}
			repl := &ast.BinaryExpression{Left: left, Right: right}
			return repl
		}
		if lit, ok := n.(*ast.NumericLiteral); ok && lit.Value == 3 {
			visitedInner = true
		}
		return n
	}})
	assert.True(t, visitedInner, "children of a replacement must be traversed")
}
