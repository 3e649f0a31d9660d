package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

func parseScript(t *testing.T, src string) Result {
	t.Helper()
	return Parse([]byte(src), ast.SourceType{}, arena.New())
}

func parseModule(t *testing.T, src string) Result {
	t.Helper()
	return Parse([]byte(src), ast.SourceType{Module: true}, arena.New())
}

func parseTS(t *testing.T, src string) Result {
	t.Helper()
	return Parse([]byte(src), ast.SourceType{Module: true, TypeScript: true}, arena.New())
}

func TestParseVariableDeclaration(t *testing.T) {
	res := parseScript(t, "const x = 1, y = 'two';")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Body, 1)

	decl, ok := res.Program.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, ast.VarConst, decl.VarKind)
	require.Len(t, decl.Declarations, 2)

	id, ok := decl.Declarations[0].Name.(*ast.BindingIdentifier)
	require.True(t, ok)
	assert.Equal(t, "x", id.Name)
	_, ok = decl.Declarations[0].Init.(*ast.NumericLiteral)
	assert.True(t, ok)

	str, ok := decl.Declarations[1].Init.(*ast.StringLiteral)
	require.True(t, ok)
	assert.Equal(t, "two", str.Value)
}

func TestParseBinaryPrecedence(t *testing.T) {
	res := parseScript(t, "a + b * c;")
	require.Empty(t, res.Errors)
	stmt := res.Program.Body[0].(*ast.ExpressionStatement)
	add, ok := stmt.Expression.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, token.Plus, add.Op)
	mul, ok := add.Right.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, token.Star, mul.Op)
}

func TestParseExponentRightAssociative(t *testing.T) {
	res := parseScript(t, "a ** b ** c;")
	require.Empty(t, res.Errors)
	stmt := res.Program.Body[0].(*ast.ExpressionStatement)
	outer := stmt.Expression.(*ast.BinaryExpression)
	_, leftIsIdent := outer.Left.(*ast.IdentifierReference)
	assert.True(t, leftIsIdent)
	_, rightIsPow := outer.Right.(*ast.BinaryExpression)
	assert.True(t, rightIsPow)
}

func TestParseArrowCoverGrammar(t *testing.T) {
	res := parseScript(t, "const f = (a, b = 1, ...rest) => a + b;")
	require.Empty(t, res.Errors)
	decl := res.Program.Body[0].(*ast.VariableDeclaration)
	arrow, ok := decl.Declarations[0].Init.(*ast.ArrowFunctionExpression)
	require.True(t, ok)
	require.Len(t, arrow.Params, 3)
	_, ok = arrow.Params[0].(*ast.BindingIdentifier)
	assert.True(t, ok)
	_, ok = arrow.Params[1].(*ast.AssignmentPattern)
	assert.True(t, ok)
	_, ok = arrow.Params[2].(*ast.RestElement)
	assert.True(t, ok)
	_, isExpr := arrow.Body.(ast.Expression)
	assert.True(t, isExpr, "concise body should be an expression")
}

func TestParseParenthesizedStaysExpression(t *testing.T) {
	res := parseScript(t, "(a, b);")
	require.Empty(t, res.Errors)
	stmt := res.Program.Body[0].(*ast.ExpressionStatement)
	paren, ok := stmt.Expression.(*ast.ParenthesizedExpression)
	require.True(t, ok)
	_, ok = paren.Expression.(*ast.SequenceExpression)
	assert.True(t, ok)
}

func TestParseDestructuringAssignment(t *testing.T) {
	res := parseScript(t, "[a, , ...b] = xs; ({x, y: {z} = d} = o);")
	require.Empty(t, res.Errors)

	stmt := res.Program.Body[0].(*ast.ExpressionStatement)
	assign := stmt.Expression.(*ast.AssignmentExpression)
	arr, ok := assign.Target.(*ast.ArrayPattern)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)
	assert.Nil(t, arr.Elements[1], "elision should be a hole")
	_, ok = arr.Elements[2].(*ast.RestElement)
	assert.True(t, ok)

	stmt2 := res.Program.Body[1].(*ast.ExpressionStatement)
	paren := stmt2.Expression.(*ast.ParenthesizedExpression)
	assign2 := paren.Expression.(*ast.AssignmentExpression)
	obj, ok := assign2.Target.(*ast.ObjectPattern)
	require.True(t, ok)
	require.Len(t, obj.Properties, 2)
	_, ok = obj.Properties[1].Value.(*ast.AssignmentPattern)
	assert.True(t, ok, "nested default should convert to AssignmentPattern")
}

func TestParseASI(t *testing.T) {
	res := parseScript(t, "let a = 1\nlet b = 2\nreturn")
	// `return` at top level is an error, but ASI itself must hold for the
	// two declarations.
	decl1, ok := res.Program.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, ast.VarLet, decl1.VarKind)
	_, ok = res.Program.Body[1].(*ast.VariableDeclaration)
	require.True(t, ok)
}

func TestParseTemplateLiteral(t *testing.T) {
	res := parseScript(t, "const s = `a${x}b${y + 1}c`;")
	require.Empty(t, res.Errors)
	decl := res.Program.Body[0].(*ast.VariableDeclaration)
	tpl, ok := decl.Declarations[0].Init.(*ast.TemplateLiteral)
	require.True(t, ok)
	require.Len(t, tpl.Quasis, 3)
	require.Len(t, tpl.Expressions, 2)
	assert.Equal(t, "a", tpl.Quasis[0].Cooked)
	assert.Equal(t, "b", tpl.Quasis[1].Cooked)
	assert.Equal(t, "c", tpl.Quasis[2].Cooked)
	assert.True(t, tpl.Quasis[2].Tail)
	_, ok = tpl.Expressions[1].(*ast.BinaryExpression)
	assert.True(t, ok)
}

func TestParseOptionalChain(t *testing.T) {
	res := parseScript(t, "a?.b.c?.(1);")
	require.Empty(t, res.Errors)
	stmt := res.Program.Body[0].(*ast.ExpressionStatement)
	chain, ok := stmt.Expression.(*ast.ChainExpression)
	require.True(t, ok)
	call, ok := chain.Expression.(*ast.CallExpression)
	require.True(t, ok)
	assert.True(t, call.Optional)
}

func TestParseClassMembers(t *testing.T) {
	src := `class A extends B {
		static #count = 0;
		value;
		constructor(x) { this.value = x; }
		get size() { return 1 }
		static async load() {}
		*items() {}
		static { init(); }
	}`
	res := parseScript(t, src)
	require.Empty(t, res.Errors)
	cls := res.Program.Body[0].(*ast.ClassDeclaration)
	require.NotNil(t, cls.SuperClass)
	members := cls.ClassBody.Members
	require.Len(t, members, 7)

	prop := members[0].(*ast.PropertyDefinition)
	assert.True(t, prop.Static)
	_, ok := prop.Key.(*ast.PrivateIdentifier)
	assert.True(t, ok)

	ctor := members[2].(*ast.MethodDefinition)
	assert.Equal(t, ast.MethodConstructor, ctor.MethodKind)

	getter := members[3].(*ast.MethodDefinition)
	assert.Equal(t, ast.MethodGet, getter.MethodKind)

	loader := members[4].(*ast.MethodDefinition)
	assert.True(t, loader.Static)
	assert.True(t, loader.Value.Async)

	gen := members[5].(*ast.MethodDefinition)
	assert.True(t, gen.Value.Generator)

	_, ok = members[6].(*ast.StaticBlock)
	assert.True(t, ok)
}

func TestParseImportExport(t *testing.T) {
	src := `import def, {a, b as c} from "mod";
import * as ns from "other";
export {x, y as z};
export default function () {}
export * from "reexp";
`
	res := parseModule(t, src)
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Body, 5)

	imp := res.Program.Body[0].(*ast.ImportDeclaration)
	require.Len(t, imp.Specifiers, 3)
	_, ok := imp.Specifiers[0].(*ast.ImportDefaultSpecifier)
	assert.True(t, ok)
	spec := imp.Specifiers[2].(*ast.ImportSpecifier)
	assert.Equal(t, "c", spec.Local.Name)
	assert.Equal(t, "mod", imp.Source.Value)

	impNS := res.Program.Body[1].(*ast.ImportDeclaration)
	_, ok = impNS.Specifiers[0].(*ast.ImportNamespaceSpecifier)
	assert.True(t, ok)

	exp := res.Program.Body[2].(*ast.ExportNamedDeclaration)
	require.Len(t, exp.Specifiers, 2)

	_, ok = res.Program.Body[3].(*ast.ExportDefaultDeclaration)
	assert.True(t, ok)
	_, ok = res.Program.Body[4].(*ast.ExportAllDeclaration)
	assert.True(t, ok)
}

func TestParseForVariants(t *testing.T) {
	res := parseScript(t, "for (let i = 0; i < n; i++) {} for (const k in o) {} for (const v of xs) {}")
	require.Empty(t, res.Errors)
	require.Len(t, res.Program.Body, 3)
	_, ok := res.Program.Body[0].(*ast.ForStatement)
	assert.True(t, ok)
	_, ok = res.Program.Body[1].(*ast.ForInStatement)
	assert.True(t, ok)
	_, ok = res.Program.Body[2].(*ast.ForOfStatement)
	assert.True(t, ok)
}

func TestParseUsingDeclaration(t *testing.T) {
	res := parseScript(t, "{ using x = getResource(); doSomething(x); }")
	require.Empty(t, res.Errors)
	block := res.Program.Body[0].(*ast.BlockStatement)
	decl, ok := block.Body[0].(*ast.VariableDeclaration)
	require.True(t, ok)
	assert.Equal(t, ast.VarUsing, decl.VarKind)
}

func TestParseTypeScript(t *testing.T) {
	src := `interface Point { x: number; y?: number }
type Pair<A, B = A> = [A, B];
enum Color { Red, Green = "g" }
function id<T>(x: T): T { return x }
const n = x as number;
let arr: Array<Map<string, number>> = m;
`
	res := parseTS(t, src)
	require.Empty(t, res.Errors)

	iface := res.Program.Body[0].(*ast.TSInterfaceDeclaration)
	require.Len(t, iface.Body.Members, 2)
	assert.True(t, iface.Body.Members[1].Optional)

	alias := res.Program.Body[1].(*ast.TSTypeAliasDeclaration)
	require.Len(t, alias.TypeParameters.Params, 2)
	_, ok := alias.Type.(*ast.TSTupleType)
	assert.True(t, ok)

	enum := res.Program.Body[2].(*ast.TSEnumDeclaration)
	require.Len(t, enum.Members, 2)

	fn := res.Program.Body[3].(*ast.FunctionDeclaration)
	require.NotNil(t, fn.TypeParameters)
	require.NotNil(t, fn.ReturnType)

	c := res.Program.Body[4].(*ast.VariableDeclaration)
	_, ok = c.Declarations[0].Init.(*ast.TSAsExpression)
	assert.True(t, ok)

	// Nested generics close with a `>>` token that must split.
	arr := res.Program.Body[5].(*ast.VariableDeclaration)
	bind := arr.Declarations[0].Name.(*ast.BindingIdentifier)
	require.NotNil(t, bind.TypeAnnotation)
	ref := bind.TypeAnnotation.Type.(*ast.TSTypeReference)
	require.Len(t, ref.TypeArguments, 1)
	inner := ref.TypeArguments[0].(*ast.TSTypeReference)
	require.Len(t, inner.TypeArguments, 2)
}

func TestParseJSX(t *testing.T) {
	src := "const el = <App prop={'foo'} flag data-x=\"1\">{'bar'}<br/> text </App>;"
	res := Parse([]byte(src), ast.SourceType{Module: true, JSX: true}, arena.New())
	require.Empty(t, res.Errors)

	decl := res.Program.Body[0].(*ast.VariableDeclaration)
	el, ok := decl.Declarations[0].Init.(*ast.JSXElement)
	require.True(t, ok)

	name := el.Opening.Name.(*ast.JSXIdentifier)
	assert.Equal(t, "App", name.Name)
	require.Len(t, el.Opening.Attributes, 3)

	attr0 := el.Opening.Attributes[0].(*ast.JSXAttribute)
	_, ok = attr0.Value.(*ast.JSXExpressionContainer)
	assert.True(t, ok)

	attr1 := el.Opening.Attributes[1].(*ast.JSXAttribute)
	assert.Nil(t, attr1.Value)

	attr2 := el.Opening.Attributes[2].(*ast.JSXAttribute)
	assert.Equal(t, "data-x", attr2.Name.(*ast.JSXIdentifier).Name)

	require.Len(t, el.Children, 3)
	_, ok = el.Children[0].(*ast.JSXExpressionContainer)
	assert.True(t, ok)
	nested := el.Children[1].(*ast.JSXElement)
	assert.True(t, nested.Opening.SelfClosing)
	text := el.Children[2].(*ast.JSXText)
	assert.Equal(t, " text ", text.Value)

	require.NotNil(t, el.Closing)
}

func TestParseErrorRecovery(t *testing.T) {
	res := parseScript(t, "let x = ;\nlet y = 2;")
	require.NotEmpty(t, res.Errors)
	// The second declaration must survive the first one's error.
	found := false
	for _, st := range res.Program.Body {
		if d, ok := st.(*ast.VariableDeclaration); ok {
			for _, dd := range d.Declarations {
				if id, ok := dd.Name.(*ast.BindingIdentifier); ok && id.Name == "y" {
					found = true
				}
			}
		}
	}
	assert.True(t, found, "parser should recover and parse the second statement")
}

func TestSpanContainment(t *testing.T) {
	src := "function f(a, b) { return a + b * 2; }"
	res := parseScript(t, src)
	require.Empty(t, res.Errors)

	fn := res.Program.Body[0].(*ast.FunctionDeclaration)
	prog := res.Program
	assert.LessOrEqual(t, prog.Span().Start, fn.Span().Start)
	assert.GreaterOrEqual(t, prog.Span().End, fn.Span().End)

	ret := fn.Body.Body[0].(*ast.ReturnStatement)
	assert.LessOrEqual(t, fn.Body.Span().Start, ret.Span().Start)
	assert.GreaterOrEqual(t, fn.Body.Span().End, ret.Span().End)

	add := ret.Argument.(*ast.BinaryExpression)
	assert.LessOrEqual(t, ret.Span().Start, add.Span().Start)
	assert.GreaterOrEqual(t, ret.Span().End, add.Span().End)
	assert.LessOrEqual(t, add.Span().Start, add.Left.Span().Start)
	assert.GreaterOrEqual(t, add.Span().End, add.Right.Span().End)
}

func TestNodeIDsAreUnique(t *testing.T) {
	res := parseScript(t, "const a = 1; function f() { return a; }")
	require.Empty(t, res.Errors)
	assert.Greater(t, uint32(res.NextNodeID), uint32(1))
}
