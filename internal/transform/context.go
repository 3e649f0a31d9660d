// Package transform is the scope-aware AST rewrite framework: mutable
// traversal plus helper injection, UID generation, and scope manipulation.
// Passes run in a fixed order (see DefaultPasses); each is single-pass over the
// AST and interacts with the others only through the scope/symbol model,
// never shared mutable state.
package transform

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/semantic"
	"github.com/oxhq/jscore/internal/token"
)

// Pass is one rewrite over the whole program.
type Pass interface {
	Name() string
	Run(ctx *Context)
}

// Context carries the shared machinery every pass uses.
type Context struct {
	Program *ast.Program
	Model   *semantic.Model
	Arena   *arena.Arena

	nextID ast.NodeID

	helperDecls []ast.Statement
	helperNames map[HelperKind]*BoundIdentifier
}

// NewContext builds a transform context. nextNodeID continues the
// parser's id sequence so synthetic nodes stay unique.
func NewContext(prog *ast.Program, model *semantic.Model, a *arena.Arena, nextNodeID ast.NodeID) *Context {
	return &Context{
		Program:     prog,
		Model:       model,
		Arena:       a,
		nextID:      nextNodeID,
		helperNames: make(map[HelperKind]*BoundIdentifier),
	}
}

// Apply runs the passes in order and flushes injected helpers to the top
// of the program. The semantic model is reconstructed by the caller after
// passes that materially alter scoping; the model inside ctx is only
// guaranteed good enough for UID generation during the run.
func Apply(ctx *Context, passes []Pass) {
	for _, p := range passes {
		p.Run(ctx)
	}
	if len(ctx.helperDecls) > 0 {
		ctx.Program.Body = append(ctx.helperDecls, ctx.Program.Body...)
		ctx.helperDecls = nil
	}
}

// DefaultPasses is the documented pass order. Lowerings that change
// statement structure run before expression-level rewrites.
func DefaultPasses() []Pass {
	return []Pass{
		&ExplicitResourceManagement{},
		&FoldConstants{},
	}
}

func (c *Context) newID() ast.NodeID {
	id := c.nextID
	c.nextID++
	return id
}

// NextNodeID exposes the id counter for callers that re-analyze after
// transforming.
func (c *Context) NextNodeID() ast.NodeID { return c.nextID }

// BoundIdentifier names a binding a pass created: UID name plus its
// symbol. Each use site gets a fresh reference node.
type BoundIdentifier struct {
	Name   string
	Symbol semantic.SymbolID
}

// GenerateUID creates a collision-free binding visible from scope.
func (c *Context) GenerateUID(prefix string, scope semantic.ScopeID, flags semantic.SymbolFlags) *BoundIdentifier {
	name := c.Model.GenerateUID(prefix)
	sym := c.Model.DeclareSymbol(name, scope, flags, 0)
	return &BoundIdentifier{Name: name, Symbol: sym}
}

// Ref creates a use-site reference to the bound identifier.
func (b *BoundIdentifier) Ref(c *Context) *ast.IdentifierReference {
	n := arena.Alloc[ast.IdentifierReference](c.Arena)
	n.Name = b.Name
	n.NodeID = c.newID()
	return n
}

// Binding creates a declaration-site node for the bound identifier.
func (b *BoundIdentifier) Binding(c *Context) *ast.BindingIdentifier {
	n := arena.Alloc[ast.BindingIdentifier](c.Arena)
	n.Name = b.Name
	n.NodeID = c.newID()
	return n
}

// Synthetic node constructors. Synthetic nodes carry a zero span; the
// offset converter maps offset 0 to 0 without disturbing its range, which
// is exactly the behavior downstream tools expect of generated code.

func (c *Context) NewIdentRef(name string) *ast.IdentifierReference {
	n := arena.Alloc[ast.IdentifierReference](c.Arena)
	n.Name = name
	n.NodeID = c.newID()
	return n
}

func (c *Context) NewIdentName(name string) *ast.IdentifierName {
	n := arena.Alloc[ast.IdentifierName](c.Arena)
	n.Name = name
	n.NodeID = c.newID()
	return n
}

func (c *Context) NewString(value string) *ast.StringLiteral {
	n := arena.Alloc[ast.StringLiteral](c.Arena)
	n.Value = value
	n.NodeID = c.newID()
	return n
}

// NewMember builds `object.property`.
func (c *Context) NewMember(object ast.Expression, property string) *ast.MemberExpression {
	n := arena.Alloc[ast.MemberExpression](c.Arena)
	n.Object = object
	n.Property = c.NewIdentName(property)
	n.NodeID = c.newID()
	return n
}

// NewCall builds `callee(args...)`.
func (c *Context) NewCall(callee ast.Expression, args ...ast.Expression) *ast.CallExpression {
	n := arena.Alloc[ast.CallExpression](c.Arena)
	n.Callee = callee
	n.Arguments = args
	n.NodeID = c.newID()
	return n
}

// NewVarDecl builds `<kind> <name> = <init>;` with a single declarator.
func (c *Context) NewVarDecl(kind ast.VariableKind, name *ast.BindingIdentifier, init ast.Expression) *ast.VariableDeclaration {
	d := arena.Alloc[ast.VariableDeclarator](c.Arena)
	d.Name = name
	d.Init = init
	d.NodeID = c.newID()

	n := arena.Alloc[ast.VariableDeclaration](c.Arena)
	n.VarKind = kind
	n.Declarations = []*ast.VariableDeclarator{d}
	n.NodeID = c.newID()
	return n
}

// NewExprStmt wraps an expression as a statement.
func (c *Context) NewExprStmt(e ast.Expression) *ast.ExpressionStatement {
	n := arena.Alloc[ast.ExpressionStatement](c.Arena)
	n.Expression = e
	n.NodeID = c.newID()
	return n
}

// NewBlock builds a block statement, inheriting span from the statements
// it hosts when available.
func (c *Context) NewBlock(body ...ast.Statement) *ast.BlockStatement {
	n := arena.Alloc[ast.BlockStatement](c.Arena)
	n.Body = body
	n.NodeID = c.newID()
	if len(body) > 0 {
		n.Loc = token.Span{Start: body[0].Span().Start, End: body[len(body)-1].Span().End}
	}
	return n
}

// NewAssign builds `target = value`.
func (c *Context) NewAssign(target ast.Node, value ast.Expression) *ast.AssignmentExpression {
	n := arena.Alloc[ast.AssignmentExpression](c.Arena)
	n.Op = token.Eq
	n.Target = target
	n.Value = value
	n.NodeID = c.newID()
	return n
}
