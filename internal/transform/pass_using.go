package transform

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/semantic"
	"github.com/oxhq/jscore/internal/visitor"
)

// ExplicitResourceManagement lowers `using` / `await using` declarations
// to the try/catch/finally protocol:
//
//	{ using x = getResource(); doSomething(x); }
//
// becomes
//
//	{
//	  try {
//	    var _usingCtx = _usingCtxHelper();
//	    const x = _usingCtx.u(getResource());
//	    doSomething(x);
//	  } catch (_e) {
//	    _usingCtx.e = _e;
//	  } finally {
//	    _usingCtx.d();
//	  }
//	}
//
// The original block node is preserved (its body is rewritten in place),
// so inner const/let names keep resolving through the same scope. The
// caught error binds a generated UID, never a fixed short name, so the
// lowering stays hygienic under nested application.
type ExplicitResourceManagement struct{}

func (*ExplicitResourceManagement) Name() string { return "explicit-resource-management" }

func (p *ExplicitResourceManagement) Run(ctx *Context) {
	// The program body may itself contain `using`; host it in a synthetic
	// block so the try/finally has a home, and register a block scope for
	// it under the program scope. Existing symbols stay in the program scope.
	if bodyHasUsing(ctx.Program.Body) {
		wrapped := ctx.NewBlock(ctx.Program.Body...)
		ctx.Model.CreateChildScope(semantic.ProgramScope, semantic.ScopeBlock, wrapped.ID())
		wrapped.Body = p.lower(ctx, wrapped.Body, semantic.ProgramScope)
		ctx.Program.Body = []ast.Statement{wrapped}
	}

	visitor.Traverse(ctx.Program, visitor.FuncMutator{OnEnter: func(n ast.Node, cur *visitor.Cursor) ast.Node {
		block, ok := n.(*ast.BlockStatement)
		if !ok || !bodyHasUsing(block.Body) {
			return n
		}
		scope := p.scopeOf(ctx, block)
		block.Body = p.lower(ctx, block.Body, scope)
		return block
	}})
}

func bodyHasUsing(body []ast.Statement) bool {
	for _, s := range body {
		if d, ok := s.(*ast.VariableDeclaration); ok {
			if d.VarKind == ast.VarUsing || d.VarKind == ast.VarAwaitUsing {
				return true
			}
		}
	}
	return false
}

func (p *ExplicitResourceManagement) scopeOf(ctx *Context, block *ast.BlockStatement) semantic.ScopeID {
	if s, ok := ctx.Model.ScopeOfNode(block.ID()); ok {
		return s
	}
	return semantic.ProgramScope
}

// lower rewrites a body containing using declarations into the
// try/catch/finally protocol, returning the replacement statement list.
func (p *ExplicitResourceManagement) lower(ctx *Context, body []ast.Statement, scope semantic.ScopeID) []ast.Statement {
	helper := ctx.Helper(HelperUsingCtx)
	ctxID := ctx.GenerateUID("usingCtx", scope, semantic.FlagFunctionScoped)
	errID := ctx.GenerateUID("e", scope, semantic.FlagCatchVariable|semantic.FlagBlockScoped)

	// var _usingCtx = _usingCtxHelper();
	tryBody := []ast.Statement{
		ctx.NewVarDecl(ast.VarVar, ctxID.Binding(ctx), ctx.NewCall(helper.Ref(ctx))),
	}
	hasAwait := false
	for _, s := range body {
		decl, ok := s.(*ast.VariableDeclaration)
		if !ok || (decl.VarKind != ast.VarUsing && decl.VarKind != ast.VarAwaitUsing) {
			tryBody = append(tryBody, s)
			continue
		}
		isAwait := decl.VarKind == ast.VarAwaitUsing
		if isAwait {
			hasAwait = true
		}
		// using x = init  ->  const x = _usingCtx.u(init)
		for _, d := range decl.Declarations {
			method := "u"
			if isAwait {
				method = "a"
			}
			wrapped := ctx.NewCall(ctx.NewMember(ctxID.Ref(ctx), method), d.Init)
			var reg ast.Expression = wrapped
			if isAwait {
				aw := arena.Alloc[ast.AwaitExpression](ctx.Arena)
				aw.Argument = wrapped
				aw.NodeID = ctx.newID()
				reg = aw
			}
			id, _ := d.Name.(*ast.BindingIdentifier)
			binding := id
			if binding == nil {
				// Destructuring after `using` is a parse error upstream; a
				// placeholder keeps the lowering total.
				binding = ctx.GenerateUID("res", scope, semantic.FlagBlockScoped).Binding(ctx)
			}
			tryBody = append(tryBody, ctx.NewVarDecl(ast.VarConst, binding, reg))
		}
	}

	// catch (_e) { _usingCtx.e = _e; }
	catchBody := ctx.NewBlock(
		ctx.NewExprStmt(ctx.NewAssign(ctx.NewMember(ctxID.Ref(ctx), "e"), errID.Ref(ctx))),
	)
	handler := arena.Alloc[ast.CatchClause](ctx.Arena)
	handler.Param = errID.Binding(ctx)
	handler.Body = catchBody
	handler.NodeID = ctx.newID()

	// finally { _usingCtx.d(); }
	dispose := ctx.NewCall(ctx.NewMember(ctxID.Ref(ctx), "d"))
	var disposeExpr ast.Expression = dispose
	if hasAwait {
		aw := arena.Alloc[ast.AwaitExpression](ctx.Arena)
		aw.Argument = dispose
		aw.NodeID = ctx.newID()
		disposeExpr = aw
	}
	finalizer := ctx.NewBlock(ctx.NewExprStmt(disposeExpr))

	try := arena.Alloc[ast.TryStatement](ctx.Arena)
	try.Block = ctx.NewBlock(tryBody...)
	try.Handler = handler
	try.Finalizer = finalizer
	try.NodeID = ctx.newID()
	return []ast.Statement{try}
}
