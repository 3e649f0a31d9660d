package semantic

import (
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/cfg"
	"github.com/oxhq/jscore/internal/diagnostic"
	"github.com/oxhq/jscore/internal/token"
)

// Analyze builds the semantic model for prog. The CFG is built first by its
// own walk; scope construction and declaration then happen in one walk, and
// references are resolved at
// the end, once every declaration (including hoisted ones the walk had
// not yet reached) is known.
func Analyze(prog *ast.Program) *Model {
	m := &Model{
		scopeOfNode:  make(map[ast.NodeID]ScopeID),
		symbolOfDecl: make(map[ast.NodeID]SymbolID),
		refOfNode:    make(map[ast.NodeID]ReferenceID),
		refNames:     make(map[ast.NodeID]string),
	}
	b := &binder{m: m, cfg: cfg.NewBuilder()}

	root := m.newScope(0, ScopeProgram, prog.ID())
	b.scope = root
	b.hoistInto(root, prog.Body)
	b.cfg.BuildProgram(prog)
	for _, s := range prog.Body {
		b.stmt(s)
	}

	m.CFG = b.cfg.Graph()
	b.resolve()
	return m
}

type binder struct {
	m     *Model
	cfg   *cfg.Builder
	scope ScopeID

	// pending references, resolved after the walk.
	pending []pendingRef
}

type pendingRef struct {
	node  ast.NodeID
	scope ScopeID
	name  string
	flags RefFlags
}

func (b *binder) errorf(span token.Span, msg string) {
	b.m.Diags = append(b.m.Diags, diagnostic.New(diagnostic.SeverityError, "semantic", msg, span))
}

// enter pushes a new scope for node and returns the previous one.
func (b *binder) enter(kind ScopeKind, node ast.Node) ScopeID {
	prev := b.scope
	b.scope = b.m.newScope(prev, kind, node.ID())
	return prev
}

func (b *binder) leave(prev ScopeID) { b.scope = prev }

// declare inserts a symbol, enforcing the redeclaration rules: a
// block-scoped binding conflicts with any sibling; `var` merges with
// `var`/function.
func (b *binder) declare(id *ast.BindingIdentifier, flags SymbolFlags, scope ScopeID) {
	if id == nil || id.Name == "" {
		return
	}
	if existing, ok := b.m.scopes[scope].Bindings[id.Name]; ok {
		sym := b.m.Symbol(existing)
		bothHoisted := sym.Flags&(FlagFunctionScoped|FlagFunction) != 0 &&
			flags&(FlagFunctionScoped|FlagFunction) != 0
		if bothHoisted {
			// var-with-var / var-with-function merge onto one symbol.
			if sym.Decl == 0 {
				sym.Decl = id.ID()
			}
			b.m.symbolOfDecl[id.ID()] = existing
			return
		}
		b.errorf(id.Span(), "identifier "+id.Name+" has already been declared")
		b.m.symbolOfDecl[id.ID()] = existing
		return
	}
	b.m.DeclareSymbol(id.Name, scope, flags, id.ID())
}

// hoistScope walks up to the nearest var-hoisting scope.
func (b *binder) hoistScope() ScopeID {
	s := b.scope
	for !b.m.scopes[s].Kind.IsHoistTarget() {
		s = b.m.scopes[s].Parent
	}
	return s
}

// hoistInto pre-declares the hoisted names of a function/program body:
// `var` bindings and function declarations, without descending into
// nested functions.
func (b *binder) hoistInto(scope ScopeID, body []ast.Statement) {
	var walkStmt func(s ast.Statement)
	hoistDecl := func(d *ast.VariableDeclaration) {
		if d.VarKind != ast.VarVar {
			return
		}
		for _, dd := range d.Declarations {
			b.hoistPattern(scope, dd.Name)
		}
	}
	walkStmt = func(s ast.Statement) {
		switch t := s.(type) {
		case *ast.VariableDeclaration:
			hoistDecl(t)
		case *ast.FunctionDeclaration:
			if t.Name != nil {
				if _, exists := b.m.scopes[scope].Bindings[t.Name.Name]; !exists {
					b.m.DeclareSymbol(t.Name.Name, scope, FlagFunction, t.Name.ID())
				}
			}
		case *ast.BlockStatement:
			for _, inner := range t.Body {
				walkStmt(inner)
			}
		case *ast.IfStatement:
			walkStmt(t.Consequent)
			if t.Alternate != nil {
				walkStmt(t.Alternate)
			}
		case *ast.ForStatement:
			if d, ok := t.Init.(*ast.VariableDeclaration); ok {
				hoistDecl(d)
			}
			walkStmt(t.Body)
		case *ast.ForInStatement:
			if d, ok := t.Left.(*ast.VariableDeclaration); ok {
				hoistDecl(d)
			}
			walkStmt(t.Body)
		case *ast.ForOfStatement:
			if d, ok := t.Left.(*ast.VariableDeclaration); ok {
				hoistDecl(d)
			}
			walkStmt(t.Body)
		case *ast.WhileStatement:
			walkStmt(t.Body)
		case *ast.DoWhileStatement:
			walkStmt(t.Body)
		case *ast.LabeledStatement:
			walkStmt(t.Body)
		case *ast.WithStatement:
			walkStmt(t.Body)
		case *ast.TryStatement:
			for _, inner := range t.Block.Body {
				walkStmt(inner)
			}
			if t.Handler != nil {
				for _, inner := range t.Handler.Body.Body {
					walkStmt(inner)
				}
			}
			if t.Finalizer != nil {
				for _, inner := range t.Finalizer.Body {
					walkStmt(inner)
				}
			}
		case *ast.SwitchStatement:
			for _, c := range t.Cases {
				for _, inner := range c.Consequent {
					walkStmt(inner)
				}
			}
		case *ast.ExportNamedDeclaration:
			if t.Declaration != nil {
				walkStmt(t.Declaration)
			}
		}
	}
	for _, s := range body {
		walkStmt(s)
	}
}

// hoistPattern declares every name bound by a var pattern into scope,
// merging with existing hoisted bindings.
func (b *binder) hoistPattern(scope ScopeID, p ast.Pattern) {
	eachBoundName(p, func(id *ast.BindingIdentifier) {
		if existing, ok := b.m.scopes[scope].Bindings[id.Name]; ok {
			b.m.symbolOfDecl[id.ID()] = existing
			return
		}
		b.m.DeclareSymbol(id.Name, scope, FlagFunctionScoped, id.ID())
	})
}

// eachBoundName visits every BindingIdentifier a pattern introduces.
func eachBoundName(p ast.Pattern, f func(*ast.BindingIdentifier)) {
	switch t := p.(type) {
	case *ast.BindingIdentifier:
		f(t)
	case *ast.ArrayPattern:
		for _, e := range t.Elements {
			if e != nil {
				eachBoundName(e, f)
			}
		}
	case *ast.ObjectPattern:
		for _, pr := range t.Properties {
			eachBoundName(pr.Value, f)
		}
		if t.Rest != nil {
			eachBoundName(t.Rest.Argument, f)
		}
	case *ast.RestElement:
		eachBoundName(t.Argument, f)
	case *ast.AssignmentPattern:
		eachBoundName(t.Left, f)
	case *ast.MemberExpression:
		// assignment target, binds nothing
	}
}

// declarePattern declares the pattern's names with flags, resolving the
// scope per binding kind, and walks initializer expressions.
func (b *binder) declarePattern(p ast.Pattern, flags SymbolFlags, scope ScopeID) {
	switch t := p.(type) {
	case *ast.BindingIdentifier:
		b.declare(t, flags, scope)
	case *ast.ArrayPattern:
		for _, e := range t.Elements {
			if e != nil {
				b.declarePattern(e, flags, scope)
			}
		}
	case *ast.ObjectPattern:
		for _, pr := range t.Properties {
			if pr.Computed {
				if k, ok := pr.Key.(ast.Expression); ok {
					b.expr(k)
				}
			}
			b.declarePattern(pr.Value, flags, scope)
		}
		if t.Rest != nil {
			b.declarePattern(t.Rest.Argument, flags, scope)
		}
	case *ast.RestElement:
		b.declarePattern(t.Argument, flags, scope)
	case *ast.AssignmentPattern:
		b.declarePattern(t.Left, flags, scope)
		b.expr(t.Right)
	case *ast.MemberExpression:
		b.expr(t)
	}
}

func varDeclFlags(kind ast.VariableKind) SymbolFlags {
	switch kind {
	case ast.VarVar:
		return FlagFunctionScoped
	case ast.VarConst:
		return FlagBlockScoped | FlagConstVariable
	case ast.VarUsing, ast.VarAwaitUsing:
		return FlagBlockScoped | FlagConstVariable | FlagUsing
	}
	return FlagBlockScoped
}
