package semantic

import (
	"github.com/oxhq/jscore/internal/ast"
)

func (b *binder) stmt(s ast.Statement) {
	switch t := s.(type) {
	case *ast.BlockStatement:
		prev := b.enter(ScopeBlock, t)
		for _, inner := range t.Body {
			b.stmt(inner)
		}
		b.leave(prev)

	case *ast.VariableDeclaration:
		b.varDecl(t)

	case *ast.FunctionDeclaration:
		// The name itself was hoisted; bind body under a fresh scope.
		if t.Name != nil {
			if _, ok := b.m.symbolOfDecl[t.Name.ID()]; !ok {
				b.declare(t.Name, FlagFunction, b.hoistScope())
			}
		}
		b.function(t, t.Params, t.Body)

	case *ast.ClassDeclaration:
		if t.Name != nil {
			b.declare(t.Name, FlagClass|FlagBlockScoped, b.scope)
		}
		b.classParts(t, t.SuperClass, t.ClassBody)

	case *ast.ExpressionStatement:
		b.expr(t.Expression)

	case *ast.IfStatement:
		b.expr(t.Test)
		b.stmt(t.Consequent)
		if t.Alternate != nil {
			b.stmt(t.Alternate)
		}

	case *ast.ForStatement:
		prev := b.enter(ScopeForHeader, t)
		switch init := t.Init.(type) {
		case *ast.VariableDeclaration:
			b.varDecl(init)
		case ast.Expression:
			b.expr(init)
		}
		if t.Test != nil {
			b.expr(t.Test)
		}
		if t.Update != nil {
			b.expr(t.Update)
		}
		b.stmt(t.Body)
		b.leave(prev)

	case *ast.ForInStatement:
		b.forHeader(t, t.Left, t.Right, t.Body)
	case *ast.ForOfStatement:
		b.forHeader(t, t.Left, t.Right, t.Body)

	case *ast.WhileStatement:
		b.expr(t.Test)
		b.stmt(t.Body)
	case *ast.DoWhileStatement:
		b.stmt(t.Body)
		b.expr(t.Test)

	case *ast.SwitchStatement:
		b.expr(t.Discriminant)
		// The case bodies share one block scope.
		prev := b.enter(ScopeBlock, t)
		for _, c := range t.Cases {
			if c.Test != nil {
				b.expr(c.Test)
			}
			for _, inner := range c.Consequent {
				b.stmt(inner)
			}
		}
		b.leave(prev)

	case *ast.TryStatement:
		b.stmt(t.Block)
		if t.Handler != nil {
			prev := b.enter(ScopeCatch, t.Handler)
			if t.Handler.Param != nil {
				b.declarePattern(t.Handler.Param, FlagCatchVariable|FlagBlockScoped, b.scope)
			}
			// The catch body block nests inside the catch scope.
			for _, inner := range t.Handler.Body.Body {
				b.stmt(inner)
			}
			b.leave(prev)
		}
		if t.Finalizer != nil {
			b.stmt(t.Finalizer)
		}

	case *ast.LabeledStatement:
		b.stmt(t.Body)
	case *ast.ThrowStatement:
		b.expr(t.Argument)
	case *ast.ReturnStatement:
		if t.Argument != nil {
			b.expr(t.Argument)
		}
	case *ast.WithStatement:
		b.expr(t.Object)
		prev := b.enter(ScopeWith, t)
		b.stmt(t.Body)
		b.leave(prev)

	case *ast.ImportDeclaration:
		for _, spec := range t.Specifiers {
			switch sp := spec.(type) {
			case *ast.ImportSpecifier:
				b.declare(sp.Local, FlagImport|FlagBlockScoped|FlagConstVariable, b.scope)
			case *ast.ImportDefaultSpecifier:
				b.declare(sp.Local, FlagImport|FlagBlockScoped|FlagConstVariable, b.scope)
			case *ast.ImportNamespaceSpecifier:
				b.declare(sp.Local, FlagImport|FlagBlockScoped|FlagConstVariable, b.scope)
			}
		}

	case *ast.ExportNamedDeclaration:
		if t.Declaration != nil {
			b.stmt(t.Declaration)
			b.markDeclExported(t.Declaration)
			return
		}
		if t.Source != nil {
			return // re-export references the other module, not this scope
		}
		for _, spec := range t.Specifiers {
			if ref, ok := spec.Local.(*ast.IdentifierReference); ok {
				b.reference(ref, RefRead)
			}
		}

	case *ast.ExportDefaultDeclaration:
		switch d := t.Declaration.(type) {
		case *ast.FunctionDeclaration:
			b.stmt(d)
			b.markDeclExported(d)
		case *ast.ClassDeclaration:
			b.stmt(d)
			b.markDeclExported(d)
		case ast.Expression:
			b.expr(d)
		}

	case *ast.ExportAllDeclaration:
		// Only touches the other module.

	case *ast.TSEnumDeclaration:
		b.declare(t.Name, FlagEnum|FlagBlockScoped, b.scope)
		for _, mem := range t.Members {
			if mem.Init != nil {
				b.expr(mem.Init)
			}
		}

	case *ast.TSInterfaceDeclaration:
		b.declare(t.Name, FlagInterface, b.scope)

	case *ast.TSTypeAliasDeclaration:
		b.declare(t.Name, FlagTypeAlias, b.scope)

	case *ast.TSModuleDeclaration:
		if id, ok := t.Name.(*ast.BindingIdentifier); ok {
			// Namespaces merge: re-declaration of the same name is legal.
			if _, exists := b.m.scopes[b.scope].Bindings[id.Name]; !exists {
				b.declare(id, FlagNamespace, b.scope)
			} else {
				b.m.symbolOfDecl[id.ID()] = b.m.scopes[b.scope].Bindings[id.Name]
			}
		}
		prev := b.enter(ScopeTSModule, t)
		b.hoistInto(b.scope, t.Body)
		for _, inner := range t.Body {
			b.stmt(inner)
		}
		b.leave(prev)
	}
}

// markDeclExported sets FlagExport on the symbols a declaration binds.
func (b *binder) markDeclExported(decl ast.Statement) {
	setOn := func(id *ast.BindingIdentifier) {
		if id == nil {
			return
		}
		if sid, ok := b.m.symbolOfDecl[id.ID()]; ok {
			b.m.symbols[sid].Flags |= FlagExport
		}
	}
	switch t := decl.(type) {
	case *ast.VariableDeclaration:
		for _, d := range t.Declarations {
			eachBoundName(d.Name, setOn)
		}
	case *ast.FunctionDeclaration:
		setOn(t.Name)
	case *ast.ClassDeclaration:
		setOn(t.Name)
	case *ast.TSEnumDeclaration:
		setOn(t.Name)
	case *ast.TSInterfaceDeclaration:
		setOn(t.Name)
	case *ast.TSTypeAliasDeclaration:
		setOn(t.Name)
	}
}

func (b *binder) varDecl(t *ast.VariableDeclaration) {
	flags := varDeclFlags(t.VarKind)
	target := b.scope
	if t.VarKind == ast.VarVar {
		target = b.hoistScope()
	}
	for _, d := range t.Declarations {
		if t.VarKind == ast.VarVar {
			// Already hoisted; just make sure the decl mapping exists and
			// walk the initializer.
			eachBoundName(d.Name, func(id *ast.BindingIdentifier) {
				if _, ok := b.m.symbolOfDecl[id.ID()]; ok {
					return
				}
				b.hoistPattern(target, id)
			})
			b.walkPatternExprs(d.Name)
		} else {
			b.declarePattern(d.Name, flags, target)
		}
		if d.Init != nil {
			b.expr(d.Init)
		}
	}
}

// walkPatternExprs visits the non-binding expressions inside a pattern
// (defaults, computed keys) for an already-declared var pattern.
func (b *binder) walkPatternExprs(p ast.Pattern) {
	switch t := p.(type) {
	case *ast.ArrayPattern:
		for _, e := range t.Elements {
			if e != nil {
				b.walkPatternExprs(e)
			}
		}
	case *ast.ObjectPattern:
		for _, pr := range t.Properties {
			if pr.Computed {
				if k, ok := pr.Key.(ast.Expression); ok {
					b.expr(k)
				}
			}
			b.walkPatternExprs(pr.Value)
		}
		if t.Rest != nil {
			b.walkPatternExprs(t.Rest.Argument)
		}
	case *ast.RestElement:
		b.walkPatternExprs(t.Argument)
	case *ast.AssignmentPattern:
		b.walkPatternExprs(t.Left)
		b.expr(t.Right)
	case *ast.MemberExpression:
		b.expr(t)
	}
}

func (b *binder) forHeader(node ast.Statement, left ast.Node, right ast.Expression, body ast.Statement) {
	prev := b.enter(ScopeForHeader, node)
	switch l := left.(type) {
	case *ast.VariableDeclaration:
		b.varDecl(l)
	case ast.Pattern:
		b.assignTarget(l)
	}
	b.expr(right)
	b.stmt(body)
	b.leave(prev)
}

// function binds a declaration/expression function: params and body in a
// fresh function scope.
func (b *binder) function(fn ast.Node, params []ast.Pattern, body *ast.BlockStatement) {
	prev := b.enter(ScopeFunction, fn)
	for _, p := range params {
		b.declarePattern(p, FlagParameter|FlagFunctionScoped, b.scope)
	}
	if body != nil {
		b.hoistInto(b.scope, body.Body)
		for _, s := range body.Body {
			b.stmt(s)
		}
	}
	b.leave(prev)
}

func (b *binder) classParts(cls ast.Node, super ast.Expression, body *ast.ClassBody) {
	if super != nil {
		b.expr(super)
	}
	prev := b.enter(ScopeClass, cls)
	if body != nil {
		for _, m := range body.Members {
			switch mem := m.(type) {
			case *ast.MethodDefinition:
				if mem.Computed {
					if k, ok := mem.Key.(ast.Expression); ok {
						b.expr(k)
					}
				}
				b.function(mem.Value, mem.Value.Params, mem.Value.Body)
			case *ast.PropertyDefinition:
				if mem.Computed {
					if k, ok := mem.Key.(ast.Expression); ok {
						b.expr(k)
					}
				}
				if mem.Value != nil {
					b.expr(mem.Value)
				}
			case *ast.StaticBlock:
				sprev := b.enter(ScopeStaticBlock, mem)
				b.hoistInto(b.scope, mem.Body)
				for _, s := range mem.Body {
					b.stmt(s)
				}
				b.leave(sprev)
			}
		}
	}
	b.leave(prev)
}
