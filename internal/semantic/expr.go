package semantic

import "github.com/oxhq/jscore/internal/ast"

// reference records a use site for later resolution.
func (b *binder) reference(ref *ast.IdentifierReference, flags RefFlags) {
	if ref.Name == "" {
		return // parser error placeholder
	}
	b.pending = append(b.pending, pendingRef{
		node:  ref.ID(),
		scope: b.scope,
		name:  ref.Name,
		flags: flags,
	})
}

// assignTarget walks a pattern in assignment (not declaration) position:
// identifier leaves are Write references.
func (b *binder) assignTarget(p ast.Node) {
	switch t := p.(type) {
	case *ast.IdentifierReference:
		b.reference(t, RefWrite)
	case *ast.BindingIdentifier:
		// Cover-grammar conversion produces BindingIdentifiers in
		// assignment position; they reference, not declare.
		if t.Name != "" {
			b.pending = append(b.pending, pendingRef{node: t.ID(), scope: b.scope, name: t.Name, flags: RefWrite})
		}
	case *ast.MemberExpression:
		b.expr(t)
	case *ast.ArrayPattern:
		for _, e := range t.Elements {
			if e != nil {
				b.assignTarget(e)
			}
		}
	case *ast.ObjectPattern:
		for _, pr := range t.Properties {
			if pr.Computed {
				if k, ok := pr.Key.(ast.Expression); ok {
					b.expr(k)
				}
			}
			b.assignTarget(pr.Value)
		}
		if t.Rest != nil {
			b.assignTarget(t.Rest.Argument)
		}
	case *ast.RestElement:
		b.assignTarget(t.Argument)
	case *ast.AssignmentPattern:
		b.assignTarget(t.Left)
		b.expr(t.Right)
	case ast.Expression:
		b.expr(t)
	}
}

func (b *binder) expr(e ast.Expression) {
	if e == nil {
		return
	}
	switch t := e.(type) {
	case *ast.IdentifierReference:
		b.reference(t, RefRead)

	case *ast.AssignmentExpression:
		b.assignTarget(t.Target)
		b.expr(t.Value)

	case *ast.UpdateExpression:
		// Both a read and a write of its operand.
		if ref, ok := t.Argument.(*ast.IdentifierReference); ok {
			b.reference(ref, RefRead|RefWrite)
		} else {
			b.expr(t.Argument)
		}

	case *ast.ArrowFunctionExpression:
		prev := b.enter(ScopeFunction, t)
		for _, p := range t.Params {
			b.declarePattern(p, FlagParameter|FlagFunctionScoped, b.scope)
		}
		switch body := t.Body.(type) {
		case *ast.BlockStatement:
			b.hoistInto(b.scope, body.Body)
			for _, s := range body.Body {
				b.stmt(s)
			}
		case ast.Expression:
			b.expr(body)
		}
		b.leave(prev)

	case *ast.FunctionExpression:
		// A named function expression binds its own name in an implicit
		// scope visible only inside itself; binding it in the function
		// scope approximates that closely enough for resolution.
		prev := b.enter(ScopeFunction, t)
		if t.Name != nil {
			b.declare(t.Name, FlagFunction, b.scope)
		}
		for _, p := range t.Params {
			b.declarePattern(p, FlagParameter|FlagFunctionScoped, b.scope)
		}
		if t.Body != nil {
			b.hoistInto(b.scope, t.Body.Body)
			for _, s := range t.Body.Body {
				b.stmt(s)
			}
		}
		b.leave(prev)

	case *ast.ClassExpression:
		if t.Name != nil {
			// Like function expressions, the name is internal.
			prev := b.enter(ScopeClass, t)
			b.declare(t.Name, FlagClass, b.scope)
			b.classExprParts(t.SuperClass, t.ClassBody)
			b.leave(prev)
		} else {
			b.classParts(t, t.SuperClass, t.ClassBody)
		}

	case *ast.ObjectExpression:
		for _, m := range t.Properties {
			switch p := m.(type) {
			case *ast.ObjectProperty:
				if p.Computed {
					if k, ok := p.Key.(ast.Expression); ok {
						b.expr(k)
					}
				}
				b.expr(p.Value)
			case *ast.SpreadElement:
				b.expr(p.Argument)
			}
		}

	case *ast.ArrayExpression:
		for _, el := range t.Elements {
			if el != nil {
				b.expr(el)
			}
		}
	case *ast.SpreadElement:
		b.expr(t.Argument)
	case *ast.UnaryExpression:
		b.expr(t.Argument)
	case *ast.BinaryExpression:
		b.expr(t.Left)
		b.expr(t.Right)
	case *ast.LogicalExpression:
		b.expr(t.Left)
		b.expr(t.Right)
	case *ast.ConditionalExpression:
		b.expr(t.Test)
		b.expr(t.Consequent)
		b.expr(t.Alternate)
	case *ast.CallExpression:
		b.expr(t.Callee)
		for _, a := range t.Arguments {
			b.expr(a)
		}
	case *ast.NewExpression:
		b.expr(t.Callee)
		for _, a := range t.Arguments {
			b.expr(a)
		}
	case *ast.MemberExpression:
		b.expr(t.Object)
		if t.Computed {
			if prop, ok := t.Property.(ast.Expression); ok {
				b.expr(prop)
			}
		}
	case *ast.ChainExpression:
		b.expr(t.Expression)
	case *ast.SequenceExpression:
		for _, inner := range t.Expressions {
			b.expr(inner)
		}
	case *ast.TemplateLiteral:
		for _, inner := range t.Expressions {
			b.expr(inner)
		}
	case *ast.TaggedTemplateExpression:
		b.expr(t.Tag)
		for _, inner := range t.Quasi.Expressions {
			b.expr(inner)
		}
	case *ast.YieldExpression:
		if t.Argument != nil {
			b.expr(t.Argument)
		}
	case *ast.AwaitExpression:
		b.expr(t.Argument)
	case *ast.ParenthesizedExpression:
		b.expr(t.Expression)
	case *ast.TSAsExpression:
		b.expr(t.Expression)
	case *ast.TSSatisfiesExpression:
		b.expr(t.Expression)
	case *ast.TSNonNullExpression:
		b.expr(t.Expression)

	case *ast.JSXElement:
		b.jsxElement(t)
	case *ast.JSXFragment:
		for _, c := range t.Children {
			b.jsxChild(c)
		}
	}
}

func (b *binder) classExprParts(super ast.Expression, body *ast.ClassBody) {
	if super != nil {
		b.expr(super)
	}
	if body == nil {
		return
	}
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
			if mem.Value != nil {
				b.expr(mem.Value)
			}
		case *ast.StaticBlock:
			prev := b.enter(ScopeStaticBlock, mem)
			for _, s := range mem.Body {
				b.stmt(s)
			}
			b.leave(prev)
		}
	}
}

// jsxElement binds the references JSX introduces: a capitalized element
// name references a component binding; attribute and child expressions
// are ordinary expressions.
func (b *binder) jsxElement(el *ast.JSXElement) {
	b.jsxName(el.Opening.Name)
	for _, a := range el.Opening.Attributes {
		switch attr := a.(type) {
		case *ast.JSXAttribute:
			switch v := attr.Value.(type) {
			case *ast.JSXExpressionContainer:
				if v.Expression != nil {
					b.expr(v.Expression)
				}
			case *ast.JSXElement:
				b.jsxElement(v)
			}
		case *ast.JSXSpreadAttribute:
			b.expr(attr.Argument)
		}
	}
	for _, c := range el.Children {
		b.jsxChild(c)
	}
}

func (b *binder) jsxChild(c ast.Node) {
	switch t := c.(type) {
	case *ast.JSXExpressionContainer:
		if t.Expression != nil {
			b.expr(t.Expression)
		}
	case *ast.JSXElement:
		b.jsxElement(t)
	case *ast.JSXFragment:
		for _, inner := range t.Children {
			b.jsxChild(inner)
		}
	}
}

func (b *binder) jsxName(name ast.Node) {
	switch t := name.(type) {
	case *ast.JSXIdentifier:
		// Lowercase names are intrinsic elements (div, span); only
		// component names resolve against scope.
		if t.Name != "" && t.Name[0] >= 'A' && t.Name[0] <= 'Z' {
			b.pending = append(b.pending, pendingRef{node: t.ID(), scope: b.scope, name: t.Name, flags: RefRead})
		}
	case *ast.JSXMemberExpression:
		b.jsxName(t.Object)
	}
}

// resolve binds every pending reference by walking its scope chain, now
// that all declarations exist. Unresolved references land on the program
// scope.
func (b *binder) resolve() {
	for _, pr := range b.pending {
		rid := ReferenceID(len(b.m.refs))
		ref := Reference{Node: pr.node, Scope: pr.scope, Symbol: SymbolNone, Flags: pr.flags}
		if sid, ok := b.m.Lookup(pr.scope, pr.name); ok {
			ref.Symbol = sid
			b.m.symbols[sid].References = append(b.m.symbols[sid].References, rid)
		}
		b.m.refs = append(b.m.refs, ref)
		b.m.refOfNode[pr.node] = rid
		b.m.refNames[pr.node] = pr.name
		if ref.Symbol == SymbolNone {
			b.m.unresolved = append(b.m.unresolved, rid)
		}
	}
	b.pending = nil
}
