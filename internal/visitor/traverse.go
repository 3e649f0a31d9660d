package visitor

import "github.com/oxhq/jscore/internal/ast"

// Mutator is the hook pair of a mutable traversal. Either hook may return
// a replacement for the current node; returning n (or nil) keeps it. A
// replacement's children are traversed in its place, and replacement
// mid-walk never invalidates the iteration: each child slot is re-read
// after its subtree returns.
type Mutator interface {
	Enter(n ast.Node, cur *Cursor) ast.Node
	Leave(n ast.Node, cur *Cursor) ast.Node
}

// FuncMutator adapts functions to Mutator; either may be nil.
type FuncMutator struct {
	OnEnter func(n ast.Node, cur *Cursor) ast.Node
	OnLeave func(n ast.Node, cur *Cursor) ast.Node
}

func (m FuncMutator) Enter(n ast.Node, cur *Cursor) ast.Node {
	if m.OnEnter == nil {
		return n
	}
	return m.OnEnter(n, cur)
}

func (m FuncMutator) Leave(n ast.Node, cur *Cursor) ast.Node {
	if m.OnLeave == nil {
		return n
	}
	return m.OnLeave(n, cur)
}

// Cursor carries traversal state into the hooks.
type Cursor struct {
	ancestors []ast.Node
}

// Ancestors returns the enclosing nodes, outermost first, not including
// the current node.
func (c *Cursor) Ancestors() []ast.Node { return c.ancestors }

// Parent returns the immediate parent, or nil at the root.
func (c *Cursor) Parent() ast.Node {
	if len(c.ancestors) == 0 {
		return nil
	}
	return c.ancestors[len(c.ancestors)-1]
}

// Traverse runs a mutable traversal over prog.
func Traverse(prog *ast.Program, m Mutator) {
	t := &traverser{m: m, cur: &Cursor{}}
	// The program node itself is never replaced; only its children are.
	t.cur.ancestors = append(t.cur.ancestors, prog)
	t.stmts(prog.Body)
	t.cur.ancestors = t.cur.ancestors[:0]
}

type traverser struct {
	m   Mutator
	cur *Cursor
}

func (t *traverser) push(n ast.Node) { t.cur.ancestors = append(t.cur.ancestors, n) }
func (t *traverser) pop()            { t.cur.ancestors = t.cur.ancestors[:len(t.cur.ancestors)-1] }

// visit runs enter, children, leave for a node and returns its (possibly
// replaced) final value.
func (t *traverser) visit(n ast.Node) ast.Node {
	if n == nil || isNilNode(n) {
		return n
	}
	if r := t.m.Enter(n, t.cur); r != nil {
		n = r
	}
	t.push(n)
	t.children(n)
	t.pop()
	if r := t.m.Leave(n, t.cur); r != nil {
		n = r
	}
	return n
}

func (t *traverser) expr(slot *ast.Expression) {
	if *slot == nil {
		return
	}
	if r, ok := t.visit(*slot).(ast.Expression); ok {
		*slot = r
	}
}

func (t *traverser) stmt(slot *ast.Statement) {
	if *slot == nil {
		return
	}
	if r, ok := t.visit(*slot).(ast.Statement); ok {
		*slot = r
	}
}

func (t *traverser) stmts(list []ast.Statement) {
	for i := range list {
		t.stmt(&list[i])
	}
}

func (t *traverser) pat(slot *ast.Pattern) {
	if *slot == nil {
		return
	}
	if r, ok := t.visit(*slot).(ast.Pattern); ok {
		*slot = r
	}
}

func (t *traverser) node(slot *ast.Node) {
	if *slot == nil {
		return
	}
	if r := t.visit(*slot); r != nil {
		*slot = r
	}
}

// block visits a *ast.BlockStatement slot, accepting a replacement only if
// it is still a block.
func (t *traverser) block(slot **ast.BlockStatement) {
	if *slot == nil {
		return
	}
	if r, ok := t.visit(*slot).(*ast.BlockStatement); ok {
		*slot = r
	}
}

// children dispatches the writable-slot walk for one node. Shapes mirror
// EachChild; only slots a transform can meaningfully rewrite are visited.
// Nodes without a case here (imports, JSX names, type annotations, binding
// identifiers) are not descended into.
func (t *traverser) children(n ast.Node) {
	switch x := n.(type) {
	case *ast.Program:
		t.stmts(x.Body)

	case *ast.TemplateLiteral:
		for i := range x.Expressions {
			t.expr(&x.Expressions[i])
		}
	case *ast.ArrayExpression:
		for i := range x.Elements {
			if x.Elements[i] != nil {
				t.expr(&x.Elements[i])
			}
		}
	case *ast.ObjectExpression:
		for i := range x.Properties {
			switch p := x.Properties[i].(type) {
			case *ast.ObjectProperty:
				if p.Computed {
					t.node(&p.Key)
				}
				t.expr(&p.Value)
			case *ast.SpreadElement:
				t.expr(&p.Argument)
			}
		}
	case *ast.SpreadElement:
		t.expr(&x.Argument)
	case *ast.UnaryExpression:
		t.expr(&x.Argument)
	case *ast.UpdateExpression:
		t.expr(&x.Argument)
	case *ast.BinaryExpression:
		t.expr(&x.Left)
		t.expr(&x.Right)
	case *ast.LogicalExpression:
		t.expr(&x.Left)
		t.expr(&x.Right)
	case *ast.AssignmentExpression:
		t.node(&x.Target)
		t.expr(&x.Value)
	case *ast.ConditionalExpression:
		t.expr(&x.Test)
		t.expr(&x.Consequent)
		t.expr(&x.Alternate)
	case *ast.CallExpression:
		t.expr(&x.Callee)
		for i := range x.Arguments {
			t.expr(&x.Arguments[i])
		}
	case *ast.NewExpression:
		t.expr(&x.Callee)
		for i := range x.Arguments {
			t.expr(&x.Arguments[i])
		}
	case *ast.MemberExpression:
		t.expr(&x.Object)
		if x.Computed {
			t.node(&x.Property)
		}
	case *ast.ChainExpression:
		t.expr(&x.Expression)
	case *ast.SequenceExpression:
		for i := range x.Expressions {
			t.expr(&x.Expressions[i])
		}
	case *ast.TaggedTemplateExpression:
		t.expr(&x.Tag)
		for i := range x.Quasi.Expressions {
			t.expr(&x.Quasi.Expressions[i])
		}
	case *ast.YieldExpression:
		if x.Argument != nil {
			t.expr(&x.Argument)
		}
	case *ast.AwaitExpression:
		t.expr(&x.Argument)
	case *ast.ParenthesizedExpression:
		t.expr(&x.Expression)
	case *ast.ArrowFunctionExpression:
		for i := range x.Params {
			t.pat(&x.Params[i])
		}
		t.node(&x.Body)
	case *ast.FunctionExpression:
		for i := range x.Params {
			t.pat(&x.Params[i])
		}
		t.block(&x.Body)
	case *ast.ClassExpression:
		if x.SuperClass != nil {
			t.expr(&x.SuperClass)
		}
		t.classBody(x.ClassBody)
	case *ast.TSAsExpression:
		t.expr(&x.Expression)
	case *ast.TSSatisfiesExpression:
		t.expr(&x.Expression)
	case *ast.TSNonNullExpression:
		t.expr(&x.Expression)

	case *ast.ArrayPattern:
		for i := range x.Elements {
			if x.Elements[i] != nil {
				t.pat(&x.Elements[i])
			}
		}
	case *ast.ObjectPattern:
		for _, p := range x.Properties {
			if p.Computed {
				t.node(&p.Key)
			}
			t.pat(&p.Value)
		}
		if x.Rest != nil {
			t.pat(&x.Rest.Argument)
		}
	case *ast.RestElement:
		t.pat(&x.Argument)
	case *ast.AssignmentPattern:
		t.pat(&x.Left)
		t.expr(&x.Right)

	case *ast.BlockStatement:
		t.stmts(x.Body)
	case *ast.ExpressionStatement:
		t.expr(&x.Expression)
	case *ast.IfStatement:
		t.expr(&x.Test)
		t.stmt(&x.Consequent)
		if x.Alternate != nil {
			t.stmt(&x.Alternate)
		}
	case *ast.ForStatement:
		if x.Init != nil {
			t.node(&x.Init)
		}
		if x.Test != nil {
			t.expr(&x.Test)
		}
		if x.Update != nil {
			t.expr(&x.Update)
		}
		t.stmt(&x.Body)
	case *ast.ForInStatement:
		t.node(&x.Left)
		t.expr(&x.Right)
		t.stmt(&x.Body)
	case *ast.ForOfStatement:
		t.node(&x.Left)
		t.expr(&x.Right)
		t.stmt(&x.Body)
	case *ast.WhileStatement:
		t.expr(&x.Test)
		t.stmt(&x.Body)
	case *ast.DoWhileStatement:
		t.stmt(&x.Body)
		t.expr(&x.Test)
	case *ast.SwitchStatement:
		t.expr(&x.Discriminant)
		for _, c := range x.Cases {
			if c.Test != nil {
				t.expr(&c.Test)
			}
			t.stmts(c.Consequent)
		}
	case *ast.TryStatement:
		t.block(&x.Block)
		if x.Handler != nil {
			if x.Handler.Param != nil {
				t.pat(&x.Handler.Param)
			}
			t.block(&x.Handler.Body)
		}
		if x.Finalizer != nil {
			t.block(&x.Finalizer)
		}
	case *ast.LabeledStatement:
		t.stmt(&x.Body)
	case *ast.ThrowStatement:
		t.expr(&x.Argument)
	case *ast.ReturnStatement:
		if x.Argument != nil {
			t.expr(&x.Argument)
		}
	case *ast.WithStatement:
		t.expr(&x.Object)
		t.stmt(&x.Body)

	case *ast.VariableDeclaration:
		for _, d := range x.Declarations {
			t.pat(&d.Name)
			if d.Init != nil {
				t.expr(&d.Init)
			}
		}
	case *ast.FunctionDeclaration:
		for i := range x.Params {
			t.pat(&x.Params[i])
		}
		t.block(&x.Body)
	case *ast.ClassDeclaration:
		if x.SuperClass != nil {
			t.expr(&x.SuperClass)
		}
		t.classBody(x.ClassBody)

	case *ast.ImportDeclaration, *ast.ExportAllDeclaration:
		// nothing rewritable

	case *ast.ExportNamedDeclaration:
		if x.Declaration != nil {
			t.stmt(&x.Declaration)
		}
	case *ast.ExportDefaultDeclaration:
		t.node(&x.Declaration)

	case *ast.JSXElement:
		t.jsxElement(x)
	case *ast.JSXFragment:
		for i := range x.Children {
			t.node(&x.Children[i])
		}
	case *ast.JSXExpressionContainer:
		if x.Expression != nil {
			t.expr(&x.Expression)
		}

	case *ast.TSEnumDeclaration:
		for _, m := range x.Members {
			if m.Init != nil {
				t.expr(&m.Init)
			}
		}
	case *ast.TSModuleDeclaration:
		t.stmts(x.Body)
	}
}

func (t *traverser) classBody(body *ast.ClassBody) {
	if body == nil {
		return
	}
	for _, m := range body.Members {
		switch mem := m.(type) {
		case *ast.MethodDefinition:
			if mem.Computed {
				t.node(&mem.Key)
			}
			for i := range mem.Value.Params {
				t.pat(&mem.Value.Params[i])
			}
			t.block(&mem.Value.Body)
		case *ast.PropertyDefinition:
			if mem.Computed {
				t.node(&mem.Key)
			}
			if mem.Value != nil {
				t.expr(&mem.Value)
			}
		case *ast.StaticBlock:
			t.stmts(mem.Body)
		}
	}
}

func (t *traverser) jsxElement(el *ast.JSXElement) {
	for _, a := range el.Opening.Attributes {
		switch attr := a.(type) {
		case *ast.JSXAttribute:
			if attr.Value != nil {
				t.node(&attr.Value)
			}
		case *ast.JSXSpreadAttribute:
			t.expr(&attr.Argument)
		}
	}
	for i := range el.Children {
		t.node(&el.Children[i])
	}
}
