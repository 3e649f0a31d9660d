package transform

import (
	"strconv"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/semantic"
	"github.com/oxhq/jscore/internal/token"
	"github.com/oxhq/jscore/internal/visitor"
)

// FoldConstants is the minifier's constant-folding pass: `typeof` of a
// literal or function literal collapses to its string, and literal
// arithmetic/concatenation folds when the result is exact. `typeof x` for
// an unresolved x is left alone: it may be the only safe way user code
// probes a global.
type FoldConstants struct{}

func (*FoldConstants) Name() string { return "minify-fold-constants" }

func (p *FoldConstants) Run(ctx *Context) {
	visitor.Traverse(ctx.Program, visitor.FuncMutator{OnLeave: func(n ast.Node, cur *visitor.Cursor) ast.Node {
		switch t := n.(type) {
		case *ast.UnaryExpression:
			if t.Op == token.KeywordTypeof {
				if s, ok := p.typeofValue(ctx, t.Argument); ok {
					lit := ctx.NewString(s)
					lit.Loc = t.Loc
					return lit
				}
			}
		case *ast.BinaryExpression:
			if folded := p.foldBinary(ctx, t); folded != nil {
				return folded
			}
		}
		return n
	}})
}

// typeofValue evaluates `typeof arg` when the operand's runtime type is
// statically known.
func (p *FoldConstants) typeofValue(ctx *Context, arg ast.Expression) (string, bool) {
	switch t := arg.(type) {
	case *ast.NumericLiteral:
		return "number", true
	case *ast.BigIntLiteral:
		return "bigint", true
	case *ast.StringLiteral, *ast.TemplateLiteral:
		if tpl, ok := t.(*ast.TemplateLiteral); ok && len(tpl.Expressions) > 0 {
			// Substitutions may invoke toString with side effects; still a
			// string, but the operand itself cannot be dropped. Fold only
			// substitution-free templates.
			return "", false
		}
		return "string", true
	case *ast.BooleanLiteral:
		return "boolean", true
	case *ast.NullLiteral:
		return "object", true
	case *ast.RegExpLiteral, *ast.ObjectExpression, *ast.ArrayExpression:
		return "object", true
	case *ast.FunctionExpression, *ast.ArrowFunctionExpression, *ast.ClassExpression:
		return "function", true
	case *ast.IdentifierReference:
		switch t.Name {
		case "undefined":
			if p.isGlobalUndefined(ctx, t) {
				return "undefined", true
			}
		}
		// Unresolved references stay: `typeof x` is the idiomatic
		// existence probe and must not become a ReferenceError.
		return "", false
	case *ast.UnaryExpression:
		if t.Op == token.KeywordVoid {
			if sideEffectFree(t.Argument) {
				return "undefined", true
			}
		}
	case *ast.ParenthesizedExpression:
		return p.typeofValue(ctx, t.Expression)
	}
	return "", false
}

func (p *FoldConstants) isGlobalUndefined(ctx *Context, ref *ast.IdentifierReference) bool {
	rid, ok := ctx.Model.RefOfNode(ref.ID())
	if !ok {
		return false
	}
	return ctx.Model.Reference(rid).Symbol == semantic.SymbolNone
}

func sideEffectFree(e ast.Expression) bool {
	switch e.(type) {
	case *ast.NumericLiteral, *ast.StringLiteral, *ast.BooleanLiteral,
		*ast.NullLiteral, *ast.BigIntLiteral:
		return true
	}
	return false
}

// foldBinary folds literal-literal arithmetic and string concatenation.
func (p *FoldConstants) foldBinary(ctx *Context, b *ast.BinaryExpression) ast.Expression {
	// String concatenation.
	if b.Op == token.Plus {
		ls, lok := b.Left.(*ast.StringLiteral)
		rs, rok := b.Right.(*ast.StringLiteral)
		if lok && rok {
			lit := ctx.NewString(ls.Value + rs.Value)
			lit.Loc = b.Loc
			return lit
		}
	}

	ln, lok := b.Left.(*ast.NumericLiteral)
	rn, rok := b.Right.(*ast.NumericLiteral)
	if !lok || !rok {
		return nil
	}
	var v float64
	switch b.Op {
	case token.Plus:
		v = ln.Value + rn.Value
	case token.Minus:
		v = ln.Value - rn.Value
	case token.Star:
		v = ln.Value * rn.Value
	case token.Slash:
		if rn.Value == 0 {
			return nil // Infinity/NaN spelling is runtime territory
		}
		v = ln.Value / rn.Value
	default:
		return nil
	}
	lit := arena.Alloc[ast.NumericLiteral](ctx.Arena)
	lit.Value = v
	lit.Raw = strconv.FormatFloat(v, 'g', -1, 64)
	lit.Loc = b.Loc
	lit.NodeID = ctx.newID()
	return lit
}
