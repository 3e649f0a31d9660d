package rules

import (
	"encoding/json"

	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lint"
	"github.com/oxhq/jscore/internal/visitor"
)

var noEmptyMeta = lint.Meta{
	Name:            "no-empty",
	Category:        lint.CategorySuspicious,
	DefaultSeverity: lint.SevWarning,
	Plugin:          "eslint",
	// Whole-program: distinguishing an empty statement block from an
	// (allowed) empty function body needs the parent, so the rule walks
	// itself instead of using kind dispatch.
}

type noEmpty struct{}

func newNoEmpty(json.RawMessage) (lint.Rule, error) { return noEmpty{}, nil }

func (noEmpty) Meta() lint.Meta               { return noEmptyMeta }
func (noEmpty) ShouldRun(ast.SourceType) bool { return true }
func (noEmpty) Run(ast.Node, *lint.Context)   {}

func (noEmpty) RunOnce(ctx *lint.Context) {
	var stack []ast.Node
	visitor.Walk(ctx.Program(), visitor.FuncVisitor{
		OnEnter: func(n ast.Node) bool {
			if block, ok := n.(*ast.BlockStatement); ok && len(block.Body) == 0 {
				if !isFunctionBody(stack, block) && !hasCommentInside(ctx, block) {
					ctx.Diagnostic(block.Span(), "empty block statement")
				}
			}
			if sw, ok := n.(*ast.SwitchStatement); ok && len(sw.Cases) == 0 {
				ctx.Diagnostic(sw.Span(), "empty switch statement")
			}
			stack = append(stack, n)
			return true
		},
		OnLeave: func(ast.Node) {
			stack = stack[:len(stack)-1]
		},
	})
}

// isFunctionBody reports whether block is the body slot of the node above
// it; empty function and catch bodies are conventional, not suspicious.
func isFunctionBody(stack []ast.Node, block *ast.BlockStatement) bool {
	if len(stack) == 0 {
		return false
	}
	switch p := stack[len(stack)-1].(type) {
	case *ast.FunctionDeclaration:
		return p.Body == block
	case *ast.FunctionExpression:
		return p.Body == block
	case *ast.ArrowFunctionExpression:
		return p.Body == ast.Node(block)
	case *ast.CatchClause:
		return p.Body == block
	}
	return false
}

// hasCommentInside treats a block holding only a comment as deliberate.
func hasCommentInside(ctx *lint.Context, block *ast.BlockStatement) bool {
	s := block.Span()
	for _, c := range ctx.Comments() {
		if c.Span.Start >= s.Start && c.Span.End <= s.End {
			return true
		}
	}
	return false
}
