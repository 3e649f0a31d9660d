package rules

import (
	"encoding/json"

	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lint"
)

var noDebuggerMeta = lint.Meta{
	Name:            "no-debugger",
	Category:        lint.CategoryCorrectness,
	DefaultSeverity: lint.SevError,
	Fixability:      lint.FixSafe,
	Plugin:          "eslint",
	NodeKinds:       []ast.Kind{ast.KindDebuggerStatement},
}

type noDebugger struct{}

func newNoDebugger(json.RawMessage) (lint.Rule, error) { return noDebugger{}, nil }

func (noDebugger) Meta() lint.Meta               { return noDebuggerMeta }
func (noDebugger) ShouldRun(ast.SourceType) bool { return true }
func (noDebugger) RunOnce(*lint.Context)         {}

func (noDebugger) Run(n ast.Node, ctx *lint.Context) {
	ctx.DiagnosticWithFix(n.Span(), "unexpected debugger statement", func(f *lint.Fixer) {
		f.Delete(n.Span())
	})
}
