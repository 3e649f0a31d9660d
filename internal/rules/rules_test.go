package rules

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lint"
	"github.com/oxhq/jscore/internal/parser"
	"github.com/oxhq/jscore/internal/semantic"
	"github.com/oxhq/jscore/internal/token"
)

// runLint runs the full pipeline (parse, analyze, lint) the way the
// driver does, with optional per-rule overrides.
func runLint(t *testing.T, src string, overrides map[string]lint.RuleConfig) *lint.Context {
	t.Helper()
	res := parser.Parse([]byte(src), ast.SourceType{}, arena.New())
	model := semantic.Analyze(res.Program)
	ctx := lint.NewContext([]byte(src), res.Program, model, res.Trivia)
	rules, err := lint.Configure(lint.DefaultRegistry, overrides)
	require.NoError(t, err)
	lint.Run(ctx, rules)
	return ctx
}

// TestCapitalizedCommentFix reproduces the worked lint scenario: a
// lowercase comment gets one warning on its first letter with a
// one-byte uppercase fix, and applying the fix produces the capitalized
// source.
func TestCapitalizedCommentFix(t *testing.T) {
	src := "// lowercase comment\nconst x = 1;"
	ctx := runLint(t, src, map[string]lint.RuleConfig{
		"no-empty":    {Severity: "off"},
		"no-debugger": {Severity: "off"},
	})

	diags := ctx.Diagnostics()
	require.Len(t, diags, 1)
	d := diags[0].Diagnostic
	assert.Equal(t, "capitalized-comment", d.Code)
	assert.Equal(t, token.Span{Start: 3, End: 4}, d.Primary())
	assert.Equal(t, uint8(1), uint8(d.Severity), "warning severity")
	require.NotNil(t, d.Fix)
	require.Len(t, d.Fix.Edits, 1)
	assert.Equal(t, token.Span{Start: 3, End: 4}, d.Fix.Edits[0].Span)
	assert.Equal(t, "L", d.Fix.Edits[0].Text)

	fixed := lint.ApplyFixes([]byte(src), lint.SelectFixes(diags))
	assert.Equal(t, "// Lowercase comment\nconst x = 1;", string(fixed))
}

func TestCapitalizedCommentNeverStyle(t *testing.T) {
	src := "// Uppercase comment\nconst x = 1;"
	ctx := runLint(t, src, map[string]lint.RuleConfig{
		"capitalized-comment": {Options: json.RawMessage(`{"style":"never"}`)},
		"no-empty":            {Severity: "off"},
		"no-debugger":         {Severity: "off"},
	})
	diags := ctx.Diagnostics()
	require.Len(t, diags, 1)
	fixed := lint.ApplyFixes([]byte(src), lint.SelectFixes(diags))
	assert.Equal(t, "// uppercase comment\nconst x = 1;", string(fixed))
}

func TestCapitalizedCommentSkipsPragmas(t *testing.T) {
	src := "// eslint-disable-next-line foo\nconst x = 1;"
	ctx := runLint(t, src, map[string]lint.RuleConfig{
		"no-empty":    {Severity: "off"},
		"no-debugger": {Severity: "off"},
	})
	assert.Empty(t, ctx.Diagnostics())
}

func TestNoDebugger(t *testing.T) {
	src := "work();\ndebugger;\nmore();"
	ctx := runLint(t, src, map[string]lint.RuleConfig{
		"capitalized-comment": {Severity: "off"},
		"no-empty":            {Severity: "off"},
	})
	diags := ctx.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "no-debugger", diags[0].Diagnostic.Code)

	fixed := lint.ApplyFixes([]byte(src), lint.SelectFixes(diags))
	// The statement (including its semicolon) is removed.
	assert.NotContains(t, string(fixed), "debugger")
	assert.Contains(t, string(fixed), "work();")
	assert.Contains(t, string(fixed), "more();")

	// Fix safety: the fixed source must reparse cleanly.
	res := parser.Parse(fixed, ast.SourceType{}, arena.New())
	assert.Empty(t, res.Errors)
}

func TestNoEmptyAllowsFunctionBodies(t *testing.T) {
	src := "function f() {}\nif (x) {}\ntry { g(); } catch (e) {}"
	ctx := runLint(t, src, map[string]lint.RuleConfig{
		"capitalized-comment": {Severity: "off"},
		"no-debugger":         {Severity: "off"},
	})
	diags := ctx.Diagnostics()
	require.Len(t, diags, 1, "only the if block is empty in the reportable sense")
	assert.Equal(t, "no-empty", diags[0].Diagnostic.Code)
}

func TestNoEmptyAllowsCommentedBlocks(t *testing.T) {
	src := "if (x) { /* intentional */ }"
	ctx := runLint(t, src, map[string]lint.RuleConfig{
		"capitalized-comment": {Severity: "off"},
		"no-debugger":         {Severity: "off"},
	})
	assert.Empty(t, ctx.Diagnostics())
}

func TestConfigureRejectsUnknownRule(t *testing.T) {
	_, err := lint.Configure(lint.DefaultRegistry, map[string]lint.RuleConfig{
		"definitely-not-a-rule": {Severity: "error"},
	})
	assert.Error(t, err)
}
