package lint

import (
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/cfg"
	"github.com/oxhq/jscore/internal/diagnostic"
	"github.com/oxhq/jscore/internal/semantic"
	"github.com/oxhq/jscore/internal/token"
)

// Context is everything a rule sees: the source, the AST, the semantic
// model and CFG, the comment channel, and the reporting entry points.
// One Context serves all rules over one file; the running rule's identity
// is swapped in by the dispatcher so reports carry the right code and
// severity.
type Context struct {
	source   []byte
	program  *ast.Program
	model    *semantic.Model
	comments []token.Trivia

	diags []RuleDiagnostic

	// OnInternalError, when set, receives rule panics the runner degraded
	// instead of propagating.
	OnInternalError func(rule string, recovered any)

	// current rule state, maintained by the runner.
	curRule     Meta
	curSeverity diagnostic.Severity
}

// RuleDiagnostic pairs a diagnostic with the fixability of the rule that
// produced it, for the fixer's safe-over-unsafe preference.
type RuleDiagnostic struct {
	Diagnostic diagnostic.Diagnostic
	Fixability Fixability
	Rule       string
}

// NewContext assembles the context for one file.
func NewContext(source []byte, program *ast.Program, model *semantic.Model, comments []token.Trivia) *Context {
	return &Context{source: source, program: program, model: model, comments: comments}
}

func (c *Context) Source() []byte             { return c.source }
func (c *Context) Program() *ast.Program      { return c.program }
func (c *Context) Model() *semantic.Model     { return c.model }
func (c *Context) CFG() *cfg.Graph            { return c.model.CFG }
func (c *Context) Comments() []token.Trivia   { return c.comments }
func (c *Context) SourceType() ast.SourceType { return c.program.SourceType }

// Text returns the source text of a span.
func (c *Context) Text(s token.Span) string { return string(c.source[s.Start:s.End]) }

// Diagnostic reports a problem at span with the running rule's severity
// and code.
func (c *Context) Diagnostic(span token.Span, message string) {
	c.diags = append(c.diags, RuleDiagnostic{
		Diagnostic: diagnostic.New(c.curSeverity, c.curRule.Name, message, span),
		Fixability: FixNone,
		Rule:       c.curRule.Name,
	})
}

// DiagnosticWithFix reports a problem and lets build construct its fix.
// The fix is attached, never applied here; application happens in the
// aggregation step after every rule has run.
func (c *Context) DiagnosticWithFix(span token.Span, message string, build func(f *Fixer)) {
	d := diagnostic.New(c.curSeverity, c.curRule.Name, message, span)
	fixer := &Fixer{}
	build(fixer)
	if len(fixer.fix.Edits) > 0 {
		fixer.fix.Unsafe = c.curRule.Fixability == FixUnsafe
		d.Fix = &fixer.fix
	}
	c.diags = append(c.diags, RuleDiagnostic{
		Diagnostic: d,
		Fixability: c.curRule.Fixability,
		Rule:       c.curRule.Name,
	})
}

// Diagnostics returns everything reported so far.
func (c *Context) Diagnostics() []RuleDiagnostic { return c.diags }

// Fixer accumulates the byte-range edits of one diagnostic's fix.
type Fixer struct {
	fix diagnostic.Fix
}

// Replace substitutes text for the bytes in span.
func (f *Fixer) Replace(span token.Span, text string) { f.fix.AddEdit(span, text) }

// Delete removes the bytes in span.
func (f *Fixer) Delete(span token.Span) { f.fix.AddEdit(span, "") }

// InsertBefore inserts text at the start of span.
func (f *Fixer) InsertBefore(span token.Span, text string) {
	f.fix.AddEdit(token.Span{Start: span.Start, End: span.Start}, text)
}

// InsertAfter inserts text at the end of span.
func (f *Fixer) InsertAfter(span token.Span, text string) {
	f.fix.AddEdit(token.Span{Start: span.End, End: span.End}, text)
}
