// Package rules holds the built-in lint rules. The catalog is
// deliberately tiny (the framework is the point, rules plug into it),
// but each one here is real enough to exercise configuration, dispatch,
// and fixes end to end.
package rules

import (
	"encoding/json"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lint"
	"github.com/oxhq/jscore/internal/token"
)

func init() {
	must(lint.Register(capitalizedCommentMeta, newCapitalizedComment, "capitalized-comments"))
	must(lint.Register(noDebuggerMeta, newNoDebugger))
	must(lint.Register(noEmptyMeta, newNoEmpty, "no-empty-block"))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

var capitalizedCommentMeta = lint.Meta{
	Name:            "capitalized-comment",
	Category:        lint.CategoryStyle,
	DefaultSeverity: lint.SevWarning,
	Fixability:      lint.FixSafe,
	Plugin:          "eslint",
	Schema:          json.RawMessage(`{"type":"object","properties":{"style":{"enum":["always","never"]}}}`),
}

type capitalizedComment struct {
	// always requires the first letter uppercase; false (never) requires
	// lowercase.
	always bool
}

func newCapitalizedComment(cfg json.RawMessage) (lint.Rule, error) {
	r := &capitalizedComment{always: true}
	if len(cfg) > 0 {
		var opts struct {
			Style string `json:"style"`
		}
		if err := json.Unmarshal(cfg, &opts); err != nil {
			return nil, err
		}
		r.always = opts.Style != "never"
	}
	return r, nil
}

func (r *capitalizedComment) Meta() lint.Meta { return capitalizedCommentMeta }

func (*capitalizedComment) ShouldRun(ast.SourceType) bool { return true }

func (*capitalizedComment) Run(ast.Node, *lint.Context) {}

// pragmaPrefixes are comment openers that are directives, not prose;
// their casing is part of the protocol.
var pragmaPrefixes = []string{
	"eslint", "global", "jshint", "istanbul", "jscs", "exported",
	"@ts-", "prettier-", "c8 ", "v8 ",
}

func (r *capitalizedComment) RunOnce(ctx *lint.Context) {
	for _, c := range ctx.Comments() {
		text := c.Text
		inner := strings.TrimPrefix(text, "//")
		if c.Block {
			inner = strings.TrimPrefix(text, "/*")
		}
		offset := uint32(len(text) - len(inner))

		trimmed := strings.TrimLeft(inner, " \t")
		offset += uint32(len(inner) - len(trimmed))

		isPragma := false
		for _, p := range pragmaPrefixes {
			if strings.HasPrefix(trimmed, p) {
				isPragma = true
				break
			}
		}
		if isPragma || trimmed == "" {
			continue
		}

		first, size := utf8.DecodeRuneInString(trimmed)
		if !unicode.IsLetter(first) {
			continue
		}
		span := token.Span{
			Start: c.Span.Start + offset,
			End:   c.Span.Start + offset + uint32(size),
		}
		switch {
		case r.always && unicode.IsLower(first):
			ctx.DiagnosticWithFix(span, "comments should begin with an uppercase letter", func(f *lint.Fixer) {
				f.Replace(span, string(unicode.ToUpper(first)))
			})
		case !r.always && unicode.IsUpper(first):
			ctx.DiagnosticWithFix(span, "comments should begin with a lowercase letter", func(f *lint.Fixer) {
				f.Replace(span, string(unicode.ToLower(first)))
			})
		}
	}
}
