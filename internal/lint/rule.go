// Package lint implements the rule framework: the process-global rule
// registry, per-rule configuration, single-walk dispatch over the union of
// node kinds the enabled rules care about, and fix aggregation with
// overlap resolution. Individual rules live in internal/rules; the
// framework knows nothing about any of them.
package lint

import (
	"encoding/json"

	"github.com/oxhq/jscore/internal/ast"
)

// Category groups rules the way lint frontends present them.
type Category uint8

const (
	CategoryCorrectness Category = iota
	CategorySuspicious
	CategoryStyle
	CategoryPerf
	CategoryPedantic
	CategoryNursery
	CategoryRestriction
)

func (c Category) String() string {
	switch c {
	case CategoryCorrectness:
		return "correctness"
	case CategorySuspicious:
		return "suspicious"
	case CategoryStyle:
		return "style"
	case CategoryPerf:
		return "perf"
	case CategoryPedantic:
		return "pedantic"
	case CategoryNursery:
		return "nursery"
	case CategoryRestriction:
		return "restriction"
	}
	return "?"
}

// Fixability declares what a rule's autofix may do.
type Fixability uint8

const (
	FixNone Fixability = iota
	FixSafe
	FixUnsafe
)

// Meta is a rule's static description.
type Meta struct {
	// Name is the rule's configuration key, e.g. "capitalized-comment".
	Name     string
	Category Category
	// DefaultSeverity applies when configuration enables the rule without
	// overriding severity.
	DefaultSeverity Severity
	Fixability      Fixability
	// Plugin tags the rule's origin family: "eslint", "react", "jest", ...
	Plugin string
	// NodeKinds lists the kinds Run wants to see. Empty means the rule is
	// whole-program: RunOnce fires instead.
	NodeKinds []ast.Kind
	// Schema optionally documents the rule's JSON configuration shape, for
	// frontends; the framework itself never interprets it.
	Schema json.RawMessage
}

// Severity aliases the lint-facing severity levels so rule code does not
// import diagnostic directly for the common case.
type Severity = uint8

const (
	SevInfo    Severity = 0
	SevWarning Severity = 1
	SevError   Severity = 2
)

// Rule is one configured lint check. Construction from configuration
// happens in the rule's registered factory; a Rule value is immutable and
// shared across files, so it must be stateless beyond its configuration.
type Rule interface {
	Meta() Meta
	// Run is called for every visited node whose kind is in
	// Meta().NodeKinds.
	Run(n ast.Node, ctx *Context)
	// RunOnce is called once per file for whole-program rules (empty
	// NodeKinds). Node-dispatched rules may leave it empty.
	RunOnce(ctx *Context)
	// ShouldRun gates the rule on the file's source type ("JSX only").
	ShouldRun(src ast.SourceType) bool
}

// Factory constructs a rule from its JSON configuration (null/absent
// config must yield the default-configured rule).
type Factory func(cfg json.RawMessage) (Rule, error)
