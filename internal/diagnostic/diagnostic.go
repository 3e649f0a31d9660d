// Package diagnostic defines the diagnostic values every stage of the
// pipeline records: labeled spans, severity, optional help text, and an
// optional machine-applicable fix. Fix application (with cross-diagnostic
// overlap rejection) lives in internal/lint; this package only owns the
// data model and its ordering/severity rules.
package diagnostic

import (
	"sort"

	"github.com/oxhq/jscore/internal/token"
)

// Severity of a diagnostic. The CLI exit code is the max severity seen.
type Severity uint8

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	}
	return "info"
}

// ToLSP maps to the LSP DiagnosticSeverity numbering (1=Error, 2=Warning,
// 3=Information). Kept here so an LSP frontend never re-derives it.
func (s Severity) ToLSP() int {
	switch s {
	case SeverityError:
		return 1
	case SeverityWarning:
		return 2
	}
	return 3
}

// Label is one annotated span; the first label of a diagnostic is its
// primary location, the rest are secondary ("first declaration here").
type Label struct {
	Span token.Span
	Note string
}

// Fix is an ordered list of non-overlapping byte-range replacements.
// Within one diagnostic the edits must not overlap (AddEdit drops any edit
// that would);
// across diagnostics the lint fixer rejects overlaps instead.
type Fix struct {
	Edits []Edit
	// Unsafe marks fixes that may change behavior; the fixer prefers safe
	// fixes when two overlap.
	Unsafe bool
}

// Edit replaces the bytes in Span with Text.
type Edit struct {
	Span token.Span
	Text string
}

// Overlaps reports whether two spans overlap: max(a,c) < min(b,d).
func Overlaps(a, b token.Span) bool {
	lo := a.Start
	if b.Start > lo {
		lo = b.Start
	}
	hi := a.End
	if b.End < hi {
		hi = b.End
	}
	return lo < hi
}

// AddEdit appends an edit, dropping it if it overlaps one already present.
func (f *Fix) AddEdit(span token.Span, text string) {
	for _, e := range f.Edits {
		if Overlaps(e.Span, span) {
			return
		}
	}
	f.Edits = append(f.Edits, Edit{Span: span, Text: text})
}

// Span returns the overall range a fix touches.
func (f *Fix) Span() token.Span {
	if len(f.Edits) == 0 {
		return token.Span{}
	}
	s := f.Edits[0].Span
	for _, e := range f.Edits[1:] {
		if e.Span.Start < s.Start {
			s.Start = e.Span.Start
		}
		if e.Span.End > s.End {
			s.End = e.Span.End
		}
	}
	return s
}

// Diagnostic is one reported problem.
type Diagnostic struct {
	Severity Severity
	// Code is the machine name: a rule name for lint diagnostics, a stage
	// tag ("parse", "semantic") otherwise.
	Code    string
	Message string
	Labels  []Label
	Help    string
	Fix     *Fix
}

// Primary returns the primary label's span (zero if unlabeled).
func (d *Diagnostic) Primary() token.Span {
	if len(d.Labels) == 0 {
		return token.Span{}
	}
	return d.Labels[0].Span
}

// New constructs a diagnostic with a single primary label.
func New(sev Severity, code, message string, span token.Span) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  message,
		Labels:   []Label{{Span: span}},
	}
}

// WithLabel appends a secondary label.
func (d Diagnostic) WithLabel(span token.Span, note string) Diagnostic {
	d.Labels = append(d.Labels, Label{Span: span, Note: note})
	return d
}

// WithHelp attaches a help string.
func (d Diagnostic) WithHelp(help string) Diagnostic {
	d.Help = help
	return d
}

// Bag collects diagnostics across pipeline stages for one file. It is not
// goroutine safe; like the arena it never crosses a worker boundary.
type Bag struct {
	diags []Diagnostic
}

func (b *Bag) Add(d Diagnostic) { b.diags = append(b.diags, d) }

func (b *Bag) AddAll(ds []Diagnostic) { b.diags = append(b.diags, ds...) }

func (b *Bag) Len() int { return len(b.diags) }

// MaxSeverity returns the highest severity recorded, and false if the bag
// is empty.
func (b *Bag) MaxSeverity() (Severity, bool) {
	if len(b.diags) == 0 {
		return SeverityInfo, false
	}
	max := SeverityInfo
	for _, d := range b.diags {
		if d.Severity > max {
			max = d.Severity
		}
	}
	return max, true
}

// Sorted returns the diagnostics in emission order: by primary span start,
// then by code for ties. This is the per-file ordering guarantee the
// concurrency model promises.
func (b *Bag) Sorted() []Diagnostic {
	out := make([]Diagnostic, len(b.diags))
	copy(out, b.diags)
	sort.SliceStable(out, func(i, j int) bool {
		si, sj := out[i].Primary().Start, out[j].Primary().Start
		if si != sj {
			return si < sj
		}
		return out[i].Code < out[j].Code
	})
	return out
}
