package lint

import (
	"sort"

	"github.com/oxhq/jscore/internal/diagnostic"
)

// MaxFixIterations bounds the fix-relint loop: after ten rounds a
// pathological pair of rules rewriting each other's output stops making
// progress the hard way.
const MaxFixIterations = 10

// SelectFixes picks the fixes to apply from one lint pass. Fixes are
// sorted by start offset; when two overlap, the earlier one wins, with
// safe preferred over unsafe on a tie at the same start. Returns the
// accepted fixes in ascending start order.
func SelectFixes(diags []RuleDiagnostic) []*diagnostic.Fix {
	type cand struct {
		fix    *diagnostic.Fix
		span   [2]uint32
		unsafe bool
	}
	var cands []cand
	for i := range diags {
		f := diags[i].Diagnostic.Fix
		if f == nil || len(f.Edits) == 0 {
			continue
		}
		s := f.Span()
		cands = append(cands, cand{fix: f, span: [2]uint32{s.Start, s.End}, unsafe: f.Unsafe})
	}
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].span[0] != cands[j].span[0] {
			return cands[i].span[0] < cands[j].span[0]
		}
		// Same start: safe sorts first so the overlap filter keeps it.
		return !cands[i].unsafe && cands[j].unsafe
	})

	var accepted []*diagnostic.Fix
	lastEnd := uint32(0)
	first := true
	for _, c := range cands {
		if !first && c.span[0] < lastEnd {
			continue // overlaps an accepted fix: dropped
		}
		accepted = append(accepted, c.fix)
		if c.span[1] > lastEnd {
			lastEnd = c.span[1]
		}
		first = false
	}
	return accepted
}

// ApplyFixes applies accepted fixes to src, right to left so earlier
// offsets stay valid, and returns the fixed source. Fixes must be the
// non-overlapping ascending list SelectFixes produces.
func ApplyFixes(src []byte, fixes []*diagnostic.Fix) []byte {
	// Flatten to edits, then order descending by start.
	var edits []diagnostic.Edit
	for _, f := range fixes {
		edits = append(edits, f.Edits...)
	}
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Span.Start > edits[j].Span.Start
	})

	out := make([]byte, len(src))
	copy(out, src)
	for _, e := range edits {
		if int(e.Span.End) > len(out) || e.Span.Start > e.Span.End {
			continue // stale span: skip rather than corrupt
		}
		var next []byte
		next = append(next, out[:e.Span.Start]...)
		next = append(next, e.Text...)
		next = append(next, out[e.Span.End:]...)
		out = next
	}
	return out
}
