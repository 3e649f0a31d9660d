package offset

import "sort"

// linearProbeLimit bounds how many entries forward Converter will scan by
// hand before giving up and bisecting. Most queries come from a
// single forward pass over the AST (diagnostics, the printer), so the next
// hit is usually only one or two entries past the current one. The exact
// value is a tuning knob; revisit if profiling says otherwise.
const linearProbeLimit = 8

// Converter maps UTF-8 byte offsets to UTF-16 code unit offsets using a
// Table built by Build. It is not safe for concurrent use: each Converter
// keeps a "current range" cursor optimized for offsets requested in
// ascending order, which is how every caller (diagnostics, the printer,
// incremental re-lexing) actually visits them.
type Converter struct {
	table *Table
	// idx is the index into table.entries whose range we last returned.
	idx int
}

// NewConverter builds a Converter over t. t may be nil (pure ASCII source),
// in which case ToUTF16 is the identity function.
func NewConverter(t *Table) *Converter {
	return &Converter{table: t}
}

// ToUTF16 converts a UTF-8 byte offset into the source to the matching
// UTF-16 code unit offset.
func (c *Converter) ToUTF16(u uint32) uint32 {
	if c.table == nil || u == 0 {
		return u
	}
	entries := c.table.entries
	if c.inRange(c.idx, u) {
		return u - entries[c.idx].UTF16Difference
	}

	// Forward queries (the overwhelmingly common case) are usually just a
	// few entries ahead of the last one; a short linear probe avoids the
	// log(n) overhead of bisecting the whole table for them.
	for step := 1; step <= linearProbeLimit; step++ {
		j := c.idx + step
		if j >= len(entries) {
			break
		}
		if c.inRange(j, u) {
			c.idx = j
			return u - entries[j].UTF16Difference
		}
	}

	idx := sort.Search(len(entries), func(i int) bool {
		return entries[i].UTF8Offset > u
	}) - 1
	if idx < 0 {
		idx = 0
	}
	c.idx = idx
	return u - entries[idx].UTF16Difference
}

// inRange reports whether u falls within the half-open range owned by
// entries[idx]: [entries[idx].UTF8Offset, entries[idx+1].UTF8Offset), or
// [entries[idx].UTF8Offset, srcLen] for the last entry.
func (c *Converter) inRange(idx int, u uint32) bool {
	entries := c.table.entries
	if idx < 0 || idx >= len(entries) {
		return false
	}
	if u < entries[idx].UTF8Offset {
		return false
	}
	if idx+1 < len(entries) {
		return u < entries[idx+1].UTF8Offset
	}
	return u <= c.table.srcLen
}
