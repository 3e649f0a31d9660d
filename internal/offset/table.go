// Package offset builds and queries the UTF-8-to-UTF-16 offset translation
// table. JavaScript spans are defined in
// UTF-16 code units; source is stored and scanned as UTF-8, so every span
// that crosses a tool boundary (LSP, most of all) needs this conversion.
package offset

// Translation is one entry of the table: at utf8_offset, the running
// difference between bytes consumed and UTF-16 units produced is
// utf16_difference.
type Translation struct {
	UTF8Offset      uint32
	UTF16Difference uint32
}

// Table is a sorted, immutable list of Translations built once per source
// file. The first entry is always (0, 0).
type Table struct {
	entries []Translation
	srcLen  uint32
}

// Build scans src once and returns the offset table. If src is pure ASCII
// Build returns nil (no table at all) so callers can skip conversion
// entirely; see Empty.
func Build(src []byte) *Table {
	t := &Table{srcLen: uint32(len(src))}
	var diff uint32
	entries := []Translation{{0, 0}}
	for i := 0; i < len(src); i++ {
		b := src[i]
		if b >= 0xC0 {
			// increment = 1 + (b >= 0xE0): a 2-byte lead contributes 1
			// (2 bytes -> 1 UTF-16 unit); a 3- or 4-byte lead contributes 2
			// (3 bytes -> 1 unit, or 4 bytes -> a surrogate pair of 2 units).
			inc := uint32(1)
			if b >= 0xE0 {
				inc = 2
			}
			diff += inc
			entries = append(entries, Translation{UTF8Offset: uint32(i + 1), UTF16Difference: diff})
		}
	}
	if len(entries) == 1 {
		// Pure ASCII: report no table at all so Converter callers can skip
		// the conversion step entirely.
		return nil
	}
	t.entries = entries
	return t
}

// Empty reports whether src (as seen by Build) was pure ASCII, equivalently
// whether t is nil. It exists so call sites read naturally: offset.Empty(t).
func Empty(t *Table) bool { return t == nil }

// Entries exposes the built table for tests and for Converter.
func (t *Table) Entries() []Translation { return t.entries }
