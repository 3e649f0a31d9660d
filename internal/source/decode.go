package source

import "unicode/utf8"

// decodeRune decodes the first rune in b. It is a thin wrapper over
// unicode/utf8: the interesting engineering in this package is the batched
// ASCII fast path (SkipASCIIRun), not UTF-8 decoding itself, which the
// standard library already does correctly and fast.
func decodeRune(b []byte) (rune, int) {
	if len(b) == 0 {
		return utf8.RuneError, 0
	}
	if b[0] < 0x80 {
		return rune(b[0]), 1
	}
	return utf8.DecodeRune(b)
}
