package lexer

import (
	"strings"

	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// scanString scans a single- or double-quoted string literal. Invalid
// escapes do not abort the token: CookedValid is set false and
// Cooked is left empty, matching the "still legal in tagged templates"
// allowance. No error is recorded for it, and the parser does not check
// CookedValid: such a string literal parses with an empty value.
func (l *Lexer) scanString(start uint32, quote byte) token.Token {
	l.cur.NextByteUnchecked() // opening quote
	var cooked strings.Builder
	cookedValid := true

	for {
		b, ok := l.cur.PeekByte()
		if !ok {
			l.errorf(start, "unterminated string literal")
			break
		}
		if b == quote {
			l.cur.NextByteUnchecked()
			break
		}
		if b == '\n' {
			l.errorf(start, "unterminated string literal")
			break
		}
		if b == '\\' {
			l.cur.NextByteUnchecked()
			r, valid := l.scanEscapeSequence()
			if !valid {
				cookedValid = false
			} else if r >= 0 {
				cooked.WriteRune(r)
			}
			continue
		}
		r, size := l.cur.NextChar()
		_ = size
		cooked.WriteRune(r)
	}

	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	tok := token.Token{Kind: token.StringLiteral, Span: l.span(start), Raw: raw}
	if cookedValid {
		tok.Cooked = cooked.String()
		tok.CookedValid = true
	}
	return tok
}

// scanEscapeSequence consumes an escape sequence's body (the cursor is
// already past the backslash) and returns the rune it decodes to, or
// (-1, false) if the escape is invalid. A line continuation ("\\\n")
// returns (-1, true): it decodes to nothing but is not an error.
func (l *Lexer) scanEscapeSequence() (rune, bool) {
	b, ok := l.cur.PeekByte()
	if !ok {
		return -1, false
	}
	switch b {
	case 'n':
		l.cur.NextByteUnchecked()
		return '\n', true
	case 't':
		l.cur.NextByteUnchecked()
		return '\t', true
	case 'r':
		l.cur.NextByteUnchecked()
		return '\r', true
	case 'b':
		l.cur.NextByteUnchecked()
		return '\b', true
	case 'f':
		l.cur.NextByteUnchecked()
		return '\f', true
	case 'v':
		l.cur.NextByteUnchecked()
		return '\v', true
	case '0':
		l.cur.NextByteUnchecked()
		if nb, ok := l.cur.PeekByte(); ok && isASCIIDigit(nb) {
			return -1, false // octal escape, invalid in templates/strict mode
		}
		return 0, true
	case '\n':
		l.cur.NextByteUnchecked()
		return -1, true // line continuation
	case '\r':
		l.cur.NextByteUnchecked()
		if nb, ok := l.cur.PeekByte(); ok && nb == '\n' {
			l.cur.NextByteUnchecked()
		}
		return -1, true
	case 'x':
		l.cur.NextByteUnchecked()
		return l.scanHexEscape(2)
	case 'u':
		l.cur.NextByteUnchecked()
		if b, ok := l.cur.PeekByte(); ok && b == '{' {
			l.cur.NextByteUnchecked()
			return l.scanUnicodeCodePointEscape()
		}
		return l.scanHexEscape(4)
	default:
		r, size := l.cur.NextChar()
		_ = size
		return r, true
	}
}

func (l *Lexer) scanHexEscape(n int) (rune, bool) {
	var v rune
	for i := 0; i < n; i++ {
		b, ok := l.cur.PeekByte()
		if !ok || !isHexDigit(b) {
			return -1, false
		}
		v = v*16 + rune(hexDigitValue(b))
		l.cur.NextByteUnchecked()
	}
	return v, true
}

func (l *Lexer) scanUnicodeCodePointEscape() (rune, bool) {
	var v rune
	digits := 0
	for {
		b, ok := l.cur.PeekByte()
		if !ok {
			return -1, false
		}
		if b == '}' {
			l.cur.NextByteUnchecked()
			break
		}
		if !isHexDigit(b) {
			return -1, false
		}
		v = v*16 + rune(hexDigitValue(b))
		digits++
		l.cur.NextByteUnchecked()
	}
	if digits == 0 || v > 0x10FFFF {
		return -1, false
	}
	return v, true
}

func hexDigitValue(b byte) int {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0')
	case b >= 'a' && b <= 'f':
		return int(b-'a') + 10
	default:
		return int(b-'A') + 10
	}
}
