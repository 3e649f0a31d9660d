package lexer

import (
	"strings"

	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// scanNumber handles every numeric literal form: decimal (with
// optional fraction/exponent), hex (0x), octal (0o), binary (0b), legacy
// octal ("0123", a strict-mode error but still a valid token), the BigInt
// suffix "n", and "_" numeric separators.
func (l *Lexer) scanNumber(start uint32) token.Token {
	flags := token.NumberDecimal
	isBigInt := false

	first := peekAt(l.cur, 0)
	if first == '0' {
		switch peekAt(l.cur, 1) {
		case 'x', 'X':
			flags = token.NumberHex
			l.cur.NextByteUnchecked()
			l.cur.NextByteUnchecked()
			l.scanDigits(isHexDigit)
		case 'o', 'O':
			flags = token.NumberOctal
			l.cur.NextByteUnchecked()
			l.cur.NextByteUnchecked()
			l.scanDigits(isOctalDigit)
		case 'b', 'B':
			flags = token.NumberBinary
			l.cur.NextByteUnchecked()
			l.cur.NextByteUnchecked()
			l.scanDigits(isBinaryDigit)
		default:
			if isASCIIDigit(peekAt(l.cur, 1)) {
				flags = token.NumberLegacyOctal
				l.cur.NextByteUnchecked()
				l.scanDigits(isASCIIDigit)
			} else {
				l.cur.NextByteUnchecked()
				l.scanDecimalRest()
			}
		}
	} else {
		l.scanDecimalRest()
	}

	if b, ok := l.cur.PeekByte(); ok && b == 'n' && flags != token.NumberLegacyOctal {
		isBigInt = true
		l.cur.NextByteUnchecked()
	}

	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	cooked := strings.ReplaceAll(raw, "_", "")
	kind := token.NumericLiteral
	if isBigInt {
		kind = token.BigIntLiteral
		cooked = strings.TrimSuffix(cooked, "n")
	}
	return token.Token{
		Kind: kind, Span: l.span(start), Raw: raw,
		Cooked: cooked, CookedValid: true, NumberFlags: flags,
	}
}

// scanDecimalRest consumes the remainder of a decimal literal: integer
// digits (already partly consumed by the caller when it starts with 0),
// an optional fraction, and an optional exponent.
func (l *Lexer) scanDecimalRest() {
	l.scanDigits(isASCIIDigit)
	if b, ok := l.cur.PeekByte(); ok && b == '.' {
		l.cur.NextByteUnchecked()
		l.scanDigits(isASCIIDigit)
	}
	if b, ok := l.cur.PeekByte(); ok && (b == 'e' || b == 'E') {
		l.cur.NextByteUnchecked()
		if b, ok := l.cur.PeekByte(); ok && (b == '+' || b == '-') {
			l.cur.NextByteUnchecked()
		}
		l.scanDigits(isASCIIDigit)
	}
}

func (l *Lexer) scanDigits(pred func(byte) bool) {
	for {
		b, ok := l.cur.PeekByte()
		if !ok {
			return
		}
		if b == '_' {
			l.cur.NextByteUnchecked()
			continue
		}
		if !pred(b) {
			return
		}
		l.cur.NextByteUnchecked()
	}
}

func isHexDigit(b byte) bool {
	return isASCIIDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

func isOctalDigit(b byte) bool { return b >= '0' && b <= '7' }

func isBinaryDigit(b byte) bool { return b == '0' || b == '1' }
