package lexer

import (
	"strings"

	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// scanTemplatePart scans the literal text of a template, starting either at
// the opening backtick (fromBacktick) or, via ScanTemplateContinuation, at
// the `}` that closes a `${...}` substitution. It stops at the next `${`
// (producing TemplateHead/TemplateMiddle) or the closing backtick
// (producing NoSubstitutionTemplate/TemplateTail).
//
// The parser, not the lexer, is responsible for knowing when a `}` it
// encounters while parsing a substitution expression is the one that
// closes the template, since that requires brace-depth tracking across
// arbitrary nested expressions; ScanTemplateContinuation is how it hands
// control back once it has decided.
func (l *Lexer) scanTemplatePart(start uint32, fromBacktick bool) token.Token {
	if fromBacktick {
		l.cur.NextByteUnchecked() // '`'
	}
	var cooked strings.Builder
	cookedValid := true
	isTail := true

	for {
		b, ok := l.cur.PeekByte()
		if !ok {
			l.errorf(start, "unterminated template literal")
			break
		}
		if b == '`' {
			l.cur.NextByteUnchecked()
			break
		}
		if b == '$' && peekAt(l.cur, 1) == '{' {
			l.cur.NextByteUnchecked()
			l.cur.NextByteUnchecked()
			isTail = false
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
		if b == '\r' {
			// Template literals normalize CRLF/CR to LF in the cooked value
			// (raw keeps the original bytes).
			l.cur.NextByteUnchecked()
			if nb, ok := l.cur.PeekByte(); ok && nb == '\n' {
				l.cur.NextByteUnchecked()
			}
			cooked.WriteByte('\n')
			continue
		}
		r, _ := l.cur.NextChar()
		cooked.WriteRune(r)
	}

	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	kind := token.TemplateHead
	switch {
	case fromBacktick && isTail:
		kind = token.NoSubstitutionTemplate
	case fromBacktick && !isTail:
		kind = token.TemplateHead
	case !fromBacktick && isTail:
		kind = token.TemplateTail
	case !fromBacktick && !isTail:
		kind = token.TemplateMiddle
	}

	tok := token.Token{Kind: kind, Span: l.span(start), Raw: raw}
	if cookedValid {
		tok.Cooked = cooked.String()
		tok.CookedValid = true
	}
	return tok
}

// ScanTemplateContinuation resumes scanning a template literal's text
// after the parser has fully parsed a `${...}` substitution and determined
// that the cursor now sits exactly on the `}` that closes it.
func (l *Lexer) ScanTemplateContinuation() token.Token {
	start := l.pos()
	l.cur.NextByteUnchecked() // '}'
	return l.scanTemplatePart(start, false)
}
