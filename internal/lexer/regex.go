package lexer

import (
	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// scanRegex scans a regular expression literal, starting at the opening
// '/'. It must respect character classes ("[...]"), where an unescaped '/'
// does not terminate the literal.
func (l *Lexer) scanRegex(start uint32) token.Token {
	l.cur.NextByteUnchecked() // '/'
	inClass := false
	for {
		b, ok := l.cur.PeekByte()
		if !ok || b == '\n' {
			l.errorf(start, "unterminated regular expression literal")
			break
		}
		switch b {
		case '\\':
			l.cur.NextByteUnchecked()
			if _, ok := l.cur.PeekByte(); ok {
				l.cur.NextByteUnchecked()
			}
			continue
		case '[':
			inClass = true
		case ']':
			inClass = false
		case '/':
			if !inClass {
				l.cur.NextByteUnchecked()
				goto body_done
			}
		}
		l.cur.NextByteUnchecked()
	}
body_done:
	l.cur.SkipASCIIRun(isASCIIIdentPart) // flags: g, i, m, s, u, y, d, v
	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	return token.Token{Kind: token.RegularExpressionLiteral, Span: l.span(start), Raw: raw, Cooked: raw, CookedValid: true}
}
