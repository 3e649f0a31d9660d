package lexer

import (
	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// scanPunctuator scans one operator/punctuator token using greedy
// longest-match: each case tries its longest spelling first.
func (l *Lexer) scanPunctuator(start uint32) token.Token {
	b := l.cur.NextByteUnchecked()
	kind := token.Invalid

	switch b {
	case '{':
		kind = token.LBrace
	case '}':
		kind = token.RBrace
	case '(':
		kind = token.LParen
	case ')':
		kind = token.RParen
	case '[':
		kind = token.LBracket
	case ']':
		kind = token.RBracket
	case ';':
		kind = token.Semicolon
	case ',':
		kind = token.Comma
	case '~':
		kind = token.Tilde
	case '@':
		kind = token.At
	case ':':
		kind = token.Colon
	case '.':
		if l.eat('.') {
			if l.eat('.') {
				kind = token.DotDotDot
			} else {
				kind = token.Dot // malformed ".."; parser reports
			}
		} else {
			kind = token.Dot
		}
	case '?':
		switch {
		// "?." is optional chaining unless followed by a digit, in which
		// case it's really "?" then a ".5"-style numeric literal (e.g.
		// `cond ? .5 : 1`).
		case l.peek('.') && !isASCIIDigit(peekAt(l.cur, 1)):
			l.cur.NextByteUnchecked()
			kind = token.QDot
		case l.eat('?'):
			if l.eat('=') {
				kind = token.QQEq
			} else {
				kind = token.QQ
			}
		default:
			kind = token.Question
		}
	case '<':
		switch {
		case l.eat('<'):
			if l.eat('=') {
				kind = token.LShiftEq
			} else {
				kind = token.LShift
			}
		case l.eat('='):
			kind = token.LtEq
		default:
			kind = token.LAngle
		}
	case '>':
		switch {
		case l.eat('>'):
			if l.eat('>') {
				if l.eat('=') {
					kind = token.URShiftEq
				} else {
					kind = token.URShift
				}
			} else if l.eat('=') {
				kind = token.RShiftEq
			} else {
				kind = token.RShift
			}
		case l.eat('='):
			kind = token.GtEq
		default:
			kind = token.RAngle
		}
	case '=':
		switch {
		case l.eat('='):
			if l.eat('=') {
				kind = token.EqEqEq
			} else {
				kind = token.EqEq
			}
		case l.eat('>'):
			kind = token.Arrow
		default:
			kind = token.Eq
		}
	case '!':
		switch {
		case l.eat('='):
			if l.eat('=') {
				kind = token.NotEqEq
			} else {
				kind = token.NotEq
			}
		default:
			kind = token.Bang
		}
	case '+':
		switch {
		case l.eat('+'):
			kind = token.PlusPlus
		case l.eat('='):
			kind = token.PlusEq
		default:
			kind = token.Plus
		}
	case '-':
		switch {
		case l.eat('-'):
			kind = token.MinusMinus
		case l.eat('='):
			kind = token.MinusEq
		default:
			kind = token.Minus
		}
	case '*':
		switch {
		case l.eat('*'):
			if l.eat('=') {
				kind = token.StarStarEq
			} else {
				kind = token.StarStar
			}
		case l.eat('='):
			kind = token.StarEq
		default:
			kind = token.Star
		}
	case '/':
		if l.eat('=') {
			kind = token.SlashEq
		} else {
			kind = token.Slash
		}
	case '%':
		if l.eat('=') {
			kind = token.PercentEq
		} else {
			kind = token.Percent
		}
	case '&':
		switch {
		case l.eat('&'):
			if l.eat('=') {
				kind = token.AmpAmpEq
			} else {
				kind = token.AmpAmp
			}
		case l.eat('='):
			kind = token.AmpEq
		default:
			kind = token.Amp
		}
	case '|':
		switch {
		case l.eat('|'):
			if l.eat('=') {
				kind = token.PipePipeEq
			} else {
				kind = token.PipePipe
			}
		case l.eat('='):
			kind = token.PipeEq
		default:
			kind = token.Pipe
		}
	case '^':
		if l.eat('=') {
			kind = token.CaretEq
		} else {
			kind = token.Caret
		}
	default:
		l.errorf(start, "unexpected character %q", b)
	}

	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	return token.Token{Kind: kind, Span: l.span(start), Raw: raw}
}

func (l *Lexer) peek(b byte) bool {
	v, ok := l.cur.PeekByte()
	return ok && v == b
}

func (l *Lexer) eat(b byte) bool {
	if l.peek(b) {
		l.cur.NextByteUnchecked()
		return true
	}
	return false
}
