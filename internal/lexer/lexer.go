// Package lexer turns UTF-8 source bytes into a token.Token stream. It is a
// standard hand-written JavaScript/TypeScript lexer: the
// parser drives it token-by-token and supplies context hints for the
// division-vs-regex and `<`-vs-JSX ambiguities that cannot be resolved from
// lexical context alone.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// SourceType flags which dialect extensions the lexer (and, downstream,
// the parser) should recognize.
type SourceType struct {
	TypeScript bool
	JSX        bool
}

// Context is the hint the parser supplies at each token request, resolving
// ambiguities the lexer cannot decide on its own.
type Context struct {
	// RegexAllowed is true where a `/` can only start a RegularExpression
	// literal (an expression is expected), false where it must be the
	// division or /= operator (a value already parsed, an operator expected).
	RegexAllowed bool
	// JSXAllowed is true where `<` may start a JSX element/fragment rather
	// than the less-than or type-argument-list operator.
	JSXAllowed bool
}

// Lexer scans one source file. It is not safe for concurrent use and,
// like the rest of the pipeline, never crosses a goroutine boundary: each worker in
// the per-file pool owns one Lexer plus the arena and AST it feeds.
type Lexer struct {
	cur     *source.Cursor
	srcType SourceType

	trivia []token.Trivia
	diags  []token.DiagnosticPlaceholder

	lastTriviaHadLineBreak bool
}

// New creates a Lexer over src.
func New(src []byte, st SourceType) *Lexer {
	return &Lexer{cur: source.New(src), srcType: st}
}

// Trivia returns the comments collected so far (whitespace is not
// recorded), keyed by offset for later reattachment to the nearest AST node
// for formatter and linter consumption.
func (l *Lexer) Trivia() []token.Trivia { return l.trivia }

// Diagnostics returns lexer-level error placeholders collected so far
// collected during scanning: the lexer never aborts on invalid input, it
// records the problem and keeps producing tokens.
func (l *Lexer) Diagnostics() []token.DiagnosticPlaceholder { return l.diags }

func (l *Lexer) pos() uint32 { return uint32(l.cur.Position().Offset()) }

func (l *Lexer) span(start uint32) token.Span {
	return token.Span{Start: start, End: l.pos()}
}

// Next scans and returns the next token, skipping (and recording) trivia
// first.
func (l *Lexer) Next(ctx Context) token.Token {
	hadLineBreak := l.skipTrivia()

	start := l.pos()
	b, ok := l.cur.PeekByte()
	if !ok {
		return l.finish(token.Token{Kind: token.EOF, Span: l.span(start)}, hadLineBreak)
	}

	var tok token.Token
	switch {
	case isASCIIIdentStart(b):
		tok = l.scanIdentifierOrKeyword(start)
	case b == '#':
		tok = l.scanPrivateIdentifier(start)
	case b >= '0' && b <= '9':
		tok = l.scanNumber(start)
	case b == '.' && isASCIIDigit(peekAt(l.cur, 1)):
		tok = l.scanNumber(start)
	case b == '"' || b == '\'':
		tok = l.scanString(start, b)
	case b == '`':
		tok = l.scanTemplatePart(start, true)
	case b == '/':
		if ctx.RegexAllowed {
			tok = l.scanRegex(start)
		} else {
			tok = l.scanPunctuator(start)
		}
	case b >= 0x80:
		r, size := l.cur.PeekChar()
		if isIDStart(r) {
			tok = l.scanIdentifierOrKeyword(start)
		} else {
			l.cur.NextChar()
			l.errorf(start, "unexpected character %q", r)
			tok = token.Token{Kind: token.Invalid, Span: l.span(start), Raw: string(r)}
			_ = size
		}
	default:
		tok = l.scanPunctuator(start)
	}
	return l.finish(tok, hadLineBreak)
}

func (l *Lexer) finish(tok token.Token, hadLineBreak bool) token.Token {
	tok.HasLineBreakBefore = hadLineBreak
	return tok
}

func peekAt(c *source.Cursor, n int) byte {
	b, ok := c.PeekByteAt(n)
	if !ok {
		return 0
	}
	return b
}

// skipTrivia consumes whitespace and comments, recording each comment as
// Trivia, and reports whether a line terminator was seen (needed for
// automatic semicolon insertion, which lives in the parser).
func (l *Lexer) skipTrivia() bool {
	sawLineBreak := false
	for {
		b, ok := l.cur.PeekByte()
		if !ok {
			return sawLineBreak
		}
		switch {
		case b == '\n':
			sawLineBreak = true
			l.cur.NextByteUnchecked()
		case b == ' ' || b == '\t' || b == '\r' || b == '\v' || b == '\f':
			l.cur.NextByteUnchecked()
		case b == '/' && peekAt(l.cur, 1) == '/':
			start := l.pos()
			l.cur.NextByteUnchecked()
			l.cur.NextByteUnchecked()
			l.cur.SkipASCIIRun(func(b byte) bool { return b != '\n' })
			for {
				b, ok := l.cur.PeekByte()
				if !ok || b == '\n' {
					break
				}
				l.cur.NextByteUnchecked()
			}
			l.recordComment(start, false, sawLineBreak)
		case b == '/' && peekAt(l.cur, 1) == '*':
			start := l.pos()
			l.cur.NextByteUnchecked()
			l.cur.NextByteUnchecked()
			lineBreakInside := false
			for {
				b, ok := l.cur.PeekByte()
				if !ok {
					l.errorf(start, "unterminated block comment")
					break
				}
				if b == '\n' {
					lineBreakInside = true
				}
				if b == '*' && peekAt(l.cur, 1) == '/' {
					l.cur.NextByteUnchecked()
					l.cur.NextByteUnchecked()
					break
				}
				l.cur.NextByteUnchecked()
			}
			l.recordComment(start, true, sawLineBreak)
			if lineBreakInside {
				sawLineBreak = true
			}
		case b >= 0x80:
			r, _ := l.cur.PeekChar()
			if r == lineSeparator || r == paragraphSeparator {
				sawLineBreak = true
				l.cur.NextChar()
				continue
			}
			if isUnicodeWhitespace(r) {
				l.cur.NextChar()
				continue
			}
			return sawLineBreak
		default:
			return sawLineBreak
		}
	}
}

func (l *Lexer) recordComment(start uint32, block bool, alreadyLineBreak bool) {
	raw := string(l.cur.Source()[start:l.pos()])
	l.trivia = append(l.trivia, token.Trivia{
		Span:      token.Span{Start: start, End: l.pos()},
		Text:      raw,
		Block:     block,
		LineBreak: alreadyLineBreak || strings.ContainsRune(raw, '\n'),
	})
}

func (l *Lexer) errorf(start uint32, format string, args ...any) {
	l.diags = append(l.diags, token.DiagnosticPlaceholder{
		Span:    l.span(start),
		Message: fmt.Sprintf(format, args...),
	})
}

func isASCIIDigit(b byte) bool { return b >= '0' && b <= '9' }

func isASCIIIdentStart(b byte) bool {
	return b == '_' || b == '$' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isASCIIIdentPart(b byte) bool {
	return isASCIIIdentStart(b) || isASCIIDigit(b)
}

// isIDStart/isIDContinue approximate the Unicode ID_Start/ID_Continue
// property sets using the standard library's general category
// tables, which is the closest the ecosystem gets to these exact sets
// without shipping a bespoke generated table; see DESIGN.md.
func isIDStart(r rune) bool {
	return r == '_' || r == '$' || unicode.IsLetter(r) || unicode.Is(unicode.Nl, r) || unicode.Is(unicode.Other_ID_Start, r)
}

func isIDContinue(r rune) bool {
	if isIDStart(r) {
		return true
	}
	if r == zeroWidthNonJoiner || r == zeroWidthJoiner {
		return true
	}
	return unicode.Is(unicode.Mn, r) || unicode.Is(unicode.Mc, r) || unicode.Is(unicode.Nd, r) ||
		unicode.Is(unicode.Pc, r) || unicode.Is(unicode.Other_ID_Continue, r)
}

const (
	zeroWidthNonJoiner = '\u200c'
	zeroWidthJoiner    = '\u200d'
)

const (
	lineSeparator      = '\u2028'
	paragraphSeparator = '\u2029'
)

// isUnicodeWhitespace covers the non-ASCII WhiteSpace code points ECMA-262
// names explicitly (NBSP, BOM/ZWNBSP) plus the Unicode Zs category.
func isUnicodeWhitespace(r rune) bool {
	switch r {
	case '\u00a0', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// scanIdentifierOrKeyword consumes a maximal identifier run starting at a
// byte already known to be an identifier start. The common case (a plain
// ASCII identifier) is served entirely by the cursor's batched scan; a
// Unicode identifier part drops to the rune-at-a-time path for just its
// non-ASCII stretch, then resumes batching.
func (l *Lexer) scanIdentifierOrKeyword(start uint32) token.Token {
	for {
		l.cur.SkipASCIIRun(isASCIIIdentPart)
		b, ok := l.cur.PeekByte()
		if !ok || b < 0x80 {
			break
		}
		r, _ := l.cur.PeekChar()
		if !isIDContinue(r) {
			break
		}
		l.cur.NextChar()
	}
	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	if kw, ok := token.LookupKeyword(raw); ok {
		return token.Token{Kind: kw, Span: l.span(start), Raw: raw}
	}
	return token.Token{Kind: token.Identifier, Span: l.span(start), Raw: raw, Cooked: raw, CookedValid: true}
}

func (l *Lexer) scanPrivateIdentifier(start uint32) token.Token {
	l.cur.NextByteUnchecked() // '#'
	for {
		b, ok := l.cur.PeekByte()
		if !ok || (b < 0x80 && !isASCIIIdentPart(b)) {
			break
		}
		if b < 0x80 {
			l.cur.NextByteUnchecked()
			continue
		}
		r, _ := l.cur.PeekChar()
		if !isIDContinue(r) {
			break
		}
		l.cur.NextChar()
	}
	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	return token.Token{Kind: token.PrivateIdentifier, Span: l.span(start), Raw: raw, Cooked: raw, CookedValid: true}
}
