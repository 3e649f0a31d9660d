package lexer

import (
	"github.com/oxhq/jscore/internal/source"
	"github.com/oxhq/jscore/internal/token"
)

// State is a restartable lexer checkpoint. The parser snapshots one before
// a speculative parse (arrow heads, TS generic arrows and type-argument
// lists, one-token lookahead) and restores on failure. Restoring also truncates the
// trivia and diagnostic channels so a re-scan doesn't double-record them.
type State struct {
	pos    source.Position
	trivia int
	diags  int
}

// Mark captures the current scan position.
func (l *Lexer) Mark() State {
	return State{pos: l.cur.Position(), trivia: len(l.trivia), diags: len(l.diags)}
}

// Restore rewinds the lexer to a previously captured State.
func (l *Lexer) Restore(s State) {
	l.cur.SetPosition(s.pos)
	l.trivia = l.trivia[:s.trivia]
	l.diags = l.diags[:s.diags]
}

// SkipHashbang advances past a leading `#!...` line. Must be called before
// the first Next; the hashbang is not a token and not trivia.
func (l *Lexer) SkipHashbang() {
	for {
		b, ok := l.cur.PeekByte()
		if !ok || b == '\n' {
			return
		}
		l.cur.NextByteUnchecked()
	}
}

// ResumeTemplate continues template scanning when the parser's current
// lookahead token is the `}` that closes a `${...}` substitution. Unlike
// ScanTemplateContinuation, the cursor already sits past the brace (the
// parser consumed it as an RBrace token); braceStart is that token's start
// offset so the emitted TemplateMiddle/TemplateTail span covers it.
func (l *Lexer) ResumeTemplate(braceStart uint32) token.Token {
	return l.scanTemplatePart(braceStart, false)
}

// ScanJSXText scans a JSX child starting at the current position. Inside a
// JSX element whitespace is text, so no trivia is skipped. If the cursor
// sits on `<` or `{` the corresponding punctuator token is returned
// directly; otherwise a JSXText token spanning everything up to the next
// `<`, `{`, or EOF.
func (l *Lexer) ScanJSXText() token.Token {
	start := l.pos()
	b, ok := l.cur.PeekByte()
	if !ok {
		return token.Token{Kind: token.EOF, Span: l.span(start)}
	}
	if b == '<' {
		l.cur.NextByteUnchecked()
		return token.Token{Kind: token.LAngle, Span: l.span(start), Raw: "<"}
	}
	if b == '{' {
		l.cur.NextByteUnchecked()
		return token.Token{Kind: token.LBrace, Span: l.span(start), Raw: "{"}
	}
	l.cur.SkipASCIIRun(func(b byte) bool { return b != '<' && b != '{' })
	for {
		b, ok := l.cur.PeekByte()
		if !ok || b == '<' || b == '{' {
			break
		}
		if b < 0x80 {
			l.cur.NextByteUnchecked()
		} else {
			l.cur.NextChar()
		}
		l.cur.SkipASCIIRun(func(b byte) bool { return b != '<' && b != '{' })
	}
	raw := l.cur.StrFromTo(source.PosAt(int(start)), l.cur.Position())
	return token.Token{Kind: token.JSXText, Span: l.span(start), Raw: raw, Cooked: raw, CookedValid: true}
}
