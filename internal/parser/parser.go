// Package parser implements the recursive-descent JavaScript/TypeScript
// parser. Expressions use operator-precedence climbing; destructuring
// targets are parsed through their cover grammar as expressions and
// converted to patterns (see pattern.go). Arrow heads are not converted
// from expressions: they are parsed speculatively as parameter lists and
// the parse is rewound when no `=>` follows. All
// nodes are allocated from the compilation's arena and stamped with
// monotonically increasing NodeIDs.
package parser

import (
	"fmt"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lexer"
	"github.com/oxhq/jscore/internal/token"
)

// Error is a recorded parse (or lex) error. The parser never aborts: it
// synchronizes to the next statement boundary and keeps going, so even
// badly broken input yields a best-effort AST.
type Error struct {
	Span    token.Span
	Message string
}

func (e Error) Error() string { return e.Message }

// Result is everything one parse produces. The Program (and every node
// reachable from it) lives in the Arena that was passed to Parse and must
// not outlive it.
type Result struct {
	Program *ast.Program
	Errors  []Error
	Trivia  []token.Trivia
	// NextNodeID is one past the highest NodeID the parser assigned;
	// transforms continue the sequence from here.
	NextNodeID ast.NodeID
}

// Parser holds the state of one file's parse.
type Parser struct {
	src     []byte
	arena   *arena.Arena
	lex     *lexer.Lexer
	srcType ast.SourceType

	tok     token.Token
	prevEnd uint32

	errors []Error
	nextID ast.NodeID

	// Grammar context. These nest lexically, so each production that
	// changes one saves and restores it around the sub-parse.
	allowYield bool
	allowAwait bool
	inLoop     bool
	inSwitch   bool
	// noIn suppresses the `in` operator inside for-statement headers so
	// `for (x in y)` is not mis-parsed as a binary expression.
	noIn bool
}

// Parse parses src into a. The returned AST is best-effort when Errors is
// non-empty.
func Parse(src []byte, srcType ast.SourceType, a *arena.Arena) Result {
	lexType := lexer.SourceType{TypeScript: srcType.TypeScript, JSX: srcType.JSX}
	p := &Parser{
		src:     src,
		arena:   a,
		lex:     lexer.New(src, lexType),
		srcType: srcType,
		nextID:  1,
		// Top level of a module is an await context.
		allowAwait: srcType.Module,
	}
	prog := p.parseProgram()
	for _, d := range p.lex.Diagnostics() {
		p.errors = append(p.errors, Error{Span: d.Span, Message: d.Message})
	}
	return Result{
		Program:    prog,
		Errors:     p.errors,
		Trivia:     p.lex.Trivia(),
		NextNodeID: p.nextID,
	}
}

// lexerPeekCtx is the context used for one-token lookahead; the peeked
// token is only inspected for its kind/raw text, so the regex hint does
// not matter beyond not mis-scanning a `/`.
var lexerPeekCtx = lexer.Context{RegexAllowed: true}

func (p *Parser) newID() ast.NodeID {
	id := p.nextID
	p.nextID++
	return id
}

// finish stamps a node's span (start..end of the previous token) and id.
func (p *Parser) finish(b *ast.Base, start uint32) {
	b.Loc = token.Span{Start: start, End: p.prevEnd}
	b.NodeID = p.newID()
}

// advance consumes the current token expecting an operand next (regex
// allowed); advanceOp expects an operator next (`/` is division).
func (p *Parser) advance() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lex.Next(lexer.Context{RegexAllowed: true})
}

func (p *Parser) advanceOp() {
	p.prevEnd = p.tok.Span.End
	p.tok = p.lex.Next(lexer.Context{RegexAllowed: false})
}

func (p *Parser) at(k token.Kind) bool { return p.tok.Kind == k }

// atIdent reports whether the current token is the contextual keyword name.
func (p *Parser) atIdent(name string) bool {
	return p.tok.Kind == token.Identifier && p.tok.Raw == name
}

func (p *Parser) eat(k token.Kind) bool {
	if p.tok.Kind == k {
		p.advance()
		return true
	}
	return false
}

// expect consumes k or records an error without consuming.
func (p *Parser) expect(k token.Kind) {
	if p.tok.Kind == k {
		p.advance()
		return
	}
	p.errorf(p.tok.Span, "expected %q, found %q", k.String(), p.tok.Kind.String())
}

// expectClose is expect for closing brackets, after which an operator
// position follows.
func (p *Parser) expectClose(k token.Kind) {
	if p.tok.Kind == k {
		p.advanceOp()
		return
	}
	p.errorf(p.tok.Span, "expected %q, found %q", k.String(), p.tok.Kind.String())
}

func (p *Parser) errorf(span token.Span, format string, args ...any) {
	p.errors = append(p.errors, Error{Span: span, Message: fmt.Sprintf(format, args...)})
}

// semicolon implements automatic semicolon insertion: an explicit `;`, or
// an inserted one before `}` / EOF / a token on a new line.
func (p *Parser) semicolon() {
	if p.eat(token.Semicolon) {
		return
	}
	if p.at(token.RBrace) || p.at(token.EOF) || p.tok.HasLineBreakBefore {
		return
	}
	p.errorf(p.tok.Span, "expected semicolon, found %q", p.tok.Kind.String())
	p.synchronize()
}

// synchronize skips tokens to the next statement boundary: past a `;`, or
// to just before a `}` or a token that can begin a statement. This is the
// skip-to-`;`-or-`}` recovery the error model prescribes.
func (p *Parser) synchronize() {
	for {
		switch p.tok.Kind {
		case token.EOF, token.RBrace:
			return
		case token.Semicolon:
			p.advance()
			return
		case token.KeywordVar, token.KeywordLet, token.KeywordConst,
			token.KeywordFunction, token.KeywordClass, token.KeywordIf,
			token.KeywordFor, token.KeywordWhile, token.KeywordDo,
			token.KeywordSwitch, token.KeywordTry, token.KeywordReturn,
			token.KeywordThrow, token.KeywordImport, token.KeywordExport:
			return
		}
		p.advance()
	}
}

func (p *Parser) parseProgram() *ast.Program {
	prog := arena.Alloc[ast.Program](p.arena)
	prog.SourceType = p.srcType

	// A leading hashbang line is not a token; skim it off before priming
	// the lexer so offsets stay absolute.
	if len(p.src) >= 2 && p.src[0] == '#' && p.src[1] == '!' {
		end := 0
		for end < len(p.src) && p.src[end] != '\n' {
			end++
		}
		prog.Hashbang = string(p.src[:end])
		p.lex.SkipHashbang()
	}

	p.advance() // prime lookahead

	var body []ast.Statement
	for !p.at(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			body = append(body, stmt)
		}
	}
	prog.Body = body
	p.finish(&prog.Base, 0)
	prog.Loc.End = uint32(len(p.src))
	return prog
}
