package parser

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.tok.Kind {
	case token.LBrace:
		return p.parseBlock()
	case token.Semicolon:
		start := p.tok.Span.Start
		p.advance()
		n := arena.Alloc[ast.EmptyStatement](p.arena)
		p.finish(&n.Base, start)
		return n
	case token.KeywordVar:
		return p.parseVariableStatement(ast.VarVar)
	case token.KeywordLet:
		return p.parseVariableStatement(ast.VarLet)
	case token.KeywordConst:
		// `const enum` is a TS declaration, not a variable statement.
		if p.srcType.TypeScript && p.peekIsEnum() {
			return p.parseEnumDeclaration(true)
		}
		return p.parseVariableStatement(ast.VarConst)
	case token.KeywordFunction:
		return p.parseFunctionDeclaration(false)
	case token.KeywordClass:
		return p.parseClassDeclaration()
	case token.KeywordIf:
		return p.parseIfStatement()
	case token.KeywordFor:
		return p.parseForStatement()
	case token.KeywordWhile:
		return p.parseWhileStatement()
	case token.KeywordDo:
		return p.parseDoWhileStatement()
	case token.KeywordSwitch:
		return p.parseSwitchStatement()
	case token.KeywordTry:
		return p.parseTryStatement()
	case token.KeywordThrow:
		return p.parseThrowStatement()
	case token.KeywordReturn:
		return p.parseReturnStatement()
	case token.KeywordBreak:
		return p.parseBreakOrContinue(true)
	case token.KeywordContinue:
		return p.parseBreakOrContinue(false)
	case token.KeywordDebugger:
		start := p.tok.Span.Start
		p.advance()
		p.semicolon()
		n := arena.Alloc[ast.DebuggerStatement](p.arena)
		p.finish(&n.Base, start)
		return n
	case token.KeywordWith:
		return p.parseWithStatement()
	case token.KeywordImport:
		// `import(` and `import.meta` are expressions.
		if k := p.peekKind(); k != token.LParen && k != token.Dot {
			return p.parseImportDeclaration()
		}
	case token.KeywordExport:
		return p.parseExportDeclaration()
	case token.KeywordEnum:
		if p.srcType.TypeScript {
			return p.parseEnumDeclaration(false)
		}
	case token.KeywordInterface:
		if p.srcType.TypeScript {
			return p.parseInterfaceDeclaration()
		}
	case token.Identifier:
		if st := p.parseContextualStatement(); st != nil {
			return st
		}
	}
	return p.parseExpressionStatement()
}

// parseContextualStatement handles statements that begin with a contextual
// keyword (`async function`, `using x`, `type T =`, `namespace N`,
// `declare ...`) or a label. Returns nil when the identifier is just the
// start of an expression statement.
func (p *Parser) parseContextualStatement() ast.Statement {
	switch p.tok.Raw {
	case "async":
		if p.peekKind() == token.KeywordFunction && !p.peekHasLineBreak() {
			return p.parseFunctionDeclaration(true)
		}
	case "using":
		if p.peekKind() == token.Identifier && !p.peekHasLineBreak() {
			return p.parseVariableStatement(ast.VarUsing)
		}
	case "await":
		// `await using x = ...` in async/module context.
		if p.allowAwait && p.peekIsIdent("using") {
			return p.parseVariableStatement(ast.VarAwaitUsing)
		}
	case "type":
		if p.srcType.TypeScript && p.peekKind() == token.Identifier {
			return p.parseTypeAliasDeclaration()
		}
	case "namespace", "module":
		if p.srcType.TypeScript {
			if k := p.peekKind(); k == token.Identifier || k == token.StringLiteral {
				return p.parseModuleDeclaration()
			}
		}
	case "declare":
		if p.srcType.TypeScript {
			// `declare` is absorbed; the declaration parses as usual. Ambient
			// semantics are a type-checker concern, out of scope here.
			p.advance()
			return p.parseStatement()
		}
	}
	if p.peekKind() == token.Colon {
		return p.parseLabeledStatement()
	}
	return nil
}

// peekKind looks one token past the current one without disturbing the
// parse. It snapshots and restores the lexer, so it is safe anywhere.
func (p *Parser) peekKind() token.Kind {
	s := p.lex.Mark()
	next := p.lex.Next(lexerPeekCtx)
	p.lex.Restore(s)
	return next.Kind
}

func (p *Parser) peekHasLineBreak() bool {
	s := p.lex.Mark()
	next := p.lex.Next(lexerPeekCtx)
	p.lex.Restore(s)
	return next.HasLineBreakBefore
}

func (p *Parser) peekIsIdent(name string) bool {
	s := p.lex.Mark()
	next := p.lex.Next(lexerPeekCtx)
	p.lex.Restore(s)
	return next.Kind == token.Identifier && next.Raw == name
}

func (p *Parser) peekIsEnum() bool {
	s := p.lex.Mark()
	next := p.lex.Next(lexerPeekCtx)
	p.lex.Restore(s)
	return next.Kind == token.KeywordEnum
}

func (p *Parser) parseBlock() *ast.BlockStatement {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	var body []ast.Statement
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if st := p.parseStatement(); st != nil {
			body = append(body, st)
		}
	}
	p.expectClose(token.RBrace)
	n := arena.Alloc[ast.BlockStatement](p.arena)
	n.Body = body
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	start := p.tok.Span.Start
	expr := p.parseExpression()
	p.semicolon()
	n := arena.Alloc[ast.ExpressionStatement](p.arena)
	n.Expression = expr
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseVariableStatement(kind ast.VariableKind) ast.Statement {
	decl := p.parseVariableDeclaration(kind)
	p.semicolon()
	return decl
}

// parseVariableDeclaration parses the declaration without the trailing
// semicolon so for-headers can reuse it.
func (p *Parser) parseVariableDeclaration(kind ast.VariableKind) *ast.VariableDeclaration {
	start := p.tok.Span.Start
	p.advance() // var/let/const/using
	if kind == ast.VarAwaitUsing {
		p.advance() // the `using` after `await`
	}

	var decls []*ast.VariableDeclarator
	for {
		d := p.parseVariableDeclarator(kind)
		decls = append(decls, d)
		if !p.eat(token.Comma) {
			break
		}
	}
	n := arena.Alloc[ast.VariableDeclaration](p.arena)
	n.VarKind = kind
	n.Declarations = decls
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseVariableDeclarator(kind ast.VariableKind) *ast.VariableDeclarator {
	start := p.tok.Span.Start
	id := p.parseBindingPattern()
	var init ast.Expression
	if p.eat(token.Eq) {
		init = p.parseAssignmentExpression()
	} else if (kind == ast.VarConst || kind == ast.VarUsing || kind == ast.VarAwaitUsing) &&
		!(p.noIn && (p.at(token.KeywordIn) || p.atIdent("of"))) {
		// A for-in/of head takes its value from the iteration instead.
		p.errorf(token.Span{Start: start, End: p.prevEnd}, "%q declaration must be initialized", kind.String())
	}
	n := arena.Alloc[ast.VariableDeclarator](p.arena)
	n.Name = id
	n.Init = init
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseIfStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // if
	p.expect(token.LParen)
	test := p.parseExpression()
	p.expectClose(token.RParen)
	cons := p.parseStatement()
	var alt ast.Statement
	if p.eat(token.KeywordElse) {
		alt = p.parseStatement()
	}
	n := arena.Alloc[ast.IfStatement](p.arena)
	n.Test = test
	n.Consequent = cons
	n.Alternate = alt
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseForStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // for
	isAwait := false
	if p.atIdent("await") {
		isAwait = true
		p.advance()
	}
	p.expect(token.LParen)

	p.noIn = true
	var init ast.Node
	switch {
	case p.at(token.Semicolon):
		// no init
	case p.at(token.KeywordVar):
		init = p.parseVariableDeclaration(ast.VarVar)
	case p.at(token.KeywordLet):
		init = p.parseVariableDeclaration(ast.VarLet)
	case p.at(token.KeywordConst):
		init = p.parseVariableDeclaration(ast.VarConst)
	case p.atIdent("using") && p.peekKind() == token.Identifier:
		init = p.parseVariableDeclaration(ast.VarUsing)
	default:
		init = p.parseExpression()
	}
	p.noIn = false

	if p.at(token.KeywordIn) || p.atIdent("of") {
		isOf := p.atIdent("of")
		p.advance()
		left := p.forHeaderTarget(init)
		right := p.parseAssignmentExpression()
		p.expectClose(token.RParen)
		saved := p.inLoop
		p.inLoop = true
		body := p.parseStatement()
		p.inLoop = saved
		if isOf {
			n := arena.Alloc[ast.ForOfStatement](p.arena)
			n.Left = left
			n.Right = right
			n.Body = body
			n.Await = isAwait
			p.finish(&n.Base, start)
			return n
		}
		n := arena.Alloc[ast.ForInStatement](p.arena)
		n.Left = left
		n.Right = right
		n.Body = body
		p.finish(&n.Base, start)
		return n
	}

	p.expect(token.Semicolon)
	var test, update ast.Expression
	if !p.at(token.Semicolon) {
		test = p.parseExpression()
	}
	p.expect(token.Semicolon)
	if !p.at(token.RParen) {
		update = p.parseExpression()
	}
	p.expectClose(token.RParen)
	saved := p.inLoop
	p.inLoop = true
	body := p.parseStatement()
	p.inLoop = saved

	n := arena.Alloc[ast.ForStatement](p.arena)
	n.Init = init
	n.Test = test
	n.Update = update
	n.Body = body
	p.finish(&n.Base, start)
	return n
}

// forHeaderTarget converts the already-parsed for-header init into a valid
// for-in/for-of left side: a declaration stays as-is, an expression is
// converted to a pattern through the cover grammar.
func (p *Parser) forHeaderTarget(init ast.Node) ast.Node {
	if decl, ok := init.(*ast.VariableDeclaration); ok {
		if len(decl.Declarations) != 1 || decl.Declarations[0].Init != nil {
			p.errorf(decl.Span(), "for-in/of declaration must declare exactly one uninitialized binding")
		}
		return decl
	}
	if expr, ok := init.(ast.Expression); ok {
		if pat, ok := p.exprToPattern(expr); ok {
			return pat
		}
		p.errorf(expr.Span(), "invalid for-in/of target")
		return expr
	}
	return init
}

func (p *Parser) parseWhileStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	p.expect(token.LParen)
	test := p.parseExpression()
	p.expectClose(token.RParen)
	saved := p.inLoop
	p.inLoop = true
	body := p.parseStatement()
	p.inLoop = saved
	n := arena.Alloc[ast.WhileStatement](p.arena)
	n.Test = test
	n.Body = body
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseDoWhileStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	saved := p.inLoop
	p.inLoop = true
	body := p.parseStatement()
	p.inLoop = saved
	p.expect(token.KeywordWhile)
	p.expect(token.LParen)
	test := p.parseExpression()
	p.expectClose(token.RParen)
	p.eat(token.Semicolon) // ASI always applies after do-while
	n := arena.Alloc[ast.DoWhileStatement](p.arena)
	n.Body = body
	n.Test = test
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseSwitchStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	p.expect(token.LParen)
	disc := p.parseExpression()
	p.expectClose(token.RParen)
	p.expect(token.LBrace)

	saved := p.inSwitch
	p.inSwitch = true
	var cases []*ast.SwitchCase
	seenDefault := false
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		cstart := p.tok.Span.Start
		var test ast.Expression
		if p.eat(token.KeywordCase) {
			test = p.parseExpression()
		} else if p.at(token.KeywordDefault) {
			if seenDefault {
				p.errorf(p.tok.Span, "multiple default clauses in switch")
			}
			seenDefault = true
			p.advance()
		} else {
			p.errorf(p.tok.Span, "expected case or default, found %q", p.tok.Kind.String())
			p.synchronize()
			continue
		}
		p.expect(token.Colon)
		var body []ast.Statement
		for !p.at(token.KeywordCase) && !p.at(token.KeywordDefault) && !p.at(token.RBrace) && !p.at(token.EOF) {
			if st := p.parseStatement(); st != nil {
				body = append(body, st)
			}
		}
		c := arena.Alloc[ast.SwitchCase](p.arena)
		c.Test = test
		c.Consequent = body
		p.finish(&c.Base, cstart)
		cases = append(cases, c)
	}
	p.inSwitch = saved
	p.expectClose(token.RBrace)

	n := arena.Alloc[ast.SwitchStatement](p.arena)
	n.Discriminant = disc
	n.Cases = cases
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseTryStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	block := p.parseBlock()
	var handler *ast.CatchClause
	var finalizer *ast.BlockStatement
	if p.at(token.KeywordCatch) {
		hstart := p.tok.Span.Start
		p.advance()
		var param ast.Pattern
		if p.eat(token.LParen) {
			param = p.parseBindingPattern()
			p.expectClose(token.RParen)
		}
		body := p.parseBlock()
		handler = arena.Alloc[ast.CatchClause](p.arena)
		handler.Param = param
		handler.Body = body
		p.finish(&handler.Base, hstart)
	}
	if p.eat(token.KeywordFinally) {
		finalizer = p.parseBlock()
	}
	if handler == nil && finalizer == nil {
		p.errorf(p.tok.Span, "try statement requires catch or finally")
	}
	n := arena.Alloc[ast.TryStatement](p.arena)
	n.Block = block
	n.Handler = handler
	n.Finalizer = finalizer
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseLabeledStatement() ast.Statement {
	start := p.tok.Span.Start
	label := p.parseIdentifierName()
	p.expect(token.Colon)
	body := p.parseStatement()
	n := arena.Alloc[ast.LabeledStatement](p.arena)
	n.Label = label
	n.Body = body
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseThrowStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	if p.tok.HasLineBreakBefore {
		p.errorf(p.tok.Span, "newline not allowed after throw")
	}
	arg := p.parseExpression()
	p.semicolon()
	n := arena.Alloc[ast.ThrowStatement](p.arena)
	n.Argument = arg
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseReturnStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	var arg ast.Expression
	if !p.at(token.Semicolon) && !p.at(token.RBrace) && !p.at(token.EOF) && !p.tok.HasLineBreakBefore {
		arg = p.parseExpression()
	}
	p.semicolon()
	n := arena.Alloc[ast.ReturnStatement](p.arena)
	n.Argument = arg
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseBreakOrContinue(isBreak bool) ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	var label *ast.IdentifierName
	if p.at(token.Identifier) && !p.tok.HasLineBreakBefore {
		label = p.parseIdentifierName()
	}
	p.semicolon()
	if isBreak {
		if label == nil && !p.inLoop && !p.inSwitch {
			p.errorf(token.Span{Start: start, End: p.prevEnd}, "break outside loop or switch")
		}
		n := arena.Alloc[ast.BreakStatement](p.arena)
		n.Label = label
		p.finish(&n.Base, start)
		return n
	}
	if label == nil && !p.inLoop {
		p.errorf(token.Span{Start: start, End: p.prevEnd}, "continue outside loop")
	}
	n := arena.Alloc[ast.ContinueStatement](p.arena)
	n.Label = label
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseWithStatement() ast.Statement {
	start := p.tok.Span.Start
	p.advance()
	p.expect(token.LParen)
	obj := p.parseExpression()
	p.expectClose(token.RParen)
	body := p.parseStatement()
	n := arena.Alloc[ast.WithStatement](p.arena)
	n.Object = obj
	n.Body = body
	p.finish(&n.Base, start)
	return n
}

// parseIdentifierName accepts an identifier (or keyword, in property-name
// positions the callers control) as a non-binding name.
func (p *Parser) parseIdentifierName() *ast.IdentifierName {
	start := p.tok.Span.Start
	name := p.tok.Raw
	if !p.at(token.Identifier) && !isKeywordToken(p.tok.Kind) {
		p.errorf(p.tok.Span, "expected identifier, found %q", p.tok.Kind.String())
		name = ""
	}
	p.advanceOp()
	n := arena.Alloc[ast.IdentifierName](p.arena)
	n.Name = name
	p.finish(&n.Base, start)
	return n
}

func isKeywordToken(k token.Kind) bool {
	return k >= token.KeywordBreak && k <= token.KeywordImplements
}
