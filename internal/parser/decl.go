package parser

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

func (p *Parser) parseFunctionDeclaration(async bool) ast.Statement {
	start := p.tok.Span.Start
	if async {
		p.advance() // `async`
	}
	p.expect(token.KeywordFunction)
	generator := p.eat(token.Star)

	n := arena.Alloc[ast.FunctionDeclaration](p.arena)
	if !p.at(token.LParen) {
		n.Name = p.parseBindingIdentifier(false)
	}
	n.FunctionParts = p.parseFunctionParts(async, generator)
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseFunctionExpression(async bool) ast.Expression {
	start := p.tok.Span.Start
	if async {
		p.advance()
	}
	p.expect(token.KeywordFunction)
	generator := p.eat(token.Star)

	n := arena.Alloc[ast.FunctionExpression](p.arena)
	if !p.at(token.LParen) && !p.at(token.LAngle) {
		n.Name = p.parseBindingIdentifier(false)
	}
	n.FunctionParts = p.parseFunctionParts(async, generator)
	p.finish(&n.Base, start)
	return n
}

// parseFunctionParts parses everything after the name: type parameters,
// parameter list, return type, body, with the yield/await context set by
// the function's own modifiers, not the enclosing one's.
func (p *Parser) parseFunctionParts(async, generator bool) ast.FunctionParts {
	var parts ast.FunctionParts
	parts.Async = async
	parts.Generator = generator

	if p.srcType.TypeScript && p.at(token.LAngle) {
		parts.TypeParameters = p.parseTypeParameterDeclaration()
	}
	parts.Params = p.parseFormalParameters()
	if p.srcType.TypeScript && p.at(token.Colon) {
		parts.ReturnType = p.parseTypeAnnotation()
	}

	savedYield, savedAwait := p.allowYield, p.allowAwait
	savedLoop, savedSwitch := p.inLoop, p.inSwitch
	p.allowYield = generator
	p.allowAwait = async
	p.inLoop, p.inSwitch = false, false

	parts.Body = p.parseBlock()

	p.allowYield, p.allowAwait = savedYield, savedAwait
	p.inLoop, p.inSwitch = savedLoop, savedSwitch
	return parts
}

func (p *Parser) parseFormalParameters() []ast.Pattern {
	p.expect(token.LParen)
	var params []ast.Pattern
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			params = append(params, p.parseRestElement())
		} else {
			params = append(params, p.parseBindingElement())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RParen)
	return params
}

func (p *Parser) parseClassDeclaration() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // class
	n := arena.Alloc[ast.ClassDeclaration](p.arena)
	if !p.at(token.LBrace) && !p.at(token.KeywordExtends) {
		n.Name = p.parseBindingIdentifier(false)
	}
	if p.srcType.TypeScript && p.at(token.LAngle) {
		// Class type parameters are parsed and dropped: no core tool
		// consumes them, and carrying them would be dead weight on every
		// class node.
		p.parseTypeParameterDeclaration()
	}
	if p.eat(token.KeywordExtends) {
		n.SuperClass = p.parseLeftHandSideExpression()
		if p.srcType.TypeScript && p.atIdent("implements") {
			p.skipImplementsClause()
		}
	} else if p.srcType.TypeScript && p.at(token.KeywordImplements) {
		p.skipImplementsClause()
	}
	n.ClassBody = p.parseClassBody()
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseClassExpression() ast.Expression {
	start := p.tok.Span.Start
	p.advance() // class
	n := arena.Alloc[ast.ClassExpression](p.arena)
	if !p.at(token.LBrace) && !p.at(token.KeywordExtends) {
		n.Name = p.parseBindingIdentifier(false)
	}
	if p.eat(token.KeywordExtends) {
		n.SuperClass = p.parseLeftHandSideExpression()
	}
	n.ClassBody = p.parseClassBody()
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) skipImplementsClause() {
	p.advance() // implements
	for {
		p.parseType()
		if !p.eat(token.Comma) {
			return
		}
	}
}

func (p *Parser) parseClassBody() *ast.ClassBody {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	n := arena.Alloc[ast.ClassBody](p.arena)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.eat(token.Semicolon) {
			continue
		}
		if m := p.parseClassMember(); m != nil {
			n.Members = append(n.Members, m)
		}
	}
	p.expectClose(token.RBrace)
	p.finish(&n.Base, start)
	return n
}

// peekStartsMemberName reports whether the token after the current one
// could begin a class-member name: the test that separates a modifier
// (`static x`) from a member that happens to be named like one
// (`static = 1`, `async()`).
func (p *Parser) peekStartsMemberName() bool {
	s := p.lex.Mark()
	next := p.lex.Next(lexerPeekCtx)
	p.lex.Restore(s)
	switch next.Kind {
	case token.Identifier, token.PrivateIdentifier, token.StringLiteral,
		token.NumericLiteral, token.LBracket, token.Star, token.LBrace:
		return true
	}
	return isKeywordToken(next.Kind)
}

func (p *Parser) parseClassMember() ast.ClassMember {
	start := p.tok.Span.Start

	static := false
	if p.atIdent("static") && p.peekStartsMemberName() {
		p.advance()
		static = true
	}

	if static && p.at(token.LBrace) {
		// Static initialization block.
		block := p.parseBlock()
		n := arena.Alloc[ast.StaticBlock](p.arena)
		n.Body = block.Body
		p.finish(&n.Base, start)
		n.Loc = token.Span{Start: start, End: block.Span().End}
		return n
	}

	// TS accessibility and field modifiers are absorbed: they have no
	// runtime meaning and no core tool consumes them.
	if p.srcType.TypeScript {
		for p.at(token.Identifier) && p.peekStartsMemberName() {
			switch p.tok.Raw {
			case "public", "private", "protected", "readonly", "abstract", "override", "declare", "accessor":
				p.advance()
				continue
			}
			break
		}
	}

	async := false
	if p.atIdent("async") && p.peekStartsMemberName() && !p.peekHasLineBreak() {
		p.advance()
		async = true
	}
	generator := p.eat(token.Star)

	kind := ast.MethodMethod
	if !async && !generator && (p.atIdent("get") || p.atIdent("set")) && p.peekStartsMemberName() {
		if p.tok.Raw == "get" {
			kind = ast.MethodGet
		} else {
			kind = ast.MethodSet
		}
		p.advance()
	}

	key, computed := p.parseClassElementName()

	if p.at(token.LParen) || (p.srcType.TypeScript && p.at(token.LAngle)) {
		value := arena.Alloc[ast.FunctionExpression](p.arena)
		vstart := p.tok.Span.Start
		value.FunctionParts = p.parseFunctionParts(async, generator)
		p.finish(&value.Base, vstart)

		if kind == ast.MethodMethod && !static && !computed {
			if id, ok := key.(*ast.IdentifierName); ok && id.Name == "constructor" {
				kind = ast.MethodConstructor
			}
		}
		n := arena.Alloc[ast.MethodDefinition](p.arena)
		n.MethodKind = kind
		n.Key = key
		n.Value = value
		n.Static = static
		n.Computed = computed
		p.finish(&n.Base, start)
		return n
	}

	// Property definition.
	n := arena.Alloc[ast.PropertyDefinition](p.arena)
	n.Key = key
	n.Static = static
	n.Computed = computed
	if p.srcType.TypeScript {
		// `?` and `!` markers are absorbed like the other TS-only bits.
		if p.at(token.Question) || p.at(token.Bang) {
			p.advanceOp()
		}
		if p.at(token.Colon) {
			n.TypeAnnotation = p.parseTypeAnnotation()
		}
	}
	if p.eat(token.Eq) {
		n.Value = p.parseAssignmentExpression()
	}
	p.semicolon()
	p.finish(&n.Base, start)
	return n
}

// parseClassElementName: identifier (keywords ok), private name, string,
// number, or computed `[expr]`.
func (p *Parser) parseClassElementName() (ast.Node, bool) {
	switch p.tok.Kind {
	case token.PrivateIdentifier:
		start := p.tok.Span.Start
		name := p.tok.Raw
		p.advanceOp()
		n := arena.Alloc[ast.PrivateIdentifier](p.arena)
		n.Name = name
		p.finish(&n.Base, start)
		return n, false
	case token.LBracket:
		p.advance()
		key := p.parseAssignmentExpression()
		p.expectClose(token.RBracket)
		return key, true
	}
	return p.parsePropertyKeyName(), false
}

func (p *Parser) parseObjectExpression() ast.Expression {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	n := arena.Alloc[ast.ObjectExpression](p.arena)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			sstart := p.tok.Span.Start
			p.advance()
			arg := p.parseAssignmentExpression()
			s := arena.Alloc[ast.SpreadElement](p.arena)
			s.Argument = arg
			p.finish(&s.Base, sstart)
			n.Properties = append(n.Properties, s)
		} else {
			n.Properties = append(n.Properties, p.parseObjectProperty())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace)
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseObjectProperty() *ast.ObjectProperty {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.ObjectProperty](p.arena)

	async := false
	if p.atIdent("async") && p.peekStartsMemberName() && !p.peekHasLineBreak() {
		p.advance()
		async = true
	}
	generator := p.eat(token.Star)

	if !async && !generator && (p.atIdent("get") || p.atIdent("set")) && p.peekStartsMemberName() {
		isGet := p.tok.Raw == "get"
		p.advance()
		key, computed := p.parseObjectPropertyKey()
		value := p.parseMethodValue(false, false)
		if isGet {
			n.PropKind = ast.PropertyGet
		} else {
			n.PropKind = ast.PropertySet
		}
		n.Key = key
		n.Computed = computed
		n.Value = value
		p.finish(&n.Base, start)
		return n
	}

	key, computed := p.parseObjectPropertyKey()
	n.Key = key
	n.Computed = computed

	switch {
	case p.at(token.LParen) || (p.srcType.TypeScript && p.at(token.LAngle)):
		n.Method = true
		n.Value = p.parseMethodValue(async, generator)
	case p.eat(token.Colon):
		n.Value = p.parseAssignmentExpression()
	default:
		// Shorthand `{ a }` or cover-grammar default `{ a = 1 }`.
		n.Shorthand = true
		id, ok := key.(*ast.IdentifierName)
		if !ok {
			p.errorf(key.Span(), "unexpected token in object literal")
			p.finish(&n.Base, start)
			return n
		}
		ref := arena.Alloc[ast.IdentifierReference](p.arena)
		ref.Name = id.Name
		ref.Loc = id.Loc
		ref.NodeID = p.newID()
		if p.at(token.Eq) {
			// Only valid if the whole literal converts to a pattern; keep
			// it as an assignment for exprToPattern to unwrap.
			p.advance()
			right := p.parseAssignmentExpression()
			a := arena.Alloc[ast.AssignmentExpression](p.arena)
			a.Op = token.Eq
			a.Target = ref
			a.Value = right
			p.finish(&a.Base, start)
			n.Value = a
		} else {
			n.Value = ref
		}
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseObjectPropertyKey() (ast.Node, bool) {
	if p.at(token.LBracket) {
		p.advance()
		key := p.parseAssignmentExpression()
		p.expectClose(token.RBracket)
		return key, true
	}
	return p.parsePropertyKeyName(), false
}

// parseMethodValue wraps parseFunctionParts into the anonymous
// FunctionExpression an object-literal method is.
func (p *Parser) parseMethodValue(async, generator bool) *ast.FunctionExpression {
	start := p.tok.Span.Start
	value := arena.Alloc[ast.FunctionExpression](p.arena)
	value.FunctionParts = p.parseFunctionParts(async, generator)
	p.finish(&value.Base, start)
	return value
}
