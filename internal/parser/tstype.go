package parser

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

// parseTypeAnnotation parses `: T`. The annotation span includes the colon
// so the printer can reproduce spacing from the annotation alone.
func (p *Parser) parseTypeAnnotation() *ast.TSTypeAnnotation {
	start := p.tok.Span.Start
	p.expect(token.Colon)
	t := p.parseType()
	n := arena.Alloc[ast.TSTypeAnnotation](p.arena)
	n.Type = t
	p.finish(&n.Base, start)
	return n
}

// parseType parses a union type (the top of the supported type grammar).
// A leading `|` is tolerated, as in multi-line union declarations.
func (p *Parser) parseType() ast.TSType {
	start := p.tok.Span.Start
	p.eat(token.Pipe)
	first := p.parseIntersectionType()
	if !p.at(token.Pipe) {
		return first
	}
	types := []ast.TSType{first}
	for p.eat(token.Pipe) {
		types = append(types, p.parseIntersectionType())
	}
	n := arena.Alloc[ast.TSUnionType](p.arena)
	n.Types = types
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseIntersectionType() ast.TSType {
	start := p.tok.Span.Start
	first := p.parsePostfixType()
	if !p.at(token.Amp) {
		return first
	}
	types := []ast.TSType{first}
	for p.eat(token.Amp) {
		types = append(types, p.parsePostfixType())
	}
	n := arena.Alloc[ast.TSIntersectionType](p.arena)
	n.Types = types
	p.finish(&n.Base, start)
	return n
}

// parsePostfixType handles the `T[]` array suffix.
func (p *Parser) parsePostfixType() ast.TSType {
	start := p.tok.Span.Start
	t := p.parsePrimaryType()
	for p.at(token.LBracket) && !p.tok.HasLineBreakBefore {
		p.advance()
		p.expectClose(token.RBracket)
		n := arena.Alloc[ast.TSArrayType](p.arena)
		n.Element = t
		p.finish(&n.Base, start)
		t = n
	}
	return t
}

var tsKeywordTypes = map[string]bool{
	"any": true, "unknown": true, "never": true, "void": true,
	"undefined": true, "string": true, "number": true, "boolean": true,
	"bigint": true, "symbol": true, "object": true,
}

func (p *Parser) parsePrimaryType() ast.TSType {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.LParen:
		p.advance()
		t := p.parseType()
		p.expectClose(token.RParen)
		return t
	case token.LBracket:
		p.advance()
		n := arena.Alloc[ast.TSTupleType](p.arena)
		for !p.at(token.RBracket) && !p.at(token.EOF) {
			n.Elements = append(n.Elements, p.parseType())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expectClose(token.RBracket)
		p.finish(&n.Base, start)
		return n
	case token.StringLiteral, token.NumericLiteral, token.KeywordTrue,
		token.KeywordFalse, token.KeywordNull, token.BigIntLiteral:
		lit := p.parsePrimaryExpression()
		n := arena.Alloc[ast.TSLiteralType](p.arena)
		n.Literal = lit
		p.finish(&n.Base, start)
		return n
	case token.Minus:
		// Negative numeric literal type.
		lit := p.parseUnaryExpression()
		n := arena.Alloc[ast.TSLiteralType](p.arena)
		n.Literal = lit
		p.finish(&n.Base, start)
		return n
	case token.Identifier:
		if tsKeywordTypes[p.tok.Raw] {
			kw := p.tok.Raw
			p.advanceOp()
			n := arena.Alloc[ast.TSKeywordType](p.arena)
			n.Keyword = kw
			p.finish(&n.Base, start)
			return n
		}
		return p.parseTypeReference()
	}
	// Keywords that double as type names (`this` is deliberately not
	// modeled; it resolves like a reference for our purposes).
	if isKeywordToken(p.tok.Kind) {
		return p.parseTypeReference()
	}
	p.errorf(p.tok.Span, "expected type, found %q", p.tok.Kind.String())
	p.advance()
	n := arena.Alloc[ast.TSKeywordType](p.arena)
	n.Keyword = "any"
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseTypeReference() ast.TSType {
	start := p.tok.Span.Start
	var name ast.Node = p.parseIdentifierName()
	for p.at(token.Dot) {
		p.advance()
		right := p.parseIdentifierName()
		q := arena.Alloc[ast.TSQualifiedName](p.arena)
		q.Left = name
		q.Right = right
		p.finish(&q.Base, start)
		name = q
	}
	n := arena.Alloc[ast.TSTypeReference](p.arena)
	n.Name = name
	if p.at(token.LAngle) {
		args, ok := p.tryParseTypeArguments()
		if ok {
			n.TypeArguments = args
		}
	}
	p.finish(&n.Base, start)
	return n
}

// tryParseTypeArguments parses `<T, U>`. In nested generics the closing
// `>>`/`>>>` arrives as a shift token; expectTypeClose splits it, leaving
// the surplus `>` as the new lookahead.
func (p *Parser) tryParseTypeArguments() ([]ast.TSType, bool) {
	errsBefore := len(p.errors)
	p.expect(token.LAngle)
	var args []ast.TSType
	for {
		args = append(args, p.parseType())
		if !p.eat(token.Comma) {
			break
		}
	}
	if len(p.errors) > errsBefore {
		return nil, false
	}
	if !p.expectTypeClose() {
		return nil, false
	}
	return args, true
}

func (p *Parser) expectTypeClose() bool {
	switch p.tok.Kind {
	case token.RAngle:
		p.advanceOp()
		return true
	case token.RShift:
		p.prevEnd = p.tok.Span.Start + 1
		p.tok = token.Token{Kind: token.RAngle, Raw: ">", Span: token.Span{Start: p.tok.Span.Start + 1, End: p.tok.Span.End}}
		return true
	case token.URShift:
		p.prevEnd = p.tok.Span.Start + 1
		p.tok = token.Token{Kind: token.RShift, Raw: ">>", Span: token.Span{Start: p.tok.Span.Start + 1, End: p.tok.Span.End}}
		return true
	}
	return false
}

func (p *Parser) parseTypeParameterDeclaration() *ast.TSTypeParameterDeclaration {
	start := p.tok.Span.Start
	p.expect(token.LAngle)
	n := arena.Alloc[ast.TSTypeParameterDeclaration](p.arena)
	for !p.at(token.RAngle) && !p.at(token.EOF) {
		tstart := p.tok.Span.Start
		tp := arena.Alloc[ast.TSTypeParameter](p.arena)
		tp.Name = p.parseBindingIdentifier(false)
		if p.at(token.KeywordExtends) {
			p.advance()
			tp.Constraint = p.parseType()
		}
		if p.eat(token.Eq) {
			tp.Default = p.parseType()
		}
		p.finish(&tp.Base, tstart)
		n.Params = append(n.Params, tp)
		if !p.eat(token.Comma) {
			break
		}
	}
	if !p.expectTypeClose() {
		p.errorf(p.tok.Span, "expected > closing type parameters, found %q", p.tok.Kind.String())
		return nil
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseTypeAliasDeclaration() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // `type`
	n := arena.Alloc[ast.TSTypeAliasDeclaration](p.arena)
	n.Name = p.parseBindingIdentifier(false)
	if p.at(token.LAngle) {
		n.TypeParameters = p.parseTypeParameterDeclaration()
	}
	p.expect(token.Eq)
	n.Type = p.parseType()
	p.semicolon()
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseInterfaceDeclaration() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // interface
	n := arena.Alloc[ast.TSInterfaceDeclaration](p.arena)
	n.Name = p.parseBindingIdentifier(false)
	if p.at(token.LAngle) {
		n.TypeParameters = p.parseTypeParameterDeclaration()
	}
	if p.eat(token.KeywordExtends) {
		for {
			t := p.parseTypeReference()
			if ref, ok := t.(*ast.TSTypeReference); ok {
				n.Extends = append(n.Extends, ref)
			}
			if !p.eat(token.Comma) {
				break
			}
		}
	}
	n.Body = p.parseInterfaceBody()
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseInterfaceBody() *ast.TSInterfaceBody {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	n := arena.Alloc[ast.TSInterfaceBody](p.arena)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		m := p.parseInterfaceMember()
		if m != nil {
			n.Members = append(n.Members, m)
		}
		// Members separate with `;`, `,`, or a newline.
		if !p.eat(token.Semicolon) {
			p.eat(token.Comma)
		}
	}
	p.expectClose(token.RBrace)
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseInterfaceMember() *ast.TSPropertySignature {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.TSPropertySignature](p.arena)
	if p.atIdent("readonly") && p.peekStartsMemberName() {
		n.Readonly = true
		p.advance()
	}
	switch p.tok.Kind {
	case token.StringLiteral, token.NumericLiteral:
		n.Key = p.parsePropertyKeyName()
	default:
		n.Key = p.parseIdentifierName()
	}
	if p.at(token.Question) {
		n.Optional = true
		p.advanceOp()
	}
	if p.at(token.Colon) {
		n.TypeAnnotation = p.parseTypeAnnotation()
	} else if p.at(token.LParen) || p.at(token.LAngle) {
		// Method signature: parse and discard the signature's pieces; the
		// member is carried without a type annotation.
		if p.at(token.LAngle) {
			p.parseTypeParameterDeclaration()
		}
		p.parseFormalParameters()
		if p.at(token.Colon) {
			p.parseTypeAnnotation()
		}
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseModuleDeclaration() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // namespace | module
	n := arena.Alloc[ast.TSModuleDeclaration](p.arena)
	if p.at(token.StringLiteral) {
		s := arena.Alloc[ast.StringLiteral](p.arena)
		s.Value = p.tok.Cooked
		s.Raw = p.tok.Raw
		s.Loc = p.tok.Span
		s.NodeID = p.newID()
		n.Name = s
		p.advanceOp()
	} else {
		// Dotted namespace names (`namespace A.B`) fold into a qualified
		// IdentifierName spelling; nesting is a checker concern.
		nameStart := p.tok.Span.Start
		name := p.tok.Raw
		p.advanceOp()
		for p.at(token.Dot) {
			p.advance()
			name += "." + p.tok.Raw
			p.advanceOp()
		}
		id := arena.Alloc[ast.BindingIdentifier](p.arena)
		id.Name = name
		id.Loc = token.Span{Start: nameStart, End: p.prevEnd}
		id.NodeID = p.newID()
		n.Name = id
	}
	block := p.parseBlock()
	n.Body = block.Body
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseEnumDeclaration(isConst bool) ast.Statement {
	start := p.tok.Span.Start
	if isConst {
		p.advance() // const
	}
	p.expect(token.KeywordEnum)
	n := arena.Alloc[ast.TSEnumDeclaration](p.arena)
	n.Const = isConst
	n.Name = p.parseBindingIdentifier(false)
	p.expect(token.LBrace)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		mstart := p.tok.Span.Start
		m := arena.Alloc[ast.TSEnumMember](p.arena)
		switch p.tok.Kind {
		case token.StringLiteral:
			m.Name = p.parsePropertyKeyName()
		default:
			m.Name = p.parseIdentifierName()
		}
		if p.eat(token.Eq) {
			m.Init = p.parseAssignmentExpression()
		}
		p.finish(&m.Base, mstart)
		n.Members = append(n.Members, m)
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace)
	p.finish(&n.Base, start)
	return n
}
