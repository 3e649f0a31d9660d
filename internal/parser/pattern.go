package parser

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

// parseBindingPattern parses a binding position: identifier, array
// pattern, or object pattern, with an optional TS type annotation.
func (p *Parser) parseBindingPattern() ast.Pattern {
	switch p.tok.Kind {
	case token.LBracket:
		return p.parseArrayPattern()
	case token.LBrace:
		return p.parseObjectPattern()
	default:
		return p.parseBindingIdentifier(true)
	}
}

// parseBindingIdentifier parses an identifier that introduces a binding.
// allowAnnotation gates the TS `?`/`: T` suffixes, which are only legal in
// parameter/declarator positions.
func (p *Parser) parseBindingIdentifier(allowAnnotation bool) *ast.BindingIdentifier {
	start := p.tok.Span.Start
	name := p.tok.Raw
	// yield/await are valid binding names outside their keyword contexts.
	ok := p.at(token.Identifier) ||
		(p.at(token.KeywordYield) && !p.allowYield)
	if !ok {
		p.errorf(p.tok.Span, "expected binding identifier, found %q", p.tok.Kind.String())
		name = ""
	}
	p.advanceOp()
	n := arena.Alloc[ast.BindingIdentifier](p.arena)
	n.Name = name
	if allowAnnotation && p.srcType.TypeScript {
		if p.at(token.Question) {
			n.Optional = true
			p.advanceOp()
		}
		if p.at(token.Colon) {
			n.TypeAnnotation = p.parseTypeAnnotation()
		}
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseArrayPattern() *ast.ArrayPattern {
	start := p.tok.Span.Start
	p.expect(token.LBracket)
	var elems []ast.Pattern
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elems = append(elems, nil) // elision
			p.advance()
			continue
		}
		if p.at(token.DotDotDot) {
			elems = append(elems, p.parseRestElement())
		} else {
			elems = append(elems, p.parseBindingElement())
		}
		if !p.at(token.RBracket) {
			p.expect(token.Comma)
		}
	}
	p.expectClose(token.RBracket)
	n := arena.Alloc[ast.ArrayPattern](p.arena)
	n.Elements = elems
	if p.srcType.TypeScript && p.at(token.Colon) {
		n.TypeAnnotation = p.parseTypeAnnotation()
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseObjectPattern() *ast.ObjectPattern {
	start := p.tok.Span.Start
	p.expect(token.LBrace)
	n := arena.Alloc[ast.ObjectPattern](p.arena)
	for !p.at(token.RBrace) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			rest := p.parseRestElement()
			n.Rest = rest
			if !p.at(token.RBrace) {
				p.errorf(p.tok.Span, "rest property must be last")
			}
			break
		}
		n.Properties = append(n.Properties, p.parseBindingProperty())
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RBrace)
	if p.srcType.TypeScript && p.at(token.Colon) {
		n.TypeAnnotation = p.parseTypeAnnotation()
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseBindingProperty() *ast.BindingProperty {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.BindingProperty](p.arena)

	if p.at(token.LBracket) {
		n.Computed = true
		p.advance()
		keyExpr := p.parseAssignmentExpression()
		p.expectClose(token.RBracket)
		n.Key = keyExpr
		p.expect(token.Colon)
		n.Value = p.parseBindingElement()
		p.finish(&n.Base, start)
		return n
	}

	key := p.parsePropertyKeyName()
	n.Key = key
	if p.eat(token.Colon) {
		n.Value = p.parseBindingElement()
	} else {
		// Shorthand: the key is also the binding.
		n.Shorthand = true
		id, ok := key.(*ast.IdentifierName)
		if !ok {
			p.errorf(key.Span(), "shorthand property must be an identifier")
		}
		b := arena.Alloc[ast.BindingIdentifier](p.arena)
		if ok {
			b.Name = id.Name
		}
		b.Loc = key.Span()
		b.NodeID = p.newID()
		if p.at(token.Eq) {
			p.advance()
			right := p.parseAssignmentExpression()
			ap := arena.Alloc[ast.AssignmentPattern](p.arena)
			ap.Left = b
			ap.Right = right
			p.finish(&ap.Base, start)
			n.Value = ap
		} else {
			n.Value = b
		}
	}
	p.finish(&n.Base, start)
	return n
}

// parsePropertyKeyName parses a non-computed property key: identifier
// (keywords allowed), string, or number.
func (p *Parser) parsePropertyKeyName() ast.Node {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.StringLiteral:
		raw, cooked := p.tok.Raw, p.tok.Cooked
		p.advanceOp()
		n := arena.Alloc[ast.StringLiteral](p.arena)
		n.Value = cooked
		n.Raw = raw
		p.finish(&n.Base, start)
		return n
	case token.NumericLiteral:
		raw := p.tok.Raw
		flags := p.tok.NumberFlags
		p.advanceOp()
		n := arena.Alloc[ast.NumericLiteral](p.arena)
		n.Value = parseNumericValue(raw, flags)
		n.Raw = raw
		n.Flags = flags
		p.finish(&n.Base, start)
		return n
	}
	return p.parseIdentifierName()
}

// parseBindingElement is a binding pattern with an optional default.
func (p *Parser) parseBindingElement() ast.Pattern {
	start := p.tok.Span.Start
	pat := p.parseBindingPattern()
	if p.eat(token.Eq) {
		right := p.parseAssignmentExpression()
		n := arena.Alloc[ast.AssignmentPattern](p.arena)
		n.Left = pat
		n.Right = right
		p.finish(&n.Base, start)
		return n
	}
	return pat
}

func (p *Parser) parseRestElement() *ast.RestElement {
	start := p.tok.Span.Start
	p.expect(token.DotDotDot)
	arg := p.parseBindingPattern()
	n := arena.Alloc[ast.RestElement](p.arena)
	n.Argument = arg
	p.finish(&n.Base, start)
	return n
}

// exprToPattern converts an expression parsed through the cover grammar
// into the pattern it covered: `[a, b] = ...` was parsed as an array
// expression, `{x = 1} = ...` as an object with a shorthand default. The
// conversion allocates fresh pattern nodes but reuses converted children,
// a shallow in-arena rewrite.
func (p *Parser) exprToPattern(e ast.Expression) (ast.Pattern, bool) {
	switch t := e.(type) {
	case *ast.IdentifierReference:
		b := arena.Alloc[ast.BindingIdentifier](p.arena)
		b.Name = t.Name
		b.Loc = t.Loc
		b.NodeID = p.newID()
		return b, true
	case *ast.MemberExpression:
		return t, true
	case *ast.ParenthesizedExpression:
		return p.exprToPattern(t.Expression)
	case *ast.AssignmentExpression:
		if t.Op != token.Eq {
			return nil, false
		}
		left, ok := t.Target.(ast.Pattern)
		if !ok {
			if le, isExpr := t.Target.(ast.Expression); isExpr {
				left, ok = p.exprToPattern(le)
			}
		} else {
			ok = true
		}
		if !ok {
			return nil, false
		}
		n := arena.Alloc[ast.AssignmentPattern](p.arena)
		n.Left = left
		n.Right = t.Value
		n.Loc = t.Loc
		n.NodeID = p.newID()
		return n, true
	case *ast.ArrayExpression:
		n := arena.Alloc[ast.ArrayPattern](p.arena)
		n.Loc = t.Loc
		n.NodeID = p.newID()
		for i, el := range t.Elements {
			if el == nil {
				n.Elements = append(n.Elements, nil)
				continue
			}
			if spread, isSpread := el.(*ast.SpreadElement); isSpread {
				if i != len(t.Elements)-1 {
					return nil, false
				}
				arg, ok := p.exprToPattern(spread.Argument)
				if !ok {
					return nil, false
				}
				r := arena.Alloc[ast.RestElement](p.arena)
				r.Argument = arg
				r.Loc = spread.Loc
				r.NodeID = p.newID()
				n.Elements = append(n.Elements, r)
				continue
			}
			pat, ok := p.exprToPattern(el)
			if !ok {
				return nil, false
			}
			n.Elements = append(n.Elements, pat)
		}
		return n, true
	case *ast.ObjectExpression:
		n := arena.Alloc[ast.ObjectPattern](p.arena)
		n.Loc = t.Loc
		n.NodeID = p.newID()
		for i, member := range t.Properties {
			switch m := member.(type) {
			case *ast.SpreadElement:
				if i != len(t.Properties)-1 {
					return nil, false
				}
				arg, ok := p.exprToPattern(m.Argument)
				if !ok {
					return nil, false
				}
				r := arena.Alloc[ast.RestElement](p.arena)
				r.Argument = arg
				r.Loc = m.Loc
				r.NodeID = p.newID()
				n.Rest = r
			case *ast.ObjectProperty:
				if m.PropKind != ast.PropertyInit || m.Method {
					return nil, false
				}
				val, ok := p.exprToPattern(m.Value)
				if !ok {
					return nil, false
				}
				bp := arena.Alloc[ast.BindingProperty](p.arena)
				bp.Key = m.Key
				bp.Value = val
				bp.Computed = m.Computed
				bp.Shorthand = m.Shorthand
				bp.Loc = m.Loc
				bp.NodeID = p.newID()
				n.Properties = append(n.Properties, bp)
			default:
				return nil, false
			}
		}
		return n, true
	}
	return nil, false
}

// tryParseArrow speculatively parses an arrow function head at the
// current position and commits only if `=>` follows. On failure the parse
// state (lexer, lookahead, errors) is rewound and nil returned, letting
// the caller re-parse the same tokens as an ordinary expression; this is
// the operational half of the cover-grammar design.
func (p *Parser) tryParseArrow(asyncHead bool) ast.Expression {
	s := p.mark()
	start := p.tok.Span.Start
	async := false

	if asyncHead {
		p.advance() // `async`
		async = true
		if p.at(token.Arrow) && !p.tok.HasLineBreakBefore {
			// `async => ...`: async is the parameter, not a modifier.
			b := arena.Alloc[ast.BindingIdentifier](p.arena)
			b.Name = "async"
			b.Loc = token.Span{Start: start, End: start + 5}
			b.NodeID = p.newID()
			p.advance()
			return p.parseArrowBody(start, []ast.Pattern{b}, nil, nil, false)
		}
		if !p.at(token.Identifier) && !p.at(token.LParen) {
			p.restore(s)
			return nil
		}
	}

	var params []ast.Pattern
	var retType *ast.TSTypeAnnotation
	var typeParams *ast.TSTypeParameterDeclaration

	if p.at(token.Identifier) {
		id := p.parseBindingIdentifier(false)
		params = []ast.Pattern{id}
	} else {
		var ok bool
		params, ok = p.tryParseArrowParams()
		if !ok {
			p.restore(s)
			return nil
		}
		if p.srcType.TypeScript && p.at(token.Colon) {
			retType = p.parseTypeAnnotation()
		}
	}

	if !p.at(token.Arrow) || p.tok.HasLineBreakBefore || len(p.errors) > s.errs {
		p.restore(s)
		return nil
	}
	p.advance() // =>
	return p.parseArrowBody(start, params, retType, typeParams, async)
}

// tryParseGenericArrow handles `<T>(x: T) => ...`, the one place a `<` in
// expression position begins something other than a comparison.
func (p *Parser) tryParseGenericArrow() ast.Expression {
	s := p.mark()
	start := p.tok.Span.Start
	typeParams := p.parseTypeParameterDeclaration()
	if typeParams == nil || !p.at(token.LParen) || len(p.errors) > s.errs {
		p.restore(s)
		return nil
	}
	params, ok := p.tryParseArrowParams()
	if !ok {
		p.restore(s)
		return nil
	}
	var retType *ast.TSTypeAnnotation
	if p.at(token.Colon) {
		retType = p.parseTypeAnnotation()
	}
	if !p.at(token.Arrow) || p.tok.HasLineBreakBefore || len(p.errors) > s.errs {
		p.restore(s)
		return nil
	}
	p.advance()
	return p.parseArrowBody(start, params, retType, typeParams, false)
}

// tryParseArrowParams parses `( params )` strictly; ok=false means the
// parenthesized text was not a parameter list.
func (p *Parser) tryParseArrowParams() ([]ast.Pattern, bool) {
	errsBefore := len(p.errors)
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
	if !p.at(token.RParen) || len(p.errors) > errsBefore {
		return nil, false
	}
	p.advanceOp()
	return params, true
}

func (p *Parser) parseArrowBody(start uint32, params []ast.Pattern, retType *ast.TSTypeAnnotation, typeParams *ast.TSTypeParameterDeclaration, async bool) ast.Expression {
	savedYield, savedAwait := p.allowYield, p.allowAwait
	p.allowYield = false
	p.allowAwait = async

	n := arena.Alloc[ast.ArrowFunctionExpression](p.arena)
	n.Params = params
	n.Async = async
	n.TypeParameters = typeParams
	n.ReturnType = retType
	if p.at(token.LBrace) {
		savedLoop, savedSwitch := p.inLoop, p.inSwitch
		p.inLoop, p.inSwitch = false, false
		n.Body = p.parseBlock()
		p.inLoop, p.inSwitch = savedLoop, savedSwitch
	} else {
		n.Body = p.parseAssignmentExpression()
	}

	p.allowYield, p.allowAwait = savedYield, savedAwait
	p.finish(&n.Base, start)
	return n
}
