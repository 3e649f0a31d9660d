package parser

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lexer"
	"github.com/oxhq/jscore/internal/token"
)

// JSX parsing switches between two token regimes: inside a tag, ordinary
// tokens; between tags, raw text scanned by the lexer's ScanJSXText (where
// whitespace is significant and `<`/`{` are the only structure). The
// parser owns the handoff: after an opening tag's `>` the lookahead is
// dead and children are pulled straight from the lexer.

func (p *Parser) parseJSXElementOrFragment() ast.Expression {
	return p.parseJSXElement(false)
}

// parseJSXElement parses an element or fragment starting at the current
// `<` token. When inChildren, the final `>` is not followed by a normal
// token pull: the caller resumes raw-text scanning instead.
func (p *Parser) parseJSXElement(inChildren bool) ast.Expression {
	start := p.tok.Span.Start
	p.advance() // `<`; next is a name or `>` for fragments

	if p.at(token.RAngle) {
		// Fragment: children start immediately after `>`.
		children := p.parseJSXChildren()
		// Lookahead is the `/` of `</>`.
		p.advance() // `/`
		if !p.at(token.RAngle) {
			p.errorf(p.tok.Span, "expected > closing JSX fragment, found %q", p.tok.Kind.String())
		}
		n := arena.Alloc[ast.JSXFragment](p.arena)
		n.Children = children
		p.finishJSX(&n.Base, start, inChildren)
		return n
	}

	opening := arena.Alloc[ast.JSXOpeningElement](p.arena)
	opening.Name = p.parseJSXName()

	// Attributes.
	for {
		if p.at(token.LBrace) {
			astart := p.tok.Span.Start
			p.advance()
			p.expect(token.DotDotDot)
			arg := p.parseAssignmentExpression()
			p.expectClose(token.RBrace)
			s := arena.Alloc[ast.JSXSpreadAttribute](p.arena)
			s.Argument = arg
			p.finish(&s.Base, astart)
			opening.Attributes = append(opening.Attributes, s)
			continue
		}
		if p.at(token.Identifier) || isKeywordToken(p.tok.Kind) {
			opening.Attributes = append(opening.Attributes, p.parseJSXAttribute())
			continue
		}
		break
	}

	if p.at(token.Slash) {
		p.advance()
		if !p.at(token.RAngle) {
			p.errorf(p.tok.Span, "expected > after / in self-closing tag")
		}
		opening.SelfClosing = true
		p.finish(&opening.Base, start)
		n := arena.Alloc[ast.JSXElement](p.arena)
		n.Opening = opening
		p.finishJSX(&n.Base, start, inChildren)
		return n
	}

	if !p.at(token.RAngle) {
		p.errorf(p.tok.Span, "expected > closing JSX tag, found %q", p.tok.Kind.String())
	}
	p.finish(&opening.Base, start)
	opening.Loc.End = p.tok.Span.End

	children := p.parseJSXChildren()

	// Lookahead is the `/` of the closing tag; the `<` ended one byte back.
	cstart := p.prevEnd - 1
	p.advance() // `/`
	closing := arena.Alloc[ast.JSXClosingElement](p.arena)
	closing.Name = p.parseJSXName()
	if !p.at(token.RAngle) {
		p.errorf(p.tok.Span, "expected > closing JSX tag, found %q", p.tok.Kind.String())
	}
	p.finish(&closing.Base, cstart)
	closing.Loc.End = p.tok.Span.End

	n := arena.Alloc[ast.JSXElement](p.arena)
	n.Opening = opening
	n.Children = children
	n.Closing = closing
	p.finishJSX(&n.Base, start, inChildren)
	return n
}

// finishJSX stamps the node and consumes the final `>`: through the
// normal token flow at the outermost element, or by leaving the cursor
// raw for the parent's child scanner.
func (p *Parser) finishJSX(b *ast.Base, start uint32, inChildren bool) {
	end := p.tok.Span.End
	if inChildren {
		p.prevEnd = end
	} else {
		p.advanceOp() // past `>`
	}
	b.Loc = token.Span{Start: start, End: end}
	b.NodeID = p.newID()
}

// parseJSXChildren scans raw children until the enclosing closing tag.
// Precondition: the lexer cursor sits just past the opening tag's `>`.
// Postcondition: the lookahead token is the `/` of the closing tag.
func (p *Parser) parseJSXChildren() []ast.Node {
	var children []ast.Node
	for {
		t := p.lex.ScanJSXText()
		switch t.Kind {
		case token.JSXText:
			if t.Raw != "" {
				n := arena.Alloc[ast.JSXText](p.arena)
				n.Value = t.Raw
				n.Loc = t.Span
				n.NodeID = p.newID()
				children = append(children, n)
			}
		case token.LAngle:
			// Either a nested element or this element's closing tag.
			p.prevEnd = t.Span.End
			p.tok = t
			// Peek in division context so `</App>` yields `/`, not a regex.
			s := p.lex.Mark()
			next := p.lex.Next(lexer.Context{RegexAllowed: false})
			p.lex.Restore(s)
			if next.Kind == token.Slash {
				p.advanceOp() // prime the `/` as lookahead
				return children
			}
			children = append(children, p.parseJSXElement(true))
		case token.LBrace:
			// Expression container; `{}` and `{/* comment */}` are empty.
			cstart := t.Span.Start
			p.primeFrom(t, true)
			var expr ast.Expression
			if !p.at(token.RBrace) {
				expr = p.parseExpression()
			}
			if !p.at(token.RBrace) {
				p.errorf(p.tok.Span, "expected } closing JSX expression, found %q", p.tok.Kind.String())
				return children
			}
			n := arena.Alloc[ast.JSXExpressionContainer](p.arena)
			n.Expression = expr
			n.Loc = token.Span{Start: cstart, End: p.tok.Span.End}
			n.NodeID = p.newID()
			children = append(children, n)
			// Do not pull a token past `}`: raw text resumes there.
			p.prevEnd = p.tok.Span.End
		case token.EOF:
			p.errorf(t.Span, "unterminated JSX element")
			return children
		}
	}
}

// parseJSXName parses a tag name: identifier with dashes, `ns:name`, or
// dotted member (`<Foo.Bar>`). Dashes arrive as separate Minus tokens;
// adjacency (no gap between spans) distinguishes `data-x` from `data - x`.
func (p *Parser) parseJSXName() ast.Node {
	id := p.parseJSXIdentifier()

	if p.at(token.Colon) && p.tok.Span.Start == p.prevEnd {
		p.advance()
		name := p.parseJSXIdentifier()
		n := arena.Alloc[ast.JSXNamespacedName](p.arena)
		n.Namespace = id
		n.Name = name
		n.Loc = token.Span{Start: id.Loc.Start, End: name.Loc.End}
		n.NodeID = p.newID()
		return n
	}

	var node ast.Node = id
	for p.at(token.Dot) {
		p.advance()
		prop := p.parseJSXIdentifier()
		n := arena.Alloc[ast.JSXMemberExpression](p.arena)
		n.Object = node
		n.Property = prop
		n.Loc = token.Span{Start: node.Span().Start, End: prop.Loc.End}
		n.NodeID = p.newID()
		node = n
	}
	return node
}

func (p *Parser) parseJSXIdentifier() *ast.JSXIdentifier {
	start := p.tok.Span.Start
	name := p.tok.Raw
	if !p.at(token.Identifier) && !isKeywordToken(p.tok.Kind) {
		p.errorf(p.tok.Span, "expected JSX name, found %q", p.tok.Kind.String())
		name = ""
	}
	p.advanceOp()
	// Dashed continuation: `-` then another identifier, all adjacent.
	for p.at(token.Minus) && p.tok.Span.Start == p.prevEnd {
		name += "-"
		p.advanceOp()
		if (p.at(token.Identifier) || isKeywordToken(p.tok.Kind)) && p.tok.Span.Start == p.prevEnd {
			name += p.tok.Raw
			p.advanceOp()
		}
	}
	n := arena.Alloc[ast.JSXIdentifier](p.arena)
	n.Name = name
	n.Loc = token.Span{Start: start, End: p.prevEnd}
	n.NodeID = p.newID()
	return n
}

func (p *Parser) parseJSXAttribute() *ast.JSXAttribute {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.JSXAttribute](p.arena)

	name := p.parseJSXIdentifier()
	if p.at(token.Colon) && p.tok.Span.Start == p.prevEnd {
		p.advance()
		local := p.parseJSXIdentifier()
		ns := arena.Alloc[ast.JSXNamespacedName](p.arena)
		ns.Namespace = name
		ns.Name = local
		ns.Loc = token.Span{Start: name.Loc.Start, End: local.Loc.End}
		ns.NodeID = p.newID()
		n.Name = ns
	} else {
		n.Name = name
	}

	if p.eat(token.Eq) {
		switch p.tok.Kind {
		case token.StringLiteral:
			s := arena.Alloc[ast.StringLiteral](p.arena)
			s.Value = p.tok.Cooked
			s.Raw = p.tok.Raw
			s.Loc = p.tok.Span
			s.NodeID = p.newID()
			n.Value = s
			p.advanceOp()
		case token.LBrace:
			cstart := p.tok.Span.Start
			p.advance()
			expr := p.parseAssignmentExpression()
			if !p.at(token.RBrace) {
				p.errorf(p.tok.Span, "expected } closing JSX attribute value")
			}
			c := arena.Alloc[ast.JSXExpressionContainer](p.arena)
			c.Expression = expr
			c.Loc = token.Span{Start: cstart, End: p.tok.Span.End}
			c.NodeID = p.newID()
			n.Value = c
			p.advanceOp() // past `}`; still inside the tag, tokens resume
		case token.LAngle:
			n.Value = p.parseJSXElement(false)
		default:
			p.errorf(p.tok.Span, "invalid JSX attribute value")
		}
	}
	p.finish(&n.Base, start)
	return n
}
