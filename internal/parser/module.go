package parser

import (
	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

func (p *Parser) parseImportDeclaration() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // import
	n := arena.Alloc[ast.ImportDeclaration](p.arena)

	if p.srcType.TypeScript && p.atIdent("type") {
		// `import type {T} from "m"`; but `import type from "m"` imports
		// a default binding named `type`.
		if k := p.peekKind(); k == token.LBrace || k == token.Star || (k == token.Identifier && !p.peekIsIdent("from")) {
			n.TypeOnly = true
			p.advance()
		}
	}

	if p.at(token.StringLiteral) {
		// Bare side-effect import.
		n.Source = p.parseModuleSource()
		p.semicolon()
		p.finish(&n.Base, start)
		return n
	}

	// Default binding first, if present.
	if p.at(token.Identifier) {
		dstart := p.tok.Span.Start
		local := p.parseBindingIdentifier(false)
		d := arena.Alloc[ast.ImportDefaultSpecifier](p.arena)
		d.Local = local
		p.finish(&d.Base, dstart)
		n.Specifiers = append(n.Specifiers, d)
		if p.at(token.Comma) {
			p.advance()
		}
	}

	switch p.tok.Kind {
	case token.Star:
		sstart := p.tok.Span.Start
		p.advance()
		if !p.atIdent("as") {
			p.errorf(p.tok.Span, "expected `as` after `*` in import")
		} else {
			p.advance()
		}
		local := p.parseBindingIdentifier(false)
		s := arena.Alloc[ast.ImportNamespaceSpecifier](p.arena)
		s.Local = local
		p.finish(&s.Base, sstart)
		n.Specifiers = append(n.Specifiers, s)
	case token.LBrace:
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			n.Specifiers = append(n.Specifiers, p.parseImportSpecifier())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expectClose(token.RBrace)
	}

	if !p.atIdent("from") {
		p.errorf(p.tok.Span, "expected `from` in import declaration")
	} else {
		p.advance()
	}
	n.Source = p.parseModuleSource()
	p.semicolon()
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseImportSpecifier() *ast.ImportSpecifier {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.ImportSpecifier](p.arena)

	var imported ast.Node
	if p.at(token.StringLiteral) {
		s := arena.Alloc[ast.StringLiteral](p.arena)
		s.Value = p.tok.Cooked
		s.Raw = p.tok.Raw
		s.Loc = p.tok.Span
		s.NodeID = p.newID()
		imported = s
		p.advanceOp()
	} else {
		imported = p.parseIdentifierName()
	}
	n.Imported = imported

	if p.atIdent("as") {
		p.advance()
		n.Local = p.parseBindingIdentifier(false)
	} else if name, ok := imported.(*ast.IdentifierName); ok {
		// `{x}` binds x locally; reuse the name for the binding node.
		b := arena.Alloc[ast.BindingIdentifier](p.arena)
		b.Name = name.Name
		b.Loc = name.Loc
		b.NodeID = p.newID()
		n.Local = b
	} else {
		p.errorf(imported.Span(), "string import name requires `as`")
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseModuleSource() *ast.StringLiteral {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.StringLiteral](p.arena)
	if p.at(token.StringLiteral) {
		n.Value = p.tok.Cooked
		n.Raw = p.tok.Raw
		p.advanceOp()
	} else {
		p.errorf(p.tok.Span, "expected module specifier string, found %q", p.tok.Kind.String())
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseExportDeclaration() ast.Statement {
	start := p.tok.Span.Start
	p.advance() // export

	if p.at(token.KeywordDefault) {
		p.advance()
		n := arena.Alloc[ast.ExportDefaultDeclaration](p.arena)
		switch {
		case p.at(token.KeywordFunction):
			n.Declaration = p.parseFunctionDeclaration(false)
		case p.atIdent("async") && p.peekKind() == token.KeywordFunction:
			n.Declaration = p.parseFunctionDeclaration(true)
		case p.at(token.KeywordClass):
			n.Declaration = p.parseClassDeclaration()
		default:
			n.Declaration = p.parseAssignmentExpression()
			p.semicolon()
		}
		p.finish(&n.Base, start)
		return n
	}

	if p.at(token.Star) {
		p.advance()
		n := arena.Alloc[ast.ExportAllDeclaration](p.arena)
		if p.atIdent("as") {
			p.advance()
			n.Exported = p.parseIdentifierName()
		}
		if !p.atIdent("from") {
			p.errorf(p.tok.Span, "expected `from` in export * declaration")
		} else {
			p.advance()
		}
		n.Source = p.parseModuleSource()
		p.semicolon()
		p.finish(&n.Base, start)
		return n
	}

	n := arena.Alloc[ast.ExportNamedDeclaration](p.arena)
	if p.srcType.TypeScript && p.atIdent("type") && p.peekKind() == token.LBrace {
		n.TypeOnly = true
		p.advance()
	}

	if p.at(token.LBrace) {
		p.advance()
		for !p.at(token.RBrace) && !p.at(token.EOF) {
			n.Specifiers = append(n.Specifiers, p.parseExportSpecifier())
			if !p.eat(token.Comma) {
				break
			}
		}
		p.expectClose(token.RBrace)
		if p.atIdent("from") {
			p.advance()
			n.Source = p.parseModuleSource()
		}
		p.semicolon()
		p.finish(&n.Base, start)
		return n
	}

	// `export <declaration>`.
	n.Declaration = p.parseStatement()
	switch n.Declaration.(type) {
	case *ast.VariableDeclaration, *ast.FunctionDeclaration, *ast.ClassDeclaration,
		*ast.TSEnumDeclaration, *ast.TSInterfaceDeclaration,
		*ast.TSTypeAliasDeclaration, *ast.TSModuleDeclaration:
	default:
		p.errorf(n.Declaration.Span(), "cannot export this statement")
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseExportSpecifier() *ast.ExportSpecifier {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.ExportSpecifier](p.arena)

	// The local side of `export {x}` is a reference to an existing
	// binding, resolved by the semantic pass like any other use site.
	lstart := p.tok.Span.Start
	lname := p.tok.Raw
	if !p.at(token.Identifier) && !isKeywordToken(p.tok.Kind) && !p.at(token.StringLiteral) {
		p.errorf(p.tok.Span, "expected export name, found %q", p.tok.Kind.String())
	}
	if p.at(token.StringLiteral) {
		s := arena.Alloc[ast.StringLiteral](p.arena)
		s.Value = p.tok.Cooked
		s.Raw = p.tok.Raw
		s.Loc = p.tok.Span
		s.NodeID = p.newID()
		n.Local = s
		p.advanceOp()
	} else {
		p.advanceOp()
		ref := arena.Alloc[ast.IdentifierReference](p.arena)
		ref.Name = lname
		ref.Loc = token.Span{Start: lstart, End: p.prevEnd}
		ref.NodeID = p.newID()
		n.Local = ref
	}

	if p.atIdent("as") {
		p.advance()
		if p.at(token.StringLiteral) {
			s := arena.Alloc[ast.StringLiteral](p.arena)
			s.Value = p.tok.Cooked
			s.Raw = p.tok.Raw
			s.Loc = p.tok.Span
			s.NodeID = p.newID()
			n.Exported = s
			p.advanceOp()
		} else {
			n.Exported = p.parseIdentifierName()
		}
	} else {
		n.Exported = n.Local
	}
	p.finish(&n.Base, start)
	return n
}
