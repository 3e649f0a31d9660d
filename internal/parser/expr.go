package parser

import (
	"strconv"
	"strings"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/lexer"
	"github.com/oxhq/jscore/internal/token"
)

// parserState is a full parse checkpoint: lexer position plus the
// one-token lookahead and the error count, so a failed speculative parse
// leaves no trace.
type parserState struct {
	lex     lexer.State
	tok     token.Token
	prevEnd uint32
	errs    int
}

func (p *Parser) mark() parserState {
	return parserState{lex: p.lex.Mark(), tok: p.tok, prevEnd: p.prevEnd, errs: len(p.errors)}
}

func (p *Parser) restore(s parserState) {
	p.lex.Restore(s.lex)
	p.tok = s.tok
	p.prevEnd = s.prevEnd
	p.errors = p.errors[:s.errs]
}

// parseExpression parses a full (possibly comma-sequenced) expression.
func (p *Parser) parseExpression() ast.Expression {
	start := p.tok.Span.Start
	first := p.parseAssignmentExpression()
	if !p.at(token.Comma) {
		return first
	}
	exprs := []ast.Expression{first}
	for p.eat(token.Comma) {
		exprs = append(exprs, p.parseAssignmentExpression())
	}
	n := arena.Alloc[ast.SequenceExpression](p.arena)
	n.Expressions = exprs
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseAssignmentExpression() ast.Expression {
	start := p.tok.Span.Start

	if p.allowYield && p.at(token.KeywordYield) {
		return p.parseYieldExpression()
	}

	// Arrow-function heads. A single identifier followed by `=>` is the
	// easy case; parenthesized heads and `async` heads go through a
	// speculative parse that is fully rewound on failure (the cover-grammar
	// strategy: the paren contents re-parse as an expression).
	switch {
	case p.at(token.Identifier) && p.tok.Raw == "async" && !p.peekHasLineBreak():
		if arrow := p.tryParseArrow(true); arrow != nil {
			return arrow
		}
	case p.at(token.Identifier) || p.at(token.LParen):
		if arrow := p.tryParseArrow(false); arrow != nil {
			return arrow
		}
	case p.srcType.TypeScript && p.at(token.LAngle):
		if arrow := p.tryParseGenericArrow(); arrow != nil {
			return arrow
		}
	}

	left := p.parseConditionalExpression()

	if isAssignmentOp(p.tok.Kind) {
		op := p.tok.Kind
		opSpan := p.tok.Span
		p.advance()
		var target ast.Node = left
		if op == token.Eq {
			if pat, ok := p.exprToPattern(left); ok {
				target = pat
			} else {
				p.errorf(left.Span(), "invalid assignment target")
			}
		} else if !isSimpleAssignmentTarget(left) {
			p.errorf(opSpan, "invalid target for compound assignment")
		}
		value := p.parseAssignmentExpression()
		n := arena.Alloc[ast.AssignmentExpression](p.arena)
		n.Op = op
		n.Target = target
		n.Value = value
		p.finish(&n.Base, start)
		return n
	}
	return left
}

func isAssignmentOp(k token.Kind) bool {
	switch k {
	case token.Eq, token.PlusEq, token.MinusEq, token.StarEq, token.SlashEq,
		token.PercentEq, token.StarStarEq, token.LShiftEq, token.RShiftEq,
		token.URShiftEq, token.AmpEq, token.PipeEq, token.CaretEq,
		token.AmpAmpEq, token.PipePipeEq, token.QQEq:
		return true
	}
	return false
}

// isSimpleAssignmentTarget: compound assignment requires an identifier or
// member expression, never a destructuring pattern.
func isSimpleAssignmentTarget(e ast.Expression) bool {
	switch t := e.(type) {
	case *ast.IdentifierReference, *ast.MemberExpression:
		return true
	case *ast.ParenthesizedExpression:
		return isSimpleAssignmentTarget(t.Expression)
	}
	return false
}

func (p *Parser) parseYieldExpression() ast.Expression {
	start := p.tok.Span.Start
	p.advance() // yield
	n := arena.Alloc[ast.YieldExpression](p.arena)
	if p.at(token.Star) && !p.tok.HasLineBreakBefore {
		n.Delegate = true
		p.advance()
		n.Argument = p.parseAssignmentExpression()
	} else if !p.tok.HasLineBreakBefore && startsExpression(p.tok.Kind) {
		n.Argument = p.parseAssignmentExpression()
	}
	p.finish(&n.Base, start)
	return n
}

// startsExpression is the token-set check behind yield's optional operand
// and similar "is an expression next?" decisions.
func startsExpression(k token.Kind) bool {
	switch k {
	case token.Semicolon, token.RBrace, token.RParen, token.RBracket,
		token.Comma, token.Colon, token.EOF:
		return false
	}
	return true
}

func (p *Parser) parseConditionalExpression() ast.Expression {
	start := p.tok.Span.Start
	test := p.parseBinaryExpression(1)
	if !p.at(token.Question) {
		return test
	}
	p.advance()
	cons := p.parseAssignmentExpression()
	p.expect(token.Colon)
	alt := p.parseAssignmentExpression()
	n := arena.Alloc[ast.ConditionalExpression](p.arena)
	n.Test = test
	n.Consequent = cons
	n.Alternate = alt
	p.finish(&n.Base, start)
	return n
}

// binaryPrec returns the binding power of a binary/logical operator token,
// or 0 if the token is not one. `in` is suppressed inside for-statement
// headers (p.noIn).
func (p *Parser) binaryPrec(k token.Kind) int {
	switch k {
	case token.QQ, token.PipePipe:
		return 1
	case token.AmpAmp:
		return 2
	case token.Pipe:
		return 3
	case token.Caret:
		return 4
	case token.Amp:
		return 5
	case token.EqEq, token.NotEq, token.EqEqEq, token.NotEqEq:
		return 6
	case token.LAngle, token.RAngle, token.LtEq, token.GtEq, token.KeywordInstanceof:
		return 7
	case token.KeywordIn:
		if p.noIn {
			return 0
		}
		return 7
	case token.LShift, token.RShift, token.URShift:
		return 8
	case token.Plus, token.Minus:
		return 9
	case token.Star, token.Slash, token.Percent:
		return 10
	case token.StarStar:
		return 11
	}
	return 0
}

func isLogicalOp(k token.Kind) bool {
	return k == token.AmpAmp || k == token.PipePipe || k == token.QQ
}

// parseBinaryExpression is standard precedence climbing. `**` is
// right-associative; everything else left.
func (p *Parser) parseBinaryExpression(minPrec int) ast.Expression {
	start := p.tok.Span.Start
	left := p.parseUnaryExpression()

	for {
		// TS `as` / `satisfies` bind looser than any arithmetic but tighter
		// than conditional (the relational level, 7); they cannot start a
		// new line's operator.
		if minPrec <= 7 && p.srcType.TypeScript && p.at(token.Identifier) && !p.tok.HasLineBreakBefore &&
			(p.tok.Raw == "as" || p.tok.Raw == "satisfies") {
			isAs := p.tok.Raw == "as"
			p.advance()
			t := p.parseType()
			if isAs {
				n := arena.Alloc[ast.TSAsExpression](p.arena)
				n.Expression = left
				n.Type = t
				p.finish(&n.Base, start)
				left = n
			} else {
				n := arena.Alloc[ast.TSSatisfiesExpression](p.arena)
				n.Expression = left
				n.Type = t
				p.finish(&n.Base, start)
				left = n
			}
			continue
		}

		prec := p.binaryPrec(p.tok.Kind)
		if prec == 0 || prec < minPrec {
			return left
		}
		op := p.tok.Kind
		p.advance()

		nextMin := prec + 1
		if op == token.StarStar {
			nextMin = prec // right-associative
		}
		right := p.parseBinaryExpression(nextMin)

		if isLogicalOp(op) {
			n := arena.Alloc[ast.LogicalExpression](p.arena)
			n.Op = op
			n.Left = left
			n.Right = right
			p.finish(&n.Base, start)
			left = n
		} else {
			n := arena.Alloc[ast.BinaryExpression](p.arena)
			n.Op = op
			n.Left = left
			n.Right = right
			p.finish(&n.Base, start)
			left = n
		}
	}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Bang, token.Tilde, token.Plus, token.Minus,
		token.KeywordTypeof, token.KeywordVoid, token.KeywordDelete:
		op := p.tok.Kind
		p.advance()
		arg := p.parseUnaryExpression()
		n := arena.Alloc[ast.UnaryExpression](p.arena)
		n.Op = op
		n.Argument = arg
		p.finish(&n.Base, start)
		return n
	case token.PlusPlus, token.MinusMinus:
		op := p.tok.Kind
		p.advance()
		arg := p.parseUnaryExpression()
		if !isSimpleAssignmentTarget(arg) {
			p.errorf(arg.Span(), "invalid update target")
		}
		n := arena.Alloc[ast.UpdateExpression](p.arena)
		n.Op = op
		n.Prefix = true
		n.Argument = arg
		p.finish(&n.Base, start)
		return n
	case token.Identifier:
		if p.tok.Raw == "await" && p.allowAwait {
			p.advance()
			arg := p.parseUnaryExpression()
			n := arena.Alloc[ast.AwaitExpression](p.arena)
			n.Argument = arg
			p.finish(&n.Base, start)
			return n
		}
	}

	expr := p.parseLeftHandSideExpression()

	// Postfix update cannot be separated from its operand by a newline.
	if (p.at(token.PlusPlus) || p.at(token.MinusMinus)) && !p.tok.HasLineBreakBefore {
		op := p.tok.Kind
		p.advanceOp()
		if !isSimpleAssignmentTarget(expr) {
			p.errorf(expr.Span(), "invalid update target")
		}
		n := arena.Alloc[ast.UpdateExpression](p.arena)
		n.Op = op
		n.Prefix = false
		n.Argument = expr
		p.finish(&n.Base, start)
		return n
	}
	return expr
}

func (p *Parser) parseLeftHandSideExpression() ast.Expression {
	start := p.tok.Span.Start
	var expr ast.Expression
	if p.at(token.KeywordNew) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	expr, optional := p.parseCallTail(expr, start)
	if optional {
		n := arena.Alloc[ast.ChainExpression](p.arena)
		n.Expression = expr
		p.finish(&n.Base, start)
		return n
	}
	return expr
}

// parseCallTail parses the member/call/template chain following a primary
// expression; reports whether the chain contained an optional link (so the
// caller can wrap it in a ChainExpression).
func (p *Parser) parseCallTail(expr ast.Expression, start uint32) (ast.Expression, bool) {
	optional := false
	for {
		switch p.tok.Kind {
		case token.Dot:
			p.advance()
			prop := p.parseMemberProperty()
			n := arena.Alloc[ast.MemberExpression](p.arena)
			n.Object = expr
			n.Property = prop
			p.finish(&n.Base, start)
			expr = n
		case token.QDot:
			optional = true
			p.advance()
			switch p.tok.Kind {
			case token.LParen:
				args := p.parseArguments()
				n := arena.Alloc[ast.CallExpression](p.arena)
				n.Callee = expr
				n.Arguments = args
				n.Optional = true
				p.finish(&n.Base, start)
				expr = n
			case token.LBracket:
				p.advance()
				idx := p.parseExpression()
				p.expectClose(token.RBracket)
				n := arena.Alloc[ast.MemberExpression](p.arena)
				n.Object = expr
				n.Property = idx
				n.Computed = true
				n.Optional = true
				p.finish(&n.Base, start)
				expr = n
			default:
				prop := p.parseMemberProperty()
				n := arena.Alloc[ast.MemberExpression](p.arena)
				n.Object = expr
				n.Property = prop
				n.Optional = true
				p.finish(&n.Base, start)
				expr = n
			}
		case token.LBracket:
			p.advance()
			idx := p.parseExpression()
			p.expectClose(token.RBracket)
			n := arena.Alloc[ast.MemberExpression](p.arena)
			n.Object = expr
			n.Property = idx
			n.Computed = true
			p.finish(&n.Base, start)
			expr = n
		case token.LParen:
			args := p.parseArguments()
			n := arena.Alloc[ast.CallExpression](p.arena)
			n.Callee = expr
			n.Arguments = args
			p.finish(&n.Base, start)
			expr = n
		case token.NoSubstitutionTemplate, token.TemplateHead:
			quasi := p.parseTemplateLiteral()
			n := arena.Alloc[ast.TaggedTemplateExpression](p.arena)
			n.Tag = expr
			n.Quasi = quasi
			p.finish(&n.Base, start)
			expr = n
		case token.Bang:
			// TS non-null assertion, postfix, same line only.
			if !p.srcType.TypeScript || p.tok.HasLineBreakBefore {
				return expr, optional
			}
			p.advanceOp()
			n := arena.Alloc[ast.TSNonNullExpression](p.arena)
			n.Expression = expr
			p.finish(&n.Base, start)
			expr = n
		case token.LAngle:
			// Possible explicit type arguments on a call: `f<T>(x)`.
			if !p.srcType.TypeScript {
				return expr, optional
			}
			s := p.mark()
			typeArgs, ok := p.tryParseTypeArguments()
			if !ok || !p.at(token.LParen) {
				p.restore(s)
				return expr, optional
			}
			args := p.parseArguments()
			n := arena.Alloc[ast.CallExpression](p.arena)
			n.Callee = expr
			n.TypeArguments = typeArgs
			n.Arguments = args
			p.finish(&n.Base, start)
			expr = n
		default:
			return expr, optional
		}
	}
}

// parseMemberProperty parses the name after `.` or `?.`: an identifier
// name (keywords allowed) or a private identifier.
func (p *Parser) parseMemberProperty() ast.Node {
	if p.at(token.PrivateIdentifier) {
		start := p.tok.Span.Start
		name := p.tok.Raw
		p.advanceOp()
		n := arena.Alloc[ast.PrivateIdentifier](p.arena)
		n.Name = name
		p.finish(&n.Base, start)
		return n
	}
	return p.parseIdentifierName()
}

func (p *Parser) parseNewExpression() ast.Expression {
	start := p.tok.Span.Start
	p.advance() // new
	if p.at(token.Dot) {
		// new.target: modeled as a member expression on an identifier
		// reference named "new" is wrong; keep it a MemberExpression with an
		// IdentifierName object is worse. Use IdentifierReference "new.target"
		// spans the whole thing: simplest faithful-enough shape.
		p.advance()
		meta := p.parseIdentifierName()
		if meta.Name != "target" {
			p.errorf(meta.Span(), "expected new.target")
		}
		n := arena.Alloc[ast.IdentifierReference](p.arena)
		n.Name = "new.target"
		p.finish(&n.Base, start)
		return n
	}

	var callee ast.Expression
	if p.at(token.KeywordNew) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimaryExpression()
	}
	// Member accesses bind to the callee before the argument list does.
	for {
		if p.at(token.Dot) {
			mstart := callee.Span().Start
			p.advance()
			prop := p.parseMemberProperty()
			m := arena.Alloc[ast.MemberExpression](p.arena)
			m.Object = callee
			m.Property = prop
			p.finish(&m.Base, mstart)
			callee = m
			continue
		}
		if p.at(token.LBracket) {
			mstart := callee.Span().Start
			p.advance()
			idx := p.parseExpression()
			p.expectClose(token.RBracket)
			m := arena.Alloc[ast.MemberExpression](p.arena)
			m.Object = callee
			m.Property = idx
			m.Computed = true
			p.finish(&m.Base, mstart)
			callee = m
			continue
		}
		break
	}

	n := arena.Alloc[ast.NewExpression](p.arena)
	n.Callee = callee
	if p.srcType.TypeScript && p.at(token.LAngle) {
		s := p.mark()
		typeArgs, ok := p.tryParseTypeArguments()
		if ok && p.at(token.LParen) {
			n.TypeArguments = typeArgs
		} else {
			p.restore(s)
		}
	}
	if p.at(token.LParen) {
		n.Arguments = p.parseArguments()
	}
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseArguments() []ast.Expression {
	p.expect(token.LParen)
	var args []ast.Expression
	for !p.at(token.RParen) && !p.at(token.EOF) {
		if p.at(token.DotDotDot) {
			sstart := p.tok.Span.Start
			p.advance()
			arg := p.parseAssignmentExpression()
			s := arena.Alloc[ast.SpreadElement](p.arena)
			s.Argument = arg
			p.finish(&s.Base, sstart)
			args = append(args, s)
		} else {
			args = append(args, p.parseAssignmentExpression())
		}
		if !p.eat(token.Comma) {
			break
		}
	}
	p.expectClose(token.RParen)
	return args
}

func (p *Parser) parsePrimaryExpression() ast.Expression {
	start := p.tok.Span.Start
	switch p.tok.Kind {
	case token.Identifier:
		if p.tok.Raw == "async" && !p.peekHasLineBreak() && p.peekKind() == token.KeywordFunction {
			return p.parseFunctionExpression(true)
		}
		name := p.tok.Raw
		p.advanceOp()
		n := arena.Alloc[ast.IdentifierReference](p.arena)
		n.Name = name
		p.finish(&n.Base, start)
		return n
	case token.KeywordThis:
		p.advanceOp()
		n := arena.Alloc[ast.ThisExpression](p.arena)
		p.finish(&n.Base, start)
		return n
	case token.KeywordSuper:
		p.advanceOp()
		n := arena.Alloc[ast.Super](p.arena)
		p.finish(&n.Base, start)
		return n
	case token.KeywordTrue, token.KeywordFalse:
		val := p.at(token.KeywordTrue)
		p.advanceOp()
		n := arena.Alloc[ast.BooleanLiteral](p.arena)
		n.Value = val
		p.finish(&n.Base, start)
		return n
	case token.KeywordNull:
		p.advanceOp()
		n := arena.Alloc[ast.NullLiteral](p.arena)
		p.finish(&n.Base, start)
		return n
	case token.NumericLiteral:
		raw := p.tok.Raw
		flags := p.tok.NumberFlags
		val := parseNumericValue(raw, flags)
		p.advanceOp()
		n := arena.Alloc[ast.NumericLiteral](p.arena)
		n.Value = val
		n.Raw = raw
		n.Flags = flags
		p.finish(&n.Base, start)
		return n
	case token.BigIntLiteral:
		raw := p.tok.Raw
		p.advanceOp()
		n := arena.Alloc[ast.BigIntLiteral](p.arena)
		n.Raw = raw
		p.finish(&n.Base, start)
		return n
	case token.StringLiteral:
		raw, cooked := p.tok.Raw, p.tok.Cooked
		p.advanceOp()
		n := arena.Alloc[ast.StringLiteral](p.arena)
		n.Value = cooked
		n.Raw = raw
		p.finish(&n.Base, start)
		return n
	case token.RegularExpressionLiteral:
		raw := p.tok.Raw
		p.advanceOp()
		n := arena.Alloc[ast.RegExpLiteral](p.arena)
		n.Pattern, n.RegexFlags = splitRegex(raw)
		p.finish(&n.Base, start)
		return n
	case token.NoSubstitutionTemplate, token.TemplateHead:
		return p.parseTemplateLiteral()
	case token.LBracket:
		return p.parseArrayExpression()
	case token.LBrace:
		return p.parseObjectExpression()
	case token.LParen:
		return p.parseParenthesizedExpression()
	case token.KeywordFunction:
		return p.parseFunctionExpression(false)
	case token.KeywordClass:
		return p.parseClassExpression()
	case token.KeywordImport:
		// import(...) dynamic import and import.meta; both are shaped as
		// call/member on an identifier reference named "import".
		p.advanceOp()
		n := arena.Alloc[ast.IdentifierReference](p.arena)
		n.Name = "import"
		p.finish(&n.Base, start)
		return n
	case token.LAngle:
		if p.srcType.JSX {
			return p.parseJSXElementOrFragment()
		}
	case token.PrivateIdentifier:
		// `#x in obj` brand checks: modeled as an identifier reference
		// carrying the hash name, since PrivateIdentifier is not an
		// Expression.
		name := p.tok.Raw
		p.advanceOp()
		ref := arena.Alloc[ast.IdentifierReference](p.arena)
		ref.Name = name
		p.finish(&ref.Base, start)
		return ref
	}
	p.errorf(p.tok.Span, "unexpected token %q", p.tok.Kind.String())
	// Produce an error placeholder and advance so the parse makes progress.
	p.advance()
	n := arena.Alloc[ast.IdentifierReference](p.arena)
	n.Name = ""
	p.finish(&n.Base, start)
	return n
}

func parseNumericValue(raw string, flags token.NumberFlags) float64 {
	clean := strings.ReplaceAll(raw, "_", "")
	switch flags {
	case token.NumberHex:
		v, _ := strconv.ParseUint(clean[2:], 16, 64)
		return float64(v)
	case token.NumberOctal:
		v, _ := strconv.ParseUint(clean[2:], 8, 64)
		return float64(v)
	case token.NumberBinary:
		v, _ := strconv.ParseUint(clean[2:], 2, 64)
		return float64(v)
	case token.NumberLegacyOctal:
		v, _ := strconv.ParseUint(clean[1:], 8, 64)
		return float64(v)
	}
	v, _ := strconv.ParseFloat(clean, 64)
	return v
}

func splitRegex(raw string) (pattern, flags string) {
	end := strings.LastIndexByte(raw, '/')
	if end <= 0 {
		return raw, ""
	}
	return raw[1:end], raw[end+1:]
}

func (p *Parser) parseTemplateLiteral() *ast.TemplateLiteral {
	start := p.tok.Span.Start
	n := arena.Alloc[ast.TemplateLiteral](p.arena)

	makeElement := func(t token.Token, tail bool) *ast.TemplateElement {
		e := arena.Alloc[ast.TemplateElement](p.arena)
		e.Raw = trimQuasi(t)
		e.Cooked = t.Cooked
		e.CookedValid = t.CookedValid
		e.Tail = tail
		e.Loc = t.Span
		e.NodeID = p.newID()
		return e
	}

	if p.at(token.NoSubstitutionTemplate) {
		n.Quasis = []*ast.TemplateElement{makeElement(p.tok, true)}
		p.advanceOp()
		p.finish(&n.Base, start)
		return n
	}

	// Head, then alternate expression / middle until the tail.
	n.Quasis = append(n.Quasis, makeElement(p.tok, false))
	p.advance() // past the head; an expression follows
	for {
		n.Expressions = append(n.Expressions, p.parseExpression())
		if !p.at(token.RBrace) {
			p.errorf(p.tok.Span, "expected } closing template substitution, found %q", p.tok.Kind.String())
			break
		}
		// The parser owns brace matching; hand control back to the lexer to
		// resume the template from this brace.
		braceStart := p.tok.Span.Start
		cont := p.lex.ResumeTemplate(braceStart)
		tail := cont.Kind == token.TemplateTail
		n.Quasis = append(n.Quasis, makeElement(cont, tail))
		if tail {
			p.primeFrom(cont, false)
			break
		}
		p.primeFrom(cont, true) // expression of the next substitution
	}
	p.finish(&n.Base, start)
	return n
}

// primeFrom re-primes the lookahead after a token obtained outside the
// normal Next flow (template continuations).
func (p *Parser) primeFrom(t token.Token, regexOK bool) {
	p.prevEnd = t.Span.End
	p.tok = p.lex.Next(lexer.Context{RegexAllowed: regexOK})
}

// trimQuasi strips the template delimiters off a quasi token's raw text:
// the backtick or `}` at the front, the backtick or `${` at the back.
func trimQuasi(t token.Token) string {
	raw := t.Raw
	if len(raw) > 0 && (raw[0] == '`' || raw[0] == '}') {
		raw = raw[1:]
	}
	switch t.Kind {
	case token.TemplateHead, token.TemplateMiddle:
		if len(raw) >= 2 {
			raw = raw[:len(raw)-2] // "${"
		}
	default:
		if len(raw) >= 1 {
			raw = raw[:len(raw)-1] // "`"
		}
	}
	return raw
}

func (p *Parser) parseArrayExpression() ast.Expression {
	start := p.tok.Span.Start
	p.expect(token.LBracket)
	var elems []ast.Expression
	for !p.at(token.RBracket) && !p.at(token.EOF) {
		if p.at(token.Comma) {
			elems = append(elems, nil) // elision
			p.advance()
			continue
		}
		if p.at(token.DotDotDot) {
			sstart := p.tok.Span.Start
			p.advance()
			arg := p.parseAssignmentExpression()
			s := arena.Alloc[ast.SpreadElement](p.arena)
			s.Argument = arg
			p.finish(&s.Base, sstart)
			elems = append(elems, s)
		} else {
			elems = append(elems, p.parseAssignmentExpression())
		}
		if !p.at(token.RBracket) {
			p.expect(token.Comma)
		}
	}
	p.expectClose(token.RBracket)
	n := arena.Alloc[ast.ArrayExpression](p.arena)
	n.Elements = elems
	p.finish(&n.Base, start)
	return n
}

func (p *Parser) parseParenthesizedExpression() ast.Expression {
	start := p.tok.Span.Start
	p.expect(token.LParen)
	expr := p.parseExpression()
	p.expectClose(token.RParen)
	n := arena.Alloc[ast.ParenthesizedExpression](p.arena)
	n.Expression = expr
	p.finish(&n.Base, start)
	return n
}
