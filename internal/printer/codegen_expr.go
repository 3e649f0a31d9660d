package printer

import (
	"strconv"

	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/token"
)

func (g *generator) expr(e ast.Expression) Doc {
	switch t := e.(type) {
	case *ast.IdentifierReference:
		return text(t.Name)
	case *ast.ThisExpression:
		return text("this")
	case *ast.Super:
		return text("super")
	case *ast.NullLiteral:
		return text("null")
	case *ast.BooleanLiteral:
		if t.Value {
			return text("true")
		}
		return text("false")
	case *ast.NumericLiteral:
		if t.Raw != "" {
			return text(t.Raw)
		}
		return text(formatNumber(t.Value))
	case *ast.BigIntLiteral:
		return text(t.Raw)
	case *ast.StringLiteral:
		return text(g.quote(t.Value, false))
	case *ast.RegExpLiteral:
		return text("/" + t.Pattern + "/" + t.RegexFlags)

	case *ast.TemplateLiteral:
		return g.template(t)
	case *ast.TaggedTemplateExpression:
		return concat(g.expr(t.Tag), g.template(t.Quasi))

	case *ast.ArrayExpression:
		var items []Doc
		for _, el := range t.Elements {
			if el == nil {
				items = append(items, text(""))
				continue
			}
			items = append(items, g.expr(el))
		}
		return g.listDoc("[", "]", items, g.trailingComma("array"), false)

	case *ast.ObjectExpression:
		if len(t.Properties) == 0 {
			return text("{}")
		}
		var items []Doc
		for _, m := range t.Properties {
			items = append(items, g.objectMember(m))
		}
		return g.listDoc("{", "}", items, g.trailingComma("object"), g.opts.BracketSpacing)

	case *ast.SpreadElement:
		return concat(text("..."), g.expr(t.Argument))

	case *ast.UnaryExpression:
		op := t.Op.String()
		sep := ""
		if t.Op == token.KeywordTypeof || t.Op == token.KeywordVoid || t.Op == token.KeywordDelete {
			sep = " "
		}
		return concat(text(op), text(sep), g.expr(t.Argument))

	case *ast.UpdateExpression:
		if t.Prefix {
			return concat(text(t.Op.String()), g.expr(t.Argument))
		}
		return concat(g.expr(t.Argument), text(t.Op.String()))

	case *ast.BinaryExpression:
		return group(g.expr(t.Left), text(" "+t.Op.String()), indent(line(), g.expr(t.Right)))
	case *ast.LogicalExpression:
		return group(g.expr(t.Left), text(" "+t.Op.String()), indent(line(), g.expr(t.Right)))

	case *ast.AssignmentExpression:
		var target Doc
		switch tg := t.Target.(type) {
		case ast.Pattern:
			target = g.pattern(tg)
		case ast.Expression:
			target = g.expr(tg)
		}
		return group(target, text(" "+t.Op.String()), indent(line(), g.expr(t.Value)))

	case *ast.ConditionalExpression:
		return group(
			g.expr(t.Test),
			indent(
				line(), text("? "), g.expr(t.Consequent),
				line(), text(": "), g.expr(t.Alternate),
			),
		)

	case *ast.CallExpression:
		doc := g.expr(t.Callee)
		if t.Optional {
			doc = concat(doc, text("?."))
		}
		if len(t.TypeArguments) > 0 {
			doc = concat(doc, g.typeArgs(t.TypeArguments))
		}
		return concat(doc, g.argsDoc(t.Arguments))

	case *ast.NewExpression:
		doc := concat(text("new "), g.expr(t.Callee))
		if len(t.TypeArguments) > 0 {
			doc = concat(doc, g.typeArgs(t.TypeArguments))
		}
		return concat(doc, g.argsDoc(t.Arguments))

	case *ast.MemberExpression:
		doc := g.expr(t.Object)
		if t.Computed {
			open := "["
			if t.Optional {
				open = "?.["
			}
			var prop Doc
			if p, ok := t.Property.(ast.Expression); ok {
				prop = g.expr(p)
			}
			return concat(doc, text(open), prop, text("]"))
		}
		dot := "."
		if t.Optional {
			dot = "?."
		}
		switch p := t.Property.(type) {
		case *ast.IdentifierName:
			return concat(doc, text(dot), text(p.Name))
		case *ast.PrivateIdentifier:
			return concat(doc, text(dot), text(p.Name))
		}
		return doc

	case *ast.ChainExpression:
		return g.expr(t.Expression)

	case *ast.SequenceExpression:
		var items []Doc
		for _, inner := range t.Expressions {
			items = append(items, g.expr(inner))
		}
		return join(text(", "), items)

	case *ast.YieldExpression:
		kw := "yield"
		if t.Delegate {
			kw = "yield*"
		}
		if t.Argument == nil {
			return text(kw)
		}
		return concat(text(kw+" "), g.expr(t.Argument))

	case *ast.AwaitExpression:
		return concat(text("await "), g.expr(t.Argument))

	case *ast.ParenthesizedExpression:
		return concat(text("("), g.expr(t.Expression), text(")"))

	case *ast.ArrowFunctionExpression:
		return g.arrowDoc(t)

	case *ast.FunctionExpression:
		return g.functionDoc("function", t.Name, t.FunctionParts)

	case *ast.ClassExpression:
		return g.classDoc(t.Name, t.SuperClass, t.ClassBody)

	case *ast.TSAsExpression:
		return concat(g.expr(t.Expression), text(" as "), g.tsType(t.Type))
	case *ast.TSSatisfiesExpression:
		return concat(g.expr(t.Expression), text(" satisfies "), g.tsType(t.Type))
	case *ast.TSNonNullExpression:
		return concat(g.expr(t.Expression), text("!"))

	case *ast.JSXElement:
		return g.jsxElement(t)
	case *ast.JSXFragment:
		return g.jsxFragment(t)
	}
	return text("")
}

// formatNumber prints the shortest roundtripping decimal form; synthetic
// literals created by transforms have no Raw spelling to reuse.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func (g *generator) argsDoc(args []ast.Expression) Doc {
	var items []Doc
	for _, a := range args {
		items = append(items, g.expr(a))
	}
	return g.listDoc("(", ")", items, g.trailingComma("args"), false)
}

func (g *generator) arrowDoc(t *ast.ArrowFunctionExpression) Doc {
	var parts []Doc
	if t.Async {
		parts = append(parts, text("async "))
	}
	if t.TypeParameters != nil {
		parts = append(parts, g.typeParams(t.TypeParameters))
	}

	// A single plain identifier parameter may drop its parens.
	single := len(t.Params) == 1
	var soleIdent *ast.BindingIdentifier
	if single {
		if id, ok := t.Params[0].(*ast.BindingIdentifier); ok && id.TypeAnnotation == nil && !id.Optional {
			soleIdent = id
		}
	}
	if soleIdent != nil && !g.opts.ArrowParensAlways && t.ReturnType == nil {
		parts = append(parts, text(soleIdent.Name))
	} else {
		parts = append(parts, g.paramsDoc(t.Params))
	}
	if t.ReturnType != nil {
		parts = append(parts, text(": "), g.tsType(t.ReturnType.Type))
	}
	parts = append(parts, text(" => "))

	switch body := t.Body.(type) {
	case *ast.BlockStatement:
		parts = append(parts, g.block(body.Body))
	case ast.Expression:
		// Concise object bodies need parens to not parse as a block.
		if _, isObj := body.(*ast.ObjectExpression); isObj {
			parts = append(parts, text("("), g.expr(body), text(")"))
		} else {
			parts = append(parts, group(indent(softline(), g.expr(body))))
		}
	}
	return concat(parts...)
}

func (g *generator) objectMember(m ast.ObjectMember) Doc {
	switch t := m.(type) {
	case *ast.SpreadElement:
		return concat(text("..."), g.expr(t.Argument))
	case *ast.ObjectProperty:
		if t.Shorthand {
			return g.expr(t.Value)
		}
		if t.Method || t.PropKind != ast.PropertyInit {
			fn, ok := t.Value.(*ast.FunctionExpression)
			if !ok {
				break
			}
			var parts []Doc
			if fn.Async {
				parts = append(parts, text("async "))
			}
			if fn.Generator {
				parts = append(parts, text("*"))
			}
			switch t.PropKind {
			case ast.PropertyGet:
				parts = append(parts, text("get "))
			case ast.PropertySet:
				parts = append(parts, text("set "))
			}
			parts = append(parts, g.propertyKey(t.Key, t.Computed), g.paramsDoc(fn.Params), text(" "))
			if fn.Body != nil {
				parts = append(parts, g.block(fn.Body.Body))
			} else {
				parts = append(parts, text("{}"))
			}
			return concat(parts...)
		}
		return group(g.propertyKey(t.Key, t.Computed), text(": "), g.expr(t.Value))
	}
	return text("")
}

func (g *generator) template(t *ast.TemplateLiteral) Doc {
	var parts []Doc
	parts = append(parts, text("`"))
	for i, q := range t.Quasis {
		parts = append(parts, text(q.Raw))
		if i < len(t.Expressions) {
			parts = append(parts, text("${"), g.expr(t.Expressions[i]), text("}"))
		}
	}
	parts = append(parts, text("`"))
	return concat(parts...)
}

func (g *generator) pattern(p ast.Pattern) Doc {
	switch t := p.(type) {
	case *ast.BindingIdentifier:
		doc := text(t.Name)
		if t.Optional {
			doc = concat(doc, text("?"))
		}
		if t.TypeAnnotation != nil {
			doc = concat(doc, text(": "), g.tsType(t.TypeAnnotation.Type))
		}
		return doc
	case *ast.ArrayPattern:
		var items []Doc
		for _, el := range t.Elements {
			if el == nil {
				items = append(items, text(""))
				continue
			}
			items = append(items, g.pattern(el))
		}
		doc := g.listDoc("[", "]", items, text(""), false)
		if t.TypeAnnotation != nil {
			doc = concat(doc, text(": "), g.tsType(t.TypeAnnotation.Type))
		}
		return doc
	case *ast.ObjectPattern:
		var items []Doc
		for _, pr := range t.Properties {
			if pr.Shorthand {
				items = append(items, g.pattern(pr.Value))
				continue
			}
			items = append(items, concat(g.propertyKey(pr.Key, pr.Computed), text(": "), g.pattern(pr.Value)))
		}
		if t.Rest != nil {
			items = append(items, concat(text("..."), g.pattern(t.Rest.Argument)))
		}
		doc := g.listDoc("{", "}", items, text(""), g.opts.BracketSpacing)
		if t.TypeAnnotation != nil {
			doc = concat(doc, text(": "), g.tsType(t.TypeAnnotation.Type))
		}
		return doc
	case *ast.RestElement:
		return concat(text("..."), g.pattern(t.Argument))
	case *ast.AssignmentPattern:
		return concat(g.pattern(t.Left), text(" = "), g.expr(t.Right))
	case *ast.MemberExpression:
		return g.expr(t)
	}
	return text("")
}

func (g *generator) typeParams(t *ast.TSTypeParameterDeclaration) Doc {
	var items []Doc
	for _, p := range t.Params {
		d := text(p.Name.Name)
		if p.Constraint != nil {
			d = concat(d, text(" extends "), g.tsType(p.Constraint))
		}
		if p.Default != nil {
			d = concat(d, text(" = "), g.tsType(p.Default))
		}
		items = append(items, d)
	}
	return concat(text("<"), join(text(", "), items), text(">"))
}

func (g *generator) typeArgs(args []ast.TSType) Doc {
	var items []Doc
	for _, a := range args {
		items = append(items, g.tsType(a))
	}
	return concat(text("<"), join(text(", "), items), text(">"))
}

func (g *generator) tsType(t ast.TSType) Doc {
	switch x := t.(type) {
	case *ast.TSKeywordType:
		return text(x.Keyword)
	case *ast.TSTypeReference:
		doc := g.tsTypeName(x.Name)
		if len(x.TypeArguments) > 0 {
			doc = concat(doc, g.typeArgs(x.TypeArguments))
		}
		return doc
	case *ast.TSUnionType:
		var items []Doc
		for _, u := range x.Types {
			items = append(items, g.tsType(u))
		}
		return group(join(concat(text(" |"), line()), items))
	case *ast.TSIntersectionType:
		var items []Doc
		for _, u := range x.Types {
			items = append(items, g.tsType(u))
		}
		return join(text(" & "), items)
	case *ast.TSArrayType:
		return concat(g.tsType(x.Element), text("[]"))
	case *ast.TSTupleType:
		var items []Doc
		for _, e := range x.Elements {
			items = append(items, g.tsType(e))
		}
		return g.listDoc("[", "]", items, text(""), false)
	case *ast.TSLiteralType:
		return g.expr(x.Literal)
	}
	return text("")
}

func (g *generator) tsTypeName(n ast.Node) Doc {
	switch t := n.(type) {
	case *ast.IdentifierName:
		return text(t.Name)
	case *ast.TSQualifiedName:
		return concat(g.tsTypeName(t.Left), text("."), text(t.Right.Name))
	}
	return text("")
}
