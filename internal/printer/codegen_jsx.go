package printer

import (
	"strings"

	"github.com/oxhq/jscore/internal/ast"
)

// JSX printing applies the "curly braces only when needed" policy: a
// string-literal attribute value loses its braces and re-quotes with the
// JSX quote style, and a child expression container holding only a string
// unwraps to plain text.

func (g *generator) jsxElement(t *ast.JSXElement) Doc {
	name := g.jsxName(t.Opening.Name)

	var attrs []Doc
	for _, a := range t.Opening.Attributes {
		attrs = append(attrs, g.jsxAttribute(a))
	}

	var open Doc
	selfClosing := t.Closing == nil
	switch {
	case len(attrs) == 0 && selfClosing:
		open = concat(text("<"), name, text(" />"))
	case len(attrs) == 0:
		open = concat(text("<"), name, text(">"))
	default:
		sep := line()
		if g.opts.SingleAttributePerLine {
			sep = hardline()
		}
		closer := concat(softline(), text(">"))
		if selfClosing {
			closer = concat(line(), text("/>"))
		} else if g.opts.BracketSameLine {
			closer = text(">")
		}
		open = group(
			text("<"), name,
			indent(line(), join(sep, attrs)),
			closer,
		)
	}

	if selfClosing {
		return open
	}

	children := g.jsxChildren(t.Children)
	closing := concat(text("</"), g.jsxName(t.Closing.Name), text(">"))
	if len(children) == 0 {
		return concat(open, closing)
	}
	return group(
		open,
		indent(append([]Doc{softline()}, join(softline(), children))...),
		softline(),
		closing,
	)
}

func (g *generator) jsxFragment(t *ast.JSXFragment) Doc {
	children := g.jsxChildren(t.Children)
	if len(children) == 0 {
		return text("<></>")
	}
	return group(
		text("<>"),
		indent(append([]Doc{softline()}, join(softline(), children))...),
		softline(),
		text("</>"),
	)
}

func (g *generator) jsxChildren(nodes []ast.Node) []Doc {
	var out []Doc
	for _, c := range nodes {
		switch t := c.(type) {
		case *ast.JSXText:
			trimmed := collapseJSXWhitespace(t.Value)
			if trimmed == "" {
				continue
			}
			out = append(out, text(trimmed))
		case *ast.JSXExpressionContainer:
			if t.Expression == nil {
				continue
			}
			// Curly-unwrapping: a string literal child needs no container.
			if s, ok := t.Expression.(*ast.StringLiteral); ok {
				out = append(out, text(s.Value))
				continue
			}
			out = append(out, concat(text("{"), g.expr(t.Expression), text("}")))
		case *ast.JSXElement:
			out = append(out, g.jsxElement(t))
		case *ast.JSXFragment:
			out = append(out, g.jsxFragment(t))
		}
	}
	return out
}

// collapseJSXWhitespace trims a text child and collapses internal runs,
// matching how JSX itself treats insignificant whitespace.
func collapseJSXWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func (g *generator) jsxAttribute(a ast.Node) Doc {
	switch t := a.(type) {
	case *ast.JSXSpreadAttribute:
		return concat(text("{..."), g.expr(t.Argument), text("}"))
	case *ast.JSXAttribute:
		name := g.jsxName(t.Name)
		if t.Value == nil {
			return name
		}
		switch v := t.Value.(type) {
		case *ast.StringLiteral:
			return concat(name, text("="), text(g.quote(v.Value, true)))
		case *ast.JSXExpressionContainer:
			if v.Expression == nil {
				return name
			}
			// Curly-unwrapping: {"foo"} and {'foo'} become ="foo".
			if s, ok := v.Expression.(*ast.StringLiteral); ok {
				return concat(name, text("="), text(g.quote(s.Value, true)))
			}
			return concat(name, text("={"), g.expr(v.Expression), text("}"))
		case *ast.JSXElement:
			return concat(name, text("="), g.jsxElement(v))
		}
		return name
	}
	return text("")
}

func (g *generator) jsxName(n ast.Node) Doc {
	switch t := n.(type) {
	case *ast.JSXIdentifier:
		return text(t.Name)
	case *ast.JSXMemberExpression:
		return concat(g.jsxName(t.Object), text("."), text(t.Property.Name))
	case *ast.JSXNamespacedName:
		return concat(text(t.Namespace.Name), text(":"), text(t.Name.Name))
	}
	return text("")
}
