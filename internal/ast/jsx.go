package ast

// JSX nodes, produced only when the source type flags jsx.

// JSXElement. Children holds *JSXText, *JSXExpressionContainer,
// *JSXElement, and *JSXFragment nodes.
type JSXElement struct {
	Base
	Opening  *JSXOpeningElement
	Children []Node
	Closing  *JSXClosingElement // nil when self-closing
}

func (*JSXElement) Kind() Kind      { return KindJSXElement }
func (*JSXElement) expressionNode() {}

type JSXFragment struct {
	Base
	Children []Node
}

func (*JSXFragment) Kind() Kind      { return KindJSXFragment }
func (*JSXFragment) expressionNode() {}

// JSXOpeningElement. Name is a *JSXIdentifier, *JSXMemberExpression, or
// *JSXNamespacedName; Attributes holds *JSXAttribute and
// *JSXSpreadAttribute in source order.
type JSXOpeningElement struct {
	Base
	Name        Node
	Attributes  []Node
	SelfClosing bool
}

func (*JSXOpeningElement) Kind() Kind { return KindJSXOpeningElement }

type JSXClosingElement struct {
	Base
	Name Node
}

func (*JSXClosingElement) Kind() Kind { return KindJSXClosingElement }

// JSXAttribute. Value is a *StringLiteral, *JSXExpressionContainer,
// *JSXElement, or nil for valueless attributes (`<input disabled />`).
type JSXAttribute struct {
	Base
	Name  Node // *JSXIdentifier or *JSXNamespacedName
	Value Node
}

func (*JSXAttribute) Kind() Kind { return KindJSXAttribute }

type JSXSpreadAttribute struct {
	Base
	Argument Expression
}

func (*JSXSpreadAttribute) Kind() Kind { return KindJSXSpreadAttribute }

// JSXExpressionContainer with nil Expression is an empty `{}` (or a
// comment-only container).
type JSXExpressionContainer struct {
	Base
	Expression Expression
}

func (*JSXExpressionContainer) Kind() Kind { return KindJSXExpressionContainer }

type JSXText struct {
	Base
	Value string
}

func (*JSXText) Kind() Kind { return KindJSXText }

type JSXIdentifier struct {
	Base
	Name string
}

func (*JSXIdentifier) Kind() Kind { return KindJSXIdentifier }

// JSXMemberExpression is a dotted tag name: `<Foo.Bar>`. Object is a
// *JSXIdentifier or nested *JSXMemberExpression.
type JSXMemberExpression struct {
	Base
	Object   Node
	Property *JSXIdentifier
}

func (*JSXMemberExpression) Kind() Kind { return KindJSXMemberExpression }

// JSXNamespacedName is `<ns:name>`.
type JSXNamespacedName struct {
	Base
	Namespace *JSXIdentifier
	Name      *JSXIdentifier
}

func (*JSXNamespacedName) Kind() Kind { return KindJSXNamespacedName }
