// Package visitor provides the two traversal shapes every tool is built
// on: an immutable Walk (linters, code generators) and a mutable Traverse
// (transform passes) that tolerates node replacement mid-walk. Both visit
// children in source order.
package visitor

import "github.com/oxhq/jscore/internal/ast"

// Visitor receives enter/leave callbacks during Walk. Enter returning
// false skips the node's children (Leave still fires).
type Visitor interface {
	Enter(n ast.Node) bool
	Leave(n ast.Node)
}

// FuncVisitor adapts plain functions to Visitor; either may be nil.
type FuncVisitor struct {
	OnEnter func(n ast.Node) bool
	OnLeave func(n ast.Node)
}

func (v FuncVisitor) Enter(n ast.Node) bool {
	if v.OnEnter == nil {
		return true
	}
	return v.OnEnter(n)
}

func (v FuncVisitor) Leave(n ast.Node) {
	if v.OnLeave != nil {
		v.OnLeave(n)
	}
}

// Walk traverses the subtree rooted at n in source order.
func Walk(n ast.Node, v Visitor) {
	if n == nil || isNilNode(n) {
		return
	}
	if v.Enter(n) {
		EachChild(n, func(c ast.Node) {
			Walk(c, v)
		})
	}
	v.Leave(n)
}

// isNilNode guards against typed-nil interface values, which creep in
// through optional slots (`*ast.BlockStatement` nil stored in ast.Node).
func isNilNode(n ast.Node) bool {
	switch t := n.(type) {
	case *ast.BlockStatement:
		return t == nil
	case *ast.BindingIdentifier:
		return t == nil
	case *ast.IdentifierName:
		return t == nil
	case *ast.StringLiteral:
		return t == nil
	case *ast.TemplateLiteral:
		return t == nil
	case *ast.TSTypeAnnotation:
		return t == nil
	case *ast.TSTypeParameterDeclaration:
		return t == nil
	case *ast.CatchClause:
		return t == nil
	case *ast.ClassBody:
		return t == nil
	case *ast.FunctionExpression:
		return t == nil
	case *ast.RestElement:
		return t == nil
	case *ast.TSInterfaceBody:
		return t == nil
	case *ast.JSXOpeningElement:
		return t == nil
	case *ast.JSXClosingElement:
		return t == nil
	case *ast.JSXIdentifier:
		return t == nil
	}
	return false
}

// EachChild invokes f once per direct child of n, in source order. It is
// the single exhaustive enumeration of the AST's shape; Walk, the lint
// dispatcher, and the span-containment tests are all built on it.
func EachChild(n ast.Node, f func(ast.Node)) {
	visit := func(c ast.Node) {
		if c != nil && !isNilNode(c) {
			f(c)
		}
	}
	switch t := n.(type) {
	case *ast.Program:
		for _, s := range t.Body {
			visit(s)
		}

	case *ast.IdentifierReference, *ast.IdentifierName, *ast.PrivateIdentifier,
		*ast.StringLiteral, *ast.NumericLiteral, *ast.BigIntLiteral,
		*ast.BooleanLiteral, *ast.NullLiteral, *ast.RegExpLiteral,
		*ast.ThisExpression, *ast.Super, *ast.EmptyStatement,
		*ast.DebuggerStatement, *ast.JSXText, *ast.JSXIdentifier,
		*ast.TSKeywordType, *ast.TemplateElement:
		// leaves

	case *ast.BindingIdentifier:
		visit(t.TypeAnnotation)

	case *ast.TemplateLiteral:
		// Interleave quasis and expressions in source order.
		for i, q := range t.Quasis {
			visit(q)
			if i < len(t.Expressions) {
				visit(t.Expressions[i])
			}
		}

	case *ast.ArrayExpression:
		for _, e := range t.Elements {
			if e != nil {
				visit(e)
			}
		}
	case *ast.ObjectExpression:
		for _, m := range t.Properties {
			visit(m)
		}
	case *ast.ObjectProperty:
		visit(t.Key)
		visit(t.Value)
	case *ast.SpreadElement:
		visit(t.Argument)
	case *ast.UnaryExpression:
		visit(t.Argument)
	case *ast.UpdateExpression:
		visit(t.Argument)
	case *ast.BinaryExpression:
		visit(t.Left)
		visit(t.Right)
	case *ast.LogicalExpression:
		visit(t.Left)
		visit(t.Right)
	case *ast.AssignmentExpression:
		visit(t.Target)
		visit(t.Value)
	case *ast.ConditionalExpression:
		visit(t.Test)
		visit(t.Consequent)
		visit(t.Alternate)
	case *ast.CallExpression:
		visit(t.Callee)
		for _, a := range t.TypeArguments {
			visit(a)
		}
		for _, a := range t.Arguments {
			visit(a)
		}
	case *ast.NewExpression:
		visit(t.Callee)
		for _, a := range t.TypeArguments {
			visit(a)
		}
		for _, a := range t.Arguments {
			visit(a)
		}
	case *ast.MemberExpression:
		visit(t.Object)
		visit(t.Property)
	case *ast.ChainExpression:
		visit(t.Expression)
	case *ast.SequenceExpression:
		for _, e := range t.Expressions {
			visit(e)
		}
	case *ast.TaggedTemplateExpression:
		visit(t.Tag)
		visit(t.Quasi)
	case *ast.YieldExpression:
		visit(t.Argument)
	case *ast.AwaitExpression:
		visit(t.Argument)
	case *ast.ParenthesizedExpression:
		visit(t.Expression)
	case *ast.ArrowFunctionExpression:
		visit(t.TypeParameters)
		for _, p := range t.Params {
			visit(p)
		}
		visit(t.ReturnType)
		visit(t.Body)
	case *ast.FunctionExpression:
		visit(t.Name)
		visit(t.TypeParameters)
		for _, p := range t.Params {
			visit(p)
		}
		visit(t.ReturnType)
		visit(t.Body)
	case *ast.ClassExpression:
		visit(t.Name)
		visit(t.SuperClass)
		visit(t.ClassBody)
	case *ast.TSAsExpression:
		visit(t.Expression)
		visit(t.Type)
	case *ast.TSSatisfiesExpression:
		visit(t.Expression)
		visit(t.Type)
	case *ast.TSNonNullExpression:
		visit(t.Expression)

	case *ast.ArrayPattern:
		for _, e := range t.Elements {
			if e != nil {
				visit(e)
			}
		}
		visit(t.TypeAnnotation)
	case *ast.ObjectPattern:
		for _, pr := range t.Properties {
			visit(pr)
		}
		visit(t.Rest)
		visit(t.TypeAnnotation)
	case *ast.BindingProperty:
		visit(t.Key)
		visit(t.Value)
	case *ast.RestElement:
		visit(t.Argument)
	case *ast.AssignmentPattern:
		visit(t.Left)
		visit(t.Right)

	case *ast.BlockStatement:
		for _, s := range t.Body {
			visit(s)
		}
	case *ast.ExpressionStatement:
		visit(t.Expression)
	case *ast.IfStatement:
		visit(t.Test)
		visit(t.Consequent)
		visit(t.Alternate)
	case *ast.ForStatement:
		visit(t.Init)
		visit(t.Test)
		visit(t.Update)
		visit(t.Body)
	case *ast.ForInStatement:
		visit(t.Left)
		visit(t.Right)
		visit(t.Body)
	case *ast.ForOfStatement:
		visit(t.Left)
		visit(t.Right)
		visit(t.Body)
	case *ast.WhileStatement:
		visit(t.Test)
		visit(t.Body)
	case *ast.DoWhileStatement:
		visit(t.Body)
		visit(t.Test)
	case *ast.SwitchStatement:
		visit(t.Discriminant)
		for _, c := range t.Cases {
			visit(c)
		}
	case *ast.SwitchCase:
		visit(t.Test)
		for _, s := range t.Consequent {
			visit(s)
		}
	case *ast.TryStatement:
		visit(t.Block)
		visit(t.Handler)
		visit(t.Finalizer)
	case *ast.CatchClause:
		visit(t.Param)
		visit(t.Body)
	case *ast.LabeledStatement:
		visit(t.Label)
		visit(t.Body)
	case *ast.ThrowStatement:
		visit(t.Argument)
	case *ast.ReturnStatement:
		visit(t.Argument)
	case *ast.BreakStatement:
		visit(t.Label)
	case *ast.ContinueStatement:
		visit(t.Label)
	case *ast.WithStatement:
		visit(t.Object)
		visit(t.Body)

	case *ast.VariableDeclaration:
		for _, d := range t.Declarations {
			visit(d)
		}
	case *ast.VariableDeclarator:
		visit(t.Name)
		visit(t.Init)
	case *ast.FunctionDeclaration:
		visit(t.Name)
		visit(t.TypeParameters)
		for _, p := range t.Params {
			visit(p)
		}
		visit(t.ReturnType)
		visit(t.Body)
	case *ast.ClassDeclaration:
		visit(t.Name)
		visit(t.SuperClass)
		visit(t.ClassBody)
	case *ast.ClassBody:
		for _, m := range t.Members {
			visit(m)
		}
	case *ast.MethodDefinition:
		visit(t.Key)
		visit(t.Value)
	case *ast.PropertyDefinition:
		visit(t.Key)
		visit(t.TypeAnnotation)
		visit(t.Value)
	case *ast.StaticBlock:
		for _, s := range t.Body {
			visit(s)
		}

	case *ast.ImportDeclaration:
		for _, s := range t.Specifiers {
			visit(s)
		}
		visit(t.Source)
	case *ast.ImportSpecifier:
		visit(t.Imported)
		visit(t.Local)
	case *ast.ImportDefaultSpecifier:
		visit(t.Local)
	case *ast.ImportNamespaceSpecifier:
		visit(t.Local)
	case *ast.ExportNamedDeclaration:
		visit(t.Declaration)
		for _, s := range t.Specifiers {
			visit(s)
		}
		visit(t.Source)
	case *ast.ExportSpecifier:
		visit(t.Local)
		if t.Exported != t.Local {
			visit(t.Exported)
		}
	case *ast.ExportDefaultDeclaration:
		visit(t.Declaration)
	case *ast.ExportAllDeclaration:
		visit(t.Exported)
		visit(t.Source)

	case *ast.JSXElement:
		visit(t.Opening)
		for _, c := range t.Children {
			visit(c)
		}
		visit(t.Closing)
	case *ast.JSXFragment:
		for _, c := range t.Children {
			visit(c)
		}
	case *ast.JSXOpeningElement:
		visit(t.Name)
		for _, a := range t.Attributes {
			visit(a)
		}
	case *ast.JSXClosingElement:
		visit(t.Name)
	case *ast.JSXAttribute:
		visit(t.Name)
		visit(t.Value)
	case *ast.JSXSpreadAttribute:
		visit(t.Argument)
	case *ast.JSXExpressionContainer:
		visit(t.Expression)
	case *ast.JSXMemberExpression:
		visit(t.Object)
		visit(t.Property)
	case *ast.JSXNamespacedName:
		visit(t.Namespace)
		visit(t.Name)

	case *ast.TSEnumDeclaration:
		visit(t.Name)
		for _, m := range t.Members {
			visit(m)
		}
	case *ast.TSEnumMember:
		visit(t.Name)
		visit(t.Init)
	case *ast.TSInterfaceDeclaration:
		visit(t.Name)
		visit(t.TypeParameters)
		for _, e := range t.Extends {
			visit(e)
		}
		visit(t.Body)
	case *ast.TSInterfaceBody:
		for _, m := range t.Members {
			visit(m)
		}
	case *ast.TSPropertySignature:
		visit(t.Key)
		visit(t.TypeAnnotation)
	case *ast.TSTypeAliasDeclaration:
		visit(t.Name)
		visit(t.TypeParameters)
		visit(t.Type)
	case *ast.TSModuleDeclaration:
		visit(t.Name)
		for _, s := range t.Body {
			visit(s)
		}

	case *ast.TSTypeAnnotation:
		visit(t.Type)
	case *ast.TSTypeReference:
		visit(t.Name)
		for _, a := range t.TypeArguments {
			visit(a)
		}
	case *ast.TSQualifiedName:
		visit(t.Left)
		visit(t.Right)
	case *ast.TSUnionType:
		for _, u := range t.Types {
			visit(u)
		}
	case *ast.TSIntersectionType:
		for _, u := range t.Types {
			visit(u)
		}
	case *ast.TSArrayType:
		visit(t.Element)
	case *ast.TSTupleType:
		for _, e := range t.Elements {
			visit(e)
		}
	case *ast.TSLiteralType:
		visit(t.Literal)
	case *ast.TSTypeParameterDeclaration:
		for _, p := range t.Params {
			visit(p)
		}
	case *ast.TSTypeParameter:
		visit(t.Name)
		visit(t.Constraint)
		visit(t.Default)
	}
}
