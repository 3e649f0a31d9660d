// Package ast defines the arena-allocated syntax tree the parser produces
// and every downstream tool (semantic analysis, lint, transform, printer)
// consumes. Node kinds are a closed set: adding a kind means updating the
// Kind enum, the visitor, and every exhaustive switch: deliberate friction
// that keeps handling exhaustive.
package ast

import "github.com/oxhq/jscore/internal/token"

// NodeID identifies a node within one compilation. IDs are assigned by the
// parser in allocation order; synthetic nodes created by transforms receive
// fresh IDs from the same counter. ID 0 is reserved (no node).
type NodeID uint32

// Kind discriminates the closed set of node types.
type Kind uint8

const (
	KindInvalid Kind = iota

	KindProgram

	// Identifiers. Binding vs reference is a parse-time distinction: a
	// BindingIdentifier introduces a name, an IdentifierReference uses one,
	// an IdentifierName is neither (member properties, labels, import/export
	// names).
	KindIdentifierReference
	KindBindingIdentifier
	KindIdentifierName
	KindPrivateIdentifier

	// Literals.
	KindStringLiteral
	KindNumericLiteral
	KindBigIntLiteral
	KindBooleanLiteral
	KindNullLiteral
	KindRegExpLiteral
	KindTemplateLiteral
	KindTemplateElement

	// Expressions.
	KindThisExpression
	KindSuper
	KindArrayExpression
	KindObjectExpression
	KindObjectProperty
	KindSpreadElement
	KindUnaryExpression
	KindUpdateExpression
	KindBinaryExpression
	KindLogicalExpression
	KindAssignmentExpression
	KindConditionalExpression
	KindCallExpression
	KindNewExpression
	KindMemberExpression
	KindChainExpression
	KindSequenceExpression
	KindTaggedTemplateExpression
	KindYieldExpression
	KindAwaitExpression
	KindParenthesizedExpression
	KindArrowFunctionExpression
	KindFunctionExpression
	KindClassExpression

	// Patterns.
	KindArrayPattern
	KindObjectPattern
	KindBindingProperty
	KindRestElement
	KindAssignmentPattern

	// Statements.
	KindBlockStatement
	KindEmptyStatement
	KindExpressionStatement
	KindIfStatement
	KindForStatement
	KindForInStatement
	KindForOfStatement
	KindWhileStatement
	KindDoWhileStatement
	KindSwitchStatement
	KindSwitchCase
	KindTryStatement
	KindCatchClause
	KindLabeledStatement
	KindThrowStatement
	KindReturnStatement
	KindBreakStatement
	KindContinueStatement
	KindDebuggerStatement
	KindWithStatement

	// Declarations.
	KindVariableDeclaration
	KindVariableDeclarator
	KindFunctionDeclaration
	KindClassDeclaration
	KindClassBody
	KindMethodDefinition
	KindPropertyDefinition
	KindStaticBlock

	// Module items.
	KindImportDeclaration
	KindImportSpecifier
	KindImportDefaultSpecifier
	KindImportNamespaceSpecifier
	KindExportNamedDeclaration
	KindExportDefaultDeclaration
	KindExportAllDeclaration
	KindExportSpecifier

	// JSX.
	KindJSXElement
	KindJSXFragment
	KindJSXOpeningElement
	KindJSXClosingElement
	KindJSXAttribute
	KindJSXSpreadAttribute
	KindJSXExpressionContainer
	KindJSXText
	KindJSXIdentifier
	KindJSXMemberExpression
	KindJSXNamespacedName

	// TypeScript declarations.
	KindTSEnumDeclaration
	KindTSEnumMember
	KindTSInterfaceDeclaration
	KindTSInterfaceBody
	KindTSPropertySignature
	KindTSTypeAliasDeclaration
	KindTSModuleDeclaration

	// TypeScript types.
	KindTSTypeAnnotation
	KindTSKeywordType
	KindTSTypeReference
	KindTSQualifiedName
	KindTSUnionType
	KindTSIntersectionType
	KindTSArrayType
	KindTSTupleType
	KindTSLiteralType
	KindTSTypeParameter
	KindTSTypeParameterDeclaration
	KindTSAsExpression
	KindTSSatisfiesExpression
	KindTSNonNullExpression

	NumKinds
)

var kindNames = [NumKinds]string{
	KindInvalid: "Invalid", KindProgram: "Program",
	KindIdentifierReference: "IdentifierReference", KindBindingIdentifier: "BindingIdentifier",
	KindIdentifierName: "IdentifierName", KindPrivateIdentifier: "PrivateIdentifier",
	KindStringLiteral: "StringLiteral", KindNumericLiteral: "NumericLiteral",
	KindBigIntLiteral: "BigIntLiteral", KindBooleanLiteral: "BooleanLiteral",
	KindNullLiteral: "NullLiteral", KindRegExpLiteral: "RegExpLiteral",
	KindTemplateLiteral: "TemplateLiteral", KindTemplateElement: "TemplateElement",
	KindThisExpression: "ThisExpression", KindSuper: "Super",
	KindArrayExpression: "ArrayExpression", KindObjectExpression: "ObjectExpression",
	KindObjectProperty: "ObjectProperty", KindSpreadElement: "SpreadElement",
	KindUnaryExpression: "UnaryExpression", KindUpdateExpression: "UpdateExpression",
	KindBinaryExpression: "BinaryExpression", KindLogicalExpression: "LogicalExpression",
	KindAssignmentExpression: "AssignmentExpression", KindConditionalExpression: "ConditionalExpression",
	KindCallExpression: "CallExpression", KindNewExpression: "NewExpression",
	KindMemberExpression: "MemberExpression", KindChainExpression: "ChainExpression",
	KindSequenceExpression: "SequenceExpression", KindTaggedTemplateExpression: "TaggedTemplateExpression",
	KindYieldExpression: "YieldExpression", KindAwaitExpression: "AwaitExpression",
	KindParenthesizedExpression: "ParenthesizedExpression", KindArrowFunctionExpression: "ArrowFunctionExpression",
	KindFunctionExpression: "FunctionExpression", KindClassExpression: "ClassExpression",
	KindArrayPattern: "ArrayPattern", KindObjectPattern: "ObjectPattern",
	KindBindingProperty: "BindingProperty", KindRestElement: "RestElement",
	KindAssignmentPattern: "AssignmentPattern",
	KindBlockStatement:    "BlockStatement", KindEmptyStatement: "EmptyStatement",
	KindExpressionStatement: "ExpressionStatement", KindIfStatement: "IfStatement",
	KindForStatement: "ForStatement", KindForInStatement: "ForInStatement",
	KindForOfStatement: "ForOfStatement", KindWhileStatement: "WhileStatement",
	KindDoWhileStatement: "DoWhileStatement", KindSwitchStatement: "SwitchStatement",
	KindSwitchCase: "SwitchCase", KindTryStatement: "TryStatement",
	KindCatchClause: "CatchClause", KindLabeledStatement: "LabeledStatement",
	KindThrowStatement: "ThrowStatement", KindReturnStatement: "ReturnStatement",
	KindBreakStatement: "BreakStatement", KindContinueStatement: "ContinueStatement",
	KindDebuggerStatement: "DebuggerStatement", KindWithStatement: "WithStatement",
	KindVariableDeclaration: "VariableDeclaration", KindVariableDeclarator: "VariableDeclarator",
	KindFunctionDeclaration: "FunctionDeclaration", KindClassDeclaration: "ClassDeclaration",
	KindClassBody: "ClassBody", KindMethodDefinition: "MethodDefinition",
	KindPropertyDefinition: "PropertyDefinition", KindStaticBlock: "StaticBlock",
	KindImportDeclaration: "ImportDeclaration", KindImportSpecifier: "ImportSpecifier",
	KindImportDefaultSpecifier: "ImportDefaultSpecifier", KindImportNamespaceSpecifier: "ImportNamespaceSpecifier",
	KindExportNamedDeclaration: "ExportNamedDeclaration", KindExportDefaultDeclaration: "ExportDefaultDeclaration",
	KindExportAllDeclaration: "ExportAllDeclaration", KindExportSpecifier: "ExportSpecifier",
	KindJSXElement: "JSXElement", KindJSXFragment: "JSXFragment",
	KindJSXOpeningElement: "JSXOpeningElement", KindJSXClosingElement: "JSXClosingElement",
	KindJSXAttribute: "JSXAttribute", KindJSXSpreadAttribute: "JSXSpreadAttribute",
	KindJSXExpressionContainer: "JSXExpressionContainer", KindJSXText: "JSXText",
	KindJSXIdentifier: "JSXIdentifier", KindJSXMemberExpression: "JSXMemberExpression",
	KindJSXNamespacedName: "JSXNamespacedName",
	KindTSEnumDeclaration: "TSEnumDeclaration", KindTSEnumMember: "TSEnumMember",
	KindTSInterfaceDeclaration: "TSInterfaceDeclaration", KindTSInterfaceBody: "TSInterfaceBody",
	KindTSPropertySignature: "TSPropertySignature", KindTSTypeAliasDeclaration: "TSTypeAliasDeclaration",
	KindTSModuleDeclaration: "TSModuleDeclaration",
	KindTSTypeAnnotation:    "TSTypeAnnotation", KindTSKeywordType: "TSKeywordType",
	KindTSTypeReference: "TSTypeReference", KindTSQualifiedName: "TSQualifiedName",
	KindTSUnionType: "TSUnionType", KindTSIntersectionType: "TSIntersectionType",
	KindTSArrayType: "TSArrayType", KindTSTupleType: "TSTupleType",
	KindTSLiteralType: "TSLiteralType", KindTSTypeParameter: "TSTypeParameter",
	KindTSTypeParameterDeclaration: "TSTypeParameterDeclaration",
	KindTSAsExpression:             "TSAsExpression", KindTSSatisfiesExpression: "TSSatisfiesExpression",
	KindTSNonNullExpression: "TSNonNullExpression",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Node is the interface every AST node satisfies. Concrete nodes are arena
// allocated; a Node value must not outlive its arena.
type Node interface {
	Kind() Kind
	Span() token.Span
	ID() NodeID
}

// Base carries the span and id every node has. It is embedded, exported so
// the parser and transforms can stamp it at construction.
type Base struct {
	Loc    token.Span
	NodeID NodeID
}

func (b *Base) Span() token.Span { return b.Loc }
func (b *Base) ID() NodeID       { return b.NodeID }

// SetSpan updates the node's span; used by transforms when a synthetic node
// should inherit the location of the code it replaces.
func (b *Base) SetSpan(s token.Span) { b.Loc = s }

// SetID re-stamps the node's id. Transforms use this when splicing a
// snippet-parsed subtree into a compilation's id space.
func (b *Base) SetID(id NodeID) { b.NodeID = id }

// Expression, Statement, Pattern, TSType are the marker interfaces that make
// node slots type-safe. A type can satisfy more than one: MemberExpression
// is both an Expression and a Pattern, and SpreadElement is both an
// Expression and an ObjectMember.
type Expression interface {
	Node
	expressionNode()
}

type Statement interface {
	Node
	statementNode()
}

// Pattern covers binding patterns and, because destructuring assignment
// targets may be arbitrary member expressions, MemberExpression as well.
type Pattern interface {
	Node
	patternNode()
}

// TSType is a TypeScript type node.
type TSType interface {
	Node
	tsTypeNode()
}

// ObjectMember is either *ObjectProperty or *SpreadElement.
type ObjectMember interface {
	Node
	objectMemberNode()
}

// ClassMember is *MethodDefinition, *PropertyDefinition, or *StaticBlock.
type ClassMember interface {
	Node
	classMemberNode()
}

// SourceType flags the dialect of a Program.
type SourceType struct {
	Module     bool
	TypeScript bool
	JSX        bool
}

// Program is the root node of a compilation.
type Program struct {
	Base
	SourceType SourceType
	Body       []Statement
	// Hashbang holds a leading #! line's text, if any, excluded from Body.
	Hashbang string
}

func (*Program) Kind() Kind { return KindProgram }
