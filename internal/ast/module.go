package ast

// Module items. All are Statements so a Program body is one homogeneous
// slice; the parser only produces them at the top level of a module.

type ImportDeclaration struct {
	Base
	// Specifiers holds *ImportDefaultSpecifier, *ImportNamespaceSpecifier,
	// and *ImportSpecifier in source order. Empty for bare `import "mod"`.
	Specifiers []Node
	Source     *StringLiteral
	TypeOnly   bool // `import type ...`
}

func (*ImportDeclaration) Kind() Kind     { return KindImportDeclaration }
func (*ImportDeclaration) statementNode() {}

// ImportSpecifier is `{ imported as local }`. Imported is an
// *IdentifierName or, for string import names, a *StringLiteral.
type ImportSpecifier struct {
	Base
	Imported Node
	Local    *BindingIdentifier
}

func (*ImportSpecifier) Kind() Kind { return KindImportSpecifier }

type ImportDefaultSpecifier struct {
	Base
	Local *BindingIdentifier
}

func (*ImportDefaultSpecifier) Kind() Kind { return KindImportDefaultSpecifier }

type ImportNamespaceSpecifier struct {
	Base
	Local *BindingIdentifier
}

func (*ImportNamespaceSpecifier) Kind() Kind { return KindImportNamespaceSpecifier }

// ExportNamedDeclaration covers `export { a, b as c }` (Specifiers, with an
// optional re-export Source) and `export const x = ...` (Declaration).
// Exactly one of Declaration / Specifiers is populated.
type ExportNamedDeclaration struct {
	Base
	Declaration Statement
	Specifiers  []*ExportSpecifier
	Source      *StringLiteral // non-nil only for re-exports
	TypeOnly    bool
}

func (*ExportNamedDeclaration) Kind() Kind     { return KindExportNamedDeclaration }
func (*ExportNamedDeclaration) statementNode() {}

// ExportSpecifier is `local as exported`.
type ExportSpecifier struct {
	Base
	Local    Node // *IdentifierReference (or *StringLiteral on re-export)
	Exported Node // *IdentifierName or *StringLiteral
}

func (*ExportSpecifier) Kind() Kind { return KindExportSpecifier }

// ExportDefaultDeclaration's Declaration is a *FunctionDeclaration,
// *ClassDeclaration, or an Expression.
type ExportDefaultDeclaration struct {
	Base
	Declaration Node
}

func (*ExportDefaultDeclaration) Kind() Kind     { return KindExportDefaultDeclaration }
func (*ExportDefaultDeclaration) statementNode() {}

// ExportAllDeclaration is `export * from "mod"` or
// `export * as ns from "mod"`.
type ExportAllDeclaration struct {
	Base
	Exported *IdentifierName // nil for the unnamed form
	Source   *StringLiteral
}

func (*ExportAllDeclaration) Kind() Kind     { return KindExportAllDeclaration }
func (*ExportAllDeclaration) statementNode() {}
