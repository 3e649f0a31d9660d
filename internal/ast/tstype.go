package ast

// TypeScript syntax nodes. These are parsed, carried, and printed but never
// type-checked; type inference is out of scope for the whole toolchain.

// TS declarations.

type TSEnumDeclaration struct {
	Base
	Name    *BindingIdentifier
	Members []*TSEnumMember
	Const   bool // `const enum`
}

func (*TSEnumDeclaration) Kind() Kind     { return KindTSEnumDeclaration }
func (*TSEnumDeclaration) statementNode() {}

// TSEnumMember. Name is an *IdentifierName or *StringLiteral.
type TSEnumMember struct {
	Base
	Name Node
	Init Expression // nil for auto-numbered members
}

func (*TSEnumMember) Kind() Kind { return KindTSEnumMember }

type TSInterfaceDeclaration struct {
	Base
	Name           *BindingIdentifier
	TypeParameters *TSTypeParameterDeclaration
	Extends        []*TSTypeReference
	Body           *TSInterfaceBody
}

func (*TSInterfaceDeclaration) Kind() Kind     { return KindTSInterfaceDeclaration }
func (*TSInterfaceDeclaration) statementNode() {}

type TSInterfaceBody struct {
	Base
	Members []*TSPropertySignature
}

func (*TSInterfaceBody) Kind() Kind { return KindTSInterfaceBody }

// TSPropertySignature is one interface member. Method signatures are
// carried as a property whose type annotation is nil; the core never needs
// to distinguish further.
type TSPropertySignature struct {
	Base
	Key            Node // *IdentifierName or *StringLiteral
	Optional       bool
	Readonly       bool
	TypeAnnotation *TSTypeAnnotation
}

func (*TSPropertySignature) Kind() Kind { return KindTSPropertySignature }

type TSTypeAliasDeclaration struct {
	Base
	Name           *BindingIdentifier
	TypeParameters *TSTypeParameterDeclaration
	Type           TSType
}

func (*TSTypeAliasDeclaration) Kind() Kind     { return KindTSTypeAliasDeclaration }
func (*TSTypeAliasDeclaration) statementNode() {}

// TSModuleDeclaration is `namespace N { ... }` or `module "m" { ... }`.
// Name is a *BindingIdentifier or *StringLiteral.
type TSModuleDeclaration struct {
	Base
	Name Node
	Body []Statement
}

func (*TSModuleDeclaration) Kind() Kind     { return KindTSModuleDeclaration }
func (*TSModuleDeclaration) statementNode() {}

// TS type positions.

// TSTypeAnnotation is the `: T` wrapper; its span includes the colon.
type TSTypeAnnotation struct {
	Base
	Type TSType
}

func (*TSTypeAnnotation) Kind() Kind { return KindTSTypeAnnotation }

// TSKeywordType covers the single-token types: any, unknown, never, void,
// undefined, null, string, number, boolean, bigint, symbol, object.
type TSKeywordType struct {
	Base
	Keyword string
}

func (*TSKeywordType) Kind() Kind  { return KindTSKeywordType }
func (*TSKeywordType) tsTypeNode() {}

// TSTypeReference. Name is an *IdentifierName or *TSQualifiedName.
type TSTypeReference struct {
	Base
	Name          Node
	TypeArguments []TSType
}

func (*TSTypeReference) Kind() Kind  { return KindTSTypeReference }
func (*TSTypeReference) tsTypeNode() {}

// TSQualifiedName is `A.B.C` in type position. Left is an *IdentifierName
// or nested *TSQualifiedName.
type TSQualifiedName struct {
	Base
	Left  Node
	Right *IdentifierName
}

func (*TSQualifiedName) Kind() Kind { return KindTSQualifiedName }

type TSUnionType struct {
	Base
	Types []TSType
}

func (*TSUnionType) Kind() Kind  { return KindTSUnionType }
func (*TSUnionType) tsTypeNode() {}

type TSIntersectionType struct {
	Base
	Types []TSType
}

func (*TSIntersectionType) Kind() Kind  { return KindTSIntersectionType }
func (*TSIntersectionType) tsTypeNode() {}

type TSArrayType struct {
	Base
	Element TSType
}

func (*TSArrayType) Kind() Kind  { return KindTSArrayType }
func (*TSArrayType) tsTypeNode() {}

type TSTupleType struct {
	Base
	Elements []TSType
}

func (*TSTupleType) Kind() Kind  { return KindTSTupleType }
func (*TSTupleType) tsTypeNode() {}

// TSLiteralType is a literal in type position: `type T = "a" | 1`.
type TSLiteralType struct {
	Base
	Literal Expression
}

func (*TSLiteralType) Kind() Kind  { return KindTSLiteralType }
func (*TSLiteralType) tsTypeNode() {}

type TSTypeParameterDeclaration struct {
	Base
	Params []*TSTypeParameter
}

func (*TSTypeParameterDeclaration) Kind() Kind { return KindTSTypeParameterDeclaration }

type TSTypeParameter struct {
	Base
	Name       *BindingIdentifier
	Constraint TSType // nil if unconstrained
	Default    TSType // nil if no default
}

func (*TSTypeParameter) Kind() Kind { return KindTSTypeParameter }
