package ast

import "github.com/oxhq/jscore/internal/token"

// IdentifierReference is a use site of a name. Resolution lives in the
// semantic model keyed by NodeID, not on the node itself, so re-binding
// after a transform never requires touching the tree.
type IdentifierReference struct {
	Base
	Name string
}

func (*IdentifierReference) Kind() Kind      { return KindIdentifierReference }
func (*IdentifierReference) expressionNode() {}

// BindingIdentifier introduces a name into a scope. TypeAnnotation and
// Optional are populated only for TypeScript sources (parameter and
// variable positions).
type BindingIdentifier struct {
	Base
	Name           string
	TypeAnnotation *TSTypeAnnotation
	Optional       bool
}

func (*BindingIdentifier) Kind() Kind   { return KindBindingIdentifier }
func (*BindingIdentifier) patternNode() {}

// IdentifierName is a name that neither binds nor references: member
// property names, labels, import/export names.
type IdentifierName struct {
	Base
	Name string
}

func (*IdentifierName) Kind() Kind { return KindIdentifierName }

// PrivateIdentifier is a `#name` in class bodies and `#name in obj` checks.
type PrivateIdentifier struct {
	Base
	Name string // includes the leading '#'
}

func (*PrivateIdentifier) Kind() Kind { return KindPrivateIdentifier }

// StringLiteral carries both the decoded value and the raw source slice;
// the printer re-quotes from Value, the raw form survives for tools that
// need the original escapes.
type StringLiteral struct {
	Base
	Value string
	Raw   string
}

func (*StringLiteral) Kind() Kind      { return KindStringLiteral }
func (*StringLiteral) expressionNode() {}

type NumericLiteral struct {
	Base
	Value float64
	Raw   string
	Flags token.NumberFlags
}

func (*NumericLiteral) Kind() Kind      { return KindNumericLiteral }
func (*NumericLiteral) expressionNode() {}

// BigIntLiteral keeps only the raw spelling (including the trailing `n`);
// no tool in the core needs the numeric value.
type BigIntLiteral struct {
	Base
	Raw string
}

func (*BigIntLiteral) Kind() Kind      { return KindBigIntLiteral }
func (*BigIntLiteral) expressionNode() {}

type BooleanLiteral struct {
	Base
	Value bool
}

func (*BooleanLiteral) Kind() Kind      { return KindBooleanLiteral }
func (*BooleanLiteral) expressionNode() {}

type NullLiteral struct {
	Base
}

func (*NullLiteral) Kind() Kind      { return KindNullLiteral }
func (*NullLiteral) expressionNode() {}

type RegExpLiteral struct {
	Base
	Pattern    string
	RegexFlags string
}

func (*RegExpLiteral) Kind() Kind      { return KindRegExpLiteral }
func (*RegExpLiteral) expressionNode() {}

// TemplateLiteral holds quasis and substitution expressions interleaved:
// len(Quasis) == len(Expressions)+1 always.
type TemplateLiteral struct {
	Base
	Quasis      []*TemplateElement
	Expressions []Expression
}

func (*TemplateLiteral) Kind() Kind      { return KindTemplateLiteral }
func (*TemplateLiteral) expressionNode() {}

// TemplateElement is one quasi. Cooked is absent (CookedValid false) for
// invalid escapes, which are legal in tagged templates.
type TemplateElement struct {
	Base
	Raw         string
	Cooked      string
	CookedValid bool
	Tail        bool
}

func (*TemplateElement) Kind() Kind { return KindTemplateElement }

type ThisExpression struct {
	Base
}

func (*ThisExpression) Kind() Kind      { return KindThisExpression }
func (*ThisExpression) expressionNode() {}

type Super struct {
	Base
}

func (*Super) Kind() Kind      { return KindSuper }
func (*Super) expressionNode() {}

// ArrayExpression elements may be nil (elisions: `[1, , 3]`).
type ArrayExpression struct {
	Base
	Elements []Expression
}

func (*ArrayExpression) Kind() Kind      { return KindArrayExpression }
func (*ArrayExpression) expressionNode() {}

type ObjectExpression struct {
	Base
	Properties []ObjectMember
}

func (*ObjectExpression) Kind() Kind      { return KindObjectExpression }
func (*ObjectExpression) expressionNode() {}

// PropertyKind distinguishes ordinary properties from accessors.
type PropertyKind uint8

const (
	PropertyInit PropertyKind = iota
	PropertyGet
	PropertySet
)

// ObjectProperty is one `key: value` (or shorthand, method, accessor) entry.
// Key is an *IdentifierName, *StringLiteral, *NumericLiteral, or (computed)
// any Expression.
type ObjectProperty struct {
	Base
	PropKind  PropertyKind
	Key       Node
	Value     Expression
	Computed  bool
	Shorthand bool
	Method    bool
}

func (*ObjectProperty) Kind() Kind        { return KindObjectProperty }
func (*ObjectProperty) objectMemberNode() {}

// SpreadElement is `...x` in array/object literals and call arguments.
type SpreadElement struct {
	Base
	Argument Expression
}

func (*SpreadElement) Kind() Kind        { return KindSpreadElement }
func (*SpreadElement) expressionNode()   {}
func (*SpreadElement) objectMemberNode() {}

// UnaryExpression's Op is one of Bang, Tilde, Plus, Minus, KeywordTypeof,
// KeywordVoid, KeywordDelete.
type UnaryExpression struct {
	Base
	Op       token.Kind
	Argument Expression
}

func (*UnaryExpression) Kind() Kind      { return KindUnaryExpression }
func (*UnaryExpression) expressionNode() {}

type UpdateExpression struct {
	Base
	Op       token.Kind // PlusPlus or MinusMinus
	Prefix   bool
	Argument Expression
}

func (*UpdateExpression) Kind() Kind      { return KindUpdateExpression }
func (*UpdateExpression) expressionNode() {}

type BinaryExpression struct {
	Base
	Op          token.Kind
	Left, Right Expression
}

func (*BinaryExpression) Kind() Kind      { return KindBinaryExpression }
func (*BinaryExpression) expressionNode() {}

// LogicalExpression is split from BinaryExpression because short-circuit
// operators have control-flow meaning the CFG builder cares about.
type LogicalExpression struct {
	Base
	Op          token.Kind // AmpAmp, PipePipe, QQ
	Left, Right Expression
}

func (*LogicalExpression) Kind() Kind      { return KindLogicalExpression }
func (*LogicalExpression) expressionNode() {}

// AssignmentExpression's Target is a Pattern (for destructuring and plain
// identifier targets) after cover-grammar conversion.
type AssignmentExpression struct {
	Base
	Op     token.Kind // Eq or a compound assignment operator
	Target Node       // Pattern, or an Expression left unconverted on recovery
	Value  Expression
}

func (*AssignmentExpression) Kind() Kind      { return KindAssignmentExpression }
func (*AssignmentExpression) expressionNode() {}

type ConditionalExpression struct {
	Base
	Test, Consequent, Alternate Expression
}

func (*ConditionalExpression) Kind() Kind      { return KindConditionalExpression }
func (*ConditionalExpression) expressionNode() {}

type CallExpression struct {
	Base
	Callee        Expression
	TypeArguments []TSType // `f<T>(x)`, TypeScript only
	Arguments     []Expression
	Optional      bool // `f?.()`
}

func (*CallExpression) Kind() Kind      { return KindCallExpression }
func (*CallExpression) expressionNode() {}

type NewExpression struct {
	Base
	Callee        Expression
	TypeArguments []TSType
	Arguments     []Expression
}

func (*NewExpression) Kind() Kind      { return KindNewExpression }
func (*NewExpression) expressionNode() {}

// MemberExpression. Property is an *IdentifierName (dot access), a
// *PrivateIdentifier, or any Expression when Computed.
type MemberExpression struct {
	Base
	Object   Expression
	Property Node
	Computed bool
	Optional bool // `a?.b`
}

func (*MemberExpression) Kind() Kind      { return KindMemberExpression }
func (*MemberExpression) expressionNode() {}
func (*MemberExpression) patternNode()    {}

// ChainExpression wraps the outermost optional-chain member/call so that
// short-circuiting scope is explicit in the tree.
type ChainExpression struct {
	Base
	Expression Expression
}

func (*ChainExpression) Kind() Kind      { return KindChainExpression }
func (*ChainExpression) expressionNode() {}

type SequenceExpression struct {
	Base
	Expressions []Expression
}

func (*SequenceExpression) Kind() Kind      { return KindSequenceExpression }
func (*SequenceExpression) expressionNode() {}

type TaggedTemplateExpression struct {
	Base
	Tag   Expression
	Quasi *TemplateLiteral
}

func (*TaggedTemplateExpression) Kind() Kind      { return KindTaggedTemplateExpression }
func (*TaggedTemplateExpression) expressionNode() {}

type YieldExpression struct {
	Base
	Argument Expression // may be nil
	Delegate bool       // `yield*`
}

func (*YieldExpression) Kind() Kind      { return KindYieldExpression }
func (*YieldExpression) expressionNode() {}

type AwaitExpression struct {
	Base
	Argument Expression
}

func (*AwaitExpression) Kind() Kind      { return KindAwaitExpression }
func (*AwaitExpression) expressionNode() {}

// ParenthesizedExpression is kept in the tree (rather than folded away) so
// the formatter can honor intent and the cover-grammar converter knows
// where parens were.
type ParenthesizedExpression struct {
	Base
	Expression Expression
}

func (*ParenthesizedExpression) Kind() Kind      { return KindParenthesizedExpression }
func (*ParenthesizedExpression) expressionNode() {}

// FunctionParts is the shared body of function declarations, function
// expressions, and methods.
type FunctionParts struct {
	Params         []Pattern
	Body           *BlockStatement
	Async          bool
	Generator      bool
	TypeParameters *TSTypeParameterDeclaration
	ReturnType     *TSTypeAnnotation
}

type ArrowFunctionExpression struct {
	Base
	Params []Pattern
	// Body is a *BlockStatement or, for concise bodies, an Expression.
	Body           Node
	Async          bool
	TypeParameters *TSTypeParameterDeclaration
	ReturnType     *TSTypeAnnotation
}

func (*ArrowFunctionExpression) Kind() Kind      { return KindArrowFunctionExpression }
func (*ArrowFunctionExpression) expressionNode() {}

type FunctionExpression struct {
	Base
	Name *BindingIdentifier // nil for anonymous
	FunctionParts
}

func (*FunctionExpression) Kind() Kind      { return KindFunctionExpression }
func (*FunctionExpression) expressionNode() {}

type ClassExpression struct {
	Base
	Name       *BindingIdentifier // nil for anonymous
	SuperClass Expression         // nil if none
	ClassBody  *ClassBody
}

func (*ClassExpression) Kind() Kind      { return KindClassExpression }
func (*ClassExpression) expressionNode() {}

// TSAsExpression is `expr as T`.
type TSAsExpression struct {
	Base
	Expression Expression
	Type       TSType
}

func (*TSAsExpression) Kind() Kind      { return KindTSAsExpression }
func (*TSAsExpression) expressionNode() {}

type TSSatisfiesExpression struct {
	Base
	Expression Expression
	Type       TSType
}

func (*TSSatisfiesExpression) Kind() Kind      { return KindTSSatisfiesExpression }
func (*TSSatisfiesExpression) expressionNode() {}

// TSNonNullExpression is `expr!`.
type TSNonNullExpression struct {
	Base
	Expression Expression
}

func (*TSNonNullExpression) Kind() Kind      { return KindTSNonNullExpression }
func (*TSNonNullExpression) expressionNode() {}
