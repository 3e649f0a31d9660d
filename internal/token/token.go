// Package token defines the token kinds produced by internal/lexer and
// consumed by internal/parser.
package token

// Kind identifies the lexical category of a Token. It is a closed set: the
// lexer never produces a Kind the parser doesn't know how to handle.
type Kind uint8

const (
	Invalid Kind = iota
	EOF

	// Identifiers and keywords. Keywords are tokenized as their own Kind so
	// the parser can switch on them directly instead of re-comparing
	// strings; Identifier covers everything else, including contextual
	// keywords (`async`, `of`, `as`, `from`, `get`, `set`, `type`, `namespace`,
	// `declare`, `readonly`, `is`, `infer`, `satisfies`, `abstract`, ...),
	// which the parser disambiguates from position, not the lexer.
	Identifier
	PrivateIdentifier // #name

	// Literals.
	NumericLiteral
	BigIntLiteral
	StringLiteral
	RegularExpressionLiteral
	NoSubstitutionTemplate
	TemplateHead
	TemplateMiddle
	TemplateTail

	// Reserved words that matter to parsing control flow (a representative
	// subset of ECMA-262's reserved word list; contextual keywords are not
	// included here, see Identifier above).
	KeywordBreak
	KeywordCase
	KeywordCatch
	KeywordClass
	KeywordConst
	KeywordContinue
	KeywordDebugger
	KeywordDefault
	KeywordDelete
	KeywordDo
	KeywordElse
	KeywordEnum
	KeywordExport
	KeywordExtends
	KeywordFalse
	KeywordFinally
	KeywordFor
	KeywordFunction
	KeywordIf
	KeywordImport
	KeywordIn
	KeywordInstanceof
	KeywordLet
	KeywordNew
	KeywordNull
	KeywordReturn
	KeywordSuper
	KeywordSwitch
	KeywordThis
	KeywordThrow
	KeywordTrue
	KeywordTry
	KeywordTypeof
	KeywordVar
	KeywordVoid
	KeywordWhile
	KeywordWith
	KeywordYield
	KeywordInterface // TS
	KeywordImplements

	// Punctuators.
	LBrace    // {
	RBrace    // }
	LParen    // (
	RParen    // )
	LBracket  // [
	RBracket  // ]
	Dot       // .
	DotDotDot // ...
	Semicolon
	Comma
	LAngle  // <
	RAngle  // >
	LtEq    // <=
	GtEq    // >=
	EqEq    // ==
	NotEq   // !=
	EqEqEq  // ===
	NotEqEq // !==
	Plus
	Minus
	Star
	StarStar // **
	Slash
	Percent
	PlusPlus
	MinusMinus
	LShift    // <<
	RShift    // >>
	URShift   // >>>
	Amp       // &
	Pipe      // |
	Caret     // ^
	Bang      // !
	Tilde     // ~
	AmpAmp    // &&
	PipePipe  // ||
	QQ        // ??
	Question  // ?
	QDot      // ?.
	Colon     // :
	Eq        // =
	PlusEq    // +=
	MinusEq   // -=
	StarEq    // *=
	SlashEq   // /=
	PercentEq // %=
	StarStarEq
	LShiftEq
	RShiftEq
	URShiftEq
	AmpEq
	PipeEq
	CaretEq
	AmpAmpEq
	PipePipeEq
	QQEq
	Arrow // =>
	At    // @ (decorators)

	// JSX (only produced when the source type flags jsx).
	JSXText
	JSXIdentifier

	numKinds
)

var names = [numKinds]string{
	Invalid: "Invalid", EOF: "EOF",
	Identifier: "Identifier", PrivateIdentifier: "PrivateIdentifier",
	NumericLiteral: "NumericLiteral", BigIntLiteral: "BigIntLiteral",
	StringLiteral: "StringLiteral", RegularExpressionLiteral: "RegularExpressionLiteral",
	NoSubstitutionTemplate: "NoSubstitutionTemplate", TemplateHead: "TemplateHead",
	TemplateMiddle: "TemplateMiddle", TemplateTail: "TemplateTail",
	KeywordBreak: "break", KeywordCase: "case", KeywordCatch: "catch",
	KeywordClass: "class", KeywordConst: "const", KeywordContinue: "continue",
	KeywordDebugger: "debugger", KeywordDefault: "default", KeywordDelete: "delete",
	KeywordDo: "do", KeywordElse: "else", KeywordEnum: "enum", KeywordExport: "export",
	KeywordExtends: "extends", KeywordFalse: "false", KeywordFinally: "finally",
	KeywordFor: "for", KeywordFunction: "function", KeywordIf: "if",
	KeywordImport: "import", KeywordIn: "in", KeywordInstanceof: "instanceof",
	KeywordLet: "let", KeywordNew: "new", KeywordNull: "null", KeywordReturn: "return",
	KeywordSuper: "super", KeywordSwitch: "switch", KeywordThis: "this",
	KeywordThrow: "throw", KeywordTrue: "true", KeywordTry: "try",
	KeywordTypeof: "typeof", KeywordVar: "var", KeywordVoid: "void",
	KeywordWhile: "while", KeywordWith: "with", KeywordYield: "yield",
	KeywordInterface: "interface", KeywordImplements: "implements",
	LBrace: "{", RBrace: "}", LParen: "(", RParen: ")", LBracket: "[", RBracket: "]",
	Dot: ".", DotDotDot: "...", Semicolon: ";", Comma: ",",
	LAngle: "<", RAngle: ">", LtEq: "<=", GtEq: ">=",
	EqEq: "==", NotEq: "!=", EqEqEq: "===", NotEqEq: "!==",
	Plus: "+", Minus: "-", Star: "*", StarStar: "**", Slash: "/", Percent: "%",
	PlusPlus: "++", MinusMinus: "--",
	LShift: "<<", RShift: ">>", URShift: ">>>",
	Amp: "&", Pipe: "|", Caret: "^", Bang: "!", Tilde: "~",
	AmpAmp: "&&", PipePipe: "||", QQ: "??", Question: "?", QDot: "?.", Colon: ":",
	Eq: "=", PlusEq: "+=", MinusEq: "-=", StarEq: "*=", SlashEq: "/=", PercentEq: "%=",
	StarStarEq: "**=", LShiftEq: "<<=", RShiftEq: ">>=", URShiftEq: ">>>=",
	AmpEq: "&=", PipeEq: "|=", CaretEq: "^=", AmpAmpEq: "&&=", PipePipeEq: "||=", QQEq: "??=",
	Arrow: "=>", At: "@",
	JSXText: "JSXText", JSXIdentifier: "JSXIdentifier",
}

func (k Kind) String() string {
	if int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return "Kind(?)"
}

// keywords maps the reserved-word spelling to its Kind. Contextual keywords
// are deliberately absent: the lexer always returns Identifier for them and
// lets the parser decide; only reserved words are lexer-level.
var keywords = map[string]Kind{
	"break": KeywordBreak, "case": KeywordCase, "catch": KeywordCatch,
	"class": KeywordClass, "const": KeywordConst, "continue": KeywordContinue,
	"debugger": KeywordDebugger, "default": KeywordDefault, "delete": KeywordDelete,
	"do": KeywordDo, "else": KeywordElse, "enum": KeywordEnum, "export": KeywordExport,
	"extends": KeywordExtends, "false": KeywordFalse, "finally": KeywordFinally,
	"for": KeywordFor, "function": KeywordFunction, "if": KeywordIf,
	"import": KeywordImport, "in": KeywordIn, "instanceof": KeywordInstanceof,
	"let": KeywordLet, "new": KeywordNew, "null": KeywordNull, "return": KeywordReturn,
	"super": KeywordSuper, "switch": KeywordSwitch, "this": KeywordThis,
	"throw": KeywordThrow, "true": KeywordTrue, "try": KeywordTry,
	"typeof": KeywordTypeof, "var": KeywordVar, "void": KeywordVoid,
	"while": KeywordWhile, "with": KeywordWith, "yield": KeywordYield,
	"interface": KeywordInterface, "implements": KeywordImplements,
}

// LookupKeyword returns the reserved-word Kind for ident, or (Identifier,
// false) if ident is not a reserved word.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Span mirrors arena node spans: byte offsets into the UTF-8 source.
type Span struct {
	Start uint32
	End   uint32
}

// NumberFlags records which literal form a NumericLiteral/BigIntLiteral was
// written in, since the parser/printer need to roundtrip that (e.g. "0x1F"
// must not be reprinted as "31").
type NumberFlags uint8

const (
	NumberDecimal NumberFlags = iota
	NumberHex
	NumberOctal
	NumberBinary
	NumberLegacyOctal // "0123" form: a strict-mode error, still tokenized
)

// Token is the value the lexer emits. Raw is always the exact source slice;
// Cooked holds the decoded string value for literals where that differs
// from Raw (string escapes, template cooked values, number literals), and
// is empty (with CookedValid false) when cooking failed, still legal for
// tagged templates.
type Token struct {
	Kind         Kind
	Span         Span
	Raw          string
	Cooked       string
	CookedValid  bool
	NumberFlags  NumberFlags
	HasLineBreakBefore bool // set when trivia before this token contained a newline (ASI)
}

// Trivia is a non-AST side channel entry: a comment (whitespace is not
// recorded), keyed by offset so the parser/formatter can reattach it to the
// nearest node later.
type Trivia struct {
	Span      Span
	Text      string
	Block     bool // /* ... */ vs // ...
	LineBreak bool // at least one newline between this trivia and the next token
}

// DiagnosticPlaceholder is attached to the trivia channel when the lexer
// recovers from invalid input instead of
// aborting; the parser or a later diagnostic pass turns these into real
// diagnostic.Diagnostic values once diagnostic.Bag is available to them.
type DiagnosticPlaceholder struct {
	Span    Span
	Message string
}
