package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/token"
)

var exprCtx = Context{RegexAllowed: true}
var operatorCtx = Context{RegexAllowed: false}

func allTokens(l *Lexer, ctx Context) []token.Token {
	var toks []token.Token
	for {
		tok := l.Next(ctx)
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

func TestIdentifiersAndKeywords(t *testing.T) {
	l := New([]byte("let café = foo"), SourceType{})
	toks := allTokens(l, exprCtx)
	require.Len(t, toks, 5)
	assert.Equal(t, token.KeywordLet, toks[0].Kind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "café", toks[1].Raw)
	assert.Equal(t, token.Eq, toks[2].Kind)
	assert.Equal(t, token.Identifier, toks[3].Kind)
	assert.Equal(t, token.EOF, toks[4].Kind)
}

func TestLongIdentifierBatchBoundary(t *testing.T) {
	// Long enough to take one full batch of the ASCII scan and finish in
	// the per-byte tail.
	name := ""
	for i := 0; i < 50; i++ {
		name += "a"
	}
	l := New([]byte(name), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.Identifier, tok.Kind)
	assert.Equal(t, name, tok.Raw)
	assert.Equal(t, uint32(len(name)), tok.Span.End)
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		src   string
		flags token.NumberFlags
		kind  token.Kind
	}{
		{"123", token.NumberDecimal, token.NumericLiteral},
		{"1.5e10", token.NumberDecimal, token.NumericLiteral},
		{"0x1F", token.NumberHex, token.NumericLiteral},
		{"0o17", token.NumberOctal, token.NumericLiteral},
		{"0b101", token.NumberBinary, token.NumericLiteral},
		{"0123", token.NumberLegacyOctal, token.NumericLiteral},
		{"1_000_000", token.NumberDecimal, token.NumericLiteral},
		{"123n", token.NumberDecimal, token.BigIntLiteral},
	}
	for _, tc := range cases {
		l := New([]byte(tc.src), SourceType{})
		tok := l.Next(exprCtx)
		assert.Equal(t, tc.kind, tok.Kind, tc.src)
		assert.Equal(t, tc.flags, tok.NumberFlags, tc.src)
		assert.Equal(t, tc.src, tok.Raw, tc.src)
	}
}

func TestNumberSeparatorsStrippedFromCooked(t *testing.T) {
	l := New([]byte("1_000_000"), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, "1000000", tok.Cooked)
}

func TestStringEscapes(t *testing.T) {
	l := New([]byte(`"a\nbA\x42"`), SourceType{})
	tok := l.Next(exprCtx)
	require.Equal(t, token.StringLiteral, tok.Kind)
	require.True(t, tok.CookedValid)
	assert.Equal(t, "a\nbAB", tok.Cooked)
}

func TestStringInvalidEscapeStillProducesToken(t *testing.T) {
	l := New([]byte(`"a\01"`), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.StringLiteral, tok.Kind)
	assert.False(t, tok.CookedValid)
	require.Len(t, l.Diagnostics(), 0) // invalid escape is recorded on the token, not the trivia channel
}

func TestTemplateEmptySubstitution(t *testing.T) {
	l := New([]byte("`hello ${}world`"), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.TemplateHead, tok.Kind)
	assert.Equal(t, "hello ", tok.Cooked)

	mid := l.ScanTemplateContinuation()
	assert.Equal(t, token.TemplateTail, mid.Kind)
	assert.Equal(t, "world", mid.Cooked)
}

func TestTemplateHeadMiddleTail(t *testing.T) {
	l := New([]byte("`a${1}b${2}c`"), SourceType{})
	head := l.Next(exprCtx)
	assert.Equal(t, token.TemplateHead, head.Kind)
	assert.Equal(t, "a", head.Cooked)

	num1 := l.Next(exprCtx)
	assert.Equal(t, token.NumericLiteral, num1.Kind)

	mid := l.ScanTemplateContinuation()
	assert.Equal(t, token.TemplateMiddle, mid.Kind)
	assert.Equal(t, "b", mid.Cooked)

	num2 := l.Next(exprCtx)
	assert.Equal(t, token.NumericLiteral, num2.Kind)

	tail := l.ScanTemplateContinuation()
	assert.Equal(t, token.TemplateTail, tail.Kind)
	assert.Equal(t, "c", tail.Cooked)
}

func TestDivisionVsRegexContext(t *testing.T) {
	l := New([]byte("/abc/g"), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.RegularExpressionLiteral, tok.Kind)
	assert.Equal(t, "/abc/g", tok.Raw)

	l2 := New([]byte("/ 2"), SourceType{})
	tok2 := l2.Next(operatorCtx)
	assert.Equal(t, token.Slash, tok2.Kind)
}

func TestRegexWithCharacterClass(t *testing.T) {
	l := New([]byte(`/[a\/b]/`), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.RegularExpressionLiteral, tok.Kind)
	assert.Equal(t, `/[a\/b]/`, tok.Raw)
}

func TestOperatorLongestMatch(t *testing.T) {
	cases := []struct {
		src  string
		kind token.Kind
	}{
		{">>>=", token.URShiftEq},
		{">>>", token.URShift},
		{">>=", token.RShiftEq},
		{"===", token.EqEqEq},
		{"==", token.EqEq},
		{"=>", token.Arrow},
		{"?.", token.QDot},
		{"??=", token.QQEq},
		{"...", token.DotDotDot},
		{"**=", token.StarStarEq},
	}
	for _, tc := range cases {
		l := New([]byte(tc.src), SourceType{})
		tok := l.Next(operatorCtx)
		assert.Equal(t, tc.kind, tok.Kind, tc.src)
		assert.Equal(t, tc.src, tok.Raw, tc.src)
	}
}

func TestOptionalChainVsTernaryWithNumber(t *testing.T) {
	l := New([]byte("a ? .5 : 1"), SourceType{})
	tok := l.Next(exprCtx) // "a"
	assert.Equal(t, token.Identifier, tok.Kind)
	q := l.Next(exprCtx)
	assert.Equal(t, token.Question, q.Kind)
	num := l.Next(exprCtx)
	assert.Equal(t, token.NumericLiteral, num.Kind)
	assert.Equal(t, ".5", num.Raw)
}

func TestCommentsRecordedAsTrivia(t *testing.T) {
	l := New([]byte("// line comment\n/* block */ x"), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.Identifier, tok.Kind)
	trivia := l.Trivia()
	require.Len(t, trivia, 2)
	assert.False(t, trivia[0].Block)
	assert.True(t, trivia[1].Block)
}

func TestLineBreakBeforeTrackedForASI(t *testing.T) {
	l := New([]byte("a\nb"), SourceType{})
	first := l.Next(exprCtx)
	assert.False(t, first.HasLineBreakBefore)
	second := l.Next(exprCtx)
	assert.True(t, second.HasLineBreakBefore)
}

func TestPrivateIdentifier(t *testing.T) {
	l := New([]byte("#field"), SourceType{})
	tok := l.Next(exprCtx)
	assert.Equal(t, token.PrivateIdentifier, tok.Kind)
	assert.Equal(t, "#field", tok.Raw)
}
