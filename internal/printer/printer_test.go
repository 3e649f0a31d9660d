package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxhq/jscore/internal/arena"
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/parser"
)

func format(t *testing.T, src string, opts Options) string {
	t.Helper()
	st := ast.SourceType{Module: true, JSX: true, TypeScript: false}
	res := parser.Parse([]byte(src), st, arena.New())
	require.Empty(t, res.Errors, "fixture must parse: %s", src)
	return PrintProgram(res.Program, opts)
}

func TestPrintDocPrimitives(t *testing.T) {
	opts := DefaultOptions()
	opts.InsertFinalNewline = false

	// A group that fits stays flat.
	d := group(text("a"), line(), text("b"))
	assert.Equal(t, "a b", Print(d, opts))

	// The same group breaks when the width forces it.
	narrow := opts
	narrow.PrintWidth = 2
	d = group(text("a"), line(), text("b"))
	assert.Equal(t, "a\nb", Print(d, narrow))

	// Hard lines break enclosing groups no matter the width.
	d = group(text("a"), hardline(), text("b"))
	assert.Equal(t, "a\nb", Print(d, opts))

	// Indent applies to broken lines only.
	d = group(text("x {"), indent(hardline(), text("y")), hardline(), text("}"))
	assert.Equal(t, "x {\n  y\n}", Print(d, opts))

	// IfBreak selects by mode.
	d = group(text("a"), ifBreak(text("!"), text("?")))
	assert.Equal(t, "a?", Print(d, opts))
}

func TestPrintLineSuffix(t *testing.T) {
	opts := DefaultOptions()
	opts.InsertFinalNewline = false
	d := concat(
		text("code"),
		LineSuffix{Docs: []Doc{text(" // trailing")}},
		hardline(),
		text("next"),
	)
	assert.Equal(t, "code // trailing\nnext", Print(d, opts))
}

func TestFormatSimpleStatements(t *testing.T) {
	opts := DefaultOptions()
	out := format(t, "const x=1;let y =  'a'", opts)
	assert.Equal(t, "const x = 1;\nlet y = \"a\";\n", out)
}

func TestFormatSingleQuote(t *testing.T) {
	opts := DefaultOptions()
	opts.SingleQuote = true
	out := format(t, `const s = "hi";`, opts)
	assert.Equal(t, "const s = 'hi';\n", out)
}

// TestFormatJSXCurlyNever is the worked formatter scenario: string values
// lose their curly containers, props re-quote with double quotes, string
// children unwrap to text.
func TestFormatJSXCurlyNever(t *testing.T) {
	opts := DefaultOptions()
	out := format(t, "<App prop={'foo'}>{'bar'}</App>", opts)
	assert.Equal(t, "<App prop=\"foo\">bar</App>;\n", out)
}

func TestFormatJSXSelfClosing(t *testing.T) {
	opts := DefaultOptions()
	out := format(t, "<br/>", opts)
	assert.Equal(t, "<br />;\n", out)
}

func TestFormatBreaksLongCalls(t *testing.T) {
	opts := DefaultOptions()
	opts.PrintWidth = 40
	out := format(t, "fn(firstArgument, secondArgument, thirdArgument, fourthArgument);", opts)
	assert.Contains(t, out, "fn(\n")
	for _, ln := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len(ln), 40, "line %q exceeds print width", ln)
	}
}

func TestFormatKeepsShortCallsFlat(t *testing.T) {
	opts := DefaultOptions()
	out := format(t, "fn(a, b);", opts)
	assert.Equal(t, "fn(a, b);\n", out)
}

func TestFormatIdempotence(t *testing.T) {
	opts := DefaultOptions()
	fixtures := []string{
		"const x = 1; function f(a, b) { return a + b; }",
		"if (a) { b(); } else if (c) { d(); } else { e(); }",
		"const o = { a: 1, b: [2, 3], ...rest };",
		"class K extends Base { constructor(x) { super(); this.x = x; } get v() { return this.x; } }",
		"for (const x of xs) { if (!x) continue; use(x); }",
		"try { risky(); } catch (e) { log(e); } finally { done(); }",
		"const f = async (a, b = 1, ...rest) => a + b;",
		"export default function main() { return new App({ debug: true }); }",
		"import def, { a, b as c } from \"mod\";",
		"label: while (true) { break label; }",
		"const t = `x${1 + 2}y`;",
		"<App prop={'foo'} flag>{'bar'}<br /> tail </App>",
	}
	for _, src := range fixtures {
		once := format(t, src, opts)
		st := ast.SourceType{Module: true, JSX: true}
		res := parser.Parse([]byte(once), st, arena.New())
		require.Empty(t, res.Errors, "formatted output must reparse: %q -> %q", src, once)
		twice := PrintProgram(res.Program, opts)
		assert.Equal(t, once, twice, "format must be idempotent for %q", src)
	}
}

func TestPrintWidthDiscipline(t *testing.T) {
	opts := DefaultOptions()
	opts.PrintWidth = 30
	src := "const result = { alpha: one, beta: two, gamma: three, delta: four };"
	out := format(t, src, opts)
	for _, ln := range strings.Split(out, "\n") {
		// A single unbreakable token may exceed the width; none here do.
		assert.LessOrEqual(t, len(ln), 30, "line %q exceeds width", ln)
	}
}

func TestUseTabsIndent(t *testing.T) {
	opts := DefaultOptions()
	opts.UseTabs = true
	out := format(t, "function f() { return 1; }", opts)
	assert.Contains(t, out, "\n\treturn 1;")
}
