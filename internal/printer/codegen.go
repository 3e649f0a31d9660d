package printer

import (
	"strings"

	"github.com/oxhq/jscore/internal/ast"
)

// PrintProgram formats a whole program.
func PrintProgram(prog *ast.Program, opts Options) string {
	g := &generator{opts: opts}
	var items []Doc
	if prog.Hashbang != "" {
		items = append(items, text(prog.Hashbang))
	}
	for _, s := range prog.Body {
		items = append(items, g.stmt(s))
	}
	return Print(join(hardline(), items), opts)
}

type generator struct {
	opts Options
}

func (g *generator) semi() Doc {
	if g.opts.Semi {
		return text(";")
	}
	return text("")
}

// quote re-quotes a decoded string value with the configured quote
// character, escaping as needed.
func (g *generator) quote(value string, jsx bool) string {
	single := g.opts.SingleQuote
	if jsx {
		single = g.opts.JSXSingleQuote
	}
	q := byte('"')
	if single {
		q = '\''
	}
	var sb strings.Builder
	sb.WriteByte(q)
	for _, r := range value {
		switch r {
		case rune(q):
			sb.WriteByte('\\')
			sb.WriteRune(r)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte(q)
	return sb.String()
}

func (g *generator) trailingComma(kind string) Doc {
	switch g.opts.TrailingComma {
	case "none":
		return text("")
	case "es5":
		if kind == "args" || kind == "params" {
			return text("")
		}
	}
	return ifBreak(text(","), text(""))
}

// listDoc renders a bracketed, comma-separated, group-broken list.
func (g *generator) listDoc(open, close string, items []Doc, trailing Doc, spaced bool) Doc {
	if len(items) == 0 {
		return text(open + close)
	}
	inner := join(concat(text(","), line()), items)
	lead, tail := softline(), softline()
	if spaced {
		lead, tail = line(), line()
	}
	return group(
		text(open),
		indent(lead, inner, trailing),
		tail,
		text(close),
	)
}

func (g *generator) block(body []ast.Statement) Doc {
	if len(body) == 0 {
		return text("{}")
	}
	var items []Doc
	for _, s := range body {
		items = append(items, g.stmt(s))
	}
	return concat(text("{"), blockIndent(join(hardline(), items)), text("}"))
}

func (g *generator) stmt(s ast.Statement) Doc {
	switch t := s.(type) {
	case *ast.BlockStatement:
		return g.block(t.Body)
	case *ast.EmptyStatement:
		return text(";")
	case *ast.DebuggerStatement:
		return concat(text("debugger"), g.semi())

	case *ast.ExpressionStatement:
		return concat(g.expr(t.Expression), g.semi())

	case *ast.VariableDeclaration:
		return concat(g.varDecl(t), g.semi())

	case *ast.FunctionDeclaration:
		return g.functionDoc("function", t.Name, t.FunctionParts)

	case *ast.ClassDeclaration:
		return g.classDoc(t.Name, t.SuperClass, t.ClassBody)

	case *ast.IfStatement:
		doc := concat(
			text("if ("),
			group(indent(softline(), g.expr(t.Test)), softline()),
			text(") "),
			g.stmtAsBlock(t.Consequent),
		)
		if t.Alternate != nil {
			if _, isIf := t.Alternate.(*ast.IfStatement); isIf {
				return concat(doc, text(" else "), g.stmt(t.Alternate))
			}
			return concat(doc, text(" else "), g.stmtAsBlock(t.Alternate))
		}
		return doc

	case *ast.ForStatement:
		var init Doc = text("")
		switch i := t.Init.(type) {
		case *ast.VariableDeclaration:
			init = g.varDecl(i)
		case ast.Expression:
			init = g.expr(i)
		}
		test, update := Doc(text("")), Doc(text(""))
		if t.Test != nil {
			test = g.expr(t.Test)
		}
		if t.Update != nil {
			update = g.expr(t.Update)
		}
		return concat(
			text("for ("), init, text("; "), test, text("; "), update, text(") "),
			g.stmtAsBlock(t.Body),
		)

	case *ast.ForInStatement:
		return concat(text("for ("), g.forTarget(t.Left), text(" in "), g.expr(t.Right), text(") "), g.stmtAsBlock(t.Body))
	case *ast.ForOfStatement:
		kw := "for ("
		if t.Await {
			kw = "for await ("
		}
		return concat(text(kw), g.forTarget(t.Left), text(" of "), g.expr(t.Right), text(") "), g.stmtAsBlock(t.Body))

	case *ast.WhileStatement:
		return concat(text("while ("), g.expr(t.Test), text(") "), g.stmtAsBlock(t.Body))
	case *ast.DoWhileStatement:
		return concat(text("do "), g.stmtAsBlock(t.Body), text(" while ("), g.expr(t.Test), text(")"), g.semi())

	case *ast.SwitchStatement:
		var cases []Doc
		for _, c := range t.Cases {
			var head Doc
			if c.Test != nil {
				head = concat(text("case "), g.expr(c.Test), text(":"))
			} else {
				head = text("default:")
			}
			if len(c.Consequent) == 0 {
				cases = append(cases, head)
				continue
			}
			var body []Doc
			for _, cs := range c.Consequent {
				body = append(body, g.stmt(cs))
			}
			cases = append(cases, concat(head, indent(hardline(), join(hardline(), body))))
		}
		return concat(
			text("switch ("), g.expr(t.Discriminant), text(") {"),
			blockIndent(join(hardline(), cases)),
			text("}"),
		)

	case *ast.TryStatement:
		doc := concat(text("try "), g.block(t.Block.Body))
		if t.Handler != nil {
			doc = concat(doc, text(" catch "))
			if t.Handler.Param != nil {
				doc = concat(doc, text("("), g.pattern(t.Handler.Param), text(") "))
			}
			doc = concat(doc, g.block(t.Handler.Body.Body))
		}
		if t.Finalizer != nil {
			doc = concat(doc, text(" finally "), g.block(t.Finalizer.Body))
		}
		return doc

	case *ast.LabeledStatement:
		return concat(text(t.Label.Name), text(": "), g.stmt(t.Body))
	case *ast.ThrowStatement:
		return concat(text("throw "), g.expr(t.Argument), g.semi())
	case *ast.ReturnStatement:
		if t.Argument == nil {
			return concat(text("return"), g.semi())
		}
		return concat(text("return "), g.expr(t.Argument), g.semi())
	case *ast.BreakStatement:
		if t.Label != nil {
			return concat(text("break "), text(t.Label.Name), g.semi())
		}
		return concat(text("break"), g.semi())
	case *ast.ContinueStatement:
		if t.Label != nil {
			return concat(text("continue "), text(t.Label.Name), g.semi())
		}
		return concat(text("continue"), g.semi())
	case *ast.WithStatement:
		return concat(text("with ("), g.expr(t.Object), text(") "), g.stmtAsBlock(t.Body))

	case *ast.ImportDeclaration:
		return g.importDoc(t)
	case *ast.ExportNamedDeclaration:
		return g.exportNamedDoc(t)
	case *ast.ExportDefaultDeclaration:
		switch d := t.Declaration.(type) {
		case ast.Statement:
			return concat(text("export default "), g.stmt(d))
		case ast.Expression:
			return concat(text("export default "), g.expr(d), g.semi())
		}
		return text("export default")
	case *ast.ExportAllDeclaration:
		doc := text("export *")
		if t.Exported != nil {
			doc = concat(doc, text(" as "), text(t.Exported.Name))
		}
		return concat(doc, text(" from "), text(g.quote(t.Source.Value, false)), g.semi())

	case *ast.TSEnumDeclaration:
		var members []Doc
		for _, m := range t.Members {
			md := g.propertyKey(m.Name, false)
			if m.Init != nil {
				md = concat(md, text(" = "), g.expr(m.Init))
			}
			members = append(members, md)
		}
		kw := "enum "
		if t.Const {
			kw = "const enum "
		}
		return concat(text(kw), text(t.Name.Name), text(" {"), blockIndent(join(concat(text(","), hardline()), members), text(",")), text("}"))

	case *ast.TSInterfaceDeclaration:
		return g.interfaceDoc(t)
	case *ast.TSTypeAliasDeclaration:
		doc := concat(text("type "), text(t.Name.Name))
		if t.TypeParameters != nil {
			doc = concat(doc, g.typeParams(t.TypeParameters))
		}
		return concat(doc, text(" = "), g.tsType(t.Type), g.semi())
	case *ast.TSModuleDeclaration:
		var name Doc
		switch n := t.Name.(type) {
		case *ast.BindingIdentifier:
			name = text(n.Name)
		case *ast.StringLiteral:
			name = text(g.quote(n.Value, false))
		}
		return concat(text("namespace "), name, text(" "), g.block(t.Body))
	}
	return text("")
}

// stmtAsBlock keeps single statements readable after control keywords:
// blocks print as blocks, single statements stay on the same line.
func (g *generator) stmtAsBlock(s ast.Statement) Doc {
	if b, ok := s.(*ast.BlockStatement); ok {
		return g.block(b.Body)
	}
	return g.stmt(s)
}

func (g *generator) forTarget(left ast.Node) Doc {
	switch t := left.(type) {
	case *ast.VariableDeclaration:
		return g.varDecl(t)
	case ast.Pattern:
		return g.pattern(t)
	case ast.Expression:
		return g.expr(t)
	}
	return text("")
}

func (g *generator) varDecl(t *ast.VariableDeclaration) Doc {
	var decls []Doc
	for _, d := range t.Declarations {
		dd := g.pattern(d.Name)
		if d.Init != nil {
			dd = concat(dd, text(" = "), g.expr(d.Init))
		}
		decls = append(decls, dd)
	}
	return group(text(t.VarKind.String()), text(" "), indent(join(concat(text(","), line()), decls)))
}

func (g *generator) functionDoc(kw string, name *ast.BindingIdentifier, parts ast.FunctionParts) Doc {
	var head []Doc
	if parts.Async {
		head = append(head, text("async "))
	}
	head = append(head, text(kw))
	if parts.Generator {
		head = append(head, text("*"))
	}
	if name != nil {
		head = append(head, text(" "), text(name.Name))
	} else if kw == "function" {
		head = append(head, text(" "))
	}
	if parts.TypeParameters != nil {
		head = append(head, g.typeParams(parts.TypeParameters))
	}
	head = append(head, g.paramsDoc(parts.Params))
	if parts.ReturnType != nil {
		head = append(head, text(": "), g.tsType(parts.ReturnType.Type))
	}
	head = append(head, text(" "))
	if parts.Body != nil {
		head = append(head, g.block(parts.Body.Body))
	} else {
		head = append(head, text("{}"))
	}
	return concat(head...)
}

func (g *generator) paramsDoc(params []ast.Pattern) Doc {
	var items []Doc
	for _, p := range params {
		items = append(items, g.pattern(p))
	}
	return g.listDoc("(", ")", items, g.trailingComma("params"), false)
}

func (g *generator) classDoc(name *ast.BindingIdentifier, super ast.Expression, body *ast.ClassBody) Doc {
	doc := text("class")
	if name != nil {
		doc = concat(doc, text(" "), text(name.Name))
	}
	if super != nil {
		doc = concat(doc, text(" extends "), g.expr(super))
	}
	if body == nil || len(body.Members) == 0 {
		return concat(doc, text(" {}"))
	}
	var members []Doc
	for _, m := range body.Members {
		members = append(members, g.classMember(m))
	}
	return concat(doc, text(" {"), blockIndent(join(hardline(), members)), text("}"))
}

func (g *generator) classMember(m ast.ClassMember) Doc {
	switch t := m.(type) {
	case *ast.MethodDefinition:
		var parts []Doc
		if t.Static {
			parts = append(parts, text("static "))
		}
		if t.Value.Async {
			parts = append(parts, text("async "))
		}
		if t.Value.Generator {
			parts = append(parts, text("*"))
		}
		switch t.MethodKind {
		case ast.MethodGet:
			parts = append(parts, text("get "))
		case ast.MethodSet:
			parts = append(parts, text("set "))
		}
		parts = append(parts, g.propertyKey(t.Key, t.Computed))
		parts = append(parts, g.paramsDoc(t.Value.Params))
		if t.Value.ReturnType != nil {
			parts = append(parts, text(": "), g.tsType(t.Value.ReturnType.Type))
		}
		parts = append(parts, text(" "))
		if t.Value.Body != nil {
			parts = append(parts, g.block(t.Value.Body.Body))
		} else {
			parts = append(parts, text("{}"))
		}
		return concat(parts...)

	case *ast.PropertyDefinition:
		var parts []Doc
		if t.Static {
			parts = append(parts, text("static "))
		}
		parts = append(parts, g.propertyKey(t.Key, t.Computed))
		if t.TypeAnnotation != nil {
			parts = append(parts, text(": "), g.tsType(t.TypeAnnotation.Type))
		}
		if t.Value != nil {
			parts = append(parts, text(" = "), g.expr(t.Value))
		}
		parts = append(parts, text(";"))
		return concat(parts...)

	case *ast.StaticBlock:
		return concat(text("static "), g.block(t.Body))
	}
	return text("")
}

func (g *generator) propertyKey(key ast.Node, computed bool) Doc {
	if computed {
		if e, ok := key.(ast.Expression); ok {
			return concat(text("["), g.expr(e), text("]"))
		}
	}
	switch k := key.(type) {
	case *ast.IdentifierName:
		return text(k.Name)
	case *ast.PrivateIdentifier:
		return text(k.Name)
	case *ast.StringLiteral:
		if g.opts.QuoteProps == "as-needed" && isIdentifierLike(k.Value) {
			return text(k.Value)
		}
		return text(g.quote(k.Value, false))
	case *ast.NumericLiteral:
		return text(k.Raw)
	case ast.Expression:
		return g.expr(k)
	}
	return text("")
}

func isIdentifierLike(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		isAlpha := r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		if i == 0 && !isAlpha {
			return false
		}
		if !isAlpha && !(r >= '0' && r <= '9') {
			return false
		}
	}
	return true
}

func (g *generator) importDoc(t *ast.ImportDeclaration) Doc {
	kw := "import "
	if t.TypeOnly {
		kw = "import type "
	}
	if len(t.Specifiers) == 0 {
		return concat(text("import "), text(g.quote(t.Source.Value, false)), g.semi())
	}

	var head []Doc
	var named []Doc
	for _, spec := range t.Specifiers {
		switch sp := spec.(type) {
		case *ast.ImportDefaultSpecifier:
			head = append(head, text(sp.Local.Name))
		case *ast.ImportNamespaceSpecifier:
			head = append(head, text("* as "+sp.Local.Name))
		case *ast.ImportSpecifier:
			var nm string
			switch imp := sp.Imported.(type) {
			case *ast.IdentifierName:
				nm = imp.Name
			case *ast.StringLiteral:
				nm = g.quote(imp.Value, false)
			}
			if nm == sp.Local.Name {
				named = append(named, text(nm))
			} else {
				named = append(named, text(nm+" as "+sp.Local.Name))
			}
		}
	}
	if len(named) > 0 {
		head = append(head, g.listDoc("{", "}", named, g.trailingComma("named"), g.opts.BracketSpacing))
	}
	return concat(text(kw), join(text(", "), head), text(" from "), text(g.quote(t.Source.Value, false)), g.semi())
}

func (g *generator) exportNamedDoc(t *ast.ExportNamedDeclaration) Doc {
	if t.Declaration != nil {
		return concat(text("export "), g.stmt(t.Declaration))
	}
	var named []Doc
	for _, sp := range t.Specifiers {
		local := g.moduleName(sp.Local)
		exported := g.moduleName(sp.Exported)
		if local == exported {
			named = append(named, text(local))
		} else {
			named = append(named, text(local+" as "+exported))
		}
	}
	kw := "export "
	if t.TypeOnly {
		kw = "export type "
	}
	doc := concat(text(kw), g.listDoc("{", "}", named, g.trailingComma("named"), g.opts.BracketSpacing))
	if t.Source != nil {
		doc = concat(doc, text(" from "), text(g.quote(t.Source.Value, false)))
	}
	return concat(doc, g.semi())
}

func (g *generator) moduleName(n ast.Node) string {
	switch t := n.(type) {
	case *ast.IdentifierName:
		return t.Name
	case *ast.IdentifierReference:
		return t.Name
	case *ast.StringLiteral:
		return g.quote(t.Value, false)
	}
	return ""
}

func (g *generator) interfaceDoc(t *ast.TSInterfaceDeclaration) Doc {
	doc := concat(text("interface "), text(t.Name.Name))
	if t.TypeParameters != nil {
		doc = concat(doc, g.typeParams(t.TypeParameters))
	}
	if len(t.Extends) > 0 {
		var exts []Doc
		for _, e := range t.Extends {
			exts = append(exts, g.tsType(e))
		}
		doc = concat(doc, text(" extends "), join(text(", "), exts))
	}
	if t.Body == nil || len(t.Body.Members) == 0 {
		return concat(doc, text(" {}"))
	}
	var members []Doc
	for _, m := range t.Body.Members {
		md := g.propertyKey(m.Key, false)
		if m.Optional {
			md = concat(md, text("?"))
		}
		if m.Readonly {
			md = concat(text("readonly "), md)
		}
		if m.TypeAnnotation != nil {
			md = concat(md, text(": "), g.tsType(m.TypeAnnotation.Type))
		}
		members = append(members, concat(md, text(";")))
	}
	return concat(doc, text(" {"), blockIndent(join(hardline(), members)), text("}"))
}
