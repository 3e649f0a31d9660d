package transform

import (
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/parser"
	"github.com/oxhq/jscore/internal/semantic"
	"github.com/oxhq/jscore/internal/visitor"
)

// HelperKind names an injectable runtime helper.
type HelperKind string

const (
	HelperUsingCtx       HelperKind = "usingCtx"
	HelperAsyncGenerator HelperKind = "asyncGenerator"
	HelperClassCallCheck HelperKind = "classCallCheck"
)

// helperSources is the read-only snippet table: process-global, never
// mutated after init. Each snippet declares one function named after its
// kind with a `Helper` suffix; injection renames it to a UID if the plain
// name is taken.
var helperSources = map[HelperKind]string{
	// u registers a sync disposable, a an async one, e stores the thrown
	// error, d runs disposals in reverse order (rethrowing a stored error
	// when disposal itself did not fail).
	HelperUsingCtx: `function _usingCtxHelper() {
  var empty = {};
  var stack = [];
  return {
    e: empty,
    u: function (value) {
      if (value !== null && value !== void 0) stack.push(value);
      return value;
    },
    a: function (value) {
      if (value !== null && value !== void 0) stack.push(value);
      return value;
    },
    d: function () {
      var error = this.e;
      for (var i = stack.length - 1; i >= 0; i--) {
        var r = stack[i];
        if (r && typeof r[Symbol.dispose] === "function") r[Symbol.dispose]();
      }
      if (error !== empty) throw error;
    },
  };
}`,
	HelperClassCallCheck: `function _classCallCheckHelper(instance, constructor) {
  if (!(instance instanceof constructor)) {
    throw new TypeError("Cannot call a class as a function");
  }
}`,
	HelperAsyncGenerator: `function _asyncGeneratorHelper(fn) {
  return function () {
    var args = arguments;
    var self = this;
    return new Promise(function (resolve, reject) {
      var gen = fn.apply(self, args);
      function step(key, arg) {
        var result;
        try {
          result = gen[key](arg);
        } catch (error) {
          reject(error);
          return;
        }
        if (result.done) {
          resolve(result.value);
        } else {
          Promise.resolve(result.value).then(
            function (v) { step("next", v); },
            function (e) { step("throw", e); }
          );
        }
      }
      step("next", void 0);
    });
  };
}`,
}

// Helper lazily injects the helper of the given kind as one top-level
// declaration and returns the stable identifier call sites use. Repeated
// requests return the same binding.
func (c *Context) Helper(kind HelperKind) *BoundIdentifier {
	if b, ok := c.helperNames[kind]; ok {
		return b
	}
	src, ok := helperSources[kind]
	if !ok {
		return nil
	}

	// Parse the snippet into this compilation's arena; snippets are
	// trusted constants, a parse error here is an internal invariant
	// violation.
	res := parser.Parse([]byte(src), ast.SourceType{}, c.Arena)
	if len(res.Errors) > 0 || len(res.Program.Body) == 0 {
		panic("helper snippet failed to parse: " + string(kind))
	}
	fn, ok := res.Program.Body[0].(*ast.FunctionDeclaration)
	if !ok || fn.Name == nil {
		panic("helper snippet is not a function declaration: " + string(kind))
	}

	// Re-stamp snippet node ids into this compilation's sequence so they
	// do not collide with the real file's.
	reID(c, fn)

	// The snippet's own name is already the `_<kind>Helper` convention;
	// UID generation keeps it when free and uniquifies it when user code
	// took it.
	name := c.Model.GenerateUID(string(kind) + "Helper")
	fn.Name.Name = name
	sym := c.Model.DeclareSymbol(name, semantic.ProgramScope, semantic.FlagFunction, fn.Name.ID())

	b := &BoundIdentifier{Name: name, Symbol: sym}
	c.helperNames[kind] = b
	c.helperDecls = append(c.helperDecls, fn)
	return b
}

// reID re-stamps every node of a snippet subtree with fresh ids from this
// compilation's sequence.
func reID(c *Context, root ast.Node) {
	visitor.Walk(root, visitor.FuncVisitor{OnEnter: func(n ast.Node) bool {
		if s, ok := n.(interface{ SetID(ast.NodeID) }); ok {
			s.SetID(c.newID())
		}
		return true
	}})
}
