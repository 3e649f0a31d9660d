// Package semantic builds the scope tree, symbol table, and reference
// graph for one file, and in the same Analyze call lowers its control-flow
// graph (a separate walk, run before binding).
// Everything is indexed by small integer ids instead of pointers, which
// keeps the model cheap to traverse, trivially cloneable, and free of the
// symbol<->reference cycles a pointer graph would have.
package semantic

import (
	"strconv"

	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/cfg"
	"github.com/oxhq/jscore/internal/diagnostic"
)

type (
	SymbolID    uint32
	ScopeID     uint32
	ReferenceID uint32
)

// SymbolNone marks an unresolved reference.
const SymbolNone = ^SymbolID(0)

// SymbolFlags is the bitset describing how a symbol was declared.
type SymbolFlags uint16

const (
	FlagBlockScoped SymbolFlags = 1 << iota
	FlagFunctionScoped
	FlagConstVariable
	FlagClass
	FlagFunction
	FlagCatchVariable
	FlagImport
	FlagExport
	FlagTypeAlias
	FlagInterface
	FlagEnum
	FlagNamespace
	FlagParameter
	FlagUsing
)

// Symbol is the identity of one declared name.
type Symbol struct {
	Name       string
	Flags      SymbolFlags
	Scope      ScopeID
	Decl       ast.NodeID
	References []ReferenceID
}

// ScopeKind covers the scope-introducing constructs.
type ScopeKind uint8

const (
	ScopeProgram ScopeKind = iota
	ScopeFunction
	ScopeBlock
	ScopeCatch
	ScopeClass
	ScopeWith
	ScopeTSModule
	ScopeForHeader
	ScopeStaticBlock
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeProgram:
		return "program"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	case ScopeClass:
		return "class"
	case ScopeWith:
		return "with"
	case ScopeTSModule:
		return "ts-module"
	case ScopeForHeader:
		return "for-header"
	case ScopeStaticBlock:
		return "static-block"
	}
	return "?"
}

// IsHoistTarget reports whether `var` and function declarations land in
// this scope (the nearest enclosing function/module/program scope).
func (k ScopeKind) IsHoistTarget() bool {
	switch k {
	case ScopeProgram, ScopeFunction, ScopeTSModule, ScopeStaticBlock:
		return true
	}
	return false
}

// Scope is one node of the scope tree.
type Scope struct {
	Parent   ScopeID // ScopeID of the parent; the program scope is its own parent sentinel
	Kind     ScopeKind
	Bindings map[string]SymbolID
	Children []ScopeID
	// Node is the AST node that opened the scope (the function, block,
	// catch clause, ...; the program node for the root).
	Node ast.NodeID
}

// RefFlags describes how a reference uses its name.
type RefFlags uint8

const (
	RefRead RefFlags = 1 << iota
	RefWrite
	RefType
)

// Reference is one use site.
type Reference struct {
	Node   ast.NodeID
	Scope  ScopeID
	Symbol SymbolID // SymbolNone if unresolved
	Flags  RefFlags
}

// Model is the complete semantic model of one file. Like the AST it is
// single-writer and never crosses a goroutine boundary.
type Model struct {
	scopes  []Scope
	symbols []Symbol
	refs    []Reference

	// scopeOfNode maps a scope-opening AST node to its scope.
	scopeOfNode map[ast.NodeID]ScopeID
	// symbolOfDecl maps a declaring BindingIdentifier to its symbol.
	symbolOfDecl map[ast.NodeID]SymbolID
	// refOfNode maps an IdentifierReference node to its reference.
	refOfNode map[ast.NodeID]ReferenceID
	// refNames keeps the spelled name of each reference node; the AST is
	// not consulted again after binding.
	refNames map[ast.NodeID]string

	// Unresolved references, recorded on the program scope.
	unresolved []ReferenceID

	// CFG is the file's control-flow graph.
	CFG *cfg.Graph

	// Diags collects semantic errors; analysis never aborts.
	Diags []diagnostic.Diagnostic
}

// ProgramScope is the root scope's id.
const ProgramScope = ScopeID(0)

func (m *Model) Scope(id ScopeID) *Scope             { return &m.scopes[id] }
func (m *Model) Symbol(id SymbolID) *Symbol          { return &m.symbols[id] }
func (m *Model) Reference(id ReferenceID) *Reference { return &m.refs[id] }

func (m *Model) ScopeCount() int  { return len(m.scopes) }
func (m *Model) SymbolCount() int { return len(m.symbols) }

// ScopeOfNode returns the scope opened by node, if any.
func (m *Model) ScopeOfNode(id ast.NodeID) (ScopeID, bool) {
	s, ok := m.scopeOfNode[id]
	return s, ok
}

// SymbolOfDecl returns the symbol declared by a BindingIdentifier node.
func (m *Model) SymbolOfDecl(id ast.NodeID) (SymbolID, bool) {
	s, ok := m.symbolOfDecl[id]
	return s, ok
}

// RefOfNode returns the reference recorded for an IdentifierReference.
func (m *Model) RefOfNode(id ast.NodeID) (ReferenceID, bool) {
	r, ok := m.refOfNode[id]
	return r, ok
}

// Unresolved returns the references that bound to no symbol.
func (m *Model) Unresolved() []ReferenceID { return m.unresolved }

// Lookup resolves name from scope, walking the parent chain.
func (m *Model) Lookup(scope ScopeID, name string) (SymbolID, bool) {
	for {
		s := &m.scopes[scope]
		if id, ok := s.Bindings[name]; ok {
			return id, true
		}
		if scope == ProgramScope {
			return SymbolNone, false
		}
		scope = s.Parent
	}
}

// IsAncestorOrSelf reports whether anc is on scope's parent chain
// (inclusive): the well-formedness relation between a reference's scope
// and its symbol's declaring scope.
func (m *Model) IsAncestorOrSelf(anc, scope ScopeID) bool {
	for {
		if scope == anc {
			return true
		}
		if scope == ProgramScope {
			return false
		}
		scope = m.scopes[scope].Parent
	}
}

func (m *Model) newScope(parent ScopeID, kind ScopeKind, node ast.NodeID) ScopeID {
	id := ScopeID(len(m.scopes))
	m.scopes = append(m.scopes, Scope{
		Parent:   parent,
		Kind:     kind,
		Bindings: make(map[string]SymbolID),
		Node:     node,
	})
	if id != ProgramScope {
		m.scopes[parent].Children = append(m.scopes[parent].Children, id)
	}
	if node != 0 {
		m.scopeOfNode[node] = id
	}
	return id
}

// DeclareSymbol inserts a symbol into scope. Transform passes use this
// directly when synthesizing bindings.
func (m *Model) DeclareSymbol(name string, scope ScopeID, flags SymbolFlags, decl ast.NodeID) SymbolID {
	id := SymbolID(len(m.symbols))
	m.symbols = append(m.symbols, Symbol{Name: name, Flags: flags, Scope: scope, Decl: decl})
	m.scopes[scope].Bindings[name] = id
	if decl != 0 {
		m.symbolOfDecl[decl] = id
	}
	return id
}

// CreateChildScope adds a scope under parent; transform passes use it when
// they synthesize blocks.
func (m *Model) CreateChildScope(parent ScopeID, kind ScopeKind, node ast.NodeID) ScopeID {
	return m.newScope(parent, kind, node)
}

// ChangeScopeParent reparents child, used when a pass hoists statements
// out of their original block.
func (m *Model) ChangeScopeParent(child, newParent ScopeID) {
	old := m.scopes[child].Parent
	siblings := m.scopes[old].Children
	for i, c := range siblings {
		if c == child {
			m.scopes[old].Children = append(siblings[:i], siblings[i+1:]...)
			break
		}
	}
	m.scopes[child].Parent = newParent
	m.scopes[newParent].Children = append(m.scopes[newParent].Children, child)
}

// nameTaken reports whether name is bound anywhere in the model or used by
// an unresolved reference; the conservative collision test behind UID
// generation. Checking everything (not just the chain visible from one
// scope) costs little and makes a generated name safe to hoist anywhere.
func (m *Model) nameTaken(name string) bool {
	for i := range m.symbols {
		if m.symbols[i].Name == name {
			return true
		}
	}
	for _, rid := range m.unresolved {
		r := &m.refs[rid]
		if n, ok := m.refNames[r.Node]; ok && n == name {
			return true
		}
	}
	return false
}

// GenerateUID produces a fresh `_prefix`-style name guaranteed not to
// collide with any binding or unresolved reference in the file. The
// returned name still needs declaring (DeclareSymbol) by the caller.
func (m *Model) GenerateUID(prefix string) string {
	base := "_" + prefix
	name := base
	for i := 2; m.nameTaken(name); i++ {
		name = base + strconv.Itoa(i)
	}
	return name
}
