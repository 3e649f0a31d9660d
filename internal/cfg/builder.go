package cfg

import (
	"github.com/oxhq/jscore/internal/ast"
	"github.com/oxhq/jscore/internal/visitor"
)

// Builder lowers statements into the graph. It tracks the "current" block
// and a stack of loop/switch contexts for break/continue targets, plus the
// enclosing try handler for implicit error edges.
type Builder struct {
	g   *Graph
	cur BlockID
	// loops is the stack of enclosing break/continue targets.
	loops []loopCtx
	// handler is the entry block of the innermost enclosing catch, or
	// noBlock when none; throwing statements get an implicit error edge to
	// it.
	handler BlockID
}

const noBlock = ^BlockID(0)

type loopCtx struct {
	label         string
	breakTarget   BlockID
	continueTgt   BlockID
	isSwitch      bool
	continueValid bool
}

// NewBuilder creates a builder with an empty entry block.
func NewBuilder() *Builder {
	b := &Builder{
		g:       &Graph{FunctionEntries: make(map[ast.NodeID]BlockID)},
		handler: noBlock,
	}
	b.cur = b.newBlock()
	b.g.Entry = b.cur
	return b
}

// Graph finalizes and returns the built graph.
func (b *Builder) Graph() *Graph { return b.g }

func (b *Builder) newBlock() BlockID {
	id := BlockID(len(b.g.Blocks))
	b.g.Blocks = append(b.g.Blocks, BasicBlock{ID: id})
	return id
}

func (b *Builder) edge(from, to BlockID, kind EdgeKind, label string) {
	b.g.Edges = append(b.g.Edges, Edge{From: from, To: to, Kind: kind, Label: label})
}

func (b *Builder) append(kind InstrKind, node ast.NodeID) {
	blk := &b.g.Blocks[b.cur]
	blk.Instrs = append(blk.Instrs, Instr{Kind: kind, Node: node})
}

// startBlock begins a new block connected from the current one.
func (b *Builder) startBlock(kind EdgeKind) BlockID {
	next := b.newBlock()
	b.edge(b.cur, next, kind, "")
	b.cur = next
	return next
}

// BuildProgram lowers a program body into the graph.
func (b *Builder) BuildProgram(prog *ast.Program) {
	for _, s := range prog.Body {
		b.stmt(s)
	}
}

// BuildFunction lowers a function body under a fresh entry block reached
// by a NewFunction edge from the creation site's block.
func (b *Builder) BuildFunction(fn ast.Node, body *ast.BlockStatement) {
	site := b.cur
	savedHandler := b.handler
	savedLoops := b.loops
	b.handler = noBlock
	b.loops = nil

	entry := b.newBlock()
	b.edge(site, entry, EdgeNewFunction, "")
	b.g.FunctionEntries[fn.ID()] = entry
	b.cur = entry
	if body != nil {
		for _, s := range body.Body {
			b.stmt(s)
		}
	}

	b.handler = savedHandler
	b.loops = savedLoops
	b.cur = site
}

// BuildArrowBody handles concise arrow bodies (a bare expression).
func (b *Builder) BuildArrowBody(fn ast.Node, body ast.Node) {
	if block, ok := body.(*ast.BlockStatement); ok {
		b.BuildFunction(fn, block)
		return
	}
	site := b.cur
	entry := b.newBlock()
	b.edge(site, entry, EdgeNewFunction, "")
	b.g.FunctionEntries[fn.ID()] = entry
	b.cur = entry
	b.append(InstrReturn, body.ID())
	b.scanFunctions(body)
	b.cur = site
}

func (b *Builder) stmt(s ast.Statement) {
	switch t := s.(type) {
	case *ast.BlockStatement:
		for _, inner := range t.Body {
			b.stmt(inner)
		}

	case *ast.IfStatement:
		b.append(InstrCondition, t.Test.ID())
		b.scanFunctions(t.Test)
		condBlock := b.cur

		thenEntry := b.newBlock()
		b.edge(condBlock, thenEntry, EdgeJump, "")
		b.cur = thenEntry
		b.stmt(t.Consequent)
		thenExit := b.cur

		var elseExit BlockID = condBlock
		if t.Alternate != nil {
			elseEntry := b.newBlock()
			b.edge(condBlock, elseEntry, EdgeJump, "")
			b.cur = elseEntry
			b.stmt(t.Alternate)
			elseExit = b.cur
		}

		join := b.newBlock()
		b.edge(thenExit, join, EdgeJoin, "")
		b.edge(elseExit, join, EdgeJoin, "")
		b.cur = join

	case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement,
		*ast.ForInStatement, *ast.ForOfStatement:
		b.loop(s, "")

	case *ast.LabeledStatement:
		switch t.Body.(type) {
		case *ast.WhileStatement, *ast.DoWhileStatement, *ast.ForStatement,
			*ast.ForInStatement, *ast.ForOfStatement:
			b.loop(t.Body, t.Label.Name)
		default:
			// A labeled non-loop: break targets the statement's end.
			end := b.newBlock()
			b.loops = append(b.loops, loopCtx{label: t.Label.Name, breakTarget: end})
			b.stmt(t.Body)
			b.loops = b.loops[:len(b.loops)-1]
			b.edge(b.cur, end, EdgeNormal, "")
			b.cur = end
		}

	case *ast.SwitchStatement:
		b.append(InstrCondition, t.Discriminant.ID())
		b.scanFunctions(t.Discriminant)
		head := b.cur
		end := b.newBlock()
		b.loops = append(b.loops, loopCtx{breakTarget: end, isSwitch: true})

		prevExit := noBlock
		for _, c := range t.Cases {
			entry := b.newBlock()
			b.edge(head, entry, EdgeJump, "")
			if prevExit != noBlock {
				// Fallthrough from the previous case body.
				b.edge(prevExit, entry, EdgeNormal, "")
			}
			b.cur = entry
			for _, cs := range c.Consequent {
				b.stmt(cs)
			}
			prevExit = b.cur
		}
		if prevExit != noBlock {
			b.edge(prevExit, end, EdgeNormal, "")
		}
		b.edge(head, end, EdgeJump, "") // no case matched
		b.loops = b.loops[:len(b.loops)-1]
		b.cur = end

	case *ast.TryStatement:
		b.buildTry(t)

	case *ast.ThrowStatement:
		b.append(InstrThrow, t.ID())
		b.scanFunctions(t.Argument)
		if b.handler != noBlock {
			b.edge(b.cur, b.handler, EdgeErrorExplicit, "")
		}
		b.startBlock(EdgeNormal) // unreachable continuation

	case *ast.ReturnStatement:
		b.append(InstrReturn, t.ID())
		b.scanFunctions(t.Argument)
		b.startBlock(EdgeNormal) // unreachable continuation

	case *ast.BreakStatement:
		b.append(InstrBreak, t.ID())
		label := ""
		if t.Label != nil {
			label = t.Label.Name
		}
		if target, ok := b.breakTarget(label); ok {
			b.edge(b.cur, target, EdgeJump, label)
		}
		b.startBlock(EdgeNormal)

	case *ast.ContinueStatement:
		b.append(InstrContinue, t.ID())
		label := ""
		if t.Label != nil {
			label = t.Label.Name
		}
		if target, ok := b.continueTarget(label); ok {
			b.edge(b.cur, target, EdgeBackedge, label)
		}
		b.startBlock(EdgeNormal)

	case *ast.FunctionDeclaration:
		b.append(InstrStatement, t.ID())
		b.BuildFunction(t, t.Body)

	default:
		b.append(InstrStatement, s.ID())
		b.scanFunctions(s)
	}
}

// scanFunctions finds function literals inside a statement's expressions
// and hangs their subgraphs off the current block. Nested statements are
// skipped (stmt lowers those itself) so each function is built once.
func (b *Builder) scanFunctions(root ast.Node) {
	if root == nil {
		return
	}
	visitor.Walk(root, visitor.FuncVisitor{OnEnter: func(n ast.Node) bool {
		if n != root {
			if _, isStmt := n.(ast.Statement); isStmt {
				return false
			}
		}
		switch t := n.(type) {
		case *ast.FunctionExpression:
			b.BuildFunction(t, t.Body)
			return false
		case *ast.ArrowFunctionExpression:
			b.BuildArrowBody(t, t.Body)
			return false
		}
		return true
	}})
}

// loop lowers any of the five loop statements with a shared shape: a head
// block holding the condition, a body, a back-edge, and an exit.
func (b *Builder) loop(s ast.Statement, label string) {
	var body ast.Statement
	var test ast.Expression
	isDoWhile := false

	switch t := s.(type) {
	case *ast.WhileStatement:
		body, test = t.Body, t.Test
	case *ast.DoWhileStatement:
		body, test = t.Body, t.Test
		isDoWhile = true
	case *ast.ForStatement:
		if t.Init != nil {
			b.append(InstrStatement, t.Init.ID())
			b.scanFunctions(t.Init)
		}
		body, test = t.Body, t.Test
	case *ast.ForInStatement:
		b.append(InstrStatement, t.Right.ID())
		b.scanFunctions(t.Right)
		body = t.Body
	case *ast.ForOfStatement:
		b.append(InstrStatement, t.Right.ID())
		b.scanFunctions(t.Right)
		body = t.Body
	}

	head := b.startBlock(EdgeNormal)
	if test != nil && !isDoWhile {
		b.append(InstrCondition, test.ID())
		b.scanFunctions(test)
	}
	exit := b.newBlock()
	if !isDoWhile {
		b.edge(head, exit, EdgeJump, "")
	}

	bodyEntry := b.newBlock()
	b.edge(head, bodyEntry, EdgeJump, "")
	b.cur = bodyEntry

	b.loops = append(b.loops, loopCtx{
		label:         label,
		breakTarget:   exit,
		continueTgt:   head,
		continueValid: true,
	})
	b.stmt(body)
	b.loops = b.loops[:len(b.loops)-1]

	if isDoWhile && test != nil {
		b.append(InstrCondition, test.ID())
		b.edge(b.cur, exit, EdgeJump, "")
	}
	b.edge(b.cur, head, EdgeBackedge, "")
	b.cur = exit
}

func (b *Builder) buildTry(t *ast.TryStatement) {
	var handlerEntry BlockID = noBlock
	if t.Handler != nil {
		handlerEntry = b.newBlock()
	}

	// Try block: any statement inside may implicitly reach the handler.
	b.startBlock(EdgeNormal)
	savedHandler := b.handler
	if handlerEntry != noBlock {
		b.handler = handlerEntry
		b.edge(b.cur, handlerEntry, EdgeErrorImplicit, "")
	}
	for _, s := range t.Block.Body {
		b.stmt(s)
	}
	b.handler = savedHandler
	tryExit := b.cur

	var handlerExit BlockID = noBlock
	if t.Handler != nil {
		b.cur = handlerEntry
		for _, s := range t.Handler.Body.Body {
			b.stmt(s)
		}
		handlerExit = b.cur
	}

	if t.Finalizer != nil {
		fin := b.newBlock()
		b.edge(tryExit, fin, EdgeFinalize, "")
		if handlerExit != noBlock {
			b.edge(handlerExit, fin, EdgeFinalize, "")
		}
		b.cur = fin
		for _, s := range t.Finalizer.Body {
			b.stmt(s)
		}
		return
	}

	join := b.newBlock()
	b.edge(tryExit, join, EdgeJoin, "")
	if handlerExit != noBlock {
		b.edge(handlerExit, join, EdgeJoin, "")
	}
	b.cur = join
}

func (b *Builder) breakTarget(label string) (BlockID, bool) {
	for i := len(b.loops) - 1; i >= 0; i-- {
		if label == "" || b.loops[i].label == label {
			return b.loops[i].breakTarget, true
		}
	}
	return 0, false
}

func (b *Builder) continueTarget(label string) (BlockID, bool) {
	for i := len(b.loops) - 1; i >= 0; i-- {
		if !b.loops[i].continueValid {
			continue
		}
		if label == "" || b.loops[i].label == label {
			return b.loops[i].continueTgt, true
		}
	}
	return 0, false
}
