package handlers_test

import (
	"testing"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/frontend"
	"github.com/whisper-lang/whisper/internal/handlers"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
)

// runWithBoolBinding parses source, binds name = cond directly onto the
// module scope (the frontend's grammar has no boolean literal or
// comparison operator, so this is the only way to hand @IfStmt/@LoopStmt a
// Bool condition from a real parsed program rather than a hand-built node),
// and runs it to completion.
func runWithBoolBinding(t *testing.T, source, name string, cond bool) frame.EvalResult {
	t.Helper()
	h := heap.New()

	global := scope.NewGlobalScope(h)
	gobj, _ := h.Lookup(global)
	handlers.Register(h, gobj.(*scope.GlobalScope))

	module := scope.NewModuleScope(h, global)
	mobj, _ := h.Lookup(module)
	mobj.(*scope.ModuleScope).DefineProperty(name, scope.MakeSlot(values.NewBool(cond), true))

	l := frontend.New(source)
	b := syntax.NewBuilder()
	p := frontend.NewParser(l, b)
	root := p.ParseFile()
	if errs := p.Errors(); len(errs) > 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	tree := b.Build()

	term := frame.NewTerminalFrame()
	entry := frame.NewEntryFrame(term, syntax.SyntaxNodeRef{PST: tree, Offset: root}, module)
	return frame.Run(&frame.Context{Heap: h}, entry)
}

func TestIfStmtTakesThenBranchWhenTrue(t *testing.T) {
	result := runWithBoolBinding(t, "if cond { 1 } else { 2 }", "cond", true)
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.NewInt32(1)) {
		t.Fatalf("got %+v, want Value(Int32(1))", result)
	}
}

func TestIfStmtTakesElseBranchWhenFalse(t *testing.T) {
	result := runWithBoolBinding(t, "if cond { 1 } else { 2 }", "cond", false)
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.NewInt32(2)) {
		t.Fatalf("got %+v, want Value(Int32(2))", result)
	}
}

func TestIfStmtWithNoElseResolvesUndefinedWhenFalse(t *testing.T) {
	result := runWithBoolBinding(t, "if cond { 1 }", "cond", false)
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.Undefined()) {
		t.Fatalf("got %+v, want Value(Undefined)", result)
	}
}

func TestLoopStmtNeverRunsBodyWhenConditionStartsFalse(t *testing.T) {
	result := runWithBoolBinding(t, "while cond { 1 }", "cond", false)
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.Undefined()) {
		t.Fatalf("got %+v, want Value(Undefined)", result)
	}
}
