package frame_test

import (
	"testing"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/handlers"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
)

func newGlobalScope(t *testing.T, h *heap.Heap) heap.Handle {
	t.Helper()
	g := scope.NewGlobalScope(h)
	obj, ok := h.Lookup(g)
	if !ok {
		t.Fatal("global scope handle did not resolve")
	}
	handlers.Register(h, obj.(*scope.GlobalScope))
	return g
}

func runEntry(t *testing.T, h *heap.Heap, node syntax.SyntaxNodeRef, sc heap.Handle) frame.EvalResult {
	t.Helper()
	term := frame.NewTerminalFrame()
	entry := frame.NewEntryFrame(term, node, sc)
	return frame.Run(&frame.Context{Heap: h}, entry)
}

// TestFileDiscardsLastStatementValue exercises §4.5.4 directly against a
// hand-built File-kind node: the parser never emits NodeFile (see
// DESIGN.md Open Question #6), so nothing else reaches this path.
func TestFileDiscardsLastStatementValue(t *testing.T) {
	h := heap.New()
	sc := newGlobalScope(t, h)

	b := syntax.NewBuilder()
	lit := b.EmitInteger(42)
	stmt := b.EmitUnary(syntax.NodeExprStmt, lit)
	root := b.EmitBlock(syntax.NodeFile, []int{stmt})
	tree := b.Build()

	result := runEntry(t, h, syntax.SyntaxNodeRef{PST: tree, Offset: root}, sc)
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.Undefined()) {
		t.Fatalf("File root: got %+v, want Value(Undefined)", result)
	}
}

// TestBlockPropagatesLastStatementValue is the same tree tagged NodeBlock
// instead, confirming §4.5.5's contrasting behavior.
func TestBlockPropagatesLastStatementValue(t *testing.T) {
	h := heap.New()
	sc := newGlobalScope(t, h)

	b := syntax.NewBuilder()
	lit := b.EmitInteger(42)
	stmt := b.EmitUnary(syntax.NodeExprStmt, lit)
	root := b.EmitBlock(syntax.NodeBlock, []int{stmt})
	tree := b.Build()

	result := runEntry(t, h, syntax.SyntaxNodeRef{PST: tree, Offset: root}, sc)
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.NewInt32(42)) {
		t.Fatalf("Block root: got %+v, want Value(Int32(42))", result)
	}
}
