package frame

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/syntax"
)

// EntryFrame represents entering a new evaluation scope on a given syntax
// subtree (spec.md §4.5.2).
type EntryFrame struct {
	frameBase
	Syntax syntax.SyntaxNodeRef
	Scope  heap.Handle
}

// NewEntryFrame constructs an EntryFrame parented at parent.
func NewEntryFrame(parent Frame, syn syntax.SyntaxNodeRef, sc heap.Handle) *EntryFrame {
	return &EntryFrame{frameBase: frameBase{parent: parent}, Syntax: syn, Scope: sc}
}

// ScanRoots reports Scope, the one heap edge this frame holds outside the
// parent chain.
func (e *EntryFrame) ScanRoots(visit func(*heap.Handle)) { visit(&e.Scope) }

// Step builds an initial InvokeSyntaxNodeFrame child over the same
// (syntax, scope).
func (e *EntryFrame) Step(cx *Context) StepResult {
	return StepResult{Next: NewInvokeSyntaxNodeFrame(e, e.Syntax, e.Scope)}
}

// Resolve forwards its child's result unchanged to its parent.
func (e *EntryFrame) Resolve(cx *Context, result EvalResult) StepResult {
	return resolveParent(cx, e.parent, result)
}
