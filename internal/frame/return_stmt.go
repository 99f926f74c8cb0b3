package frame

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// ReturnStmtSyntaxFrame evaluates a return statement's (optional)
// expression, then looks up @retcont on the current scope and hands the
// value to it (spec.md §4.5.6).
type ReturnStmtSyntaxFrame struct {
	frameBase
	Node  syntax.SyntaxNodeRef
	Scope heap.Handle
}

// NewReturnStmtSyntaxFrame constructs a return-statement frame.
func NewReturnStmtSyntaxFrame(parent Frame, node syntax.SyntaxNodeRef, sc heap.Handle) *ReturnStmtSyntaxFrame {
	return &ReturnStmtSyntaxFrame{frameBase: frameBase{parent: parent}, Node: node, Scope: sc}
}

// ScanRoots reports Scope, the one heap edge this frame holds outside the
// parent chain.
func (f *ReturnStmtSyntaxFrame) ScanRoots(visit func(*heap.Handle)) { visit(&f.Scope) }

func (f *ReturnStmtSyntaxFrame) Step(cx *Context) StepResult {
	if !f.Node.HasExpr() {
		return f.continueReturn(cx, values.Undefined())
	}
	return StepResult{Next: NewInvokeSyntaxNodeFrame(f, f.Node.Expr(), f.Scope)}
}

func (f *ReturnStmtSyntaxFrame) Resolve(cx *Context, result EvalResult) StepResult {
	if result.IsErrorOrExc() {
		return resolveParent(cx, f.parent, result)
	}
	if result.Kind == EvalVoid {
		return resolveParent(cx, f.parent, result.AsValueOrExc(f, "Return expression"))
	}
	return f.continueReturn(cx, result.Value)
}

func (f *ReturnStmtSyntaxFrame) continueReturn(cx *Context, v values.ValBox) StepResult {
	obj, ok := cx.Heap.Lookup(f.Scope)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryHeap, "scope handle %v does not resolve", f.Scope)))
	}
	wob, ok := obj.(scope.Wobject)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryScope, "scope object is not a Wobject")))
	}

	desc, _, found := wob.LookupProperty(cx.Heap, "@retcont")
	if !found {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcReturnUnreachable))
	}
	if desc.Kind != scope.DescValue || !desc.Value.IsObjectRef() {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcReturnUnreachable))
	}
	contObj, ok := cx.Heap.Lookup(desc.Value.AsHeapHandle())
	if !ok {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcReturnUnreachable))
	}
	cont, ok := contObj.(*Continuation)
	if !ok {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcReturnUnreachable))
	}
	return cont.ContinueWith(cx, v)
}
