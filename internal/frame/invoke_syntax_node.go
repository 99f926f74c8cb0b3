package frame

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// InvokeSyntaxNodeFrame is the universal dispatch frame (spec.md §4.5.3):
// it maps a node's type to its `@...` handler name, looks the handler up on
// the current scope, and invokes it operatively with the node itself as
// the sole syntax argument.
type InvokeSyntaxNodeFrame struct {
	frameBase
	Syntax syntax.SyntaxNodeRef
	Scope  heap.Handle
}

// NewInvokeSyntaxNodeFrame constructs a dispatch frame parented at parent.
func NewInvokeSyntaxNodeFrame(parent Frame, syn syntax.SyntaxNodeRef, sc heap.Handle) *InvokeSyntaxNodeFrame {
	return &InvokeSyntaxNodeFrame{frameBase: frameBase{parent: parent}, Syntax: syn, Scope: sc}
}

// ScanRoots reports Scope, the one heap edge this frame holds outside the
// parent chain.
func (f *InvokeSyntaxNodeFrame) ScanRoots(visit func(*heap.Handle)) { visit(&f.Scope) }

func (f *InvokeSyntaxNodeFrame) Step(cx *Context) StepResult {
	handlerName := f.Syntax.Type().HandlerName()
	if handlerName == "" {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategorySyntax, "unknown node type %v", f.Syntax.Type())))
	}

	obj, ok := cx.Heap.Lookup(f.Scope)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryHeap, "scope handle %v does not resolve", f.Scope)))
	}
	wob, ok := obj.(scope.Wobject)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryScope, "scope object is not a Wobject")))
	}

	nameBox := values.MakeString(cx.Heap, handlerName)
	desc, state, found := wob.LookupProperty(cx.Heap, handlerName)
	if !found {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcSyntaxMethodNotFound, nameBox))
	}
	if desc.Kind != scope.DescMethod {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcSyntaxMethodNotFound, nameBox))
	}
	function, ok := desc.Method.(*fn.Function)
	if !ok || !function.IsOperative() {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcSyntaxMethodNotFound, nameBox))
	}

	funcObj := fn.Bind(function, values.Undefined(), state)
	child := NewInvokeOperativeFrame(f, funcObj, f.Scope, []syntax.SyntaxNodeRef{f.Syntax})
	return StepResult{Next: child}
}

func (f *InvokeSyntaxNodeFrame) Resolve(cx *Context, result EvalResult) StepResult {
	return resolveParent(cx, f.parent, result)
}
