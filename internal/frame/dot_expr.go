package frame

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// DotExprSyntaxFrame evaluates a dot expression's target, looks up @Dot on
// the resulting value, then invokes it operatively with the original
// dot-expression syntax node — so user code defines what dotting means
// (spec.md §4.5.10).
type DotExprSyntaxFrame struct {
	frameBase
	Node      syntax.SyntaxNodeRef
	Scope     heap.Handle
	Target    values.ValBox
	evaluated bool
}

// NewDotExprSyntaxFrame constructs a dot-expression frame.
func NewDotExprSyntaxFrame(parent Frame, node syntax.SyntaxNodeRef, sc heap.Handle) *DotExprSyntaxFrame {
	return &DotExprSyntaxFrame{frameBase: frameBase{parent: parent}, Node: node, Scope: sc}
}

// ScanRoots reports Scope and, once evaluated, the dot target.
func (f *DotExprSyntaxFrame) ScanRoots(visit func(*heap.Handle)) {
	visit(&f.Scope)
	if h, ok := f.Target.HeapHandle(); ok {
		visit(&h)
		f.Target.UpdateHeapHandle(h)
	}
}

func (f *DotExprSyntaxFrame) Step(cx *Context) StepResult {
	if !f.evaluated {
		return StepResult{Next: NewInvokeSyntaxNodeFrame(f, f.Node.Target(), f.Scope)}
	}

	wob, ok := wobjectOf(cx, f.Target)
	if !ok {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcDotNotDefined))
	}
	desc, state, found := wob.LookupProperty(cx.Heap, "@Dot")
	if !found {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcDotNotDefined))
	}
	if desc.Kind != scope.DescMethod {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcDotNotCallable))
	}
	function, ok := desc.Method.(*fn.Function)
	if !ok || !function.IsOperative() {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcDotNotCallable))
	}

	funcObj := fn.Bind(function, f.Target, state)
	return StepResult{Next: NewInvokeOperativeFrame(f.parent, funcObj, f.Scope, []syntax.SyntaxNodeRef{f.Node})}
}

func (f *DotExprSyntaxFrame) Resolve(cx *Context, result EvalResult) StepResult {
	if f.evaluated {
		// Unreachable: the invocation spawned in Step is parented directly at
		// f.parent, so its outcome never routes back through this frame.
		return resolveParent(cx, f.parent, result)
	}
	if result.IsErrorOrExc() {
		return resolveParent(cx, f.parent, result)
	}
	if result.Kind == EvalVoid {
		return resolveParent(cx, f.parent, result.AsValueOrExc(f, "Dot target"))
	}
	f.Target = result.Value
	f.evaluated = true
	return StepResult{Next: f}
}
