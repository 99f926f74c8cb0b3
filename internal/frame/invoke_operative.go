package frame

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// InvokeOperativeFrame invokes an operative function: the callee receives
// the raw, unevaluated syntax plus the caller's own scope, and controls
// whatever evaluation of its "arguments" it wants to do itself (spec.md
// §4.5.9). Every operative binding this implementation seeds is native
// (§4.6's `@File`/`@NameExpr`/... handler table) — the Scripted branch below
// exists for completeness with the Function union but is never reached by
// any native handler in internal/handlers.
type InvokeOperativeFrame struct {
	frameBase
	Callee      *fn.FunctionObject
	CallerScope heap.Handle
	Syntax      []syntax.SyntaxNodeRef
}

// NewInvokeOperativeFrame constructs an operative invocation frame.
func NewInvokeOperativeFrame(parent Frame, callee *fn.FunctionObject, callerScope heap.Handle, syn []syntax.SyntaxNodeRef) *InvokeOperativeFrame {
	return &InvokeOperativeFrame{frameBase: frameBase{parent: parent}, Callee: callee, CallerScope: callerScope, Syntax: syn}
}

// ScanRoots reports CallerScope and the callee being invoked.
func (f *InvokeOperativeFrame) ScanRoots(visit func(*heap.Handle)) {
	visit(&f.CallerScope)
	if f.Callee != nil {
		f.Callee.Scan(visit)
	}
}

func (f *InvokeOperativeFrame) Step(cx *Context) StepResult {
	function := f.Callee.Fn

	if function.IsScripted() {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryFunction, "scripted operative functions are not supported")))
	}

	native, ok := AsNativeFn(function)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryFunction, "native function %q has no callback registered", function.Name())))
	}
	call := &NativeCall{
		Scope:    f.CallerScope,
		Receiver: f.Callee.Receiver,
		Syntax:   f.Syntax,
		Invoker:  f,
	}
	return handleCallResult(cx, f.parent, native(cx, call))
}

func (f *InvokeOperativeFrame) Resolve(cx *Context, result EvalResult) StepResult {
	return resolveParent(cx, f.parent, result)
}
