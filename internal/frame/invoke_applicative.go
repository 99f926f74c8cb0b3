package frame

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// InvokeApplicativeFrame invokes an applicative function over already
// resolved arguments (spec.md §4.5.9). The native path dispatches through
// the stored callback; the scripted path opens a fresh CallScope delegating
// to the callee's captured scope, binds positional parameters, mints a
// continuation under @retcont (spec.md's resolution of the open question:
// bind one freshly at every CallScope's creation), and enters the body.
type InvokeApplicativeFrame struct {
	frameBase
	Callee      *fn.FunctionObject
	CallerScope heap.Handle
	Args        []values.ValBox
}

// NewInvokeApplicativeFrame constructs an applicative invocation frame over
// already-resolved args.
func NewInvokeApplicativeFrame(parent Frame, callee *fn.FunctionObject, callerScope heap.Handle, args []values.ValBox) *InvokeApplicativeFrame {
	return &InvokeApplicativeFrame{frameBase: frameBase{parent: parent}, Callee: callee, CallerScope: callerScope, Args: args}
}

// ScanRoots reports CallerScope, every already-resolved argument, and the
// callee being invoked.
func (f *InvokeApplicativeFrame) ScanRoots(visit func(*heap.Handle)) {
	visit(&f.CallerScope)
	for i := range f.Args {
		if h, ok := f.Args[i].HeapHandle(); ok {
			visit(&h)
			f.Args[i].UpdateHeapHandle(h)
		}
	}
	if f.Callee != nil {
		f.Callee.Scan(visit)
	}
}

func (f *InvokeApplicativeFrame) Step(cx *Context) StepResult {
	function := f.Callee.Fn

	if function.IsNative() {
		native, ok := AsNativeFn(function)
		if !ok {
			return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryFunction, "native function %q has no callback registered", function.Name())))
		}
		call := &NativeCall{Scope: f.CallerScope, Receiver: f.Callee.Receiver, Args: f.Args, Invoker: f}
		return handleCallResult(cx, f.parent, native(cx, call))
	}

	if !function.IsScripted() {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryFunction, "unknown function kind for %q", function.Name())))
	}

	params := function.ParamNames()
	if len(f.Args) != len(params) {
		return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcWrongArgCount, values.NewInt32(int32(len(f.Args)))))
	}

	// callScope isn't reachable from any rooted frame field until it's
	// wrapped into the EntryFrame below, but the retcont allocation right
	// after it can itself trigger a collection — root it for the rest of
	// this Step.
	callScopeRoot := cx.Heap.Root(scope.NewCallScope(cx.Heap, function.CapturedScope()))
	defer callScopeRoot.Release()

	obj, ok := cx.Heap.Lookup(callScopeRoot.Get())
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryHeap, "freshly allocated CallScope %v does not resolve", callScopeRoot.Get())))
	}
	wob, ok := obj.(scope.Wobject)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryScope, "CallScope object is not a Wobject")))
	}

	for i, name := range params {
		wob.DefineProperty(name, scope.MakeSlot(f.Args[i], true))
	}

	// @retcont targets f.parent directly: a `return` inside the body, and
	// the body simply running off its last statement, both end up handing
	// their value to the same place.
	contHandle := NewContinuation(cx.Heap, f.parent)
	wob.DefineProperty("@retcont", scope.MakeSlot(values.NewObjectRef(contHandle), false))

	entry := NewEntryFrame(f.parent, function.Body(), callScopeRoot.Get())
	return StepResult{Next: entry}
}

func (f *InvokeApplicativeFrame) Resolve(cx *Context, result EvalResult) StepResult {
	return resolveParent(cx, f.parent, result)
}
