package frame

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/syntax"
)

// ResumeFn is the callback a NativeCallResumeFrame invokes once its child
// evaluation finishes. spec.md §4.5.11 describes this as a C function
// pointer plus an opaque `resume_state: HeapThing*`; a Go closure captures
// both more directly, so this implementation uses one instead of carrying
// a separate opaque-state field.
type ResumeFn func(cx *Context, call *NativeCall, childResult EvalResult) CallResult

// NativeCallResumeFrame is the heap-saved continuation of a native handler
// that wants to evaluate something and then resume (spec.md §4.5.11) — the
// mechanism that lets native code be "re-entrant through evaluation"
// without host-language coroutines.
type NativeCallResumeFrame struct {
	frameBase
	Call      *NativeCall
	EvalScope heap.Handle
	Syntax    syntax.SyntaxNodeRef
	Resume    ResumeFn
}

// NewNativeCallResumeFrame constructs a resume frame. parent is the frame
// that should ultimately receive the native handler's outcome (typically
// the original Invoke*Frame's parent).
func NewNativeCallResumeFrame(parent Frame, call *NativeCall, evalScope heap.Handle, syn syntax.SyntaxNodeRef, resume ResumeFn) *NativeCallResumeFrame {
	return &NativeCallResumeFrame{frameBase: frameBase{parent: parent}, Call: call, EvalScope: evalScope, Syntax: syn, Resume: resume}
}

// ScanRoots reports EvalScope and the suspended native call's own heap
// edges (its calling scope, receiver, and already-resolved arguments) —
// the NativeCall survives this frame's whole lifetime and is otherwise
// invisible to the collector once the native handler that built it has
// returned control to the trampoline.
func (f *NativeCallResumeFrame) ScanRoots(visit func(*heap.Handle)) {
	visit(&f.EvalScope)
	visit(&f.Call.Scope)
	if h, ok := f.Call.Receiver.HeapHandle(); ok {
		visit(&h)
		f.Call.Receiver.UpdateHeapHandle(h)
	}
	for i := range f.Call.Args {
		if h, ok := f.Call.Args[i].HeapHandle(); ok {
			visit(&h)
			f.Call.Args[i].UpdateHeapHandle(h)
		}
	}
}

func (f *NativeCallResumeFrame) Step(cx *Context) StepResult {
	return StepResult{Next: NewEntryFrame(f, f.Syntax, f.EvalScope)}
}

func (f *NativeCallResumeFrame) Resolve(cx *Context, result EvalResult) StepResult {
	return handleCallResult(cx, f.parent, f.Resume(cx, f.Call, result))
}
