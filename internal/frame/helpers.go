package frame

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/values"
)

// wobjectOf resolves v to the Wobject it references, if any. Only an
// ObjectRef whose handle resolves to a scope/object implementation counts.
func wobjectOf(cx *Context, v values.ValBox) (scope.Wobject, bool) {
	if !v.IsObjectRef() {
		return nil, false
	}
	obj, ok := cx.Heap.Lookup(v.AsHeapHandle())
	if !ok {
		return nil, false
	}
	wob, ok := obj.(scope.Wobject)
	return wob, ok
}

// asFunctionObject resolves v to the FunctionObject it references, if any.
func asFunctionObject(cx *Context, v values.ValBox) (*fn.FunctionObject, bool) {
	if !v.IsObjectRef() {
		return nil, false
	}
	obj, ok := cx.Heap.Lookup(v.AsHeapHandle())
	if !ok {
		return nil, false
	}
	fo, ok := obj.(*fn.FunctionObject)
	return fo, ok
}
