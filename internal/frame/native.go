package frame

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
)

// NativeFn is the concrete Go function type behind a fn.Function's opaque
// native callback (see internal/fn's package doc for why it is stored as
// `any` there). internal/handlers constructs every native Function with one
// of these; AsNativeFn recovers it here, the one place both fn and the
// concrete frame-typed call/result protocol are in scope.
type NativeFn func(cx *Context, call *NativeCall) CallResult

// NativeCall is the invocation record passed to a NativeFn: the calling
// scope, receiver, already-resolved arguments (applicative) or raw syntax
// (operative), and the invoking frame (used as the Exc-raising frame and as
// the parent for any custom Continue frame the handler builds).
type NativeCall struct {
	Scope    heap.Handle
	Receiver values.ValBox
	Args     []values.ValBox
	Syntax   []syntax.SyntaxNodeRef
	Invoker  Frame
}

// AsNativeFn recovers the concrete callback from f's opaque native field.
// ok is false for a Scripted function or a malformed native registration.
func AsNativeFn(f *fn.Function) (NativeFn, bool) {
	nf, ok := f.NativeAny().(NativeFn)
	return nf, ok
}
