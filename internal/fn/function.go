// Package fn implements Function and FunctionObject (spec.md §3, §4.4's
// closing paragraph): the applicative/operative dispatch union and its
// receiver-bound wrapper. Mirrors internal/values' sum-type-via-struct
// idiom rather than an interface hierarchy, since a function value has
// exactly two shapes and no third is ever added by user code.
//
// A native Function's host callback is stored as `any` rather than a
// concrete func type: the real invocation protocol (NativeCall/CallResult,
// including the Continue-with-a-custom-Frame case §4.5.11 needs) lives in
// internal/frame, which already imports fn for FunctionObject — fn cannot
// import frame back without a cycle. internal/handlers, which constructs
// every native Function, imports both and performs the type assertion
// (frame.AsNativeFn) when it actually calls one.
package fn

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
)

// Kind discriminates a Function's two shapes.
type Kind uint8

const (
	KindNative Kind = iota
	KindScripted
)

// Function is the discriminated union spec.md §3 names: Native{fp,
// is_operative} or Scripted{pst, offset, captured_scope, is_operative}.
type Function struct {
	kind          Kind
	isOperative   bool
	native        any
	body          syntax.SyntaxNodeRef
	capturedScope heap.Handle
	paramNames    []string
	name          string
}

// NewNative constructs a Native function. native is a frame.NativeFn,
// typed as any to avoid the fn/frame import cycle (see package doc).
func NewNative(name string, isOperative bool, native any) *Function {
	return &Function{kind: KindNative, isOperative: isOperative, native: native, name: name}
}

// NewScripted constructs a Scripted function over a DefStmt/ArrowExpr body,
// capturing the defining scope (spec.md §4.5.9: "Scripted path creates a
// fresh CallScope whose parent is the callee's captured scope").
func NewScripted(name string, params []string, body syntax.SyntaxNodeRef, capturedScope heap.Handle) *Function {
	return &Function{kind: KindScripted, isOperative: false, body: body, capturedScope: capturedScope, paramNames: params, name: name}
}

func (f *Function) IsOperative() bool          { return f.isOperative }
func (f *Function) IsNative() bool             { return f.kind == KindNative }
func (f *Function) IsScripted() bool           { return f.kind == KindScripted }
func (f *Function) Name() string               { return f.name }
func (f *Function) NativeAny() any             { return f.native }
func (f *Function) Body() syntax.SyntaxNodeRef { return f.body }
func (f *Function) CapturedScope() heap.Handle { return f.capturedScope }
func (f *Function) ParamNames() []string       { return f.paramNames }

// Scan implements scope.FunctionBinding: the only heap edge a Function owns
// is a Scripted function's captured scope (a Native function's fp and a
// SyntaxNodeRef's backing PST are not GC-managed).
func (f *Function) Scan(visit func(*heap.Handle)) {
	if f.kind == KindScripted {
		visit(&f.capturedScope)
	}
}

var _ scope.FunctionBinding = (*Function)(nil)

// FunctionObject binds a Function to a receiver and the scope position at
// which it was looked up (spec.md §3: "FunctionObject binds a Function to a
// receiver ValBox and a LookupState").
type FunctionObject struct {
	header   heap.Header
	Fn       *Function
	Receiver values.ValBox
	State    scope.LookupState
}

// Bind reifies a looked-up Method descriptor into a FunctionObject (spec.md
// §4.4: "the caller must reify it into a FunctionObject bound to the
// looked-up-at receiver").
func Bind(f *Function, receiver values.ValBox, state scope.LookupState) *FunctionObject {
	return &FunctionObject{header: heap.Header{Format: heap.FormatFunctionObject}, Fn: f, Receiver: receiver, State: state}
}

func (o *FunctionObject) Header() *heap.Header { return &o.header }
func (o *FunctionObject) IsLeaf() bool         { return false }
func (o *FunctionObject) Scan(visit func(*heap.Handle)) {
	if h, ok := o.Receiver.HeapHandle(); ok {
		visit(&h)
		o.Receiver.UpdateHeapHandle(h)
	}
	o.Fn.Scan(visit)
}

// NewFunctionObject allocates a FunctionObject on h and returns its handle
// wrapped as an ObjectRef ValBox, ready to bind as a scope property or to be
// returned from a @DefStmt handler.
func NewFunctionObject(h *heap.Heap, f *Function, receiver values.ValBox, state scope.LookupState) values.ValBox {
	obj := Bind(f, receiver, state)
	handle := h.Allocate(obj, 1, false)
	return values.NewObjectRef(handle)
}
