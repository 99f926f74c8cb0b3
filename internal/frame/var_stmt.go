package frame

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// VarSyntaxFrame handles both `var` (writable) and `const` (not writable)
// declarations (spec.md §4.5.7). The packed syntax layout is shared between
// the two node types; only the writability of the bound slot differs. The
// initializer is optional for both: a const declarator without one is not
// rejected and is bound to Undefined, as a var's is.
type VarSyntaxFrame struct {
	frameBase
	Node      syntax.SyntaxNodeRef
	Scope     heap.Handle
	BindingNo int
	Last      values.ValBox
}

// NewVarSyntaxFrame constructs a var/const declaration frame.
func NewVarSyntaxFrame(parent Frame, node syntax.SyntaxNodeRef, sc heap.Handle) *VarSyntaxFrame {
	return &VarSyntaxFrame{frameBase: frameBase{parent: parent}, Node: node, Scope: sc, Last: values.Undefined()}
}

// ScanRoots reports Scope and the most recently bound value, which stays
// live in f.Last until the next binding (or the frame's own resolution)
// overwrites it.
func (f *VarSyntaxFrame) ScanRoots(visit func(*heap.Handle)) {
	visit(&f.Scope)
	if h, ok := f.Last.HeapHandle(); ok {
		visit(&h)
		f.Last.UpdateHeapHandle(h)
	}
}

func (f *VarSyntaxFrame) writable() bool { return f.Node.Type() != syntax.NodeConstStmt }

func (f *VarSyntaxFrame) define(cx *Context, name string, v values.ValBox) (StepResult, bool) {
	obj, ok := cx.Heap.Lookup(f.Scope)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryHeap, "scope handle %v does not resolve", f.Scope))), false
	}
	wob, ok := obj.(scope.Wobject)
	if !ok {
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryScope, "scope object is not a Wobject"))), false
	}
	wob.DefineProperty(name, scope.MakeSlot(v, f.writable()))
	return StepResult{}, true
}

func (f *VarSyntaxFrame) Step(cx *Context) StepResult {
	n := f.Node.BindingCount()
	i := f.BindingNo
	// Scan forward, pre-binding Undefined for every uninitialized slot
	// until one with an initializer (or the end) is reached.
	for i < n && !f.Node.BindingHasInit(i) {
		res, ok := f.define(cx, f.Node.BindingName(i), values.Undefined())
		if !ok {
			return res
		}
		f.Last = values.Undefined()
		i++
	}
	f.BindingNo = i
	if i == n {
		return resolveParent(cx, f.parent, ValueResult(f.Last))
	}
	init := f.Node.BindingInit(i)
	return StepResult{Next: NewInvokeSyntaxNodeFrame(f, init, f.Scope)}
}

func (f *VarSyntaxFrame) Resolve(cx *Context, result EvalResult) StepResult {
	if result.IsErrorOrExc() {
		return resolveParent(cx, f.parent, result)
	}
	if result.Kind == EvalVoid {
		return resolveParent(cx, f.parent, result.AsValueOrExc(f, "Variable initializer"))
	}
	v := result.Value
	res, ok := f.define(cx, f.Node.BindingName(f.BindingNo), v)
	if !ok {
		return res
	}
	f.Last = v
	f.BindingNo++
	return StepResult{Next: f}
}
