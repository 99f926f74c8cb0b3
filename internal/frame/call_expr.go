package frame

import (
	"fmt"

	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// callState names the three states CallExprSyntaxFrame's state machine
// cycles through (spec.md §4.5.8).
type callState uint8

const (
	callStateCallee callState = iota
	callStateArg
	callStateInvoke
)

// CallExprSyntaxFrame evaluates a call expression's callee, then (for an
// applicative callee) each argument left to right, then dispatches to
// InvokeApplicativeFrame or InvokeOperativeFrame (spec.md §4.5.8). Resolved
// operands accumulate directly into Operands in evaluation order — spec.md
// describes a singly-linked list reversed at invocation time; appending to
// a slice is the equivalent, simpler Go rendition of the same ordering
// guarantee.
type CallExprSyntaxFrame struct {
	frameBase
	Node     syntax.SyntaxNodeRef
	Scope    heap.Handle
	State    callState
	ArgNo    int
	Callee   *fn.FunctionObject
	Operands []values.ValBox
}

// NewCallExprSyntaxFrame constructs a call-expression frame, starting in
// the Callee state.
func NewCallExprSyntaxFrame(parent Frame, node syntax.SyntaxNodeRef, sc heap.Handle) *CallExprSyntaxFrame {
	return &CallExprSyntaxFrame{frameBase: frameBase{parent: parent}, Node: node, Scope: sc, State: callStateCallee}
}

// ScanRoots reports Scope, each resolved operand, and the resolved callee
// (once the Callee state is reached) — everything this frame holds that
// points into the heap outside the parent chain.
func (f *CallExprSyntaxFrame) ScanRoots(visit func(*heap.Handle)) {
	visit(&f.Scope)
	for i := range f.Operands {
		if h, ok := f.Operands[i].HeapHandle(); ok {
			visit(&h)
			f.Operands[i].UpdateHeapHandle(h)
		}
	}
	if f.Callee != nil {
		f.Callee.Scan(visit)
	}
}

func (f *CallExprSyntaxFrame) Step(cx *Context) StepResult {
	switch f.State {
	case callStateCallee:
		return StepResult{Next: NewInvokeSyntaxNodeFrame(f, f.Node.Callee(), f.Scope)}
	case callStateArg:
		return StepResult{Next: NewInvokeSyntaxNodeFrame(f, f.Node.Arg(f.ArgNo), f.Scope)}
	case callStateInvoke:
		if f.Callee.Fn.IsOperative() {
			return StepResult{Next: NewInvokeOperativeFrame(f.parent, f.Callee, f.Scope, []syntax.SyntaxNodeRef{f.Node})}
		}
		return StepResult{Next: NewInvokeApplicativeFrame(f.parent, f.Callee, f.Scope, f.Operands)}
	default:
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryFrame, "CallExprSyntaxFrame in unknown state %d", f.State)))
	}
}

func (f *CallExprSyntaxFrame) Resolve(cx *Context, result EvalResult) StepResult {
	switch f.State {
	case callStateCallee:
		if result.IsErrorOrExc() {
			return resolveParent(cx, f.parent, result)
		}
		if result.Kind == EvalVoid {
			return resolveParent(cx, f.parent, ExcResult(f, fmt.Sprintf(wherr.ExcNoValueProduced, "Callee expression")))
		}
		funcObj, ok := asFunctionObject(cx, result.Value)
		if !ok {
			return resolveParent(cx, f.parent, ExcResult(f, wherr.ExcNotCallable, result.Value))
		}
		f.Callee = funcObj
		if funcObj.Fn.IsOperative() || f.Node.NumArgs() == 0 {
			f.State = callStateInvoke
			return StepResult{Next: f}
		}
		f.State = callStateArg
		f.ArgNo = 0
		return StepResult{Next: f}

	case callStateArg:
		if result.IsErrorOrExc() {
			return resolveParent(cx, f.parent, result)
		}
		if result.Kind == EvalVoid {
			return resolveParent(cx, f.parent, ExcResult(f, fmt.Sprintf(wherr.ExcNoValueProduced, fmt.Sprintf("Argument %d", f.ArgNo))))
		}
		f.Operands = append(f.Operands, result.Value)
		if f.ArgNo+1 == f.Node.NumArgs() {
			f.State = callStateInvoke
			return StepResult{Next: f}
		}
		f.ArgNo++
		return StepResult{Next: f}

	default:
		return resolveParent(cx, f.parent, ErrorResult(wherr.New(wherr.CategoryFrame, "CallExprSyntaxFrame.Resolve called in state %d", f.State)))
	}
}
