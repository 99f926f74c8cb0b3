package handlers

import (
	"fmt"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// isTruthy is this implementation's resolution of an unstated open
// question: conditions must be boolean. A non-bool condition raises a
// named Exc rather than being coerced, matching how the arithmetic
// handlers reject non-integer operands instead of converting them.
func isTruthy(v values.ValBox) (bool, string) {
	if !v.IsBool() {
		return false, wherr.ExcConditionNotBoolean
	}
	return v.AsBool(), ""
}

func ifStmt(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]

	onCond := func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
		if result.IsErrorOrExc() {
			return frame.EvalToCallResult(result)
		}
		if result.Kind == frame.EvalVoid {
			return frame.CallExcResult(call.Invoker, fmt.Sprintf(wherr.ExcNoValueProduced, "If condition"))
		}
		truthy, excMsg := isTruthy(result.Value)
		if excMsg != "" {
			return frame.CallExcResult(call.Invoker, "If "+excMsg)
		}

		var branch syntax.SyntaxNodeRef
		switch {
		case truthy:
			branch = node.Then()
		case node.HasElse():
			branch = node.Else()
		default:
			return frame.CallValueResult(values.Undefined())
		}

		next := frame.NewEntryFrame(call.Invoker.Parent(), branch, call.Scope)
		return frame.CallContinueResult(next)
	}

	next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.Condition(), onCond)
	return frame.CallContinueResult(next)
}

// loopStmt implements the while-shaped LoopStmt (spec.md §4.6, pst.go
// DESIGN.md note) as two mutually resuming native continuations: evaluate
// the condition, and if true evaluate the body then re-evaluate the
// condition. There is no break/continue support — LoopStmt carries no
// syntax for either, so the only way out of the loop is the condition
// going false or a `return`/exception unwinding through it.
func loopStmt(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]

	var onCond frame.ResumeFn
	var onBody frame.ResumeFn

	onCond = func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
		if result.IsErrorOrExc() {
			return frame.EvalToCallResult(result)
		}
		if result.Kind == frame.EvalVoid {
			return frame.CallExcResult(call.Invoker, fmt.Sprintf(wherr.ExcNoValueProduced, "Loop condition"))
		}
		truthy, excMsg := isTruthy(result.Value)
		if excMsg != "" {
			return frame.CallExcResult(call.Invoker, "Loop "+excMsg)
		}
		if !truthy {
			return frame.CallValueResult(values.Undefined())
		}
		next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.LoopBody(), onBody)
		return frame.CallContinueResult(next)
	}

	onBody = func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
		if result.IsErrorOrExc() {
			return frame.EvalToCallResult(result)
		}
		next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.LoopCondition(), onCond)
		return frame.CallContinueResult(next)
	}

	next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.LoopCondition(), onCond)
	return frame.CallContinueResult(next)
}
