package handlers

import (
	"fmt"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// unaryArith builds the @Pos/@Neg handler shape: evaluate the operand, then
// apply a pure int32 transform to it.
func unaryArith(name string, apply func(int32) int32) frame.NativeFn {
	return func(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
		if !checkArity(call) {
			return arityExc(call)
		}
		node := call.Syntax[0]

		resume := func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
			if result.IsErrorOrExc() {
				return frame.EvalToCallResult(result)
			}
			if result.Kind == frame.EvalVoid || !result.Value.IsInt32() {
				return frame.CallExcResult(call.Invoker, fmt.Sprintf(wherr.ExcOperandNotInteger, name))
			}
			return frame.CallValueResult(values.NewInt32(apply(result.Value.AsInt32())))
		}

		next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.Inner(), resume)
		return frame.CallContinueResult(next)
	}
}

// binaryArith builds the @Add/@Sub/@Mul/@Div handler shape: evaluate the
// left operand, then the right, then combine. Each NativeFn invocation gets
// its own onLeft/onRight/leftVal closures — the factory below only runs
// once at registration time, but the function it returns runs fresh per
// language-level call, so concurrent/nested uses of the same operator never
// share state.
func binaryArith(name string, apply func(a, b int32) (values.ValBox, string)) frame.NativeFn {
	return func(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
		if !checkArity(call) {
			return arityExc(call)
		}
		node := call.Syntax[0]

		var leftVal values.ValBox
		var onRight frame.ResumeFn

		onLeft := func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
			if result.IsErrorOrExc() {
				return frame.EvalToCallResult(result)
			}
			if result.Kind == frame.EvalVoid {
				return frame.CallExcResult(call.Invoker, fmt.Sprintf(wherr.ExcLeftNoValue, name))
			}
			leftVal = result.Value
			next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.Right(), onRight)
			return frame.CallContinueResult(next)
		}

		onRight = func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
			if result.IsErrorOrExc() {
				return frame.EvalToCallResult(result)
			}
			if result.Kind == frame.EvalVoid {
				return frame.CallExcResult(call.Invoker, fmt.Sprintf(wherr.ExcRightNoValue, name))
			}
			rightVal := result.Value
			if !leftVal.IsInt32() || !rightVal.IsInt32() {
				return frame.CallExcResult(call.Invoker, fmt.Sprintf(wherr.ExcOperandsNotInteger, name))
			}
			v, excMsg := apply(leftVal.AsInt32(), rightVal.AsInt32())
			if excMsg != "" {
				return frame.CallExcResult(call.Invoker, excMsg)
			}
			return frame.CallValueResult(v)
		}

		next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.Left(), onLeft)
		return frame.CallContinueResult(next)
	}
}
