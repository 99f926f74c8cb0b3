package frame

import (
	"fmt"

	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// EvalKind discriminates the four shapes a frame's final outcome can take
// (spec.md §3: EvalResult).
type EvalKind uint8

const (
	EvalValue EvalKind = iota
	EvalVoid
	EvalError
	EvalExc
)

// EvalResult is what a frame produces when it finishes (spec.md §3).
// Invariant: Void is legal only for statements; an expression context that
// receives Void converts it into Exc at the boundary (spec.md §7).
type EvalResult struct {
	Kind         EvalKind
	Value        values.ValBox
	Err          error
	ExcMessage   string
	ExcArgs      []values.ValBox
	RaisingFrame Frame
}

// ValueResult wraps a successful value outcome.
func ValueResult(v values.ValBox) EvalResult { return EvalResult{Kind: EvalValue, Value: v} }

// VoidResult is the statement-only "produced nothing" outcome.
func VoidResult() EvalResult { return EvalResult{Kind: EvalVoid} }

// ErrorResult wraps an internal/fatal invariant violation (spec.md §7).
func ErrorResult(err error) EvalResult { return EvalResult{Kind: EvalError, Err: err} }

// ExcResult constructs a recoverable Exception outcome (spec.md §7).
func ExcResult(raising Frame, message string, args ...values.ValBox) EvalResult {
	return EvalResult{Kind: EvalExc, RaisingFrame: raising, ExcMessage: message, ExcArgs: args}
}

// IsErrorOrExc reports whether result short-circuits the normal resolve
// path (spec.md §7: both propagate unconditionally unless a frame — none
// specified here — specifically catches them).
func (r EvalResult) IsErrorOrExc() bool { return r.Kind == EvalError || r.Kind == EvalExc }

// AsValueOrExc coerces a Void outcome into an Exc naming what produced it —
// the Void-where-value-required boundary conversion spec.md §7 describes.
func (r EvalResult) AsValueOrExc(raising Frame, context string) EvalResult {
	if r.Kind == EvalVoid {
		return ExcResult(raising, fmt.Sprintf(wherr.ExcNoValueProduced, context))
	}
	return r
}

// CallKind discriminates a native handler's outcome, adding Continue to
// EvalKind's four shapes (spec.md §3: CallResult).
type CallKind uint8

const (
	CallValue CallKind = iota
	CallVoid
	CallError
	CallExc
	// CallContinue asks the trampoline to make Next the new top frame
	// (spec.md §3: "the means by which a native handler requests that the
	// trampoline switch to a new frame").
	CallContinue
)

// CallResult is what a native handler returns (spec.md §3).
type CallResult struct {
	Kind         CallKind
	Value        values.ValBox
	Err          error
	ExcMessage   string
	ExcArgs      []values.ValBox
	RaisingFrame Frame
	Next         Frame
}

func CallValueResult(v values.ValBox) CallResult { return CallResult{Kind: CallValue, Value: v} }
func CallVoidResult() CallResult                 { return CallResult{Kind: CallVoid} }
func CallErrorResult(err error) CallResult       { return CallResult{Kind: CallError, Err: err} }
func CallExcResult(raising Frame, message string, args ...values.ValBox) CallResult {
	return CallResult{Kind: CallExc, RaisingFrame: raising, ExcMessage: message, ExcArgs: args}
}
func CallContinueResult(next Frame) CallResult { return CallResult{Kind: CallContinue, Next: next} }

// toEval converts a non-Continue CallResult into the EvalResult every
// invoking frame ultimately forwards to its own parent.
func (c CallResult) toEval() EvalResult {
	switch c.Kind {
	case CallValue:
		return ValueResult(c.Value)
	case CallVoid:
		return VoidResult()
	case CallError:
		return ErrorResult(c.Err)
	case CallExc:
		return EvalResult{Kind: EvalExc, RaisingFrame: c.RaisingFrame, ExcMessage: c.ExcMessage, ExcArgs: c.ExcArgs}
	default:
		panic("frame: toEval called on a Continue CallResult")
	}
}

// EvalToCallResult converts a finished EvalResult into the CallResult shape
// a native handler returns when it has nothing further to continue — the
// inverse of toEval, used by handlers that just forward a sub-evaluation's
// outcome unchanged (e.g. @ParenExpr).
func EvalToCallResult(r EvalResult) CallResult {
	switch r.Kind {
	case EvalValue:
		return CallValueResult(r.Value)
	case EvalVoid:
		return CallVoidResult()
	case EvalError:
		return CallErrorResult(r.Err)
	case EvalExc:
		return CallResult{Kind: CallExc, RaisingFrame: r.RaisingFrame, ExcMessage: r.ExcMessage, ExcArgs: r.ExcArgs}
	default:
		return CallErrorResult(wherr.New(wherr.CategoryFrame, "unknown EvalKind %d", r.Kind))
	}
}

// handleCallResult is the shared bridge every invoke frame and resume frame
// uses: a terminal CallResult resolves parent directly; CallContinue
// installs Next as the new top frame.
func handleCallResult(cx *Context, parent Frame, result CallResult) StepResult {
	if result.Kind == CallContinue {
		return StepResult{Next: result.Next}
	}
	return resolveParent(cx, parent, result.toEval())
}
