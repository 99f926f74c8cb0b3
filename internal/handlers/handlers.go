// Package handlers seeds a global scope with the native operative bindings
// that implement the default semantics of every AST node (spec.md §4.6),
// grounded on the teacher's tree-walking Eval switch
// (internal/interp/interpreter.go) reshaped into one small NativeFn per
// node kind instead of one big switch — each handler is independently
// rebindable by user code (spec.md §4.5.3's design note), which a single
// switch statement could never offer.
package handlers

import (
	"github.com/whisper-lang/whisper/internal/fn"
	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

// Register binds every native syntactic handler onto global, the root
// scope every module ultimately delegates to (spec.md §4.6).
func Register(h *heap.Heap, global *scope.GlobalScope) {
	bind := func(name string, native frame.NativeFn) {
		global.DefineProperty(name, scope.MakeMethod(fn.NewNative(name, true, native)))
	}

	bind("@File", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewFileSyntaxFrame(parent, node, sc)
	}))
	bind("@Block", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewBlockSyntaxFrame(parent, node, sc)
	}))
	bind("@ReturnStmt", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewReturnStmtSyntaxFrame(parent, node, sc)
	}))
	bind("@VarStmt", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewVarSyntaxFrame(parent, node, sc)
	}))
	bind("@ConstStmt", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewVarSyntaxFrame(parent, node, sc)
	}))
	bind("@CallExpr", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewCallExprSyntaxFrame(parent, node, sc)
	}))
	bind("@Dot", dispatchFrameHandler(func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame {
		return frame.NewDotExprSyntaxFrame(parent, node, sc)
	}))

	bind("@EmptyStmt", emptyStmt)
	bind("@ExprStmt", exprStmt)
	bind("@ParenExpr", parenExpr)
	bind("@NameExpr", nameExpr)
	bind("@Integer", integerLit)
	bind("@DefStmt", defStmt)
	bind("@Arrow", arrowExpr)
	bind("@IfStmt", ifStmt)
	bind("@LoopStmt", loopStmt)

	bind("@Pos", unaryArith("@Pos", func(a int32) int32 { return a }))
	bind("@Neg", unaryArith("@Neg", func(a int32) int32 { return -a }))
	bind("@Add", binaryArith("@Add", func(a, b int32) (values.ValBox, string) { return values.NewInt32(a + b), "" }))
	bind("@Sub", binaryArith("@Sub", func(a, b int32) (values.ValBox, string) { return values.NewInt32(a - b), "" }))
	bind("@Mul", binaryArith("@Mul", func(a, b int32) (values.ValBox, string) { return values.NewInt32(a * b), "" }))
	bind("@Div", binaryArith("@Div", func(a, b int32) (values.ValBox, string) {
		if b == 0 {
			return values.ValBox{}, wherr.ExcDivisionByZero
		}
		return values.NewInt32(a / b), ""
	}))
}

// checkArity enforces spec.md §4.6: "each handler rejects with
// Exc(\"wrong number of arguments\") when called with != 1 syntax
// argument."
func checkArity(call *frame.NativeCall) bool { return len(call.Syntax) == 1 }

func arityExc(call *frame.NativeCall) frame.CallResult {
	return frame.CallExcResult(call.Invoker, wherr.ExcWrongArgCount)
}

func lookupScope(cx *frame.Context, h heap.Handle) (scope.Wobject, error) {
	obj, ok := cx.Heap.Lookup(h)
	if !ok {
		return nil, wherr.New(wherr.CategoryHeap, "scope handle %v does not resolve", h)
	}
	wob, ok := obj.(scope.Wobject)
	if !ok {
		return nil, wherr.New(wherr.CategoryScope, "scope object is not a Wobject")
	}
	return wob, nil
}

// dispatchFrameHandler builds a NativeFn shim for the node kinds that have
// a dedicated state-machine Frame type (File, Block, Return, Var/Const,
// CallExpr, Dot): the handler's whole job is to construct that frame and
// hand control to it via Continue.
func dispatchFrameHandler(build func(parent frame.Frame, node syntax.SyntaxNodeRef, sc heap.Handle) frame.Frame) frame.NativeFn {
	return func(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
		if !checkArity(call) {
			return arityExc(call)
		}
		node := call.Syntax[0]
		next := build(call.Invoker.Parent(), node, call.Scope)
		return frame.CallContinueResult(next)
	}
}

func emptyStmt(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	return frame.CallValueResult(values.Undefined())
}

func integerLit(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]
	return frame.CallValueResult(values.NewInt32(node.IntegerLiteral()))
}

func exprStmt(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]
	resume := func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
		return frame.EvalToCallResult(result)
	}
	next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.Inner(), resume)
	return frame.CallContinueResult(next)
}

func parenExpr(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]
	resume := func(cx *frame.Context, call *frame.NativeCall, result frame.EvalResult) frame.CallResult {
		return frame.EvalToCallResult(result)
	}
	next := frame.NewNativeCallResumeFrame(call.Invoker.Parent(), call, call.Scope, node.Inner(), resume)
	return frame.CallContinueResult(next)
}

func nameExpr(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]
	name := node.Name()

	wob, err := lookupScope(cx, call.Scope)
	if err != nil {
		return frame.CallErrorResult(err)
	}
	desc, state, found := wob.LookupProperty(cx.Heap, name)
	if !found {
		return frame.CallExcResult(call.Invoker, wherr.ExcNameNotFound, values.MakeString(cx.Heap, name))
	}
	switch desc.Kind {
	case scope.DescValue:
		return frame.CallValueResult(desc.Value)
	case scope.DescMethod:
		function, ok := desc.Method.(*fn.Function)
		if !ok {
			return frame.CallErrorResult(wherr.New(wherr.CategoryScope, "method descriptor holds an unexpected binding type"))
		}
		v := fn.NewFunctionObject(cx.Heap, function, values.NewObjectRef(state.FoundAt), state)
		return frame.CallValueResult(v)
	default:
		return frame.CallExcResult(call.Invoker, wherr.ExcNameNotFound, values.MakeString(cx.Heap, name))
	}
}

func defStmt(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]

	wob, err := lookupScope(cx, call.Scope)
	if err != nil {
		return frame.CallErrorResult(err)
	}

	params := make([]string, node.DefParamCount())
	for i := range params {
		params[i] = node.DefParamName(i)
	}

	function := fn.NewScripted(node.DefName(), params, node.DefBody(), call.Scope)
	v := fn.NewFunctionObject(cx.Heap, function, values.Undefined(), scope.LookupState{FoundAt: call.Scope})
	wob.DefineProperty(node.DefName(), scope.MakeSlot(v, true))
	return frame.CallValueResult(values.Undefined())
}

func arrowExpr(cx *frame.Context, call *frame.NativeCall) frame.CallResult {
	if !checkArity(call) {
		return arityExc(call)
	}
	node := call.Syntax[0]

	params := make([]string, node.ArrowParamCount())
	for i := range params {
		params[i] = node.ArrowParamName(i)
	}

	function := fn.NewScripted("<arrow>", params, node.ArrowBody(), call.Scope)
	v := fn.NewFunctionObject(cx.Heap, function, values.Undefined(), scope.LookupState{FoundAt: call.Scope})
	return frame.CallValueResult(v)
}
