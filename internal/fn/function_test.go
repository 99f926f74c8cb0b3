package fn

import (
	"testing"

	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
)

type stubNative func(values.ValBox) values.ValBox

func TestNativeFunctionIsOperative(t *testing.T) {
	f := NewNative("@Integer", true, stubNative(func(v values.ValBox) values.ValBox { return v }))
	if !f.IsOperative() || !f.IsNative() {
		t.Fatal("expected a native operative function")
	}
	if _, ok := f.NativeAny().(stubNative); !ok {
		t.Fatal("expected NativeAny to round-trip the stored callback")
	}
}

func TestScriptedFunctionScanVisitsCapturedScope(t *testing.T) {
	h := heap.New()
	capturedScope := scope.NewGlobalScope(h)
	f := NewScripted("add", []string{"a", "b"}, syntax.SyntaxNodeRef{}, capturedScope)

	var visited []heap.Handle
	f.Scan(func(hp *heap.Handle) { visited = append(visited, *hp) })
	if len(visited) != 1 || visited[0] != capturedScope {
		t.Fatalf("expected Scan to visit exactly the captured scope, got %v", visited)
	}
}

func TestBindProducesFunctionObject(t *testing.T) {
	h := heap.New()
	f := NewNative("@NameExpr", true, stubNative(func(v values.ValBox) values.ValBox { return v }))
	receiver := values.Undefined()
	ref := NewFunctionObject(h, f, receiver, scope.LookupState{})
	if !ref.IsObjectRef() {
		t.Fatal("expected an ObjectRef ValBox")
	}
	obj, ok := h.Lookup(ref.AsHeapHandle())
	if !ok {
		t.Fatal("expected the FunctionObject to be resolvable on the heap")
	}
	fo, ok := obj.(*FunctionObject)
	if !ok || fo.Fn != f {
		t.Fatal("expected the resolved object to be the bound FunctionObject")
	}
}
