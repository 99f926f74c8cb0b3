package scope

import (
	"testing"

	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/values"
)

// TestLookupDeterminism exercises testable property #7: a fixed (scope,
// name) yields the same (descriptor, lookup_state) on every call absent
// mutation.
func TestLookupDeterminism(t *testing.T) {
	h := heap.New()
	global := NewGlobalScope(h)
	globalObj, _ := h.Lookup(global)
	globalObj.(*GlobalScope).DefineProperty("@Integer", MakeSlot(values.NewInt32(1), true))

	module := NewModuleScope(h, global)
	moduleObj, _ := h.Lookup(module)

	d1, s1, ok1 := moduleObj.(Wobject).LookupProperty(h, "@Integer")
	d2, s2, ok2 := moduleObj.(Wobject).LookupProperty(h, "@Integer")
	if !ok1 || !ok2 {
		t.Fatal("expected @Integer to resolve through the delegate chain")
	}
	if s1.FoundAt != global || s2.FoundAt != global {
		t.Fatalf("expected lookup_state to name the global scope, got %v / %v", s1, s2)
	}
	if !d1.Value.Equal(d2.Value) {
		t.Fatal("expected repeated lookups to return an equal descriptor")
	}
}

func TestOwnBindingShadowsDelegate(t *testing.T) {
	h := heap.New()
	global := NewGlobalScope(h)
	globalObj, _ := h.Lookup(global)
	globalObj.(*GlobalScope).DefineProperty("x", MakeSlot(values.NewInt32(1), true))

	call := NewCallScope(h, global)
	callObj, _ := h.Lookup(call)
	callObj.(*CallScope).DefineProperty("x", MakeSlot(values.NewInt32(2), true))

	desc, state, ok := callObj.(Wobject).LookupProperty(h, "x")
	if !ok {
		t.Fatal("expected x to resolve")
	}
	if state.FoundAt != call {
		t.Fatal("expected the own binding to shadow the delegate's")
	}
	if desc.Value.AsInt32() != 2 {
		t.Fatalf("expected shadowed value 2, got %d", desc.Value.AsInt32())
	}
}

func TestMissingPropertyNotFound(t *testing.T) {
	h := heap.New()
	global := NewGlobalScope(h)
	globalObj, _ := h.Lookup(global)
	if _, _, ok := globalObj.(Wobject).LookupProperty(h, "nope"); ok {
		t.Fatal("expected a complete miss for an undefined name")
	}
}
