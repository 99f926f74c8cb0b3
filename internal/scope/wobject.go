// Package scope implements the scope/object model spec.md §4.4 names:
// Wobject, PropertyDict, PropertyDescriptor, and the CallScope/ModuleScope/
// GlobalScope variants, grounded on the teacher's outer-chain Environment
// (internal/interp/runtime/environment.go) generalized from a single parent
// pointer to an ordered list of delegates.
package scope

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/values"
)

// FunctionBinding is the capability a Method/Accessor descriptor exposes
// without this package importing internal/fn (which in turn imports scope
// for LookupState and Wobject — this interface is what breaks the cycle).
type FunctionBinding interface {
	IsOperative() bool
	Scan(visit func(*heap.Handle))
}

// LookupState records the object at which a property was found, so the
// caller can reify a Method descriptor into a correctly-bound receiver
// (spec.md §4.4: "preserves correct self semantics under delegation").
type LookupState struct {
	FoundAt heap.Handle
}

// Wobject is the abstract capability every scope/delegate object implements.
type Wobject interface {
	heap.Object
	GetDelegates() *arraylist.List
	LookupProperty(h *heap.Heap, name string) (PropertyDescriptor, LookupState, bool)
	DefineProperty(name string, desc PropertyDescriptor)
	Own() *PropertyDict
	Handle() heap.Handle
	SetHandle(heap.Handle)
}

// lookupOn runs the depth-first delegate protocol shared by every Wobject
// implementation (spec.md §4.4 steps 1-3).
func lookupOn(h *heap.Heap, self Wobject, name string) (PropertyDescriptor, LookupState, bool) {
	if desc, ok := self.Own().get(name); ok {
		return desc, LookupState{FoundAt: self.Handle()}, true
	}
	delegates := self.GetDelegates()
	for _, raw := range delegates.Values() {
		delegateHandle := raw.(heap.Handle)
		obj, ok := h.Lookup(delegateHandle)
		if !ok {
			continue
		}
		delegate, ok := obj.(Wobject)
		if !ok {
			continue
		}
		if desc, state, found := delegate.LookupProperty(h, name); found {
			return desc, state, true
		}
	}
	return PropertyDescriptor{}, LookupState{}, false
}
