package heap

import (
	"github.com/emirpasic/gods/lists/singlylinkedlist"
)

// rootSet is the thread-local chain of live pointers the interpreter holds
// outside the heap (spec.md §3 "Lifecycle & ownership", §4.2 "Rooting"). It
// is backed by gods' singly-linked list rather than a hand-rolled one,
// grounded on npillmayer-gorgo's use of the same package family for its own
// ordered collections (lr/tables.go).
type rootSet struct {
	slots *singlylinkedlist.List // holds *Handle
}

func newRootSet() *rootSet {
	return &rootSet{slots: singlylinkedlist.New()}
}

func (r *rootSet) register(h *Handle) {
	r.slots.Add(h)
}

func (r *rootSet) unregister(h *Handle) {
	idx := -1
	r.slots.Each(func(i int, v interface{}) {
		if v.(*Handle) == h {
			idx = i
		}
	})
	if idx >= 0 {
		r.slots.Remove(idx)
	}
}

func (r *rootSet) each(fn func(*Handle)) {
	r.slots.Each(func(_ int, v interface{}) {
		fn(v.(*Handle))
	})
}

// Local is a scoped guard over a single rooted Handle: the systems-language
// rewrite's C-stack-handle idiom (spec.md §9 Design Notes) expressed as a
// Go value with an explicit Release instead of a destructor. Callers are
// expected to `defer local.Release()` immediately after rooting.
type Local struct {
	heap  *Heap
	value Handle
}

// Get returns the rooted handle's current value. Because a collection may
// relocate the referent between two Steps, callers must re-read Get rather
// than caching the Handle across a safe point.
func (l *Local) Get() Handle { return l.value }

// Set updates the rooted slot (e.g. after the caller computes a new value
// that should now be the root's referent).
func (l *Local) Set(h Handle) { l.value = h }

// Release unregisters the guard from the root chain. Safe to call more than
// once.
func (l *Local) Release() {
	if l.heap == nil {
		return
	}
	l.heap.roots.unregister(&l.value)
	l.heap = nil
}
