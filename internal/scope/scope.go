package scope

import (
	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/whisper-lang/whisper/internal/heap"
)

// base is the shared Wobject plumbing every scope variant embeds: a heap
// header, a handle to self (filled in by New*Scope once the heap assigns
// it), an own PropertyDict, and an ordered delegate list.
type base struct {
	header    heap.Header
	self      heap.Handle
	own       *PropertyDict
	delegates *arraylist.List
}

func newBase(h *heap.Heap, format heap.Format) base {
	return base{
		header:    heap.Header{Format: format},
		own:       newPropertyDict(h),
		delegates: arraylist.New(),
	}
}

func (b *base) Header() *heap.Header { return &b.header }
func (b *base) IsLeaf() bool         { return false }
func (b *base) Handle() heap.Handle  { return b.self }
func (b *base) SetHandle(h heap.Handle) { b.self = h }
func (b *base) Own() *PropertyDict   { return b.own }
func (b *base) GetDelegates() *arraylist.List { return b.delegates }

// AddDelegate appends a delegate to the end of the lookup order (spec.md
// §4.4 step 2: "iterate delegates in order").
func (b *base) AddDelegate(h heap.Handle) { b.delegates.Add(h) }

func (b *base) DefineProperty(name string, desc PropertyDescriptor) {
	b.own.define(name, desc)
}

func (b *base) scan(visit func(*heap.Handle)) {
	// delegates.Values() returns a copy slice, so the forwarded handle has
	// to be written back through Set — visiting a local h here and
	// discarding it would leave the delegate pointing at a reclaimed
	// from-space address after the next relocation.
	for i := 0; i < b.delegates.Size(); i++ {
		raw, _ := b.delegates.Get(i)
		h := raw.(heap.Handle)
		visit(&h)
		b.delegates.Set(i, h)
	}
	b.own.scan(visit)
}

// CallScope is a function activation record (spec.md §3: "Variants in the
// source: CallScope (function activation)").
type CallScope struct {
	base
}

// NewCallScope allocates a CallScope on h, delegating to parent.
func NewCallScope(h *heap.Heap, parent heap.Handle) heap.Handle {
	s := &CallScope{base: newBase(h, heap.FormatCallScope)}
	s.AddDelegate(parent)
	handle := h.Allocate(s, 1, false)
	s.SetHandle(handle)
	return handle
}

func (s *CallScope) Scan(visit func(*heap.Handle)) { s.scan(visit) }
func (s *CallScope) LookupProperty(h *heap.Heap, name string) (PropertyDescriptor, LookupState, bool) {
	return lookupOn(h, s, name)
}

// ModuleScope backs a single source file's top-level bindings.
type ModuleScope struct {
	base
}

// NewModuleScope allocates a ModuleScope on h, delegating to parent (usually
// the GlobalScope).
func NewModuleScope(h *heap.Heap, parent heap.Handle) heap.Handle {
	s := &ModuleScope{base: newBase(h, heap.FormatModuleScope)}
	s.AddDelegate(parent)
	handle := h.Allocate(s, 1, false)
	s.SetHandle(handle)
	return handle
}

func (s *ModuleScope) Scan(visit func(*heap.Handle)) { s.scan(visit) }
func (s *ModuleScope) LookupProperty(h *heap.Heap, name string) (PropertyDescriptor, LookupState, bool) {
	return lookupOn(h, s, name)
}

// GlobalScope holds the root syntactic-handler bindings (the `@...` native
// operatives) and has no delegates of its own.
type GlobalScope struct {
	base
}

// NewGlobalScope allocates a root GlobalScope with no delegates.
func NewGlobalScope(h *heap.Heap) heap.Handle {
	s := &GlobalScope{base: newBase(h, heap.FormatGlobalScope)}
	handle := h.Allocate(s, 1, false)
	s.SetHandle(handle)
	return handle
}

func (s *GlobalScope) Scan(visit func(*heap.Handle)) { s.scan(visit) }
func (s *GlobalScope) LookupProperty(h *heap.Heap, name string) (PropertyDescriptor, LookupState, bool) {
	return lookupOn(h, s, name)
}
