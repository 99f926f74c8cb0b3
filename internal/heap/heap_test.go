package heap

import "testing"

// pairObject is a minimal traced test object with one heap-valued field,
// used to exercise Scan/Update without pulling in the values package.
type pairObject struct {
	header Header
	next   Handle
	tag    int
}

func (p *pairObject) Header() *Header { return &p.header }
func (p *pairObject) Scan(visit func(*Handle)) {
	visit(&p.next)
}
func (p *pairObject) IsLeaf() bool { return false }

type leafObject struct {
	header Header
	value  uint32
}

func (l *leafObject) Header() *Header         { return &l.header }
func (l *leafObject) Scan(visit func(*Handle)) {}
func (l *leafObject) IsLeaf() bool             { return true }

func TestAllocateAlignment(t *testing.T) {
	h := New()
	for i := 0; i < 16; i++ {
		obj := &pairObject{tag: i}
		handle := h.Allocate(obj, 4, false)
		if !handle.Aligned() {
			t.Fatalf("handle %d not aligned (low bits of %d)", i, handle)
		}
	}
}

func TestHeaderMatchesFormat(t *testing.T) {
	h := New()
	obj := &pairObject{header: Header{Format: FormatFrame}}
	handle := h.Allocate(obj, 4, false)
	stored, ok := h.Lookup(handle)
	if !ok {
		t.Fatal("expected stored object to be found")
	}
	if stored.Header().Format != FormatFrame {
		t.Fatalf("expected format %v, got %v", FormatFrame, stored.Header().Format)
	}
}

func TestMinorCollectRelocatesRootAndUpdatesReferences(t *testing.T) {
	h := New()

	leaf := &leafObject{value: 99}
	leafHandle := h.Allocate(leaf, 1, true)

	child := &pairObject{tag: 1}
	childHandle := h.Allocate(child, 4, false)
	child.next = leafHandle

	parent := &pairObject{tag: 2}
	parentHandle := h.Allocate(parent, 4, false)
	parent.next = childHandle

	root := h.Root(parentHandle)
	defer root.Release()

	h.MinorCollect(nil)

	newParentHandle := root.Get()
	if newParentHandle == parentHandle {
		t.Fatal("expected root handle to be relocated into the nursery")
	}

	relocatedParent, ok := h.Lookup(newParentHandle)
	if !ok {
		t.Fatal("relocated parent not found in object table")
	}
	if relocatedParent.Header().Generation != Nursery {
		t.Fatalf("expected parent to be in nursery, got %v", relocatedParent.Header().Generation)
	}

	pp := relocatedParent.(*pairObject)
	relocatedChild, ok := h.Lookup(pp.next)
	if !ok {
		t.Fatal("child reference was not updated to its forwarded address")
	}
	cp := relocatedChild.(*pairObject)

	relocatedLeaf, ok := h.Lookup(cp.next)
	if !ok {
		t.Fatal("leaf reference was not updated to its forwarded address")
	}
	if relocatedLeaf.(*leafObject).value != 99 {
		t.Fatalf("leaf payload corrupted across relocation")
	}

	if _, stillThere := h.Lookup(parentHandle); stillThere {
		t.Fatal("old hatchery handle should no longer resolve after collection")
	}
}

func TestWithOnCollectReportsMinorCycle(t *testing.T) {
	var calls []string
	h := New(WithOnCollect(func(kind string, before, after uint64) {
		calls = append(calls, kind)
	}))

	obj := &leafObject{value: 1}
	handle := h.Allocate(obj, 1, true)
	root := h.Root(handle)
	defer root.Release()

	h.MinorCollect(nil)

	if len(calls) != 1 || calls[0] != "minor" {
		t.Fatalf("onCollect calls = %v, want [\"minor\"]", calls)
	}
}

func TestWriteBarrierMarksDirtyCard(t *testing.T) {
	h := New()
	obj := &pairObject{}
	handle := h.Allocate(obj, 4, false)
	h.WriteBarrier(handle)
	if !h.dirtyCards[handle.CardIndex()] {
		t.Fatal("expected write barrier to mark the containing card dirty")
	}
}
