package heap

import "hash/maphash"

// Options configures a Heap's allocator tunables. Grounded on the teacher's
// functional-options constructor (internal/interp/options.go in the
// CWBudde-go-dws sources).
type Options struct {
	slabWords              uint64
	standardMaxObjectWords uint64
	onCollect              func(kind string, beforeWords, afterWords uint64)
}

// Option mutates an Options value during New.
type Option func(*Options)

// WithSlabWords overrides the default data-region size of a freshly minted
// standard slab, expressed in words.
func WithSlabWords(words uint64) Option {
	return func(o *Options) { o.slabWords = words }
}

// WithStandardMaxObjectWords overrides the size, in words, above which an
// allocation is routed to a dedicated singleton slab instead of a standard
// one.
func WithStandardMaxObjectWords(words uint64) Option {
	return func(o *Options) { o.standardMaxObjectWords = words }
}

// WithOnCollect installs a callback invoked after every completed collection
// cycle, reporting kind ("minor" or "major") and the live word count of the
// source generation immediately before and after the copy — the hook
// internal/trace wires a sink through, mirroring frame.Context.OnStep:
// collections happen transparently inside Allocate rather than under an
// external runtime loop's control, so the heap itself is the only place that
// can bracket a cycle.
func WithOnCollect(fn func(kind string, beforeWords, afterWords uint64)) Option {
	return func(o *Options) { o.onCollect = fn }
}

func defaultOptions() Options {
	return Options{
		slabWords:              defaultSlabWords,
		standardMaxObjectWords: standardMaxObjectWords,
	}
}

type generationState struct {
	gen         Generation
	slabs       []*slab
	nextBase    uint64 // next free address in this generation's private range
	addressBase uint64 // start of this generation's address range
}

// addressSpan is large enough that hatchery/nursery/tenured handles never
// collide, which makes Generation recoverable from a bare Handle during
// debugging/tracing without consulting the object table.
const addressSpan = uint64(1) << 40

// Heap is the GC-managed object space: three generations of slabs, a
// per-thread root chain, and the dirty-card write-barrier record.
type Heap struct {
	opts          Options
	gens          [3]*generationState
	objects       map[Handle]Object
	roots         *rootSet
	dirtyCards    map[uint64]bool
	stats         Stats
	extraRootScan func(visit func(*Handle))
	spoiler       uint64
}

// Stats accumulates collector counters useful for diagnostics and tests.
type Stats struct {
	Allocations    uint64
	MinorCollects  uint64
	MajorCollects  uint64
	BytesRelocated uint64
}

// New creates an empty heap with one standard slab per generation.
func New(options ...Option) *Heap {
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}
	h := &Heap{
		opts:       opts,
		objects:    make(map[Handle]Object),
		roots:      newRootSet(),
		dirtyCards: make(map[uint64]bool),
		// maphash.Hash auto-seeds itself from the runtime's own random
		// source on construction, so summing an empty write yields a
		// process-local unpredictable value — the "per-thread spoiler"
		// entropy source spec.md §4.1 calls for, with no extra dependency
		// beyond what hash/maphash already provides.
		spoiler: (&maphash.Hash{}).Sum64(),
	}
	for g := Hatchery; g <= Tenured; g++ {
		h.gens[g] = &generationState{gen: g, addressBase: (uint64(g) + 1) * addressSpan}
	}
	return h
}

// Spoiler returns this heap's per-thread hash seed (spec.md §4.1), for
// packages that bucket their own string-keyed tables by values.Hash/
// values.HashName rather than a native Go map.
func (h *Heap) Spoiler() uint64 { return h.spoiler }

// Root registers handle in the thread-local root chain and returns a scoped
// guard. Callers must Release it (typically via defer) once the reference
// no longer needs to survive a collection.
func (h *Heap) Root(initial Handle) *Local {
	l := &Local{heap: h, value: initial}
	h.roots.register(&l.value)
	return l
}

// Stats returns a snapshot of the collector's counters.
func (h *Heap) Stats() Stats { return h.stats }

// SetExtraRootScanner installs a callback that collect invokes alongside
// the persistent root chain: scan calls visit once per live heap.Handle the
// caller wants treated as a root for the duration of the next collection.
// internal/frame uses this to root the current Step's frame spine (spec.md
// §4.2: "the current top frame... is a mandatory root source") without the
// frame machine having to mint and release a heap.Local for every Scope and
// operand field on every Step. Pass nil to clear it.
func (h *Heap) SetExtraRootScanner(scan func(visit func(*Handle))) {
	h.extraRootScan = scan
}

// Lookup resolves a handle to its live object, or (nil,false) if the handle
// does not currently address anything (either invalid or already
// collected).
func (h *Heap) Lookup(handle Handle) (Object, bool) {
	obj, ok := h.objects[handle]
	return obj, ok
}

func (h *Heap) currentSlab(gen Generation, words uint64, leaf bool) *slab {
	g := h.gens[gen]
	if len(g.slabs) == 0 {
		h.addSlab(g, h.opts.slabWords, false)
	}
	return g.slabs[len(g.slabs)-1]
}

func (h *Heap) addSlab(g *generationState, words uint64, singleton bool) *slab {
	s := newSlab(g.addressBase+g.nextBase, words, singleton)
	g.nextBase += words * wordSize
	if len(g.slabs) > 0 {
		prev := g.slabs[len(g.slabs)-1]
		prev.next = s
		s.prev = prev
	}
	g.slabs = append(g.slabs, s)
	return s
}

// Allocate reserves space for obj in the hatchery generation, sized to
// words, and registers it in the object table. leaf formats (no heap-valued
// fields) are bumped from the tail of their slab; traced formats are bumped
// from the head, per spec.md §4.2.
func (h *Heap) Allocate(obj Object, words uint32, leaf bool) Handle {
	obj.Header().SizeWords = words
	obj.Header().Generation = Hatchery

	if uint64(words) > h.opts.standardMaxObjectWords {
		s := h.addSlab(h.gens[Hatchery], uint64(words), true)
		offset, ok := s.allocateHead(uint64(words))
		if !ok {
			panic("heap: singleton slab allocation failed")
		}
		handle := Handle(s.base + offset*wordSize)
		h.objects[handle] = obj
		h.stats.Allocations++
		return handle
	}

	for attempt := 0; attempt < 2; attempt++ {
		s := h.currentSlab(Hatchery, uint64(words), leaf)
		var offset uint64
		var ok bool
		if leaf {
			offset, ok = s.allocateTail(uint64(words))
		} else {
			offset, ok = s.allocateHead(uint64(words))
		}
		if ok {
			handle := Handle(s.base + offset*wordSize)
			h.objects[handle] = obj
			h.stats.Allocations++
			return handle
		}
		if attempt == 0 {
			h.MinorCollect(nil)
			h.addSlab(h.gens[Hatchery], h.opts.slabWords, false)
		}
	}
	panic("heap: hatchery exhausted even after collection")
}

// WriteBarrier records containerCard as dirty so an old-to-young reference
// written into an already-allocated object survives the next minor cycle
// (spec.md §4.2 "Write barrier"). Stack-field writes never call this; only
// mutations to a field embedded in a heap object do.
func (h *Heap) WriteBarrier(container Handle) {
	h.dirtyCards[container.CardIndex()] = true
}

// MinorCollect copies hatchery survivors into the nursery.
func (h *Heap) MinorCollect(extraRoots []*Handle) {
	h.stats.MinorCollects++
	h.collect("minor", Hatchery, Nursery, extraRoots)
}

// MajorCollect promotes nursery survivors into tenured.
func (h *Heap) MajorCollect(extraRoots []*Handle) {
	h.stats.MajorCollects++
	h.collect("major", Nursery, Tenured, extraRoots)
}

// collect runs one Cheney-style copying pass, relocating every object of
// generation `from` that is reachable from the root chain, from the
// dirty-card remembered set, or transitively from either, into generation
// `to`. Every Scan'd slot that pointed at a relocated object is rewritten to
// the object's new Handle before collect returns (testable property #6: no
// heap field points at a forwarded address afterwards).
func (h *Heap) collect(kind string, from, to Generation, extraRoots []*Handle) {
	var beforeWords uint64
	for _, obj := range h.objects {
		if obj.Header().Generation == from {
			beforeWords += uint64(obj.Header().SizeWords)
		}
	}

	forwarding := make(map[Handle]Handle)
	var worklist []Handle
	var survivorWords uint64

	var copyObj func(old Handle) Handle
	copyObj = func(old Handle) Handle {
		if !old.IsValid() {
			return old
		}
		if nh, ok := forwarding[old]; ok {
			return nh
		}
		obj, ok := h.objects[old]
		if !ok || obj.Header().Generation != from {
			return old
		}
		newHandle := h.relocate(to, obj)
		forwarding[old] = newHandle
		delete(h.objects, old)
		h.objects[newHandle] = obj
		obj.Header().Generation = to
		h.stats.BytesRelocated += uint64(obj.Header().SizeWords) * wordSize
		survivorWords += uint64(obj.Header().SizeWords)
		worklist = append(worklist, newHandle)
		return newHandle
	}

	h.roots.each(func(slot *Handle) {
		*slot = copyObj(*slot)
	})
	for _, slot := range extraRoots {
		*slot = copyObj(*slot)
	}
	if h.extraRootScan != nil {
		h.extraRootScan(func(slot *Handle) {
			*slot = copyObj(*slot)
		})
	}

	// Remembered set: any live object whose card was marked dirty may hold
	// an old-to-young pointer and must be rescanned as an additional root.
	for handle, obj := range h.objects {
		if !h.dirtyCards[handle.CardIndex()] || obj.IsLeaf() {
			continue
		}
		obj.Scan(func(slot *Handle) {
			*slot = copyObj(*slot)
		})
	}

	for len(worklist) > 0 {
		cur := worklist[0]
		worklist = worklist[1:]
		obj := h.objects[cur]
		if obj.IsLeaf() {
			continue
		}
		obj.Scan(func(slot *Handle) {
			*slot = copyObj(*slot)
		})
	}

	for _, s := range h.gens[from].slabs {
		s.reset()
	}
	h.gens[from].slabs = h.gens[from].slabs[:0]
	h.dirtyCards = make(map[uint64]bool)

	if h.opts.onCollect != nil {
		h.opts.onCollect(kind, beforeWords, survivorWords)
	}
}

func (h *Heap) relocate(to Generation, obj Object) Handle {
	words := uint64(obj.Header().SizeWords)
	leaf := obj.IsLeaf()
	s := h.currentSlab(to, words, leaf)
	var offset uint64
	var ok bool
	if leaf {
		offset, ok = s.allocateTail(words)
	} else {
		offset, ok = s.allocateHead(words)
	}
	if !ok {
		s = h.addSlab(h.gens[to], max(h.opts.slabWords, words), false)
		if leaf {
			offset, ok = s.allocateTail(words)
		} else {
			offset, ok = s.allocateHead(words)
		}
		if !ok {
			panic("heap: relocation target slab too small")
		}
	}
	return Handle(s.base + offset*wordSize)
}

func max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
