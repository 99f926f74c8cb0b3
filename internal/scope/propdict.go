package scope

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/values"
)

// DescriptorKind discriminates the three PropertyDescriptor shapes spec.md
// §4.4 enumerates.
type DescriptorKind uint8

const (
	DescValue DescriptorKind = iota
	DescMethod
	DescAccessor
)

// PropertyDescriptor is one binding in a PropertyDict: a plain value
// (optionally read-only), a lazily-reified method, or a getter/setter pair.
type PropertyDescriptor struct {
	Kind     DescriptorKind
	Value    values.ValBox
	Writable bool
	Method   FunctionBinding
	Getter   FunctionBinding
	Setter   FunctionBinding
}

// MakeSlot constructs a Value descriptor (spec.md §4.4:
// "PropertyDescriptor::MakeSlot(value, info)").
func MakeSlot(v values.ValBox, writable bool) PropertyDescriptor {
	return PropertyDescriptor{Kind: DescValue, Value: v, Writable: writable}
}

// MakeMethod constructs a Method descriptor.
func MakeMethod(fn FunctionBinding) PropertyDescriptor {
	return PropertyDescriptor{Kind: DescMethod, Method: fn}
}

// MakeAccessor constructs an Accessor descriptor.
func MakeAccessor(getter, setter FunctionBinding) PropertyDescriptor {
	return PropertyDescriptor{Kind: DescAccessor, Getter: getter, Setter: setter}
}

// propEntry is one bucket slot. Keeping the literal name alongside the
// descriptor means a hash collision between two distinct names (always
// possible once folded down to a uint64) is resolved by a direct string
// compare rather than one binding silently aliasing another.
type propEntry struct {
	name string
	desc PropertyDescriptor
}

// PropertyDict is the own binding table every Wobject carries alongside its
// delegate list (spec.md §4.4), hash-backed by values.Hash/values.HashName
// seeded with the owning heap's per-thread spoiler (spec.md §4.1: "string
// hashes are seeded with a per-thread spoiler to prevent adversarial
// collisions"). A native Go map already randomizes its own internal string
// hash per process, but keying on one directly would leave the spoiler this
// interpreter derives per heap.Heap (heap.Heap.Spoiler) doing nothing;
// chaining on that spoiler-seeded digest ourselves is what actually wires
// the defense into property lookup instead of just documenting it.
type PropertyDict struct {
	spoiler uint64
	buckets map[uint64][]propEntry
}

func newPropertyDict(h *heap.Heap) *PropertyDict {
	return &PropertyDict{spoiler: h.Spoiler(), buckets: make(map[uint64][]propEntry)}
}

// key folds name down to its bucket digest, preferring values.Hash over an
// inline Str8/Str16 ValBox (the representation a property name almost
// always fits) and falling back to values.HashName only for the rare
// identifier too long for either, so the common path exercises the same
// Hash spec.md §4.1 describes rather than bypassing it.
func (d *PropertyDict) key(name string) uint64 {
	if v, ok := values.NewStr8(name); ok {
		return values.Hash(d.spoiler, v, nil)
	}
	if v, ok := values.NewStr16(name); ok {
		return values.Hash(d.spoiler, v, nil)
	}
	return values.HashName(d.spoiler, name)
}

func (d *PropertyDict) get(name string) (PropertyDescriptor, bool) {
	for _, e := range d.buckets[d.key(name)] {
		if e.name == name {
			return e.desc, true
		}
	}
	return PropertyDescriptor{}, false
}

// define writes to the dict, replacing any existing binding (spec.md §4.4:
// "DefineProperty writes to the object's own dict, replacing any existing
// binding").
func (d *PropertyDict) define(name string, desc PropertyDescriptor) {
	key := d.key(name)
	bucket := d.buckets[key]
	for i := range bucket {
		if bucket[i].name == name {
			bucket[i].desc = desc
			return
		}
	}
	d.buckets[key] = append(bucket, propEntry{name: name, desc: desc})
}

// scan visits every own descriptor's heap-referencing state in place: a
// DescValue payload's handle is rewritten directly on its bucket slot (the
// slice's backing array, not a range-loop copy), and DescMethod/DescAccessor
// hand off to their FunctionBinding's own Scan.
func (d *PropertyDict) scan(visit func(*heap.Handle)) {
	for _, bucket := range d.buckets {
		for i := range bucket {
			switch bucket[i].desc.Kind {
			case DescValue:
				if h, ok := bucket[i].desc.Value.HeapHandle(); ok {
					visit(&h)
					bucket[i].desc.Value.UpdateHeapHandle(h)
				}
			case DescMethod:
				if bucket[i].desc.Method != nil {
					bucket[i].desc.Method.Scan(visit)
				}
			case DescAccessor:
				if bucket[i].desc.Getter != nil {
					bucket[i].desc.Getter.Scan(visit)
				}
				if bucket[i].desc.Setter != nil {
					bucket[i].desc.Setter.Scan(visit)
				}
			}
		}
	}
}

// Names returns every own-bound property name, for diagnostics and tests.
func (d *PropertyDict) Names() []string {
	names := make([]string, 0, len(d.buckets))
	for _, bucket := range d.buckets {
		for _, e := range bucket {
			names = append(names, e.name)
		}
	}
	return names
}
