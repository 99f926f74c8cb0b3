// Package values implements ValBox, the universal tagged-value currency
// passed between every component of the interpreter (spec.md §3, §4.1).
//
// spec.md models ValBox as a 64-bit word with a 4-bit tag packed into its
// high bits. A straight Go port of that bit-twiddling would fight the host
// language's own memory safety for no benefit, so — per spec.md's own design
// note ("Model ValBox as a sum type with explicit constructors rather than
// exposing raw word bit-twiddling outside one well-tested module") — this
// package instead implements ValBox as a small struct with one active
// representation at a time, gated entirely behind the constructors and
// predicates below. Every other package only ever touches a ValBox through
// this file's contract.
package values

import (
	"fmt"
	"math"
	"unicode/utf16"

	"github.com/whisper-lang/whisper/internal/heap"
)

// Kind discriminates which representation a ValBox currently holds.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNull
	KindBool
	KindInt32
	KindDouble        // immediate-range float64
	KindHeapDoubleRef // float64 outside the immediate exponent range
	KindStr8          // inline UTF-8, <= 7 bytes
	KindStr16         // inline UTF-16 code units, <= 3 units
	KindHeapStringRef
	KindObjectRef
	KindMagic
)

func (k Kind) String() string {
	switch k {
	case KindUndefined:
		return "undefined"
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt32:
		return "int32"
	case KindDouble:
		return "double"
	case KindHeapDoubleRef:
		return "heap-double-ref"
	case KindStr8:
		return "str8"
	case KindStr16:
		return "str16"
	case KindHeapStringRef:
		return "heap-string-ref"
	case KindObjectRef:
		return "object-ref"
	case KindMagic:
		return "magic"
	default:
		return "invalid"
	}
}

// ValBox is the universal dynamic value. Its zero value has kind
// KindUndefined, so it is the same value Undefined() returns; this
// representation has no separate invalid kind.
type ValBox struct {
	kind   Kind
	b      bool
	i32    int32
	f64    float64
	str8   [7]byte
	str8n  uint8
	str16  [3]uint16
	str16n uint8
	handle heap.Handle
	magic  uint32
}

// immediateExponentMin/Max bound the unbiased binary exponent (as returned
// by math.Frexp) an immediate Double may carry, per spec.md §9's resolution of
// the Value design ambiguity (4-bit high-tag ValBox, adopted exponent range
// [-127, +128]).
const (
	immediateExponentMin = -127
	immediateExponentMax = 128
)

// Undefined returns the Undefined value.
func Undefined() ValBox { return ValBox{kind: KindUndefined} }

// Null returns the Null value.
func Null() ValBox { return ValBox{kind: KindNull} }

// NewBool returns a boolean ValBox.
func NewBool(b bool) ValBox { return ValBox{kind: KindBool, b: b} }

// NewInt32 returns an immediate 32-bit integer ValBox.
func NewInt32(n int32) ValBox { return ValBox{kind: KindInt32, i32: n} }

// IsImmediateDouble reports whether f can be represented as an immediate
// Double rather than requiring a heap-allocated tail.
func IsImmediateDouble(f float64) bool {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	_, exp := math.Frexp(f)
	return exp >= immediateExponentMin && exp <= immediateExponentMax
}

// NewDouble returns an immediate Double ValBox. The caller must check
// IsImmediateDouble first; values outside the immediate range must be
// heap-allocated by the caller (a heap object of format
// heap.FormatDoubleBox) and wrapped with
// NewHeapDoubleRef instead.
func NewDouble(f float64) ValBox {
	if !IsImmediateDouble(f) {
		panic("values: NewDouble called with a value outside the immediate exponent range")
	}
	return ValBox{kind: KindDouble, f64: f}
}

// NewHeapDoubleRef wraps a handle to a heap-allocated double tail.
func NewHeapDoubleRef(h heap.Handle) ValBox {
	return ValBox{kind: KindHeapDoubleRef, handle: h}
}

// NewStr8 attempts to build an inline 7-byte (or shorter) string. ok is
// false when s does not fit, in which case the caller must intern s on the
// heap and use NewHeapStringRef.
func NewStr8(s string) (ValBox, bool) {
	if len(s) > 7 {
		return ValBox{}, false
	}
	v := ValBox{kind: KindStr8, str8n: uint8(len(s))}
	copy(v.str8[:], s)
	return v, true
}

// NewStr16 attempts to build an inline UTF-16 string of at most 3 code
// units (spec.md §3 Str16). ok is false when s needs more code units.
func NewStr16(s string) (ValBox, bool) {
	units := utf16.Encode([]rune(s))
	if len(units) > 3 {
		return ValBox{}, false
	}
	v := ValBox{kind: KindStr16, str16n: uint8(len(units))}
	copy(v.str16[:], units)
	return v, true
}

// NewHeapStringRef wraps a handle to a heap-allocated String object.
func NewHeapStringRef(h heap.Handle) ValBox {
	return ValBox{kind: KindHeapStringRef, handle: h}
}

// MakeString picks the cheapest representation for s — inline Str8, then
// inline Str16, then a heap-allocated String — mirroring how a real
// allocator would prefer the immediate encodings before spilling to the
// heap. h is only touched (and may only be nil) in the spill case.
func MakeString(h *heap.Heap, s string) ValBox {
	if v, ok := NewStr8(s); ok {
		return v
	}
	if v, ok := NewStr16(s); ok {
		return v
	}
	return NewHeapStringRef(heap.NewString(h, s))
}

// NewObjectRef wraps a handle to an arbitrary heap object.
func NewObjectRef(h heap.Handle) ValBox {
	return ValBox{kind: KindObjectRef, handle: h}
}

// NewMagic returns a runtime-private value never observable by user code.
func NewMagic(bits uint32) ValBox { return ValBox{kind: KindMagic, magic: bits} }

// Kind reports which representation the box currently holds.
func (v ValBox) Kind() Kind { return v.kind }

func (v ValBox) IsUndefined() bool     { return v.kind == KindUndefined }
func (v ValBox) IsNull() bool          { return v.kind == KindNull }
func (v ValBox) IsBool() bool          { return v.kind == KindBool }
func (v ValBox) IsInt32() bool         { return v.kind == KindInt32 }
func (v ValBox) IsDouble() bool        { return v.kind == KindDouble }
func (v ValBox) IsHeapDoubleRef() bool { return v.kind == KindHeapDoubleRef }
func (v ValBox) IsStr8() bool          { return v.kind == KindStr8 }
func (v ValBox) IsStr16() bool         { return v.kind == KindStr16 }
func (v ValBox) IsHeapStringRef() bool { return v.kind == KindHeapStringRef }
func (v ValBox) IsObjectRef() bool     { return v.kind == KindObjectRef }
func (v ValBox) IsMagic() bool         { return v.kind == KindMagic }

// IsNumber covers every numeric variant (Int32, immediate Double, and
// heap-tailed Double).
func (v ValBox) IsNumber() bool {
	return v.kind == KindInt32 || v.kind == KindDouble || v.kind == KindHeapDoubleRef
}

// IsString covers both immediate string encodings and the heap reference.
func (v ValBox) IsString() bool {
	return v.kind == KindStr8 || v.kind == KindStr16 || v.kind == KindHeapStringRef
}

// AsBool returns the boolean payload; panics if Kind() != KindBool.
func (v ValBox) AsBool() bool {
	v.mustBe(KindBool)
	return v.b
}

// AsInt32 returns the int32 payload; panics if Kind() != KindInt32.
func (v ValBox) AsInt32() int32 {
	v.mustBe(KindInt32)
	return v.i32
}

// AsImmediateDouble returns the immediate float64 payload; panics if
// Kind() != KindDouble. Use Heap().Lookup with AsHeapDoubleHandle for the
// KindHeapDoubleRef case.
func (v ValBox) AsImmediateDouble() float64 {
	v.mustBe(KindDouble)
	return v.f64
}

// AsHeapDoubleHandle returns the handle a HeapDoubleRef wraps.
func (v ValBox) AsHeapDoubleHandle() heap.Handle {
	v.mustBe(KindHeapDoubleRef)
	return v.handle
}

// AsStr8 decodes the inline 7-byte string.
func (v ValBox) AsStr8() string {
	v.mustBe(KindStr8)
	return string(v.str8[:v.str8n])
}

// AsStr16 decodes the inline UTF-16 string.
func (v ValBox) AsStr16() string {
	v.mustBe(KindStr16)
	return string(utf16.Decode(v.str16[:v.str16n]))
}

// AsHeapHandle returns the handle wrapped by a HeapStringRef or ObjectRef.
func (v ValBox) AsHeapHandle() heap.Handle {
	if v.kind != KindHeapStringRef && v.kind != KindObjectRef {
		panic(fmt.Sprintf("values: AsHeapHandle called on %s", v.kind))
	}
	return v.handle
}

// HeapHandle reports the handle a box wraps, if any — used by a container's
// Scan to discover edges without a panic-on-mismatch accessor. Covers every
// kind that carries a heap.Handle: HeapDoubleRef, HeapStringRef, ObjectRef.
func (v ValBox) HeapHandle() (heap.Handle, bool) {
	switch v.kind {
	case KindHeapDoubleRef, KindHeapStringRef, KindObjectRef:
		return v.handle, true
	default:
		return heap.Handle(0), false
	}
}

// UpdateHeapHandle overwrites the handle a HeapDoubleRef/HeapStringRef/
// ObjectRef box wraps, in place. A relocating collector's visit callback
// only ever rewrites the pointer it is given, so a Scan implementation must
// call this on the box's real storage (a struct field, a slice element) —
// never on a ValBox obtained by value from a map or a Values() copy, which
// would silently discard the forwarded handle.
func (v *ValBox) UpdateHeapHandle(h heap.Handle) {
	if v.kind != KindHeapDoubleRef && v.kind != KindHeapStringRef && v.kind != KindObjectRef {
		panic(fmt.Sprintf("values: UpdateHeapHandle called on %s", v.kind))
	}
	v.handle = h
}

// AsMagic returns the private bit pattern; panics if Kind() != KindMagic.
func (v ValBox) AsMagic() uint32 {
	v.mustBe(KindMagic)
	return v.magic
}

func (v ValBox) mustBe(k Kind) {
	if v.kind != k {
		panic(fmt.Sprintf("values: expected %s, got %s", k, v.kind))
	}
}

// Equal implements raw-word equality: spec.md invariant (i), equality of two
// ValBox values' discriminants and payloads implies semantic equality for
// every non-heap-reference case. Heap references compare by handle, which is
// stable across a collection because the collector patches every live slot
// (spec.md invariant #6) — the caller is expected to have already re-read
// any ValBox held across a safe point.
func (v ValBox) Equal(other ValBox) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindUndefined, KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindInt32:
		return v.i32 == other.i32
	case KindDouble:
		return v.f64 == other.f64
	case KindHeapDoubleRef, KindHeapStringRef, KindObjectRef:
		return v.handle == other.handle
	case KindStr8:
		return v.AsStr8() == other.AsStr8()
	case KindStr16:
		return v.AsStr16() == other.AsStr16()
	case KindMagic:
		return v.magic == other.magic
	default:
		return false
	}
}
