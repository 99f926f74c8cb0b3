package heap

import "unicode/utf16"

// String is the heap-allocated form spec.md §3 names for text that doesn't
// fit inline in a ValBox (the Str8/Str16 cases): "length + UTF-16 code
// units; heap strings may be interned in a per-thread string table." The
// interning table itself lives in internal/whisper (it is per-ThreadContext
// state, not a heap concern) — this type is just the storage format.
type String struct {
	header Header
	units  []uint16
}

func (s *String) Header() *Header           { return &s.header }
func (s *String) IsLeaf() bool              { return true }
func (s *String) Scan(visit func(*Handle)) {}

// Value decodes the stored UTF-16 code units back to a Go string.
func (s *String) Value() string { return string(utf16.Decode(s.units)) }

// NewString allocates a heap String holding s's UTF-16 encoding and returns
// its handle.
func NewString(h *Heap, s string) Handle {
	units := utf16.Encode([]rune(s))
	str := &String{header: Header{Format: FormatString}, units: units}
	words := uint32(len(units)/2 + 1)
	return h.Allocate(str, words, true)
}

// StringValue resolves a String handle back to its Go string content.
func StringValue(h *Heap, handle Handle) (string, bool) {
	obj, ok := h.Lookup(handle)
	if !ok {
		return "", false
	}
	str, ok := obj.(*String)
	if !ok {
		return "", false
	}
	return str.Value(), true
}
