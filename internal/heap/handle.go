package heap

// Handle is a synthetic heap address: a word-aligned offset into one of the
// generation address ranges. It plays the role spec.md assigns to a raw
// pointer, without Whisper reaching for unsafe.Pointer arithmetic over Go's
// own managed memory — see DESIGN.md for why a handle table stands in for
// byte-addressed relocation here.
//
// Handle 0 is the invalid/null sentinel, mirroring ValBox's raw==0
// invariant (spec.md §3 (iv)): never an address the allocator hands out.
type Handle uint64

// wordSize is the unit every size and offset in the heap is expressed in.
const wordSize = 8

// IsValid reports whether h addresses a live slot (as opposed to the null
// sentinel).
func (h Handle) IsValid() bool { return h != 0 }

// Aligned reports whether h satisfies the allocator's alignment invariant
// (low 3 bits zero — testable property #2).
func (h Handle) Aligned() bool { return uint64(h)%wordSize == 0 }

// CardIndex returns the dirty-card number a given handle falls in, derived
// by shift per spec.md §3 (Slab: "the card number of any in-slab pointer is
// derivable by shift").
func (h Handle) CardIndex() uint64 { return uint64(h) / cardSizeBytes }
