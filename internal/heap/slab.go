package heap

const (
	cardSizeBytes = 1024
	cardSizeWords = cardSizeBytes / wordSize

	// standardMaxObjectWords bounds what a standard slab will host; larger
	// requests go to a singleton slab sized to fit exactly (spec.md §4.2).
	standardMaxObjectWords = 256

	// defaultSlabWords is the data region size of a freshly minted standard
	// slab, expressed in words so head/tail bump math stays in one unit.
	defaultSlabWords = 1 << 16 // 512 KiB per slab
)

// slab is one contiguous address range dedicated to a single generation.
// It bump-allocates traced objects from the head (growing toward higher
// addresses conceptually "down" from the top, per spec.md) and non-traced,
// leaf-format objects from the tail, the two cursors growing toward each
// other inside the data region.
type slab struct {
	base          uint64 // first address this slab owns
	capacityWords uint64
	headUsed      uint64 // words bumped from the head (traced objects)
	tailUsed      uint64 // words bumped from the tail (non-traced objects)
	singleton     bool
	next, prev    *slab
}

func newSlab(base, capacityWords uint64, singleton bool) *slab {
	return &slab{base: base, capacityWords: capacityWords, singleton: singleton}
}

// room reports the words still free between the two bump cursors.
func (s *slab) room() uint64 {
	used := s.headUsed + s.tailUsed
	if used >= s.capacityWords {
		return 0
	}
	return s.capacityWords - used
}

// allocateHead bumps a traced object in; returns the word offset (from
// s.base) the object starts at, or ok=false on exhaustion.
func (s *slab) allocateHead(nWords uint64) (offset uint64, ok bool) {
	if s.room() < nWords {
		return 0, false
	}
	offset = s.headUsed
	s.headUsed += nWords
	return offset, true
}

// allocateTail bumps a non-traced (leaf) object in from the opposite end.
func (s *slab) allocateTail(nWords uint64) (offset uint64, ok bool) {
	if s.room() < nWords {
		return 0, false
	}
	s.tailUsed += nWords
	offset = s.capacityWords - s.tailUsed
	return offset, true
}

func (s *slab) reset() {
	s.headUsed = 0
	s.tailUsed = 0
}
