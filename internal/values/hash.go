package values

import (
	"encoding/binary"
	"hash/fnv"
	"math"

	"github.com/cnf/structhash"
)

// NewSpoiler derives a per-thread hash seed, consumed by Hash below, by
// folding entropy through FNV-1a. It adds no randomness of its own: equal
// entropy gives an equal spoiler, so two ThreadContexts see different
// spoilers only when they pass different entropy (spec.md §4.1).
func NewSpoiler(entropy uint64) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], entropy)
	_, _ = h.Write(buf[:])
	return h.Sum64()
}

// Hash computes a stable-within-process hash of v, seeded by spoiler.
// Heap-tailed strings are resolved to their content through resolveString
// and structurally hashed via structhash (grounded on
// npillmayer-gorgo/lr/earley/earley.go's use of the same package), whose
// digest is then folded together with the spoiler so that equal strings
// hash equally regardless of where their content happens to live.
func Hash(spoiler uint64, v ValBox, resolveString func(ValBox) string) uint64 {
	h := fnv.New64a()
	mix := func(b []byte) {
		_, _ = h.Write(b)
	}

	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], spoiler)
	mix(buf[:])
	mix([]byte{byte(v.kind)})

	switch v.kind {
	case KindUndefined, KindNull:
		// no payload
	case KindBool:
		if v.b {
			mix([]byte{1})
		} else {
			mix([]byte{0})
		}
	case KindInt32:
		binary.LittleEndian.PutUint32(buf[:4], uint32(v.i32))
		mix(buf[:4])
	case KindDouble:
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v.f64))
		mix(buf[:])
	case KindStr8:
		mix(structHashBytes(v.AsStr8()))
	case KindStr16:
		mix(structHashBytes(v.AsStr16()))
	case KindHeapStringRef:
		if resolveString != nil {
			mix(structHashBytes(resolveString(v)))
		}
	case KindHeapDoubleRef, KindObjectRef:
		binary.LittleEndian.PutUint64(buf[:], uint64(v.handle))
		mix(buf[:])
	case KindMagic:
		binary.LittleEndian.PutUint32(buf[:4], v.magic)
		mix(buf[:4])
	}
	return h.Sum64()
}

// HashName hashes a plain Go string the same way Hash folds a Str8/Str16
// payload, without forcing the caller to round-trip it through ValBox's
// 7-byte/3-code-unit inline capacity first. PropertyDict keys (spec.md
// §4.1's "hash-backed property dictionary") are native Go strings, not
// ValBox payloads, and most property names are short enough for NewStr8/
// NewStr16 — but a dict can't reject a long identifier, and spilling it to
// a heap.String just to compute a lookup key would add an allocation to
// every DefineProperty call for no reason.
func HashName(spoiler uint64, name string) uint64 {
	h := fnv.New64a()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], spoiler)
	_, _ = h.Write(buf[:])
	_, _ = h.Write(structHashBytes(name))
	return h.Sum64()
}

func structHashBytes(s string) []byte {
	digest, err := structhash.Hash(struct{ S string }{S: s}, 1)
	if err != nil {
		// structhash only fails on unsupported reflect kinds; a plain
		// string field never triggers that path.
		panic(err)
	}
	return []byte(digest)
}

