package whisper

import (
	"github.com/cnf/structhash"

	"github.com/whisper-lang/whisper/internal/heap"
)

// internTable is the per-thread string interning table spec.md §9 names:
// "keyed by content hash. Use open addressing or chaining as desired; the
// contract is only that interned equal strings compare by pointer." Chaining
// via a Go map bucketed by a structhash digest of the content (grounded on
// npillmayer-gorgo/lr/earley/earley.go's use of the same package, also
// internal/values/hash.go's probe-key use for ValBox hashing) is the chosen
// scheme; ties within a bucket are resolved by a content comparison against
// each candidate before falling back to allocating a new heap.String.
type internTable struct {
	buckets map[string][]heap.Handle
}

func newInternTable() *internTable {
	return &internTable{buckets: make(map[string][]heap.Handle)}
}

func internKey(s string) string {
	digest, err := structhash.Hash(struct{ S string }{S: s}, 1)
	if err != nil {
		panic(err)
	}
	return digest
}

// Intern returns the canonical heap.Handle for s's content: a prior handle
// if s was already interned on this thread, a freshly allocated heap.String
// otherwise. Two calls with equal s always return the same Handle, so
// pointer (handle) equality is a valid proxy for string equality among
// interned strings, per spec.md §9.
func (t *internTable) Intern(h *heap.Heap, s string) heap.Handle {
	key := internKey(s)
	for _, candidate := range t.buckets[key] {
		if cs, ok := heap.StringValue(h, candidate); ok && cs == s {
			return candidate
		}
	}
	handle := heap.NewString(h, s)
	t.buckets[key] = append(t.buckets[key], handle)
	return handle
}
