package frame

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/values"
)

// Continuation wraps a Frame and offers ContinueWith, the mechanism
// `return` uses to long-jump to the enclosing function's activation
// (spec.md §3, §9 "Continuations as data").
//
// Continuation is heap-allocated per spec.md (format FormatContinuation),
// but its target field rides Go's own garbage collector rather than the
// slab collector in internal/heap: frames in this implementation are plain
// Go structs forming a logical spine (see the frame-machine note in
// DESIGN.md), not further slab-allocated HeapThings, since Go's runtime
// already gives them precise, safe memory management and re-deriving a
// second tracing collector for host-language objects would just duplicate
// it. Scan is therefore a no-op: a Continuation's only payload is a Go
// pointer, not a heap.Handle edge.
type Continuation struct {
	header heap.Header
	target Frame
}

func (c *Continuation) Header() *heap.Header        { return &c.header }
func (c *Continuation) IsLeaf() bool                 { return true }
func (c *Continuation) Scan(visit func(*heap.Handle)) {}

// NewContinuation allocates a Continuation targeting target and returns its
// handle.
func NewContinuation(h *heap.Heap, target Frame) heap.Handle {
	c := &Continuation{header: heap.Header{Format: heap.FormatContinuation}, target: target}
	return h.Allocate(c, 1, true)
}

// ContinueWith redirects the trampoline to the continuation's captured
// frame, handing it v as the finished value (spec.md §4.5.6).
func (c *Continuation) ContinueWith(cx *Context, v values.ValBox) StepResult {
	return resolveParent(cx, c.target, ValueResult(v))
}
