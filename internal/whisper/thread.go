package whisper

import (
	"bytes"
	"runtime"
	"strconv"
	"sync"

	"github.com/whisper-lang/whisper/internal/handlers"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
)

// ThreadContext is one trampoline driver's private state (spec.md §5): its
// own heap (slab free-lists and generation lists are thread-local per §5),
// and the Runtime it was registered against. Cross-thread references are
// disallowed, so nothing here is safe to share between ThreadContexts.
type ThreadContext struct {
	rt     *Runtime
	Heap   *heap.Heap
	intern *internTable
}

// Intern returns the canonical heap.Handle for s's content on this thread
// (spec.md §9's string interning table), allocating a heap.String the first
// time s is seen.
func (tc *ThreadContext) Intern(s string) heap.Handle {
	return tc.intern.Intern(tc.Heap, s)
}

// goroutineID parses the numeric goroutine id out of a runtime.Stack dump
// (the same diagnostic call the teacher's ffi_errors.go uses to capture a Go
// stack trace, repurposed here as the thread-registration key). Go exposes
// no public OS-thread identity; LockOSThread pins the calling goroutine to
// one OS thread for as long as it runs, which makes the goroutine id a valid
// stand-in for "the current OS thread" as required by register_thread's
// idempotence (spec.md §6).
func goroutineID() uint64 {
	buf := make([]byte, 64)
	n := runtime.Stack(buf, false)
	buf = buf[:n]
	// "goroutine 123 [running]:" is always the dump's first line.
	const prefix = "goroutine "
	if !bytes.HasPrefix(buf, []byte(prefix)) {
		return 0
	}
	rest := buf[len(prefix):]
	if sp := bytes.IndexByte(rest, ' '); sp >= 0 {
		rest = rest[:sp]
	}
	id, _ := strconv.ParseUint(string(rest), 10, 64)
	return id
}

// threadKey pairs a Runtime with the OS thread registering against it —
// idempotence is scoped to that pair, not to the thread alone, so two
// distinct Runtimes registering from the same goroutine each get their own
// ThreadContext and heap instead of silently sharing one.
type threadKey struct {
	rt *Runtime
	id uint64
}

var threadRegistry sync.Map // threadKey -> *ThreadContext

// RegisterThread implements spec.md §6's register_thread(rt) → ThreadContext,
// idempotent per (Runtime, OS thread) pair: calling it again with the same
// rt from the same goroutine after a prior LockOSThread returns the same
// ThreadContext rather than minting a second heap.
func RegisterThread(rt *Runtime) *ThreadContext {
	runtime.LockOSThread()
	key := threadKey{rt: rt, id: goroutineID()}
	if existing, ok := threadRegistry.Load(key); ok {
		return existing.(*ThreadContext)
	}
	tc := &ThreadContext{rt: rt, Heap: heap.New(rt.heapOptions()...), intern: newInternTable()}
	threadRegistry.Store(key, tc)
	return tc
}

// MakeGlobalScope implements spec.md §6's make_global_scope(tc) →
// GlobalScope: a freshly allocated root scope with every default `@…`
// handler bound (internal/handlers.Register). The scope is rooted for the
// duration of Register's bindings: nothing outside this function holds a
// live reference yet, so a collection triggered by one of Register's own
// allocations must not see the scope itself as unreachable.
func MakeGlobalScope(tc *ThreadContext) heap.Handle {
	root := tc.Heap.Root(scope.NewGlobalScope(tc.Heap))
	defer root.Release()

	obj, _ := tc.Heap.Lookup(root.Get())
	handlers.Register(tc.Heap, obj.(*scope.GlobalScope))
	return root.Get()
}
