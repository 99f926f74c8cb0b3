// Package frame implements the heap-allocated continuation-style frame
// machine (spec.md §4.5): the Step/Resolve trampoline that drives program
// evaluation without host-language recursion or coroutines. Grounded on the
// teacher's tree-walking Eval switch (internal/interp/interpreter.go),
// generalized from direct recursive calls into an explicit, heap-visible
// call stack so a precise moving GC (internal/heap) can trace in-flight
// evaluation state.
package frame

import "github.com/whisper-lang/whisper/internal/heap"

// Context is the per-step environment every Frame method receives: just the
// heap, since everything else (current scope, syntax, operand lists) is
// carried in the frame's own fields per spec.md §4.5. OnStep, if set, is
// called with the top frame before every Step — the hook internal/trace
// wires a pterm-backed sink through, without frame importing trace (which
// would otherwise need to know about every concrete Frame type to label
// them).
type Context struct {
	Heap   *heap.Heap
	OnStep func(top Frame)
}

// Frame is the {Step, Resolve} contract every frame kind implements
// (spec.md §2 item 8, §4.5).
type Frame interface {
	Parent() Frame
	// Step advances computation by one small action.
	Step(cx *Context) StepResult
	// Resolve is called when a child frame finished; result is always an
	// EvalResult — a uniform contract every frame spine link shares,
	// regardless of how many native Continue hops happened underneath it.
	Resolve(cx *Context, result EvalResult) StepResult
}

// StepResult names the trampoline's next top frame. Error outcomes are not
// a separate StepResult case: a frame that hits one resolves its parent
// with EvalResult{Kind: EvalError} instead, and that propagates up the
// normal Resolve chain (spec.md §7: "Error short-circuits unconditionally").
type StepResult struct {
	Next Frame
}

type frameBase struct {
	parent Frame
}

func (b *frameBase) Parent() Frame { return b.parent }

// Rootable is implemented by a Frame that carries heap.Handle-valued state
// (a Scope, an in-flight operand ValBox) — the in-flight evaluation state
// spec.md §4.2 names as a mandatory root source, since frames themselves
// are plain Go structs the slab collector never walks on its own. ScanRoots
// reports each such field to visit, which rewrites it in place if the
// collector relocates its referent — the same contract heap.Object.Scan
// already honors for heap-resident objects.
type Rootable interface {
	ScanRoots(visit func(*heap.Handle))
}

// scanSpine walks top's parent chain, calling ScanRoots on every frame that
// implements Rootable. A frame spine is finite and terminates at a
// *TerminalFrame (which holds no handles of its own), so this always
// halts.
func scanSpine(top Frame, visit func(*heap.Handle)) {
	for f := top; f != nil; f = f.Parent() {
		if r, ok := f.(Rootable); ok {
			r.ScanRoots(visit)
		}
	}
}

// resolveParent is the "I've decided my outcome, hand it to whoever spawned
// me" step nearly every frame's Step/Resolve ends with.
func resolveParent(cx *Context, parent Frame, result EvalResult) StepResult {
	return parent.Resolve(cx, result)
}

// Run drives the trampoline (spec.md §2 item 9) until entry's spine
// resolves into a TerminalFrame holding a final result. For as long as Run
// owns cx.Heap's extra-root scanner, every Allocate-triggered collection
// roots the live frame spine via scanSpine — a collection mid-interpretation
// must never see the current top frame's Scope or in-flight operands as
// unreachable.
func Run(cx *Context, entry Frame) EvalResult {
	top := entry
	cx.Heap.SetExtraRootScanner(func(visit func(*heap.Handle)) {
		scanSpine(top, visit)
	})
	defer cx.Heap.SetExtraRootScanner(nil)
	for {
		if term, ok := top.(*TerminalFrame); ok && term.done {
			return term.result
		}
		if cx.OnStep != nil {
			cx.OnStep(top)
		}
		top = top.Step(cx).Next
	}
}
