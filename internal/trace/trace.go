// Package trace is Whisper's structured execution tracer: a pterm-backed
// sink for the trampoline's Step transitions and the heap's GC cycles,
// wired in behind a --trace flag and a no-op by default so the hot path
// stays branch-light (spec.md §4.1's rationale for a tight trampoline loop).
// Grounded on npillmayer-gorgo's terex/terexlang/trepl/repl.go, which styles
// pterm.Info/pterm.Error prefix printers for a term-rewriter's REPL output —
// the same "label a transition, print one colored line" shape this package
// reuses for Step/GC events instead of REPL echoes.
package trace

import (
	"fmt"

	"github.com/pterm/pterm"
)

// Sink receives trace events. Every method on Noop does nothing, so code
// that always calls through a Sink never needs a nil check.
type Sink interface {
	// Step reports that top is about to execute Step.
	Step(top any)
	// GC reports a completed collection cycle.
	GC(kind string, beforeWords, afterWords uint64)
}

type noopSink struct{}

func (noopSink) Step(any)                                   {}
func (noopSink) GC(kind string, beforeWords, afterWords uint64) {}

// Noop is the default sink: tracing off, zero overhead beyond the interface
// call frame.Context.OnStep already makes optional.
var Noop Sink = noopSink{}

// PtermSink prints one styled line per event, mirroring trepl's
// pterm.Info/pterm.Error prefix-printer convention.
type PtermSink struct {
	step pterm.PrefixPrinter
	gc   pterm.PrefixPrinter
}

// NewPtermSink builds a trace sink with its own STEP/GC prefixes, copied
// from pterm.Info so it inherits the same base styling.
func NewPtermSink() *PtermSink {
	step := pterm.Info
	step.Prefix = pterm.Prefix{
		Text:  " STEP ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	gc := pterm.Info
	gc.Prefix = pterm.Prefix{
		Text:  " GC ",
		Style: pterm.NewStyle(pterm.BgMagenta, pterm.FgBlack),
	}
	return &PtermSink{step: step, gc: gc}
}

func (s *PtermSink) Step(top any) {
	s.step.Println(fmt.Sprintf("%T", top))
}

func (s *PtermSink) GC(kind string, beforeWords, afterWords uint64) {
	s.gc.Println(fmt.Sprintf("%s: %d -> %d words", kind, beforeWords, afterWords))
}
