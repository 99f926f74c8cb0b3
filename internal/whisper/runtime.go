// Package whisper is the embedder-facing surface (spec.md §6):
// create_runtime, register_thread, make_global_scope,
// interpret_source_file, interpret_syntax. Grounded on the teacher's
// internal/interp.New/Eval entry points and internal/interp/runner's
// New/NewWithOptions split (keep the execution core free of the config
// type, wire it in at the one boundary package that imports both).
package whisper

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/trace"
)

// Options configures a Runtime. Functional-options, mirroring the teacher's
// internal/interp/options.go constructor shape.
type Options struct {
	slabWords              uint64
	standardMaxObjectWords uint64
	sink                   trace.Sink
}

// Option mutates an Options value during create_runtime.
type Option func(*Options)

// WithSlabWords overrides the heap's standard slab size, in words.
func WithSlabWords(words uint64) Option {
	return func(o *Options) { o.slabWords = words }
}

// WithStandardMaxObjectWords overrides the size, in words, above which an
// allocation is routed to a dedicated singleton slab.
func WithStandardMaxObjectWords(words uint64) Option {
	return func(o *Options) { o.standardMaxObjectWords = words }
}

// WithTraceSink installs a trace.Sink that receives a Step event before every
// trampoline iteration and a GC event after every completed collection
// cycle, on every thread this Runtime registers. The default is trace.Noop.
func WithTraceSink(sink trace.Sink) Option {
	return func(o *Options) { o.sink = sink }
}

func defaultOptions() Options {
	return Options{sink: trace.Noop}
}

// Runtime is the top-level handle an embedder holds (spec.md §6:
// create_runtime() → Runtime). It owns the configuration every thread
// registered against it shares; it does not itself own a heap — each
// ThreadContext gets its own, per spec.md §5's "slab free-lists and
// generation lists are thread-local" and §9's string-interning-table note
// that per-thread state (including the heap) must not be shared across
// threads.
type Runtime struct {
	opts Options
}

// CreateRuntime implements spec.md §6's create_runtime().
func CreateRuntime(options ...Option) *Runtime {
	opts := defaultOptions()
	for _, o := range options {
		o(&opts)
	}
	return &Runtime{opts: opts}
}

func (rt *Runtime) heapOptions() []heap.Option {
	hopts := []heap.Option{
		heap.WithOnCollect(func(kind string, before, after uint64) {
			rt.opts.sink.GC(kind, before, after)
		}),
	}
	if rt.opts.slabWords != 0 {
		hopts = append(hopts, heap.WithSlabWords(rt.opts.slabWords))
	}
	if rt.opts.standardMaxObjectWords != 0 {
		hopts = append(hopts, heap.WithStandardMaxObjectWords(rt.opts.standardMaxObjectWords))
	}
	return hopts
}
