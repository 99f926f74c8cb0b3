package trace

import "testing"

func TestNoopDoesNothing(t *testing.T) {
	// Every method must be callable without a nil check and without
	// observable effect — this is the zero-overhead default every
	// frame.Context falls back to when no --trace flag is set.
	var sink Sink = Noop
	sink.Step("some frame")
	sink.GC("minor", 10, 4)
}

func TestPtermSinkImplementsSink(t *testing.T) {
	var _ Sink = NewPtermSink()
}

func TestPtermSinkStepAndGCDoNotPanic(t *testing.T) {
	s := NewPtermSink()
	s.Step(42)
	s.GC("major", 100, 37)
}
