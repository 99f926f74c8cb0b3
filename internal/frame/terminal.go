package frame

// TerminalFrame is the sentinel root every frame spine terminates at
// (spec.md §4.5.1). Its parent is always nil.
type TerminalFrame struct {
	frameBase
	result EvalResult
	done   bool
}

// NewTerminalFrame returns a fresh, unresolved TerminalFrame.
func NewTerminalFrame() *TerminalFrame { return &TerminalFrame{} }

// Result returns the absorbed outcome; only meaningful once Done().
func (t *TerminalFrame) Result() EvalResult { return t.result }

// Done reports whether this TerminalFrame has absorbed a result.
func (t *TerminalFrame) Done() bool { return t.done }

// Step is a protocol violation: Run never steps a terminal frame directly,
// it checks Done() first (spec.md §4.5.1: "Step is a protocol violation").
func (t *TerminalFrame) Step(cx *Context) StepResult {
	panic("frame: Step called on a TerminalFrame")
}

// Resolve stores the incoming result and marks the frame done; the
// trampoline's next Run iteration observes this and stops (spec.md §4.5.1).
func (t *TerminalFrame) Resolve(cx *Context, result EvalResult) StepResult {
	t.result = result
	t.done = true
	return StepResult{Next: t}
}
