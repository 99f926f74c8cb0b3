package frame

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/syntax"
	"github.com/whisper-lang/whisper/internal/values"
)

// FileSyntaxFrame iterates the statements of a File node (spec.md §4.5.4).
// A File's own result is always Undefined — only a Block's last statement
// result counts, per BlockSyntaxFrame below.
type FileSyntaxFrame struct {
	frameBase
	Node        syntax.SyntaxNodeRef
	Scope       heap.Handle
	StatementNo int
}

// NewFileSyntaxFrame constructs a File iteration frame starting at
// statement 0.
func NewFileSyntaxFrame(parent Frame, node syntax.SyntaxNodeRef, sc heap.Handle) *FileSyntaxFrame {
	return &FileSyntaxFrame{frameBase: frameBase{parent: parent}, Node: node, Scope: sc}
}

func (f *FileSyntaxFrame) Step(cx *Context) StepResult {
	if f.StatementNo == f.Node.NumStatements() {
		return resolveParent(cx, f.parent, ValueResult(values.Undefined()))
	}
	stmt := f.Node.Statement(f.StatementNo)
	return StepResult{Next: NewInvokeSyntaxNodeFrame(f, stmt, f.Scope)}
}

// ScanRoots reports Scope, the one heap edge this frame holds outside the
// parent chain.
func (f *FileSyntaxFrame) ScanRoots(visit func(*heap.Handle)) { visit(&f.Scope) }

func (f *FileSyntaxFrame) Resolve(cx *Context, result EvalResult) StepResult {
	if result.IsErrorOrExc() {
		return resolveParent(cx, f.parent, result)
	}
	next := &FileSyntaxFrame{frameBase: frameBase{parent: f.parent}, Node: f.Node, Scope: f.Scope, StatementNo: f.StatementNo + 1}
	return StepResult{Next: next}
}

// BlockSyntaxFrame has the same iteration shape as FileSyntaxFrame, except
// the last statement's result becomes the block's own result (spec.md
// §4.5.5).
type BlockSyntaxFrame struct {
	frameBase
	Node        syntax.SyntaxNodeRef
	Scope       heap.Handle
	StatementNo int
}

// NewBlockSyntaxFrame constructs a Block iteration frame starting at
// statement 0.
func NewBlockSyntaxFrame(parent Frame, node syntax.SyntaxNodeRef, sc heap.Handle) *BlockSyntaxFrame {
	return &BlockSyntaxFrame{frameBase: frameBase{parent: parent}, Node: node, Scope: sc}
}

func (f *BlockSyntaxFrame) Step(cx *Context) StepResult {
	if f.StatementNo == f.Node.NumStatements() {
		return resolveParent(cx, f.parent, ValueResult(values.Undefined()))
	}
	stmt := f.Node.Statement(f.StatementNo)
	return StepResult{Next: NewInvokeSyntaxNodeFrame(f, stmt, f.Scope)}
}

// ScanRoots reports Scope, the one heap edge this frame holds outside the
// parent chain.
func (f *BlockSyntaxFrame) ScanRoots(visit func(*heap.Handle)) { visit(&f.Scope) }

func (f *BlockSyntaxFrame) Resolve(cx *Context, result EvalResult) StepResult {
	if result.IsErrorOrExc() {
		return resolveParent(cx, f.parent, result)
	}
	if f.StatementNo+1 == f.Node.NumStatements() {
		return resolveParent(cx, f.parent, result)
	}
	next := &BlockSyntaxFrame{frameBase: frameBase{parent: f.parent}, Node: f.Node, Scope: f.Scope, StatementNo: f.StatementNo + 1}
	return StepResult{Next: next}
}
