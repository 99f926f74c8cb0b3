package whisper

import (
	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/frontend"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/scope"
	"github.com/whisper-lang/whisper/internal/syntax"
)

// ParseError reports a lex or parse failure encountered before the core ever
// sees a syntax tree (spec.md §7: "the core never observes partial trees").
type ParseError struct {
	Lex   []*frontend.LexError
	Parse []*frontend.ParseError
}

func (e *ParseError) Error() string {
	switch {
	case len(e.Lex) > 0:
		return e.Lex[0].Error()
	case len(e.Parse) > 0:
		return e.Parse[0].Error()
	default:
		return "parse error"
	}
}

func (tc *ThreadContext) context() *frame.Context {
	return &frame.Context{
		Heap: tc.Heap,
		OnStep: func(top frame.Frame) {
			tc.rt.opts.sink.Step(top)
		},
	}
}

// buildTree runs the lexer and parser collaborator over source, implementing
// spec.md §6's build_packed_syntax_tree(source_bytes) → (data, constants)
// boundary: the core never observes a partial tree, so any lex/parse error
// short-circuits before a frame is ever constructed.
func buildTree(source string) (*syntax.PackedSyntaxTree, int, error) {
	l := frontend.New(source)
	b := syntax.NewBuilder()
	p := frontend.NewParser(l, b)
	root := p.ParseFile()
	if lexErrs := l.Errors(); len(lexErrs) > 0 {
		return nil, 0, &ParseError{Lex: lexErrs}
	}
	if parseErrs := p.Errors(); len(parseErrs) > 0 {
		return nil, 0, &ParseError{Parse: parseErrs}
	}
	return b.Build(), root, nil
}

// InterpretSourceFile implements spec.md §6's interpret_source_file(tc, file,
// scope) → EvalResult: parses file's contents, constructs an EntryFrame over
// the whole program on a fresh ModuleScope delegating to scope, and drives
// the trampoline to completion.
func InterpretSourceFile(tc *ThreadContext, source string, globalScope heap.Handle) (frame.EvalResult, error) {
	tree, root, err := buildTree(source)
	if err != nil {
		return frame.EvalResult{}, err
	}

	// globalScope isn't rooted anywhere else at this point (the caller
	// holds only a plain heap.Handle value); NewModuleScope's own
	// allocation can trigger a collection before the new ModuleScope's
	// delegate list gives it a traced edge to globalScope.
	globalRoot := tc.Heap.Root(globalScope)
	defer globalRoot.Release()
	moduleScope := scope.NewModuleScope(tc.Heap, globalRoot.Get())

	node := syntax.SyntaxNodeRef{PST: tree, Offset: root}
	return tc.run(node, moduleScope), nil
}

// InterpretSyntax implements spec.md §6's interpret_syntax(tc, scope, pst,
// offset) → EvalResult: the sub-expression entry point a repl line or a
// single Expr evaluates through, reusing scope rather than minting a new
// ModuleScope every call.
func InterpretSyntax(tc *ThreadContext, sc heap.Handle, pst *syntax.PackedSyntaxTree, offset int) frame.EvalResult {
	node := syntax.SyntaxNodeRef{PST: pst, Offset: offset}
	return tc.run(node, sc)
}

// InterpretLine parses source and evaluates it directly against sc via
// InterpretSyntax, rather than wrapping it in a fresh ModuleScope the way
// InterpretSourceFile does — so a `var` a repl line introduces stays bound
// in sc for every line entered after it.
func InterpretLine(tc *ThreadContext, sc heap.Handle, source string) (frame.EvalResult, error) {
	tree, root, err := buildTree(source)
	if err != nil {
		return frame.EvalResult{}, err
	}
	return InterpretSyntax(tc, sc, tree, root), nil
}

func (tc *ThreadContext) run(node syntax.SyntaxNodeRef, sc heap.Handle) frame.EvalResult {
	term := frame.NewTerminalFrame()
	entry := frame.NewEntryFrame(term, node, sc)
	cx := tc.context()
	return frame.Run(cx, entry)
}
