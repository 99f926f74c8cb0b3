package syntax

import (
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/values"
)

// PackedSyntaxTree is the compact, read-only AST representation spec.md §3
// names: a serialized word array plus the constants (string and numeric
// literals) it indexes into.
//
// Encoding note: every subtree is emitted to Data before the node that
// refers to it (a direct consequence of bottom-up recursive-descent
// construction — see Builder in builder.go, driven by
// internal/frontend/parser.go), so every child reference
// is a *backward* word distance from the referring node's own offset,
// rather than the forward/placeholder scheme a top-down emitter would need.
// This is an implementation freedom within spec.md §4.3's "sized block"
// description, not a deviation from its reading contract: each NodeType's
// typed cursor still exposes children, counts, and constant IDs in O(1),
// and the zero distance is reserved as the "absent" sentinel for optional
// children (spec.md §4.5.6 ReturnStmt with no expression, §4.5.4-style
// empty else branch, VarSyntaxFrame's missing initializer).
type PackedSyntaxTree struct {
	Data      []uint32
	Constants []values.ValBox
}

// Constant resolves a constants-array index. It does not check the
// constant's kind; the typed accessors below (Name, IntegerLiteral, ...)
// do, at the point of use, through ValBox accessors that panic on a kind
// mismatch (spec.md §4.3).
func (t *PackedSyntaxTree) Constant(idx uint32) values.ValBox {
	return t.Constants[idx]
}

func (t *PackedSyntaxTree) stringConstant(idx uint32) string {
	box := t.Constant(idx)
	if box.IsStr8() {
		return box.AsStr8()
	}
	return box.AsStr16()
}

// SyntaxNodeRef is a (pst, offset) pair (spec.md §3). Frames in
// internal/frame are plain Go structs and keep SyntaxNodeRef fields
// directly across Steps; NewSyntaxNode below builds the heap-allocated
// form, which no frame uses.
type SyntaxNodeRef struct {
	PST    *PackedSyntaxTree
	Offset int
}

func (r SyntaxNodeRef) word(i int) uint32 { return r.PST.Data[r.Offset+i] }

// Type returns the node's NodeType tag.
func (r SyntaxNodeRef) Type() NodeType { return NodeType(r.word(0) & 0xFFF) }

// Extra returns the node-specific payload packed into the high bits of the
// header word (spec.md §3: "a node-specific `extra` field").
func (r SyntaxNodeRef) Extra() uint32 { return r.word(0) >> nodeTypeBits }

// IsZero reports whether r addresses no node — the sentinel used for
// optional children (a missing ReturnStmt expression, IfStmt else branch,
// or var/const initializer).
func (r SyntaxNodeRef) IsZero() bool { return r.PST == nil }

// back resolves a stored backward distance into the child it refers to, or
// the zero SyntaxNodeRef when the distance is the "absent" sentinel (0).
func (r SyntaxNodeRef) back(distance uint32) SyntaxNodeRef {
	if distance == 0 {
		return SyntaxNodeRef{}
	}
	return SyntaxNodeRef{PST: r.PST, Offset: r.Offset - int(distance)}
}

// --- File / Block: [header][count][dist_0]...[dist_count-1] --------------

// NumStatements returns the number of statements in a File/Block node.
func (r SyntaxNodeRef) NumStatements() int { return int(r.word(1)) }

// Statement returns the i-th statement of a File/Block node.
func (r SyntaxNodeRef) Statement(i int) SyntaxNodeRef { return r.back(r.word(2 + i)) }

// --- ExprStmt / ParenExpr / PosExpr / NegExpr: [header][distInner] -------

// Inner returns the single child of a unary-shaped node.
func (r SyntaxNodeRef) Inner() SyntaxNodeRef { return r.back(r.word(1)) }

// --- ReturnStmt: [header(extra=hasExpr)][distExpr-or-0] ------------------

// HasExpr reports whether Extra() signals a present expression.
func (r SyntaxNodeRef) HasExpr() bool { return r.Extra() != 0 }

// Expr returns the (present) return expression.
func (r SyntaxNodeRef) Expr() SyntaxNodeRef { return r.back(r.word(1)) }

// --- binary arithmetic (Add/Sub/Mul/Div): [header][distLeft][distRight] --

// Left returns a binary expression's left operand.
func (r SyntaxNodeRef) Left() SyntaxNodeRef { return r.back(r.word(1)) }

// Right returns a binary expression's right operand.
func (r SyntaxNodeRef) Right() SyntaxNodeRef { return r.back(r.word(2)) }

// --- NameExpr / Integer literal: [header(extra=constIdx)] ----------------

// Name resolves a NameExpr node's identifier constant.
func (r SyntaxNodeRef) Name() string { return r.PST.stringConstant(r.Extra()) }

// IntegerLiteral resolves an Integer node's constant.
func (r SyntaxNodeRef) IntegerLiteral() int32 {
	return r.PST.Constant(r.Extra()).AsInt32()
}

// --- IfStmt: [header(extra=hasElse)][distCond][distThen][distElse-or-0] --

// Condition returns an IfStmt's test expression.
func (r SyntaxNodeRef) Condition() SyntaxNodeRef { return r.back(r.word(1)) }

// Then returns an IfStmt's then-branch.
func (r SyntaxNodeRef) Then() SyntaxNodeRef { return r.back(r.word(2)) }

// HasElse reports whether an IfStmt carries an else branch.
func (r SyntaxNodeRef) HasElse() bool { return r.Extra() != 0 }

// Else returns an IfStmt's else-branch; only valid when HasElse().
func (r SyntaxNodeRef) Else() SyntaxNodeRef { return r.back(r.word(3)) }

// --- LoopStmt: [header][distCond][distBody] (while-shaped; see DESIGN.md) -

// LoopCondition returns a LoopStmt's condition.
func (r SyntaxNodeRef) LoopCondition() SyntaxNodeRef { return r.back(r.word(1)) }

// LoopBody returns a LoopStmt's body.
func (r SyntaxNodeRef) LoopBody() SyntaxNodeRef { return r.back(r.word(2)) }

// --- VarStmt / ConstStmt: [header][count][(nameIdx,distInit-or-0) x count]

// BindingCount returns the number of var/const bindings.
func (r SyntaxNodeRef) BindingCount() int { return int(r.word(1)) }

// BindingName resolves the i-th binding's identifier.
func (r SyntaxNodeRef) BindingName(i int) string {
	return r.PST.stringConstant(r.word(2 + i*2))
}

// BindingHasInit reports whether the i-th binding carries an initializer.
func (r SyntaxNodeRef) BindingHasInit(i int) bool { return r.word(2+i*2+1) != 0 }

// BindingInit returns the i-th binding's initializer expression; only valid
// when BindingHasInit(i).
func (r SyntaxNodeRef) BindingInit(i int) SyntaxNodeRef { return r.back(r.word(2 + i*2 + 1)) }

// --- DefStmt: [header][nameIdx][paramCount][paramIdx x n][distBody] -------

// DefName resolves the function's identifier.
func (r SyntaxNodeRef) DefName() string { return r.PST.stringConstant(r.word(1)) }

// DefParamCount returns the number of declared parameters.
func (r SyntaxNodeRef) DefParamCount() int { return int(r.word(2)) }

// DefParamName resolves the i-th parameter's identifier.
func (r SyntaxNodeRef) DefParamName(i int) string { return r.PST.stringConstant(r.word(3 + i)) }

// DefBody returns the function body (a Block node).
func (r SyntaxNodeRef) DefBody() SyntaxNodeRef { return r.back(r.word(3 + r.DefParamCount())) }

// --- ArrowExpr (lambda): [header][paramCount][paramIdx x n][distBody] -----

// ArrowParamCount returns the number of declared lambda parameters.
func (r SyntaxNodeRef) ArrowParamCount() int { return int(r.word(1)) }

// ArrowParamName resolves the i-th lambda parameter's identifier.
func (r SyntaxNodeRef) ArrowParamName(i int) string { return r.PST.stringConstant(r.word(2 + i)) }

// ArrowBody returns the lambda's body expression.
func (r SyntaxNodeRef) ArrowBody() SyntaxNodeRef { return r.back(r.word(2 + r.ArrowParamCount())) }

// --- CallExpr: [header][argCount][distCallee][distArg x argCount] --------

// Callee returns a CallExpr's callee subtree.
func (r SyntaxNodeRef) Callee() SyntaxNodeRef { return r.back(r.word(2)) }

// NumArgs returns a CallExpr's argument count.
func (r SyntaxNodeRef) NumArgs() int { return int(r.word(1)) }

// Arg returns the i-th argument subtree.
func (r SyntaxNodeRef) Arg(i int) SyntaxNodeRef { return r.back(r.word(3 + i)) }

// --- DotExpr: [header][memberIdx][distTarget] -----------------------------

// Target returns a DotExpr's target subexpression.
func (r SyntaxNodeRef) Target() SyntaxNodeRef { return r.back(r.word(2)) }

// MemberName resolves a DotExpr's member identifier constant.
func (r SyntaxNodeRef) MemberName() string { return r.PST.stringConstant(r.word(1)) }

// --- SyntaxNode: the heap-escaping sibling of SyntaxNodeRef --------------

// SyntaxNode is the heap-allocated form of a SyntaxNodeRef (spec.md §3),
// for storing a syntax reference inside a heap object.
// The PST it points into is immutable, externally-owned data (not itself
// GC-managed), so Scan has nothing to trace: SyntaxNode is a leaf format.
type SyntaxNode struct {
	header heap.Header
	PST    *PackedSyntaxTree
	Offset int
}

func (s *SyntaxNode) Header() *heap.Header         { return &s.header }
func (s *SyntaxNode) Scan(visit func(*heap.Handle)) {}
func (s *SyntaxNode) IsLeaf() bool                  { return true }

// Ref recovers the stack-only cursor form.
func (s *SyntaxNode) Ref() SyntaxNodeRef { return SyntaxNodeRef{PST: s.PST, Offset: s.Offset} }

// NewSyntaxNode allocates a heap SyntaxNode wrapping ref and returns its
// handle.
func NewSyntaxNode(h *heap.Heap, ref SyntaxNodeRef) heap.Handle {
	node := &SyntaxNode{header: heap.Header{Format: heap.FormatSyntaxNode}, PST: ref.PST, Offset: ref.Offset}
	return h.Allocate(node, 1, true)
}
