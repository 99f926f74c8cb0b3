package syntax

import "github.com/whisper-lang/whisper/internal/values"

// Builder constructs a PackedSyntaxTree bottom-up: callers emit each
// subtree's children first, then the node referring to them, so every
// child reference is recorded as a backward word-distance with no
// placeholder/backpatch step required (see the encoding note on
// PackedSyntaxTree). Builder is the single writer paired with pst.go's
// single reader; internal/frontend is its only client.
type Builder struct {
	data       []uint32
	constants  []values.ValBox
	stringPool map[string]uint32
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{stringPool: make(map[string]uint32)}
}

// Build finalizes the accumulated words and constants into a tree.
func (b *Builder) Build() *PackedSyntaxTree {
	return &PackedSyntaxTree{Data: b.data, Constants: b.constants}
}

func (b *Builder) pos() int { return len(b.data) }

func (b *Builder) emit(word uint32) { b.data = append(b.data, word) }

// dist computes the backward distance from the node currently being
// finished (whose header will land at b.pos()) back to an already-emitted
// child start offset.
func (b *Builder) dist(childStart int) uint32 {
	return uint32(b.pos() - childStart)
}

// StringConstant interns s (so that repeated identifiers/literals share one
// constants-array slot) and returns its index.
func (b *Builder) StringConstant(s string) uint32 {
	if idx, ok := b.stringPool[s]; ok {
		return idx
	}
	var box values.ValBox
	if v, ok := values.NewStr8(s); ok {
		box = v
	} else if v, ok := values.NewStr16(s); ok {
		box = v
	} else {
		// Longer identifiers/literals would need a heap-allocated String
		// (spec.md §3); Whisper's grammar never produces one (handler
		// names and identifiers are short), so this path is unreached by
		// internal/frontend but fails loudly rather than truncating.
		panic("syntax: constant string too long for an inline ValBox: " + s)
	}
	idx := uint32(len(b.constants))
	b.constants = append(b.constants, box)
	b.stringPool[s] = idx
	return idx
}

// IntConstant interns n as an Int32 constant and returns its index.
func (b *Builder) IntConstant(n int32) uint32 {
	idx := uint32(len(b.constants))
	b.constants = append(b.constants, values.NewInt32(n))
	return idx
}

// EmitName appends a NameExpr node and returns its start offset.
func (b *Builder) EmitName(name string) int {
	idx := b.StringConstant(name)
	start := b.pos()
	b.emit(packWord(NodeNameExpr, idx))
	return start
}

// EmitInteger appends an Integer literal node and returns its start offset.
func (b *Builder) EmitInteger(n int32) int {
	idx := b.IntConstant(n)
	start := b.pos()
	b.emit(packWord(NodeIntegerExpr, idx))
	return start
}

// EmitUnary appends a unary-shaped node (ExprStmt/ParenExpr/Pos/Neg) whose
// single child starts at childStart.
func (b *Builder) EmitUnary(kind NodeType, childStart int) int {
	d := b.dist(childStart)
	start := b.pos()
	b.emit(packWord(kind, 0))
	b.emit(d)
	return start
}

// EmitEmptyStmt appends a childless EmptyStmt node.
func (b *Builder) EmitEmptyStmt() int {
	start := b.pos()
	b.emit(packWord(NodeEmptyStmt, 0))
	return start
}

// EmitReturn appends a ReturnStmt node. Pass exprStart < 0 for a bare
// `return` with no expression.
func (b *Builder) EmitReturn(exprStart int) int {
	hasExpr := uint32(0)
	var d uint32
	if exprStart >= 0 {
		hasExpr = 1
		d = b.dist(exprStart)
	}
	start := b.pos()
	b.emit(packWord(NodeReturnStmt, hasExpr))
	b.emit(d)
	return start
}

// EmitBinary appends a binary arithmetic node.
func (b *Builder) EmitBinary(kind NodeType, leftStart, rightStart int) int {
	dl := b.dist(leftStart)
	dr := b.dist(rightStart)
	start := b.pos()
	b.emit(packWord(kind, 0))
	b.emit(dl)
	b.emit(dr)
	return start
}

// EmitBlock appends a File/Block node over the already-emitted statement
// start offsets.
func (b *Builder) EmitBlock(kind NodeType, stmtStarts []int) int {
	dists := make([]uint32, len(stmtStarts))
	for i, s := range stmtStarts {
		dists[i] = b.dist(s)
	}
	start := b.pos()
	b.emit(packWord(kind, 0))
	b.emit(uint32(len(stmtStarts)))
	for _, d := range dists {
		b.emit(d)
	}
	return start
}

// EmitIf appends an IfStmt node. Pass elseStart < 0 when there is no else
// branch.
func (b *Builder) EmitIf(condStart, thenStart, elseStart int) int {
	dc := b.dist(condStart)
	dt := b.dist(thenStart)
	hasElse := uint32(0)
	var de uint32
	if elseStart >= 0 {
		hasElse = 1
		de = b.dist(elseStart)
	}
	start := b.pos()
	b.emit(packWord(NodeIfStmt, hasElse))
	b.emit(dc)
	b.emit(dt)
	b.emit(de)
	return start
}

// EmitLoop appends a LoopStmt node.
func (b *Builder) EmitLoop(condStart, bodyStart int) int {
	dc := b.dist(condStart)
	db := b.dist(bodyStart)
	start := b.pos()
	b.emit(packWord(NodeLoopStmt, 0))
	b.emit(dc)
	b.emit(db)
	return start
}

// Binding is one var/const declarator: Name plus an optional InitStart
// (< 0 when the binding has no initializer).
type Binding struct {
	Name      string
	InitStart int
}

// EmitVarOrConst appends a VarStmt or ConstStmt node.
func (b *Builder) EmitVarOrConst(kind NodeType, bindings []Binding) int {
	type resolved struct {
		nameIdx uint32
		dist    uint32
	}
	rs := make([]resolved, len(bindings))
	for i, bd := range bindings {
		var d uint32
		if bd.InitStart >= 0 {
			d = b.dist(bd.InitStart)
		}
		rs[i] = resolved{nameIdx: b.StringConstant(bd.Name), dist: d}
	}
	start := b.pos()
	b.emit(packWord(kind, 0))
	b.emit(uint32(len(bindings)))
	for _, r := range rs {
		b.emit(r.nameIdx)
		b.emit(r.dist)
	}
	return start
}

// EmitDef appends a DefStmt node.
func (b *Builder) EmitDef(name string, params []string, bodyStart int) int {
	nameIdx := b.StringConstant(name)
	paramIdx := make([]uint32, len(params))
	for i, p := range params {
		paramIdx[i] = b.StringConstant(p)
	}
	d := b.dist(bodyStart)
	start := b.pos()
	b.emit(packWord(NodeDefStmt, 0))
	b.emit(nameIdx)
	b.emit(uint32(len(params)))
	for _, idx := range paramIdx {
		b.emit(idx)
	}
	b.emit(d)
	return start
}

// EmitArrow appends an ArrowExpr (lambda) node.
func (b *Builder) EmitArrow(params []string, bodyStart int) int {
	paramIdx := make([]uint32, len(params))
	for i, p := range params {
		paramIdx[i] = b.StringConstant(p)
	}
	d := b.dist(bodyStart)
	start := b.pos()
	b.emit(packWord(NodeArrowExpr, 0))
	b.emit(uint32(len(params)))
	for _, idx := range paramIdx {
		b.emit(idx)
	}
	b.emit(d)
	return start
}

// EmitCall appends a CallExpr node.
func (b *Builder) EmitCall(calleeStart int, argStarts []int) int {
	dc := b.dist(calleeStart)
	da := make([]uint32, len(argStarts))
	for i, s := range argStarts {
		da[i] = b.dist(s)
	}
	start := b.pos()
	b.emit(packWord(NodeCallExpr, 0))
	b.emit(uint32(len(argStarts)))
	b.emit(dc)
	for _, d := range da {
		b.emit(d)
	}
	return start
}

// EmitDot appends a DotExpr node.
func (b *Builder) EmitDot(targetStart int, member string) int {
	memberIdx := b.StringConstant(member)
	dt := b.dist(targetStart)
	start := b.pos()
	b.emit(packWord(NodeDotExpr, 0))
	b.emit(memberIdx)
	b.emit(dt)
	return start
}
