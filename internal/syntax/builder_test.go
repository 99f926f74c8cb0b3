package syntax

import "testing"

// TestAddMulRoundTrip builds (1 + 2) * 10 — scenario E5 — and checks the
// reader recovers the same shape the builder emitted.
func TestAddMulRoundTrip(t *testing.T) {
	b := NewBuilder()
	one := b.EmitInteger(1)
	two := b.EmitInteger(2)
	add := b.EmitBinary(NodeAddExpr, one, two)
	paren := b.EmitUnary(NodeParenExpr, add)
	ten := b.EmitInteger(10)
	mul := b.EmitBinary(NodeMulExpr, paren, ten)
	tree := b.Build()

	root := SyntaxNodeRef{PST: tree, Offset: mul}
	if root.Type() != NodeMulExpr {
		t.Fatalf("expected MulExpr root, got %v", root.Type())
	}
	left := root.Left()
	if left.Type() != NodeParenExpr {
		t.Fatalf("expected ParenExpr left child, got %v", left.Type())
	}
	inner := left.Inner()
	if inner.Type() != NodeAddExpr {
		t.Fatalf("expected AddExpr inside parens, got %v", inner.Type())
	}
	if got := inner.Left().IntegerLiteral(); got != 1 {
		t.Errorf("expected left literal 1, got %d", got)
	}
	if got := inner.Right().IntegerLiteral(); got != 2 {
		t.Errorf("expected right literal 2, got %d", got)
	}
	right := root.Right()
	if got := right.IntegerLiteral(); got != 10 {
		t.Errorf("expected right literal 10, got %d", got)
	}
}

// TestVarStmtOptionalInitializer exercises both a bound and an unbound
// var declarator in one statement.
func TestVarStmtOptionalInitializer(t *testing.T) {
	b := NewBuilder()
	three := b.EmitInteger(3)
	varStmt := b.EmitVarOrConst(NodeVarStmt, []Binding{
		{Name: "x", InitStart: three},
		{Name: "y", InitStart: -1},
	})
	tree := b.Build()

	root := SyntaxNodeRef{PST: tree, Offset: varStmt}
	if root.BindingCount() != 2 {
		t.Fatalf("expected 2 bindings, got %d", root.BindingCount())
	}
	if name := root.BindingName(0); name != "x" {
		t.Errorf("expected binding 0 named x, got %q", name)
	}
	if !root.BindingHasInit(0) {
		t.Error("expected binding 0 to have an initializer")
	}
	if got := root.BindingInit(0).IntegerLiteral(); got != 3 {
		t.Errorf("expected initializer value 3, got %d", got)
	}
	if root.BindingHasInit(1) {
		t.Error("expected binding 1 (y) to have no initializer")
	}
}

// TestIfStmtWithoutElse exercises the absent-else sentinel.
func TestIfStmtWithoutElse(t *testing.T) {
	b := NewBuilder()
	cond := b.EmitName("flag")
	then := b.EmitEmptyStmt()
	ifStmt := b.EmitIf(cond, then, -1)
	tree := b.Build()

	root := SyntaxNodeRef{PST: tree, Offset: ifStmt}
	if root.HasElse() {
		t.Fatal("expected no else branch")
	}
	if root.Condition().Name() != "flag" {
		t.Errorf("expected condition name 'flag', got %q", root.Condition().Name())
	}
}

// TestCallExprArgs exercises a single-argument call.
func TestCallExprArgs(t *testing.T) {
	b := NewBuilder()
	callee := b.EmitName("f")
	a1 := b.EmitInteger(41)
	call := b.EmitCall(callee, []int{a1})
	tree := b.Build()

	root := SyntaxNodeRef{PST: tree, Offset: call}
	if root.NumArgs() != 1 {
		t.Fatalf("expected 1 arg, got %d", root.NumArgs())
	}
	if root.Callee().Name() != "f" {
		t.Errorf("expected callee name 'f', got %q", root.Callee().Name())
	}
	if got := root.Arg(0).IntegerLiteral(); got != 41 {
		t.Errorf("expected arg0 41, got %d", got)
	}
}
