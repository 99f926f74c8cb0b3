package frontend

import (
	"testing"

	"github.com/whisper-lang/whisper/internal/syntax"
)

func parseSource(t *testing.T, src string) (*syntax.PackedSyntaxTree, syntax.SyntaxNodeRef) {
	t.Helper()
	b := syntax.NewBuilder()
	p := NewParser(New(src), b)
	root := p.ParseFile()
	if errs := p.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	tree := b.Build()
	return tree, syntax.SyntaxNodeRef{PST: tree, Offset: root}
}

func TestParseVarAndExprStmt(t *testing.T) {
	_, file := parseSource(t, "var x = 1 + 2\nx\n")
	if file.Type() != syntax.NodeBlock {
		t.Fatalf("expected Block root, got %v", file.Type())
	}
	if file.NumStatements() != 2 {
		t.Fatalf("expected 2 statements, got %d", file.NumStatements())
	}
	varStmt := file.Statement(0)
	if varStmt.Type() != syntax.NodeVarStmt {
		t.Fatalf("expected VarStmt, got %v", varStmt.Type())
	}
	if varStmt.BindingName(0) != "x" {
		t.Errorf("expected binding name x, got %q", varStmt.BindingName(0))
	}
	exprStmt := file.Statement(1)
	if exprStmt.Type() != syntax.NodeExprStmt {
		t.Fatalf("expected ExprStmt, got %v", exprStmt.Type())
	}
	if exprStmt.Inner().Name() != "x" {
		t.Errorf("expected expr stmt over name x, got %q", exprStmt.Inner().Name())
	}
}

func TestParseDefWithReturn(t *testing.T) {
	_, file := parseSource(t, "def add(a, b) {\n  return a + b\n}\n")
	def := file.Statement(0)
	if def.Type() != syntax.NodeDefStmt {
		t.Fatalf("expected DefStmt, got %v", def.Type())
	}
	if def.DefName() != "add" {
		t.Errorf("expected def name 'add', got %q", def.DefName())
	}
	if def.DefParamCount() != 2 || def.DefParamName(0) != "a" || def.DefParamName(1) != "b" {
		t.Fatalf("unexpected params: count=%d", def.DefParamCount())
	}
	body := def.DefBody()
	if body.Type() != syntax.NodeBlock {
		t.Fatalf("expected Block body, got %v", body.Type())
	}
	ret := body.Statement(0)
	if ret.Type() != syntax.NodeReturnStmt || !ret.HasExpr() {
		t.Fatalf("expected a ReturnStmt with an expression")
	}
	if ret.Expr().Type() != syntax.NodeAddExpr {
		t.Fatalf("expected the return expression to be an AddExpr, got %v", ret.Expr().Type())
	}
}

func TestParseIfElseAndWhile(t *testing.T) {
	_, file := parseSource(t, "if x {\n  return 1\n} else {\n  return 2\n}\nwhile x {\n  x\n}\n")
	ifStmt := file.Statement(0)
	if ifStmt.Type() != syntax.NodeIfStmt || !ifStmt.HasElse() {
		t.Fatalf("expected an IfStmt with an else branch")
	}
	loop := file.Statement(1)
	if loop.Type() != syntax.NodeLoopStmt {
		t.Fatalf("expected a LoopStmt, got %v", loop.Type())
	}
}

func TestParseCallDotAndArrow(t *testing.T) {
	_, file := parseSource(t, "obj.method(1, 2)\n(n) => n * n\n")
	exprStmt := file.Statement(0)
	call := exprStmt.Inner()
	if call.Type() != syntax.NodeCallExpr {
		t.Fatalf("expected CallExpr, got %v", call.Type())
	}
	if call.NumArgs() != 2 {
		t.Fatalf("expected 2 args, got %d", call.NumArgs())
	}
	dot := call.Callee()
	if dot.Type() != syntax.NodeDotExpr || dot.MemberName() != "method" {
		t.Fatalf("expected a DotExpr callee named 'method', got %v/%q", dot.Type(), dot.MemberName())
	}

	arrowStmt := file.Statement(1)
	arrow := arrowStmt.Inner()
	if arrow.Type() != syntax.NodeArrowExpr {
		t.Fatalf("expected ArrowExpr, got %v", arrow.Type())
	}
	if arrow.ArrowParamCount() != 1 || arrow.ArrowParamName(0) != "n" {
		t.Fatalf("unexpected arrow params")
	}
	if arrow.ArrowBody().Type() != syntax.NodeMulExpr {
		t.Fatalf("expected arrow body to be a MulExpr, got %v", arrow.ArrowBody().Type())
	}
}

func TestPrecedenceMulBindsTighterThanAdd(t *testing.T) {
	_, file := parseSource(t, "1 + 2 * 3\n")
	add := file.Statement(0).Inner()
	if add.Type() != syntax.NodeAddExpr {
		t.Fatalf("expected top-level AddExpr, got %v", add.Type())
	}
	if add.Right().Type() != syntax.NodeMulExpr {
		t.Fatalf("expected right operand to be a MulExpr, got %v", add.Right().Type())
	}
}
