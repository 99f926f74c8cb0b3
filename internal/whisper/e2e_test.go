package whisper

import (
	"testing"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/values"
	"github.com/whisper-lang/whisper/internal/wherr"
)

func run(t *testing.T, source string) frame.EvalResult {
	t.Helper()
	rt := CreateRuntime()
	tc := RegisterThread(rt)
	global := MakeGlobalScope(tc)
	result, err := InterpretSourceFile(tc, source, global)
	if err != nil {
		t.Fatalf("InterpretSourceFile(%q): unexpected parse error: %v", source, err)
	}
	return result
}

// E1: var x = 3; x -> Value(Int32(3)).
func TestE1VarBinding(t *testing.T) {
	result := run(t, "var x = 3; x")
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.NewInt32(3)) {
		t.Fatalf("got %+v, want Value(Int32(3))", result)
	}
}

// E2: def f(x) { return x + 1 } f(41) -> Value(Int32(42)).
func TestE2DefAndReturn(t *testing.T) {
	result := run(t, "def f(x) { return x + 1 } f(41)")
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.NewInt32(42)) {
		t.Fatalf("got %+v, want Value(Int32(42))", result)
	}
}

// E3: return 7 at top level (no enclosing @retcont) -> Exc("return used in
// non-returnable context.").
func TestE3ReturnAtTopLevel(t *testing.T) {
	result := run(t, "return 7")
	if result.Kind != frame.EvalExc || result.ExcMessage != wherr.ExcReturnUnreachable {
		t.Fatalf("got %+v, want Exc(%q)", result, wherr.ExcReturnUnreachable)
	}
}

// E4: y with y unbound -> Exc("Name not found", "y").
func TestE4UnboundName(t *testing.T) {
	result := run(t, "y")
	if result.Kind != frame.EvalExc || result.ExcMessage != wherr.ExcNameNotFound {
		t.Fatalf("got %+v, want Exc(%q)", result, wherr.ExcNameNotFound)
	}
	if len(result.ExcArgs) != 1 || !result.ExcArgs[0].IsString() {
		t.Fatalf("got ExcArgs %+v, want a single string argument \"y\"", result.ExcArgs)
	}
}

// E5: (1 + 2) * 10 with default arithmetic handlers -> Value(Int32(30)).
func TestE5Arithmetic(t *testing.T) {
	result := run(t, "(1 + 2) * 10")
	if result.Kind != frame.EvalValue || !result.Value.Equal(values.NewInt32(30)) {
		t.Fatalf("got %+v, want Value(Int32(30))", result)
	}
}

// E6: var a = nonexistent() with nonexistent bound to Undefined (but not
// callable) -> Exc("Callee expression is not callable", Undefined); the
// VarSyntaxFrame does not define a. See DESIGN.md Open Question resolution
// #5 for why nonexistent must be pre-bound rather than left unbound: an
// unbound callee raises ExcNameNotFound before CallExprSyntaxFrame ever
// checks callability, the same as a bare unbound name would (E4).
func TestE6CalleeNotCallable(t *testing.T) {
	result := run(t, "var nonexistent; var a = nonexistent();")
	if result.Kind != frame.EvalExc || result.ExcMessage != wherr.ExcNotCallable {
		t.Fatalf("got %+v, want Exc(%q)", result, wherr.ExcNotCallable)
	}
	if len(result.ExcArgs) != 1 || !result.ExcArgs[0].IsUndefined() {
		t.Fatalf("got ExcArgs %+v, want a single Undefined argument", result.ExcArgs)
	}
}
