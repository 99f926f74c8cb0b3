package whisper

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
)

// TestMain lets go-snaps prune snapshots that no longer correspond to a
// running test, the same wiring the teacher's fixture_test.go relies on
// implicitly via go-snaps' package-level cleanup hook.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

// programs covers the slice of the grammar the frontend currently accepts:
// integer arithmetic, var/const bindings, def/arrow functions and calls,
// and nested scoping — enough to snapshot a range of whole-program outputs
// without hand-asserting each one the way e2e_test.go does for E1-E6.
var programs = []struct {
	name   string
	source string
}{
	{"bare_arithmetic", "2 * 3 + 4 * 5"},
	{"negative_and_paren", "-(3 + 4) * 2"},
	{"var_chain", "var a = 1, b = 2, c = a + b; c * c"},
	{"def_call", "def square(n) { return n * n } square(9)"},
	{"def_wrong_arity", "def one(x) { return x } one(1, 2)"},
	{"arrow_value", "(n) => n + 1"},
	{"nested_def_closure", "def make() { var captured = 41; def inc() { return captured + 1 } return inc } make()"},
	{"const_basic", "const pi = 3; pi * pi"},
	{"unbound_name", "undefinedThing"},
	{"var_without_init", "var x; x"},
}

func TestProgramSnapshots(t *testing.T) {
	for _, p := range programs {
		t.Run(p.name, func(t *testing.T) {
			rt := CreateRuntime()
			tc := RegisterThread(rt)
			global := MakeGlobalScope(tc)
			result, err := InterpretSourceFile(tc, p.source, global)
			if err != nil {
				t.Fatalf("InterpretSourceFile(%q): unexpected parse error: %v", p.source, err)
			}
			snaps.MatchSnapshot(t, fmt.Sprintf("%s: %s", p.name, p.source), FormatResult(tc.Heap, result))
		})
	}
}
