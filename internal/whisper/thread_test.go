package whisper

import "testing"

func TestRegisterThreadIsIdempotentForSameRuntime(t *testing.T) {
	rt := CreateRuntime()
	a := RegisterThread(rt)
	b := RegisterThread(rt)

	if a != b {
		t.Fatalf("RegisterThread(rt) returned distinct ThreadContexts on the same goroutine: %p != %p", a, b)
	}
}

func TestRegisterThreadGivesEachRuntimeItsOwnContext(t *testing.T) {
	// Two distinct Runtimes registering from the same goroutine must not
	// collapse onto a shared ThreadContext/heap.
	rt1 := CreateRuntime()
	rt2 := CreateRuntime()

	tc1 := RegisterThread(rt1)
	tc2 := RegisterThread(rt2)

	if tc1 == tc2 {
		t.Fatalf("RegisterThread gave two distinct Runtimes the same ThreadContext: %p", tc1)
	}
	if tc1.Heap == tc2.Heap {
		t.Fatalf("RegisterThread gave two distinct Runtimes the same heap")
	}
}

func TestInternReturnsSameHandleForEqualStrings(t *testing.T) {
	rt := CreateRuntime()
	tc := RegisterThread(rt)

	a := tc.Intern("hello")
	b := tc.Intern("hello")
	if a != b {
		t.Fatalf("Intern(%q) returned distinct handles: %v != %v", "hello", a, b)
	}

	c := tc.Intern("goodbye")
	if a == c {
		t.Fatalf("Intern gave equal handles to unequal strings %q and %q", "hello", "goodbye")
	}
}
