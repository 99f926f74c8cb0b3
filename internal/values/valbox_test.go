package values

import "testing"

// TestTagSoundness exercises testable property #1: for every ValBox, exactly
// one is_X predicate is true.
func TestTagSoundness(t *testing.T) {
	str8, ok := NewStr8("hi")
	if !ok {
		t.Fatal("expected NewStr8 to accept a 2-byte string")
	}

	boxes := []ValBox{
		Undefined(),
		Null(),
		NewBool(true),
		NewInt32(42),
		NewDouble(1.5),
		str8,
		NewMagic(7),
	}

	for _, v := range boxes {
		predicates := []bool{
			v.IsUndefined(), v.IsNull(), v.IsBool(), v.IsInt32(),
			v.IsDouble(), v.IsHeapDoubleRef(), v.IsStr8(), v.IsStr16(),
			v.IsHeapStringRef(), v.IsObjectRef(), v.IsMagic(),
		}
		count := 0
		for _, p := range predicates {
			if p {
				count++
			}
		}
		if count != 1 {
			t.Fatalf("value %+v: expected exactly one predicate true, got %d", v, count)
		}
	}
}

// TestStr8RoundTrip exercises testable property #9.
func TestStr8RoundTrip(t *testing.T) {
	cases := []string{"", "a", "abcdefg", "\x00\x01\xff"}
	for _, s := range cases {
		v, ok := NewStr8(s)
		if !ok {
			t.Fatalf("NewStr8(%q) unexpectedly rejected", s)
		}
		if got := v.AsStr8(); got != s {
			t.Errorf("round trip failed: want %q got %q", s, got)
		}
	}
}

func TestStr8RejectsOverlong(t *testing.T) {
	if _, ok := NewStr8("12345678"); ok {
		t.Fatal("expected an 8-byte string to be rejected")
	}
}

// TestInt32RoundTrip exercises testable property #10.
func TestInt32RoundTrip(t *testing.T) {
	for _, n := range []int32{0, 1, -1, 1 << 30, -(1 << 30), 2147483647, -2147483648} {
		if got := NewInt32(n).AsInt32(); got != n {
			t.Errorf("round trip failed: want %d got %d", n, got)
		}
	}
}

func TestEqualDiscriminatesCategories(t *testing.T) {
	if NewInt32(1).Equal(NewDouble(1.0)) {
		t.Fatal("int32 and double with the same magnitude must not be Equal (different Kind)")
	}
}

func TestImmediateDoubleRangeGating(t *testing.T) {
	if !IsImmediateDouble(1.5) {
		t.Fatal("1.5 should be representable as an immediate double")
	}
	huge := 1.0
	for i := 0; i < 200; i++ {
		huge *= 2
	}
	if IsImmediateDouble(huge) {
		t.Fatal("an extreme exponent should require a heap-tailed double")
	}
}

func TestCompareCrossCategoryFails(t *testing.T) {
	v8, _ := NewStr8("x")
	_, err := Compare(NewInt32(1), v8, nil, nil)
	if err == nil {
		t.Fatal("expected an IncomparableError across categories")
	}
	if _, ok := err.(*IncomparableError); !ok {
		t.Fatalf("expected *IncomparableError, got %T", err)
	}
}

func TestHashStableWithinProcess(t *testing.T) {
	spoiler := NewSpoiler(12345)
	a, _ := NewStr8("same")
	b, _ := NewStr8("same")
	if Hash(spoiler, a, nil) != Hash(spoiler, b, nil) {
		t.Fatal("equal strings must hash equally under the same spoiler")
	}
}
