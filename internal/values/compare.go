package values

import "fmt"

// IncomparableError is raised when Compare is asked to order two ValBoxes
// from different categories (spec.md §4.1: "cross-category ordering fails
// with a TypeError-class exception"). It is deliberately not named after any
// host language's exception hierarchy — see spec.md §7.
type IncomparableError struct {
	Left, Right Kind
}

func (e *IncomparableError) Error() string {
	return fmt.Sprintf("values: cannot order %s against %s", e.Left, e.Right)
}

// numericFloat extracts a comparable float64 from any numeric ValBox,
// resolving a heap-tailed double via resolveDouble.
func numericFloat(v ValBox, resolveDouble func(ValBox) float64) (float64, bool) {
	switch v.kind {
	case KindInt32:
		return float64(v.i32), true
	case KindDouble:
		return v.f64, true
	case KindHeapDoubleRef:
		if resolveDouble == nil {
			return 0, false
		}
		return resolveDouble(v), true
	default:
		return 0, false
	}
}

func stringOf(v ValBox, resolveString func(ValBox) string) (string, bool) {
	switch v.kind {
	case KindStr8:
		return v.AsStr8(), true
	case KindStr16:
		return v.AsStr16(), true
	case KindHeapStringRef:
		if resolveString == nil {
			return "", false
		}
		return resolveString(v), true
	default:
		return "", false
	}
}

// Compare orders a and b, which must both be numbers or both be strings.
// resolveDouble/resolveString resolve heap-tailed payloads; either may be
// nil if the caller knows no heap-tailed values are in play (e.g. inline
// literals only).
func Compare(a, b ValBox, resolveDouble func(ValBox) float64, resolveString func(ValBox) string) (int, error) {
	if a.IsNumber() && b.IsNumber() {
		af, aok := numericFloat(a, resolveDouble)
		bf, bok := numericFloat(b, resolveDouble)
		if !aok || !bok {
			return 0, &IncomparableError{a.kind, b.kind}
		}
		switch {
		case af < bf:
			return -1, nil
		case af > bf:
			return 1, nil
		default:
			return 0, nil
		}
	}
	if a.IsString() && b.IsString() {
		as, aok := stringOf(a, resolveString)
		bs, bok := stringOf(b, resolveString)
		if !aok || !bok {
			return 0, &IncomparableError{a.kind, b.kind}
		}
		switch {
		case as < bs:
			return -1, nil
		case as > bs:
			return 1, nil
		default:
			return 0, nil
		}
	}
	return 0, &IncomparableError{a.kind, b.kind}
}
