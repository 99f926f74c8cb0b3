package whisper

import (
	"fmt"

	"github.com/whisper-lang/whisper/internal/frame"
	"github.com/whisper-lang/whisper/internal/heap"
	"github.com/whisper-lang/whisper/internal/values"
)

// FormatValue renders a ValBox for a human-facing surface (a REPL echo, a
// run subcommand's final printed result) — a CLI concern, not something the
// core or any native handler needs, so it has no home below this package.
func FormatValue(h *heap.Heap, v values.ValBox) string {
	switch v.Kind() {
	case values.KindUndefined:
		return "undefined"
	case values.KindNull:
		return "null"
	case values.KindBool:
		return fmt.Sprintf("%t", v.AsBool())
	case values.KindInt32:
		return fmt.Sprintf("%d", v.AsInt32())
	case values.KindDouble:
		return fmt.Sprintf("%g", v.AsImmediateDouble())
	case values.KindHeapDoubleRef:
		return "<double>"
	case values.KindStr8:
		return fmt.Sprintf("%q", v.AsStr8())
	case values.KindStr16:
		return fmt.Sprintf("%q", v.AsStr16())
	case values.KindHeapStringRef:
		if s, ok := heap.StringValue(h, v.AsHeapHandle()); ok {
			return fmt.Sprintf("%q", s)
		}
		return "<string>"
	case values.KindObjectRef:
		return fmt.Sprintf("<object %v>", v.AsHeapHandle())
	case values.KindMagic:
		return "<magic>"
	default:
		return "<invalid>"
	}
}

// FormatResult renders a full frame.EvalResult the way a CLI reports a
// finished program: the value on success, or the exception's message and
// arguments on a recoverable failure.
func FormatResult(h *heap.Heap, result frame.EvalResult) string {
	switch result.Kind {
	case frame.EvalValue:
		return FormatValue(h, result.Value)
	case frame.EvalVoid:
		return "<void>"
	case frame.EvalExc:
		s := result.ExcMessage
		for _, arg := range result.ExcArgs {
			s += " " + FormatValue(h, arg)
		}
		return s
	default:
		return fmt.Sprintf("internal error: %v", result.Err)
	}
}
