// Package heap implements the GC-managed object heap: slab allocation,
// generational precise copying collection, and the root-registration
// protocol that lets the interpreter's C-stack-resident handles survive a
// collection.
package heap

// Format names the layout a heap object was allocated with. The collector's
// Scan/Update dispatch is keyed by Format so tracing never needs reflection.
type Format uint8

const (
	FormatInvalid Format = iota
	FormatString
	FormatDoubleBox
	FormatUInt32Array // leaf format: no heap-valued fields
	FormatPropertyDict
	FormatCallScope
	FormatModuleScope
	FormatGlobalScope
	FormatFunctionObject
	FormatSyntaxNode
	FormatContinuation
	FormatFrame
)

func (f Format) String() string {
	switch f {
	case FormatString:
		return "String"
	case FormatDoubleBox:
		return "DoubleBox"
	case FormatUInt32Array:
		return "UInt32Array"
	case FormatPropertyDict:
		return "PropertyDict"
	case FormatCallScope:
		return "CallScope"
	case FormatModuleScope:
		return "ModuleScope"
	case FormatGlobalScope:
		return "GlobalScope"
	case FormatFunctionObject:
		return "FunctionObject"
	case FormatSyntaxNode:
		return "SyntaxNode"
	case FormatContinuation:
		return "Continuation"
	case FormatFrame:
		return "Frame"
	default:
		return "Invalid"
	}
}

// Generation is the age bucket a heap object currently lives in.
type Generation uint8

const (
	Hatchery Generation = iota
	Nursery
	Tenured
)

func (g Generation) String() string {
	switch g {
	case Hatchery:
		return "hatchery"
	case Nursery:
		return "nursery"
	case Tenured:
		return "tenured"
	default:
		return "unknown"
	}
}

// Header is the 8-byte-equivalent metadata every heap object carries. Size is
// immutable once the object is allocated (invariant: see spec §3 HeapThing).
type Header struct {
	Format     Format
	SizeWords  uint32
	Generation Generation
	Marked     bool
	UserData   uint8
}

// Object is implemented by every heap-allocated value. Scan enumerates the
// object's heap-valued fields by invoking visit on the address of each slot,
// so the collector can both discover edges and, during relocation, rewrite
// them to the copy's new Handle (the Update half of the Scan/Update pair).
// Formats with no heap-valued fields (e.g. UInt32Array) implement Scan as a
// no-op and report IsLeaf() == true so the collector can skip tracing them
// entirely.
type Object interface {
	Header() *Header
	Scan(visit func(*Handle))
	IsLeaf() bool
}
