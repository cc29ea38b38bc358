package typing

// Layout is the memory layout of a source type: the number of 64-bit slots
// it occupies and the two flags the generator needs to pick a lowering
// strategy.  This is spec.md §3's "Type layout" verbatim.
type Layout struct {
	Slots     int
	Aggregate bool
	ArrayLike bool
}

// LayoutOf computes the layout of a type.  It is a pure function of t: the
// same type always yields the same layout (spec.md §8, "Idempotent
// layout").
func LayoutOf(t Type) Layout {
	switch v := t.(type) {
	case IntType, BoolType:
		return Layout{Slots: 1}
	case *RefType:
		// The pointer itself is one slot; the referent's shape is irrelevant
		// to the reference's own layout.
		return Layout{Slots: 1}
	case *TupleType:
		slots := 0
		for _, e := range v.Elems {
			slots += LayoutOf(e).Slots
		}
		return Layout{Slots: slots, Aggregate: true}
	case *StructType:
		slots := 0
		arrayLike := false
		for _, f := range v.Fields {
			fl := LayoutOf(f.Type)
			slots += fl.Slots
			arrayLike = arrayLike || fl.ArrayLike
		}
		return Layout{Slots: slots, Aggregate: true, ArrayLike: arrayLike}
	case *ArrayType:
		el := LayoutOf(v.Elem)
		return Layout{Slots: v.Len * el.Slots, Aggregate: true, ArrayLike: true}
	}

	// Unreachable for any type produced by the closed Type sum above; a new
	// Type implementation that forgets to extend this switch is a bug in
	// the generator, not in the input program.
	panic("typing: LayoutOf: unhandled type " + t.Repr())
}

// FieldOffset returns the slot offset of the field at index idx within an
// aggregate type (struct or tuple): the prefix sum of the slot counts of
// the fields before it.
func FieldOffset(fields []Type, idx int) int {
	offset := 0
	for i := 0; i < idx; i++ {
		offset += LayoutOf(fields[i]).Slots
	}

	return offset
}

// StructFieldTypes extracts the field type list of a struct in declaration
// order, the shape FieldOffset wants.
func StructFieldTypes(st *StructType) []Type {
	types := make([]Type, len(st.Fields))
	for i, f := range st.Fields {
		types[i] = f.Type
	}

	return types
}

// TupleFieldOffset is FieldOffset specialized for tuples.
func TupleFieldOffset(tt *TupleType, idx int) int {
	return FieldOffset(tt.Elems, idx)
}

// StructFieldOffset is FieldOffset specialized for named structs.
func StructFieldOffset(st *StructType, idx int) int {
	return FieldOffset(StructFieldTypes(st), idx)
}

// -----------------------------------------------------------------------------

// IsRefType reports whether t is `&T` or `&mut T`.
func IsRefType(t Type) bool {
	_, ok := t.(*RefType)
	return ok
}

// IsAggregate reports whether t's layout is an aggregate (struct, tuple, or
// array).
func IsAggregate(t Type) bool {
	return LayoutOf(t).Aggregate
}

// NeedsByValue reports whether a value of type t can be passed in a single
// SSA register (an `i64`/`i1`/`ptr`), as opposed to needing an address.
// Aggregates are never passed as a spread of inline scalar arguments in RX
// -- spec.md §4.1 is explicit that this is unsupported, so the only
// by-value types are plain scalars.
func NeedsByValue(t Type) bool {
	l := LayoutOf(t)
	return !l.Aggregate
}

// NeedsByRef reports whether t must be addressed through a pointer at a
// call boundary: true for aggregates (passed by implicit reference to their
// backing slots) and for explicit reference types (whose value already is
// a pointer).
func NeedsByRef(t Type) bool {
	return IsAggregate(t) || IsRefType(t)
}

// Deref strips one layer of RefType, returning t unchanged if it is not a
// reference.  Used when lowering `*e` and auto-deref of reference bindings.
func Deref(t Type) Type {
	if rt, ok := t.(*RefType); ok {
		return rt.Elem
	}

	return t
}
