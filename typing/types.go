package typing

import (
	"strconv"
	"strings"
)

// Type is the parent interface for every RX source type the generator has
// to reason about.  It mirrors chai/bootstrap/typing.DataType: a small,
// closed interface implemented by a handful of concrete structs rather than
// an open class hierarchy, so that a type switch over Type is exhaustive by
// construction.
type Type interface {
	// Repr returns a representative string, used only in diagnostics.
	Repr() string

	// equiv is the type-specific half of Equiv; never call it directly.
	equiv(Type) bool
}

// Equiv reports whether two types denote the same storage shape.  RX has no
// structural subtyping at this layer -- by the time the generator sees a
// type, the semantic analyzer has already resolved aliases and generics.
func Equiv(a, b Type) bool {
	return a.equiv(b)
}

// -----------------------------------------------------------------------------

// IntType is RX's sole integer type: a 64-bit word.  RX does not distinguish
// signed and unsigned widths at the type level (spec.md names only `i64`,
// `bool`, references, and aggregates as source-level shapes).
type IntType struct{}

// Int is the canonical IntType value; every IntType is interchangeable, so a
// package-level zero-value instance is all callers ever need.
var Int = IntType{}

func (IntType) Repr() string { return "i64" }

func (IntType) equiv(other Type) bool {
	_, ok := other.(IntType)
	return ok
}

// BoolType is RX's boolean type.
type BoolType struct{}

var Bool = BoolType{}

func (BoolType) Repr() string { return "bool" }

func (BoolType) equiv(other Type) bool {
	_, ok := other.(BoolType)
	return ok
}

// -----------------------------------------------------------------------------

// RefType is `&T` or `&mut T`.  It is pointer-shaped -- one slot -- but
// carries the layout of its referent so call sites can decide whether the
// referent itself is an aggregate or a scalar.
type RefType struct {
	Elem Type
	Mut  bool
}

func (rt *RefType) Repr() string {
	if rt.Mut {
		return "&mut " + rt.Elem.Repr()
	}
	return "&" + rt.Elem.Repr()
}

func (rt *RefType) equiv(other Type) bool {
	ort, ok := other.(*RefType)
	return ok && rt.Mut == ort.Mut && Equiv(rt.Elem, ort.Elem)
}

// -----------------------------------------------------------------------------

// TupleType is an anonymous product of elements, e.g. `(i64, bool)`.
type TupleType struct {
	Elems []Type
}

func (tt *TupleType) Repr() string {
	sb := strings.Builder{}
	sb.WriteByte('(')
	for i, e := range tt.Elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(e.Repr())
	}
	sb.WriteByte(')')
	return sb.String()
}

func (tt *TupleType) equiv(other Type) bool {
	ott, ok := other.(*TupleType)
	if !ok || len(tt.Elems) != len(ott.Elems) {
		return false
	}

	for i, e := range tt.Elems {
		if !Equiv(e, ott.Elems[i]) {
			return false
		}
	}

	return true
}

// -----------------------------------------------------------------------------

// FieldDef is a single field of a named struct type, in declaration order
// (declaration order is also slot order: field offsets are the prefix sum
// of the slot counts of the fields before it).
type FieldDef struct {
	Name string
	Type Type
}

// StructType is a named product type.
type StructType struct {
	Name   string
	Fields []FieldDef
}

func (st *StructType) Repr() string { return st.Name }

func (st *StructType) equiv(other Type) bool {
	ost, ok := other.(*StructType)
	// Struct identity is nominal: two structs with the same name were
	// declared as the same definition by the (out-of-scope) analyzer.
	return ok && st.Name == ost.Name
}

// FieldIndex returns the declaration-order index of a field, or -1 if the
// struct has no field of that name.
func (st *StructType) FieldIndex(name string) int {
	for i, f := range st.Fields {
		if f.Name == name {
			return i
		}
	}

	return -1
}

// -----------------------------------------------------------------------------

// ArrayType is `[T; N]`: a fixed-length homogeneous sequence.
type ArrayType struct {
	Elem Type
	Len  int
}

func (at *ArrayType) Repr() string {
	return "[" + at.Elem.Repr() + "; " + strconv.Itoa(at.Len) + "]"
}

func (at *ArrayType) equiv(other Type) bool {
	oat, ok := other.(*ArrayType)
	return ok && at.Len == oat.Len && Equiv(at.Elem, oat.Elem)
}
