// Package rxvalue defines the value representation the generator threads
// through expression lowering: a single-name scalar, an i1 boolean, an
// addressable lvalue pointer, or a pointer to an aggregate temporary
// (spec.md §3, "Design Notes" -- tagged variant
// `Value = Scalar | Bool | LValue | RValue`).
//
// The underlying C++ implementation this module's spec was distilled from
// (original_source/include/ir.h) represents a Value as a plain struct with
// a printed name string and three metadata flags (arrayAlloca, slots,
// isLValuePtr); it needed the name string because it emits IR as text.
// This module builds the IR through github.com/llir/llvm's object model
// instead, so the "name" field is replaced by an actual value.Value, and
// the four cases become an explicit Kind tag rather than a flag
// combination, per the spec's recommendation.
package rxvalue

import (
	"github.com/llir/llvm/ir/value"

	"github.com/Mr-H-06/Rcompiler/typing"
)

// Kind discriminates the four value shapes the generator produces.
type Kind int

const (
	// Scalar is a single-register SSA value: an i64, or a pointer for a
	// reference-typed value.
	Scalar Kind = iota
	// Bool is an i1 SSA value.
	Bool
	// LValue is a pointer to addressable storage: V is the pointer itself.
	LValue
	// RValue is a pointer to an aggregate temporary: V is a pointer to a
	// stack slot holding Slots i64 words, produced by an alloca that was
	// never exposed as a named variable (the arrayAlloca case of
	// ir.h's Value).
	RValue
)

// Value is the generator's working representation of one expression
// result.
type Value struct {
	Kind  Kind
	V     value.Value // the SSA value: a scalar/bool result, or a pointer for LValue/RValue
	Type  typing.Type // the RX-level static type this Value carries
	Slots int         // aggregate word count; 1 for Scalar/Bool/non-aggregate LValue
}

// NewScalar wraps an i64 result, or a pointer result of reference type.
func NewScalar(v value.Value, t typing.Type) Value {
	return Value{Kind: Scalar, V: v, Type: t, Slots: 1}
}

// NewBool wraps an i1 result.
func NewBool(v value.Value, t typing.Type) Value {
	return Value{Kind: Bool, V: v, Type: t, Slots: 1}
}

// NewLValue wraps an addressable pointer.  slots is the layout of the
// pointee, not of the pointer itself.
func NewLValue(ptr value.Value, t typing.Type, slots int) Value {
	return Value{Kind: LValue, V: ptr, Type: t, Slots: slots}
}

// NewRValue wraps a pointer to an unnamed aggregate temporary.
func NewRValue(ptr value.Value, t typing.Type, slots int) Value {
	return Value{Kind: RValue, V: ptr, Type: t, Slots: slots}
}

// IsPointer reports whether V is a pointer that must be loaded from (or
// GEP'd into) rather than used directly, i.e. LValue or RValue.
func (v Value) IsPointer() bool {
	return v.Kind == LValue || v.Kind == RValue
}

// IsAggregate reports whether V addresses a multi-slot aggregate rather
// than a single scalar or boolean word.
func (v Value) IsAggregate() bool {
	return v.Slots > 1 || typing.IsAggregate(v.Type)
}
