package generate

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/Mr-H-06/Rcompiler/report"
	"github.com/Mr-H-06/Rcompiler/rxvalue"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// convType maps a source type to the LLVM type used to store one word of
// it.  Scalars get their natural width; references get a genuine typed
// LLVM pointer (no slot indirection needed for a standalone reference);
// aggregates get a flat `[N x i64]`, the uniform word-addressed storage
// every tuple, struct, and array is built from.
func convType(t typing.Type) types.Type {
	switch v := t.(type) {
	case typing.IntType:
		return types.I64
	case typing.BoolType:
		return types.I1
	case *typing.RefType:
		return types.NewPointer(convType(v.Elem))
	default:
		if typing.IsAggregate(t) {
			return types.NewArray(uint64(typing.LayoutOf(t).Slots), types.I64)
		}
	}

	report.ReportICE("convType: unhandled type %s", t.Repr())
	return nil
}

func typeIsRef(t typing.Type) bool {
	return typing.IsRefType(t)
}

// constInt is a thin i64-constant constructor, named to match
// original_source/include/ir.h's own constInt helper.
func constInt(v int64) value.Value {
	return constant.NewInt(types.I64, v)
}

// fallbackValue is the zero i64 substituted for a value that failed a
// compile-time check -- currently, an out-of-range literal array index --
// once the diagnostic has already been recorded through
// report.ReportCompileError. Generation keeps going on a zero slot so the
// rest of the module still lowers to well-formed IR; ShouldProceed reports
// false afterward regardless.
func fallbackValue() value.Value {
	return constInt(0)
}

// slotWord coerces v to the i64 word representation used inside an
// aggregate's backing array: pointers are ptrtoint'd, i1 is zext'd, i64
// passes through.
func slotWord(block *ir.Block, v value.Value) value.Value {
	switch t := v.Type().(type) {
	case *types.PointerType:
		return block.NewPtrToInt(v, types.I64)
	case *types.IntType:
		if t.BitSize == 1 {
			return block.NewZExt(v, types.I64)
		}
		return v
	default:
		return v
	}
}

// wordToValue reverses slotWord: given a raw i64 word loaded out of an
// aggregate slot and the source type that slot represents, produces the
// properly-typed LLVM value.
func wordToValue(block *ir.Block, word value.Value, t typing.Type) value.Value {
	switch v := t.(type) {
	case typing.BoolType:
		return block.NewTrunc(word, types.I1)
	case *typing.RefType:
		return block.NewIntToPtr(word, types.NewPointer(convType(v.Elem)))
	default:
		return word
	}
}

// toI64 coerces a rxvalue.Value to a plain i64 SSA value: loads through an
// lvalue pointer, zexts a bool.
func toI64(block *ir.Block, v rxvalue.Value) value.Value {
	switch v.Kind {
	case rxvalue.Scalar:
		return v.V
	case rxvalue.Bool:
		return block.NewZExt(v.V, types.I64)
	case rxvalue.LValue:
		loaded := block.NewLoad(elemTypeOf(v), v.V)
		if _, ok := v.Type.(typing.BoolType); ok {
			return block.NewZExt(loaded, types.I64)
		}
		return loaded
	default:
		report.ReportICE("toI64: cannot coerce an aggregate rvalue to i64")
		return nil
	}
}

// ensureBool coerces a rxvalue.Value to an i1: compares a loaded/realized
// i64 against zero when needed.
func ensureBool(block *ir.Block, v rxvalue.Value) value.Value {
	if v.Kind == rxvalue.Bool {
		return v.V
	}
	if v.Kind == rxvalue.LValue {
		loaded := block.NewLoad(elemTypeOf(v), v.V)
		if it, ok := loaded.Type().(*types.IntType); ok && it.BitSize == 1 {
			return loaded
		}
		return block.NewICmp(enum.IPredNE, loaded, constant.NewInt(types.I64, 0))
	}

	return block.NewICmp(enum.IPredNE, toI64(block, v), constant.NewInt(types.I64, 0))
}

// elemTypeOf returns the LLVM type a Value's pointer points to, derived
// from its source type -- needed because llir/llvm's typed NewLoad/GEP
// APIs require the pointee type at every call site.
func elemTypeOf(v rxvalue.Value) types.Type {
	return convType(v.Type)
}

// loadScalar loads the scalar (non-aggregate) value addressed by an
// lvalue pointer.
func loadScalar(block *ir.Block, ptr value.Value, t typing.Type) value.Value {
	return block.NewLoad(convType(t), ptr)
}

// copySlots copies count i64 words from src to dst, both pointers to
// `[N x i64]` arrays, via a straight-line sequence of GEP+load+store --
// the aggregate assignment and pass-by-value primitive.
func copySlots(block *ir.Block, src, dst value.Value, arrType types.Type, count int) {
	for i := 0; i < count; i++ {
		srcSlot := block.NewGetElementPtr(arrType, src,
			constant.NewInt(types.I64, 0), constant.NewInt(types.I64, int64(i)))
		dstSlot := block.NewGetElementPtr(arrType, dst,
			constant.NewInt(types.I64, 0), constant.NewInt(types.I64, int64(i)))

		word := block.NewLoad(types.I64, srcSlot)
		block.NewStore(word, dstSlot)
	}
}
