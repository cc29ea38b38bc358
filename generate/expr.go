package generate

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/report"
	"github.com/Mr-H-06/Rcompiler/rxvalue"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// emitExpr recursively lowers an expression node to a rxvalue.Value,
// emitting whatever instructions it needs into fc's current block.  The
// switch below is exhaustive over ast.Expr's closed sum of node kinds; an
// unhandled case is an internal compiler error, not a silently-ignored
// node.
func (fc *FunctionCtx) emitExpr(e ast.Expr) rxvalue.Value {
	switch v := e.(type) {
	case *ast.IntLit:
		return rxvalue.NewScalar(constant.NewInt(types.I64, v.Value), typing.Int)
	case *ast.BoolLit:
		return rxvalue.NewBool(constant.NewBool(v.Value), typing.Bool)
	case *ast.Ident:
		return fc.emitIdent(v)
	case *ast.BinOp:
		return fc.emitBinOp(v)
	case *ast.UnaryOp:
		return fc.emitUnaryOp(v)
	case *ast.AddrOf:
		return fc.emitAddrOf(v)
	case *ast.Deref:
		return fc.emitDeref(v)
	case *ast.Call:
		return fc.emitCall(v)
	case *ast.TupleField:
		return fc.emitTupleField(v)
	case *ast.StructField:
		return fc.emitStructField(v)
	case *ast.IndexExpr:
		return fc.emitIndex(v)
	case *ast.ArrayLit:
		return fc.emitArrayLit(v)
	case *ast.TupleLit:
		return fc.emitAggregateLit(v.Elems, v.Type())
	case *ast.StructLit:
		return fc.emitAggregateLit(v.Fields, v.Type())
	}

	report.ReportICE("emitExpr: unhandled AST node %T", e)
	return rxvalue.Value{}
}

// rvalue forces v to a realized SSA value: a direct value for Scalar/Bool,
// or a load through an LValue pointer.  Aggregate RValue/LValue pointers
// pass through unchanged -- an aggregate's "value" always is its address.
func rvalue(fc *FunctionCtx, v rxvalue.Value) rxvalue.Value {
	if v.Kind != rxvalue.LValue {
		return v
	}
	if typing.IsAggregate(v.Type) {
		return v
	}

	loaded := loadScalar(fc.block, v.V, v.Type)
	if _, ok := v.Type.(typing.BoolType); ok {
		return rxvalue.NewBool(loaded, v.Type)
	}
	return rxvalue.NewScalar(loaded, v.Type)
}

func (fc *FunctionCtx) emitIdent(id *ast.Ident) rxvalue.Value {
	vi := fc.lookupVar(id.Name)

	if vi.isRefBinding {
		target := fc.block.NewLoad(types.NewPointer(convType(vi.typ)), vi.ptr)
		return rxvalue.NewLValue(target, vi.typ, typing.LayoutOf(vi.typ).Slots)
	}

	return rxvalue.NewLValue(vi.ptr, vi.typ, vi.layout.Slots)
}

func (fc *FunctionCtx) emitAddrOf(a *ast.AddrOf) rxvalue.Value {
	operand := fc.emitExpr(a.Operand)
	if operand.Kind != rxvalue.LValue && operand.Kind != rxvalue.RValue {
		report.ReportICE("&-operand did not lower to an address")
	}

	refType := &typing.RefType{Elem: operand.Type, Mut: a.Mut}
	return rxvalue.NewScalar(operand.V, refType)
}

func (fc *FunctionCtx) emitDeref(d *ast.Deref) rxvalue.Value {
	operand := rvalue(fc, fc.emitExpr(d.Operand))

	rt, ok := operand.Type.(*typing.RefType)
	if !ok {
		report.ReportICE("*-operand is not a reference type")
	}

	return rxvalue.NewLValue(operand.V, rt.Elem, typing.LayoutOf(rt.Elem).Slots)
}

// emitBinOp lowers arithmetic, comparison, and short-circuiting logical
// operators.
func (fc *FunctionCtx) emitBinOp(b *ast.BinOp) rxvalue.Value {
	switch b.Op {
	case "&&", "||":
		return fc.emitShortCircuit(b)
	}

	lhs := toI64(fc.block, rvalue(fc, fc.emitExpr(b.Lhs)))
	rhs := toI64(fc.block, rvalue(fc, fc.emitExpr(b.Rhs)))

	switch b.Op {
	case "+":
		return rxvalue.NewScalar(fc.block.NewAdd(lhs, rhs), typing.Int)
	case "-":
		return rxvalue.NewScalar(fc.block.NewSub(lhs, rhs), typing.Int)
	case "*":
		return rxvalue.NewScalar(fc.block.NewMul(lhs, rhs), typing.Int)
	case "/":
		return rxvalue.NewScalar(fc.block.NewSDiv(lhs, rhs), typing.Int)
	case "%":
		return rxvalue.NewScalar(fc.block.NewSRem(lhs, rhs), typing.Int)
	case "==":
		return rxvalue.NewBool(fc.block.NewICmp(enum.IPredEQ, lhs, rhs), typing.Bool)
	case "!=":
		return rxvalue.NewBool(fc.block.NewICmp(enum.IPredNE, lhs, rhs), typing.Bool)
	case "<":
		return rxvalue.NewBool(fc.block.NewICmp(enum.IPredSLT, lhs, rhs), typing.Bool)
	case "<=":
		return rxvalue.NewBool(fc.block.NewICmp(enum.IPredSLE, lhs, rhs), typing.Bool)
	case ">":
		return rxvalue.NewBool(fc.block.NewICmp(enum.IPredSGT, lhs, rhs), typing.Bool)
	case ">=":
		return rxvalue.NewBool(fc.block.NewICmp(enum.IPredSGE, lhs, rhs), typing.Bool)
	}

	report.ReportICE("emitBinOp: unhandled operator %q", b.Op)
	return rxvalue.Value{}
}

// emitShortCircuit lowers `&&`/`||` via fresh basic blocks and an
// entry-block alloca, rather than a phi node, to merge the two paths --
// one of the two equally-valid strategies the spec allows.
func (fc *FunctionCtx) emitShortCircuit(b *ast.BinOp) rxvalue.Value {
	resultSlot := fc.entry.NewAlloca(types.I1)

	lhs := ensureBool(fc.block, fc.emitExpr(b.Lhs))

	rhsBlock := fc.appendBlock("sc.rhs")
	mergeBlock := fc.appendBlock("sc.merge")

	if b.Op == "&&" {
		shortCircuitBlock := fc.appendBlock("sc.false")
		fc.block.NewCondBr(lhs, rhsBlock, shortCircuitBlock)

		fc.block = shortCircuitBlock
		fc.block.NewStore(constant.NewBool(false), resultSlot)
		fc.block.NewBr(mergeBlock)
	} else {
		shortCircuitBlock := fc.appendBlock("sc.true")
		fc.block.NewCondBr(lhs, shortCircuitBlock, rhsBlock)

		fc.block = shortCircuitBlock
		fc.block.NewStore(constant.NewBool(true), resultSlot)
		fc.block.NewBr(mergeBlock)
	}

	fc.block = rhsBlock
	rhs := ensureBool(fc.block, fc.emitExpr(b.Rhs))
	fc.block.NewStore(rhs, resultSlot)
	fc.block.NewBr(mergeBlock)

	fc.block = mergeBlock
	result := fc.block.NewLoad(types.I1, resultSlot)
	return rxvalue.NewBool(result, typing.Bool)
}

func (fc *FunctionCtx) emitUnaryOp(u *ast.UnaryOp) rxvalue.Value {
	operand := rvalue(fc, fc.emitExpr(u.Operand))

	switch u.Op {
	case "-":
		return rxvalue.NewScalar(fc.block.NewSub(constant.NewInt(types.I64, 0), toI64(fc.block, operand)), typing.Int)
	case "!":
		b := ensureBool(fc.block, operand)
		return rxvalue.NewBool(fc.block.NewXor(b, constant.NewBool(true)), typing.Bool)
	}

	report.ReportICE("emitUnaryOp: unhandled operator %q", u.Op)
	return rxvalue.Value{}
}

// emitCall lowers a function call, including sret-style aggregate
// returns and by-value/by-reference argument passing.
func (fc *FunctionCtx) emitCall(c *ast.Call) rxvalue.Value {
	sig, hasSig := fc.emitter.analyzer.FuncSig(c.Callee)

	var retSlot value.Value
	aggregateReturn := hasSig && sig.ReturnType != nil && typing.IsAggregate(sig.ReturnType)

	var args []value.Value
	if aggregateReturn {
		retSlot = fc.entry.NewAlloca(convType(sig.ReturnType))
		args = append(args, retSlot)
	}

	for i, argExpr := range c.Args {
		argVal := fc.emitExpr(argExpr)

		if hasSig && i < len(sig.Params) && typing.IsAggregate(sig.Params[i]) {
			// Aggregate formal: a temporary (RValue) is passed by its own
			// address directly; an addressable argument (LValue) is copied
			// to a fresh stack slot first so the callee cannot alias the
			// caller's storage.
			ptr := argVal.V
			if argVal.Kind == rxvalue.RValue {
				args = append(args, ptr)
				continue
			}

			slots := typing.LayoutOf(sig.Params[i]).Slots
			tmp := fc.entry.NewAlloca(convType(sig.Params[i]))
			copySlots(fc.block, ptr, tmp, convType(sig.Params[i]), slots)
			args = append(args, tmp)
			continue
		}

		if hasSig && i < len(sig.Params) && sig.ParamByRef[i] {
			args = append(args, addressOf(fc, argVal))
			continue
		}

		args = append(args, toI64(fc.block, rvalue(fc, argVal)))
	}

	callee := fc.emitter.resolveCallee(c.Callee, len(c.Args))
	result := fc.block.NewCall(callee, args...)

	if aggregateReturn {
		return rxvalue.NewRValue(retSlot, sig.ReturnType, typing.LayoutOf(sig.ReturnType).Slots)
	}
	if !hasSig || sig.ReturnType == nil {
		return rxvalue.Value{}
	}
	if _, ok := sig.ReturnType.(typing.BoolType); ok {
		return rxvalue.NewBool(result, sig.ReturnType)
	}
	return rxvalue.NewScalar(result, sig.ReturnType)
}

// addressOf returns the address of v's storage, used when passing an
// argument to an explicit `&T`/`&mut T` formal parameter.  Whether v is an
// lvalue/rvalue pointer or an already-computed reference value (e.g.
// forwarding `&mut v` through to another by-ref parameter), its SSA value
// already is the address.
func addressOf(fc *FunctionCtx, v rxvalue.Value) value.Value {
	return v.V
}

func (fc *FunctionCtx) emitTupleField(t *ast.TupleField) rxvalue.Value {
	root := fc.emitExpr(t.Root)
	tt, ok := root.Type.(*typing.TupleType)
	if !ok {
		report.ReportICE("tuple field access on non-tuple type %s", root.Type.Repr())
	}

	return fc.emitFieldAccess(root, tt.Elems, t.Index)
}

func (fc *FunctionCtx) emitStructField(s *ast.StructField) rxvalue.Value {
	root := fc.emitExpr(s.Root)
	st, ok := root.Type.(*typing.StructType)
	if !ok {
		report.ReportICE("struct field access on non-struct type %s", root.Type.Repr())
	}

	return fc.emitFieldAccess(root, typing.StructFieldTypes(st), s.FieldIndex)
}

// emitFieldAccess GEPs into an aggregate's backing `[N x i64]` at the slot
// offset of field idx, then either loads a scalar field or returns a
// pointer to an aggregate field.
func (fc *FunctionCtx) emitFieldAccess(root rxvalue.Value, fieldTypes []typing.Type, idx int) rxvalue.Value {
	if !root.IsPointer() {
		report.ReportICE("field access root did not lower to a pointer")
	}

	offset := typing.FieldOffset(fieldTypes, idx)
	fieldType := fieldTypes[idx]
	arrType := convType(root.Type)

	slotPtr := fc.block.NewGetElementPtr(arrType, root.V,
		constant.NewInt(types.I64, 0), constant.NewInt(types.I64, int64(offset)))

	if typing.IsAggregate(fieldType) {
		fieldArrType := convType(fieldType)
		castPtr := fc.block.NewBitCast(slotPtr, types.NewPointer(fieldArrType))
		return rxvalue.NewLValue(castPtr, fieldType, typing.LayoutOf(fieldType).Slots)
	}

	word := fc.block.NewLoad(types.I64, slotPtr)
	realized := wordToValue(fc.block, word, fieldType)

	switch fieldType.(type) {
	case typing.BoolType:
		return rxvalue.NewBool(realized, fieldType)
	default:
		return rxvalue.NewScalar(realized, fieldType)
	}
}

func (fc *FunctionCtx) emitIndex(ix *ast.IndexExpr) rxvalue.Value {
	root := fc.emitExpr(ix.Root)
	at, ok := root.Type.(*typing.ArrayType)
	if !ok {
		report.ReportICE("index access on non-array type %s", root.Type.Repr())
	}
	if !root.IsPointer() {
		report.ReportICE("array index root did not lower to a pointer")
	}

	elemSlots := typing.LayoutOf(at.Elem).Slots
	arrType := convType(root.Type)

	var slotIndex value.Value
	if lit, ok := ix.Index.(*ast.IntLit); ok {
		if lit.Value < 0 || lit.Value >= int64(at.Len) {
			report.ReportCompileError(ix.Position(), "array index %d out of range for array of length %d", lit.Value, at.Len)
			slotIndex = fallbackValue()
		} else {
			slotIndex = constInt(lit.Value * int64(elemSlots))
		}
	} else {
		idxVal := toI64(fc.block, rvalue(fc, fc.emitExpr(ix.Index)))
		slotIndex = fc.block.NewMul(idxVal, constant.NewInt(types.I64, int64(elemSlots)))
	}

	slotPtr := fc.block.NewGetElementPtr(arrType, root.V, constant.NewInt(types.I64, 0), slotIndex)

	if typing.IsAggregate(at.Elem) {
		elemArrType := convType(at.Elem)
		castPtr := fc.block.NewBitCast(slotPtr, types.NewPointer(elemArrType))
		return rxvalue.NewLValue(castPtr, at.Elem, elemSlots)
	}

	word := fc.block.NewLoad(types.I64, slotPtr)
	realized := wordToValue(fc.block, word, at.Elem)

	switch at.Elem.(type) {
	case typing.BoolType:
		return rxvalue.NewBool(realized, at.Elem)
	default:
		return rxvalue.NewScalar(realized, at.Elem)
	}
}

func (fc *FunctionCtx) emitArrayLit(a *ast.ArrayLit) rxvalue.Value {
	return fc.emitAggregateLit(a.Elems, a.Type())
}

// emitAggregateLit materializes a tuple, struct, or array literal into a
// fresh entry-block temporary and stores each element/field into its
// slot, returning an RValue pointer to the temporary.
func (fc *FunctionCtx) emitAggregateLit(elems []ast.Expr, t typing.Type) rxvalue.Value {
	layout := typing.LayoutOf(t)
	arrType := convType(t)
	tmp := fc.entry.NewAlloca(arrType)

	fieldTypes := aggregateFieldTypes(t, len(elems))

	offset := 0
	for i, elemExpr := range elems {
		ft := fieldTypes[i]
		v := fc.emitExpr(elemExpr)

		if typing.IsAggregate(ft) {
			dstSlot := fc.block.NewGetElementPtr(arrType, tmp,
				constant.NewInt(types.I64, 0), constant.NewInt(types.I64, int64(offset)))
			dstCast := fc.block.NewBitCast(dstSlot, types.NewPointer(convType(ft)))
			copySlots(fc.block, v.V, dstCast, convType(ft), typing.LayoutOf(ft).Slots)
		} else {
			word := slotWord(fc.block, toI64OrPtr(fc, v))
			dstSlot := fc.block.NewGetElementPtr(arrType, tmp,
				constant.NewInt(types.I64, 0), constant.NewInt(types.I64, int64(offset)))
			fc.block.NewStore(word, dstSlot)
		}

		offset += typing.LayoutOf(ft).Slots
	}

	return rxvalue.NewRValue(tmp, t, layout.Slots)
}

// toI64OrPtr realizes a scalar rxvalue.Value to its natural LLVM value
// (i64, i1, or a reference pointer) without forcing everything to i64 --
// slotWord handles the final word coercion.
func toI64OrPtr(fc *FunctionCtx, v rxvalue.Value) value.Value {
	r := rvalue(fc, v)
	return r.V
}

// aggregateFieldTypes returns the field/element type of each position in
// a tuple, struct, or array literal.
func aggregateFieldTypes(t typing.Type, n int) []typing.Type {
	switch v := t.(type) {
	case *typing.TupleType:
		return v.Elems
	case *typing.StructType:
		return typing.StructFieldTypes(v)
	case *typing.ArrayType:
		out := make([]typing.Type, n)
		for i := range out {
			out[i] = v.Elem
		}
		return out
	}

	report.ReportICE("aggregateFieldTypes: unhandled aggregate type %s", t.Repr())
	return nil
}
