package generate

import (
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/report"
	"github.com/Mr-H-06/Rcompiler/rxvalue"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// emitStmt lowers a statement, mutating fc.  Callers are responsible for
// checking fc.terminated() before calling this again within the same
// block: a terminated block suppresses the rest of its statements,
// enabling dead-code elimination at emission time.
func (fc *FunctionCtx) emitStmt(s ast.Stmt) {
	switch v := s.(type) {
	case *ast.Block:
		fc.emitBlock(v)
	case *ast.LetStmt:
		fc.emitLet(v)
	case *ast.AssignStmt:
		fc.emitAssign(v)
	case *ast.ExprStmt:
		fc.emitExpr(v.X)
	case *ast.IfStmt:
		fc.emitIf(v)
	case *ast.WhileStmt:
		fc.emitWhile(v)
	case *ast.LoopStmt:
		fc.emitLoop(v)
	case *ast.BreakStmt:
		fc.block.NewBr(fc.currentBreakTarget())
	case *ast.ContinueStmt:
		fc.block.NewBr(fc.currentContinueTarget())
	case *ast.ReturnStmt:
		fc.emitReturn(v)
	default:
		report.ReportICE("emitStmt: unhandled AST node %T", s)
	}
}

func (fc *FunctionCtx) emitBlock(b *ast.Block) {
	for _, stmt := range b.Stmts {
		if fc.terminated() {
			return
		}
		fc.emitStmt(stmt)
	}
}

// emitLet lowers `let x: T = e;` / `let mut x: T = e;` / `let x = &e;`.
func (fc *FunctionCtx) emitLet(l *ast.LetStmt) {
	if l.IsRef {
		// Alias binding: `x` is a transparent stand-in for the pointee of
		// `&e`, auto-dereferenced on every subsequent use.
		init := fc.emitExpr(l.Init)
		targetType := init.Type
		if rt, ok := init.Type.(*typing.RefType); ok && init.Kind == rxvalue.Scalar {
			// `&e` lowers to e's address carried as a reference value; the
			// binding aliases the referent.
			targetType = rt.Elem
		} else if !init.IsPointer() {
			report.ReportICE("reference binding initializer did not lower to an address")
		}

		slot := fc.entry.NewAlloca(types.NewPointer(convType(targetType)))
		fc.block.NewStore(init.V, slot)
		fc.defineVar(l.Name, &varInfo{typ: targetType, layout: typing.LayoutOf(targetType), ptr: slot, isRefBinding: true})
		return
	}

	declType := l.Type
	if declType == nil {
		declType = l.Init.Type()
	}

	local := fc.entry.NewAlloca(convType(declType))
	fc.defineVar(l.Name, &varInfo{typ: declType, layout: typing.LayoutOf(declType), ptr: local})
	fc.storeValueInto(local, declType, fc.emitExpr(l.Init))
}

// storeValueInto writes a lowered value into dst, an address for a value
// of type t: a plain store for scalars/bools/references, word-by-word
// copySlots for aggregates.
func (fc *FunctionCtx) storeValueInto(dst value.Value, t typing.Type, v rxvalue.Value) {
	if typing.IsAggregate(t) {
		if !v.IsPointer() {
			report.ReportICE("aggregate assignment source did not lower to an address")
		}
		copySlots(fc.block, v.V, dst, convType(t), typing.LayoutOf(t).Slots)
		return
	}

	realized := rvalue(fc, v)
	fc.block.NewStore(realized.V, dst)
}

// emitAssign lowers `lhs = rhs;`.
func (fc *FunctionCtx) emitAssign(a *ast.AssignStmt) {
	lhs := fc.emitExpr(a.Lhs)
	if lhs.Kind != rxvalue.LValue {
		report.ReportICE("assignment target did not lower to an lvalue")
	}

	fc.storeValueInto(lhs.V, lhs.Type, fc.emitExpr(a.Rhs))
}

// emitIf lowers an if/else-if/.../else chain: a conditional branch per
// arm, each arm recursively lowered, with a branch to the merge block
// emitted only when the arm did not already terminate.
func (fc *FunctionCtx) emitIf(i *ast.IfStmt) {
	mergeBlock := fc.appendBlock("if.merge")

	for _, arm := range i.Arms {
		thenBlock := fc.appendBlock("if.then")
		elseBlock := fc.appendBlock("if.else")

		cond := ensureBool(fc.block, fc.emitExpr(arm.Cond))
		fc.block.NewCondBr(cond, thenBlock, elseBlock)

		fc.block = thenBlock
		fc.emitBlock(arm.Body)
		if !fc.terminated() {
			fc.block.NewBr(mergeBlock)
		}

		fc.block = elseBlock
	}

	if i.Else != nil {
		fc.emitBlock(i.Else)
	}
	if !fc.terminated() {
		fc.block.NewBr(mergeBlock)
	}

	fc.block = mergeBlock
}

// emitWhile lowers `while cond { body }`: a header block testing cond, a
// body block branching back to the header, and an exit block.
func (fc *FunctionCtx) emitWhile(w *ast.WhileStmt) {
	headerBlock := fc.appendBlock("while.header")
	bodyBlock := fc.appendBlock("while.body")
	exitBlock := fc.appendBlock("while.exit")

	fc.block.NewBr(headerBlock)

	fc.block = headerBlock
	cond := ensureBool(fc.block, fc.emitExpr(w.Cond))
	fc.block.NewCondBr(cond, bodyBlock, exitBlock)

	fc.block = bodyBlock
	fc.pushLoopTargets(exitBlock, headerBlock)
	fc.emitBlock(w.Body)
	fc.popLoopTargets()
	if !fc.terminated() {
		fc.block.NewBr(headerBlock)
	}

	fc.block = exitBlock
}

// emitLoop lowers an unconditional `loop { body }`, exited only via
// break.
func (fc *FunctionCtx) emitLoop(l *ast.LoopStmt) {
	bodyBlock := fc.appendBlock("loop.body")
	exitBlock := fc.appendBlock("loop.exit")

	fc.block.NewBr(bodyBlock)

	fc.block = bodyBlock
	fc.pushLoopTargets(exitBlock, bodyBlock)
	fc.emitBlock(l.Body)
	fc.popLoopTargets()
	if !fc.terminated() {
		fc.block.NewBr(bodyBlock)
	}

	fc.block = exitBlock
}

// emitReturn lowers `return;` / `return e;`.
func (fc *FunctionCtx) emitReturn(r *ast.ReturnStmt) {
	if r.Value == nil {
		fc.block.NewRet(nil)
		return
	}

	if fc.aggregateReturn {
		v := fc.emitExpr(r.Value)
		if !v.IsPointer() {
			report.ReportICE("aggregate return value did not lower to an address")
		}
		copySlots(fc.block, v.V, fc.retPtr, convType(fc.retType), typing.LayoutOf(fc.retType).Slots)
		fc.block.NewRet(nil)
		return
	}

	result := rvalue(fc, fc.emitExpr(r.Value))
	fc.block.NewRet(result.V)
}
