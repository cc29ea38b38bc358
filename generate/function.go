package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/value"

	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/report"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// varInfo is the per-local entry of FunctionCtx.vars: a source name's
// storage location plus enough metadata to know how to read, write, and
// pass it.  Mirrors ir.h's FunctionCtx::VarInfo.
type varInfo struct {
	typ          typing.Type
	layout       typing.Layout
	ptr          value.Value // the alloca (or, for an aggregate param, the incoming pointer itself)
	isRefBinding bool         // true only for a `let r = &x` alias binding: ptr's pointee is itself a pointer
}

// FunctionCtx is the per-function mutable state threaded through
// statement and expression lowering: the current insertion block, the
// break/continue target stack, and the local symbol table.  Discarded
// once the function's body has been emitted.
type FunctionCtx struct {
	emitter *ModuleEmitter
	fn      *ir.Func
	def     *ast.FuncDef

	block *ir.Block
	entry *ir.Block

	vars map[string]*varInfo

	breakTargets    []*ir.Block
	continueTargets []*ir.Block

	aggregateReturn bool
	returnsVoid     bool
	retType         typing.Type
	retPtr          value.Value // the sret parameter, when aggregateReturn
}

// terminated reports whether the current block already ends in a
// terminator: further instructions must be suppressed until a fresh
// label is opened (spec's dead-code-suppression invariant).
func (fc *FunctionCtx) terminated() bool {
	return fc.block.Term != nil
}

// appendBlock adds a new, empty basic block to the enclosing function. It
// does not make the new block current.
func (fc *FunctionCtx) appendBlock(prefix string) *ir.Block {
	return fc.fn.NewBlock(fmt.Sprintf("%s%d", prefix, len(fc.fn.Blocks)))
}

func (fc *FunctionCtx) pushLoopTargets(breakTo, continueTo *ir.Block) {
	fc.breakTargets = append(fc.breakTargets, breakTo)
	fc.continueTargets = append(fc.continueTargets, continueTo)
}

func (fc *FunctionCtx) popLoopTargets() {
	fc.breakTargets = fc.breakTargets[:len(fc.breakTargets)-1]
	fc.continueTargets = fc.continueTargets[:len(fc.continueTargets)-1]
}

func (fc *FunctionCtx) currentBreakTarget() *ir.Block {
	if len(fc.breakTargets) == 0 {
		report.ReportICE("break outside of a loop")
	}
	return fc.breakTargets[len(fc.breakTargets)-1]
}

func (fc *FunctionCtx) currentContinueTarget() *ir.Block {
	if len(fc.continueTargets) == 0 {
		report.ReportICE("continue outside of a loop")
	}
	return fc.continueTargets[len(fc.continueTargets)-1]
}

// defineVar records a fresh local binding.
func (fc *FunctionCtx) defineVar(name string, v *varInfo) {
	fc.vars[name] = v
}

// lookupVar resolves a local or parameter by name.
func (fc *FunctionCtx) lookupVar(name string) *varInfo {
	v, ok := fc.vars[name]
	if !ok {
		report.ReportICE("undefined local %q reached code generation", name)
	}
	return v
}

// emitFunctionBody emits the full definition (entry block, parameter
// bindings, lowered body, default terminator) for a function that was
// already declared by declareFunc.
func (me *ModuleEmitter) emitFunctionBody(def *ast.FuncDef) {
	llFunc := me.funcs[def.Name]
	sig, _ := me.analyzer.FuncSig(def.Name)

	aggregateReturn := sig.ReturnType != nil && typing.IsAggregate(sig.ReturnType)
	llFunc.FuncAttrs = append(llFunc.FuncAttrs, enum.FuncAttrNoUnwind)

	entry := llFunc.NewBlock("entry")

	fc := &FunctionCtx{
		emitter:         me,
		fn:              llFunc,
		def:             def,
		block:           entry,
		entry:           entry,
		vars:            make(map[string]*varInfo),
		aggregateReturn: aggregateReturn,
		returnsVoid:     sig.ReturnType == nil,
		retType:         sig.ReturnType,
	}

	llParams := llFunc.Params
	if aggregateReturn {
		fc.retPtr = llParams[0]
		llParams = llParams[1:]
	}

	for i, p := range def.Params {
		llParam := llParams[i]

		if typing.IsAggregate(p.Type) {
			// An aggregate parameter already IS an address of its backing
			// slots; there is no separate scalar "value" form to alloca.
			fc.defineVar(p.Name, &varInfo{typ: p.Type, layout: typing.LayoutOf(p.Type), ptr: llParam})
			continue
		}

		// Every other parameter -- including a `&T`/`&mut T` reference,
		// which is just a pointer-valued scalar at this level -- gets a
		// fresh alloca so it can be reassigned like any other mutable
		// local.
		local := entry.NewAlloca(convType(p.Type))
		entry.NewStore(llParam, local)
		fc.defineVar(p.Name, &varInfo{typ: p.Type, layout: typing.LayoutOf(p.Type), ptr: local})
	}

	for _, stmt := range def.Body.Stmts {
		if fc.terminated() {
			break
		}
		fc.emitStmt(stmt)
	}

	if !fc.terminated() {
		fc.emitDefaultTerminator()
	}
}

// emitDefaultTerminator closes out a function body whose last statement
// did not already terminate the block: `ret void` for a void function or
// an aggregate-returning (sret) one, `unreachable` otherwise (a defensive
// fallback -- a well-typed program
// always returns on every path, but the front end is out of scope here).
func (fc *FunctionCtx) emitDefaultTerminator() {
	if fc.returnsVoid || fc.aggregateReturn {
		fc.block.NewRet(nil)
		return
	}
	fc.block.NewUnreachable()
}
