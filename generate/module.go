// Package generate lowers a typed RX AST into an LLVM IR module using
// github.com/llir/llvm's object model: callers build up *ir.Module,
// *ir.Func, and *ir.Block values directly rather than assembling IR text by
// hand, and print the finished module with its own String method.
//
// The three module-scope globals the source implementation carries
// (declared-arity map, defined-function set, analyzer handle) are
// collected into one ModuleEmitter value threaded explicitly through every
// emission routine, per the "replace global mutable state with an explicit
// aggregate" guidance for this kind of port.
package generate

import (
	"fmt"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"

	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/report"
	"github.com/Mr-H-06/Rcompiler/sema"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// BuildProfile parameterizes the target-dependent text emitted into every
// module: the fixed RISC-V triple/datalayout the generator defaults to,
// overridable per build (the test harness rewrites both to the host triple
// before invoking llc, which is exactly why these are fields here and not
// string literals in the emitter).
type BuildProfile struct {
	Triple     string
	DataLayout string
}

// DefaultBuildProfile is the target this core emits against absent an
// override: 64-bit RISC-V, bare metal.
func DefaultBuildProfile() BuildProfile {
	return BuildProfile{
		Triple:     "riscv64-unknown-elf",
		DataLayout: "e-m:e-p:64:64-i64:64-i128:128-n64-S128",
	}
}

// builtinSig is one of the five runtime functions every module declares.
type builtinSig struct {
	name       string
	ret        types.Type
	params     []types.Type
	noReturn   bool
}

var builtins = []builtinSig{
	{name: "printInt", ret: types.I64, params: []types.Type{types.I64}},
	{name: "printlnInt", ret: types.I64, params: []types.Type{types.I64}},
	{name: "printlnStr", ret: types.I64, params: []types.Type{types.NewPointer(types.I8)}},
	{name: "getInt", ret: types.I64},
	{name: "exit_rt", ret: types.Void, params: []types.Type{types.I64}, noReturn: true},
}

// ModuleEmitter is the process-wide state for one compilation: the module
// under construction, the analyzer handle used for type queries, and the
// bookkeeping needed to synthesize prototypes for callees that are
// referenced but never defined in this translation unit.
type ModuleEmitter struct {
	mod      *ir.Module
	analyzer *sema.Analyzer
	profile  BuildProfile

	// declaredArity records, for every callee name seen at a call site
	// before its definition (or never defined at all), the argument count
	// the call used -- enough to synthesize an all-i64 prototype for it.
	declaredArity map[string]int

	// funcs maps a function name to its *ir.Func, whether defined in this
	// unit or only forward-declared from arity.
	funcs map[string]*ir.Func

	// defined records which names got a real body, distinguishing them
	// from arity-only prototypes when a later definition arrives.
	defined map[string]bool

	builtinFuncs map[string]*ir.Func
}

// NewModuleEmitter constructs an emitter for a single translation unit.
func NewModuleEmitter(analyzer *sema.Analyzer, profile BuildProfile) *ModuleEmitter {
	mod := ir.NewModule()
	mod.TargetTriple = profile.Triple
	mod.DataLayout = profile.DataLayout

	return &ModuleEmitter{
		mod:           mod,
		analyzer:      analyzer,
		profile:       profile,
		declaredArity: make(map[string]int),
		funcs:         make(map[string]*ir.Func),
		defined:       make(map[string]bool),
		builtinFuncs:  make(map[string]*ir.Func),
	}
}

// Generate lowers a full program into the emitter's module and returns it.
// Any unsupported input panics through report.ReportICE, per this core's
// error policy: no local recovery, the caller is expected to wrap the call
// in report.CatchErrors.  An out-of-range literal array index is the one
// diagnostic recorded with report.ReportCompileError instead of panicking.
func (me *ModuleEmitter) Generate(prog *ast.Program) *ir.Module {
	me.declareBuiltins()

	// First pass: register every defined function's real signature so
	// forward calls within the same translation unit resolve to the
	// correctly-typed prototype instead of an i64-only fallback.
	for _, fn := range prog.Funcs {
		me.declareFunc(fn)
	}

	// Second pass: emit bodies in AST declaration order (spec's ordering
	// invariant -- function emission order follows declaration order).
	for _, fn := range prog.Funcs {
		if fn.Body != nil {
			me.emitFunctionBody(fn)
		}
	}

	return me.mod
}

// declareBuiltins emits `declare` prototypes for the five runtime
// functions every generated module links against.
func (me *ModuleEmitter) declareBuiltins() {
	for _, b := range builtins {
		f := me.mod.NewFunc(b.name, b.ret, paramsOf(b.params)...)
		f.Linkage = enum.LinkageExternal
		if b.noReturn {
			f.FuncAttrs = append(f.FuncAttrs, enum.FuncAttrNoReturn)
		}
		me.builtinFuncs[b.name] = f
		me.funcs[b.name] = f
	}
}

func paramsOf(types_ []types.Type) []*ir.Param {
	params := make([]*ir.Param, len(types_))
	for i, t := range types_ {
		params[i] = ir.NewParam("", t)
	}
	return params
}

// declareFunc registers name (with its real signature) in funcs.  Generate
// declares every function before emitting any body, so calls to a
// function of this unit resolve to this signature, never to an
// arity-synthesized prototype.
func (me *ModuleEmitter) declareFunc(fn *ast.FuncDef) {
	sig, ok := me.analyzer.FuncSig(fn.Name)
	if !ok {
		report.ReportICE("declareFunc: %s has no resolved signature", fn.Name)
	}

	aggregateReturn := sig.ReturnType != nil && typing.IsAggregate(sig.ReturnType)

	var params []*ir.Param
	if aggregateReturn {
		params = append(params, ir.NewParam("sret", types.NewPointer(convType(sig.ReturnType))))
	}
	for i, p := range sig.Params {
		pt := convType(p)
		// An aggregate parameter is always passed as the address of its
		// backing slots, regardless of ParamByRef -- convType already gives
		// the raw `[N x i64]` shape for an aggregate, so it needs the extra
		// pointer wrap here. A reference-typed parameter's convType is
		// already a pointer and needs no further wrapping.
		if typing.IsAggregate(p) || (sig.ParamByRef[i] && !typeIsRef(p)) {
			pt = types.NewPointer(pt)
		}
		params = append(params, ir.NewParam(fmt.Sprintf("a%d", i), pt))
	}

	retType := types.Type(types.Void)
	if !aggregateReturn && sig.ReturnType != nil {
		retType = convType(sig.ReturnType)
	}

	llFunc := me.mod.NewFunc(fn.Name, retType, params...)
	llFunc.Linkage = enum.LinkageExternal
	me.funcs[fn.Name] = llFunc
	me.defined[fn.Name] = fn.Body != nil
}

// resolveCallee returns the *ir.Func for a call, synthesizing an all-i64
// prototype keyed on arity when the callee has no declared signature at
// all -- "undefined-but-declared callees get a prototype synthesized from
// their arity in the module preamble".
func (me *ModuleEmitter) resolveCallee(name string, argc int) *ir.Func {
	if f, ok := me.funcs[name]; ok {
		return f
	}

	me.declaredArity[name] = argc

	params := make([]*ir.Param, argc)
	for i := range params {
		params[i] = ir.NewParam(fmt.Sprintf("a%d", i), types.I64)
	}

	llFunc := me.mod.NewFunc(name, types.I64, params...)
	llFunc.Linkage = enum.LinkageExternal
	me.funcs[name] = llFunc
	return llFunc
}
