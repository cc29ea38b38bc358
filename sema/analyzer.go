// Package sema defines the handle the generator queries for type and symbol
// information that is not already attached directly to an AST node.  The
// semantic analyzer itself -- type checking, inference, name resolution --
// is an out-of-scope collaborator (spec.md §1); this package is its
// contract, plus the minimal concrete implementation needed to drive this
// module's own tests, which build already-typed programs by hand rather
// than running a real front end.
package sema

import (
	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// FuncSig is a resolved function signature: spec.md §6 lists "resolved
// function signature (including return type)" as a required analyzer
// query.
type FuncSig struct {
	Name       string
	Params     []typing.Type
	ParamByRef []bool
	ReturnType typing.Type
	Defined    bool
}

// Analyzer is the handle the generator is given alongside the AST root.  It
// answers the four query classes spec.md §6 names: expression type and
// lvalue-ness (both already embedded in every ast.Expr via ExprBase, so
// they are exposed here only for callers that prefer going through the
// analyzer uniformly), function signatures, and aggregate field layout.
type Analyzer struct {
	sigs map[string]*FuncSig
}

// NewAnalyzer builds an Analyzer from a fully-typed Program.  In the full
// compiler this step is subsumed by semantic analysis itself; here it is
// just an index over the signatures analysis already attached to the tree.
func NewAnalyzer(prog *ast.Program) *Analyzer {
	a := &Analyzer{sigs: make(map[string]*FuncSig)}

	for _, fn := range prog.Funcs {
		params := make([]typing.Type, len(fn.Params))
		byRef := make([]bool, len(fn.Params))
		for i, p := range fn.Params {
			params[i] = p.Type
			byRef[i] = p.ByRef
		}

		a.sigs[fn.Name] = &FuncSig{
			Name:       fn.Name,
			Params:     params,
			ParamByRef: byRef,
			ReturnType: fn.ReturnType,
			Defined:    fn.Body != nil,
		}
	}

	return a
}

// FuncSig looks up a resolved function signature by name.
func (a *Analyzer) FuncSig(name string) (*FuncSig, bool) {
	sig, ok := a.sigs[name]
	return sig, ok
}

// TypeOf returns the type of an expression.  Present for symmetry with the
// spec's "required analyzer queries" list; every ast.Expr already carries
// its own resolved type, so this simply forwards to it.
func (a *Analyzer) TypeOf(e ast.Expr) typing.Type {
	return e.Type()
}

// IsLValue reports whether an expression denotes addressable storage.
func (a *Analyzer) IsLValue(e ast.Expr) bool {
	return e.Category() == ast.LValue
}

// FieldOffset resolves the slot offset of field index idx within an
// aggregate type.
func (a *Analyzer) FieldOffset(t typing.Type, idx int) int {
	switch v := t.(type) {
	case *typing.TupleType:
		return typing.TupleFieldOffset(v, idx)
	case *typing.StructType:
		return typing.StructFieldOffset(v, idx)
	default:
		return 0
	}
}
