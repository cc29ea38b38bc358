package ast

import "github.com/Mr-H-06/Rcompiler/typing"

// Param is one formal parameter of a function definition.
type Param struct {
	Name  string
	Type  typing.Type
	ByRef bool // true for `&T`/`&mut T` formal parameters
}

// FuncDef is a top-level function definition.  Body is nil for a function
// that is only declared in this translation unit: the generator emits a
// declaration from its full signature.  Only a callee with no FuncDef at
// all gets a prototype synthesized from a call's arity.
type FuncDef struct {
	Name       string
	Params     []Param
	ReturnType typing.Type
	Body       *Block
}

// Program is the root of the typed AST: the full set of function
// definitions in a translation unit, in declaration order (spec.md §5:
// "function emission order follows AST declaration order").
type Program struct {
	Funcs []*FuncDef
}
