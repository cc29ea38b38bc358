package ast

// IntLit is an integer literal.
type IntLit struct {
	ExprBase
	Value int64
}

// BoolLit is a boolean literal.
type BoolLit struct {
	ExprBase
	Value bool
}

// Ident is a reference to a local variable or function parameter by name.
// Its Category is always LValue: every named binding is addressable,
// exactly as chai/bootstrap/sem.HIRIdentifier.Category is hard-wired to
// LValue.
type Ident struct {
	ExprBase
	Name string
}

// BinOp is a binary operator application.
type BinOp struct {
	ExprBase
	Op       string // "+", "-", "*", "/", "%", "==", "!=", "<", "<=", ">", ">=", "&&", "||"
	Lhs, Rhs Expr
}

// UnaryOp is a unary operator application: "-" (negate) or "!" (logical
// not).
type UnaryOp struct {
	ExprBase
	Op      string
	Operand Expr
}

// AddrOf is `&e` or `&mut e`.
type AddrOf struct {
	ExprBase
	Operand Expr
	Mut     bool
}

// Deref is `*e`: an explicit one-level pointer dereference.
type Deref struct {
	ExprBase
	Operand Expr
}

// Call is a function call, resolved by name.  Arguments that the analyzer
// determined to be aggregate-typed have already been identified as such by
// Expr.Type(); the generator decides by-value vs. by-reference passing
// itself (spec.md §4.2).
type Call struct {
	ExprBase
	Callee string
	Args   []Expr
}

// TupleField is `tuple.N`: positional tuple field access.
type TupleField struct {
	ExprBase
	Root  Expr
	Index int
}

// StructField is `value.name`: named struct field access.  FieldIndex is
// resolved by the analyzer ahead of time (spec.md §6: "struct/tuple field
// offsets (or field list)" is a required analyzer query).
type StructField struct {
	ExprBase
	Root       Expr
	FieldName  string
	FieldIndex int
}

// IndexExpr is `arr[i]`.
type IndexExpr struct {
	ExprBase
	Root  Expr
	Index Expr
}

// ArrayLit is `[e0, e1, ...]`.
type ArrayLit struct {
	ExprBase
	Elems []Expr
}

// TupleLit is `(e0, e1, ...)`.
type TupleLit struct {
	ExprBase
	Elems []Expr
}

// StructLit is `Name { field: e, ... }`.  Fields are given in declaration
// order (matching typing.StructType.Fields), not necessarily source order.
type StructLit struct {
	ExprBase
	Name   string
	Fields []Expr
}
