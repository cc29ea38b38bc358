// Package ast defines the typed AST the generator consumes.  The lexer,
// parser, and semantic analyzer that would normally produce this tree are
// out-of-scope collaborators (spec.md §1); this package defines the contract
// they are assumed to satisfy -- a closed sum type over node kinds, each
// node already carrying the type and value-category decisions the analyzer
// would have made, the same way chai/bootstrap/ast.Expr carries a resolved
// typing.DataType rather than requiring a second inference pass.
package ast

import (
	"github.com/Mr-H-06/Rcompiler/report"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// Category enumerates the value categories an expression can carry,
// mirroring chai/bootstrap/ast.LValue/RValue.
type Category int

const (
	RValue Category = iota
	LValue
)

// Expr is the parent interface for every expression node.  Implementations
// are listed exhaustively in expr.go; a type switch over Expr in the
// generator is expected to be exhaustive, and an unhandled case is an
// internal compiler error, not a silently-ignored node.
type Expr interface {
	Type() typing.Type
	Category() Category
	Position() *report.TextSpan
}

// ExprBase is embedded by every concrete Expr to supply Type and Category.
type ExprBase struct {
	Typ typing.Type
	Cat Category
	Pos *report.TextSpan
}

func (eb *ExprBase) Type() typing.Type         { return eb.Typ }
func (eb *ExprBase) Category() Category        { return eb.Cat }
func (eb *ExprBase) Position() *report.TextSpan { return eb.Pos }

// Stmt is the parent interface for every statement node.
type Stmt interface {
	Position() *report.TextSpan
}

// StmtBase is embedded by every concrete Stmt to supply Position.
type StmtBase struct {
	Pos *report.TextSpan
}

func (sb *StmtBase) Position() *report.TextSpan { return sb.Pos }
