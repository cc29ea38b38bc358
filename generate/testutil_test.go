package generate

import (
	"github.com/Mr-H-06/Rcompiler/ast"
	"github.com/Mr-H-06/Rcompiler/typing"
)

// Hand-built AST constructors standing in for the out-of-scope lexer,
// parser, and semantic analyzer: every node below already carries the
// resolved type and value category a real front end would have attached.

func rvBase(t typing.Type) ast.ExprBase { return ast.ExprBase{Typ: t, Cat: ast.RValue} }
func lvBase(t typing.Type) ast.ExprBase { return ast.ExprBase{Typ: t, Cat: ast.LValue} }

func intLit(v int64) *ast.IntLit { return &ast.IntLit{ExprBase: rvBase(typing.Int), Value: v} }
func boolLit(v bool) *ast.BoolLit { return &ast.BoolLit{ExprBase: rvBase(typing.Bool), Value: v} }

func ident(name string, t typing.Type) *ast.Ident {
	return &ast.Ident{ExprBase: lvBase(t), Name: name}
}

func binOp(op string, t typing.Type, lhs, rhs ast.Expr) *ast.BinOp {
	return &ast.BinOp{ExprBase: rvBase(t), Op: op, Lhs: lhs, Rhs: rhs}
}

func unaryOp(op string, t typing.Type, operand ast.Expr) *ast.UnaryOp {
	return &ast.UnaryOp{ExprBase: rvBase(t), Op: op, Operand: operand}
}

func addrOf(mut bool, operand ast.Expr) *ast.AddrOf {
	return &ast.AddrOf{
		ExprBase: rvBase(&typing.RefType{Elem: operand.Type(), Mut: mut}),
		Operand:  operand,
		Mut:      mut,
	}
}

func deref(operand ast.Expr) *ast.Deref {
	rt := operand.Type().(*typing.RefType)
	return &ast.Deref{ExprBase: lvBase(rt.Elem), Operand: operand}
}

func call(name string, t typing.Type, args ...ast.Expr) *ast.Call {
	return &ast.Call{ExprBase: rvBase(t), Callee: name, Args: args}
}

func tupleField(root ast.Expr, idx int, t typing.Type) *ast.TupleField {
	return &ast.TupleField{ExprBase: lvBase(t), Root: root, Index: idx}
}

func indexExpr(root, idx ast.Expr, t typing.Type) *ast.IndexExpr {
	return &ast.IndexExpr{ExprBase: lvBase(t), Root: root, Index: idx}
}

func arrayLit(t typing.Type, elems ...ast.Expr) *ast.ArrayLit {
	return &ast.ArrayLit{ExprBase: rvBase(t), Elems: elems}
}

func tupleLit(t typing.Type, elems ...ast.Expr) *ast.TupleLit {
	return &ast.TupleLit{ExprBase: rvBase(t), Elems: elems}
}

func block(stmts ...ast.Stmt) *ast.Block { return &ast.Block{Stmts: stmts} }

func exprStmt(e ast.Expr) *ast.ExprStmt { return &ast.ExprStmt{X: e} }

func letStmt(name string, t typing.Type, mut bool, init ast.Expr) *ast.LetStmt {
	return &ast.LetStmt{Name: name, Type: t, Init: init, Mut: mut}
}

func letRef(name string, init ast.Expr) *ast.LetStmt {
	return &ast.LetStmt{Name: name, Init: init, IsRef: true}
}

func assignStmt(lhs, rhs ast.Expr) *ast.AssignStmt {
	return &ast.AssignStmt{Lhs: lhs, Rhs: rhs}
}

func ifStmt(cond ast.Expr, then *ast.Block, els *ast.Block) *ast.IfStmt {
	return &ast.IfStmt{Arms: []ast.CondArm{{Cond: cond, Body: then}}, Else: els}
}

func whileStmt(cond ast.Expr, body *ast.Block) *ast.WhileStmt {
	return &ast.WhileStmt{Cond: cond, Body: body}
}

func breakStmt() *ast.BreakStmt { return &ast.BreakStmt{} }

func returnStmt(e ast.Expr) *ast.ReturnStmt { return &ast.ReturnStmt{Value: e} }

func param(name string, t typing.Type, byRef bool) ast.Param {
	return ast.Param{Name: name, Type: t, ByRef: byRef}
}

func funcDef(name string, params []ast.Param, ret typing.Type, body *ast.Block) *ast.FuncDef {
	return &ast.FuncDef{Name: name, Params: params, ReturnType: ret, Body: body}
}
