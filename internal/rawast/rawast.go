// Package rawast defines the contract this module expects from an
// external Lua-dialect parser (spec.md §1: "the concrete syntactic
// parser producing the raw AST" is an external collaborator). It is not
// a parser itself — internal/typedast consumes these shapes to build
// the annotated, checked representation.
//
// Grounded on funxy/internal/ast/ast_core.go's Node/Statement/Expression
// interface split and one-struct-per-kind layout, simplified to
// stmtNode()/exprNode() marker methods instead of the teacher's
// Accept/Visitor double dispatch:
// the typed AST builder type-switches on these nodes exactly once per
// tree, so a visitor's main benefit (multiple independent passes reusing
// dispatch) doesn't pay for itself here.
package rawast

import "github.com/typua-lang/typua/internal/position"

// Node is the base contract every raw AST node satisfies.
type Node interface {
	Range() position.Range
}

// Stmt is a raw statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Expr is a raw expression node.
type Expr interface {
	Node
	exprNode()
}

// Program is the root of a parsed file.
type Program struct {
	File  string
	Stmts []Stmt
}

func (p Program) Range() position.Range {
	return position.MergeAll(rangesOfStmts(p.Stmts)...)
}

func rangesOfStmts(stmts []Stmt) []position.Range {
	out := make([]position.Range, len(stmts))
	for i, s := range stmts {
		out[i] = s.Range()
	}
	return out
}

// base embeds the common Range plumbing so each concrete node only
// needs to set its own span once.
type base struct {
	Span position.Range
}

func (b base) Range() position.Range { return b.Span }

// --- Statements ---

type LocalAssign struct {
	base
	Names  []string
	Values []Expr
}

func (LocalAssign) stmtNode() {}

type Assign struct {
	base
	Targets []Expr
	Values  []Expr
}

func (Assign) stmtNode() {}

type FunctionDecl struct {
	base
	Target   Expr // Name or FieldAccess being assigned the function
	IsMethod bool // true for "function T:m(...)"; Params gets an implicit self
	Params   []string
	Variadic bool
	Body     []Stmt
}

func (FunctionDecl) stmtNode() {}

type LocalFunctionDecl struct {
	base
	Name     string
	Params   []string
	Variadic bool
	Body     []Stmt
}

func (LocalFunctionDecl) stmtNode() {}

type IfBranch struct {
	Cond Expr
	Body []Stmt
}

type If struct {
	base
	Branches []IfBranch
	Else     []Stmt
}

func (If) stmtNode() {}

type While struct {
	base
	Cond Expr
	Body []Stmt
}

func (While) stmtNode() {}

type Repeat struct {
	base
	Body []Stmt
	Cond Expr
}

func (Repeat) stmtNode() {}

type NumericFor struct {
	base
	Var   string
	Start Expr
	Stop  Expr
	Step  Expr // nil when omitted
	Body  []Stmt
}

func (NumericFor) stmtNode() {}

type GenericFor struct {
	base
	Names []string
	Exprs []Expr
	Body  []Stmt
}

func (GenericFor) stmtNode() {}

type Do struct {
	base
	Body []Stmt
}

func (Do) stmtNode() {}

type Return struct {
	base
	Values []Expr
}

func (Return) stmtNode() {}

type CallStmt struct {
	base
	Call Expr
}

func (CallStmt) stmtNode() {}

type Goto struct {
	base
	Label string
}

func (Goto) stmtNode() {}

type Label struct {
	base
	Name string
}

func (Label) stmtNode() {}

type Break struct {
	base
}

func (Break) stmtNode() {}

// Unknown is a statement kind the checker does not model in detail
// (spec.md §3.5's "unknown" variant): parsed but structurally opaque.
type Unknown struct {
	base
}

func (Unknown) stmtNode() {}

// --- Expressions ---

type NilLit struct{ base }

func (NilLit) exprNode() {}

type BoolLit struct {
	base
	Value bool
}

func (BoolLit) exprNode() {}

type NumberLit struct {
	base
	Value float64
}

func (NumberLit) exprNode() {}

type StringLit struct {
	base
	Value string
}

func (StringLit) exprNode() {}

type Name struct {
	base
	Name string
}

func (Name) exprNode() {}

type FieldAccess struct {
	base
	Target Expr
	Field  string
}

func (FieldAccess) exprNode() {}

type Index struct {
	base
	Target Expr
	Key    Expr
}

func (Index) exprNode() {}

type Unary struct {
	base
	Op      string
	Operand Expr
}

func (Unary) exprNode() {}

type Binary struct {
	base
	Op    string
	Left  Expr
	Right Expr
}

func (Binary) exprNode() {}

type AnonFunc struct {
	base
	Params   []string
	Variadic bool
	Body     []Stmt
}

func (AnonFunc) exprNode() {}

type Call struct {
	base
	Callee Expr
	Args   []Expr
}

func (Call) exprNode() {}

type MethodCall struct {
	base
	Target Expr
	Method string
	Args   []Expr
}

func (MethodCall) exprNode() {}

// TableField is one entry of a TableCtor: either a positional array
// entry (Key == nil) or a NAME = value / [expr] = value entry.
type TableField struct {
	Key   Expr // nil for array-style entries
	Value Expr
}

type TableCtor struct {
	base
	Fields []TableField
}

func (TableCtor) exprNode() {}

type Paren struct {
	base
	Inner Expr
}

func (Paren) exprNode() {}
