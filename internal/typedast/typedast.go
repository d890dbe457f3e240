// Package typedast is the typed intermediate representation the
// checker walks (spec.md §3.5): the raw AST folded together with the
// annotations attributed to each statement's start line.
//
// Grounded on funxy/internal/ast node shapes (tagged struct-per-kind)
// and funxy/internal/analyzer/declarations*.go's single-pass
// construction style, adapted to fold in ---@ annotations instead of
// funxy's static type syntax.
package typedast

import (
	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/position"
	"github.com/typua-lang/typua/internal/types"
)

type Node interface {
	Range() position.Range
}

type Stmt interface {
	Node
	stmtNode()
}

type Expr interface {
	Node
	exprNode()
}

type base struct {
	Span position.Range
}

func (b base) Range() position.Range { return b.Span }

// Program is a Block of top-level Stmts.
type Program struct {
	File  string
	Block Block
}

// Block is an ordered sequence of statements.
type Block struct {
	Stmts []Stmt
}

// FuncSig bundles the pieces a function-like statement or expression
// partitions its annotations into (spec.md §4.2): per-parameter types,
// the ordered @return annotations, and any names introduced via
// ---@generics.
type FuncSig struct {
	ParamTypes map[string]types.AnnotatedType
	Returns    []annotation.Annotation
	Generics   []string
	// Leftover carries any Type-usage annotation on the same line that
	// isn't consumed as a param/return (e.g. a redundant ---@type on
	// the function's own line).
	Leftover []annotation.Annotation
}

// --- Statements ---

// LocalAssign is `local a, b = x, y`.
type LocalAssign struct {
	base
	Names       []string
	Values      []Expr
	Annotations []annotation.Annotation // Type-usage annotations at this line
	ClassHints  []string
}

func (LocalAssign) stmtNode() {}

// Assign is a non-local assignment `a.b, c = x, y`.
type Assign struct {
	base
	Targets     []Expr
	Values      []Expr
	Annotations []annotation.Annotation
	ClassHints  []string
}

func (Assign) stmtNode() {}

// FunctionDecl is `function NAME(...) ... end` or `function T:m(...) end`.
type FunctionDecl struct {
	base
	Target   Expr
	IsMethod bool
	Params   []string
	Variadic bool
	Sig      FuncSig
	Body     Block
}

func (FunctionDecl) stmtNode() {}

// LocalFunctionDecl is `local function NAME(...) ... end`.
type LocalFunctionDecl struct {
	base
	Name     string
	Params   []string
	Variadic bool
	Sig      FuncSig
	Body     Block
}

func (LocalFunctionDecl) stmtNode() {}

type IfBranch struct {
	Cond Expr
	Body Block
}

type If struct {
	base
	Branches []IfBranch
	Else     Block
	HasElse  bool
}

func (If) stmtNode() {}

type While struct {
	base
	Cond Expr
	Body Block
}

func (While) stmtNode() {}

type Repeat struct {
	base
	Body Block
	Cond Expr
}

func (Repeat) stmtNode() {}

type NumericFor struct {
	base
	Var   string
	Start Expr
	Stop  Expr
	Step  Expr
	Body  Block
}

func (NumericFor) stmtNode() {}

type GenericFor struct {
	base
	Names []string
	Exprs []Expr
	Body  Block
}

func (GenericFor) stmtNode() {}

type Do struct {
	base
	Body Block
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

type Break struct{ base }

func (Break) stmtNode() {}

type Unknown struct{ base }

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

// AnonFunc is an anonymous `function(...) ... end` expression.
type AnonFunc struct {
	base
	Params   []string
	Variadic bool
	Sig      FuncSig
	Body     Block
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

// TableField is one entry of a TableCtor (spec.md §4.7.7): an
// array-positional entry (Key == "") or a NAME/[expr] = value entry.
type TableField struct {
	Key      string // empty for array-positional entries
	KeyExpr  Expr   // set when the key itself is a computed expression
	Value    Expr
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
