package rawast

import "github.com/typua-lang/typua/internal/position"

// AtLine builds a single-line Range starting at column 1, spanning to
// endCol — a convenience for hand-building fixtures in tests, where
// exact columns rarely matter but start line (used for annotation
// attribution, spec.md §4.2) does.
func AtLine(line int, endCol int) position.Range {
	if endCol < 1 {
		endCol = 1
	}
	return position.Range{
		Start: position.Position{Line: line, Column: 1},
		End:   position.Position{Line: line, Column: endCol},
	}
}

// NameAt builds a Name expression at the given line.
func NameAt(line int, name string) Name {
	return Name{base: base{Span: AtLine(line, len(name)+1)}, Name: name}
}

// NumberAt builds a NumberLit expression at the given line.
func NumberAt(line int, v float64) NumberLit {
	return NumberLit{base: base{Span: AtLine(line, 1)}, Value: v}
}

// StringAt builds a StringLit expression at the given line.
func StringAt(line int, v string) StringLit {
	return StringLit{base: base{Span: AtLine(line, len(v)+2)}, Value: v}
}

// LocalAssignAt builds a LocalAssign statement starting at line.
func LocalAssignAt(line int, names []string, values ...Expr) LocalAssign {
	return LocalAssign{base: base{Span: AtLine(line, 1)}, Names: names, Values: values}
}

// LocalFunctionDeclAt builds a LocalFunctionDecl statement starting at line.
func LocalFunctionDeclAt(line int, name string, params []string, body ...Stmt) LocalFunctionDecl {
	return LocalFunctionDecl{base: base{Span: AtLine(line, 1)}, Name: name, Params: params, Body: body}
}

// FunctionDeclAt builds a FunctionDecl statement starting at line.
func FunctionDeclAt(line int, target Expr, params []string, body ...Stmt) FunctionDecl {
	return FunctionDecl{base: base{Span: AtLine(line, 1)}, Target: target, Params: params, Body: body}
}

// ReturnAt builds a Return statement starting at line.
func ReturnAt(line int, values ...Expr) Return {
	return Return{base: base{Span: AtLine(line, 1)}, Values: values}
}

// IfAt builds an If statement starting at line with a single branch.
func IfAt(line int, cond Expr, body ...Stmt) If {
	return If{base: base{Span: AtLine(line, 1)}, Branches: []IfBranch{{Cond: cond, Body: body}}}
}
