package typedast

import (
	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/rawast"
)

// Build walks raw once, producing the typed program (spec.md §4.2). For
// each statement it queries idx by the statement's start line; for
// function-likes it partitions the line's annotations into param types,
// returns, generics, and leftover Type annotations.
func Build(raw rawast.Program, idx *annotation.AnnotationIndex) *Program {
	return &Program{
		File:  raw.File,
		Block: buildBlock(raw.Stmts, idx),
	}
}

func buildBlock(stmts []rawast.Stmt, idx *annotation.AnnotationIndex) Block {
	out := make([]Stmt, 0, len(stmts))
	for _, s := range stmts {
		out = append(out, buildStmt(s, idx))
	}
	return Block{Stmts: out}
}

func startLine(r rawast.Stmt) int {
	return r.Range().Start.Line
}

func buildFuncSig(line int, idx *annotation.AnnotationIndex) FuncSig {
	var leftover []annotation.Annotation
	for _, a := range idx.At(line) {
		if a.Usage == annotation.Type {
			leftover = append(leftover, a)
		}
	}
	return FuncSig{
		ParamTypes: idx.ParamTypes(line),
		Returns:    idx.Returns(line),
		Generics:   idx.Generics(line),
		Leftover:   leftover,
	}
}

func typeAnnotationsAt(line int, idx *annotation.AnnotationIndex) []annotation.Annotation {
	var out []annotation.Annotation
	for _, a := range idx.At(line) {
		if a.Usage == annotation.Type {
			out = append(out, a)
		}
	}
	return out
}

func buildStmt(s rawast.Stmt, idx *annotation.AnnotationIndex) Stmt {
	line := startLine(s)
	switch v := s.(type) {
	case rawast.LocalAssign:
		return LocalAssign{
			base:        base{Span: v.Range()},
			Names:       v.Names,
			Values:      buildExprs(v.Values, idx),
			Annotations: typeAnnotationsAt(line, idx),
			ClassHints:  idx.ClassHintsAt(line),
		}
	case rawast.Assign:
		return Assign{
			base:        base{Span: v.Range()},
			Targets:     buildExprs(v.Targets, idx),
			Values:      buildExprs(v.Values, idx),
			Annotations: typeAnnotationsAt(line, idx),
			ClassHints:  idx.ClassHintsAt(line),
		}
	case rawast.FunctionDecl:
		return FunctionDecl{
			base:     base{Span: v.Range()},
			Target:   buildExpr(v.Target, idx),
			IsMethod: v.IsMethod,
			Params:   v.Params,
			Variadic: v.Variadic,
			Sig:      buildFuncSig(line, idx),
			Body:     buildBlock(v.Body, idx),
		}
	case rawast.LocalFunctionDecl:
		return LocalFunctionDecl{
			base:     base{Span: v.Range()},
			Name:     v.Name,
			Params:   v.Params,
			Variadic: v.Variadic,
			Sig:      buildFuncSig(line, idx),
			Body:     buildBlock(v.Body, idx),
		}
	case rawast.If:
		branches := make([]IfBranch, len(v.Branches))
		for i, b := range v.Branches {
			branches[i] = IfBranch{Cond: buildExpr(b.Cond, idx), Body: buildBlock(b.Body, idx)}
		}
		return If{
			base:     base{Span: v.Range()},
			Branches: branches,
			Else:     buildBlock(v.Else, idx),
			HasElse:  v.Else != nil,
		}
	case rawast.While:
		return While{base: base{Span: v.Range()}, Cond: buildExpr(v.Cond, idx), Body: buildBlock(v.Body, idx)}
	case rawast.Repeat:
		return Repeat{base: base{Span: v.Range()}, Body: buildBlock(v.Body, idx), Cond: buildExpr(v.Cond, idx)}
	case rawast.NumericFor:
		return NumericFor{
			base:  base{Span: v.Range()},
			Var:   v.Var,
			Start: buildExpr(v.Start, idx),
			Stop:  buildExpr(v.Stop, idx),
			Step:  buildExpr(v.Step, idx),
			Body:  buildBlock(v.Body, idx),
		}
	case rawast.GenericFor:
		return GenericFor{
			base:  base{Span: v.Range()},
			Names: v.Names,
			Exprs: buildExprs(v.Exprs, idx),
			Body:  buildBlock(v.Body, idx),
		}
	case rawast.Do:
		return Do{base: base{Span: v.Range()}, Body: buildBlock(v.Body, idx)}
	case rawast.Return:
		return Return{base: base{Span: v.Range()}, Values: buildExprs(v.Values, idx)}
	case rawast.CallStmt:
		return CallStmt{base: base{Span: v.Range()}, Call: buildExpr(v.Call, idx)}
	case rawast.Goto:
		return Goto{base: base{Span: v.Range()}, Label: v.Label}
	case rawast.Label:
		return Label{base: base{Span: v.Range()}, Name: v.Name}
	case rawast.Break:
		return Break{base: base{Span: v.Range()}}
	default:
		return Unknown{base: base{Span: s.Range()}}
	}
}

func buildExprs(exprs []rawast.Expr, idx *annotation.AnnotationIndex) []Expr {
	out := make([]Expr, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, buildExpr(e, idx))
	}
	return out
}

func buildExpr(e rawast.Expr, idx *annotation.AnnotationIndex) Expr {
	if e == nil {
		return nil
	}
	switch v := e.(type) {
	case rawast.NilLit:
		return NilLit{base: base{Span: v.Range()}}
	case rawast.BoolLit:
		return BoolLit{base: base{Span: v.Range()}, Value: v.Value}
	case rawast.NumberLit:
		return NumberLit{base: base{Span: v.Range()}, Value: v.Value}
	case rawast.StringLit:
		return StringLit{base: base{Span: v.Range()}, Value: v.Value}
	case rawast.Name:
		return Name{base: base{Span: v.Range()}, Name: v.Name}
	case rawast.FieldAccess:
		return FieldAccess{base: base{Span: v.Range()}, Target: buildExpr(v.Target, idx), Field: v.Field}
	case rawast.Index:
		return Index{base: base{Span: v.Range()}, Target: buildExpr(v.Target, idx), Key: buildExpr(v.Key, idx)}
	case rawast.Unary:
		return Unary{base: base{Span: v.Range()}, Op: v.Op, Operand: buildExpr(v.Operand, idx)}
	case rawast.Binary:
		return Binary{base: base{Span: v.Range()}, Op: v.Op, Left: buildExpr(v.Left, idx), Right: buildExpr(v.Right, idx)}
	case rawast.AnonFunc:
		line := v.Range().Start.Line
		return AnonFunc{
			base:     base{Span: v.Range()},
			Params:   v.Params,
			Variadic: v.Variadic,
			Sig:      buildFuncSig(line, idx),
			Body:     buildBlock(v.Body, idx),
		}
	case rawast.Call:
		return Call{base: base{Span: v.Range()}, Callee: buildExpr(v.Callee, idx), Args: buildExprs(v.Args, idx)}
	case rawast.MethodCall:
		return MethodCall{base: base{Span: v.Range()}, Target: buildExpr(v.Target, idx), Method: v.Method, Args: buildExprs(v.Args, idx)}
	case rawast.TableCtor:
		fields := make([]TableField, len(v.Fields))
		for i, f := range v.Fields {
			fields[i] = buildTableField(f, idx)
		}
		return TableCtor{base: base{Span: v.Range()}, Fields: fields}
	case rawast.Paren:
		return Paren{base: base{Span: v.Range()}, Inner: buildExpr(v.Inner, idx)}
	default:
		return nil
	}
}

func buildTableField(f rawast.TableField, idx *annotation.AnnotationIndex) TableField {
	if f.Key == nil {
		return TableField{Value: buildExpr(f.Value, idx)}
	}
	if n, ok := f.Key.(rawast.Name); ok {
		return TableField{Key: n.Name, Value: buildExpr(f.Value, idx)}
	}
	return TableField{KeyExpr: buildExpr(f.Key, idx), Value: buildExpr(f.Value, idx)}
}
