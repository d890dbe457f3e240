package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

func TestGenericFunctionInstantiatedPerCallSite(t *testing.T) {
	c := newTestChecker()
	decl := typedast.LocalFunctionDecl{
		Name:   "identity",
		Params: []string{"x"},
		Sig: typedast.FuncSig{
			Generics:   []string{"T"},
			ParamTypes: map[string]types.AnnotatedType{"x": {Raw: "T", Kind: types.Custom{Name: "T"}}},
			Returns:    []annotation.Annotation{{AnnotatedType: types.AnnotatedType{Raw: "T", Kind: types.Custom{Name: "T"}}}},
		},
		Body: typedast.Block{Stmts: []typedast.Stmt{
			typedast.Return{Values: []typedast.Expr{typedast.Name{Name: "x"}}},
		}},
	}
	c.checkLocalFunctionDecl(decl)
	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected the generic function body to type-check cleanly, got %v", diags)
	}

	numberCall := typedast.Call{Callee: typedast.Name{Name: "identity"}, Args: []typedast.Expr{typedast.NumberLit{Value: 1}}}
	if result := c.checkCall(numberCall); result != types.Number {
		t.Fatalf("expected identity(1) to infer number, got %s", result)
	}

	stringCall := typedast.Call{Callee: typedast.Name{Name: "identity"}, Args: []typedast.Expr{typedast.StringLit{Value: "a"}}}
	if result := c.checkCall(stringCall); result != types.String {
		t.Fatalf("expected identity(\"a\") to infer string independently of the prior call, got %s", result)
	}

	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected no ParamTypeMismatch for either generic call, got %v", diags)
	}
}

func TestCheckArgsReportsParamTypeMismatch(t *testing.T) {
	c := newTestChecker()
	fn := types.Func{Params: types.FixedParams(types.Number), Returns: types.FixedParams(types.Nil)}
	args := []typedast.Expr{typedast.StringLit{Value: "oops"}}
	c.checkArgs(args, c.inferExprs(args), fn.Params)

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.ParamTypeMismatch {
		t.Fatalf("expected one ParamTypeMismatch, got %v", diags)
	}
}

func TestCheckReturnArityMismatch(t *testing.T) {
	c := newTestChecker()
	c.returnExpectations = append(c.returnExpectations, returnExpectation{sig: typedast.FuncSig{
		Returns: []annotation.Annotation{
			{AnnotatedType: types.AnnotatedType{Raw: "number", Kind: types.Number}},
			{AnnotatedType: types.AnnotatedType{Raw: "string", Kind: types.String}},
		},
	}})
	c.checkReturn(typedast.Return{Values: []typedast.Expr{typedast.NumberLit{Value: 1}}})

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.ReturnTypeMismatch {
		t.Fatalf("expected one arity ReturnTypeMismatch, got %v", diags)
	}
}

func TestCheckReturnPositionalMismatch(t *testing.T) {
	c := newTestChecker()
	c.returnExpectations = append(c.returnExpectations, returnExpectation{sig: typedast.FuncSig{
		Returns: []annotation.Annotation{
			{Name: "ok", AnnotatedType: types.AnnotatedType{Raw: "boolean", Kind: types.Boolean}},
		},
	}})
	c.checkReturn(typedast.Return{Values: []typedast.Expr{typedast.NumberLit{Value: 1}}})

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.ReturnTypeMismatch {
		t.Fatalf("expected one positional ReturnTypeMismatch, got %v", diags)
	}
}
