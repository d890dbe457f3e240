package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// TestScenarioALocalTypeMismatch: `---@type number` / `local value = "oops"`
// reports one AssignTypeMismatch.
func TestScenarioALocalTypeMismatch(t *testing.T) {
	prog := &typedast.Program{Block: typedast.Block{Stmts: []typedast.Stmt{
		typedast.LocalAssign{
			Names:  []string{"value"},
			Values: []typedast.Expr{typedast.StringLit{Value: "oops"}},
			Annotations: []annotation.Annotation{
				{Usage: annotation.Type, Name: "value", AnnotatedType: types.AnnotatedType{Raw: "number", Kind: types.Number}},
			},
		},
	}}}
	result := Check("scenario_a.lua", types.NewRegistry(), prog)
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != diagnostics.AssignTypeMismatch {
		t.Fatalf("expected one AssignTypeMismatch, got %v", result.Diagnostics)
	}
}

// TestScenarioDExactClassUndefinedField: assigning an unknown field on an
// exact class value reports UndefinedField.
func TestScenarioDExactClassUndefinedField(t *testing.T) {
	registry := types.NewRegistry()
	class := types.NewClass("Point")
	class.Exact = true
	class.AddField("x", types.Number)
	class.AddField("y", types.Number)
	registry.Classes["Point"] = class

	prog := &typedast.Program{Block: typedast.Block{Stmts: []typedast.Stmt{
		typedast.LocalAssign{
			Names:      []string{"p"},
			Values:     []typedast.Expr{typedast.TableCtor{}},
			ClassHints: []string{"Point"},
		},
		typedast.Assign{
			Targets: []typedast.Expr{typedast.FieldAccess{Target: typedast.Name{Name: "p"}, Field: "z"}},
			Values:  []typedast.Expr{typedast.NumberLit{Value: 1}},
		},
	}}}
	result := Check("scenario_d.lua", registry, prog)
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != diagnostics.UndefinedField {
		t.Fatalf("expected one UndefinedField, got %v", result.Diagnostics)
	}
}

// TestScenarioEMultiReturnArityMismatch: a function annotated to return two
// values but whose body returns only one reports ReturnTypeMismatch.
func TestScenarioEMultiReturnArityMismatch(t *testing.T) {
	prog := &typedast.Program{Block: typedast.Block{Stmts: []typedast.Stmt{
		typedast.LocalFunctionDecl{
			Name: "split",
			Sig: typedast.FuncSig{
				Returns: []annotation.Annotation{
					{AnnotatedType: types.AnnotatedType{Raw: "string", Kind: types.String}},
					{AnnotatedType: types.AnnotatedType{Raw: "string", Kind: types.String}},
				},
			},
			Body: typedast.Block{Stmts: []typedast.Stmt{
				typedast.Return{Values: []typedast.Expr{typedast.StringLit{Value: "only-one"}}},
			}},
		},
	}}}
	result := Check("scenario_e.lua", types.NewRegistry(), prog)
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != diagnostics.ReturnTypeMismatch {
		t.Fatalf("expected one ReturnTypeMismatch, got %v", result.Diagnostics)
	}
}

// TestScenarioBNilNarrowing: `---@type number|nil` / `local value = nil`,
// then `if value ~= nil then value = value else value = value end`
// reports zero diagnostics — the truthy branch narrows to number and the
// falsy branch to nil, each reassignment matching its own narrowed type.
func TestScenarioBNilNarrowing(t *testing.T) {
	valueType := annotation.Annotation{
		Usage: annotation.Type, Name: "value",
		AnnotatedType: types.AnnotatedType{Raw: "number|nil", Kind: types.Optional(types.Number)},
	}
	reassignValue := typedast.Assign{
		Targets: []typedast.Expr{typedast.Name{Name: "value"}},
		Values:  []typedast.Expr{typedast.Name{Name: "value"}},
	}
	prog := &typedast.Program{Block: typedast.Block{Stmts: []typedast.Stmt{
		typedast.LocalAssign{
			Names:       []string{"value"},
			Values:      []typedast.Expr{typedast.NilLit{}},
			Annotations: []annotation.Annotation{valueType},
		},
		typedast.If{
			Branches: []typedast.IfBranch{{
				Cond: typedast.Binary{Op: "~=", Left: typedast.Name{Name: "value"}, Right: typedast.NilLit{}},
				Body: typedast.Block{Stmts: []typedast.Stmt{reassignValue}},
			}},
			HasElse: true,
			Else:    typedast.Block{Stmts: []typedast.Stmt{reassignValue}},
		},
	}}}
	result := Check("scenario_b.lua", types.NewRegistry(), prog)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected zero diagnostics for nil narrowing, got %v", result.Diagnostics)
	}
}

// TestScenarioCTypeNarrowingChain: value declared number|string|boolean,
// branches on type(value)=="string" / =="boolean" / else. Each branch
// does an operation that only type-checks under its expected narrowed
// type (concat needs string, `and` needs boolean, `+` needs number) —
// this only passes with zero diagnostics once the else branch correctly
// excludes both preceding branches' types and lands on exactly number.
func TestScenarioCTypeNarrowingChain(t *testing.T) {
	valueType := annotation.Annotation{
		Usage: annotation.Type, Name: "value",
		AnnotatedType: types.AnnotatedType{
			Raw:  "number|string|boolean",
			Kind: types.NewUnion(types.Number, types.String, types.Boolean),
		},
	}
	prog := &typedast.Program{Block: typedast.Block{Stmts: []typedast.Stmt{
		typedast.LocalAssign{
			Names:       []string{"value"},
			Values:      []typedast.Expr{typedast.NumberLit{Value: 0}},
			Annotations: []annotation.Annotation{valueType},
		},
		typedast.If{
			Branches: []typedast.IfBranch{
				{
					Cond: typeOfCond("value", "string"),
					Body: typedast.Block{Stmts: []typedast.Stmt{
						typedast.LocalAssign{
							Names: []string{"asString"},
							Values: []typedast.Expr{typedast.Binary{
								Op: "..", Left: typedast.Name{Name: "value"}, Right: typedast.StringLit{Value: "!"},
							}},
						},
					}},
				},
				{
					Cond: typeOfCond("value", "boolean"),
					Body: typedast.Block{Stmts: []typedast.Stmt{
						typedast.LocalAssign{
							Names: []string{"asBool"},
							Values: []typedast.Expr{typedast.Binary{
								Op: "and", Left: typedast.Name{Name: "value"}, Right: typedast.BoolLit{Value: true},
							}},
						},
					}},
				},
			},
			HasElse: true,
			Else: typedast.Block{Stmts: []typedast.Stmt{
				typedast.LocalAssign{
					Names: []string{"asNumber"},
					Values: []typedast.Expr{typedast.Binary{
						Op: "+", Left: typedast.Name{Name: "value"}, Right: typedast.NumberLit{Value: 1},
					}},
				},
			}},
		},
	}}}
	result := Check("scenario_c.lua", types.NewRegistry(), prog)
	if len(result.Diagnostics) != 0 {
		t.Fatalf("expected zero diagnostics once type(value)==... narrowing resolves each branch to string/boolean/number, got %v", result.Diagnostics)
	}
}

// TestScenarioFCrossFileClassResolution: a class declared in one file's
// registry resolves correctly when merged into another file's checker via
// Registry.Extend (spec.md §5's deterministic workspace merge).
func TestScenarioFCrossFileClassResolution(t *testing.T) {
	fileARegistry := types.NewRegistry()
	class := types.NewClass("Vector")
	class.AddField("x", types.Number)
	fileARegistry.Classes["Vector"] = class

	merged := types.NewRegistry()
	merged.Extend(fileARegistry)

	prog := &typedast.Program{Block: typedast.Block{Stmts: []typedast.Stmt{
		typedast.LocalAssign{
			Names:      []string{"v"},
			Values:     []typedast.Expr{typedast.TableCtor{}},
			ClassHints: []string{"Vector"},
		},
		typedast.Assign{
			Targets: []typedast.Expr{typedast.FieldAccess{Target: typedast.Name{Name: "v"}, Field: "x"}},
			Values:  []typedast.Expr{typedast.StringLit{Value: "wrong"}},
		},
	}}}
	result := Check("scenario_f.lua", merged, prog)
	if len(result.Diagnostics) != 1 || result.Diagnostics[0].Code != diagnostics.ParamTypeMismatch {
		t.Fatalf("expected one ParamTypeMismatch resolving Vector.x across the merged registry, got %v", result.Diagnostics)
	}
}
