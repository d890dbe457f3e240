package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

func TestLocalAssignAnnotatedMismatchReportsAssignTypeMismatch(t *testing.T) {
	c := newTestChecker()
	la := typedast.LocalAssign{
		Names:  []string{"value"},
		Values: []typedast.Expr{typedast.StringLit{Value: "oops"}},
		Annotations: []annotation.Annotation{
			{Usage: annotation.Type, Name: "value", AnnotatedType: types.AnnotatedType{Raw: "number", Kind: types.Number}},
		},
	}
	c.checkLocalAssign(la)

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.AssignTypeMismatch {
		t.Fatalf("expected one AssignTypeMismatch, got %v", diags)
	}
	entry, ok := c.lookup("value")
	if !ok || !entry.Annotated || entry.Type != types.Number {
		t.Fatalf("expected value bound to the annotated type number, got %+v", entry)
	}
}

func TestLocalAssignAnyAnnotationDisablesEnforcement(t *testing.T) {
	c := newTestChecker()
	la := typedast.LocalAssign{
		Names:  []string{"value"},
		Values: []typedast.Expr{typedast.StringLit{Value: "ok"}},
		Annotations: []annotation.Annotation{
			{Usage: annotation.Type, Name: "value", AnnotatedType: types.AnnotatedType{Raw: "any", Kind: nil}},
		},
	}
	c.checkLocalAssign(la)

	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected 'any' annotation not to enforce, got %v", diags)
	}
	entry, _ := c.lookup("value")
	if entry.Annotated {
		t.Fatal("expected 'any' annotation to leave the binding unannotated")
	}
	if entry.Type != types.String {
		t.Fatalf("expected the inferred type to still be recorded, got %s", entry.Type)
	}
}

func TestLocalAssignClassHintCoercesTableLiteral(t *testing.T) {
	c := newTestChecker()
	la := typedast.LocalAssign{
		Names:      []string{"p"},
		Values:     []typedast.Expr{typedast.TableCtor{}},
		ClassHints: []string{"Point"},
	}
	c.checkLocalAssign(la)

	entry, ok := c.lookup("p")
	if !ok || !entry.Annotated {
		t.Fatal("expected a class-hinted table literal to bind as annotated")
	}
	if custom, ok := entry.Type.(types.Custom); !ok || custom.Name != "Point" {
		t.Fatalf("expected p to be typed Custom(Point), got %s", entry.Type)
	}
}

func TestAssignReassignmentOfAnnotatedNameReportsMismatch(t *testing.T) {
	c := newTestChecker()
	c.declareLocal("value", VariableEntry{Type: types.Number, Annotated: true})

	a := typedast.Assign{
		Targets: []typedast.Expr{typedast.Name{Name: "value"}},
		Values:  []typedast.Expr{typedast.StringLit{Value: "oops"}},
	}
	c.checkAssign(a)

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.AssignTypeMismatch {
		t.Fatalf("expected one reassignment AssignTypeMismatch, got %v", diags)
	}
}

func TestCheckFieldAssignmentKnownFieldMismatch(t *testing.T) {
	c := newTestChecker()
	class := types.NewClass("Point")
	class.AddField("x", types.Number)
	c.registry.Classes["Point"] = class
	c.declareLocal("p", VariableEntry{Type: types.Custom{Name: "Point"}})

	fa := typedast.FieldAccess{Target: typedast.Name{Name: "p"}, Field: "x"}
	c.checkFieldAssignment(fa, types.String)

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.ParamTypeMismatch {
		t.Fatalf("expected one ParamTypeMismatch for a mismatched field assignment, got %v", diags)
	}
}

func TestCheckFieldAssignmentExactClassUndefinedField(t *testing.T) {
	c := newTestChecker()
	class := types.NewClass("Point")
	class.Exact = true
	class.AddField("x", types.Number)
	c.registry.Classes["Point"] = class
	c.declareLocal("p", VariableEntry{Type: types.Custom{Name: "Point"}})

	fa := typedast.FieldAccess{Target: typedast.Name{Name: "p"}, Field: "z"}
	c.checkFieldAssignment(fa, types.Number)

	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.UndefinedField {
		t.Fatalf("expected one UndefinedField diagnostic for an exact class, got %v", diags)
	}
}

func TestCheckFieldAssignmentNonExactClassUndefinedFieldIsAllowed(t *testing.T) {
	c := newTestChecker()
	class := types.NewClass("Point")
	class.AddField("x", types.Number)
	c.registry.Classes["Point"] = class
	c.declareLocal("p", VariableEntry{Type: types.Custom{Name: "Point"}})

	fa := typedast.FieldAccess{Target: typedast.Name{Name: "p"}, Field: "z"}
	c.checkFieldAssignment(fa, types.Number)

	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected adding a new field on a non-exact class to be allowed, got %v", diags)
	}
}
