package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

func TestInferTableCtorAllPositionalIsArray(t *testing.T) {
	c := newTestChecker()
	ctor := typedast.TableCtor{Fields: []typedast.TableField{
		{Value: typedast.NumberLit{Value: 1}},
		{Value: typedast.NumberLit{Value: 2}},
	}}
	elem, ok := types.IsArray(c.inferTableCtor(ctor))
	if !ok || elem != types.Number {
		t.Fatalf("expected Array(number), got %s", c.inferTableCtor(ctor))
	}
}

func TestInferTableCtorAllNamedIsNonExactRecord(t *testing.T) {
	c := newTestChecker()
	ctor := typedast.TableCtor{Fields: []typedast.TableField{
		{Key: "x", Value: typedast.NumberLit{Value: 1}},
		{Key: "y", Value: typedast.StringLit{Value: "a"}},
	}}
	result := c.inferTableCtor(ctor)
	rec, ok := result.(types.Record)
	if !ok {
		t.Fatalf("expected a Record, got %T", result)
	}
	if rec.Exact {
		t.Fatal("expected an inferred table-constructor record to be non-exact")
	}
	if ty, ok := rec.Field("x"); !ok || ty != types.Number {
		t.Fatal("expected field x: number")
	}
}

func TestInferTableCtorMixedFallsBackToMap(t *testing.T) {
	c := newTestChecker()
	ctor := typedast.TableCtor{Fields: []typedast.TableField{
		{Value: typedast.NumberLit{Value: 1}},
		{Key: "y", Value: typedast.StringLit{Value: "a"}},
	}}
	result := c.inferTableCtor(ctor)
	if _, ok := result.(types.TableMap); !ok {
		t.Fatalf("expected mixed positional+named fields to fall back to TableMap, got %T", result)
	}
}

func TestInferTableCtorEmptyIsArraySugarUnknown(t *testing.T) {
	c := newTestChecker()
	result := c.inferTableCtor(typedast.TableCtor{})
	m, ok := result.(types.TableMap)
	if !ok || !m.IsArraySugar {
		t.Fatalf("expected empty table constructor to infer as empty-array sugar, got %s", result)
	}
}
