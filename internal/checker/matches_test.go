package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/types"
)

func TestMatchesUnknownIsPermissiveBothSides(t *testing.T) {
	if !matches(types.Unknown, types.String) {
		t.Fatal("expected Unknown expected to match anything")
	}
	if !matches(types.Number, types.Unknown) {
		t.Fatal("expected anything to match Unknown actual")
	}
}

func TestMatchesReflexive(t *testing.T) {
	for _, ty := range []types.Type{types.Number, types.String, types.Boolean, types.Nil} {
		if !matches(ty, ty) {
			t.Fatalf("expected matches(%s, %s)", ty, ty)
		}
	}
}

func TestMatchesUnionExpectedAnyMember(t *testing.T) {
	u := types.NewUnion(types.Number, types.String)
	if !matches(u, types.String) {
		t.Fatal("expected string to match number|string")
	}
	if matches(u, types.Boolean) {
		t.Fatal("expected boolean not to match number|string")
	}
}

func TestMatchesIntegerNumberMutual(t *testing.T) {
	if !matches(types.Integer, types.Number) {
		t.Fatal("expected Integer to match Number")
	}
	if !matches(types.Number, types.Integer) {
		t.Fatal("expected Number to match Integer")
	}
}

func TestMatchesArrayTableCompatible(t *testing.T) {
	arr := types.ArrayOf(types.Number)
	if !matches(arr, types.Record{Fields: []types.RecordField{{Name: "x", Type: types.Number}}}) {
		t.Fatal("expected Array(number) to accept a table-like Record")
	}
	if !matches(arr, types.ArrayOf(types.Number)) {
		t.Fatal("expected Array(number) to match Array(number) elementwise")
	}
	if matches(arr, types.ArrayOf(types.String)) {
		t.Fatal("expected Array(number) not to match Array(string)")
	}
}

func TestMatchesCustomTableCompatible(t *testing.T) {
	point := types.Custom{Name: "Point"}
	if !matches(point, types.Record{}) {
		t.Fatal("expected Custom(Point) to accept any table")
	}
	if !matches(point, types.Custom{Name: "Point"}) {
		t.Fatal("expected same-named Custom to match")
	}
	if matches(point, types.Custom{Name: "Vec"}) {
		t.Fatal("expected differently-named Custom not to match")
	}
}

func TestMatchesFunctionStructural(t *testing.T) {
	f1 := types.Func{Params: types.FixedParams(types.Number), Returns: types.FixedParams(types.String)}
	f2 := types.Func{Params: types.FixedParams(types.Number), Returns: types.FixedParams(types.String)}
	f3 := types.Func{Params: types.FixedParams(types.String), Returns: types.FixedParams(types.String)}
	if !matches(f1, f2) {
		t.Fatal("expected structurally identical functions to match")
	}
	if matches(f1, f3) {
		t.Fatal("expected functions with differing param types not to match")
	}
}

func TestMatchesOtherwiseStructuralEquality(t *testing.T) {
	if matches(types.Thread, types.UserData) {
		t.Fatal("expected unrelated primitives not to match")
	}
}
