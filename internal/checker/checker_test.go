package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/position"
	"github.com/typua-lang/typua/internal/types"
)

// TestRecordSkipsUnknown confirms spec.md §3.2's "never emitted as an
// inferred fact" invariant: an Unknown-typed expression must not appear
// in the type map, even at an otherwise-valid source position.
func TestRecordSkipsUnknown(t *testing.T) {
	c := newTestChecker()
	span := position.Range{Start: position.Position{Line: 1, Column: 1}, End: position.Position{Line: 1, Column: 2}}

	c.record(span, types.Unknown)
	if _, ok := c.typeMap[span.Start]; ok {
		t.Fatal("expected Unknown to be skipped, not recorded into typeMap")
	}

	c.record(span, types.Number)
	if _, ok := c.typeMap[span.Start]; !ok {
		t.Fatal("expected a concrete type to still be recorded into typeMap")
	}
}

// TestRecordSkipsInvalidPosition confirms a synthetic node built without a
// source span (Start.IsValid() false) never inserts a bogus typeMap entry
// keyed on the zero position.
func TestRecordSkipsInvalidPosition(t *testing.T) {
	c := newTestChecker()
	c.record(position.Invalid, types.Number)
	if _, ok := c.typeMap[position.Invalid.Start]; ok {
		t.Fatal("expected an invalid span to be skipped")
	}
}

// TestSolveHasFieldOnUnconstrainedVarDegradesToUnknown exercises
// inferFieldRead's solver-wiring fallback (spec.md §4.5's HasField
// constraint, routed through solveHasField): a field read against a bare,
// otherwise-unconstrained Var has nothing for the solver to pin down, so
// it must degrade to Unknown rather than panicking or fabricating a type.
func TestSolveHasFieldOnUnconstrainedVarDegradesToUnknown(t *testing.T) {
	c := newTestChecker()
	got := c.solveHasField(c.gen.Fresh(), "name")
	if !types.IsUnknown(got) {
		t.Fatalf("expected Unknown, got %s", got)
	}
}

// TestSolveIndexOnUnconstrainedVarDegradesToUnknown is solveHasField's
// counterpart for index reads (solveIndex).
func TestSolveIndexOnUnconstrainedVarDegradesToUnknown(t *testing.T) {
	c := newTestChecker()
	got := c.solveIndex(c.gen.Fresh(), types.String)
	if !types.IsUnknown(got) {
		t.Fatalf("expected Unknown, got %s", got)
	}
}

// TestSolveCallableOnUnconstrainedVarDegradesToUnknown is checkCall's
// solver-wiring fallback (solveCallable) for a callee still left as a
// bare Var by a ---@generics instantiation argument unification never
// pinned down.
func TestSolveCallableOnUnconstrainedVarDegradesToUnknown(t *testing.T) {
	c := newTestChecker()
	got := c.solveCallable(c.gen.Fresh(), []types.Type{types.Number})
	if !types.IsUnknown(got) {
		t.Fatalf("expected Unknown, got %s", got)
	}
}

// TestConcreteOrUnknownPassesThroughConcreteType confirms the degrade-to-
// Unknown helper only fires on a still-unbound Var, not on a type the
// solver did resolve.
func TestConcreteOrUnknownPassesThroughConcreteType(t *testing.T) {
	if got := concreteOrUnknown(types.Number); got != types.Number {
		t.Fatalf("expected concrete type to pass through unchanged, got %s", got)
	}
}
