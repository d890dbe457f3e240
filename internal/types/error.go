package types

import "fmt"

// UnifyError is returned by Unify when two types cannot be made equal.
// Grounded on funxy's internal/typesystem/error.go: a dedicated, small
// error type rather than a bare fmt.Errorf, so the checker can pattern
// match on it (see checker's call/field inference conversion policy,
// spec.md §7).
type UnifyError struct {
	A, B    Type
	Context string // e.g. "record field 'x'", set by callers that recurse
}

func (e *UnifyError) Error() string {
	if e.Context != "" {
		return fmt.Sprintf("cannot unify %s: %s and %s", e.Context, e.A, e.B)
	}
	return fmt.Sprintf("cannot unify %s and %s", e.A, e.B)
}

// WithContext returns a copy of e annotated with additional context,
// used while unwinding recursive unification (record fields, union
// members) to produce a more specific message without losing the
// original operands.
func (e *UnifyError) WithContext(context string) *UnifyError {
	if e.Context != "" {
		context = context + " -> " + e.Context
	}
	return &UnifyError{A: e.A, B: e.B, Context: context}
}

// OccursCheckError is returned when binding a Var would create an
// infinite type (spec.md §4.4: "Binding fails with OccursCheck when the
// variable appears in its image").
type OccursCheckError struct {
	Var Var
	In  Type
}

func (e *OccursCheckError) Error() string {
	return fmt.Sprintf("occurs check failed: %s occurs in %s", e.Var, e.In)
}

// SolveError is returned by the constraint solver (spec.md §4.5).
type SolveError struct {
	Msg string
}

func (e *SolveError) Error() string { return e.Msg }
