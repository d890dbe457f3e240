package types

// Constraint is one deferred obligation produced while walking an
// expression, solved after the whole expression has been visited
// (spec.md §4.5). The solver processes constraints LIFO: most-recently
// pushed first, so constraints generated while resolving an earlier one
// see already-narrowed types.
type Constraint interface {
	isConstraint()
}

// Eq requires A and B to unify.
type Eq struct {
	A, B Type
}

func (Eq) isConstraint() {}

// Sub requires A to be assignable to B under the checker's permissive
// matches() relation (spec.md §4.6). The solver itself does not decide
// matches(): Solve accepts a Sub constraint and discards it, binding no
// variables, and the compatibility judgement stays with the checker's
// matches(). No TODO: there is no scheduled follow-up, this is the
// accepted Open Question resolution.
type Sub struct {
	A, B Type
}

func (Sub) isConstraint() {}

// Callable requires Fn to unify against a function shape with the given
// argument and return types, used when a call target isn't already
// known to be a Func (e.g. it's still a Var at the call site).
type Callable struct {
	Fn      Type
	Args    []Type
	Returns Type
}

func (Callable) isConstraint() {}

// HasField requires On to be table-like and carry Field with type Type.
type HasField struct {
	On    Type
	Field string
	Type  Type
}

func (HasField) isConstraint() {}

// Index requires On to support indexing with a key of KeyType, yielding
// ValueType.
type Index struct {
	On       Type
	KeyType  Type
	ValueType Type
}

func (Index) isConstraint() {}

// Solve drains constraints LIFO, composing the substitutions each one
// produces, and returns the accumulated result or the first error
// encountered (spec.md §4.5).
func Solve(constraints []Constraint) (Subst, error) {
	s := Subst{}
	for i := len(constraints) - 1; i >= 0; i-- {
		sNext, err := solveOne(constraints[i], s)
		if err != nil {
			return nil, err
		}
		s = s.Compose(sNext)
	}
	return s, nil
}

func solveOne(c Constraint, running Subst) (Subst, error) {
	switch v := c.(type) {
	case Eq:
		return unify(v.A.Apply(running), v.B.Apply(running))
	case Sub:
		return Subst{}, nil
	case Callable:
		fn := v.Fn.Apply(running)
		params := make([]Type, len(v.Args))
		for i, a := range v.Args {
			params[i] = a.Apply(running)
		}
		want := Func{Params: FixedParams(params...), Returns: FixedParams(v.Returns.Apply(running))}
		return unify(fn, want)
	case HasField:
		on := v.On.Apply(running)
		switch t := on.(type) {
		case Record:
			existing, ok := t.Field(v.Field)
			if !ok {
				if t.Exact {
					return nil, &SolveError{Msg: "unknown field '" + v.Field + "' on " + t.String()}
				}
				return Subst{}, nil
			}
			return unify(existing, v.Type.Apply(running))
		case TableMap:
			return unify(t.Value, v.Type.Apply(running))
		case Var:
			return bind(t, Record{Fields: []RecordField{{Name: v.Field, Type: v.Type.Apply(running)}}})
		default:
			return nil, &SolveError{Msg: "type " + on.String() + " has no fields"}
		}
	case Index:
		on := v.On.Apply(running)
		switch t := on.(type) {
		case TableMap:
			s1, err := unify(t.Key, v.KeyType.Apply(running))
			if err != nil {
				return nil, err
			}
			s2, err := unify(t.Value.Apply(s1), v.ValueType.Apply(s1))
			if err != nil {
				return nil, err
			}
			return s1.Compose(s2), nil
		case Var:
			return bind(t, TableMap{Key: v.KeyType.Apply(running), Value: v.ValueType.Apply(running)})
		default:
			return nil, &SolveError{Msg: "type " + on.String() + " is not indexable"}
		}
	default:
		return Subst{}, nil
	}
}
