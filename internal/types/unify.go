package types

import "sort"

// Unify attempts to find a substitution that makes a and b equal,
// following the fixed, top-to-bottom rule order of spec.md §4.4. It is
// strict/invariant; the checker's permissive matches() predicate
// (spec.md §4.6) is what implements subtyping for assignment checks.
func Unify(a, b Type) (Subst, error) {
	return unify(a, b)
}

func unify(a, b Type) (Subst, error) {
	// Rule 1: either side is Var.
	if va, ok := a.(Var); ok {
		return bind(va, b)
	}
	if vb, ok := b.(Var); ok {
		return bind(vb, a)
	}

	// Rule 2: identical primitives.
	if pa, ok := a.(primName); ok {
		if pb, ok := b.(primName); ok {
			if pa.name == pb.name {
				return Subst{}, nil
			}
		}
		return nil, &UnifyError{A: a, B: b}
	}
	if ca, ok := a.(Custom); ok {
		if cb, ok := b.(Custom); ok && ca.Name == cb.Name {
			return Subst{}, nil
		}
		return nil, &UnifyError{A: a, B: b}
	}
	if ga, ok := a.(Generic); ok {
		if gb, ok := b.(Generic); ok && ga.Name == gb.Name {
			return Subst{}, nil
		}
		return nil, &UnifyError{A: a, B: b}
	}

	// Rules 3-4: Optional (Union([T,Nil])) relaxation.
	innerA, aIsOpt := asOptional(a)
	innerB, bIsOpt := asOptional(b)
	switch {
	case aIsOpt && bIsOpt:
		return unify(innerA, innerB) // rule 3: recurse on the inner types
	case aIsOpt && !bIsOpt:
		if IsNil(b) {
			return Subst{}, nil // rule 4: nil is already a member of T|nil
		}
		return unify(innerA, b) // rule 4: T|nil ~ X|nil reduces to T ~ X
	case !aIsOpt && bIsOpt:
		if IsNil(a) {
			return Subst{}, nil // rule 4
		}
		return unify(a, innerB) // rule 4
	}

	// Rule 5: Tuple~Tuple and Union~Union, elementwise, lengths must match.
	if ta, ok := a.(Tuple); ok {
		tb, ok := b.(Tuple)
		if !ok || len(ta.Items) != len(tb.Items) {
			return nil, &UnifyError{A: a, B: b}
		}
		return unifyList(ta.Items, tb.Items, false)
	}
	if ua, ok := a.(Union); ok {
		ub, ok := b.(Union)
		if !ok || len(ua.Items) != len(ub.Items) {
			return nil, &UnifyError{A: a, B: b}
		}
		return unifyList(ua.Items, ub.Items, false)
	}

	// Rule 6: Fun~Fun.
	if fa, ok := a.(Func); ok {
		fb, ok := b.(Func)
		if !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		return unifyFunc(fa, fb)
	}

	// Rule 7: Record~Record.
	if ra, ok := a.(Record); ok {
		rb, ok := b.(Record)
		if !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		return unifyRecord(ra, rb)
	}

	// Rule 8: Map~Map, pointwise.
	if ma, ok := a.(TableMap); ok {
		mb, ok := b.(TableMap)
		if !ok {
			return nil, &UnifyError{A: a, B: b}
		}
		s1, err := unify(ma.Key, mb.Key)
		if err != nil {
			return nil, err
		}
		s2, err := unify(ma.Value.Apply(s1), mb.Value.Apply(s1))
		if err != nil {
			return nil, err
		}
		return s1.Compose(s2), nil
	}

	// Applied{base,args} equality (generic application, e.g. Array<string>).
	if apa, ok := a.(Applied); ok {
		apb, ok := b.(Applied)
		if !ok || len(apa.Args) != len(apb.Args) {
			return nil, &UnifyError{A: a, B: b}
		}
		s, err := unify(apa.Base, apb.Base)
		if err != nil {
			return nil, err
		}
		for i := range apa.Args {
			sNext, err := unify(apa.Args[i].Apply(s), apb.Args[i].Apply(s))
			if err != nil {
				return nil, err
			}
			s = s.Compose(sNext)
		}
		return s, nil
	}

	// Rule 9: otherwise, structural equality or mismatch.
	if a.String() == b.String() {
		return Subst{}, nil
	}
	return nil, &UnifyError{A: a, B: b}
}

// asOptional reports whether t is the canonical Optional(T) shape: a
// 2-member union containing Nil. Returns the other member.
func asOptional(t Type) (Type, bool) {
	u, ok := t.(Union)
	if !ok || len(u.Items) != 2 {
		return nil, false
	}
	for i, item := range u.Items {
		if IsNil(item) {
			return u.Items[1-i], true
		}
	}
	return nil, false
}

func unifyList(xs, ys []Type, reverse bool) (Subst, error) {
	if len(xs) != len(ys) {
		return nil, &UnifyError{A: Tuple{Items: xs}, B: Tuple{Items: ys}}
	}
	idx := make([]int, len(xs))
	for i := range idx {
		idx[i] = i
	}
	if reverse {
		sort.Sort(sort.Reverse(sort.IntSlice(idx)))
	}
	s := Subst{}
	for _, i := range idx {
		sNext, err := unify(xs[i].Apply(s), ys[i].Apply(s))
		if err != nil {
			return nil, err
		}
		s = s.Compose(sNext)
	}
	return s, nil
}

// unifyFunc unifies params contravariantly by position and returns in
// reverse order so result-side variables bind left-to-right (spec.md
// §4.4 rule 6).
func unifyFunc(fa, fb Func) (Subst, error) {
	paramsA, paramsB, err := expandParams(fa.Params, fb.Params)
	if err != nil {
		return nil, err
	}
	s1, err := unifyList(paramsB, paramsA, false) // contravariant: unify callee params against caller's
	if err != nil {
		return nil, err
	}

	retsA, retsB, err := expandParams(fa.Returns.apply(s1), fb.Returns.apply(s1))
	if err != nil {
		return nil, err
	}
	s2, err := unifyList(retsA, retsB, true)
	if err != nil {
		return nil, err
	}
	return s1.Compose(s2), nil
}

// expandParams applies spec.md §4.4's "Param unification" rule: when one
// side is Fixed and the other VarArg, the VarArg side's tail is repeated
// to match the Fixed side's length (requiring its own Fixed prefix be
// non-empty).
func expandParams(a, b ParamList) ([]Type, []Type, error) {
	switch {
	case !a.Variadic && !b.Variadic:
		if len(a.Fixed) != len(b.Fixed) {
			return nil, nil, &UnifyError{A: Tuple{Items: a.Fixed}, B: Tuple{Items: b.Fixed}}
		}
		return a.Fixed, b.Fixed, nil
	case a.Variadic && !b.Variadic:
		if len(a.Fixed) == 0 {
			return nil, nil, &UnifyError{A: Tuple{Items: a.Fixed}, B: Tuple{Items: b.Fixed}}
		}
		return a.expand(len(b.Fixed)), b.Fixed, nil
	case !a.Variadic && b.Variadic:
		if len(b.Fixed) == 0 {
			return nil, nil, &UnifyError{A: Tuple{Items: a.Fixed}, B: Tuple{Items: b.Fixed}}
		}
		return a.Fixed, b.expand(len(a.Fixed)), nil
	default:
		n := len(a.Fixed)
		if len(b.Fixed) > n {
			n = len(b.Fixed)
		}
		return a.expand(n), b.expand(n), nil
	}
}

func bind(v Var, t Type) (Subst, error) {
	if tv, ok := t.(Var); ok && tv.ID == v.ID {
		return Subst{}, nil
	}
	if occursCheck(v, t) {
		return nil, &OccursCheckError{Var: v, In: t}
	}
	return Subst{v.ID: t}, nil
}

func occursCheck(v Var, t Type) bool {
	for _, id := range t.FreeTypeVariables() {
		if id == v.ID {
			return true
		}
	}
	return false
}

func unifyRecord(ra, rb Record) (Subst, error) {
	if ra.Exact && !rb.HasAllFieldsOf(ra) {
		return nil, &UnifyError{A: ra, B: rb, Context: "exact record requires matching fields"}
	}
	if rb.Exact && !ra.HasAllFieldsOf(rb) {
		return nil, &UnifyError{A: ra, B: rb, Context: "exact record requires matching fields"}
	}

	var common []string
	for _, f := range ra.Fields {
		if _, ok := rb.Field(f.Name); ok {
			common = append(common, f.Name)
		}
	}
	sort.Strings(common)

	s := Subst{}
	for _, name := range common {
		v1, _ := ra.Field(name)
		v2, _ := rb.Field(name)
		sNext, err := unify(v1.Apply(s), v2.Apply(s))
		if err != nil {
			if ue, ok := err.(*UnifyError); ok {
				return nil, ue.WithContext("record field '" + name + "'")
			}
			return nil, err
		}
		s = s.Compose(sNext)
	}
	return s, nil
}
