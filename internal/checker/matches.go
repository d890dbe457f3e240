package checker

import "github.com/typua-lang/typua/internal/types"

// matches is spec.md §4.6's checker-level compatibility relation: coarser
// and more permissive than Unify (used for assignment and operator
// checks, never for call/field-level inference, which goes through the
// unifier instead).
func matches(expected, actual types.Type) bool {
	if expected == nil || actual == nil {
		return true
	}
	if types.IsUnknown(expected) || types.IsUnknown(actual) {
		return true
	}
	if eu, ok := expected.(types.Union); ok {
		for _, m := range eu.Items {
			if matches(m, actual) {
				return true
			}
		}
		return false
	}
	if au, ok := actual.(types.Union); ok {
		for _, m := range au.Items {
			if !matches(expected, m) {
				return false
			}
		}
		return true
	}
	if isNumeric(expected) && isNumeric(actual) {
		return true
	}
	if elemExpected, ok := types.IsArray(expected); ok {
		if !types.IsTableLike(actual) {
			return false
		}
		if elemActual, ok := types.IsArray(actual); ok {
			return matches(elemExpected, elemActual)
		}
		return true
	}
	if ce, ok := expected.(types.Custom); ok {
		if ca, ok := actual.(types.Custom); ok {
			return ca.Name == ce.Name
		}
		return types.IsTableLike(actual)
	}
	if ef, ok := expected.(types.Func); ok {
		af, ok := actual.(types.Func)
		if !ok {
			return false
		}
		return matchesParamList(ef.Params, af.Params, true) && matchesParamList(ef.Returns, af.Returns, false)
	}
	return expected.String() == actual.String()
}

func isNumeric(t types.Type) bool {
	return t == types.Number || t == types.Integer
}

// expandParamList repeats a variadic tail (ParamList.expand is unexported
// in internal/types) until Fixed reaches length n.
func expandParamList(p types.ParamList, n int) []types.Type {
	if !p.Variadic {
		return p.Fixed
	}
	out := append([]types.Type{}, p.Fixed...)
	for len(out) < n {
		out = append(out, p.Tail)
	}
	return out
}

// matchesParamList compares two ParamLists position-wise, expanding a
// variadic tail to the other side's length. contravariant swaps the
// matches() operand order for parameter lists (a wider-accepting
// function is compatible where a narrower one is expected); return lists
// compare covariantly.
func matchesParamList(expected, actual types.ParamList, contravariant bool) bool {
	n := len(expected.Fixed)
	if len(actual.Fixed) > n {
		n = len(actual.Fixed)
	}
	exp := expandParamList(expected, n)
	act := expandParamList(actual, n)
	if len(exp) != len(act) {
		return false
	}
	for i := range exp {
		if contravariant {
			if !matches(act[i], exp[i]) {
				return false
			}
			continue
		}
		if !matches(exp[i], act[i]) {
			return false
		}
	}
	return true
}
