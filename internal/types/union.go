package types

import "sort"

// Union is a normalized disjunction: flat (no nested Union), deduplicated
// by canonical string, and displayed with Nil last. Construct via
// NewUnion rather than the struct literal so the invariants in spec.md
// §3.2 always hold.
type Union struct {
	Items []Type
}

func (u Union) String() string {
	s := ""
	for i, item := range u.Items {
		if i > 0 {
			s += "|"
		}
		s += item.String()
	}
	return s
}

func (u Union) Apply(s Subst) Type {
	applied := make([]Type, len(u.Items))
	for i, item := range u.Items {
		applied[i] = item.Apply(s)
	}
	return NewUnion(applied...)
}

func (u Union) FreeTypeVariables() []string {
	var out []string
	for _, item := range u.Items {
		out = append(out, item.FreeTypeVariables()...)
	}
	return out
}

// NewUnion flattens nested unions, deduplicates members by canonical
// string, orders Nil last (stable otherwise), and collapses a singleton
// to its sole element. Per spec.md §3.2 a Union always has >=2 members
// after normalization.
func NewUnion(items ...Type) Type {
	flat := make([]Type, 0, len(items))
	var flatten func(Type)
	flatten = func(t Type) {
		if t == nil {
			return
		}
		if u, ok := t.(Union); ok {
			for _, inner := range u.Items {
				flatten(inner)
			}
			return
		}
		flat = append(flat, t)
	}
	for _, item := range items {
		flatten(item)
	}

	seen := make(map[string]bool, len(flat))
	deduped := make([]Type, 0, len(flat))
	for _, t := range flat {
		key := canonicalKey(t)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, t)
	}

	sort.SliceStable(deduped, func(i, j int) bool {
		iNil, jNil := IsNil(deduped[i]), IsNil(deduped[j])
		if iNil != jNil {
			return jNil
		}
		return false
	})

	switch len(deduped) {
	case 0:
		return Unknown
	case 1:
		return deduped[0]
	default:
		return Union{Items: deduped}
	}
}

// Optional is sugar for Union([T, Nil]); unification treats the two
// interchangeably since Optional never exists as a distinct Type value.
func Optional(t Type) Type {
	return NewUnion(t, Nil)
}

// UnionMembers returns the members of t as a slice, treating a
// non-Union type as a singleton union of itself.
func UnionMembers(t Type) []Type {
	if u, ok := t.(Union); ok {
		return u.Items
	}
	return []Type{t}
}

// Contains reports whether target appears (by canonical string) among
// t's union members, or t itself if it is not a union.
func Contains(t Type, target Type) bool {
	key := canonicalKey(target)
	for _, member := range UnionMembers(t) {
		if canonicalKey(member) == key {
			return true
		}
	}
	return false
}

// RemoveFromUnion returns t with target removed from its union members
// (collapsing a singleton result to its element, per NewUnion). If t is
// not a union and equals target, the result is Unknown (nothing remains).
func RemoveFromUnion(t Type, pred func(Type) bool) Type {
	members := UnionMembers(t)
	kept := make([]Type, 0, len(members))
	for _, m := range members {
		if !pred(m) {
			kept = append(kept, m)
		}
	}
	if len(kept) == 0 {
		return Unknown
	}
	return NewUnion(kept...)
}
