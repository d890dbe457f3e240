package types

import "strings"

// ParamList is either Fixed(items) or VarArg(fixed, tail), matching
// spec.md §3.2's Fun{params, returns} shape: "params and returns each
// are either Fixed(Vec<T>) or VarArg(Fixed, tail T)".
type ParamList struct {
	Fixed    []Type
	Variadic bool
	Tail     Type // only meaningful when Variadic
}

func FixedParams(items ...Type) ParamList {
	return ParamList{Fixed: items}
}

func VarArgParams(fixed []Type, tail Type) ParamList {
	return ParamList{Fixed: fixed, Variadic: true, Tail: tail}
}

func (p ParamList) String() string {
	parts := make([]string, len(p.Fixed))
	for i, t := range p.Fixed {
		parts[i] = t.String()
	}
	if p.Variadic {
		parts = append(parts, "..."+p.Tail.String())
	}
	return strings.Join(parts, ", ")
}

func (p ParamList) apply(s Subst) ParamList {
	fixed := make([]Type, len(p.Fixed))
	for i, t := range p.Fixed {
		fixed[i] = t.Apply(s)
	}
	out := ParamList{Fixed: fixed, Variadic: p.Variadic}
	if p.Variadic {
		out.Tail = p.Tail.Apply(s)
	}
	return out
}

func (p ParamList) freeVars() []string {
	var out []string
	for _, t := range p.Fixed {
		out = append(out, t.FreeTypeVariables()...)
	}
	if p.Variadic {
		out = append(out, p.Tail.FreeTypeVariables()...)
	}
	return out
}

// expand repeats the VarArg tail until Fixed reaches length n, matching
// spec.md §4.4's "Fixed(xs) ~ VarArg(ys, t)" rule. Requires ys non-empty
// (the teacher's equivalent: funxy's TFunc.IsVariadic unification by
// position, generalized here to an explicit tail type).
func (p ParamList) expand(n int) []Type {
	if !p.Variadic {
		return p.Fixed
	}
	out := append([]Type{}, p.Fixed...)
	for len(out) < n {
		out = append(out, p.Tail)
	}
	return out
}

// Func is Fun{params, returns} from spec.md §3.2.
type Func struct {
	Params  ParamList
	Returns ParamList
}

func (f Func) String() string {
	return "fun(" + f.Params.String() + "): " + f.Returns.String()
}

func (f Func) Apply(s Subst) Type {
	return Func{Params: f.Params.apply(s), Returns: f.Returns.apply(s)}
}

func (f Func) FreeTypeVariables() []string {
	return append(f.Params.freeVars(), f.Returns.freeVars()...)
}

// Applied is Applied{base, args} from spec.md §3.2: a generic
// application such as Array<string>.
type Applied struct {
	Base Type
	Args []Type
}

func (a Applied) String() string {
	parts := make([]string, len(a.Args))
	for i, t := range a.Args {
		parts[i] = t.String()
	}
	return a.Base.String() + "<" + strings.Join(parts, ", ") + ">"
}

func (a Applied) Apply(s Subst) Type {
	args := make([]Type, len(a.Args))
	for i, t := range a.Args {
		args[i] = t.Apply(s)
	}
	return Applied{Base: a.Base.Apply(s), Args: args}
}

func (a Applied) FreeTypeVariables() []string {
	out := append([]string{}, a.Base.FreeTypeVariables()...)
	for _, t := range a.Args {
		out = append(out, t.FreeTypeVariables()...)
	}
	return out
}

// Tuple is Tuple(items) from spec.md §3.2, used for multi-return
// signatures.
type Tuple struct {
	Items []Type
}

func (t Tuple) String() string {
	parts := make([]string, len(t.Items))
	for i, item := range t.Items {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

func (t Tuple) Apply(s Subst) Type {
	items := make([]Type, len(t.Items))
	for i, item := range t.Items {
		items[i] = item.Apply(s)
	}
	return Tuple{Items: items}
}

func (t Tuple) FreeTypeVariables() []string {
	var out []string
	for _, item := range t.Items {
		out = append(out, item.FreeTypeVariables()...)
	}
	return out
}
