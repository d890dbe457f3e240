package types

import "fmt"

// Subst maps variable ids to types (spec.md §3.3).
type Subst map[string]Type

// Compose returns s2 ∘ s1: applies s2 through s1's image, then unions
// the bindings with s2 winning on conflict. Grounded on funxy's
// typesystem.Subst.Compose.
func (s1 Subst) Compose(s2 Subst) Subst {
	out := make(Subst, len(s1)+len(s2))
	for k, v := range s1 {
		out[k] = v.Apply(s2)
	}
	for k, v := range s2 {
		out[k] = v
	}
	return out
}

// Scheme is ∀vars. body (spec.md §3.3).
type Scheme struct {
	Vars []string
	Body Type
}

// FreeTypeVariables returns ftv(body) \ vars.
func (s Scheme) FreeTypeVariables() []string {
	bound := make(map[string]bool, len(s.Vars))
	for _, v := range s.Vars {
		bound[v] = true
	}
	seen := make(map[string]bool)
	var out []string
	for _, v := range s.Body.FreeTypeVariables() {
		if bound[v] || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

// VarGenerator issues fresh, unique Var ids. It is not safe for
// concurrent use from multiple goroutines without external
// synchronization, matching the single-threaded-per-check model of
// spec.md §5.
type VarGenerator struct {
	next int
	gen  int // generation counter, bumped per SetGeneration, for unique ids across instances
}

// Fresh returns a new Var with a name guaranteed unique within this
// generator's lifetime.
func (g *VarGenerator) Fresh() Var {
	g.next++
	if g.gen == 0 {
		return Var{ID: fmt.Sprintf("t%d", g.next)}
	}
	return Var{ID: fmt.Sprintf("t%d_%d", g.gen, g.next)}
}

// SetGeneration namespaces subsequent Fresh() ids, so generators given
// distinct generations never issue the same Var id even though each
// starts counting from 1. The workspace orchestrator does not call it:
// each file's checker owns a separate generator.
func (g *VarGenerator) SetGeneration(n int) {
	g.gen = n
}

// FreeVarsOfEnv collects the free variables across a set of schemes
// already bound in an environment, used by Generalize to avoid
// quantifying over variables the enclosing scope still depends on.
func FreeVarsOfEnv(schemes []Scheme) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range schemes {
		for _, v := range s.FreeTypeVariables() {
			if !seen[v] {
				seen[v] = true
				out = append(out, v)
			}
		}
	}
	return out
}

// Generalize builds ∀(ftv(t) \ envFreeVars). t (spec.md §4.3).
func Generalize(envFreeVars []string, t Type) Scheme {
	inEnv := make(map[string]bool, len(envFreeVars))
	for _, v := range envFreeVars {
		inEnv[v] = true
	}
	seen := make(map[string]bool)
	var vars []string
	for _, v := range t.FreeTypeVariables() {
		if inEnv[v] || seen[v] {
			continue
		}
		seen[v] = true
		vars = append(vars, v)
	}
	return Scheme{Vars: vars, Body: t}
}

// Instantiate replaces each of a scheme's bound variables with a freshly
// issued Var (spec.md §4.3).
func Instantiate(s Scheme, gen *VarGenerator) Type {
	if len(s.Vars) == 0 {
		return s.Body
	}
	subst := make(Subst, len(s.Vars))
	for _, v := range s.Vars {
		subst[v] = gen.Fresh()
	}
	return s.Body.Apply(subst)
}
