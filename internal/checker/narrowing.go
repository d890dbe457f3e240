package checker

import (
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// effectKind is one of the four narrowing actions spec.md §4.7.5 names.
type effectKind int

const (
	requireNil effectKind = iota
	excludeNil
	requireType
	excludeType
)

// effect is one ConditionEffect entry: apply kind to the variable named
// target, using kindType when kind is requireType/excludeType.
type effect struct {
	target   string
	kind     effectKind
	kindType types.Type
}

// conditionTypeName maps the string literal of a type(x) == literal
// comparison to the Type it denotes
// per spec.md §4.7.5's type(x) == "..." rule.
func conditionTypeName(s string) types.Type {
	switch s {
	case "number":
		return types.Number
	case "string":
		return types.String
	case "boolean":
		return types.Boolean
	case "table":
		return types.TableMap{Key: types.Unknown, Value: types.Unknown}
	case "function":
		return types.Func{}
	case "thread":
		return types.Thread
	case "nil":
		return types.Nil
	default:
		return types.Custom{Name: s}
	}
}

// analyzeCondition computes ConditionEffect for cond under polarity
// truthy (spec.md §4.7.5). Only bare names, `not`, `==`/`~=` against a
// nil literal or a type(x) call, and parenthesization are recognized;
// any other expression yields no effect — a deliberate scope cut (spec
// §9 Open Questions: no and/or narrowing).
func analyzeCondition(cond typedast.Expr, truthy bool) []effect {
	switch v := cond.(type) {
	case typedast.Name:
		if truthy {
			return []effect{{target: v.Name, kind: excludeNil}}
		}
		return []effect{{target: v.Name, kind: requireNil}}
	case typedast.Paren:
		return analyzeCondition(v.Inner, truthy)
	case typedast.Unary:
		if v.Op == "not" {
			return analyzeCondition(v.Operand, !truthy)
		}
		return nil
	case typedast.Binary:
		if v.Op != "==" && v.Op != "~=" {
			return nil
		}
		positive := truthy == (v.Op == "==")
		if e, ok := nilComparisonEffect(v.Left, v.Right, positive); ok {
			return []effect{e}
		}
		if e, ok := nilComparisonEffect(v.Right, v.Left, positive); ok {
			return []effect{e}
		}
		if e, ok := typeComparisonEffect(v.Left, v.Right, positive); ok {
			return []effect{e}
		}
		if e, ok := typeComparisonEffect(v.Right, v.Left, positive); ok {
			return []effect{e}
		}
		return nil
	default:
		return nil
	}
}

func nilComparisonEffect(candidate, other typedast.Expr, positive bool) (effect, bool) {
	name, ok := candidate.(typedast.Name)
	if !ok {
		return effect{}, false
	}
	if _, ok := other.(typedast.NilLit); !ok {
		return effect{}, false
	}
	if positive {
		return effect{target: name.Name, kind: requireNil}, true
	}
	return effect{target: name.Name, kind: excludeNil}, true
}

func typeComparisonEffect(candidate, other typedast.Expr, positive bool) (effect, bool) {
	call, ok := candidate.(typedast.Call)
	if !ok {
		return effect{}, false
	}
	callee, ok := call.Callee.(typedast.Name)
	if !ok || callee.Name != "type" || len(call.Args) != 1 {
		return effect{}, false
	}
	arg, ok := call.Args[0].(typedast.Name)
	if !ok {
		return effect{}, false
	}
	lit, ok := other.(typedast.StringLit)
	if !ok {
		return effect{}, false
	}
	k := conditionTypeName(lit.Value)
	if positive {
		return effect{target: arg.Name, kind: requireType, kindType: k}, true
	}
	return effect{target: arg.Name, kind: excludeType, kindType: k}, true
}

// applyEffects returns a scope derived from base with every effect
// applied (spec.md §4.7.5's "Applying narrowing").
func applyEffects(base *Scope, effects []effect) *Scope {
	out := base.clone()
	for _, e := range effects {
		entry, ok := out.Get(e.target)
		if !ok {
			continue
		}
		out.Set(e.target, VariableEntry{Type: applyEffect(entry.Type, e), Annotated: entry.Annotated})
	}
	return out
}

func applyEffect(t types.Type, e effect) types.Type {
	switch e.kind {
	case requireNil:
		if types.Contains(t, types.Nil) {
			return types.Nil
		}
		return types.Unknown
	case excludeNil:
		return types.RemoveFromUnion(t, types.IsNil)
	case requireType:
		if types.Contains(t, e.kindType) {
			return e.kindType
		}
		return types.Unknown
	case excludeType:
		key := e.kindType.String()
		return types.RemoveFromUnion(t, func(member types.Type) bool {
			return member.String() == key
		})
	default:
		return t
	}
}

// joinScopes unions, for every name present in base, the post-branch
// types across the given scopes (spec.md §4.7.5's "Joining after
// branches"). annotated flags are OR-joined; names introduced inside a
// branch do not escape.
func joinScopes(base *Scope, branches []*Scope) *Scope {
	out := newScope()
	for _, name := range base.Names() {
		var types_ []types.Type
		annotated := false
		for _, b := range branches {
			if e, ok := b.Get(name); ok {
				types_ = append(types_, e.Type)
				annotated = annotated || e.Annotated
			}
		}
		if len(types_) == 0 {
			if e, ok := base.Get(name); ok {
				out.Set(name, e)
			}
			continue
		}
		out.Set(name, VariableEntry{Type: types.NewUnion(types_...), Annotated: annotated})
	}
	return out
}

// runBranch checks body against a cloned copy of base inside its own
// scope, returning the resulting (possibly narrowed/rebound) scope.
func (c *Checker) runBranch(base *Scope, effects []effect, body typedast.Block) *Scope {
	branchScope := applyEffects(base, effects)
	c.scopes = append(c.scopes, branchScope)
	c.checkBlock(body)
	result := c.scopes[len(c.scopes)-1]
	c.scopes = c.scopes[:len(c.scopes)-1]
	return result
}

func (c *Checker) checkIf(i typedast.If) {
	base := c.topScope()
	var branchResults []*Scope
	// accumulated carries every preceding branch's falsy effect composed
	// in turn, so an elseif's own truthy narrowing applies on top of all
	// earlier conditions having been false, not just base (spec.md
	// §4.7.5; matches Scenario C's type(value)=="string"/=="boolean"/else
	// chain excluding both String and Boolean from the else branch).
	accumulated := base
	for _, br := range i.Branches {
		c.inferExpr(br.Cond)
		truthy := analyzeCondition(br.Cond, true)
		branchResults = append(branchResults, c.runBranch(accumulated, truthy, br.Body))
		falsy := analyzeCondition(br.Cond, false)
		accumulated = applyEffects(accumulated, falsy)
	}
	if i.HasElse {
		branchResults = append(branchResults, c.runBranch(accumulated, nil, i.Else))
	} else {
		// No else: the fallthrough env (base with every branch's falsy
		// effect composed in) joins as an extra path (spec.md §4.7.5).
		branchResults = append(branchResults, accumulated)
	}
	joined := joinScopes(base, branchResults)
	c.scopes[len(c.scopes)-1] = joined
}

func (c *Checker) checkWhile(w typedast.While) {
	base := c.topScope()
	c.inferExpr(w.Cond)
	truthy := analyzeCondition(w.Cond, true)
	iter := c.runBranch(base, truthy, w.Body)
	joined := joinScopes(base, []*Scope{iter, base})
	c.scopes[len(c.scopes)-1] = joined
}

func (c *Checker) checkRepeat(r typedast.Repeat) {
	base := c.topScope()
	iter := c.runBranch(base, nil, r.Body)
	c.scopes = append(c.scopes, iter)
	c.inferExpr(r.Cond)
	c.scopes = c.scopes[:len(c.scopes)-1]
	joined := joinScopes(base, []*Scope{iter})
	c.scopes[len(c.scopes)-1] = joined
}

func (c *Checker) checkNumericFor(f typedast.NumericFor) {
	c.inferExpr(f.Start)
	c.inferExpr(f.Stop)
	if f.Step != nil {
		c.inferExpr(f.Step)
	}
	c.pushScope()
	c.declareLocal(f.Var, VariableEntry{Type: types.Number})
	c.checkBlock(f.Body)
	c.popScope()
}

func (c *Checker) checkGenericFor(f typedast.GenericFor) {
	c.inferExprs(f.Exprs)
	c.pushScope()
	for _, name := range f.Names {
		c.declareLocal(name, VariableEntry{Type: types.Unknown})
	}
	c.checkBlock(f.Body)
	c.popScope()
}
