package checker

import (
	"fmt"

	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// returnExpectation is the active function's declared @return list
// (spec.md §4.7.2: "push the returns list as the active return
// expectation"), consulted by checkReturn (§4.7.3).
type returnExpectation struct {
	sig typedast.FuncSig
}

// genericsSet builds a lookup from sig.Generics for substituteGenerics.
func genericsSet(names []string) map[string]bool {
	if len(names) == 0 {
		return nil
	}
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// substituteGenerics rewrites every types.Custom node whose name is in
// names into the matching types.Generic — the tag-expression parser
// (internal/annotation) has no notion of ---@generics, so it always
// produces Custom for a bare identifier; the checker promotes the ones
// a function's own ---@generics line names.
func substituteGenerics(t types.Type, names map[string]bool) types.Type {
	if len(names) == 0 || t == nil {
		return t
	}
	switch v := t.(type) {
	case types.Custom:
		if names[v.Name] {
			return types.Generic{Name: v.Name}
		}
		return v
	case types.Union:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = substituteGenerics(it, names)
		}
		return types.NewUnion(items...)
	case types.TableMap:
		return types.TableMap{
			Key:          substituteGenerics(v.Key, names),
			Value:        substituteGenerics(v.Value, names),
			IsArraySugar: v.IsArraySugar,
		}
	case types.Func:
		return types.Func{
			Params:  substituteGenericsParamList(v.Params, names),
			Returns: substituteGenericsParamList(v.Returns, names),
		}
	case types.Applied:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = substituteGenerics(a, names)
		}
		return types.Applied{Base: substituteGenerics(v.Base, names), Args: args}
	case types.Tuple:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = substituteGenerics(it, names)
		}
		return types.Tuple{Items: items}
	default:
		return t
	}
}

func substituteGenericsParamList(p types.ParamList, names map[string]bool) types.ParamList {
	fixed := make([]types.Type, len(p.Fixed))
	for i, t := range p.Fixed {
		fixed[i] = substituteGenerics(t, names)
	}
	out := types.ParamList{Fixed: fixed, Variadic: p.Variadic}
	if p.Variadic {
		out.Tail = substituteGenerics(p.Tail, names)
	}
	return out
}

// instantiateGenerics is the call-site counterpart of substituteGenerics:
// it replaces each types.Generic node named in subst with its bound
// (fresh) type, used to give each call its own type variables (spec.md
// §4.7.2: "on each call site, instantiate with fresh variables").
func instantiateGenerics(t types.Type, subst map[string]types.Type) types.Type {
	if len(subst) == 0 || t == nil {
		return t
	}
	switch v := t.(type) {
	case types.Generic:
		if repl, ok := subst[v.Name]; ok {
			return repl
		}
		return v
	case types.Union:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = instantiateGenerics(it, subst)
		}
		return types.NewUnion(items...)
	case types.TableMap:
		return types.TableMap{
			Key:          instantiateGenerics(v.Key, subst),
			Value:        instantiateGenerics(v.Value, subst),
			IsArraySugar: v.IsArraySugar,
		}
	case types.Func:
		return types.Func{
			Params:  instantiateGenericsParamList(v.Params, subst),
			Returns: instantiateGenericsParamList(v.Returns, subst),
		}
	case types.Applied:
		args := make([]types.Type, len(v.Args))
		for i, a := range v.Args {
			args[i] = instantiateGenerics(a, subst)
		}
		return types.Applied{Base: instantiateGenerics(v.Base, subst), Args: args}
	case types.Tuple:
		items := make([]types.Type, len(v.Items))
		for i, it := range v.Items {
			items[i] = instantiateGenerics(it, subst)
		}
		return types.Tuple{Items: items}
	default:
		return t
	}
}

func instantiateGenericsParamList(p types.ParamList, subst map[string]types.Type) types.ParamList {
	fixed := make([]types.Type, len(p.Fixed))
	for i, t := range p.Fixed {
		fixed[i] = instantiateGenerics(t, subst)
	}
	out := types.ParamList{Fixed: fixed, Variadic: p.Variadic}
	if p.Variadic {
		out.Tail = instantiateGenerics(p.Tail, subst)
	}
	return out
}

// funcType builds the types.Func for a function-like's signature,
// promoting ---@generics names to Generic within it.
func (c *Checker) funcType(params []string, variadic bool, sig typedast.FuncSig) types.Func {
	names := genericsSet(sig.Generics)
	fixed := make([]types.Type, len(params))
	for i, p := range params {
		t := types.Unknown
		if at, ok := sig.ParamTypes[p]; ok {
			t = c.resolveAnnotated(at)
		}
		fixed[i] = substituteGenerics(t, names)
	}
	paramList := types.ParamList{Fixed: fixed}
	if variadic {
		paramList.Variadic = true
		paramList.Tail = types.Unknown
	}
	rets := make([]types.Type, len(sig.Returns))
	for i, r := range sig.Returns {
		rets[i] = substituteGenerics(c.resolveAnnotated(r.AnnotatedType), names)
	}
	return types.Func{Params: paramList, Returns: types.FixedParams(rets...)}
}

// checkFunctionBody pushes a scope, binds params, pushes the return
// expectation, walks body, then pops both (spec.md §4.7.2).
func (c *Checker) checkFunctionBody(fn types.Func, params []string, sig typedast.FuncSig, body typedast.Block) {
	c.pushScope()
	for i, p := range params {
		t := types.Unknown
		if i < len(fn.Params.Fixed) {
			t = fn.Params.Fixed[i]
		}
		_, annotated := sig.ParamTypes[p]
		c.declareLocal(p, VariableEntry{Type: t, Annotated: annotated})
	}
	c.returnExpectations = append(c.returnExpectations, returnExpectation{sig: sig})
	c.checkBlock(body)
	c.returnExpectations = c.returnExpectations[:len(c.returnExpectations)-1]
	c.popScope()
}

func (c *Checker) checkFunctionDecl(f typedast.FunctionDecl) {
	fn := c.funcType(f.Params, f.Variadic, f.Sig)
	if name, ok := f.Target.(typedast.Name); ok && !f.IsMethod {
		c.assign(name.Name, VariableEntry{Type: fn, Annotated: len(f.Sig.Returns) > 0 || len(f.Sig.ParamTypes) > 0})
		if len(f.Sig.Generics) > 0 {
			c.genericFuncs[name.Name] = f.Sig.Generics
		}
	} else {
		c.inferExpr(f.Target)
	}
	params := f.Params
	if f.IsMethod {
		params = append([]string{"self"}, f.Params...)
	}
	c.checkFunctionBody(fn, params, f.Sig, f.Body)
}

func (c *Checker) checkLocalFunctionDecl(f typedast.LocalFunctionDecl) {
	fn := c.funcType(f.Params, f.Variadic, f.Sig)
	c.declareLocal(f.Name, VariableEntry{Type: fn, Annotated: len(f.Sig.Returns) > 0 || len(f.Sig.ParamTypes) > 0})
	if len(f.Sig.Generics) > 0 {
		c.genericFuncs[f.Name] = f.Sig.Generics
	}
	c.checkFunctionBody(fn, f.Params, f.Sig, f.Body)
}

func (c *Checker) checkAnonFunc(f typedast.AnonFunc) types.Type {
	fn := c.funcType(f.Params, f.Variadic, f.Sig)
	c.checkFunctionBody(fn, f.Params, f.Sig, f.Body)
	return fn
}

// checkReturn validates a return statement against the active
// expectation (spec.md §4.7.3). A return outside any function body
// (top-level chunk return) has nothing to validate against.
func (c *Checker) checkReturn(r typedast.Return) {
	vals := c.inferExprs(r.Values)
	if len(c.returnExpectations) == 0 {
		return
	}
	exp := c.returnExpectations[len(c.returnExpectations)-1]
	expected := exp.sig.Returns
	switch {
	case len(vals) < len(expected):
		c.addDiag(r.Range(), diagnostics.ReturnTypeMismatch, fmt.Sprintf(
			"function annotated to return %d value(s) … but this return statement provides %d",
			len(expected), len(vals)))
		return
	case len(vals) > len(expected):
		c.addDiag(r.Range(), diagnostics.ReturnTypeMismatch, fmt.Sprintf(
			"function returns %d value(s) but only %d annotated via @return",
			len(vals), len(expected)))
		return
	}
	names := genericsSet(exp.sig.Generics)
	for i, ann := range expected {
		expectedType := substituteGenerics(c.resolveAnnotated(ann.AnnotatedType), names)
		if ann.AnnotatedType.Kind == nil {
			continue
		}
		if !matches(expectedType, vals[i]) {
			label := fmt.Sprintf("%d", i+1)
			if ann.Name != "" {
				label = "'" + ann.Name + "'"
			}
			c.addDiag(r.Values[i].Range(), diagnostics.ReturnTypeMismatch, fmt.Sprintf(
				"return value %s is annotated as type %s but inferred type is %s",
				label, types.Display(expectedType), types.Display(vals[i])))
		}
	}
}

// checkCall infers a call's result type, instantiating fresh type
// variables per ---@generics-declared callee (spec.md §4.7.2) and
// reporting ParamTypeMismatch for argument/parameter mismatches under
// matches().
func (c *Checker) checkCall(call typedast.Call) types.Type {
	calleeType := c.inferExpr(call.Callee)
	args := c.inferExprs(call.Args)

	fn, ok := calleeType.(types.Func)
	if !ok {
		if _, isVar := calleeType.(types.Var); isVar {
			return c.solveCallable(calleeType, args)
		}
		return types.Unknown
	}

	if name, ok := call.Callee.(typedast.Name); ok {
		if genNames := c.genericFuncs[name.Name]; len(genNames) > 0 {
			subst := make(map[string]types.Type, len(genNames))
			for _, n := range genNames {
				subst[n] = c.gen.Fresh()
			}
			fn = types.Func{
				Params:  instantiateGenericsParamList(fn.Params, subst),
				Returns: instantiateGenericsParamList(fn.Returns, subst),
			}
			if len(args) == len(fn.Params.Fixed) {
				s := types.Subst{}
				for i, p := range fn.Params.Fixed {
					if s2, err := types.Unify(p.Apply(s), args[i]); err == nil {
						s = s.Compose(s2)
					}
				}
				fn.Params = applyParamList(fn.Params, s)
				fn.Returns = applyParamList(fn.Returns, s)
			}
		}
	}

	c.checkArgs(call.Args, args, fn.Params)
	return returnTypeOf(fn.Returns)
}

// solveCallable resolves a call whose callee type is still an
// unconstrained Var (spec.md §4.5's Callable constraint) by routing it
// through the Solver instead of giving up with Unknown outright.
func (c *Checker) solveCallable(fn types.Type, args []types.Type) types.Type {
	result := c.gen.Fresh()
	subst, err := types.Solve([]types.Constraint{types.Callable{Fn: fn, Args: args, Returns: result}})
	if err != nil {
		return types.Unknown
	}
	return concreteOrUnknown(result.Apply(subst))
}

func (c *Checker) checkMethodCall(mc typedast.MethodCall) types.Type {
	target := c.inferExpr(mc.Target)
	args := c.inferExprs(mc.Args)
	var fnType types.Type = types.Unknown
	if custom, ok := target.(types.Custom); ok {
		if t, ok := c.registry.FieldAnnotation(custom.Name, mc.Method); ok {
			fnType = t
		}
	}
	fn, ok := fnType.(types.Func)
	if !ok {
		return types.Unknown
	}
	c.checkArgs(mc.Args, args, fn.Params)
	return returnTypeOf(fn.Returns)
}

func (c *Checker) checkArgs(argExprs []typedast.Expr, args []types.Type, params types.ParamList) {
	expanded := expandParamList(params, len(args))
	for i, actual := range args {
		if i >= len(expanded) {
			break
		}
		expected := expanded[i]
		if !matches(expected, actual) {
			c.addDiag(argExprs[i].Range(), diagnostics.ParamTypeMismatch, fmt.Sprintf(
				"argument %d is expected to be type %s but inferred type is %s",
				i+1, types.Display(expected), types.Display(actual)))
		}
	}
}

// applyParamList applies s to every member of p (ParamList.Apply is
// unexported in internal/types).
func applyParamList(p types.ParamList, s types.Subst) types.ParamList {
	fixed := make([]types.Type, len(p.Fixed))
	for i, t := range p.Fixed {
		fixed[i] = t.Apply(s)
	}
	out := types.ParamList{Fixed: fixed, Variadic: p.Variadic}
	if p.Variadic {
		out.Tail = p.Tail.Apply(s)
	}
	return out
}

// returnTypeOf collapses a function's Returns ParamList into the Type an
// expression context observes: Nil with none, the sole type with one,
// otherwise a Tuple.
func returnTypeOf(returns types.ParamList) types.Type {
	switch len(returns.Fixed) {
	case 0:
		if returns.Variadic {
			return returns.Tail
		}
		return types.Nil
	case 1:
		return returns.Fixed[0]
	default:
		return types.Tuple{Items: returns.Fixed}
	}
}
