package checker

import (
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/position"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// Checker walks one file's typed program, maintaining the scope stack
// described in spec.md §3.6/§4.7. It is single-use: construct with New,
// call Check once.
type Checker struct {
	file     string
	registry *types.Registry
	scopes   []*Scope

	// genericFuncs records the ---@generics parameter names introduced by
	// a named function declaration, keyed by the bound name, so Call
	// expressions can look up and instantiate them (spec.md §4.7.2).
	genericFuncs map[string][]string

	// returnExpectations is the stack of active @return lists (spec.md
	// §4.7.2), one pushed per function body entered.
	returnExpectations []returnExpectation

	collector *diagnostics.Collector
	typeMap   map[position.Position]diagnostics.TypeMapEntry
	gen       types.VarGenerator
}

// New returns a Checker ready to check one file against registry (the
// merged workspace TypeRegistry, spec.md §3.4).
func New(file string, registry *types.Registry) *Checker {
	c := &Checker{
		file:         file,
		registry:     registry,
		genericFuncs: map[string][]string{},
		collector:    diagnostics.NewCollector(),
		typeMap:      map[position.Position]diagnostics.TypeMapEntry{},
	}
	c.pushScope() // the bottom scope is the module's global scope (§3.6)
	return c
}

// Check walks prog and returns the accumulated diagnostics and type map.
func Check(file string, registry *types.Registry, prog *typedast.Program) *diagnostics.CheckResult {
	c := New(file, registry)
	c.checkBlock(prog.Block)
	return &diagnostics.CheckResult{Diagnostics: c.collector.Finish(), TypeMap: c.typeMap}
}

func (c *Checker) addDiag(rng position.Range, code diagnostics.Code, msg string) {
	c.collector.Add(diagnostics.Diagnostic{
		File:     c.file,
		Message:  msg,
		Severity: diagnostics.Error,
		Range:    rng,
		Code:     code,
	})
}

// record stores t's display form in the type map at start, matching
// spec.md §4.8's "Position -> {ty_display, end_line, end_character}".
// Invalid positions (synthetic nodes built without source spans) are
// silently skipped, as is Unknown: spec.md §3.2 is explicit that Unknown
// is never emitted as an inferred fact.
func (c *Checker) record(span position.Range, t types.Type) {
	if !span.Start.IsValid() || types.IsUnknown(t) {
		return
	}
	c.typeMap[span.Start] = diagnostics.TypeMapEntry{
		Display:      types.Display(t),
		EndLine:      span.End.Line,
		EndCharacter: span.End.Column,
	}
}

func (c *Checker) resolveAnnotated(at types.AnnotatedType) types.Type {
	if at.Kind == nil {
		return types.Unknown
	}
	return at.Kind
}

func (c *Checker) checkBlock(b typedast.Block) {
	for _, s := range b.Stmts {
		c.checkStmt(s)
	}
}

func (c *Checker) checkStmt(s typedast.Stmt) {
	switch v := s.(type) {
	case typedast.LocalAssign:
		c.checkLocalAssign(v)
	case typedast.Assign:
		c.checkAssign(v)
	case typedast.FunctionDecl:
		c.checkFunctionDecl(v)
	case typedast.LocalFunctionDecl:
		c.checkLocalFunctionDecl(v)
	case typedast.If:
		c.checkIf(v)
	case typedast.While:
		c.checkWhile(v)
	case typedast.Repeat:
		c.checkRepeat(v)
	case typedast.NumericFor:
		c.checkNumericFor(v)
	case typedast.GenericFor:
		c.checkGenericFor(v)
	case typedast.Do:
		c.checkDoBlock(v)
	case typedast.Return:
		c.checkReturn(v)
	case typedast.CallStmt:
		c.inferExpr(v.Call)
	case typedast.Goto, typedast.Label, typedast.Break, typedast.Unknown:
		// no type-level effect
	}
}

func (c *Checker) checkDoBlock(d typedast.Do) {
	c.pushScope()
	c.checkBlock(d.Body)
	c.popScope()
}

// inferExpr computes e's type, recording a type-map entry for every
// expression it visits (not just assignment RHS) so IDE hover/inlay
// features have full coverage.
func (c *Checker) inferExpr(e typedast.Expr) types.Type {
	if e == nil {
		return types.Unknown
	}
	t := c.inferExprRaw(e)
	c.record(e.Range(), t)
	return t
}

func (c *Checker) inferExprRaw(e typedast.Expr) types.Type {
	switch v := e.(type) {
	case typedast.NilLit:
		return types.Nil
	case typedast.BoolLit:
		return types.Boolean
	case typedast.NumberLit:
		return types.Number
	case typedast.StringLit:
		return types.String
	case typedast.Name:
		if entry, ok := c.lookup(v.Name); ok {
			return entry.Type
		}
		return types.Unknown
	case typedast.FieldAccess:
		return c.inferFieldRead(v)
	case typedast.Index:
		return c.inferIndexRead(v)
	case typedast.Unary:
		return c.checkUnary(v)
	case typedast.Binary:
		return c.checkBinary(v)
	case typedast.AnonFunc:
		return c.checkAnonFunc(v)
	case typedast.Call:
		return c.checkCall(v)
	case typedast.MethodCall:
		return c.checkMethodCall(v)
	case typedast.TableCtor:
		return c.inferTableCtor(v)
	case typedast.Paren:
		// original_source note: a parenthesized expression's own position
		// still gets a type-map entry for its inner expression's start,
		// so inlay hints land on the meaningful token.
		inner := c.inferExpr(v.Inner)
		return inner
	default:
		return types.Unknown
	}
}

func (c *Checker) inferFieldRead(f typedast.FieldAccess) types.Type {
	target := c.inferExpr(f.Target)
	if custom, ok := target.(types.Custom); ok {
		if t, ok := c.registry.FieldAnnotation(custom.Name, f.Field); ok {
			return t
		}
		if c.registry.Enums[custom.Name] {
			return types.Unknown
		}
		return types.Unknown
	}
	if rec, ok := target.(types.Record); ok {
		if t, ok := rec.Field(f.Field); ok {
			return t
		}
	}
	if _, ok := target.(types.Var); ok {
		return c.solveHasField(target, f.Field)
	}
	return types.Unknown
}

func (c *Checker) inferIndexRead(ix typedast.Index) types.Type {
	target := c.inferExpr(ix.Target)
	keyType := c.inferExpr(ix.Key)
	if m, ok := target.(types.TableMap); ok {
		return m.Value
	}
	if _, ok := target.(types.Var); ok {
		return c.solveIndex(target, keyType)
	}
	return types.Unknown
}

// solveHasField resolves a field read on a target whose type is still an
// unconstrained Var (left over from a ---@generics return type no
// argument unification pinned down, spec.md §4.7.2) by routing a
// HasField constraint through the Constraint Solver (spec.md §4.5)
// instead of giving up with Unknown outright.
func (c *Checker) solveHasField(target types.Type, field string) types.Type {
	result := c.gen.Fresh()
	subst, err := types.Solve([]types.Constraint{types.HasField{On: target, Field: field, Type: result}})
	if err != nil {
		return types.Unknown
	}
	return concreteOrUnknown(result.Apply(subst))
}

// solveIndex is solveHasField's counterpart for `target[key]` reads.
func (c *Checker) solveIndex(target, keyType types.Type) types.Type {
	value := c.gen.Fresh()
	subst, err := types.Solve([]types.Constraint{types.Index{On: target, KeyType: keyType, ValueType: value}})
	if err != nil {
		return types.Unknown
	}
	return concreteOrUnknown(value.Apply(subst))
}

// concreteOrUnknown treats a still-unbound Var coming back out of the
// solver the same as Unknown: the constraint narrowed nothing further,
// so there is no fact worth reporting.
func concreteOrUnknown(t types.Type) types.Type {
	if _, ok := t.(types.Var); ok {
		return types.Unknown
	}
	return t
}

func (c *Checker) inferExprs(exprs []typedast.Expr) []types.Type {
	out := make([]types.Type, len(exprs))
	for i, e := range exprs {
		out[i] = c.inferExpr(e)
	}
	return out
}

// positional returns the i-th element of ts, or Nil when i is past the
// end (spec.md §4.7.1: "surplus LHS default to Nil").
func positional(ts []types.Type, i int) types.Type {
	if i < len(ts) {
		return ts[i]
	}
	return types.Nil
}
