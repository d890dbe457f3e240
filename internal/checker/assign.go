package checker

import (
	"fmt"

	"github.com/typua-lang/typua/internal/annotation"
	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/position"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// pickAnnotation prefers a name-qualified ---@type annotation for target
// over an anonymous one (spec.md §4.1/§4.7.1: "prefer name-qualified
// match over anonymous"). typedast's builder already restricts these to
// Type-usage annotations (see typeAnnotationsAt).
func pickAnnotation(anns []annotation.Annotation, target string) (annotation.Annotation, bool) {
	var anon annotation.Annotation
	haveAnon := false
	for _, a := range anns {
		if a.Name == target {
			return a, true
		}
		if a.Name == "" && !haveAnon {
			anon = a
			haveAnon = true
		}
	}
	return anon, haveAnon
}

// exprRange returns the i-th RHS expression's range, falling back to the
// last RHS expression's range when i is past the end (surplus LHS), or
// an invalid range when there is no RHS at all.
func exprRange(rhs []typedast.Expr, i int) position.Range {
	if i < len(rhs) {
		return rhs[i].Range()
	}
	if len(rhs) > 0 {
		return rhs[len(rhs)-1].Range()
	}
	return position.Invalid
}

func (c *Checker) checkLocalAssign(la typedast.LocalAssign) {
	values := c.inferExprs(la.Values)
	for i, name := range la.Names {
		inferred := positional(values, i)
		entry := c.resolveAssignTarget(name, i, la.ClassHints, la.Values, inferred, la.Annotations)
		c.declareLocal(name, entry)
	}
}

func (c *Checker) checkAssign(a typedast.Assign) {
	values := c.inferExprs(a.Values)
	for i, target := range a.Targets {
		inferred := positional(values, i)
		if name, ok := target.(typedast.Name); ok {
			existing, hadExisting := c.lookup(name.Name)
			entry := c.resolveAssignTarget(name.Name, i, a.ClassHints, a.Values, inferred, a.Annotations)
			if hadExisting && existing.Annotated && !matches(existing.Type, inferred) {
				c.addDiag(target.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
					"%s was annotated as type %s but reassigned with type %s",
					name.Name, types.Display(existing.Type), types.Display(inferred)))
			}
			c.assign(name.Name, entry)
			continue
		}
		if fa, ok := target.(typedast.FieldAccess); ok {
			c.checkFieldAssignment(fa, inferred)
			continue
		}
		c.inferExpr(target)
	}
}

// resolveAssignTarget implements spec.md §4.7.1 step 2 for one LHS name
// target.
func (c *Checker) resolveAssignTarget(
	name string,
	pos int,
	classHints []string,
	rhs []typedast.Expr,
	inferred types.Type,
	anns []annotation.Annotation,
) VariableEntry {
	span := exprRange(rhs, pos)
	if cand, ok := pickAnnotation(anns, name); ok {
		if cand.AnnotatedType.Kind == nil {
			// "any" or a malformed tag disables enforcement (spec.md
			// §8.3): record the inferred type, not Any.
			c.record(span, inferred)
			return VariableEntry{Type: inferred, Annotated: false}
		}
		expected := c.resolveAnnotated(cand.AnnotatedType)
		if !matches(expected, inferred) {
			c.addDiag(span, diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"%s was annotated as type %s but inferred type is %s",
				name, types.Display(expected), types.Display(inferred)))
		}
		c.record(span, expected)
		return VariableEntry{Type: expected, Annotated: true}
	}
	if pos < len(rhs) {
		if _, isTableCtor := rhs[pos].(typedast.TableCtor); isTableCtor && len(classHints) > 0 {
			ct := types.Custom{Name: classHints[0]}
			c.record(span, ct)
			return VariableEntry{Type: ct, Annotated: true}
		}
	}
	return VariableEntry{Type: inferred, Annotated: false}
}

// checkFieldAssignment implements validate_field_assignment (spec.md
// §4.7.4).
func (c *Checker) checkFieldAssignment(fa typedast.FieldAccess, valueTy types.Type) {
	target := c.inferExpr(fa.Target)
	custom, ok := target.(types.Custom)
	if !ok {
		return
	}
	expected, found := c.registry.FieldAnnotation(custom.Name, fa.Field)
	if found {
		if !matches(expected, valueTy) {
			c.addDiag(fa.Range(), diagnostics.ParamTypeMismatch, fmt.Sprintf(
				"field '%s' in class %s expects type %s but value is type %s",
				fa.Field, custom.Name, types.Display(expected), types.Display(valueTy)))
		}
		c.record(fa.Range(), expected)
		return
	}
	if class, ok := c.registry.Classes[custom.Name]; ok && class.Exact {
		c.addDiag(fa.Range(), diagnostics.UndefinedField, fmt.Sprintf(
			"class %s is exact and has no field '%s'", custom.Name, fa.Field))
		return
	}
	c.record(fa.Range(), valueTy)
}
