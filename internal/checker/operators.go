package checker

import (
	"fmt"

	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

var arithmeticOps = map[string]bool{"+": true, "-": true, "*": true, "/": true, "%": true, "^": true}
var comparisonOps = map[string]bool{"==": true, "~=": true, "<": true, "<=": true, ">": true, ">=": true}

// checkBinary implements spec.md §4.7.6's binary operator table.
func (c *Checker) checkBinary(b typedast.Binary) types.Type {
	left := c.inferExpr(b.Left)
	right := c.inferExpr(b.Right)

	switch {
	case arithmeticOps[b.Op]:
		if !matches(types.Number, left) {
			c.addDiag(b.Left.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"left operand of '%s' must be type number but inferred type is %s", b.Op, types.Display(left)))
		}
		if !matches(types.Number, right) {
			c.addDiag(b.Right.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"right operand of '%s' must be type number but inferred type is %s", b.Op, types.Display(right)))
		}
		return types.Number
	case b.Op == "..":
		if !matches(types.String, left) {
			c.addDiag(b.Left.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"left operand of '..' must be type string but inferred type is %s", types.Display(left)))
		}
		if !matches(types.String, right) {
			c.addDiag(b.Right.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"right operand of '..' must be type string but inferred type is %s", types.Display(right)))
		}
		return types.String
	case b.Op == "and" || b.Op == "or":
		// Strict Boolean semantics (spec.md §4.7.6 / §9 Open Questions):
		// a prior implementation propagated truthy operand types; this
		// one requires both operands Boolean and yields Boolean.
		if !matches(types.Boolean, left) {
			c.addDiag(b.Left.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"left operand of '%s' must be type boolean but inferred type is %s", b.Op, types.Display(left)))
		}
		if !matches(types.Boolean, right) {
			c.addDiag(b.Right.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"right operand of '%s' must be type boolean but inferred type is %s", b.Op, types.Display(right)))
		}
		return types.Boolean
	case comparisonOps[b.Op]:
		if !matches(left, right) && !matches(right, left) {
			c.addDiag(b.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"operands of '%s' are incompatible types %s and %s", b.Op, types.Display(left), types.Display(right)))
		}
		return types.Boolean
	default:
		return types.Unknown
	}
}

// checkUnary implements spec.md §4.7.6's unary operator table.
func (c *Checker) checkUnary(u typedast.Unary) types.Type {
	operand := c.inferExpr(u.Operand)
	switch u.Op {
	case "-":
		if !matches(types.Number, operand) {
			c.addDiag(u.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"operand of unary '-' must be type number but inferred type is %s", types.Display(operand)))
		}
		return types.Number
	case "#":
		if !matches(types.String, operand) && !types.IsTableLike(operand) && !types.IsUnknown(operand) {
			c.addDiag(u.Range(), diagnostics.AssignTypeMismatch, fmt.Sprintf(
				"operand of '#' must be type string or table but inferred type is %s", types.Display(operand)))
		}
		return types.Number
	case "not":
		return types.Boolean
	default:
		return types.Unknown
	}
}
