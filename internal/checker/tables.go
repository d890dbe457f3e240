package checker

import (
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

// inferTableCtor implements spec.md §4.7.7: an all-array-positional
// constructor infers Array(union of element types), and an empty one
// infers the array sugar unknown[]; an all-named constructor infers a
// non-exact Record from its fields; any mix of entry kinds, or any
// computed [expr] key, infers TableMap{unknown, unknown}.
func (c *Checker) inferTableCtor(t typedast.TableCtor) types.Type {
	var elemTypes []types.Type
	var fields []types.RecordField
	hasPositional, hasNamed, hasComputed := false, false, false

	for _, f := range t.Fields {
		valTy := c.inferExpr(f.Value)
		switch {
		case f.Key != "":
			hasNamed = true
			fields = append(fields, types.RecordField{Name: f.Key, Type: valTy})
		case f.KeyExpr != nil:
			hasComputed = true
			c.inferExpr(f.KeyExpr)
		default:
			hasPositional = true
			elemTypes = append(elemTypes, valTy)
		}
	}

	switch {
	case !hasNamed && !hasComputed:
		if len(elemTypes) == 0 {
			return types.TableMap{Key: types.Integer, Value: types.Unknown, IsArraySugar: true}
		}
		return types.ArrayOf(types.NewUnion(elemTypes...))
	case hasNamed && !hasPositional && !hasComputed:
		return types.Record{Fields: fields, Exact: false}
	default:
		return types.TableMap{Key: types.Unknown, Value: types.Unknown}
	}
}
