package types

import "strings"

// RecordField is one ordered field of a Record table type.
type RecordField struct {
	Name string
	Type Type
}

// Record is Table::Record{fields, exact} from spec.md §3.2: an ordered
// mapping from field name to type. Exact records reject unknown fields
// (see checker.checkFieldAssignment).
type Record struct {
	Fields []RecordField
	Exact  bool
}

func (r Record) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, f := range r.Fields {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(f.Name)
		b.WriteString(": ")
		b.WriteString(f.Type.String())
	}
	b.WriteString("}")
	return b.String()
}

func (r Record) Apply(s Subst) Type {
	fields := make([]RecordField, len(r.Fields))
	for i, f := range r.Fields {
		fields[i] = RecordField{Name: f.Name, Type: f.Type.Apply(s)}
	}
	return Record{Fields: fields, Exact: r.Exact}
}

func (r Record) FreeTypeVariables() []string {
	var out []string
	for _, f := range r.Fields {
		out = append(out, f.Type.FreeTypeVariables()...)
	}
	return out
}

// Field looks up a field by name, reporting whether it exists.
func (r Record) Field(name string) (Type, bool) {
	for _, f := range r.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// HasAllFieldsOf reports whether r has every field (by name) that other has.
func (r Record) HasAllFieldsOf(other Record) bool {
	for _, f := range other.Fields {
		if _, ok := r.Field(f.Name); !ok {
			return false
		}
	}
	return true
}

// TableMap is Table::Map{key, value} from spec.md §3.2. When
// IsArraySugar is set it represents the Array(T) sugar (key=Integer)
// and displays as "T[]" (see Display).
type TableMap struct {
	Key         Type
	Value       Type
	IsArraySugar bool
}

// ArrayOf builds the Array(T) sugar: Table::Map{key=Integer, value=T}.
func ArrayOf(elem Type) Type {
	return TableMap{Key: Integer, Value: elem, IsArraySugar: true}
}

func (m TableMap) String() string {
	if m.IsArraySugar {
		return m.Value.String() + "[]"
	}
	return "table<" + m.Key.String() + ", " + m.Value.String() + ">"
}

func (m TableMap) Apply(s Subst) Type {
	return TableMap{Key: m.Key.Apply(s), Value: m.Value.Apply(s), IsArraySugar: m.IsArraySugar}
}

func (m TableMap) FreeTypeVariables() []string {
	return append(append([]string{}, m.Key.FreeTypeVariables()...), m.Value.FreeTypeVariables()...)
}

// IsArray reports whether t is the Array(T) sugar, returning its element
// type.
func IsArray(t Type) (Type, bool) {
	if m, ok := t.(TableMap); ok && m.IsArraySugar {
		return m.Value, true
	}
	return nil, false
}

// IsTableLike reports whether t is any table-shaped type (Record, Map,
// or the Array sugar), used by the checker's "#" operator and
// Table-compatibility rules (spec.md §4.6).
func IsTableLike(t Type) bool {
	switch t.(type) {
	case Record, TableMap:
		return true
	default:
		return false
	}
}
