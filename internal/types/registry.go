package types

// AnnotatedType is the result of parsing a single ---@ type expression
// (spec.md §3.4). Raw preserves the original text for diagnostics; Kind
// is nil when Raw was "any" or failed to parse (malformed tags degrade
// to Unknown rather than aborting extraction, spec.md §4.1).
type AnnotatedType struct {
	Raw  string
	Kind Type
}

// Class is a ---@class declaration: a named, optionally-exact record
// shape with an optional parent to walk for inherited fields (spec.md
// §3.4, §4.7.4). Grounded on funxy/internal/symbols's SymbolTable
// registries (name -> declaration maps with a separate ordered field
// list), adapted from trait bookkeeping to class/field bookkeeping.
type Class struct {
	Name   string
	Parent string
	Exact  bool
	order  []string
	fields map[string]Type
}

// NewClass returns an empty class ready for AddField calls.
func NewClass(name string) *Class {
	return &Class{Name: name, fields: map[string]Type{}}
}

// AddField records a field, overwriting any previous annotation for the
// same name (later ---@field tags in the same class block win).
func (c *Class) AddField(name string, t Type) {
	if _, exists := c.fields[name]; !exists {
		c.order = append(c.order, name)
	}
	c.fields[name] = t
}

// OwnField looks up a field declared directly on c, not following Parent.
func (c *Class) OwnField(name string) (Type, bool) {
	t, ok := c.fields[name]
	return t, ok
}

// OwnFields returns c's own fields as a Record, in declaration order.
func (c *Class) OwnFields() Record {
	fields := make([]RecordField, len(c.order))
	for i, name := range c.order {
		fields[i] = RecordField{Name: name, Type: c.fields[name]}
	}
	return Record{Fields: fields, Exact: c.Exact}
}

// Registry holds every ---@class and ---@enum declaration seen across a
// workspace (spec.md §3.4: "a workspace-wide table of named declared
// types"). Grounded on funxy/internal/symbols's SymbolTable: flat,
// map-keyed-by-name registries rather than a scope chain, since class
// declarations are workspace-global and not lexically scoped.
type Registry struct {
	Classes map[string]*Class
	Enums   map[string]bool
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{Classes: map[string]*Class{}, Enums: map[string]bool{}}
}

// Extend merges other into r. On a class-name collision, other's fields
// win field-by-field (last writer wins), and its Exact/Parent flags win
// outright (spec.md §3.4, line 84: "last-writer-wins for exact/parent
// flags") rather than only ever turning Exact on or Parent non-empty;
// callers merge per-file registries in sorted file-path order so the
// merge result is deterministic regardless of goroutine scheduling
// (spec.md §5).
func (r *Registry) Extend(other *Registry) {
	for name, class := range other.Classes {
		existing, ok := r.Classes[name]
		if !ok {
			r.Classes[name] = class
			continue
		}
		existing.Parent = class.Parent
		existing.Exact = class.Exact
		for _, fname := range class.order {
			existing.AddField(fname, class.fields[fname])
		}
	}
	for name := range other.Enums {
		r.Enums[name] = true
	}
}

// FieldAnnotation resolves a field's declared type by walking className
// and its ancestors through Parent, stopping at the first declaration
// found. A cycle in the parent chain (which should never be produced by
// well-formed ---@class annotations) is bounded by a visited set rather
// than looping forever.
func (r *Registry) FieldAnnotation(className, field string) (Type, bool) {
	visited := map[string]bool{}
	for className != "" && !visited[className] {
		visited[className] = true
		class, ok := r.Classes[className]
		if !ok {
			return nil, false
		}
		if t, ok := class.OwnField(field); ok {
			return t, true
		}
		className = class.Parent
	}
	return nil, false
}

// AsRecord flattens className's own and inherited fields into a single
// Record, used when a class type needs to be checked as a table shape
// (e.g. spec.md §4.7.4's field-assignment validation).
func (r *Registry) AsRecord(className string) (Record, bool) {
	visited := map[string]bool{}
	seen := map[string]bool{}
	var fields []RecordField
	exact := false
	name := className
	first := true
	for name != "" && !visited[name] {
		visited[name] = true
		class, ok := r.Classes[name]
		if !ok {
			break
		}
		if first {
			exact = class.Exact
			first = false
		}
		for _, fname := range class.order {
			if seen[fname] {
				continue
			}
			seen[fname] = true
			fields = append(fields, RecordField{Name: fname, Type: class.fields[fname]})
		}
		name = class.Parent
	}
	if first {
		return Record{}, false
	}
	return Record{Fields: fields, Exact: exact}, true
}
