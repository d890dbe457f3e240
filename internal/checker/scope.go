// Package checker walks a typedast.Program and emits diagnostics plus a
// position-keyed type map (spec.md §4.7), using internal/types for the
// type language and internal/diagnostics for the output shape.
//
// Grounded on funxy/internal/analyzer's walker: a single struct holding a
// scope stack, a running diagnostics set, and a type map, walked with one
// recursive-descent pass per statement kind.
package checker

import "github.com/typua-lang/typua/internal/types"

// VariableEntry is spec.md §3.6: a name's current type plus whether it
// carries an explicit annotation that reassignment must respect.
type VariableEntry struct {
	Type      types.Type
	Annotated bool
}

// Scope is an ordered Name -> VariableEntry mapping (spec.md §3.6).
// Order is preserved so narrowing joins (§4.7.5) can iterate
// deterministically.
type Scope struct {
	order   []string
	entries map[string]VariableEntry
}

func newScope() *Scope {
	return &Scope{entries: map[string]VariableEntry{}}
}

// Get looks up name in this scope only (no parent walk).
func (s *Scope) Get(name string) (VariableEntry, bool) {
	e, ok := s.entries[name]
	return e, ok
}

// Set binds or rebinds name in this scope.
func (s *Scope) Set(name string, e VariableEntry) {
	if _, exists := s.entries[name]; !exists {
		s.order = append(s.order, name)
	}
	s.entries[name] = e
}

// Names returns the scope's bound names in declaration order.
func (s *Scope) Names() []string {
	return append([]string{}, s.order...)
}

// clone returns an independent copy, used to snapshot a scope before
// exploring a narrowed branch (spec.md §4.7.5).
func (s *Scope) clone() *Scope {
	c := newScope()
	c.order = append(c.order, s.order...)
	for k, v := range s.entries {
		c.entries[k] = v
	}
	return c
}

// pushScope opens a new lexical scope (function body, branch, loop body).
func (c *Checker) pushScope() {
	c.scopes = append(c.scopes, newScope())
}

// popScope closes the innermost scope.
func (c *Checker) popScope() {
	c.scopes = c.scopes[:len(c.scopes)-1]
}

func (c *Checker) topScope() *Scope {
	return c.scopes[len(c.scopes)-1]
}

// lookup walks the scope stack innermost-first (spec.md §4.7: "maintaining
// a scope stack").
func (c *Checker) lookup(name string) (VariableEntry, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if e, ok := c.scopes[i].Get(name); ok {
			return e, true
		}
	}
	return VariableEntry{}, false
}

// assign rebinds an existing name wherever it lives on the stack, or
// declares it as an implicit global (scope index 0) if it is new —
// matching Lua's own assignment semantics.
func (c *Checker) assign(name string, e VariableEntry) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i].Get(name); ok {
			c.scopes[i].Set(name, e)
			return
		}
	}
	c.scopes[0].Set(name, e)
}

// declareLocal binds name in the innermost scope only, shadowing any
// outer binding of the same name (Lua `local` semantics).
func (c *Checker) declareLocal(name string, e VariableEntry) {
	c.topScope().Set(name, e)
}
