package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/types"
)

func TestScopeSetGetPreservesOrder(t *testing.T) {
	s := newScope()
	s.Set("b", VariableEntry{Type: types.Number})
	s.Set("a", VariableEntry{Type: types.String})
	s.Set("b", VariableEntry{Type: types.Boolean}) // rebind, order unchanged

	if got := s.Names(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Fatalf("expected declaration order [b a], got %v", got)
	}
	e, ok := s.Get("b")
	if !ok || e.Type != types.Boolean {
		t.Fatalf("expected rebind to update b's type")
	}
}

func TestScopeCloneIsIndependent(t *testing.T) {
	s := newScope()
	s.Set("x", VariableEntry{Type: types.Number})
	clone := s.clone()
	clone.Set("x", VariableEntry{Type: types.String})

	orig, _ := s.Get("x")
	if orig.Type != types.Number {
		t.Fatal("mutating the clone must not affect the original scope")
	}
}

func TestCheckerLookupInnermostFirst(t *testing.T) {
	c := New("test.lua", types.NewRegistry())
	c.declareLocal("x", VariableEntry{Type: types.Number})
	c.pushScope()
	c.declareLocal("x", VariableEntry{Type: types.String})

	e, ok := c.lookup("x")
	if !ok || e.Type != types.String {
		t.Fatal("expected innermost binding of x to shadow the outer one")
	}
	c.popScope()
	e, ok = c.lookup("x")
	if !ok || e.Type != types.Number {
		t.Fatal("expected outer binding of x to resurface after popScope")
	}
}

func TestCheckerAssignRebindsExistingAcrossScopes(t *testing.T) {
	c := New("test.lua", types.NewRegistry())
	c.declareLocal("x", VariableEntry{Type: types.Number})
	c.pushScope()
	c.assign("x", VariableEntry{Type: types.String})
	c.popScope()

	e, ok := c.lookup("x")
	if !ok || e.Type != types.String {
		t.Fatal("expected assign to rebind the outer x in place, not shadow it")
	}
}

func TestCheckerAssignDeclaresImplicitGlobal(t *testing.T) {
	c := New("test.lua", types.NewRegistry())
	c.pushScope()
	c.assign("g", VariableEntry{Type: types.Boolean})
	c.popScope()

	if _, ok := c.scopes[0].Get("g"); !ok {
		t.Fatal("expected an unbound assignment target to become an implicit global")
	}
}
