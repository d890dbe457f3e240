package diagnostics

import (
	"testing"

	"github.com/typua-lang/typua/internal/position"
)

func at(line, col int) position.Range {
	return position.Range{Start: position.Position{Line: line, Column: col}, End: position.Position{Line: line, Column: col + 1}}
}

func TestCollectorDedupesByPositionAndCode(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Message: "first", Range: at(1, 1), Code: AssignTypeMismatch})
	c.Add(Diagnostic{Message: "second", Range: at(1, 1), Code: AssignTypeMismatch})
	out := c.Finish()
	if len(out) != 1 {
		t.Fatalf("expected dedup to 1 diagnostic, got %d", len(out))
	}
	if out[0].Message != "second" {
		t.Fatalf("expected latest report to win, got %q", out[0].Message)
	}
}

func TestCollectorSortsByPosition(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Message: "later", Range: at(5, 1), Code: AssignTypeMismatch})
	c.Add(Diagnostic{Message: "earlier", Range: at(2, 1), Code: AssignTypeMismatch})
	out := c.Finish()
	if out[0].Message != "earlier" || out[1].Message != "later" {
		t.Fatalf("expected sorted by position, got %+v", out)
	}
}

func TestCollectorKeepsDistinctCodesAtSamePosition(t *testing.T) {
	c := NewCollector()
	c.Add(Diagnostic{Message: "a", Range: at(1, 1), Code: AssignTypeMismatch})
	c.Add(Diagnostic{Message: "b", Range: at(1, 1), Code: UndefinedField})
	out := c.Finish()
	if len(out) != 2 {
		t.Fatalf("expected 2 distinct diagnostics, got %d", len(out))
	}
}
