package checker

import (
	"testing"

	"github.com/typua-lang/typua/internal/diagnostics"
	"github.com/typua-lang/typua/internal/typedast"
	"github.com/typua-lang/typua/internal/types"
)

func newTestChecker() *Checker {
	return New("test.lua", types.NewRegistry())
}

func TestCheckBinaryArithmeticMismatch(t *testing.T) {
	c := newTestChecker()
	bin := typedast.Binary{Op: "+", Left: typedast.StringLit{Value: "x"}, Right: typedast.NumberLit{Value: 1}}
	result := c.checkBinary(bin)
	if result != types.Number {
		t.Fatalf("expected '+' to produce number, got %s", result)
	}
	diags := c.collector.Finish()
	if len(diags) != 1 || diags[0].Code != diagnostics.AssignTypeMismatch {
		t.Fatalf("expected one AssignTypeMismatch diagnostic, got %v", diags)
	}
}

func TestCheckBinaryConcatOK(t *testing.T) {
	c := newTestChecker()
	bin := typedast.Binary{Op: "..", Left: typedast.StringLit{Value: "a"}, Right: typedast.StringLit{Value: "b"}}
	if result := c.checkBinary(bin); result != types.String {
		t.Fatalf("expected '..' to produce string, got %s", result)
	}
	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected no diagnostics for valid concat, got %v", diags)
	}
}

func TestCheckBinaryBooleanRequiresStrictBoolean(t *testing.T) {
	c := newTestChecker()
	bin := typedast.Binary{Op: "and", Left: typedast.NumberLit{Value: 1}, Right: typedast.BoolLit{Value: true}}
	if result := c.checkBinary(bin); result != types.Boolean {
		t.Fatalf("expected 'and' to produce boolean, got %s", result)
	}
	diags := c.collector.Finish()
	if len(diags) != 1 {
		t.Fatalf("expected one diagnostic for a non-boolean 'and' operand, got %v", diags)
	}
}

func TestCheckBinaryComparisonCompatibleEitherDirection(t *testing.T) {
	c := newTestChecker()
	bin := typedast.Binary{Op: "==", Left: typedast.NumberLit{Value: 1}, Right: typedast.NumberLit{Value: 2}}
	c.checkBinary(bin)
	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected number == number to be compatible, got %v", diags)
	}
}

func TestCheckUnaryMinusRequiresNumber(t *testing.T) {
	c := newTestChecker()
	u := typedast.Unary{Op: "-", Operand: typedast.StringLit{Value: "x"}}
	if result := c.checkUnary(u); result != types.Number {
		t.Fatalf("expected unary '-' to produce number, got %s", result)
	}
	if diags := c.collector.Finish(); len(diags) != 1 {
		t.Fatalf("expected one diagnostic for unary '-' on a string, got %v", diags)
	}
}

func TestCheckUnaryLenAcceptsStringOrTable(t *testing.T) {
	c := newTestChecker()
	u := typedast.Unary{Op: "#", Operand: typedast.StringLit{Value: "x"}}
	c.checkUnary(u)
	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected '#' on a string to be valid, got %v", diags)
	}
}

func TestCheckUnaryNotAlwaysBoolean(t *testing.T) {
	c := newTestChecker()
	u := typedast.Unary{Op: "not", Operand: typedast.NumberLit{Value: 1}}
	if result := c.checkUnary(u); result != types.Boolean {
		t.Fatalf("expected 'not' to always produce boolean, got %s", result)
	}
	if diags := c.collector.Finish(); len(diags) != 0 {
		t.Fatalf("expected 'not' to never report a diagnostic, got %v", diags)
	}
}
