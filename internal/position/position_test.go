package position

import "testing"

func TestRangeMergeIgnoresInvalid(t *testing.T) {
	valid := Range{Start: Position{2, 1}, End: Position{2, 5}}

	if got := Merge(Invalid, valid); got != valid {
		t.Errorf("Merge(Invalid, valid) = %v, want %v", got, valid)
	}
	if got := Merge(valid, Invalid); got != valid {
		t.Errorf("Merge(valid, Invalid) = %v, want %v", got, valid)
	}
	if got := Merge(Invalid, Invalid); got != Invalid {
		t.Errorf("Merge(Invalid, Invalid) = %v, want Invalid", got)
	}
}

func TestRangeMergeTakesMinMax(t *testing.T) {
	a := Range{Start: Position{3, 4}, End: Position{3, 10}}
	b := Range{Start: Position{1, 1}, End: Position{3, 6}}

	got := Merge(a, b)
	want := Range{Start: Position{1, 1}, End: Position{3, 10}}
	if got != want {
		t.Errorf("Merge(a, b) = %v, want %v", got, want)
	}
}

func TestMergeAllChain(t *testing.T) {
	r1 := Range{Start: Position{1, 1}, End: Position{1, 2}}
	r2 := Invalid
	r3 := Range{Start: Position{1, 5}, End: Position{1, 8}}

	got := MergeAll(r1, r2, r3)
	want := Range{Start: Position{1, 1}, End: Position{1, 8}}
	if got != want {
		t.Errorf("MergeAll = %v, want %v", got, want)
	}
}

func TestPositionLess(t *testing.T) {
	if !(Position{1, 5}).Less(Position{2, 1}) {
		t.Errorf("expected line 1 < line 2")
	}
	if !(Position{2, 1}).Less(Position{2, 5}) {
		t.Errorf("expected col 1 < col 5 on same line")
	}
	if (Position{2, 5}).Less(Position{2, 5}) {
		t.Errorf("equal positions should not be Less")
	}
}
