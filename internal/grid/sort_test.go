package grid

import (
	"testing"

	"gridlens/internal/model"
)

func TestSortToggleTwoStateCycle(t *testing.T) {
	var s SortState
	s.Toggle("name")
	if s.Key != "name" || s.Dir != Asc {
		t.Fatalf("first click: %+v", s)
	}
	s.Toggle("name")
	if s.Dir != Desc {
		t.Fatalf("second click: %+v", s)
	}
	s.Toggle("name")
	if s.Dir != Asc {
		t.Fatalf("third click should flip back to asc: %+v", s)
	}
}

func TestSortToggleNewColumnResetsToAsc(t *testing.T) {
	var s SortState
	s.Toggle("a")
	s.Toggle("a") // a desc
	s.Toggle("b")
	if s.Key != "b" || s.Dir != Asc {
		t.Fatalf("switching columns should start ascending: %+v", s)
	}
}

func TestSortReset(t *testing.T) {
	var s SortState
	s.Toggle("a")
	s.Reset()
	if s.Active() {
		t.Fatalf("still active after reset: %+v", s)
	}
	rows := []model.Row{{"a": 2}, {"a": 1}}
	out := Apply(rows, s)
	if out[0]["a"] != 2 {
		t.Fatalf("unsorted state reordered rows: %v", out)
	}
}

func TestApplyNumeric(t *testing.T) {
	rows := []model.Row{{"n": 10.0}, {"n": 2.0}, {"n": 33.0}}
	out := Apply(rows, SortState{Key: "n", Dir: Asc})
	if out[0]["n"] != 2.0 || out[2]["n"] != 33.0 {
		t.Fatalf("numeric asc: %v", out)
	}
	out = Apply(rows, SortState{Key: "n", Dir: Desc})
	if out[0]["n"] != 33.0 {
		t.Fatalf("numeric desc: %v", out)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	rows := []model.Row{{"n": 2.0}, {"n": 1.0}}
	Apply(rows, SortState{Key: "n", Dir: Asc})
	if rows[0]["n"] != 2.0 {
		t.Fatalf("input reordered: %v", rows)
	}
}

func TestNaturalLess(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"item2", "item10", true},
		{"item10", "item2", false},
		{"Item2", "item10", true}, // case-insensitive
		{"a", "b", true},
		{"a1", "a1", false},
		{"a", "a1", true},
	}
	for _, c := range cases {
		if got := naturalLess(c.a, c.b); got != c.want {
			t.Fatalf("naturalLess(%q, %q) = %v", c.a, c.b, got)
		}
	}
}

func TestApplyStable(t *testing.T) {
	rows := []model.Row{
		{"k": "x", "id": 1},
		{"k": "x", "id": 2},
		{"k": "x", "id": 3},
	}
	out := Apply(rows, SortState{Key: "k", Dir: Asc})
	if out[0]["id"] != 1 || out[2]["id"] != 3 {
		t.Fatalf("equal keys reordered: %v", out)
	}
}
