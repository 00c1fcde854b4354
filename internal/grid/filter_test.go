package grid

import (
	"reflect"
	"testing"

	"gridlens/internal/model"
)

func sampleRows() []model.Row {
	return []model.Row{
		{"tier": "gold", "region": "eu", "active": true},
		{"tier": "silver", "region": "us", "active": false},
		{"tier": "gold", "region": "us", "active": true},
		{"tier": "bronze", "region": "eu", "active": true},
	}
}

func TestApplyFiltersEmptyStateIsIdentity(t *testing.T) {
	rows := sampleRows()
	out := ApplyFilters(rows, FilterState{})
	if len(out) != len(rows) {
		t.Fatalf("expected %d rows, got %d", len(rows), len(out))
	}
	// a state with only empty selections is still inactive
	out = ApplyFilters(rows, FilterState{"tier": nil})
	if len(out) != len(rows) {
		t.Fatalf("empty selection filtered rows: %d", len(out))
	}
}

func TestApplyFiltersIdempotent(t *testing.T) {
	rows := sampleRows()
	fs := FilterState{"tier": {"gold"}}
	once := ApplyFilters(rows, fs)
	twice := ApplyFilters(once, fs)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second application changed the result")
	}
}

func TestApplyFiltersAndAcrossOrWithin(t *testing.T) {
	rows := sampleRows()
	fs := FilterState{"tier": {"gold", "bronze"}, "region": {"eu"}}
	out := ApplyFilters(rows, fs)
	if len(out) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(out))
	}
	for _, r := range out {
		if r["region"] != "eu" {
			t.Fatalf("region constraint not applied: %v", r)
		}
	}
}

func TestApplyFiltersBoolDisplayForm(t *testing.T) {
	out := ApplyFilters(sampleRows(), FilterState{"active": {"True"}})
	if len(out) != 3 {
		t.Fatalf("expected 3 active rows, got %d", len(out))
	}
}

func TestApplyFiltersDoesNotMutateInput(t *testing.T) {
	rows := sampleRows()
	ApplyFilters(rows, FilterState{"tier": {"gold"}})
	if len(rows) != 4 || rows[1]["tier"] != "silver" {
		t.Fatalf("input mutated: %v", rows)
	}
}

func TestUniqueValuesOrderAndNormalization(t *testing.T) {
	cols := []model.Column{{Key: "tier"}, {Key: "active"}, {Key: "missing"}}
	u := UniqueValues(cols, sampleRows())
	want := []string{"gold", "silver", "bronze"}
	if !reflect.DeepEqual(u["tier"], want) {
		t.Fatalf("tier values: %v", u["tier"])
	}
	if !reflect.DeepEqual(u["active"], []string{"True", "False"}) {
		t.Fatalf("active values: %v", u["active"])
	}
	if len(u["missing"]) != 0 {
		t.Fatalf("missing column produced values: %v", u["missing"])
	}
}

func TestUniqueValuesSkipsEmptyAndNonScalar(t *testing.T) {
	rows := []model.Row{
		{"tags": []any{"a", "b"}, "note": ""},
		{"tags": nil, "note": "n1"},
	}
	u := UniqueValues([]model.Column{{Key: "tags"}, {Key: "note"}}, rows)
	if len(u["tags"]) != 0 {
		t.Fatalf("non-scalar values leaked: %v", u["tags"])
	}
	if !reflect.DeepEqual(u["note"], []string{"n1"}) {
		t.Fatalf("note values: %v", u["note"])
	}
}

func TestUniqueValuesEmptyDataset(t *testing.T) {
	u := UniqueValues([]model.Column{{Key: "tier"}}, nil)
	if len(u["tier"]) != 0 {
		t.Fatalf("expected no values, got %v", u["tier"])
	}
}

func TestFilterStateToggle(t *testing.T) {
	fs := FilterState{}
	fs.Toggle("tier", "gold")
	if !fs.Selected("tier", "gold") || !fs.Active() {
		t.Fatalf("toggle on failed: %v", fs)
	}
	fs.Toggle("tier", "gold")
	if fs.Active() {
		t.Fatalf("toggle off left state active: %v", fs)
	}
}

func TestFilterStateClone(t *testing.T) {
	fs := FilterState{"tier": {"gold"}}
	cp := fs.Clone()
	cp.Toggle("tier", "silver")
	if len(fs["tier"]) != 1 {
		t.Fatalf("clone shares backing storage: %v", fs)
	}
}
