package detect

import (
	"testing"

	"gridlens/internal/model"
)

func TestColumnsOrderAndKinds(t *testing.T) {
	sample := []model.Row{
		{"active": true, "balance": 12.5, "customerId": "C1"},
		{"active": false, "balance": 0.0, "customerId": "C2", "ts": "2026-01-02T10:00:00Z"},
	}
	cols := Columns(sample)
	if len(cols) != 4 {
		t.Fatalf("columns: %v", cols)
	}
	kinds := map[string]model.Kind{}
	for _, c := range cols {
		kinds[c.Key] = c.Kind
	}
	if kinds["active"] != model.KindBool {
		t.Fatalf("active kind: %s", kinds["active"])
	}
	if kinds["balance"] != model.KindNumber {
		t.Fatalf("balance kind: %s", kinds["balance"])
	}
	if kinds["customerId"] != model.KindString {
		t.Fatalf("customerId kind: %s", kinds["customerId"])
	}
	if kinds["ts"] != model.KindTime {
		t.Fatalf("ts kind: %s", kinds["ts"])
	}
	// first row's keys come first, sorted within the row
	if cols[0].Key != "active" || cols[3].Key != "ts" {
		t.Fatalf("order: %v", cols)
	}
}

func TestColumnsSkipsNonScalar(t *testing.T) {
	cols := Columns([]model.Row{{"a": 1.0, "nested": map[string]any{"x": 1}}})
	if len(cols) != 1 || cols[0].Key != "a" {
		t.Fatalf("columns: %v", cols)
	}
}

func TestColumnsDeterministic(t *testing.T) {
	sample := []model.Row{{"b": "1", "a": "2", "c": "3"}}
	first := Columns(sample)
	for i := 0; i < 10; i++ {
		again := Columns(sample)
		for j := range first {
			if first[j].Key != again[j].Key {
				t.Fatalf("order changed between runs: %v vs %v", first, again)
			}
		}
	}
}

func TestKindMixedFallsBackToString(t *testing.T) {
	if k := Kind([]any{"12", "abc"}); k != model.KindString {
		t.Fatalf("mixed kind: %s", k)
	}
}

func TestKindIgnoresEmptyValues(t *testing.T) {
	if k := Kind([]any{"", nil, "3.5"}); k != model.KindNumber {
		t.Fatalf("kind with gaps: %s", k)
	}
	if k := Kind([]any{"", nil}); k != model.KindString {
		t.Fatalf("all-empty kind: %s", k)
	}
}

func TestKindStringBooleans(t *testing.T) {
	if k := Kind([]any{"true", "False"}); k != model.KindBool {
		t.Fatalf("string bool kind: %s", k)
	}
}
