package filter

import (
	"testing"

	"gridlens/internal/model"
)

func rows() []model.Row {
	return []model.Row{
		{"name": "Acme Logistics", "tier": "gold", "balance": 120.0},
		{"name": "Borealis Foods", "tier": "silver", "balance": 40.0},
		{"name": "Cinder Works", "tier": "gold", "balance": 0.0},
	}
}

func TestContainsCaseInsensitive(t *testing.T) {
	c := Criteria{Query: "acme"}
	ev, err := NewEvaluator(c)
	if err != nil {
		t.Fatal(err)
	}
	out := ev.Apply(rows(), c)
	if len(out) != 1 || out[0]["name"] != "Acme Logistics" {
		t.Fatalf("contains match: %v", out)
	}
}

func TestRegexQuery(t *testing.T) {
	c := Criteria{Query: "^Bor.*Foods$", UseRegex: true, Field: "name"}
	ev, err := NewEvaluator(c)
	if err != nil {
		t.Fatal(err)
	}
	out := ev.Apply(rows(), c)
	if len(out) != 1 || out[0]["tier"] != "silver" {
		t.Fatalf("regex match: %v", out)
	}
}

func TestBadRegexErrors(t *testing.T) {
	if _, err := NewEvaluator(Criteria{Query: "([", UseRegex: true}); err == nil {
		t.Fatalf("invalid regex accepted")
	}
}

func TestFieldScopedQuery(t *testing.T) {
	c := Criteria{Query: "gold", Field: "name"}
	ev, _ := NewEvaluator(c)
	if out := ev.Apply(rows(), c); len(out) != 0 {
		t.Fatalf("query leaked outside the field: %v", out)
	}
}

func TestExpression(t *testing.T) {
	c := Criteria{Expr: `balance > 50 && tier == "gold"`}
	ev, err := NewEvaluator(c)
	if err != nil {
		t.Fatal(err)
	}
	out := ev.Apply(rows(), c)
	if len(out) != 1 || out[0]["name"] != "Acme Logistics" {
		t.Fatalf("expression match: %v", out)
	}
}

func TestExpressionAndQueryCompose(t *testing.T) {
	c := Criteria{Query: "works", Expr: `tier == "gold"`}
	ev, _ := NewEvaluator(c)
	out := ev.Apply(rows(), c)
	if len(out) != 1 || out[0]["name"] != "Cinder Works" {
		t.Fatalf("composed match: %v", out)
	}
}

func TestBadExpressionErrors(t *testing.T) {
	if _, err := NewEvaluator(Criteria{Expr: "balance >"}); err == nil {
		t.Fatalf("invalid expression accepted")
	}
}

func TestExpressionRuntimeErrorExcludesRow(t *testing.T) {
	// referencing a missing field fails evaluation for that row only
	c := Criteria{Expr: `ghost > 1`}
	ev, _ := NewEvaluator(c)
	if out := ev.Apply(rows(), c); len(out) != 0 {
		t.Fatalf("rows with failed evaluation kept: %v", out)
	}
}

func TestEmptyCriteriaIdentity(t *testing.T) {
	c := Criteria{}
	ev, _ := NewEvaluator(c)
	in := rows()
	if out := ev.Apply(in, c); len(out) != len(in) {
		t.Fatalf("empty criteria filtered rows")
	}
}
