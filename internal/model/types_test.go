package model

import "testing"

func TestLabelFromKey(t *testing.T) {
	cases := map[string]string{
		"customerId":  "Customer Id",
		"customer_id": "Customer id",
		"open-tasks":  "Open tasks",
		"name":        "Name",
		"HTMLBody":    "H T M L Body",
		"":            "",
	}
	for in, want := range cases {
		if got := LabelFromKey(in); got != want {
			t.Fatalf("LabelFromKey(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDisplayLabelPrefersConfigured(t *testing.T) {
	c := Column{Key: "customerId", Label: "Customer"}
	if c.DisplayLabel() != "Customer" {
		t.Fatalf("label: %q", c.DisplayLabel())
	}
	c.Label = ""
	if c.DisplayLabel() != "Customer Id" {
		t.Fatalf("derived label: %q", c.DisplayLabel())
	}
}

func TestDisplayValue(t *testing.T) {
	if DisplayValue(true) != "True" || DisplayValue(false) != "False" {
		t.Fatalf("bool display form wrong")
	}
	if DisplayValue(nil) != "" {
		t.Fatalf("nil display form wrong")
	}
	if DisplayValue(3.0) != "3" {
		t.Fatalf("float display: %q", DisplayValue(3.0))
	}
	if DisplayValue(3.5) != "3.5" {
		t.Fatalf("float display: %q", DisplayValue(3.5))
	}
	if DisplayValue("x") != "x" {
		t.Fatalf("string display: %q", DisplayValue("x"))
	}
}

func TestParamValueBoolWireForm(t *testing.T) {
	if ParamValue(true) != "true" || ParamValue(false) != "false" {
		t.Fatalf("bool wire form wrong")
	}
	if ParamValue(int64(42)) != "42" {
		t.Fatalf("int64 wire form: %q", ParamValue(int64(42)))
	}
}

func TestActionValid(t *testing.T) {
	if (Action{Name: "x"}).Valid() {
		t.Fatalf("action without target reported valid")
	}
	if !(Action{TargetDomain: "d", TargetKey: "k"}).Valid() {
		t.Fatalf("complete action reported invalid")
	}
}

func TestIsScalar(t *testing.T) {
	for _, v := range []any{nil, "s", true, 1.0, 1, int64(1)} {
		if !IsScalar(v) {
			t.Fatalf("%T not scalar", v)
		}
	}
	for _, v := range []any{[]any{1}, map[string]any{}} {
		if IsScalar(v) {
			t.Fatalf("%T reported scalar", v)
		}
	}
}

func TestAmbientFiltersClone(t *testing.T) {
	f := AmbientFilters{"a": "1"}
	cp := f.Clone()
	cp["a"] = "2"
	if f["a"] != "1" {
		t.Fatalf("clone shares storage")
	}
}
