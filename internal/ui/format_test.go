package ui

import (
	"strings"
	"testing"
)

func TestCellValueTruncatesLongText(t *testing.T) {
	long := strings.Repeat("lorem ipsum ", 10) + "end"
	got, truncated := cellValue(long, 65)
	if !truncated {
		t.Fatalf("long text not truncated")
	}
	if len([]rune(got)) != 66 || !strings.HasSuffix(got, "…") {
		t.Fatalf("truncated form: %q", got)
	}
}

func TestCellValueShortTextUntouched(t *testing.T) {
	got, truncated := cellValue("Acme Logistics", 65)
	if truncated || got != "Acme Logistics" {
		t.Fatalf("short text: %q %v", got, truncated)
	}
}

func TestCellValueKeepsIdentifiers(t *testing.T) {
	id := strings.Repeat("a1b2-", 20)
	got, truncated := cellValue(id, 65)
	if truncated || got != id {
		t.Fatalf("identifier trimmed: %q", got)
	}
}

func TestCellValueBool(t *testing.T) {
	got, _ := cellValue(true, 65)
	if got != "True" {
		t.Fatalf("bool cell: %q", got)
	}
	got, _ = cellValue(false, 65)
	if got != "False" {
		t.Fatalf("bool cell: %q", got)
	}
}

func TestCellValueNil(t *testing.T) {
	got, truncated := cellValue(nil, 65)
	if got != "" || truncated {
		t.Fatalf("nil cell: %q %v", got, truncated)
	}
}

func TestCellValueDisabledTruncation(t *testing.T) {
	long := strings.Repeat("word ", 30)
	if _, truncated := cellValue(long, 0); truncated {
		t.Fatalf("threshold 0 still truncated")
	}
}
