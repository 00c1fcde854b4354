// Package detect infers column metadata for untyped datasets (JSONL/CSV
// without a catalog): column order from first appearance, and a value kind
// per column from a small sample. An optional OpenAI pass (internal/ai) can
// refine labels; heuristics always run first and are authoritative offline.
package detect

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"gridlens/internal/model"
)

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02/Jan/2006:15:04:05 -0700",
}

// Columns derives column metadata from a sample of rows. Keys keep their
// first-seen order across the sample; kinds come from Kind.
func Columns(sample []model.Row) []model.Column {
	var keys []string
	seen := map[string]bool{}
	values := map[string][]any{}
	for _, row := range sample {
		// decoded rows are maps, so sort within a row for a stable order
		rowKeys := make([]string, 0, len(row))
		for k := range row {
			rowKeys = append(rowKeys, k)
		}
		sort.Strings(rowKeys)
		for _, k := range rowKeys {
			v := row[k]
			if !model.IsScalar(v) {
				continue
			}
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
			values[k] = append(values[k], v)
		}
	}
	cols := make([]model.Column, 0, len(keys))
	for _, k := range keys {
		cols = append(cols, model.Column{Key: k, Kind: Kind(values[k])})
	}
	return cols
}

// Kind guesses the value kind for one column's sampled values. A column is
// only typed when every non-empty sample agrees.
func Kind(values []any) model.Kind {
	if len(values) == 0 {
		return model.KindString
	}
	allBool, allNum, allTime := true, true, true
	nonEmpty := 0
	for _, v := range values {
		s := strings.TrimSpace(model.DisplayValue(v))
		if s == "" {
			continue
		}
		nonEmpty++
		if _, isBool := v.(bool); !isBool && !isBoolWord(s) {
			allBool = false
		}
		if !isNumber(v, s) {
			allNum = false
		}
		if !isTime(s) {
			allTime = false
		}
	}
	if nonEmpty == 0 {
		return model.KindString
	}
	switch {
	case allBool:
		return model.KindBool
	case allNum:
		return model.KindNumber
	case allTime:
		return model.KindTime
	}
	return model.KindString
}

func isBoolWord(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false":
		return true
	}
	return false
}

func isNumber(v any, s string) bool {
	switch v.(type) {
	case float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

func isTime(s string) bool {
	for _, layout := range timeLayouts {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
