// Package grid holds the pure data engines behind the gridlens table:
// per-column multi-select filtering, sort state, and pagination. Nothing
// here touches the terminal; the ui package composes these over a source.
package grid

import (
	"gridlens/internal/model"
)

// FilterState maps a column key to its selected display values. Values are
// the normalized forms produced by model.DisplayValue, in selection order.
// A missing or empty entry means the column is unconstrained.
type FilterState map[string][]string

// Active reports whether any column has a non-empty selection.
func (s FilterState) Active() bool {
	for _, vals := range s {
		if len(vals) > 0 {
			return true
		}
	}
	return false
}

// Selected reports whether value is currently selected for the column.
func (s FilterState) Selected(key, value string) bool {
	for _, v := range s[key] {
		if v == value {
			return true
		}
	}
	return false
}

// Toggle adds value to the column's selection, or removes it when already
// selected. Empty selections are pruned so Active stays accurate.
func (s FilterState) Toggle(key, value string) {
	vals := s[key]
	for i, v := range vals {
		if v == value {
			vals = append(vals[:i], vals[i+1:]...)
			if len(vals) == 0 {
				delete(s, key)
			} else {
				s[key] = vals
			}
			return
		}
	}
	s[key] = append(vals, value)
}

// Clear drops the selection for one column.
func (s FilterState) Clear(key string) { delete(s, key) }

// Clone returns an independent copy of the filter state.
func (s FilterState) Clone() FilterState {
	out := make(FilterState, len(s))
	for k, vals := range s {
		cp := make([]string, len(vals))
		copy(cp, vals)
		out[k] = cp
	}
	return out
}

// UniqueValues computes, per column, the distinct display values present in
// rows, preserving first-seen order. It is always fed the unfiltered
// dataset so filter dropdowns do not shrink as filters are applied.
// Booleans normalize to "True"/"False"; nil and empty values are skipped.
func UniqueValues(columns []model.Column, rows []model.Row) map[string][]string {
	out := make(map[string][]string, len(columns))
	for _, col := range columns {
		seen := map[string]bool{}
		var vals []string
		for _, row := range rows {
			v, ok := row[col.Key]
			if !ok || !model.IsScalar(v) {
				continue
			}
			d := model.DisplayValue(v)
			if d == "" || seen[d] {
				continue
			}
			seen[d] = true
			vals = append(vals, d)
		}
		out[col.Key] = vals
	}
	return out
}

// ApplyFilters returns the rows passing every column constraint: AND across
// columns, OR within a column's selected set. The input slice is never
// mutated, and an empty state returns the input unchanged.
func ApplyFilters(rows []model.Row, state FilterState) []model.Row {
	if !state.Active() {
		return rows
	}
	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if rowPasses(row, state) {
			out = append(out, row)
		}
	}
	return out
}

func rowPasses(row model.Row, state FilterState) bool {
	for key, vals := range state {
		if len(vals) == 0 {
			continue
		}
		d := model.DisplayValue(row[key])
		match := false
		for _, v := range vals {
			if v == d {
				match = true
				break
			}
		}
		if !match {
			return false
		}
	}
	return true
}
