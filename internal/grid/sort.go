package grid

import (
	"sort"
	"strings"
	"unicode"

	"gridlens/internal/model"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// SortState tracks the active sort column. An empty Key means unsorted
// (source default order).
type SortState struct {
	Key string
	Dir Direction
}

// Toggle cycles the sort for a header click: a new column starts ascending,
// clicking the active column flips the direction. There is deliberately no
// third "unsorted" click state; Reset is the only way back.
func (s *SortState) Toggle(key string) {
	if s.Key != key {
		s.Key = key
		s.Dir = Asc
		return
	}
	if s.Dir == Asc {
		s.Dir = Desc
	} else {
		s.Dir = Asc
	}
}

// Reset clears the sort back to source order.
func (s *SortState) Reset() {
	s.Key = ""
	s.Dir = ""
}

// Active reports whether a sort column is set.
func (s SortState) Active() bool { return s.Key != "" }

// Apply returns a sorted copy of rows per the state. Numeric values compare
// numerically; everything else falls back to a case-insensitive natural
// comparison so "item2" orders before "item10". Unsorted state returns the
// input unchanged.
func Apply(rows []model.Row, s SortState) []model.Row {
	if !s.Active() {
		return rows
	}
	out := make([]model.Row, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		less := rowLess(out[i], out[j], s.Key)
		if s.Dir == Desc {
			return rowLess(out[j], out[i], s.Key)
		}
		return less
	})
	return out
}

func rowLess(a, b model.Row, key string) bool {
	av, aok := numericValue(a[key])
	bv, bok := numericValue(b[key])
	if aok && bok {
		return av < bv
	}
	return naturalLess(model.DisplayValue(a[key]), model.DisplayValue(b[key]))
}

func numericValue(v any) (float64, bool) {
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int32:
		return float64(t), true
	case int64:
		return float64(t), true
	}
	return 0, false
}

// naturalLess compares strings case-insensitively, treating digit runs as
// numbers (longer digit run with equal prefix wins as larger value).
func naturalLess(a, b string) bool {
	a, b = strings.ToLower(a), strings.ToLower(b)
	for a != "" && b != "" {
		ar, an := chunk(a)
		br, bn := chunk(b)
		if an && bn {
			// compare digit runs by length then lexically; equal continue
			at := strings.TrimLeft(ar, "0")
			bt := strings.TrimLeft(br, "0")
			if len(at) != len(bt) {
				return len(at) < len(bt)
			}
			if at != bt {
				return at < bt
			}
		} else if ar != br {
			return ar < br
		}
		a, b = a[len(ar):], b[len(br):]
	}
	return len(a) < len(b)
}

// chunk returns the leading digit run or non-digit run of s.
func chunk(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	digits := unicode.IsDigit(rune(s[0]))
	for i, r := range s {
		if unicode.IsDigit(r) != digits {
			return s[:i], digits
		}
	}
	return s, digits
}
