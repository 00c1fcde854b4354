package ui

import (
	"unicode"

	"gridlens/internal/model"
)

// cellValue renders one cell: booleans as True/False, long alphabetic
// strings ellipsis-truncated at the configured threshold. The bool result
// reports truncation so the full value can be surfaced in the inspector.
func cellValue(v any, truncateAt int) (string, bool) {
	s := model.DisplayValue(v)
	if truncateAt > 0 && isAlphabetic(s) {
		r := []rune(s)
		if len(r) > truncateAt {
			return string(r[:truncateAt]) + "…", true
		}
	}
	return s, false
}

// isAlphabetic reports whether s is letters and spaces only. Identifiers
// and mixed values render untrimmed so they stay copyable.
func isAlphabetic(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && r != ' ' {
			return false
		}
	}
	return true
}
