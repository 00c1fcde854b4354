package model

import (
	"strconv"
	"strings"
	"unicode"
)

// Row is one record of the hosted dataset. Values are scalars as decoded
// from JSON/CSV (string, float64, bool or nil); non-scalar fields may be
// present and are carried through untouched for drill-down context.
type Row map[string]any

// Kind is the inferred value kind of a column, used for alignment and
// normalization. See internal/detect.
type Kind string

const (
	KindString Kind = "string"
	KindNumber Kind = "number"
	KindBool   Kind = "bool"
	KindTime   Kind = "time"
)

// Column describes one grid column. Keys are unique within a dataset.
type Column struct {
	Key   string `yaml:"key" json:"key"`
	Label string `yaml:"label,omitempty" json:"label,omitempty"`
	Kind  Kind   `yaml:"kind,omitempty" json:"kind,omitempty"`
}

// DisplayLabel returns the configured label, or one derived from the key.
func (c Column) DisplayLabel() string {
	if c.Label != "" {
		return c.Label
	}
	return LabelFromKey(c.Key)
}

// LabelFromKey derives a human-readable header from a raw column key:
// separators become spaces, a space is inserted before each capital, and
// the first letter is capitalized ("customerId" -> "Customer Id",
// "customer_id" -> "Customer id").
func LabelFromKey(key string) string {
	var b strings.Builder
	for i, r := range key {
		switch {
		case r == '_' || r == '-':
			b.WriteRune(' ')
		case unicode.IsUpper(r) && i > 0:
			b.WriteRune(' ')
			b.WriteRune(r)
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// PageInfo is the pagination metadata a source returns with each fetch.
type PageInfo struct {
	Page         int `json:"page"`
	PageSize     int `json:"pageSize"`
	TotalPages   int `json:"totalPages"`
	TotalRecords int `json:"totalRecords"`
}

// KeyMapping renames one composed drill-down parameter to the name the
// target scenario expects.
type KeyMapping struct {
	Source string `yaml:"source" json:"source"`
	Target string `yaml:"target" json:"target"`
}

// Action is a per-row drill-down definition from the catalog.
type Action struct {
	Name         string       `yaml:"name" json:"name"`
	TargetDomain string       `yaml:"targetDomain" json:"targetDomain"`
	TargetKey    string       `yaml:"targetKey" json:"targetKey"`
	Mappings     []KeyMapping `yaml:"mappings,omitempty" json:"mappings,omitempty"`
}

// Valid reports whether the action has a complete drill-down target.
// Invalid actions are hidden from row menus and refused by the dispatcher.
func (a Action) Valid() bool {
	return a.TargetDomain != "" && a.TargetKey != ""
}

// AmbientFilters is a snapshot of the hosting screen's currently active
// global filters. It is passed by value into the drill-down dispatcher and
// never mutated by it.
type AmbientFilters map[string]string

// Clone returns an independent copy so callers can hand out snapshots.
func (f AmbientFilters) Clone() AmbientFilters {
	out := make(AmbientFilters, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Entity is a selectable item offered by the suggestion input.
type Entity struct {
	Key   string   `yaml:"key" json:"key"`
	Label string   `yaml:"label,omitempty" json:"label,omitempty"`
	Tags  []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// IsScalar reports whether v is a primitive cell value. Nested objects and
// slices are excluded from filtering, display and drill-down composition.
func IsScalar(v any) bool {
	switch v.(type) {
	case nil, string, bool, float64, float32, int, int32, int64, uint, uint32, uint64:
		return true
	}
	return false
}

// DisplayValue renders a cell value for the grid and for filter options:
// booleans normalize to "True"/"False", nil to the empty string, numbers
// without a float exponent.
func DisplayValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		if t {
			return "True"
		}
		return "False"
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return paramString(t)
	}
}

// ParamValue renders a cell value for drill-down query parameters. Unlike
// DisplayValue, booleans keep their wire form ("true"/"false").
func ParamValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	default:
		return paramString(t)
	}
}

func paramString(v any) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case int32:
		return strconv.FormatInt(int64(t), 10)
	case int64:
		return strconv.FormatInt(t, 10)
	case uint:
		return strconv.FormatUint(uint64(t), 10)
	case uint32:
		return strconv.FormatUint(uint64(t), 10)
	case uint64:
		return strconv.FormatUint(t, 10)
	}
	return ""
}
