// Package filter implements the global filter bar: a free-text (or /regex/)
// match over row values, optionally restricted to one column, plus a
// govaluate expression evaluated against the row's fields. Column-level
// multi-select filtering lives in internal/grid; the two compose with AND.
package filter

import (
	"regexp"
	"strings"

	"github.com/Knetic/govaluate"

	"gridlens/internal/model"
)

type Criteria struct {
	Query    string // plain contains or regex if /.../
	UseRegex bool
	Field    string // when set, apply Query only to this column
	Expr     string // govaluate expression over row fields
}

// Empty reports whether the criteria constrain nothing.
func (c Criteria) Empty() bool {
	return c.Query == "" && strings.TrimSpace(c.Expr) == ""
}

type Evaluator struct {
	re   *regexp.Regexp
	expr *govaluate.EvaluableExpression
}

func NewEvaluator(c Criteria) (*Evaluator, error) {
	var re *regexp.Regexp
	var expr *govaluate.EvaluableExpression
	var err error
	if c.UseRegex && c.Query != "" {
		re, err = regexp.Compile(c.Query)
		if err != nil {
			return nil, err
		}
	}
	if strings.TrimSpace(c.Expr) != "" {
		expr, err = govaluate.NewEvaluableExpression(c.Expr)
		if err != nil {
			return nil, err
		}
	}
	return &Evaluator{re: re, expr: expr}, nil
}

func (e *Evaluator) Match(row model.Row, c Criteria) bool {
	if c.Query != "" {
		text := rowText(row, c.Field)
		if e.re != nil {
			if !e.re.MatchString(text) {
				return false
			}
		} else if !strings.Contains(strings.ToLower(text), strings.ToLower(c.Query)) {
			return false
		}
	}
	if e.expr != nil {
		params := map[string]any{}
		for k, v := range row {
			if model.IsScalar(v) {
				params[k] = v
			}
		}
		result, err := e.expr.Evaluate(params)
		if err != nil {
			return false
		}
		b, ok := result.(bool)
		if !ok || !b {
			return false
		}
	}
	return true
}

// Apply filters rows through the evaluator, never mutating the input.
func (e *Evaluator) Apply(rows []model.Row, c Criteria) []model.Row {
	if c.Empty() {
		return rows
	}
	out := make([]model.Row, 0, len(rows))
	for _, r := range rows {
		if e.Match(r, c) {
			out = append(out, r)
		}
	}
	return out
}

func rowText(row model.Row, field string) string {
	if field != "" {
		if v, ok := row[field]; ok && model.IsScalar(v) {
			return model.DisplayValue(v)
		}
		return ""
	}
	parts := make([]string, 0, len(row))
	for _, v := range row {
		if model.IsScalar(v) {
			parts = append(parts, model.DisplayValue(v))
		}
	}
	return strings.Join(parts, " ")
}
