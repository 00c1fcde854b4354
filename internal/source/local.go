package source

import (
	"context"
	"fmt"
	"sync"

	"gridlens/internal/filter"
	"gridlens/internal/grid"
	"gridlens/internal/model"
)

// Local holds the whole dataset in memory and satisfies queries by running
// the grid engines over it. It backs file datasets and the demo mode, and
// doubles as the reference implementation of the contract a REST backend
// must satisfy.
type Local struct {
	mu      sync.RWMutex
	rows    []model.Row
	columns []model.Column

	events chan Event
}

func NewLocal(columns []model.Column, rows []model.Row) *Local {
	return &Local{columns: columns, rows: rows, events: make(chan Event, 4)}
}

// Columns returns the dataset's column metadata.
func (l *Local) Columns() []model.Column {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.columns
}

func (l *Local) Events() <-chan Event { return l.events }

// Replace swaps the dataset and notifies watchers; grid display state is
// expected to reset on the resulting event.
func (l *Local) Replace(columns []model.Column, rows []model.Row) {
	l.mu.Lock()
	if columns != nil {
		l.columns = columns
	}
	l.rows = rows
	n := len(rows)
	l.mu.Unlock()
	l.notify(Event{Rows: n})
}

// Append adds rows (follow mode) and notifies watchers.
func (l *Local) Append(rows ...model.Row) {
	l.mu.Lock()
	l.rows = append(l.rows, rows...)
	n := len(l.rows)
	l.mu.Unlock()
	l.notify(Event{Rows: n})
}

func (l *Local) notify(ev Event) {
	select {
	case l.events <- ev:
	default:
		// a pending event already forces a refetch
	}
}

func (l *Local) Fetch(ctx context.Context, q Query) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	rows, err := l.selectRows(q)
	if err != nil {
		return Result{}, err
	}
	pageSize := q.PageSize
	if pageSize < 1 {
		pageSize = grid.DefaultPageSizes[0]
	}
	totalPages := (len(rows) + pageSize - 1) / pageSize
	if totalPages < 1 {
		totalPages = 1
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}
	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(rows) {
		start = len(rows)
	}
	if end > len(rows) {
		end = len(rows)
	}
	return Result{
		Rows: rows[start:end],
		Page: model.PageInfo{Page: page, PageSize: pageSize, TotalPages: totalPages, TotalRecords: len(rows)},
	}, nil
}

func (l *Local) UniqueValues(ctx context.Context, columns []model.Column) (map[string][]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	return grid.UniqueValues(columns, l.rows), nil
}

func (l *Local) All(ctx context.Context, q Query) ([]model.Row, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return l.selectRows(q)
}

func (l *Local) selectRows(q Query) ([]model.Row, error) {
	l.mu.RLock()
	rows := l.rows
	l.mu.RUnlock()

	rows = grid.ApplyFilters(rows, q.Filters)
	if !q.Criteria.Empty() {
		eval, err := filter.NewEvaluator(q.Criteria)
		if err != nil {
			return nil, fmt.Errorf("source: criteria: %w", err)
		}
		rows = eval.Apply(rows, q.Criteria)
	}
	rows = grid.Apply(rows, q.Sort)
	return rows, nil
}
