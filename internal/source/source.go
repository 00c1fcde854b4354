// Package source defines the data contract the grid consumes: list with
// filters, sort and pagination in; a page of rows plus pagination metadata
// out. Implementations: an in-memory source (local files, demo data) and a
// REST client. The grid never sees more than one page at a time; filter
// dropdown options come from the separate UniqueValues call so they are
// always derived from the unfiltered dataset.
package source

import (
	"context"

	"gridlens/internal/filter"
	"gridlens/internal/grid"
	"gridlens/internal/model"
)

// Query identifies one fetch. RequestID is a caller-generated correlation
// id carried through logs and, for REST sources, the X-Request-Id header.
type Query struct {
	Filters   grid.FilterState
	Criteria  filter.Criteria
	Sort      grid.SortState
	Page      int
	PageSize  int
	RequestID string
}

// Result is one fetched page.
type Result struct {
	Rows []model.Row
	Page model.PageInfo
}

type Source interface {
	// Fetch returns the page of rows selected by q.
	Fetch(ctx context.Context, q Query) (Result, error)

	// UniqueValues returns per-column distinct display values computed
	// over the unfiltered dataset, for the filter dropdowns.
	UniqueValues(ctx context.Context, columns []model.Column) (map[string][]string, error)

	// All returns every row passing q's filters, ignoring pagination.
	// Used by the download affordance when the full dataset is wanted.
	All(ctx context.Context, q Query) ([]model.Row, error)
}

// Event notifies the hosting screen that the backing dataset changed and
// display state (filters, sort, page) should reset.
type Event struct {
	Rows int
	Err  error
}

// Watchable sources emit an Event when their dataset is replaced or
// appended to (follow mode, file rewrite).
type Watchable interface {
	Events() <-chan Event
}
