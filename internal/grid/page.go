package grid

import "gridlens/internal/model"

// DefaultPageSizes is the rows-per-page picker's option list when the
// catalog does not override it.
var DefaultPageSizes = []int{10, 25, 50, 100}

// Pager holds pagination state. Page is 1-based and always within
// [1, TotalPages]; TotalPages is at least 1 even for an empty result.
type Pager struct {
	Page         int
	PageSize     int
	TotalPages   int
	TotalRecords int

	sizes []int
}

// NewPager starts on page 1 with the first allowed page size.
func NewPager(sizes []int) *Pager {
	if len(sizes) == 0 {
		sizes = DefaultPageSizes
	}
	return &Pager{Page: 1, PageSize: sizes[0], TotalPages: 1, sizes: sizes}
}

// Sizes returns the allowed rows-per-page options.
func (p *Pager) Sizes() []int { return p.sizes }

// GoToPage moves to page n. Out-of-range requests are no-ops and return
// false so callers can skip the refetch.
func (p *Pager) GoToPage(n int) bool {
	if n < 1 || n > p.TotalPages {
		return false
	}
	if n == p.Page {
		return false
	}
	p.Page = n
	return true
}

// SetPageSize switches the page size and resets to page 1, since the old
// page index no longer maps to the same data window. Sizes outside the
// allowed option list are rejected.
func (p *Pager) SetPageSize(n int) bool {
	allowed := false
	for _, s := range p.sizes {
		if s == n {
			allowed = true
			break
		}
	}
	if !allowed || n == p.PageSize {
		return false
	}
	p.PageSize = n
	p.Page = 1
	p.recompute()
	return true
}

// SetTotal records the filtered record count and clamps the current page.
func (p *Pager) SetTotal(records int) {
	if records < 0 {
		records = 0
	}
	p.TotalRecords = records
	p.recompute()
}

// Apply updates the pager from source-supplied pagination metadata.
func (p *Pager) Apply(info model.PageInfo) {
	if info.PageSize > 0 {
		p.PageSize = info.PageSize
	}
	p.TotalRecords = info.TotalRecords
	p.TotalPages = info.TotalPages
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if info.Page >= 1 && info.Page <= p.TotalPages {
		p.Page = info.Page
	} else if p.Page > p.TotalPages {
		p.Page = p.TotalPages
	}
}

// Info snapshots the pager as source metadata.
func (p *Pager) Info() model.PageInfo {
	return model.PageInfo{Page: p.Page, PageSize: p.PageSize, TotalPages: p.TotalPages, TotalRecords: p.TotalRecords}
}

// Slice cuts the current page window out of rows (local sources only).
func (p *Pager) Slice(rows []model.Row) []model.Row {
	start := (p.Page - 1) * p.PageSize
	if start >= len(rows) {
		return nil
	}
	end := start + p.PageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func (p *Pager) recompute() {
	p.TotalPages = (p.TotalRecords + p.PageSize - 1) / p.PageSize
	if p.TotalPages < 1 {
		p.TotalPages = 1
	}
	if p.Page > p.TotalPages {
		p.Page = p.TotalPages
	}
	if p.Page < 1 {
		p.Page = 1
	}
}
