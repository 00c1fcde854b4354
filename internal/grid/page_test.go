package grid

import (
	"testing"

	"gridlens/internal/model"
)

func TestPagerGoToPageBounds(t *testing.T) {
	p := NewPager(nil)
	p.SetTotal(100) // 10 pages at size 10
	if p.GoToPage(0) {
		t.Fatalf("page 0 accepted")
	}
	if p.GoToPage(11) {
		t.Fatalf("page past the end accepted")
	}
	if p.Page != 1 {
		t.Fatalf("rejected navigation moved the page: %d", p.Page)
	}
	if !p.GoToPage(10) || p.Page != 10 {
		t.Fatalf("last page navigation failed: %d", p.Page)
	}
	if p.GoToPage(10) {
		t.Fatalf("navigating to the current page should be a no-op")
	}
}

func TestPagerSetPageSize(t *testing.T) {
	p := NewPager(nil)
	p.SetTotal(100)
	p.GoToPage(5)
	if p.SetPageSize(37) {
		t.Fatalf("size outside the option list accepted")
	}
	if !p.SetPageSize(25) {
		t.Fatalf("allowed size rejected")
	}
	if p.Page != 1 || p.TotalPages != 4 {
		t.Fatalf("after resize: page=%d pages=%d", p.Page, p.TotalPages)
	}
	if p.SetPageSize(25) {
		t.Fatalf("setting the current size should be a no-op")
	}
}

func TestPagerSetTotalClamps(t *testing.T) {
	p := NewPager(nil)
	p.SetTotal(100)
	p.GoToPage(10)
	p.SetTotal(15) // filters shrank the dataset
	if p.TotalPages != 2 || p.Page != 2 {
		t.Fatalf("clamp after shrink: page=%d pages=%d", p.Page, p.TotalPages)
	}
	p.SetTotal(0)
	if p.TotalPages != 1 || p.Page != 1 {
		t.Fatalf("empty result: page=%d pages=%d", p.Page, p.TotalPages)
	}
}

func TestPagerApplyInfoRoundTrip(t *testing.T) {
	p := NewPager([]int{5, 10})
	p.Apply(model.PageInfo{Page: 3, PageSize: 5, TotalPages: 4, TotalRecords: 18})
	if p.Page != 3 || p.PageSize != 5 || p.TotalRecords != 18 {
		t.Fatalf("apply: %+v", p.Info())
	}
	// stale metadata pointing past the end clamps rather than jumping
	p.Apply(model.PageInfo{Page: 9, PageSize: 5, TotalPages: 2, TotalRecords: 8})
	if p.Page != 2 {
		t.Fatalf("out-of-range page not clamped: %d", p.Page)
	}
}

func TestPagerSlice(t *testing.T) {
	rows := make([]model.Row, 23)
	for i := range rows {
		rows[i] = model.Row{"i": i}
	}
	p := NewPager([]int{10})
	p.SetTotal(len(rows))
	p.GoToPage(3)
	out := p.Slice(rows)
	if len(out) != 3 || out[0]["i"] != 20 {
		t.Fatalf("last partial page: %v", out)
	}
	p.Page = 9 // force out of range
	if got := p.Slice(rows); got != nil {
		t.Fatalf("slice past the end: %v", got)
	}
}
