// Package listutil pages list views such as the activity log.
package listutil

import (
	"net/url"
	"strconv"
)

// DefaultPerPage is the default number of rows per page.
const DefaultPerPage = 25

// PerPageOptions are the allowed rows-per-page values.
var PerPageOptions = []int{25, 50, 100}

// Page is the requested page, parsed from a query string.
type Page struct {
	Number  int // 1-indexed
	PerPage int
}

// ParsePage extracts page and per_page from URL query values.
// PRE: none
// POST: Number >= 1 and PerPage is one of PerPageOptions
func ParsePage(q url.Values) Page {
	n, _ := strconv.Atoi(q.Get("page"))
	if n < 1 {
		n = 1
	}
	per, _ := strconv.Atoi(q.Get("per_page"))
	valid := false
	for _, opt := range PerPageOptions {
		if per == opt {
			valid = true
			break
		}
	}
	if !valid {
		per = DefaultPerPage
	}
	return Page{Number: n, PerPage: per}
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int
	PerPage    int
	Total      int
	TotalPages int
}

// NewPageInfo clamps the requested page to what total allows.
// PRE: total >= 0
// POST: 1 <= Page <= TotalPages, TotalPages >= 1
func NewPageInfo(p Page, total int) PageInfo {
	per := p.PerPage
	if per < 1 {
		per = DefaultPerPage
	}
	pages := (total + per - 1) / per
	if pages < 1 {
		pages = 1
	}
	n := min(max(p.Number, 1), pages)
	return PageInfo{Page: n, PerPage: per, Total: total, TotalPages: pages}
}

// Offset returns the row offset of the current page.
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// HasPrev reports whether a previous page exists.
func (p PageInfo) HasPrev() bool { return p.Page > 1 }

// HasNext reports whether a next page exists.
func (p PageInfo) HasNext() bool { return p.Page < p.TotalPages }

// PageNumbers returns at most five page numbers centred on the current page.
func (p PageInfo) PageNumbers() []int {
	const window = 5
	start := max(p.Page-window/2, 1)
	end := start + window - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = max(end-window+1, 1)
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}
