package projection

import "planboard/internal/viewstate"

type Page struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
	Start      int `json:"start"`
	End        int `json:"end"`
}

// Paginate clamps the requested page into [1, TotalPages]. Start/End are slice
// bounds into the full list.
func Paginate(total int, p viewstate.Pagination) Page {
	size := p.PageSize
	if size < 1 {
		size = viewstate.DefaultPageSize
	}
	pages := (total + size - 1) / size
	if pages < 1 {
		pages = 1
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}
	start := (page - 1) * size
	end := start + size
	if end > total {
		end = total
	}
	return Page{Page: page, PageSize: size, Total: total, TotalPages: pages, Start: start, End: end}
}

// PageOf returns the items of the page.
func PageOf[T any](items []T, p Page) []T {
	if p.Start >= len(items) {
		return []T{}
	}
	end := p.End
	if end > len(items) {
		end = len(items)
	}
	return items[p.Start:end]
}
