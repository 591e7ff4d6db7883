package helpers

import "strconv"

// Page carries the pagination state handed to list endpoints and back to the
// caller: which slice of rows to fetch and which page links to render.
type Page struct {
	ItemCount   int   `json:"item_count"`
	PageIndex   int   `json:"page_index"`
	ItemPage    int   `json:"item_page"`
	PageCount   int   `json:"page_count"`
	Offset      int   `json:"offset"`
	Limit       int   `json:"limit"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
	PageList    []int `json:"page_list"`
}

// NewPage computes pagination for itemCount rows at itemPage rows per page.
// pageIndex is clamped into [1, pageCount]; pageShow bounds how many page
// numbers appear in PageList, centered on the current page.
func NewPage(itemCount, pageIndex, itemPage, pageShow int) *Page {
	if itemPage < 1 {
		itemPage = 10
	}
	if pageShow < 1 {
		pageShow = 5
	}
	pageCount := itemCount / itemPage
	if itemCount%itemPage > 0 {
		pageCount++
	}
	if pageIndex < 1 {
		pageIndex = 1
	}
	if pageCount > 0 && pageIndex > pageCount {
		pageIndex = pageCount
	}
	p := &Page{
		ItemCount: itemCount,
		PageIndex: pageIndex,
		ItemPage:  itemPage,
		PageCount: pageCount,
	}
	if itemCount == 0 {
		p.Limit = itemPage
		p.PageList = []int{}
		return p
	}
	p.Offset = itemPage * (pageIndex - 1)
	p.Limit = itemPage
	p.HasNext = pageIndex < pageCount
	p.HasPrevious = pageIndex > 1

	start := pageIndex - pageShow/2
	if start < 1 {
		start = 1
	}
	end := start + pageShow - 1
	if end > pageCount {
		end = pageCount
		if start = end - pageShow + 1; start < 1 {
			start = 1
		}
	}
	for i := start; i <= end; i++ {
		p.PageList = append(p.PageList, i)
	}
	return p
}

// ParsePageIndex converts a query-string page value into a usable index,
// falling back to 1 on garbage.
func ParsePageIndex(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 1
	}
	return n
}
