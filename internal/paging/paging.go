// Package paging computes page math and the pager display sequence shared
// by every list endpoint and table screen.
package paging

// Ellipsis is the collapsed-gap marker in a pager display sequence.
// Rendered as "…" by the frontend.
const Ellipsis = -1

// Page holds the computed pagination for one request.
type Page struct {
	PageCount  int
	Current    int
	StartIndex int
	EndIndex   int

	// Pages is the display sequence for the pager control: page numbers
	// with gaps collapsed to a single Ellipsis marker.
	Pages []int
}

// Compute derives pagination from a total item count, page size, and the
// requested page. pageCount is at least 1 even for an empty list, and the
// current page is clamped into [1, pageCount]. A non-positive pageSize is
// treated as 1.
func Compute(totalItems, pageSize, currentPage int) Page {
	if pageSize < 1 {
		pageSize = 1
	}
	if totalItems < 0 {
		totalItems = 0
	}

	pageCount := (totalItems + pageSize - 1) / pageSize
	if pageCount < 1 {
		pageCount = 1
	}

	if currentPage < 1 {
		currentPage = 1
	}
	if currentPage > pageCount {
		currentPage = pageCount
	}

	start := (currentPage - 1) * pageSize
	end := start + pageSize
	if end > totalItems {
		end = totalItems
	}
	if start > totalItems {
		start = totalItems
	}

	return Page{
		PageCount:  pageCount,
		Current:    currentPage,
		StartIndex: start,
		EndIndex:   end,
		Pages:      displaySequence(pageCount, currentPage),
	}
}

// Slice bounds-checks and applies the page window to a slice.
func Slice[T any](items []T, p Page) []T {
	if p.StartIndex >= len(items) {
		return []T{}
	}
	end := p.EndIndex
	if end > len(items) {
		end = len(items)
	}
	return items[p.StartIndex:end]
}

// displaySequence builds the pager sequence: always page 1 and the last
// page, the window current-1..current+1, and a single Ellipsis per gap.
// A gap of exactly one page shows the page itself instead of an ellipsis.
func displaySequence(pageCount, current int) []int {
	if pageCount <= 1 {
		return []int{1}
	}

	show := func(p int) bool {
		if p == 1 || p == pageCount {
			return true
		}
		return p >= current-1 && p <= current+1
	}

	seq := make([]int, 0, 9)
	lastShown := 0
	for p := 1; p <= pageCount; p++ {
		if !show(p) {
			continue
		}
		if lastShown != 0 && p-lastShown > 1 {
			if p-lastShown == 2 {
				// Gap of exactly one page: show the page, not an ellipsis.
				seq = append(seq, p-1)
			} else {
				seq = append(seq, Ellipsis)
			}
		}
		seq = append(seq, p)
		lastShown = p
	}
	return seq
}
