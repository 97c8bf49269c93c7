package catalog

const (
	// DefaultPageSize is the page size used when none (or a non-positive one) is requested.
	DefaultPageSize = 10
	// MaxVisiblePages caps the numbered page buttons shown around the current page.
	MaxVisiblePages = 5
)

// DefaultPageSizes lists the page sizes offered by the page-size selector.
var DefaultPageSizes = []int{5, 10, 20, 50}

// Page is one slice of an ordered product collection plus its position metadata.
type Page struct {
	Items      []Product
	Number     int
	Size       int
	TotalItems int
	TotalPages int
	// Start and End are the zero-based half-open bounds of Items within the collection.
	Start int
	End   int
}

// HasPrev reports whether a previous page exists.
func (p Page) HasPrev() bool { return p.Number > 1 }

// HasNext reports whether a following page exists.
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// TotalPages returns ceil(count/size) with a minimum of one page.
func TotalPages(count, size int) int {
	if size <= 0 {
		size = DefaultPageSize
	}
	if count <= 0 {
		return 1
	}
	return (count-1)/size + 1
}

// Paginate slices products into the requested page. Pages beyond the last one are clamped
// down to the last page and pages below one are clamped up to the first.
func Paginate(products []Product, page, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(products)
	totalPages := TotalPages(total, size)
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}

	return Page{
		Items:      append([]Product(nil), products[start:end]...),
		Number:     page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
		Start:      start,
		End:        end,
	}
}

// PageLinkKind distinguishes numbered buttons from elided gaps.
type PageLinkKind int

const (
	// PageLinkNumber is a numbered page button.
	PageLinkNumber PageLinkKind = iota
	// PageLinkEllipsis marks skipped page numbers.
	PageLinkEllipsis
)

// PageLink is one entry of the numbered page control.
type PageLink struct {
	Kind   PageLinkKind
	Number int
	Active bool
}

// PageControls describes the pagination bar for a page.
type PageControls struct {
	Current      int
	TotalPages   int
	Links        []PageLink
	PrevDisabled bool
	NextDisabled bool
}

// Controls builds the pagination bar: up to MaxVisiblePages numbers centred on current,
// the first and last pages always reachable, with ellipses for elided ranges.
func Controls(current, totalPages int) PageControls {
	if totalPages < 1 {
		totalPages = 1
	}
	if current > totalPages {
		current = totalPages
	}
	if current < 1 {
		current = 1
	}

	startPage := max(1, current-MaxVisiblePages/2)
	endPage := min(totalPages, startPage+MaxVisiblePages-1)
	if endPage-startPage+1 < MaxVisiblePages {
		startPage = max(1, endPage-MaxVisiblePages+1)
	}

	links := make([]PageLink, 0, MaxVisiblePages+4)
	if startPage > 1 {
		links = append(links, PageLink{Kind: PageLinkNumber, Number: 1})
		if startPage > 2 {
			links = append(links, PageLink{Kind: PageLinkEllipsis})
		}
	}
	for i := startPage; i <= endPage; i++ {
		links = append(links, PageLink{Kind: PageLinkNumber, Number: i, Active: i == current})
	}
	if endPage < totalPages {
		if endPage < totalPages-1 {
			links = append(links, PageLink{Kind: PageLinkEllipsis})
		}
		links = append(links, PageLink{Kind: PageLinkNumber, Number: totalPages})
	}

	return PageControls{
		Current:      current,
		TotalPages:   totalPages,
		Links:        links,
		PrevDisabled: current == 1,
		NextDisabled: current == totalPages,
	}
}
