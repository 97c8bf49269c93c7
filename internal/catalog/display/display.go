// Package display projects a catalog view into render-ready rows, headers and pagination
// controls shared by the web templates and the terminal browser.
package display

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"finitefield.org/catalog-viewer/internal/catalog"
)

const (
	// NoResultsMessage replaces the table body when no product matches the query.
	NoResultsMessage = "No products found."
	// LoadingMessage is shown while the initial fetch is running.
	LoadingMessage = "Loading products..."
	// MissingCategory is shown for products without a category.
	MissingCategory = "N/A"
	// MissingDescription is shown for products without a description.
	MissingDescription = "No description"
	// InvalidPrice is shown for prices without a numeric value.
	InvalidPrice = "N/A"
)

// Sort icons rendered next to sortable column labels.
const (
	IconUnsorted   = "⇅"
	IconAscending  = "↑"
	IconDescending = "↓"
)

// Status is the overall state of the table area.
type Status string

const (
	StatusReady   Status = "ready"
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusEmpty   Status = "empty"
)

// Options configures the projection.
type Options struct {
	Resolver  catalog.ImageResolver
	PageSizes []int
	// Highlight splits titles into matching and non-matching segments for the query.
	Highlight bool
}

// DefaultOptions returns the options used by both front ends.
func DefaultOptions() Options {
	return Options{
		Resolver:  catalog.DefaultImageResolver(),
		PageSizes: catalog.DefaultPageSizes,
		Highlight: true,
	}
}

// Column describes one table column header.
type Column struct {
	Key       string
	Label     string
	Sortable  bool
	Column    catalog.Column
	Direction catalog.SortDirection
	Icon      string
	// AriaSort is the aria-sort attribute value for the header cell.
	AriaSort string
	// Next is the sort state reached by activating the header.
	Next catalog.SortState
}

// Segment is a run of title text, flagged when it matches the search query.
type Segment struct {
	Text  string
	Match bool
}

// Row is a render-ready product.
type Row struct {
	ID            string
	Title         string
	TitleSegments []Segment
	Description   string
	Price         string
	Category      string
	ImageURL      string
	FallbackURL   string
}

// PageSizeOption is an entry of the page size selector.
type PageSizeOption struct {
	Size     int
	Selected bool
}

// Pagination is the projected pagination bar.
type Pagination struct {
	Visible      bool
	Current      int
	TotalPages   int
	Links        []catalog.PageLink
	Prev         int
	Next         int
	PrevDisabled bool
	NextDisabled bool
}

// Table is everything a front end needs to draw the catalog table.
type Table struct {
	Status     Status
	Message    string
	Query      string
	Columns    []Column
	Rows       []Row
	Pagination Pagination
	PageSize   int
	PageSizes  []PageSizeOption
	Summary    string
	Matched    int
	Total      int
}

// Build projects view and the load status of snapshot into a Table.
func Build(snapshot catalog.Snapshot, view catalog.View, opts Options) Table {
	table := Table{
		Query:     view.State.Query,
		Columns:   Columns(view.State.Sort),
		PageSize:  view.Page.Size,
		PageSizes: pageSizeOptions(opts.PageSizes, view.Page.Size),
		Matched:   len(view.Matched),
		Total:     view.Total,
	}

	switch {
	case snapshot.Loading:
		table.Status = StatusLoading
		table.Message = LoadingMessage
		return table
	case snapshot.Err != nil:
		table.Status = StatusError
		table.Message = snapshot.ErrorMessage()
		return table
	case view.Empty():
		table.Status = StatusEmpty
		table.Message = NoResultsMessage
		return table
	}

	table.Status = StatusReady
	table.Rows = Rows(view.Page.Items, view.State.Query, opts)
	table.Pagination = paginationFor(view.Controls)
	table.Summary = Summary(view.Page)
	return table
}

// Columns returns the table headers for the active sort.
func Columns(active catalog.SortState) []Column {
	columns := []Column{
		{Key: "id", Label: "ID"},
		{Key: "image", Label: "Image"},
		sortableColumn(catalog.ColumnTitle, "Title", active),
		sortableColumn(catalog.ColumnPrice, "Price", active),
		{Key: "category", Label: "Category"},
	}
	return columns
}

func sortableColumn(column catalog.Column, label string, active catalog.SortState) Column {
	direction := active.DirectionFor(column)
	return Column{
		Key:       string(column),
		Label:     label,
		Sortable:  true,
		Column:    column,
		Direction: direction,
		Icon:      SortIcon(direction),
		AriaSort:  ariaSort(direction),
		Next:      catalog.NextSort(active, column),
	}
}

// SortIcon returns the header glyph for direction.
func SortIcon(direction catalog.SortDirection) string {
	switch direction {
	case catalog.SortAsc:
		return IconAscending
	case catalog.SortDesc:
		return IconDescending
	default:
		return IconUnsorted
	}
}

func ariaSort(direction catalog.SortDirection) string {
	switch direction {
	case catalog.SortAsc:
		return "ascending"
	case catalog.SortDesc:
		return "descending"
	default:
		return "none"
	}
}

// Rows converts products into display rows applying the missing-field fallbacks.
func Rows(products []catalog.Product, query string, opts Options) []Row {
	resolver := opts.Resolver
	rows := make([]Row, 0, len(products))
	for _, p := range products {
		row := Row{
			ID:          p.ID.String(),
			Title:       p.Title,
			Description: fallback(strings.TrimSpace(p.Description), MissingDescription),
			Price:       FormatPrice(p.Price),
			Category:    MissingCategory,
			ImageURL:    resolver.ResolveFirst(p.Images),
			FallbackURL: resolver.PlaceholderURL(),
		}
		if p.Category != nil {
			row.Category = fallback(p.Category.Name, MissingCategory)
		}
		if opts.Highlight {
			row.TitleSegments = Highlight(p.Title, query)
		} else {
			row.TitleSegments = []Segment{{Text: p.Title}}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatPrice renders a price as dollars with two decimals.
func FormatPrice(price catalog.Price) string {
	if !price.Valid {
		return InvalidPrice
	}
	return "$" + price.Fixed(InvalidPrice)
}

// Summary describes the visible range, e.g. "Showing 1-10 of 12".
func Summary(page catalog.Page) string {
	if page.TotalItems == 0 {
		return "Showing 0 of 0"
	}
	return fmt.Sprintf("Showing %d-%d of %d", page.Start+1, page.End, page.TotalItems)
}

// Highlight splits title into segments, marking every case-insensitive occurrence of query.
// Matching is done rune by rune on folded text so offsets stay aligned with the original.
func Highlight(title, query string) []Segment {
	term := strings.TrimSpace(query)
	if term == "" || title == "" {
		return []Segment{{Text: title}}
	}

	fold := cases.Fold()
	titleRunes := []rune(title)
	folded := make([]string, len(titleRunes))
	for i, r := range titleRunes {
		folded[i] = fold.String(string(r))
	}
	needle := fold.String(term)

	var segments []Segment
	var plain strings.Builder
	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, Segment{Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(titleRunes); {
		end, ok := matchAt(folded, i, needle)
		if !ok {
			plain.WriteRune(titleRunes[i])
			i++
			continue
		}
		flush()
		segments = append(segments, Segment{Text: string(titleRunes[i:end]), Match: true})
		i = end
	}
	flush()
	return segments
}

func matchAt(folded []string, start int, needle string) (int, bool) {
	rest := needle
	for i := start; i < len(folded); i++ {
		if !strings.HasPrefix(rest, folded[i]) {
			return 0, false
		}
		rest = rest[len(folded[i]):]
		if rest == "" {
			return i + 1, true
		}
	}
	return 0, false
}

func paginationFor(controls catalog.PageControls) Pagination {
	return Pagination{
		Visible:      true,
		Current:      controls.Current,
		TotalPages:   controls.TotalPages,
		Links:        controls.Links,
		Prev:         max(1, controls.Current-1),
		Next:         min(controls.TotalPages, controls.Current+1),
		PrevDisabled: controls.PrevDisabled,
		NextDisabled: controls.NextDisabled,
	}
}

func pageSizeOptions(sizes []int, current int) []PageSizeOption {
	if len(sizes) == 0 {
		sizes = catalog.DefaultPageSizes
	}
	out := make([]PageSizeOption, 0, len(sizes)+1)
	found := false
	for _, size := range sizes {
		if size <= 0 {
			continue
		}
		selected := size == current
		found = found || selected
		out = append(out, PageSizeOption{Size: size, Selected: selected})
	}
	if !found && current > 0 {
		out = append(out, PageSizeOption{Size: current, Selected: true})
	}
	return out
}

func fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
