package catalog

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Column names a sortable table column.
type Column string

const (
	// ColumnNone means no column is sorted.
	ColumnNone Column = ""
	// ColumnTitle sorts by product title.
	ColumnTitle Column = "title"
	// ColumnPrice sorts by numeric price.
	ColumnPrice Column = "price"
)

// SortableColumns lists the columns that accept sort toggles, in display order.
var SortableColumns = []Column{ColumnTitle, ColumnPrice}

// ParseColumn normalises a column name; unknown names map to ColumnNone.
func ParseColumn(raw string) Column {
	switch Column(strings.ToLower(strings.TrimSpace(raw))) {
	case ColumnTitle:
		return ColumnTitle
	case ColumnPrice:
		return ColumnPrice
	default:
		return ColumnNone
	}
}

// SortDirection describes the requested sort ordering.
type SortDirection string

const (
	// SortNone keeps the filter's natural order.
	SortNone SortDirection = "none"
	// SortAsc sorts ascending.
	SortAsc SortDirection = "asc"
	// SortDesc sorts descending.
	SortDesc SortDirection = "desc"
)

// ParseSortDirection normalises a direction; unknown values map to SortNone.
func ParseSortDirection(raw string) SortDirection {
	switch SortDirection(strings.ToLower(strings.TrimSpace(raw))) {
	case SortAsc:
		return SortAsc
	case SortDesc:
		return SortDesc
	default:
		return SortNone
	}
}

// SortState is the active column and its direction. Only one column is sorted at a time.
type SortState struct {
	Column    Column
	Direction SortDirection
}

// Active reports whether the state actually reorders products.
func (s SortState) Active() bool {
	return s.Column != ColumnNone && s.Direction != SortNone && s.Direction != ""
}

// DirectionFor returns the direction applied to column, SortNone when another column is active.
func (s SortState) DirectionFor(column Column) SortDirection {
	if !s.Active() || s.Column != column {
		return SortNone
	}
	return s.Direction
}

// NextSort advances the tri-state cycle for column. Repeated activation of the same column
// goes none -> asc -> desc -> none; activating a different column starts at asc.
func NextSort(current SortState, column Column) SortState {
	column = ParseColumn(string(column))
	if column == ColumnNone {
		return SortState{Direction: SortNone}
	}
	if current.Column != column {
		return SortState{Column: column, Direction: SortAsc}
	}
	switch current.Direction {
	case SortAsc:
		return SortState{Column: column, Direction: SortDesc}
	case SortDesc:
		return SortState{Column: column, Direction: SortNone}
	default:
		return SortState{Column: column, Direction: SortAsc}
	}
}

// Sort returns a new slice ordered by column and direction. The sort is stable so ties keep
// their input order. SortNone or an unknown column returns an unchanged copy.
func Sort(products []Product, column Column, direction SortDirection) []Product {
	out := append([]Product(nil), products...)
	cmp := comparator(column)
	if cmp == nil || (direction != SortAsc && direction != SortDesc) {
		return out
	}
	if direction == SortDesc {
		asc := cmp
		cmp = func(a, b sortKey) int { return asc(b, a) }
	}

	keys := make([]sortKey, len(out))
	fold := cases.Fold()
	for i := range out {
		keys[i] = sortKey{index: i, title: fold.String(out[i].Title), price: out[i].Price}
	}
	slices.SortStableFunc(keys, cmp)

	sorted := make([]Product, len(out))
	for i, key := range keys {
		sorted[i] = out[key.index]
	}
	return sorted
}

type sortKey struct {
	index int
	title string
	price Price
}

func comparator(column Column) func(a, b sortKey) int {
	switch column {
	case ColumnTitle:
		return func(a, b sortKey) int { return strings.Compare(a.title, b.title) }
	case ColumnPrice:
		return func(a, b sortKey) int { return a.price.Compare(b.price) }
	default:
		return nil
	}
}
