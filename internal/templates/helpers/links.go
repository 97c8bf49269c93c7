package helpers

import (
	"net/url"
	"strconv"
	"strings"

	"finitefield.org/catalog-viewer/internal/catalog"
)

// Query parameter names carrying the catalog view state.
const (
	ParamQuery = "q"
	ParamPage  = "page"
	ParamSize  = "size"
	ParamSort  = "sort"
	ParamDir   = "dir"
)

// Links builds page and fragment URLs for a catalog state.
type Links struct {
	PagePath        string
	FragmentPath    string
	DefaultPageSize int
}

// NewLinks resolves the page and fragment paths under basePath.
func NewLinks(basePath string, defaultPageSize int) Links {
	if defaultPageSize <= 0 {
		defaultPageSize = catalog.DefaultPageSize
	}
	return Links{
		PagePath:        JoinBase(basePath, "/"),
		FragmentPath:    JoinBase(basePath, "/table"),
		DefaultPageSize: defaultPageSize,
	}
}

// Page returns the full page URL for state.
func (l Links) Page(state catalog.State) string {
	return withQuery(l.PagePath, l.Values(state))
}

// Fragment returns the htmx table fragment URL for state.
func (l Links) Fragment(state catalog.State) string {
	return withQuery(l.FragmentPath, l.Values(state))
}

// Values encodes state, omitting parameters at their default value.
func (l Links) Values(state catalog.State) url.Values {
	values := url.Values{}
	if q := strings.TrimSpace(state.Query); q != "" {
		values.Set(ParamQuery, q)
	}
	if state.Page > 1 {
		values.Set(ParamPage, strconv.Itoa(state.Page))
	}
	if state.PageSize > 0 && state.PageSize != l.DefaultPageSize {
		values.Set(ParamSize, strconv.Itoa(state.PageSize))
	}
	if state.Sort.Active() {
		values.Set(ParamSort, string(state.Sort.Column))
		values.Set(ParamDir, string(state.Sort.Direction))
	}
	return values
}

// ParseState reads a catalog state from query values. Unknown or malformed values fall
// back to the defaults rather than failing.
func (l Links) ParseState(values url.Values) catalog.State {
	state := catalog.State{
		Query:    values.Get(ParamQuery),
		Page:     positiveIntDefault(values.Get(ParamPage), 1),
		PageSize: positiveIntDefault(values.Get(ParamSize), l.DefaultPageSize),
	}
	column := catalog.ParseColumn(values.Get(ParamSort))
	direction := catalog.ParseSortDirection(values.Get(ParamDir))
	if column != catalog.ColumnNone && strings.TrimSpace(values.Get(ParamDir)) == "" {
		direction = catalog.SortAsc
	}
	state.Sort = catalog.SortState{Column: column, Direction: direction}
	return state.Normalize()
}

// JoinBase joins suffix onto basePath, treating an empty base as the root.
func JoinBase(basePath, suffix string) string {
	base := strings.TrimSpace(basePath)
	if base == "" {
		base = "/"
	}
	if !strings.HasPrefix(base, "/") {
		base = "/" + base
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	if base == "/" {
		return suffix
	}
	base = strings.TrimRight(base, "/")
	if suffix == "/" {
		return base
	}
	return base + suffix
}

func withQuery(path string, values url.Values) string {
	if encoded := values.Encode(); encoded != "" {
		return path + "?" + encoded
	}
	return path
}

func positiveIntDefault(raw string, fallback int) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
