package catalog

import (
	"strconv"
	"time"

	domain "finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/catalog/display"
	"finitefield.org/catalog-viewer/internal/templates/helpers"
)

const (
	tableTarget = "#catalog-table"
	tableSwap   = "outerHTML"
)

// PageData represents the payload for the catalog index page.
type PageData struct {
	Title         string
	Description   string
	PagePath      string
	TableEndpoint string
	Query         string
	Table         TableData
	LastUpdated   string
}

// TableData contains the fragment payload for the product table.
type TableData struct {
	PagePath     string
	FragmentPath string
	HxTarget     string
	HxSwap       string
	Status       string
	Message      string
	Loading      bool
	Failed       bool
	Empty        bool
	ReloadURL    string
	Columns      []HeaderView
	Rows         []display.Row
	Summary      string
	Pagination   PaginationView
	PageSize     PageSizeView
}

// HeaderView is a table header cell with its sort link.
type HeaderView struct {
	Key      string
	Label    string
	Sortable bool
	Icon     string
	AriaSort string
	Active   bool
	Href     string
	HxGet    string
}

// LinkView is a navigable pagination control.
type LinkView struct {
	Label    string
	Href     string
	HxGet    string
	Active   bool
	Disabled bool
	Ellipsis bool
}

// PaginationView holds the pagination bar.
type PaginationView struct {
	Visible bool
	Prev    LinkView
	Next    LinkView
	Pages   []LinkView
}

// PageSizeView drives the page size selector form.
type PageSizeView struct {
	Action     string
	HxGet      string
	Options    []display.PageSizeOption
	Query      string
	SortColumn string
	SortDir    string
}

// TablePayload builds the table fragment payload for session.
func TablePayload(links helpers.Links, session *domain.Session, snapshot domain.Snapshot, opts display.Options) TableData {
	view := session.View()
	table := display.Build(snapshot, view, opts)

	data := TableData{
		PagePath:     links.PagePath,
		FragmentPath: links.FragmentPath,
		HxTarget:     tableTarget,
		HxSwap:       tableSwap,
		Status:       string(table.Status),
		Message:      table.Message,
		Loading:      table.Status == display.StatusLoading,
		Failed:       table.Status == display.StatusError,
		Empty:        table.Status == display.StatusEmpty,
		ReloadURL:    links.Fragment(view.State),
		Columns:      headerViews(links, session, table.Columns),
		Rows:         table.Rows,
		Summary:      table.Summary,
		Pagination:   paginationView(links, session, table.Pagination),
	}

	state := view.State
	data.PageSize = PageSizeView{
		Action:  links.PagePath,
		HxGet:   links.FragmentPath,
		Options: table.PageSizes,
		Query:   state.Query,
	}
	if state.Sort.Active() {
		data.PageSize.SortColumn = string(state.Sort.Column)
		data.PageSize.SortDir = string(state.Sort.Direction)
	}
	return data
}

// BuildPageData assembles the full page payload around an already built table.
func BuildPageData(links helpers.Links, session *domain.Session, snapshot domain.Snapshot, table TableData) PageData {
	page := PageData{
		Title:         "Product Catalog",
		Description:   "Browse, search and sort the product catalog.",
		PagePath:      links.PagePath,
		TableEndpoint: links.FragmentPath,
		Query:         session.State().Query,
		Table:         table,
	}
	if !snapshot.LoadedAt.IsZero() {
		page.LastUpdated = snapshot.LoadedAt.UTC().Format(time.RFC3339)
	}
	return page
}

func headerViews(links helpers.Links, session *domain.Session, columns []display.Column) []HeaderView {
	out := make([]HeaderView, 0, len(columns))
	for _, column := range columns {
		header := HeaderView{
			Key:      column.Key,
			Label:    column.Label,
			Sortable: column.Sortable,
			Icon:     column.Icon,
			AriaSort: column.AriaSort,
			Active:   column.Direction != domain.SortNone,
		}
		if column.Sortable {
			target := column.Column
			next := session.Preview(func(s *domain.Session) { s.ToggleSort(target) })
			header.Href = links.Page(next)
			header.HxGet = links.Fragment(next)
		}
		out = append(out, header)
	}
	return out
}

func paginationView(links helpers.Links, session *domain.Session, pagination display.Pagination) PaginationView {
	if !pagination.Visible {
		return PaginationView{}
	}

	link := func(label string, page int) LinkView {
		state := session.Preview(func(s *domain.Session) { s.GoToPage(page) })
		return LinkView{
			Label: label,
			Href:  links.Page(state),
			HxGet: links.Fragment(state),
		}
	}

	view := PaginationView{Visible: true}
	view.Prev = link("Previous", pagination.Prev)
	view.Prev.Disabled = pagination.PrevDisabled
	view.Next = link("Next", pagination.Next)
	view.Next.Disabled = pagination.NextDisabled

	view.Pages = make([]LinkView, 0, len(pagination.Links))
	for _, entry := range pagination.Links {
		if entry.Kind == domain.PageLinkEllipsis {
			view.Pages = append(view.Pages, LinkView{Label: "...", Ellipsis: true})
			continue
		}
		page := link(strconv.Itoa(entry.Number), entry.Number)
		page.Active = entry.Active
		view.Pages = append(view.Pages, page)
	}
	return view
}
