package catalog

import "strings"

// State is the complete view state of one catalog session.
type State struct {
	Query    string
	Page     int
	PageSize int
	Sort     SortState
}

// DefaultState returns the state of a freshly opened catalog.
func DefaultState() State {
	return State{Page: 1, PageSize: DefaultPageSize, Sort: SortState{Direction: SortNone}}
}

// Normalize fills defaults and drops inconsistent sort values.
func (s State) Normalize() State {
	s.Query = strings.TrimSpace(s.Query)
	if s.Page < 1 {
		s.Page = 1
	}
	if s.PageSize <= 0 {
		s.PageSize = DefaultPageSize
	}
	s.Sort.Column = ParseColumn(string(s.Sort.Column))
	s.Sort.Direction = ParseSortDirection(string(s.Sort.Direction))
	if s.Sort.Column == ColumnNone || s.Sort.Direction == SortNone {
		s.Sort = SortState{Direction: SortNone}
	}
	return s
}

// View is the derived data for rendering: the filtered and sorted collection, the clamped
// current page and its pagination controls.
type View struct {
	State    State
	Matched  []Product
	Page     Page
	Controls PageControls
	// Total is the size of the full catalog before filtering.
	Total int
}

// Empty reports whether no product matched the current query.
func (v View) Empty() bool {
	return len(v.Matched) == 0
}

// Session owns the state of one catalog view and recomputes the derived collection from
// the full catalog on every transition. A Session is not safe for concurrent use.
type Session struct {
	all     []Product
	state   State
	derived []Product
}

// NewSession builds a session over all products starting from state.
func NewSession(all []Product, state State) *Session {
	s := &Session{all: all, state: state.Normalize()}
	s.recompute()
	return s
}

// State returns the current state. The page is not clamped; use View for the rendered page.
func (s *Session) State() State {
	return s.state
}

// Clone returns an independent copy sharing the read-only catalog.
func (s *Session) Clone() *Session {
	return &Session{all: s.all, state: s.state, derived: s.derived}
}

// Preview applies fn to a clone and returns the resulting state.
func (s *Session) Preview(fn func(*Session)) State {
	next := s.Clone()
	fn(next)
	return next.state
}

// Search filters by query, returns to the first page and clears any active sort.
func (s *Session) Search(query string) {
	s.state.Query = strings.TrimSpace(query)
	s.state.Page = 1
	s.state.Sort = SortState{Direction: SortNone}
	s.recompute()
}

// ToggleSort advances the sort cycle for column and returns to the first page. When the
// cycle reaches none the order of the current filter result is restored.
func (s *Session) ToggleSort(column Column) {
	s.state.Sort = NextSort(s.state.Sort, column)
	s.state.Page = 1
	s.state = s.state.Normalize()
	s.recompute()
}

// SetPageSize changes the page size and returns to the first page. Non-positive sizes are ignored.
func (s *Session) SetPageSize(size int) bool {
	if size <= 0 {
		return false
	}
	s.state.PageSize = size
	s.state.Page = 1
	return true
}

// GoToPage selects page; out-of-range values are clamped when the view is built.
func (s *Session) GoToPage(page int) {
	if page < 1 {
		page = 1
	}
	s.state.Page = page
}

// NextPage advances one page unless the last page is shown.
func (s *Session) NextPage() bool {
	current := s.currentPage()
	if current >= TotalPages(len(s.derived), s.state.PageSize) {
		return false
	}
	s.GoToPage(current + 1)
	return true
}

// PrevPage goes back one page unless the first page is shown.
func (s *Session) PrevPage() bool {
	current := s.currentPage()
	if current <= 1 {
		return false
	}
	s.GoToPage(current - 1)
	return true
}

// View builds the render data, clamping the current page into range.
func (s *Session) View() View {
	page := Paginate(s.derived, s.state.Page, s.state.PageSize)
	state := s.state
	state.Page = page.Number
	return View{
		State:    state,
		Matched:  s.derived,
		Page:     page,
		Controls: Controls(page.Number, page.TotalPages),
		Total:    len(s.all),
	}
}

func (s *Session) currentPage() int {
	page := s.state.Page
	if total := TotalPages(len(s.derived), s.state.PageSize); page > total {
		page = total
	}
	return page
}

func (s *Session) recompute() {
	derived := Filter(s.all, s.state.Query)
	if s.state.Sort.Active() {
		derived = Sort(derived, s.state.Sort.Column, s.state.Sort.Direction)
	}
	s.derived = derived
}
