// Package tui renders the product catalog in the terminal.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/catalog/display"
)

const (
	defaultTableHeight = 12
	idWidth            = 6
	titleWidth         = 44
	priceWidth         = 12
	categoryWidth      = 16
)

// Options configures the terminal browser.
type Options struct {
	Context  context.Context
	Source   catalog.Source
	Store    *catalog.Store
	Display  display.Options
	PageSize int
	Logger   *zap.Logger
}

type loadedMsg struct{}

// Model is the bubbletea model for the catalog browser.
type Model struct {
	ctx     context.Context
	source  catalog.Source
	store   *catalog.Store
	display display.Options
	logger  *zap.Logger

	session   *catalog.Session
	snapshot  catalog.Snapshot
	current   display.Table
	search    textinput.Model
	table     table.Model
	spinner   spinner.Model
	searching bool
	width     int
}

// New builds a model that loads the catalog from opts.Source on start.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	store := opts.Store
	if store == nil {
		store = catalog.NewStore(logger)
	}
	displayOpts := opts.Display
	if len(displayOpts.PageSizes) == 0 {
		displayOpts.PageSizes = catalog.DefaultPageSizes
	}

	search := textinput.New()
	search.Placeholder = "Search by title..."
	search.Prompt = "/ "
	search.CharLimit = 64

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(accent)

	tbl := table.New(
		table.WithColumns(tableColumns(display.Columns(catalog.SortState{}))),
		table.WithFocused(true),
		table.WithHeight(defaultTableHeight),
		table.WithStyles(tableStyles()),
	)

	state := catalog.DefaultState()
	if opts.PageSize > 0 {
		state.PageSize = opts.PageSize
	}

	m := Model{
		ctx:     ctx,
		source:  opts.Source,
		store:   store,
		display: displayOpts,
		logger:  logger,
		session: catalog.NewSession(nil, state),
		search:  search,
		table:   tbl,
		spinner: spin,
	}
	m.refresh()
	return m
}

// Init starts the spinner and the catalog load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	store, source, ctx := m.store, m.source, m.ctx
	return func() tea.Msg {
		if source != nil {
			store.Load(ctx, source)
		}
		return loadedMsg{}
	}
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.session = catalog.NewSession(m.store.Snapshot().Products, m.session.State())
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		if !m.snapshot.Loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		frame, _ := tableStyle.GetFrameSize()
		m.table.SetWidth(max(0, msg.Width-frame))
		m.table.SetHeight(max(3, msg.Height-10))
		return m, nil

	case tea.KeyMsg:
		if m.searching {
			return m.updateSearch(msg)
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "enter", "esc":
		m.searching = false
		m.search.Blur()
		m.table.Focus()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.session.Search(m.search.Value())
		m.refresh()
	}
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		m.table.Blur()
		cmd := m.search.Focus()
		return m, cmd
	case "t":
		m.session.ToggleSort(catalog.ColumnTitle)
	case "p":
		m.session.ToggleSort(catalog.ColumnPrice)
	case "right", "l", "n":
		if !m.session.NextPage() {
			return m, nil
		}
	case "left", "h":
		if !m.session.PrevPage() {
			return m, nil
		}
	case "+", "=":
		if !m.session.SetPageSize(m.stepPageSize(1)) {
			return m, nil
		}
	case "-":
		if !m.session.SetPageSize(m.stepPageSize(-1)) {
			return m, nil
		}
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	m.refresh()
	return m, nil
}

// stepPageSize returns the configured size next to the current one in direction step.
func (m Model) stepPageSize(step int) int {
	sizes := slices.Clone(m.display.PageSizes)
	slices.Sort(sizes)
	current := m.session.State().PageSize
	if step > 0 {
		for _, size := range sizes {
			if size > current {
				return size
			}
		}
		return 0
	}
	for i := len(sizes) - 1; i >= 0; i-- {
		if sizes[i] < current && sizes[i] > 0 {
			return sizes[i]
		}
	}
	return 0
}

func (m *Model) refresh() {
	m.snapshot = m.store.Snapshot()
	m.current = display.Build(m.snapshot, m.session.View(), m.display)

	m.table.SetColumns(tableColumns(m.current.Columns))
	m.table.SetRows(tableRows(m.current.Rows))
	m.table.SetCursor(0)

	m.logger.Debug("tui view",
		zap.String("query", m.current.Query),
		zap.String("status", string(m.current.Status)),
		zap.Int("matched", m.current.Matched),
	)
}

// View renders the current screen.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Product Catalog"))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n")

	switch m.current.Status {
	case display.StatusLoading:
		b.WriteString(messageStyle.Render(m.spinner.View() + " " + m.current.Message))
	case display.StatusError:
		b.WriteString(messageStyle.Render(errorStyle.Render(m.current.Message)))
	case display.StatusEmpty:
		b.WriteString(messageStyle.Render(m.current.Message))
	default:
		b.WriteString(tableStyle.Render(m.table.View()))
		b.WriteString("\n")
		b.WriteString(summaryStyle.Render(m.footer()))
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	return b.String()
}

func (m Model) footer() string {
	p := m.current.Pagination
	return fmt.Sprintf("%s  ·  page %d/%d  ·  %d per page", m.current.Summary, p.Current, p.TotalPages, m.current.PageSize)
}

func (m Model) help() string {
	if m.searching {
		return "enter/esc: done  ctrl+c: quit"
	}
	return "/: search  t: sort title  p: sort price  ←/→: page  +/-: page size  q: quit"
}

func tableColumns(columns []display.Column) []table.Column {
	widths := map[string]int{
		"id":       idWidth,
		"title":    titleWidth,
		"price":    priceWidth,
		"category": categoryWidth,
	}
	out := make([]table.Column, 0, len(widths))
	for _, column := range columns {
		width, ok := widths[column.Key]
		if !ok {
			continue
		}
		title := column.Label
		if column.Sortable {
			title += " " + column.Icon
		}
		out = append(out, table.Column{Title: title, Width: width})
	}
	return out
}

func tableRows(rows []display.Row) []table.Row {
	out := make([]table.Row, 0, len(rows))
	for _, row := range rows {
		out = append(out, table.Row{row.ID, row.Title, row.Price, row.Category})
	}
	return out
}
