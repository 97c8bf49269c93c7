package tui

import (
	"context"
	"errors"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"finitefield.org/catalog-viewer/internal/catalog"
	"finitefield.org/catalog-viewer/internal/catalog/display"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func numbered(n int) []catalog.Product {
	out := make([]catalog.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.Product{
			ID:    catalog.ProductID(fmt.Sprintf("%d", i)),
			Title: fmt.Sprintf("Product %02d", i),
			Price: catalog.NewPrice(float64(i)),
		})
	}
	return out
}

func loaded(t *testing.T, source catalog.Source) Model {
	t.Helper()

	m := New(Options{Source: source, Display: display.DefaultOptions()})
	msg := m.load()()
	require.IsType(t, loadedMsg{}, msg)

	next, _ := m.Update(msg)
	return next.(Model)
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func firstIDs(m Model) []string {
	var out []string
	for _, row := range m.table.Rows() {
		out = append(out, row[0])
	}
	return out
}

func staticSource(products []catalog.Product) catalog.Source {
	return catalog.SourceFunc(func(context.Context) ([]catalog.Product, error) {
		return products, nil
	})
}

func TestModelShowsLoadingUntilFetched(t *testing.T) {
	m := New(Options{Source: staticSource(numbered(3))})
	require.Equal(t, display.StatusLoading, m.current.Status)
	require.Contains(t, m.View(), display.LoadingMessage)

	m = loaded(t, staticSource(numbered(3)))
	require.Equal(t, display.StatusReady, m.current.Status)
	require.Equal(t, []string{"1", "2", "3"}, firstIDs(m))
	require.Contains(t, m.View(), "Showing 1-3 of 3")
}

func TestModelLoadFailureShowsMessage(t *testing.T) {
	m := loaded(t, catalog.SourceFunc(func(context.Context) ([]catalog.Product, error) {
		return nil, errors.New("offline")
	}))

	require.Equal(t, display.StatusError, m.current.Status)
	require.Contains(t, m.View(), catalog.LoadErrorMessage)
	require.NotContains(t, m.View(), "offline")
}

func TestModelPriceSortCycles(t *testing.T) {
	m := loaded(t, staticSource(numbered(12)))
	require.Equal(t, "1", firstIDs(m)[0])

	m = press(t, m, runes("p"))
	require.Equal(t, catalog.SortAsc, m.session.State().Sort.Direction)
	require.Equal(t, "1", firstIDs(m)[0])
	require.Equal(t, "Price ↑", m.table.Columns()[2].Title)

	m = press(t, m, runes("p"))
	require.Equal(t, "12", firstIDs(m)[0])
	require.Equal(t, "Price ↓", m.table.Columns()[2].Title)

	m = press(t, m, runes("p"))
	require.False(t, m.session.State().Sort.Active())
	require.Equal(t, "1", firstIDs(m)[0])
	require.Equal(t, "Price ⇅", m.table.Columns()[2].Title)
}

func TestModelPagingAndPageSize(t *testing.T) {
	m := loaded(t, staticSource(numbered(12)))
	require.Len(t, m.table.Rows(), 10)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, []string{"11", "12"}, firstIDs(m))

	// already on the last page
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	require.Equal(t, 2, m.current.Pagination.Current)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	require.Equal(t, 1, m.current.Pagination.Current)

	m = press(t, m, runes("+"))
	require.Equal(t, 20, m.session.State().PageSize)
	require.Len(t, m.table.Rows(), 12)

	m = press(t, m, runes("-"), runes("-"))
	require.Equal(t, 5, m.session.State().PageSize)
	require.Len(t, m.table.Rows(), 5)

	// no smaller size configured
	m = press(t, m, runes("-"))
	require.Equal(t, 5, m.session.State().PageSize)
}

func TestModelSearchFiltersAndResetsSort(t *testing.T) {
	m := loaded(t, staticSource(numbered(12)))
	m = press(t, m, runes("p"), runes("p"))
	require.True(t, m.session.State().Sort.Active())

	m = press(t, m, runes("/"))
	require.True(t, m.searching)

	// keys go to the input while searching
	m = press(t, m, runes("1"))
	require.Equal(t, "1", m.search.Value())
	require.Equal(t, []string{"1", "10", "11", "12"}, firstIDs(m))
	require.False(t, m.session.State().Sort.Active())

	m = press(t, m, runes("9"))
	require.Equal(t, display.StatusEmpty, m.current.Status)
	require.Contains(t, m.View(), display.NoResultsMessage)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, m.searching)
	require.Equal(t, "19", m.session.State().Query)
}

func TestModelQuit(t *testing.T) {
	m := loaded(t, staticSource(numbered(2)))

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())

	m = press(t, m, runes("/"), runes("q"))
	require.True(t, m.searching)
	require.Equal(t, "q", m.search.Value())

	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
}

func TestStepPageSize(t *testing.T) {
	m := New(Options{Display: display.Options{PageSizes: []int{50, 10, 20}}})
	require.Equal(t, 20, m.stepPageSize(1))
	require.Equal(t, 0, m.stepPageSize(-1))
}
