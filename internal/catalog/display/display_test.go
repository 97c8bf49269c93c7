package display

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"finitefield.org/catalog-viewer/internal/catalog"
)

func loaded(products []catalog.Product) catalog.Snapshot {
	return catalog.Snapshot{Products: products, Loaded: true}
}

func numbered(n int) []catalog.Product {
	out := make([]catalog.Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.Product{
			ID:    catalog.ProductID(fmt.Sprint(i)),
			Title: fmt.Sprintf("Product %02d", i),
			Price: catalog.NewPrice(float64(i)),
		})
	}
	return out
}

func TestBuildRowsApplyFallbacks(t *testing.T) {
	t.Parallel()

	products := []catalog.Product{
		{
			ID:          "7",
			Title:       "Rustic Oak Table",
			Description: "Solid oak.",
			Price:       catalog.ParsePrice("310"),
			Category:    &catalog.Category{Name: "Furniture"},
			Images:      catalog.Images{"https://i.imgur.com/a.jpeg"},
		},
		{ID: "8", Title: "<b>Bold</b>", Price: catalog.ParsePrice("call us")},
	}
	view := catalog.NewSession(products, catalog.DefaultState()).View()

	table := Build(loaded(products), view, DefaultOptions())
	require.Equal(t, StatusReady, table.Status)
	require.Len(t, table.Rows, 2)

	first := table.Rows[0]
	require.Equal(t, "$310.00", first.Price)
	require.Equal(t, "Furniture", first.Category)
	require.Equal(t, "Solid oak.", first.Description)
	require.Contains(t, first.ImageURL, "https://wsrv.nl/?url=")
	require.Equal(t, catalog.DefaultPlaceholderURL, first.FallbackURL)

	second := table.Rows[1]
	require.Equal(t, InvalidPrice, second.Price)
	require.Equal(t, MissingCategory, second.Category)
	require.Equal(t, MissingDescription, second.Description)
	require.Equal(t, catalog.DefaultPlaceholderURL, second.ImageURL)
	require.Equal(t, "<b>Bold</b>", second.Title)
}

func TestRowsKeepDescriptionText(t *testing.T) {
	t.Parallel()

	descriptions := []string{
		"Use the <b> tag for bold",
		"Fits <Large> and <XL> frames",
		"<script>alert(1)</script>Cheap",
		"Tom &amp; Jerry",
	}
	for _, desc := range descriptions {
		row := Rows([]catalog.Product{{ID: "1", Title: "T", Description: desc}}, "", DefaultOptions())[0]
		require.Equal(t, desc, row.Description)
	}

	row := Rows([]catalog.Product{{ID: "1", Title: "T", Description: "  \n "}}, "", DefaultOptions())[0]
	require.Equal(t, MissingDescription, row.Description)
}

func TestBuildEmptyHidesPagination(t *testing.T) {
	t.Parallel()

	products := numbered(12)
	session := catalog.NewSession(products, catalog.DefaultState())
	session.Search("no such product")

	table := Build(loaded(products), session.View(), DefaultOptions())
	require.Equal(t, StatusEmpty, table.Status)
	require.Equal(t, NoResultsMessage, table.Message)
	require.Empty(t, table.Rows)
	require.False(t, table.Pagination.Visible)
	require.Equal(t, 12, table.Total)
}

func TestBuildLoadingAndError(t *testing.T) {
	t.Parallel()

	view := catalog.NewSession(nil, catalog.DefaultState()).View()

	loading := Build(catalog.Snapshot{Loading: true}, view, DefaultOptions())
	require.Equal(t, StatusLoading, loading.Status)
	require.Equal(t, LoadingMessage, loading.Message)

	failed := Build(catalog.Snapshot{Loaded: true, Products: []catalog.Product{}, Err: errors.New("boom")}, view, DefaultOptions())
	require.Equal(t, StatusError, failed.Status)
	require.Equal(t, catalog.LoadErrorMessage, failed.Message)
	require.False(t, failed.Pagination.Visible)
}

func TestBuildPaginationAndSummary(t *testing.T) {
	t.Parallel()

	products := numbered(12)
	session := catalog.NewSession(products, catalog.DefaultState())

	first := Build(loaded(products), session.View(), DefaultOptions())
	require.Equal(t, "Showing 1-10 of 12", first.Summary)
	require.True(t, first.Pagination.Visible)
	require.True(t, first.Pagination.PrevDisabled)
	require.False(t, first.Pagination.NextDisabled)
	require.Equal(t, 2, first.Pagination.Next)

	session.NextPage()
	second := Build(loaded(products), session.View(), DefaultOptions())
	require.Equal(t, "Showing 11-12 of 12", second.Summary)
	require.Len(t, second.Rows, 2)
	require.True(t, second.Pagination.NextDisabled)
	require.Equal(t, 1, second.Pagination.Prev)
}

func TestColumnsReflectSortCycle(t *testing.T) {
	t.Parallel()

	columns := Columns(catalog.SortState{Direction: catalog.SortNone})
	require.Len(t, columns, 5)
	price := columns[3]
	require.True(t, price.Sortable)
	require.Equal(t, IconUnsorted, price.Icon)
	require.Equal(t, "none", price.AriaSort)
	require.Equal(t, catalog.SortState{Column: catalog.ColumnPrice, Direction: catalog.SortAsc}, price.Next)

	columns = Columns(catalog.SortState{Column: catalog.ColumnPrice, Direction: catalog.SortAsc})
	require.Equal(t, IconAscending, columns[3].Icon)
	require.Equal(t, catalog.SortDesc, columns[3].Next.Direction)
	require.Equal(t, IconUnsorted, columns[2].Icon)
	require.Equal(t, catalog.SortState{Column: catalog.ColumnTitle, Direction: catalog.SortAsc}, columns[2].Next)

	columns = Columns(catalog.SortState{Column: catalog.ColumnPrice, Direction: catalog.SortDesc})
	require.Equal(t, IconDescending, columns[3].Icon)
	require.Equal(t, "descending", columns[3].AriaSort)
	require.Equal(t, catalog.SortNone, columns[3].Next.Direction)

	require.False(t, columns[0].Sortable)
	require.False(t, columns[4].Sortable)
}

func TestHighlight(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		title string
		query string
		want  []Segment
	}{
		{name: "no query", title: "Red Hoodie", query: " ", want: []Segment{{Text: "Red Hoodie"}}},
		{name: "prefix", title: "Red Hoodie", query: "red", want: []Segment{{Text: "Red", Match: true}, {Text: " Hoodie"}}},
		{name: "repeated", title: "Classic Red Red", query: "RED", want: []Segment{
			{Text: "Classic "}, {Text: "Red", Match: true}, {Text: " "}, {Text: "Red", Match: true},
		}},
		{name: "no match", title: "Lamp", query: "desk", want: []Segment{{Text: "Lamp"}}},
		{name: "unicode", title: "Ölgemälde", query: "GEMÄ", want: []Segment{{Text: "Öl"}, {Text: "gemä", Match: true}, {Text: "lde"}}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, Highlight(tc.title, tc.query))
		})
	}
}

func TestPageSizeOptions(t *testing.T) {
	t.Parallel()

	opts := pageSizeOptions([]int{5, 10, 20}, 10)
	require.Equal(t, []PageSizeOption{{Size: 5}, {Size: 10, Selected: true}, {Size: 20}}, opts)

	custom := pageSizeOptions([]int{5, 10}, 7)
	require.Equal(t, PageSizeOption{Size: 7, Selected: true}, custom[len(custom)-1])
}

func TestFormatPrice(t *testing.T) {
	t.Parallel()

	require.Equal(t, "$12.50", FormatPrice(catalog.ParsePrice("12.5abc")))
	require.Equal(t, "$0.00", FormatPrice(catalog.NewPrice(0)))
	require.Equal(t, "N/A", FormatPrice(catalog.ParsePrice("free")))
}
