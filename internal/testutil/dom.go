package testutil

import (
	"bytes"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

// ParseHTML parses a rendered page or table fragment for DOM assertions.
func ParseHTML(t testing.TB, body []byte) *goquery.Document {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	require.NoError(t, err, "parse html")
	return doc
}

// RowIDs lists the product ids of the rendered catalog rows in display order.
func RowIDs(doc *goquery.Document) []string {
	var ids []string
	doc.Find("#productTableBody tr[data-product-id]").Each(func(_ int, row *goquery.Selection) {
		ids = append(ids, row.AttrOr("data-product-id", ""))
	})
	return ids
}
