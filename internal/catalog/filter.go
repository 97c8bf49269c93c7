package catalog

import (
	"strings"

	"golang.org/x/text/cases"
)

// Filter returns the products whose title contains query, compared case-insensitively.
// A blank query returns a copy of products in their original order.
func Filter(products []Product, query string) []Product {
	term := strings.TrimSpace(query)
	if term == "" {
		return append([]Product(nil), products...)
	}

	fold := cases.Fold()
	needle := fold.String(term)

	matches := make([]Product, 0, len(products))
	for _, product := range products {
		if strings.Contains(fold.String(product.Title), needle) {
			matches = append(matches, product)
		}
	}
	return matches
}

// Matches reports whether title matches query using the same rules as Filter.
func Matches(title, query string) bool {
	term := strings.TrimSpace(query)
	if term == "" {
		return true
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(title), fold.String(term))
}
