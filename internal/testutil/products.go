package testutil

import (
	"fmt"

	"finitefield.org/catalog-viewer/internal/catalog"
)

// SampleProducts returns a small catalog with twelve products spread over two pages at
// the default page size.
func SampleProducts() []catalog.Product {
	clothes := &catalog.Category{ID: "1", Name: "Clothes"}
	products := make([]catalog.Product, 0, 12)
	for i := 1; i <= 12; i++ {
		products = append(products, catalog.Product{
			ID:          catalog.ProductID(fmt.Sprintf("%d", i)),
			Title:       fmt.Sprintf("Product %02d", i),
			Price:       catalog.NewPrice(float64(i)),
			Description: fmt.Sprintf("Description %d", i),
			Category:    clothes,
			Images:      []string{fmt.Sprintf("https://cdn.example.com/p%d.jpg", i)},
		})
	}
	return products
}
