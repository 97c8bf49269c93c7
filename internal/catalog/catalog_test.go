package catalog

import "fmt"

func product(id int, title string, price float64) Product {
	return Product{
		ID:    ProductID(fmt.Sprintf("%d", id)),
		Title: title,
		Price: NewPrice(price),
	}
}

func ids(products []Product) []string {
	out := make([]string, 0, len(products))
	for _, p := range products {
		out = append(out, p.ID.String())
	}
	return out
}

func sampleProducts() []Product {
	return []Product{
		product(1, "Classic Red Hoodie", 45),
		product(2, "sleek wireless mouse", 12.5),
		product(3, "Rustic Oak Table", 310),
		product(4, "Red Running Shoes", 89.99),
		product(5, "Modern Lamp", 12.5),
		product(6, "ergonomic chair", 199),
	}
}

func numberedProducts(n int) []Product {
	out := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, product(i, fmt.Sprintf("Product %02d", i), float64(i)))
	}
	return out
}
