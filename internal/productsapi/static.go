package productsapi

import (
	"context"

	"finitefield.org/catalog-viewer/internal/catalog"
)

// StaticSource serves a fixed catalog suitable for local development and tests.
type StaticSource struct {
	products []catalog.Product
}

// NewStaticSource returns a StaticSource. Without arguments it is populated with
// representative products, including the malformed shapes seen upstream.
func NewStaticSource(products ...catalog.Product) *StaticSource {
	if len(products) == 0 {
		products = sampleCatalog()
	}
	return &StaticSource{products: products}
}

// FetchAll returns a copy of the static catalog.
func (s *StaticSource) FetchAll(ctx context.Context) ([]catalog.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]catalog.Product(nil), s.products...), nil
}

func sampleCatalog() []catalog.Product {
	clothes := &catalog.Category{ID: "1", Name: "Clothes", Slug: "clothes"}
	electronics := &catalog.Category{ID: "2", Name: "Electronics", Slug: "electronics"}
	furniture := &catalog.Category{ID: "3", Name: "Furniture", Slug: "furniture"}
	shoes := &catalog.Category{ID: "4", Name: "Shoes", Slug: "shoes"}
	misc := &catalog.Category{ID: "5", Name: "Miscellaneous", Slug: "miscellaneous"}

	item := func(id, title, price, description string, category *catalog.Category, images ...string) catalog.Product {
		return catalog.Product{
			ID:          catalog.ProductID(id),
			Title:       title,
			Price:       catalog.ParsePrice(price),
			Description: description,
			Category:    category,
			Images:      images,
		}
	}

	return []catalog.Product{
		item("1", "Classic Heather Gray Hoodie", "69", "Soft fleece hoodie with a relaxed fit and kangaroo pocket.", clothes,
			"https://i.imgur.com/cHddUCu.jpeg", "https://i.imgur.com/CFOjAgK.jpeg"),
		item("2", "Classic Black T-Shirt", "35", "Everyday crew neck tee in breathable cotton.", clothes,
			`["https://i.imgur.com/9DqEOV5.jpeg"`, `"https://i.imgur.com/ae0AEYn.jpeg"]`),
		item("3", "Sleek Wireless Headphone & Inked Earbud Set", "44", "Noise cancelling over-ear headphones with matching earbuds.", electronics,
			"https://i.imgur.com/yVeIeDa.jpeg"),
		item("4", "Sleek Comfort-Fit Over-Ear Headphones", "28", "", electronics,
			"https://i.imgur.com/SolkFEB.jpeg"),
		item("5", "Efficient 2-Slice Toaster", "48", "Compact toaster with browning control.", electronics),
		item("6", "Mid-Century Modern Wooden Dining Table", "24", "Walnut finish table seating four.", furniture,
			"https://i.imgur.com/DMQHGA0.jpeg"),
		item("7", "Modern Elegance Teal Armchair", "25", "Velvet armchair with oak legs.", furniture,
			"https://i.imgur.com/6wkyyIN.jpeg"),
		item("8", "Futuristic Chic High-Heel Boots", "36", "Metallic finish boots with a sculpted heel.", shoes,
			"https://i.imgur.com/HqYqLnW.jpeg"),
		item("9", "Sleek Modern Laptop with Ambient Lighting", "43", "Thin aluminium laptop with backlit keyboard.", electronics,
			"placeimg.com/640/480/any"),
		item("10", "Classic Red Pullover Hoodie", "10", "Warm pullover hoodie in bright red.", clothes,
			"https://i.imgur.com/1twoaDy.jpeg"),
		item("11", "Vintage Leather Journal", "price on request", "Hand bound journal with unlined pages.", misc, ""),
		item("12", "Handcrafted Ceramic Mug Set", "19.5", "Set of four stoneware mugs.", nil,
			"https://i.imgur.com/QkIa5tT.jpeg"),
	}
}
