package catalog

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID identifies a product. The upstream API emits numeric identifiers but some
// mirrors serialise them as strings, so both forms are accepted and kept as text.
type ProductID string

// String returns the identifier text.
func (id ProductID) String() string {
	return string(id)
}

// UnmarshalJSON accepts JSON numbers and strings.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ProductID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ProductID(n.String())
	return nil
}

// Category groups products. Only the name is displayed.
type Category struct {
	ID    ProductID `json:"id"`
	Name  string    `json:"name"`
	Slug  string    `json:"slug,omitempty"`
	Image string    `json:"image,omitempty"`
}

// Product is a single catalog entry as returned by the products API.
type Product struct {
	ID          ProductID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       Price     `json:"price"`
	Category    *Category `json:"category"`
	Images      Images    `json:"images"`
}

// Images is the ordered list of image references attached to a product.
type Images []string

// UnmarshalJSON tolerates the malformed payloads seen upstream: a bare string becomes a
// single entry and non-string entries decode to empty references.
func (im *Images) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*im = nil
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*im = Images{s}
		return nil
	case '[':
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		out := make(Images, 0, len(raw))
		for _, entry := range raw {
			var s string
			if err := json.Unmarshal(entry, &s); err != nil {
				s = ""
			}
			out = append(out, s)
		}
		*im = out
		return nil
	default:
		*im = nil
		return nil
	}
}

// Price is a product price parsed with parseFloat semantics: the longest numeric prefix
// of the raw value is used and values without one are kept as invalid.
type Price struct {
	Amount decimal.Decimal
	Valid  bool
	Raw    string
}

var numericPrefix = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)

// ParsePrice converts raw price text into a Price.
func ParsePrice(raw string) Price {
	trimmed := strings.TrimSpace(raw)
	p := Price{Raw: raw}
	if trimmed == "" {
		return p
	}
	prefix := numericPrefix.FindString(trimmed)
	if prefix == "" {
		return p
	}
	amount, err := decimal.NewFromString(prefix)
	if err != nil {
		f, ferr := strconv.ParseFloat(prefix, 64)
		if ferr != nil {
			return p
		}
		amount = decimal.NewFromFloat(f)
	}
	p.Amount = amount
	p.Valid = true
	return p
}

// NewPrice returns a valid price for the given amount.
func NewPrice(amount float64) Price {
	return Price{
		Amount: decimal.NewFromFloat(amount),
		Valid:  true,
		Raw:    strconv.FormatFloat(amount, 'f', -1, 64),
	}
}

// Float returns the price as a float64 and whether the price is valid.
func (p Price) Float() (float64, bool) {
	if !p.Valid {
		return 0, false
	}
	f, _ := p.Amount.Float64()
	return f, true
}

// Fixed formats the price with two decimals, or returns fallback for invalid prices.
func (p Price) Fixed(fallback string) string {
	if !p.Valid {
		return fallback
	}
	return p.Amount.StringFixed(2)
}

// Compare orders prices numerically. Invalid prices sort after every valid price.
func (p Price) Compare(other Price) int {
	switch {
	case !p.Valid && !other.Valid:
		return 0
	case !p.Valid:
		return 1
	case !other.Valid:
		return -1
	}
	return p.Amount.Cmp(other.Amount)
}

// UnmarshalJSON accepts JSON numbers, numeric strings and arbitrary text.
func (p *Price) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Price{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = ParsePrice(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		*p = Price{Raw: string(data)}
		return nil
	}
	*p = ParsePrice(n.String())
	return nil
}

// MarshalJSON emits valid prices as numbers and invalid ones as their raw text.
func (p Price) MarshalJSON() ([]byte, error) {
	if !p.Valid {
		if p.Raw == "" {
			return []byte("null"), nil
		}
		return json.Marshal(p.Raw)
	}
	return []byte(p.Amount.String()), nil
}

// DecodeProducts parses a JSON array of products.
func DecodeProducts(data []byte) ([]Product, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, err
	}
	return products, nil
}
