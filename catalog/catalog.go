package catalog

import (
	"encoding/json"
	"fmt"

	"github.com/kbukum/storefront/validation"
)

// Catalog is an ordered, read-only product list with lookup by id.
// When ids repeat, Find returns the first occurrence.
type Catalog struct {
	products []Product
	index    map[string]int
	source   Source
}

// New builds a catalog from products. The slice is copied.
func New(products []Product, source Source) *Catalog {
	c := &Catalog{
		products: append([]Product(nil), products...),
		index:    make(map[string]int, len(products)),
		source:   source,
	}
	for i, p := range c.products {
		if _, dup := c.index[p.ID]; !dup {
			c.index[p.ID] = i
		}
	}
	return c
}

// Empty returns a catalog with no products and no source.
func Empty() *Catalog { return New(nil, SourceNone) }

// Parse decodes a JSON array of products and validates each one.
func Parse(data []byte, source Source) (*Catalog, error) {
	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("catalog: decode products: %w", err)
	}
	c := New(products, source)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Products returns a copy of the products in catalog order.
func (c *Catalog) Products() []Product {
	return append([]Product(nil), c.products...)
}

// Find looks up a product by id.
func (c *Catalog) Find(id string) (Product, bool) {
	i, ok := c.index[id]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Len returns the number of products.
func (c *Catalog) Len() int { return len(c.products) }

// Source reports where the catalog came from.
func (c *Catalog) Source() Source { return c.source }

// Categories returns the distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range c.products {
		if p.Category != "" && !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	}
	return out
}

// Validate checks every product's required fields and price.
func (c *Catalog) Validate() error {
	return validation.Validate(productList{Products: c.products})
}

type productList struct {
	Products []Product `json:"products" validate:"dive"`
}
