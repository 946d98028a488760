// Package cart keeps item quantities and prices them against a catalog.
//
// Quantities are not clamped: removing an item that is not in the cart
// records -1. Totals only count entries with a positive quantity.
package cart

import (
	"maps"

	"github.com/shopspring/decimal"

	"github.com/kbukum/storefront/catalog"
)

// Cart maps item id to quantity. A Cart is not safe for concurrent use;
// the store serializes access.
type Cart struct {
	items map[string]int
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{items: make(map[string]int)}
}

// FromMap builds a cart from a server snapshot. The map is copied.
func FromMap(items map[string]int) *Cart {
	c := New()
	c.Replace(items)
	return c
}

// Add increments id by one and returns the new quantity.
func (c *Cart) Add(id string) int {
	c.items[id]++
	return c.items[id]
}

// Remove decrements id by one and returns the new quantity. An absent id
// starts from zero.
func (c *Cart) Remove(id string) int {
	c.items[id]--
	return c.items[id]
}

// Quantity returns the quantity for id, zero when absent.
func (c *Cart) Quantity(id string) int { return c.items[id] }

// Replace discards the current contents and copies items in.
func (c *Cart) Replace(items map[string]int) {
	c.items = make(map[string]int, len(items))
	maps.Copy(c.items, items)
}

// Items returns a copy of the id to quantity map.
func (c *Cart) Items() map[string]int { return maps.Clone(c.items) }

// Len returns the number of entries, including non-positive ones.
func (c *Cart) Len() int { return len(c.items) }

// Count returns the number of units across entries with positive quantity.
func (c *Cart) Count() int {
	n := 0
	for _, q := range c.items {
		if q > 0 {
			n += q
		}
	}
	return n
}

// Total prices the cart against cat.
func (c *Cart) Total(cat *catalog.Catalog) decimal.Decimal {
	return Total(c.items, cat)
}

// Total sums price × quantity over entries with quantity > 0. Ids missing
// from cat are skipped.
func Total(items map[string]int, cat *catalog.Catalog) decimal.Decimal {
	total := decimal.Zero
	if cat == nil {
		return total
	}
	for id, qty := range items {
		if qty <= 0 {
			continue
		}
		if p, ok := cat.Find(id); ok {
			total = total.Add(p.Price.Mul(decimal.NewFromInt(int64(qty))))
		}
	}
	return total
}
