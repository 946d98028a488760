// Package catalog holds the product list shown by the storefront and the
// static catalog bundled with the binary.
package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is one orderable food item.
type Product struct {
	ID          string          `json:"_id" validate:"required"`
	Name        string          `json:"name" validate:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
	Image       string          `json:"image"`
	Category    string          `json:"category"`
}

// Source says where a catalog came from.
type Source string

const (
	// SourceNone is an empty catalog that has not been loaded.
	SourceNone Source = ""
	// SourceBackend is a catalog fetched from the food list endpoint.
	SourceBackend Source = "backend"
	// SourceFallback is the bundled static catalog.
	SourceFallback Source = "fallback"
)

func (s Source) String() string {
	if s == SourceNone {
		return "none"
	}
	return string(s)
}
