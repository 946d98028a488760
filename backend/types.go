package backend

import "github.com/kbukum/storefront/catalog"

// API paths.
const (
	PathFoodList   = "/api/food/list"
	PathCartAdd    = "/api/cart/add"
	PathCartRemove = "/api/cart/remove"
	PathCartGet    = "/api/cart/get"
)

// TokenHeader is the header carrying the session token.
const TokenHeader = "token"

// Reply is the envelope returned by cart mutations.
type Reply struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// FoodList is the envelope returned by the food list endpoint.
type FoodList struct {
	Success bool              `json:"success"`
	Data    []catalog.Product `json:"data"`
	Message string            `json:"message,omitempty"`
}

// CartData is the envelope returned by the cart endpoint. Success is a
// pointer because some deployments omit it.
type CartData struct {
	Success  *bool          `json:"success,omitempty"`
	CartData map[string]int `json:"cartData"`
	Message  string         `json:"message,omitempty"`
}

// ItemRequest is the body of cart mutations.
type ItemRequest struct {
	ItemID string `json:"itemId"`
}
