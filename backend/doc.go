// Package backend is the typed client for the food-delivery REST API.
//
// Endpoints:
//
//	GET  /api/food/list                      -> {"success", "data": [product]}
//	POST /api/cart/add     {"itemId"} token  -> {"success", "message"}
//	POST /api/cart/remove  {"itemId"} token  -> {"success", "message"}
//	POST /api/cart/get     {}         token  -> {"success", "cartData": {id: qty}}
//
// The session token travels in a plain "token" header.
package backend
