// Package backendtest runs an in-process fake of the food-delivery backend
// on gin and httptest. Server implements testutil.TestComponent, so tests
// can reset it between cases and snapshot the carts it holds.
package backendtest
