// Package store is the storefront's cart and catalog state.
//
// A Store owns the cart, the product catalog and the session token. Cart
// changes are applied locally first and then, when a token is present,
// mirrored to the backend; a rejected or failed sync is reported through
// the notifier and returned, but the local change is kept. The catalog is
// fetched once at Init and falls back to the bundled list when the backend
// cannot provide one.
//
//	st := store.New(api, tokens, store.WithLogger(log))
//	if err := st.Init(ctx); err != nil { ... }
//	_ = st.AddToCart(ctx, "1")
//	total := st.TotalCartAmount()
//
// All methods are safe for concurrent use. Network calls run outside the
// store's lock, so concurrent mutations of the same item are each applied
// locally exactly once regardless of how their requests interleave.
package store
