// Package rest adds typed JSON calls on top of httpclient.
//
//	client, err := rest.New(httpclient.Config{BaseURL: baseURL})
//	resp, err := rest.Get[FoodList](ctx, client, "/api/food/list")
//	resp, err := rest.Post[CartReply](ctx, client, "/api/cart/add", body,
//	    rest.WithAuth(httpclient.HeaderAuth("token", tok)))
package rest
