// Package httpclient is the storefront's HTTP transport.
//
// A Client resolves request paths against a base URL, stamps every request
// with the storefront User-Agent and an X-Request-ID, applies optional
// header authentication, and classifies failures into *Error values.
// Retry and circuit breaking come from the resilience package and are only
// active when configured.
//
//	client, err := httpclient.New(httpclient.Config{
//	    Name:    "backend",
//	    BaseURL: "https://food-delivery-backend-5b6g.onrender.com",
//	})
//
//	resp, err := client.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/api/food/list",
//	})
//
// The rest subpackage layers typed JSON calls on top.
package httpclient
