// Package resilience provides the retry and circuit breaker primitives
// the storefront's HTTP transport can opt into.
//
// Both are off by default: the backend client issues each request once.
// Enabling them is a configuration decision:
//
//	cb := resilience.NewCircuitBreaker(resilience.DefaultCircuitBreakerConfig("backend"))
//	err := cb.Execute(func() error {
//	    return resilience.RetryFunc(ctx, resilience.DefaultRetryConfig(), call)
//	})
package resilience
