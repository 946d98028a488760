package rest

import "github.com/kbukum/storefront/httpclient"

// Convenience re-exports so callers can classify errors without importing
// httpclient.

// IsDecode reports a response that was not the expected JSON.
func IsDecode(err error) bool { return httpclient.IsDecode(err) }

// IsAuth reports a 401/403.
func IsAuth(err error) bool { return httpclient.IsAuth(err) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return httpclient.IsNotFound(err) }

// IsTimeout reports a timeout.
func IsTimeout(err error) bool { return httpclient.IsTimeout(err) }

// IsRetryable reports a transient error.
func IsRetryable(err error) bool { return httpclient.IsRetryable(err) }
