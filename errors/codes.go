package errors

// ErrorCode is the machine-readable kind of an AppError.
type ErrorCode string

const (
	// ErrCodeExternalService is a backend request that failed in transport
	// or with a non-2xx status.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
	// ErrCodeCartSync is a cart mutation the backend answered with
	// success=false.
	ErrCodeCartSync ErrorCode = "CART_SYNC_FAILED"
	// ErrCodeCatalogUnavailable means neither the backend nor the bundled
	// catalog produced products.
	ErrCodeCatalogUnavailable ErrorCode = "CATALOG_UNAVAILABLE"
	// ErrCodeSessionUnavailable means the saved session could not be read
	// or written.
	ErrCodeSessionUnavailable ErrorCode = "SESSION_UNAVAILABLE"

	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"

	// ErrCodeUnauthorized is a session token the backend refused.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeInvalidToken is a session token that is not a JWT.
	ErrCodeInvalidToken ErrorCode = "INVALID_TOKEN"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// Retryable reports whether an operation failing with code may succeed
// when repeated unchanged.
func (c ErrorCode) Retryable() bool {
	switch c {
	case ErrCodeExternalService, ErrCodeCartSync:
		return true
	}
	return false
}
