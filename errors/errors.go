// Package errors defines AppError, the error the storefront hands to its
// callers. Message is safe to show to a shopper; Cause keeps the detail
// for logs.
package errors

import (
	stderrors "errors"
	"fmt"
)

// MsgGeneric is shown when an error carries no user-facing message.
const MsgGeneric = "Something went wrong"

// AppError is a coded storefront error.
type AppError struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
	Cause     error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
}

func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets Cause and returns e.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail adds one detail and returns e.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = map[string]any{}
	}
	e.Details[key] = value
	return e
}

// New returns an AppError whose Retryable flag follows code.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message, Retryable: code.Retryable()}
}

// ExternalServiceError wraps a failed request to the named backend service.
func ExternalServiceError(service string, cause error) *AppError {
	return New(ErrCodeExternalService, fmt.Sprintf("The %s service encountered an error. Please try again.", service)).
		WithDetail("service", service).
		WithCause(cause)
}

// CartSyncFailed reports a cart mutation the backend did not accept.
func CartSyncFailed(operation, itemID string) *AppError {
	return New(ErrCodeCartSync, MsgGeneric).
		WithDetail("operation", operation).
		WithDetail("item_id", itemID)
}

func CatalogUnavailable(cause error) *AppError {
	return New(ErrCodeCatalogUnavailable, "The product catalog is unavailable.").WithCause(cause)
}

func SessionUnavailable(operation string, cause error) *AppError {
	return New(ErrCodeSessionUnavailable, "The saved session could not be accessed.").
		WithDetail("operation", operation).
		WithCause(cause)
}

func MissingField(field string) *AppError {
	return New(ErrCodeMissingField, "Missing required field: "+field).WithDetail("field", field)
}

func Validation(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

// Unauthorized reports a refused session. An empty reason asks the user
// to log in again.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Please log in again."
	}
	return New(ErrCodeUnauthorized, reason)
}

func InvalidToken(cause error) *AppError {
	return New(ErrCodeInvalidToken, "Invalid session token.").WithCause(cause)
}

func Internal(cause error) *AppError {
	return New(ErrCodeInternal, "An unexpected error occurred.").WithCause(cause)
}

// AsAppError finds the first AppError in err's chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsAppError(err error) bool {
	_, ok := AsAppError(err)
	return ok
}

// HasCode reports whether err's chain holds an AppError with code.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// IsRetryable reports whether err's chain holds a retryable AppError.
func IsRetryable(err error) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Retryable
}

// UserMessage returns the message to show for err: the AppError message
// when there is one, MsgGeneric otherwise.
func UserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok && appErr.Message != "" {
		return appErr.Message
	}
	return MsgGeneric
}
