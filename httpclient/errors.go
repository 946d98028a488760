package httpclient

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode classifies HTTP client errors.
type ErrorCode int

const (
	// ErrCodeTimeout indicates the request or its context timed out.
	ErrCodeTimeout ErrorCode = iota
	// ErrCodeConnection indicates the backend could not be reached.
	ErrCodeConnection
	// ErrCodeAuth indicates a 401 or 403.
	ErrCodeAuth
	// ErrCodeNotFound indicates a 404.
	ErrCodeNotFound
	// ErrCodeClient indicates any other 4xx, or a request that could not be built.
	ErrCodeClient
	// ErrCodeServer indicates a 5xx.
	ErrCodeServer
	// ErrCodeDecode indicates a response body that is not the expected JSON.
	ErrCodeDecode
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeTimeout:
		return "timeout"
	case ErrCodeConnection:
		return "connection"
	case ErrCodeAuth:
		return "auth"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeClient:
		return "client"
	case ErrCodeServer:
		return "server"
	case ErrCodeDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// Error is a classified transport error.
type Error struct {
	// StatusCode is 0 for errors that never produced a response.
	StatusCode int
	Code       ErrorCode
	Message    string
	Retryable  bool
	// Body is the response body, if any.
	Body []byte
	Err  error
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("httpclient: %s (HTTP %d): %s", e.Code, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("httpclient: %s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// NewTimeoutError wraps err as a timeout.
func NewTimeoutError(err error) *Error {
	return &Error{Code: ErrCodeTimeout, Message: err.Error(), Retryable: true, Err: err}
}

// NewConnectionError wraps err as a connection failure.
func NewConnectionError(err error) *Error {
	return &Error{Code: ErrCodeConnection, Message: err.Error(), Retryable: true, Err: err}
}

// NewRequestError reports a request that could not be built.
func NewRequestError(err error) *Error {
	return &Error{Code: ErrCodeClient, Message: err.Error(), Err: err}
}

// NewDecodeError reports a response body that failed to decode.
func NewDecodeError(statusCode int, body []byte, err error) *Error {
	return &Error{
		StatusCode: statusCode,
		Code:       ErrCodeDecode,
		Message:    fmt.Sprintf("decode response: %v", err),
		Body:       body,
		Err:        err,
	}
}

// ClassifyStatusCode converts a non-2xx status into an *Error. It returns
// nil for 2xx.
func ClassifyStatusCode(statusCode int, body []byte) *Error {
	e := &Error{StatusCode: statusCode, Message: http.StatusText(statusCode), Body: body}
	switch {
	case statusCode >= 200 && statusCode < 300:
		return nil
	case statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden:
		e.Code = ErrCodeAuth
	case statusCode == http.StatusNotFound:
		e.Code = ErrCodeNotFound
	case statusCode == http.StatusTooManyRequests:
		e.Code = ErrCodeClient
		e.Retryable = true
	case statusCode >= 400 && statusCode < 500:
		e.Code = ErrCodeClient
	case statusCode >= 500:
		e.Code = ErrCodeServer
		e.Retryable = true
	default:
		e.Code = ErrCodeServer
	}
	if e.Message == "" {
		e.Message = fmt.Sprintf("HTTP %d", statusCode)
	}
	return e
}

func hasCode(err error, code ErrorCode) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == code
}

// IsTimeout reports a timeout error.
func IsTimeout(err error) bool { return hasCode(err, ErrCodeTimeout) }

// IsConnection reports a connection error.
func IsConnection(err error) bool { return hasCode(err, ErrCodeConnection) }

// IsAuth reports a 401/403.
func IsAuth(err error) bool { return hasCode(err, ErrCodeAuth) }

// IsNotFound reports a 404.
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsServerError reports a 5xx.
func IsServerError(err error) bool { return hasCode(err, ErrCodeServer) }

// IsDecode reports a malformed response body.
func IsDecode(err error) bool { return hasCode(err, ErrCodeDecode) }

// IsRetryable reports whether err is a transient transport error.
func IsRetryable(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Retryable
}
