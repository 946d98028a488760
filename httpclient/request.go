package httpclient

import "net/http"

// Request describes an outbound HTTP request.
type Request struct {
	// Method is the HTTP method.
	Method string
	// Path is resolved against the client's BaseURL unless it is absolute.
	Path string
	// Headers override the client's default headers.
	Headers map[string]string
	// Query holds URL query parameters.
	Query map[string]string
	// Body accepts []byte, string, or any value to be JSON-encoded.
	Body any
	// Auth overrides the client-level auth for this request.
	Auth *AuthConfig
	// Idempotent marks a non-GET request as safe to retry.
	Idempotent bool
}

// retryable reports whether the request may be sent more than once.
func (r Request) retryable() bool {
	switch r.Method {
	case "", http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return r.Idempotent
}

// Response is the buffered result of an HTTP request.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       []byte
}

// IsSuccess reports a 2xx status.
func (r *Response) IsSuccess() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}
