package httpclient

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorCode_String(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want string
	}{
		{ErrCodeTimeout, "timeout"},
		{ErrCodeConnection, "connection"},
		{ErrCodeAuth, "auth"},
		{ErrCodeNotFound, "not_found"},
		{ErrCodeClient, "client"},
		{ErrCodeServer, "server"},
		{ErrCodeDecode, "decode"},
		{ErrorCode(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.code.String(); got != tt.want {
			t.Errorf("ErrorCode(%d).String() = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestError_Error(t *testing.T) {
	e := &Error{StatusCode: 404, Code: ErrCodeNotFound, Message: "Not Found"}
	if got, want := e.Error(), "httpclient: not_found (HTTP 404): Not Found"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	e2 := NewConnectionError(fmt.Errorf("connection refused"))
	if got, want := e2.Error(), "httpclient: connection: connection refused"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestClassifyStatusCode(t *testing.T) {
	tests := []struct {
		status    int
		wantNil   bool
		code      ErrorCode
		retryable bool
	}{
		{200, true, 0, false},
		{204, true, 0, false},
		{400, false, ErrCodeClient, false},
		{401, false, ErrCodeAuth, false},
		{403, false, ErrCodeAuth, false},
		{404, false, ErrCodeNotFound, false},
		{429, false, ErrCodeClient, true},
		{500, false, ErrCodeServer, true},
		{503, false, ErrCodeServer, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("HTTP_%d", tt.status), func(t *testing.T) {
			err := ClassifyStatusCode(tt.status, []byte("body"))
			if tt.wantNil {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if err.Code != tt.code {
				t.Errorf("code = %s, want %s", err.Code, tt.code)
			}
			if err.Retryable != tt.retryable {
				t.Errorf("retryable = %v, want %v", err.Retryable, tt.retryable)
			}
			if string(err.Body) != "body" {
				t.Errorf("body not preserved: %q", err.Body)
			}
		})
	}
}

func TestErrorPredicates_Wrapped(t *testing.T) {
	timeout := fmt.Errorf("cart: %w", NewTimeoutError(errors.New("deadline")))
	if !IsTimeout(timeout) || !IsRetryable(timeout) {
		t.Error("wrapped timeout should be detected and retryable")
	}
	if IsConnection(timeout) {
		t.Error("timeout is not a connection error")
	}

	decode := NewDecodeError(200, []byte("<html>"), errors.New("invalid character"))
	if !IsDecode(decode) || IsRetryable(decode) {
		t.Error("decode errors are detected and not retryable")
	}

	if !IsAuth(ClassifyStatusCode(401, nil)) {
		t.Error("401 should be auth")
	}
	if !IsNotFound(ClassifyStatusCode(404, nil)) {
		t.Error("404 should be not found")
	}
	if !IsServerError(ClassifyStatusCode(502, nil)) {
		t.Error("502 should be server error")
	}
	if IsRetryable(errors.New("plain")) {
		t.Error("plain errors are not retryable")
	}
}
