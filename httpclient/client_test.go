package httpclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/resilience"
)

func TestClient_Do_HeadersAndBody(t *testing.T) {
	var got *http.Request
	var body map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Clone(context.Background())
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true}`))
	}))
	defer srv.Close()

	c, err := New(Config{
		BaseURL:   srv.URL + "/",
		UserAgent: "storefront/test",
		Headers:   map[string]string{"Accept": "application/json"},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer c.Close()

	resp, err := c.Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/api/cart/add",
		Body:   map[string]string{"itemId": "42"},
		Auth:   HeaderAuth("token", "tok"),
	})
	if err != nil {
		t.Fatalf("Do: %v", err)
	}
	if !resp.IsSuccess() || string(resp.Body) != `{"success":true}` {
		t.Errorf("unexpected response %d %s", resp.StatusCode, resp.Body)
	}
	if got.URL.Path != "/api/cart/add" {
		t.Errorf("path = %s", got.URL.Path)
	}
	if got.Header.Get("User-Agent") != "storefront/test" {
		t.Errorf("user agent = %q", got.Header.Get("User-Agent"))
	}
	if got.Header.Get("Content-Type") != "application/json" {
		t.Errorf("content type = %q", got.Header.Get("Content-Type"))
	}
	if got.Header.Get("token") != "tok" {
		t.Errorf("token header = %q", got.Header.Get("token"))
	}
	if _, err := uuid.Parse(got.Header.Get(HeaderRequestID)); err != nil {
		t.Errorf("request id is not a uuid: %q", got.Header.Get(HeaderRequestID))
	}
	if body["itemId"] != "42" {
		t.Errorf("body = %v", body)
	}
}

func TestClient_Do_RequestIDFromContext(t *testing.T) {
	var seen string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get(HeaderRequestID)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	ctx := logger.ContextWithRequestID(context.Background(), "req-1")
	if _, err := c.Do(ctx, Request{Method: http.MethodGet, Path: "/"}); err != nil {
		t.Fatalf("Do: %v", err)
	}
	if seen != "req-1" {
		t.Errorf("expected req-1, got %q", seen)
	}
}

func TestClient_Do_ClassifiesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/api/food/list"})
	if !IsServerError(err) {
		t.Fatalf("expected server error, got %v", err)
	}
	if resp == nil || resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected response alongside error, got %+v", resp)
	}
}

func TestClient_Do_ConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, _ := New(Config{BaseURL: url})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsConnection(err) {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestClient_Do_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c, _ := New(Config{BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if !IsTimeout(err) {
		t.Errorf("expected timeout, got %v", err)
	}
}

func TestClient_Do_RetriesTransientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		_, _ = w.Write([]byte(`ok`))
	}))
	defer srv.Close()

	retry := DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	c, _ := New(Config{BaseURL: srv.URL, Retry: retry})

	resp, err := c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if err != nil {
		t.Fatalf("expected success after retries, got %v", err)
	}
	if string(resp.Body) != "ok" || calls.Load() != 3 {
		t.Errorf("expected 3 calls ending in ok, got %d calls, body %q", calls.Load(), resp.Body)
	}
}

func TestClient_Do_RetriesOnlyIdempotentRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	retry := DefaultRetryConfig()
	retry.InitialBackoff = time.Millisecond
	c, _ := New(Config{BaseURL: srv.URL, Retry: retry})

	tests := []struct {
		name string
		req  Request
		want int32
	}{
		{"post", Request{Method: http.MethodPost, Path: "/", Body: "x"}, 1},
		{"post marked idempotent", Request{Method: http.MethodPost, Path: "/", Idempotent: true}, 3},
		{"head", Request{Method: http.MethodHead, Path: "/"}, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls.Store(0)
			if _, err := c.Do(context.Background(), tt.req); err == nil {
				t.Fatal("expected an error")
			}
			if calls.Load() != tt.want {
				t.Errorf("expected %d attempts, got %d", tt.want, calls.Load())
			}
		})
	}
}

func TestClient_Do_NoRetryByDefault(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c, _ := New(Config{BaseURL: srv.URL})
	_, _ = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	if calls.Load() != 1 {
		t.Errorf("expected a single attempt, got %d", calls.Load())
	}
}

func TestClient_CircuitBreakerOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cb := resilience.DefaultCircuitBreakerConfig("backend")
	cb.MaxFailures = 2
	c, _ := New(Config{BaseURL: srv.URL, CircuitBreaker: &cb})

	for i := 0; i < 3; i++ {
		_, _ = c.Do(context.Background(), Request{Method: http.MethodGet, Path: "/"})
	}
	if calls.Load() != 2 {
		t.Errorf("expected breaker to stop the third call, got %d calls", calls.Load())
	}
	if c.Available() {
		t.Error("client should report unavailable while open")
	}
}

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(Config{BaseURL: "localhost:4000"}); err == nil {
		t.Error("expected error for base url without scheme")
	}
}
