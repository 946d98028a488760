package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/resilience"
)

// HeaderRequestID carries the per-request correlation id.
const HeaderRequestID = "X-Request-ID"

// Client is a configurable HTTP client with auth, TLS and optional resilience.
type Client struct {
	httpClient *http.Client
	config     Config
	cb         *resilience.CircuitBreaker
	log        *logger.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the logger used for request traces.
func WithLogger(l *logger.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithTransport replaces the underlying round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) { c.httpClient.Transport = rt }
}

// New creates a client from cfg.
func New(cfg Config, opts ...Option) (*Client, error) {
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsCfg, err := cfg.TLS.Build()
	if err != nil {
		return nil, err
	}
	if tlsCfg != nil {
		transport.TLSClientConfig = tlsCfg
	}

	c := &Client{
		httpClient: &http.Client{Transport: transport, Timeout: cfg.Timeout},
		config:     cfg,
		log:        logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = c.log.WithComponent("httpclient." + cfg.Name)

	if cfg.CircuitBreaker != nil {
		cbCfg := *cfg.CircuitBreaker
		if cbCfg.OnStateChange == nil {
			cbCfg.OnStateChange = func(name string, from, to resilience.State) {
				c.log.Warn("circuit breaker state changed", logger.Fields("breaker", name, "from", from.String(), "to", to.String()))
			}
		}
		c.cb = resilience.NewCircuitBreaker(cbCfg)
	}
	return c, nil
}

// Do sends req and buffers the response. A non-2xx status returns both the
// response and a classified *Error. Retries apply only to GET, HEAD and
// OPTIONS or to requests marked Idempotent.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	if c.config.Retry == nil || !req.retryable() {
		return c.doOnce(ctx, req)
	}
	retry := *c.config.Retry
	retry.OnRetry = func(attempt int, err error, backoff time.Duration) {
		c.log.WithContext(ctx).Debug("retrying request", logger.Fields(
			"path", req.Path, "attempt", attempt, logger.FieldError, err.Error(), "backoff", backoff.String()))
	}
	return resilience.Retry(ctx, retry, func() (*Response, error) {
		return c.doOnce(ctx, req)
	})
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.config.BaseURL }

// Config returns the client's configuration after defaults.
func (c *Client) Config() Config { return c.config }

// Available reports false while the circuit breaker is open.
func (c *Client) Available() bool {
	return c.cb == nil || c.cb.State() != resilience.StateOpen
}

// Close releases idle connections.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) doOnce(ctx context.Context, req Request) (*Response, error) {
	if c.cb == nil {
		return c.send(ctx, req)
	}
	var resp *Response
	err := c.cb.Execute(func() error {
		var sendErr error
		resp, sendErr = c.send(ctx, req)
		return sendErr
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return nil, &Error{Code: ErrCodeConnection, Message: err.Error(), Err: err}
	}
	return resp, err
}

func (c *Client) send(ctx context.Context, req Request) (*Response, error) {
	httpReq, err := c.build(ctx, req)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	log := c.log.WithContext(ctx)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		log.Debug("request failed", logger.Fields("method", req.Method, "path", req.Path, logger.FieldError, err.Error()))
		var netErr interface{ Timeout() bool }
		if ctx.Err() != nil || (errors.As(err, &netErr) && netErr.Timeout()) {
			return nil, NewTimeoutError(err)
		}
		return nil, NewConnectionError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, NewConnectionError(fmt.Errorf("read response body: %w", err))
	}

	log.Debug("request completed", logger.Fields(
		"method", req.Method, "path", req.Path, logger.FieldStatus, resp.StatusCode,
		logger.FieldDuration, time.Since(start).Milliseconds()))

	result := &Response{
		StatusCode: resp.StatusCode,
		Headers:    flattenHeaders(resp.Header),
		Body:       body,
	}
	if classErr := ClassifyStatusCode(resp.StatusCode, body); classErr != nil {
		return result, classErr
	}
	return result, nil
}

func (c *Client) build(ctx context.Context, req Request) (*http.Request, error) {
	target := req.Path
	if c.config.BaseURL != "" && !strings.HasPrefix(target, "http://") && !strings.HasPrefix(target, "https://") {
		target = strings.TrimRight(c.config.BaseURL, "/") + "/" + strings.TrimLeft(target, "/")
	}

	body, contentType, err := encodeBody(req.Body)
	if err != nil {
		return nil, NewRequestError(fmt.Errorf("encode body: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return nil, NewRequestError(err)
	}

	if len(req.Query) > 0 {
		q := httpReq.URL.Query()
		for k, v := range req.Query {
			q.Set(k, v)
		}
		httpReq.URL.RawQuery = q.Encode()
	}

	if c.config.UserAgent != "" {
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
	}
	for k, v := range c.config.Headers {
		httpReq.Header.Set(k, v)
	}
	for k, v := range req.Headers {
		httpReq.Header.Set(k, v)
	}
	if body != nil && contentType != "" && httpReq.Header.Get("Content-Type") == "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if httpReq.Header.Get(HeaderRequestID) == "" {
		id := logger.RequestIDFromContext(ctx)
		if id == "" {
			id = uuid.NewString()
		}
		httpReq.Header.Set(HeaderRequestID, id)
	}

	auth := c.config.Auth
	if req.Auth != nil {
		auth = req.Auth
	}
	auth.apply(httpReq)

	return httpReq, nil
}

func encodeBody(body any) (io.Reader, string, error) {
	switch v := body.(type) {
	case nil:
		return nil, "", nil
	case []byte:
		return bytes.NewReader(v), "", nil
	case string:
		return strings.NewReader(v), "text/plain", nil
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return nil, "", err
		}
		return bytes.NewReader(data), "application/json", nil
	}
}

func flattenHeaders(h http.Header) map[string]string {
	out := make(map[string]string, len(h))
	for k, v := range h {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
