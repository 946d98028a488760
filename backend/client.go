package backend

import (
	"context"
	"net/http"

	"github.com/kbukum/storefront/errors"
	"github.com/kbukum/storefront/httpclient"
	"github.com/kbukum/storefront/httpclient/rest"
	"github.com/kbukum/storefront/logger"
	"github.com/kbukum/storefront/validation"
	"github.com/kbukum/storefront/version"
)

// Client calls the storefront backend.
type Client struct {
	rest *rest.Client
	log  *logger.Logger
}

// Option configures a Client.
type Option func(*options)

type options struct {
	log       *logger.Logger
	transport http.RoundTripper
	userAgent string
}

// WithLogger sets the client logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *options) { o.log = l }
}

// WithTransport replaces the HTTP round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *options) { o.transport = rt }
}

// WithUserAgent overrides the default "storefront/<version>" User-Agent.
func WithUserAgent(ua string) Option {
	return func(o *options) { o.userAgent = ua }
}

// New creates a backend client.
func New(cfg Config, opts ...Option) (*Client, error) {
	o := &options{log: logger.Nop(), userAgent: version.UserAgent()}
	for _, opt := range opts {
		opt(o)
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := o.log.WithComponent("backend")
	httpOpts := []httpclient.Option{httpclient.WithLogger(o.log)}
	if o.transport != nil {
		httpOpts = append(httpOpts, httpclient.WithTransport(o.transport))
	}
	rc, err := rest.New(cfg.httpConfig(o.userAgent), httpOpts...)
	if err != nil {
		return nil, err
	}
	return &Client{rest: rc, log: log}, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string { return c.rest.HTTP().BaseURL() }

// Available reports false while the circuit breaker is open.
func (c *Client) Available() bool { return c.rest.HTTP().Available() }

// Close releases idle connections.
func (c *Client) Close() error { return c.rest.Close() }

// ListFoods fetches the product list. A reply with success=false is not an
// error; callers decide what an unsuccessful or empty list means.
func (c *Client) ListFoods(ctx context.Context) (FoodList, error) {
	resp, err := rest.Get[FoodList](ctx, c.rest, PathFoodList)
	if err != nil {
		return FoodList{}, err
	}
	return resp.Data, nil
}

// AddItem asks the backend to add one unit of itemID to the token's cart.
func (c *Client) AddItem(ctx context.Context, token, itemID string) (Reply, error) {
	return c.mutate(ctx, PathCartAdd, token, itemID)
}

// RemoveItem asks the backend to remove one unit of itemID.
func (c *Client) RemoveItem(ctx context.Context, token, itemID string) (Reply, error) {
	return c.mutate(ctx, PathCartRemove, token, itemID)
}

// mutate is never retried: the backend may have applied a change whose reply
// was lost.
func (c *Client) mutate(ctx context.Context, path, token, itemID string) (Reply, error) {
	if err := validation.RequireID("itemId", itemID); err != nil {
		return Reply{}, err
	}
	resp, err := rest.Post[Reply](ctx, c.rest, path, ItemRequest{ItemID: itemID}, withToken(token))
	if err != nil {
		return Reply{}, err
	}
	c.log.WithContext(ctx).Debug("cart mutation replied", logger.Fields(
		"path", path, logger.FieldItemID, itemID, "success", resp.Data.Success))
	return resp.Data, nil
}

// GetCart returns the server-side cart for token. A reply that explicitly
// reports success=false is returned as UNAUTHORIZED, since that is how the
// backend rejects a stale token. A missing cartData is an empty cart.
func (c *Client) GetCart(ctx context.Context, token string) (map[string]int, error) {
	resp, err := rest.Post[CartData](ctx, c.rest, PathCartGet, struct{}{}, withToken(token), rest.Idempotent())
	if err != nil {
		return nil, err
	}
	if resp.Data.Success != nil && !*resp.Data.Success {
		return nil, errors.Unauthorized(resp.Data.Message)
	}
	if resp.Data.CartData == nil {
		return map[string]int{}, nil
	}
	return resp.Data.CartData, nil
}

func withToken(token string) rest.RequestOption {
	return rest.WithAuth(httpclient.HeaderAuth(TokenHeader, token))
}
